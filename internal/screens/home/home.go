package home

import (
	"context"
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/wordiz/internal/profile"
	"github.com/abhisek/wordiz/internal/router"
	"github.com/abhisek/wordiz/internal/screen"
	"github.com/abhisek/wordiz/internal/screens/courses"
	"github.com/abhisek/wordiz/internal/screens/history"
	profilescreen "github.com/abhisek/wordiz/internal/screens/profile"
	"github.com/abhisek/wordiz/internal/screens/wordnotes"
	"github.com/abhisek/wordiz/internal/ui/components"
)

type summaryLoadedMsg struct {
	Summary profile.Summary
	Err     error
}

// HomeScreen is the main menu with a progress dashboard.
type HomeScreen struct {
	deps       *screen.Deps
	menu       components.Menu
	menuLabels []string
	summary    profile.Summary
	loaded     bool
}

var _ screen.Screen = (*HomeScreen)(nil)
var _ screen.Resumer = (*HomeScreen)(nil)

// New creates a new HomeScreen.
func New(deps *screen.Deps) *HomeScreen {
	menuLabels := []string{"COURSES", "WORD NOTES", "PROFILE", "HISTORY", "EXIT"}

	push := func(build func() screen.Screen) func() tea.Cmd {
		return func() tea.Cmd {
			s := build()
			return func() tea.Msg { return router.PushScreenMsg{Screen: s} }
		}
	}

	items := []components.MenuItem{
		{Label: menuLabels[0], Action: push(func() screen.Screen { return courses.New(deps) })},
		{Label: menuLabels[1], Action: push(func() screen.Screen { return wordnotes.New(deps) })},
		{Label: menuLabels[2], Action: push(func() screen.Screen { return profilescreen.New(deps) })},
		{Label: menuLabels[3], Action: push(func() screen.Screen { return history.New(deps.EventRepo) }), Disabled: deps.EventRepo == nil},
		{Label: menuLabels[4], Action: func() tea.Cmd { return tea.Quit }},
	}

	return &HomeScreen{
		deps:       deps,
		menu:       components.NewMenu(items),
		menuLabels: menuLabels,
	}
}

func (h *HomeScreen) Init() tea.Cmd {
	return h.load()
}

// Resume reloads the dashboard after returning from a lesson or quiz.
func (h *HomeScreen) Resume() tea.Cmd {
	return h.load()
}

func (h *HomeScreen) load() tea.Cmd {
	agg := h.deps.Profile
	if agg == nil {
		return nil
	}
	user := h.deps.User
	return func() tea.Msg {
		sum, err := agg.Summary(context.Background(), user, true)
		return summaryLoadedMsg{Summary: sum, Err: err}
	}
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if msg, ok := msg.(summaryLoadedMsg); ok {
		if msg.Err != nil {
			h.deps.Log().Warn("home dashboard unavailable", "error", msg.Err)
			return h, nil
		}
		h.summary = msg.Summary
		h.loaded = true
		return h, nil
	}

	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) View(width, height int) string {
	// height is the content area; estimate full terminal height
	// by adding back header (3) + footer (3) + frame gaps
	termHeight := height + 8
	compact := termHeight < 30 || width < 100

	cw := components.ContentWidth(width)

	var sections []string

	sections = append(sections, renderTitle(cw, compact))

	if !compact {
		sections = append(sections, renderMascotBox(mascotFor(h.summary, h.loaded), cw))
	}

	sections = append(sections, renderGreeting(h.summary.Profile.Name, cw))
	sections = append(sections, renderStatsBar(h.summary, cw, compact))

	disabled := make(map[int]bool)
	for i, item := range h.menu.Items {
		disabled[i] = item.Disabled
	}
	if termHeight < 34 {
		sections = append(sections, renderMenuCompact(h.menuLabels, h.menu.Selected, cw, disabled))
	} else {
		sections = append(sections, renderMenu(h.menuLabels, h.menu.Selected, cw, disabled))
	}

	content := strings.Join(sections, "\n\n")
	return components.CabinetFrame(content, width, height)
}

func (h *HomeScreen) Title() string {
	return "Home"
}

// mascotFor picks the mascot mood: celebrating once today's study is done,
// alert while a live streak still needs today's activity.
func mascotFor(sum profile.Summary, loaded bool) MascotVariant {
	switch {
	case !loaded:
		return MascotIdle
	case sum.StudiedToday:
		return MascotCelebrating
	case sum.CurrentStreak > 0:
		return MascotAlert
	default:
		return MascotIdle
	}
}
