// Package app is the root Bubble Tea model: it owns the screen router and
// draws the header and footer around the active screen.
package app

import (
	"context"
	"fmt"
	"os"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/wordiz/internal/router"
	"github.com/abhisek/wordiz/internal/screen"
	"github.com/abhisek/wordiz/internal/screens/home"
	"github.com/abhisek/wordiz/internal/screens/login"
	"github.com/abhisek/wordiz/internal/screens/welcome"
	"github.com/abhisek/wordiz/internal/stats"
	"github.com/abhisek/wordiz/internal/ui/layout"
)

// Options configures the TUI.
type Options struct {
	Deps *screen.Deps

	// SkipWelcome starts directly on the login or home screen.
	SkipWelcome bool
}

var timeNow = time.Now

// headerStatsMsg carries the counters shown in the header.
type headerStatsMsg struct {
	Words  int
	Streak int
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	deps   *screen.Deps
	router *router.Router
	width  int
	height int

	words  int
	streak int
}

// newAppModel creates the root model. The first screen is home when a
// session token is still valid and login otherwise.
func newAppModel(opts Options) AppModel {
	deps := opts.Deps
	deps.NewHome = func() screen.Screen { return home.New(deps) }
	deps.NewLogin = func() screen.Screen { return login.New(deps) }

	start := func() screen.Screen {
		if deps.Auth != nil {
			p, ok, err := deps.Auth.Current(context.Background())
			if err != nil {
				deps.Log().Warn("restore session", "error", err)
			}
			if ok {
				deps.User = p
				return deps.NewHome()
			}
		}
		return deps.NewLogin()
	}

	var root screen.Screen
	if opts.SkipWelcome {
		root = start()
	} else {
		root = welcome.New(start)
	}
	return AppModel{deps: deps, router: router.New(root)}
}

func (m AppModel) Init() tea.Cmd {
	return tea.Batch(m.router.Active().Init(), m.loadHeaderStats())
}

func (m AppModel) loadHeaderStats() tea.Cmd {
	st := m.deps.Stats
	if st == nil {
		return nil
	}
	logger := m.deps.Log()
	return func() tea.Msg {
		s, err := st.Load(context.Background())
		if err != nil {
			logger.Warn("load header stats", "error", err)
			return nil
		}
		return headerStatsMsg{Words: s.LearnedWords, Streak: currentStreak(s)}
	}
}

// currentStreak hides a streak that has already lapsed.
func currentStreak(s stats.UserStats) int {
	if stats.StreakAlive(s, stats.Today(timeNow())) {
		return s.Streak
	}
	return 0
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case headerStatsMsg:
		m.words = msg.Words
		m.streak = msg.Streak
		return m, nil

	case screen.StatsChangedMsg:
		return m, m.loadHeaderStats()

	case router.PopScreenMsg, router.PopToRootMsg, router.ResetScreenMsg, router.ReplaceScreenMsg:
		return m, tea.Batch(m.router.Update(msg), m.loadHeaderStats())

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc":
			if m.router.Depth() > 1 {
				return m, func() tea.Msg { return router.PopScreenMsg{} }
			}
			return m, nil
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	if m.width == 0 || m.height == 0 {
		return v
	}

	if layout.IsTooSmall(m.width, m.height) {
		v.SetContent(layout.RenderMinSizeMessage(m.width, m.height))
		return v
	}

	active := m.router.Active()
	title := ""
	if active != nil {
		title = active.Title()
	}

	header := layout.RenderHeader(title, m.words, m.streak, m.width)
	footer := layout.RenderFooter(m.footerHints(active), m.width)

	headerHeight := lipgloss.Height(header)
	footerHeight := lipgloss.Height(footer)
	contentHeight := m.height - headerHeight - footerHeight
	if contentHeight < 0 {
		contentHeight = 0
	}

	content := m.router.View(m.width, contentHeight)
	frame := layout.RenderFrame(header, content, footer, m.width, m.height)

	v.SetContent(frame)
	return v
}

func (m AppModel) footerHints(active screen.Screen) []layout.KeyHint {
	if p, ok := active.(screen.KeyHintProvider); ok {
		return append(p.KeyHints(), layout.KeyHint{Key: "Ctrl+C", Description: "Quit"})
	}
	if m.router.Depth() > 1 {
		return []layout.KeyHint{
			{Key: "Esc", Description: "Back"},
			{Key: "Ctrl+C", Description: "Quit"},
		}
	}
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Select"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	if opts.Deps == nil {
		return fmt.Errorf("app: missing dependencies")
	}
	p := tea.NewProgram(newAppModel(opts))
	_, err := p.Run()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error running program:", err)
		return err
	}
	return nil
}
