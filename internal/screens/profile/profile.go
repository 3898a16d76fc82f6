// Package profile shows the signed-in user, their progress and the logout
// action.
package profile

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/wordiz/internal/profile"
	"github.com/abhisek/wordiz/internal/router"
	"github.com/abhisek/wordiz/internal/screen"
	"github.com/abhisek/wordiz/internal/ui/components"
	"github.com/abhisek/wordiz/internal/ui/layout"
	"github.com/abhisek/wordiz/internal/ui/theme"
)

type summaryLoadedMsg struct {
	Summary profile.Summary
	Err     error
}

type loggedOutMsg struct {
	Err error
}

// ProfileScreen displays the profile summary.
type ProfileScreen struct {
	deps       *screen.Deps
	summary    profile.Summary
	loaded     bool
	confirming bool
	errMsg     string
}

var _ screen.Screen = (*ProfileScreen)(nil)
var _ screen.KeyHintProvider = (*ProfileScreen)(nil)
var _ screen.Resumer = (*ProfileScreen)(nil)

// New creates a ProfileScreen.
func New(deps *screen.Deps) *ProfileScreen {
	return &ProfileScreen{deps: deps}
}

func (s *ProfileScreen) Init() tea.Cmd {
	return s.load()
}

func (s *ProfileScreen) Resume() tea.Cmd {
	return s.load()
}

func (s *ProfileScreen) load() tea.Cmd {
	agg := s.deps.Profile
	user := s.deps.User
	return func() tea.Msg {
		sum, err := agg.Summary(context.Background(), user, user.Email != "")
		return summaryLoadedMsg{Summary: sum, Err: err}
	}
}

func (s *ProfileScreen) Title() string {
	return "Profile"
}

func (s *ProfileScreen) KeyHints() []layout.KeyHint {
	if s.confirming {
		return []layout.KeyHint{
			{Key: "Y", Description: "Log out"},
			{Key: "N", Description: "Cancel"},
		}
	}
	return []layout.KeyHint{
		{Key: "S", Description: "Studied today"},
		{Key: "L", Description: "Log out"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *ProfileScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case summaryLoadedMsg:
		if msg.Err != nil {
			s.deps.Log().Warn("load profile summary", "error", msg.Err)
			s.errMsg = msg.Err.Error()
		} else {
			s.errMsg = ""
			s.summary = msg.Summary
		}
		s.loaded = true
		return s, nil

	case loggedOutMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
			return s, nil
		}
		login := s.deps.NewLogin()
		return s, tea.Batch(
			screen.StatsChanged,
			func() tea.Msg { return router.ResetScreenMsg{Screen: login} },
		)

	case tea.KeyMsg:
		if s.confirming {
			switch msg.String() {
			case "y", "Y":
				s.confirming = false
				return s, s.logout()
			case "n", "N":
				s.confirming = false
			}
			return s, nil
		}
		switch msg.String() {
		case "l":
			s.confirming = true
		case "s":
			return s, s.recordStudy()
		}
	}
	return s, nil
}

func (s *ProfileScreen) logout() tea.Cmd {
	svc := s.deps.Auth
	return func() tea.Msg {
		return loggedOutMsg{Err: svc.Logout(context.Background())}
	}
}

func (s *ProfileScreen) recordStudy() tea.Cmd {
	if err := s.deps.Stats.RecordStudy(context.Background()); err != nil {
		s.deps.Log().Warn("record study", "error", err)
		s.errMsg = err.Error()
		return nil
	}
	return tea.Batch(screen.StatsChanged, s.load())
}

func (s *ProfileScreen) View(width, height int) string {
	if !s.loaded {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).
			Render("\n\n  Loading profile...")
	}

	cw := components.ContentWidth(width)
	sum := s.summary
	dim := lipgloss.NewStyle().Foreground(theme.TextDim)

	var who strings.Builder
	name := sum.Profile.Name
	if name == "" {
		name = "Guest"
	}
	who.WriteString(lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render(name))
	if sum.Profile.Email != "" {
		who.WriteString("\n")
		who.WriteString(dim.Render(sum.Profile.Email))
	}
	if !sum.Profile.LastLogin.IsZero() {
		who.WriteString("\n")
		who.WriteString(dim.Render("Last login " + sum.Profile.LastLogin.Local().Format("Jan 02, 2006 15:04")))
	}

	st := sum.Stats
	var numbers strings.Builder
	fmt.Fprintf(&numbers, "%s\n\n", statRow(
		stat(st.TotalWords, "Total words"),
		stat(st.LearnedWords, "Learned"),
	))
	fmt.Fprintf(&numbers, "%s", statRow(
		stat(st.CorrectAnswers, "Correct answers"),
		stat(sum.CurrentStreak, "Day streak"),
	))
	if sum.StudiedToday {
		numbers.WriteString("\n\n" + lipgloss.NewStyle().Foreground(theme.Success).Render("You studied today"))
	} else {
		numbers.WriteString("\n\n" + theme.Hint.Render("Study today to keep your streak"))
	}
	if len(sum.Recent) > 0 {
		fmt.Fprintf(&numbers, "\n%s", dim.Render(fmt.Sprintf(
			"Last %d quizzes: %d%% average", len(sum.Recent), sum.AverageSuccessRate)))
	}
	if s.deps.Notes != nil {
		fmt.Fprintf(&numbers, "\n%s", dim.Render(fmt.Sprintf("%d word notes this session", s.deps.Notes.Len())))
	}

	parts := []string{
		components.Card(who.String(), cw),
		components.Card(numbers.String(), cw),
	}
	switch {
	case s.confirming:
		parts = append(parts, "", lipgloss.NewStyle().Foreground(theme.Accent).Bold(true).
			Render("Log out? Your progress on this device will be cleared. (y/n)"))
	case s.errMsg != "":
		parts = append(parts, "", lipgloss.NewStyle().Foreground(theme.Error).Render(s.errMsg))
	}
	body := lipgloss.JoinVertical(lipgloss.Center, parts...)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, body)
}

func stat(value int, label string) string {
	return lipgloss.JoinVertical(lipgloss.Center,
		lipgloss.NewStyle().Foreground(theme.ArcadeYellow).Bold(true).Render(fmt.Sprintf("%d", value)),
		lipgloss.NewStyle().Foreground(theme.TextDim).Render(label),
	)
}

func statRow(left, right string) string {
	cell := lipgloss.NewStyle().Width(20).Align(lipgloss.Center)
	return lipgloss.JoinHorizontal(lipgloss.Top, cell.Render(left), cell.Render(right))
}
