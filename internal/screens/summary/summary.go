// Package summary shows the result of a finished quiz.
package summary

import (
	"context"
	"fmt"
	"image/color"
	"log/slog"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/wordiz/internal/router"
	"github.com/abhisek/wordiz/internal/screen"
	"github.com/abhisek/wordiz/internal/session"
	"github.com/abhisek/wordiz/internal/ui/components"
	"github.com/abhisek/wordiz/internal/ui/layout"
	"github.com/abhisek/wordiz/internal/ui/theme"
)

// Input configures a SummaryScreen.
type Input struct {
	Quiz   *session.Quiz
	Course string
	Lesson string
	Logger *slog.Logger

	// Restart resets the quiz and returns the screen that runs it again.
	Restart func() screen.Screen
}

// SummaryScreen displays the quiz result.
type SummaryScreen struct {
	in     Input
	errMsg string
}

var _ screen.Screen = (*SummaryScreen)(nil)
var _ screen.KeyHintProvider = (*SummaryScreen)(nil)

// New creates a new SummaryScreen.
func New(in Input) *SummaryScreen {
	if in.Logger == nil {
		in.Logger = slog.New(slog.DiscardHandler)
	}
	return &SummaryScreen{in: in}
}

func (s *SummaryScreen) Init() tea.Cmd {
	return nil
}

func (s *SummaryScreen) Title() string {
	return "Quiz Result"
}

func (s *SummaryScreen) KeyHints() []layout.KeyHint {
	hints := []layout.KeyHint{
		{Key: "R", Description: "Restart"},
		{Key: "Enter", Description: "Home"},
	}
	if s.in.Quiz != nil && s.in.Quiz.CommitStatus() == session.CommitFailed {
		hints = append(hints, layout.KeyHint{Key: "C", Description: "Retry save"})
	}
	return hints
}

func (s *SummaryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return s, nil
	}
	switch kmsg.String() {
	case "enter", "h":
		return s, func() tea.Msg { return router.PopToRootMsg{} }
	case "r":
		if s.in.Restart == nil {
			return s, nil
		}
		next := s.in.Restart()
		return s, func() tea.Msg { return router.ReplaceScreenMsg{Screen: next} }
	case "c":
		return s.retryCommit()
	}
	return s, nil
}

func (s *SummaryScreen) retryCommit() (screen.Screen, tea.Cmd) {
	q := s.in.Quiz
	if q == nil || q.CommitStatus() != session.CommitFailed {
		return s, nil
	}
	if err := q.RetryCommit(context.Background()); err != nil {
		s.in.Logger.Error("retry quiz commit", "lesson", s.in.Lesson, "error", err)
		s.errMsg = err.Error()
		return s, nil
	}
	s.errMsg = ""
	s.in.Logger.Info("quiz result saved on retry", "lesson", s.in.Lesson)
	return s, screen.StatsChanged
}

func (s *SummaryScreen) View(width, height int) string {
	q := s.in.Quiz
	if q == nil {
		return ""
	}
	st := q.State()
	rate, _ := q.SuccessRate()
	cw := components.ContentWidth(width)

	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render("Quiz complete!"))
	b.WriteString("\n")
	b.WriteString(theme.Subtitle.Render(fmt.Sprintf("%s · %s", s.in.Course, s.in.Lesson)))
	b.WriteString("\n\n")

	b.WriteString(lipgloss.NewStyle().Foreground(rateColor(rate)).Bold(true).
		Render(fmt.Sprintf("%d%%", rate)))
	b.WriteString("\n")
	b.WriteString(theme.Hint.Render("success rate"))
	b.WriteString("\n\n")

	b.WriteString(fmt.Sprintf("%s        %s",
		theme.Correct.Render(fmt.Sprintf("Correct: %d", st.Correct)),
		theme.Incorrect.Render(fmt.Sprintf("Wrong: %d", st.Wrong))))
	b.WriteString("\n\n")
	b.WriteString(s.commitLine())

	body := lipgloss.JoinVertical(lipgloss.Center,
		components.Card(b.String(), cw),
		"",
		theme.Hint.Render("r restart · enter home"),
	)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, body)
}

func (s *SummaryScreen) commitLine() string {
	switch s.in.Quiz.CommitStatus() {
	case session.CommitSucceeded:
		return lipgloss.NewStyle().Foreground(theme.Success).Render("Progress saved")
	case session.CommitFailed:
		line := lipgloss.NewStyle().Foreground(theme.Error).Render("Progress not saved. Press c to retry.")
		if s.errMsg != "" {
			line += "\n" + theme.Hint.Render(s.errMsg)
		}
		return line
	default:
		return theme.Hint.Render("Saving progress...")
	}
}

func rateColor(rate int) color.Color {
	switch {
	case rate >= 80:
		return theme.Success
	case rate >= 50:
		return theme.ArcadeYellow
	default:
		return theme.Error
	}
}
