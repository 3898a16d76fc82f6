// Package learn is Learning Mode: the lesson's words shown one flashcard at
// a time.
package learn

import (
	"errors"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/wordiz/internal/content"
	"github.com/abhisek/wordiz/internal/router"
	"github.com/abhisek/wordiz/internal/screen"
	"github.com/abhisek/wordiz/internal/screens/quiz"
	"github.com/abhisek/wordiz/internal/session"
	"github.com/abhisek/wordiz/internal/ui/components"
	"github.com/abhisek/wordiz/internal/ui/layout"
	"github.com/abhisek/wordiz/internal/ui/theme"
)

// LearnScreen drives a learning session.
type LearnScreen struct {
	deps    *screen.Deps
	course  *content.Course
	lesson  *content.Lesson
	session *session.Learning
	menu    components.Menu
	errMsg  string
}

var _ screen.Screen = (*LearnScreen)(nil)
var _ screen.KeyHintProvider = (*LearnScreen)(nil)

// New creates a LearnScreen over the lesson's words.
func New(deps *screen.Deps, course *content.Course, l *content.Lesson) *LearnScreen {
	s := &LearnScreen{deps: deps, course: course, lesson: l}
	sess, err := session.NewLearning(l.Words)
	if err != nil {
		s.errMsg = err.Error()
	}
	s.session = sess
	s.menu = components.NewMenu([]components.MenuItem{
		{Label: "Restart", Action: func() tea.Cmd {
			s.session.Restart()
			return nil
		}},
		{Label: "Go to quiz", Action: func() tea.Cmd {
			next := quiz.New(deps, course, l)
			return func() tea.Msg { return router.ReplaceScreenMsg{Screen: next} }
		}},
		{Label: "Home", Action: func() tea.Cmd {
			return func() tea.Msg { return router.PopToRootMsg{} }
		}},
	})
	return s
}

func (s *LearnScreen) Init() tea.Cmd { return nil }

func (s *LearnScreen) Title() string { return "Learning · " + s.lesson.Title }

func (s *LearnScreen) KeyHints() []layout.KeyHint {
	switch {
	case s.session == nil:
		return []layout.KeyHint{{Key: "Esc", Description: "Back"}}
	case s.session.Completed():
		return []layout.KeyHint{
			{Key: "↑↓", Description: "Navigate"},
			{Key: "Enter", Description: "Select"},
			{Key: "Esc", Description: "Back"},
		}
	case s.session.State().Revealed:
		return []layout.KeyHint{
			{Key: "Enter", Description: "Next word"},
			{Key: "Esc", Description: "Back"},
		}
	default:
		return []layout.KeyHint{
			{Key: "Space", Description: "Show translation"},
			{Key: "Esc", Description: "Back"},
		}
	}
}

func (s *LearnScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if s.session == nil {
		return s, nil
	}
	if s.session.Completed() {
		var cmd tea.Cmd
		s.menu, cmd = s.menu.Update(msg)
		return s, cmd
	}

	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return s, nil
	}
	var err error
	switch kmsg.String() {
	case "space", " ", "enter":
		if s.session.State().Revealed {
			err = s.advance()
		} else {
			err = s.session.Reveal()
		}
	case "n", "right":
		err = s.advance()
	}
	if err != nil && !errors.Is(err, session.ErrInvalidTransition) {
		s.deps.Log().Warn("learning session", "lesson", s.lesson.ID, "error", err)
	}
	return s, nil
}

func (s *LearnScreen) advance() error {
	if err := s.session.Advance(); err != nil {
		return err
	}
	if s.session.Completed() {
		s.menu.Selected = 0
	}
	return nil
}

func (s *LearnScreen) View(width, height int) string {
	if s.errMsg != "" {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.Error).
			Render(fmt.Sprintf("\n\nCannot start this lesson: %s", s.errMsg))
	}
	cw := components.ContentWidth(width)
	if s.session.Completed() {
		return s.viewCompleted(width, height, cw)
	}

	card, _ := s.session.Card()
	progress := components.NewPosition("Word", card.Index+1, card.Total, cw)

	hint := "Press space to reveal"
	if card.Revealed {
		hint = "Press enter for the next word"
	}

	body := lipgloss.JoinVertical(lipgloss.Center,
		progress.View(),
		"",
		components.FlashCard(card.Term, card.Translation, card.Example, card.Revealed, cw),
		"",
		theme.Hint.Render(hint),
	)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, body)
}

func (s *LearnScreen) viewCompleted(width, height, cw int) string {
	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Success).Bold(true).Render("Lesson complete!"))
	b.WriteString("\n\n")
	b.WriteString(theme.Body.Render(fmt.Sprintf("You went through all %d words.", s.session.Len())))

	var buttons []string
	for i, item := range s.menu.Items {
		buttons = append(buttons, components.MenuButton(item.Label, i == s.menu.Selected, cw))
	}
	body := lipgloss.JoinVertical(lipgloss.Center,
		components.Card(b.String(), cw),
		"",
		lipgloss.JoinVertical(lipgloss.Center, buttons...),
	)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, body)
}
