// Package lesson is the entry screen of a lesson, where the user picks
// between Learning Mode and Quiz Mode.
package lesson

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/wordiz/internal/content"
	"github.com/abhisek/wordiz/internal/router"
	"github.com/abhisek/wordiz/internal/screen"
	"github.com/abhisek/wordiz/internal/screens/learn"
	"github.com/abhisek/wordiz/internal/screens/quiz"
	"github.com/abhisek/wordiz/internal/ui/components"
	"github.com/abhisek/wordiz/internal/ui/layout"
	"github.com/abhisek/wordiz/internal/ui/theme"
)

// LessonScreen shows a lesson overview and the two study modes.
type LessonScreen struct {
	deps   *screen.Deps
	course *content.Course
	lesson *content.Lesson
	menu   components.Menu
}

var _ screen.Screen = (*LessonScreen)(nil)
var _ screen.KeyHintProvider = (*LessonScreen)(nil)

// New creates a LessonScreen.
func New(deps *screen.Deps, course *content.Course, l *content.Lesson) *LessonScreen {
	s := &LessonScreen{deps: deps, course: course, lesson: l}
	s.menu = components.NewMenu([]components.MenuItem{
		{Label: "Learning Mode", Action: s.push(func() screen.Screen { return learn.New(deps, course, l) })},
		{Label: "Quiz Mode", Action: s.push(func() screen.Screen { return quiz.New(deps, course, l) })},
	})
	return s
}

func (s *LessonScreen) push(build func() screen.Screen) func() tea.Cmd {
	return func() tea.Cmd {
		next := build()
		return func() tea.Msg { return router.PushScreenMsg{Screen: next} }
	}
}

func (s *LessonScreen) Init() tea.Cmd { return nil }

func (s *LessonScreen) Title() string { return s.lesson.Title }

func (s *LessonScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Start"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *LessonScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	var cmd tea.Cmd
	s.menu, cmd = s.menu.Update(msg)
	return s, cmd
}

func (s *LessonScreen) View(width, height int) string {
	cw := components.ContentWidth(width)

	var info strings.Builder
	info.WriteString(lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render(s.lesson.Title))
	info.WriteString("\n")
	info.WriteString(theme.Subtitle.Render(s.course.Title))
	if s.lesson.Description != "" {
		info.WriteString("\n\n")
		info.WriteString(theme.Body.Render(s.lesson.Description))
	}
	info.WriteString("\n\n")
	quizInfo := "generated quiz"
	if n := len(s.lesson.Quiz); n > 0 {
		quizInfo = fmt.Sprintf("%d questions", n)
	}
	info.WriteString(theme.Hint.Render(fmt.Sprintf("%d words · %s", len(s.lesson.Words), quizInfo)))

	var buttons []string
	for i, item := range s.menu.Items {
		buttons = append(buttons, components.MenuButton(item.Label, i == s.menu.Selected, cw))
	}

	body := lipgloss.JoinVertical(lipgloss.Center,
		components.Card(info.String(), cw),
		"",
		lipgloss.JoinVertical(lipgloss.Center, buttons...),
	)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, body)
}
