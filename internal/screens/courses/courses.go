// Package courses lists the catalog: courses first, then the lessons of the
// chosen course.
package courses

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/wordiz/internal/content"
	"github.com/abhisek/wordiz/internal/router"
	"github.com/abhisek/wordiz/internal/screen"
	"github.com/abhisek/wordiz/internal/screens/lesson"
	"github.com/abhisek/wordiz/internal/ui/components"
	"github.com/abhisek/wordiz/internal/ui/layout"
	"github.com/abhisek/wordiz/internal/ui/theme"
)

// CoursesScreen lists every course in the catalog.
type CoursesScreen struct {
	deps *screen.Deps
	menu components.Menu
}

var _ screen.Screen = (*CoursesScreen)(nil)
var _ screen.KeyHintProvider = (*CoursesScreen)(nil)

// New creates a CoursesScreen.
func New(deps *screen.Deps) *CoursesScreen {
	var items []components.MenuItem
	if deps.Catalog != nil {
		for i := range deps.Catalog.Courses {
			c := &deps.Catalog.Courses[i]
			items = append(items, components.MenuItem{
				Label: courseLabel(c),
				Action: func() tea.Cmd {
					s := NewLessons(deps, c)
					return func() tea.Msg { return router.PushScreenMsg{Screen: s} }
				},
			})
		}
	}
	return &CoursesScreen{deps: deps, menu: components.NewMenu(items)}
}

func courseLabel(c *content.Course) string {
	label := c.Title
	if c.Level != "" {
		label += " · " + c.Level
	}
	return fmt.Sprintf("%s  (%d lessons, %d words)", label, len(c.Lessons), c.WordCount())
}

func (s *CoursesScreen) Init() tea.Cmd { return nil }

func (s *CoursesScreen) Title() string { return "Courses" }

func (s *CoursesScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Open"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *CoursesScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	var cmd tea.Cmd
	s.menu, cmd = s.menu.Update(msg)
	return s, cmd
}

func (s *CoursesScreen) View(width, height int) string {
	if len(s.menu.Items) == 0 {
		return emptyView(width, "No courses available.")
	}
	return listView(width, "Choose a course", s.menu.View())
}

// LessonsScreen lists the lessons of one course.
type LessonsScreen struct {
	deps   *screen.Deps
	course *content.Course
	menu   components.Menu
}

var _ screen.Screen = (*LessonsScreen)(nil)
var _ screen.KeyHintProvider = (*LessonsScreen)(nil)

// NewLessons creates a LessonsScreen for course.
func NewLessons(deps *screen.Deps, course *content.Course) *LessonsScreen {
	items := make([]components.MenuItem, 0, len(course.Lessons))
	for i := range course.Lessons {
		l := &course.Lessons[i]
		items = append(items, components.MenuItem{
			Label: fmt.Sprintf("%d. %s  (%d words)", i+1, l.Title, len(l.Words)),
			Action: func() tea.Cmd {
				s := lesson.New(deps, course, l)
				return func() tea.Msg { return router.PushScreenMsg{Screen: s} }
			},
		})
	}
	return &LessonsScreen{deps: deps, course: course, menu: components.NewMenu(items)}
}

func (s *LessonsScreen) Init() tea.Cmd { return nil }

func (s *LessonsScreen) Title() string { return s.course.Title }

func (s *LessonsScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Open"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *LessonsScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	var cmd tea.Cmd
	s.menu, cmd = s.menu.Update(msg)
	return s, cmd
}

func (s *LessonsScreen) View(width, height int) string {
	if len(s.menu.Items) == 0 {
		return emptyView(width, "This course has no lessons yet.")
	}
	return listView(width, "Lessons", s.menu.View())
}

func listView(width int, heading, body string) string {
	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(theme.Title.Width(width).Render(heading))
	b.WriteString("\n\n")
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, body))
	return b.String()
}

func emptyView(width int, text string) string {
	return lipgloss.NewStyle().
		Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).Italic(true).
		Render("\n\n" + text)
}
