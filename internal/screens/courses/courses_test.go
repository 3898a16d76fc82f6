package courses

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/wordiz/internal/content"
	"github.com/abhisek/wordiz/internal/router"
	"github.com/abhisek/wordiz/internal/screen"
)

func testDeps(t *testing.T) *screen.Deps {
	t.Helper()
	catalog, err := content.Default()
	if err != nil {
		t.Fatalf("default catalog: %v", err)
	}
	return &screen.Deps{Catalog: catalog}
}

func TestCoursesScreen_ListsCatalog(t *testing.T) {
	deps := testDeps(t)
	s := New(deps)
	if len(s.menu.Items) != len(deps.Catalog.Courses) {
		t.Fatalf("got %d items, want %d", len(s.menu.Items), len(deps.Catalog.Courses))
	}
	view := s.View(100, 30)
	for _, c := range deps.Catalog.Courses {
		if !strings.Contains(view, c.Title) {
			t.Errorf("view missing course %q", c.Title)
		}
	}
}

func TestCoursesScreen_OpenCourse(t *testing.T) {
	deps := testDeps(t)
	s := New(deps)
	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("expected command")
	}
	msg, ok := cmd().(router.PushScreenMsg)
	if !ok {
		t.Fatal("expected PushScreenMsg")
	}
	lessons, ok := msg.Screen.(*LessonsScreen)
	if !ok {
		t.Fatalf("pushed %T, want *LessonsScreen", msg.Screen)
	}
	if lessons.Title() != deps.Catalog.Courses[0].Title {
		t.Errorf("Title = %q", lessons.Title())
	}
}

func TestLessonsScreen_OpenLesson(t *testing.T) {
	deps := testDeps(t)
	course := &deps.Catalog.Courses[0]
	s := NewLessons(deps, course)
	if !strings.Contains(s.View(100, 30), course.Lessons[0].Title) {
		t.Error("view missing first lesson")
	}
	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("expected command")
	}
	msg, ok := cmd().(router.PushScreenMsg)
	if !ok {
		t.Fatal("expected PushScreenMsg")
	}
	if msg.Screen.Title() != course.Lessons[0].Title {
		t.Errorf("pushed %q, want lesson screen", msg.Screen.Title())
	}
}

func TestCoursesScreen_Empty(t *testing.T) {
	s := New(&screen.Deps{})
	if !strings.Contains(s.View(80, 24), "No courses available") {
		t.Error("expected empty message")
	}
}
