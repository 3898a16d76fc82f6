package learn

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/wordiz/internal/content"
	"github.com/abhisek/wordiz/internal/router"
	"github.com/abhisek/wordiz/internal/screen"
)

func newTestLearn(words ...content.VocabItem) *LearnScreen {
	l := content.Lesson{ID: "greetings", Title: "Greetings", Language: "German", Words: words}
	c := &content.Course{ID: "basics", Title: "Basics", Lessons: []content.Lesson{l}}
	return New(&screen.Deps{}, c, &c.Lessons[0])
}

func twoWords() []content.VocabItem {
	return []content.VocabItem{
		{Term: "hello", Translation: "hallo", Example: "Hello, Anna!"},
		{Term: "bye", Translation: "tschüss"},
	}
}

func space(s *LearnScreen) tea.Cmd {
	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeySpace, Text: " "})
	return cmd
}

func enter(s *LearnScreen) tea.Cmd {
	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	return cmd
}

func TestLearnScreen_RevealThenAdvance(t *testing.T) {
	s := newTestLearn(twoWords()...)

	view := s.View(80, 24)
	if !strings.Contains(view, "hello") {
		t.Error("expected the first term")
	}
	if strings.Contains(view, "hallo") {
		t.Error("translation shown before reveal")
	}

	space(s)
	if !s.session.State().Revealed {
		t.Fatal("expected card to be revealed")
	}
	if !strings.Contains(s.View(80, 24), "hallo") {
		t.Error("expected translation after reveal")
	}

	enter(s)
	st := s.session.State()
	if st.Index != 1 || st.Revealed {
		t.Errorf("state = %+v, want second card hidden", st)
	}
}

func TestLearnScreen_AdvanceRequiresReveal(t *testing.T) {
	s := newTestLearn(twoWords()...)
	s.Update(tea.KeyPressMsg{Code: 'n', Text: "n"})
	if s.session.State().Index != 0 {
		t.Error("advanced without revealing")
	}
}

func TestLearnScreen_Completion(t *testing.T) {
	s := newTestLearn(twoWords()...)
	for range 2 {
		space(s)
		enter(s)
	}
	if !s.session.Completed() {
		t.Fatal("expected session to be completed")
	}
	if !strings.Contains(s.View(80, 30), "Lesson complete!") {
		t.Error("expected completion view")
	}

	// Restart is the first entry.
	enter(s)
	if s.session.Completed() || s.session.State().Index != 0 {
		t.Errorf("state after restart = %+v", s.session.State())
	}
}

func TestLearnScreen_CompletionGoToQuiz(t *testing.T) {
	s := newTestLearn(twoWords()...)
	for range 2 {
		space(s)
		enter(s)
	}
	s.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	cmd := enter(s)
	if cmd == nil {
		t.Fatal("expected command")
	}
	msg, ok := cmd().(router.ReplaceScreenMsg)
	if !ok {
		t.Fatalf("expected ReplaceScreenMsg, got %T", cmd())
	}
	if !strings.HasPrefix(msg.Screen.Title(), "Quiz") {
		t.Errorf("replaced with %q", msg.Screen.Title())
	}
}

func TestLearnScreen_CompletionHome(t *testing.T) {
	s := newTestLearn(twoWords()...)
	for range 2 {
		space(s)
		enter(s)
	}
	s.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	s.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	cmd := enter(s)
	if cmd == nil {
		t.Fatal("expected command")
	}
	if _, ok := cmd().(router.PopToRootMsg); !ok {
		t.Error("expected PopToRootMsg")
	}
}

func TestLearnScreen_EmptyLesson(t *testing.T) {
	s := newTestLearn()
	if !strings.Contains(s.View(80, 24), "Cannot start this lesson") {
		t.Error("expected error view for a lesson without words")
	}
	if _, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEnter}); cmd != nil {
		t.Error("expected keys to be ignored")
	}
}
