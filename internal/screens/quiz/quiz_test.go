package quiz

import (
	"context"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/wordiz/internal/content"
	"github.com/abhisek/wordiz/internal/router"
	"github.com/abhisek/wordiz/internal/screen"
	"github.com/abhisek/wordiz/internal/session"
	"github.com/abhisek/wordiz/internal/stats"
	"github.com/abhisek/wordiz/internal/store"
	"github.com/abhisek/wordiz/internal/store/memstore"
)

func testLesson() (*content.Course, *content.Lesson) {
	l := content.Lesson{
		ID:       "animals",
		Title:    "Animals",
		Language: "German",
		Words: []content.VocabItem{
			{Term: "dog", Translation: "Hund"},
			{Term: "cat", Translation: "Katze"},
		},
		Quiz: []content.QuizQuestion{
			{Prompt: "dog", Options: []string{"Hund", "Katze", "Maus", "Vogel"}, CorrectOption: "Hund"},
			{Prompt: "cat", Options: []string{"Hund", "Katze", "Maus", "Vogel"}, CorrectOption: "Katze"},
		},
	}
	c := &content.Course{ID: "basics", Title: "Basics", Lessons: []content.Lesson{l}}
	return c, &c.Lessons[0]
}

func newTestQuiz(t *testing.T) (*QuizScreen, *screen.Deps, *memstore.Store) {
	t.Helper()
	mem := memstore.New()
	deps := &screen.Deps{
		Stats:     stats.NewStore(mem.KV()),
		EventRepo: mem.EventRepo(),
	}
	course, lesson := testLesson()
	s := New(deps, course, lesson)
	cmd := s.Init()
	if cmd == nil {
		t.Fatal("expected Init to load questions")
	}
	s.Update(cmd())
	if s.quiz == nil {
		t.Fatalf("quiz not started: %s", s.errMsg)
	}
	return s, deps, mem
}

func press(s *QuizScreen, key rune) tea.Cmd {
	_, cmd := s.Update(tea.KeyPressMsg{Code: key, Text: string(key)})
	return cmd
}

func enter(s *QuizScreen) tea.Cmd {
	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	return cmd
}

func TestQuizScreen_Loading(t *testing.T) {
	course, lesson := testLesson()
	s := New(&screen.Deps{}, course, lesson)
	if !strings.Contains(s.View(80, 24), "Preparing questions") {
		t.Error("expected loading view before questions arrive")
	}
}

func TestQuizScreen_AnswerAndMark(t *testing.T) {
	s, _, _ := newTestQuiz(t)

	press(s, 'b') // Katze, wrong
	enter(s)

	st := s.quiz.State()
	if st.Phase != session.QuizAnswered {
		t.Fatalf("phase = %v, want answered", st.Phase)
	}
	if st.Wrong != 1 || st.Correct != 0 {
		t.Errorf("counts = %d/%d, want 0 correct 1 wrong", st.Correct, st.Wrong)
	}
	if !s.choice.Locked() {
		t.Error("expected choices to be locked after answering")
	}
	if !strings.Contains(s.View(80, 30), "The answer is Hund") {
		t.Error("expected the correct answer in the feedback")
	}

	// Cursor keys are ignored while answered.
	press(s, 'a')
	if s.choice.Cursor != 1 {
		t.Errorf("cursor moved to %d after answering", s.choice.Cursor)
	}
}

func TestQuizScreen_FinishCommitsAndRecords(t *testing.T) {
	s, deps, mem := newTestQuiz(t)

	press(s, 'a')
	enter(s)
	enter(s)
	press(s, 'b')
	enter(s)
	cmd := enter(s)
	if cmd == nil {
		t.Fatal("expected navigation after the last question")
	}
	if s.quiz.State().Phase != session.QuizFinished {
		t.Fatalf("phase = %v, want finished", s.quiz.State().Phase)
	}

	var replaced bool
	for _, msg := range collect(cmd) {
		if rm, ok := msg.(router.ReplaceScreenMsg); ok {
			replaced = true
			if rm.Screen.Title() != "Quiz Result" {
				t.Errorf("replaced with %q, want result screen", rm.Screen.Title())
			}
		}
	}
	if !replaced {
		t.Error("expected ReplaceScreenMsg")
	}

	ctx := context.Background()
	st, err := deps.Stats.Load(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if st.CorrectAnswers != 2 || st.LearnedWords != 2 || st.Streak != 1 {
		t.Errorf("stats = %+v", st)
	}

	results, err := mem.RecentQuizResults(ctx, store.QueryOpts{})
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 1 {
		t.Fatalf("got %d results, want 1", len(results))
	}
	r := results[0]
	if r.Correct != 2 || r.Wrong != 0 || r.SuccessRate != 100 || !r.Committed || r.Lesson != "animals" {
		t.Errorf("result = %+v", r)
	}
}

func TestQuizScreen_Restart(t *testing.T) {
	s, _, _ := newTestQuiz(t)
	press(s, 'a')
	enter(s)
	enter(s)
	before := s.sessionID

	s.Restart()

	st := s.quiz.State()
	if st.Index != 0 || st.Correct != 0 || st.Phase != session.QuizActive {
		t.Errorf("state after restart = %+v", st)
	}
	if s.sessionID == before {
		t.Error("expected a new session ID after restart")
	}
	if s.Init() != nil {
		t.Error("expected Init not to reload a running quiz")
	}
}

func TestQuizScreen_NoQuestions(t *testing.T) {
	course, lesson := testLesson()
	lesson.Quiz = nil
	s := New(&screen.Deps{}, course, lesson)
	s.Update(s.Init()())
	if s.errMsg == "" {
		t.Fatal("expected an error without quiz or generator")
	}
	if !strings.Contains(s.View(80, 24), "Cannot start the quiz") {
		t.Error("expected error view")
	}
}

// collect runs cmd, expanding batches.
func collect(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, collect(c)...)
		}
		return out
	}
	return []tea.Msg{msg}
}
