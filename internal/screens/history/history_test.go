package history

import (
	"context"
	"errors"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/wordiz/internal/store"
	"github.com/abhisek/wordiz/internal/store/memstore"
)

type failingRepo struct {
	store.EventRepo
}

func (failingRepo) RecentQuizResults(context.Context, store.QueryOpts) ([]store.QuizResult, error) {
	return nil, errors.New("database is locked")
}

func loaded(t *testing.T, repo store.EventRepo) *HistoryScreen {
	t.Helper()
	s := New(repo)
	s.Update(s.Init()())
	if !s.loaded {
		t.Fatal("expected history to be loaded")
	}
	return s
}

func TestHistoryScreen_Empty(t *testing.T) {
	s := loaded(t, memstore.New())
	if !strings.Contains(s.View(80, 24), "No quizzes yet") {
		t.Error("expected empty message")
	}
}

func TestHistoryScreen_ListAndExpand(t *testing.T) {
	mem := memstore.New()
	ctx := context.Background()
	for _, r := range []store.QuizResultData{
		{SessionID: "s1", Course: "basic-english", Lesson: "shopping", Correct: 8, Wrong: 2, SuccessRate: 80, Committed: true},
		{SessionID: "s2", Course: "basic-english", Lesson: "travel", Correct: 3, Wrong: 7, SuccessRate: 30},
	} {
		if err := mem.AppendQuizResult(ctx, r); err != nil {
			t.Fatal(err)
		}
	}

	s := loaded(t, mem)
	if len(s.results) != 2 {
		t.Fatalf("got %d results, want 2", len(s.results))
	}
	view := s.View(100, 30)
	if !strings.Contains(view, "travel") || !strings.Contains(view, "shopping") {
		t.Error("expected both lessons listed")
	}
	if !strings.Contains(view, "(not saved)") {
		t.Error("expected uncommitted result to be flagged")
	}

	s.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	if s.selected != 1 {
		t.Errorf("selected = %d, want 1", s.selected)
	}
	s.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	if s.selected != 1 {
		t.Errorf("selected moved past the end: %d", s.selected)
	}
	s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if !s.expanded[1] {
		t.Error("expected row to expand")
	}
	if !strings.Contains(s.View(100, 30), "course basic-english") {
		t.Error("expected details in expanded row")
	}
}

func TestHistoryScreen_Error(t *testing.T) {
	s := loaded(t, failingRepo{})
	if !strings.Contains(s.View(80, 24), "database is locked") {
		t.Error("expected error message")
	}
}
