package home

import (
	"context"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/wordiz/internal/auth"
	"github.com/abhisek/wordiz/internal/content"
	"github.com/abhisek/wordiz/internal/notes"
	"github.com/abhisek/wordiz/internal/profile"
	"github.com/abhisek/wordiz/internal/router"
	"github.com/abhisek/wordiz/internal/screen"
	"github.com/abhisek/wordiz/internal/stats"
	"github.com/abhisek/wordiz/internal/store/memstore"
)

func newTestDeps(t *testing.T) *screen.Deps {
	t.Helper()
	catalog, err := content.Default()
	if err != nil {
		t.Fatal(err)
	}
	mem := memstore.New()
	st := stats.NewStore(mem.KV())
	return &screen.Deps{
		Catalog:   catalog,
		Stats:     st,
		Profile:   profile.NewAggregator(st, profile.WithHistory(mem.EventRepo())),
		Notes:     notes.New(st),
		EventRepo: mem.EventRepo(),
		User:      auth.Profile{Name: "Ada", Email: "ada@example.com"},
	}
}

func TestHomeScreen_Title(t *testing.T) {
	h := New(newTestDeps(t))
	if h.Title() != "Home" {
		t.Errorf("Title = %q, want %q", h.Title(), "Home")
	}
}

func TestHomeScreen_LoadsSummary(t *testing.T) {
	deps := newTestDeps(t)
	if err := deps.Stats.CommitQuizResult(context.Background(), 4, 1); err != nil {
		t.Fatal(err)
	}
	h := New(deps)
	cmd := h.Init()
	if cmd == nil {
		t.Fatal("expected Init to load the dashboard")
	}
	h.Update(cmd())
	if !h.loaded {
		t.Fatal("expected summary to be loaded")
	}
	if h.summary.Stats.CorrectAnswers != 4 {
		t.Errorf("CorrectAnswers = %d, want 4", h.summary.Stats.CorrectAnswers)
	}
	if !strings.Contains(h.View(120, 40), "Ada") {
		t.Error("expected greeting with the user's name")
	}
}

func TestHomeScreen_MenuNavigation(t *testing.T) {
	tests := []struct {
		downs int
		title string
	}{
		{0, "Courses"},
		{1, "Word Notes"},
		{2, "Profile"},
		{3, "History"},
	}
	for _, tt := range tests {
		t.Run(tt.title, func(t *testing.T) {
			h := New(newTestDeps(t))
			for range tt.downs {
				h.Update(tea.KeyPressMsg{Code: tea.KeyDown})
			}
			_, cmd := h.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
			if cmd == nil {
				t.Fatal("expected command")
			}
			msg, ok := cmd().(router.PushScreenMsg)
			if !ok {
				t.Fatal("expected PushScreenMsg")
			}
			if msg.Screen.Title() != tt.title {
				t.Errorf("pushed %q, want %q", msg.Screen.Title(), tt.title)
			}
		})
	}
}

func TestHomeScreen_HistoryDisabledWithoutRepo(t *testing.T) {
	deps := newTestDeps(t)
	deps.EventRepo = nil
	h := New(deps)
	for range 3 {
		h.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	}
	if h.menu.Selected != 4 {
		t.Errorf("Selected = %d, want EXIT (4) skipping disabled history", h.menu.Selected)
	}
}

func TestHomeScreen_Exit(t *testing.T) {
	h := New(newTestDeps(t))
	for range 4 {
		h.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	}
	_, cmd := h.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("expected QuitMsg")
	}
}
