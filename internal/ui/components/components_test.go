package components

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"
)

func key(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func TestMultiChoiceNavigation(t *testing.T) {
	m := NewMultiChoice("Pick", []string{"w", "x", "y", "z"})

	m, _ = m.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	m, _ = m.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	if m.Chosen() != "y" {
		t.Errorf("expected cursor on y, got %q", m.Chosen())
	}

	m, _ = m.Update(tea.KeyPressMsg{Code: tea.KeyUp})
	if m.Chosen() != "x" {
		t.Errorf("expected cursor on x, got %q", m.Chosen())
	}

	m, _ = m.Update(key('d'))
	if m.Chosen() != "z" {
		t.Errorf("expected d to jump to z, got %q", m.Chosen())
	}
	m, _ = m.Update(key('1'))
	if m.Chosen() != "w" {
		t.Errorf("expected 1 to jump to w, got %q", m.Chosen())
	}

	m, _ = m.Update(key('e'))
	if m.Chosen() != "w" {
		t.Errorf("expected out-of-range letter to be ignored, got %q", m.Chosen())
	}

	m, _ = m.Update(tea.KeyPressMsg{Code: tea.KeyUp})
	if m.Cursor != 0 {
		t.Errorf("expected cursor to stay at top, got %d", m.Cursor)
	}
}

func TestMultiChoiceLock(t *testing.T) {
	m := NewMultiChoice("Pick", []string{"w", "x", "y", "z"})
	m = m.Lock([]ChoiceMark{ChoiceCorrect, ChoiceWrong, ChoicePlain, ChoicePlain})

	if !m.Locked() {
		t.Fatal("expected locked")
	}
	m, _ = m.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	if m.Cursor != 0 {
		t.Errorf("expected locked cursor to stay, got %d", m.Cursor)
	}

	view := m.View()
	if !strings.Contains(view, "✓") || !strings.Contains(view, "✗") {
		t.Errorf("expected marks in view, got %q", view)
	}
}

func TestFlashCardHidesTranslation(t *testing.T) {
	hidden := FlashCard("Hello", "Merhaba", "Hello, how are you?", false, 40)
	if strings.Contains(hidden, "Merhaba") {
		t.Error("translation should be hidden before reveal")
	}
	shown := FlashCard("Hello", "Merhaba", "Hello, how are you?", true, 40)
	if !strings.Contains(shown, "Merhaba") {
		t.Error("translation should be shown after reveal")
	}
}

func TestPosition(t *testing.T) {
	p := NewPosition("Word", 3, 10, 40)
	if p.Label() != "Word 3 of 10" {
		t.Errorf("label = %q", p.Label())
	}
	if !strings.Contains(p.View(), "Word 3 of 10") {
		t.Errorf("view misses label: %q", p.View())
	}

	tests := []struct {
		current, total, width, want int
	}{
		{1, 10, 20, 2},
		{10, 10, 20, 20},
		{0, 10, 20, 0},
		{12, 10, 20, 20},
		{1, 0, 20, 0},
		{1, 3, 10, 3},
	}
	for _, tt := range tests {
		got := NewPosition("Question", tt.current, tt.total, 0).filled(tt.width)
		if got != tt.want {
			t.Errorf("%d of %d over %d cells: filled %d, want %d", tt.current, tt.total, tt.width, got, tt.want)
		}
	}
}
