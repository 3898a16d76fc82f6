// Package session implements the two study flows: a learning session that
// walks a list of words as flashcards, and a quiz session that asks
// multiple-choice questions and commits the result once at the end.
package session

import (
	"fmt"

	"github.com/abhisek/wordiz/internal/content"
)

// LearningPhase is the phase of a learning session.
type LearningPhase int

const (
	LearningActive    LearningPhase = iota // Showing a card
	LearningCompleted                      // Past the last card
)

func (p LearningPhase) String() string {
	switch p {
	case LearningActive:
		return "active"
	case LearningCompleted:
		return "completed"
	default:
		return fmt.Sprintf("LearningPhase(%d)", int(p))
	}
}

// LearningState is the position within a learning session.
type LearningState struct {
	Phase LearningPhase

	// Index is the current card. Meaningful only while active.
	Index int

	// Revealed is true once the translation of the current card is shown.
	Revealed bool
}

// Card is the view of the current item. Translation and Example are empty
// until the card is revealed.
type Card struct {
	Index       int
	Total       int
	Term        string
	Translation string
	Example     string
	Revealed    bool
}

// Learning walks an ordered list of vocabulary items. It never touches stats.
type Learning struct {
	items []content.VocabItem
	state LearningState
}

// NewLearning starts a learning session on the first item.
func NewLearning(items []content.VocabItem) (*Learning, error) {
	if len(items) == 0 {
		return nil, ErrEmptySequence
	}
	return &Learning{items: append([]content.VocabItem(nil), items...)}, nil
}

// State returns the current state.
func (l *Learning) State() LearningState {
	return l.state
}

// Len returns the number of items.
func (l *Learning) Len() int {
	return len(l.items)
}

// Completed reports whether the last card has been passed.
func (l *Learning) Completed() bool {
	return l.state.Phase == LearningCompleted
}

// Card returns the current card, or false once completed.
func (l *Learning) Card() (Card, bool) {
	if l.Completed() {
		return Card{}, false
	}
	item := l.items[l.state.Index]
	c := Card{
		Index:    l.state.Index,
		Total:    len(l.items),
		Term:     item.Term,
		Revealed: l.state.Revealed,
	}
	if l.state.Revealed {
		c.Translation = item.Translation
		c.Example = item.Example
	}
	return c, true
}

// Reveal shows the translation of the current card.
func (l *Learning) Reveal() error {
	if l.state.Phase != LearningActive || l.state.Revealed {
		return fmt.Errorf("%w: reveal while %s (revealed=%v)", ErrInvalidTransition, l.state.Phase, l.state.Revealed)
	}
	l.state.Revealed = true
	return nil
}

// Advance moves past a revealed card, completing the session after the last one.
func (l *Learning) Advance() error {
	if l.state.Phase != LearningActive || !l.state.Revealed {
		return fmt.Errorf("%w: advance while %s (revealed=%v)", ErrInvalidTransition, l.state.Phase, l.state.Revealed)
	}
	if l.state.Index+1 < len(l.items) {
		l.state = LearningState{Phase: LearningActive, Index: l.state.Index + 1}
		return nil
	}
	l.state = LearningState{Phase: LearningCompleted, Index: l.state.Index}
	return nil
}

// Restart returns to the first card, hidden.
func (l *Learning) Restart() {
	l.state = LearningState{Phase: LearningActive}
}
