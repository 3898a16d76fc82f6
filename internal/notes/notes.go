// Package notes keeps the user's own word list for the running session.
// Notes are not persisted; adding and removing them moves the word counters
// in the learning stats.
package notes

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/abhisek/wordiz/internal/stats"
)

// Language is the language a note's word belongs to.
type Language string

const (
	English Language = "english"
	German  Language = "german"
)

var (
	ErrInvalidNote = errors.New("invalid note")
	ErrNoSuchNote  = errors.New("no such note")
)

// Draft is the editable part of a note.
type Draft struct {
	Word        string   `validate:"required"`
	Translation string   `validate:"required"`
	Language    Language `validate:"oneof=english german"`
	Note        string
}

// Note is a saved entry. Date is the calendar day it was written, the same
// day the study streak counts.
type Note struct {
	Word        string   `json:"word"`
	Translation string   `json:"translation"`
	Language    Language `json:"language"`
	Note        string   `json:"note,omitempty"`
	Date        string   `json:"date"`
}

// StatsCommitter records word additions and removals.
type StatsCommitter interface {
	CommitWordAdded(ctx context.Context) error
	CommitWordRemoved(ctx context.Context) error
}

// Book is an ordered list of notes. Notes are addressed by position.
type Book struct {
	mu       sync.Mutex
	notes    []Note
	stats    StatsCommitter
	now      func() time.Time
	logger   *slog.Logger
	validate *validator.Validate
}

// Option configures a Book.
type Option func(*Book)

// WithClock overrides the clock used to date notes.
func WithClock(now func() time.Time) Option {
	return func(b *Book) { b.now = now }
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(b *Book) { b.logger = l }
}

// New creates an empty Book.
func New(committer StatsCommitter, opts ...Option) *Book {
	b := &Book{
		stats:    committer,
		now:      time.Now,
		logger:   slog.New(slog.DiscardHandler),
		validate: validator.New(),
	}
	for _, o := range opts {
		o(b)
	}
	return b
}

// Add appends a note and counts the word. If the stats commit fails the
// note stays in the book and the error is returned.
func (b *Book) Add(ctx context.Context, d Draft) (Note, error) {
	n, err := b.build(d)
	if err != nil {
		return Note{}, err
	}

	b.mu.Lock()
	b.notes = append(b.notes, n)
	b.mu.Unlock()

	if err := b.stats.CommitWordAdded(ctx); err != nil {
		b.logger.Error("word-added commit failed", "word", n.Word, "error", err)
		return n, fmt.Errorf("count added word: %w", err)
	}
	return n, nil
}

// Update replaces the note at index. Counters are not touched.
func (b *Book) Update(index int, d Draft) (Note, error) {
	n, err := b.build(d)
	if err != nil {
		return Note{}, err
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	if index < 0 || index >= len(b.notes) {
		return Note{}, fmt.Errorf("%w: %d", ErrNoSuchNote, index)
	}
	b.notes[index] = n
	return n, nil
}

// Remove deletes the note at index and uncounts the word.
func (b *Book) Remove(ctx context.Context, index int) error {
	b.mu.Lock()
	if index < 0 || index >= len(b.notes) {
		b.mu.Unlock()
		return fmt.Errorf("%w: %d", ErrNoSuchNote, index)
	}
	removed := b.notes[index]
	b.notes = append(b.notes[:index:index], b.notes[index+1:]...)
	b.mu.Unlock()

	if err := b.stats.CommitWordRemoved(ctx); err != nil {
		b.logger.Error("word-removed commit failed", "word", removed.Word, "error", err)
		return fmt.Errorf("uncount removed word: %w", err)
	}
	return nil
}

// List returns a copy of the notes in insertion order.
func (b *Book) List() []Note {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]Note(nil), b.notes...)
}

// Len returns the number of notes.
func (b *Book) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.notes)
}

func (b *Book) build(d Draft) (Note, error) {
	d.Word = strings.TrimSpace(d.Word)
	d.Translation = strings.TrimSpace(d.Translation)
	if d.Language == "" {
		d.Language = English
	}
	if err := b.validate.Struct(d); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			return Note{}, fmt.Errorf("%w: %s is %s", ErrInvalidNote, strings.ToLower(verrs[0].Field()), verrs[0].Tag())
		}
		return Note{}, fmt.Errorf("%w: %v", ErrInvalidNote, err)
	}
	return Note{
		Word:        d.Word,
		Translation: d.Translation,
		Language:    d.Language,
		Note:        strings.TrimSpace(d.Note),
		Date:        stats.Today(b.now()),
	}, nil
}
