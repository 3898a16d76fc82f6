// Package quizgen builds multiple-choice quizzes for lessons that do not
// ship a hand-written one.
package quizgen

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/abhisek/wordiz/internal/content"
)

// DefaultQuestions is the quiz length used when a lesson has no quiz.
const DefaultQuestions = 10

// ErrNotEnoughWords is returned when a lesson has too few distinct
// translations to build four options.
var ErrNotEnoughWords = errors.New("lesson needs at least 4 distinct translations")

// Generator produces quiz questions for a lesson.
type Generator interface {
	// Generate returns up to n validated questions.
	Generate(ctx context.Context, lesson content.Lesson, n int) ([]content.QuizQuestion, error)
}

// QuestionsFor returns the lesson's own quiz when it has one, and generated
// questions otherwise.
func QuestionsFor(ctx context.Context, lesson content.Lesson, gen Generator) ([]content.QuizQuestion, error) {
	if len(lesson.Quiz) > 0 {
		return lesson.Quiz, nil
	}
	if gen == nil {
		return nil, fmt.Errorf("lesson %q has no quiz and no generator is configured", lesson.ID)
	}
	return gen.Generate(ctx, lesson, DefaultQuestions)
}

// fallbackGenerator tries primary and falls back to secondary on error.
type fallbackGenerator struct {
	primary   Generator
	secondary Generator
	logger    *slog.Logger
}

// WithFallback returns a Generator that uses secondary whenever primary
// fails. A nil primary yields secondary unchanged.
func WithFallback(primary, secondary Generator, logger *slog.Logger) Generator {
	if primary == nil {
		return secondary
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &fallbackGenerator{primary: primary, secondary: secondary, logger: logger}
}

func (g *fallbackGenerator) Generate(ctx context.Context, lesson content.Lesson, n int) ([]content.QuizQuestion, error) {
	qs, err := g.primary.Generate(ctx, lesson, n)
	if err == nil {
		return qs, nil
	}
	g.logger.Warn("quiz generation failed, using word list", "lesson", lesson.ID, "error", err)
	return g.secondary.Generate(ctx, lesson, n)
}
