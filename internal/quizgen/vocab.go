package quizgen

import (
	"context"
	"fmt"
	"math/rand/v2"

	"github.com/abhisek/wordiz/internal/content"
)

// PromptFormat is the question wording, filled with the lesson language and
// the term.
const PromptFormat = "What is the %s translation of %q?"

// VocabGenerator builds questions from the lesson's own words: each asks for
// a word's translation, with three other translations from the lesson as
// distractors.
type VocabGenerator struct {
	rnd *rand.Rand
}

// NewVocabGenerator creates a generator drawing from rnd. The same seed
// yields the same quiz.
func NewVocabGenerator(rnd *rand.Rand) *VocabGenerator {
	return &VocabGenerator{rnd: rnd}
}

func (g *VocabGenerator) Generate(_ context.Context, lesson content.Lesson, n int) ([]content.QuizQuestion, error) {
	translations := distinctTranslations(lesson.Words)
	if len(translations) < content.OptionsPerQuestion {
		return nil, fmt.Errorf("%w: lesson %q has %d", ErrNotEnoughWords, lesson.ID, len(translations))
	}

	order := g.rnd.Perm(len(lesson.Words))
	n = min(n, len(order))

	questions := make([]content.QuizQuestion, 0, n)
	seen := make(map[string]bool, n)
	for _, idx := range order {
		if len(questions) == n {
			break
		}
		w := lesson.Words[idx]
		if seen[w.Term] {
			continue
		}
		seen[w.Term] = true

		q := content.QuizQuestion{
			Prompt:        fmt.Sprintf(PromptFormat, lesson.Language, w.Term),
			Options:       g.options(w.Translation, translations),
			CorrectOption: w.Translation,
		}
		if err := content.ValidateQuestion(q); err != nil {
			return nil, err
		}
		questions = append(questions, q)
	}
	return questions, nil
}

// options picks three distractors different from correct and shuffles all four.
func (g *VocabGenerator) options(correct string, pool []string) []string {
	opts := []string{correct}
	for _, i := range g.rnd.Perm(len(pool)) {
		if len(opts) == content.OptionsPerQuestion {
			break
		}
		if pool[i] != correct {
			opts = append(opts, pool[i])
		}
	}
	g.rnd.Shuffle(len(opts), func(i, j int) { opts[i], opts[j] = opts[j], opts[i] })
	return opts
}

func distinctTranslations(words []content.VocabItem) []string {
	seen := make(map[string]bool, len(words))
	var out []string
	for _, w := range words {
		if !seen[w.Translation] {
			seen[w.Translation] = true
			out = append(out, w.Translation)
		}
	}
	return out
}
