package quizgen

import (
	"fmt"
	"strings"

	"github.com/abhisek/wordiz/internal/content"
)

const systemPrompt = `You are a language teacher writing vocabulary quizzes.

Rules:
- Every question asks for the translation of one word from the word list.
- Phrase each prompt as: What is the <language> translation of "<word>"?
- Give exactly 4 distinct options. Exactly one is the correct translation.
- Distractors should be plausible words in the same language, preferably other words from the list.
- The correct_option must be copied exactly from options.
- Do not ask about the same word twice.`

// buildUserMessage lists the lesson words for the prompt.
func buildUserMessage(lesson content.Lesson, n int) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Lesson: %s\n", lesson.Title)
	if lesson.Description != "" {
		fmt.Fprintf(&b, "Description: %s\n", lesson.Description)
	}
	fmt.Fprintf(&b, "Language: %s\n", lesson.Language)
	fmt.Fprintf(&b, "Questions: %d\n", n)

	b.WriteString("\nWord list:\n")
	for _, w := range lesson.Words {
		fmt.Fprintf(&b, "- %s = %s\n", w.Term, w.Translation)
	}
	return b.String()
}
