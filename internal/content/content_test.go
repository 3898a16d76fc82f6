package content

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultCatalogIsValid(t *testing.T) {
	c, err := Default()
	if err != nil {
		t.Fatalf("Default: %v", err)
	}
	if len(c.Courses) != 3 {
		t.Fatalf("got %d courses, want 3", len(c.Courses))
	}

	basic, ok := c.Course("basic-english")
	if !ok {
		t.Fatal("basic-english course missing")
	}
	daily, ok := basic.Lesson("daily-conversation")
	if !ok {
		t.Fatal("daily-conversation lesson missing")
	}
	if len(daily.Words) != 15 {
		t.Errorf("daily words = %d, want 15", len(daily.Words))
	}
	if len(daily.Quiz) != 10 {
		t.Errorf("daily quiz = %d, want 10", len(daily.Quiz))
	}
	if daily.Words[0].Term != "Hello" || daily.Words[0].Translation != "Merhaba" {
		t.Errorf("first word = %+v", daily.Words[0])
	}
	// Unquoted yes/no must stay strings.
	if daily.Words[5].Term != "Yes" || daily.Words[6].Term != "No" {
		t.Errorf("yes/no terms = %q, %q", daily.Words[5].Term, daily.Words[6].Term)
	}
	if basic.WordCount() != 31 {
		t.Errorf("basic word count = %d, want 31", basic.WordCount())
	}
}

func TestValidateQuestion(t *testing.T) {
	tests := []struct {
		name    string
		q       QuizQuestion
		wantErr bool
	}{
		{"valid", QuizQuestion{Prompt: "p", Options: []string{"a", "b", "c", "d"}, CorrectOption: "b"}, false},
		{"three options", QuizQuestion{Prompt: "p", Options: []string{"a", "b", "c"}, CorrectOption: "a"}, true},
		{"five options", QuizQuestion{Prompt: "p", Options: []string{"a", "b", "c", "d", "e"}, CorrectOption: "a"}, true},
		{"duplicate options", QuizQuestion{Prompt: "p", Options: []string{"a", "a", "c", "d"}, CorrectOption: "a"}, true},
		{"empty option", QuizQuestion{Prompt: "p", Options: []string{"a", "", "c", "d"}, CorrectOption: "a"}, true},
		{"correct missing", QuizQuestion{Prompt: "p", Options: []string{"a", "b", "c", "d"}, CorrectOption: "z"}, true},
		{"no prompt", QuizQuestion{Options: []string{"a", "b", "c", "d"}, CorrectOption: "a"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateQuestion(tt.q)
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrInvalidQuestion) {
				t.Errorf("error %v does not wrap ErrInvalidQuestion", err)
			}
		})
	}
}

func TestParseRejectsBrokenCatalog(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"no courses", "courses: []"},
		{"lesson without words", `
courses:
  - id: c
    title: C
    lessons:
      - {id: l, title: L, language: Turkish, words: []}
`},
		{"duplicate lesson", `
courses:
  - id: c
    title: C
    lessons:
      - {id: l, title: L, language: Turkish, words: [{term: a, translation: b}]}
      - {id: l, title: L2, language: Turkish, words: [{term: a, translation: b}]}
`},
		{"correct option missing", `
courses:
  - id: c
    title: C
    lessons:
      - id: l
        title: L
        language: Turkish
        words: [{term: a, translation: b}]
        quiz:
          - {prompt: p, options: [w, x, y, z], correct: q}
`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yaml))
			if !errors.Is(err, ErrInvalidCatalog) {
				t.Errorf("err = %v, want ErrInvalidCatalog", err)
			}
		})
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	data := `
courses:
  - id: german
    title: German Basics
    lessons:
      - id: greetings
        title: Greetings
        language: German
        words:
          - {term: Hello, translation: Hallo}
`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	c, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if c.Courses[0].Lessons[0].Words[0].Translation != "Hallo" {
		t.Errorf("unexpected catalog: %+v", c)
	}

	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}
