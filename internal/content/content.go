// Package content holds the course catalog: courses, their lessons, the
// vocabulary items studied in Learning Mode and the questions asked in
// Quiz Mode.
package content

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// OptionsPerQuestion is the fixed number of choices in a quiz question.
const OptionsPerQuestion = 4

// VocabItem is one word to learn. Its identity is its position in the lesson.
type VocabItem struct {
	Term        string `yaml:"term" json:"term" validate:"required"`
	Translation string `yaml:"translation" json:"translation" validate:"required"`
	Example     string `yaml:"example,omitempty" json:"example,omitempty"`
}

// QuizQuestion is a multiple-choice question with exactly one correct option.
type QuizQuestion struct {
	Prompt        string   `yaml:"prompt" json:"prompt" validate:"required"`
	Options       []string `yaml:"options" json:"options" validate:"len=4,unique,dive,required"`
	CorrectOption string   `yaml:"correct" json:"correct_option" validate:"required"`
}

// Lesson groups the words of one topic. Quiz may be empty, in which case
// questions are generated from Words.
type Lesson struct {
	ID          string         `yaml:"id" validate:"required"`
	Title       string         `yaml:"title" validate:"required"`
	Description string         `yaml:"description,omitempty"`
	Language    string         `yaml:"language" validate:"required"`
	Words       []VocabItem    `yaml:"words" validate:"required,min=1,dive"`
	Quiz        []QuizQuestion `yaml:"quiz,omitempty" validate:"dive"`
}

// Course is an ordered list of lessons.
type Course struct {
	ID      string   `yaml:"id" validate:"required"`
	Title   string   `yaml:"title" validate:"required"`
	Level   string   `yaml:"level,omitempty"`
	Lessons []Lesson `yaml:"lessons" validate:"required,min=1,dive"`
}

// Catalog is the full content tree.
type Catalog struct {
	Courses []Course `yaml:"courses" validate:"required,min=1,dive"`
}

// Course returns the course with the given ID.
func (c *Catalog) Course(id string) (*Course, bool) {
	for i := range c.Courses {
		if c.Courses[i].ID == id {
			return &c.Courses[i], true
		}
	}
	return nil, false
}

// Lesson returns the lesson with the given ID.
func (c *Course) Lesson(id string) (*Lesson, bool) {
	for i := range c.Lessons {
		if c.Lessons[i].ID == id {
			return &c.Lessons[i], true
		}
	}
	return nil, false
}

// WordCount returns the number of words across all lessons.
func (c *Course) WordCount() int {
	n := 0
	for _, l := range c.Lessons {
		n += len(l.Words)
	}
	return n
}

//go:embed catalog.yaml
var defaultCatalog []byte

// Default returns the built-in catalog.
func Default() (*Catalog, error) {
	return Parse(defaultCatalog)
}

// LoadFile reads and validates a catalog from a YAML file.
func LoadFile(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	return Parse(data)
}

// Load returns the catalog at path, or the built-in one when path is empty.
func Load(path string) (*Catalog, error) {
	if path == "" {
		return Default()
	}
	return LoadFile(path)
}

// Parse decodes and validates a YAML catalog.
func Parse(data []byte) (*Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}
	if err := ValidateCatalog(&c); err != nil {
		return nil, err
	}
	return &c, nil
}
