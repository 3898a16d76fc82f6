package content

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ErrInvalidQuestion is returned for a question that does not have four
// distinct options including the correct one.
var ErrInvalidQuestion = errors.New("invalid quiz question")

// ErrInvalidCatalog wraps every structural problem found in a catalog.
var ErrInvalidCatalog = errors.New("invalid catalog")

var validate = validator.New(validator.WithRequiredStructEnabled())

// ValidateQuestion checks a single question.
func ValidateQuestion(q QuizQuestion) error {
	if err := validate.Struct(q); err != nil {
		return fmt.Errorf("%w %q: %s", ErrInvalidQuestion, q.Prompt, describe(err))
	}
	if !slices.Contains(q.Options, q.CorrectOption) {
		return fmt.Errorf("%w %q: correct option %q is not among the options", ErrInvalidQuestion, q.Prompt, q.CorrectOption)
	}
	return nil
}

// ValidateQuestions checks every question of a quiz.
func ValidateQuestions(qs []QuizQuestion) error {
	for i, q := range qs {
		if err := ValidateQuestion(q); err != nil {
			return fmt.Errorf("question %d: %w", i+1, err)
		}
	}
	return nil
}

// ValidateCatalog performs all structural checks on the catalog. Returns a
// combined error describing all problems found, or nil if valid.
func ValidateCatalog(c *Catalog) error {
	var errs []string

	if err := validate.Struct(c); err != nil {
		errs = append(errs, describe(err))
	}

	courseIDs := make(map[string]bool, len(c.Courses))
	for _, course := range c.Courses {
		if courseIDs[course.ID] {
			errs = append(errs, fmt.Sprintf("duplicate course ID: %q", course.ID))
		}
		courseIDs[course.ID] = true

		lessonIDs := make(map[string]bool, len(course.Lessons))
		for _, l := range course.Lessons {
			if lessonIDs[l.ID] {
				errs = append(errs, fmt.Sprintf("course %q: duplicate lesson ID: %q", course.ID, l.ID))
			}
			lessonIDs[l.ID] = true

			for i, q := range l.Quiz {
				if !slices.Contains(q.Options, q.CorrectOption) {
					errs = append(errs, fmt.Sprintf("lesson %q question %d: correct option %q is not among the options", l.ID, i+1, q.CorrectOption))
				}
			}
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("%w:\n  %s", ErrInvalidCatalog, strings.Join(errs, "\n  "))
	}
	return nil
}

// describe flattens validator errors into one line per failed field.
func describe(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}
	parts := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		if fe.Param() != "" {
			parts = append(parts, fmt.Sprintf("%s failed %s=%s", fe.Namespace(), fe.Tag(), fe.Param()))
		} else {
			parts = append(parts, fmt.Sprintf("%s failed %s", fe.Namespace(), fe.Tag()))
		}
	}
	return strings.Join(parts, "; ")
}
