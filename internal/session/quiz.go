package session

import (
	"context"
	"fmt"
	"slices"

	"github.com/abhisek/wordiz/internal/content"
)

// QuizPhase is the phase of a quiz session.
type QuizPhase int

const (
	QuizActive   QuizPhase = iota // Waiting for an answer
	QuizAnswered                  // Answer chosen, marking shown
	QuizFinished                  // All questions answered
)

func (p QuizPhase) String() string {
	switch p {
	case QuizActive:
		return "active"
	case QuizAnswered:
		return "answered"
	case QuizFinished:
		return "finished"
	default:
		return fmt.Sprintf("QuizPhase(%d)", int(p))
	}
}

// QuizState is the progress of a quiz session.
type QuizState struct {
	Phase QuizPhase

	// Index is the current question.
	Index int

	// Selected is the chosen option. Set only while answered.
	Selected string

	Correct int
	Wrong   int
}

// CommitStatus tracks the stats commit of a finished quiz.
type CommitStatus int

const (
	CommitPending   CommitStatus = iota // Quiz not finished yet
	CommitSucceeded                     // Result folded into stats
	CommitFailed                        // Commit failed; RetryCommit may be called
)

// OptionMark is how an option is shown once the question is answered.
type OptionMark int

const (
	MarkNone    OptionMark = iota // Not highlighted
	MarkCorrect                   // The correct option
	MarkWrong                     // The chosen option, when wrong
)

// ResultCommitter folds a finished quiz into persistent stats.
type ResultCommitter interface {
	CommitQuizResult(ctx context.Context, correct, wrong int) error
}

// Quiz asks a fixed list of questions in order and commits the tally once,
// when the last question is passed.
type Quiz struct {
	questions []content.QuizQuestion
	committer ResultCommitter

	state  QuizState
	commit CommitStatus
}

// NewQuiz validates the questions and starts on the first one.
func NewQuiz(questions []content.QuizQuestion, committer ResultCommitter) (*Quiz, error) {
	if len(questions) == 0 {
		return nil, ErrEmptySequence
	}
	if committer == nil {
		return nil, fmt.Errorf("new quiz: nil result committer")
	}
	if err := content.ValidateQuestions(questions); err != nil {
		return nil, err
	}
	return &Quiz{
		questions: append([]content.QuizQuestion(nil), questions...),
		committer: committer,
	}, nil
}

// State returns the current state.
func (q *Quiz) State() QuizState {
	return q.state
}

// Len returns the number of questions.
func (q *Quiz) Len() int {
	return len(q.questions)
}

// CommitStatus returns the state of the stats commit.
func (q *Quiz) CommitStatus() CommitStatus {
	return q.commit
}

// Question returns the current question, or false once finished.
func (q *Quiz) Question() (content.QuizQuestion, bool) {
	if q.state.Phase == QuizFinished {
		return content.QuizQuestion{}, false
	}
	return q.questions[q.state.Index], true
}

// SelectAnswer records an answer to the current question and reports
// whether it was correct.
func (q *Quiz) SelectAnswer(option string) (bool, error) {
	if q.state.Phase != QuizActive {
		return false, fmt.Errorf("%w: select answer while %s", ErrInvalidTransition, q.state.Phase)
	}
	cur := q.questions[q.state.Index]
	if !slices.Contains(cur.Options, option) {
		return false, fmt.Errorf("%w: %q", ErrInvalidOption, option)
	}

	correct := option == cur.CorrectOption
	if correct {
		q.state.Correct++
	} else {
		q.state.Wrong++
	}
	q.state.Selected = option
	q.state.Phase = QuizAnswered
	return correct, nil
}

// Mark returns how option should be highlighted for the current question.
func (q *Quiz) Mark(option string) OptionMark {
	if q.state.Phase != QuizAnswered {
		return MarkNone
	}
	cur := q.questions[q.state.Index]
	switch {
	case option == cur.CorrectOption:
		return MarkCorrect
	case option == q.state.Selected:
		return MarkWrong
	default:
		return MarkNone
	}
}

// Next moves past an answered question. Passing the last question finishes
// the quiz and commits the result; a failed commit is returned as a
// *CommitError while the quiz stays finished.
func (q *Quiz) Next(ctx context.Context) error {
	if q.state.Phase != QuizAnswered {
		return fmt.Errorf("%w: next while %s", ErrInvalidTransition, q.state.Phase)
	}
	if q.state.Index+1 < len(q.questions) {
		q.state.Index++
		q.state.Selected = ""
		q.state.Phase = QuizActive
		return nil
	}

	q.state.Selected = ""
	q.state.Phase = QuizFinished
	return q.doCommit(ctx)
}

// RetryCommit re-attempts a failed commit of a finished quiz.
func (q *Quiz) RetryCommit(ctx context.Context) error {
	if q.state.Phase != QuizFinished || q.commit != CommitFailed {
		return fmt.Errorf("%w: retry commit while %s", ErrInvalidTransition, q.state.Phase)
	}
	return q.doCommit(ctx)
}

func (q *Quiz) doCommit(ctx context.Context) error {
	if err := q.committer.CommitQuizResult(ctx, q.state.Correct, q.state.Wrong); err != nil {
		q.commit = CommitFailed
		return &CommitError{Correct: q.state.Correct, Wrong: q.state.Wrong, Err: err}
	}
	q.commit = CommitSucceeded
	return nil
}

// Restart begins the same questions again. A result already committed stays
// committed.
func (q *Quiz) Restart() {
	q.state = QuizState{Phase: QuizActive}
	q.commit = CommitPending
}

// SuccessRate returns the percentage of correct answers rounded half up.
// It is only available once the quiz is finished.
func (q *Quiz) SuccessRate() (int, bool) {
	if q.state.Phase != QuizFinished {
		return 0, false
	}
	return SuccessRate(q.state.Correct, len(q.questions)), true
}

// SuccessRate returns round(correct/total*100) with halves rounded up.
func SuccessRate(correct, total int) int {
	if total <= 0 {
		return 0
	}
	return (200*correct + total) / (2 * total)
}
