// Package quiz is Quiz Mode: multiple-choice questions for a lesson, with the
// result committed to stats when the last question is passed.
package quiz

import (
	"context"
	"errors"
	"fmt"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/google/uuid"

	"github.com/abhisek/wordiz/internal/content"
	"github.com/abhisek/wordiz/internal/quizgen"
	"github.com/abhisek/wordiz/internal/router"
	"github.com/abhisek/wordiz/internal/screen"
	"github.com/abhisek/wordiz/internal/screens/summary"
	"github.com/abhisek/wordiz/internal/session"
	"github.com/abhisek/wordiz/internal/store"
	"github.com/abhisek/wordiz/internal/ui/components"
	"github.com/abhisek/wordiz/internal/ui/layout"
	"github.com/abhisek/wordiz/internal/ui/theme"
)

// questionsLoadedMsg is sent when the lesson's questions are ready.
type questionsLoadedMsg struct {
	Questions []content.QuizQuestion
	Err       error
}

// QuizScreen drives a quiz session.
type QuizScreen struct {
	deps      *screen.Deps
	course    *content.Course
	lesson    *content.Lesson
	sessionID string

	quiz   *session.Quiz
	choice components.MultiChoice
	errMsg string
}

var _ screen.Screen = (*QuizScreen)(nil)
var _ screen.KeyHintProvider = (*QuizScreen)(nil)

// New creates a QuizScreen. Questions are loaded by Init.
func New(deps *screen.Deps, course *content.Course, l *content.Lesson) *QuizScreen {
	return &QuizScreen{
		deps:      deps,
		course:    course,
		lesson:    l,
		sessionID: uuid.NewString(),
	}
}

func (s *QuizScreen) Init() tea.Cmd {
	if s.quiz != nil {
		return nil
	}
	lesson := *s.lesson
	gen := s.deps.Generator
	return func() tea.Msg {
		qs, err := quizgen.QuestionsFor(context.Background(), lesson, gen)
		return questionsLoadedMsg{Questions: qs, Err: err}
	}
}

func (s *QuizScreen) Title() string { return "Quiz · " + s.lesson.Title }

func (s *QuizScreen) KeyHints() []layout.KeyHint {
	if s.quiz != nil && s.quiz.State().Phase == session.QuizAnswered {
		return []layout.KeyHint{
			{Key: "Enter", Description: "Continue"},
			{Key: "Esc", Description: "Quit quiz"},
		}
	}
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Choose"},
		{Key: "A-D", Description: "Jump"},
		{Key: "Enter", Description: "Answer"},
		{Key: "Esc", Description: "Quit quiz"},
	}
}

func (s *QuizScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case questionsLoadedMsg:
		return s.handleLoaded(msg)
	case tea.KeyMsg:
		if s.quiz == nil {
			return s, nil
		}
		if msg.String() == "enter" {
			return s.handleEnter()
		}
		var cmd tea.Cmd
		s.choice, cmd = s.choice.Update(msg)
		return s, cmd
	}
	return s, nil
}

func (s *QuizScreen) handleLoaded(msg questionsLoadedMsg) (screen.Screen, tea.Cmd) {
	if msg.Err != nil {
		s.deps.Log().Warn("load quiz questions", "lesson", s.lesson.ID, "error", msg.Err)
		s.errMsg = msg.Err.Error()
		return s, nil
	}
	q, err := session.NewQuiz(msg.Questions, s.deps.Stats)
	if err != nil {
		s.deps.Log().Warn("start quiz", "lesson", s.lesson.ID, "error", err)
		s.errMsg = err.Error()
		return s, nil
	}
	s.quiz = q
	s.showQuestion()
	return s, nil
}

// Restart begins the same quiz again. Used by the result screen.
func (s *QuizScreen) Restart() {
	if s.quiz == nil {
		return
	}
	s.quiz.Restart()
	s.sessionID = uuid.NewString()
	s.showQuestion()
}

func (s *QuizScreen) showQuestion() {
	q, ok := s.quiz.Question()
	if !ok {
		return
	}
	s.choice = components.NewMultiChoice(q.Prompt, q.Options)
}

func (s *QuizScreen) handleEnter() (screen.Screen, tea.Cmd) {
	switch s.quiz.State().Phase {
	case session.QuizActive:
		if _, err := s.quiz.SelectAnswer(s.choice.Chosen()); err != nil {
			s.deps.Log().Warn("select answer", "lesson", s.lesson.ID, "error", err)
			return s, nil
		}
		q, _ := s.quiz.Question()
		marks := make([]components.ChoiceMark, len(q.Options))
		for i, opt := range q.Options {
			switch s.quiz.Mark(opt) {
			case session.MarkCorrect:
				marks[i] = components.ChoiceCorrect
			case session.MarkWrong:
				marks[i] = components.ChoiceWrong
			}
		}
		s.choice = s.choice.Lock(marks)
		return s, nil

	case session.QuizAnswered:
		err := s.quiz.Next(context.Background())
		if s.quiz.State().Phase != session.QuizFinished {
			s.showQuestion()
			return s, nil
		}
		return s.finish(err)
	}
	return s, nil
}

// finish records the result and hands over to the result screen.
func (s *QuizScreen) finish(commitErr error) (screen.Screen, tea.Cmd) {
	var ce *session.CommitError
	if commitErr != nil && !errors.As(commitErr, &ce) {
		s.deps.Log().Warn("finish quiz", "lesson", s.lesson.ID, "error", commitErr)
	}
	if ce != nil {
		s.deps.Log().Error("quiz result not saved", "lesson", s.lesson.ID, "error", ce)
	}
	s.recordResult()

	result := summary.New(summary.Input{
		Quiz:    s.quiz,
		Course:  s.course.Title,
		Lesson:  s.lesson.Title,
		Logger:  s.deps.Log(),
		Restart: func() screen.Screen { s.Restart(); return s },
	})
	return s, tea.Batch(
		screen.StatsChanged,
		func() tea.Msg { return router.ReplaceScreenMsg{Screen: result} },
	)
}

// recordResult appends the current outcome to the quiz history.
func (s *QuizScreen) recordResult() {
	if s.deps.EventRepo == nil {
		return
	}
	st := s.quiz.State()
	rate, _ := s.quiz.SuccessRate()
	err := s.deps.EventRepo.AppendQuizResult(context.Background(), store.QuizResultData{
		SessionID:   s.sessionID,
		Course:      s.course.ID,
		Lesson:      s.lesson.ID,
		Correct:     st.Correct,
		Wrong:       st.Wrong,
		SuccessRate: rate,
		Committed:   s.quiz.CommitStatus() == session.CommitSucceeded,
	})
	if err != nil {
		s.deps.Log().Warn("record quiz result", "lesson", s.lesson.ID, "error", err)
	}
}

func (s *QuizScreen) View(width, height int) string {
	if s.errMsg != "" {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.Error).
			Render(fmt.Sprintf("\n\nCannot start the quiz: %s", s.errMsg))
	}
	if s.quiz == nil {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).
			Render("\n\n  Preparing questions...")
	}

	cw := components.ContentWidth(width)
	st := s.quiz.State()
	progress := components.NewPosition("Question", st.Index+1, s.quiz.Len(), cw)
	score := fmt.Sprintf("%s  %s",
		theme.Correct.Render(fmt.Sprintf("✓ %d", st.Correct)),
		theme.Incorrect.Render(fmt.Sprintf("✗ %d", st.Wrong)))

	parts := []string{progress.View(), score, "", components.Card(s.choice.View(), cw)}
	if st.Phase == session.QuizAnswered {
		q, _ := s.quiz.Question()
		feedback := theme.Correct.Render("Correct!")
		if st.Selected != q.CorrectOption {
			feedback = theme.Incorrect.Render("Not quite. ") +
				theme.Body.Render("The answer is "+q.CorrectOption)
		}
		parts = append(parts, "", feedback, theme.Hint.Render("Press enter to continue"))
	}
	body := lipgloss.JoinVertical(lipgloss.Center, parts...)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, body)
}
