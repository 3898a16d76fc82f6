package stats

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/semaphore"

	"github.com/abhisek/wordiz/internal/store"
)

// ErrNegativeCount is returned when a quiz result carries a negative count.
var ErrNegativeCount = errors.New("stats: negative count")

// Store reads and commits UserStats through a key-value store. Commits are
// read-modify-write cycles serialized within the process.
type Store struct {
	kv     store.KV
	now    func() time.Time
	logger *slog.Logger
	sem    *semaphore.Weighted
}

// Option configures a Store.
type Option func(*Store)

// WithClock overrides the clock used to pick the study day.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithLogger sets the logger for commit events.
func WithLogger(l *slog.Logger) Option {
	return func(s *Store) { s.logger = l }
}

// NewStore creates a Store over kv.
func NewStore(kv store.KV, opts ...Option) *Store {
	s := &Store{
		kv:     kv,
		now:    time.Now,
		logger: slog.New(slog.DiscardHandler),
		sem:    semaphore.NewWeighted(1),
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Load returns the stored stats. A missing or unreadable record yields the
// zero value; only storage failures are errors.
func (s *Store) Load(ctx context.Context) (UserStats, error) {
	raw, found, err := s.kv.Get(ctx, store.KeyUserStats)
	if err != nil {
		return UserStats{}, fmt.Errorf("load stats: %w", err)
	}
	if !found {
		return UserStats{}, nil
	}

	var st UserStats
	if err := json.Unmarshal([]byte(raw), &st); err != nil {
		s.logger.Warn("discarding malformed stats record", "error", err)
		return UserStats{}, nil
	}
	st.normalize()
	return st, nil
}

// Save overwrites the stored stats.
func (s *Store) Save(ctx context.Context, st UserStats) error {
	b, err := json.Marshal(st)
	if err != nil {
		return fmt.Errorf("encode stats: %w", err)
	}
	if err := s.kv.Set(ctx, store.KeyUserStats, string(b)); err != nil {
		return fmt.Errorf("save stats: %w", err)
	}
	return nil
}

// CommitQuizResult folds a finished quiz into the stats: correct answers
// accumulate, learned words never fall below correct answers, and the streak
// advances for today. wrong is accepted for symmetry with the quiz result but
// does not affect any counter.
func (s *Store) CommitQuizResult(ctx context.Context, correct, wrong int) error {
	if correct < 0 || wrong < 0 {
		return fmt.Errorf("%w: correct=%d wrong=%d", ErrNegativeCount, correct, wrong)
	}

	st, err := s.update(ctx, func(st *UserStats) {
		st.CorrectAnswers += correct
		st.LearnedWords = max(st.LearnedWords, st.CorrectAnswers)
		st.Streak, st.LastStudyDate = NextStreak(*st, Today(s.now()))
	})
	if err != nil {
		return err
	}

	s.logger.Info("quiz result committed",
		"correct", correct,
		"wrong", wrong,
		"correct_answers", st.CorrectAnswers,
		"streak", st.Streak,
	)
	return nil
}

// CommitWordAdded counts a new note word as both total and learned.
func (s *Store) CommitWordAdded(ctx context.Context) error {
	_, err := s.update(ctx, func(st *UserStats) {
		st.TotalWords++
		st.LearnedWords++
	})
	return err
}

// CommitWordRemoved reverses CommitWordAdded, never going below zero.
func (s *Store) CommitWordRemoved(ctx context.Context) error {
	_, err := s.update(ctx, func(st *UserStats) {
		st.TotalWords = max(st.TotalWords-1, 0)
		st.LearnedWords = max(st.LearnedWords-1, 0)
	})
	return err
}

// RecordStudy advances the streak for today without touching any counter.
func (s *Store) RecordStudy(ctx context.Context) error {
	_, err := s.update(ctx, func(st *UserStats) {
		st.Streak, st.LastStudyDate = NextStreak(*st, Today(s.now()))
	})
	return err
}

// Reset removes the stats record.
func (s *Store) Reset(ctx context.Context) error {
	if err := s.sem.Acquire(ctx, 1); err != nil {
		return fmt.Errorf("acquire stats lock: %w", err)
	}
	defer s.sem.Release(1)

	if err := s.kv.Remove(ctx, store.KeyUserStats); err != nil {
		return fmt.Errorf("reset stats: %w", err)
	}
	s.logger.Info("stats reset")
	return nil
}

func (s *Store) update(ctx context.Context, fn func(*UserStats)) (UserStats, error) {
	if err := s.sem.Acquire(ctx, 1); err != nil {
		return UserStats{}, fmt.Errorf("acquire stats lock: %w", err)
	}
	defer s.sem.Release(1)

	st, err := s.Load(ctx)
	if err != nil {
		return UserStats{}, err
	}
	fn(&st)
	if err := s.Save(ctx, st); err != nil {
		s.logger.Error("stats commit failed", "error", err)
		return UserStats{}, err
	}
	return st, nil
}
