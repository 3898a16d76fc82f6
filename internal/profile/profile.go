// Package profile assembles what the profile screen and the stats command
// show. It only reads.
package profile

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/abhisek/wordiz/internal/auth"
	"github.com/abhisek/wordiz/internal/session"
	"github.com/abhisek/wordiz/internal/stats"
	"github.com/abhisek/wordiz/internal/store"
)

// RecentLimit is how many quiz results the summary includes.
const RecentLimit = 5

// StatsLoader reads the persisted stats.
type StatsLoader interface {
	Load(ctx context.Context) (stats.UserStats, error)
}

// QuizHistory lists recorded quiz results, newest first.
type QuizHistory interface {
	RecentQuizResults(ctx context.Context, opts store.QueryOpts) ([]store.QuizResult, error)
}

// Summary is the derived view of a user's progress.
type Summary struct {
	Profile  auth.Profile
	SignedIn bool

	Stats stats.UserStats

	// CurrentStreak is Stats.Streak while the streak is alive and 0 once a
	// day has been missed.
	CurrentStreak int
	StudiedToday  bool

	Recent []store.QuizResult

	// AverageSuccessRate is the mean success rate of Recent, rounded half up.
	// It is zero when there is no history.
	AverageSuccessRate int
}

// Aggregator builds summaries.
type Aggregator struct {
	stats   StatsLoader
	history QuizHistory
	now     func() time.Time
	logger  *slog.Logger
}

// Option configures an Aggregator.
type Option func(*Aggregator)

// WithHistory adds recent quiz results to summaries.
func WithHistory(h QuizHistory) Option {
	return func(a *Aggregator) { a.history = h }
}

// WithClock overrides the clock used to decide if the streak is alive.
func WithClock(now func() time.Time) Option {
	return func(a *Aggregator) { a.now = now }
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(a *Aggregator) { a.logger = l }
}

// NewAggregator creates an Aggregator over a stats loader.
func NewAggregator(loader StatsLoader, opts ...Option) *Aggregator {
	a := &Aggregator{
		stats:  loader,
		now:    time.Now,
		logger: slog.New(slog.DiscardHandler),
	}
	for _, o := range opts {
		o(a)
	}
	return a
}

// Summary loads stats for the given profile. signedIn is false for a guest.
// A history failure is logged and leaves Recent empty; a stats failure is
// returned.
func (a *Aggregator) Summary(ctx context.Context, p auth.Profile, signedIn bool) (Summary, error) {
	st, err := a.stats.Load(ctx)
	if err != nil {
		return Summary{}, fmt.Errorf("profile summary: %w", err)
	}

	today := stats.Today(a.now())
	sum := Summary{
		Profile:      p,
		SignedIn:     signedIn,
		Stats:        st,
		StudiedToday: st.LastStudyDate == today,
	}
	if stats.StreakAlive(st, today) {
		sum.CurrentStreak = st.Streak
	}

	if a.history != nil {
		recent, err := a.history.RecentQuizResults(ctx, store.QueryOpts{Limit: RecentLimit})
		if err != nil {
			a.logger.Warn("quiz history unavailable", "error", err)
		} else {
			sum.Recent = recent
			sum.AverageSuccessRate = averageRate(recent)
		}
	}
	return sum, nil
}

func averageRate(results []store.QuizResult) int {
	if len(results) == 0 {
		return 0
	}
	total := 0
	for _, r := range results {
		total += r.SuccessRate
	}
	return session.SuccessRate(total, len(results)*100)
}
