package screen

import (
	"log/slog"

	"github.com/abhisek/wordiz/internal/auth"
	"github.com/abhisek/wordiz/internal/content"
	"github.com/abhisek/wordiz/internal/notes"
	"github.com/abhisek/wordiz/internal/profile"
	"github.com/abhisek/wordiz/internal/quizgen"
	"github.com/abhisek/wordiz/internal/stats"
	"github.com/abhisek/wordiz/internal/store"
)

// Deps carries the services screens work with. One value is built by the app
// and shared by every screen.
type Deps struct {
	Catalog   *content.Catalog
	Stats     *stats.Store
	Auth      *auth.Service
	Profile   *profile.Aggregator
	Notes     *notes.Book
	EventRepo store.EventRepo

	// Generator builds quizzes for lessons without one. May be nil.
	Generator quizgen.Generator

	Logger *slog.Logger

	// User is the signed-in profile. Set by the login screen.
	User auth.Profile

	// NewHome and NewLogin build the two root screens. They are set by the
	// app so screens can navigate to them without importing each other.
	NewHome  func() Screen
	NewLogin func() Screen
}

// Log returns the configured logger, or one that discards.
func (d *Deps) Log() *slog.Logger {
	if d.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return d.Logger
}
