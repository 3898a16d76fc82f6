package cmd

import (
	"fmt"
	"math/rand/v2"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/abhisek/wordiz/internal/app"
	"github.com/abhisek/wordiz/internal/content"
	"github.com/abhisek/wordiz/internal/llm"
	"github.com/abhisek/wordiz/internal/notes"
	"github.com/abhisek/wordiz/internal/quizgen"
	"github.com/abhisek/wordiz/internal/screen"
)

// runApp opens the store, builds dependencies, and launches the TUI.
func runApp(cmd *cobra.Command) error {
	ctx := cmd.Context()
	e, err := openEnv(cmd)
	if err != nil {
		return err
	}
	defer e.Close()

	catalog, err := content.Load(e.cfg.Content)
	if err != nil {
		return fmt.Errorf("load courses: %w", err)
	}

	eventRepo := e.backend.EventRepo()
	seed := uint64(time.Now().UnixNano())
	var generator quizgen.Generator = quizgen.NewVocabGenerator(rand.New(rand.NewPCG(seed, seed>>1)))

	if cfg, ok := llm.ResolveConfig(); ok {
		provider, err := llm.NewProvider(ctx, cfg, eventRepo, e.logger)
		if err != nil {
			fmt.Fprintln(os.Stderr, "LLM provider not configured:", err)
			fmt.Fprintln(os.Stderr, "Quizzes will be built from word lists.")
			e.logger.Warn("llm provider unavailable", "error", err)
		} else {
			llmGen := quizgen.NewLLMGenerator(provider, quizgen.DefaultConfig())
			generator = quizgen.WithFallback(llmGen, generator, e.logger)
		}
	}

	deps := &screen.Deps{
		Catalog:   catalog,
		Stats:     e.stats,
		Auth:      e.auth,
		Profile:   e.profile,
		Notes:     notes.New(e.stats, notes.WithLogger(e.logger)),
		EventRepo: eventRepo,
		Generator: generator,
		Logger:    e.logger,
	}
	return app.Run(app.Options{Deps: deps})
}
