package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/abhisek/wordiz/internal/auth"
	"github.com/abhisek/wordiz/internal/config"
	"github.com/abhisek/wordiz/internal/logging"
	"github.com/abhisek/wordiz/internal/profile"
	"github.com/abhisek/wordiz/internal/stats"
	"github.com/abhisek/wordiz/internal/store"
	"github.com/abhisek/wordiz/internal/store/memstore"
	"github.com/abhisek/wordiz/internal/store/redisstore"
)

// env is what every command works with: configuration, the logger, the
// opened storage backend and the services built on it.
type env struct {
	cfg     *config.Config
	logger  *slog.Logger
	backend store.Backend
	logFile io.Closer

	stats   *stats.Store
	auth    *auth.Service
	profile *profile.Aggregator
}

// loadConfig merges flags, environment, config file and defaults.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	v := config.NewViper()
	for _, key := range []string{config.KeyDB, config.KeyBackend, config.KeyContent} {
		if f := cmd.Flags().Lookup(key); f != nil {
			if err := v.BindPFlag(key, f); err != nil {
				return nil, fmt.Errorf("bind flag %s: %w", key, err)
			}
		}
	}
	path, _ := cmd.Flags().GetString("config")
	return config.Load(v, path)
}

// openEnv loads configuration, sets up logging and opens the backend.
func openEnv(cmd *cobra.Command) (*env, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}

	e := &env{cfg: cfg}
	if err := e.setupLogging(); err != nil {
		return nil, err
	}

	e.backend, err = openBackend(cmd.Context(), cfg)
	if err != nil {
		_ = e.logFile.Close()
		return nil, err
	}
	e.logger.Debug("backend opened", "backend", cfg.Backend)

	kv := e.backend.KV()
	e.stats = stats.NewStore(kv, stats.WithLogger(e.logger))
	e.auth = auth.NewService(kv, e.stats,
		auth.WithTokenTTL(cfg.Auth.TokenTTL),
		auth.WithLogger(e.logger),
	)
	e.profile = profile.NewAggregator(e.stats,
		profile.WithHistory(e.backend.EventRepo()),
		profile.WithLogger(e.logger),
	)
	return e, nil
}

func (e *env) setupLogging() error {
	path := e.cfg.Log.File
	if path == "" {
		dir, err := store.DataDir()
		if err != nil {
			return fmt.Errorf("resolve log path: %w", err)
		}
		path = filepath.Join(dir, "wordiz.log")
	}
	logger, closer, err := logging.Setup(e.cfg.Log.Level, path)
	if err != nil {
		return err
	}
	e.logger = logger
	e.logFile = closer
	return nil
}

// openBackend opens the configured storage engine.
func openBackend(ctx context.Context, cfg *config.Config) (store.Backend, error) {
	switch cfg.Backend {
	case config.BackendRedis:
		b, err := redisstore.Open(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB,
			redisstore.WithPrefix(cfg.Redis.Prefix))
		if err != nil {
			return nil, fmt.Errorf("open redis: %w", err)
		}
		return b, nil
	case config.BackendMemory:
		return memstore.New(), nil
	default:
		dbPath, err := resolveDBPath(cfg)
		if err != nil {
			return nil, fmt.Errorf("resolve DB path: %w", err)
		}
		b, err := store.Open(dbPath)
		if err != nil {
			return nil, fmt.Errorf("open store: %w", err)
		}
		return b, nil
	}
}

// resolveDBPath returns the database path using --db / WORDIZ_DB / config
// file first, then the default XDG path.
func resolveDBPath(cfg *config.Config) (string, error) {
	if cfg.DBPath != "" {
		return cfg.DBPath, store.EnsureDir(cfg.DBPath)
	}
	return store.DefaultDBPath()
}

// Close releases the backend and the log file.
func (e *env) Close() error {
	var errs []error
	if e.backend != nil {
		errs = append(errs, e.backend.Close())
	}
	if e.logFile != nil {
		errs = append(errs, e.logFile.Close())
	}
	return errors.Join(errs...)
}
