package main

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"golang.org/x/sync/errgroup"

	"github.com/lox/pokertrainer/cmd/pokertrainer/shared"
	"github.com/lox/pokertrainer/internal/config"
	"github.com/lox/pokertrainer/internal/quiz"
	"github.com/lox/pokertrainer/internal/randutil"
	"github.com/lox/pokertrainer/internal/server"
	"github.com/lox/pokertrainer/internal/store"
	"github.com/lox/pokertrainer/internal/trainer"
)

// sweepInterval is how often expired questions are dropped from the registry.
const sweepInterval = time.Minute

// ServeCmd runs the HTTP and websocket API.
type ServeCmd struct {
	Addr     string `short:"a" help:"Server address to bind to (overrides config)"`
	LogLevel string `short:"l" help:"Log level (overrides config)"`
	Debug    bool   `help:"Enable debug logging"`
	Memory   bool   `help:"Keep progress in memory instead of the configured store"`
	Seed     *int64 `help:"Deterministic question seed sequence (optional)"`
}

func (c *ServeCmd) Run(cli *CLI) error {
	cfg, err := config.Load(cli.Config)
	if err != nil {
		return err
	}
	if c.LogLevel != "" {
		cfg.Server.LogLevel = c.LogLevel
	}
	if c.Memory {
		cfg.Storage.Driver = config.DriverMemory
	}
	addr := cfg.ServerAddress()
	if c.Addr != "" {
		addr = c.Addr
	}

	logger := shared.SetupLogger(cfg.Server.LogLevel, c.Debug)
	ctx := shared.SetupSignalHandler(logger)

	st, err := openStore(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer st.Close()

	clock := quartz.NewReal()
	registry := quiz.NewRegistry(clock, cfg.QuestionTTL())
	svc, err := trainer.New(trainer.Options{
		Store:     st,
		Generator: quiz.NewGenerator(cfg.Generator()),
		Registry:  registry,
		Policy:    cfg.Policy(),
		Logger:    logger,
		Clock:     clock,
		Seeds:     seedSequence(c.Seed, logger),
	})
	if err != nil {
		return err
	}

	srv := server.New(svc, logger, cfg.Server.DefaultUser)

	logger.Info("Starting poker trainer",
		"address", addr,
		"storage", cfg.Storage.Driver,
		"question_ttl", cfg.QuestionTTL(),
		"promote_streak", cfg.Training.PromoteStreak,
		"demote_misses", cfg.Training.DemoteMisses)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return srv.ListenAndServe(gctx, addr)
	})
	g.Go(func() error {
		return sweepQuestions(gctx, clock, registry, logger)
	})
	return g.Wait()
}

// sweepQuestions drops expired questions until ctx is done.
func sweepQuestions(ctx context.Context, clock quartz.Clock, registry *quiz.Registry, logger *log.Logger) error {
	ticker := clock.TickerFunc(ctx, sweepInterval, func() error {
		if n := registry.Sweep(); n > 0 {
			logger.Debug("Swept expired questions", "count", n, "outstanding", registry.Len())
		}
		return nil
	}, "sweep")
	err := ticker.Wait()
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

// seedSequence returns a reproducible source of question seeds when seed is
// set, or nil to use unpredictable seeds.
func seedSequence(seed *int64, logger *log.Logger) func() int64 {
	if seed == nil {
		return nil
	}
	logger.Info("Using deterministic seed", "seed", *seed)
	rng := randutil.New(*seed)
	var mu sync.Mutex
	return func() int64 {
		mu.Lock()
		defer mu.Unlock()
		return rng.Int64()
	}
}

// openStore opens the configured progress store.
func openStore(ctx context.Context, cfg *config.Config, logger *log.Logger) (store.Store, error) {
	switch cfg.Storage.Driver {
	case config.DriverMemory:
		logger.Warn("Progress is kept in memory and lost on exit")
		return store.NewMemory(), nil
	case config.DriverSQLite:
		st, err := store.OpenSQLite(ctx, cfg.Storage.Path)
		if err != nil {
			return nil, fmt.Errorf("open progress store: %w", err)
		}
		logger.Debug("Opened progress store", "path", cfg.Storage.Path)
		return st, nil
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Storage.Driver)
	}
}
