package main

import (
	"github.com/coder/quartz"

	"github.com/lox/pokertrainer/cmd/pokertrainer/shared"
	"github.com/lox/pokertrainer/internal/config"
	"github.com/lox/pokertrainer/internal/quiz"
	"github.com/lox/pokertrainer/internal/trainer"
	"github.com/lox/pokertrainer/internal/tui"
)

// QuizCmd runs the terminal quiz against the local progress store.
type QuizCmd struct {
	User   string `short:"u" help:"User whose progress is tracked (defaults to the configured default user)"`
	Topic  string `short:"t" help:"Practice one topic (hand_ranking, which_wins, starting_hand)"`
	Memory bool   `help:"Do not persist progress"`
}

func (c *QuizCmd) Run(cli *CLI) error {
	var topic quiz.Topic
	if c.Topic != "" {
		t, err := quiz.ParseTopic(c.Topic)
		if err != nil {
			return err
		}
		topic = t
	}

	cfg, err := config.Load(cli.Config)
	if err != nil {
		return err
	}
	if c.Memory {
		cfg.Storage.Driver = config.DriverMemory
	}

	// The alt screen owns stdout so only errors are logged.
	logger := shared.SetupLogger("error", false)
	ctx := shared.SetupSignalHandler(logger)

	st, err := openStore(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer st.Close()

	clock := quartz.NewReal()
	svc, err := trainer.New(trainer.Options{
		Store:     st,
		Generator: quiz.NewGenerator(cfg.Generator()),
		Registry:  quiz.NewRegistry(clock, cfg.QuestionTTL()),
		Policy:    cfg.Policy(),
		Logger:    logger,
		Clock:     clock,
	})
	if err != nil {
		return err
	}

	user := c.User
	if user == "" {
		user = cfg.Server.DefaultUser
	}
	return tui.Run(ctx, tui.Options{
		Trainer: svc,
		UserID:  user,
		Topic:   topic,
		Logger:  logger,
		Clock:   clock,
	})
}
