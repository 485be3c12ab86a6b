// Package config loads the trainer's HCL configuration file.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/lox/pokertrainer/internal/progress"
	"github.com/lox/pokertrainer/internal/quiz"
)

// Config is the complete trainer configuration.
type Config struct {
	Server   *ServerSettings   `hcl:"server,block"`
	Storage  *StorageSettings  `hcl:"storage,block"`
	Training *TrainingSettings `hcl:"training,block"`
}

// ServerSettings configures the HTTP listener.
type ServerSettings struct {
	Address     string `hcl:"address,optional"`
	Port        int    `hcl:"port,optional"`
	LogLevel    string `hcl:"log_level,optional"`
	DefaultUser string `hcl:"default_user,optional"`
}

// StorageSettings selects where progress is kept.
type StorageSettings struct {
	Driver string `hcl:"driver,optional"`
	Path   string `hcl:"path,optional"`
}

// TrainingSettings tunes question generation and difficulty adaptation.
type TrainingSettings struct {
	QuestionTTLSeconds int `hcl:"question_ttl_seconds,optional"`
	MaxAttempts        int `hcl:"max_attempts,optional"`
	RankingChoices     int `hcl:"ranking_choices,optional"`
	PromoteStreak      int `hcl:"promote_streak,optional"`
	DemoteMisses       int `hcl:"demote_misses,optional"`
}

const (
	DriverSQLite = "sqlite"
	DriverMemory = "memory"
)

// Default returns the configuration used when no file exists.
func Default() *Config {
	c := &Config{}
	c.applyDefaults()
	return c
}

// Load reads filename. A missing file yields Default(); unset fields take
// their defaults. The result is validated.
func Load(filename string) (*Config, error) {
	if _, err := os.Stat(filename); os.IsNotExist(err) {
		return Default(), nil
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}

	var config Config
	diags = gohcl.DecodeBody(file.Body, nil, &config)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}

	config.applyDefaults()
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", filename, err)
	}
	return &config, nil
}

func (c *Config) applyDefaults() {
	if c.Server == nil {
		c.Server = &ServerSettings{}
	}
	if c.Server.Address == "" {
		c.Server.Address = "localhost"
	}
	if c.Server.Port == 0 {
		c.Server.Port = 8080
	}
	if c.Server.LogLevel == "" {
		c.Server.LogLevel = "info"
	}
	if c.Server.DefaultUser == "" {
		c.Server.DefaultUser = "default_user"
	}

	if c.Storage == nil {
		c.Storage = &StorageSettings{}
	}
	if c.Storage.Driver == "" {
		c.Storage.Driver = DriverSQLite
	}
	if c.Storage.Path == "" && c.Storage.Driver == DriverSQLite {
		c.Storage.Path = "pokertrainer.db"
	}

	if c.Training == nil {
		c.Training = &TrainingSettings{}
	}
	gen := quiz.DefaultConfig()
	policy := progress.DefaultPolicy()
	if c.Training.QuestionTTLSeconds == 0 {
		c.Training.QuestionTTLSeconds = int(quiz.DefaultTTL / time.Second)
	}
	if c.Training.MaxAttempts == 0 {
		c.Training.MaxAttempts = gen.MaxAttempts
	}
	if c.Training.RankingChoices == 0 {
		c.Training.RankingChoices = gen.RankingChoices
	}
	if c.Training.PromoteStreak == 0 {
		c.Training.PromoteStreak = policy.PromoteStreak
	}
	if c.Training.DemoteMisses == 0 {
		c.Training.DemoteMisses = policy.DemoteMisses
	}
}

// Validate checks the configuration for values the trainer cannot run with.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid port: %d", c.Server.Port)
	}

	switch c.Storage.Driver {
	case DriverSQLite:
		if c.Storage.Path == "" {
			return fmt.Errorf("storage: sqlite driver needs a path")
		}
	case DriverMemory:
	default:
		return fmt.Errorf("storage: unknown driver %q", c.Storage.Driver)
	}

	t := c.Training
	if t.QuestionTTLSeconds < 1 {
		return fmt.Errorf("training: question_ttl_seconds must be positive")
	}
	if t.MaxAttempts < 1 {
		return fmt.Errorf("training: max_attempts must be positive")
	}
	if t.RankingChoices < 2 || t.RankingChoices > 10 {
		return fmt.Errorf("training: ranking_choices must be between 2 and 10")
	}
	if err := c.Policy().Validate(); err != nil {
		return fmt.Errorf("training: %w", err)
	}
	return nil
}

// ServerAddress returns host:port for the listener.
func (c *Config) ServerAddress() string {
	return fmt.Sprintf("%s:%d", c.Server.Address, c.Server.Port)
}

// Generator returns the question generation settings.
func (c *Config) Generator() quiz.Config {
	return quiz.Config{MaxAttempts: c.Training.MaxAttempts, RankingChoices: c.Training.RankingChoices}
}

// Policy returns the difficulty adaptation thresholds.
func (c *Config) Policy() progress.Policy {
	return progress.Policy{PromoteStreak: c.Training.PromoteStreak, DemoteMisses: c.Training.DemoteMisses}
}

// QuestionTTL is how long an issued question stays answerable.
func (c *Config) QuestionTTL() time.Duration {
	return time.Duration(c.Training.QuestionTTLSeconds) * time.Second
}
