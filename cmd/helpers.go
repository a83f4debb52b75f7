package cmd

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/ziadkadry99/scenecoach/internal/coach"
	"github.com/ziadkadry99/scenecoach/internal/config"
	"github.com/ziadkadry99/scenecoach/internal/db"
	"github.com/ziadkadry99/scenecoach/internal/llm"
	"github.com/ziadkadry99/scenecoach/internal/logging"
)

// loadConfig loads and validates the config, providing a user-friendly error.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w\nRun `scenecoach init` to create a config file", err)
	}
	if cfg.Model == "" {
		cfg.Model = config.GetPreset(cfg.Provider, cfg.Quality).Model
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", cfgFile, err)
	}
	return cfg, nil
}

func newLogger(cfg *config.Config) (*zap.Logger, error) {
	return logging.New(cfg.Logging, verbose)
}

// newCoachFromConfig builds the provider and the controller around it.
func newCoachFromConfig(cfg *config.Config, logger *zap.Logger) (*coach.Coach, error) {
	provider, err := llm.NewProvider(string(cfg.Provider), cfg.Model, llm.Options{
		Timeout:           time.Duration(cfg.Coach.AttemptTimeoutSecs) * time.Second,
		RequestsPerMinute: cfg.Coach.RateLimitRPM,
	})
	if err != nil {
		return nil, fmt.Errorf("creating LLM provider: %w", err)
	}
	return coach.New(provider, logger.Named("coach"), coach.Options{
		Model:          cfg.Model,
		Temperature:    cfg.Temperature,
		MaxTokens:      cfg.MaxTokens,
		AttemptTimeout: time.Duration(cfg.Coach.AttemptTimeoutSecs) * time.Second,
	}), nil
}

func openDatabase(cfg *config.Config) (*db.DB, error) {
	database, err := db.Open(cfg.DatabasePath)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	return database, nil
}
