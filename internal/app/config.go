package app

import (
	"errors"
	"fmt"
	"time"
)

// Config holds all the necessary configuration for an App instance to run.
// Zero values for the engine and logging settings mean "not set": the value
// from the configuration files is used, then the built-in default.
type Config struct {
	PipelinePath string   // pipeline YAML
	ConfigPaths  []string // hcl files or directories

	Workers      int
	RoundTimeout time.Duration
	MaxRounds    int

	LogFormat       string
	LogLevel        string
	HealthcheckPort int

	AccountID  string
	OrgID      string
	ProjectID  string
	PipelineID string
}

func NewConfig(cfg Config) (*Config, error) {
	if cfg.PipelinePath == "" {
		return nil, errors.New("PipelinePath is a required configuration field and cannot be empty")
	}
	if cfg.Workers < 0 {
		return nil, fmt.Errorf("workers must not be negative, got %d", cfg.Workers)
	}
	if cfg.RoundTimeout < 0 {
		return nil, fmt.Errorf("round timeout must not be negative, got %s", cfg.RoundTimeout)
	}
	if cfg.MaxRounds < 0 {
		return nil, fmt.Errorf("max rounds must not be negative, got %d", cfg.MaxRounds)
	}
	if cfg.HealthcheckPort < 0 || cfg.HealthcheckPort > 65535 {
		return nil, fmt.Errorf("healthcheck port out of range: %d", cfg.HealthcheckPort)
	}
	return &cfg, nil
}
