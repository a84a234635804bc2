// Package logging builds the zap logger used across the server.
package logging

import (
	"fmt"

	"go.uber.org/zap"
)

// Config holds logging configuration.
type Config struct {
	Level       string
	Format      string // "json" or "console"
	Development bool
	Service     string
}

// New builds a zap logger. An unparseable level falls back to info.
func New(cfg Config) (*zap.Logger, error) {
	var zapConfig zap.Config
	if cfg.Development {
		zapConfig = zap.NewDevelopmentConfig()
	} else {
		zapConfig = zap.NewProductionConfig()
	}

	level, err := zap.ParseAtomicLevel(cfg.Level)
	if err != nil {
		level = zap.NewAtomicLevelAt(zap.InfoLevel)
	}
	zapConfig.Level = level

	if cfg.Format == "console" {
		zapConfig.Encoding = "console"
	} else {
		zapConfig.Encoding = "json"
	}

	logger, err := zapConfig.Build()
	if err != nil {
		return nil, fmt.Errorf("build logger: %w", err)
	}
	if cfg.Service != "" {
		logger = logger.With(zap.String("service", cfg.Service))
	}
	return logger, nil
}
