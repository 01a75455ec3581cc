// Package common provides shared initialization for command implementations.
package common

import (
	"fmt"

	"github.com/petem573/dealflow/internal/config"
	"github.com/petem573/dealflow/internal/logger"
)

// Deps holds the dependencies every command starts from.
type Deps struct {
	Config *config.Config
	Logger logger.Interface
}

// NewDeps loads configuration and builds the logger. A debug flag
// overrides the configured log level.
func NewDeps(cfgFile string, debug bool) (Deps, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return Deps{}, fmt.Errorf("load config: %w", err)
	}

	if debug {
		cfg.Logger.Level = "debug"
		cfg.Logger.Development = true
	}

	log, err := logger.New(&cfg.Logger)
	if err != nil {
		return Deps{}, fmt.Errorf("create logger: %w", err)
	}

	return Deps{Config: cfg, Logger: log}, nil
}
