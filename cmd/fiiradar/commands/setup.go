package commands

import (
	"fmt"

	"github.com/brfin/fiiradar/internal/fundamentus"
	"github.com/brfin/fiiradar/internal/pipeline"
	"github.com/brfin/fiiradar/pkg/config"
	"github.com/brfin/fiiradar/pkg/httputil"
	"github.com/brfin/fiiradar/pkg/logger"
)

// setup wires config, logger and the fetch pipeline for the commands
func setup() (*config.Config, *logger.Logger, *pipeline.Pipeline, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, nil, fmt.Errorf("load config: %w", err)
	}

	if verbose {
		cfg.LogLevel = "debug"
	}

	log := logger.New(cfg)
	httpClient := httputil.New(cfg, log)
	source := fundamentus.NewClient(httpClient, cfg, log)
	p := pipeline.New(source, cfg, nil, log)

	return cfg, log, p, nil
}
