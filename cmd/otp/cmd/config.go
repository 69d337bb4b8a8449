package cmd

import (
	"fmt"

	"github.com/OpenTraceLab/OpenTracePlot/pkg/config"
)

// loadConfig returns the built-in tables, merged with --config when given.
func loadConfig() (*config.Config, error) {
	cfg := config.Default()
	if configFile == "" {
		return cfg, nil
	}
	user, err := config.Load(configFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	cfg.Merge(user)
	return cfg, nil
}
