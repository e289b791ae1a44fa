package cmd

import (
	"fmt"

	"github.com/masmgr/commitgraph-go/config"
	"github.com/masmgr/commitgraph-go/internal/command"
	"github.com/urfave/cli/v2"
)

// loadConfig loads the configuration file named on the command line and
// applies flag overrides.
func loadConfig(c *cli.Context) (*config.Config, error) {
	configPath, err := parseArgs(c)
	if err != nil {
		return nil, err
	}

	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return nil, err
	}

	if backend := c.String("backend"); backend != "" {
		cfg.Backend = backend
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// visualizeAction loads the configuration and runs the pipeline.
func visualizeAction(c *cli.Context, runner command.Runner) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}

	p := &Pipeline{
		Config:  cfg,
		Runner:  runner,
		Out:     c.App.Writer,
		Verbose: c.Bool("verbose"),
		Format:  summaryFormat(c),
	}

	_, err = p.Run(c.Context)
	return err
}
