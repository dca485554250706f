package main

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/chazu/brep/pkg/brep"
	"github.com/chazu/brep/pkg/config"
	"github.com/chazu/brep/pkg/kernel"
	"github.com/chazu/brep/pkg/kernel/sdfx"
	"github.com/chazu/brep/pkg/levelset"
)

// app is the state shared by the subcommands once flags and the
// configuration file have been resolved.
type app struct {
	configPath string
	tolerance  float64
	logLevel   string
	sampling   int
	workers    int

	cfg    *config.Config
	kernel kernel.Kernel
	ls     *levelset.LevelSet
	sel    brep.Configuration
	logger *slog.Logger
}

// setup loads the configuration, applies flag overrides and builds the
// level set. It runs before every subcommand.
func (a *app) setup(cmd *cobra.Command) error {
	cfg := config.Default()
	if a.configPath != "" {
		var err error
		if cfg, err = config.Load(a.configPath); err != nil {
			return err
		}
	}
	flags := cmd.Flags()
	if flags.Changed("tolerance") {
		cfg.Tolerance = a.tolerance
	}
	if flags.Changed("log-level") {
		cfg.LogLevel = a.logLevel
	}
	if flags.Changed("sampling") {
		cfg.Sampling = a.sampling
	}
	if flags.Changed("workers") {
		cfg.Workers = a.workers
	}
	if err := cfg.Check(); err != nil {
		return err
	}

	level, err := cfg.SlogLevel()
	if err != nil {
		return err
	}
	a.logger = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
	slog.SetDefault(a.logger)

	if a.sel, err = cfg.CutConfiguration(); err != nil {
		return err
	}
	a.kernel = sdfx.New()
	if a.ls, err = cfg.BuildLevelSet(a.kernel); err != nil {
		return err
	}
	a.cfg = cfg
	a.logger.Debug("shape ready", "shape", a.ls.String(), "tolerance", a.ls.GetTolerance())
	return nil
}
