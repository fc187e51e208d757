package main

import (
	"context"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"github.com/KilimcininKorOglu/treelab/internal/config"
	"github.com/KilimcininKorOglu/treelab/internal/logging"
	"github.com/KilimcininKorOglu/treelab/internal/telemetry"
	"github.com/KilimcininKorOglu/treelab/internal/workbench"
)

// globalOptions holds the persistent flags shared by every command.
type globalOptions struct {
	configFile string
	kind       string
	order      int
	logLevel   string
}

func newRootCmd() *cobra.Command {
	g := &globalOptions{}

	root := &cobra.Command{
		Use:   "treelab",
		Short: "Interactive B-tree and B+ tree workbench",
		Long: `treelab builds B-trees and B+ trees of a chosen order in memory and
shows how inserts and deletes reshape them, from a shell, a script or a
browser.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.CompletionOptions.DisableDefaultCmd = true

	flags := root.PersistentFlags()
	flags.StringVarP(&g.configFile, "config", "c", "", "Path to configuration file")
	flags.StringVar(&g.kind, "type", "", "Tree type: btree or bplustree")
	flags.IntVar(&g.order, "order", 0, "Tree order")
	flags.StringVar(&g.logLevel, "log-level", "", "Log level: debug, info, warn, error")

	root.AddCommand(
		newShellCmd(g),
		newRunCmd(g),
		newServeCmd(g),
		newConfigCmd(g),
		newVersionCmd(),
	)
	return root
}

// load reads the configuration file, if any, applies flag overrides and
// validates the result.
func (g *globalOptions) load(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if g.configFile != "" {
		loaded, err := config.LoadConfig(g.configFile)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("type") {
		kind, err := workbench.ParseKind(g.kind)
		if err != nil {
			return nil, err
		}
		cfg.Tree.Type = kind.String()
	}
	if flags.Changed("order") {
		cfg.Tree.Order = g.order
	}
	if flags.Changed("log-level") {
		cfg.Logging.Level = g.logLevel
	}

	if errs := config.ValidateConfig(cfg); len(errs) > 0 {
		return nil, errors.Wrapf(errs[0], "invalid configuration (%d problems)", len(errs))
	}
	return cfg, nil
}

// environment is everything a command needs to drive a workbench.
type environment struct {
	cfg       *config.Config
	logger    logging.Logger
	workbench *workbench.Workbench
	shutdown  telemetry.ShutdownFunc
}

// setup loads the configuration and builds the logger, tracer provider and
// workbench. The caller must call close.
func (g *globalOptions) setup(ctx context.Context, cmd *cobra.Command) (*environment, error) {
	cfg, err := g.load(cmd)
	if err != nil {
		return nil, err
	}

	logger := logging.New(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Output: cfg.Logging.Output,
	})

	tp, shutdown, err := telemetry.NewTracerProvider(ctx, cfg.Tracing)
	if err != nil {
		return nil, err
	}

	kind, err := workbench.ParseKind(cfg.Tree.Type)
	if err != nil {
		shutdown(ctx)
		return nil, err
	}
	wb, err := workbench.New(workbench.Options{
		Kind:           kind,
		Order:          cfg.Tree.Order,
		MinOrder:       cfg.Tree.MinOrder,
		MaxOrder:       cfg.Tree.MaxOrder,
		TracerProvider: tp,
	}, logger)
	if err != nil {
		shutdown(ctx)
		return nil, err
	}

	return &environment{cfg: cfg, logger: logger, workbench: wb, shutdown: shutdown}, nil
}

func (e *environment) close() {
	if err := e.shutdown(context.Background()); err != nil {
		e.logger.Warn("tracer shutdown failed", "error", err)
	}
	e.logger.Sync()
}
