package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/KilimcininKorOglu/treelab/internal/config"
	"github.com/KilimcininKorOglu/treelab/internal/logging"
	"github.com/KilimcininKorOglu/treelab/internal/server"
	"github.com/KilimcininKorOglu/treelab/internal/workbench"
)

// shutdownTimeout bounds the graceful stop of the HTTP server.
const shutdownTimeout = 30 * time.Second

func newServeCmd(g *globalOptions) *cobra.Command {
	var address string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the HTTP API, WebSocket feed and tree chart",
		Long: `Serve runs the HTTP server until SIGINT or SIGTERM.

When started with a configuration file, edits to its tree section are
applied while running. Changing the order clears both trees.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := g.setup(cmd.Context(), cmd)
			if err != nil {
				return err
			}
			defer env.close()

			if cmd.Flags().Changed("address") {
				env.cfg.Server.Address = address
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			return serve(ctx, env, g.configFile, cmd)
		},
	}
	cmd.Flags().StringVar(&address, "address", "", "Listen address (overrides server.address)")
	return cmd
}

// serve runs the server until ctx is done.
func serve(ctx context.Context, env *environment, configFile string, cmd *cobra.Command) error {
	srv := server.NewServer(env.cfg.Server, env.workbench, env.logger, server.WithVersion(version))
	if err := srv.Start(); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "listening on http://%s\n", srv.Addr())

	if configFile != "" {
		watcher, err := config.NewConfigWatcher(&config.WatcherConfig{
			FilePath: configFile,
			OnChange: func(oldCfg, newCfg *config.Config) {
				applyTreeConfig(srv, env.logger, oldCfg, newCfg)
			},
			OnError: func(err error) {
				env.logger.Warn("config reload failed", "error", err)
			},
		})
		if err != nil {
			env.logger.Warn("failed to create config watcher", "error", err)
		} else {
			watcher.Start()
			env.logger.Info("config file watcher started", "file", configFile)
			defer watcher.Stop()
		}
	}

	<-ctx.Done()
	env.logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Stop(shutdownCtx)
}

// applyTreeConfig applies the reloadable tree settings that differ between
// two configurations. Everything else needs a restart.
func applyTreeConfig(srv *server.Server, logger logging.Logger, oldCfg, newCfg *config.Config) {
	logger.Info("config file changed, applying tree settings")

	srv.Apply(func(wb *workbench.Workbench) {
		if oldCfg.Tree.Type != newCfg.Tree.Type {
			kind, err := workbench.ParseKind(newCfg.Tree.Type)
			if err == nil {
				err = wb.SetKind(kind)
			}
			if err != nil {
				logger.Warn("tree type not changed", "error", err)
			} else {
				logger.Info("tree type changed", "old", oldCfg.Tree.Type, "new", newCfg.Tree.Type)
			}
		}
		if oldCfg.Tree.Order != newCfg.Tree.Order {
			if err := wb.SetOrder(newCfg.Tree.Order); err != nil {
				logger.Warn("tree order not changed", "error", err)
			} else {
				logger.Info("tree order changed", "old", oldCfg.Tree.Order, "new", newCfg.Tree.Order)
			}
		}
	})

	if oldCfg.Tree.MinOrder != newCfg.Tree.MinOrder || oldCfg.Tree.MaxOrder != newCfg.Tree.MaxOrder ||
		oldCfg.Server != newCfg.Server || oldCfg.Logging != newCfg.Logging || oldCfg.Tracing != newCfg.Tracing {
		logger.Warn("some changed settings take effect after a restart")
	}
}
