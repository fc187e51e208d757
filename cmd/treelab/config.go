package main

import (
	"fmt"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"github.com/KilimcininKorOglu/treelab/internal/config"
)

func newConfigCmd(g *globalOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect configuration files",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "validate [file]",
		Short: "Validate a configuration file",
		Long:  "Validate checks the given file, or the one named by --config.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := g.configFile
			if len(args) == 1 {
				path = args[0]
			}
			if path == "" {
				return errors.New("no configuration file given")
			}

			cfg, err := config.LoadConfig(path)
			if err != nil {
				return errors.Wrap(err, "invalid configuration")
			}

			if errs := config.ValidateConfig(cfg); len(errs) > 0 {
				out := cmd.ErrOrStderr()
				fmt.Fprintln(out, "Configuration errors:")
				for _, e := range errs {
					fmt.Fprintf(out, "  - %s\n", e)
				}
				return errors.Newf("%d configuration errors", len(errs))
			}

			fmt.Fprintln(cmd.OutOrStdout(), "Configuration is valid")
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "defaults",
		Short: "Print the default configuration as YAML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := config.Marshal(config.DefaultConfig())
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	})

	return cmd
}
