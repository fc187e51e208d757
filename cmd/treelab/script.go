package main

import (
	"io"
	"os"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"github.com/KilimcininKorOglu/treelab/internal/console"
)

func newRunCmd(g *globalOptions) *cobra.Command {
	var scriptFile string

	cmd := &cobra.Command{
		Use:   "run [commands...]",
		Short: "Run shell commands non-interactively",
		Long: `Run executes console commands and stops at the first failing one.

Commands come from the script given with -f ("-" reads stdin), or from the
arguments, one command per argument. With neither, stdin is read.`,
		Example: `  treelab run "insert 1..10" "delete 4" show
  treelab run --type bplustree --order 4 -f scenario.txt`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if scriptFile != "" && len(args) > 0 {
				return errors.New("give either -f or commands, not both")
			}

			env, err := g.setup(cmd.Context(), cmd)
			if err != nil {
				return err
			}
			defer env.close()

			var script io.Reader
			switch {
			case scriptFile == "-":
				script = cmd.InOrStdin()
			case scriptFile != "":
				f, err := os.Open(scriptFile)
				if err != nil {
					return errors.Wrap(err, "open script")
				}
				defer f.Close()
				script = f
			case len(args) > 0:
				script = strings.NewReader(strings.Join(args, "\n"))
			default:
				script = cmd.InOrStdin()
			}

			c := console.New(env.workbench, cmd.OutOrStdout(), console.WithDiff(env.cfg.Shell.Diff))
			return c.Run(cmd.Context(), script)
		},
	}
	cmd.Flags().StringVarP(&scriptFile, "file", "f", "", "Script file to run")
	return cmd
}
