package main

import (
	"context"
	"fmt"
	"io"

	"github.com/chzyer/readline"
	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"github.com/KilimcininKorOglu/treelab/internal/console"
)

func newShellCmd(g *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "shell",
		Short: "Start an interactive shell",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := g.setup(cmd.Context(), cmd)
			if err != nil {
				return err
			}
			defer env.close()

			rl, err := readline.NewEx(&readline.Config{
				Prompt:          env.cfg.Shell.Prompt,
				HistoryFile:     env.cfg.Shell.HistoryFile,
				InterruptPrompt: "^C",
				EOFPrompt:       "quit",
				Stdin:           io.NopCloser(cmd.InOrStdin()),
				Stdout:          cmd.OutOrStdout(),
				Stderr:          cmd.ErrOrStderr(),
			})
			if err != nil {
				return errors.Wrap(err, "start readline")
			}
			defer rl.Close()

			c := console.New(env.workbench, rl.Stdout(),
				console.WithDiff(env.cfg.Shell.Diff),
				console.WithColor(readline.DefaultIsTerminal()),
			)
			wb := env.workbench
			fmt.Fprintf(rl.Stdout(), "treelab shell: %s of order %d. Type help for commands.\n",
				wb.Kind().Label(), wb.Order())

			return shellLoop(cmd.Context(), c, rl, rl.Stderr())
		},
	}
}

// lineReader is the part of readline the shell loop needs.
type lineReader interface {
	Readline() (string, error)
}

// shellLoop executes lines until quit, end of input, or an interrupt on an
// empty line. Failing lines are reported and the loop continues.
func shellLoop(ctx context.Context, c *console.Console, rl lineReader, errOut io.Writer) error {
	for {
		line, err := rl.Readline()
		if errors.Is(err, readline.ErrInterrupt) {
			if line == "" {
				return nil
			}
			continue
		}
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return errors.Wrap(err, "read line")
		}

		if err := c.Execute(ctx, line); err != nil {
			if errors.Is(err, console.ErrQuit) {
				return nil
			}
			fmt.Fprintf(errOut, "error: %v\n", err)
		}
		if err := ctx.Err(); err != nil {
			return nil
		}
	}
}
