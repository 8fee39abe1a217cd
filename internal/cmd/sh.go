package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jmgilman/toolrun/internal/tool"
	"github.com/jmgilman/toolrun/internal/tools/shell"
)

var shCmd = &cobra.Command{
	Use:   "sh [flags] -- script [args...]",
	Short: "Run a script with sh",
	Long: `Run a script with the POSIX shell.

Arguments after the script are available to it as $0, $1 and so on.`,
	Example: `  # Run a one-liner
  toolrun sh -- 'echo hello'

  # Exit on the first failing command
  toolrun sh --errexit -- 'make; make install'

  # Pass positional arguments
  toolrun sh -- 'echo "$1"' sh world`,
	Args: cobra.MinimumNArgs(1),
	RunE: runShCmd,
}

func runShCmd(cmd *cobra.Command, args []string) error {
	login, err := cmd.Flags().GetBool("login")
	if err != nil {
		return fmt.Errorf("get login flag: %w", err)
	}
	errExit, err := cmd.Flags().GetBool("errexit")
	if err != nil {
		return fmt.Errorf("get errexit flag: %w", err)
	}
	stdin, err := cmd.Flags().GetBool("stdin")
	if err != nil {
		return fmt.Errorf("get stdin flag: %w", err)
	}

	deps, err := requireDependencies(cmd.Context())
	if err != nil {
		return err
	}
	runner, err := shell.New(deps)
	if err != nil {
		return fmt.Errorf("create runner: %w", err)
	}

	f, err := parseRunFlags(cmd)
	if err != nil {
		return err
	}

	var raw *tool.ProcessSettings
	if stdin {
		raw = &tool.ProcessSettings{Stdin: cmd.InOrStdin()}
	}

	return invoke(cmd, shell.Name, f, func(ctx context.Context, s tool.Settings, post tool.PostExitFunc) error {
		return runner.RunWith(ctx, &shell.Settings{
			Settings: s,
			Login:    login,
			ErrExit:  errExit,
			Script:   args[0],
			Args:     args[1:],
		}, raw, post)
	})
}

func init() {
	rootCmd.AddCommand(shCmd)
	addRunFlags(shCmd)

	shCmd.Flags().BoolP("login", "l", false, "run as a login shell (-l)")
	shCmd.Flags().Bool("errexit", false, "exit on the first failing command (-e)")
	shCmd.Flags().Bool("stdin", false, "forward standard input to the script")
}
