package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jmgilman/toolrun/internal/tool"
	"github.com/jmgilman/toolrun/internal/tools/cmdprompt"
)

var cmdPromptCmd = &cobra.Command{
	Use:   "cmd [flags] -- command...",
	Short: "Run a command with cmd.exe",
	Long: `Run a command with the Windows command interpreter.

By default cmd terminates after the command (/C). Use --keep to pass /K
instead, and --strip-quotes to pass /S.`,
	Example: `  # List a directory
  toolrun cmd -- dir /b

  # Strip the outer quotes of the command line
  toolrun cmd --strip-quotes -- "echo hello"`,
	Args: cobra.MinimumNArgs(1),
	RunE: runCmdPromptCmd,
}

func runCmdPromptCmd(cmd *cobra.Command, args []string) error {
	stripQuotes, err := cmd.Flags().GetBool("strip-quotes")
	if err != nil {
		return fmt.Errorf("get strip-quotes flag: %w", err)
	}
	keep, err := cmd.Flags().GetBool("keep")
	if err != nil {
		return fmt.Errorf("get keep flag: %w", err)
	}

	deps, err := requireDependencies(cmd.Context())
	if err != nil {
		return err
	}
	runner, err := cmdprompt.New(deps)
	if err != nil {
		return fmt.Errorf("create runner: %w", err)
	}

	f, err := parseRunFlags(cmd)
	if err != nil {
		return err
	}

	return invoke(cmd, cmdprompt.Name, f, func(ctx context.Context, s tool.Settings, post tool.PostExitFunc) error {
		return runner.RunWith(ctx, &cmdprompt.Settings{
			Settings:                s,
			StripFirstAndLastQuotes: stripQuotes,
			TerminateAfterExecution: !keep,
			Command:                 args,
		}, nil, post)
	})
}

func init() {
	rootCmd.AddCommand(cmdPromptCmd)
	addRunFlags(cmdPromptCmd)

	cmdPromptCmd.Flags().Bool("strip-quotes", false, "strip the first and last quote of the command line (/S)")
	cmdPromptCmd.Flags().Bool("keep", false, "keep the interpreter running after the command (/K)")
}
