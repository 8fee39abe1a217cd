package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jmgilman/toolrun/internal/config"
	"github.com/jmgilman/toolrun/internal/environ"
	"github.com/jmgilman/toolrun/internal/secrets"
	"github.com/jmgilman/toolrun/internal/tool"
	"github.com/jmgilman/toolrun/internal/tools/generic"
)

var runCmd = &cobra.Command{
	Use:   "run <tool> [-- args...]",
	Short: "Run a configured tool",
	Long: `Run a tool defined in the tools section of the configuration.

The configured flags and args are passed first, followed by any arguments
given after --. The tool's output is shown and recorded in its output log.`,
	Example: `  # Run make with its configured arguments
  toolrun run make

  # Pass extra arguments
  toolrun run make -- clean all

  # Override the working directory and timeout
  toolrun run gitversion --cwd src --timeout 2m`,
	Args: cobra.MinimumNArgs(1),
	RunE: runRunCmd,
}

func runRunCmd(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	if err := requireConfig(ctx); err != nil {
		return err
	}

	tc, err := ConfigFromContext(ctx).Tool(args[0])
	if err != nil {
		return err
	}

	deps, err := requireDependencies(ctx)
	if err != nil {
		return err
	}

	runner, err := generic.New(args[0], tc, deps)
	if err != nil {
		return fmt.Errorf("create runner: %w", err)
	}

	f, err := parseRunFlags(cmd)
	if err != nil {
		return err
	}
	// The tool's own timeout takes precedence over the global default.
	if f.timeout == 0 {
		f.timeout = tc.Timeout
	}

	secretEnv, err := toolSecrets(tc)
	if err != nil {
		return err
	}

	extra := args[1:]
	return invoke(cmd, runner.Name(), f, func(ctx context.Context, s tool.Settings, post tool.PostExitFunc) error {
		// --env wins over stored secrets.
		s.EnvironmentVariables = environ.Merge(secretEnv, s.EnvironmentVariables)
		return runner.RunWith(ctx, &s, nil, post, extra...)
	})
}

// toolSecrets reads the secrets a tool needs from the secret store.
func toolSecrets(tc config.ToolConfig) (map[string]string, error) {
	if len(tc.Secrets) == 0 {
		return nil, nil
	}
	store, err := openSecretStore()
	if err != nil {
		return nil, err
	}
	env, err := secrets.Environment(store, tc.Secrets)
	if err != nil {
		return nil, fmt.Errorf("read tool secrets: %w", err)
	}
	return env, nil
}

func init() {
	rootCmd.AddCommand(runCmd)
	addRunFlags(runCmd)
}
