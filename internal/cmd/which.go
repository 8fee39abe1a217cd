package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jmgilman/toolrun/internal/config"
	"github.com/jmgilman/toolrun/internal/resolve"
	"github.com/jmgilman/toolrun/internal/tool"
	"github.com/jmgilman/toolrun/internal/tools/generic"
)

var whichCmd = &cobra.Command{
	Use:   "which <tool|executable>",
	Short: "Show the executable a tool resolves to",
	Long: `Show the path a tool would be launched from.

A configured tool name is resolved with its executables and alternative
paths. Any other name is resolved as a single executable name.`,
	Example: `  # Resolve a configured tool
  toolrun which gitversion

  # Resolve an executable name
  toolrun which git`,
	Args: cobra.ExactArgs(1),
	RunE: runWhichCmd,
}

func runWhichCmd(cmd *cobra.Command, args []string) error {
	name := args[0]
	ctx := cmd.Context()

	deps, err := requireDependencies(ctx)
	if err != nil {
		return err
	}

	path, ok, err := whichTool(ConfigFromContext(ctx), deps, name)
	if err != nil {
		return err
	}
	if !ok {
		return &tool.NotFoundError{Tool: name, Candidates: []string{name}}
	}

	fmt.Fprintln(cmd.OutOrStdout(), path)
	return nil
}

// whichTool resolves name as a configured tool, falling back to a bare
// executable name.
func whichTool(cfg *config.Config, deps tool.Dependencies, name string) (string, bool, error) {
	if cfg != nil {
		tc, err := cfg.Tool(name)
		switch {
		case err == nil:
			runner, err := generic.New(name, tc, deps)
			if err != nil {
				return "", false, fmt.Errorf("create runner: %w", err)
			}
			path, ok := runner.Resolve(nil)
			return path, ok, nil
		case !errors.Is(err, config.ErrUnknownTool):
			return "", false, err
		}
	}

	path, ok := deps.Resolver.Resolve(resolve.Request{ExecutableNames: []string{name}})
	return path, ok, nil
}

func init() {
	rootCmd.AddCommand(whichCmd)
}
