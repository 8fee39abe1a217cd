package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/jmgilman/toolrun/internal/args"
	"github.com/jmgilman/toolrun/internal/config"
	"github.com/jmgilman/toolrun/internal/tool"
)

var configCmd = &cobra.Command{
	Use:   "config [key] [value]",
	Short: "View and modify configuration",
	Long: `View and modify toolrun configuration.

With no arguments, displays all configuration.
With one argument, displays the value for the specified key.
With two arguments, sets the value for the specified key. List values
are given comma separated.`,
	Example: `  # Show all config
  toolrun config

  # Show value for a specific key
  toolrun config resolution.mode

  # Set a value
  toolrun config resolution.mode locator

  # Define a tool
  toolrun config tools.make.executables gmake,make

  # Open config file in editor
  toolrun config --edit`,
	Args: cobra.RangeArgs(0, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		editFlag, _ := cmd.Flags().GetBool("edit")
		if editFlag {
			return runEdit(cmd)
		}

		loader, err := loaderFor(cmd.Context())
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		switch len(args) {
		case 0:
			return runShowAll(out, loader)
		case 1:
			return runShowKey(out, loader, args[0])
		case 2:
			return runSetKey(out, loader, args[0], args[1])
		}

		return nil
	},
}

// loaderFor returns the loader created at startup, or a fresh one.
func loaderFor(ctx context.Context) (*config.Loader, error) {
	if loader := LoaderFromContext(ctx); loader != nil {
		return loader, nil
	}
	loader, err := config.NewLoader()
	if err != nil {
		return nil, fmt.Errorf("init config loader: %w", err)
	}
	if _, err := loader.Load(); err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return loader, nil
}

// runEdit opens the config file in $EDITOR. The editor is run as a tool
// attached to the terminal.
func runEdit(cmd *cobra.Command) error {
	editor := strings.Fields(os.Getenv("EDITOR"))
	if len(editor) == 0 {
		return config.ErrNoEditor
	}

	ctx := cmd.Context()
	loader, err := loaderFor(ctx)
	if err != nil {
		return err
	}
	deps, err := requireDependencies(ctx)
	if err != nil {
		return err
	}

	runner, err := tool.New(tool.Definition{Name: "Editor", ExecutableNames: editor[:1]}, deps)
	if err != nil {
		return fmt.Errorf("create runner: %w", err)
	}

	s := &tool.Settings{}
	if strings.ContainsRune(editor[0], filepath.Separator) {
		s.ToolPath = editor[0]
	}

	return runner.RunWith(ctx, s, args.New(editor[1:]...).Append(loader.Path()), &tool.ProcessSettings{
		Stdin:  cmd.InOrStdin(),
		Stdout: cmd.OutOrStdout(),
		Stderr: cmd.ErrOrStderr(),
	}, nil)
}

func runShowAll(out io.Writer, loader *config.Loader) error {
	data, err := yaml.Marshal(loader.AllSettings())
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	fmt.Fprint(out, string(data))
	return nil
}

func runShowKey(out io.Writer, loader *config.Loader, key string) error {
	value, err := loader.Get(key)
	if err != nil {
		return err
	}

	if value == nil {
		fmt.Fprintln(out, "")
		return nil
	}

	switch v := value.(type) {
	case string:
		fmt.Fprintln(out, v)
	case map[string]any, []any, []string:
		data, err := yaml.Marshal(v)
		if err != nil {
			return fmt.Errorf("marshal value: %w", err)
		}
		fmt.Fprint(out, string(data))
	default:
		fmt.Fprintln(out, value)
	}

	return nil
}

func runSetKey(out io.Writer, loader *config.Loader, key, value string) error {
	if err := loader.Set(key, value); err != nil {
		return err
	}

	fmt.Fprintf(out, "Set %s = %s\n", key, value)
	return nil
}

func init() {
	rootCmd.AddCommand(configCmd)

	configCmd.Flags().Bool("edit", false, "open config file in $EDITOR")
}
