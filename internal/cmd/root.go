// Package cmd implements the toolrun CLI commands using Cobra.
// It provides commands for running configured tools, shell scripts and
// cmd.exe commands, and for inspecting their output logs.
package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/jmgilman/toolrun/internal/config"
	"github.com/jmgilman/toolrun/internal/environ"
	toolexec "github.com/jmgilman/toolrun/internal/exec"
	"github.com/jmgilman/toolrun/internal/locator"
	"github.com/jmgilman/toolrun/internal/resolve"
	"github.com/jmgilman/toolrun/internal/slogger"
	"github.com/jmgilman/toolrun/internal/tool"
)

// appConfig holds the loaded application configuration.
var appConfig *config.Config

// configLoader is used for reading and writing configuration keys.
var configLoader *config.Loader

var rootCmd = &cobra.Command{
	Use:   "toolrun",
	Short: "Run external build tools",
	Long: `toolrun locates external command-line tools, runs them with the requested
arguments, environment and working directory, and records their output.

Tools are found through an explicit path, the configured locator, a local
tools directory, the PATH variable or tool-specific fallback locations.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		verbosity, err := cmd.Flags().GetCount("verbose")
		if err != nil {
			return fmt.Errorf("get verbose flag: %w", err)
		}
		jsonLogs, err := cmd.Flags().GetBool("json")
		if err != nil {
			return fmt.Errorf("get json flag: %w", err)
		}

		logger := slogger.New(slogger.Config{
			Verbosity: verbosity,
			Output:    cmd.ErrOrStderr(),
			JSON:      jsonLogs,
		})

		// Store dependencies in context for subcommands
		ctx := cmd.Context()
		ctx = slogger.WithLogger(ctx, logger)
		ctx = WithConfig(ctx, appConfig)
		ctx = WithLoader(ctx, configLoader)
		ctx = WithDependencies(ctx, newDependencies(cmd, appConfig))
		cmd.SetContext(ctx)

		return nil
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

// Main runs the CLI and returns the process exit code. A tool that exited
// with a non-zero code passes that code through.
func Main() int {
	if err := Execute(); err != nil {
		return ExitCode(err)
	}
	return 0
}

// ExitCode maps a command error to a process exit code.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	var exitErr *tool.ExitError
	if errors.As(err, &exitErr) && exitErr.ExitCode > 0 {
		return exitErr.ExitCode
	}
	return 1
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().CountP("verbose", "v", "increase log verbosity (-v info, -vv debug)")
	rootCmd.PersistentFlags().Bool("json", false, "emit logs as JSON")
}

func initConfig() {
	loader, err := config.NewLoader()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to initialize config: %v\n", err)
		return
	}

	cfg, err := loader.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to load config: %v\n", err)
		return
	}

	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: config validation failed: %v\n", err)
	}

	appConfig = cfg
	configLoader = loader
}

// newDependencies wires the launcher and the resolver selected by the
// resolution mode. A nil cfg falls back to legacy resolution.
func newDependencies(cmd *cobra.Command, cfg *config.Config) tool.Dependencies {
	fs := afero.NewOsFs()
	env := environ.OS()

	resolverCfg := resolve.Config{FS: fs, Env: env}
	if cfg != nil {
		resolverCfg.ToolsDir = cfg.Resolution.ToolsDir
		if cfg.Resolution.Mode == config.ModeLocator {
			registry := locator.NewRegistry(fs, env, cfg.Resolution.SearchPaths...)
			for _, path := range cfg.Resolution.Registered {
				registry.Register(path)
			}
			resolverCfg.Locator = registry
		}
	}

	return tool.Dependencies{
		Launcher: toolexec.New(),
		Resolver: resolve.New(resolverCfg),
		Env:      env,
		FS:       fs,
		Stdout:   cmd.OutOrStdout(),
		Stderr:   cmd.ErrOrStderr(),
	}
}

// defaultLogsDir is used when no configuration could be loaded.
func defaultLogsDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("get home directory: %w", err)
	}
	return filepath.Join(home, config.DefaultDataDir, "logs"), nil
}
