package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/jmgilman/toolrun/internal/environ"
	"github.com/jmgilman/toolrun/internal/logging"
	"github.com/jmgilman/toolrun/internal/slogger"
	"github.com/jmgilman/toolrun/internal/spinner"
	"github.com/jmgilman/toolrun/internal/tool"
)

// runFlags are the settings flags shared by commands that run a tool.
type runFlags struct {
	toolPath string
	cwd      string
	env      []string
	timeout  time.Duration
	progress bool
}

// addRunFlags registers the shared settings flags on cmd.
func addRunFlags(cmd *cobra.Command) {
	cmd.Flags().String("tool-path", "", "explicit path to the executable")
	cmd.Flags().String("cwd", "", "working directory, relative to the current directory")
	cmd.Flags().StringArray("env", nil, "environment variable as KEY=VALUE (repeatable)")
	cmd.Flags().Duration("timeout", 0, "kill the tool after this duration (0 = no limit)")
	cmd.Flags().Bool("progress", false, "show a spinner with the latest output line instead of the output")
}

func parseRunFlags(cmd *cobra.Command) (runFlags, error) {
	var f runFlags
	var err error

	if f.toolPath, err = cmd.Flags().GetString("tool-path"); err != nil {
		return f, fmt.Errorf("get tool-path flag: %w", err)
	}
	if f.cwd, err = cmd.Flags().GetString("cwd"); err != nil {
		return f, fmt.Errorf("get cwd flag: %w", err)
	}
	if f.env, err = cmd.Flags().GetStringArray("env"); err != nil {
		return f, fmt.Errorf("get env flag: %w", err)
	}
	if f.timeout, err = cmd.Flags().GetDuration("timeout"); err != nil {
		return f, fmt.Errorf("get timeout flag: %w", err)
	}
	if f.progress, err = cmd.Flags().GetBool("progress"); err != nil {
		return f, fmt.Errorf("get progress flag: %w", err)
	}

	return f, nil
}

// settings builds the tool settings. defaultTimeout applies when --timeout
// is unset.
func (f runFlags) settings(defaultTimeout time.Duration) tool.Settings {
	s := tool.Settings{
		ToolPath:         f.toolPath,
		WorkingDirectory: f.cwd,
		Timeout:          f.timeout,
	}
	if len(f.env) > 0 {
		s.EnvironmentVariables = environ.Parse(f.env)
	}
	if s.Timeout == 0 {
		s.Timeout = defaultTimeout
	}
	return s
}

// invokeFunc runs a tool with the prepared settings and post-exit hook.
type invokeFunc func(ctx context.Context, s tool.Settings, post tool.PostExitFunc) error

// invoke runs fn as one recorded invocation of toolName. Output lines go to
// the invocation transcript and to the terminal, or to a spinner when
// --progress is set.
func invoke(cmd *cobra.Command, toolName string, f runFlags, fn invokeFunc) error {
	ctx := cmd.Context()

	logsDir, err := getLogsDir(ctx)
	if err != nil {
		return fmt.Errorf("get logs directory: %w", err)
	}
	fs := afero.NewOsFs()
	pathMgr := logging.NewPathManager(fs, logsDir)

	id, err := pathMgr.NewInvocationID(toolName, time.Now())
	if err != nil {
		return fmt.Errorf("allocate invocation id: %w", err)
	}
	path, err := pathMgr.EnsureInvocationLog(toolName, id)
	if err != nil {
		return err
	}

	var stdout, stderr io.Writer = cmd.OutOrStdout(), cmd.ErrOrStderr()
	var spin *spinner.Spinner
	var spinSink func(line string)
	if f.progress {
		stdout, stderr = nil, nil
		spin = spinner.New(cmd.ErrOrStderr(), toolName)
		spinSink = spin.Sink()
	}

	outLog, err := logging.NewOutputLog(fs, path, stdout, stderr)
	if err != nil {
		return err
	}

	logger := slogger.WithTask(slogger.FromContext(ctx), toolName)
	ctx = slogger.WithLogger(tool.WithInvocationID(ctx, id), logger)

	var defaultTimeout time.Duration
	if cfg := ConfigFromContext(ctx); cfg != nil {
		defaultTimeout = cfg.Defaults.Timeout
	}
	s := f.settings(defaultTimeout)
	s.StdoutSink = tool.Tee(outLog.StdoutSink(), spinSink)
	s.StderrSink = tool.Tee(outLog.StderrSink(), spinSink)
	post := func(code int) { outLog.Note("exit code %d", code) }

	outLog.Note("%s invocation %s", toolName, id)
	run := func() error { return fn(ctx, s, post) }

	var runErr error
	if spin != nil {
		runErr = spin.Run(run)
	} else {
		runErr = run()
	}

	if runErr != nil {
		outLog.Note("failed: %v", runErr)
	} else {
		outLog.Note("completed")
	}
	if err := outLog.Close(); err != nil {
		logger.Warn("write output log", "path", outLog.Path(), "error", err)
	}
	logger.Info("output recorded", "path", outLog.Path())

	return runErr
}

func requireDependencies(ctx context.Context) (tool.Dependencies, error) {
	deps, ok := DependenciesFromContext(ctx)
	if !ok {
		return tool.Dependencies{}, errors.New("tool dependencies not initialized")
	}
	return deps, nil
}

func requireConfig(ctx context.Context) error {
	if ConfigFromContext(ctx) == nil {
		return errors.New("configuration not loaded")
	}
	return nil
}

// getLogsDir returns the logs directory from config, or the default if config is nil.
func getLogsDir(ctx context.Context) (string, error) {
	cfg := ConfigFromContext(ctx)
	if cfg != nil {
		return cfg.Storage.Logs, nil
	}
	return defaultLogsDir()
}
