// Package tool runs external tools: it resolves the executable, launches it
// with the configured working directory and environment, pumps its output
// into line sinks and classifies its exit code.
//
// A concrete tool is described by a Definition, a struct of function values
// that supply the tool's identity and policies. Runner is the single routine
// that executes any Definition.
package tool

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"

	"github.com/spf13/afero"

	"github.com/jmgilman/toolrun/internal/args"
	"github.com/jmgilman/toolrun/internal/environ"
	"github.com/jmgilman/toolrun/internal/exec"
	"github.com/jmgilman/toolrun/internal/resolve"
)

// ExitCodePolicy classifies an exit code. It returns nil when the code means
// success.
type ExitCodePolicy func(tool string, code int) error

// DefaultExitCodePolicy accepts only exit code 0.
func DefaultExitCodePolicy(tool string, code int) error {
	if code != 0 {
		return &ExitError{Tool: tool, ExitCode: code}
	}
	return nil
}

// SuccessCodes returns a policy that accepts exactly the given codes.
func SuccessCodes(codes ...int) ExitCodePolicy {
	allowed := slices.Clone(codes)
	return func(tool string, code int) error {
		if slices.Contains(allowed, code) {
			return nil
		}
		return &ExitError{Tool: tool, ExitCode: code}
	}
}

// Definition describes a tool. Nil functions fall back to defaults.
type Definition struct {
	// Name is used in log lines and error messages.
	Name string

	// ExecutableNames are the candidate file names, in priority order.
	ExecutableNames []string

	// AlternativePaths returns tool-specific fallback locations.
	AlternativePaths func(s *Settings) []string

	// WorkingDirectory returns the directory the process runs in. The
	// default uses Settings.WorkingDirectory, else the ambient directory.
	WorkingDirectory func(s *Settings, env environ.Environment) (string, error)

	// Environment projects the variables merged over the ambient
	// environment. The default returns Settings.EnvironmentVariables.
	Environment func(s *Settings) map[string]string

	// ExitCode classifies the exit code. Defaults to DefaultExitCodePolicy.
	ExitCode ExitCodePolicy
}

// Dependencies are the collaborators of a Runner.
type Dependencies struct {
	// Launcher starts processes. Required.
	Launcher exec.Launcher

	// Resolver maps the tool to an executable path. Required.
	Resolver resolve.Resolver

	// Env is the ambient environment. Defaults to environ.OS().
	Env environ.Environment

	// FS checks that the working directory exists. Defaults to the OS
	// filesystem.
	FS afero.Fs

	// Stdout and Stderr receive streams that have no sink. Default to the
	// parent's streams.
	Stdout io.Writer
	Stderr io.Writer
}

// Runner executes one Definition. It holds no per-invocation state and may
// run concurrent invocations.
type Runner struct {
	def      Definition
	launcher exec.Launcher
	resolver resolve.Resolver
	env      environ.Environment
	fs       afero.Fs
	stdout   io.Writer
	stderr   io.Writer
}

// New creates a Runner for def.
func New(def Definition, deps Dependencies) (*Runner, error) {
	if def.Name == "" {
		return nil, errors.New("tool name is required")
	}
	if len(def.ExecutableNames) == 0 {
		return nil, fmt.Errorf("tool %s: at least one executable name is required", def.Name)
	}
	if deps.Launcher == nil {
		return nil, fmt.Errorf("tool %s: launcher is required", def.Name)
	}
	if deps.Resolver == nil {
		return nil, fmt.Errorf("tool %s: resolver is required", def.Name)
	}

	if def.AlternativePaths == nil {
		def.AlternativePaths = func(*Settings) []string { return nil }
	}
	if def.WorkingDirectory == nil {
		def.WorkingDirectory = DefaultWorkingDirectory
	}
	if def.Environment == nil {
		def.Environment = func(s *Settings) map[string]string { return s.EnvironmentVariables }
	}
	if def.ExitCode == nil {
		def.ExitCode = DefaultExitCodePolicy
	}

	r := &Runner{
		def:      def,
		launcher: deps.Launcher,
		resolver: deps.Resolver,
		env:      deps.Env,
		fs:       deps.FS,
		stdout:   deps.Stdout,
		stderr:   deps.Stderr,
	}
	if r.env == nil {
		r.env = environ.OS()
	}
	if r.fs == nil {
		r.fs = afero.NewOsFs()
	}
	if r.stdout == nil {
		r.stdout = os.Stdout
	}
	if r.stderr == nil {
		r.stderr = os.Stderr
	}
	return r, nil
}

// Name returns the tool name.
func (r *Runner) Name() string {
	return r.def.Name
}

// Resolve returns the executable path the runner would launch for s.
func (r *Runner) Resolve(s *Settings) (string, bool) {
	if s == nil {
		s = &Settings{}
	}
	return r.resolver.Resolve(resolve.Request{
		ToolPath:         s.ToolPath,
		ExecutableNames:  r.def.ExecutableNames,
		AlternativePaths: r.def.AlternativePaths(s),
	})
}

// Run runs the tool with the given arguments.
func (r *Runner) Run(ctx context.Context, s *Settings, a *args.Builder) error {
	return r.RunWith(ctx, s, a, nil, nil)
}

// DefaultWorkingDirectory returns Settings.WorkingDirectory made absolute,
// or the ambient working directory when it is unset.
func DefaultWorkingDirectory(s *Settings, env environ.Environment) (string, error) {
	if s.WorkingDirectory != "" {
		return environ.Abs(env, s.WorkingDirectory), nil
	}
	return env.WorkingDir()
}
