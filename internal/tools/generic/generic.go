// Package generic runs tools described in the configuration file.
package generic

import (
	"context"
	"fmt"

	"github.com/jmgilman/toolrun/internal/args"
	"github.com/jmgilman/toolrun/internal/config"
	"github.com/jmgilman/toolrun/internal/environ"
	"github.com/jmgilman/toolrun/internal/tool"
)

// Definition builds a tool definition from a configuration entry.
func Definition(name string, tc config.ToolConfig) tool.Definition {
	def := tool.Definition{
		Name:            name,
		ExecutableNames: tc.Executables,
	}

	if len(tc.AlternativePaths) > 0 {
		alternatives := tc.AlternativePaths
		def.AlternativePaths = func(*tool.Settings) []string { return alternatives }
	}

	if tc.WorkingDirectory != "" {
		configured := tc.WorkingDirectory
		def.WorkingDirectory = func(s *tool.Settings, env environ.Environment) (string, error) {
			if s.WorkingDirectory != "" {
				return tool.DefaultWorkingDirectory(s, env)
			}
			return environ.Abs(env, configured), nil
		}
	}

	if len(tc.Env) > 0 {
		configured := tc.EnvMap()
		def.Environment = func(s *tool.Settings) map[string]string {
			return environ.Merge(configured, s.EnvironmentVariables)
		}
	}

	if len(tc.SuccessCodes) > 0 {
		def.ExitCode = tool.SuccessCodes(tc.SuccessCodes...)
	}

	return def
}

// Runner runs one configured tool.
type Runner struct {
	tool   *tool.Runner
	config config.ToolConfig
}

// New creates a Runner for the configured tool name.
func New(name string, tc config.ToolConfig, deps tool.Dependencies) (*Runner, error) {
	r, err := tool.New(Definition(name, tc), deps)
	if err != nil {
		return nil, err
	}
	return &Runner{tool: r, config: tc}, nil
}

// Name returns the tool name.
func (r *Runner) Name() string {
	return r.tool.Name()
}

// Resolve returns the executable path that Run would launch.
func (r *Runner) Resolve(s *tool.Settings) (string, bool) {
	return r.tool.Resolve(s)
}

// Arguments returns the configured flags and args followed by extra.
func (r *Runner) Arguments(extra ...string) (*args.Builder, error) {
	b := args.New()
	if err := b.AppendFlags(r.config.Flags); err != nil {
		return nil, fmt.Errorf("tool %s: %w", r.tool.Name(), err)
	}
	return b.Append(r.config.Args...).Append(extra...), nil
}

// Run runs the tool with the configured arguments followed by extra. The
// configured timeout applies when s sets none.
func (r *Runner) Run(ctx context.Context, s *tool.Settings, extra ...string) error {
	return r.RunWith(ctx, s, nil, nil, extra...)
}

// RunWith is Run with raw process settings and a post-exit hook.
func (r *Runner) RunWith(ctx context.Context, s *tool.Settings, raw *tool.ProcessSettings, post tool.PostExitFunc, extra ...string) error {
	a, err := r.Arguments(extra...)
	if err != nil {
		return err
	}
	settings := tool.Settings{}
	if s != nil {
		settings = *s
	}
	if settings.Timeout == 0 {
		settings.Timeout = r.config.Timeout
	}
	return r.tool.RunWith(ctx, &settings, a, raw, post)
}
