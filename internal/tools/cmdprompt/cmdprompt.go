// Package cmdprompt runs the Windows command interpreter.
package cmdprompt

import (
	"context"

	"github.com/jmgilman/toolrun/internal/args"
	"github.com/jmgilman/toolrun/internal/environ"
	"github.com/jmgilman/toolrun/internal/tool"
)

// Name is the tool name used in logs and errors.
const Name = "CommandPrompt"

// Settings configures a cmd invocation.
type Settings struct {
	tool.Settings

	// StripFirstAndLastQuotes adds /S, which changes how cmd treats quotes
	// around the command.
	StripFirstAndLastQuotes bool

	// TerminateAfterExecution selects /C (exit when the command finishes)
	// instead of /K (stay open).
	TerminateAfterExecution bool

	// Command is passed after the switches.
	Command []string
}

// Arguments returns the argument list for s: [/S] (/C|/K) command...
func Arguments(s *Settings) *args.Builder {
	b := args.New()
	if s.StripFirstAndLastQuotes {
		b.Append("/S")
	}
	if s.TerminateAfterExecution {
		b.Append("/C")
	} else {
		b.Append("/K")
	}
	return b.Append(s.Command...)
}

// Definition describes cmd. On Windows %ComSpec% is tried when neither
// candidate resolves.
func Definition(env environ.Environment) tool.Definition {
	return tool.Definition{
		Name:            Name,
		ExecutableNames: []string{"cmd.exe", "cmd"},
		AlternativePaths: func(*tool.Settings) []string {
			if env.IsUnix() {
				return nil
			}
			if comspec, ok := env.Getenv("ComSpec"); ok && comspec != "" {
				return []string{comspec}
			}
			return nil
		},
	}
}

// Runner runs cmd.
type Runner struct {
	tool *tool.Runner
}

// New creates a Runner.
func New(deps tool.Dependencies) (*Runner, error) {
	if deps.Env == nil {
		deps.Env = environ.OS()
	}
	r, err := tool.New(Definition(deps.Env), deps)
	if err != nil {
		return nil, err
	}
	return &Runner{tool: r}, nil
}

// Run runs cmd with s.
func (r *Runner) Run(ctx context.Context, s *Settings) error {
	if s == nil {
		s = &Settings{}
	}
	return r.tool.Run(ctx, &s.Settings, Arguments(s))
}

// RunWith runs cmd with raw process settings and a post-exit hook.
func (r *Runner) RunWith(ctx context.Context, s *Settings, raw *tool.ProcessSettings, post tool.PostExitFunc) error {
	if s == nil {
		s = &Settings{}
	}
	return r.tool.RunWith(ctx, &s.Settings, Arguments(s), raw, post)
}
