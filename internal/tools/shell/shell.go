// Package shell runs scripts with the POSIX sh interpreter.
package shell

import (
	"context"

	"github.com/jmgilman/toolrun/internal/args"
	"github.com/jmgilman/toolrun/internal/tool"
)

// Name is the tool name used in logs and errors.
const Name = "Shell"

// Settings configures an sh invocation.
type Settings struct {
	tool.Settings

	// Login starts sh as a login shell (-l).
	Login bool

	// ErrExit makes sh exit on the first failing command (-e).
	ErrExit bool

	// Script is run with -c. When empty sh reads commands from stdin.
	Script string

	// Args are the positional parameters. With a script the first one
	// becomes $0.
	Args []string
}

// Arguments returns the argument list for s: [-l] [-e] [-c script] args...
func Arguments(s *Settings) *args.Builder {
	b := args.New()
	if s.Login {
		b.Append("-l")
	}
	if s.ErrExit {
		b.Append("-e")
	}
	if s.Script != "" {
		b.Append("-c").AppendQuoted(s.Script)
	}
	return b.Append(s.Args...)
}

// Definition describes sh.
func Definition() tool.Definition {
	return tool.Definition{
		Name:            Name,
		ExecutableNames: []string{"sh"},
		AlternativePaths: func(*tool.Settings) []string {
			return []string{"/bin/sh", "/usr/bin/sh"}
		},
	}
}

// Runner runs sh.
type Runner struct {
	tool *tool.Runner
}

// New creates a Runner.
func New(deps tool.Dependencies) (*Runner, error) {
	r, err := tool.New(Definition(), deps)
	if err != nil {
		return nil, err
	}
	return &Runner{tool: r}, nil
}

// Run runs sh with s.
func (r *Runner) Run(ctx context.Context, s *Settings) error {
	if s == nil {
		s = &Settings{}
	}
	return r.tool.Run(ctx, &s.Settings, Arguments(s))
}

// RunWith runs sh with raw process settings and a post-exit hook.
func (r *Runner) RunWith(ctx context.Context, s *Settings, raw *tool.ProcessSettings, post tool.PostExitFunc) error {
	if s == nil {
		s = &Settings{}
	}
	return r.tool.RunWith(ctx, &s.Settings, Arguments(s), raw, post)
}
