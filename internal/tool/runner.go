package tool

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"maps"
	"slices"
	"time"

	"github.com/jmgilman/toolrun/internal/args"
	"github.com/jmgilman/toolrun/internal/environ"
	"github.com/jmgilman/toolrun/internal/exec"
	"github.com/jmgilman/toolrun/internal/names"
	"github.com/jmgilman/toolrun/internal/slogger"
)

// State is a step of an invocation's lifecycle, recorded in debug logs.
type State string

// Invocation states. Completed and Failed are terminal.
const (
	StateCreated     State = "created"
	StateResolving   State = "resolving"
	StateResolved    State = "resolved"
	StateUnresolved  State = "unresolved"
	StateStarting    State = "starting"
	StateRunning     State = "running"
	StateTimedOut    State = "timed_out"
	StateExited      State = "exited"
	StateClassifying State = "classifying"
	StateCompleted   State = "completed"
	StateFailed      State = "failed"
)

// drainGrace is the least time given to buffered output after a process
// exited close to its deadline.
const drainGrace = 100 * time.Millisecond

var errNotDirectory = errors.New("not a directory")

// invocation carries the values of one RunWith call.
type invocation struct {
	id     string
	logger *slog.Logger
}

func (inv *invocation) transition(state State, attrs ...any) {
	inv.logger.Debug("tool state", append([]any{"state", state}, attrs...)...)
}

func (inv *invocation) fail(err error) error {
	inv.transition(StateFailed, "error", err)
	return err
}

// RunWith runs the tool with raw process settings and a post-exit hook.
// Both may be nil. The hook runs exactly once after the process exited,
// even when the exit code is rejected; it does not run when the process
// never started or timed out.
func (r *Runner) RunWith(ctx context.Context, s *Settings, a *args.Builder, raw *ProcessSettings, post PostExitFunc) error {
	if s == nil {
		s = &Settings{}
	}
	if raw == nil {
		raw = &ProcessSettings{}
	}

	inv := &invocation{}
	if id, ok := InvocationIDFromContext(ctx); ok {
		inv.id = id
	} else {
		inv.id = names.InvocationID(time.Now())
	}
	inv.logger = slogger.FromContext(ctx).With("tool", r.def.Name, "invocation", inv.id)
	inv.transition(StateCreated)

	if err := s.Validate(); err != nil {
		return inv.fail(fmt.Errorf("tool %s: %w", r.def.Name, err))
	}

	dir, err := r.workingDirectory(s, raw)
	if err != nil {
		return inv.fail(err)
	}

	env := r.environment(s, raw)

	if a == nil {
		a = args.New()
	}
	if s.ArgumentCustomization != nil {
		if customized := s.ArgumentCustomization(a); customized != nil {
			a = customized
		}
	}
	argv := a.Tokens()
	if raw.Args != nil {
		argv = slices.Clone(raw.Args)
	}

	inv.transition(StateResolving)
	path, ok := r.Resolve(s)
	if !ok {
		inv.transition(StateUnresolved)
		return inv.fail(&NotFoundError{Tool: r.def.Name, Candidates: slices.Clone(r.def.ExecutableNames)})
	}
	inv.transition(StateResolved, "path", path)

	opts := &exec.StartOptions{
		Args:           argv,
		Dir:            dir,
		Env:            env,
		Stdin:          raw.Stdin,
		RedirectStdout: s.StdoutSink != nil,
		RedirectStderr: s.StderrSink != nil,
		Stdout:         r.stdout,
		Stderr:         r.stderr,
	}
	if raw.Stdout != nil {
		opts.Stdout = raw.Stdout
	}
	if raw.Stderr != nil {
		opts.Stderr = raw.Stderr
	}

	inv.transition(StateStarting)
	if raw.Args != nil {
		inv.logger.Info("executing tool", "path", path, "args", args.New(raw.Args...).RenderSafe())
	} else {
		inv.logger.Info("executing tool", "path", path, "args", a.RenderSafe())
	}
	proc, err := r.launcher.Start(path, opts)
	if err != nil {
		return inv.fail(&StartError{Tool: r.def.Name, Path: path, Err: err})
	}
	defer func() {
		if err := proc.Close(); err != nil {
			inv.logger.Debug("close process streams", "error", err)
		}
	}()
	inv.transition(StateRunning, "pid", proc.Pid())

	out := startPump(proc.Stdout(), s.StdoutSink, proc.Stderr(), s.StderrSink)

	var pumpErr error
	if s.Timeout > 0 {
		started := time.Now()
		exited, err := proc.WaitTimeout(s.Timeout)
		if err != nil {
			return inv.fail(r.waitError(err))
		}
		if !exited {
			inv.transition(StateTimedOut, "timeout", s.Timeout)
			if err := proc.Kill(); err != nil {
				inv.logger.Warn("kill timed out process", "pid", proc.Pid(), "error", err)
			}
			if err := proc.Wait(); err != nil {
				inv.logger.Debug("reap timed out process", "error", err)
			}
			return inv.fail(&TimeoutError{Tool: r.def.Name, Timeout: s.Timeout})
		}
		var drained bool
		drained, pumpErr = out.waitTimeout(max(s.Timeout-time.Since(started), drainGrace))
		if !drained {
			inv.logger.Warn("output still open after process exit, abandoning it")
		}
	} else {
		if err := proc.Wait(); err != nil {
			return inv.fail(r.waitError(err))
		}
		pumpErr = out.wait()
	}

	code := proc.ExitCode()
	inv.transition(StateExited, "exit_code", code)

	inv.transition(StateClassifying)
	if err := r.classify(code, post); err != nil {
		return inv.fail(err)
	}

	if pumpErr != nil {
		sinkErr := &SinkError{Tool: r.def.Name, Err: pumpErr}
		var streamErr *StreamError
		if errors.As(pumpErr, &streamErr) {
			sinkErr.Stream = streamErr.Stream
			sinkErr.Err = streamErr.Err
		}
		return inv.fail(sinkErr)
	}

	inv.transition(StateCompleted)
	return nil
}

// classify applies the exit-code policy and runs post whatever the policy
// decides, including when it panics.
func (r *Runner) classify(code int, post PostExitFunc) error {
	if post != nil {
		defer post(code)
	}
	if err := r.def.ExitCode(r.def.Name, code); err != nil {
		if errors.Is(err, ErrToolExecutionFailed) {
			return err
		}
		return fmt.Errorf("tool %s: %w: %w", r.def.Name, ErrToolExecutionFailed, err)
	}
	return nil
}

func (r *Runner) workingDirectory(s *Settings, raw *ProcessSettings) (string, error) {
	var (
		dir string
		err error
	)
	if raw.WorkingDirectory != "" {
		dir = environ.Abs(r.env, raw.WorkingDirectory)
	} else {
		dir, err = r.def.WorkingDirectory(s, r.env)
		if err != nil {
			return "", &WorkingDirectoryError{Tool: r.def.Name, Err: err}
		}
	}

	info, err := r.fs.Stat(dir)
	if err != nil {
		return "", &WorkingDirectoryError{Tool: r.def.Name, Dir: dir, Err: err}
	}
	if !info.IsDir() {
		return "", &WorkingDirectoryError{Tool: r.def.Name, Dir: dir, Err: errNotDirectory}
	}
	return dir, nil
}

// environment merges the tool's projection and the raw overrides over the
// ambient environment, as sorted KEY=VALUE pairs.
func (r *Runner) environment(s *Settings, raw *ProcessSettings) []string {
	merged := environ.Merge(environ.Merge(r.env.Environ(), r.def.Environment(s)), raw.Env)
	env := make([]string, 0, len(merged))
	for _, key := range slices.Sorted(maps.Keys(merged)) {
		env = append(env, key+"="+merged[key])
	}
	return env
}

func (r *Runner) waitError(err error) error {
	return fmt.Errorf("tool %s: wait for process: %w: %w", r.def.Name, ErrToolExecutionFailed, err)
}
