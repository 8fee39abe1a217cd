// Package exec starts external tool processes and exposes their output as
// lazy line sequences.
package exec

import (
	"errors"
	"io"
	"iter"
	"time"
)

// ErrNotStarted is returned when a process could not be created.
var ErrNotStarted = errors.New("process was not started")

// StartOptions configures a process launch.
type StartOptions struct {
	Args  []string  // Arguments, excluding the executable
	Dir   string    // Working directory (empty = current)
	Env   []string  // Full environment (KEY=VALUE format); nil inherits the parent's
	Stdin io.Reader // Stdin source (nil = no input)

	// RedirectStdout and RedirectStderr capture the stream for reading through
	// Process.Stdout and Process.Stderr. A captured stream must be drained or
	// the process may block once the pipe buffer fills.
	RedirectStdout bool
	RedirectStderr bool

	// Stdout and Stderr receive the stream when it is not redirected.
	// Nil discards it.
	Stdout io.Writer
	Stderr io.Writer
}

// Process is a running tool process. It is owned by a single caller.
//
//go:generate go run github.com/matryer/moq@latest -pkg mocks -out mocks/process.go . Process
type Process interface {
	// Pid returns the operating system process ID.
	Pid() int

	// Stdout returns the redirected standard output as lines. The sequence is
	// single-pass: ranging over it a second time yields nothing. It is empty
	// when stdout was not redirected.
	Stdout() iter.Seq[string]

	// Stderr is the standard error counterpart of Stdout.
	Stderr() iter.Seq[string]

	// Wait blocks until the process exits. A non-zero exit code is not an
	// error; read it with ExitCode.
	Wait() error

	// WaitTimeout waits at most d and reports whether the process exited.
	WaitTimeout(d time.Duration) (bool, error)

	// ExitCode returns the exit code, or -1 if the process has not exited.
	ExitCode() int

	// Kill terminates the process and, where supported, its process group.
	// Killing an exited process is a no-op.
	Kill() error

	// Close releases the redirected streams.
	Close() error
}

// Launcher starts processes.
//
//go:generate go run github.com/matryer/moq@latest -pkg mocks -out mocks/launcher.go . Launcher
type Launcher interface {
	// Start launches the executable at path. The returned error wraps
	// ErrNotStarted when the process could not be created.
	Start(path string, opts *StartOptions) (Process, error)
}
