package tool

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Sentinel errors for tool invocations. Every error returned by Runner.Run
// matches exactly one of them with errors.Is.
var (
	ErrToolNotFound            = errors.New("could not locate executable")
	ErrInvalidWorkingDirectory = errors.New("could not resolve working directory")
	ErrProcessStartFailed      = errors.New("process was not started")
	ErrToolTimeout             = errors.New("tool timeout")
	ErrToolExecutionFailed     = errors.New("process returned an error")
	ErrInvalidSettings         = errors.New("invalid settings")
	ErrOutputSink              = errors.New("output sink failed")
)

// NotFoundError is returned when no resolution strategy produced a path.
type NotFoundError struct {
	Tool       string
	Candidates []string
}

func (e *NotFoundError) Error() string {
	if len(e.Candidates) == 0 {
		return fmt.Sprintf("%s: could not locate executable", e.Tool)
	}
	return fmt.Sprintf("%s: could not locate executable (tried %s)", e.Tool, strings.Join(e.Candidates, ", "))
}

func (e *NotFoundError) Unwrap() error {
	return ErrToolNotFound
}

// WorkingDirectoryError is returned when the working directory is missing or
// cannot be determined.
type WorkingDirectoryError struct {
	Tool string
	Dir  string
	Err  error
}

func (e *WorkingDirectoryError) Error() string {
	if e.Dir == "" {
		return fmt.Sprintf("%s: could not resolve working directory: %v", e.Tool, e.Err)
	}
	return fmt.Sprintf("%s: could not resolve working directory %s: %v", e.Tool, e.Dir, e.Err)
}

func (e *WorkingDirectoryError) Unwrap() []error {
	return []error{ErrInvalidWorkingDirectory, e.Err}
}

// StartError is returned when the launcher could not create the process.
type StartError struct {
	Tool string
	Path string
	Err  error
}

func (e *StartError) Error() string {
	return fmt.Sprintf("%s: process was not started (%s): %v", e.Tool, e.Path, e.Err)
}

func (e *StartError) Unwrap() []error {
	return []error{ErrProcessStartFailed, e.Err}
}

// TimeoutError is returned when the tool did not exit within its timeout.
type TimeoutError struct {
	Tool    string
	Timeout time.Duration
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("tool timeout (%s): %s", e.Timeout, e.Tool)
}

func (e *TimeoutError) Unwrap() error {
	return ErrToolTimeout
}

// ExitError is returned when the exit-code policy rejects the exit code.
type ExitError struct {
	Tool     string
	ExitCode int
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("%s: process returned an error (exit code %d)", e.Tool, e.ExitCode)
}

func (e *ExitError) Unwrap() error {
	return ErrToolExecutionFailed
}

// SinkError is returned when an output sink panicked while the tool
// otherwise succeeded.
type SinkError struct {
	Tool   string
	Stream string
	Err    error
}

func (e *SinkError) Error() string {
	return fmt.Sprintf("%s: %s sink failed: %v", e.Tool, e.Stream, e.Err)
}

func (e *SinkError) Unwrap() []error {
	return []error{ErrOutputSink, e.Err}
}
