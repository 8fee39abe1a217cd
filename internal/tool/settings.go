package tool

import (
	"fmt"
	"io"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/jmgilman/toolrun/internal/args"
)

// validate is the shared validator instance.
var validate = validator.New()

// LineSink receives one line of tool output without its line terminator.
// Sinks are called from pump workers; one sink per stream is never called
// concurrently with itself.
type LineSink func(line string)

// Settings is the per-invocation configuration shared by every tool.
type Settings struct {
	// ToolPath bypasses resolution when set.
	ToolPath string

	// WorkingDirectory overrides the process working directory.
	WorkingDirectory string

	// EnvironmentVariables are merged over the ambient environment.
	EnvironmentVariables map[string]string `validate:"dive,keys,required,endkeys"`

	// Timeout bounds the wait for exit. Zero waits indefinitely.
	Timeout time.Duration `validate:"gte=0"`

	// ArgumentCustomization rewrites the final argument list once.
	ArgumentCustomization func(*args.Builder) *args.Builder

	// StdoutSink and StderrSink capture the streams line by line. A stream
	// without a sink is passed through to the parent's stream.
	StdoutSink LineSink
	StderrSink LineSink
}

// Validate checks the settings for errors using struct tags.
func (s *Settings) Validate() error {
	if err := validate.Struct(s); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidSettings, err)
	}
	return nil
}

// ProcessSettings is raw process configuration. Non-zero fields take
// precedence over the values derived from Settings and the Definition.
type ProcessSettings struct {
	Args             []string
	WorkingDirectory string
	Env              map[string]string
	Stdin            io.Reader
	Stdout           io.Writer
	Stderr           io.Writer
}

// PostExitFunc runs once after the process exited, whether or not the exit
// code was accepted. It receives the exit code.
type PostExitFunc func(exitCode int)
