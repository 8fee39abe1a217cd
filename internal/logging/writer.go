package logging

import (
	"fmt"
	"io"
	"sync"

	"github.com/spf13/afero"
)

// Stream tags written in front of every transcript line.
const (
	StdoutTag = "out"
	StderrTag = "err"
)

// OutputLog records the output lines of one invocation in a transcript file
// and optionally tees them to terminal writers. It is safe for concurrent
// use by the stdout and stderr pump workers.
type OutputLog struct {
	mu     sync.Mutex
	file   afero.File
	stdout io.Writer
	stderr io.Writer
	err    error
}

// NewOutputLog creates or truncates the transcript at path. Lines are also
// written to stdout and stderr when they are non-nil.
func NewOutputLog(fs afero.Fs, path string, stdout, stderr io.Writer) (*OutputLog, error) {
	if fs == nil {
		fs = afero.NewOsFs()
	}
	file, err := fs.Create(path)
	if err != nil {
		return nil, fmt.Errorf("create log file: %w", err)
	}
	return &OutputLog{file: file, stdout: stdout, stderr: stderr}, nil
}

// StdoutSink returns a line sink for standard output.
func (l *OutputLog) StdoutSink() func(line string) {
	return func(line string) { l.write(StdoutTag, l.stdout, line) }
}

// StderrSink returns a line sink for standard error.
func (l *OutputLog) StderrSink() func(line string) {
	return func(line string) { l.write(StderrTag, l.stderr, line) }
}

// Note records a line that did not come from the tool, such as the
// command line or the final status.
func (l *OutputLog) Note(format string, args ...any) {
	l.write("#", nil, fmt.Sprintf(format, args...))
}

func (l *OutputLog) write(tag string, tee io.Writer, line string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.file != nil && l.err == nil {
		if _, err := fmt.Fprintf(l.file, "%s %s\n", tag, line); err != nil {
			l.err = fmt.Errorf("write to log file: %w", err)
		}
	}
	if tee != nil {
		// Tee errors are ignored.
		_, _ = fmt.Fprintln(tee, line)
	}
}

// Path returns the transcript path, or "" once closed.
func (l *OutputLog) Path() string {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.file != nil {
		return l.file.Name()
	}
	return ""
}

// Close closes the transcript and returns the first write error, if any.
func (l *OutputLog) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.file == nil {
		return l.err
	}
	if err := l.file.Close(); err != nil && l.err == nil {
		l.err = fmt.Errorf("close log file: %w", err)
	}
	l.file = nil
	return l.err
}

// StripTag splits a transcript line into its tag and text.
func StripTag(line string) (tag, text string) {
	for _, t := range []string{StdoutTag, StderrTag, "#"} {
		if len(line) > len(t) && line[:len(t)+1] == t+" " {
			return t, line[len(t)+1:]
		}
	}
	return "", line
}
