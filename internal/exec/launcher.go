package exec

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"iter"
	"os"
	"os/exec"
	"strings"
	"sync"
	"sync/atomic"
	"time"
)

// maxLineSize bounds a single output line; longer lines are split.
const maxLineSize = 1024 * 1024

// waitDelay bounds how long Wait keeps copying to a non-file Stdout or
// Stderr writer after the process exited.
const waitDelay = 500 * time.Millisecond

type launcher struct{}

// New returns a Launcher that uses os/exec.
func New() Launcher {
	return &launcher{}
}

func (l *launcher) Start(path string, opts *StartOptions) (Process, error) {
	if opts == nil {
		opts = &StartOptions{}
	}

	cmd := exec.Command(path, opts.Args...) //nolint:gosec // G204: runs resolved tool paths
	cmd.Dir = opts.Dir
	cmd.Env = opts.Env
	cmd.WaitDelay = waitDelay
	setProcessGroup(cmd)
	if opts.Stdin != nil {
		cmd.Stdin = opts.Stdin
	}

	p := &process{cmd: cmd, done: make(chan struct{})}

	// Redirected streams use os.Pipe rather than cmd.StdoutPipe: the reaper
	// goroutine calls cmd.Wait immediately, which would close a StdoutPipe
	// reader before the caller finished reading it.
	var childEnds []*os.File
	if opts.RedirectStdout {
		r, w, err := os.Pipe()
		if err != nil {
			return nil, fmt.Errorf("%w: stdout pipe: %w", ErrNotStarted, err)
		}
		cmd.Stdout = w
		p.stdout = newLines(r)
		childEnds = append(childEnds, w)
	} else {
		cmd.Stdout = opts.Stdout
	}
	if opts.RedirectStderr {
		r, w, err := os.Pipe()
		if err != nil {
			closeAll(childEnds)
			_ = p.Close()
			return nil, fmt.Errorf("%w: stderr pipe: %w", ErrNotStarted, err)
		}
		cmd.Stderr = w
		p.stderr = newLines(r)
		childEnds = append(childEnds, w)
	} else {
		cmd.Stderr = opts.Stderr
	}

	if err := cmd.Start(); err != nil {
		closeAll(childEnds)
		_ = p.Close()
		return nil, fmt.Errorf("%w: %w", ErrNotStarted, err)
	}

	// The child holds its own copies of the write ends.
	closeAll(childEnds)

	go p.reap()

	return p, nil
}

func closeAll(files []*os.File) {
	for _, f := range files {
		_ = f.Close()
	}
}

type process struct {
	cmd     *exec.Cmd
	stdout  *lines
	stderr  *lines
	done    chan struct{}
	waitErr error
}

func (p *process) reap() {
	err := p.cmd.Wait()
	var exitErr *exec.ExitError
	// ErrWaitDelay means a leftover descendant kept a passthrough stream
	// open; the exit status is still valid.
	if err != nil && !errors.As(err, &exitErr) && !errors.Is(err, exec.ErrWaitDelay) {
		p.waitErr = err
	}
	close(p.done)
}

func (p *process) Pid() int {
	return p.cmd.Process.Pid
}

func (p *process) Stdout() iter.Seq[string] {
	return p.stdout.seq()
}

func (p *process) Stderr() iter.Seq[string] {
	return p.stderr.seq()
}

func (p *process) Wait() error {
	<-p.done
	return p.waitErr
}

func (p *process) WaitTimeout(d time.Duration) (bool, error) {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-p.done:
		return true, p.waitErr
	case <-timer.C:
		return false, nil
	}
}

func (p *process) ExitCode() int {
	select {
	case <-p.done:
	default:
		return -1
	}
	if p.cmd.ProcessState == nil {
		return -1
	}
	return p.cmd.ProcessState.ExitCode()
}

// Kill kills the process and everything in its process group.
func (p *process) Kill() error {
	if p.cmd.Process == nil {
		return nil
	}
	select {
	case <-p.done:
		// The pid may already be reused.
		return nil
	default:
	}
	if err := killProcessGroup(p.cmd.Process.Pid); err != nil {
		return fmt.Errorf("kill process %d: %w", p.cmd.Process.Pid, err)
	}
	return nil
}

func (p *process) Close() error {
	return errors.Join(p.stdout.close(), p.stderr.close())
}

// lines is a single-pass line reader over a pipe.
type lines struct {
	r    io.ReadCloser
	used atomic.Bool
	once sync.Once
}

func newLines(r io.ReadCloser) *lines {
	return &lines{r: r}
}

func (l *lines) seq() iter.Seq[string] {
	return func(yield func(string) bool) {
		if l == nil || !l.used.CompareAndSwap(false, true) {
			return
		}
		reader := bufio.NewReaderSize(l.r, 64*1024)
		var line []byte
		for {
			chunk, isPrefix, err := reader.ReadLine()
			if err != nil {
				if len(line) > 0 {
					yield(string(line))
				}
				return
			}
			line = append(line, chunk...)
			if isPrefix && len(line) < maxLineSize {
				continue
			}
			if !yield(strings.TrimSuffix(string(line), "\r")) {
				return
			}
			line = line[:0]
		}
	}
}

func (l *lines) close() error {
	if l == nil {
		return nil
	}
	var err error
	l.once.Do(func() {
		err = l.r.Close()
	})
	return err
}
