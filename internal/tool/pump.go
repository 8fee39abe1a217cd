package tool

import (
	"fmt"
	"iter"
	"time"

	"golang.org/x/sync/errgroup"
)

// Stream names used in pump errors and log attributes.
const (
	StreamStdout = "stdout"
	StreamStderr = "stderr"
)

// pump drains up to two line streams into their sinks on independent
// workers.
type pump struct {
	group errgroup.Group
}

// StreamError reports a sink failure on one stream.
type StreamError struct {
	Stream string
	Err    error
}

func (e *StreamError) Error() string {
	return fmt.Sprintf("%s: %v", e.Stream, e.Err)
}

func (e *StreamError) Unwrap() error {
	return e.Err
}

// startPump starts one worker per stream that has a sink. Streams without a
// sink are not read.
func startPump(stdout iter.Seq[string], stdoutSink LineSink, stderr iter.Seq[string], stderrSink LineSink) *pump {
	p := &pump{}
	if stdoutSink != nil {
		p.group.Go(func() error { return drain(StreamStdout, stdout, stdoutSink) })
	}
	if stderrSink != nil {
		p.group.Go(func() error { return drain(StreamStderr, stderr, stderrSink) })
	}
	return p
}

// wait blocks until every worker finished and returns the first sink
// failure as a *StreamError.
func (p *pump) wait() error {
	return p.group.Wait()
}

// waitTimeout waits at most d for the workers. It reports whether they
// finished; unfinished workers are abandoned.
func (p *pump) waitTimeout(d time.Duration) (bool, error) {
	done := make(chan error, 1)
	go func() { done <- p.group.Wait() }()

	select {
	case err := <-done:
		return true, err
	default:
	}

	timer := time.NewTimer(max(d, 0))
	defer timer.Stop()
	select {
	case err := <-done:
		return true, err
	case <-timer.C:
		return false, nil
	}
}

// drain delivers every line to sink. After a sink failure the remaining
// lines are read and discarded so the producer never blocks on a full pipe.
func drain(stream string, lines iter.Seq[string], sink LineSink) error {
	var failure error
	for line := range lines {
		if failure != nil {
			continue
		}
		failure = deliver(sink, line)
	}
	if failure != nil {
		return &StreamError{Stream: stream, Err: failure}
	}
	return nil
}

func deliver(sink LineSink, line string) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("sink panicked: %v", r)
		}
	}()
	sink(line)
	return nil
}
