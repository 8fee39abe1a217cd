package logging

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/spf13/afero"
)

// DefaultTailLines is the default number of lines to read when tailing.
const DefaultTailLines = 100

// Reader reads invocation transcripts.
type Reader struct {
	pathMgr *PathManager
}

// NewReader creates a new Reader with the given PathManager.
func NewReader(pathMgr *PathManager) *Reader {
	return &Reader{pathMgr: pathMgr}
}

// ReadAll reads the entire transcript of an invocation.
func (r *Reader) ReadAll(tool, id string) ([]string, error) {
	return readLastNLines(r.pathMgr.fs, r.pathMgr.InvocationLogPath(tool, id), 0)
}

// ReadLastN reads the last n lines of an invocation's transcript.
// If n <= 0, uses DefaultTailLines.
func (r *Reader) ReadLastN(tool, id string, n int) ([]string, error) {
	if n <= 0 {
		n = DefaultTailLines
	}
	return readLastNLines(r.pathMgr.fs, r.pathMgr.InvocationLogPath(tool, id), n)
}

// Latest returns the ID of the most recent invocation of a tool.
func (r *Reader) Latest(tool string) (string, error) {
	ids, err := r.pathMgr.ListInvocations(tool)
	if err != nil {
		return "", err
	}
	if len(ids) == 0 {
		return "", fmt.Errorf("no logs for tool %s", tool)
	}
	return ids[len(ids)-1], nil
}

// Follow streams lines appended to a transcript to out, like tail -f. It
// blocks until ctx is cancelled.
func (r *Reader) Follow(ctx context.Context, tool, id string, out io.Writer, pollInterval time.Duration) error {
	file, err := r.pathMgr.fs.Open(r.pathMgr.InvocationLogPath(tool, id))
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	defer file.Close()

	if _, err := file.Seek(0, io.SeekEnd); err != nil {
		return fmt.Errorf("seek to end: %w", err)
	}

	reader := bufio.NewReader(file)
	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			for {
				line, err := reader.ReadBytes('\n')
				if len(line) > 0 {
					if _, werr := out.Write(line); werr != nil {
						return fmt.Errorf("write output: %w", werr)
					}
				}
				if errors.Is(err, io.EOF) {
					break
				}
				if err != nil {
					return fmt.Errorf("read line: %w", err)
				}
			}
		}
	}
}

// readLastNLines reads the last n lines of a file, or all lines when n is 0.
// A ring buffer keeps memory bounded for large transcripts.
func readLastNLines(fs afero.Fs, path string, n int) ([]string, error) {
	file, err := fs.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	defer file.Close()

	var all []string
	ring := make([]string, n)
	idx := 0
	count := 0

	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 64*1024), 2*1024*1024)
	for scanner.Scan() {
		if n == 0 {
			all = append(all, scanner.Text())
			continue
		}
		ring[idx] = scanner.Text()
		idx = (idx + 1) % n
		count++
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan log file: %w", err)
	}

	if n == 0 {
		return all, nil
	}
	if count == 0 {
		return nil, nil
	}
	if count < n {
		return ring[:count], nil
	}

	result := make([]string, n)
	for i := range n {
		result[i] = ring[(idx+i)%n]
	}
	return result, nil
}
