// Package logging stores the output transcripts of tool invocations.
package logging

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/spf13/afero"

	"github.com/jmgilman/toolrun/internal/names"
)

// logExt is the extension of transcript files.
const logExt = ".log"

// PathManager handles log file path construction and directory management.
// Layout: <baseDir>/<tool>/<invocationID>.log
type PathManager struct {
	fs      afero.Fs
	baseDir string
}

// NewPathManager creates a new PathManager with the given base directory.
// The base directory is typically ~/.local/share/toolrun/logs.
func NewPathManager(fs afero.Fs, baseDir string) *PathManager {
	if fs == nil {
		fs = afero.NewOsFs()
	}
	return &PathManager{fs: fs, baseDir: baseDir}
}

// BaseDir returns the base log directory.
func (p *PathManager) BaseDir() string {
	return p.baseDir
}

// ToolDir returns the log directory for a tool.
func (p *PathManager) ToolDir(tool string) string {
	return filepath.Join(p.baseDir, dirName(tool))
}

// InvocationLogPath returns the transcript path of one invocation.
func (p *PathManager) InvocationLogPath(tool, id string) string {
	return filepath.Join(p.ToolDir(tool), id+logExt)
}

// EnsureInvocationLog creates the tool directory and returns the transcript
// path of the invocation.
func (p *PathManager) EnsureInvocationLog(tool, id string) (string, error) {
	if err := p.fs.MkdirAll(p.ToolDir(tool), 0o750); err != nil {
		return "", fmt.Errorf("create tool log directory: %w", err)
	}
	return p.InvocationLogPath(tool, id), nil
}

// NewInvocationID returns an invocation ID with no transcript yet.
func (p *PathManager) NewInvocationID(tool string, now time.Time) (string, error) {
	return names.UniqueInvocationID(now, func(id string) bool {
		return p.LogExists(tool, id)
	}, 0)
}

// LogExists checks if a transcript exists for the invocation.
func (p *PathManager) LogExists(tool, id string) bool {
	ok, err := afero.Exists(p.fs, p.InvocationLogPath(tool, id))
	return err == nil && ok
}

// RemoveInvocationLog removes one transcript if it exists.
func (p *PathManager) RemoveInvocationLog(tool, id string) error {
	if err := p.fs.Remove(p.InvocationLogPath(tool, id)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove invocation log: %w", err)
	}
	return nil
}

// RemoveToolLogs removes every transcript of a tool.
func (p *PathManager) RemoveToolLogs(tool string) error {
	if err := p.fs.RemoveAll(p.ToolDir(tool)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove tool logs: %w", err)
	}
	return nil
}

// ListInvocations returns the invocation IDs of a tool, oldest first.
func (p *PathManager) ListInvocations(tool string) ([]string, error) {
	entries, err := afero.ReadDir(p.fs, p.ToolDir(tool))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read tool log directory: %w", err)
	}

	var ids []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if id, ok := strings.CutSuffix(entry.Name(), logExt); ok {
			ids = append(ids, id)
		}
	}
	// IDs start with a sortable timestamp.
	slices.Sort(ids)
	return ids, nil
}

// ListTools returns the tools that have a log directory.
func (p *PathManager) ListTools() ([]string, error) {
	entries, err := afero.ReadDir(p.fs, p.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read log directory: %w", err)
	}

	var tools []string
	for _, entry := range entries {
		if entry.IsDir() {
			tools = append(tools, entry.Name())
		}
	}
	return tools, nil
}

// dirName maps a tool name to its directory name.
func dirName(tool string) string {
	name := strings.ToLower(tool)
	return strings.Map(func(r rune) rune {
		if r == '/' || r == '\\' || r == os.PathSeparator {
			return '_'
		}
		return r
	}, name)
}
