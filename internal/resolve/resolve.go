// Package resolve maps a tool's explicit path or candidate executable names to
// an existing executable path.
//
// Two strategies exist. LocatorResolver defers name lookup to a
// locator.Locator. LegacyResolver is used when no locator is configured and
// searches a local tools directory and the PATH variable itself.
package resolve

import (
	"path/filepath"

	"github.com/spf13/afero"

	"github.com/jmgilman/toolrun/internal/environ"
	"github.com/jmgilman/toolrun/internal/locator"
)

// DefaultToolsDir is the conventional local tool directory searched by
// LegacyResolver, relative to the working directory.
const DefaultToolsDir = "tools"

// Request describes what to resolve.
type Request struct {
	// ToolPath is an explicit path. When set it is returned absolutized
	// without an existence check.
	ToolPath string

	// ExecutableNames are candidate file names, in priority order.
	ExecutableNames []string

	// AlternativePaths are tool-specific fallback locations.
	AlternativePaths []string
}

// Resolver resolves a Request to a path. It never fails; an unresolved
// request returns "" and false.
type Resolver interface {
	Resolve(req Request) (string, bool)
}

// Config selects and configures a Resolver.
type Config struct {
	// Locator enables LocatorResolver when non-nil.
	Locator locator.Locator

	// FS is used for existence checks. Defaults to the OS filesystem.
	FS afero.Fs

	// Env supplies the working directory and PATH. Defaults to environ.OS().
	Env environ.Environment

	// ToolsDir overrides DefaultToolsDir for LegacyResolver.
	ToolsDir string
}

// New returns a LocatorResolver when cfg.Locator is set, else a LegacyResolver.
func New(cfg Config) Resolver {
	if cfg.FS == nil {
		cfg.FS = afero.NewOsFs()
	}
	if cfg.Env == nil {
		cfg.Env = environ.OS()
	}
	if cfg.Locator != nil {
		return &LocatorResolver{locator: cfg.Locator, fs: cfg.FS, env: cfg.Env}
	}
	toolsDir := cfg.ToolsDir
	if toolsDir == "" {
		toolsDir = DefaultToolsDir
	}
	return &LegacyResolver{fs: cfg.FS, env: cfg.Env, toolsDir: toolsDir}
}

// LocatorResolver resolves in order: explicit path, locator lookup per
// candidate name, first existing alternative path.
type LocatorResolver struct {
	locator locator.Locator
	fs      afero.Fs
	env     environ.Environment
}

// Resolve implements Resolver.
func (r *LocatorResolver) Resolve(req Request) (string, bool) {
	if req.ToolPath != "" {
		return environ.Abs(r.env, req.ToolPath), true
	}

	for _, name := range req.ExecutableNames {
		if path, ok := r.locator.Resolve(name); ok && path != "" {
			return path, true
		}
	}

	return firstExisting(r.fs, r.env, req.AlternativePaths)
}

// LegacyResolver resolves in order: explicit path, first existing
// alternative path, then per candidate name a recursive search of the tools
// directory followed by each PATH directory.
type LegacyResolver struct {
	fs       afero.Fs
	env      environ.Environment
	toolsDir string
}

// Resolve implements Resolver.
func (r *LegacyResolver) Resolve(req Request) (string, bool) {
	if req.ToolPath != "" {
		return environ.Abs(r.env, req.ToolPath), true
	}

	if path, ok := firstExisting(r.fs, r.env, req.AlternativePaths); ok {
		return path, true
	}

	toolsDir := environ.Abs(r.env, r.toolsDir)
	var pathDirs []string
	for i, name := range req.ExecutableNames {
		if path, ok := locator.Glob(r.fs, toolsDir, name); ok {
			return path, true
		}

		// PATH is read once, on first use.
		if i == 0 {
			pathDirs = environ.SearchPath(r.env)
		}
		for _, dir := range pathDirs {
			candidate := environ.Abs(r.env, filepath.Join(dir, name))
			if exists(r.fs, candidate) {
				return candidate, true
			}
		}
	}

	return "", false
}

func firstExisting(fs afero.Fs, env environ.Environment, paths []string) (string, bool) {
	for _, p := range paths {
		if p == "" {
			continue
		}
		abs := environ.Abs(env, p)
		if exists(fs, abs) {
			return abs, true
		}
	}
	return "", false
}

// exists reports whether path is an existing regular file.
func exists(fs afero.Fs, path string) bool {
	info, err := fs.Stat(path)
	return err == nil && !info.IsDir()
}
