// Package locator finds installed tool executables by name.
package locator

import (
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/spf13/afero"

	"github.com/jmgilman/toolrun/internal/environ"
)

// Locator resolves an executable name to an installed path.
//
//go:generate go run github.com/matryer/moq@latest -pkg mocks -out mocks/locator.go . Locator
type Locator interface {
	// Resolve returns the path of the executable and true, or "" and false
	// when it cannot be found.
	Resolve(name string) (string, bool)
}

// Registry is a Locator backed by registered paths, search directories and
// the PATH variable, consulted in that order.
type Registry struct {
	fs          afero.Fs
	env         environ.Environment
	searchPaths []string

	mu         sync.RWMutex
	registered map[string]string
}

// NewRegistry creates a Registry. Relative search paths are resolved against
// the working directory of env.
func NewRegistry(fs afero.Fs, env environ.Environment, searchPaths ...string) *Registry {
	abs := make([]string, 0, len(searchPaths))
	for _, p := range searchPaths {
		abs = append(abs, environ.Abs(env, p))
	}
	return &Registry{
		fs:          fs,
		env:         env,
		searchPaths: abs,
		registered:  make(map[string]string),
	}
}

// Register records path as the location of the executable with its file name.
// A later registration of the same file name replaces the earlier one.
func (r *Registry) Register(path string) {
	abs := environ.Abs(r.env, path)

	r.mu.Lock()
	defer r.mu.Unlock()
	r.registered[filepath.Base(abs)] = abs
}

// Registered returns the registered paths sorted by file name.
func (r *Registry) Registered() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.registered))
	for name := range r.registered {
		names = append(names, name)
	}
	sort.Strings(names)

	paths := make([]string, len(names))
	for i, name := range names {
		paths[i] = r.registered[name]
	}
	return paths
}

// Resolve implements Locator.
func (r *Registry) Resolve(name string) (string, bool) {
	if name == "" {
		return "", false
	}

	r.mu.RLock()
	path, ok := r.registered[name]
	r.mu.RUnlock()
	if ok && isFile(r.fs, path) {
		return path, true
	}

	for _, dir := range r.searchPaths {
		if found, ok := Glob(r.fs, dir, name); ok {
			return found, true
		}
	}

	for _, dir := range environ.SearchPath(r.env) {
		candidate := filepath.Join(environ.Abs(r.env, dir), name)
		if isFile(r.fs, candidate) {
			return candidate, true
		}
	}

	return "", false
}

// Glob searches root recursively for a regular file called name and returns
// the lexically first match.
func Glob(fs afero.Fs, root, name string) (string, bool) {
	if !isDir(fs, root) {
		return "", false
	}
	pattern := "**/" + escapeMeta(name)
	matches, err := doublestar.Glob(afero.NewIOFS(afero.NewBasePathFs(fs, root)), pattern, doublestar.WithFilesOnly())
	if err != nil || len(matches) == 0 {
		return "", false
	}
	sort.Strings(matches)
	return filepath.Join(root, filepath.FromSlash(matches[0])), true
}

// escapeMeta backslash-escapes glob meta characters so name matches literally.
func escapeMeta(name string) string {
	var b strings.Builder
	for _, r := range name {
		if strings.ContainsRune(`*?[]{}\`, r) {
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}

func isFile(fs afero.Fs, path string) bool {
	info, err := fs.Stat(path)
	return err == nil && !info.IsDir()
}

func isDir(fs afero.Fs, path string) bool {
	info, err := fs.Stat(path)
	return err == nil && info.IsDir()
}
