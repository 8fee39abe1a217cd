// Package environ abstracts the process environment (working directory,
// environment variables, platform) so tool resolution and invocation can be
// exercised against fixed values in tests.
package environ

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"strings"
)

// ErrNoWorkingDir is returned when an environment has no working directory.
var ErrNoWorkingDir = errors.New("working directory not set")

// Environment provides the ambient state a tool invocation inherits.
type Environment interface {
	// WorkingDir returns the current working directory.
	WorkingDir() (string, error)

	// Getenv looks up a single variable.
	Getenv(name string) (string, bool)

	// Environ returns a copy of all variables.
	Environ() map[string]string

	// IsUnix reports whether the platform uses Unix path conventions.
	IsUnix() bool

	// ListSeparator returns the separator used in PATH-style lists.
	ListSeparator() string
}

type osEnv struct{}

// OS returns the Environment of the running process.
func OS() Environment {
	return osEnv{}
}

func (osEnv) WorkingDir() (string, error) {
	return os.Getwd()
}

func (osEnv) Getenv(name string) (string, bool) {
	return os.LookupEnv(name)
}

func (osEnv) Environ() map[string]string {
	return Parse(os.Environ())
}

func (osEnv) IsUnix() bool {
	return runtime.GOOS != "windows"
}

func (e osEnv) ListSeparator() string {
	return separatorFor(e.IsUnix())
}

// Static is a fixed Environment.
type Static struct {
	Dir       string
	Variables map[string]string
	Windows   bool
}

// WorkingDir returns Dir, or ErrNoWorkingDir when it is empty.
func (s *Static) WorkingDir() (string, error) {
	if s.Dir == "" {
		return "", ErrNoWorkingDir
	}
	return s.Dir, nil
}

// Getenv looks up name in Variables.
func (s *Static) Getenv(name string) (string, bool) {
	v, ok := s.Variables[name]
	return v, ok
}

// Environ returns a copy of Variables.
func (s *Static) Environ() map[string]string {
	out := make(map[string]string, len(s.Variables))
	for k, v := range s.Variables {
		out[k] = v
	}
	return out
}

// IsUnix reports the inverse of Windows.
func (s *Static) IsUnix() bool {
	return !s.Windows
}

// ListSeparator returns ":" on Unix and ";" otherwise.
func (s *Static) ListSeparator() string {
	return separatorFor(s.IsUnix())
}

func separatorFor(unix bool) string {
	if unix {
		return ":"
	}
	return ";"
}

// Parse converts KEY=VALUE pairs into a map. Later duplicates win.
func Parse(pairs []string) map[string]string {
	out := make(map[string]string, len(pairs))
	for _, kv := range pairs {
		key, value, ok := strings.Cut(kv, "=")
		if !ok || key == "" {
			continue
		}
		out[key] = value
	}
	return out
}

// Merge overlays overrides on base and returns a new map.
func Merge(base, overrides map[string]string) map[string]string {
	out := make(map[string]string, len(base)+len(overrides))
	for k, v := range base {
		out[k] = v
	}
	for k, v := range overrides {
		out[k] = v
	}
	return out
}

// SearchPath splits the PATH variable of env into its non-empty entries.
func SearchPath(env Environment) []string {
	value, ok := env.Getenv("PATH")
	if !ok || value == "" {
		return nil
	}
	var dirs []string
	for _, dir := range strings.Split(value, env.ListSeparator()) {
		if dir != "" {
			dirs = append(dirs, dir)
		}
	}
	return dirs
}

// Abs makes path absolute relative to the working directory of env.
// A path that cannot be absolutized is returned cleaned.
func Abs(env Environment, path string) string {
	if filepath.IsAbs(path) {
		return filepath.Clean(path)
	}
	wd, err := env.WorkingDir()
	if err != nil {
		return filepath.Clean(path)
	}
	return filepath.Join(wd, path)
}
