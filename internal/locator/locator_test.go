package locator

import (
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmgilman/toolrun/internal/environ"
)

func touch(t *testing.T, fs afero.Fs, path string) {
	t.Helper()
	require.NoError(t, afero.WriteFile(fs, path, []byte("#!/bin/sh\n"), 0o755))
}

func TestRegistry_Resolve(t *testing.T) {
	t.Run("registered path wins", func(t *testing.T) {
		fs := afero.NewMemMapFs()
		touch(t, fs, "/opt/custom/dotnet")
		touch(t, fs, "/work/tools/sdk/dotnet")
		touch(t, fs, "/usr/bin/dotnet")

		env := &environ.Static{Dir: "/work", Variables: map[string]string{"PATH": "/usr/bin"}}
		r := NewRegistry(fs, env, "tools")
		r.Register("/opt/custom/dotnet")

		path, ok := r.Resolve("dotnet")
		require.True(t, ok)
		assert.Equal(t, "/opt/custom/dotnet", path)
	})

	t.Run("missing registered file falls through", func(t *testing.T) {
		fs := afero.NewMemMapFs()
		touch(t, fs, "/usr/bin/dotnet")

		env := &environ.Static{Dir: "/work", Variables: map[string]string{"PATH": "/usr/bin"}}
		r := NewRegistry(fs, env)
		r.Register("/gone/dotnet")

		path, ok := r.Resolve("dotnet")
		require.True(t, ok)
		assert.Equal(t, "/usr/bin/dotnet", path)
	})

	t.Run("search directories are globbed recursively", func(t *testing.T) {
		fs := afero.NewMemMapFs()
		touch(t, fs, "/work/tools/b/nested/nuget")
		touch(t, fs, "/work/tools/a/nuget")
		touch(t, fs, "/usr/bin/nuget")

		env := &environ.Static{Dir: "/work", Variables: map[string]string{"PATH": "/usr/bin"}}
		r := NewRegistry(fs, env, "tools")

		path, ok := r.Resolve("nuget")
		require.True(t, ok)
		assert.Equal(t, "/work/tools/a/nuget", path)
	})

	t.Run("PATH directories in order", func(t *testing.T) {
		fs := afero.NewMemMapFs()
		touch(t, fs, "/second/git")
		touch(t, fs, "/third/git")

		env := &environ.Static{Dir: "/work", Variables: map[string]string{"PATH": "/first:/second:/third"}}
		r := NewRegistry(fs, env)

		path, ok := r.Resolve("git")
		require.True(t, ok)
		assert.Equal(t, "/second/git", path)
	})

	t.Run("directories never match", func(t *testing.T) {
		fs := afero.NewMemMapFs()
		require.NoError(t, fs.MkdirAll("/usr/bin/tool", 0o755))

		env := &environ.Static{Dir: "/work", Variables: map[string]string{"PATH": "/usr/bin"}}
		_, ok := NewRegistry(fs, env).Resolve("tool")
		assert.False(t, ok)
	})

	t.Run("not found", func(t *testing.T) {
		env := &environ.Static{Dir: "/work"}
		_, ok := NewRegistry(afero.NewMemMapFs(), env, "tools").Resolve("missing")
		assert.False(t, ok)
	})

	t.Run("empty name", func(t *testing.T) {
		_, ok := NewRegistry(afero.NewMemMapFs(), &environ.Static{}).Resolve("")
		assert.False(t, ok)
	})
}

func TestRegistry_Registered(t *testing.T) {
	env := &environ.Static{Dir: "/work"}
	r := NewRegistry(afero.NewMemMapFs(), env)
	r.Register("bin/zip")
	r.Register("/opt/cake")
	r.Register("/other/zip")

	assert.Equal(t, []string{"/opt/cake", "/other/zip"}, r.Registered())
}

func TestEscapeMeta(t *testing.T) {
	assert.Equal(t, "plain-name.exe", escapeMeta("plain-name.exe"))
	assert.Equal(t, `\[tool\]`, escapeMeta("[tool]"))
	assert.Equal(t, `a\*b\?c\{d\}e\\f`, escapeMeta(`a*b?c{d}e\f`))
}

func TestGlob(t *testing.T) {
	fs := afero.NewMemMapFs()
	touch(t, fs, "/root/x/[tool]")

	path, ok := Glob(fs, "/root", "[tool]")
	require.True(t, ok, "meta characters in names are matched literally")
	assert.Equal(t, "/root/x/[tool]", path)

	touch(t, fs, "/root/y/a*b")
	touch(t, fs, "/root/y/aXb")
	path, ok = Glob(fs, "/root", "a*b")
	require.True(t, ok)
	assert.Equal(t, "/root/y/a*b", path)

	_, ok = Glob(fs, "/missing", "tool")
	assert.False(t, ok)
}
