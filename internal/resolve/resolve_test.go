package resolve

import (
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmgilman/toolrun/internal/environ"
	"github.com/jmgilman/toolrun/internal/locator/mocks"
)

func touch(t *testing.T, fs afero.Fs, paths ...string) {
	t.Helper()
	for _, p := range paths {
		require.NoError(t, afero.WriteFile(fs, p, nil, 0o755))
	}
}

func locatorReturning(found map[string]string) *mocks.LocatorMock {
	return &mocks.LocatorMock{
		ResolveFunc: func(name string) (string, bool) {
			p, ok := found[name]
			return p, ok
		},
	}
}

func TestNew(t *testing.T) {
	t.Run("locator configured", func(t *testing.T) {
		r := New(Config{Locator: locatorReturning(nil)})
		assert.IsType(t, &LocatorResolver{}, r)
	})

	t.Run("no locator", func(t *testing.T) {
		r := New(Config{})
		require.IsType(t, &LegacyResolver{}, r)
		assert.Equal(t, DefaultToolsDir, r.(*LegacyResolver).toolsDir)
	})
}

func TestResolve_ExplicitPath(t *testing.T) {
	// Everything else would match; the explicit path must still win and is
	// not checked for existence.
	fs := afero.NewMemMapFs()
	touch(t, fs, "/alt/tool", "/work/tools/tool", "/usr/bin/tool")
	env := &environ.Static{Dir: "/work", Variables: map[string]string{"PATH": "/usr/bin"}}

	req := Request{
		ToolPath:         "bin/../custom/tool",
		ExecutableNames:  []string{"tool"},
		AlternativePaths: []string{"/alt/tool"},
	}

	resolvers := map[string]Resolver{
		"locator": New(Config{Locator: locatorReturning(map[string]string{"tool": "/located/tool"}), FS: fs, Env: env}),
		"legacy":  New(Config{FS: fs, Env: env}),
	}
	for name, r := range resolvers {
		t.Run(name, func(t *testing.T) {
			path, ok := r.Resolve(req)
			require.True(t, ok)
			assert.Equal(t, "/work/custom/tool", path)
		})
	}
}

func TestLocatorResolver(t *testing.T) {
	env := &environ.Static{Dir: "/work", Variables: map[string]string{"PATH": "/usr/bin"}}

	t.Run("locator precedes alternative paths", func(t *testing.T) {
		fs := afero.NewMemMapFs()
		touch(t, fs, "/alt/msbuild", "/usr/bin/msbuild")
		loc := locatorReturning(map[string]string{"msbuild": "/located/msbuild"})

		path, ok := New(Config{Locator: loc, FS: fs, Env: env}).Resolve(Request{
			ExecutableNames:  []string{"msbuild"},
			AlternativePaths: []string{"/alt/msbuild"},
		})

		require.True(t, ok)
		assert.Equal(t, "/located/msbuild", path)
	})

	t.Run("candidates asked in order", func(t *testing.T) {
		loc := locatorReturning(map[string]string{"b.exe": "/tools/b.exe", "c.exe": "/tools/c.exe"})

		path, ok := New(Config{Locator: loc, FS: afero.NewMemMapFs(), Env: env}).Resolve(Request{
			ExecutableNames: []string{"a.exe", "b.exe", "c.exe"},
		})

		require.True(t, ok)
		assert.Equal(t, "/tools/b.exe", path)
		calls := loc.ResolveCalls()
		require.Len(t, calls, 2)
		assert.Equal(t, "a.exe", calls[0].Name)
		assert.Equal(t, "b.exe", calls[1].Name)
	})

	t.Run("empty locator result is ignored", func(t *testing.T) {
		fs := afero.NewMemMapFs()
		touch(t, fs, "/alt/tool")
		loc := &mocks.LocatorMock{ResolveFunc: func(string) (string, bool) { return "", true }}

		path, ok := New(Config{Locator: loc, FS: fs, Env: env}).Resolve(Request{
			ExecutableNames:  []string{"tool"},
			AlternativePaths: []string{"/missing/tool", "/alt/tool"},
		})

		require.True(t, ok)
		assert.Equal(t, "/alt/tool", path)
	})

	t.Run("does not search PATH", func(t *testing.T) {
		fs := afero.NewMemMapFs()
		touch(t, fs, "/usr/bin/tool")

		_, ok := New(Config{Locator: locatorReturning(nil), FS: fs, Env: env}).Resolve(Request{
			ExecutableNames: []string{"tool"},
		})

		assert.False(t, ok)
	})
}

func TestLegacyResolver(t *testing.T) {
	t.Run("finds candidate in PATH", func(t *testing.T) {
		fs := afero.NewMemMapFs()
		touch(t, fs, "/usr/local/bin/foo")
		env := &environ.Static{Dir: "/work", Variables: map[string]string{"PATH": "/usr/bin:/usr/local/bin"}}

		path, ok := New(Config{FS: fs, Env: env}).Resolve(Request{ExecutableNames: []string{"foo"}})

		require.True(t, ok)
		assert.Equal(t, "/usr/local/bin/foo", path)
	})

	t.Run("tools directory precedes PATH", func(t *testing.T) {
		fs := afero.NewMemMapFs()
		touch(t, fs, "/work/tools/Foo.1.0/bin/foo", "/usr/bin/foo")
		env := &environ.Static{Dir: "/work", Variables: map[string]string{"PATH": "/usr/bin"}}

		path, ok := New(Config{FS: fs, Env: env}).Resolve(Request{ExecutableNames: []string{"foo"}})

		require.True(t, ok)
		assert.Equal(t, "/work/tools/Foo.1.0/bin/foo", path)
	})

	t.Run("custom tools directory", func(t *testing.T) {
		fs := afero.NewMemMapFs()
		touch(t, fs, "/work/.toolrun/foo")
		env := &environ.Static{Dir: "/work"}

		path, ok := New(Config{FS: fs, Env: env, ToolsDir: ".toolrun"}).Resolve(Request{ExecutableNames: []string{"foo"}})

		require.True(t, ok)
		assert.Equal(t, "/work/.toolrun/foo", path)
	})

	t.Run("alternative paths precede the directory search", func(t *testing.T) {
		fs := afero.NewMemMapFs()
		touch(t, fs, "/alt/foo", "/usr/bin/foo")
		env := &environ.Static{Dir: "/work", Variables: map[string]string{"PATH": "/usr/bin"}}

		path, ok := New(Config{FS: fs, Env: env}).Resolve(Request{
			ExecutableNames:  []string{"foo"},
			AlternativePaths: []string{"/alt/foo"},
		})

		require.True(t, ok)
		assert.Equal(t, "/alt/foo", path)
	})

	t.Run("candidate order beats directory order", func(t *testing.T) {
		fs := afero.NewMemMapFs()
		touch(t, fs, "/b/first", "/a/second")
		env := &environ.Static{Dir: "/work", Variables: map[string]string{"PATH": "/a:/b"}}

		path, ok := New(Config{FS: fs, Env: env}).Resolve(Request{ExecutableNames: []string{"first", "second"}})

		require.True(t, ok)
		assert.Equal(t, "/b/first", path)
	})

	t.Run("windows separator", func(t *testing.T) {
		fs := afero.NewMemMapFs()
		touch(t, fs, "/x/tool")
		env := &environ.Static{Dir: "/work", Windows: true, Variables: map[string]string{"PATH": "/w;/x"}}

		path, ok := New(Config{FS: fs, Env: env}).Resolve(Request{ExecutableNames: []string{"tool"}})

		require.True(t, ok)
		assert.Equal(t, "/x/tool", path)
	})

	t.Run("nothing matches", func(t *testing.T) {
		env := &environ.Static{Dir: "/work", Variables: map[string]string{"PATH": "/usr/bin"}}

		path, ok := New(Config{FS: afero.NewMemMapFs(), Env: env}).Resolve(Request{
			ExecutableNames:  []string{"ghost"},
			AlternativePaths: []string{"/nope/ghost"},
		})

		assert.False(t, ok)
		assert.Empty(t, path)
	})
}
