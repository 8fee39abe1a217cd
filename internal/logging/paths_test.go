package logging

import (
	"testing"
	"time"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPathManager_Paths(t *testing.T) {
	pm := NewPathManager(afero.NewMemMapFs(), "/var/log/toolrun")

	assert.Equal(t, "/var/log/toolrun", pm.BaseDir())
	assert.Equal(t, "/var/log/toolrun/msbuild", pm.ToolDir("MSBuild"))
	assert.Equal(t, "/var/log/toolrun/msbuild/20260101T000000-brave_turing.log",
		pm.InvocationLogPath("MSBuild", "20260101T000000-brave_turing"))
	assert.Equal(t, "/var/log/toolrun/a_b", pm.ToolDir("a/b"))
}

func TestPathManager_EnsureInvocationLog(t *testing.T) {
	fs := afero.NewMemMapFs()
	pm := NewPathManager(fs, "/logs")

	path, err := pm.EnsureInvocationLog("make", "id1")
	require.NoError(t, err)
	assert.Equal(t, "/logs/make/id1.log", path)

	isDir, err := afero.IsDir(fs, "/logs/make")
	require.NoError(t, err)
	assert.True(t, isDir)
}

func TestPathManager_LogExistsAndRemove(t *testing.T) {
	fs := afero.NewMemMapFs()
	pm := NewPathManager(fs, "/logs")

	assert.False(t, pm.LogExists("make", "id1"))

	path, err := pm.EnsureInvocationLog("make", "id1")
	require.NoError(t, err)
	require.NoError(t, afero.WriteFile(fs, path, []byte("out hi\n"), 0o644))
	assert.True(t, pm.LogExists("make", "id1"))

	require.NoError(t, pm.RemoveInvocationLog("make", "id1"))
	assert.False(t, pm.LogExists("make", "id1"))

	// Removing again is not an error.
	assert.NoError(t, pm.RemoveInvocationLog("make", "id1"))
}

func TestPathManager_RemoveToolLogs(t *testing.T) {
	fs := afero.NewMemMapFs()
	pm := NewPathManager(fs, "/logs")
	require.NoError(t, afero.WriteFile(fs, "/logs/make/a.log", nil, 0o644))

	require.NoError(t, pm.RemoveToolLogs("make"))

	exists, err := afero.Exists(fs, "/logs/make")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestPathManager_ListInvocations(t *testing.T) {
	fs := afero.NewMemMapFs()
	pm := NewPathManager(fs, "/logs")

	ids, err := pm.ListInvocations("make")
	require.NoError(t, err)
	assert.Empty(t, ids)

	for _, name := range []string{"20260102T000000-b.log", "20260101T000000-a.log", "notes.txt"} {
		require.NoError(t, afero.WriteFile(fs, "/logs/make/"+name, nil, 0o644))
	}
	require.NoError(t, fs.MkdirAll("/logs/make/sub.log", 0o755))

	ids, err = pm.ListInvocations("make")
	require.NoError(t, err)
	assert.Equal(t, []string{"20260101T000000-a", "20260102T000000-b"}, ids)
}

func TestPathManager_ListTools(t *testing.T) {
	fs := afero.NewMemMapFs()
	pm := NewPathManager(fs, "/logs")

	tools, err := pm.ListTools()
	require.NoError(t, err)
	assert.Empty(t, tools)

	require.NoError(t, fs.MkdirAll("/logs/make", 0o755))
	require.NoError(t, fs.MkdirAll("/logs/shell", 0o755))
	require.NoError(t, afero.WriteFile(fs, "/logs/stray.log", nil, 0o644))

	tools, err = pm.ListTools()
	require.NoError(t, err)
	assert.Equal(t, []string{"make", "shell"}, tools)
}

func TestPathManager_NewInvocationID(t *testing.T) {
	pm := NewPathManager(afero.NewMemMapFs(), "/logs")

	id, err := pm.NewInvocationID("make", time.Date(2026, 3, 4, 5, 6, 7, 0, time.UTC))
	require.NoError(t, err)
	assert.Regexp(t, `^20260304T050607-[a-z]+_[a-z]+$`, id)
	assert.False(t, pm.LogExists("make", id))
}
