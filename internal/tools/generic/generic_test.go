package generic

import (
	"bytes"
	"context"
	"iter"
	"slices"
	"testing"
	"time"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmgilman/toolrun/internal/args"
	"github.com/jmgilman/toolrun/internal/config"
	"github.com/jmgilman/toolrun/internal/environ"
	"github.com/jmgilman/toolrun/internal/exec"
	"github.com/jmgilman/toolrun/internal/exec/mocks"
	"github.com/jmgilman/toolrun/internal/resolve"
	"github.com/jmgilman/toolrun/internal/tool"
)

func TestDefinition(t *testing.T) {
	env := &environ.Static{Dir: "/work"}
	tc := config.ToolConfig{
		Executables:      []string{"gitversion"},
		AlternativePaths: []string{"/opt/gitversion"},
		WorkingDirectory: "repo",
		Env:              []string{"TELEMETRY=0", "MODE=config"},
		SuccessCodes:     []int{0, 2},
	}

	def := Definition("gitversion", tc)

	assert.Equal(t, "gitversion", def.Name)
	assert.Equal(t, []string{"gitversion"}, def.ExecutableNames)
	assert.Equal(t, []string{"/opt/gitversion"}, def.AlternativePaths(&tool.Settings{}))

	dir, err := def.WorkingDirectory(&tool.Settings{}, env)
	require.NoError(t, err)
	assert.Equal(t, "/work/repo", dir)

	dir, err = def.WorkingDirectory(&tool.Settings{WorkingDirectory: "/elsewhere"}, env)
	require.NoError(t, err)
	assert.Equal(t, "/elsewhere", dir)

	assert.Equal(t,
		map[string]string{"TELEMETRY": "0", "MODE": "settings"},
		def.Environment(&tool.Settings{EnvironmentVariables: map[string]string{"MODE": "settings"}}))

	assert.NoError(t, def.ExitCode("gitversion", 2))
	assert.ErrorIs(t, def.ExitCode("gitversion", 1), tool.ErrToolExecutionFailed)
}

func TestDefinition_Minimal(t *testing.T) {
	def := Definition("make", config.ToolConfig{Executables: []string{"make"}})

	assert.Nil(t, def.AlternativePaths)
	assert.Nil(t, def.WorkingDirectory)
	assert.Nil(t, def.Environment)
	assert.Nil(t, def.ExitCode)
}

type harness struct {
	launcher *mocks.LauncherMock
	runner   *Runner
}

func newHarness(t *testing.T, tc config.ToolConfig) *harness {
	t.Helper()
	fs := afero.NewMemMapFs()
	require.NoError(t, fs.MkdirAll("/work", 0o755))
	require.NoError(t, afero.WriteFile(fs, "/usr/bin/make", nil, 0o755))
	env := &environ.Static{Dir: "/work", Variables: map[string]string{"PATH": "/usr/bin"}}

	proc := &mocks.ProcessMock{
		PidFunc:         func() int { return 7 },
		StdoutFunc:      func() iter.Seq[string] { return slices.Values([]string{}) },
		StderrFunc:      func() iter.Seq[string] { return slices.Values([]string{}) },
		WaitFunc:        func() error { return nil },
		WaitTimeoutFunc: func(time.Duration) (bool, error) { return true, nil },
		ExitCodeFunc:    func() int { return 0 },
		CloseFunc:       func() error { return nil },
	}
	launcher := &mocks.LauncherMock{
		StartFunc: func(string, *exec.StartOptions) (exec.Process, error) { return proc, nil },
	}

	r, err := New("make", tc, tool.Dependencies{
		Launcher: launcher,
		Resolver: resolve.New(resolve.Config{FS: fs, Env: env}),
		Env:      env,
		FS:       fs,
		Stdout:   &bytes.Buffer{},
		Stderr:   &bytes.Buffer{},
	})
	require.NoError(t, err)
	return &harness{launcher: launcher, runner: r}
}

func TestRunner_Arguments(t *testing.T) {
	h := newHarness(t, config.ToolConfig{
		Executables: []string{"make"},
		Flags:       map[string]any{"jobs": "4", "silent": true, "keep-going": false},
		Args:        []string{"-C", "src"},
	})

	a, err := h.runner.Arguments("all")
	require.NoError(t, err)
	assert.Equal(t, []string{"--jobs=4", "--silent", "-C", "src", "all"}, a.Tokens())
}

func TestRunner_Arguments_InvalidFlag(t *testing.T) {
	h := newHarness(t, config.ToolConfig{
		Executables: []string{"make"},
		Flags:       map[string]any{"jobs": 4},
	})

	_, err := h.runner.Arguments()
	assert.ErrorIs(t, err, args.ErrInvalidFlagValue)

	err = h.runner.Run(context.Background(), nil)
	assert.ErrorIs(t, err, args.ErrInvalidFlagValue)
	assert.Empty(t, h.launcher.StartCalls())
}

func TestRunner_Run(t *testing.T) {
	h := newHarness(t, config.ToolConfig{Executables: []string{"make"}, Args: []string{"-s"}})

	require.NoError(t, h.runner.Run(context.Background(), nil, "test"))

	calls := h.launcher.StartCalls()
	require.Len(t, calls, 1)
	assert.Equal(t, "/usr/bin/make", calls[0].Path)
	assert.Equal(t, []string{"-s", "test"}, calls[0].Opts.Args)

	path, ok := h.runner.Resolve(nil)
	require.True(t, ok)
	assert.Equal(t, "/usr/bin/make", path)
	assert.Equal(t, "make", h.runner.Name())
}

func TestRunner_ConfiguredTimeout(t *testing.T) {
	h := newHarness(t, config.ToolConfig{Executables: []string{"make"}, Timeout: time.Minute})

	var got []time.Duration
	proc := &mocks.ProcessMock{
		PidFunc:    func() int { return 7 },
		StdoutFunc: func() iter.Seq[string] { return slices.Values([]string{}) },
		StderrFunc: func() iter.Seq[string] { return slices.Values([]string{}) },
		WaitTimeoutFunc: func(d time.Duration) (bool, error) {
			got = append(got, d)
			return true, nil
		},
		ExitCodeFunc: func() int { return 0 },
		CloseFunc:    func() error { return nil },
	}
	h.launcher.StartFunc = func(string, *exec.StartOptions) (exec.Process, error) { return proc, nil }

	require.NoError(t, h.runner.Run(context.Background(), nil))
	require.NoError(t, h.runner.Run(context.Background(), &tool.Settings{Timeout: time.Second}))

	assert.Equal(t, []time.Duration{time.Minute, time.Second}, got)
}
