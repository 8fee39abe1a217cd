package exec

import (
	"bytes"
	"fmt"
	"os/exec"
	"slices"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func shPath(t *testing.T) string {
	t.Helper()
	path, err := exec.LookPath("sh")
	if err != nil {
		t.Skip("sh not available")
	}
	return path
}

func TestNew(t *testing.T) {
	l := New()
	require.NotNil(t, l)
}

func TestLauncher_Start(t *testing.T) {
	l := New()
	sh := shPath(t)

	t.Run("redirects stdout as lines", func(t *testing.T) {
		p, err := l.Start(sh, &StartOptions{
			Args:           []string{"-c", "echo one; echo two"},
			RedirectStdout: true,
		})
		require.NoError(t, err)
		defer p.Close()

		got := slices.Collect(p.Stdout())
		require.NoError(t, p.Wait())

		assert.Equal(t, []string{"one", "two"}, got)
		assert.Equal(t, 0, p.ExitCode())
	})

	t.Run("redirects stderr as lines", func(t *testing.T) {
		p, err := l.Start(sh, &StartOptions{
			Args:           []string{"-c", "echo oops >&2"},
			RedirectStderr: true,
		})
		require.NoError(t, err)
		defer p.Close()

		got := slices.Collect(p.Stderr())
		require.NoError(t, p.Wait())

		assert.Equal(t, []string{"oops"}, got)
		assert.Empty(t, slices.Collect(p.Stdout()), "stdout was not redirected")
	})

	t.Run("line sequences are single-pass", func(t *testing.T) {
		p, err := l.Start(sh, &StartOptions{
			Args:           []string{"-c", "echo once"},
			RedirectStdout: true,
		})
		require.NoError(t, err)
		defer p.Close()

		assert.Equal(t, []string{"once"}, slices.Collect(p.Stdout()))
		assert.Empty(t, slices.Collect(p.Stdout()))
		require.NoError(t, p.Wait())
	})

	t.Run("reads output after exit", func(t *testing.T) {
		p, err := l.Start(sh, &StartOptions{
			Args:           []string{"-c", "echo late"},
			RedirectStdout: true,
		})
		require.NoError(t, err)
		defer p.Close()

		require.NoError(t, p.Wait())
		assert.Equal(t, []string{"late"}, slices.Collect(p.Stdout()))
	})

	t.Run("passes through unredirected output", func(t *testing.T) {
		var out, errOut bytes.Buffer
		p, err := l.Start(sh, &StartOptions{
			Args:   []string{"-c", "echo out; echo err >&2"},
			Stdout: &out,
			Stderr: &errOut,
		})
		require.NoError(t, err)
		defer p.Close()

		require.NoError(t, p.Wait())
		assert.Equal(t, "out\n", out.String())
		assert.Equal(t, "err\n", errOut.String())
	})

	t.Run("non-zero exit code is not a wait error", func(t *testing.T) {
		p, err := l.Start(sh, &StartOptions{Args: []string{"-c", "exit 42"}})
		require.NoError(t, err)
		defer p.Close()

		require.NoError(t, p.Wait())
		assert.Equal(t, 42, p.ExitCode())
	})

	t.Run("respects working directory", func(t *testing.T) {
		dir := t.TempDir()
		p, err := l.Start(sh, &StartOptions{
			Args:           []string{"-c", "pwd"},
			Dir:            dir,
			RedirectStdout: true,
		})
		require.NoError(t, err)
		defer p.Close()

		got := slices.Collect(p.Stdout())
		require.NoError(t, p.Wait())
		require.Len(t, got, 1)
		// On macOS, temp dirs live behind a /private symlink
		assert.True(t, strings.HasSuffix(got[0], dir), "got %s, want suffix %s", got[0], dir)
	})

	t.Run("uses the given environment", func(t *testing.T) {
		p, err := l.Start(sh, &StartOptions{
			Args:           []string{"-c", "echo $TOOLRUN_VAR"},
			Env:            []string{"TOOLRUN_VAR=hello_env"},
			RedirectStdout: true,
		})
		require.NoError(t, err)
		defer p.Close()

		assert.Equal(t, []string{"hello_env"}, slices.Collect(p.Stdout()))
		require.NoError(t, p.Wait())
	})

	t.Run("reads from stdin", func(t *testing.T) {
		p, err := l.Start(sh, &StartOptions{
			Args:           []string{"-c", "cat"},
			Stdin:          strings.NewReader("input data\n"),
			RedirectStdout: true,
		})
		require.NoError(t, err)
		defer p.Close()

		assert.Equal(t, []string{"input data"}, slices.Collect(p.Stdout()))
		require.NoError(t, p.Wait())
	})

	t.Run("splits very long lines", func(t *testing.T) {
		p, err := l.Start(sh, &StartOptions{
			Args:           []string{"-c", fmt.Sprintf("head -c %d /dev/zero | tr '\\0' a; echo", maxLineSize+10)},
			RedirectStdout: true,
		})
		require.NoError(t, err)
		defer p.Close()

		got := slices.Collect(p.Stdout())
		require.NoError(t, p.Wait())
		require.Len(t, got, 2)
		assert.Len(t, got[0]+got[1], maxLineSize+10)
	})

	t.Run("returns ErrNotStarted for missing executable", func(t *testing.T) {
		_, err := l.Start("/nonexistent/tool_12345", &StartOptions{RedirectStdout: true})

		require.Error(t, err)
		assert.ErrorIs(t, err, ErrNotStarted)
	})
}

func TestProcess_WaitTimeout(t *testing.T) {
	l := New()
	sh := shPath(t)

	t.Run("reports exit within bound", func(t *testing.T) {
		p, err := l.Start(sh, &StartOptions{Args: []string{"-c", "exit 3"}})
		require.NoError(t, err)
		defer p.Close()

		exited, err := p.WaitTimeout(5 * time.Second)
		require.NoError(t, err)
		assert.True(t, exited)
		assert.Equal(t, 3, p.ExitCode())
	})

	t.Run("reports bound elapsed and kill ends the process", func(t *testing.T) {
		p, err := l.Start(sh, &StartOptions{Args: []string{"-c", "sleep 10"}})
		require.NoError(t, err)
		defer p.Close()

		exited, err := p.WaitTimeout(50 * time.Millisecond)
		require.NoError(t, err)
		assert.False(t, exited)
		assert.Equal(t, -1, p.ExitCode())

		require.NoError(t, p.Kill())
		exited, err = p.WaitTimeout(5 * time.Second)
		require.NoError(t, err)
		assert.True(t, exited)
		assert.NotEqual(t, 0, p.ExitCode())

		assert.NoError(t, p.Kill(), "killing an exited process is a no-op")
	})
}

func TestProcess_Close(t *testing.T) {
	p, err := New().Start(shPath(t), &StartOptions{
		Args:           []string{"-c", "echo x"},
		RedirectStdout: true,
		RedirectStderr: true,
	})
	require.NoError(t, err)
	require.NoError(t, p.Wait())

	assert.NoError(t, p.Close())
	assert.NoError(t, p.Close(), "close is idempotent")
	assert.Positive(t, p.Pid())
}
