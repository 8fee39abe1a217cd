package spinner

import (
	"bytes"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTruncate(t *testing.T) {
	tests := []struct {
		in    string
		width int
		want  string
	}{
		{"short", 10, "short"},
		{"exactly10!", 10, "exactly10!"},
		{"this line is too long", 10, "this li..."},
		{"anything", 3, ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, truncate(tt.in, tt.width), "truncate(%q, %d)", tt.in, tt.width)
	}
}

func TestModel_Update(t *testing.T) {
	lines := make(chan string, 1)
	done := make(chan struct{})
	m := newModel("Make", lines, done, 80)

	next, cmd := m.Update(lineMsg("compiling main.c"))
	require.NotNil(t, cmd)
	assert.Equal(t, "compiling main.c", next.(model).statusLine)
	assert.Contains(t, next.View(), "Make")
	assert.Contains(t, next.View(), "compiling main.c")

	next, _ = next.Update(tea.WindowSizeMsg{Width: 20})
	assert.Equal(t, 20, next.(model).width)

	next, cmd = next.Update(stopMsg{})
	assert.True(t, next.(model).quitting)
	assert.Empty(t, next.View())
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestModel_SpinnerTick(t *testing.T) {
	m := newModel("", nil, nil, 80)
	_, cmd := m.Update(spinner.TickMsg{ID: m.spinner.ID()})
	assert.NotNil(t, cmd)
}

func TestWaitForLine(t *testing.T) {
	lines := make(chan string, 1)
	done := make(chan struct{})

	lines <- "hello"
	assert.Equal(t, lineMsg("hello"), waitForLine(lines, done)())

	close(done)
	assert.Equal(t, stopMsg{}, waitForLine(lines, done)())
}

func TestSpinner_SinkNeverBlocks(t *testing.T) {
	s := New(&bytes.Buffer{}, "Make")
	sink := s.Sink()

	// Nothing drains the channel; extra lines are dropped.
	for range 500 {
		sink("line")
	}
	sink("   ")
	assert.Len(t, s.lines, cap(s.lines))

	s.Stop()
	s.Stop()
	sink("after stop")
}

type lockedBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *lockedBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func TestSpinner_Run(t *testing.T) {
	var out lockedBuffer
	s := New(&out, "Make")
	boom := errors.New("boom")

	err := s.Run(func() error {
		sink := s.Sink()
		for _, l := range []string{"one", "two", "three"} {
			sink(l)
		}
		return boom
	})

	assert.ErrorIs(t, err, boom)
	out.mu.Lock()
	defer out.mu.Unlock()
	assert.False(t, strings.Contains(out.buf.String(), "panic"))
}
