// Package spinner shows a spinner next to the latest output line of a
// running tool, updating in place without polluting the terminal buffer.
package spinner

import (
	"io"
	"os"
	"strings"
	"sync"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
)

// defaultWidth is used when the output is not a terminal.
const defaultWidth = 80

// Spinner displays a spinner with the tool name and its latest output line.
// Lines are fed through Sink, which can be used as a tool output sink.
type Spinner struct {
	title  string
	lines  chan string
	done   chan struct{}
	stop   sync.Once
	output io.Writer
}

// New creates a Spinner that renders to output (os.Stderr when nil).
func New(output io.Writer, title string) *Spinner {
	if output == nil {
		output = os.Stderr
	}
	return &Spinner{
		title:  title,
		lines:  make(chan string, 100),
		done:   make(chan struct{}),
		output: output,
	}
}

// Sink returns a line sink that updates the status line. It never blocks:
// when the display falls behind, intermediate lines are dropped.
func (s *Spinner) Sink() func(line string) {
	return func(line string) {
		if strings.TrimSpace(line) == "" {
			return
		}
		select {
		case <-s.done:
		case s.lines <- line:
		default:
		}
	}
}

// Start runs the display and blocks until Stop is called.
func (s *Spinner) Start() error {
	program := tea.NewProgram(newModel(s.title, s.lines, s.done, outputWidth(s.output)),
		tea.WithOutput(s.output),
		tea.WithInput(nil), // the tool may read stdin
		tea.WithoutSignalHandler(),
	)
	_, err := program.Run()
	return err
}

// Stop clears the spinner line and ends Start. It is safe to call more
// than once.
func (s *Spinner) Stop() {
	s.stop.Do(func() {
		close(s.done)
	})
}

// Run shows the spinner while fn runs and returns fn's error.
func (s *Spinner) Run(fn func() error) error {
	started := make(chan error, 1)
	go func() { started <- s.Start() }()

	err := fn()
	s.Stop()
	// Display errors are not the tool's errors.
	_ = <-started
	return err
}

func outputWidth(w io.Writer) int {
	if f, ok := w.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		if width, _, err := term.GetSize(int(f.Fd())); err == nil && width > 0 {
			return width
		}
	}
	return defaultWidth
}

var titleStyle = lipgloss.NewStyle().Bold(true)

// model is the bubbletea model for the spinner.
type model struct {
	spinner    spinner.Model
	title      string
	statusLine string
	width      int
	lines      <-chan string
	done       <-chan struct{}
	quitting   bool
}

// lineMsg carries a new status line.
type lineMsg string

// stopMsg is sent once Stop was called.
type stopMsg struct{}

func newModel(title string, lines <-chan string, done <-chan struct{}, width int) model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	return model{
		spinner: s,
		title:   title,
		width:   width,
		lines:   lines,
		done:    done,
	}
}

// Init implements tea.Model.
//
//nolint:gocritic // hugeParam: tea.Model interface requires value receiver
func (m model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, waitForLine(m.lines, m.done))
}

// Update implements tea.Model.
//
//nolint:gocritic // hugeParam: tea.Model interface requires value receiver
func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width

	case lineMsg:
		m.statusLine = string(msg)
		return m, waitForLine(m.lines, m.done)

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case stopMsg:
		m.quitting = true
		return m, tea.Quit
	}

	return m, nil
}

// View implements tea.Model.
//
//nolint:gocritic // hugeParam: tea.Model interface requires value receiver
func (m model) View() string {
	if m.quitting {
		return ""
	}

	prefix := m.spinner.View() + " "
	if m.title != "" {
		prefix += titleStyle.Render(m.title) + " "
	}
	maxLineWidth := max(m.width-lipgloss.Width(prefix), 10)

	return prefix + truncate(m.statusLine, maxLineWidth)
}

// waitForLine waits for the next status line, or quits once done closes.
func waitForLine(lines <-chan string, done <-chan struct{}) tea.Cmd {
	return func() tea.Msg {
		select {
		case line := <-lines:
			return lineMsg(line)
		case <-done:
			return stopMsg{}
		}
	}
}

// truncate shortens a string to fit within maxWidth, ending it with "...".
func truncate(s string, maxWidth int) string {
	if maxWidth <= 3 {
		return ""
	}
	if len(s) <= maxWidth {
		return s
	}
	return s[:maxWidth-3] + "..."
}
