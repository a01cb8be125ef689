package ui

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// progressImpl implements the Progress interface.
type progressImpl struct {
	theme     *Theme
	headless  *HeadlessManager
	writer    io.Writer
	interrupt func()
}

// ProgressOption configures a Progress.
type ProgressOption func(*progressImpl)

// WithInterrupt sets the function called when the user presses ctrl-c
// while an interactive bar owns the terminal. The terminal is in raw mode
// then, so the key never reaches the process as a signal.
func WithInterrupt(fn func()) ProgressOption {
	return func(p *progressImpl) {
		p.interrupt = fn
	}
}

// NewProgress creates a Progress backed by the given theme and headless manager.
// A nil writer means os.Stdout.
func NewProgress(theme *Theme, hm *HeadlessManager, w io.Writer, opts ...ProgressOption) Progress {
	if w == nil {
		w = os.Stdout
	}
	p := &progressImpl{theme: theme, headless: hm, writer: w}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Start creates a determinate progress bar with the given total.
// In headless mode it returns a log-based progress bar.
func (p *progressImpl) Start(title string, total int) ProgressBar {
	if p.headless.IsHeadless() || p.theme.NoColor {
		return newHeadlessProgressBar(p.theme, title, total, p.writer)
	}
	m := newProgressModel(p.theme, title, total)
	m.interrupt = p.interrupt
	return newInteractiveProgressBar(m, tea.WithOutput(p.writer))
}

// --- interactiveProgressBar ---

// progressIncrMsg is sent to increment the progress bar.
type progressIncrMsg int

// progressTitleMsg is sent to update the progress bar title.
type progressTitleMsg string

// progressDoneMsg is sent to complete the progress bar.
type progressDoneMsg struct{}

// progressModel is the bubbletea Model for the progress bar. A spinner runs
// next to the title until the bar is done.
type progressModel struct {
	bar       progress.Model
	spinner   spinner.Model
	muted     lipgloss.Style
	title     string
	current   int
	total     int
	done      bool
	interrupt func() // nil quits the bar on ctrl-c
}

func newProgressModel(theme *Theme, title string, total int) progressModel {
	bar := progress.New(
		progress.WithDefaultGradient(),
		progress.WithWidth(40),
	)
	s := spinner.New(spinner.WithSpinner(spinner.Dot))
	if !theme.NoColor {
		bar = progress.New(
			progress.WithGradient(theme.Colors.Primary, theme.Colors.Secondary),
			progress.WithWidth(40),
		)
		s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color(theme.Colors.Primary))
	}
	return progressModel{bar: bar, spinner: s, muted: theme.muted(), title: title, total: total}
}

func (m progressModel) Init() tea.Cmd {
	return m.spinner.Tick
}

func (m progressModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case progressIncrMsg:
		m.current += int(msg)
		if m.current > m.total {
			m.current = m.total
		}
		return m, nil
	case progressTitleMsg:
		m.title = string(msg)
		return m, nil
	case progressDoneMsg:
		m.current = m.total
		m.done = true
		return m, tea.Quit
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case progress.FrameMsg:
		pm, cmd := m.bar.Update(msg)
		m.bar = pm.(progress.Model)
		return m, cmd
	case tea.KeyMsg:
		if msg.Type != tea.KeyCtrlC {
			return m, nil
		}
		if m.interrupt == nil {
			m.done = true
			return m, tea.Quit
		}
		// Keep drawing until Done so the remaining events stay visible.
		m.interrupt()
		m.title = "Cancelling..."
		return m, nil
	}
	return m, nil
}

func (m progressModel) View() string {
	if m.done {
		return ""
	}
	pct := 0.0
	if m.total > 0 {
		pct = float64(m.current) / float64(m.total)
	}
	return m.spinner.View() + " " + m.bar.ViewAs(pct) + " " +
		m.muted.Render(fmt.Sprintf("[%d/%d]", m.current, m.total)) + " " + m.title + "\n"
}

// interactiveProgressBar implements ProgressBar with an animated bubbles progress bar.
type interactiveProgressBar struct {
	program *tea.Program
	once    sync.Once
}

// newInteractiveProgressBar starts the bar's program in its own goroutine.
// Done must be called to stop it.
func newInteractiveProgressBar(m progressModel, opts ...tea.ProgramOption) *interactiveProgressBar {
	p := tea.NewProgram(m, opts...)

	pb := &interactiveProgressBar{program: p}

	go func() {
		_, _ = p.Run()
	}()

	return pb
}

// Increment advances the progress by n.
func (b *interactiveProgressBar) Increment(n int) {
	b.program.Send(progressIncrMsg(n))
}

// SetTitle updates the progress bar title.
func (b *interactiveProgressBar) SetTitle(title string) {
	b.program.Send(progressTitleMsg(title))
}

// Println prints a line above the bar.
func (b *interactiveProgressBar) Println(line string) {
	b.program.Println(line)
}

// Done completes the progress bar at 100%.
func (b *interactiveProgressBar) Done() {
	b.once.Do(func() {
		b.program.Send(progressDoneMsg{})
		b.program.Wait()
	})
}

// --- headlessProgressBar ---

// headlessProgressBar implements ProgressBar with plain text log output.
type headlessProgressBar struct {
	mu      sync.Mutex
	theme   *Theme
	title   string
	total   int
	current int
	writer  io.Writer
	done    bool
}

// newHeadlessProgressBar creates a headless progress bar that writes log lines.
func newHeadlessProgressBar(theme *Theme, title string, total int, w io.Writer) *headlessProgressBar {
	return &headlessProgressBar{
		theme:  theme,
		title:  title,
		total:  total,
		writer: w,
	}
}

// Increment advances the progress by n. Counts are only printed by Done so
// that event lines stay readable.
func (b *headlessProgressBar) Increment(n int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.current += n
	if b.current > b.total {
		b.current = b.total
	}
}

// SetTitle updates the progress bar title.
func (b *headlessProgressBar) SetTitle(title string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.title = title
}

// Println writes the line as is.
func (b *headlessProgressBar) Println(line string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	_, _ = fmt.Fprintln(b.writer, line)
}

// Done prints the final count once.
func (b *headlessProgressBar) Done() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.done {
		return
	}
	b.done = true
	_, _ = fmt.Fprintf(b.writer, "[%d/%d] %s\n", b.current, b.total, b.title)
}
