// Package ui renders generation progress: an animated bubbletea progress
// bar on a terminal, plain log lines everywhere else.
package ui

// Progress creates progress bars.
type Progress interface {
	// Start creates a determinate progress bar with the given total.
	Start(title string, total int) ProgressBar
}

// ProgressBar tracks completed units of work. Implementations are safe for
// concurrent use.
type ProgressBar interface {
	// Increment advances the progress by n.
	Increment(n int)
	// SetTitle updates the title shown next to the bar.
	SetTitle(title string)
	// Println prints a line above the bar.
	Println(line string)
	// Done completes the bar and releases the terminal.
	Done()
}
