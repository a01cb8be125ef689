package project

import "github.com/expressgen/expressgen/internal/installer"

// EventKind classifies a progress event.
type EventKind int

const (
	// EventFolderCreated reports a newly created folder.
	EventFolderCreated EventKind = iota
	// EventFolderExists reports a folder that was already present.
	EventFolderExists
	// EventFileWritten reports a written or appended file.
	EventFileWritten
	// EventFileUnchanged reports a file that needed no change.
	EventFileUnchanged
	// EventCommandStarted reports an install command about to run.
	EventCommandStarted
	// EventCommandOutput carries install command output.
	EventCommandOutput
	// EventWarning reports a non-fatal diagnostic.
	EventWarning
)

// Event is a single progress notification.
type Event struct {
	Step    Step
	Kind    EventKind
	Path    string // Project-relative path, if any
	Message string // Human readable line
}

// Completes reports whether the event marks one finished unit of work.
func (e Event) Completes() bool {
	switch e.Kind {
	case EventFolderCreated, EventFolderExists, EventFileWritten, EventFileUnchanged, EventCommandStarted:
		return true
	}
	return false
}

// Reporter receives progress events. Implementations must be safe for
// concurrent use; steps report from their own goroutines.
type Reporter interface {
	Report(Event)
}

// ReporterFunc adapts a function to the Reporter interface.
type ReporterFunc func(Event)

// Report calls f(e).
func (f ReporterFunc) Report(e Event) { f(e) }

// InstallProgress adapts a Reporter to the installer's progress callback.
func InstallProgress(rep Reporter) installer.ProgressFunc {
	return func(cmd installer.Command, output string) {
		if output == "" {
			rep.Report(Event{Step: StepInstall, Kind: EventCommandStarted, Message: cmd.Label})
			return
		}
		rep.Report(Event{Step: StepInstall, Kind: EventCommandOutput, Message: output})
	}
}

// discardReporter drops all events.
type discardReporter struct{}

func (discardReporter) Report(Event) {}
