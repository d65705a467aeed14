package tasks

import (
	"fmt"
)

// ProgressUpdate represents a progress event during a long-running operation.
//
// Used to send real-time updates to the CLI or UI layer for display.
type ProgressUpdate struct {
	Phase   Phase  // Operation phase
	Step    int    // Current step number within phase
	Total   int    // Total steps in this phase
	Message string // Human-readable message for display
	Err     error  // Set when the step failed
}

// Operation phase enumeration
type Phase int

const (
	Clean Phase = iota
	Bootstrap
	Framework
	Stacks
	Widgets
	Snippets
	Elements
	Themes
	ApplicationJavaScript
	Refresh
	Done
)

// GrabPhases returns the content phases of a full grab in execution order.
func GrabPhases() []Phase {
	return []Phase{Framework, Stacks, Widgets, Snippets, Elements, Themes, ApplicationJavaScript}
}

func (p Phase) String() string {
	switch p {
	case Clean:
		return "clean"
	case Bootstrap:
		return "bootstrap"
	case Framework:
		return "framework"
	case Stacks:
		return "stacks"
	case Widgets:
		return "widgets"
	case Snippets:
		return "snippets"
	case Elements:
		return "elements"
	case Themes:
		return "themes"
	case ApplicationJavaScript:
		return "application_javascript"
	case Refresh:
		return "refresh"
	case Done:
		return "done"
	default:
		return ""
	}
}

// Label is the human readable name of a phase.
func (p Phase) Label() string {
	switch p {
	case Clean:
		return "Cleaning tracked directories"
	case Bootstrap:
		return "Writing session record"
	case Framework:
		return "Framework"
	case Stacks:
		return "Stacks"
	case Widgets:
		return "Widgets"
	case Snippets:
		return "Text snippets"
	case Elements:
		return "Elements"
	case Themes:
		return "Themes"
	case ApplicationJavaScript:
		return "Application JavaScript"
	case Refresh:
		return "Refresh"
	case Done:
		return "Done"
	default:
		return ""
	}
}

func cleanUpdate(step, total int, dir string) ProgressUpdate {
	return ProgressUpdate{
		Phase:   Clean,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("Removing %s...", dir),
	}
}

func bootstrapUpdate(step, total int, node string) ProgressUpdate {
	return ProgressUpdate{
		Phase:   Bootstrap,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("Recording session for %s...", node),
	}
}

func stepStartedUpdate(phase Phase, step, total int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   phase,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] Grabbing %s...", step, total, phase.Label()),
	}
}

func stepFailedUpdate(phase Phase, step, total int, err error) ProgressUpdate {
	return ProgressUpdate{
		Phase:   phase,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] ✗ %s: %v", step, total, phase.Label(), err),
		Err:     err,
	}
}

func refreshUpdate(path string) ProgressUpdate {
	return ProgressUpdate{
		Phase:   Refresh,
		Step:    1,
		Total:   1,
		Message: fmt.Sprintf("Refreshing %s...", path),
	}
}

func doneUpdate(total int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   Done,
		Step:    total,
		Total:   total,
		Message: "All done",
	}
}
