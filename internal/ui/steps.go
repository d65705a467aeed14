package ui

import (
	"fmt"
	"strings"

	"github.com/desertthunder/dcx/internal/tasks"
)

type stepState int

const (
	stepPending stepState = iota
	stepRunning
	stepDone
	stepFailed
)

// stepRow is one line of the grab step list.
type stepRow struct {
	phase tasks.Phase
	state stepState
	err   error
}

func newSteps(clean bool) []stepRow {
	var rows []stepRow
	if clean {
		rows = append(rows, stepRow{phase: tasks.Clean})
	}
	rows = append(rows, stepRow{phase: tasks.Bootstrap})
	for _, p := range tasks.GrabPhases() {
		rows = append(rows, stepRow{phase: p})
	}
	return rows
}

func indexOf(rows []stepRow, p tasks.Phase) int {
	for i, r := range rows {
		if r.phase == p {
			return i
		}
	}
	return -1
}

// applyUpdate moves the step list forward. Rows before the reported phase are done;
// phases that never report (e.g. Clean with nothing to remove) are marked done as well.
func applyUpdate(rows []stepRow, u tasks.ProgressUpdate) {
	if u.Phase == tasks.Done {
		finishSteps(rows, nil)
		return
	}

	i := indexOf(rows, u.Phase)
	if i < 0 {
		return
	}
	if u.Err != nil {
		rows[i].state = stepFailed
		rows[i].err = u.Err
		return
	}
	for j := range i {
		if rows[j].state != stepFailed {
			rows[j].state = stepDone
		}
	}
	rows[i].state = stepRunning
}

// finishSteps settles the list once the grab returns.
func finishSteps(rows []stepRow, err error) {
	for i := range rows {
		switch {
		case rows[i].state == stepFailed:
		case err == nil:
			rows[i].state = stepDone
		case rows[i].state == stepRunning:
			rows[i].state = stepFailed
			rows[i].err = err
		}
	}
}

func renderSteps(rows []stepRow, spin string) string {
	var b strings.Builder
	for _, r := range rows {
		switch r.state {
		case stepPending:
			b.WriteString("  " + statuses.marker(r.state) + " " + statuses.pending.Render(r.phase.Label()))
		case stepRunning:
			b.WriteString(fmt.Sprintf("  %s %s", spin, r.phase.Label()))
		case stepDone:
			b.WriteString("  " + statuses.marker(r.state) + " " + r.phase.Label())
		case stepFailed:
			b.WriteString("  " + statuses.marker(r.state) + " " + statuses.failed.Render(r.phase.Label()) + " " + statuses.pending.Render(fmt.Sprintf("(%v)", r.err)))
		}
		b.WriteString("\n")
	}
	return b.String()
}
