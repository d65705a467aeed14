// Package ui implements the interactive terminal view of a grab using bubbletea's Elm architecture.
//
// The TUI walks through three views:
//  1. [ConfirmView] : Confirm removal of the tracked directories (clean grabs only)
//  2. [GrabView] : Spinner and step list updated from progress events
//  3. [ResultView] : Outcome, elapsed time and the failing step, if any
//
// The (view) [Model] implements bubbletea/Elm's standard Init/Update/View pattern, receiving messages via the Msg union type.
// Progress updates flow through the orchestrator's channel, which the model drains without blocking the grab.
//
// Key bindings (y/n, r, ?, q) come with contextual help displayed via charmbracelet/bubbles/help.
package ui
