package main

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/desertthunder/dcx/internal/shared"
	"github.com/desertthunder/dcx/internal/tasks"
	"github.com/desertthunder/dcx/internal/ui"
)

const tuiLogPath = "./tmp/dcx-tui.log"

// grabTUI runs the grab behind the interactive progress view.
func (r *Runner) grabTUI(ctx context.Context, clean bool) error {
	// Redirect logs to file to avoid interfering with TUI rendering
	fileLogger, err := shared.NewFileLogger(tuiLogPath)
	if err != nil {
		return fmt.Errorf("failed to create file logger: %w", err)
	}
	fileLogger.SetLevel(r.logger.GetLevel())
	r.SetLogger(fileLogger)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	progress := make(chan tasks.ProgressUpdate, 50)
	ws, err := r.open(ctx, progress, true)
	if err != nil {
		return err
	}
	defer ws.Close()

	model := ui.NewModel(ctx, ui.Options{
		Node:     r.config.Node.URL,
		Clean:    clean,
		Tracked:  ws.layout.TrackedDirs(),
		Progress: progress,
		Run: func(ctx context.Context) error {
			session, err := r.newSession(ctx, ws)
			if err != nil {
				return err
			}
			return ws.orch.Grab(ctx, session, clean)
		},
	})

	p := tea.NewProgram(model, tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running TUI: %w", err)
	}

	if model.ViewState() == ui.GrabView {
		return fmt.Errorf("grab interrupted: %w", context.Canceled)
	}
	return model.Err()
}
