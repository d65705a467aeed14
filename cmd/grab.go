package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/desertthunder/dcx/internal/models"
	"github.com/desertthunder/dcx/internal/shared"
	"github.com/desertthunder/dcx/internal/tasks"
)

// Grab mirrors all content of the node into the tree.
func (r *Runner) Grab(ctx context.Context, cmd *cli.Command) error {
	if node := cmd.String("node"); node != "" {
		r.config.Node.URL = node
	}
	clean := cmd.Bool("clean")

	if cmd.Bool("tui") {
		return r.grabTUI(ctx, clean)
	}

	progressCh := make(chan tasks.ProgressUpdate, 50)
	printed := make(chan struct{})
	go func() {
		defer close(printed)
		for update := range progressCh {
			switch update.Phase {
			case tasks.Clean, tasks.Bootstrap:
				r.writePlain("  %s\n", update.Message)
			case tasks.Done:
			default:
				r.writePlain("%s\n", update.Message)
			}
		}
	}()

	ws, err := r.open(ctx, progressCh, true)
	if err != nil {
		close(progressCh)
		<-printed
		return err
	}
	defer ws.Close()

	r.logger.Info("starting grab", "node", r.config.Node.URL, "base", ws.layout.BaseDir, "clean", clean)
	r.writePlain("Grabbing from %s into %s\n\n", r.config.Node.URL, ws.layout.BaseDir)

	session, err := r.newSession(ctx, ws)
	if err == nil {
		err = ws.orch.Grab(ctx, session, clean)
	}
	close(progressCh)
	<-printed

	if err != nil {
		return err
	}

	r.writePlainln("")
	r.writePlainHeader("Grab Complete!")
	r.writePlain("Node: %s (version %s)\n", session.Node(), session.RemoteVersion())
	r.writePlain("Tree: %s\n", ws.layout.BaseDir)
	r.writePlain("Session: %s\n", session.ID())
	return nil
}

// newSession asks the node for its version and starts a session against it.
func (r *Runner) newSession(ctx context.Context, ws *workspace) (models.Session, error) {
	remote, err := ws.client.Version(ctx)
	if err != nil {
		return models.Session{}, fmt.Errorf("failed to read node version: %w", err)
	}
	return models.NewSession(r.config.Node.URL, remote, version), nil
}

// Refresh syncs a single path of the tree.
func (r *Runner) Refresh(ctx context.Context, cmd *cli.Command) error {
	p := cmd.StringArg("path")
	if p == "" {
		return fmt.Errorf("%w: path is required", shared.ErrMissingArgument)
	}
	if node := cmd.String("node"); node != "" {
		r.config.Node.URL = node
	}

	ws, err := r.open(ctx, nil, false)
	if err != nil {
		return err
	}
	defer ws.Close()

	out, err := ws.orch.Refresh(ctx, p)
	if err != nil {
		return err
	}

	switch {
	case out.Type == "":
		return r.writePlain("Skipped %s: no content type matches\n", p)
	case !out.Ran:
		return r.writePlain("Skipped %s: no refresh handler for %s\n", p, out.Type)
	}
	return r.writePlain("✓ Refreshed %s (%s)\n", p, out.Type)
}
