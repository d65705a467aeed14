package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/desertthunder/dcx/internal/classifier"
	"github.com/desertthunder/dcx/internal/formatter"
	"github.com/desertthunder/dcx/internal/layout"
	"github.com/desertthunder/dcx/internal/models"
	"github.com/desertthunder/dcx/internal/repositories"
	"github.com/desertthunder/dcx/internal/shared"
	"github.com/desertthunder/dcx/internal/tasks"
	"github.com/desertthunder/dcx/internal/tracking"
)

// classification is the JSON form of the classify command output.
type classification struct {
	Path        string `json:"path"`
	Type        string `json:"type"`
	Refreshable bool   `json:"refreshable"`
}

// Classify prints the content type of a path. It never contacts the node.
func (r *Runner) Classify(ctx context.Context, cmd *cli.Command) error {
	p := cmd.StringArg("path")
	if p == "" {
		return fmt.Errorf("%w: path is required", shared.ErrMissingArgument)
	}

	l := r.layout()
	d := tasks.NewDispatcher(classifier.New(l, r.fs), r.handlers(nil, l), r.logger)

	tag, err := d.Resolve(p)
	if errors.Is(err, shared.ErrUnclassifiablePath) {
		return err
	}
	result := classification{Path: p, Type: tag.String(), Refreshable: err == nil}

	if cmd.Bool("json") {
		return r.writeJSON(result, false)
	}
	if !result.Refreshable {
		return r.writePlain("%s: %s (no refresh handler)\n", p, tag)
	}
	return r.writePlain("%s: %s\n", p, tag)
}

// Status shows the session record of the tree and the latest journaled grab.
func (r *Runner) Status(ctx context.Context, cmd *cli.Command) error {
	l := r.layout()
	store := tracking.New(r.fs, l)

	var record models.SessionRecord
	err := store.ReadRecord(layout.ConfigMetadataJSON, &record)
	switch {
	case errors.Is(err, os.ErrNotExist):
		r.writePlain("No grab recorded in %s\n", l.BaseDir)
	case err != nil:
		return err
	default:
		r.writePlainHeader("Mirror Tree")
		r.writePlain("Tree: %s\n", l.BaseDir)
		r.writePlain("Node: %s\n", record.Node)
		r.writePlain("Remote version: %s\n", record.RemoteVersion)
		r.writePlain("Grabbed with: dcx %s\n", record.ToolVersion)
	}

	db, owned, err := r.database()
	if err != nil {
		r.logger.Warn("journalUnavailable", "error", err)
		return nil
	}
	if owned {
		defer db.Close()
	}

	repo := repositories.NewSessionRepository(db)
	latest, err := repo.Latest()
	if errors.Is(err, shared.ErrSessionNotFound) {
		return r.writePlainln("No sessions journaled yet")
	}
	if err != nil {
		return err
	}

	steps, err := repo.Steps(latest.ID())
	if err != nil {
		return err
	}

	r.writePlainln("")
	r.writePlainHeader("Last Session")
	_, err = r.output.Write(formatter.StepsToText(latest, steps))
	return err
}

// History lists journaled grabs in the requested format.
func (r *Runner) History(ctx context.Context, cmd *cli.Command) error {
	format, err := formatter.ParseFormat(cmd.String("format"))
	if err != nil {
		return err
	}

	db, owned, err := r.database()
	if err != nil {
		return err
	}
	if owned {
		defer db.Close()
	}

	entries, err := repositories.NewSessionRepository(db).List(map[string]any{
		"node":  cmd.String("node"),
		"limit": int(cmd.Int("limit")),
	})
	if err != nil {
		return err
	}

	if output := cmd.String("output"); output != "" {
		path, err := formatter.WriteHistoryFile(r.fs, output, format, entries)
		if err != nil {
			return err
		}
		r.logger.Info("history written", "path", path, "sessions", len(entries))
		return r.writePlain("✓ Wrote %d sessions to %s\n", len(entries), path)
	}

	return formatter.WriteHistory(r.output, format, entries)
}
