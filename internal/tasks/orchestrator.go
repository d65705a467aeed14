package tasks

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/afero"

	"github.com/desertthunder/dcx/internal/layout"
	"github.com/desertthunder/dcx/internal/models"
	"github.com/desertthunder/dcx/internal/shared"
	"github.com/desertthunder/dcx/internal/tracking"
)

// Options configures an [Orchestrator].
type Options struct {
	FS         afero.Fs
	Layout     layout.Layout
	Classifier Classifier
	Handlers   Handlers
	Journal    Journal // optional
	Logger     *log.Logger
	Progress   chan<- ProgressUpdate // optional
}

// Orchestrator runs full grabs and single-path refreshes against one mirror tree.
//
// It holds no locks: running two operations against the same tree at once is unsafe.
type Orchestrator struct {
	fs         afero.Fs
	layout     layout.Layout
	store      *tracking.Store
	handlers   Handlers
	dispatcher *Dispatcher
	journal    Journal
	logger     *log.Logger
	progress   chan<- ProgressUpdate
}

// grabStep is one stage of a full grab.
type grabStep struct {
	phase Phase
	run   func(ctx context.Context) error
}

// NewOrchestrator creates an Orchestrator.
func NewOrchestrator(opts Options) *Orchestrator {
	if opts.FS == nil {
		opts.FS = afero.NewOsFs()
	}
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}

	return &Orchestrator{
		fs:         opts.FS,
		layout:     opts.Layout,
		store:      tracking.New(opts.FS, opts.Layout),
		handlers:   opts.Handlers,
		dispatcher: NewDispatcher(opts.Classifier, opts.Handlers, opts.Logger),
		journal:    opts.Journal,
		logger:     opts.Logger,
		progress:   opts.Progress,
	}
}

// Dispatcher returns the dispatcher used by [Orchestrator.Refresh].
func (o *Orchestrator) Dispatcher() *Dispatcher { return o.dispatcher }

// Store returns the tracking store of the mirror tree.
func (o *Orchestrator) Store() *tracking.Store { return o.store }

// steps lists the full grab in its required order. Each step finishes before the next starts.
func (o *Orchestrator) steps() []grabStep {
	h := o.handlers
	return []grabStep{
		{Framework, h.Framework.GrabAll},
		{Stacks, h.Stacks.GrabAll},
		{Widgets, h.Widgets.GrabAll},
		{Snippets, h.Snippets.GrabAll},
		{Elements, h.Elements.GrabAll},
		{Themes, h.Themes.GrabAll},
		{ApplicationJavaScript, h.AppJS.GrabAll},
	}
}

// Grab mirrors everything the node offers into the tree.
//
// With clean set, the tracked directories are removed first. The session record is written to
// the tracking store before any handler runs. Handlers then run one after another and the first
// failure aborts the grab.
func (o *Orchestrator) Grab(ctx context.Context, session models.Session, clean bool) error {
	if err := session.Validate(); err != nil {
		return err
	}
	if err := o.handlers.validate(); err != nil {
		return err
	}

	o.journalBegin(ctx, session, clean)
	err := o.grab(ctx, session, clean)
	o.journalEnd(ctx, session.ID(), err)
	if err != nil {
		return err
	}

	o.logger.Info("allDone")
	sendProgress(o.progress, doneUpdate(len(o.steps())))
	return nil
}

func (o *Orchestrator) grab(ctx context.Context, session models.Session, clean bool) error {
	if clean {
		if err := o.Clean(); err != nil {
			return err
		}
	}

	sendProgress(o.progress, bootstrapUpdate(0, len(o.steps()), session.Node()))
	if err := o.store.EnsureDir(); err != nil {
		return err
	}
	if err := o.store.WriteRecord(layout.ConfigMetadataJSON, session.Record()); err != nil {
		return err
	}

	steps := o.steps()
	for i, s := range steps {
		position := i + 1
		if err := ctx.Err(); err != nil {
			return err
		}

		sendProgress(o.progress, stepStartedUpdate(s.phase, position, len(steps)))
		o.logger.Info("grabbing", "phase", s.phase)

		err := s.run(ctx)
		o.journalStep(ctx, session.ID(), position, s.phase, err)
		if err != nil {
			sendProgress(o.progress, stepFailedUpdate(s.phase, position, len(steps), err))
			return fmt.Errorf("%w: %s: %w", shared.ErrHandlerFailed, s.phase, err)
		}
	}
	return nil
}

// Clean removes each tracked directory that exists. Missing directories are skipped silently.
func (o *Orchestrator) Clean() error {
	dirs := o.layout.TrackedDirs()
	for i, dir := range dirs {
		abs := o.layout.Resolve(dir)

		if _, err := o.fs.Stat(abs); err != nil {
			if errors.Is(err, os.ErrNotExist) {
				continue
			}
			return fmt.Errorf("%w: %s: %w", shared.ErrCleanup, dir, err)
		}

		sendProgress(o.progress, cleanUpdate(i+1, len(dirs), dir))
		if err := o.fs.RemoveAll(abs); err != nil {
			return fmt.Errorf("%w: %s: %w", shared.ErrCleanup, dir, err)
		}
		o.logger.Debug("removed", "directory", dir)
	}
	return nil
}

// Refresh syncs the single path p by classification. It neither cleans nor writes a session record.
// Paths without a handler are logged and skipped; the outcome tells which happened.
func (o *Orchestrator) Refresh(ctx context.Context, p string) (Outcome, error) {
	sendProgress(o.progress, refreshUpdate(p))

	out, err := o.dispatcher.Dispatch(ctx, p)
	if err != nil {
		return out, err
	}
	if out.Ran {
		o.logger.Info("allDone")
		sendProgress(o.progress, doneUpdate(1))
	}
	return out, nil
}

func (o *Orchestrator) journalBegin(ctx context.Context, s models.Session, clean bool) {
	if o.journal == nil {
		return
	}
	if err := o.journal.Begin(ctx, s, clean); err != nil {
		o.logger.Warn("journalFailed", "session", s.ID(), "err", err)
	}
}

func (o *Orchestrator) journalStep(ctx context.Context, id string, position int, phase Phase, stepErr error) {
	if o.journal == nil {
		return
	}
	if err := o.journal.Step(ctx, id, position, phase.String(), stepErr); err != nil {
		o.logger.Warn("journalFailed", "session", id, "phase", phase, "err", err)
	}
}

func (o *Orchestrator) journalEnd(ctx context.Context, id string, runErr error) {
	if o.journal == nil {
		return
	}
	// The run context may already be cancelled; the outcome should still be recorded.
	if err := o.journal.End(context.WithoutCancel(ctx), id, runErr); err != nil {
		o.logger.Warn("journalFailed", "session", id, "err", err)
	}
}
