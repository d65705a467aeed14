package tasks

import (
	"context"
	"fmt"
	"slices"

	"github.com/charmbracelet/log"

	"github.com/desertthunder/dcx/internal/models"
	"github.com/desertthunder/dcx/internal/shared"
)

// action runs the handler chain for a classified path.
type action func(ctx context.Context, path string) error

// Outcome reports what [Dispatcher.Dispatch] did with a path.
type Outcome struct {
	Type models.ContentType // empty when the path is unclassifiable
	Ran  bool
}

// globalGrabber is implemented by element grabbers whose GrabAll also covers widget-scoped
// elements. GrabGlobal mirrors global elements only.
type globalGrabber interface {
	GrabGlobal(ctx context.Context) error
}

// Dispatcher routes a path to the handler registered for its content type.
type Dispatcher struct {
	classifier Classifier
	table      map[models.ContentType]action
	logger     *log.Logger
}

// NewDispatcher builds the routing table from h. Nil handlers leave their content types unrouted.
func NewDispatcher(c Classifier, h Handlers, logger *log.Logger) *Dispatcher {
	if logger == nil {
		logger = log.Default()
	}

	table := make(map[models.ContentType]action)
	route := func(tag models.ContentType, a action, required ...Grabber) {
		for _, g := range required {
			if g == nil {
				return
			}
		}
		table[tag] = a
	}

	all := func(g Grabber) action {
		return func(ctx context.Context, _ string) error { return g.GrabAll(ctx) }
	}
	one := func(g Grabber) action {
		return func(ctx context.Context, p string) error { return g.GrabOne(ctx, p) }
	}

	route(models.ApplicationLevelJavaScriptDirectory, all(h.AppJS), h.AppJS)
	route(models.ApplicationLevelJavaScript, one(h.AppJS), h.AppJS)
	route(models.GlobalSnippetsDirectory, all(h.Snippets), h.Snippets)
	route(models.GlobalSnippetsLocaleDirectory, one(h.Snippets), h.Snippets)
	route(models.StacksDirectory, all(h.Stacks), h.Stacks)
	route(models.Stack, one(h.Stacks), h.Stacks)
	route(models.ThemesDirectory, all(h.Themes), h.Themes)
	route(models.Theme, one(h.Themes), h.Themes)
	route(models.GlobalElementsDirectory, func(ctx context.Context, _ string) error {
		if g, ok := h.Elements.(globalGrabber); ok {
			return g.GrabGlobal(ctx)
		}
		return h.Elements.GrabAll(ctx)
	}, h.Elements)
	route(models.GlobalElement, one(h.Elements), h.Elements)
	route(models.FrameworkDirectory, one(h.Framework), h.Framework)

	route(models.WidgetsDirectory, func(ctx context.Context, _ string) error {
		if err := h.Widgets.GrabAll(ctx); err != nil {
			return err
		}
		return h.WidgetElements.GrabAll(ctx)
	}, h.Widgets, h.WidgetElements)

	route(models.Widget, func(ctx context.Context, p string) error {
		if err := h.Widgets.GrabOne(ctx, p); err != nil {
			return err
		}
		return h.WidgetElements.GrabOne(ctx, p)
	}, h.Widgets, h.WidgetElements)

	return &Dispatcher{classifier: c, table: table, logger: logger}
}

// Dispatch classifies path and runs its handler.
//
// The outcome carries the resolved content type and whether a handler ran. Unclassifiable
// paths and content types without a handler log an "unsupportedDirectoryType" warning and
// return with Ran unset and a nil error.
func (d *Dispatcher) Dispatch(ctx context.Context, path string) (Outcome, error) {
	tag, ok := d.classifier.Classify(path)
	if !ok {
		d.logger.Warn("unsupportedDirectoryType", "directory", path)
		return Outcome{}, nil
	}

	act, ok := d.table[tag]
	if !ok {
		d.logger.Warn("unsupportedDirectoryType", "directory", path, "type", tag)
		return Outcome{Type: tag}, nil
	}

	d.logger.Debug("dispatch", "directory", path, "type", tag)
	if err := act(ctx, path); err != nil {
		return Outcome{Type: tag, Ran: true}, fmt.Errorf("%w: %s %s: %w", shared.ErrHandlerFailed, tag, path, err)
	}
	return Outcome{Type: tag, Ran: true}, nil
}

// Resolve classifies path without running anything. The error wraps
// [shared.ErrUnclassifiablePath] or [shared.ErrUnsupportedType] when path cannot be dispatched.
func (d *Dispatcher) Resolve(path string) (models.ContentType, error) {
	tag, ok := d.classifier.Classify(path)
	if !ok {
		return "", fmt.Errorf("%w: %s", shared.ErrUnclassifiablePath, path)
	}
	if _, ok := d.table[tag]; !ok {
		return tag, fmt.Errorf("%w: %s", shared.ErrUnsupportedType, tag)
	}
	return tag, nil
}

// Supported lists the content types that have a handler, sorted by name.
func (d *Dispatcher) Supported() []models.ContentType {
	tags := make([]models.ContentType, 0, len(d.table))
	for tag := range d.table {
		tags = append(tags, tag)
	}
	slices.Sort(tags)
	return tags
}
