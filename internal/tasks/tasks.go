// package tasks classifies local paths and drives content handlers to sync a mirror tree.
//
// The core abstractions are the [Dispatcher], which routes one path to its handler, and the
// [Orchestrator], which runs a full grab or a single-path refresh.
// Operations emit progress updates via channels for non-blocking status reporting to CLI/UI layers.
package tasks

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/desertthunder/dcx/internal/models"
	"github.com/desertthunder/dcx/internal/shared"
)

// Grabber mirrors one content kind from the remote node.
type Grabber interface {
	// GrabAll mirrors every item of the kind.
	GrabAll(ctx context.Context) error

	// GrabOne mirrors the single item named by path.
	GrabOne(ctx context.Context, path string) error
}

// Classifier maps a path to a content type. The boolean is false when nothing matches.
type Classifier interface {
	Classify(path string) (models.ContentType, bool)
}

// Handlers holds one [Grabber] per content kind.
type Handlers struct {
	Framework      Grabber
	Stacks         Grabber
	Widgets        Grabber
	WidgetElements Grabber
	Elements       Grabber
	Themes         Grabber
	Snippets       Grabber
	AppJS          Grabber
}

// validate reports every missing handler.
func (h Handlers) validate() error {
	var missing []string
	for name, g := range map[string]Grabber{
		"framework":      h.Framework,
		"stacks":         h.Stacks,
		"widgets":        h.Widgets,
		"widgetElements": h.WidgetElements,
		"elements":       h.Elements,
		"themes":         h.Themes,
		"snippets":       h.Snippets,
		"appJS":          h.AppJS,
	} {
		if g == nil {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		slices.Sort(missing)
		return fmt.Errorf("%w: missing handlers: %s", shared.ErrInvalidConfig, strings.Join(missing, ", "))
	}
	return nil
}

// Journal records the lifecycle of grab sessions. Implementations must be safe to call
// from a single goroutine; failures are logged by the caller and never abort a sync.
type Journal interface {
	Begin(ctx context.Context, s models.Session, clean bool) error
	Step(ctx context.Context, sessionID string, position int, phase string, stepErr error) error
	End(ctx context.Context, sessionID string, runErr error) error
}

// sendProgress sends a progress update through the channel without blocking.
func sendProgress(progress chan<- ProgressUpdate, update ProgressUpdate) {
	if progress == nil {
		return
	}
	select {
	case progress <- update:
	default:
		// Channel full, skip this update
	}
}
