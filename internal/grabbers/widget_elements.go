package grabbers

import (
	"context"
	"path"

	"golang.org/x/sync/errgroup"

	"github.com/desertthunder/dcx/internal/layout"
	"github.com/desertthunder/dcx/internal/services"
)

// WidgetElementsGrabber mirrors the elements scoped to widgets into widget/<name>/element/.
type WidgetElementsGrabber struct {
	env Env
}

// GrabAll fetches the elements of every widget.
func (g *WidgetElementsGrabber) GrabAll(ctx context.Context) error {
	widgets, err := g.env.API.ListDescriptors(ctx, services.KindWidgets)
	if err != nil {
		return err
	}

	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(g.env.Concurrency)
	for _, w := range widgets {
		eg.Go(func() error { return g.grab(ctx, w) })
	}
	return eg.Wait()
}

// GrabOne fetches the elements of the widget named in p.
func (g *WidgetElementsGrabber) GrabOne(ctx context.Context, p string) error {
	w, err := findDescriptor(ctx, g.env.API, services.KindWidgets, layout.WidgetsDir, p)
	if err != nil {
		return err
	}
	return g.grab(ctx, w)
}

func (g *WidgetElementsGrabber) grab(ctx context.Context, w services.Descriptor) error {
	bundle, err := g.env.API.FetchWidgetElements(ctx, w.ID)
	if err != nil {
		return err
	}
	if len(bundle.Files) == 0 {
		return nil
	}
	dir := path.Join(layout.ItemDir(layout.WidgetsDir, w.Name), layout.WidgetElementsDir)
	return g.env.writeFiles(ctx, dir, bundle.Files)
}
