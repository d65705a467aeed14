package grabbers

import "context"

// ElementsGrabber mirrors global elements into element/ and, on a full pass, the elements
// scoped to each widget.
type ElementsGrabber struct {
	global  *DescriptorGrabber
	widgets *WidgetElementsGrabber
}

// GrabAll fetches every global element, then the elements of every widget.
func (g *ElementsGrabber) GrabAll(ctx context.Context) error {
	if err := g.GrabGlobal(ctx); err != nil {
		return err
	}
	return g.widgets.GrabAll(ctx)
}

// GrabGlobal fetches global elements only.
func (g *ElementsGrabber) GrabGlobal(ctx context.Context) error {
	return g.global.GrabAll(ctx)
}

// GrabOne fetches the global element named by p.
func (g *ElementsGrabber) GrabOne(ctx context.Context, p string) error {
	return g.global.GrabOne(ctx, p)
}
