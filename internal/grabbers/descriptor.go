package grabbers

import (
	"context"
	"fmt"
	"path"

	"golang.org/x/sync/errgroup"

	"github.com/desertthunder/dcx/internal/layout"
	"github.com/desertthunder/dcx/internal/services"
	"github.com/desertthunder/dcx/internal/shared"
)

// DescriptorGrabber mirrors a listable kind (stacks, widgets, elements, themes).
//
// Each item lands in <kindDir>/<name>/ with its code bundle and a metadata file holding the descriptor.
type DescriptorGrabber struct {
	env          Env
	kind         services.Kind
	kindDir      string
	metadataFile string
}

func newDescriptorGrabber(env Env, kind services.Kind, kindDir, metadataFile string) *DescriptorGrabber {
	return &DescriptorGrabber{env: env, kind: kind, kindDir: kindDir, metadataFile: metadataFile}
}

// Kind returns the remote collection this grabber mirrors.
func (g *DescriptorGrabber) Kind() services.Kind { return g.kind }

// GrabAll fetches every item of the kind.
func (g *DescriptorGrabber) GrabAll(ctx context.Context) error {
	items, err := g.env.API.ListDescriptors(ctx, g.kind)
	if err != nil {
		return err
	}
	g.env.Logger.Info("grabbing", "kind", g.kind, "count", len(items))

	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(g.env.Concurrency)
	for _, d := range items {
		eg.Go(func() error { return g.grab(ctx, d) })
	}
	return eg.Wait()
}

// GrabOne fetches the single item named by p, a path of the form <...>/<kindDir>/<name>[/...].
func (g *DescriptorGrabber) GrabOne(ctx context.Context, p string) error {
	d, err := findDescriptor(ctx, g.env.API, g.kind, g.kindDir, p)
	if err != nil {
		return err
	}
	return g.grab(ctx, d)
}

func (g *DescriptorGrabber) grab(ctx context.Context, d services.Descriptor) error {
	bundle, err := g.env.API.FetchBundle(ctx, g.kind, d.ID)
	if err != nil {
		return err
	}

	dir := layout.ItemDir(g.kindDir, d.Name)
	if err := g.env.writeFiles(ctx, dir, bundle.Files); err != nil {
		return err
	}

	meta, err := shared.MarshalJSON(d, true)
	if err != nil {
		return err
	}
	return g.env.write(path.Join(dir, g.metadataFile), meta)
}

// findDescriptor resolves the item named in p against the remote listing of kind.
func findDescriptor(ctx context.Context, api *services.API, kind services.Kind, kindDir, p string) (services.Descriptor, error) {
	name := layout.ItemName(p, kindDir)
	if name == "" {
		return services.Descriptor{}, fmt.Errorf("%w: %s does not name a %s item", shared.ErrInvalidArgument, p, kindDir)
	}

	items, err := api.ListDescriptors(ctx, kind)
	if err != nil {
		return services.Descriptor{}, err
	}
	for _, d := range items {
		if d.Name == name || layout.SanitizeName(d.Name) == name {
			return d, nil
		}
	}
	return services.Descriptor{}, fmt.Errorf("%w: %s %q", shared.ErrNotFound, kindDir, name)
}
