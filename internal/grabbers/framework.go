package grabbers

import (
	"context"
	"fmt"
	"path"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/desertthunder/dcx/internal/layout"
	"github.com/desertthunder/dcx/internal/services"
	"github.com/desertthunder/dcx/internal/shared"
)

// FrameworkGrabber mirrors the platform framework tree into static/.
type FrameworkGrabber struct {
	env Env
}

// GrabAll downloads the whole framework tree.
func (g *FrameworkGrabber) GrabAll(ctx context.Context) error {
	return g.grab(ctx, "")
}

// GrabOne downloads the part of the framework tree at or below p.
func (g *FrameworkGrabber) GrabOne(ctx context.Context, p string) error {
	sub := g.env.Layout.SubDir(p)
	if sub != layout.FrameworkDir && !strings.HasPrefix(sub, layout.FrameworkDir+"/") {
		return fmt.Errorf("%w: %s is not inside %s", shared.ErrInvalidArgument, p, layout.FrameworkDir)
	}
	prefix := strings.TrimPrefix(strings.TrimPrefix(sub, layout.FrameworkDir), "/")
	return g.grab(ctx, prefix)
}

// grab downloads every listed file equal to or under prefix. An empty prefix selects everything.
func (g *FrameworkGrabber) grab(ctx context.Context, prefix string) error {
	files, err := g.env.API.ListFrameworkFiles(ctx)
	if err != nil {
		return err
	}

	var selected []services.FrameworkFile
	for _, f := range files {
		if inFolder(f.Path, prefix) {
			selected = append(selected, f)
		}
	}
	if prefix != "" && len(selected) == 0 {
		return fmt.Errorf("%w: no framework files under %s", shared.ErrNotFound, prefix)
	}
	g.env.Logger.Info("grabbing", "kind", "framework", "count", len(selected))

	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(g.env.Concurrency)
	for _, f := range selected {
		eg.Go(func() error {
			target, ok := safeJoin(layout.FrameworkDir, f.Path)
			if !ok {
				return fmt.Errorf("%w: unusable framework path %q", shared.ErrAPIRequest, f.Path)
			}
			src := f.URL
			if src == "" {
				src = "/file/" + path.Join(layout.FrameworkDir, f.Path)
			}
			data, err := g.env.API.Download(ctx, src)
			if err != nil {
				return err
			}
			return g.env.write(target, data)
		})
	}
	return eg.Wait()
}

func inFolder(p, prefix string) bool {
	p = strings.TrimPrefix(p, "/")
	return prefix == "" || p == prefix || strings.HasPrefix(p, prefix+"/")
}
