package grabbers

import (
	"context"
	"fmt"
	"path"
	"path/filepath"
	"sort"

	"github.com/desertthunder/dcx/internal/layout"
	"github.com/desertthunder/dcx/internal/shared"
)

// AppJSGrabber mirrors application-level JavaScript into global/.
type AppJSGrabber struct {
	env Env
}

// GrabAll fetches every application-level script.
func (g *AppJSGrabber) GrabAll(ctx context.Context) error {
	scripts, err := g.env.API.FetchApplicationJavaScript(ctx)
	if err != nil {
		return err
	}
	g.env.Logger.Info("grabbing", "kind", "applicationJavaScript", "count", len(scripts))

	names := make([]string, 0, len(scripts))
	for name := range scripts {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		if err := g.env.write(path.Join(layout.GlobalDir, layout.SanitizeName(name)), []byte(scripts[name])); err != nil {
			return err
		}
	}
	return nil
}

// GrabOne fetches the script whose file name is the last element of p.
func (g *AppJSGrabber) GrabOne(ctx context.Context, p string) error {
	name := filepath.Base(p)

	scripts, err := g.env.API.FetchApplicationJavaScript(ctx)
	if err != nil {
		return err
	}
	src, ok := scripts[name]
	if !ok {
		return fmt.Errorf("%w: application javascript %q", shared.ErrNotFound, name)
	}
	return g.env.write(path.Join(layout.GlobalDir, layout.SanitizeName(name)), []byte(src))
}
