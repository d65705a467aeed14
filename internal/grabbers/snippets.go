package grabbers

import (
	"context"
	"encoding/json"
	"fmt"
	"path"

	"github.com/desertthunder/dcx/internal/layout"
	"github.com/desertthunder/dcx/internal/shared"
)

// SnippetsGrabber mirrors the common text snippets of each locale into snippets/<locale>/ns.common.json.
type SnippetsGrabber struct {
	env Env
}

// GrabAll fetches the common snippets of every locale, one locale at a time.
func (g *SnippetsGrabber) GrabAll(ctx context.Context) error {
	locales, err := g.env.API.ListLocales(ctx)
	if err != nil {
		return err
	}
	g.env.Logger.Info("grabbing", "kind", "snippets", "count", len(locales))

	for _, l := range locales {
		if err := g.grab(ctx, l.Name); err != nil {
			return err
		}
	}
	return nil
}

// GrabOne fetches the snippets of the locale directory p (snippets/<locale>).
func (g *SnippetsGrabber) GrabOne(ctx context.Context, p string) error {
	locale := layout.ItemName(p, layout.TextSnippetsDir)
	if locale == "" {
		return fmt.Errorf("%w: %s does not name a locale", shared.ErrInvalidArgument, p)
	}
	return g.grab(ctx, locale)
}

func (g *SnippetsGrabber) grab(ctx context.Context, locale string) error {
	raw, err := g.env.API.FetchCommonSnippets(ctx, locale)
	if err != nil {
		return err
	}

	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return fmt.Errorf("%w: snippets for %s: %w", shared.ErrAPIRequest, locale, err)
	}
	data, err := shared.MarshalJSON(v, true)
	if err != nil {
		return err
	}
	return g.env.write(path.Join(layout.ItemDir(layout.TextSnippetsDir, locale), layout.SnippetsJSON), data)
}
