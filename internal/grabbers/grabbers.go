package grabbers

import (
	"context"
	"fmt"
	"path"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/afero"

	"github.com/desertthunder/dcx/internal/layout"
	"github.com/desertthunder/dcx/internal/services"
	"github.com/desertthunder/dcx/internal/shared"
)

// Env carries what every grabber needs: the remote API, the filesystem and the tree layout.
type Env struct {
	API         *services.API
	FS          afero.Fs
	Layout      layout.Layout
	Concurrency int
	Logger      *log.Logger
}

// Set holds one grabber per content kind.
type Set struct {
	Framework      *FrameworkGrabber
	Stacks         *DescriptorGrabber
	Widgets        *DescriptorGrabber
	WidgetElements *WidgetElementsGrabber
	Elements       *ElementsGrabber
	Themes         *DescriptorGrabber
	Snippets       *SnippetsGrabber
	AppJS          *AppJSGrabber
}

// New builds the full grabber set over env.
func New(env Env) Set {
	if env.FS == nil {
		env.FS = afero.NewOsFs()
	}
	if env.Logger == nil {
		env.Logger = log.Default()
	}
	if env.Concurrency < 1 {
		env.Concurrency = 1
	}

	widgetElements := &WidgetElementsGrabber{env: env}
	return Set{
		Framework:      &FrameworkGrabber{env: env},
		Stacks:         newDescriptorGrabber(env, services.KindStacks, layout.StacksDir, layout.StackMetadata),
		Widgets:        newDescriptorGrabber(env, services.KindWidgets, layout.WidgetsDir, layout.WidgetMetadata),
		WidgetElements: widgetElements,
		Elements: &ElementsGrabber{
			global:  newDescriptorGrabber(env, services.KindElements, layout.ElementsDir, layout.ElementMetadata),
			widgets: widgetElements,
		},
		Themes:         newDescriptorGrabber(env, services.KindThemes, layout.ThemesDir, layout.ThemeMetadata),
		Snippets:       &SnippetsGrabber{env: env},
		AppJS:          &AppJSGrabber{env: env},
	}
}

// write stores data at rel (slash separated, relative to the base directory), creating parents.
func (e Env) write(rel string, data []byte) error {
	abs := e.Layout.Resolve(filepath.FromSlash(rel))
	if err := e.FS.MkdirAll(filepath.Dir(abs), 0755); err != nil {
		return fmt.Errorf("failed to create directory for %s: %w", rel, err)
	}
	if err := afero.WriteFile(e.FS, abs, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", rel, err)
	}
	e.Logger.Debug("wrote", "file", rel, "bytes", len(data))
	return nil
}

// writeFiles stores every file of a bundle under dir.
func (e Env) writeFiles(ctx context.Context, dir string, files map[string]string) error {
	for rel, content := range files {
		if err := ctx.Err(); err != nil {
			return err
		}
		target, ok := safeJoin(dir, rel)
		if !ok {
			return fmt.Errorf("%w: unusable file path %q in bundle for %s", shared.ErrAPIRequest, rel, dir)
		}
		if err := e.write(target, []byte(content)); err != nil {
			return err
		}
	}
	return nil
}

// safeJoin joins a server supplied relative path to dir without letting it escape dir.
func safeJoin(dir, rel string) (string, bool) {
	clean := path.Clean("/" + filepath.ToSlash(rel))
	if clean == "/" {
		return "", false
	}
	return path.Join(dir, clean[1:]), true
}
