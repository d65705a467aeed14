package services

import (
	"context"
	"encoding/json"
	"errors"
	"reflect"
	"testing"

	"github.com/desertthunder/dcx/internal/shared"
	tu "github.com/desertthunder/dcx/internal/testing"
)

func TestAPI(t *testing.T) {
	ctx := context.Background()

	client := tu.NewFakeClient("24.2").
		Handle("/ccadmin/v1/stacks", map[string]any{
			"items": []Descriptor{{ID: "s1", Name: "Progress Tracker", Version: 2}},
		}).
		Handle("/ccadmin/v1/stacks/s1/code", Bundle{Files: map[string]string{"stack.template": "<div/>"}}).
		Handle("/ccadmin/v1/widgets/w%2F1/elements", Bundle{Files: map[string]string{"logo/element.js": "x"}}).
		Handle("/ccadmin/v1/locales", map[string]any{"items": []Locale{{Name: "en"}, {Name: "de"}}}).
		Handle("/ccadmin/v1/resources/ns.common?locale=en", map[string]any{"resources": map[string]string{"hello": "Hello"}}).
		Handle("/ccadmin/v1/applicationJavaScript", map[string]any{"items": map[string]string{"app.js": "init();"}}).
		Handle("/ccadmin/v1/files?folder=static", map[string]any{
			"items": []FrameworkFile{{Path: "js/main.js", URL: "/file/static/js/main.js"}},
		})
	api := NewAPI(client)

	t.Run("ListDescriptors", func(t *testing.T) {
		items, err := api.ListDescriptors(ctx, KindStacks)
		if err != nil {
			t.Fatalf("ListDescriptors failed: %v", err)
		}
		if len(items) != 1 {
			t.Fatalf("expected 1 item, got %d", len(items))
		}
		if items[0].ID != "s1" || items[0].Version != 2 {
			t.Errorf("unexpected descriptor %+v", items[0])
		}
	})

	t.Run("FetchBundle", func(t *testing.T) {
		b, err := api.FetchBundle(ctx, KindStacks, "s1")
		if err != nil {
			t.Fatalf("FetchBundle failed: %v", err)
		}
		if got := b.Files["stack.template"]; got != "<div/>" {
			t.Errorf("unexpected template %q", got)
		}
	})

	t.Run("FetchBundle missing", func(t *testing.T) {
		if _, err := api.FetchBundle(ctx, KindThemes, "nope"); !errors.Is(err, shared.ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("FetchWidgetElements escapes id", func(t *testing.T) {
		b, err := api.FetchWidgetElements(ctx, "w/1")
		if err != nil {
			t.Fatalf("FetchWidgetElements failed: %v", err)
		}
		if _, ok := b.Files["logo/element.js"]; !ok {
			t.Errorf("expected logo/element.js in %v", b.Files)
		}
	})

	t.Run("ListLocales", func(t *testing.T) {
		locales, err := api.ListLocales(ctx)
		if err != nil {
			t.Fatalf("ListLocales failed: %v", err)
		}
		if want := []Locale{{Name: "en"}, {Name: "de"}}; !reflect.DeepEqual(locales, want) {
			t.Errorf("expected %v, got %v", want, locales)
		}
	})

	t.Run("FetchCommonSnippets", func(t *testing.T) {
		raw, err := api.FetchCommonSnippets(ctx, "en")
		if err != nil {
			t.Fatalf("FetchCommonSnippets failed: %v", err)
		}
		var got map[string]map[string]string
		if err := json.Unmarshal(raw, &got); err != nil {
			t.Fatalf("snippets are not JSON: %v", err)
		}
		if got["resources"]["hello"] != "Hello" {
			t.Errorf("unexpected snippets %s", raw)
		}
	})

	t.Run("FetchApplicationJavaScript", func(t *testing.T) {
		scripts, err := api.FetchApplicationJavaScript(ctx)
		if err != nil {
			t.Fatalf("FetchApplicationJavaScript failed: %v", err)
		}
		if want := map[string]string{"app.js": "init();"}; !reflect.DeepEqual(scripts, want) {
			t.Errorf("expected %v, got %v", want, scripts)
		}
	})

	t.Run("ListFrameworkFiles", func(t *testing.T) {
		files, err := api.ListFrameworkFiles(ctx)
		if err != nil {
			t.Fatalf("ListFrameworkFiles failed: %v", err)
		}
		if len(files) != 1 || files[0].Path != "js/main.js" {
			t.Errorf("unexpected files %+v", files)
		}
	})

	t.Run("errors keep their sentinel", func(t *testing.T) {
		failing := tu.NewFakeClient("").Fail("/ccadmin/v1/locales", shared.ErrAuthFailed)

		if _, err := NewAPI(failing).ListLocales(ctx); !errors.Is(err, shared.ErrAuthFailed) {
			t.Errorf("expected ErrAuthFailed, got %v", err)
		}
	})
}
