// Admin API endpoints used by the content handlers
package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
)

const adminPrefix = "/ccadmin/v1"

// API wraps a [Client] with typed accessors for the admin endpoints.
type API struct {
	client Client
}

// NewAPI creates an API over c.
func NewAPI(c Client) *API {
	return &API{client: c}
}

// Client returns the underlying transport.
func (a *API) Client() Client { return a.client }

// ListDescriptors lists every item of kind.
func (a *API) ListDescriptors(ctx context.Context, kind Kind) ([]Descriptor, error) {
	var resp struct {
		Items []Descriptor `json:"items"`
	}
	if err := a.client.GetJSON(ctx, adminPrefix+"/"+string(kind), &resp); err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", kind, err)
	}
	return resp.Items, nil
}

// FetchBundle returns the source files of one item.
func (a *API) FetchBundle(ctx context.Context, kind Kind, id string) (Bundle, error) {
	var b Bundle
	endpoint := fmt.Sprintf("%s/%s/%s/code", adminPrefix, kind, url.PathEscape(id))
	if err := a.client.GetJSON(ctx, endpoint, &b); err != nil {
		return Bundle{}, fmt.Errorf("failed to fetch %s %s: %w", kind, id, err)
	}
	return b, nil
}

// FetchWidgetElements returns the element files scoped to a widget.
func (a *API) FetchWidgetElements(ctx context.Context, widgetID string) (Bundle, error) {
	var b Bundle
	endpoint := fmt.Sprintf("%s/%s/%s/elements", adminPrefix, KindWidgets, url.PathEscape(widgetID))
	if err := a.client.GetJSON(ctx, endpoint, &b); err != nil {
		return Bundle{}, fmt.Errorf("failed to fetch elements of widget %s: %w", widgetID, err)
	}
	return b, nil
}

// ListLocales lists the storefront locales.
func (a *API) ListLocales(ctx context.Context) ([]Locale, error) {
	var resp struct {
		Items []Locale `json:"items"`
	}
	if err := a.client.GetJSON(ctx, adminPrefix+"/locales", &resp); err != nil {
		return nil, fmt.Errorf("failed to list locales: %w", err)
	}
	return resp.Items, nil
}

// FetchCommonSnippets returns the common text snippet resource of a locale as raw JSON.
func (a *API) FetchCommonSnippets(ctx context.Context, locale string) (json.RawMessage, error) {
	var raw json.RawMessage
	endpoint := fmt.Sprintf("%s/resources/ns.common?locale=%s", adminPrefix, url.QueryEscape(locale))
	if err := a.client.GetJSON(ctx, endpoint, &raw); err != nil {
		return nil, fmt.Errorf("failed to fetch snippets for %s: %w", locale, err)
	}
	return raw, nil
}

// FetchApplicationJavaScript returns every application-level script keyed by file name.
func (a *API) FetchApplicationJavaScript(ctx context.Context) (map[string]string, error) {
	var resp struct {
		Items map[string]string `json:"items"`
	}
	if err := a.client.GetJSON(ctx, adminPrefix+"/applicationJavaScript", &resp); err != nil {
		return nil, fmt.Errorf("failed to fetch application javascript: %w", err)
	}
	return resp.Items, nil
}

// ListFrameworkFiles lists the files of the platform framework tree.
func (a *API) ListFrameworkFiles(ctx context.Context) ([]FrameworkFile, error) {
	var resp struct {
		Items []FrameworkFile `json:"items"`
	}
	if err := a.client.GetJSON(ctx, adminPrefix+"/files?folder=static", &resp); err != nil {
		return nil, fmt.Errorf("failed to list framework files: %w", err)
	}
	return resp.Items, nil
}

// Download fetches a raw file.
func (a *API) Download(ctx context.Context, path string) ([]byte, error) {
	return a.client.Download(ctx, path)
}
