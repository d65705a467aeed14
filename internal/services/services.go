// package services defines interface Client for talking to a remote admin node
package services

import (
	"context"
)

// Client is the transport used by content handlers to reach the admin API of a node.
type Client interface {
	// Version returns the platform version reported by the node.
	Version(ctx context.Context) (string, error)

	// GetJSON performs a GET against path (relative to the node URL) and decodes the body into out.
	GetJSON(ctx context.Context, path string, out any) error

	// Download returns the raw body of path. Absolute URLs are fetched as given.
	Download(ctx context.Context, path string) ([]byte, error)
}

// Kind names a listable collection of design items on the node.
type Kind string

const (
	KindStacks   Kind = "stacks"
	KindWidgets  Kind = "widgets"
	KindElements Kind = "elements"
	KindThemes   Kind = "themes"
)

// Descriptor identifies one remote design item (stack, widget, element or theme).
type Descriptor struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	DisplayName string `json:"displayName,omitempty"`
	Type        string `json:"type,omitempty"`
	Version     int    `json:"version,omitempty"`
	Global      bool   `json:"global,omitempty"`
	Instances   []Ref  `json:"instances,omitempty"`
}

// Ref is a named reference to an instance of a design item.
type Ref struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Bundle is the set of source files that make up a design item, keyed by
// slash-separated path relative to the item directory.
type Bundle struct {
	Files map[string]string `json:"files"`
}

// Locale is a storefront locale.
type Locale struct {
	Name string `json:"name"`
}

// FrameworkFile is one file of the platform framework tree.
type FrameworkFile struct {
	Path string `json:"path"`
	URL  string `json:"url"`
}
