// package layout describes the shape of the local mirror tree: the top-level
// directory names for each content kind, the well-known file names inside them,
// and helpers for resolving paths against the configured base directory.
package layout

import (
	"path"
	"path/filepath"
	"strings"
)

// Top-level directories of the mirror tree.
const (
	TrackingDir     = ".ccc"
	GlobalDir       = "global"
	WidgetsDir      = "widget"
	ElementsDir     = "element"
	StacksDir       = "stack"
	ThemesDir       = "theme"
	TextSnippetsDir = "snippets"
	FrameworkDir    = "static"
)

// Well-known file names.
const (
	DisplayTemplate    = "display.template"
	WebContentTemplate = "content.template"
	WidgetLess         = "widget.less"
	WidgetJavaScript   = "js"
	WidgetMetadata     = "widget.json"
	WidgetInstanceMeta = "widgetInstance.json"
	WidgetConfigMeta   = "configMetadata.json"
	WidgetElementsDir  = "element"
	InstancesDir       = "instances"

	StackTemplate      = "stack.template"
	StackLess          = "stack.less"
	StackVariablesLess = "stack-variables.less"
	StackMetadata      = "stack.json"
	StackInstanceMeta  = "stackInstance.json"

	ElementTemplate          = "element.template"
	ElementJavaScript        = "element.js"
	ElementMetadata          = "element.json"
	ElementInstancesMetadata = "elementInstancesMetadata.json"

	ThemeStyles           = "styles.less"
	ThemeVariables        = "variables.less"
	ThemeAdditionalStyles = "additionalStyles.less"
	ThemeMetadata         = "theme.json"

	SnippetsJSON = "ns.common.json"

	// ConfigMetadataJSON is the tracking store key of the session record.
	ConfigMetadataJSON = "config.json"
)

// Layout anchors the mirror tree at BaseDir.
type Layout struct {
	BaseDir string
}

// New returns a Layout rooted at the absolute form of baseDir.
// An empty baseDir means the working directory.
func New(baseDir string) Layout {
	if baseDir == "" {
		baseDir = "."
	}
	if abs, err := filepath.Abs(baseDir); err == nil {
		baseDir = abs
	}
	return Layout{BaseDir: filepath.Clean(baseDir)}
}

// Resolve returns p unchanged when absolute, otherwise joined to the base directory.
func (l Layout) Resolve(p string) string {
	if filepath.IsAbs(p) {
		return filepath.Clean(p)
	}
	return filepath.Join(l.BaseDir, p)
}

// SubDir returns the slash-separated form of p relative to the base directory.
// Paths outside the base directory yield "".
func (l Layout) SubDir(p string) string {
	rel, err := filepath.Rel(l.BaseDir, l.Resolve(p))
	if err != nil {
		return ""
	}
	rel = filepath.ToSlash(rel)
	if rel == "." || rel == ".." || strings.HasPrefix(rel, "../") {
		return ""
	}
	return rel
}

// TrackedDirs lists the directories removed by a clean grab, in removal order.
func (l Layout) TrackedDirs() []string {
	return []string{
		TrackingDir,
		GlobalDir,
		WidgetsDir,
		ElementsDir,
		StacksDir,
		ThemesDir,
		TextSnippetsDir,
		FrameworkDir,
	}
}

// ItemName extracts the name of a content item from a path of the form
// <...>/<kindDir>/<name>[/...]. The last occurrence of kindDir wins so that
// nested kinds (widget/<w>/element/<e>) resolve to the innermost item.
func ItemName(p, kindDir string) string {
	segments := strings.Split(path.Clean(filepath.ToSlash(p)), "/")
	for i := len(segments) - 2; i >= 0; i-- {
		if segments[i] == kindDir {
			return segments[i+1]
		}
	}
	return ""
}

// ItemDir returns the directory holding a named item of a kind, relative to the base directory.
func ItemDir(kindDir, name string) string {
	return path.Join(kindDir, SanitizeName(name))
}

var nameReplacer = strings.NewReplacer(
	"/", "_", "\\", "_", ":", "_", "*", "_", "?", "_",
	"\"", "_", "<", "_", ">", "_", "|", "_",
)

// SanitizeName makes a remote display name safe to use as a single path segment.
func SanitizeName(name string) string {
	name = strings.TrimSpace(nameReplacer.Replace(name))
	if name == "" || name == "." || name == ".." {
		return "_"
	}
	return name
}
