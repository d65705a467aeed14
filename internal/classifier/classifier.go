// package classifier decides which kind of remote content a local path represents.
//
// Classification walks a fixed, ordered list of rules and stops at the first match.
// Several rules overlap (a widget instance template also ends in "display.template",
// "stack-variables.less" also ends in "variables.less"), so the position of each rule
// in [rules] is part of the behavior. Do not reorder.
package classifier

import (
	"path/filepath"
	"regexp"
	"strings"

	"github.com/spf13/afero"

	"github.com/desertthunder/dcx/internal/layout"
	"github.com/desertthunder/dcx/internal/models"
)

// Classifier maps filesystem paths to [models.ContentType] values.
//
// It only reads the path string and, for a few rules, whether the path is a directory.
type Classifier struct {
	layout layout.Layout
	fs     afero.Fs
}

// New creates a Classifier for the mirror tree described by l. A nil fs uses the OS filesystem.
func New(l layout.Layout, fs afero.Fs) *Classifier {
	if fs == nil {
		fs = afero.NewOsFs()
	}
	return &Classifier{layout: l, fs: fs}
}

// Classify returns the tag of the first rule matching p. The boolean is false when no rule matches.
func (c *Classifier) Classify(p string) (models.ContentType, bool) {
	in := input{
		path: filepath.ToSlash(p),
		sub:  c.layout.SubDir(p),
		abs:  c.layout.Resolve(p),
	}
	for _, r := range rules {
		if r.match(c, in) {
			return r.tag, true
		}
	}
	return "", false
}

// Order lists every tag in rule order.
func Order() []models.ContentType {
	tags := make([]models.ContentType, len(rules))
	for i, r := range rules {
		tags[i] = r.tag
	}
	return tags
}

// input is a path in the three forms the rules look at.
type input struct {
	path string // as given, slash separated
	sub  string // relative to the base directory, "" when outside it
	abs  string // resolved against the base directory
}

type predicate func(c *Classifier, in input) bool

type rule struct {
	tag   models.ContentType
	match predicate
}

func (c *Classifier) isDir(abs string) bool {
	ok, err := afero.IsDir(c.fs, abs)
	return err == nil && ok
}

func matches(pattern string) predicate {
	re := regexp.MustCompile(pattern)
	return func(_ *Classifier, in input) bool { return re.MatchString(in.path) }
}

func endsWith(suffix string) predicate {
	return func(_ *Classifier, in input) bool { return strings.HasSuffix(in.path, suffix) }
}

func underBase(prefix string) predicate {
	return func(_ *Classifier, in input) bool { return strings.HasPrefix(in.sub, prefix) }
}

func isDirectory(c *Classifier, in input) bool { return c.isDir(in.abs) }

func isNotDirectory(c *Classifier, in input) bool { return !c.isDir(in.abs) }

func all(ps ...predicate) predicate {
	return func(c *Classifier, in input) bool {
		for _, p := range ps {
			if !p(c, in) {
				return false
			}
		}
		return true
	}
}

var rules = []rule{
	// Framework subtree: directory vs file at the same shape.
	{models.FrameworkDirectory, all(underBase(layout.FrameworkDir), isDirectory)},
	{models.FrameworkFile, all(underBase(layout.FrameworkDir), isNotDirectory)},

	{models.ApplicationLevelJavaScript, all(underBase(layout.GlobalDir), endsWith(".js"))},

	{models.GlobalElementTemplate, all(underBase(layout.ElementsDir+"/"), endsWith(layout.ElementTemplate))},
	{models.GlobalElementJavaScript, all(underBase(layout.ElementsDir+"/"), endsWith(layout.ElementJavaScript))},
	{models.GlobalElementMetadata, all(underBase(layout.ElementsDir+"/"), endsWith(layout.ElementMetadata))},

	{models.ApplicationLevelJavaScriptDirectory, matches(`global$`)},
	{models.GlobalSnippetsLocaleDirectory, matches(`snippets/[^/]+$`)},
	{models.GlobalSnippetsDirectory, matches(`snippets$`)},

	{models.WidgetsDirectory, matches(`widget$`)},
	{models.Widget, all(matches(`.*widget/[^/]+$`), isDirectory)},
	{models.WidgetBaseTemplate, matches(`.*widget/[^/]+/display.template`)},
	{models.WidgetBaseLess, matches(`.*widget/[^/]+/widget.less`)},
	{models.WidgetJavaScript, matches(`.*widget/[^/]+/js/[^/]+.js`)},
	{models.WidgetModuleJavaScript, matches(`.*widget/[^/]+/module/js/[^/]+.js`)},
	{models.WidgetBaseSnippets, matches(`.*widget/[^/]+/locales/[^/]+/ns\.[\w|-]+\.json`)},
	{models.WidgetInstanceSnippets, matches(`.*widget/[^/]+/instances/[^/]+/locales/[^/]+/ns\.[\w|-]+\.json`)},
	{models.WidgetConfigSnippets, matches(`.*widget/[^/]+/config/locales/\w+\.json`)},
	{models.WidgetElement, matches(`.*widget/[^/]+/element/[^/]*$`)},
	{models.WidgetInstanceTemplate, endsWith(layout.DisplayTemplate)},
	{models.WebContentTemplate, endsWith(layout.WebContentTemplate)},
	{models.WidgetInstanceLess, endsWith(layout.WidgetLess)},
	{models.WidgetMetadataJSON, endsWith(layout.WidgetMetadata)},
	{models.WidgetInstanceMetadataJSON, endsWith(layout.WidgetInstanceMeta)},
	{models.WidgetConfigJSON, endsWith(layout.WidgetConfigMeta)},

	{models.StacksDirectory, matches(`stack$`)},
	{models.Stack, matches(`stack/[^/]+$`)},
	{models.StackBaseTemplate, matches(`.*stack/[^/]+/stack.template$`)},
	{models.StackBaseLess, matches(`.*stack/[^/]+/stack.less$`)},
	{models.StackBaseVariablesLess, matches(`.*stack/[^/]+/stack-variables.less$`)},
	{models.StackBaseSnippets, matches(`.*stack/[^/]+/locales/[^/]+/[\w|-]+\.json`)},
	{models.StackConfigSnippets, matches(`.*stack/[^/]+/config/locales/\w+\.json`)},
	{models.StackInstanceVariablesLess, endsWith(layout.StackVariablesLess)},
	{models.StackInstanceLess, endsWith(layout.StackLess)},
	{models.StackInstanceTemplate, endsWith(layout.StackTemplate)},
	{models.StackMetadataJSON, endsWith(layout.StackMetadata)},
	{models.StackInstanceMetadataJSON, endsWith(layout.StackInstanceMeta)},

	{models.GlobalElement, matches(`element/[^/]+$`)},
	{models.GlobalElementsDirectory, matches(`element$`)},
	{models.ElementTemplate, endsWith(layout.ElementTemplate)},
	{models.ElementJavaScript, all(underBase(layout.WidgetsDir+"/"), endsWith("/"+layout.ElementJavaScript))},
	{models.ElementMetadata, endsWith(layout.ElementMetadata)},
	{models.ElementInstanceMetadata, endsWith(layout.ElementInstancesMetadata)},

	{models.ThemeAdditionalStyles, endsWith(layout.ThemeAdditionalStyles)},
	{models.ThemeVariables, endsWith(layout.ThemeVariables)},
	{models.ThemeStyles, endsWith(layout.ThemeStyles)},
	{models.Theme, matches(`.*theme/[^/]+$`)},
	{models.ThemesDirectory, matches(`theme$`)},

	{models.GlobalSnippets, endsWith(layout.SnippetsJSON)},

	// Only real directories are instances; files at this shape stay unclassified.
	{models.WidgetInstance, all(matches(`.*widget/[^/]+/instances/[^/]+$`), isDirectory)},
	{models.StackInstance, all(matches(`.*stack/[^/]+/instances/[^/]+$`), isDirectory)},
}
