package models

// ContentType tags a kind of remote resource that a local path can represent.
//
// The set is closed: every value has exactly one classification rule in package classifier.
type ContentType string

const (
	FrameworkDirectory ContentType = "frameworkDirectory"
	FrameworkFile      ContentType = "frameworkFile"

	ApplicationLevelJavaScript          ContentType = "applicationLevelJavaScript"
	ApplicationLevelJavaScriptDirectory ContentType = "applicationLevelJavaScriptDirectory"

	GlobalElementTemplate   ContentType = "globalElementTemplate"
	GlobalElementJavaScript ContentType = "globalElementJavaScript"
	GlobalElementMetadata   ContentType = "globalElementMetadata"
	GlobalElement           ContentType = "globalElement"
	GlobalElementsDirectory ContentType = "globalElementsDirectory"

	GlobalSnippetsLocaleDirectory ContentType = "globalSnippetsLocaleDirectory"
	GlobalSnippetsDirectory       ContentType = "globalSnippetsDirectory"
	GlobalSnippets                ContentType = "globalSnippets"

	WidgetsDirectory           ContentType = "widgetsDirectory"
	Widget                     ContentType = "widget"
	WidgetBaseTemplate         ContentType = "widgetBaseTemplate"
	WidgetBaseLess             ContentType = "widgetBaseLess"
	WidgetJavaScript           ContentType = "widgetJavaScript"
	WidgetModuleJavaScript     ContentType = "widgetModuleJavaScript"
	WidgetBaseSnippets         ContentType = "widgetBaseSnippets"
	WidgetInstanceSnippets     ContentType = "widgetInstanceSnippets"
	WidgetConfigSnippets       ContentType = "widgetConfigSnippets"
	WidgetElement              ContentType = "widgetElement"
	WidgetInstanceTemplate     ContentType = "widgetInstanceTemplate"
	WebContentTemplate         ContentType = "webContentTemplate"
	WidgetInstanceLess         ContentType = "widgetInstanceLess"
	WidgetMetadataJSON         ContentType = "widgetMetadataJson"
	WidgetInstanceMetadataJSON ContentType = "widgetInstanceMetadataJson"
	WidgetConfigJSON           ContentType = "widgetConfigJson"
	WidgetInstance             ContentType = "widgetInstance"

	StacksDirectory            ContentType = "stacksDirectory"
	Stack                      ContentType = "stack"
	StackBaseTemplate          ContentType = "stackBaseTemplate"
	StackBaseLess              ContentType = "stackBaseLess"
	StackBaseVariablesLess     ContentType = "stackBaseVariablesLess"
	StackBaseSnippets          ContentType = "stackBaseSnippets"
	StackConfigSnippets        ContentType = "stackConfigSnippets"
	StackInstanceVariablesLess ContentType = "stackInstanceVariablesLess"
	StackInstanceLess          ContentType = "stackInstanceLess"
	StackInstanceTemplate      ContentType = "stackInstanceTemplate"
	StackMetadataJSON          ContentType = "stackMetadataJson"
	StackInstanceMetadataJSON  ContentType = "stackInstanceMetadataJson"
	StackInstance              ContentType = "stackInstance"

	ElementTemplate         ContentType = "elementTemplate"
	ElementJavaScript       ContentType = "elementJavaScript"
	ElementMetadata         ContentType = "elementMetadata"
	ElementInstanceMetadata ContentType = "elementInstanceMetadata"

	ThemeAdditionalStyles ContentType = "themeAdditionalStyles"
	ThemeVariables        ContentType = "themeVariables"
	ThemeStyles           ContentType = "themeStyles"
	Theme                 ContentType = "theme"
	ThemesDirectory       ContentType = "themesDirectory"
)

func (c ContentType) String() string {
	return string(c)
}
