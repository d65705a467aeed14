// Package tasks syncs a local mirror tree with a remote node, one content kind at a time.
//
// # Dispatch
//
// [Dispatcher.Dispatch] classifies a path and runs the handler registered for its content type:
//
//   - applicationLevelJavaScriptDirectory, globalSnippetsDirectory, stacksDirectory,
//     themesDirectory, globalElementsDirectory : GrabAll of the matching handler
//   - applicationLevelJavaScript, globalSnippetsLocaleDirectory, stack, theme,
//     globalElement, frameworkDirectory : GrabOne(path) of the matching handler
//   - widgetsDirectory : widgets GrabAll, then widget elements GrabAll
//   - widget : widgets GrabOne(path), then widget elements GrabOne(path)
//
// Anything else logs "unsupportedDirectoryType" and is skipped without error.
//
// # Grab
//
// [Orchestrator.Grab] optionally removes the tracked directories, writes the session record
// to the tracking store, then runs framework, stacks, widgets, text snippets, elements,
// themes and application JavaScript strictly in that order. The first failing step aborts
// the grab with an error wrapping [shared.ErrHandlerFailed].
//
// # Progress Reporting
//
// All operations use non-blocking channels for progress updates.
//
// The [ProgressUpdate] struct contains phase, step counters and a message.
// Updates use select with default to prevent blocking.
//
// # Session Journal
//
// The optional [Journal] records when each grab started, how each step ended and the final
// outcome. Journal errors are logged and never disrupt a grab.
package tasks
