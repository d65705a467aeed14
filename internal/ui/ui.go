package ui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/desertthunder/dcx/internal/tasks"
)

// ViewState represents the current view in the TUI.
type ViewState int

const (
	ConfirmView ViewState = iota
	GrabView
	ResultView
)

// RunFunc performs one grab. It is called again for every restart.
type RunFunc func(ctx context.Context) error

// Options configures a [Model].
type Options struct {
	Node     string
	Clean    bool
	Tracked  []string // directories a clean grab removes, shown before confirming
	Run      RunFunc
	Progress <-chan tasks.ProgressUpdate // the channel the orchestrator reports on
}

// Model represents the TUI application state.
type Model struct {
	ctx      context.Context
	view     ViewState
	node     string
	clean    bool
	tracked  []string
	run      RunFunc
	progress <-chan tasks.ProgressUpdate
	done     chan struct{}
	steps    []stepRow
	current  tasks.ProgressUpdate
	started  time.Time
	elapsed  time.Duration
	runs     int
	spinner  spinner.Model
	help     help.Model
	keys     keyMap
	err      error
}

// NewModel creates a new TUI model. Clean grabs start on the confirmation view.
func NewModel(ctx context.Context, opts Options) *Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = statuses.running

	view := GrabView
	if opts.Clean {
		view = ConfirmView
	}

	return &Model{
		ctx:      ctx,
		view:     view,
		node:     opts.Node,
		clean:    opts.Clean,
		tracked:  opts.Tracked,
		run:      opts.Run,
		progress: opts.Progress,
		steps:    newSteps(opts.Clean),
		spinner:  s,
		help:     help.New(),
		keys:     newKeyMap(),
	}
}

// Err returns the error of the last finished grab.
func (m *Model) Err() error { return m.err }

// Runs reports how many grabs were started.
func (m *Model) Runs() int { return m.runs }

// ViewState returns the active view.
func (m *Model) ViewState() ViewState { return m.view }

// Init starts the grab right away unless a clean grab awaits confirmation.
func (m *Model) Init() tea.Cmd {
	if m.view == ConfirmView {
		return nil
	}
	return m.start()
}

// Update handles incoming messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		return m.handleKeys(msg)

	case spinner.TickMsg:
		if m.view != GrabView {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case Msg:
		switch msg.kind {
		case MsgProgressUpdate:
			if m.view != GrabView {
				return m, nil
			}
			update := msg.data.(tasks.ProgressUpdate)
			m.current = update
			applyUpdate(m.steps, update)
			return m, m.waitForProgress(m.done)

		case MsgGrabComplete:
			err, _ := msg.data.(error)
			m.finish(err)
			return m, nil
		}
	}

	return m, nil
}

// View renders the UI based on the current view state.
func (m *Model) View() string {
	switch m.view {
	case ConfirmView:
		return m.renderConfirm()
	case GrabView:
		return m.renderGrab()
	case ResultView:
		return m.renderResult()
	default:
		return ""
	}
}

func (m *Model) handleKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.quit) {
		return m, tea.Quit
	}
	if key.Matches(msg, m.keys.help) {
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	}

	switch m.view {
	case ConfirmView:
		switch {
		case key.Matches(msg, m.keys.yes):
			return m, m.start()
		case key.Matches(msg, m.keys.no):
			return m, tea.Quit
		}
	case ResultView:
		if key.Matches(msg, m.keys.restart) {
			return m, m.start()
		}
	}
	return m, nil
}

func (m *Model) start() tea.Cmd {
	m.view = GrabView
	m.steps = newSteps(m.clean)
	m.current = tasks.ProgressUpdate{}
	m.err = nil
	m.elapsed = 0
	m.started = time.Now()
	m.done = make(chan struct{})
	m.runs++

	return tea.Batch(m.spinner.Tick, m.runGrab(m.done), m.waitForProgress(m.done))
}

// finish drains updates still buffered in the channel, then settles the step list.
func (m *Model) finish(err error) {
	for drained := false; !drained; {
		select {
		case u := <-m.progress:
			applyUpdate(m.steps, u)
		default:
			drained = true
		}
	}

	finishSteps(m.steps, err)
	m.err = err
	m.elapsed = time.Since(m.started)
	m.view = ResultView
}

func (m *Model) runGrab(done chan struct{}) tea.Cmd {
	return func() tea.Msg {
		err := m.run(m.ctx)
		close(done)
		return grabCompleteMsg(err)
	}
}

// waitForProgress returns the next update, or nil once the grab identified by done has returned.
func (m *Model) waitForProgress(done <-chan struct{}) tea.Cmd {
	return func() tea.Msg {
		select {
		case u := <-m.progress:
			return progressUpdateMsg(u)
		case <-done:
			return nil
		case <-m.ctx.Done():
			return nil
		}
	}
}

func (m *Model) renderConfirm() string {
	title := statuses.title.Render(fmt.Sprintf("Clean grab from %s?", m.node))

	var b strings.Builder
	b.WriteString("The following directories will be removed before grabbing:\n")
	for _, dir := range m.tracked {
		b.WriteString(statuses.running.Render("  • "+dir) + "\n")
	}

	helpKeys := []key.Binding{m.keys.yes, m.keys.no, m.keys.quit}
	helpView := m.help.ShortHelpView(helpKeys)

	return fmt.Sprintf("%s\n%s\n%s", title, b.String(), helpView)
}

func (m *Model) renderGrab() string {
	title := statuses.title.Render(fmt.Sprintf("Grabbing %s", m.node))

	message := m.current.Message
	if message == "" {
		message = "Starting..."
	}

	return fmt.Sprintf("%s\n%s\n%s\n\n%s", title, renderSteps(m.steps, m.spinner.View()), statuses.pending.Render(message), m.help.View(m.keys))
}

func (m *Model) renderResult() string {
	var title string
	if m.err != nil {
		title = statuses.failed.Render(fmt.Sprintf("✗ Grab failed: %v", m.err))
	} else {
		title = statuses.done.Render(fmt.Sprintf("✓ Grab complete in %s", m.elapsed.Round(time.Second)))
	}

	helpKeys := []key.Binding{m.keys.restart, m.keys.quit}
	helpView := m.help.ShortHelpView(helpKeys)

	return fmt.Sprintf("%s\n\n%s\n%s", title, renderSteps(m.steps, ""), helpView)
}
