package main

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/afero"
	"github.com/urfave/cli/v3"

	"github.com/desertthunder/dcx/internal/classifier"
	"github.com/desertthunder/dcx/internal/grabbers"
	"github.com/desertthunder/dcx/internal/layout"
	"github.com/desertthunder/dcx/internal/repositories"
	"github.com/desertthunder/dcx/internal/services"
	"github.com/desertthunder/dcx/internal/shared"
	"github.com/desertthunder/dcx/internal/tasks"
)

// ClientFactory creates the remote client for one session.
type ClientFactory func(ctx context.Context, opts services.Options) (services.Client, error)

// Runner holds all dependencies for CLI commands and provides methods for each command action.
type Runner struct {
	config    *shared.Config
	fs        afero.Fs
	db        *sql.DB
	newClient ClientFactory
	getenv    func(string) string
	logger    *log.Logger
	output    io.Writer
}

// RunnerOpts contains configuration options for creating a Runner.
type RunnerOpts struct {
	Config    *shared.Config // when nil, loaded from --config in Before
	FS        afero.Fs
	DB        *sql.DB // shared journal; when nil each command opens config.Database.Path
	NewClient ClientFactory
	Getenv    func(string) string
	Logger    *log.Logger
	Output    io.Writer
}

// NewRunner creates a new Runner with the provided configuration
func NewRunner(opts RunnerOpts) *Runner {
	if opts.FS == nil {
		opts.FS = afero.NewOsFs()
	}
	if opts.NewClient == nil {
		opts.NewClient = newHTTPClient
	}
	if opts.Getenv == nil {
		opts.Getenv = os.Getenv
	}
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}
	if opts.Output == nil {
		opts.Output = os.Stdout
	}

	return &Runner{
		config:    opts.Config,
		fs:        opts.FS,
		db:        opts.DB,
		newClient: opts.NewClient,
		getenv:    opts.Getenv,
		logger:    opts.Logger,
		output:    opts.Output,
	}
}

func newHTTPClient(ctx context.Context, opts services.Options) (services.Client, error) {
	c, err := services.NewHTTPClient(ctx, opts)
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (r *Runner) register() []*cli.Command {
	commands := []*cli.Command{}
	for _, fn := range [](func(*Runner) *cli.Command){
		grabCommand, refreshCommand, classifyCommand, statusCommand, historyCommand, setupCommand,
	} {
		commands = append(commands, fn(r))
	}

	return commands
}

// Before loads the configuration, applies environment and flag overrides, then configures the logger.
func (r *Runner) Before(ctx context.Context, cmd *cli.Command) (context.Context, error) {
	if r.config == nil {
		config, err := loadConfig(cmd.String("config"))
		if err != nil {
			return ctx, err
		}
		r.config = config
	}

	r.config.ApplyEnv(r.getenv)
	if base := cmd.String("base"); base != "" {
		r.config.Workspace.BaseDir = base
	}

	shared.ConfigureLogger(r.logger, r.config.Log)
	if cmd.Bool("verbose") {
		shared.SetLogLevel(r.logger, log.DebugLevel)
	}
	return ctx, nil
}

// loadConfig reads path, falling back to the built-in defaults when the file does not exist.
func loadConfig(path string) (*shared.Config, error) {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return shared.DefaultConfig(), nil
	}
	return shared.LoadConfig(path)
}

func (r *Runner) layout() layout.Layout {
	return layout.New(r.config.Workspace.BaseDir)
}

// workspace is everything one sync operation needs.
type workspace struct {
	client  services.Client
	layout  layout.Layout
	orch    *tasks.Orchestrator
	db      *sql.DB
	closeDB bool
}

// Close releases the journal connection when the workspace opened it.
func (w *workspace) Close() error {
	if w.db != nil && w.closeDB {
		return w.db.Close()
	}
	return nil
}

// open wires client, grabbers, classifier and orchestrator for the configured node.
//
// A journal that cannot be opened is logged and skipped.
func (r *Runner) open(ctx context.Context, progress chan<- tasks.ProgressUpdate, withJournal bool) (*workspace, error) {
	node := r.config.Node
	client, err := r.newClient(ctx, services.Options{
		BaseURL:           node.URL,
		ApplicationKey:    node.ApplicationKey,
		RequestsPerSecond: node.RequestsPerSecond,
		Burst:             node.Burst,
		Timeout:           time.Duration(node.TimeoutSeconds) * time.Second,
		CacheSize:         r.config.Cache.Size,
		Logger:            r.logger,
	})
	if err != nil {
		return nil, err
	}

	ws := &workspace{client: client, layout: r.layout()}

	var journal tasks.Journal
	if withJournal {
		db, owned, err := r.database()
		if err != nil {
			r.logger.Warn("journalUnavailable", "error", err)
		} else {
			ws.db, ws.closeDB = db, owned
			journal = repositories.NewJournal(repositories.NewSessionRepository(db))
		}
	}

	ws.orch = tasks.NewOrchestrator(tasks.Options{
		FS:         r.fs,
		Layout:     ws.layout,
		Classifier: classifier.New(ws.layout, r.fs),
		Handlers:   r.handlers(services.NewAPI(client), ws.layout),
		Journal:    journal,
		Logger:     r.logger,
		Progress:   progress,
	})
	return ws, nil
}

// handlers maps each content kind to its grabber.
func (r *Runner) handlers(api *services.API, l layout.Layout) tasks.Handlers {
	set := grabbers.New(grabbers.Env{
		API:         api,
		FS:          r.fs,
		Layout:      l,
		Concurrency: r.config.Workspace.Concurrency,
		Logger:      r.logger,
	})

	return tasks.Handlers{
		Framework:      set.Framework,
		Stacks:         set.Stacks,
		Widgets:        set.Widgets,
		WidgetElements: set.WidgetElements,
		Elements:       set.Elements,
		Themes:         set.Themes,
		Snippets:       set.Snippets,
		AppJS:          set.AppJS,
	}
}

// database returns the journal connection with migrations applied. owned reports whether the caller must close it.
func (r *Runner) database() (db *sql.DB, owned bool, err error) {
	if r.db != nil {
		return r.db, false, nil
	}

	cfg := r.config.Database
	db, err = shared.NewDatabase(cfg.Path)
	if err != nil {
		return nil, false, err
	}
	shared.ConfigureDatabase(db, cfg.MaxOpenConns, cfg.MaxIdleConns)

	if err := shared.RunMigrations(db); err != nil {
		db.Close()
		return nil, false, fmt.Errorf("failed to run migrations: %w", err)
	}
	return db, true, nil
}

// SetLogger replaces the logger, e.g. while the TUI owns the terminal.
func (r *Runner) SetLogger(l *log.Logger) {
	r.logger = l
}

func (r *Runner) writeJSON(data any, pretty bool) error {
	var output []byte
	var err error

	if pretty {
		output, err = json.MarshalIndent(data, "", "  ")
	} else {
		output, err = json.Marshal(data)
	}

	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	if _, err := r.output.Write(output); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	if _, err := r.output.Write([]byte("\n")); err != nil {
		return fmt.Errorf("failed to write newline: %w", err)
	}

	return nil
}

func (r *Runner) writePlain(format string, args ...any) error {
	text := fmt.Sprintf(format, args...)
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func (r *Runner) writePlainln(format string, args ...any) error {
	text := "\n" + fmt.Sprintf(format, args...) + "\n"
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func (r *Runner) writePlainHeader(title string) {
	r.writePlain("═══════════════════════════════════════\n")
	r.writePlain("%v\n", title)
	r.writePlain("═══════════════════════════════════════\n")
}
