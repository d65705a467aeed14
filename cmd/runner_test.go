package main

import (
	"bytes"
	"context"
	"database/sql"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/afero"

	"github.com/desertthunder/dcx/internal/models"
	"github.com/desertthunder/dcx/internal/repositories"
	"github.com/desertthunder/dcx/internal/services"
	"github.com/desertthunder/dcx/internal/shared"
	tu "github.com/desertthunder/dcx/internal/testing"
)

const node = "https://store.example.com"

type harness struct {
	runner *Runner
	config *shared.Config
	fs     afero.Fs
	db     *sql.DB
	out    *bytes.Buffer
	client *tu.FakeClient
	opts   []services.Options
}

func fixtureClient() *tu.FakeClient {
	return tu.NewFakeClient("24.2").
		Handle("/ccadmin/v1/files?folder=static", map[string]any{"items": []services.FrameworkFile{}}).
		Handle("/ccadmin/v1/stacks", map[string]any{"items": []services.Descriptor{{ID: "s1", Name: "Progress Tracker"}}}).
		Handle("/ccadmin/v1/stacks/s1/code", services.Bundle{Files: map[string]string{"stack.template": "<div></div>"}}).
		Handle("/ccadmin/v1/widgets", map[string]any{"items": []services.Descriptor{{ID: "w1", Name: "Cart"}}}).
		Handle("/ccadmin/v1/widgets/w1/code", services.Bundle{Files: map[string]string{"display.template": "<div>cart</div>"}}).
		Handle("/ccadmin/v1/widgets/w1/elements", services.Bundle{}).
		Handle("/ccadmin/v1/locales", map[string]any{"items": []services.Locale{{Name: "en"}}}).
		Handle("/ccadmin/v1/resources/ns.common?locale=en", map[string]string{"hello": "Hello"}).
		Handle("/ccadmin/v1/elements", map[string]any{"items": []services.Descriptor{}}).
		Handle("/ccadmin/v1/themes", map[string]any{"items": []services.Descriptor{}}).
		Handle("/ccadmin/v1/applicationJavaScript", map[string]any{"items": map[string]string{"app.js": "init();"}})
}

func newHarness(t *testing.T) *harness {
	t.Helper()

	db, err := shared.NewDatabase(shared.MemoryDatabase)
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}
	if err := shared.RunMigrations(db); err != nil {
		t.Fatalf("failed to run migrations: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	config := shared.DefaultConfig()
	config.Node.URL = node
	config.Node.ApplicationKey = "secret"
	config.Workspace.BaseDir = "/store"

	h := &harness{
		config: config,
		fs:     afero.NewMemMapFs(),
		db:     db,
		out:    &bytes.Buffer{},
		client: fixtureClient(),
	}
	h.runner = NewRunner(RunnerOpts{
		Config: config,
		FS:     h.fs,
		DB:     db,
		NewClient: func(ctx context.Context, opts services.Options) (services.Client, error) {
			h.opts = append(h.opts, opts)
			return h.client, nil
		},
		Getenv: func(string) string { return "" },
		Logger: log.New(io.Discard),
		Output: h.out,
	})
	return h
}

func (h *harness) run(args ...string) error {
	return h.runner.app().Run(context.Background(), append([]string{"dcx"}, args...))
}

func (h *harness) sessions(t *testing.T) []*models.SessionEntry {
	t.Helper()
	entries, err := repositories.NewSessionRepository(h.db).List(nil)
	if err != nil {
		t.Fatalf("failed to list sessions: %v", err)
	}
	return entries
}

func TestRunner(t *testing.T) {
	t.Run("NewRunner", func(t *testing.T) {
		t.Run("with all dependencies provided", func(t *testing.T) {
			config := shared.DefaultConfig()
			logger := shared.NewLogger(nil)
			output := &bytes.Buffer{}
			fs := afero.NewMemMapFs()

			runner := NewRunner(RunnerOpts{
				Config: config,
				FS:     fs,
				Logger: logger,
				Output: output,
			})

			if runner.config != config {
				t.Error("expected config to be set")
			}
			if runner.fs != fs {
				t.Error("expected fs to be set")
			}
			if runner.logger != logger {
				t.Error("expected logger to be set")
			}
			if runner.output != output {
				t.Error("expected output to be set")
			}
		})

		t.Run("with nil options uses defaults", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{})

			if runner.config != nil {
				t.Error("expected config to be loaded lazily")
			}
			if runner.logger == nil {
				t.Error("expected default logger to be set")
			}
			if runner.output != os.Stdout {
				t.Error("expected output to default to os.Stdout")
			}
			if runner.newClient == nil {
				t.Error("expected default client factory")
			}
			if _, ok := runner.fs.(*afero.OsFs); !ok {
				t.Errorf("expected OsFs, got %T", runner.fs)
			}
		})
	})

	t.Run("writeJSON", func(t *testing.T) {
		t.Run("writes formatted JSON successfully", func(t *testing.T) {
			output := &bytes.Buffer{}
			runner := NewRunner(RunnerOpts{Output: output})

			if err := runner.writeJSON(map[string]string{"key": "value"}, true); err != nil {
				t.Fatalf("expected no error, got %v", err)
			}

			result := output.String()
			if !strings.Contains(result, `"key": "value"`) {
				t.Errorf("expected formatted JSON, got %s", result)
			}
			if !strings.HasSuffix(result, "\n") {
				t.Error("expected output to end with newline")
			}
		})

		t.Run("writes compact JSON successfully", func(t *testing.T) {
			output := &bytes.Buffer{}
			runner := NewRunner(RunnerOpts{Output: output})

			if err := runner.writeJSON(map[string]string{"key": "value"}, false); err != nil {
				t.Fatalf("expected no error, got %v", err)
			}

			expected := `{"key":"value"}` + "\n"
			if output.String() != expected {
				t.Errorf("expected %q, got %q", expected, output.String())
			}
		})

		t.Run("handles marshal error with non-serializable data", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{Output: &bytes.Buffer{}})

			err := runner.writeJSON(make(chan int), false)
			if err == nil || !strings.Contains(err.Error(), "failed to marshal JSON") {
				t.Errorf("expected marshal error, got %v", err)
			}
		})

		t.Run("handles write failure", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{Output: &tu.FWriter{}})

			err := runner.writeJSON(map[string]string{"key": "value"}, false)
			if err == nil || !strings.Contains(err.Error(), "failed to write output") {
				t.Errorf("expected write error, got %v", err)
			}
		})

		t.Run("handles newline write failure", func(t *testing.T) {
			limitedWriter := tu.NewLimitedWriter(1, 0, &bytes.Buffer{})
			runner := NewRunner(RunnerOpts{Output: &limitedWriter})

			err := runner.writeJSON(map[string]string{"key": "value"}, false)
			if err == nil || !strings.Contains(err.Error(), "failed to write newline") {
				t.Errorf("expected newline write error, got %v", err)
			}
		})
	})

	t.Run("writePlain", func(t *testing.T) {
		t.Run("writes plain text successfully", func(t *testing.T) {
			output := &bytes.Buffer{}
			runner := NewRunner(RunnerOpts{Output: output})

			if err := runner.writePlain("hello %s", "world"); err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if output.String() != "hello world" {
				t.Errorf("expected 'hello world', got %q", output.String())
			}
		})

		t.Run("handles write failure", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{Output: &tu.FWriter{}})

			err := runner.writePlain("test")
			if err == nil || !strings.Contains(err.Error(), "failed to write output") {
				t.Errorf("expected write error, got %v", err)
			}
		})
	})

	t.Run("register", func(t *testing.T) {
		commands := NewRunner(RunnerOpts{}).register()

		want := []string{"grab", "refresh", "classify", "status", "history", "setup"}
		if len(commands) != len(want) {
			t.Fatalf("expected %d commands, got %d", len(want), len(commands))
		}
		for i, cmd := range commands {
			if cmd.Name != want[i] {
				t.Errorf("command %d: expected %s, got %s", i, want[i], cmd.Name)
			}
		}
	})
}

func TestBefore(t *testing.T) {
	newRunner := func(env map[string]string) (*Runner, afero.Fs) {
		fs := afero.NewMemMapFs()
		return NewRunner(RunnerOpts{
			FS:     fs,
			Getenv: func(k string) string { return env[k] },
			Logger: log.New(io.Discard),
			Output: &bytes.Buffer{},
		}), fs
	}

	t.Run("loads config file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.toml")
		content := "[node]\nurl = \"https://file.example.com\"\n\n[workspace]\nbase_dir = \"/mirror\"\nconcurrency = 2\n"
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatalf("failed to write config: %v", err)
		}

		runner, _ := newRunner(nil)
		if err := runner.app().Run(context.Background(), []string{"dcx", "--config", path, "classify", "global/app.js"}); err != nil {
			t.Fatalf("classify failed: %v", err)
		}

		if runner.config.Node.URL != "https://file.example.com" {
			t.Errorf("expected node from file, got %s", runner.config.Node.URL)
		}
		if runner.config.Workspace.Concurrency != 2 {
			t.Errorf("expected concurrency 2, got %d", runner.config.Workspace.Concurrency)
		}
		if runner.config.Cache.Size != 512 {
			t.Errorf("expected default cache size, got %d", runner.config.Cache.Size)
		}
	})

	t.Run("missing file uses defaults and env", func(t *testing.T) {
		runner, _ := newRunner(map[string]string{
			shared.EnvNode:           "https://env.example.com",
			shared.EnvApplicationKey: "from-env",
		})
		missing := filepath.Join(t.TempDir(), "none.toml")

		err := runner.app().Run(context.Background(), []string{"dcx", "--config", missing, "--base", "/elsewhere", "classify", "global/app.js"})
		if err != nil {
			t.Fatalf("classify failed: %v", err)
		}

		if runner.config.Node.URL != "https://env.example.com" {
			t.Errorf("expected node from env, got %s", runner.config.Node.URL)
		}
		if runner.config.Node.ApplicationKey != "from-env" {
			t.Errorf("expected key from env, got %s", runner.config.Node.ApplicationKey)
		}
		if runner.config.Workspace.BaseDir != "/elsewhere" {
			t.Errorf("expected base dir flag to win, got %s", runner.config.Workspace.BaseDir)
		}
	})

	t.Run("invalid file fails", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.toml")
		if err := os.WriteFile(path, []byte("[workspace]\nconcurrency = 0\n"), 0644); err != nil {
			t.Fatalf("failed to write config: %v", err)
		}

		runner, _ := newRunner(nil)
		err := runner.app().Run(context.Background(), []string{"dcx", "--config", path, "classify", "global/app.js"})
		if !errors.Is(err, shared.ErrInvalidConfig) {
			t.Errorf("expected ErrInvalidConfig, got %v", err)
		}
	})
}

func TestClassify(t *testing.T) {
	t.Run("refreshable type", func(t *testing.T) {
		h := newHarness(t)
		h.fs.MkdirAll("/store/widget/Cart", 0755)

		if err := h.run("classify", "widget/Cart"); err != nil {
			t.Fatalf("classify failed: %v", err)
		}
		if h.out.String() != "widget/Cart: widget\n" {
			t.Errorf("unexpected output %q", h.out.String())
		}
		if len(h.opts) != 0 {
			t.Error("classify should not create a remote client")
		}
	})

	t.Run("type without handler", func(t *testing.T) {
		h := newHarness(t)

		if err := h.run("classify", "widget/Cart/display.template"); err != nil {
			t.Fatalf("classify failed: %v", err)
		}
		if !strings.Contains(h.out.String(), "widgetBaseTemplate (no refresh handler)") {
			t.Errorf("unexpected output %q", h.out.String())
		}
	})

	t.Run("json output", func(t *testing.T) {
		h := newHarness(t)

		if err := h.run("classify", "--json", "global/app.js"); err != nil {
			t.Fatalf("classify failed: %v", err)
		}
		want := `{"path":"global/app.js","type":"applicationLevelJavaScript","refreshable":true}` + "\n"
		if h.out.String() != want {
			t.Errorf("expected %q, got %q", want, h.out.String())
		}
	})

	t.Run("unclassifiable path", func(t *testing.T) {
		h := newHarness(t)

		err := h.run("classify", "README.md")
		if !errors.Is(err, shared.ErrUnclassifiablePath) {
			t.Errorf("expected ErrUnclassifiablePath, got %v", err)
		}
	})

	t.Run("missing path", func(t *testing.T) {
		h := newHarness(t)

		if err := h.run("classify"); !errors.Is(err, shared.ErrMissingArgument) {
			t.Errorf("expected ErrMissingArgument, got %v", err)
		}
	})
}

func TestGrab(t *testing.T) {
	t.Run("mirrors the node", func(t *testing.T) {
		h := newHarness(t)

		if err := h.run("grab"); err != nil {
			t.Fatalf("grab failed: %v", err)
		}

		tu.AssertFileExists(t, h.fs, "/store/stack/Progress Tracker/stack.template")
		tu.AssertFileExists(t, h.fs, "/store/widget/Cart/display.template")
		tu.AssertFileExists(t, h.fs, "/store/snippets/en/ns.common.json")
		tu.AssertFileExists(t, h.fs, "/store/global/app.js")

		record := tu.MustReadFile(t, h.fs, "/store/.ccc/config.json")
		for _, want := range []string{`"node": "https://store.example.com"`, `"remoteVersion": "24.2"`, `"toolVersion": "` + version + `"`} {
			if !strings.Contains(record, want) {
				t.Errorf("session record missing %s: %s", want, record)
			}
		}

		out := h.out.String()
		for _, want := range []string{"[1/7] Grabbing Framework...", "[7/7] Grabbing Application JavaScript...", "Grab Complete!"} {
			if !strings.Contains(out, want) {
				t.Errorf("output missing %q:\n%s", want, out)
			}
		}
	})

	t.Run("passes node settings to the client", func(t *testing.T) {
		h := newHarness(t)

		if err := h.run("grab", "--node", "https://other.example.com"); err != nil {
			t.Fatalf("grab failed: %v", err)
		}

		if len(h.opts) != 1 {
			t.Fatalf("expected one client, got %d", len(h.opts))
		}
		opts := h.opts[0]
		if opts.BaseURL != "https://other.example.com" {
			t.Errorf("expected node flag to win, got %s", opts.BaseURL)
		}
		if opts.ApplicationKey != "secret" {
			t.Errorf("expected application key, got %s", opts.ApplicationKey)
		}
		if opts.Timeout != 60*time.Second {
			t.Errorf("expected 60s timeout, got %v", opts.Timeout)
		}
		if opts.CacheSize != 512 || opts.Burst != 5 || opts.RequestsPerSecond != 10 {
			t.Errorf("unexpected pacing or cache options: %+v", opts)
		}
	})

	t.Run("journals the session", func(t *testing.T) {
		h := newHarness(t)

		if err := h.run("grab"); err != nil {
			t.Fatalf("grab failed: %v", err)
		}

		entries := h.sessions(t)
		if len(entries) != 1 {
			t.Fatalf("expected 1 session, got %d", len(entries))
		}
		if entries[0].Status() != models.SessionSucceeded {
			t.Errorf("expected succeeded, got %s", entries[0].Status())
		}

		steps, err := repositories.NewSessionRepository(h.db).Steps(entries[0].ID())
		if err != nil {
			t.Fatalf("failed to get steps: %v", err)
		}
		if len(steps) != 7 {
			t.Errorf("expected 7 steps, got %d", len(steps))
		}
	})

	t.Run("clean removes stale content", func(t *testing.T) {
		h := newHarness(t)
		afero.WriteFile(h.fs, "/store/widget/Old/display.template", []byte("stale"), 0644)

		if err := h.run("grab", "--clean"); err != nil {
			t.Fatalf("grab failed: %v", err)
		}

		if ok, _ := afero.Exists(h.fs, "/store/widget/Old"); ok {
			t.Error("expected stale widget to be removed")
		}
		tu.AssertFileExists(t, h.fs, "/store/widget/Cart/display.template")
		if !h.sessions(t)[0].Clean() {
			t.Error("expected clean flag in journal")
		}
	})

	t.Run("handler failure", func(t *testing.T) {
		h := newHarness(t)
		h.client.Fail("/ccadmin/v1/stacks", shared.ErrServiceUnavailable)

		err := h.run("grab")
		if !errors.Is(err, shared.ErrHandlerFailed) || !errors.Is(err, shared.ErrServiceUnavailable) {
			t.Fatalf("expected wrapped handler failure, got %v", err)
		}

		if ok, _ := afero.Exists(h.fs, "/store/widget"); ok {
			t.Error("widgets should not be grabbed after stacks failed")
		}
		if strings.Contains(h.out.String(), "Grab Complete!") {
			t.Error("did not expect completion banner")
		}

		entries := h.sessions(t)
		if len(entries) != 1 || entries[0].Status() != models.SessionFailed {
			t.Fatalf("expected one failed session, got %+v", entries)
		}
	})

	t.Run("client error", func(t *testing.T) {
		h := newHarness(t)
		h.runner.newClient = func(ctx context.Context, opts services.Options) (services.Client, error) {
			return nil, shared.ErrMissingCredentials
		}

		if err := h.run("grab"); !errors.Is(err, shared.ErrMissingCredentials) {
			t.Errorf("expected ErrMissingCredentials, got %v", err)
		}
		if len(h.sessions(t)) != 0 {
			t.Error("expected no journaled session")
		}
	})
}

func TestRefresh(t *testing.T) {
	t.Run("application JavaScript file", func(t *testing.T) {
		h := newHarness(t)

		if err := h.run("refresh", "global/app.js"); err != nil {
			t.Fatalf("refresh failed: %v", err)
		}

		if got := tu.MustReadFile(t, h.fs, "/store/global/app.js"); got != "init();" {
			t.Errorf("unexpected content %q", got)
		}
		if !strings.Contains(h.out.String(), "✓ Refreshed global/app.js (applicationLevelJavaScript)") {
			t.Errorf("unexpected output %q", h.out.String())
		}
		if ok, _ := afero.Exists(h.fs, "/store/.ccc/config.json"); ok {
			t.Error("refresh must not write a session record")
		}
		if len(h.sessions(t)) != 0 {
			t.Error("refresh must not be journaled")
		}
	})

	t.Run("unsupported path is skipped", func(t *testing.T) {
		h := newHarness(t)
		h.fs.MkdirAll("/store/sillyDir", 0755)

		if err := h.run("refresh", "sillyDir"); err != nil {
			t.Fatalf("refresh failed: %v", err)
		}
		if !strings.HasPrefix(h.out.String(), "Skipped sillyDir") {
			t.Errorf("unexpected output %q", h.out.String())
		}
		if len(h.client.Requests()) != 0 {
			t.Errorf("expected no requests, got %v", h.client.Requests())
		}
	})

	t.Run("classified path without handler", func(t *testing.T) {
		h := newHarness(t)

		if err := h.run("refresh", "theme/Blue/styles.less"); err != nil {
			t.Fatalf("refresh failed: %v", err)
		}
		if want := "Skipped theme/Blue/styles.less: no refresh handler for themeStyles\n"; h.out.String() != want {
			t.Errorf("expected %q, got %q", want, h.out.String())
		}
	})

	t.Run("missing path", func(t *testing.T) {
		h := newHarness(t)

		if err := h.run("refresh"); !errors.Is(err, shared.ErrMissingArgument) {
			t.Errorf("expected ErrMissingArgument, got %v", err)
		}
	})
}

func TestStatus(t *testing.T) {
	t.Run("empty tree", func(t *testing.T) {
		h := newHarness(t)

		if err := h.run("status"); err != nil {
			t.Fatalf("status failed: %v", err)
		}
		out := h.out.String()
		if !strings.Contains(out, "No grab recorded in /store") {
			t.Errorf("unexpected output:\n%s", out)
		}
		if !strings.Contains(out, "No sessions journaled yet") {
			t.Errorf("unexpected output:\n%s", out)
		}
	})

	t.Run("after grab", func(t *testing.T) {
		h := newHarness(t)
		if err := h.run("grab"); err != nil {
			t.Fatalf("grab failed: %v", err)
		}
		h.out.Reset()

		if err := h.run("status"); err != nil {
			t.Fatalf("status failed: %v", err)
		}
		out := h.out.String()
		for _, want := range []string{
			"Node: https://store.example.com",
			"Remote version: 24.2",
			"Session #1",
			"Status: succeeded",
			"1. framework succeeded",
			"7. application_javascript succeeded",
		} {
			if !strings.Contains(out, want) {
				t.Errorf("status missing %q:\n%s", want, out)
			}
		}
	})
}

func TestHistory(t *testing.T) {
	h := newHarness(t)
	for range 2 {
		if err := h.run("grab"); err != nil {
			t.Fatalf("grab failed: %v", err)
		}
	}

	t.Run("text", func(t *testing.T) {
		h.out.Reset()
		if err := h.run("history"); err != nil {
			t.Fatalf("history failed: %v", err)
		}
		if !strings.HasPrefix(h.out.String(), "Sessions: 2") {
			t.Errorf("unexpected output:\n%s", h.out.String())
		}
	})

	t.Run("csv with limit", func(t *testing.T) {
		h.out.Reset()
		if err := h.run("history", "--format", "csv", "--limit", "1"); err != nil {
			t.Fatalf("history failed: %v", err)
		}
		lines := strings.Split(strings.TrimSpace(h.out.String()), "\n")
		if len(lines) != 2 {
			t.Fatalf("expected header and one row, got %d lines", len(lines))
		}
		if !strings.HasPrefix(lines[1], "2,") {
			t.Errorf("expected newest session first, got %s", lines[1])
		}
	})

	t.Run("node filter", func(t *testing.T) {
		h.out.Reset()
		if err := h.run("history", "--node", "https://nowhere.example.com"); err != nil {
			t.Fatalf("history failed: %v", err)
		}
		if !strings.HasPrefix(h.out.String(), "Sessions: 0") {
			t.Errorf("unexpected output:\n%s", h.out.String())
		}
	})

	t.Run("output file", func(t *testing.T) {
		h.out.Reset()
		if err := h.run("history", "--format", "markdown", "--output", "/reports/history.md"); err != nil {
			t.Fatalf("history failed: %v", err)
		}
		if content := tu.MustReadFile(t, h.fs, "/reports/history.md"); !strings.Contains(content, "**Sessions**: 2") {
			t.Errorf("unexpected file content:\n%s", content)
		}
		if !strings.Contains(h.out.String(), "✓ Wrote 2 sessions to /reports/history.md") {
			t.Errorf("unexpected output %q", h.out.String())
		}
	})

	t.Run("unknown format", func(t *testing.T) {
		if err := h.run("history", "--format", "yaml"); !errors.Is(err, shared.ErrInvalidArgument) {
			t.Errorf("expected ErrInvalidArgument, got %v", err)
		}
	})
}

func TestSetup(t *testing.T) {
	t.Run("config", func(t *testing.T) {
		h := newHarness(t)
		path := filepath.Join(t.TempDir(), "config.toml")

		if err := h.run("--config", path, "setup", "config"); err != nil {
			t.Fatalf("setup config failed: %v", err)
		}
		if _, err := shared.LoadConfig(path); err != nil {
			t.Errorf("written config should load: %v", err)
		}
		if !strings.Contains(h.out.String(), "✓ Configuration written to "+path) {
			t.Errorf("unexpected output %q", h.out.String())
		}

		if err := h.run("--config", path, "setup", "config"); !errors.Is(err, shared.ErrInvalidArgument) {
			t.Errorf("expected existing config to be refused, got %v", err)
		}
	})

	t.Run("database", func(t *testing.T) {
		h := newHarness(t)

		if err := h.run("setup", "database"); err != nil {
			t.Fatalf("setup database failed: %v", err)
		}
		if !strings.Contains(h.out.String(), "✓ Session journal ready") {
			t.Errorf("unexpected output %q", h.out.String())
		}
	})

	t.Run("database on disk", func(t *testing.T) {
		config := shared.DefaultConfig()
		config.Database.Path = filepath.Join(t.TempDir(), "journal.db")
		runner := NewRunner(RunnerOpts{Config: config, Logger: log.New(io.Discard), Output: &bytes.Buffer{}, Getenv: func(string) string { return "" }})

		if err := runner.app().Run(context.Background(), []string{"dcx", "setup", "database"}); err != nil {
			t.Fatalf("setup database failed: %v", err)
		}
		if _, err := os.Stat(config.Database.Path); err != nil {
			t.Errorf("expected database file: %v", err)
		}
	})
}
