// package testing contains shared testing utilities
package testing

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sync"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/spf13/afero"

	"github.com/desertthunder/dcx/internal/shared"
)

// FakeClient is a test double for [services.Client] serving canned values by request path.
type FakeClient struct {
	mu        sync.Mutex
	version   string
	responses map[string]any
	files     map[string][]byte
	errors    map[string]error
	requests  []string
}

func NewFakeClient(version string) *FakeClient {
	return &FakeClient{
		version:   version,
		responses: make(map[string]any),
		files:     make(map[string][]byte),
		errors:    make(map[string]error),
	}
}

// Handle registers v as the JSON body for path.
func (f *FakeClient) Handle(path string, v any) *FakeClient {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.responses[path] = v
	return f
}

// File registers raw content for a download of path.
func (f *FakeClient) File(path string, content []byte) *FakeClient {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.files[path] = content
	return f
}

// Fail makes every request for path return err.
func (f *FakeClient) Fail(path string, err error) *FakeClient {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.errors[path] = err
	return f
}

// Requests returns the paths requested so far, in order.
func (f *FakeClient) Requests() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.requests...)
}

func (f *FakeClient) Version(ctx context.Context) (string, error) {
	return f.version, nil
}

func (f *FakeClient) GetJSON(ctx context.Context, path string, out any) error {
	f.mu.Lock()
	f.requests = append(f.requests, path)
	err, failed := f.errors[path]
	v, ok := f.responses[path]
	f.mu.Unlock()

	if failed {
		return err
	}
	if !ok {
		return fmt.Errorf("%w: %s", shared.ErrNotFound, path)
	}
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, out)
}

func (f *FakeClient) Download(ctx context.Context, path string) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.requests = append(f.requests, path)
	if err, failed := f.errors[path]; failed {
		return nil, err
	}
	content, ok := f.files[path]
	if !ok {
		return nil, fmt.Errorf("%w: %s", shared.ErrNotFound, path)
	}
	return content, nil
}

// CallLog records handler invocations across several [RecordingGrabber] values.
type CallLog struct {
	mu    sync.Mutex
	calls []string
}

// Add records one invocation.
func (c *CallLog) Add(call string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.calls = append(c.calls, call)
}

// Calls returns the recorded invocations as "<name>.GrabAll" or "<name>.GrabOne(<path>)".
func (c *CallLog) Calls() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]string(nil), c.calls...)
}

// RecordingGrabber is a content handler double that records every call.
type RecordingGrabber struct {
	Name string
	Log  *CallLog
	Err  error // returned by every call when set
}

func NewRecordingGrabber(name string, l *CallLog) *RecordingGrabber {
	return &RecordingGrabber{Name: name, Log: l}
}

func (g *RecordingGrabber) GrabAll(ctx context.Context) error {
	g.Log.Add(g.Name + ".GrabAll")
	return g.Err
}

func (g *RecordingGrabber) GrabOne(ctx context.Context, path string) error {
	g.Log.Add(fmt.Sprintf("%s.GrabOne(%s)", g.Name, path))
	return g.Err
}

// NewBufferLogger returns a JSON logger writing into the returned buffer.
func NewBufferLogger() (*log.Logger, *bytes.Buffer) {
	buf := &bytes.Buffer{}
	logger := log.NewWithOptions(buf, log.Options{Level: log.DebugLevel, Formatter: log.JSONFormatter})
	return logger, buf
}

// LogEntries decodes every JSON log line in buf.
func LogEntries(t *testing.T, buf *bytes.Buffer) []map[string]any {
	t.Helper()
	var entries []map[string]any
	dec := json.NewDecoder(bytes.NewReader(buf.Bytes()))
	for dec.More() {
		var e map[string]any
		if err := dec.Decode(&e); err != nil {
			t.Fatalf("failed to decode log line: %v", err)
		}
		entries = append(entries, e)
	}
	return entries
}

// FWriter always returns an error on Write
type FWriter struct{}

func (f *FWriter) Write(p []byte) (n int, err error) {
	return 0, errors.New("write failed")
}

// LimitedWriter fails after a certain number of writes
type LimitedWriter struct {
	maxWrites int
	written   int
	target    io.Writer
}

func (l *LimitedWriter) Write(p []byte) (n int, err error) {
	if l.written >= l.maxWrites {
		return 0, errors.New("write limit exceeded")
	}
	l.written++
	return l.target.Write(p)
}

func NewLimitedWriter(maxWrites, written int, target io.Writer) LimitedWriter {
	return LimitedWriter{maxWrites: maxWrites, written: written, target: target}
}

// MockRoundTripper allows custom HTTP responses for testing
type MockRoundTripper struct {
	response *http.Response
	err      error
}

func NewMockRoundTripper(r *http.Response, e error) *MockRoundTripper {
	return &MockRoundTripper{response: r, err: e}
}

func (m *MockRoundTripper) RoundTrip(*http.Request) (*http.Response, error) {
	return m.response, m.err
}

func AssertFileExists(t *testing.T, fs afero.Fs, path string) {
	t.Helper()
	if ok, _ := afero.Exists(fs, path); !ok {
		t.Errorf("File does not exist: %s", path)
	}
}

func AssertDirExists(t *testing.T, fs afero.Fs, path string) {
	t.Helper()
	ok, err := afero.IsDir(fs, path)
	if err != nil {
		t.Errorf("Directory does not exist: %s", path)
		return
	}
	if !ok {
		t.Errorf("Path is not a directory: %s", path)
	}
}

func MustReadFile(t *testing.T, fs afero.Fs, path string) string {
	t.Helper()
	content, err := afero.ReadFile(fs, path)
	if err != nil {
		t.Fatalf("Failed to read file %s: %v", path, err)
	}
	return string(content)
}
