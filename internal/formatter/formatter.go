// package formatter renders the session journal as CSV, Markdown or plain text
package formatter

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/afero"

	"github.com/desertthunder/dcx/internal/models"
	"github.com/desertthunder/dcx/internal/shared"
)

// Format names a history rendering.
type Format string

const (
	FormatText     Format = "text"
	FormatCSV      Format = "csv"
	FormatMarkdown Format = "markdown"
)

const timeLayout = "2006-01-02 15:04:05"

// ParseFormat resolves a --format value. Empty means text; "md" is accepted for markdown.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "text", "txt":
		return FormatText, nil
	case "csv":
		return FormatCSV, nil
	case "markdown", "md":
		return FormatMarkdown, nil
	default:
		return "", fmt.Errorf("%w: unknown format %q (want text, csv or markdown)", shared.ErrInvalidArgument, s)
	}
}

// Extension returns the file extension used when writing f to disk.
func (f Format) Extension() string {
	switch f {
	case FormatCSV:
		return ".csv"
	case FormatMarkdown:
		return ".md"
	default:
		return ".txt"
	}
}

// Render encodes entries in format f.
func Render(f Format, entries []*models.SessionEntry) ([]byte, error) {
	switch f {
	case FormatCSV:
		return HistoryToCSV(entries)
	case FormatMarkdown:
		return HistoryToMarkdown(entries)
	case FormatText, "":
		return HistoryToText(entries)
	default:
		return nil, fmt.Errorf("%w: unknown format %q", shared.ErrInvalidArgument, f)
	}
}

// HistoryToCSV converts sessions to CSV with columns: Sequence, ID, Node, Status, Started, Duration, Clean, Error
func HistoryToCSV(entries []*models.SessionEntry) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	headers := []string{"Sequence", "ID", "Node", "Status", "Started", "Duration", "Clean", "Error"}
	if err := writer.Write(headers); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for _, e := range entries {
		s := e.Session()
		record := []string{
			strconv.Itoa(e.Sequence()),
			s.ID(),
			s.Node(),
			string(e.Status()),
			s.StartedAt().Format(time.RFC3339),
			FormatDuration(e),
			strconv.FormatBool(e.Clean()),
			e.ErrorMessage(),
		}
		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return buf.Bytes(), nil
}

// HistoryToMarkdown converts sessions to a Markdown table
func HistoryToMarkdown(entries []*models.SessionEntry) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString("# Grab History\n\n")
	buf.WriteString(fmt.Sprintf("**Sessions**: %d\n\n", len(entries)))

	if len(entries) == 0 {
		buf.WriteString("_No sessions recorded._\n")
		return buf.Bytes(), nil
	}

	buf.WriteString("| # | Node | Status | Started | Duration | Clean | Error |\n")
	buf.WriteString("|---|------|--------|---------|----------|-------|-------|\n")
	for _, e := range entries {
		s := e.Session()
		buf.WriteString(fmt.Sprintf("| %d | %s | %s | %s | %s | %s | %s |\n",
			e.Sequence(),
			escapeCell(s.Node()),
			e.Status(),
			s.StartedAt().Format(timeLayout),
			FormatDuration(e),
			yesNo(e.Clean()),
			escapeCell(e.ErrorMessage()),
		))
	}

	return buf.Bytes(), nil
}

// HistoryToText converts sessions to plain text, one line per session
func HistoryToText(entries []*models.SessionEntry) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("Sessions: %d\n\n", len(entries)))

	for _, e := range entries {
		s := e.Session()
		buf.WriteString(fmt.Sprintf("#%d %s %s %s (%s)", e.Sequence(), s.StartedAt().Format(timeLayout), s.Node(), e.Status(), FormatDuration(e)))
		if e.Clean() {
			buf.WriteString(" clean")
		}
		if msg := e.ErrorMessage(); msg != "" {
			buf.WriteString(": " + msg)
		}
		buf.WriteString("\n")
	}

	return buf.Bytes(), nil
}

// StepsToText lists the recorded steps of a single session
func StepsToText(entry *models.SessionEntry, steps []models.SessionStep) []byte {
	var buf bytes.Buffer

	s := entry.Session()
	buf.WriteString(fmt.Sprintf("Session #%d (%s)\n", entry.Sequence(), s.ID()))
	buf.WriteString(fmt.Sprintf("Node: %s\n", s.Node()))
	if v := s.RemoteVersion(); v != "" {
		buf.WriteString(fmt.Sprintf("Remote version: %s\n", v))
	}
	buf.WriteString(fmt.Sprintf("Started: %s\n", s.StartedAt().Format(timeLayout)))
	buf.WriteString(fmt.Sprintf("Status: %s (%s)\n", entry.Status(), FormatDuration(entry)))
	if msg := entry.ErrorMessage(); msg != "" {
		buf.WriteString(fmt.Sprintf("Error: %s\n", msg))
	}

	if len(steps) > 0 {
		buf.WriteString("\n")
	}
	for _, step := range steps {
		buf.WriteString(fmt.Sprintf("%d. %s %s", step.Position, step.Phase, step.Status))
		if step.Error != "" {
			buf.WriteString(": " + step.Error)
		}
		buf.WriteString("\n")
	}

	return buf.Bytes()
}

// WriteHistory renders entries and writes them to w
func WriteHistory(w io.Writer, f Format, entries []*models.SessionEntry) error {
	data, err := Render(f, entries)
	if err != nil {
		return err
	}
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("failed to write history: %w", err)
	}
	return nil
}

// WriteHistoryFile renders entries into a file on fs.
//
// Defaults to history{ext} in the working directory when path is empty; parent directories are created.
func WriteHistoryFile(fs afero.Fs, path string, f Format, entries []*models.SessionEntry) (string, error) {
	if path == "" {
		path = "history" + f.Extension()
	}

	data, err := Render(f, entries)
	if err != nil {
		return "", err
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := fs.MkdirAll(dir, 0755); err != nil {
			return "", fmt.Errorf("failed to create directory: %w", err)
		}
	}

	if err := afero.WriteFile(fs, path, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write history file: %w", err)
	}

	return path, nil
}

// FormatDuration renders how long a session ran, rounded to the second, or "running".
func FormatDuration(e *models.SessionEntry) string {
	if e.FinishedAt() == nil {
		return "running"
	}
	d := e.Duration().Round(time.Second)
	minutes := int(d / time.Minute)
	seconds := int((d % time.Minute) / time.Second)
	return fmt.Sprintf("%d:%02d", minutes, seconds)
}

func escapeCell(s string) string {
	s = strings.ReplaceAll(s, "|", `\|`)
	return strings.ReplaceAll(s, "\n", " ")
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
