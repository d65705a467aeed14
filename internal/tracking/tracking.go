// package tracking persists sync metadata in the tracking directory of a mirror tree
package tracking

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/afero"

	"github.com/desertthunder/dcx/internal/layout"
	"github.com/desertthunder/dcx/internal/shared"
)

// Store reads and writes JSON records under <base>/.ccc.
type Store struct {
	fs  afero.Fs
	dir string
}

// New creates a Store for the tracking directory of l.
func New(fs afero.Fs, l layout.Layout) *Store {
	return &Store{fs: fs, dir: l.Resolve(layout.TrackingDir)}
}

// Dir returns the absolute tracking directory.
func (s *Store) Dir() string { return s.dir }

// EnsureDir creates the tracking directory if it is absent.
func (s *Store) EnsureDir() error {
	if err := s.fs.MkdirAll(s.dir, 0755); err != nil {
		return fmt.Errorf("%w: %w", shared.ErrTracking, err)
	}
	return nil
}

// WriteRecord stores value as pretty printed JSON under key.
func (s *Store) WriteRecord(key string, value any) error {
	data, err := shared.MarshalJSON(value, true)
	if err != nil {
		return fmt.Errorf("%w: failed to encode %s: %w", shared.ErrTracking, key, err)
	}
	if err := afero.WriteFile(s.fs, s.path(key), data, 0644); err != nil {
		return fmt.Errorf("%w: %w", shared.ErrTracking, err)
	}
	return nil
}

// ReadRecord decodes the record stored under key into out.
// A missing record yields an error wrapping [os.ErrNotExist].
func (s *Store) ReadRecord(key string, out any) error {
	data, err := afero.ReadFile(s.fs, s.path(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("no tracking record %s: %w", key, err)
		}
		return fmt.Errorf("%w: %w", shared.ErrTracking, err)
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("%w: failed to decode %s: %w", shared.ErrTracking, key, err)
	}
	return nil
}

func (s *Store) path(key string) string {
	return filepath.Join(s.dir, filepath.Base(key))
}
