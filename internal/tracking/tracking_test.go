package tracking

import (
	"encoding/json"
	"errors"
	"os"
	"testing"

	"github.com/spf13/afero"

	"github.com/desertthunder/dcx/internal/layout"
	"github.com/desertthunder/dcx/internal/models"
	"github.com/desertthunder/dcx/internal/shared"
)

func TestStore(t *testing.T) {
	fs := afero.NewMemMapFs()
	store := New(fs, layout.Layout{BaseDir: "/store"})

	t.Run("Dir", func(t *testing.T) {
		if got := store.Dir(); got != "/store/.ccc" {
			t.Errorf("expected /store/.ccc, got %q", got)
		}
	})

	t.Run("EnsureDir is idempotent", func(t *testing.T) {
		for range 2 {
			if err := store.EnsureDir(); err != nil {
				t.Fatalf("EnsureDir failed: %v", err)
			}
		}

		if ok, err := afero.IsDir(fs, "/store/.ccc"); err != nil || !ok {
			t.Errorf("expected tracking directory, got %v (%v)", ok, err)
		}
	})

	t.Run("WriteRecord and ReadRecord", func(t *testing.T) {
		rec := models.NewSession("https://node.example.com", "24.2", "0.3.0").Record()
		if err := store.WriteRecord(layout.ConfigMetadataJSON, rec); err != nil {
			t.Fatalf("WriteRecord failed: %v", err)
		}

		raw, err := afero.ReadFile(fs, "/store/.ccc/config.json")
		if err != nil {
			t.Fatalf("record not written: %v", err)
		}
		var fields map[string]string
		if err := json.Unmarshal(raw, &fields); err != nil {
			t.Fatalf("record is not JSON: %v", err)
		}
		want := map[string]string{"node": "https://node.example.com", "remoteVersion": "24.2", "toolVersion": "0.3.0"}
		for k, v := range want {
			if fields[k] != v {
				t.Errorf("expected %s=%q, got %q", k, v, fields[k])
			}
		}

		var got models.SessionRecord
		if err := store.ReadRecord(layout.ConfigMetadataJSON, &got); err != nil {
			t.Fatalf("ReadRecord failed: %v", err)
		}
		if got != rec {
			t.Errorf("expected %+v, got %+v", rec, got)
		}
	})

	t.Run("WriteRecord overwrites", func(t *testing.T) {
		if err := store.WriteRecord("state.json", map[string]int{"n": 1}); err != nil {
			t.Fatalf("WriteRecord failed: %v", err)
		}
		if err := store.WriteRecord("state.json", map[string]int{"n": 2}); err != nil {
			t.Fatalf("WriteRecord failed: %v", err)
		}

		var got map[string]int
		if err := store.ReadRecord("state.json", &got); err != nil {
			t.Fatalf("ReadRecord failed: %v", err)
		}
		if got["n"] != 2 {
			t.Errorf("expected n=2, got %d", got["n"])
		}
	})

	t.Run("ReadRecord missing", func(t *testing.T) {
		var got map[string]any
		if err := store.ReadRecord("absent.json", &got); !errors.Is(err, os.ErrNotExist) {
			t.Errorf("expected os.ErrNotExist, got %v", err)
		}
	})

	t.Run("ReadRecord corrupt", func(t *testing.T) {
		if err := afero.WriteFile(fs, "/store/.ccc/bad.json", []byte("{"), 0644); err != nil {
			t.Fatal(err)
		}

		var got map[string]any
		if err := store.ReadRecord("bad.json", &got); !errors.Is(err, shared.ErrTracking) {
			t.Errorf("expected ErrTracking, got %v", err)
		}
	})

	t.Run("WriteRecord on read-only fs", func(t *testing.T) {
		ro := New(afero.NewReadOnlyFs(fs), layout.Layout{BaseDir: "/store"})
		if err := ro.WriteRecord("config.json", map[string]string{}); !errors.Is(err, shared.ErrTracking) {
			t.Errorf("expected ErrTracking, got %v", err)
		}
	})
}
