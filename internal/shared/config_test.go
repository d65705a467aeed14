package shared

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestConfig(t *testing.T) {
	t.Run("DefaultConfig", func(t *testing.T) {
		config := DefaultConfig()

		if config.Database.Path != "./dcx.db" {
			t.Errorf("expected database path ./dcx.db, got %s", config.Database.Path)
		}

		if config.Node.URL != "http://localhost:9080" {
			t.Errorf("expected node URL http://localhost:9080, got %s", config.Node.URL)
		}

		if config.Workspace.Concurrency != 4 {
			t.Errorf("expected concurrency 4, got %d", config.Workspace.Concurrency)
		}

		if config.Cache.Size != 512 {
			t.Errorf("expected cache size 512, got %d", config.Cache.Size)
		}

		if err := config.Validate(); err != nil {
			t.Errorf("default config should be valid: %v", err)
		}
	})

	t.Run("CreateConfigFile", func(t *testing.T) {
		tmpDir := t.TempDir()
		configPath := filepath.Join(tmpDir, "config.toml")

		if err := CreateConfigFile(configPath); err != nil {
			t.Fatalf("failed to create config file: %v", err)
		}

		if _, err := os.Stat(configPath); err != nil {
			t.Fatalf("config file should exist: %v", err)
		}

		config, err := LoadConfig(configPath)
		if err != nil {
			t.Fatalf("failed to load created config: %v", err)
		}

		defaultConfig := DefaultConfig()
		if config.Database.Path != defaultConfig.Database.Path {
			t.Errorf("created config database path doesn't match default")
		}

		if err := CreateConfigFile(configPath); err == nil {
			t.Error("creating config file again should fail")
		}
	})

	t.Run("LoadConfig", func(t *testing.T) {
		tmpDir := t.TempDir()
		configPath := filepath.Join(tmpDir, "config.toml")

		testConfig := `[node]
url = "https://admin.example.com"
application_key = "secret"

[workspace]
base_dir = "/srv/store"
concurrency = 8

[database]
path = "/custom/path.db"
`
		if err := os.WriteFile(configPath, []byte(testConfig), 0644); err != nil {
			t.Fatalf("failed to write test config: %v", err)
		}

		config, err := LoadConfig(configPath)
		if err != nil {
			t.Fatalf("failed to load config: %v", err)
		}

		if config.Node.URL != "https://admin.example.com" {
			t.Errorf("expected node URL https://admin.example.com, got %s", config.Node.URL)
		}
		if config.Workspace.BaseDir != "/srv/store" {
			t.Errorf("expected base dir /srv/store, got %s", config.Workspace.BaseDir)
		}
		if config.Database.Path != "/custom/path.db" {
			t.Errorf("expected database path /custom/path.db, got %s", config.Database.Path)
		}
		if config.Cache.Size != 512 {
			t.Errorf("expected unset cache size to keep default 512, got %d", config.Cache.Size)
		}
	})

	t.Run("LoadConfig missing file", func(t *testing.T) {
		_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.toml"))
		if !errors.Is(err, ErrMissingConfig) {
			t.Errorf("expected ErrMissingConfig, got %v", err)
		}
	})

	t.Run("LoadConfig invalid values", func(t *testing.T) {
		configPath := filepath.Join(t.TempDir(), "config.toml")
		if err := os.WriteFile(configPath, []byte("[workspace]\nconcurrency = 0\n"), 0644); err != nil {
			t.Fatalf("failed to write test config: %v", err)
		}

		_, err := LoadConfig(configPath)
		if !errors.Is(err, ErrInvalidConfig) {
			t.Errorf("expected ErrInvalidConfig, got %v", err)
		}
	})

	t.Run("ApplyEnv", func(t *testing.T) {
		config := DefaultConfig()
		env := map[string]string{
			EnvNode:           " https://env.example.com ",
			EnvApplicationKey: "from-env",
		}

		config.ApplyEnv(func(k string) string { return env[k] })

		if config.Node.URL != "https://env.example.com" {
			t.Errorf("expected node URL from env, got %s", config.Node.URL)
		}
		if config.Node.ApplicationKey != "from-env" {
			t.Errorf("expected application key from env, got %s", config.Node.ApplicationKey)
		}
	})
}
