package shared

import (
	_ "embed"
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
)

//go:embed config.example.toml
var exampleConf []byte

// Environment variables that override values from the config file.
const (
	EnvNode           = "CC_NODE"
	EnvApplicationKey = "CC_APPLICATION_KEY"
)

// Config represents the application configuration loaded from a TOML file.
type Config struct {
	Node      NodeConfig      `toml:"node"`
	Workspace WorkspaceConfig `toml:"workspace"`
	Cache     CacheConfig     `toml:"cache"`
	Database  DatabaseConfig  `toml:"database"`
	Log       LogConfig       `toml:"log"`
}

// NodeConfig describes the remote admin node and how hard we may hit it.
type NodeConfig struct {
	URL               string  `toml:"url"`
	ApplicationKey    string  `toml:"application_key"`
	RequestsPerSecond float64 `toml:"requests_per_second"`
	Burst             int     `toml:"burst"`
	TimeoutSeconds    int     `toml:"timeout_seconds"`
}

// WorkspaceConfig locates the local mirror tree.
type WorkspaceConfig struct {
	BaseDir     string `toml:"base_dir"`
	Concurrency int    `toml:"concurrency"`
}

// CacheConfig sizes the in-session response cache.
type CacheConfig struct {
	Size int `toml:"size"`
}

// DatabaseConfig contains session journal connection settings.
type DatabaseConfig struct {
	Path         string `toml:"path"`
	MaxOpenConns int    `toml:"max_open_conns"`
	MaxIdleConns int    `toml:"max_idle_conns"`
}

// LogConfig selects the log level and formatter.
type LogConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
}

// LoadConfig reads and parses a TOML configuration file from the specified path.
//
// Values missing from the file keep their defaults from the embedded example config.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read config file: %v", ErrMissingConfig, err)
	}

	config := DefaultConfig()
	if err := toml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("%w: failed to parse config: %v", ErrInvalidConfig, err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// DefaultConfig returns a Config with sensible defaults loaded from the embedded example config.
func DefaultConfig() *Config {
	var config Config
	if err := toml.Unmarshal(exampleConf, &config); err != nil {
		panic(fmt.Sprintf("failed to parse embedded default config: %v", err))
	}
	return &config
}

// CreateConfigFile creates a config.toml file at the specified path using the embedded example config.
func CreateConfigFile(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file already exists at %s", path)
	}

	if err := os.WriteFile(path, exampleConf, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// ApplyEnv overrides node settings from the environment. Call after loading .env.
func (c *Config) ApplyEnv(getenv func(string) string) {
	if getenv == nil {
		getenv = os.Getenv
	}
	if v := strings.TrimSpace(getenv(EnvNode)); v != "" {
		c.Node.URL = v
	}
	if v := strings.TrimSpace(getenv(EnvApplicationKey)); v != "" {
		c.Node.ApplicationKey = v
	}
}

// Validate rejects values the rest of the program cannot work with.
func (c *Config) Validate() error {
	if c.Node.RequestsPerSecond < 0 {
		return fmt.Errorf("%w: node.requests_per_second must not be negative", ErrInvalidConfig)
	}
	if c.Workspace.Concurrency < 1 {
		return fmt.Errorf("%w: workspace.concurrency must be at least 1", ErrInvalidConfig)
	}
	if c.Cache.Size < 1 {
		return fmt.Errorf("%w: cache.size must be at least 1", ErrInvalidConfig)
	}
	return nil
}
