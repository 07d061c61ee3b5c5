// Package config loads depscope configuration from a TOML file.
//
// Configuration is read once at startup and passed down explicitly; no
// package-level state is kept. A missing file is not an error: defaults
// apply, so a fresh installation works without any setup.
package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/depscope/pkg/errors"
)

// Defaults for provider invocation and traversal limits.
const (
	DefaultProviderBinary  = "apt-cache"
	DefaultProviderTimeout = 10 * time.Second
	DefaultCycleMaxPerNode = 10
	DefaultListenAddr      = "127.0.0.1:8347"
)

// Config holds all startup configuration.
type Config struct {
	// Provider configures the apt-cache subprocess.
	Provider ProviderConfig `toml:"provider"`

	// Cycles configures the circular-dependency search.
	Cycles CyclesConfig `toml:"cycles"`

	// Server configures the HTTP API (serve mode).
	Server ServerConfig `toml:"server"`
}

// ProviderConfig configures the package metadata provider subprocess.
type ProviderConfig struct {
	// Binary is the provider executable, looked up on PATH if not absolute.
	Binary string `toml:"binary"`

	// TimeoutSeconds bounds a single provider invocation.
	TimeoutSeconds int `toml:"timeout_seconds"`
}

// Timeout returns the provider timeout as a duration.
func (p ProviderConfig) Timeout() time.Duration {
	return time.Duration(p.TimeoutSeconds) * time.Second
}

// CyclesConfig configures the cycle detector.
type CyclesConfig struct {
	// MaxPerNode caps dependencies explored per package during the search.
	MaxPerNode int `toml:"max_per_node"`

	// Exhaustive disables visited-set memoization by default.
	Exhaustive bool `toml:"exhaustive"`
}

// ServerConfig configures serve mode.
type ServerConfig struct {
	// ListenAddr is the address the HTTP API binds to.
	ListenAddr string `toml:"listen_addr"`
}

// Default returns a Config with all defaults applied.
func Default() Config {
	return Config{
		Provider: ProviderConfig{
			Binary:         DefaultProviderBinary,
			TimeoutSeconds: int(DefaultProviderTimeout / time.Second),
		},
		Cycles: CyclesConfig{
			MaxPerNode: DefaultCycleMaxPerNode,
		},
		Server: ServerConfig{
			ListenAddr: DefaultListenAddr,
		},
	}
}

// DefaultPath returns the default config file location,
// ~/.config/depscope/config.toml.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "depscope", "config.toml"), nil
}

// Load reads the config file at path. A missing file yields Default().
// Fields absent from the file keep their default values.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return cfg, errors.Wrap(errors.ErrCodeInvalidInput, err, "read config %s", path)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return Default(), errors.Wrap(errors.ErrCodeInvalidInput, err, "parse config %s", path)
	}

	cfg.normalize()
	return cfg, nil
}

// normalize replaces zero or negative values with defaults so a partially
// filled file cannot disable the timeout or the breadth cap.
func (c *Config) normalize() {
	if c.Provider.Binary == "" {
		c.Provider.Binary = DefaultProviderBinary
	}
	if c.Provider.TimeoutSeconds <= 0 {
		c.Provider.TimeoutSeconds = int(DefaultProviderTimeout / time.Second)
	}
	if c.Cycles.MaxPerNode <= 0 {
		c.Cycles.MaxPerNode = DefaultCycleMaxPerNode
	}
	if c.Server.ListenAddr == "" {
		c.Server.ListenAddr = DefaultListenAddr
	}
}
