package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// ProviderConfig holds the credentials and optional endpoint override for
// one upstream vendor.
type ProviderConfig struct {
	APIKey  string `toml:"api_key,omitempty"`
	BaseURL string `toml:"base_url,omitempty"`
}

// ProvidersConfig groups per-vendor configuration.
type ProvidersConfig struct {
	Groq       ProviderConfig `toml:"groq"`
	Google     ProviderConfig `toml:"google"`
	OpenRouter ProviderConfig `toml:"openrouter"`
	Fireworks  ProviderConfig `toml:"fireworks"`
}

// Config is the resolved application configuration: TOML file values with
// environment overrides applied on top.
type Config struct {
	DataDirectory  string          `toml:"data_directory,omitempty"`
	DefaultModel   string          `toml:"default_model,omitempty"`
	DefaultPersona string          `toml:"default_persona,omitempty"`
	Providers      ProvidersConfig `toml:"providers"`
}

// DataDir returns the data directory with ~ expanded.
func (c *Config) DataDir() string {
	return ExpandPath(c.DataDirectory)
}

// ConfigFilePath returns the location of the user config file.
func ConfigFilePath() string {
	if dir := os.Getenv("NEXUS_CONFIG_DIR"); dir != "" {
		return filepath.Join(dir, "config.toml")
	}
	return filepath.Join(homeDir(), ".config", "nexus", "config.toml")
}

// ExpandPath expands a leading ~ to the user's home directory.
func ExpandPath(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		return filepath.Join(homeDir(), strings.TrimPrefix(strings.TrimPrefix(path, "~"), "/"))
	}
	return path
}

func homeDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return home
}

func (c *Config) applyEnvOverrides() {
	if dataDir := os.Getenv("NEXUS_DATA_DIR"); dataDir != "" {
		c.DataDirectory = dataDir
	}
	if m := os.Getenv("NEXUS_DEFAULT_MODEL"); m != "" {
		c.DefaultModel = m
	}
	// Credential env variable names follow the upstream vendors' conventions.
	if key := os.Getenv("GROQ_API_KEY"); key != "" {
		c.Providers.Groq.APIKey = key
	}
	if key := os.Getenv("GOOGLE_GENERATIVE_AI_API_KEY"); key != "" {
		c.Providers.Google.APIKey = key
	}
	if key := os.Getenv("OPENROUTER_API_KEY"); key != "" {
		c.Providers.OpenRouter.APIKey = key
	}
	if key := os.Getenv("FIREWORKS_API_KEY"); key != "" {
		c.Providers.Fireworks.APIKey = key
	}
}

// Load reads the config file if present, applies env overrides, and ensures
// the data directory exists.
func Load() (*Config, error) {
	cfg := &Config{
		DataDirectory: "~/.local/share/nexus",
	}

	path := ConfigFilePath()
	if _, err := os.Stat(path); err == nil {
		if _, err := toml.DecodeFile(path, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	cfg.applyEnvOverrides()

	dataDir := cfg.DataDir()
	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	return cfg, nil
}
