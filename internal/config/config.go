package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Default config file path.
const DefaultConfigPath = "~/.config/recap/config.yaml"

// Config holds all recap configuration.
type Config struct {
	Analysis AnalysisConfig `yaml:"analysis"`
	Dedup    DedupConfig    `yaml:"dedup"`
	Sanitize SanitizeConfig `yaml:"sanitize"`
	Privacy  PrivacyConfig  `yaml:"privacy"`
	Storage  StorageConfig  `yaml:"storage"`
	LLM      LLMConfig      `yaml:"llm"`
	Logging  LoggingConfig  `yaml:"logging"`
}

type AnalysisConfig struct {
	CooccurrenceWindowMinutes int  `yaml:"cooccurrence_window_minutes"`
	MinClusterSize            int  `yaml:"min_cluster_size"`
	TrackRecurrence           bool `yaml:"track_recurrence"`
}

type DedupConfig struct {
	MaxVisitsPerDomain int `yaml:"max_visits_per_domain"`
	MaxOtherTotal      int `yaml:"max_other_total"`
}

type SanitizeConfig struct {
	Level           string   `yaml:"level"` // standard | aggressive
	RedactEmails    bool     `yaml:"redact_emails"`
	CollapseHome    bool     `yaml:"collapse_home"`
	ExcludedDomains []string `yaml:"excluded_domains"`
}

type PrivacyConfig struct {
	DefaultTier string `yaml:"default_tier"`
}

type StorageConfig struct {
	Path        string `yaml:"path"`
	SQLiteFile  string `yaml:"sqlite_file"`
	HistoryFile string `yaml:"history_file"`
	// RetentionDays bounds how long archived runs are kept.
	RetentionDays int `yaml:"retention_days"`
}

type LLMConfig struct {
	Enabled   bool   `yaml:"enabled"`
	Model     string `yaml:"model"`
	APIKeyEnv string `yaml:"api_key_env"`
	BatchSize int    `yaml:"batch_size"`
}

type LoggingConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
}

// Load reads a YAML config file at path and merges it with defaults.
// Returns an error if the file cannot be read or contains invalid YAML.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	return cfg, nil
}

// ExpandPath replaces a leading ~ with the user's home directory.
func ExpandPath(path string) (string, error) {
	if len(path) > 0 && path[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolving home directory: %w", err)
		}
		return filepath.Join(home, path[1:]), nil
	}
	return path, nil
}

// LoadOrCreate loads the config from the default path. If the file does
// not exist, it creates the directory structure and writes defaults.
func LoadOrCreate() (*Config, error) {
	path, err := ExpandPath(DefaultConfigPath)
	if err != nil {
		return nil, err
	}
	return LoadOrCreateAt(path)
}

// LoadOrCreateAt loads the config from the given path. If the file does
// not exist, it creates the directory structure and writes defaults.
func LoadOrCreateAt(path string) (*Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		cfg := DefaultConfig()

		dir := filepath.Dir(path)
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("creating config directory: %w", err)
		}

		data, err := yaml.Marshal(cfg)
		if err != nil {
			return nil, fmt.Errorf("marshaling default config: %w", err)
		}

		if err := os.WriteFile(path, data, 0644); err != nil {
			return nil, fmt.Errorf("writing default config: %w", err)
		}

		return cfg, nil
	}

	return Load(path)
}

// DataDir resolves the storage path with ~ expanded.
func (c *Config) DataDir() (string, error) {
	return ExpandPath(c.Storage.Path)
}

// DBPath resolves the sqlite archive file path.
func (c *Config) DBPath() (string, error) {
	dir, err := c.DataDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, c.Storage.SQLiteFile), nil
}

// HistoryPath resolves the topic history JSON file path.
func (c *Config) HistoryPath() (string, error) {
	dir, err := c.DataDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, c.Storage.HistoryFile), nil
}
