package internal

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config holds the application configuration loaded from
// <data-dir>/config.yaml, with defaults filled in for anything the
// file does not set.
type Config struct {
	// DataDir is the application-private storage area holding the
	// database, the active-session checkpoint, and the pictures tree.
	DataDir string `yaml:"data_dir"`

	// PicturesDir overrides where session image directories live.
	// Defaults to <data_dir>/Pictures/OralVis/Sessions.
	PicturesDir string `yaml:"pictures_dir,omitempty"`

	// DatabasePath overrides the session database location.
	// Defaults to <data_dir>/sessions.db.
	DatabasePath string `yaml:"database_path,omitempty"`

	// CameraSource is a default source image for file-based capture,
	// used when `capture` is invoked without arguments.
	CameraSource string `yaml:"camera_source,omitempty"`
}

// DefaultDataDir returns the per-user application data directory
func DefaultDataDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".oralvis"), nil
}

// LoadConfig loads configuration for the given data directory. A
// missing config file yields the defaults; a present but malformed
// file is an error.
func LoadConfig(dataDir string) (*Config, error) {
	cfg := &Config{DataDir: dataDir}

	path := filepath.Join(dataDir, "config.yaml")
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg.withDefaults(), nil
		}
		return nil, &FileStoreError{Path: path, Op: "read", Err: err}
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, &FileStoreError{Path: path, Op: "read", Err: err}
	}
	if cfg.DataDir == "" {
		cfg.DataDir = dataDir
	}
	return cfg.withDefaults(), nil
}

func (c *Config) withDefaults() *Config {
	if c.PicturesDir == "" {
		c.PicturesDir = filepath.Join(c.DataDir, "Pictures", "OralVis", "Sessions")
	}
	if c.DatabasePath == "" {
		c.DatabasePath = filepath.Join(c.DataDir, "sessions.db")
	}
	return c
}
