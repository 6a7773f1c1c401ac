// Package config provides configuration loading and structs for the kotoba server.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config holds all configuration for the application.
type Config struct {
	Debug         bool                `yaml:"debug"`
	Server        ServerConfig        `yaml:"server"`
	Embeddings    EmbeddingsConfig    `yaml:"embeddings"`
	Visualization VisualizationConfig `yaml:"visualization"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

// EmbeddingsConfig holds the pretrained word-vector table settings.
type EmbeddingsConfig struct {
	// TablePath is the whitespace-separated "word v1 ... vN" table file,
	// loaded once at startup.
	TablePath string `yaml:"table_path"`
}

// VisualizationConfig holds projection and cache settings.
type VisualizationConfig struct {
	DefaultPerplexity int   `yaml:"default_perplexity"`
	DefaultDims       int   `yaml:"default_dims"`
	TSNESeed          int64 `yaml:"tsne_seed"`
	// MaxStored bounds the visualization cache; 0 means unbounded
	// (entries then live for the process lifetime unless trimmed explicitly).
	MaxStored int `yaml:"max_stored"`
}

// Load reads and parses the config file at path, expands paths, and applies defaults.
// Returns an error if the file cannot be read or parsed.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	ApplyDefaults(&cfg)

	configDir := filepath.Dir(path)
	cfg.Embeddings.TablePath = expandPath(cfg.Embeddings.TablePath, configDir)

	return &cfg, nil
}

// expandPath converts a path to absolute. Paths starting with "./" are relative to configDir;
// other relative paths are relative to the home directory.
func expandPath(path string, configDir string) string {
	if filepath.IsAbs(path) {
		return path
	}
	if strings.HasPrefix(path, "./") || path == "." {
		return filepath.Join(configDir, path)
	}
	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, path)
	}
	return path
}
