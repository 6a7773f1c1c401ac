package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := `
server:
  host: "127.0.0.1"
  port: 9000
embeddings:
  table_path: "/tmp/glove.txt"
`
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Server.Host != "127.0.0.1" || cfg.Server.Port != 9000 {
		t.Errorf("unexpected server config: %+v", cfg.Server)
	}
	if cfg.Embeddings.TablePath != "/tmp/glove.txt" {
		t.Errorf("table_path = %s", cfg.Embeddings.TablePath)
	}
	if cfg.Debug {
		t.Error("debug should default to false when unset")
	}
}

func TestLoad_defaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte("debug: true\n"), 0600); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if !cfg.Debug {
		t.Error("debug should be true when set in config")
	}
	if cfg.Server.Port != 8000 {
		t.Errorf("default port = %d, want 8000", cfg.Server.Port)
	}
	if cfg.Visualization.DefaultPerplexity != 30 {
		t.Errorf("default perplexity = %d, want 30", cfg.Visualization.DefaultPerplexity)
	}
	if cfg.Visualization.DefaultDims != 2 {
		t.Errorf("default dims = %d, want 2", cfg.Visualization.DefaultDims)
	}
	if cfg.Visualization.TSNESeed != 42 {
		t.Errorf("default seed = %d, want 42", cfg.Visualization.TSNESeed)
	}
	if cfg.Visualization.MaxStored != 0 {
		t.Errorf("max_stored should default to 0, got %d", cfg.Visualization.MaxStored)
	}
}

func TestLoad_expandPathDotSlashRelativeToConfigDir(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := `
embeddings:
  table_path: "./glove.txt"
`
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	want := filepath.Join(dir, "glove.txt")
	if cfg.Embeddings.TablePath != want {
		t.Errorf("table_path = %s, want %s", cfg.Embeddings.TablePath, want)
	}
}

func TestLoad_missingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("missing file should return an error")
	}
}
