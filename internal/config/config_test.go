package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad_MissingFile(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yml"))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(cfg.Exclude) != 0 || len(cfg.Hooks) != 0 || cfg.Verify {
		t.Errorf("missing file did not produce defaults: %+v", cfg)
	}
}

func TestLoad_Valid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cp-r.yml")
	content := `exclude:
  - "*.log"
  - "node_modules/"
hooks:
  - "ls -la"
verify: true
workers: 4
buffer_size: 65536
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if len(cfg.Exclude) != 2 || cfg.Exclude[0] != "*.log" {
		t.Errorf("Exclude = %v, want [*.log node_modules/]", cfg.Exclude)
	}
	if len(cfg.Hooks) != 1 || cfg.Hooks[0] != "ls -la" {
		t.Errorf("Hooks = %v, want [ls -la]", cfg.Hooks)
	}
	if !cfg.Verify {
		t.Error("Verify = false, want true")
	}
	if cfg.Workers != 4 {
		t.Errorf("Workers = %d, want 4", cfg.Workers)
	}
	if cfg.BufferSize != 65536 {
		t.Errorf("BufferSize = %d, want 65536", cfg.BufferSize)
	}
}

func TestLoad_Invalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yml")
	if err := os.WriteFile(path, []byte("exclude: [unclosed"), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	if _, err := Load(path); err == nil {
		t.Error("Load succeeded on invalid YAML, want error")
	}
}
