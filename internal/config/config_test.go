package config

import (
	"os"
	"path/filepath"
	"testing"
)

const validYAML = `
storage:
  path: "/tmp/climbs.db"
log:
  level: "debug"
display:
  recent_limit: 5
`

func writeTemp(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

// TestLoadValid verifies that a well-formed YAML config loads with all fields populated.
func TestLoadValid(t *testing.T) {
	cfg, err := Load(writeTemp(t, validYAML))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Storage.Path != "/tmp/climbs.db" {
		t.Errorf("storage.path = %q, want %q", cfg.Storage.Path, "/tmp/climbs.db")
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("log.level = %q, want %q", cfg.Log.Level, "debug")
	}
	if cfg.Display.RecentLimit != 5 {
		t.Errorf("display.recent_limit = %d, want 5", cfg.Display.RecentLimit)
	}
}

// TestMissingFileUsesDefaults verifies that no config file is not an error.
func TestMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Log.Level != "warn" {
		t.Errorf("log.level = %q, want %q", cfg.Log.Level, "warn")
	}
	if cfg.Display.RecentLimit != 20 {
		t.Errorf("display.recent_limit = %d, want 20", cfg.Display.RecentLimit)
	}
	if cfg.Storage.Path != "" {
		t.Errorf("storage.path = %q, want empty", cfg.Storage.Path)
	}
}

// TestEnvOverride verifies that SENDIT_ env vars take precedence over YAML values.
func TestEnvOverride(t *testing.T) {
	t.Setenv("SENDIT_DB_PATH", "/data/override.db")
	t.Setenv("SENDIT_LOG_LEVEL", "error")
	t.Setenv("SENDIT_RECENT_LIMIT", "50")

	cfg, err := Load(writeTemp(t, validYAML))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Storage.Path != "/data/override.db" {
		t.Errorf("storage.path = %q, want override", cfg.Storage.Path)
	}
	if cfg.Log.Level != "error" {
		t.Errorf("log.level = %q, want %q", cfg.Log.Level, "error")
	}
	if cfg.Display.RecentLimit != 50 {
		t.Errorf("display.recent_limit = %d, want 50", cfg.Display.RecentLimit)
	}
}

// TestValidation verifies that bad values are rejected.
func TestValidation(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"bad level", "log:\n  level: loud\n"},
		{"zero limit", "display:\n  recent_limit: 0\n"},
		{"not yaml", "log: [unclosed"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Load(writeTemp(t, tt.yaml)); err == nil {
				t.Error("expected error, got nil")
			}
		})
	}
}

// TestEmptyPathSkipsFile verifies Load("") only applies defaults and env.
func TestEmptyPathSkipsFile(t *testing.T) {
	t.Setenv("SENDIT_LOG_LEVEL", "info")
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Log.Level != "info" {
		t.Errorf("log.level = %q, want %q", cfg.Log.Level, "info")
	}
}
