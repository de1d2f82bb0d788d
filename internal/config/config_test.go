package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.StatePath != "state" {
		t.Errorf("Expected default state path, got %q", cfg.StatePath)
	}
}

func TestLoad_YAMLFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "taskmaster.yaml")
	content := `
state_path: /tmp/tm-state
timer:
  focus_seconds: 1200
  break_seconds: 240
ai:
  model: gpt-4o-mini
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.StatePath != "/tmp/tm-state" {
		t.Errorf("Expected state path from file, got %q", cfg.StatePath)
	}
	if cfg.Timer.FocusSeconds != 1200 || cfg.Timer.BreakSeconds != 240 {
		t.Errorf("Unexpected timer config: %+v", cfg.Timer)
	}
	if cfg.AI.Model != "gpt-4o-mini" {
		t.Errorf("Expected model from file, got %q", cfg.AI.Model)
	}
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "taskmaster.yaml")
	if err := os.WriteFile(path, []byte("state_path: from-file\n"), 0644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("STATE_PATH", "from-env")
	t.Setenv("TIMER_FOCUS_SECONDS", "900")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.StatePath != "from-env" {
		t.Errorf("Expected env to win, got %q", cfg.StatePath)
	}
	if cfg.Timer.FocusSeconds != 900 {
		t.Errorf("Expected focus 900 from env, got %d", cfg.Timer.FocusSeconds)
	}
}

func TestLoad_BadIntEnvIgnored(t *testing.T) {
	t.Setenv("TIMER_FOCUS_SECONDS", "soon")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Timer.FocusSeconds != 0 {
		t.Errorf("Expected unparseable env ignored, got %d", cfg.Timer.FocusSeconds)
	}
}

func TestLoad_MissingFileIsFine(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err != nil {
		t.Errorf("Expected missing file to be tolerated, got %v", err)
	}
}

func TestLoad_MalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("{{nope"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("Expected error for malformed config")
	}
}
