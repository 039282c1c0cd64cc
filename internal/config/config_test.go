package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	return path
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.Synthesis.Provider != "gemini" {
		t.Errorf("Provider = %q, want gemini", cfg.Synthesis.Provider)
	}
	if cfg.Synthesis.Timeout != 60*time.Second {
		t.Errorf("Timeout = %v, want 60s", cfg.Synthesis.Timeout)
	}
	if cfg.Synthesis.AllowRegeneration {
		t.Error("AllowRegeneration should default to false")
	}
	if cfg.Unlock.MinEntries != 3 || cfg.Unlock.MinCharacters != 300 {
		t.Errorf("unexpected unlock thresholds: %+v", cfg.Unlock)
	}
	if strings.HasPrefix(cfg.Storage.Path, "~") {
		t.Errorf("storage path was not expanded: %s", cfg.Storage.Path)
	}
	if cfg.UsesJSONBackend() {
		t.Error("default storage should be SQLite")
	}
}

func TestLoadFromFile(t *testing.T) {
	path := writeConfig(t, `
storage:
  path: /tmp/onething/journal.json
synthesis:
  provider: Anthropic
  model: claude-test
  timeout: 15s
  allow_regeneration: true
  requests_per_minute: 2
unlock:
  min_entries: 5
  min_characters: 500
log:
  debug: true
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.Storage.Path != "/tmp/onething/journal.json" || !cfg.UsesJSONBackend() {
		t.Errorf("unexpected storage config: %+v", cfg.Storage)
	}
	if cfg.Synthesis.Provider != "anthropic" || cfg.Synthesis.Model != "claude-test" {
		t.Errorf("unexpected synthesis config: %+v", cfg.Synthesis)
	}
	if cfg.Synthesis.Timeout != 15*time.Second || !cfg.Synthesis.AllowRegeneration || cfg.Synthesis.RequestsPerMinute != 2 {
		t.Errorf("unexpected synthesis config: %+v", cfg.Synthesis)
	}
	if cfg.Unlock.MinEntries != 5 || cfg.Unlock.MinCharacters != 500 {
		t.Errorf("unexpected unlock config: %+v", cfg.Unlock)
	}
	if !cfg.Log.Debug {
		t.Error("log.debug not loaded")
	}
	if cfg.ConfigDir() != "/tmp/onething" {
		t.Errorf("ConfigDir() = %q", cfg.ConfigDir())
	}
}

func TestEnvOverridesFile(t *testing.T) {
	path := writeConfig(t, `
synthesis:
  provider: gemini
  allow_regeneration: false
unlock:
  min_entries: 4
`)
	t.Setenv("ONETHING_SYNTHESIS_ALLOW_REGENERATION", "true")
	t.Setenv("ONETHING_UNLOCK_MIN_ENTRIES", "7")
	t.Setenv("ONETHING_SYNTHESIS_TIMEOUT", "5s")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if !cfg.Synthesis.AllowRegeneration {
		t.Error("env override for allow_regeneration not applied")
	}
	if cfg.Unlock.MinEntries != 7 {
		t.Errorf("MinEntries = %d, want 7", cfg.Unlock.MinEntries)
	}
	if cfg.Synthesis.Timeout != 5*time.Second {
		t.Errorf("Timeout = %v, want 5s", cfg.Synthesis.Timeout)
	}
}

func TestLoadValidation(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"unknown provider", "synthesis:\n  provider: openai\n"},
		{"remote without url", "synthesis:\n  provider: remote\n"},
		{"negative rate", "synthesis:\n  requests_per_minute: -1\n"},
		{"negative min entries", "unlock:\n  min_entries: -2\n"},
		{"invalid yaml", "synthesis: [\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Load(writeConfig(t, tt.content)); err == nil {
				t.Error("expected Load() to fail")
			}
		})
	}
}

func TestLoadRejectsOversizedFile(t *testing.T) {
	path := writeConfig(t, "# "+strings.Repeat("x", maxConfigFileSize+1)+"\n")
	if _, err := Load(path); err == nil {
		t.Error("expected oversized config file to be rejected")
	}
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}

	tests := []struct {
		in   string
		want string
	}{
		{"~/.config/onething/onething.db", filepath.Join(home, ".config/onething/onething.db")},
		{"~", home},
		{"/abs/path.db", "/abs/path.db"},
		{"relative.db", "relative.db"},
		{"~other/x", "~other/x"},
	}
	for _, tt := range tests {
		got, err := ExpandPath(tt.in)
		if err != nil {
			t.Fatalf("ExpandPath(%q) failed: %v", tt.in, err)
		}
		if got != tt.want {
			t.Errorf("ExpandPath(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestAPIKeyFromEnv(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "")
	t.Setenv("ANTHROPIC_API_KEY", "sk-ant")
	t.Setenv("ONETHING_API_KEY", "generic")

	if got := APIKeyFromEnv("anthropic"); got != "sk-ant" {
		t.Errorf("APIKeyFromEnv(anthropic) = %q, want sk-ant", got)
	}
	if got := APIKeyFromEnv("gemini"); got != "generic" {
		t.Errorf("APIKeyFromEnv(gemini) = %q, want fallback generic", got)
	}
	if got := APIKeyFromEnv("remote"); got != "generic" {
		t.Errorf("APIKeyFromEnv(remote) = %q, want generic", got)
	}
}
