package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadMissingReturnsDefaults(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.General.Currency != "$" || cfg.LLM.MaxTokens != 1024 || !cfg.Cache.Enabled {
		t.Fatalf("cfg = %+v, want defaults", cfg)
	}
	if Exists() {
		t.Fatal("Exists() = true for empty dir")
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg := DefaultConfig()
	cfg.General.Currency = "€"
	cfg.LLM.APIKey = "sk-ant-test-0123456789"
	cfg.Appearance.Theme = "tokyo-night"
	if err := Save(cfg); err != nil {
		t.Fatalf("Save: %v", err)
	}

	info, err := os.Stat(Path())
	if err != nil {
		t.Fatalf("stat: %v", err)
	}
	if perm := info.Mode().Perm(); perm != 0o600 {
		t.Fatalf("mode = %o, want 600", perm)
	}

	got, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got != cfg {
		t.Fatalf("round trip = %+v, want %+v", got, cfg)
	}
}

func TestLoadPartialFileKeepsDefaults(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	if err := os.MkdirAll(filepath.Join(dir, "finbuddy"), 0o750); err != nil {
		t.Fatal(err)
	}
	data := "[llm]\nmodel = \"claude-sonnet-4-5\"\n"
	if err := os.WriteFile(Path(), []byte(data), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.LLM.Model != "claude-sonnet-4-5" {
		t.Fatalf("model = %q", cfg.LLM.Model)
	}
	if cfg.LLM.Timeout() != 30*time.Second || cfg.Server.Addr != "127.0.0.1:8787" {
		t.Fatalf("defaults lost: %+v", cfg)
	}
}

func TestEffectiveEnvOverrides(t *testing.T) {
	t.Setenv(EnvAPIKey, "env-key-abcdefghijkl")
	t.Setenv(EnvModel, "claude-test")
	t.Setenv(EnvLogLevel, "debug")

	cfg := DefaultConfig()
	cfg.LLM.APIKey = "file-key"
	got := Effective(cfg)

	if got.LLM.APIKey != "env-key-abcdefghijkl" || got.LLM.Model != "claude-test" || got.General.LogLevel != "debug" {
		t.Fatalf("Effective = %+v", got)
	}
	if KeySource(cfg) != "env "+EnvAPIKey {
		t.Fatalf("KeySource = %q", KeySource(cfg))
	}
}

func TestCachePaths(t *testing.T) {
	cacheDir := t.TempDir()
	t.Setenv("XDG_CACHE_HOME", cacheDir)

	c := CacheConfig{Enabled: true, TTLDays: 2}
	if want := filepath.Join(cacheDir, "finbuddy", "advice.db"); c.DBPath() != want {
		t.Fatalf("DBPath = %q, want %q", c.DBPath(), want)
	}
	if c.TTL() != 48*time.Hour {
		t.Fatalf("TTL = %v", c.TTL())
	}
	c.Path = "/tmp/x.db"
	if c.DBPath() != "/tmp/x.db" {
		t.Fatalf("explicit path ignored: %q", c.DBPath())
	}
}

func TestMaskAPIKey(t *testing.T) {
	tests := []struct {
		key  string
		want string
	}{
		{"sk-ant-api03-abcdefghijkl", "sk-ant-a...ijkl"},
		{"short-key", "shor..."},
		{"abc", "****"},
	}
	for _, tt := range tests {
		if got := MaskAPIKey(tt.key); got != tt.want {
			t.Fatalf("MaskAPIKey(%q) = %q, want %q", tt.key, got, tt.want)
		}
	}
}
