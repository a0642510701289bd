// Package config loads and saves the finbuddy TOML configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

// Environment variables that override the file.
const (
	EnvAPIKey   = "ANTHROPIC_API_KEY"
	EnvModel    = "FINBUDDY_LLM_MODEL"
	EnvLogLevel = "FINBUDDY_LOG_LEVEL"
)

// Config holds all finbuddy configuration.
type Config struct {
	General    GeneralConfig    `toml:"general"`
	LLM        LLMConfig        `toml:"llm"`
	Server     ServerConfig     `toml:"server"`
	Cache      CacheConfig      `toml:"cache"`
	Appearance AppearanceConfig `toml:"appearance"`
}

// GeneralConfig holds general preferences.
type GeneralConfig struct {
	Currency  string `toml:"currency"`
	LogLevel  string `toml:"log_level"`
	LogFormat string `toml:"log_format"`
}

// LLMConfig holds Anthropic Messages API settings.
type LLMConfig struct {
	APIKey      string  `toml:"api_key,omitempty"`
	BaseURL     string  `toml:"base_url,omitempty"`
	Model       string  `toml:"model"`
	MaxTokens   int     `toml:"max_tokens"`
	TimeoutSec  int     `toml:"timeout_sec"`
	Temperature float64 `toml:"temperature"`
}

// Timeout returns the request timeout as a duration.
func (c LLMConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSec) * time.Second
}

// ServerConfig holds HTTP API settings.
type ServerConfig struct {
	Addr         string `toml:"addr"`
	EventsBuffer int    `toml:"events_buffer"`
}

// CacheConfig holds advice cache settings. An empty path means the default
// location under the XDG cache directory.
type CacheConfig struct {
	Enabled bool   `toml:"enabled"`
	Path    string `toml:"path,omitempty"`
	TTLDays int    `toml:"ttl_days"`
}

// TTL returns the cache entry lifetime. Zero means entries never expire.
func (c CacheConfig) TTL() time.Duration {
	return time.Duration(c.TTLDays) * 24 * time.Hour
}

// DBPath returns the configured or default cache database path.
func (c CacheConfig) DBPath() string {
	if c.Path != "" {
		return c.Path
	}
	return filepath.Join(CacheDir(), "advice.db")
}

// AppearanceConfig holds theme settings.
type AppearanceConfig struct {
	Theme string `toml:"theme"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		General: GeneralConfig{
			Currency:  "$",
			LogLevel:  "warn",
			LogFormat: "text",
		},
		LLM: LLMConfig{
			Model:       "claude-3-5-haiku-latest",
			MaxTokens:   1024,
			TimeoutSec:  30,
			Temperature: 0.7,
		},
		Server: ServerConfig{
			Addr:         "127.0.0.1:8787",
			EventsBuffer: 200,
		},
		Cache: CacheConfig{
			Enabled: true,
			TTLDays: 30,
		},
		Appearance: AppearanceConfig{
			Theme: "flexoki-dark",
		},
	}
}

// ConfigDir returns the XDG-compliant config directory.
func ConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "finbuddy")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "finbuddy")
}

// CacheDir returns the XDG-compliant cache directory.
func CacheDir() string {
	if xdg := os.Getenv("XDG_CACHE_HOME"); xdg != "" {
		return filepath.Join(xdg, "finbuddy")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".cache", "finbuddy")
}

// Path returns the full path to the config file.
func Path() string {
	return filepath.Join(ConfigDir(), "config.toml")
}

// Load reads the config file, returning defaults if it doesn't exist.
// Environment overrides are not applied; see Effective.
func Load() (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(Path())
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config: %w", err)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config: %w", err)
	}

	return cfg, nil
}

// Save writes the config to disk. The file may hold an API key, so it is
// created owner-only.
func Save(cfg Config) error {
	dir := ConfigDir()
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}

	f, err := os.OpenFile(Path(), os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return fmt.Errorf("creating config file: %w", err)
	}
	defer f.Close()

	enc := toml.NewEncoder(f)
	return enc.Encode(cfg)
}

// Exists returns true if a config file exists on disk.
func Exists() bool {
	_, err := os.Stat(Path())
	return err == nil
}

// LoadEnvFile reads a .env file from the working directory into the
// process environment. A missing file is not an error.
func LoadEnvFile() {
	_ = godotenv.Load()
}

// Effective returns cfg with environment overrides applied.
func Effective(cfg Config) Config {
	if key := strings.TrimSpace(os.Getenv(EnvAPIKey)); key != "" {
		cfg.LLM.APIKey = key
	}
	if model := strings.TrimSpace(os.Getenv(EnvModel)); model != "" {
		cfg.LLM.Model = model
	}
	if level := strings.TrimSpace(os.Getenv(EnvLogLevel)); level != "" {
		cfg.General.LogLevel = level
	}
	return cfg
}

// KeySource names where the effective API key came from.
func KeySource(cfg Config) string {
	switch {
	case os.Getenv(EnvAPIKey) != "":
		return "env " + EnvAPIKey
	case cfg.LLM.APIKey != "":
		return "config file"
	default:
		return "not configured"
	}
}

// MaskAPIKey hides all but a short prefix and suffix of key.
func MaskAPIKey(key string) string {
	if len(key) > 16 {
		return key[:8] + "..." + key[len(key)-4:]
	}
	if len(key) > 4 {
		return key[:4] + "..."
	}
	return "****"
}

// Describe renders the effective settings as label/value pairs for display.
func Describe(cfg Config) [][2]string {
	key := "not configured"
	if cfg.LLM.APIKey != "" {
		key = MaskAPIKey(cfg.LLM.APIKey)
	}
	cache := "disabled"
	if cfg.Cache.Enabled {
		cache = cfg.Cache.DBPath()
	}
	return [][2]string{
		{"Currency", cfg.General.Currency},
		{"Log level", cfg.General.LogLevel},
		{"Log format", cfg.General.LogFormat},
		{"API key", key},
		{"Model", cfg.LLM.Model},
		{"Max tokens", strconv.Itoa(cfg.LLM.MaxTokens)},
		{"Timeout", cfg.LLM.Timeout().String()},
		{"Server addr", cfg.Server.Addr},
		{"Cache", cache},
		{"Theme", cfg.Appearance.Theme},
	}
}
