// Package config loads onething configuration from a YAML file, a .env file
// and ONETHING_ environment variables.
package config

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/rawbytes"
	"github.com/knadh/koanf/v2"

	"github.com/julianstephens/onething/internal/constants"
)

const (
	maxConfigFileSize = 1024 * 1024 // 1MB
	envPrefix         = "ONETHING_"
)

type Config struct {
	Storage   StorageConfig   `koanf:"storage"`
	Synthesis SynthesisConfig `koanf:"synthesis"`
	Unlock    UnlockConfig    `koanf:"unlock"`
	Log       LogConfig       `koanf:"log"`
}

type StorageConfig struct {
	// Path to the database; a .json suffix selects the JSON document backend
	Path string `koanf:"path"`
}

type SynthesisConfig struct {
	Provider          string        `koanf:"provider"`
	Model             string        `koanf:"model"`
	BaseURL           string        `koanf:"base_url"`
	Timeout           time.Duration `koanf:"timeout"`
	AllowRegeneration bool          `koanf:"allow_regeneration"`
	RequestsPerMinute int           `koanf:"requests_per_minute"`
}

type UnlockConfig struct {
	MinEntries    int `koanf:"min_entries"`
	MinCharacters int `koanf:"min_characters"`
}

type LogConfig struct {
	Debug bool `koanf:"debug"`
}

// Default returns the configuration used when nothing is set.
func Default() *Config {
	return &Config{
		Storage: StorageConfig{
			Path: constants.DefaultDBPath,
		},
		Synthesis: SynthesisConfig{
			Provider:          constants.DefaultProvider,
			Timeout:           constants.DefaultSynthesisTimeout,
			RequestsPerMinute: constants.DefaultRequestsPerMinute,
		},
		Unlock: UnlockConfig{
			MinEntries:    constants.DefaultMinEntries,
			MinCharacters: constants.DefaultMinCharacters,
		},
	}
}

// Load reads configuration with precedence (highest first): ONETHING_ environment
// variables, the YAML file at configPath, built-in defaults. A .env file in the
// working directory is loaded into the environment first. A missing config
// file is not an error.
func Load(configPath string) (*Config, error) {
	_ = godotenv.Load()

	k := koanf.New(".")

	if configPath == "" {
		configPath = constants.DefaultConfigFile
	}
	configPath, err := ExpandPath(configPath)
	if err != nil {
		return nil, err
	}

	if err := loadFile(k, configPath); err != nil {
		return nil, err
	}

	// ONETHING_SYNTHESIS_ALLOW_REGENERATION -> synthesis.allow_regeneration
	if err := k.Load(env.Provider(envPrefix, ".", func(s string) string {
		lower := strings.ToLower(strings.TrimPrefix(s, envPrefix))
		parts := strings.SplitN(lower, "_", 2)
		if len(parts) == 1 {
			return lower
		}
		return parts[0] + "." + parts[1]
	}), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	cfg := Default()
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	applyDefaults(cfg)

	if cfg.Storage.Path, err = ExpandPath(cfg.Storage.Path); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

func loadFile(k *koanf.Koanf, path string) error {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to open config file: %w", err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return fmt.Errorf("failed to stat config file: %w", err)
	}
	if info.IsDir() {
		return fmt.Errorf("config path %s is a directory", path)
	}
	if info.Size() > maxConfigFileSize {
		return fmt.Errorf("config file too large: %d bytes (max %d)", info.Size(), maxConfigFileSize)
	}

	content, err := io.ReadAll(f)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	if err := k.Load(rawbytes.Provider(content), yaml.Parser()); err != nil {
		return fmt.Errorf("failed to load config file %s: %w", path, err)
	}
	return nil
}

func applyDefaults(cfg *Config) {
	defaults := Default()

	if cfg.Storage.Path == "" {
		cfg.Storage.Path = defaults.Storage.Path
	}
	if cfg.Synthesis.Provider == "" {
		cfg.Synthesis.Provider = defaults.Synthesis.Provider
	}
	cfg.Synthesis.Provider = strings.ToLower(cfg.Synthesis.Provider)
	if cfg.Synthesis.Timeout == 0 {
		cfg.Synthesis.Timeout = defaults.Synthesis.Timeout
	}
	if cfg.Unlock.MinEntries == 0 {
		cfg.Unlock.MinEntries = defaults.Unlock.MinEntries
	}
	if cfg.Unlock.MinCharacters == 0 {
		cfg.Unlock.MinCharacters = defaults.Unlock.MinCharacters
	}
}

// Validate checks that the configuration can be used.
func (c *Config) Validate() error {
	switch c.Synthesis.Provider {
	case constants.ProviderGemini, constants.ProviderAnthropic:
	case constants.ProviderRemote:
		if c.Synthesis.BaseURL == "" {
			return fmt.Errorf("synthesis.base_url is required for the remote provider")
		}
	default:
		return fmt.Errorf("unknown synthesis.provider %q (expected gemini, anthropic or remote)", c.Synthesis.Provider)
	}

	if c.Synthesis.Timeout < 0 {
		return fmt.Errorf("synthesis.timeout must not be negative")
	}
	if c.Synthesis.RequestsPerMinute < 0 {
		return fmt.Errorf("synthesis.requests_per_minute must not be negative")
	}
	if c.Unlock.MinEntries < 1 {
		return fmt.Errorf("unlock.min_entries must be at least 1")
	}
	if c.Unlock.MinCharacters < 1 {
		return fmt.Errorf("unlock.min_characters must be at least 1")
	}
	return nil
}

// UsesJSONBackend reports whether the storage path selects the JSON document backend.
func (c *Config) UsesJSONBackend() bool {
	return strings.EqualFold(filepath.Ext(c.Storage.Path), ".json")
}

// ConfigDir returns the directory holding the database, logs and backups.
func (c *Config) ConfigDir() string {
	return filepath.Dir(c.Storage.Path)
}

// ExpandPath replaces a leading ~ with the user's home directory.
func ExpandPath(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~")), nil
}

// APIKeyEnvVars lists the environment variables consulted for provider's API key.
func APIKeyEnvVars(provider string) []string {
	switch provider {
	case constants.ProviderGemini:
		return []string{"GEMINI_API_KEY", "ONETHING_API_KEY"}
	case constants.ProviderAnthropic:
		return []string{"ANTHROPIC_API_KEY", "ONETHING_API_KEY"}
	default:
		return []string{"ONETHING_API_KEY"}
	}
}

// APIKeyFromEnv returns the first non-empty API key variable for provider.
func APIKeyFromEnv(provider string) string {
	for _, name := range APIKeyEnvVars(provider) {
		if v := strings.TrimSpace(os.Getenv(name)); v != "" {
			return v
		}
	}
	return ""
}
