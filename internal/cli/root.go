package cli

import (
	"fmt"
	"time"

	"github.com/julianstephens/onething/internal/backup"
	"github.com/julianstephens/onething/internal/config"
	"github.com/julianstephens/onething/internal/constants"
	"github.com/julianstephens/onething/internal/keyring"
	"github.com/julianstephens/onething/internal/logger"
	"github.com/julianstephens/onething/internal/models"
	"github.com/julianstephens/onething/internal/monthly"
	"github.com/julianstephens/onething/internal/storage"
	"github.com/julianstephens/onething/internal/summarizer"
	"github.com/julianstephens/onething/internal/synthesis"
	"github.com/julianstephens/onething/internal/utils"
)

type Context struct {
	Store        storage.Provider
	Orchestrator *synthesis.Orchestrator
	Config       *config.Config
	// Settings is read once at startup; commands that change settings update it in place
	Settings models.Settings
}

// PerformAutomaticBackup creates an automatic backup and silently handles errors
func (c *Context) PerformAutomaticBackup() {
	mgr := backup.NewManager(c.Store.GetConfigPath())
	_, err := mgr.CreateBackup()
	if err != nil {
		// Log warning but don't interrupt user workflow
		logger.Warn("Automatic backup failed", "error", err)
	}
}

// LoadSettings reads the settings record. An unreadable record is logged and
// replaced by the defaults so a damaged journal never blocks startup.
func (c *Context) LoadSettings() {
	settings, err := c.Store.GetSettings()
	if err != nil {
		logger.Warn("Failed to read settings, using defaults", "error", err)
		settings = models.DefaultSettings()
	}
	c.Settings = settings
}

// Now returns the current time in the user's configured timezone.
func (c *Context) Now() (time.Time, error) {
	return utils.NowInTimezone(c.Settings.Timezone)
}

// Today returns today's date (YYYY-MM-DD) in the user's configured timezone.
func (c *Context) Today() (string, error) {
	return utils.GetTodayFromSettings(c.Settings)
}

// ResolveMonth turns an optional YYYY-MM argument into a month anchor.
// An empty argument selects the current month. Future months are refused.
func (c *Context) ResolveMonth(arg string) (time.Time, error) {
	now, err := c.Now()
	if err != nil {
		return time.Time{}, err
	}
	if arg == "" {
		return now, nil
	}

	month, err := monthly.ParseMonthKey(arg, now.Location())
	if err != nil {
		return time.Time{}, err
	}
	if utils.IsFutureMonth(month, now) {
		return time.Time{}, fmt.Errorf("cannot select a future month: %s", arg)
	}
	return month, nil
}

// ResolveAPIKey looks up the API key for provider in the OS keyring and falls
// back to the provider's environment variables. An empty string means no key.
func ResolveAPIKey(provider string) string {
	key, err := keyring.GetAPIKey(provider)
	if err == nil && key != "" {
		return key
	}
	if err != nil && err != keyring.ErrNotFound {
		logger.Debug("Keyring lookup failed, falling back to environment", "provider", provider, "error", err)
	}
	return config.APIKeyFromEnv(provider)
}

// NewOrchestrator wires the configured summarizer to store. Replacing a cached
// reflection snapshots the database first.
func NewOrchestrator(cfg *config.Config, store storage.Provider) (*synthesis.Orchestrator, error) {
	model := cfg.Synthesis.Model
	if model == "" {
		model = summarizer.DefaultModel(cfg.Synthesis.Provider)
	}

	s, err := summarizer.New(summarizer.Config{
		Provider:          cfg.Synthesis.Provider,
		Model:             model,
		BaseURL:           cfg.Synthesis.BaseURL,
		APIKey:            ResolveAPIKey(cfg.Synthesis.Provider),
		Timeout:           cfg.Synthesis.Timeout,
		RequestsPerMinute: cfg.Synthesis.RequestsPerMinute,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to configure summarizer: %w", err)
	}

	return synthesis.New(store, s, synthesis.Config{
		AllowRegeneration: cfg.Synthesis.AllowRegeneration,
		Thresholds: monthly.Thresholds{
			MinEntries:    cfg.Unlock.MinEntries,
			MinCharacters: cfg.Unlock.MinCharacters,
		},
		Provider: cfg.Synthesis.Provider,
		Model:    model,
		Timeout:  cfg.Synthesis.Timeout,
		BeforeReplace: func(monthKey string) error {
			path, err := backup.NewManager(store.GetConfigPath()).CreateBackup()
			if err != nil {
				return fmt.Errorf("backup before regeneration failed: %w", err)
			}
			logger.Info("Backup taken before regeneration", "month", monthKey, "path", path)
			return nil
		},
	}), nil
}

// FormatMood renders a mood for display.
func FormatMood(m models.Mood) string {
	if m == "" || m == models.MoodNone {
		return "-"
	}
	return string(m)
}

// ProviderLabel returns the configured provider name, defaulting when unset.
func ProviderLabel(cfg *config.Config) string {
	if cfg == nil || cfg.Synthesis.Provider == "" {
		return constants.DefaultProvider
	}
	return cfg.Synthesis.Provider
}
