package constants

import "time"

// SessionState represents the current view of the TUI application
type SessionState int

const (
	AppName            = "onething"
	DefaultKeyringUser = "text-generation-api-key"
	DefaultDBPath      = "~/.config/onething/onething.db"
	DefaultConfigFile  = "~/.config/onething/config.yaml"
	Version            = "v0.3.0"

	// Unlock thresholds for monthly synthesis
	DefaultMinEntries    = 3
	DefaultMinCharacters = 300

	// Backup constants
	MaxBackups       = 14
	BackupDirName    = "backups"
	BackupFilePrefix = "onething-"
	BackupFileSuffix = ".db"

	// JSON document keys
	EntriesKey     = "@onething_entries"
	ReflectionsKey = "@onething_reflections"
	SettingsKey    = "@onething_settings"

	// Synthesis providers
	ProviderGemini    = "gemini"
	ProviderAnthropic = "anthropic"
	ProviderRemote    = "remote"

	DefaultProvider          = ProviderGemini
	DefaultSynthesisTimeout  = 60 * time.Second
	DefaultRequestsPerMinute = 6
)

// Session States
const (
	StateToday SessionState = iota
	StateHistory
	StateMonth
	StateAnswering
)
