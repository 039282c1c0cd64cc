package models

import (
	"fmt"

	"github.com/julianstephens/onething/internal/constants"
)

// DefaultSettings returns the settings used on a fresh store.
func DefaultSettings() Settings {
	return Settings{
		NotificationsEnabled: constants.DefaultNotificationsEnabled,
		NotificationHour:     constants.DefaultNotificationHour,
		NotificationMinute:   constants.DefaultNotificationMinute,
		OnboardingSeen:       constants.DefaultOnboardingSeen,
		Timezone:             constants.DefaultTimezone,
	}
}

// MapToSettings converts a map of key-value pairs to a Settings struct.
// Missing keys keep their default values.
func MapToSettings(data map[string]string) (Settings, error) {
	settings := DefaultSettings()

	for key, value := range data {
		switch key {
		case constants.SettingNotificationsEnabled:
			settings.NotificationsEnabled = value == "true"
		case constants.SettingNotificationHour:
			if _, err := fmt.Sscanf(value, "%d", &settings.NotificationHour); err != nil {
				return Settings{}, fmt.Errorf("parsing notification_hour: %w", err)
			}
		case constants.SettingNotificationMinute:
			if _, err := fmt.Sscanf(value, "%d", &settings.NotificationMinute); err != nil {
				return Settings{}, fmt.Errorf("parsing notification_minute: %w", err)
			}
		case constants.SettingOnboardingSeen:
			settings.OnboardingSeen = value == "true"
		case constants.SettingTimezone:
			settings.Timezone = value
		}
	}
	return settings, nil
}

// SettingsToMap converts a Settings struct to a map of key-value pairs.
func SettingsToMap(settings Settings) map[string]string {
	return map[string]string{
		constants.SettingNotificationsEnabled: fmt.Sprintf("%v", settings.NotificationsEnabled),
		constants.SettingNotificationHour:     fmt.Sprintf("%d", settings.NotificationHour),
		constants.SettingNotificationMinute:   fmt.Sprintf("%d", settings.NotificationMinute),
		constants.SettingOnboardingSeen:       fmt.Sprintf("%v", settings.OnboardingSeen),
		constants.SettingTimezone:             settings.Timezone,
	}
}

// ApplyDefaultSettings applies default values to missing settings.
func ApplyDefaultSettings(settings *Settings) {
	if settings.Timezone == "" {
		settings.Timezone = constants.DefaultTimezone
	}
}
