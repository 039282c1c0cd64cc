package constants

const (
	// Settings keys
	SettingNotificationsEnabled = "notifications_enabled"
	SettingNotificationHour     = "notification_hour"
	SettingNotificationMinute   = "notification_minute"
	SettingOnboardingSeen       = "onboarding_seen"
	SettingTimezone             = "timezone"

	// Default Settings Values
	DefaultNotificationsEnabled = false
	DefaultNotificationHour     = 9
	DefaultNotificationMinute   = 0
	DefaultOnboardingSeen       = false
	DefaultTimezone             = "Local" // Use system local timezone by default
)
