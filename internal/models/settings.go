package models

// Settings represents user preferences read once at startup
type Settings struct {
	NotificationsEnabled bool   `json:"notifications_enabled"` // whether the daily reminder is enabled
	NotificationHour     int    `json:"notification_hour"`     // reminder hour, 0-23
	NotificationMinute   int    `json:"notification_minute"`   // reminder minute, 0-59
	OnboardingSeen       bool   `json:"onboarding_seen"`       // whether the intro has been shown
	Timezone             string `json:"timezone"`              // IANA timezone name or "Local"
}
