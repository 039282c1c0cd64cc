package models

import "testing"

func TestSettingsMapRoundTrip(t *testing.T) {
	settings := Settings{
		NotificationsEnabled: true,
		NotificationHour:     21,
		NotificationMinute:   30,
		OnboardingSeen:       true,
		Timezone:             "Europe/London",
	}

	got, err := MapToSettings(SettingsToMap(settings))
	if err != nil {
		t.Fatalf("MapToSettings() failed: %v", err)
	}
	if got != settings {
		t.Errorf("MapToSettings(SettingsToMap()) = %+v, want %+v", got, settings)
	}
}

func TestMapToSettingsDefaults(t *testing.T) {
	got, err := MapToSettings(map[string]string{})
	if err != nil {
		t.Fatalf("MapToSettings() failed: %v", err)
	}
	if got != DefaultSettings() {
		t.Errorf("MapToSettings(empty) = %+v, want defaults %+v", got, DefaultSettings())
	}
}

func TestMapToSettingsInvalidHour(t *testing.T) {
	_, err := MapToSettings(map[string]string{"notification_hour": "nine"})
	if err == nil {
		t.Error("expected error for non-numeric notification_hour")
	}
}
