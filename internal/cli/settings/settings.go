package settings

import (
	"fmt"
	"time"

	"github.com/julianstephens/onething/internal/cli"
	"github.com/julianstephens/onething/internal/constants"
	"github.com/julianstephens/onething/internal/validation"
)

type SettingsCmd struct {
	List bool `help:"List current settings."`

	NotificationsEnabled *bool   `help:"Enable or disable the daily reminder."`
	NotificationTime     *string `help:"Reminder time (HH:MM)."`
	NotificationHour     *int    `help:"Reminder hour (0-23)."`
	NotificationMinute   *int    `help:"Reminder minute (0-59)."`
	Timezone             *string `help:"IANA timezone name, or Local."`
	OnboardingSeen       *bool   `help:"Mark the introduction as seen."`
}

func (c *SettingsCmd) Run(ctx *cli.Context) error {
	settings, err := ctx.Store.GetSettings()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	if c.List {
		fmt.Println("Current Settings:")
		fmt.Printf("  Timezone:              %s\n", settings.Timezone)
		fmt.Printf("  Onboarding Seen:       %v\n", settings.OnboardingSeen)
		fmt.Println("\nNotification Settings:")
		fmt.Printf("  Notifications Enabled: %v\n", settings.NotificationsEnabled)
		fmt.Printf("  Notification Time:     %02d:%02d\n", settings.NotificationHour, settings.NotificationMinute)
		return nil
	}

	updated := false
	if c.NotificationsEnabled != nil {
		settings.NotificationsEnabled = *c.NotificationsEnabled
		updated = true
	}
	if c.NotificationTime != nil {
		if err := validation.ValidateTime(*c.NotificationTime); err != nil {
			return err
		}
		t, _ := time.Parse(constants.TimeFormat, *c.NotificationTime)
		settings.NotificationHour = t.Hour()
		settings.NotificationMinute = t.Minute()
		updated = true
	}
	if c.NotificationHour != nil {
		if err := validation.ValidateHour(*c.NotificationHour); err != nil {
			return err
		}
		settings.NotificationHour = *c.NotificationHour
		updated = true
	}
	if c.NotificationMinute != nil {
		if err := validation.ValidateMinute(*c.NotificationMinute); err != nil {
			return err
		}
		settings.NotificationMinute = *c.NotificationMinute
		updated = true
	}
	if c.Timezone != nil {
		if err := validation.ValidateTimezone(*c.Timezone); err != nil {
			return err
		}
		settings.Timezone = *c.Timezone
		updated = true
	}
	if c.OnboardingSeen != nil {
		settings.OnboardingSeen = *c.OnboardingSeen
		updated = true
	}

	if updated {
		if err := ctx.Store.SaveSettings(settings); err != nil {
			return fmt.Errorf("failed to save settings: %w", err)
		}
		ctx.Settings = settings
		fmt.Println("Settings updated successfully.")
	} else {
		fmt.Println("No changes specified. Use --list to view settings or flags to update them.")
	}

	return nil
}
