package storage

import (
	"errors"

	"github.com/julianstephens/onething/internal/models"
)

var (
	// ErrNotFound is returned when a requested entry or reflection does not exist
	ErrNotFound = errors.New("not found")
	// ErrAlreadyGenerated is returned when a reflection is saved for a month that already has one
	ErrAlreadyGenerated = errors.New("reflection already generated for this month")
	// ErrNotLoaded is returned when a store is used before Init or Load
	ErrNotLoaded = errors.New("storage not loaded")
)

// EntryStore persists one Entry per calendar date.
type EntryStore interface {
	// PutEntry inserts or replaces the entry for entry.Date in a single atomic write.
	PutEntry(models.Entry) error
	// GetAllEntries returns every entry, most recent first. An unreadable store
	// is logged and reported as empty.
	GetAllEntries() []models.Entry
	// GetEntry returns ErrNotFound when no entry exists for date.
	GetEntry(date string) (models.Entry, error)
}

// ReflectionCache persists at most one MonthSummaryRecord per month key.
type ReflectionCache interface {
	// GetReflection returns ErrNotFound when the month has no record.
	GetReflection(monthKey string) (models.MonthSummaryRecord, error)
	// SaveReflection stores a new record and returns ErrAlreadyGenerated if the month already has one.
	SaveReflection(models.MonthSummaryRecord) error
	// ReplaceReflection stores a record, overwriting any existing one for the month.
	ReplaceReflection(models.MonthSummaryRecord) error
	HasReflection(monthKey string) (bool, error)
	GetAllReflections() ([]models.MonthSummaryRecord, error)
}

type Provider interface {
	// Lifecycle
	Init() error
	Load() error
	Close() error

	// Settings
	GetSettings() (models.Settings, error)
	SaveSettings(models.Settings) error

	EntryStore
	ReflectionCache

	// Utils
	GetConfigPath() string
}
