package jsonfile

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/julianstephens/onething/internal/logger"
	"github.com/julianstephens/onething/internal/models"
	"github.com/julianstephens/onething/internal/storage"
)

var _ storage.Provider = (*Store)(nil)

// document is the on-disk layout. Entries are kept date-descending.
type document struct {
	Version     int                                  `json:"version"`
	Entries     []models.Entry                       `json:"@onething_entries"`
	Reflections map[string]models.MonthSummaryRecord `json:"@onething_reflections"`
	Settings    map[string]string                    `json:"@onething_settings"`
}

// Store keeps every record in a single JSON document. Each operation reads
// the file and every mutation rewrites it through a temp file and rename.
type Store struct {
	path   string
	loaded bool
	mu     sync.Mutex
}

func NewStore(path string) *Store {
	return &Store{
		path: path,
	}
}

func newDocument() *document {
	return &document{
		Version:     1,
		Entries:     []models.Entry{},
		Reflections: make(map[string]models.MonthSummaryRecord),
		Settings:    models.SettingsToMap(models.DefaultSettings()),
	}
}

func (s *Store) Init() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if _, err := os.Stat(s.path); err == nil {
		if _, err := s.read(); err != nil {
			return fmt.Errorf("existing storage at %s is unreadable: %w", s.path, err)
		}
		s.loaded = true
		return nil
	}

	if err := s.write(newDocument()); err != nil {
		return err
	}
	s.loaded = true
	return nil
}

func (s *Store) Load() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := os.Stat(s.path); err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("storage not initialized, run 'onething init' first")
		}
		return fmt.Errorf("failed to read storage: %w", err)
	}
	s.loaded = true
	return nil
}

func (s *Store) Close() error {
	s.mu.Lock()
	s.loaded = false
	s.mu.Unlock()
	return nil
}

func (s *Store) GetConfigPath() string {
	return s.path
}

func (s *Store) read() (*document, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("failed to read storage: %w", err)
	}

	doc := &document{}
	if err := json.Unmarshal(data, doc); err != nil {
		return nil, fmt.Errorf("failed to parse storage: %w", err)
	}

	if doc.Entries == nil {
		doc.Entries = []models.Entry{}
	}
	if doc.Reflections == nil {
		doc.Reflections = make(map[string]models.MonthSummaryRecord)
	}
	if doc.Settings == nil {
		doc.Settings = make(map[string]string)
	}
	return doc, nil
}

func (s *Store) write(doc *document) error {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize storage: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), filepath.Base(s.path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write storage: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to sync storage: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}
	if err := os.Chmod(tmpPath, 0600); err != nil {
		return fmt.Errorf("failed to set storage permissions: %w", err)
	}

	if err := os.Rename(tmpPath, s.path); err != nil {
		return fmt.Errorf("failed to replace storage: %w", err)
	}
	return nil
}

// update reads the document, applies fn and writes the result. An unreadable
// document fails the update instead of being overwritten.
func (s *Store) update(fn func(*document) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.loaded {
		return storage.ErrNotLoaded
	}

	doc, err := s.read()
	if err != nil {
		return err
	}
	if err := fn(doc); err != nil {
		return err
	}
	return s.write(doc)
}

// view reads the document under the lock.
func (s *Store) view() (*document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.loaded {
		return nil, storage.ErrNotLoaded
	}
	return s.read()
}

func (s *Store) GetSettings() (models.Settings, error) {
	doc, err := s.view()
	if err != nil {
		return models.Settings{}, err
	}
	return models.MapToSettings(doc.Settings)
}

func (s *Store) SaveSettings(settings models.Settings) error {
	return s.update(func(doc *document) error {
		doc.Settings = models.SettingsToMap(settings)
		return nil
	})
}

// PutEntry replaces any entry with the same date and keeps the array date-descending.
func (s *Store) PutEntry(entry models.Entry) error {
	err := s.update(func(doc *document) error {
		filtered := doc.Entries[:0]
		for _, e := range doc.Entries {
			if e.Date != entry.Date {
				filtered = append(filtered, e)
			}
		}
		filtered = append(filtered, entry)
		sort.SliceStable(filtered, func(i, j int) bool {
			return filtered[i].Date > filtered[j].Date
		})
		doc.Entries = filtered
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to save entry for %s: %w", entry.Date, err)
	}
	return nil
}

func (s *Store) GetAllEntries() []models.Entry {
	doc, err := s.view()
	if err != nil {
		logger.Error("Failed to read entries", "path", s.path, "error", err)
		return []models.Entry{}
	}
	return doc.Entries
}

func (s *Store) GetEntry(date string) (models.Entry, error) {
	doc, err := s.view()
	if err != nil {
		return models.Entry{}, err
	}
	for _, e := range doc.Entries {
		if e.Date == date {
			return e, nil
		}
	}
	return models.Entry{}, storage.ErrNotFound
}

func (s *Store) GetReflection(monthKey string) (models.MonthSummaryRecord, error) {
	doc, err := s.view()
	if err != nil {
		return models.MonthSummaryRecord{}, err
	}
	rec, ok := doc.Reflections[monthKey]
	if !ok {
		return models.MonthSummaryRecord{}, storage.ErrNotFound
	}
	return rec, nil
}

func (s *Store) SaveReflection(rec models.MonthSummaryRecord) error {
	err := s.update(func(doc *document) error {
		if _, exists := doc.Reflections[rec.MonthKey]; exists {
			return storage.ErrAlreadyGenerated
		}
		doc.Reflections[rec.MonthKey] = rec
		return nil
	})
	if err != nil && !errors.Is(err, storage.ErrAlreadyGenerated) {
		return fmt.Errorf("failed to save reflection for %s: %w", rec.MonthKey, err)
	}
	return err
}

func (s *Store) ReplaceReflection(rec models.MonthSummaryRecord) error {
	err := s.update(func(doc *document) error {
		doc.Reflections[rec.MonthKey] = rec
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to replace reflection for %s: %w", rec.MonthKey, err)
	}
	return nil
}

func (s *Store) HasReflection(monthKey string) (bool, error) {
	doc, err := s.view()
	if err != nil {
		return false, err
	}
	_, ok := doc.Reflections[monthKey]
	return ok, nil
}

func (s *Store) GetAllReflections() ([]models.MonthSummaryRecord, error) {
	doc, err := s.view()
	if err != nil {
		return nil, err
	}

	records := make([]models.MonthSummaryRecord, 0, len(doc.Reflections))
	for _, rec := range doc.Reflections {
		records = append(records, rec)
	}
	sort.Slice(records, func(i, j int) bool {
		return records[i].MonthKey > records[j].MonthKey
	})
	return records, nil
}
