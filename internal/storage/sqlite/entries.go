package sqlite

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/julianstephens/onething/internal/logger"
	"github.com/julianstephens/onething/internal/models"
	"github.com/julianstephens/onething/internal/storage"
)

// PutEntry inserts the entry or replaces every field of the existing entry for the same date.
func (s *Store) PutEntry(entry models.Entry) error {
	if s.db == nil {
		return storage.ErrNotLoaded
	}

	now := time.Now().UTC().Format(time.RFC3339)
	_, err := s.db.Exec(`
		INSERT INTO entries (date, question, answer, mood, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(date) DO UPDATE SET
			question = excluded.question,
			answer = excluded.answer,
			mood = excluded.mood,
			updated_at = excluded.updated_at`,
		entry.Date, entry.Question, entry.Answer, string(entry.Mood), now, now)
	if err != nil {
		return fmt.Errorf("failed to save entry for %s: %w", entry.Date, err)
	}

	return nil
}

func (s *Store) GetAllEntries() []models.Entry {
	if s.db == nil {
		logger.Error("Reading entries from unloaded store", "path", s.path)
		return []models.Entry{}
	}

	entries, err := s.queryEntries()
	if err != nil {
		logger.Error("Failed to read entries, treating store as empty", "path", s.path, "error", err)
		return []models.Entry{}
	}
	return entries
}

func (s *Store) queryEntries() ([]models.Entry, error) {
	rows, err := s.db.Query(`
		SELECT date, question, answer, mood
		FROM entries
		ORDER BY date DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := []models.Entry{}
	for rows.Next() {
		var e models.Entry
		var mood string
		if err := rows.Scan(&e.Date, &e.Question, &e.Answer, &mood); err != nil {
			return nil, err
		}
		e.Mood = models.Mood(mood)
		entries = append(entries, e)
	}

	return entries, rows.Err()
}

func (s *Store) GetEntry(date string) (models.Entry, error) {
	if s.db == nil {
		return models.Entry{}, storage.ErrNotLoaded
	}

	row := s.db.QueryRow(`
		SELECT date, question, answer, mood
		FROM entries WHERE date = ?`, date)

	var e models.Entry
	var mood string
	if err := row.Scan(&e.Date, &e.Question, &e.Answer, &mood); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Entry{}, storage.ErrNotFound
		}
		return models.Entry{}, err
	}
	e.Mood = models.Mood(mood)

	return e, nil
}
