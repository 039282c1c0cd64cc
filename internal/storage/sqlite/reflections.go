package sqlite

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/julianstephens/onething/internal/models"
	"github.com/julianstephens/onething/internal/storage"
)

const reflectionColumns = `month_key, id, summary, generated_at, provider, model, entry_count`

func (s *Store) GetReflection(monthKey string) (models.MonthSummaryRecord, error) {
	if s.db == nil {
		return models.MonthSummaryRecord{}, storage.ErrNotLoaded
	}

	row := s.db.QueryRow(`SELECT `+reflectionColumns+` FROM reflections WHERE month_key = ?`, monthKey)
	rec, err := scanReflection(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.MonthSummaryRecord{}, storage.ErrNotFound
		}
		return models.MonthSummaryRecord{}, err
	}
	return rec, nil
}

// SaveReflection never overwrites: a second save for the same month returns storage.ErrAlreadyGenerated.
func (s *Store) SaveReflection(rec models.MonthSummaryRecord) error {
	if s.db == nil {
		return storage.ErrNotLoaded
	}

	result, err := s.db.Exec(`
		INSERT INTO reflections (`+reflectionColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(month_key) DO NOTHING`,
		reflectionArgs(rec)...)
	if err != nil {
		return fmt.Errorf("failed to save reflection for %s: %w", rec.MonthKey, err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return storage.ErrAlreadyGenerated
	}

	return nil
}

func (s *Store) ReplaceReflection(rec models.MonthSummaryRecord) error {
	if s.db == nil {
		return storage.ErrNotLoaded
	}

	_, err := s.db.Exec(`
		INSERT INTO reflections (`+reflectionColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(month_key) DO UPDATE SET
			id = excluded.id,
			summary = excluded.summary,
			generated_at = excluded.generated_at,
			provider = excluded.provider,
			model = excluded.model,
			entry_count = excluded.entry_count`,
		reflectionArgs(rec)...)
	if err != nil {
		return fmt.Errorf("failed to replace reflection for %s: %w", rec.MonthKey, err)
	}

	return nil
}

func (s *Store) HasReflection(monthKey string) (bool, error) {
	if s.db == nil {
		return false, storage.ErrNotLoaded
	}

	var count int
	if err := s.db.QueryRow("SELECT count(*) FROM reflections WHERE month_key = ?", monthKey).Scan(&count); err != nil {
		return false, err
	}
	return count > 0, nil
}

func (s *Store) GetAllReflections() ([]models.MonthSummaryRecord, error) {
	if s.db == nil {
		return nil, storage.ErrNotLoaded
	}

	rows, err := s.db.Query(`SELECT ` + reflectionColumns + ` FROM reflections ORDER BY month_key DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []models.MonthSummaryRecord
	for rows.Next() {
		rec, err := scanReflection(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}

	return records, rows.Err()
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanReflection(row scanner) (models.MonthSummaryRecord, error) {
	var rec models.MonthSummaryRecord
	var generatedAt string

	if err := row.Scan(&rec.MonthKey, &rec.ID, &rec.Summary, &generatedAt, &rec.Provider, &rec.Model, &rec.EntryCount); err != nil {
		return models.MonthSummaryRecord{}, err
	}

	t, err := time.Parse(time.RFC3339Nano, generatedAt)
	if err != nil {
		return models.MonthSummaryRecord{}, fmt.Errorf("failed to parse generated_at for reflection %s: %w", rec.MonthKey, err)
	}
	rec.GeneratedAt = t

	return rec, nil
}

func reflectionArgs(rec models.MonthSummaryRecord) []interface{} {
	return []interface{}{
		rec.MonthKey, rec.ID, rec.Summary, rec.GeneratedAt.UTC().Format(time.RFC3339Nano),
		rec.Provider, rec.Model, rec.EntryCount,
	}
}
