package sqlite

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/julianstephens/onething/internal/models"
	"github.com/julianstephens/onething/internal/storage"
)

func setupTestStore(t *testing.T) *Store {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")

	store := NewStore(dbPath)
	if err := store.Init(); err != nil {
		t.Fatalf("failed to initialize test store: %v", err)
	}
	t.Cleanup(func() {
		if err := store.Close(); err != nil {
			t.Errorf("failed to close store: %v", err)
		}
	})

	return store
}

func answerOfLength(n int) string {
	return strings.Repeat("a", n)
}

func TestLoadUninitialized(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "missing.db"))
	err := store.Load()
	if err == nil {
		t.Fatal("expected error loading uninitialized store")
	}
	if !strings.Contains(err.Error(), "onething init") {
		t.Errorf("expected hint to run init, got: %v", err)
	}
}

func TestLoadAfterInit(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")

	store := NewStore(dbPath)
	if err := store.Init(); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	if err := store.PutEntry(models.Entry{Date: "2024-06-01", Question: "q", Answer: "a", Mood: models.MoodCalm}); err != nil {
		t.Fatalf("PutEntry failed: %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	reopened := NewStore(dbPath)
	if err := reopened.Load(); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	defer reopened.Close()

	if _, err := reopened.GetEntry("2024-06-01"); err != nil {
		t.Errorf("entry not durable across reopen: %v", err)
	}
}

func TestPutEntryReplacesSameDate(t *testing.T) {
	store := setupTestStore(t)

	first := models.Entry{Date: "2024-06-01", Question: "What surprised you?", Answer: "first answer", Mood: models.MoodHeavy}
	second := models.Entry{Date: "2024-06-01", Question: "What surprised you today?", Answer: "second answer", Mood: models.MoodNone}

	if err := store.PutEntry(first); err != nil {
		t.Fatalf("PutEntry(first) failed: %v", err)
	}
	if err := store.PutEntry(second); err != nil {
		t.Fatalf("PutEntry(second) failed: %v", err)
	}

	all := store.GetAllEntries()
	if len(all) != 1 {
		t.Fatalf("expected 1 entry after replacing, got %d", len(all))
	}
	if all[0] != second {
		t.Errorf("GetAllEntries()[0] = %+v, want %+v", all[0], second)
	}
}

func TestGetAllEntriesOrderedDescending(t *testing.T) {
	store := setupTestStore(t)

	for _, date := range []string{"2024-06-05", "2024-05-31", "2024-06-10", "2024-06-01"} {
		if err := store.PutEntry(models.Entry{Date: date, Question: "q", Answer: "a", Mood: models.MoodNeutral}); err != nil {
			t.Fatalf("PutEntry(%s) failed: %v", date, err)
		}
	}

	all := store.GetAllEntries()
	want := []string{"2024-06-10", "2024-06-05", "2024-06-01", "2024-05-31"}
	if len(all) != len(want) {
		t.Fatalf("expected %d entries, got %d", len(want), len(all))
	}
	for i, date := range want {
		if all[i].Date != date {
			t.Errorf("entry %d date = %s, want %s", i, all[i].Date, date)
		}
	}
}

func TestLastWriteWinsPerDate(t *testing.T) {
	store := setupTestStore(t)

	latest := make(map[string]models.Entry)
	dates := []string{"2024-06-01", "2024-06-02", "2024-06-01", "2024-06-03", "2024-06-02", "2024-06-01"}
	for i, date := range dates {
		e := models.Entry{Date: date, Question: "q", Answer: fmt.Sprintf("answer %d", i), Mood: models.MoodCalm}
		if err := store.PutEntry(e); err != nil {
			t.Fatalf("PutEntry failed: %v", err)
		}
		latest[date] = e
	}

	all := store.GetAllEntries()
	if len(all) != len(latest) {
		t.Fatalf("expected %d distinct entries, got %d", len(latest), len(all))
	}
	for _, e := range all {
		if e != latest[e.Date] {
			t.Errorf("entry for %s = %+v, want %+v", e.Date, e, latest[e.Date])
		}
	}
}

func TestGetEntryNotFound(t *testing.T) {
	store := setupTestStore(t)

	_, err := store.GetEntry("2024-06-01")
	if !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("GetEntry() error = %v, want ErrNotFound", err)
	}
}

func TestGetAllEntriesEmpty(t *testing.T) {
	store := setupTestStore(t)

	all := store.GetAllEntries()
	if all == nil || len(all) != 0 {
		t.Errorf("expected empty non-nil slice, got %#v", all)
	}
}

func TestGetAllEntriesCorruptStore(t *testing.T) {
	store := setupTestStore(t)

	if err := store.PutEntry(models.Entry{Date: "2024-06-01", Question: "q", Answer: "a", Mood: models.MoodCalm}); err != nil {
		t.Fatalf("PutEntry failed: %v", err)
	}
	if _, err := store.GetDB().Exec("DROP TABLE entries"); err != nil {
		t.Fatalf("failed to drop table: %v", err)
	}

	all := store.GetAllEntries()
	if len(all) != 0 {
		t.Errorf("expected empty result from unreadable store, got %d entries", len(all))
	}
}

func TestPutEntryFailureSurfaces(t *testing.T) {
	store := setupTestStore(t)

	if _, err := store.GetDB().Exec("DROP TABLE entries"); err != nil {
		t.Fatalf("failed to drop table: %v", err)
	}

	err := store.PutEntry(models.Entry{Date: "2024-06-01", Question: "q", Answer: "a", Mood: models.MoodCalm})
	if err == nil {
		t.Error("expected PutEntry to report a failed write")
	}
}

func TestPutEntryRejectsEmptyAnswer(t *testing.T) {
	store := setupTestStore(t)

	err := store.PutEntry(models.Entry{Date: "2024-06-01", Question: "q", Answer: "", Mood: models.MoodCalm})
	if err == nil {
		t.Error("expected schema to reject an empty answer")
	}
}

func TestReflectionSaveOnce(t *testing.T) {
	store := setupTestStore(t)

	rec := models.MonthSummaryRecord{
		ID:          "rec-1",
		MonthKey:    "2024-06",
		Summary:     "This month your answers often returned to rest.",
		GeneratedAt: time.Date(2024, 7, 1, 9, 30, 0, 0, time.UTC),
		Provider:    "gemini",
		Model:       "gemini-1.5-flash",
		EntryCount:  3,
	}

	has, err := store.HasReflection("2024-06")
	if err != nil {
		t.Fatalf("HasReflection failed: %v", err)
	}
	if has {
		t.Fatal("HasReflection() = true before save")
	}

	if err := store.SaveReflection(rec); err != nil {
		t.Fatalf("SaveReflection failed: %v", err)
	}

	got, err := store.GetReflection("2024-06")
	if err != nil {
		t.Fatalf("GetReflection failed: %v", err)
	}
	if got.ID != rec.ID || got.Summary != rec.Summary || !got.GeneratedAt.Equal(rec.GeneratedAt) {
		t.Errorf("GetReflection() = %+v, want %+v", got, rec)
	}
	if got.Provider != "gemini" || got.EntryCount != 3 {
		t.Errorf("audit fields not persisted: %+v", got)
	}

	dup := rec
	dup.ID = "rec-2"
	dup.Summary = "a different summary"
	if err := store.SaveReflection(dup); !errors.Is(err, storage.ErrAlreadyGenerated) {
		t.Errorf("second SaveReflection() error = %v, want ErrAlreadyGenerated", err)
	}

	got, err = store.GetReflection("2024-06")
	if err != nil {
		t.Fatalf("GetReflection failed: %v", err)
	}
	if got.Summary != rec.Summary {
		t.Errorf("existing reflection was overwritten: %q", got.Summary)
	}
}

func TestReplaceReflection(t *testing.T) {
	store := setupTestStore(t)

	rec := models.MonthSummaryRecord{ID: "rec-1", MonthKey: "2024-06", Summary: "old", GeneratedAt: time.Now()}
	if err := store.SaveReflection(rec); err != nil {
		t.Fatalf("SaveReflection failed: %v", err)
	}

	rec.ID = "rec-2"
	rec.Summary = "new"
	if err := store.ReplaceReflection(rec); err != nil {
		t.Fatalf("ReplaceReflection failed: %v", err)
	}

	got, err := store.GetReflection("2024-06")
	if err != nil {
		t.Fatalf("GetReflection failed: %v", err)
	}
	if got.Summary != "new" || got.ID != "rec-2" {
		t.Errorf("ReplaceReflection did not overwrite: %+v", got)
	}
}

func TestGetReflectionNotFound(t *testing.T) {
	store := setupTestStore(t)

	_, err := store.GetReflection("2024-06")
	if !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("GetReflection() error = %v, want ErrNotFound", err)
	}
}

func TestGetAllReflections(t *testing.T) {
	store := setupTestStore(t)

	for _, key := range []string{"2024-04", "2024-06", "2024-05"} {
		rec := models.MonthSummaryRecord{ID: key, MonthKey: key, Summary: "s", GeneratedAt: time.Now()}
		if err := store.SaveReflection(rec); err != nil {
			t.Fatalf("SaveReflection(%s) failed: %v", key, err)
		}
	}

	all, err := store.GetAllReflections()
	if err != nil {
		t.Fatalf("GetAllReflections failed: %v", err)
	}
	if len(all) != 3 || all[0].MonthKey != "2024-06" || all[2].MonthKey != "2024-04" {
		t.Errorf("unexpected reflections order: %+v", all)
	}
}

func TestSettingsDefaultsAndUpdate(t *testing.T) {
	store := setupTestStore(t)

	settings, err := store.GetSettings()
	if err != nil {
		t.Fatalf("GetSettings failed: %v", err)
	}
	if settings != models.DefaultSettings() {
		t.Errorf("GetSettings() = %+v, want defaults", settings)
	}

	settings.NotificationsEnabled = true
	settings.NotificationHour = 20
	settings.OnboardingSeen = true
	if err := store.SaveSettings(settings); err != nil {
		t.Fatalf("SaveSettings failed: %v", err)
	}

	got, err := store.GetSettings()
	if err != nil {
		t.Fatalf("GetSettings failed: %v", err)
	}
	if got != settings {
		t.Errorf("GetSettings() = %+v, want %+v", got, settings)
	}

	// Re-running Init must not reset user settings
	if err := store.Init(); err != nil {
		t.Fatalf("second Init failed: %v", err)
	}
	got, err = store.GetSettings()
	if err != nil {
		t.Fatalf("GetSettings failed: %v", err)
	}
	if !got.OnboardingSeen {
		t.Error("Init reset existing settings")
	}
}

func TestUnloadedStore(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "test.db"))

	if err := store.PutEntry(models.Entry{Date: "2024-06-01", Answer: "a"}); !errors.Is(err, storage.ErrNotLoaded) {
		t.Errorf("PutEntry() error = %v, want ErrNotLoaded", err)
	}
	if got := store.GetAllEntries(); len(got) != 0 {
		t.Errorf("GetAllEntries() on unloaded store = %v, want empty", got)
	}
	if _, err := store.HasReflection("2024-06"); !errors.Is(err, storage.ErrNotLoaded) {
		t.Errorf("HasReflection() error = %v, want ErrNotLoaded", err)
	}
}

func TestMigrateAndPending(t *testing.T) {
	store := setupTestStore(t)

	pending, err := store.PendingMigrations()
	if err != nil {
		t.Fatalf("PendingMigrations failed: %v", err)
	}
	if len(pending) != 0 {
		t.Errorf("expected no pending migrations after Init, got %d", len(pending))
	}

	applied, err := store.Migrate(nil)
	if err != nil {
		t.Fatalf("Migrate failed: %v", err)
	}
	if applied != 0 {
		t.Errorf("expected 0 migrations applied, got %d", applied)
	}
}
