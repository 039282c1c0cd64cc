// Package synthesis gates, requests and caches AI-generated monthly reflections.
package synthesis

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/julianstephens/onething/internal/constants"
	"github.com/julianstephens/onething/internal/logger"
	"github.com/julianstephens/onething/internal/models"
	"github.com/julianstephens/onething/internal/monthly"
	"github.com/julianstephens/onething/internal/storage"
	"github.com/julianstephens/onething/internal/summarizer"
)

// State is the generation state of one month.
type State string

const (
	StateLocked     State = "locked"
	StateUnlocked   State = "unlocked"
	StateGenerating State = "generating"
	StateGenerated  State = "generated"
	// StateFailed is never stored or returned by Status. It only describes an
	// attempt (see AttemptState); the month reads as unlocked afterwards.
	StateFailed State = "failed"
)

// Store is the persistence the orchestrator reads entries from and commits reflections to.
type Store interface {
	storage.EntryStore
	storage.ReflectionCache
}

type Config struct {
	// AllowRegeneration permits replacing a cached reflection when the caller asks for it
	AllowRegeneration bool
	Thresholds        monthly.Thresholds
	Provider          string
	Model             string
	// Timeout bounds a single summarizer call; zero means no extra deadline
	Timeout time.Duration
	// BeforeReplace runs before a cached reflection is overwritten. An error aborts the replace.
	BeforeReplace func(monthKey string) error
}

// MonthStatus is the observable state of one month.
type MonthStatus struct {
	State       State
	Eligibility models.MonthEligibility
	Reflection  *models.MonthSummaryRecord
}

type GenerateOptions struct {
	Regenerate bool
}

type Orchestrator struct {
	store      Store
	summarizer summarizer.Summarizer
	cfg        Config
	now        func() time.Time

	mu       sync.Mutex
	inFlight map[string]struct{}
}

func New(store Store, s summarizer.Summarizer, cfg Config) *Orchestrator {
	if cfg.Thresholds == (monthly.Thresholds{}) {
		cfg.Thresholds = monthly.DefaultThresholds()
	}
	return &Orchestrator{
		store:      store,
		summarizer: s,
		cfg:        cfg,
		now:        time.Now,
		inFlight:   make(map[string]struct{}),
	}
}

// AllowRegeneration reports whether the lenient policy is enabled.
func (o *Orchestrator) AllowRegeneration() bool {
	return o.cfg.AllowRegeneration
}

// Eligibility recomputes unlock state for the month containing anchor.
func (o *Orchestrator) Eligibility(anchor time.Time) models.MonthEligibility {
	return monthly.ComputeEligibility(o.store.GetAllEntries(), anchor, o.cfg.Thresholds)
}

// Status reports the state of the month containing anchor.
func (o *Orchestrator) Status(ctx context.Context, anchor time.Time) (MonthStatus, error) {
	if err := ctx.Err(); err != nil {
		return MonthStatus{}, err
	}

	key := monthly.MonthKey(anchor)
	status := MonthStatus{
		Eligibility: o.Eligibility(anchor),
	}

	rec, err := o.store.GetReflection(key)
	switch {
	case err == nil:
		status.Reflection = &rec
	case !errors.Is(err, storage.ErrNotFound):
		return MonthStatus{}, fmt.Errorf("failed to read reflection for %s: %w", key, err)
	}

	switch {
	case o.isInFlight(key):
		status.State = StateGenerating
	case status.Reflection != nil:
		status.State = StateGenerated
	case status.Eligibility.Unlocked:
		status.State = StateUnlocked
	default:
		status.State = StateLocked
	}
	return status, nil
}

// Generate requests a reflection for the month containing anchor and caches
// it before returning. A cached month is only regenerated when the policy
// allows it and opts.Regenerate is set.
func (o *Orchestrator) Generate(ctx context.Context, anchor time.Time, opts GenerateOptions) (models.MonthSummaryRecord, error) {
	key := monthly.MonthKey(anchor)

	if !o.acquire(key) {
		return models.MonthSummaryRecord{}, ErrGenerationInProgress
	}
	defer o.release(key)

	entries := o.store.GetAllEntries()
	eligibility := monthly.ComputeEligibility(entries, anchor, o.cfg.Thresholds)
	if !eligibility.Unlocked {
		return models.MonthSummaryRecord{}, ErrLocked
	}

	exists, err := o.store.HasReflection(key)
	if err != nil {
		return models.MonthSummaryRecord{}, fmt.Errorf("failed to check reflection cache for %s: %w", key, err)
	}
	replace := exists && o.cfg.AllowRegeneration && opts.Regenerate
	if exists && !replace {
		return models.MonthSummaryRecord{}, ErrAlreadyGenerated
	}

	monthEntries := monthly.EntriesInMonth(entries, anchor)
	formatted := make([]string, 0, len(monthEntries))
	for _, e := range monthEntries {
		formatted = append(formatted, FormatEntry(e))
	}

	attemptID := uuid.NewString()
	logger.Info("Generating monthly reflection", "month", key, "attempt", attemptID, "entries", len(formatted), "regenerate", replace)

	callCtx := ctx
	if o.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		callCtx, cancel = context.WithTimeout(ctx, o.cfg.Timeout)
		defer cancel()
	}

	started := o.now()
	summary, err := o.summarizer.Summarize(callCtx, formatted, monthly.MonthLabel(anchor))
	if err != nil {
		genErr := &GenerationError{Month: key, Reason: failureReason(err), Err: err}
		logger.Error("Monthly reflection failed", "month", key, "attempt", attemptID, "reason", genErr.Reason, "error", err)
		return models.MonthSummaryRecord{}, genErr
	}

	rec := models.MonthSummaryRecord{
		ID:          attemptID,
		MonthKey:    key,
		Summary:     summary,
		GeneratedAt: o.now().UTC(),
		Provider:    o.cfg.Provider,
		Model:       o.cfg.Model,
		EntryCount:  len(monthEntries),
	}

	if replace {
		if o.cfg.BeforeReplace != nil {
			if err := o.cfg.BeforeReplace(key); err != nil {
				return models.MonthSummaryRecord{}, fmt.Errorf("failed to prepare regeneration for %s: %w", key, err)
			}
		}
		if err := o.store.ReplaceReflection(rec); err != nil {
			return models.MonthSummaryRecord{}, fmt.Errorf("failed to cache reflection for %s: %w", key, err)
		}
	} else if err := o.store.SaveReflection(rec); err != nil {
		if errors.Is(err, storage.ErrAlreadyGenerated) {
			return models.MonthSummaryRecord{}, ErrAlreadyGenerated
		}
		return models.MonthSummaryRecord{}, fmt.Errorf("failed to cache reflection for %s: %w", key, err)
	}

	logger.Info("Monthly reflection cached", "month", key, "attempt", attemptID, "duration", o.now().Sub(started))
	return rec, nil
}

func (o *Orchestrator) acquire(key string) bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	if _, busy := o.inFlight[key]; busy {
		return false
	}
	o.inFlight[key] = struct{}{}
	return true
}

func (o *Orchestrator) release(key string) {
	o.mu.Lock()
	delete(o.inFlight, key)
	o.mu.Unlock()
}

func (o *Orchestrator) isInFlight(key string) bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	_, busy := o.inFlight[key]
	return busy
}

// FormatEntry renders an entry the way it is submitted to the summarizer.
func FormatEntry(e models.Entry) string {
	date := e.Date
	if t, err := time.Parse(constants.DateFormat, e.Date); err == nil {
		date = t.Format(constants.EntryDateFormat)
	}
	mood := e.Mood
	if mood == "" {
		mood = models.MoodNone
	}
	return fmt.Sprintf("Date: %s\nQuestion: %s\nAnswer: %s\nMood: %s", date, e.Question, e.Answer, mood)
}
