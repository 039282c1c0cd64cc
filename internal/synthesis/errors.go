package synthesis

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/julianstephens/onething/internal/storage"
	"github.com/julianstephens/onething/internal/summarizer"
)

var (
	// ErrLocked is returned when the month has not met its unlock thresholds
	ErrLocked = errors.New("month is locked")
	// ErrAlreadyGenerated is returned when the month already has a cached reflection
	ErrAlreadyGenerated = storage.ErrAlreadyGenerated
	// ErrGenerationInProgress is returned when a generation for the same month is running
	ErrGenerationInProgress = errors.New("a reflection is already being generated for this month")
	// ErrGenerationFailed matches every *GenerationError
	ErrGenerationFailed = errors.New("reflection generation failed")
)

// GenerationError reports a failed summarizer call. Nothing is cached when it
// is returned and the month may be retried.
type GenerationError struct {
	Month  string
	Reason string
	Err    error
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("failed to generate reflection for %s: %s", e.Month, e.Reason)
}

func (e *GenerationError) Unwrap() error {
	return e.Err
}

func (e *GenerationError) Is(target error) bool {
	return target == ErrGenerationFailed
}

func failureReason(err error) string {
	var apiErr *summarizer.APIError

	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return "the request timed out"
	case errors.Is(err, context.Canceled):
		return "the request was cancelled"
	case errors.Is(err, summarizer.ErrMissingCredential):
		return "no API key is configured"
	case summarizer.IsCredentialError(err):
		return "the service rejected the API key"
	case errors.Is(err, summarizer.ErrMalformedResponse):
		return "the service returned an unusable response"
	case errors.As(err, &apiErr):
		if apiErr.StatusCode == http.StatusTooManyRequests {
			return "the service is rate limiting requests"
		}
		return fmt.Sprintf("the service returned an error (status %d)", apiErr.StatusCode)
	default:
		return "the service could not be reached"
	}
}

// AttemptState reports the state a Generate call ended in. Any error other
// than a gate rejection means nothing was cached, so it reads as StateFailed.
func AttemptState(err error) State {
	switch {
	case err == nil, errors.Is(err, ErrAlreadyGenerated):
		return StateGenerated
	case errors.Is(err, ErrLocked):
		return StateLocked
	case errors.Is(err, ErrGenerationInProgress):
		return StateGenerating
	default:
		return StateFailed
	}
}
