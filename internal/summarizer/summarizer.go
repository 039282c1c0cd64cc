// Package summarizer talks to external text-generation services that turn a
// month of journal entries into a short neutral reflection.
package summarizer

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/julianstephens/onething/internal/constants"
)

var (
	// ErrMalformedResponse is returned when the service answers with an
	// unparseable or empty body
	ErrMalformedResponse = errors.New("malformed response from text-generation service")
	// ErrMissingCredential is returned when no API key is configured for the provider
	ErrMissingCredential = errors.New("text-generation API key not configured")
)

// Summarizer produces a reflection for the formatted entries of one month.
type Summarizer interface {
	Summarize(ctx context.Context, entries []string, monthLabel string) (string, error)
}

// Config selects and configures a summarizer client.
type Config struct {
	Provider          string
	Model             string
	BaseURL           string
	APIKey            string `json:"-"`
	Timeout           time.Duration
	RequestsPerMinute int
}

// APIError is a non-2xx answer from the service.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("API error (%d): %s", e.StatusCode, e.Message)
}

// New returns the client for cfg.Provider.
func New(cfg Config) (Summarizer, error) {
	switch strings.ToLower(cfg.Provider) {
	case "", constants.ProviderGemini:
		return NewGemini(cfg), nil
	case constants.ProviderAnthropic:
		return NewAnthropic(cfg), nil
	case constants.ProviderRemote:
		return NewRemote(cfg)
	default:
		return nil, fmt.Errorf("unknown synthesis provider %q", cfg.Provider)
	}
}

// DefaultModel returns the model used when none is configured.
func DefaultModel(provider string) string {
	switch strings.ToLower(provider) {
	case constants.ProviderAnthropic:
		return defaultAnthropicModel
	case constants.ProviderRemote:
		return ""
	default:
		return defaultGeminiModel
	}
}

func newLimiter(requestsPerMinute int) *rate.Limiter {
	if requestsPerMinute <= 0 {
		return rate.NewLimiter(rate.Inf, 1)
	}
	return rate.NewLimiter(rate.Every(time.Minute/time.Duration(requestsPerMinute)), 1)
}

func timeoutOrDefault(d time.Duration) time.Duration {
	if d <= 0 {
		return constants.DefaultSynthesisTimeout
	}
	return d
}

const systemPrompt = `You are a neutral reflection assistant for a daily journaling app called OneThing.

Your role is to:
- Detect recurring themes and patterns in the user's answers
- Summarize emotional patterns neutrally
- Reflect language back to the user

You MUST NOT:
- Give advice or recommendations
- Diagnose mental health conditions
- Use motivational or therapeutic language
- Suggest actions or changes
- Make judgments or evaluations
- Use emojis

Tone: Neutral, descriptive, reflective, non-judgmental.
Length: 3-5 sentences maximum.

Example style:
"This month, your answers often referenced tiredness around work and moments of relief during quieter days. Several entries reflected a desire for fewer obligations. This summary simply reflects recurring themes without judgment."`

// SystemPrompt returns the instructions shared by every provider.
func SystemPrompt() string {
	return systemPrompt
}

// UserPrompt builds the request text for one month of formatted entries.
func UserPrompt(entries []string, monthLabel string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Please analyze these journal entries from %s and provide a neutral, reflective summary:\n\n", monthLabel)
	b.WriteString(strings.Join(entries, "\n\n---\n\n"))
	b.WriteString("\n\nProvide a brief, neutral summary of recurring themes and patterns.")
	return b.String()
}

func cleanSummary(text string) (string, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return "", fmt.Errorf("%w: empty summary", ErrMalformedResponse)
	}
	return text, nil
}
