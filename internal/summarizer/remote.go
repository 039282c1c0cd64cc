package summarizer

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"golang.org/x/time/rate"
)

// Remote posts entries to a reflection backend exposing
// POST /api/monthly-reflection.
type Remote struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
}

func NewRemote(cfg Config) (*Remote, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("remote synthesis provider requires a base URL")
	}

	return &Remote{
		apiKey:  cfg.APIKey,
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeoutOrDefault(cfg.Timeout),
		},
		limiter: newLimiter(cfg.RequestsPerMinute),
	}, nil
}

type remoteRequest struct {
	Entries []string `json:"entries"`
	Month   string   `json:"month"`
}

type remoteResponse struct {
	Summary string `json:"summary"`
	Month   string `json:"month"`
}

func (r *Remote) Summarize(ctx context.Context, entries []string, monthLabel string) (string, error) {
	if err := r.limiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("rate limiter error: %w", err)
	}

	var headers map[string]string
	if r.apiKey != "" {
		headers = map[string]string{"Authorization": "Bearer " + r.apiKey}
	}

	var resp remoteResponse
	req := remoteRequest{Entries: entries, Month: monthLabel}
	if err := postJSON(ctx, r.httpClient, r.baseURL+"/api/monthly-reflection", headers, req, &resp); err != nil {
		return "", fmt.Errorf("remote: %w", err)
	}
	return cleanSummary(resp.Summary)
}
