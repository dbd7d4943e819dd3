package adapter

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math/rand"
	"net/http"
	"time"

	"github.com/soufieneghribi/credit-dossier-service/internal/domain/model"
	"github.com/soufieneghribi/credit-dossier-service/internal/infrastructure/config"
)

// HTTPRuleSource fetches the credit-rule list from the product configuration
// API. Transient failures are retried with exponential backoff and jitter.
type HTTPRuleSource struct {
	cfg    config.RuleSourceConfig
	client *http.Client
}

// NewHTTPRuleSource creates a source for the configured API.
func NewHTTPRuleSource(cfg config.RuleSourceConfig) *HTTPRuleSource {
	return &HTTPRuleSource{
		cfg: cfg,
		client: &http.Client{
			Timeout: time.Duration(cfg.TimeoutSeconds) * time.Second,
		},
	}
}

// FetchRules implements port.RuleSource.
func (s *HTTPRuleSource) FetchRules(ctx context.Context) ([]model.CreditRule, error) {
	var lastErr error

	for attempt := 0; attempt <= s.cfg.MaxRetries; attempt++ {
		if attempt > 0 {
			backoff := time.Duration(s.cfg.RetryBackoffMs) * time.Millisecond * (1 << uint(attempt-1))
			jitter := time.Duration(rand.Int63n(int64(backoff) / 2))
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(backoff + jitter):
			}
		}

		rules, err := s.fetch(ctx)
		if err == nil {
			return rules, nil
		}
		lastErr = err
	}

	return nil, fmt.Errorf("exhausted %d retries: %w", s.cfg.MaxRetries, lastErr)
}

func (s *HTTPRuleSource) fetch(ctx context.Context) ([]model.CreditRule, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.cfg.BaseURL+"/credit-rules", nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	if s.cfg.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+s.cfg.APIKey)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("rule source request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, resp.Body)
		return nil, fmt.Errorf("rule source returned status %d", resp.StatusCode)
	}

	var rules []model.CreditRule
	if err := json.NewDecoder(resp.Body).Decode(&rules); err != nil {
		return nil, fmt.Errorf("decode rules: %w", err)
	}
	return rules, nil
}
