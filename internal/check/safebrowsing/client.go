package safebrowsing

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/sony/gobreaker"
	"go.uber.org/zap"

	"github.com/linkguard/go-url-guard/internal/check/domain"
)

// Config holds the remote lookup settings.
type Config struct {
	Endpoint        string
	APIKey          string
	Timeout         time.Duration
	BreakerFailures uint32
	BreakerTimeout  time.Duration
}

// Client calls the remote safe-browsing reputation service. Outbound calls
// run behind a circuit breaker so a degraded upstream cannot stall every
// check.
type Client struct {
	endpoint   string
	apiKey     string
	httpClient *http.Client
	breaker    *gobreaker.CircuitBreaker
	logger     *zap.Logger
}

func NewClient(cfg Config, logger *zap.Logger) *Client {
	failures := cfg.BreakerFailures
	if failures == 0 {
		failures = 5
	}

	breaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "safebrowsing",
		MaxRequests: 3,
		Timeout:     cfg.BreakerTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= failures
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("Circuit breaker state change",
				zap.String("breaker", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()))
		},
	})

	return &Client{
		endpoint: cfg.Endpoint,
		apiKey:   cfg.APIKey,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		breaker: breaker,
		logger:  logger,
	}
}

type lookupRequest struct {
	URL string `json:"url"`
}

type lookupResponse struct {
	Threat     bool   `json:"threat"`
	ThreatType string `json:"threat_type"`
}

// Lookup queries the reputation of a normalized URL. Callers must pass the
// classifier's normalized output, never raw user input.
func (c *Client) Lookup(ctx context.Context, normalizedURL string) (
	*domain.Reputation, error) {

	result, err := c.breaker.Execute(func() (interface{}, error) {
		return c.lookup(ctx, normalizedURL)
	})
	if err != nil {
		return nil, err
	}

	return result.(*domain.Reputation), nil
}

func (c *Client) lookup(ctx context.Context, normalizedURL string) (
	*domain.Reputation, error) {

	body, err := json.Marshal(lookupRequest{URL: normalizedURL})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal lookup request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build lookup request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("lookup request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, resp.Body)
		return nil, fmt.Errorf("lookup returned status %d", resp.StatusCode)
	}

	var lr lookupResponse
	if err := json.NewDecoder(resp.Body).Decode(&lr); err != nil {
		return nil, fmt.Errorf("failed to decode lookup response: %w", err)
	}

	return &domain.Reputation{
		Threat:     lr.Threat,
		ThreatType: lr.ThreatType,
	}, nil
}
