package insight

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/classpulse/classpulse-core/internal/domain/insight"
	"github.com/classpulse/classpulse-core/pkg/circuitbreaker"
	"github.com/classpulse/classpulse-core/pkg/retry"
)

// Report sources.
const (
	SourceRemote = "remote"
	SourceLocal  = "local"
)

// ══════════════════════════════════════════════════════════════════════════════
// CONFIGURATION
// ══════════════════════════════════════════════════════════════════════════════

// ClientConfig contains configuration for the insight API client.
type ClientConfig struct {
	// BaseURL is the insight API base URL.
	BaseURL string

	// APIKey is the bearer token for authentication.
	APIKey string

	// Timeout is the HTTP request timeout.
	Timeout time.Duration

	// Logger for structured logging.
	Logger *slog.Logger
}

// DefaultClientConfig returns sensible defaults.
func DefaultClientConfig(baseURL string) ClientConfig {
	return ClientConfig{
		BaseURL: baseURL,
		Timeout: 30 * time.Second,
	}
}

// ══════════════════════════════════════════════════════════════════════════════
// CLIENT
// ══════════════════════════════════════════════════════════════════════════════

// Client is the insight API client. It satisfies insight.Analyzer and is
// the production analyzer: remote first, local fallback on any failure.
type Client struct {
	config         ClientConfig
	httpClient     *http.Client
	logger         *slog.Logger
	retrier        *retry.Retrier
	circuitBreaker *circuitbreaker.CircuitBreaker
	fallback       *LocalAnalyzer
}

// compile-time interface check
var _ insight.Analyzer = (*Client)(nil)

// NewClient creates a new insight API client.
func NewClient(config ClientConfig) *Client {
	if config.Logger == nil {
		config.Logger = slog.Default()
	}
	if config.Timeout <= 0 {
		config.Timeout = 30 * time.Second
	}

	logger := config.Logger
	return &Client{
		config: config,
		httpClient: &http.Client{
			Timeout: config.Timeout,
		},
		logger:  logger,
		retrier: retry.InsightAPIRetrier(),
		circuitBreaker: circuitbreaker.InsightAPIBreaker(func(name string, from, to circuitbreaker.State) {
			logger.Warn("circuit breaker state changed",
				slog.String("breaker", name),
				slog.String("from", from.String()),
				slog.String("to", to.String()),
			)
		}),
		fallback: NewLocalAnalyzer(),
	}
}

// Analyze requests a course report from the remote service. Any remote
// failure - network, non-2xx, open circuit, malformed body - is absorbed:
// the local analyzer produces the report and the caller gets a nil error.
func (c *Client) Analyze(ctx context.Context, digest insight.CourseDigest) (*insight.Report, error) {
	var report *insight.Report

	err := c.circuitBreaker.Execute(ctx, func(ctx context.Context) error {
		return c.retrier.Do(ctx, func(ctx context.Context) error {
			r, callErr := c.callAnalyze(ctx, digest)
			if callErr != nil {
				return callErr
			}
			report = r
			return nil
		})
	})
	if err != nil {
		c.logger.Warn("insight service unavailable, using local analyzer",
			slog.String("course_id", digest.CourseID),
			slog.String("error", err.Error()),
		)
		return c.fallback.Analyze(ctx, digest)
	}

	return report, nil
}

// callAnalyze performs a single HTTP round trip.
func (c *Client) callAnalyze(ctx context.Context, digest insight.CourseDigest) (*insight.Report, error) {
	body, err := json.Marshal(toRequest(digest))
	if err != nil {
		return nil, retry.Permanent(fmt.Errorf("marshal request: %w", err))
	}

	fullURL := c.config.BaseURL + "/api/v1/insights/analyze"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, fullURL, bytes.NewReader(body))
	if err != nil {
		return nil, retry.Permanent(fmt.Errorf("create request: %w", err))
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if c.config.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.config.APIKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, retry.Retryable(fmt.Errorf("execute request: %w", err))
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, retry.Retryable(fmt.Errorf("read response: %w", err))
	}

	switch {
	case resp.StatusCode == http.StatusOK:
		var parsed analyzeResponse
		if err := json.Unmarshal(data, &parsed); err != nil {
			return nil, retry.Permanent(fmt.Errorf("decode response: %w", err))
		}
		return toReport(parsed), nil

	case resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500:
		return nil, retry.Retryable(fmt.Errorf("insight API status %d: %s", resp.StatusCode, apiError(data)))

	default:
		return nil, retry.Permanent(fmt.Errorf("insight API status %d: %s", resp.StatusCode, apiError(data)))
	}
}

// apiError extracts the error message from an API error body.
func apiError(data []byte) string {
	var parsed errorResponse
	if err := json.Unmarshal(data, &parsed); err == nil && parsed.Error != "" {
		return parsed.Error
	}
	return string(data)
}

// BreakerState exposes the circuit state for health reporting.
func (c *Client) BreakerState() circuitbreaker.State {
	return c.circuitBreaker.State()
}
