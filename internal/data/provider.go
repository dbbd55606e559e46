package data

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"overnight-analyzer/internal/metrics"
	"overnight-analyzer/internal/model"

	"github.com/rs/zerolog"
)

// SeriesSource yields a daily frame for one instrument. The HTTP client
// and the JSON fixture loader both satisfy it.
type SeriesSource interface {
	Daily(symbol string, start time.Time) (*model.SeriesResponse, error)
}

// Client fetches daily series frames from the market-data gateway.
type Client struct {
	APIKey  string
	BaseURL string
	HTTP    *http.Client
	Log     zerolog.Logger
}

// NewClient creates a gateway client. If baseURL is empty, defaults to
// the local gateway address.
func NewClient(apiKey, baseURL string, timeout time.Duration, log zerolog.Logger) *Client {
	if baseURL == "" {
		baseURL = "http://localhost:9000"
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		APIKey:  apiKey,
		BaseURL: baseURL,
		HTTP:    &http.Client{Timeout: timeout},
		Log:     log.With().Str("component", "provider").Logger(),
	}
}

// ProviderError represents an error response from the gateway.
type ProviderError struct {
	StatusCode int
	Code       string
	Message    string
	RetryAfter string // for rate limit errors
}

func (e *ProviderError) Error() string {
	return e.Message
}

// Daily fetches the daily frame for symbol from start to the present.
//
// Responses may be cached in-process when ENABLE_PROVIDER_CACHE=true;
// see cache.go.
func (c *Client) Daily(symbol string, start time.Time) (*model.SeriesResponse, error) {
	if symbol == "" {
		return nil, fmt.Errorf("symbol is required")
	}
	if start.IsZero() {
		return nil, fmt.Errorf("start is required")
	}

	if cache := GetCache(); cache != nil {
		key := CacheKey(symbol, start)
		if cached, found := cache.Get(key); found {
			c.Log.Debug().Str("symbol", symbol).Int("dates", len(cached.Dates)).Msg("cache hit")
			metrics.ProviderRequests.WithLabelValues(symbol, "cache_hit").Inc()
			return cached, nil
		}
	}

	u, err := url.Parse(c.BaseURL + "/v1/daily/" + url.PathEscape(symbol))
	if err != nil {
		return nil, fmt.Errorf("invalid base URL: %w", err)
	}
	q := u.Query()
	q.Set("start", model.FormatDate(start))
	q.Set("interval", "1d")
	u.RawQuery = q.Encode()

	req, err := http.NewRequest(http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	if c.APIKey != "" {
		req.Header.Set("x-api-key", c.APIKey)
	}
	req.Header.Set("Accept", "application/json")

	began := time.Now()
	resp, err := c.HTTP.Do(req)
	elapsed := time.Since(began)
	if err != nil {
		c.Log.Warn().Err(err).Str("symbol", symbol).Dur("elapsed", elapsed).Msg("request failed")
		metrics.ProviderRequests.WithLabelValues(symbol, "error").Inc()
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	c.Log.Debug().
		Str("symbol", symbol).
		Int("status", resp.StatusCode).
		Dur("elapsed", elapsed).
		Msg("response")

	switch resp.StatusCode {
	case http.StatusOK:
		// Success, continue.
	case http.StatusUnauthorized, http.StatusForbidden:
		metrics.ProviderRequests.WithLabelValues(symbol, "error").Inc()
		return nil, &ProviderError{
			StatusCode: resp.StatusCode,
			Code:       "INVALID_API_KEY",
			Message:    "invalid API key or insufficient permissions",
		}
	case http.StatusTooManyRequests:
		retryAfter := resp.Header.Get("Retry-After")
		metrics.ProviderRequests.WithLabelValues(symbol, "error").Inc()
		return nil, &ProviderError{
			StatusCode: resp.StatusCode,
			Code:       "RATE_LIMIT_EXCEEDED",
			Message:    fmt.Sprintf("rate limit exceeded, retry after: %s", retryAfter),
			RetryAfter: retryAfter,
		}
	default:
		metrics.ProviderRequests.WithLabelValues(symbol, "error").Inc()
		return nil, &ProviderError{
			StatusCode: resp.StatusCode,
			Code:       "API_ERROR",
			Message:    fmt.Sprintf("gateway returned status %d: %s", resp.StatusCode, resp.Status),
		}
	}

	var frame model.SeriesResponse
	if err := json.NewDecoder(resp.Body).Decode(&frame); err != nil {
		metrics.ProviderRequests.WithLabelValues(symbol, "error").Inc()
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	if frame.Symbol == "" {
		frame.Symbol = symbol
	}
	metrics.ProviderRequests.WithLabelValues(symbol, "ok").Inc()
	c.Log.Info().Str("symbol", symbol).Int("dates", len(frame.Dates)).Msg("series fetched")

	if cache := GetCache(); cache != nil {
		cache.Set(CacheKey(symbol, start), &frame)
	}
	return &frame, nil
}
