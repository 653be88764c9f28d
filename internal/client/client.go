package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/kjstillabower/weather-widget/internal/models"
	"github.com/kjstillabower/weather-widget/internal/observability"
)

// DefaultBaseURL is the Visual Crossing timeline endpoint; the location is appended as a path segment.
const DefaultBaseURL = "https://weather.visualcrossing.com/VisualCrossingWebServices/rest/services/timeline/"

// maxBodyBytes bounds the response body; a 15 day forecast with hours is well under this.
const maxBodyBytes = 16 << 20

// ForecastClient fetches timeline forecasts and checks the configured API key.
type ForecastClient interface {
	FetchForecast(ctx context.Context, params TimelineParams) (*models.Forecast, error)
	ValidateAPIKey(ctx context.Context) error
}

var (
	ErrInvalidAPIKey    = errors.New("invalid API key")
	ErrInvalidParams    = errors.New("invalid request parameters")
	ErrLocationNotFound = errors.New("location not found")
	ErrUpstreamFailure  = errors.New("upstream failure")
	ErrRateLimited      = errors.New("rate limited")
	ErrTransport        = errors.New("transport failure")
	ErrMalformedPayload = errors.New("malformed payload")
)

// FetchError is returned for any non-2xx upstream response. It carries the status so the
// message can be shown to the user verbatim.
type FetchError struct {
	StatusCode int
	Status     string
	Detail     string
	kind       error
}

func (e *FetchError) Error() string {
	msg := fmt.Sprintf("fetch forecast: %d %s", e.StatusCode, e.Status)
	if e.Detail != "" {
		msg += ": " + e.Detail
	}
	return msg
}

func (e *FetchError) Unwrap() error { return e.kind }

// VisualCrossingClient talks to the Visual Crossing timeline API over HTTP.
type VisualCrossingClient struct {
	apiKey  string
	baseURL string
	timeout time.Duration
	client  *http.Client
}

// NewVisualCrossingClient returns a client for baseURL, or DefaultBaseURL when empty.
// The key must be at least 10 characters and timeout must be positive.
func NewVisualCrossingClient(apiKey, baseURL string, timeout time.Duration) (*VisualCrossingClient, error) {
	if timeout <= 0 {
		return nil, fmt.Errorf("timeout must be positive, got %s", timeout)
	}
	if apiKey == "" {
		return nil, fmt.Errorf("%w: API key is required", ErrInvalidAPIKey)
	}
	if len(apiKey) < 10 {
		return nil, fmt.Errorf("%w: API key appears invalid (too short)", ErrInvalidAPIKey)
	}
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if _, err := url.Parse(baseURL); err != nil {
		return nil, fmt.Errorf("invalid API URL: %w", err)
	}
	if !strings.HasSuffix(baseURL, "/") {
		baseURL += "/"
	}

	return &VisualCrossingClient{
		apiKey:  apiKey,
		baseURL: baseURL,
		timeout: timeout,
		client: &http.Client{
			Timeout: timeout,
		},
	}, nil
}

// FetchForecast performs exactly one GET against the timeline endpoint and decodes the body.
// Failures are never retried.
func (c *VisualCrossingClient) FetchForecast(ctx context.Context, params TimelineParams) (*models.Forecast, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}

	start := time.Now()
	reqCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := c.buildRequest(reqCtx, params)
	if err != nil {
		observability.ForecastAPICallsTotal.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("build request: %w", err)
	}

	if corrID := extractCorrelationID(ctx); corrID != "" {
		req.Header.Set("X-Correlation-ID", corrID)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		duration := time.Since(start).Seconds()
		observability.ForecastAPICallsTotal.WithLabelValues("error").Inc()
		observability.ForecastAPIDuration.WithLabelValues("error").Observe(duration)

		if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
			return nil, fmt.Errorf("%w: request timeout: %w", ErrTransport, err)
		}
		return nil, fmt.Errorf("%w: http request failed: %w", ErrTransport, err)
	}
	defer resp.Body.Close()

	duration := time.Since(start).Seconds()
	status := statusLabel(resp.StatusCode)
	observability.ForecastAPICallsTotal.WithLabelValues(status).Inc()
	observability.ForecastAPIDuration.WithLabelValues(status).Observe(duration)

	if err := handleErrorResponse(resp); err != nil {
		return nil, err
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("%w: read response body: %w", ErrTransport, err)
	}

	var forecast models.Forecast
	if err := json.Unmarshal(body, &forecast); err != nil {
		return nil, fmt.Errorf("%w: parse response: %v", ErrMalformedPayload, err)
	}
	return &forecast, nil
}

func (c *VisualCrossingClient) buildRequest(ctx context.Context, params TimelineParams) (*http.Request, error) {
	u, err := url.Parse(c.baseURL + url.PathEscape(params.Location))
	if err != nil {
		return nil, fmt.Errorf("invalid API URL: %w", err)
	}
	u.RawQuery = params.query(c.apiKey).Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	return req, nil
}

// NewFetchError classifies a non-2xx status into a *FetchError.
func NewFetchError(statusCode int, detail string) *FetchError {
	fe := &FetchError{
		StatusCode: statusCode,
		Status:     http.StatusText(statusCode),
		Detail:     detail,
	}
	switch statusCode {
	case http.StatusUnauthorized, http.StatusForbidden:
		fe.kind = ErrInvalidAPIKey
	case http.StatusBadRequest, http.StatusNotFound:
		fe.kind = ErrLocationNotFound
	case http.StatusTooManyRequests:
		fe.kind = ErrRateLimited
	default:
		fe.kind = ErrUpstreamFailure
	}
	return fe
}

// handleErrorResponse turns a non-2xx response into a *FetchError. The upstream puts a short
// plain-text reason in the body (e.g. "Bad API Request:Invalid location parameter value.").
func handleErrorResponse(resp *http.Response) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}
	var detail string
	if b, err := io.ReadAll(io.LimitReader(resp.Body, 512)); err == nil {
		detail = strings.TrimSpace(string(b))
	}
	return NewFetchError(resp.StatusCode, detail)
}

func extractCorrelationID(ctx context.Context) string {
	if corrIDVal := ctx.Value(observability.CorrelationIDKey); corrIDVal != nil {
		if corrID, ok := corrIDVal.(string); ok {
			return corrID
		}
	}
	return ""
}

func statusLabel(statusCode int) string {
	if statusCode >= 200 && statusCode < 300 {
		return "success"
	}
	if statusCode == 429 {
		return "rate_limited"
	}
	if statusCode >= 400 && statusCode < 500 {
		return "client_error"
	}
	if statusCode >= 500 {
		return "server_error"
	}
	return "error"
}

// ValidateAPIKey issues a minimal current-conditions request to confirm the key is accepted.
func (c *VisualCrossingClient) ValidateAPIKey(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	req, err := c.buildRequest(ctx, TimelineParams{
		Location: "London,UK",
		Units:    models.UnitsMetric,
		Include:  "current",
		Elements: []string{"temp"},
	})
	if err != nil {
		return fmt.Errorf("build validation request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("validation request failed: %w: %w", ErrTransport, err)
	}
	defer resp.Body.Close()

	if err := handleErrorResponse(resp); err != nil {
		return fmt.Errorf("validate API key: %w", err)
	}
	return nil
}
