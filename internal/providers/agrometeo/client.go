package agrometeo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/geonet-geomatica/Repositorio/internal/resilience"
)

// Sample request: https://agrometeo.mendoza.gov.ar/api/getInstantaneas.php?estacion=1
const (
	defaultTimeout = 10 * time.Second
	maxErrorBody   = 512
)

type Client struct {
	httpClient *http.Client
	baseURL    string
	timeout    time.Duration
	breaker    *resilience.CircuitBreaker
	logger     *slog.Logger
}

type Option func(*Client)

// WithHTTPClient replaces the default http.Client, mostly for tests
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// WithTimeout bounds every single station call
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.timeout = timeout
		}
	}
}

// WithCircuitBreaker routes calls through cb
func WithCircuitBreaker(cb *resilience.CircuitBreaker) Option {
	return func(c *Client) {
		c.breaker = cb
	}
}

func NewClient(baseURL string, logger *slog.Logger, opts ...Option) *Client {
	c := &Client{
		httpClient: &http.Client{},
		baseURL:    baseURL,
		timeout:    defaultTimeout,
		logger:     logger.With("component", "agrometeo-client"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// FetchStation returns the current reading of one station. Every failure wraps
// either ErrUpstreamUnavailable or ErrNoRecord.
func (c *Client) FetchStation(ctx context.Context, stationID int) (StationRecord, error) {
	// a caller that already gave up says nothing about the upstream
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUpstreamUnavailable, err)
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	if c.breaker == nil {
		return c.fetch(ctx, stationID)
	}

	result, err := c.breaker.Execute(func() (any, error) {
		return c.fetch(ctx, stationID)
	})
	if errors.Is(err, resilience.ErrCircuitOpen) {
		return nil, fmt.Errorf("%w: %w", ErrUpstreamUnavailable, err)
	}
	if err != nil {
		return nil, err
	}
	return result.(StationRecord), nil
}

func (c *Client) fetch(ctx context.Context, stationID int) (StationRecord, error) {
	u, err := url.Parse(c.baseURL)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to parse base URL: %w", ErrUpstreamUnavailable, err)
	}

	q := u.Query()
	q.Set("estacion", strconv.Itoa(stationID))
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create request: %w", ErrUpstreamUnavailable, err)
	}
	req.Header.Set("Accept", "application/json")

	c.logger.Debug("fetching station", "station_id", stationID, "url", u.String())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to fetch: %w", ErrUpstreamUnavailable, err)
	}
	defer func(Body io.ReadCloser) {
		_ = Body.Close()
	}(resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, fmt.Errorf("%w: fetch returned status %d: %s", ErrUpstreamUnavailable, resp.StatusCode, string(body))
	}

	decoder := json.NewDecoder(resp.Body)
	decoder.UseNumber()

	var records []StationRecord
	if err := decoder.Decode(&records); err != nil {
		return nil, fmt.Errorf("%w: failed to decode response: %w", ErrUpstreamUnavailable, err)
	}

	if len(records) == 0 || records[0] == nil {
		return nil, fmt.Errorf("%w: station %d", ErrNoRecord, stationID)
	}

	c.logger.Debug("fetched station", "station_id", stationID, "fields", len(records[0]))

	return records[0], nil
}
