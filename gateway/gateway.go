// Package gateway calls the contacts REST API.
//
// Every call is a single round trip: no retries, no caching, and no timeout
// beyond the one of the underlying [http.Client].
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/VictoriaMetrics/metrics"
	"github.com/google/uuid"
)

// DefaultBaseURL is where the API is expected when none is configured.
const DefaultBaseURL = "http://localhost:3000/api"

type Client struct {
	base    *url.URL
	http    *http.Client
	logger  *slog.Logger
	metrics *metrics.Set
}

type Option func(*Client)

// WithHTTPClient sets the client used for requests, [http.DefaultClient] otherwise.
func WithHTTPClient(hc *http.Client) Option { return func(c *Client) { c.http = hc } }

// WithLogger sets the logger requests are logged to.
func WithLogger(logger *slog.Logger) Option { return func(c *Client) { c.logger = logger } }

// WithMetrics sets the set requests are metered into.
func WithMetrics(set *metrics.Set) Option { return func(c *Client) { c.metrics = set } }

func New(baseURL string, opts ...Option) (*Client, error) {
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("gateway: invalid base url: %w", err)
	}
	if base.Scheme != "http" && base.Scheme != "https" {
		return nil, fmt.Errorf("gateway: invalid base url %q: scheme must be http or https", baseURL)
	}
	base.Path = strings.TrimSuffix(base.Path, "/")

	c := &Client{
		base:    base,
		http:    http.DefaultClient,
		logger:  slog.New(slog.DiscardHandler),
		metrics: metrics.NewSet(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// do sends in as JSON, if not nil, and decodes the response into out, if not nil.
// route is the path template used to label metrics.
func (c *Client) do(ctx context.Context, method, route, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("gateway: encode %s %s: %w", method, path, err)
		}
		body = bytes.NewReader(b)
	}

	u := *c.base
	u.Path += path
	req, err := http.NewRequestWithContext(ctx, method, u.String(), body)
	if err != nil {
		return &NetworkError{Method: method, Path: path, Err: err}
	}
	requestID := uuid.NewString()
	req.Header.Set("X-Request-Id", requestID)
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.observe(method, route, "error", start)
		c.logger.LogAttrs(ctx, slog.LevelDebug, "request failed",
			slog.String("method", method), slog.String("path", path),
			slog.String("x-request-id", requestID), slog.Any("err", err))
		return &NetworkError{Method: method, Path: path, Err: err}
	}
	defer resp.Body.Close()

	c.observe(method, route, strconv.Itoa(resp.StatusCode), start)
	c.logger.LogAttrs(ctx, slog.LevelDebug, "request done",
		slog.String("method", method), slog.String("path", path),
		slog.String("x-request-id", requestID), slog.Int("status", resp.StatusCode),
		slog.Duration("dur", time.Since(start)))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		serr := &ServerError{Method: method, Path: path, Status: resp.StatusCode}
		var p problem
		if json.NewDecoder(resp.Body).Decode(&p) == nil {
			serr.Detail = p.String()
		}
		return serr
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &NetworkError{Method: method, Path: path, Err: fmt.Errorf("decode response: %w", err)}
	}
	return nil
}

func (c *Client) observe(method, route, status string, start time.Time) {
	labels := `{method="` + method + `",path="` + route + `",status="` + status + `"}`
	c.metrics.GetOrCreateCounter("contactbook_gateway_requests_total" + labels).Inc()
	c.metrics.GetOrCreateHistogram("contactbook_gateway_request_duration_seconds" + labels).UpdateDuration(start)
}
