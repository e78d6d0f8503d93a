package client

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/simonvc/p2pdesk/internal/logger"
	"github.com/simonvc/p2pdesk/internal/metrics"
)

const (
	PathContractors = "/contractors"
	PathUser        = "/user"
	PathExchange    = "/"

	DefaultTimeout = 10 * time.Second

	// HeaderRequestID correlates client and server log lines.
	HeaderRequestID = "X-Request-Id"
)

type Client struct {
	baseURL    string
	httpClient *http.Client
	timeout    time.Duration
	log        *zap.Logger
}

type Option func(*Client)

// WithTimeout bounds every request, including reading the body.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.timeout = d
		}
	}
}

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

func WithLogger(l *zap.Logger) Option {
	return func(c *Client) { c.log = l }
}

func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{},
		timeout:    DefaultTimeout,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.log == nil {
		c.log = logger.L()
	}
	return c
}

func (c *Client) BaseURL() string { return c.baseURL }

// Ping checks that the API answers.
func (c *Client) Ping(ctx context.Context) error {
	return c.get(ctx, PathUser, nil)
}

func (c *Client) get(ctx context.Context, path string, result any) error {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	return c.doRequest(req, path, result)
}

func (c *Client) postForm(ctx context.Context, path string, form url.Values, result any) error {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return c.doRequest(req, path, result)
}

type apiError struct {
	Error string `json:"error"`
}

func (c *Client) doRequest(req *http.Request, endpoint string, result any) error {
	requestID := uuid.NewString()
	req.Header.Set(HeaderRequestID, requestID)
	log := c.log.With(
		zap.String("request_id", requestID),
		zap.String("method", req.Method),
		zap.String("endpoint", endpoint),
	)

	start := time.Now()
	defer metrics.ObserveDuration(metrics.APIRequestDuration, start, endpoint, req.Method)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		metrics.APIRequestsTotal.WithLabelValues(endpoint, req.Method, "error").Inc()
		log.Warn("api.request_failed", zap.Error(err))
		return fmt.Errorf("%w: %s %s: %w", ErrUnavailable, req.Method, endpoint, err)
	}
	defer resp.Body.Close()
	metrics.APIRequestsTotal.WithLabelValues(endpoint, req.Method, strconv.Itoa(resp.StatusCode)).Inc()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		log.Warn("api.request_failed", zap.Error(err))
		return fmt.Errorf("%w: read response: %w", ErrUnavailable, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		msg := string(bodyBytes)
		var apiErr apiError
		if json.Unmarshal(bodyBytes, &apiErr) == nil && apiErr.Error != "" {
			msg = apiErr.Error
		}
		log.Warn("api.bad_status", zap.Int("status", resp.StatusCode), zap.String("message", msg))
		return &StatusError{Code: resp.StatusCode, Message: msg}
	}

	if result != nil {
		if err := json.Unmarshal(bodyBytes, result); err != nil {
			log.Warn("api.decode_failed", zap.Error(err))
			return fmt.Errorf("%w: %w", ErrMalformedResponse, err)
		}
	}
	log.Debug("api.request_ok",
		zap.Int("status", resp.StatusCode),
		zap.Duration("took", time.Since(start)),
	)
	return nil
}
