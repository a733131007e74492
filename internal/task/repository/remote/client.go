package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"smart-todo-client/internal/task/repository"
	pkgLog "smart-todo-client/pkg/log"
	"smart-todo-client/pkg/metrics"
)

const (
	// DefaultTimeout bounds every remote call when the config leaves it unset.
	DefaultTimeout = 10 * time.Second

	maxErrorBody = 4 << 10
)

// Config is the explicit configuration of a Client.
type Config struct {
	BaseAddress       string        // e.g. "http://localhost:8000/api"
	Timeout           time.Duration // per call; DefaultTimeout when zero
	RequestsPerSecond float64       // client-side rate limit; zero disables it
	Burst             int
}

// Client is the HTTP wrapper for the remote task/NLP REST API.
type Client struct {
	baseURL    string
	timeout    time.Duration
	httpClient *http.Client
	limiter    *rate.Limiter
	metrics    *metrics.Metrics
	l          pkgLog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient sets a custom HTTP client. Its own Timeout should be zero or larger than Config.Timeout.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithMetrics records every call in m.
func WithMetrics(m *metrics.Metrics) Option {
	return func(c *Client) {
		c.metrics = m
	}
}

// WithLogger sets the logger.
func WithLogger(l pkgLog.Logger) Option {
	return func(c *Client) {
		c.l = l
	}
}

// NewClient creates a new remote API client.
func NewClient(cfg Config, opts ...Option) (*Client, error) {
	base := strings.TrimRight(strings.TrimSpace(cfg.BaseAddress), "/")
	if base == "" {
		return nil, errors.New("remote: base address is required")
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	c := &Client{
		baseURL:    base,
		timeout:    timeout,
		httpClient: &http.Client{},
		l:          pkgLog.NewNop(),
	}
	if cfg.RequestsPerSecond > 0 {
		burst := cfg.Burst
		if burst <= 0 {
			burst = 1
		}
		c.limiter = rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), burst)
	}

	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// call describes one request/response exchange.
type call struct {
	op     string
	taskID int64
	method string
	path   string
	query  string
	body   any
	out    any
	// statusKind overrides the kind used for 4xx responses other than 404.
	statusKind error
}

// do executes c under the per-call timeout and classifies any failure.
func (c *Client) do(ctx context.Context, rc call) error {
	start := time.Now()
	reqID := uuid.NewString()
	ctx = pkgLog.WithRequestID(ctx, reqID)

	err := c.exchange(ctx, reqID, rc)
	elapsed := time.Since(start)
	c.metrics.ObserveRequest(rc.op, outcomeLabel(err), elapsed)

	if errors.Is(err, repository.ErrCanceled) {
		c.l.Debugf(ctx, "remote.%s %s %s canceled after %s", rc.op, rc.method, rc.path, elapsed)
		return err
	}
	if err != nil {
		c.l.Warnf(ctx, "remote.%s %s %s failed after %s: %v", rc.op, rc.method, rc.path, elapsed, err)
		return err
	}
	c.l.Debugf(ctx, "remote.%s %s %s ok in %s", rc.op, rc.method, rc.path, elapsed)
	return nil
}

func (c *Client) exchange(ctx context.Context, reqID string, rc call) error {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			// Wait fails early when a token would outlive the deadline.
			kind := repository.ErrTimeout
			if errors.Is(ctx.Err(), context.Canceled) {
				kind = repository.ErrCanceled
			}
			return &repository.GatewayError{Op: rc.op, TaskID: rc.taskID, Kind: kind,
				Cause: fmt.Errorf("rate limiter: %w", err)}
		}
	}

	var body io.Reader
	if rc.body != nil {
		raw, err := json.Marshal(rc.body)
		if err != nil {
			return &repository.GatewayError{Op: rc.op, TaskID: rc.taskID, Kind: repository.ErrValidation,
				Cause: fmt.Errorf("failed to marshal request: %w", err)}
		}
		body = bytes.NewReader(raw)
	}

	url := c.baseURL + rc.path
	if rc.query != "" {
		url += "?" + rc.query
	}

	httpReq, err := http.NewRequestWithContext(ctx, rc.method, url, body)
	if err != nil {
		return &repository.GatewayError{Op: rc.op, TaskID: rc.taskID, Kind: repository.ErrValidation,
			Cause: fmt.Errorf("failed to build request: %w", err)}
	}
	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("X-Request-ID", reqID)
	if body != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return c.transportError(ctx, rc, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return statusError(rc, resp.StatusCode, strings.TrimSpace(string(raw)))
	}

	if rc.out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(rc.out); err != nil {
		if ctx.Err() != nil {
			return c.transportError(ctx, rc, err)
		}
		kind := repository.ErrServer
		if rc.statusKind != nil {
			kind = rc.statusKind
		}
		return &repository.GatewayError{Op: rc.op, TaskID: rc.taskID, StatusCode: resp.StatusCode, Kind: kind,
			Cause: fmt.Errorf("failed to decode response: %w", err)}
	}
	return nil
}

// transportError classifies failures that happened before a response status was read.
func (c *Client) transportError(ctx context.Context, rc call, err error) error {
	kind := repository.ErrNetworkUnreachable
	switch {
	case errors.Is(err, context.Canceled) || errors.Is(ctx.Err(), context.Canceled):
		kind = repository.ErrCanceled
	case errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded):
		kind = repository.ErrTimeout
	case isTimeout(err):
		kind = repository.ErrTimeout
	}
	return &repository.GatewayError{Op: rc.op, TaskID: rc.taskID, Kind: kind, Cause: err}
}

func isTimeout(err error) bool {
	var te interface{ Timeout() bool }
	return errors.As(err, &te) && te.Timeout()
}

func statusError(rc call, status int, body string) error {
	var kind error
	switch {
	case status == http.StatusNotFound:
		kind = repository.ErrNotFound
	case status >= 500:
		kind = repository.ErrServer
	case rc.statusKind != nil:
		kind = rc.statusKind
	default:
		kind = repository.ErrValidation
	}

	var cause error
	if body != "" {
		cause = errors.New(body)
	}
	return &repository.GatewayError{Op: rc.op, TaskID: rc.taskID, StatusCode: status, Kind: kind, Cause: cause}
}

func outcomeLabel(err error) string {
	if err == nil {
		return "ok"
	}
	switch repository.KindOf(err) {
	case repository.ErrValidation:
		return "validation"
	case repository.ErrNotFound:
		return "not_found"
	case repository.ErrTimeout:
		return "timeout"
	case repository.ErrNetworkUnreachable:
		return "network_unreachable"
	case repository.ErrServer:
		return "server_error"
	case repository.ErrInterpretationFailed:
		return "interpretation_failed"
	case repository.ErrCanceled:
		return "canceled"
	default:
		return "unknown"
	}
}
