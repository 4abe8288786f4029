package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/chronic-risk-manager/community-health-frontend/pkg/circuitbreaker"
	apperrors "github.com/chronic-risk-manager/community-health-frontend/pkg/errors"
	"github.com/chronic-risk-manager/community-health-frontend/pkg/metrics"
)

// TokenSource yields the current bearer token, or "" when logged out.
type TokenSource interface {
	Token() string
}

// Config configures the upstream API client.
type Config struct {
	BaseURL string
	Timeout time.Duration
	Breaker circuitbreaker.Settings
}

// Client wraps HTTP calls to the remote clinical-data API. One method per
// remote operation; all methods attach the bearer token when present and
// normalize error responses. On a 401 the stored session is torn down via
// the OnUnauthorized hook and ErrSessionExpired is returned.
type Client struct {
	baseURL    string
	httpClient *http.Client
	tokens     TokenSource
	breaker    *circuitbreaker.CircuitBreaker
	metrics    *metrics.Metrics

	// OnUnauthorized runs once per 401 response, before the error returns.
	OnUnauthorized func()
}

func NewClient(cfg Config, tokens TokenSource, m *metrics.Metrics) *Client {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 15 * time.Second
	}
	if cfg.Breaker.Name == "" {
		cfg.Breaker.Name = "upstream"
	}
	return &Client{
		baseURL:    cfg.BaseURL,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		tokens:     tokens,
		breaker:    circuitbreaker.New(cfg.Breaker),
		metrics:    m,
	}
}

// upstreamError mirrors the error body convention of the backend.
type upstreamError struct {
	Detail string `json:"detail"`
}

// do performs one API call. req is JSON-encoded when non-nil; res is decoded
// from a success body when non-nil. Transport failures and 5xx responses
// count against the circuit breaker, business errors do not.
func (c *Client) do(ctx context.Context, operation, method, path string, params url.Values, req, res interface{}) error {
	started := time.Now()
	err := c.exchange(ctx, method, path, params, req, res)
	c.observe(operation, started, err)
	return err
}

func (c *Client) exchange(ctx context.Context, method, path string, params url.Values, req, res interface{}) error {
	var body io.Reader
	contentType := ""
	if req != nil {
		if values, ok := req.(url.Values); ok {
			body = bytes.NewBufferString(values.Encode())
			contentType = "application/x-www-form-urlencoded"
		} else {
			b := &bytes.Buffer{}
			if err := json.NewEncoder(b).Encode(req); err != nil {
				return apperrors.Internal(err)
			}
			body = b
			contentType = "application/json"
		}
	}

	u := c.baseURL + path
	if len(params) != 0 {
		u += "?" + params.Encode()
	}
	httpReq, err := http.NewRequestWithContext(ctx, method, u, body)
	if err != nil {
		return apperrors.Internal(err)
	}
	if contentType != "" {
		httpReq.Header.Set("Content-Type", contentType)
	}
	token := c.tokens.Token()
	if token != "" {
		httpReq.Header.Set("Authorization", "Bearer "+token)
	}

	var httpRes *http.Response
	doErr := c.breaker.Execute(func() error {
		var err error
		httpRes, err = c.httpClient.Do(httpReq)
		if err != nil {
			return err
		}
		if httpRes.StatusCode >= http.StatusInternalServerError {
			return fmt.Errorf("upstream returned %d", httpRes.StatusCode)
		}
		return nil
	})
	if httpRes == nil {
		return apperrors.Unreachable(doErr)
	}
	defer httpRes.Body.Close()

	// A 401 means session expiry only when a token was actually sent.
	// Unauthenticated calls, the login itself included, report their own
	// error detail instead.
	if httpRes.StatusCode == http.StatusUnauthorized && token != "" {
		if c.OnUnauthorized != nil {
			c.OnUnauthorized()
		}
		if c.metrics != nil {
			c.metrics.SessionExpiries.Inc()
		}
		return fmt.Errorf("upstream rejected token: %w", apperrors.ErrSessionExpired)
	}

	if httpRes.StatusCode < 200 || httpRes.StatusCode > 299 {
		var e upstreamError
		_ = json.NewDecoder(httpRes.Body).Decode(&e)
		return apperrors.Upstream(httpRes.StatusCode, e.Detail)
	}

	if res != nil {
		// An empty success body leaves res at its zero value instead of
		// failing; callers default defensively.
		if err := json.NewDecoder(httpRes.Body).Decode(res); err != nil && err != io.EOF {
			return apperrors.Internal(fmt.Errorf("decoding upstream response: %w", err))
		}
	}
	return nil
}

func (c *Client) observe(operation string, started time.Time, err error) {
	if c.metrics == nil {
		return
	}
	status := "ok"
	if err != nil {
		status = "error"
		kind := "business"
		var appErr *apperrors.AppError
		if apperrors.IsSessionExpired(err) {
			kind = "unauthorized"
		} else if errors.As(err, &appErr) && appErr.Code == http.StatusServiceUnavailable {
			kind = "transport"
		}
		c.metrics.UpstreamFailures.WithLabelValues(operation, kind).Inc()
	}
	c.metrics.UpstreamRequests.WithLabelValues(operation, status).Inc()
	c.metrics.UpstreamLatency.WithLabelValues(operation).Observe(time.Since(started).Seconds())
}
