package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/jwalitptl/hospital-console/internal/config"
	apperrors "github.com/jwalitptl/hospital-console/pkg/errors"
	"github.com/jwalitptl/hospital-console/pkg/metrics"
)

// Client talks to the hospital REST backend. It attaches the bearer token,
// targets one fixed origin and turns every non-2xx answer into an
// *errors.AppError. It never retries.
type Client struct {
	baseURL *url.URL
	http    *http.Client
	metrics *metrics.Metrics
}

func NewClient(cfg config.BackendConfig, m *metrics.Metrics) (*Client, error) {
	u, err := url.Parse(strings.TrimRight(cfg.BaseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("invalid backend url: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("invalid backend url %q", cfg.BaseURL)
	}

	return &Client{
		baseURL: u,
		http:    &http.Client{Timeout: cfg.RequestTimeout},
		metrics: m,
	}, nil
}

// BaseURL returns the backend origin.
func (c *Client) BaseURL() *url.URL {
	u := *c.baseURL
	return &u
}

// Ping reports whether the backend answers at all. Any HTTP status counts.
func (c *Client) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL.String()+"/", nil)
	if err != nil {
		return apperrors.Internal(fmt.Errorf("build request: %w", err))
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return apperrors.Network(err)
	}
	resp.Body.Close()
	return nil
}

func (c *Client) do(ctx context.Context, op, method, path string, query url.Values, token string, in, out any) error {
	start := time.Now()
	err := c.send(ctx, method, path, query, token, in, out)
	c.observe(op, start, err)
	if err != nil {
		log.Ctx(ctx).Debug().
			Err(err).
			Str("operation", op).
			Str("kind", apperrors.KindOf(err).String()).
			Msg("backend call failed")
	}
	return err
}

func (c *Client) send(ctx context.Context, method, path string, query url.Values, token string, in, out any) error {
	u := *c.baseURL
	u.Path = strings.TrimRight(u.Path, "/") + path
	if len(query) > 0 {
		u.RawQuery = query.Encode()
	}

	var body io.Reader
	if in != nil {
		payload, err := json.Marshal(in)
		if err != nil {
			return apperrors.Internal(fmt.Errorf("marshal request: %w", err))
		}
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, u.String(), body)
	if err != nil {
		return apperrors.Internal(fmt.Errorf("build request: %w", err))
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return apperrors.Network(err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return apperrors.Network(fmt.Errorf("read response: %w", err))
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return statusError(resp.StatusCode, raw)
	}

	if out == nil || len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return apperrors.Internal(fmt.Errorf("decode response: %w", err))
	}
	return nil
}

func statusError(status int, raw []byte) error {
	detail := parseDetail(raw)
	switch status {
	case http.StatusUnauthorized:
		return apperrors.Unauthorized(detail)
	case http.StatusNotFound:
		appErr := apperrors.NotFound("resource", nil)
		if detail != "" {
			appErr.Message = detail
		}
		return appErr
	default:
		return apperrors.Validation(status, detail)
	}
}

// parseDetail extracts the backend's {"detail": ...} field. FastAPI style
// validation errors send a list of {"msg": ...} objects instead of a string.
func parseDetail(raw []byte) string {
	var body struct {
		Detail json.RawMessage `json:"detail"`
	}
	if err := json.Unmarshal(raw, &body); err != nil || len(body.Detail) == 0 {
		return ""
	}

	var s string
	if err := json.Unmarshal(body.Detail, &s); err == nil {
		return s
	}

	var items []struct {
		Msg string `json:"msg"`
		Loc []any  `json:"loc"`
	}
	if err := json.Unmarshal(body.Detail, &items); err == nil {
		msgs := make([]string, 0, len(items))
		for _, it := range items {
			if it.Msg == "" {
				continue
			}
			if n := len(it.Loc); n > 0 {
				msgs = append(msgs, fmt.Sprintf("%v: %s", it.Loc[n-1], it.Msg))
				continue
			}
			msgs = append(msgs, it.Msg)
		}
		return strings.Join(msgs, "; ")
	}

	return string(body.Detail)
}

func (c *Client) observe(op string, start time.Time, err error) {
	if c.metrics == nil {
		return
	}
	outcome := "ok"
	if err != nil {
		outcome = apperrors.KindOf(err).String()
	}
	c.metrics.BackendRequests.WithLabelValues(op, outcome).Inc()
	c.metrics.BackendLatency.WithLabelValues(op).Observe(time.Since(start).Seconds())
}
