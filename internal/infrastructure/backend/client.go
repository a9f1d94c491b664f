// Package backend is the HTTP client for the Pirates REST API and its chat
// service.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/pirates/party-console/internal/api/metrics"
	"github.com/pirates/party-console/internal/core/domain"
	"github.com/pirates/party-console/internal/core/ports"
)

var _ ports.BackendAPI = (*Client)(nil)

const (
	defaultTimeout = 10 * time.Second
	maxErrorBody   = 4 << 10
)

// Config locates the two services.
type Config struct {
	BaseURL string
	ChatURL string
	Timeout time.Duration
}

// Client implements ports.BackendAPI.
type Client struct {
	baseURL string
	chatURL string
	http    *http.Client
	log     zerolog.Logger
}

func NewClient(cfg Config, log zerolog.Logger) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	chatURL := cfg.ChatURL
	if chatURL == "" {
		chatURL = cfg.BaseURL
	}
	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		chatURL: strings.TrimRight(chatURL, "/"),
		http:    &http.Client{Timeout: timeout},
		log:     log,
	}
}

// request describes one backend call. route is the path template used as the
// metric label; path is the concrete path.
type request struct {
	method string
	chat   bool
	route  string
	path   string
	query  url.Values
	token  string
	body   any
	form   url.Values
	out    any
}

// ackResponse is the body of backend mutations.
type ackResponse struct {
	Msg string `json:"msg"`
}

func (c *Client) do(ctx context.Context, r request) error {
	start := time.Now()
	outcome := "ok"
	defer func() {
		metrics.BackendRequestDuration.WithLabelValues(r.route, outcome).Observe(time.Since(start).Seconds())
	}()

	req, err := c.newRequest(ctx, r)
	if err != nil {
		outcome = "error"
		return err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			outcome = "cancelled"
			return fmt.Errorf("%s %s: %w", r.method, r.route, context.Cause(ctx))
		}
		outcome = "error"
		c.log.Warn().Err(err).Str("route", r.route).Msg("backend request failed")
		return fmt.Errorf("%s %s: %w: %v", r.method, r.route, domain.ErrBackendUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		err = statusError(resp)
		switch {
		case errors.Is(err, domain.ErrInvalidToken):
			outcome = "unauthorized"
		case errors.Is(err, domain.ErrNotFound):
			outcome = "not_found"
		default:
			outcome = "error"
			c.log.Warn().Int("status", resp.StatusCode).Str("route", r.route).Msg("backend returned an error")
		}
		return fmt.Errorf("%s %s: %w", r.method, r.route, err)
	}

	if r.out == nil {
		var ack ackResponse
		// Bodies other than an ack are not an error.
		if json.NewDecoder(resp.Body).Decode(&ack) == nil && ack.Msg == "fail" {
			outcome = "not_found"
			return fmt.Errorf("%s %s: %w", r.method, r.route, domain.ErrNotFound)
		}
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(r.out); err != nil {
		outcome = "error"
		return fmt.Errorf("%s %s: decode response: %w: %v", r.method, r.route, domain.ErrBackendUnavailable, err)
	}
	return nil
}

func (c *Client) newRequest(ctx context.Context, r request) (*http.Request, error) {
	base := c.baseURL
	if r.chat {
		base = c.chatURL
	}
	target := base + r.path
	if len(r.query) > 0 {
		target += "?" + r.query.Encode()
	}

	var (
		body        io.Reader
		contentType string
	)
	switch {
	case r.form != nil:
		body = strings.NewReader(r.form.Encode())
		contentType = "application/x-www-form-urlencoded"
	case r.body != nil:
		raw, err := json.Marshal(r.body)
		if err != nil {
			return nil, fmt.Errorf("encode %s body: %w", r.route, err)
		}
		body = bytes.NewReader(raw)
		contentType = "application/json"
	}

	req, err := http.NewRequestWithContext(ctx, r.method, target, body)
	if err != nil {
		return nil, fmt.Errorf("build %s request: %w", r.route, err)
	}
	req.Header.Set("Accept", "application/json")
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if r.token != "" {
		req.Header.Set("Authorization", "Bearer "+r.token)
	}
	return req, nil
}

// statusError maps a non-2xx response to a domain error, keeping the backend's
// message when it sent one.
func statusError(resp *http.Response) error {
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	msg := detailMessage(raw)

	var base error
	switch resp.StatusCode {
	case http.StatusUnauthorized:
		base = domain.ErrInvalidToken
	case http.StatusNotFound:
		base = domain.ErrNotFound
	default:
		base = domain.ErrBackendUnavailable
	}
	if msg == "" {
		return fmt.Errorf("%w (status %d)", base, resp.StatusCode)
	}
	return fmt.Errorf("%w (status %d): %s", base, resp.StatusCode, msg)
}

// detailMessage extracts the message from {"detail": "..."} or
// {"detail": {"msg": "..."}}.
func detailMessage(raw []byte) string {
	var body struct {
		Detail json.RawMessage `json:"detail"`
	}
	if json.Unmarshal(raw, &body) != nil || len(body.Detail) == 0 {
		return ""
	}
	var s string
	if json.Unmarshal(body.Detail, &s) == nil {
		return s
	}
	var obj ackResponse
	if json.Unmarshal(body.Detail, &obj) == nil {
		return obj.Msg
	}
	return ""
}

func listQuery(q ports.ListQuery, withOrder bool) url.Values {
	v := url.Values{}
	v.Set("page", strconv.Itoa(q.Page))
	v.Set("pageSize", strconv.Itoa(q.PageSize))
	if withOrder {
		v.Set("isOldestOrders", strconv.FormatBool(q.IsOldestOrders))
	}
	if q.Name != "" {
		v.Set("name", q.Name)
	}
	return v
}

func id(n int64) string {
	return strconv.FormatInt(n, 10)
}
