package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"taskboard/services/app/core"
)

// DefaultBaseURL is where the development backend listens.
const DefaultBaseURL = "http://localhost:3001"

// Client talks to the REST backend. One Client serves both the auth and
// the task operations.
type Client struct {
	log  *slog.Logger
	http *http.Client
	base *url.URL
	now  func() time.Time
}

type Option func(*Client)

func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.http = h }
}

// WithClock replaces the clock used to stamp createdAt/updatedAt.
func WithClock(now func() time.Time) Option {
	return func(c *Client) { c.now = now }
}

func NewClient(baseURL string, log *slog.Logger, opts ...Option) (*Client, error) {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("parse base url %q: %w", baseURL, err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("base url %q must be absolute", baseURL)
	}

	c := &Client{
		log:  log,
		http: http.DefaultClient,
		base: u,
		now:  time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// ---- Pinger

func (c *Client) Ping(ctx context.Context) error {
	return c.do(ctx, http.MethodGet, "/", nil, nil, nil)
}

var _ core.Pinger = (*Client)(nil)

// ---- transport

// transportError marks failures of the HTTP exchange itself, as opposed to
// business rule failures decided on this side.
type transportError struct {
	method string
	path   string
	status int
	err    error
}

func (e *transportError) Error() string {
	if e.status != 0 {
		return fmt.Sprintf("%s %s: unexpected status %d", e.method, e.path, e.status)
	}
	return fmt.Sprintf("%s %s: %v", e.method, e.path, e.err)
}

func (e *transportError) Unwrap() error { return e.err }

func isTransport(err error) bool {
	var te *transportError
	return errors.As(err, &te)
}

// mapErr converts transport failures into the fixed message of op and
// returns every other error unchanged.
func (c *Client) mapErr(op error, err error) error {
	if err == nil || !isTransport(err) {
		return err
	}
	c.log.Warn("backend request failed", "op", op.Error(), "error", err)
	return core.NewTransportError(op, err)
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, in, out any) error {
	u := *c.base
	u.Path = c.base.Path + path
	if query != nil {
		u.RawQuery = query.Encode()
	}
	fail := func(status int, err error) error {
		return &transportError{method: method, path: path, status: status, err: err}
	}

	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return fail(0, fmt.Errorf("encode request: %w", err))
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, u.String(), body)
	if err != nil {
		return fail(0, err)
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	c.log.Debug("backend request", "method", method, "url", u.String())

	resp, err := c.http.Do(req)
	if err != nil {
		return fail(0, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, resp.Body)
		return fail(resp.StatusCode, nil)
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fail(0, fmt.Errorf("decode response: %w", err))
	}
	return nil
}
