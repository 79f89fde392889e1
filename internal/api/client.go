// Package api is the HTTP gateway to the movie service: a thin wrapper over
// net/http that speaks the JSON envelope protocol, carries the session cookie
// across invocations, and normalizes every failure into *Error.
package api

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/gofrs/uuid/v5"
	"go.uber.org/zap"
)

// Options configures the gateway.
type Options struct {
	// CookiePath is where the session cookie is mirrored between runs.
	// Empty disables persistence (in-memory jar only).
	CookiePath string
	// Insecure skips TLS certificate verification (dev only).
	Insecure bool
	// Logger receives request diagnostics. Defaults to zap.NewNop.
	Logger *zap.Logger
}

// Client issues envelope-shaped requests against a single base URL.
// It never retries and never produces user-visible output.
type Client struct {
	base *url.URL
	hc   *http.Client
	jar  *Jar
	log  *zap.Logger
}

// New constructs a gateway for the given base URL, e.g. "https://host:8080".
func New(baseURL string, opts Options) (*Client, error) {
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, err
	}
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	jar, err := NewJar(opts.CookiePath, base)
	if err != nil {
		return nil, err
	}
	hc := &http.Client{Jar: jar}
	if opts.Insecure {
		hc.Transport = &http.Transport{
			TLSClientConfig: &tls.Config{InsecureSkipVerify: true}, //nolint:gosec // explicit -insecure flag
		}
	}
	return &Client{base: base, hc: hc, jar: jar, log: log}, nil
}

// Cookie returns the named cookie currently held for the base URL, or nil.
func (c *Client) Cookie(name string) *http.Cookie {
	for _, ck := range c.jar.Cookies(c.base) {
		if ck.Name == name {
			return ck
		}
	}
	return nil
}

// ClearCookies drops every cookie held for the base URL.
func (c *Client) ClearCookies() { c.jar.Clear() }

// Request performs one round trip and returns the parsed envelope. The body,
// when non-nil, is JSON-encoded. Caller headers merge over the transport
// defaults; setting the same key overrides, leaving others intact. The caller
// still inspects Envelope.Success on a nil error.
func (c *Client) Request(ctx context.Context, method, endpoint string, body any, header http.Header) (*Envelope, error) {
	ref, err := url.Parse(endpoint)
	if err != nil {
		return nil, transportErr(err)
	}
	target := c.base.ResolveReference(ref)

	var rd io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return nil, transportErr(err)
		}
		rd = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, target.String(), rd)
	if err != nil {
		return nil, transportErr(err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	reqID := requestID()
	req.Header.Set("X-Request-Id", reqID)
	for k, vs := range header {
		req.Header.Del(k)
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}

	start := time.Now()
	resp, err := c.hc.Do(req)
	if err != nil {
		c.log.Warn("api request failed",
			zap.String("method", method),
			zap.String("path", target.Path),
			zap.String("reqId", reqID),
			zap.Error(err),
		)
		return nil, transportErr(err)
	}
	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, transportErr(err)
	}

	c.log.Debug("api",
		zap.String("method", method),
		zap.String("path", target.Path),
		zap.Int("status", resp.StatusCode),
		zap.Duration("dur", time.Since(start)),
		zap.String("reqId", reqID),
	)

	// An HTML error page must not be mistaken for an envelope.
	ct := resp.Header.Get("Content-Type")
	if !strings.Contains(ct, "application/json") {
		return nil, protocolErr(resp.StatusCode, ct)
	}

	var env Envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, decodeErr(resp.StatusCode, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, httpErr(resp.StatusCode, env.Error)
	}
	return &env, nil
}

// Get issues a GET for the endpoint.
func (c *Client) Get(ctx context.Context, endpoint string) (*Envelope, error) {
	return c.Request(ctx, http.MethodGet, endpoint, nil, nil)
}

// Post issues a POST with a JSON body.
func (c *Client) Post(ctx context.Context, endpoint string, body any) (*Envelope, error) {
	return c.Request(ctx, http.MethodPost, endpoint, body, nil)
}

// Put issues a PUT with a JSON body.
func (c *Client) Put(ctx context.Context, endpoint string, body any) (*Envelope, error) {
	return c.Request(ctx, http.MethodPut, endpoint, body, nil)
}

// Patch issues a PATCH with a JSON body.
func (c *Client) Patch(ctx context.Context, endpoint string, body any) (*Envelope, error) {
	return c.Request(ctx, http.MethodPatch, endpoint, body, nil)
}

// Delete issues a DELETE for the endpoint.
func (c *Client) Delete(ctx context.Context, endpoint string) (*Envelope, error) {
	return c.Request(ctx, http.MethodDelete, endpoint, nil, nil)
}

func requestID() string {
	id, err := uuid.NewV4()
	if err != nil {
		return "unknown"
	}
	return id.String()
}
