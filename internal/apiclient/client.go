// Package apiclient wraps all outbound calls to the booking backend: base
// address resolution, bearer token injection from the session store, and
// the global 401 interception that invalidates the session.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/eliteresort/resortadmin/internal/session"
)

func debugf(format string, v ...interface{}) {
	if os.Getenv("LOG_LEVEL") == "debug" {
		log.Printf(format, v...)
	}
}

// Options configures a Client. Session is required; everything else has a
// usable zero value.
type Options struct {
	// BaseURL is the backend origin. Trailing slashes are stripped.
	BaseURL string

	// LoginPath is exempt from the global 401 interception: a rejected
	// login must not clear session state that was never set.
	LoginPath string

	Session        *session.Store
	OnUnauthorized func()

	HTTPClient *http.Client
	Timeout    time.Duration
	Headers    map[string]string
	Registerer prometheus.Registerer
}

// Client is the single HTTP client every resource client calls through.
// Each request is attempted exactly once; there is no retry or backoff.
type Client struct {
	base           string
	loginPath      string
	session        *session.Store
	onUnauthorized func()
	httpc          *http.Client
	headers        map[string]string
	metrics        *metrics
}

// New constructs the process-wide client.
func New(opts Options) *Client {
	httpc := opts.HTTPClient
	if httpc == nil {
		timeout := opts.Timeout
		if timeout == 0 {
			timeout = 30 * time.Second
		}
		httpc = &http.Client{Timeout: timeout}
	}
	return &Client{
		base:           strings.TrimRight(opts.BaseURL, "/"),
		loginPath:      opts.LoginPath,
		session:        opts.Session,
		onUnauthorized: opts.OnUnauthorized,
		httpc:          httpc,
		headers:        opts.Headers,
		metrics:        newMetrics(opts.Registerer),
	}
}

func (c *Client) urlFor(path string, query url.Values) string {
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	u := c.base + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	return u
}

// Do issues one request. A non-nil body is JSON-encoded. The response body
// is returned for 2xx statuses; otherwise the error is a *NetworkError or
// a *HTTPError.
func (c *Client) Do(ctx context.Context, method, path string, query url.Values, body interface{}) ([]byte, error) {
	var reader io.Reader
	contentType := ""
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode request body: %w", err)
		}
		reader = bytes.NewReader(raw)
		contentType = "application/json"
	}
	return c.send(ctx, method, path, c.urlFor(path, query), reader, contentType)
}

// Upload issues a multipart request carrying a single file field plus
// optional extra form fields. Used by the room image upload.
func (c *Client) Upload(ctx context.Context, method, path, fileField, filename string, content io.Reader, fields map[string]string) ([]byte, error) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile(fileField, filename)
	if err != nil {
		return nil, fmt.Errorf("build multipart body: %w", err)
	}
	if _, err := io.Copy(part, content); err != nil {
		return nil, fmt.Errorf("read upload content: %w", err)
	}
	for k, v := range fields {
		if err := writer.WriteField(k, v); err != nil {
			return nil, fmt.Errorf("build multipart body: %w", err)
		}
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("build multipart body: %w", err)
	}
	return c.send(ctx, method, path, c.urlFor(path, nil), &buf, writer.FormDataContentType())
}

func (c *Client) send(ctx context.Context, method, path, fullURL string, body io.Reader, contentType string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, method, fullURL, body)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	for k, v := range c.headers {
		req.Header.Set(k, v)
	}
	req.Header.Set("X-Request-ID", uuid.NewString())

	if token, ok := c.session.Token(ctx); ok {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	start := time.Now()
	resp, err := c.httpc.Do(req)
	if err != nil {
		c.metrics.observe(method, path, 0, time.Since(start))
		return nil, &NetworkError{URL: fullURL, Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	c.metrics.observe(method, path, resp.StatusCode, time.Since(start))
	if err != nil {
		return nil, &NetworkError{URL: fullURL, Err: err}
	}

	if resp.StatusCode >= 400 {
		if resp.StatusCode == http.StatusUnauthorized && path != c.loginPath {
			debugf("apiclient: 401 from %s %s, clearing session", method, path)
			if clearErr := c.session.ClearSession(ctx); clearErr != nil {
				debugf("apiclient: session clear failed: %v", clearErr)
			}
			if c.onUnauthorized != nil {
				c.onUnauthorized()
			}
		}
		return nil, &HTTPError{Status: resp.StatusCode, Body: raw}
	}
	return raw, nil
}

// Get issues a GET with optional query parameters.
func (c *Client) Get(ctx context.Context, path string, query url.Values) ([]byte, error) {
	return c.Do(ctx, http.MethodGet, path, query, nil)
}

// Post issues a POST with a JSON body.
func (c *Client) Post(ctx context.Context, path string, body interface{}) ([]byte, error) {
	return c.Do(ctx, http.MethodPost, path, nil, body)
}

// Put issues a PUT with a JSON body.
func (c *Client) Put(ctx context.Context, path string, body interface{}) ([]byte, error) {
	return c.Do(ctx, http.MethodPut, path, nil, body)
}

// Delete issues a DELETE.
func (c *Client) Delete(ctx context.Context, path string) ([]byte, error) {
	return c.Do(ctx, http.MethodDelete, path, nil, nil)
}
