// Package upload delivers confirmed trims to an HTTP upload endpoint, the
// same way the upload form posts its hidden fields.
package upload

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"time"

	"golang.org/x/net/publicsuffix"
)

// DefaultTimeout bounds one upload request.
const DefaultTimeout = 15 * time.Second

// Client posts forms with a session cookie jar.
type Client struct {
	httpClient *http.Client
	jar        http.CookieJar
	timeout    time.Duration
	userAgent  string
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithTimeout sets the request timeout. Non-positive values keep the default.
func WithTimeout(d time.Duration) ClientOption {
	return func(c *Client) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// WithUserAgent sets the User-Agent header.
func WithUserAgent(ua string) ClientOption {
	return func(c *Client) {
		c.userAgent = ua
	}
}

// NewClient creates a client with the given options.
func NewClient(opts ...ClientOption) (*Client, error) {
	// Upload endpoints usually sit behind a login session
	jar, err := cookiejar.New(&cookiejar.Options{
		PublicSuffixList: publicsuffix.List,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create cookie jar: %w", err)
	}

	c := &Client{
		jar:       jar,
		timeout:   DefaultTimeout,
		userAgent: "cliptrim/1.0",
	}
	for _, opt := range opts {
		opt(c)
	}
	c.httpClient = &http.Client{Jar: jar, Timeout: c.timeout}
	return c, nil
}

// reply is the part of a response an upload looks at.
type reply struct {
	code   int
	status string
	body   []byte
}

func (r *reply) ok() bool {
	return r.code >= 200 && r.code <= 299
}

// postForm posts url-encoded form values and reads the whole reply.
func (c *Client) postForm(ctx context.Context, endpoint string, values url.Values) (*reply, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(values.Encode()))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}
	return &reply{code: resp.StatusCode, status: resp.Status, body: body}, nil
}

// SetCookies stores cookies for u, e.g. a login session for the upload
// endpoint.
func (c *Client) SetCookies(u *url.URL, cookies []*http.Cookie) {
	c.jar.SetCookies(u, cookies)
}
