// internal/common/http/client.go
package http

import (
	"net/http"
	"time"
)

// Client is the outbound HTTP client shared by the Google token and Sheets calls.
type Client struct {
	httpClient *http.Client
}

func NewClient(timeout time.Duration, userAgent string) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: timeout,
			Transport: &userAgentTransport{
				base:      http.DefaultTransport,
				userAgent: userAgent,
			},
		},
	}
}

// HTTPClient returns the underlying *http.Client for libraries that take one.
func (c *Client) HTTPClient() *http.Client {
	return c.httpClient
}

type userAgentTransport struct {
	base      http.RoundTripper
	userAgent string
}

func (t *userAgentTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if t.userAgent == "" || req.Header.Get("User-Agent") != "" {
		return t.base.RoundTrip(req)
	}
	clone := req.Clone(req.Context())
	clone.Header.Set("User-Agent", t.userAgent)
	return t.base.RoundTrip(clone)
}
