package utils

import (
	"time"

	"github.com/go-resty/resty/v2"
)

// UserAgent identifies build-keeper clients to the plan server.
const UserAgent = "build-keeper"

// HTTPClient is the resty client the CLI uses to reach the plan server.
// It embeds *resty.Client so requests are built with the usual resty calls.
type HTTPClient struct {
	*resty.Client
}

// NewHTTPClient returns a client rooted at baseURL.
//
// Redirects are not followed: requests carry a bearer token and signing
// material, and neither should be replayed to another host.
func NewHTTPClient(baseURL string, timeout time.Duration) *HTTPClient {
	c := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(timeout).
		SetHeader("User-Agent", UserAgent).
		SetHeader("Accept", "application/json").
		SetRedirectPolicy(resty.NoRedirectPolicy())

	return &HTTPClient{Client: c}
}
