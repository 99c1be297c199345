// Package transport provides endpoint.RequestFunc implementations that talk
// JSON over HTTP, built on resty.
package transport

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/pkg/errors"

	"github.com/dylanonelson/endpoint"
)

// StatusError is returned for responses with a status code of 400 or above.
// Its exported fields become the properties of the stored error.
type StatusError struct {
	StatusCode int
	Status     string
	Method     string
	URL        string
	Body       string
}

// Error implements error.
func (e *StatusError) Error() string {
	return fmt.Sprintf("%s %s: %s", e.Method, e.URL, e.Status)
}

// ErrorName names the error in endpoint.ErrorInfo.
func (e *StatusError) ErrorName() string {
	return "StatusError"
}

type config struct {
	httpClient *http.Client
	timeout    time.Duration
	baseURL    string
	headers    map[string]string
}

// Option configures a Client.
type Option func(*config)

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *config) {
		c.timeout = d
	}
}

// WithHeader sets a header sent with every request.
func WithHeader(key, value string) Option {
	return func(c *config) {
		c.headers[key] = value
	}
}

// WithBaseURL resolves relative endpoint URLs against base.
func WithBaseURL(base string) Option {
	return func(c *config) {
		c.baseURL = base
	}
}

// WithHTTPClient sends requests through client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *config) {
		c.httpClient = client
	}
}

// Client issues JSON requests. It is safe for concurrent use.
type Client struct {
	http *resty.Client
}

// New creates a Client.
func New(options ...Option) *Client {
	cfg := &config{
		headers: map[string]string{
			"Accept":     "application/json",
			"User-Agent": "endpoint/" + endpoint.Version,
		},
	}
	for _, option := range options {
		option(cfg)
	}

	var rc *resty.Client
	if cfg.httpClient != nil {
		rc = resty.NewWithClient(cfg.httpClient)
	} else {
		rc = resty.New()
	}
	rc.SetHeaders(cfg.headers)
	if cfg.timeout > 0 {
		rc.SetTimeout(cfg.timeout)
	}
	if cfg.baseURL != "" {
		rc.SetBaseURL(cfg.baseURL)
	}

	return &Client{http: rc}
}

// Get fetches url and decodes the JSON body into a generic value. It
// satisfies endpoint.RequestFunc; params are already part of url.
func (c *Client) Get(ctx context.Context, url string, _ endpoint.Params) (any, error) {
	var out any
	if err := c.do(ctx, http.MethodGet, url, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Post sends params as a JSON body to url and decodes the JSON response. It
// satisfies endpoint.RequestFunc.
func (c *Client) Post(ctx context.Context, url string, params endpoint.Params) (any, error) {
	var out any
	if err := c.do(ctx, http.MethodPost, url, params, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// JSON returns a RequestFunc that issues method requests and decodes the
// response into a T. Non-GET requests send the params as a JSON body.
func JSON[T any](c *Client, method string) endpoint.RequestFunc {
	return func(ctx context.Context, url string, params endpoint.Params) (any, error) {
		var body any
		if method != http.MethodGet && method != http.MethodHead {
			body = params
		}
		var out T
		if err := c.do(ctx, method, url, body, &out); err != nil {
			return nil, err
		}
		return out, nil
	}
}

func (c *Client) do(ctx context.Context, method, url string, body, out any) error {
	req := c.http.R().
		SetContext(ctx).
		SetResult(out).
		ForceContentType("application/json")
	if body != nil {
		req.SetHeader("Content-Type", "application/json").SetBody(body)
	}

	resp, err := req.Execute(method, url)
	if err != nil {
		if !received(resp) {
			return errors.Wrapf(err, "%s %s", method, url)
		}
		if resp.IsSuccess() && resp.Size() == 0 {
			return nil
		}
		return errors.Wrap(err, "decode response")
	}

	if resp.IsError() {
		return &StatusError{
			StatusCode: resp.StatusCode(),
			Status:     resp.Status(),
			Method:     method,
			URL:        url,
			Body:       resp.String(),
		}
	}

	return nil
}

// received reports whether a response arrived before err occurred, which
// leaves decoding as the only step that can have failed.
func received(resp *resty.Response) bool {
	return resp != nil && resp.RawResponse != nil
}
