// Package api is the pet-manager REST client.
//
// Client handles JSON plumbing; the auth transport (transport.go) owns
// bearer injection and the single refresh-and-retry on authorization
// failures, so services above it never see a 401 that a fresh token
// could have fixed.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/geia-vip/pet-manager-console/internal/errors"
)

// DefaultTimeout bounds every request. The backend gives no guarantee a
// hung call ever returns, so an unbounded client is not an option.
const DefaultTimeout = 30 * time.Second

// Client is the pet-manager API client
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// Option customizes a Client.
type Option func(*Client)

// WithTimeout overrides the default request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.httpClient.Timeout = d
		}
	}
}

// WithTransport injects a RoundTripper. The auth transport is installed
// this way, and tests use it to stub the network.
func WithTransport(rt http.RoundTripper) Option {
	return func(c *Client) {
		if rt != nil {
			c.httpClient.Transport = rt
		}
	}
}

// NewClient creates a new API client
func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: DefaultTimeout,
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the configured API root.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// doRequest performs an HTTP request with a JSON body
func (c *Client) doRequest(ctx context.Context, method, path string, query url.Values, body any) (*http.Response, error) {
	var reqBody io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeAPIRequest, "marshal request body", err)
		}
		reqBody = bytes.NewReader(jsonBody)
	}

	fullURL := c.baseURL + path
	if len(query) > 0 {
		fullURL += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, fullURL, reqBody)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeAPIRequest, "create request", err)
	}

	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeAPIRequest, fmt.Sprintf("%s %s", method, path), err)
	}

	return resp, nil
}

// doJSON performs a request and decodes the JSON response into target.
// target may be nil for endpoints with no interesting body.
func (c *Client) doJSON(ctx context.Context, method, path string, query url.Values, body, target any) error {
	resp, err := c.doRequest(ctx, method, path, query, body)
	if err != nil {
		return err
	}
	return parseResponse(resp, target)
}

// doMultipart uploads a single file under the given form field.
func (c *Client) doMultipart(ctx context.Context, path, field, filename string, content io.Reader) error {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	part, err := w.CreateFormFile(field, filename)
	if err != nil {
		return errors.Wrap(errors.ErrCodeAPIRequest, "create multipart body", err)
	}
	if _, err := io.Copy(part, content); err != nil {
		return errors.Wrap(errors.ErrCodeAPIRequest, "write multipart body", err)
	}
	if err := w.Close(); err != nil {
		return errors.Wrap(errors.ErrCodeAPIRequest, "finish multipart body", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(buf.Bytes()))
	if err != nil {
		return errors.Wrap(errors.ErrCodeAPIRequest, "create request", err)
	}
	req.Header.Set("Content-Type", w.FormDataContentType())
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return errors.Wrap(errors.ErrCodeAPIRequest, "POST "+path, err)
	}

	return parseResponse(resp, nil)
}

// errorResponse is the API's error envelope
type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// parseResponse parses the response body into the target struct
func parseResponse(resp *http.Response, target any) error {
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<20))

		msg := strings.TrimSpace(string(body))
		var errResp errorResponse
		if err := json.Unmarshal(body, &errResp); err == nil {
			if errResp.Message != "" {
				msg = errResp.Message
			} else if errResp.Error != "" {
				msg = errResp.Error
			}
		}
		if msg == "" {
			msg = http.StatusText(resp.StatusCode)
		}

		code := errors.ErrCodeAPIStatus
		switch resp.StatusCode {
		case http.StatusUnauthorized, http.StatusForbidden:
			code = errors.ErrCodeAPIUnauthorized
		case http.StatusNotFound:
			code = errors.ErrCodeAPINotFound
		}

		return errors.New(code, fmt.Sprintf("request failed with status %d: %s", resp.StatusCode, msg))
	}

	if target != nil {
		if err := json.NewDecoder(resp.Body).Decode(target); err != nil {
			return errors.Wrap(errors.ErrCodeAPIDecode, "decode response", err)
		}
	}

	return nil
}
