// Package httpapi is the HTTP layer shared by the data-endpoint services.
// Every call sends the bearer access token supplied by the caller; tokens
// are never cached here.
package httpapi

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"time"

	"github.com/goccy/go-json"

	apperrors "github.com/jrsteele09/go-webinar-sync/internal/errors"
)

// maxErrorBodySize limits how much of an error response body is read back
// for diagnostics.
const maxErrorBodySize = 64 * 1024

// Client performs authenticated JSON requests against the remote API.
type Client struct {
	httpClient *http.Client
}

// NewClient creates a Client with the given request timeout.
func NewClient(timeout time.Duration) *Client {
	return &Client{httpClient: &http.Client{Timeout: timeout}}
}

// NewClientWith wraps an existing http.Client (primarily for testing).
func NewClientWith(httpClient *http.Client) *Client {
	return &Client{httpClient: httpClient}
}

// Get performs a GET and decodes the JSON response into result.
func (c *Client) Get(ctx context.Context, url, accessToken string, result any) error {
	return c.do(ctx, http.MethodGet, url, accessToken, nil, result)
}

// Post marshals body as JSON, performs a POST and decodes the response into
// result when result is non-nil.
func (c *Client) Post(ctx context.Context, url, accessToken string, body, result any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return apperrors.Wrapf(apperrors.ErrInvalidArgument, "marshal request body (%v)", err)
	}
	return c.do(ctx, http.MethodPost, url, accessToken, payload, result)
}

func (c *Client) do(ctx context.Context, method, url, accessToken string, body []byte, result any) error {
	if accessToken == "" {
		return apperrors.Wrapf(apperrors.ErrInvalidArgument, "access token is required")
	}

	var reader io.Reader = http.NoBody
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return apperrors.Wrapf(apperrors.ErrRemoteAPI, "build request (%v)", err)
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return apperrors.Wrapf(apperrors.ErrRemoteAPI, "%s %s (%v)", method, url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return apperrors.Wrapf(apperrors.ErrRemoteAPI, "%s %s: status %d: %s",
			method, url, resp.StatusCode, readBodyForError(resp.Body))
	}

	if result == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
		return apperrors.Wrapf(apperrors.ErrRemoteAPI, "decode %s response (%v)", url, err)
	}
	return nil
}

// readBodyForError reads at most maxErrorBodySize bytes of a response body.
func readBodyForError(r io.Reader) string {
	body, err := io.ReadAll(io.LimitReader(r, maxErrorBodySize))
	if err != nil {
		return "(failed to read response body)"
	}
	if len(body) == maxErrorBodySize {
		body = append(body, []byte("... (truncated)")...)
	}
	return string(body)
}
