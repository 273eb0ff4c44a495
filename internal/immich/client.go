package immich

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/immich-tools/immich-album-manager/internal/immich/dto"
)

// Client wraps HTTP operations against an Immich server's REST API.
//
// Client provides:
//   - API key authentication via the x-api-key header
//   - Server address normalisation (scheme, trailing slash, /api suffix)
//   - JSON encoding/decoding for requests and responses
//   - Timeout handling
//
// Example usage:
//
//	client := immich.NewClient("127.0.0.1:2283", apiKey)
//
//	// Check connectivity
//	err := client.Ping(ctx)
//
//	// List assets the server knows for a library folder
//	assets, err := client.FolderAssets(ctx, "2024/summer")
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	userAgent  string
}

// NewClient creates an API client for the given server address and API key.
//
// The server address is normalised so common forms all work:
//   - "127.0.0.1:2283" becomes "http://127.0.0.1:2283/api"
//   - "http://immich.local:2283/" becomes "http://immich.local:2283/api"
//   - "https://photos.example.com/api" is used as is
//
// The client is configured with a 60 second timeout.
func NewClient(server, apiKey string) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
		baseURL:   normalizeBaseURL(server),
		apiKey:    apiKey,
		userAgent: "immich-album-manager",
	}
}

// normalizeBaseURL turns a user-supplied server address into the API base URL.
func normalizeBaseURL(server string) string {
	s := strings.TrimSpace(server)
	if s == "" {
		return s
	}
	if !strings.Contains(s, "://") {
		s = "http://" + s
	}
	s = strings.TrimRight(s, "/")
	if !strings.HasSuffix(s, "/api") {
		s += "/api"
	}
	return s
}

// BaseURL returns the normalised API base URL the client talks to.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// APIError describes a non-2xx response from the server.
//
// The Message is taken from the server's JSON error envelope when the
// body carries one, and falls back to the HTTP status text otherwise.
type APIError struct {
	// StatusCode is the HTTP status of the response.
	StatusCode int

	// Message is the human-readable server error.
	Message string
}

// Error implements the error interface.
func (e *APIError) Error() string {
	return fmt.Sprintf("HTTP %d: %s", e.StatusCode, e.Message)
}

// Ping checks connectivity to the server.
//
// Returns an error if the server is unreachable or answers with
// anything other than the expected pong.
func (c *Client) Ping(ctx context.Context) error {
	var out struct {
		Res string `json:"res"`
	}
	if err := c.do(ctx, http.MethodGet, "/server/ping", nil, &out); err != nil {
		return err
	}
	if out.Res != "pong" {
		return fmt.Errorf("unexpected ping response: %q", out.Res)
	}
	return nil
}

// do performs a request against the API with the standard headers set,
// marshalling body (when non-nil) as JSON and decoding the response
// into out (when non-nil).
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("x-api-key", c.apiKey)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return parseError(resp)
	}

	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

// parseError turns a non-2xx response into an *APIError, preferring the
// server's message field when the body carries one.
func parseError(resp *http.Response) error {
	apiErr := &APIError{
		StatusCode: resp.StatusCode,
		Message:    http.StatusText(resp.StatusCode),
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 4096))
	if err != nil || len(body) == 0 {
		return apiErr
	}

	var envelope dto.JSONError
	if err := json.Unmarshal(body, &envelope); err == nil && envelope.Message.Text != "" {
		apiErr.Message = envelope.Message.Text
	}
	return apiErr
}
