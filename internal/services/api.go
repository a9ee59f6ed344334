// Raw HTTP client for the posting backend
package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"golang.org/x/oauth2"

	"github.com/poojitha20043/postx/internal/shared"
)

// Client provides methods for making raw HTTP requests to the posting backend.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a backend client. A nil http.Client falls back to
// [http.DefaultClient].
func NewClient(baseURL string, client *http.Client) *Client {
	if baseURL == "" {
		baseURL = "http://localhost:5000"
	}
	if client == nil {
		client = http.DefaultClient
	}

	return &Client{
		baseURL:    baseURL,
		httpClient: client,
	}
}

// NewAuthedHTTPClient wraps the session token in an [oauth2.StaticTokenSource]
// so every backend request carries an Authorization bearer header.
func NewAuthedHTTPClient(ctx context.Context, token string, timeout time.Duration) *http.Client {
	src := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token, TokenType: "Bearer"})
	client := oauth2.NewClient(ctx, src)
	client.Timeout = timeout
	return client
}

// APIResponse represents a raw backend response with status and body.
type APIResponse struct {
	StatusCode int
	Headers    http.Header
	Body       []byte
	IsJSON     bool
	JSONData   any
}

func (c *Client) do(req *http.Request) (*APIResponse, error) {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	apiResp := &APIResponse{
		StatusCode: resp.StatusCode,
		Headers:    resp.Header,
		Body:       body,
	}

	var jsonData any
	if err := json.Unmarshal(body, &jsonData); err == nil {
		apiResp.IsJSON = true
		apiResp.JSONData = jsonData
	}

	return apiResp, nil
}

// Get performs a GET request to the specified path and returns the raw response.
func (c *Client) Get(ctx context.Context, path string) (*APIResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	return c.do(req)
}

// PostJSON performs a POST request with the given JSON body.
func (c *Client) PostJSON(ctx context.Context, path string, data []byte) (*APIResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	return c.do(req)
}

// PostForm performs a multipart POST with string fields and optional file
// parts (field name to path on disk).
func (c *Client) PostForm(ctx context.Context, path string, fields map[string]string, files map[string]string) (*APIResponse, error) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	for name, value := range fields {
		if err := writer.WriteField(name, value); err != nil {
			return nil, fmt.Errorf("failed to write form field %s: %w", name, err)
		}
	}

	for name, filePath := range files {
		f, err := os.Open(filePath)
		if err != nil {
			return nil, fmt.Errorf("failed to open upload %s: %w", filePath, err)
		}

		part, err := writer.CreateFormFile(name, filepath.Base(filePath))
		if err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to create form file %s: %w", name, err)
		}
		if _, err := io.Copy(part, f); err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to copy upload %s: %w", filePath, err)
		}
		f.Close()
	}

	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("failed to finalize form: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, &buf)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", writer.FormDataContentType())
	return c.do(req)
}

// decodeJSON unmarshals a raw response body into out.
func decodeJSON(resp *APIResponse, out any) error {
	if err := json.Unmarshal(resp.Body, out); err != nil {
		return fmt.Errorf("failed to decode response (status %d): %w", resp.StatusCode, err)
	}
	return nil
}

// GetJSON performs a GET request and decodes the JSON body into out.
//
// A non-2xx status is an error even when the body decodes; read paths must
// be able to tell a backend failure apart from a real answer.
func (c *Client) GetJSON(ctx context.Context, path string, out any) error {
	resp, err := c.Get(ctx, path)
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("%w: status %d from %s", shared.ErrAPIRequest, resp.StatusCode, path)
	}
	if err := json.Unmarshal(resp.Body, out); err != nil {
		return fmt.Errorf("failed to decode response from %s: %w", path, err)
	}
	return nil
}

// PostJSONAs marshals in, performs a POST, and decodes the JSON body into out.
func (c *Client) PostJSONAs(ctx context.Context, path string, in, out any) error {
	data, err := json.Marshal(in)
	if err != nil {
		return fmt.Errorf("failed to encode request for %s: %w", path, err)
	}

	resp, err := c.PostJSON(ctx, path, data)
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
	}
	if err := json.Unmarshal(resp.Body, out); err != nil {
		return fmt.Errorf("failed to decode response from %s: %w", path, err)
	}
	return nil
}
