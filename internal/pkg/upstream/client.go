// internal/pkg/upstream/client.go
package upstream

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

	"github.com/sirupsen/logrus"
	"github.com/your-org/ticketing-storefront/internal/config"
)

// Credential identifies the calling client session and its bearer token.
// An empty Token sends the request unauthenticated.
type Credential struct {
	ClientID string
	Token    string
}

// AuthRejectedHook is invoked whenever an upstream call answers 401 for a
// client session. Registering it here makes the adapter the single choke
// point for session invalidation.
type AuthRejectedHook func(ctx context.Context, clientID string)

// Client is the outbound HTTP adapter for the ticketing API. Every request
// to the upstream goes through it: it attaches the bearer token, applies the
// request timeout and classifies failures into the storefront error taxonomy.
type Client struct {
	config         *config.Config
	client         *http.Client
	baseURL        string
	logger         *logrus.Logger
	onAuthRejected AuthRejectedHook
}

// NewClient creates a new upstream API client
func NewClient(cfg *config.Config, logger *logrus.Logger) *Client {
	return &Client{
		config:  cfg,
		client:  &http.Client{Timeout: cfg.Upstream.Timeout},
		baseURL: strings.TrimRight(cfg.Upstream.BaseURL, "/"),
		logger:  logger,
	}
}

// SetAuthRejectedHook registers the session-invalidation hook. No component
// other than this hook may clear a session because of a failed call.
func (c *Client) SetAuthRejectedHook(hook AuthRejectedHook) {
	c.onAuthRejected = hook
}

// Get performs a GET request against the upstream API
func (c *Client) Get(ctx context.Context, cred Credential, path string, query url.Values, out interface{}) error {
	return c.do(ctx, cred, http.MethodGet, path, query, nil, out)
}

// Post performs a POST request with a JSON body against the upstream API
func (c *Client) Post(ctx context.Context, cred Credential, path string, body, out interface{}) error {
	return c.do(ctx, cred, http.MethodPost, path, nil, body, out)
}

// Put performs a PUT request with a JSON body against the upstream API
func (c *Client) Put(ctx context.Context, cred Credential, path string, body, out interface{}) error {
	return c.do(ctx, cred, http.MethodPut, path, nil, body, out)
}

// Delete performs a DELETE request against the upstream API
func (c *Client) Delete(ctx context.Context, cred Credential, path string, out interface{}) error {
	return c.do(ctx, cred, http.MethodDelete, path, nil, nil, out)
}

// Upload forwards a file as multipart/form-data to the upstream API
func (c *Client) Upload(ctx context.Context, cred Credential, path, field, filename string, file io.Reader, out interface{}) error {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	part, err := writer.CreateFormFile(field, filename)
	if err != nil {
		return fmt.Errorf("failed to create multipart field: %w", err)
	}
	if _, err := io.Copy(part, file); err != nil {
		return fmt.Errorf("failed to copy upload data: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to finalize multipart body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, &buf)
	if err != nil {
		return fmt.Errorf("failed to create upload request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.Header.Set("Accept", "application/json")
	if cred.Token != "" {
		req.Header.Set("Authorization", "Bearer "+cred.Token)
	}

	return c.send(ctx, cred, req, out)
}

func (c *Client) do(ctx context.Context, cred Credential, method, path string, query url.Values, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
		reader = bytes.NewBuffer(jsonData)
	}

	fullURL := c.baseURL + path
	if len(query) > 0 {
		fullURL += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, fullURL, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if cred.Token != "" {
		req.Header.Set("Authorization", "Bearer "+cred.Token)
	}

	return c.send(ctx, cred, req, out)
}

func (c *Client) send(ctx context.Context, cred Credential, req *http.Request, out interface{}) error {
	start := time.Now()

	resp, err := c.client.Do(req)
	if err != nil {
		c.logger.WithFields(logrus.Fields{
			"method": req.Method,
			"path":   req.URL.Path,
			"error":  err.Error(),
		}).Warn("Upstream request failed without a response")
		return newTransportError(err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return newTransportError(err)
	}

	if resp.StatusCode >= 400 {
		apiErr := newStatusError(resp.StatusCode, data)

		entry := c.logger.WithFields(logrus.Fields{
			"method":  req.Method,
			"path":    req.URL.Path,
			"status":  resp.StatusCode,
			"latency": time.Since(start),
		})
		if resp.StatusCode >= 500 {
			entry.Error("Upstream request failed")
		} else {
			entry.Warn("Upstream request rejected")
		}

		if resp.StatusCode == http.StatusUnauthorized && c.onAuthRejected != nil && cred.ClientID != "" {
			c.onAuthRejected(ctx, cred.ClientID)
		}

		return apiErr
	}

	if out != nil && len(data) > 0 {
		if err := json.Unmarshal(data, out); err != nil {
			return fmt.Errorf("failed to decode upstream response: %w", err)
		}
	}

	return nil
}

// AssetURL absolutizes a relative asset path (avatar, event image) against
// the asset server base URL. Absolute URLs pass through unchanged.
func (c *Client) AssetURL(path string) string {
	if path == "" {
		return ""
	}
	if strings.HasPrefix(path, "http") {
		return path
	}
	return strings.TrimRight(c.config.Upstream.AssetBaseURL, "/") + "/" + strings.TrimLeft(path, "/")
}
