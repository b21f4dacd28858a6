// Package client fetches published data files over HTTP.
package client

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// maxBodyBytes caps a single data file download.
const maxBodyBytes = 8 << 20

// ErrStatus matches any non-2xx response.
var ErrStatus = errors.New("unexpected status")

// StatusError is returned when the server answers outside 2xx.
type StatusError struct {
	Name string
	Code int
	Body string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("%s: server returned %d", e.Name, e.Code)
	}
	return fmt.Sprintf("%s: server returned %d: %s", e.Name, e.Code, e.Body)
}

func (e *StatusError) Is(target error) bool { return target == ErrStatus }

// DataClient downloads named files relative to a base URL.
type DataClient struct {
	baseURL    string
	httpClient *http.Client
}

// NewDataClient creates a client for baseURL. A zero timeout leaves
// deadlines to the caller's context.
func NewDataClient(baseURL string, timeout time.Duration) *DataClient {
	return &DataClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

// BaseURL returns the normalised base URL.
func (c *DataClient) BaseURL() string {
	return c.baseURL
}

// Fetch downloads name and returns its body.
// GET {baseURL}/{name} -> raw bytes
func (c *DataClient) Fetch(ctx context.Context, name string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/"+name, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request for %s: %w", name, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", name, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", name, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet := string(body)
		if len(snippet) > 200 {
			snippet = snippet[:200]
		}
		return nil, &StatusError{Name: name, Code: resp.StatusCode, Body: strings.TrimSpace(snippet)}
	}

	return body, nil
}
