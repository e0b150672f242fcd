package collab

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// VisionClient derives textual hints from a reference photo.
// Implementations must honour the context deadline; the caller invokes this
// inside a room's serialized critical section.
type VisionClient interface {
	GenerateHints(ctx context.Context, photo []byte, contentType string, maxHints int) ([]string, error)
}

// HTTPVisionClient calls an external vision/hint-generation service
type HTTPVisionClient struct {
	baseURL    string
	timeout    time.Duration
	httpClient *http.Client
}

// NewHTTPVisionClient creates a vision client for the given service URL
func NewHTTPVisionClient(baseURL string, timeout time.Duration) *HTTPVisionClient {
	if timeout <= 0 {
		timeout = DefaultCallTimeout
	}
	return &HTTPVisionClient{
		baseURL:    baseURL,
		timeout:    timeout,
		httpClient: &http.Client{},
	}
}

var _ VisionClient = (*HTTPVisionClient)(nil)

type hintsResponse struct {
	Hints []string `json:"hints"`
}

// GenerateHints posts the photo bytes and returns ranked hints
func (c *HTTPVisionClient) GenerateHints(ctx context.Context, photo []byte, contentType string, maxHints int) ([]string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	url := fmt.Sprintf("%s/v1/hints?max=%d", c.baseURL, maxHints)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(photo))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", contentType)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("vision service returned status %d", resp.StatusCode)
	}

	var body hintsResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, err
	}

	hints := body.Hints
	if len(hints) > maxHints {
		hints = hints[:maxHints]
	}
	return hints, nil
}
