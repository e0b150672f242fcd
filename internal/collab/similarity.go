package collab

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"time"
)

// DefaultCallTimeout bounds a single collaborator call. A stalled external
// service must not hold a room's critical section indefinitely.
const DefaultCallTimeout = 10 * time.Second

// SimilarityClient scores how closely a candidate photo matches a reference.
// Scores are in [0, 100].
type SimilarityClient interface {
	Compare(ctx context.Context, reference, candidate []byte) (int, error)
}

// HTTPSimilarityClient calls an external image-similarity service
type HTTPSimilarityClient struct {
	baseURL    string
	timeout    time.Duration
	httpClient *http.Client
}

// NewHTTPSimilarityClient creates a similarity client for the given service URL
func NewHTTPSimilarityClient(baseURL string, timeout time.Duration) *HTTPSimilarityClient {
	if timeout <= 0 {
		timeout = DefaultCallTimeout
	}
	return &HTTPSimilarityClient{
		baseURL:    baseURL,
		timeout:    timeout,
		httpClient: &http.Client{},
	}
}

var _ SimilarityClient = (*HTTPSimilarityClient)(nil)

type similarityResponse struct {
	Score int `json:"score"`
}

// Compare posts both photos as a multipart body and returns the score
func (c *HTTPSimilarityClient) Compare(ctx context.Context, reference, candidate []byte) (int, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for field, data := range map[string][]byte{"reference": reference, "candidate": candidate} {
		part, err := mw.CreateFormFile(field, field)
		if err != nil {
			return 0, err
		}
		if _, err := part.Write(data); err != nil {
			return 0, err
		}
	}
	if err := mw.Close(); err != nil {
		return 0, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/compare", &buf)
	if err != nil {
		return 0, err
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("similarity service returned status %d", resp.StatusCode)
	}

	var body similarityResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return 0, err
	}

	score := body.Score
	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}
	return score, nil
}
