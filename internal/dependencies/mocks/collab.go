package mocks

import (
	"context"

	"github.com/snaphunt/snaphunt/internal/collab"
)

// MockVision is a mock implementation of collab.VisionClient for testing
type MockVision struct {
	// Hints to return from the next calls; an error takes precedence
	Hints []string
	Err   error

	// Calls counts invocations
	Calls int
}

var _ collab.VisionClient = (*MockVision)(nil)

// NewMockVision creates a MockVision returning the given hints
func NewMockVision(hints ...string) *MockVision {
	return &MockVision{Hints: hints}
}

// GenerateHints returns the configured hints or error
func (m *MockVision) GenerateHints(ctx context.Context, photo []byte, contentType string, maxHints int) ([]string, error) {
	m.Calls++
	if m.Err != nil {
		return nil, m.Err
	}
	hints := m.Hints
	if len(hints) > maxHints {
		hints = hints[:maxHints]
	}
	return hints, nil
}

// MockSimilarity is a mock implementation of collab.SimilarityClient for testing
type MockSimilarity struct {
	// Scores is a queue of results to return from Compare
	Scores     []int
	scoreIndex int

	Err   error
	Calls int
}

var _ collab.SimilarityClient = (*MockSimilarity)(nil)

// NewMockSimilarity creates a MockSimilarity returning the given scores in order
func NewMockSimilarity(scores ...int) *MockSimilarity {
	return &MockSimilarity{Scores: scores}
}

// Compare returns the next queued score, or the last one if exhausted
func (m *MockSimilarity) Compare(ctx context.Context, reference, candidate []byte) (int, error) {
	m.Calls++
	if m.Err != nil {
		return 0, m.Err
	}
	if len(m.Scores) == 0 {
		return 0, nil
	}
	if m.scoreIndex >= len(m.Scores) {
		return m.Scores[len(m.Scores)-1], nil
	}
	score := m.Scores[m.scoreIndex]
	m.scoreIndex++
	return score, nil
}

// QueueScores adds scores to the Compare result queue
func (m *MockSimilarity) QueueScores(scores ...int) {
	m.Scores = append(m.Scores, scores...)
}
