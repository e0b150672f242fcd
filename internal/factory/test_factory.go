package factory

import (
	"time"

	"github.com/snaphunt/snaphunt/internal/dependencies/mocks"
	"github.com/snaphunt/snaphunt/internal/services/auth"
	"github.com/snaphunt/snaphunt/internal/storage/memory"
	"github.com/snaphunt/snaphunt/internal/testutil"
)

// TestApp extends App with test-specific helpers
type TestApp struct {
	*App

	// Mocks for test control
	MockClock      *mocks.MockClock
	MockRandom     *mocks.MockRandom
	MockVision     *mocks.MockVision
	MockSimilarity *mocks.MockSimilarity
}

// NewTestApp creates an App configured for testing with mocked dependencies
func NewTestApp() *TestApp {
	store := memory.New()
	mockClock := mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	mockRandom := mocks.NewMockRandom()
	mockVision := mocks.NewMockVision("red door", "brick wall", "round window")
	mockSimilarity := mocks.NewMockSimilarity(75)

	app := newWithDependencies(store, mockClock, mockRandom, mockVision, mockSimilarity, auth.DefaultConfig(), testutil.NopLogger())

	return &TestApp{
		App:            app,
		MockClock:      mockClock,
		MockRandom:     mockRandom,
		MockVision:     mockVision,
		MockSimilarity: mockSimilarity,
	}
}
