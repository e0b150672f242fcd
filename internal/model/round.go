package model

import "time"

// RoundID uniquely identifies a round
type RoundID string

// RoundStatus represents the current phase of a round
type RoundStatus string

const (
	RoundStatusPending        RoundStatus = "pending"         // Allocated but not yet started
	RoundStatusGamemasterTurn RoundStatus = "gamemaster_turn" // Waiting for the reference photo
	RoundStatusHunterTurn     RoundStatus = "hunter_turn"     // Hunters submitting
	RoundStatusScoring        RoundStatus = "scoring"         // Results being finalized
	RoundStatusCompleted      RoundStatus = "completed"       // Terminal
	RoundStatusCancelled      RoundStatus = "cancelled"       // Terminal, not reached by normal flow
)

// Hint is a textual clue derived from the reference photo.
// Hints are generated once per round in ranked order; slice order is reveal order.
type Hint struct {
	Text     string
	Revealed bool
}

// Submission is a hunter's attempt for a round
type Submission struct {
	PlayerID         PlayerID
	PhotoID          PhotoID
	SubmittedAt      time.Time
	Similarity       int // 0-100 from the similarity service
	RemainingSeconds int // Seconds left in the turn at submission, clamped to >= 0
	TotalScore       int // Similarity + RemainingSeconds
}

// Round represents one gamemaster/hunter cycle within a room
type Round struct {
	ID           RoundID
	RoomID       RoomID
	Number       int // 1-based, monotonic within the room
	Status       RoundStatus
	GamemasterID PlayerID

	// ReferencePhotoID is set exactly once by the gamemaster submission
	// and is immutable thereafter.
	ReferencePhotoID PhotoID

	Hints         []Hint
	RevealedHints int // Monotonic non-decreasing, bounded by len(Hints)

	TurnStartedAt time.Time // Start of the hunter turn
	TurnExpiresAt time.Time // Advisory; the round does not end itself
	NextHintAt    time.Time
	EndedAt       time.Time

	Submissions []Submission

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsTerminal reports whether the round can no longer change state
func (r *Round) IsTerminal() bool {
	return r.Status == RoundStatusCompleted || r.Status == RoundStatusCancelled
}

// SubmissionFor returns the submission by the given player, or nil if none
func (r *Round) SubmissionFor(playerID PlayerID) *Submission {
	for i := range r.Submissions {
		if r.Submissions[i].PlayerID == playerID {
			return &r.Submissions[i]
		}
	}
	return nil
}

// Elapsed returns the time since the hunter turn started, clamped to >= 0.
// Zero before the turn has started.
func (r *Round) Elapsed(now time.Time) time.Duration {
	if r.TurnStartedAt.IsZero() {
		return 0
	}
	elapsed := now.Sub(r.TurnStartedAt)
	if elapsed < 0 {
		return 0
	}
	return elapsed
}

// VisibleHints returns the text of hints revealed so far, in reveal order
func (r *Round) VisibleHints() []string {
	visible := make([]string, 0, r.RevealedHints)
	for _, h := range r.Hints {
		if h.Revealed {
			visible = append(visible, h.Text)
		}
	}
	return visible
}
