package model

// EventType identifies the type of room event pushed to connected viewers
type EventType string

const (
	// Roster events
	EventPlayerJoined      EventType = "player_joined"
	EventPlayerLeft        EventType = "player_left"
	EventGamemasterChanged EventType = "gamemaster_changed"
	EventPlayerRenamed     EventType = "player_renamed"
	EventSettingsUpdated   EventType = "settings_updated"

	// Round events
	EventRoundStarted       EventType = "round_started"
	EventReferenceSubmitted EventType = "reference_submitted"
	EventHintRevealed       EventType = "hint_revealed"
	EventSubmissionReceived EventType = "submission_received"
	EventRoundEnded         EventType = "round_ended"
)

// PlayerEventPayload carries roster event data
type PlayerEventPayload struct {
	PlayerID    PlayerID `json:"player_id"`
	DisplayName string   `json:"display_name,omitempty"`
	Role        string   `json:"role,omitempty"`
}

// RoundEventPayload carries round lifecycle event data
type RoundEventPayload struct {
	RoundNumber int    `json:"round_number"`
	Status      string `json:"status,omitempty"`
}

// HintEventPayload carries hint reveal data
type HintEventPayload struct {
	RoundNumber   int `json:"round_number"`
	RevealedHints int `json:"revealed_hints"`
	TotalHints    int `json:"total_hints"`
}

// SubmissionEventPayload carries submission data. The score is deliberately
// omitted so viewers cannot infer another hunter's result mid-turn.
type SubmissionEventPayload struct {
	RoundNumber int      `json:"round_number"`
	PlayerID    PlayerID `json:"player_id"`
	Submissions int      `json:"submissions"`
}
