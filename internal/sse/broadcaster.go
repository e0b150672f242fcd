package sse

import (
	"encoding/json"
	"log/slog"

	"github.com/snaphunt/snaphunt/internal/model"
)

// Broadcaster pushes JSON room events to connected SSE clients. Broadcasts
// are best-effort: a room with no hub has no viewers and nothing is sent.
type Broadcaster struct {
	hubManager *HubManager
	logger     *slog.Logger
}

// NewBroadcaster creates a new Broadcaster
func NewBroadcaster(hubManager *HubManager, logger *slog.Logger) *Broadcaster {
	return &Broadcaster{
		hubManager: hubManager,
		logger:     logger.With(slog.String("component", "sse-broadcaster")),
	}
}

// Broadcast sends an event with the given payload to all of a room's clients
func (b *Broadcaster) Broadcast(roomID model.RoomID, event model.EventType, payload any) {
	hub := b.hubManager.GetHub(roomID)
	if hub == nil {
		return
	}

	data, err := json.Marshal(payload)
	if err != nil {
		b.logger.Error("sse failed to encode event payload",
			slog.String("room", string(roomID)),
			slog.String("event", string(event)),
			slog.Any("error", err))
		return
	}

	hub.BroadcastEvent(string(event), string(data))
}

// PlayerJoined announces a new roster member
func (b *Broadcaster) PlayerJoined(roomID model.RoomID, member *model.RoomMember) {
	b.Broadcast(roomID, model.EventPlayerJoined, model.PlayerEventPayload{
		PlayerID:    member.Player.ID,
		DisplayName: member.Player.DisplayName,
		Role:        string(member.Role),
	})
}

// PlayerLeft announces a departure
func (b *Broadcaster) PlayerLeft(roomID model.RoomID, playerID model.PlayerID) {
	b.Broadcast(roomID, model.EventPlayerLeft, model.PlayerEventPayload{
		PlayerID: playerID,
	})
}

// GamemasterChanged announces a new gamemaster
func (b *Broadcaster) GamemasterChanged(roomID model.RoomID, playerID model.PlayerID) {
	b.Broadcast(roomID, model.EventGamemasterChanged, model.PlayerEventPayload{
		PlayerID: playerID,
		Role:     string(model.RoleGamemaster),
	})
}

// PlayerRenamed announces a display-name change
func (b *Broadcaster) PlayerRenamed(roomID model.RoomID, playerID model.PlayerID, name string) {
	b.Broadcast(roomID, model.EventPlayerRenamed, model.PlayerEventPayload{
		PlayerID:    playerID,
		DisplayName: name,
	})
}

// SettingsUpdated announces a settings change
func (b *Broadcaster) SettingsUpdated(roomID model.RoomID) {
	b.Broadcast(roomID, model.EventSettingsUpdated, struct{}{})
}

// RoundStarted announces a new round
func (b *Broadcaster) RoundStarted(roomID model.RoomID, round *model.Round) {
	b.Broadcast(roomID, model.EventRoundStarted, model.RoundEventPayload{
		RoundNumber: round.Number,
		Status:      string(round.Status),
	})
}

// ReferenceSubmitted announces that the hunter turn is open
func (b *Broadcaster) ReferenceSubmitted(roomID model.RoomID, round *model.Round) {
	b.Broadcast(roomID, model.EventReferenceSubmitted, model.HintEventPayload{
		RoundNumber:   round.Number,
		RevealedHints: round.RevealedHints,
		TotalHints:    len(round.Hints),
	})
}

// HintRevealed announces newly visible hints
func (b *Broadcaster) HintRevealed(roomID model.RoomID, round *model.Round) {
	b.Broadcast(roomID, model.EventHintRevealed, model.HintEventPayload{
		RoundNumber:   round.Number,
		RevealedHints: round.RevealedHints,
		TotalHints:    len(round.Hints),
	})
}

// SubmissionReceived announces a hunter submission without exposing its score
func (b *Broadcaster) SubmissionReceived(roomID model.RoomID, round *model.Round, playerID model.PlayerID) {
	b.Broadcast(roomID, model.EventSubmissionReceived, model.SubmissionEventPayload{
		RoundNumber: round.Number,
		PlayerID:    playerID,
		Submissions: len(round.Submissions),
	})
}

// RoundEnded announces a completed round
func (b *Broadcaster) RoundEnded(roomID model.RoomID, number int) {
	b.Broadcast(roomID, model.EventRoundEnded, model.RoundEventPayload{
		RoundNumber: number,
		Status:      string(model.RoundStatusCompleted),
	})
}
