package response

import (
	"time"

	"github.com/snaphunt/snaphunt/internal/model"
	"github.com/snaphunt/snaphunt/internal/services/auth"
	"github.com/snaphunt/snaphunt/internal/services/round"
	"github.com/snaphunt/snaphunt/internal/services/scoring"
)

// Player represents a player in API responses
type Player struct {
	ID          string `json:"id"`
	DisplayName string `json:"display_name"`
	IsGuest     bool   `json:"is_guest"`
}

// PlayerFromModel converts a model.Player to a response Player
func PlayerFromModel(p *model.Player) Player {
	return Player{
		ID:          string(p.ID),
		DisplayName: p.DisplayName,
		IsGuest:     p.IsGuest,
	}
}

// AuthResponse is the response for authentication endpoints
type AuthResponse struct {
	Player       Player `json:"player"`
	SessionToken string `json:"session_token"`
}

// AuthResponseFromSession creates an AuthResponse from a session
func AuthResponseFromSession(s *auth.Session) AuthResponse {
	return AuthResponse{
		Player:       PlayerFromModel(&s.Player),
		SessionToken: s.Token,
	}
}

// RoomSettings represents room configuration
type RoomSettings struct {
	RoundsCount         int `json:"rounds_count"`
	TurnDurationSeconds int `json:"turn_duration_seconds"`
	HintIntervalSeconds int `json:"hint_interval_seconds"`
	MaxHints            int `json:"max_hints"`
}

// RoomSettingsFromModel converts model.RoomSettings
func RoomSettingsFromModel(s model.RoomSettings) RoomSettings {
	return RoomSettings{
		RoundsCount:         s.RoundsCount,
		TurnDurationSeconds: int(s.TurnDuration / time.Second),
		HintIntervalSeconds: int(s.HintInterval / time.Second),
		MaxHints:            s.MaxHints,
	}
}

// RoomMember represents a room member
type RoomMember struct {
	PlayerID    string `json:"player_id"`
	DisplayName string `json:"display_name"`
	Role        string `json:"role"`
	Score       int    `json:"score"`
	IsHost      bool   `json:"is_host"`
}

// RoomMemberFromModel converts model.RoomMember
func RoomMemberFromModel(m model.RoomMember, hostID model.PlayerID) RoomMember {
	return RoomMember{
		PlayerID:    string(m.Player.ID),
		DisplayName: m.Player.DisplayName,
		Role:        string(m.Role),
		Score:       m.Score,
		IsHost:      m.Player.ID == hostID,
	}
}

// Room represents a room in API responses
type Room struct {
	ID           string       `json:"id"`
	JoinCode     string       `json:"join_code"`
	Status       string       `json:"status"`
	MaxPlayers   int          `json:"max_players"`
	Settings     RoomSettings `json:"settings"`
	Members      []RoomMember `json:"members"`
	CurrentRound int          `json:"current_round"`
}

// RoomFromModel converts model.Room
func RoomFromModel(r *model.Room) Room {
	members := make([]RoomMember, len(r.Members))
	for i, m := range r.Members {
		members[i] = RoomMemberFromModel(m, r.HostID)
	}

	return Room{
		ID:           string(r.ID),
		JoinCode:     string(r.JoinCode),
		Status:       string(r.Status),
		MaxPlayers:   r.MaxPlayers,
		Settings:     RoomSettingsFromModel(r.Settings),
		Members:      members,
		CurrentRound: r.CurrentRound,
	}
}

// Submission represents a hunter submission
type Submission struct {
	PlayerID         string    `json:"player_id"`
	PhotoID          string    `json:"photo_id"`
	SubmittedAt      time.Time `json:"submitted_at"`
	Similarity       int       `json:"similarity"`
	RemainingSeconds int       `json:"remaining_seconds"`
	TotalScore       int       `json:"total_score"`
}

// SubmissionFromModel converts model.Submission
func SubmissionFromModel(s model.Submission) Submission {
	return Submission{
		PlayerID:         string(s.PlayerID),
		PhotoID:          string(s.PhotoID),
		SubmittedAt:      s.SubmittedAt,
		Similarity:       s.Similarity,
		RemainingSeconds: s.RemainingSeconds,
		TotalScore:       s.TotalScore,
	}
}

// RoundState is a point-in-time view of a round. Only revealed hints are
// carried; unrevealed hint text never leaves the server.
type RoundState struct {
	Number           int          `json:"number"`
	Status           string       `json:"status"`
	GamemasterID     string       `json:"gamemaster_id"`
	Hints            []string     `json:"hints"`
	HintsRevealed    int          `json:"hints_revealed"`
	HintsTotal       int          `json:"hints_total"`
	ElapsedSeconds   int          `json:"elapsed_seconds"`
	RemainingSeconds int          `json:"remaining_seconds"`
	Submissions      []Submission `json:"submissions"`
}

// RoundStateFromInfo converts a round.RoundInfo
func RoundStateFromInfo(info *round.RoundInfo) RoundState {
	r := info.Round

	submissions := make([]Submission, len(r.Submissions))
	for i, s := range r.Submissions {
		submissions[i] = SubmissionFromModel(s)
	}

	return RoundState{
		Number:           r.Number,
		Status:           string(r.Status),
		GamemasterID:     string(r.GamemasterID),
		Hints:            r.VisibleHints(),
		HintsRevealed:    r.RevealedHints,
		HintsTotal:       len(r.Hints),
		ElapsedSeconds:   info.ElapsedSeconds,
		RemainingSeconds: info.RemainingSeconds,
		Submissions:      submissions,
	}
}

// StartRoundResponse is the response after starting a round
type StartRoundResponse struct {
	Number       int    `json:"number"`
	Status       string `json:"status"`
	GamemasterID string `json:"gamemaster_id"`
}

// RoundResult is one entry of a round's results
type RoundResult struct {
	Rank             int    `json:"rank"`
	PlayerID         string `json:"player_id"`
	DisplayName      string `json:"display_name"`
	Similarity       int    `json:"similarity"`
	RemainingSeconds int    `json:"remaining_seconds"`
	TotalScore       int    `json:"total_score"`
}

// RoundResultFromModel converts scoring.RoundResult
func RoundResultFromModel(r scoring.RoundResult) RoundResult {
	return RoundResult{
		Rank:             r.Rank,
		PlayerID:         string(r.PlayerID),
		DisplayName:      r.DisplayName,
		Similarity:       r.Similarity,
		RemainingSeconds: r.RemainingSeconds,
		TotalScore:       r.TotalScore,
	}
}

// RoundResults holds a completed round's outcome
type RoundResults struct {
	Ranked       []RoundResult `json:"ranked"`
	DidNotSubmit []RoundResult `json:"did_not_submit"`
}

// RoundResultsFromModel converts scoring.RoundResults
func RoundResultsFromModel(r *scoring.RoundResults) RoundResults {
	ranked := make([]RoundResult, len(r.Ranked))
	for i, entry := range r.Ranked {
		ranked[i] = RoundResultFromModel(entry)
	}
	didNotSubmit := make([]RoundResult, len(r.DidNotSubmit))
	for i, entry := range r.DidNotSubmit {
		didNotSubmit[i] = RoundResultFromModel(entry)
	}
	return RoundResults{
		Ranked:       ranked,
		DidNotSubmit: didNotSubmit,
	}
}

// RankedPlayer is one leaderboard entry
type RankedPlayer struct {
	Rank        int    `json:"rank"`
	PlayerID    string `json:"player_id"`
	DisplayName string `json:"display_name"`
	Score       int    `json:"score"`
}

// Leaderboard is the room's cumulative standings
type Leaderboard struct {
	RoomStatus string         `json:"room_status"`
	Players    []RankedPlayer `json:"players"`
}

// LeaderboardFromModel builds a Leaderboard from ranked players
func LeaderboardFromModel(room *model.Room, ranked []scoring.RankedPlayer) Leaderboard {
	players := make([]RankedPlayer, len(ranked))
	for i, p := range ranked {
		players[i] = RankedPlayer{
			Rank:        p.Rank,
			PlayerID:    string(p.PlayerID),
			DisplayName: p.DisplayName,
			Score:       p.Score,
		}
	}
	return Leaderboard{
		RoomStatus: string(room.Status),
		Players:    players,
	}
}
