package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// Output handles formatting output based on the configured format
type Output struct {
	format string
}

// NewOutput creates a new Output formatter
func NewOutput(format string) *Output {
	return &Output{format: format}
}

// Print outputs data in the configured format
func (o *Output) Print(data any) {
	if o.format == "json" {
		o.printJSON(data)
	} else {
		o.printText(data)
	}
}

// PrintError outputs an error
func (o *Output) PrintError(err error) {
	if o.format == "json" {
		errData := map[string]any{
			"error": map[string]string{
				"message": err.Error(),
			},
		}
		data, _ := json.Marshal(errData)
		fmt.Fprintln(os.Stderr, string(data))
	} else {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
	}
}

// PrintMessage outputs a simple message
func (o *Output) PrintMessage(msg string) {
	if o.format == "json" {
		data, _ := json.Marshal(map[string]string{"message": msg})
		fmt.Println(string(data))
	} else {
		fmt.Println(msg)
	}
}

func (o *Output) printJSON(data any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func (o *Output) printText(data any) {
	switch v := data.(type) {
	case Player:
		o.printPlayer(v)
	case AuthResult:
		o.printAuthResult(v)
	case Room:
		o.printRoom(v)
	case RoomSettings:
		o.printRoomSettings(v)
	case RoundState:
		o.printRoundState(v)
	case Submission:
		o.printSubmission(v)
	case RoundResults:
		o.printRoundResults(v)
	case Leaderboard:
		o.printLeaderboard(v)
	case HealthResult:
		o.printHealthResult(v)
	default:
		// Fallback to JSON for unknown types
		o.printJSON(data)
	}
}

// Player response type (matches API)
type Player struct {
	ID          string `json:"id"`
	DisplayName string `json:"display_name"`
	IsGuest     bool   `json:"is_guest"`
}

// AuthResult combines player and token
type AuthResult struct {
	Player       Player `json:"player"`
	SessionToken string `json:"session_token"`
}

// RoomSettings response type
type RoomSettings struct {
	RoundsCount         int `json:"rounds_count"`
	TurnDurationSeconds int `json:"turn_duration_seconds"`
	HintIntervalSeconds int `json:"hint_interval_seconds"`
	MaxHints            int `json:"max_hints"`
}

// RoomMember response type
type RoomMember struct {
	PlayerID    string `json:"player_id"`
	DisplayName string `json:"display_name"`
	Role        string `json:"role"`
	Score       int    `json:"score"`
	IsHost      bool   `json:"is_host"`
}

// Room response type
type Room struct {
	ID           string       `json:"id"`
	JoinCode     string       `json:"join_code"`
	Status       string       `json:"status"`
	MaxPlayers   int          `json:"max_players"`
	Settings     RoomSettings `json:"settings"`
	Members      []RoomMember `json:"members"`
	CurrentRound int          `json:"current_round"`
}

// Submission response type
type Submission struct {
	PlayerID         string    `json:"player_id"`
	PhotoID          string    `json:"photo_id"`
	SubmittedAt      time.Time `json:"submitted_at"`
	Similarity       int       `json:"similarity"`
	RemainingSeconds int       `json:"remaining_seconds"`
	TotalScore       int       `json:"total_score"`
}

// RoundState response type
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

// RoundResult response type
type RoundResult struct {
	Rank             int    `json:"rank"`
	PlayerID         string `json:"player_id"`
	DisplayName      string `json:"display_name"`
	Similarity       int    `json:"similarity"`
	RemainingSeconds int    `json:"remaining_seconds"`
	TotalScore       int    `json:"total_score"`
}

// RoundResults response type
type RoundResults struct {
	Ranked       []RoundResult `json:"ranked"`
	DidNotSubmit []RoundResult `json:"did_not_submit"`
}

// RankedPlayer response type
type RankedPlayer struct {
	Rank        int    `json:"rank"`
	PlayerID    string `json:"player_id"`
	DisplayName string `json:"display_name"`
	Score       int    `json:"score"`
}

// Leaderboard response type
type Leaderboard struct {
	RoomStatus string         `json:"room_status"`
	Players    []RankedPlayer `json:"players"`
}

// HealthResult response type
type HealthResult struct {
	Status string `json:"status"`
}

func (o *Output) printPlayer(p Player) {
	guestStr := "no"
	if p.IsGuest {
		guestStr = "yes"
	}
	fmt.Printf("Player: %s (%s)\n", p.DisplayName, p.ID)
	fmt.Printf("Guest: %s\n", guestStr)
}

func (o *Output) printAuthResult(a AuthResult) {
	o.printPlayer(a.Player)
	fmt.Printf("Token: %s\n", a.SessionToken)
}

func (o *Output) printRoom(r Room) {
	fmt.Printf("Room: %s\n", r.ID)
	fmt.Printf("Join Code: %s\n", r.JoinCode)
	fmt.Printf("Status: %s\n", r.Status)
	fmt.Printf("Round: %d of %d\n", r.CurrentRound, r.Settings.RoundsCount)
	fmt.Printf("Members (%d/%d):\n", len(r.Members), r.MaxPlayers)
	for _, m := range r.Members {
		hostStr := ""
		if m.IsHost {
			hostStr = " [host]"
		}
		fmt.Printf("  - %s (%s) - %s, %d pts%s\n", m.DisplayName, m.PlayerID, m.Role, m.Score, hostStr)
	}
}

func (o *Output) printRoomSettings(s RoomSettings) {
	fmt.Printf("Rounds: %d\n", s.RoundsCount)
	fmt.Printf("Turn Duration: %ds\n", s.TurnDurationSeconds)
	fmt.Printf("Hint Interval: %ds\n", s.HintIntervalSeconds)
	fmt.Printf("Max Hints: %d\n", s.MaxHints)
}

func (o *Output) printRoundState(r RoundState) {
	fmt.Printf("Round %d: %s\n", r.Number, r.Status)
	fmt.Printf("Gamemaster: %s\n", r.GamemasterID)
	if r.Status == "hunter_turn" {
		fmt.Printf("Time: %ds elapsed, %ds remaining\n", r.ElapsedSeconds, r.RemainingSeconds)
	}
	if r.HintsTotal > 0 {
		fmt.Printf("Hints (%d of %d revealed):\n", r.HintsRevealed, r.HintsTotal)
		for i, h := range r.Hints {
			fmt.Printf("  %d. %s\n", i+1, h)
		}
	}
	if len(r.Submissions) > 0 {
		fmt.Printf("Submissions (%d):\n", len(r.Submissions))
		for _, s := range r.Submissions {
			fmt.Printf("  - %s: %d pts (similarity %d, %ds left)\n", s.PlayerID, s.TotalScore, s.Similarity, s.RemainingSeconds)
		}
	}
}

func (o *Output) printSubmission(s Submission) {
	fmt.Printf("Submitted at %s\n", s.SubmittedAt.Format(time.RFC3339))
	fmt.Printf("Similarity: %d\n", s.Similarity)
	fmt.Printf("Time Bonus: %d\n", s.RemainingSeconds)
	fmt.Printf("Total Score: %d\n", s.TotalScore)
}

func (o *Output) printRoundResults(r RoundResults) {
	fmt.Println("Results:")
	for _, entry := range r.Ranked {
		fmt.Printf("  %d. %s - %d pts (similarity %d + %ds)\n",
			entry.Rank, entry.DisplayName, entry.TotalScore, entry.Similarity, entry.RemainingSeconds)
	}
	for _, entry := range r.DidNotSubmit {
		fmt.Printf("  -. %s - no submission\n", entry.DisplayName)
	}
}

func (o *Output) printLeaderboard(l Leaderboard) {
	fmt.Printf("Leaderboard (%s):\n", l.RoomStatus)
	for _, p := range l.Players {
		fmt.Printf("  %d. %s - %d pts\n", p.Rank, p.DisplayName, p.Score)
	}
}

func (o *Output) printHealthResult(h HealthResult) {
	fmt.Printf("Status: %s\n", h.Status)
}
