package model

import "time"

// PlayerID uniquely identifies a player across the system
type PlayerID string

// PlayerRole distinguishes the gamemaster from hunters within a room
type PlayerRole string

const (
	RoleGamemaster PlayerRole = "gamemaster"
	RoleHunter     PlayerRole = "hunter"
)

// Player represents a game participant
type Player struct {
	ID          PlayerID
	DisplayName string
	IsGuest     bool // true for unregistered players
	CreatedAt   time.Time
}

// RegisteredPlayer extends Player with authentication data
// Stored separately for security (password never in memory with session)
type RegisteredPlayer struct {
	PlayerID     PlayerID
	Username     string // login username (immutable)
	PasswordHash string // bcrypt hash
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Display-name constraints enforced on join and rename
const (
	MinDisplayNameLength = 1
	MaxDisplayNameLength = 12
)
