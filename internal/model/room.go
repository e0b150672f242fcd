package model

import "time"

// RoomID uniquely identifies a room
type RoomID string

// JoinCode is a human-readable code for joining rooms
type JoinCode string

// RoomStatus represents the current state of a room
type RoomStatus string

const (
	RoomStatusWaiting    RoomStatus = "waiting"     // Between rounds, joinable
	RoomStatusInProgress RoomStatus = "in_progress" // A round is active
	RoomStatusFinished   RoomStatus = "finished"    // All rounds played
)

// MinPlayersToStart is the minimum roster size required to start a round
const MinPlayersToStart = 3

// DefaultMaxPlayers is the room capacity when none is configured
const DefaultMaxPlayers = 8

// RoomSettings holds configurable per-round settings for a room
type RoomSettings struct {
	RoundsCount  int           // Total rounds before the room finishes
	TurnDuration time.Duration // Length of the hunter submission window
	HintInterval time.Duration // Time between hint reveals
	MaxHints     int           // Hints requested from the vision service
}

// DefaultRoomSettings returns the default room settings
func DefaultRoomSettings() RoomSettings {
	return RoomSettings{
		RoundsCount:  3,
		TurnDuration: 60 * time.Second,
		HintInterval: 10 * time.Second,
		MaxHints:     5,
	}
}

// RoomMember represents a player's membership in a room
type RoomMember struct {
	Player   Player
	Role     PlayerRole
	Score    int // Cumulative across rounds, never negative
	JoinedAt time.Time
}

// Room represents one game session with a fixed roster and round count
type Room struct {
	ID           RoomID
	JoinCode     JoinCode
	HostID       PlayerID // Always the current gamemaster; empty when the room has no members
	Status       RoomStatus
	MaxPlayers   int
	Settings     RoomSettings
	Members      []RoomMember // Join order preserved; order drives host succession
	CurrentRound int          // Number of the most recently started round, 0 before round 1
	Rounds       map[int]RoundID
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// GetMember returns the member with the given player ID, or nil if not found
func (r *Room) GetMember(playerID PlayerID) *RoomMember {
	for i := range r.Members {
		if r.Members[i].Player.ID == playerID {
			return &r.Members[i]
		}
	}
	return nil
}

// Gamemaster returns the member currently holding the gamemaster role, or nil
func (r *Room) Gamemaster() *RoomMember {
	for i := range r.Members {
		if r.Members[i].Role == RoleGamemaster {
			return &r.Members[i]
		}
	}
	return nil
}

// Hunters returns all members with the hunter role, in join order
func (r *Room) Hunters() []RoomMember {
	var hunters []RoomMember
	for _, m := range r.Members {
		if m.Role == RoleHunter {
			hunters = append(hunters, m)
		}
	}
	return hunters
}

// IsFull reports whether the roster has reached capacity
func (r *Room) IsFull() bool {
	return len(r.Members) >= r.MaxPlayers
}

// AssignGamemaster sets the host to the given member and reassigns every
// role so that exactly one member is gamemaster. Returns false if the
// player is not in the room, in which case nothing changes.
func (r *Room) AssignGamemaster(playerID PlayerID) bool {
	if r.GetMember(playerID) == nil {
		return false
	}
	r.HostID = playerID
	for i := range r.Members {
		if r.Members[i].Player.ID == playerID {
			r.Members[i].Role = RoleGamemaster
		} else {
			r.Members[i].Role = RoleHunter
		}
	}
	return true
}

// RemoveMember removes the player and applies host succession: if the
// departing player held the gamemaster role, the first remaining member in
// join order becomes host/gamemaster. An empty room is left with a cleared
// host for external teardown. Returns false if the player was not a member.
// Idempotent under replay: removing an absent player changes nothing.
func (r *Room) RemoveMember(playerID PlayerID) bool {
	idx := -1
	for i := range r.Members {
		if r.Members[i].Player.ID == playerID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return false
	}

	wasHost := r.HostID == playerID
	r.Members = append(r.Members[:idx], r.Members[idx+1:]...)

	if len(r.Members) == 0 {
		r.HostID = ""
		return true
	}
	if wasHost {
		r.AssignGamemaster(r.Members[0].Player.ID)
	}
	return true
}
