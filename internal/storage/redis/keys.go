package redis

import (
	"fmt"

	"github.com/snaphunt/snaphunt/internal/model"
)

// Key prefix for all game-related data
const keyPrefix = "snaphunt"

// Key generation functions for each entity type

// playerKey returns the Redis key for a Player
func playerKey(id model.PlayerID) string {
	return fmt.Sprintf("%s:player:%s", keyPrefix, id)
}

// registeredPlayerKey returns the Redis key for a RegisteredPlayer
func registeredPlayerKey(playerID model.PlayerID) string {
	return fmt.Sprintf("%s:registered_player:%s", keyPrefix, playerID)
}

// usernameIndexKey returns the Redis key for the username -> player_id index
func usernameIndexKey(username string) string {
	return fmt.Sprintf("%s:idx:username:%s", keyPrefix, username)
}

// roomKey returns the Redis key for a Room
func roomKey(id model.RoomID) string {
	return fmt.Sprintf("%s:room:%s", keyPrefix, id)
}

// roundKey returns the Redis key for a Round
func roundKey(id model.RoundID) string {
	return fmt.Sprintf("%s:round:%s", keyPrefix, id)
}

// roomRoundsIndexKey returns the Redis key for the set of round keys in a room
func roomRoundsIndexKey(roomID model.RoomID) string {
	return fmt.Sprintf("%s:idx:room_rounds:%s", keyPrefix, roomID)
}

// photoKey returns the Redis key for a Photo
func photoKey(id model.PhotoID) string {
	return fmt.Sprintf("%s:photo:%s", keyPrefix, id)
}

// roomPhotosIndexKey returns the Redis key for the set of photo keys in a room
func roomPhotosIndexKey(roomID model.RoomID) string {
	return fmt.Sprintf("%s:idx:room_photos:%s", keyPrefix, roomID)
}
