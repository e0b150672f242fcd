package room

import (
	"context"
	"log/slog"
	"strings"

	"github.com/snaphunt/snaphunt/internal/dependencies/clock"
	"github.com/snaphunt/snaphunt/internal/dependencies/random"
	"github.com/snaphunt/snaphunt/internal/model"
	"github.com/snaphunt/snaphunt/internal/roomlock"
	"github.com/snaphunt/snaphunt/internal/storage"
)

const (
	// RoomIDLength is the length of generated room ids
	RoomIDLength = 12
	// JoinCodeLength is the length of generated join codes
	JoinCodeLength = 6
	// CodeAlphabet is the characters used in room ids and join codes (avoid confusing chars)
	CodeAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"
)

// Controller manages the room roster: creation, join/leave, gamemaster
// succession, renames, and settings. Every operation runs under the room's
// lock so roster mutation is serialized per room.
type Controller struct {
	storage storage.Storage
	locks   *roomlock.KeyedMutex
	clock   clock.Clock
	random  random.Random
	logger  *slog.Logger
}

// NewController creates a new room Controller
func NewController(
	storage storage.Storage,
	locks *roomlock.KeyedMutex,
	clock clock.Clock,
	random random.Random,
	logger *slog.Logger,
) *Controller {
	return &Controller{
		storage: storage,
		locks:   locks,
		clock:   clock,
		random:  random,
		logger:  logger,
	}
}

// CreateRoom creates a new room with the given player as host and gamemaster.
// A roundsCount of zero selects the default; negative counts are rejected.
func (c *Controller) CreateRoom(ctx context.Context, host model.Player, roundsCount int) (*model.Room, error) {
	if roundsCount < 0 {
		return nil, model.ErrInvalidRoundsCount
	}

	settings := model.DefaultRoomSettings()
	if roundsCount > 0 {
		settings.RoundsCount = roundsCount
	}

	now := c.clock.Now()

	// Generate a unique room id
	var id model.RoomID
	for {
		id = model.RoomID(c.random.String(RoomIDLength, CodeAlphabet))
		exists, err := c.storage.RoomExists(ctx, id)
		if err != nil {
			return nil, err
		}
		if !exists {
			break
		}
	}

	room := &model.Room{
		ID:         id,
		JoinCode:   model.JoinCode(c.random.String(JoinCodeLength, CodeAlphabet)),
		HostID:     host.ID,
		Status:     model.RoomStatusWaiting,
		MaxPlayers: model.DefaultMaxPlayers,
		Settings:   settings,
		Members: []model.RoomMember{
			{
				Player:   host,
				Role:     model.RoleGamemaster,
				JoinedAt: now,
			},
		},
		Rounds:    make(map[int]model.RoundID),
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := c.storage.SaveRoom(ctx, room); err != nil {
		return nil, err
	}

	c.logger.Info("room created",
		slog.String("room_id", string(id)),
		slog.String("host_id", string(host.ID)),
		slog.Int("rounds_count", settings.RoundsCount),
	)

	return room, nil
}

// GetRoom retrieves a room by id
func (c *Controller) GetRoom(ctx context.Context, id model.RoomID) (*model.Room, error) {
	return c.storage.GetRoom(ctx, id)
}

// JoinRoom adds a player to a room. The join code is checked only when the
// caller supplies one. The creator holds the gamemaster role; everyone else
// joins as a hunter.
func (c *Controller) JoinRoom(ctx context.Context, roomID model.RoomID, player model.Player, code model.JoinCode) (*model.Room, error) {
	unlock := c.locks.Lock(roomID)
	defer unlock()

	room, err := c.storage.GetRoom(ctx, roomID)
	if err != nil {
		return nil, err
	}

	if code != "" && code != room.JoinCode {
		return nil, model.ErrRoomCodeMismatch
	}
	if room.Status != model.RoomStatusWaiting {
		return nil, model.ErrRoomNotJoinable
	}
	if room.GetMember(player.ID) != nil {
		return nil, model.ErrAlreadyJoined
	}
	if room.IsFull() {
		return nil, model.ErrRoomFull
	}

	role := model.RoleHunter
	if player.ID == room.HostID {
		role = model.RoleGamemaster
	}

	room.Members = append(room.Members, model.RoomMember{
		Player:   player,
		Role:     role,
		JoinedAt: c.clock.Now(),
	})
	room.UpdatedAt = c.clock.Now()

	if err := c.storage.SaveRoom(ctx, room); err != nil {
		return nil, err
	}
	return room, nil
}

// LeaveRoom removes a player from a room. If the departing player held the
// gamemaster role, the first remaining member in join order succeeds them.
// An emptied room keeps its record with a cleared host; teardown is an
// external policy.
func (c *Controller) LeaveRoom(ctx context.Context, roomID model.RoomID, playerID model.PlayerID) (*model.Room, error) {
	unlock := c.locks.Lock(roomID)
	defer unlock()

	room, err := c.storage.GetRoom(ctx, roomID)
	if err != nil {
		return nil, err
	}

	if !room.RemoveMember(playerID) {
		return nil, model.ErrPlayerNotInRoom
	}
	room.UpdatedAt = c.clock.Now()

	if err := c.storage.SaveRoom(ctx, room); err != nil {
		return nil, err
	}

	c.logger.Info("player left room",
		slog.String("room_id", string(roomID)),
		slog.String("player_id", string(playerID)),
		slog.String("host_id", string(room.HostID)),
	)

	return room, nil
}

// SetGamemaster makes the given player the host/gamemaster and demotes all
// other members to hunters. Purely a roster operation: it has no effect on
// any round's turn state and may be invoked between rounds.
func (c *Controller) SetGamemaster(ctx context.Context, roomID model.RoomID, playerID model.PlayerID) (*model.Room, error) {
	unlock := c.locks.Lock(roomID)
	defer unlock()

	room, err := c.storage.GetRoom(ctx, roomID)
	if err != nil {
		return nil, err
	}

	if !room.AssignGamemaster(playerID) {
		return nil, model.ErrPlayerNotInRoom
	}
	room.UpdatedAt = c.clock.Now()

	if err := c.storage.SaveRoom(ctx, room); err != nil {
		return nil, err
	}
	return room, nil
}

// UpdateDisplayName renames a player within a room. The trimmed name must be
// 1-12 characters.
func (c *Controller) UpdateDisplayName(ctx context.Context, roomID model.RoomID, playerID model.PlayerID, name string) (*model.RoomMember, error) {
	trimmed := strings.TrimSpace(name)
	if len([]rune(trimmed)) < model.MinDisplayNameLength || len([]rune(trimmed)) > model.MaxDisplayNameLength {
		return nil, model.ErrInvalidName
	}

	unlock := c.locks.Lock(roomID)
	defer unlock()

	room, err := c.storage.GetRoom(ctx, roomID)
	if err != nil {
		return nil, err
	}

	member := room.GetMember(playerID)
	if member == nil {
		return nil, model.ErrPlayerNotFound
	}

	member.Player.DisplayName = trimmed
	room.UpdatedAt = c.clock.Now()

	if err := c.storage.SaveRoom(ctx, room); err != nil {
		return nil, err
	}
	return member, nil
}

// UpdateSettings changes the configured round count. Settings are immutable
// once the first round has started.
func (c *Controller) UpdateSettings(ctx context.Context, roomID model.RoomID, roundsCount int) (*model.Room, error) {
	if roundsCount < 1 {
		return nil, model.ErrInvalidRoundsCount
	}

	unlock := c.locks.Lock(roomID)
	defer unlock()

	room, err := c.storage.GetRoom(ctx, roomID)
	if err != nil {
		return nil, err
	}

	if room.Status != model.RoomStatusWaiting || room.CurrentRound > 0 {
		return nil, model.ErrRoomNotWaiting
	}

	room.Settings.RoundsCount = roundsCount
	room.UpdatedAt = c.clock.Now()

	if err := c.storage.SaveRoom(ctx, room); err != nil {
		return nil, err
	}
	return room, nil
}

// DeleteRoom tears a room down along with its rounds and photos
func (c *Controller) DeleteRoom(ctx context.Context, roomID model.RoomID) error {
	unlock := c.locks.Lock(roomID)
	defer unlock()

	if _, err := c.storage.GetRoom(ctx, roomID); err != nil {
		return err
	}

	if err := c.storage.DeleteRoundsForRoom(ctx, roomID); err != nil {
		return err
	}
	if err := c.storage.DeletePhotosForRoom(ctx, roomID); err != nil {
		return err
	}
	if err := c.storage.DeleteRoom(ctx, roomID); err != nil {
		return err
	}

	c.logger.Info("room deleted", slog.String("room_id", string(roomID)))
	return nil
}
