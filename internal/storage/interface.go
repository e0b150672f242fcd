package storage

import (
	"context"

	"github.com/snaphunt/snaphunt/internal/model"
)

// Storage defines the interface for data persistence. One record per room,
// one per round, one per photo; a save of a record is the unit of atomicity.
type Storage interface {
	// Player operations
	SavePlayer(ctx context.Context, player *model.Player) error
	GetPlayer(ctx context.Context, id model.PlayerID) (*model.Player, error)
	DeletePlayer(ctx context.Context, id model.PlayerID) error

	// Registered player operations
	SaveRegisteredPlayer(ctx context.Context, rp *model.RegisteredPlayer) error
	GetRegisteredPlayer(ctx context.Context, playerID model.PlayerID) (*model.RegisteredPlayer, error)
	GetRegisteredPlayerByUsername(ctx context.Context, username string) (*model.RegisteredPlayer, error)

	// Room operations
	SaveRoom(ctx context.Context, room *model.Room) error
	GetRoom(ctx context.Context, id model.RoomID) (*model.Room, error)
	DeleteRoom(ctx context.Context, id model.RoomID) error
	RoomExists(ctx context.Context, id model.RoomID) (bool, error)

	// Round operations
	SaveRound(ctx context.Context, round *model.Round) error
	GetRound(ctx context.Context, id model.RoundID) (*model.Round, error)
	DeleteRoundsForRoom(ctx context.Context, roomID model.RoomID) error

	// Photo operations
	SavePhoto(ctx context.Context, photo *model.Photo) error
	GetPhoto(ctx context.Context, id model.PhotoID) (*model.Photo, error)
	DeletePhotosForRoom(ctx context.Context, roomID model.RoomID) error
}
