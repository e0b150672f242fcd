package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/snaphunt/snaphunt/internal/model"
)

type StorageSuite struct {
	suite.Suite
	storage *Storage
	ctx     context.Context
}

func TestStorageSuite(t *testing.T) {
	suite.Run(t, new(StorageSuite))
}

func (s *StorageSuite) SetupTest() {
	s.storage = New()
	s.ctx = context.Background()
}

// Player tests

func (s *StorageSuite) TestSaveAndGetPlayer() {
	player := &model.Player{
		ID:          "player-1",
		DisplayName: "Alice",
		IsGuest:     false,
		CreatedAt:   time.Now(),
	}

	err := s.storage.SavePlayer(s.ctx, player)
	s.Require().NoError(err)

	retrieved, err := s.storage.GetPlayer(s.ctx, "player-1")
	s.Require().NoError(err)
	s.Equal(player.ID, retrieved.ID)
	s.Equal(player.DisplayName, retrieved.DisplayName)
}

func (s *StorageSuite) TestGetPlayerNotFound() {
	_, err := s.storage.GetPlayer(s.ctx, "nonexistent")
	s.ErrorIs(err, model.ErrPlayerNotFound)
}

func (s *StorageSuite) TestDeletePlayer() {
	player := &model.Player{ID: "player-1", DisplayName: "Alice"}
	_ = s.storage.SavePlayer(s.ctx, player)

	err := s.storage.DeletePlayer(s.ctx, "player-1")
	s.Require().NoError(err)

	_, err = s.storage.GetPlayer(s.ctx, "player-1")
	s.ErrorIs(err, model.ErrPlayerNotFound)
}

// Registered player tests

func (s *StorageSuite) TestSaveAndGetRegisteredPlayer() {
	rp := &model.RegisteredPlayer{
		PlayerID:     "player-1",
		Username:     "alice",
		PasswordHash: "hash123",
		CreatedAt:    time.Now(),
	}

	err := s.storage.SaveRegisteredPlayer(s.ctx, rp)
	s.Require().NoError(err)

	retrieved, err := s.storage.GetRegisteredPlayer(s.ctx, "player-1")
	s.Require().NoError(err)
	s.Equal(rp.Username, retrieved.Username)
}

func (s *StorageSuite) TestGetRegisteredPlayerByUsername() {
	rp := &model.RegisteredPlayer{
		PlayerID:     "player-1",
		Username:     "alice",
		PasswordHash: "hash123",
	}
	_ = s.storage.SaveRegisteredPlayer(s.ctx, rp)

	retrieved, err := s.storage.GetRegisteredPlayerByUsername(s.ctx, "alice")
	s.Require().NoError(err)
	s.Equal("player-1", string(retrieved.PlayerID))
}

func (s *StorageSuite) TestGetRegisteredPlayerByUsernameNotFound() {
	_, err := s.storage.GetRegisteredPlayerByUsername(s.ctx, "nonexistent")
	s.ErrorIs(err, model.ErrPlayerNotFound)
}

// Room tests

func (s *StorageSuite) TestSaveAndGetRoom() {
	room := &model.Room{
		ID:        "ROOM12345678",
		JoinCode:  "ABC123",
		HostID:    "player-1",
		Status:    model.RoomStatusWaiting,
		Settings:  model.DefaultRoomSettings(),
		CreatedAt: time.Now(),
	}

	err := s.storage.SaveRoom(s.ctx, room)
	s.Require().NoError(err)

	retrieved, err := s.storage.GetRoom(s.ctx, "ROOM12345678")
	s.Require().NoError(err)
	s.Equal(room.ID, retrieved.ID)
	s.Equal(room.Status, retrieved.Status)
}

func (s *StorageSuite) TestGetRoomNotFound() {
	_, err := s.storage.GetRoom(s.ctx, "NONEXISTENT")
	s.ErrorIs(err, model.ErrRoomNotFound)
}

func (s *StorageSuite) TestRoomExists() {
	room := &model.Room{ID: "ROOM12345678", Status: model.RoomStatusWaiting}
	_ = s.storage.SaveRoom(s.ctx, room)

	exists, err := s.storage.RoomExists(s.ctx, "ROOM12345678")
	s.Require().NoError(err)
	s.True(exists)

	exists, err = s.storage.RoomExists(s.ctx, "NONEXISTENT")
	s.Require().NoError(err)
	s.False(exists)
}

func (s *StorageSuite) TestDeleteRoom() {
	room := &model.Room{ID: "ROOM12345678", Status: model.RoomStatusWaiting}
	_ = s.storage.SaveRoom(s.ctx, room)

	err := s.storage.DeleteRoom(s.ctx, "ROOM12345678")
	s.Require().NoError(err)

	_, err = s.storage.GetRoom(s.ctx, "ROOM12345678")
	s.ErrorIs(err, model.ErrRoomNotFound)
}

// Round tests

func (s *StorageSuite) TestSaveAndGetRound() {
	round := &model.Round{
		ID:           "round-1",
		RoomID:       "ROOM12345678",
		Number:       1,
		Status:       model.RoundStatusGamemasterTurn,
		GamemasterID: "player-1",
	}

	err := s.storage.SaveRound(s.ctx, round)
	s.Require().NoError(err)

	retrieved, err := s.storage.GetRound(s.ctx, "round-1")
	s.Require().NoError(err)
	s.Equal(round.ID, retrieved.ID)
	s.Equal(round.Status, retrieved.Status)
}

func (s *StorageSuite) TestGetRoundNotFound() {
	_, err := s.storage.GetRound(s.ctx, "nonexistent")
	s.ErrorIs(err, model.ErrRoundNotFound)
}

func (s *StorageSuite) TestDeleteRoundsForRoom() {
	round1 := &model.Round{ID: "round-1", RoomID: "room-a", Number: 1}
	round2 := &model.Round{ID: "round-2", RoomID: "room-a", Number: 2}
	round3 := &model.Round{ID: "round-3", RoomID: "room-b", Number: 1} // Different room

	_ = s.storage.SaveRound(s.ctx, round1)
	_ = s.storage.SaveRound(s.ctx, round2)
	_ = s.storage.SaveRound(s.ctx, round3)

	err := s.storage.DeleteRoundsForRoom(s.ctx, "room-a")
	s.Require().NoError(err)

	_, err = s.storage.GetRound(s.ctx, "round-1")
	s.ErrorIs(err, model.ErrRoundNotFound)
	_, err = s.storage.GetRound(s.ctx, "round-2")
	s.ErrorIs(err, model.ErrRoundNotFound)

	_, err = s.storage.GetRound(s.ctx, "round-3")
	s.NoError(err)
}

// Photo tests

func (s *StorageSuite) TestSaveAndGetPhoto() {
	photo := &model.Photo{
		ID:          "photo-1",
		RoomID:      "ROOM12345678",
		UploadedBy:  "player-1",
		ContentType: "image/jpeg",
		Data:        []byte("jpeg bytes"),
	}

	err := s.storage.SavePhoto(s.ctx, photo)
	s.Require().NoError(err)

	retrieved, err := s.storage.GetPhoto(s.ctx, "photo-1")
	s.Require().NoError(err)
	s.Equal(photo.ContentType, retrieved.ContentType)
	s.Equal(photo.Data, retrieved.Data)
}

func (s *StorageSuite) TestGetPhotoNotFound() {
	_, err := s.storage.GetPhoto(s.ctx, "nonexistent")
	s.ErrorIs(err, model.ErrPhotoNotFound)
}

func (s *StorageSuite) TestDeletePhotosForRoom() {
	photo1 := &model.Photo{ID: "photo-1", RoomID: "room-a"}
	photo2 := &model.Photo{ID: "photo-2", RoomID: "room-a"}
	photo3 := &model.Photo{ID: "photo-3", RoomID: "room-b"} // Different room

	_ = s.storage.SavePhoto(s.ctx, photo1)
	_ = s.storage.SavePhoto(s.ctx, photo2)
	_ = s.storage.SavePhoto(s.ctx, photo3)

	err := s.storage.DeletePhotosForRoom(s.ctx, "room-a")
	s.Require().NoError(err)

	_, err = s.storage.GetPhoto(s.ctx, "photo-1")
	s.ErrorIs(err, model.ErrPhotoNotFound)
	_, err = s.storage.GetPhoto(s.ctx, "photo-2")
	s.ErrorIs(err, model.ErrPhotoNotFound)

	_, err = s.storage.GetPhoto(s.ctx, "photo-3")
	s.NoError(err)
}
