package round

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/snaphunt/snaphunt/internal/dependencies/mocks"
	"github.com/snaphunt/snaphunt/internal/model"
	"github.com/snaphunt/snaphunt/internal/roomlock"
	"github.com/snaphunt/snaphunt/internal/services/hint"
	"github.com/snaphunt/snaphunt/internal/services/room"
	"github.com/snaphunt/snaphunt/internal/services/scoring"
	"github.com/snaphunt/snaphunt/internal/storage/memory"
	"github.com/snaphunt/snaphunt/internal/testutil"
)

type ControllerSuite struct {
	suite.Suite
	storage    *memory.Storage
	clock      *mocks.MockClock
	random     *mocks.MockRandom
	vision     *mocks.MockVision
	similarity *mocks.MockSimilarity
	rooms      *room.Controller
	controller *Controller
	ctx        context.Context

	host    model.Player
	hunter1 model.Player
	hunter2 model.Player
}

func TestControllerSuite(t *testing.T) {
	suite.Run(t, new(ControllerSuite))
}

func (s *ControllerSuite) SetupTest() {
	s.storage = memory.New()
	s.clock = mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	s.random = mocks.NewMockRandom()
	s.vision = mocks.NewMockVision("red door", "brick wall", "round window")
	s.similarity = mocks.NewMockSimilarity(75)

	locks := roomlock.New()
	logger := testutil.NopLogger()
	s.rooms = room.NewController(s.storage, locks, s.clock, s.random, logger)
	s.controller = NewController(
		s.storage, locks, hint.NewScheduler(), scoring.New(),
		s.vision, s.similarity, s.clock, logger,
	)
	s.ctx = context.Background()

	s.host = model.Player{ID: "host-1", DisplayName: "Host", IsGuest: true, CreatedAt: s.clock.Now()}
	s.hunter1 = model.Player{ID: "hunter-1", DisplayName: "Alice", IsGuest: true, CreatedAt: s.clock.Now()}
	s.hunter2 = model.Player{ID: "hunter-2", DisplayName: "Bob", IsGuest: true, CreatedAt: s.clock.Now()}
}

// createRoom creates a three-member room ready to start a round
func (s *ControllerSuite) createRoom() *model.Room {
	s.random.QueueString("ROOM12345678", "ABC123")
	created, err := s.rooms.CreateRoom(s.ctx, s.host, 0)
	s.Require().NoError(err)
	_, err = s.rooms.JoinRoom(s.ctx, created.ID, s.hunter1, created.JoinCode)
	s.Require().NoError(err)
	_, err = s.rooms.JoinRoom(s.ctx, created.ID, s.hunter2, created.JoinCode)
	s.Require().NoError(err)
	return created
}

// startRound starts a round and returns it
func (s *ControllerSuite) startRound(roomID model.RoomID) *model.Round {
	rnd, err := s.controller.StartRound(s.ctx, roomID, s.host.ID)
	s.Require().NoError(err)
	return rnd
}

// submitReference submits the gamemaster's photo and opens the hunter turn
func (s *ControllerSuite) submitReference(roomID model.RoomID, number int) *model.Round {
	rnd, _, err := s.controller.SubmitReferencePhoto(s.ctx, roomID, number, s.host.ID, []byte("reference"), "image/jpeg")
	s.Require().NoError(err)
	return rnd
}

// StartRound tests

func (s *ControllerSuite) TestStartRoundSucceeds() {
	created := s.createRoom()

	rnd := s.startRound(created.ID)

	s.Equal(1, rnd.Number)
	s.Equal(model.RoundStatusGamemasterTurn, rnd.Status)
	s.Equal(s.host.ID, rnd.GamemasterID)
	s.NotEmpty(rnd.ID)

	updated, _ := s.rooms.GetRoom(s.ctx, created.ID)
	s.Equal(model.RoomStatusInProgress, updated.Status)
	s.Equal(1, updated.CurrentRound)
	s.Equal(rnd.ID, updated.Rounds[1])
}

func (s *ControllerSuite) TestStartRoundFailsForNonHost() {
	created := s.createRoom()

	_, err := s.controller.StartRound(s.ctx, created.ID, s.hunter1.ID)
	s.ErrorIs(err, model.ErrInvalidGamemaster)
}

func (s *ControllerSuite) TestStartRoundFailsWithTooFewPlayers() {
	s.random.QueueString("ROOM12345678", "ABC123")
	created, err := s.rooms.CreateRoom(s.ctx, s.host, 0)
	s.Require().NoError(err)
	_, err = s.rooms.JoinRoom(s.ctx, created.ID, s.hunter1, created.JoinCode)
	s.Require().NoError(err)

	_, err = s.controller.StartRound(s.ctx, created.ID, s.host.ID)
	s.ErrorIs(err, model.ErrNotEnoughPlayers)
}

func (s *ControllerSuite) TestStartRoundFailsWhenAllRoundsPlayed() {
	created := s.createRoom()

	for i := 1; i <= created.Settings.RoundsCount; i++ {
		s.startRound(created.ID)
		_, err := s.controller.EndRound(s.ctx, created.ID, i, s.host.ID)
		s.Require().NoError(err)
	}

	_, err := s.controller.StartRound(s.ctx, created.ID, s.host.ID)
	s.ErrorIs(err, model.ErrAllRoundsCompleted)
}

func (s *ControllerSuite) TestStartRoundNumbersAreSequential() {
	created := s.createRoom()

	first := s.startRound(created.ID)
	_, err := s.controller.EndRound(s.ctx, created.ID, first.Number, s.host.ID)
	s.Require().NoError(err)

	second := s.startRound(created.ID)
	s.Equal(2, second.Number)
}

// SubmitReferencePhoto tests

func (s *ControllerSuite) TestSubmitReferencePhotoOpensHunterTurn() {
	created := s.createRoom()
	s.startRound(created.ID)

	rnd, photo, err := s.controller.SubmitReferencePhoto(s.ctx, created.ID, 1, s.host.ID, []byte("reference"), "image/jpeg")
	s.Require().NoError(err)

	s.Equal(model.RoundStatusHunterTurn, rnd.Status)
	s.Equal(photo.ID, rnd.ReferencePhotoID)
	s.Equal(s.clock.Now(), rnd.TurnStartedAt)
	s.Equal(s.clock.Now().Add(created.Settings.TurnDuration), rnd.TurnExpiresAt)
}

func (s *ControllerSuite) TestSubmitReferencePhotoRevealsFirstHint() {
	created := s.createRoom()
	s.startRound(created.ID)

	rnd := s.submitReference(created.ID, 1)

	s.Len(rnd.Hints, 3)
	s.Equal(1, rnd.RevealedHints)
	s.Equal([]string{"red door"}, rnd.VisibleHints())
	s.Equal(s.clock.Now().Add(created.Settings.HintInterval), rnd.NextHintAt)
}

func (s *ControllerSuite) TestSubmitReferencePhotoProceedsWhenHintsFail() {
	created := s.createRoom()
	s.startRound(created.ID)
	s.vision.Err = errors.New("vision unavailable")

	rnd, _, err := s.controller.SubmitReferencePhoto(s.ctx, created.ID, 1, s.host.ID, []byte("reference"), "image/jpeg")
	s.Require().NoError(err)

	s.Equal(model.RoundStatusHunterTurn, rnd.Status)
	s.Empty(rnd.Hints)
	s.Equal(0, rnd.RevealedHints)
}

func (s *ControllerSuite) TestSubmitReferencePhotoFailsForNonGamemaster() {
	created := s.createRoom()
	s.startRound(created.ID)

	_, _, err := s.controller.SubmitReferencePhoto(s.ctx, created.ID, 1, s.hunter1.ID, []byte("reference"), "image/jpeg")
	s.ErrorIs(err, model.ErrInvalidGamemaster)
}

func (s *ControllerSuite) TestSubmitReferencePhotoFailsOnSecondSubmission() {
	created := s.createRoom()
	s.startRound(created.ID)
	s.submitReference(created.ID, 1)

	_, _, err := s.controller.SubmitReferencePhoto(s.ctx, created.ID, 1, s.host.ID, []byte("again"), "image/jpeg")
	s.ErrorIs(err, model.ErrRoundNotInProgress)
}

// SubmitHunterPhoto tests

func (s *ControllerSuite) TestSubmitHunterPhotoScoresSubmission() {
	created := s.createRoom()
	s.startRound(created.ID)
	s.submitReference(created.ID, 1)

	s.similarity.Scores = []int{90}
	s.clock.Advance(10 * time.Second)

	sub, err := s.controller.SubmitHunterPhoto(s.ctx, created.ID, 1, s.hunter1.ID, []byte("attempt"), "image/jpeg")
	s.Require().NoError(err)

	s.Equal(90, sub.Similarity)
	s.Equal(50, sub.RemainingSeconds)
	s.Equal(140, sub.TotalScore)

	updated, _ := s.rooms.GetRoom(s.ctx, created.ID)
	s.Equal(140, updated.GetMember(s.hunter1.ID).Score)
}

func (s *ControllerSuite) TestSubmitHunterPhotoAfterExpiryScoresSimilarityOnly() {
	created := s.createRoom()
	s.startRound(created.ID)
	s.submitReference(created.ID, 1)

	s.similarity.Scores = []int{60}
	s.clock.Advance(2 * time.Minute)

	sub, err := s.controller.SubmitHunterPhoto(s.ctx, created.ID, 1, s.hunter1.ID, []byte("attempt"), "image/jpeg")
	s.Require().NoError(err)

	s.Equal(0, sub.RemainingSeconds)
	s.Equal(60, sub.TotalScore)
}

func (s *ControllerSuite) TestSubmitHunterPhotoFailsForGamemaster() {
	created := s.createRoom()
	s.startRound(created.ID)
	s.submitReference(created.ID, 1)

	_, err := s.controller.SubmitHunterPhoto(s.ctx, created.ID, 1, s.host.ID, []byte("attempt"), "image/jpeg")
	s.ErrorIs(err, model.ErrGamemasterSubmission)
}

func (s *ControllerSuite) TestSubmitHunterPhotoFailsBeforeReference() {
	created := s.createRoom()
	s.startRound(created.ID)

	_, err := s.controller.SubmitHunterPhoto(s.ctx, created.ID, 1, s.hunter1.ID, []byte("attempt"), "image/jpeg")
	s.ErrorIs(err, model.ErrRoundNotInProgress)
}

func (s *ControllerSuite) TestSubmitHunterPhotoRejectsDuplicate() {
	created := s.createRoom()
	s.startRound(created.ID)
	s.submitReference(created.ID, 1)

	_, err := s.controller.SubmitHunterPhoto(s.ctx, created.ID, 1, s.hunter1.ID, []byte("attempt"), "image/jpeg")
	s.Require().NoError(err)

	_, err = s.controller.SubmitHunterPhoto(s.ctx, created.ID, 1, s.hunter1.ID, []byte("again"), "image/jpeg")
	s.ErrorIs(err, model.ErrDuplicateSubmission)

	// The duplicate did not touch the score
	updated, _ := s.rooms.GetRoom(s.ctx, created.ID)
	s.Equal(135, updated.GetMember(s.hunter1.ID).Score)
}

func (s *ControllerSuite) TestSubmitHunterPhotoFailsForNonMember() {
	created := s.createRoom()
	s.startRound(created.ID)
	s.submitReference(created.ID, 1)

	_, err := s.controller.SubmitHunterPhoto(s.ctx, created.ID, 1, "stranger", []byte("attempt"), "image/jpeg")
	s.ErrorIs(err, model.ErrPlayerNotInRoom)
}

func (s *ControllerSuite) TestSubmitHunterPhotoFailsWhenComparisonFails() {
	created := s.createRoom()
	s.startRound(created.ID)
	s.submitReference(created.ID, 1)
	s.similarity.Err = errors.New("similarity unavailable")

	_, err := s.controller.SubmitHunterPhoto(s.ctx, created.ID, 1, s.hunter1.ID, []byte("attempt"), "image/jpeg")
	s.ErrorIs(err, model.ErrComparisonFailed)

	// Nothing was recorded for the failed submission
	info, err := s.controller.GetRoundInfo(s.ctx, created.ID, 1)
	s.Require().NoError(err)
	s.Empty(info.Round.Submissions)
}

// EndRound tests

func (s *ControllerSuite) TestEndRoundReturnsRankedResults() {
	created := s.createRoom()
	s.startRound(created.ID)
	s.submitReference(created.ID, 1)

	s.similarity.Scores = []int{40, 90}
	s.clock.Advance(10 * time.Second)
	_, err := s.controller.SubmitHunterPhoto(s.ctx, created.ID, 1, s.hunter1.ID, []byte("a"), "image/jpeg")
	s.Require().NoError(err)
	s.clock.Advance(10 * time.Second)
	_, err = s.controller.SubmitHunterPhoto(s.ctx, created.ID, 1, s.hunter2.ID, []byte("b"), "image/jpeg")
	s.Require().NoError(err)

	results, err := s.controller.EndRound(s.ctx, created.ID, 1, s.host.ID)
	s.Require().NoError(err)

	s.Require().Len(results.Ranked, 2)
	// hunter2: 90 + 40 = 130 beats hunter1: 40 + 50 = 90
	s.Equal(s.hunter2.ID, results.Ranked[0].PlayerID)
	s.Equal(1, results.Ranked[0].Rank)
	s.Equal(130, results.Ranked[0].TotalScore)
	s.Equal(s.hunter1.ID, results.Ranked[1].PlayerID)
	s.Equal(2, results.Ranked[1].Rank)
	s.Equal(90, results.Ranked[1].TotalScore)
	s.Empty(results.DidNotSubmit)
}

func (s *ControllerSuite) TestEndRoundListsNonSubmitters() {
	created := s.createRoom()
	s.startRound(created.ID)
	s.submitReference(created.ID, 1)

	_, err := s.controller.SubmitHunterPhoto(s.ctx, created.ID, 1, s.hunter1.ID, []byte("a"), "image/jpeg")
	s.Require().NoError(err)

	results, err := s.controller.EndRound(s.ctx, created.ID, 1, s.host.ID)
	s.Require().NoError(err)

	s.Len(results.Ranked, 1)
	s.Require().Len(results.DidNotSubmit, 1)
	s.Equal(s.hunter2.ID, results.DidNotSubmit[0].PlayerID)
	s.Equal(0, results.DidNotSubmit[0].TotalScore)
}

func (s *ControllerSuite) TestEndRoundReturnsRoomToWaiting() {
	created := s.createRoom()
	s.startRound(created.ID)

	_, err := s.controller.EndRound(s.ctx, created.ID, 1, s.host.ID)
	s.Require().NoError(err)

	updated, _ := s.rooms.GetRoom(s.ctx, created.ID)
	s.Equal(model.RoomStatusWaiting, updated.Status)
}

func (s *ControllerSuite) TestEndRoundFinishesRoomAfterLastRound() {
	created := s.createRoom()

	for i := 1; i <= created.Settings.RoundsCount; i++ {
		s.startRound(created.ID)
		_, err := s.controller.EndRound(s.ctx, created.ID, i, s.host.ID)
		s.Require().NoError(err)
	}

	updated, _ := s.rooms.GetRoom(s.ctx, created.ID)
	s.Equal(model.RoomStatusFinished, updated.Status)
}

func (s *ControllerSuite) TestEndRoundMayBeCalledByAnyMember() {
	created := s.createRoom()
	s.startRound(created.ID)

	_, err := s.controller.EndRound(s.ctx, created.ID, 1, s.hunter1.ID)
	s.Require().NoError(err)
}

func (s *ControllerSuite) TestEndRoundFailsForNonMember() {
	created := s.createRoom()
	s.startRound(created.ID)

	_, err := s.controller.EndRound(s.ctx, created.ID, 1, "stranger")
	s.ErrorIs(err, model.ErrPlayerNotInRoom)
}

func (s *ControllerSuite) TestEndRoundFailsIfAlreadyEnded() {
	created := s.createRoom()
	s.startRound(created.ID)

	_, err := s.controller.EndRound(s.ctx, created.ID, 1, s.host.ID)
	s.Require().NoError(err)

	_, err = s.controller.EndRound(s.ctx, created.ID, 1, s.host.ID)
	s.ErrorIs(err, model.ErrRoundAlreadyEnded)
}

// CancelRound tests

func (s *ControllerSuite) TestCancelRoundSucceeds() {
	created := s.createRoom()
	s.startRound(created.ID)

	err := s.controller.CancelRound(s.ctx, created.ID, 1, s.host.ID)
	s.Require().NoError(err)

	info, err := s.controller.GetRoundInfo(s.ctx, created.ID, 1)
	s.Require().NoError(err)
	s.Equal(model.RoundStatusCancelled, info.Round.Status)

	updated, _ := s.rooms.GetRoom(s.ctx, created.ID)
	s.Equal(model.RoomStatusWaiting, updated.Status)
}

func (s *ControllerSuite) TestCancelRoundFailsForNonHost() {
	created := s.createRoom()
	s.startRound(created.ID)

	err := s.controller.CancelRound(s.ctx, created.ID, 1, s.hunter1.ID)
	s.ErrorIs(err, model.ErrInvalidGamemaster)
}

func (s *ControllerSuite) TestCancelRoundFailsIfTerminal() {
	created := s.createRoom()
	s.startRound(created.ID)

	_, err := s.controller.EndRound(s.ctx, created.ID, 1, s.host.ID)
	s.Require().NoError(err)

	err = s.controller.CancelRound(s.ctx, created.ID, 1, s.host.ID)
	s.ErrorIs(err, model.ErrRoundAlreadyEnded)
}

// GetRoundInfo tests

func (s *ControllerSuite) TestGetRoundInfoFailsForUnknownRound() {
	created := s.createRoom()

	_, err := s.controller.GetRoundInfo(s.ctx, created.ID, 1)
	s.ErrorIs(err, model.ErrRoundNotFound)
}

func (s *ControllerSuite) TestGetRoundInfoRevealsHintsOnSchedule() {
	created := s.createRoom()
	s.startRound(created.ID)
	s.submitReference(created.ID, 1)

	// Before the first interval only the initial hint is visible
	info, err := s.controller.GetRoundInfo(s.ctx, created.ID, 1)
	s.Require().NoError(err)
	s.Equal(1, info.Round.RevealedHints)
	s.False(info.HintsChanged)

	s.clock.Advance(10 * time.Second)
	info, err = s.controller.GetRoundInfo(s.ctx, created.ID, 1)
	s.Require().NoError(err)
	s.Equal(2, info.Round.RevealedHints)
	s.True(info.HintsChanged)
	s.Equal([]string{"red door", "brick wall"}, info.Round.VisibleHints())

	// A second read at the same instant reveals nothing new
	info, err = s.controller.GetRoundInfo(s.ctx, created.ID, 1)
	s.Require().NoError(err)
	s.False(info.HintsChanged)
}

func (s *ControllerSuite) TestGetRoundInfoRevealCountIsBounded() {
	created := s.createRoom()
	s.startRound(created.ID)
	s.submitReference(created.ID, 1)

	s.clock.Advance(10 * time.Minute)
	info, err := s.controller.GetRoundInfo(s.ctx, created.ID, 1)
	s.Require().NoError(err)

	s.Equal(3, info.Round.RevealedHints)
	s.Len(info.Round.VisibleHints(), 3)
}

func (s *ControllerSuite) TestGetRoundInfoReportsRemainingTime() {
	created := s.createRoom()
	s.startRound(created.ID)
	s.submitReference(created.ID, 1)

	s.clock.Advance(25 * time.Second)
	info, err := s.controller.GetRoundInfo(s.ctx, created.ID, 1)
	s.Require().NoError(err)

	s.Equal(25, info.ElapsedSeconds)
	s.Equal(35, info.RemainingSeconds)
}

func (s *ControllerSuite) TestGetRoundInfoClampsRemainingAfterExpiry() {
	created := s.createRoom()
	s.startRound(created.ID)
	s.submitReference(created.ID, 1)

	s.clock.Advance(5 * time.Minute)
	info, err := s.controller.GetRoundInfo(s.ctx, created.ID, 1)
	s.Require().NoError(err)

	s.Equal(0, info.RemainingSeconds)
	s.Equal(model.RoundStatusHunterTurn, info.Round.Status)
}

func (s *ControllerSuite) TestGetRoundInfoNoHintRevealsDuringGamemasterTurn() {
	created := s.createRoom()
	s.startRound(created.ID)

	s.clock.Advance(time.Minute)
	info, err := s.controller.GetRoundInfo(s.ctx, created.ID, 1)
	s.Require().NoError(err)

	s.Equal(0, info.Round.RevealedHints)
	s.False(info.HintsChanged)
	s.Equal(0, info.RemainingSeconds)
}
