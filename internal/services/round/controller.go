package round

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/snaphunt/snaphunt/internal/collab"
	"github.com/snaphunt/snaphunt/internal/dependencies/clock"
	"github.com/snaphunt/snaphunt/internal/model"
	"github.com/snaphunt/snaphunt/internal/roomlock"
	"github.com/snaphunt/snaphunt/internal/services/hint"
	"github.com/snaphunt/snaphunt/internal/services/scoring"
	"github.com/snaphunt/snaphunt/internal/storage"
)

// Controller drives the round/turn state machine. All time-based transitions
// (hint reveals, turn expiry) are computed on demand under the room's lock;
// nothing fires from timers. Collaborator calls happen inside the critical
// section, so they carry bounded timeouts to keep one room's queue moving.
type Controller struct {
	storage    storage.Storage
	locks      *roomlock.KeyedMutex
	hints      *hint.Scheduler
	scoring    *scoring.Service
	vision     collab.VisionClient
	similarity collab.SimilarityClient
	clock      clock.Clock
	logger     *slog.Logger
}

// NewController creates a new round Controller
func NewController(
	storage storage.Storage,
	locks *roomlock.KeyedMutex,
	hints *hint.Scheduler,
	scoringService *scoring.Service,
	vision collab.VisionClient,
	similarity collab.SimilarityClient,
	clock clock.Clock,
	logger *slog.Logger,
) *Controller {
	return &Controller{
		storage:    storage,
		locks:      locks,
		hints:      hints,
		scoring:    scoringService,
		vision:     vision,
		similarity: similarity,
		clock:      clock,
		logger:     logger,
	}
}

// StartRound begins the next round with the caller as gamemaster
func (c *Controller) StartRound(ctx context.Context, roomID model.RoomID, callerID model.PlayerID) (*model.Round, error) {
	unlock := c.locks.Lock(roomID)
	defer unlock()

	room, err := c.storage.GetRoom(ctx, roomID)
	if err != nil {
		return nil, err
	}

	if room.Status == model.RoomStatusFinished {
		return nil, model.ErrAllRoundsCompleted
	}
	if callerID != room.HostID {
		return nil, model.ErrInvalidGamemaster
	}
	if len(room.Members) < model.MinPlayersToStart {
		return nil, model.ErrNotEnoughPlayers
	}

	number := room.CurrentRound + 1
	if number > room.Settings.RoundsCount {
		return nil, model.ErrAllRoundsCompleted
	}

	now := c.clock.Now()
	round := &model.Round{
		ID:           model.RoundID(uuid.NewString()),
		RoomID:       roomID,
		Number:       number,
		Status:       model.RoundStatusGamemasterTurn,
		GamemasterID: callerID,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	room.CurrentRound = number
	room.Rounds[number] = round.ID
	room.Status = model.RoomStatusInProgress
	room.UpdatedAt = now

	if err := c.storage.SaveRound(ctx, round); err != nil {
		return nil, err
	}
	if err := c.storage.SaveRoom(ctx, room); err != nil {
		return nil, err
	}

	c.logger.Info("round started",
		slog.String("room_id", string(roomID)),
		slog.Int("round_number", number),
		slog.String("gamemaster_id", string(callerID)),
	)

	return round, nil
}

// SubmitReferencePhoto stores the gamemaster's photo, derives hints, and
// opens the hunter turn. Hint generation failure is non-fatal: the round
// proceeds with whatever hints came back, possibly none.
func (c *Controller) SubmitReferencePhoto(ctx context.Context, roomID model.RoomID, number int, callerID model.PlayerID, data []byte, contentType string) (*model.Round, *model.Photo, error) {
	unlock := c.locks.Lock(roomID)
	defer unlock()

	room, err := c.storage.GetRoom(ctx, roomID)
	if err != nil {
		return nil, nil, err
	}

	round, err := c.roundByNumber(ctx, room, number)
	if err != nil {
		return nil, nil, err
	}

	if callerID != round.GamemasterID {
		return nil, nil, model.ErrInvalidGamemaster
	}
	if round.Status != model.RoundStatusGamemasterTurn {
		return nil, nil, model.ErrRoundNotInProgress
	}
	if round.ReferencePhotoID != "" {
		return nil, nil, model.ErrAlreadySubmitted
	}

	now := c.clock.Now()
	photo := &model.Photo{
		ID:          model.PhotoID(uuid.NewString()),
		RoomID:      roomID,
		UploadedBy:  callerID,
		ContentType: contentType,
		Data:        data,
		CreatedAt:   now,
	}
	if err := c.storage.SavePhoto(ctx, photo); err != nil {
		return nil, nil, err
	}

	hintTexts, err := c.vision.GenerateHints(ctx, data, contentType, room.Settings.MaxHints)
	if err != nil {
		c.logger.Warn("hint generation failed, proceeding without hints",
			slog.String("room_id", string(roomID)),
			slog.Int("round_number", number),
			slog.String("error", err.Error()),
		)
		hintTexts = nil
	}

	round.ReferencePhotoID = photo.ID
	round.Hints = make([]model.Hint, len(hintTexts))
	for i, text := range hintTexts {
		round.Hints[i] = model.Hint{Text: text}
	}
	if len(round.Hints) > 0 {
		round.Hints[0].Revealed = true
		round.RevealedHints = 1
	}

	round.TurnStartedAt = now
	round.TurnExpiresAt = now.Add(room.Settings.TurnDuration)
	if len(round.Hints) > 1 {
		round.NextHintAt = now.Add(room.Settings.HintInterval)
	}
	round.Status = model.RoundStatusHunterTurn
	round.UpdatedAt = now

	if err := c.storage.SaveRound(ctx, round); err != nil {
		return nil, nil, err
	}

	c.logger.Info("reference photo submitted",
		slog.String("room_id", string(roomID)),
		slog.Int("round_number", number),
		slog.Int("hints_generated", len(round.Hints)),
	)

	return round, photo, nil
}

// SubmitHunterPhoto stores a hunter's photo, scores it against the reference,
// and credits the hunter's cumulative score immediately. Similarity failure
// is fatal for the submission: it cannot be scored without a comparison.
func (c *Controller) SubmitHunterPhoto(ctx context.Context, roomID model.RoomID, number int, callerID model.PlayerID, data []byte, contentType string) (*model.Submission, error) {
	unlock := c.locks.Lock(roomID)
	defer unlock()

	room, err := c.storage.GetRoom(ctx, roomID)
	if err != nil {
		return nil, err
	}

	member := room.GetMember(callerID)
	if member == nil {
		return nil, model.ErrPlayerNotInRoom
	}

	round, err := c.roundByNumber(ctx, room, number)
	if err != nil {
		return nil, err
	}

	if callerID == round.GamemasterID {
		return nil, model.ErrGamemasterSubmission
	}
	if round.Status != model.RoundStatusHunterTurn {
		return nil, model.ErrRoundNotInProgress
	}
	if round.ReferencePhotoID == "" {
		return nil, model.ErrReferencePhotoMissing
	}
	if round.SubmissionFor(callerID) != nil {
		return nil, model.ErrDuplicateSubmission
	}

	reference, err := c.storage.GetPhoto(ctx, round.ReferencePhotoID)
	if err != nil {
		return nil, err
	}

	now := c.clock.Now()
	elapsed := round.Elapsed(now)

	similarity, err := c.similarity.Compare(ctx, reference.Data, data)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", model.ErrComparisonFailed, err)
	}

	photo := &model.Photo{
		ID:          model.PhotoID(uuid.NewString()),
		RoomID:      roomID,
		UploadedBy:  callerID,
		ContentType: contentType,
		Data:        data,
		CreatedAt:   now,
	}
	if err := c.storage.SavePhoto(ctx, photo); err != nil {
		return nil, err
	}

	remaining, total := c.scoring.SubmissionScore(similarity, room.Settings.TurnDuration, elapsed)
	submission := model.Submission{
		PlayerID:         callerID,
		PhotoID:          photo.ID,
		SubmittedAt:      now,
		Similarity:       similarity,
		RemainingSeconds: remaining,
		TotalScore:       total,
	}

	round.Submissions = append(round.Submissions, submission)
	round.UpdatedAt = now

	// Scores accumulate per submission, not at round end
	member.Score += total
	room.UpdatedAt = now

	if err := c.storage.SaveRound(ctx, round); err != nil {
		return nil, err
	}
	if err := c.storage.SaveRoom(ctx, room); err != nil {
		return nil, err
	}

	c.logger.Info("hunter photo submitted",
		slog.String("room_id", string(roomID)),
		slog.Int("round_number", number),
		slog.String("player_id", string(callerID)),
		slog.Int("total_score", total),
	)

	return &submission, nil
}

// EndRound completes a round and returns its ranked results. The turn never
// ends itself: expiry is advisory and some caller, typically after every
// hunter submitted or the expiry passed, must invoke this.
func (c *Controller) EndRound(ctx context.Context, roomID model.RoomID, number int, callerID model.PlayerID) (*scoring.RoundResults, error) {
	unlock := c.locks.Lock(roomID)
	defer unlock()

	room, err := c.storage.GetRoom(ctx, roomID)
	if err != nil {
		return nil, err
	}

	if room.GetMember(callerID) == nil {
		return nil, model.ErrPlayerNotInRoom
	}

	round, err := c.roundByNumber(ctx, room, number)
	if err != nil {
		return nil, err
	}

	if round.IsTerminal() {
		return nil, model.ErrRoundAlreadyEnded
	}

	now := c.clock.Now()
	round.Status = model.RoundStatusCompleted
	round.EndedAt = now
	round.UpdatedAt = now
	c.scoring.RankSubmissions(round.Submissions)

	if round.Number >= room.Settings.RoundsCount {
		room.Status = model.RoomStatusFinished
	} else {
		room.Status = model.RoomStatusWaiting
	}
	room.UpdatedAt = now

	if err := c.storage.SaveRound(ctx, round); err != nil {
		return nil, err
	}
	if err := c.storage.SaveRoom(ctx, room); err != nil {
		return nil, err
	}

	c.logger.Info("round ended",
		slog.String("room_id", string(roomID)),
		slog.Int("round_number", number),
		slog.Int("submissions", len(round.Submissions)),
		slog.String("room_status", string(room.Status)),
	)

	results := c.scoring.ResultsForRound(room, round)
	return &results, nil
}

// CancelRound aborts a round that has not reached a terminal state
func (c *Controller) CancelRound(ctx context.Context, roomID model.RoomID, number int, callerID model.PlayerID) error {
	unlock := c.locks.Lock(roomID)
	defer unlock()

	room, err := c.storage.GetRoom(ctx, roomID)
	if err != nil {
		return err
	}

	if callerID != room.HostID {
		return model.ErrInvalidGamemaster
	}

	round, err := c.roundByNumber(ctx, room, number)
	if err != nil {
		return err
	}

	if round.IsTerminal() {
		return model.ErrRoundAlreadyEnded
	}

	now := c.clock.Now()
	round.Status = model.RoundStatusCancelled
	round.EndedAt = now
	round.UpdatedAt = now

	if round.Number >= room.Settings.RoundsCount {
		room.Status = model.RoomStatusFinished
	} else {
		room.Status = model.RoomStatusWaiting
	}
	room.UpdatedAt = now

	if err := c.storage.SaveRound(ctx, round); err != nil {
		return err
	}
	return c.storage.SaveRoom(ctx, room)
}

// RoundInfo is a point-in-time view of a round
type RoundInfo struct {
	Round            *model.Round
	ElapsedSeconds   int
	RemainingSeconds int
	HintsChanged     bool
}

// GetRoundInfo reads a round, applying any hint reveals that have come due.
// The reveal count only ever grows; a read that reveals nothing new leaves
// persisted state untouched.
func (c *Controller) GetRoundInfo(ctx context.Context, roomID model.RoomID, number int) (*RoundInfo, error) {
	unlock := c.locks.Lock(roomID)
	defer unlock()

	room, err := c.storage.GetRoom(ctx, roomID)
	if err != nil {
		return nil, err
	}

	round, err := c.roundByNumber(ctx, room, number)
	if err != nil {
		return nil, err
	}

	now := c.clock.Now()
	changed := c.hints.Apply(round, room.Settings.HintInterval, now)
	if changed {
		round.UpdatedAt = now
		if err := c.storage.SaveRound(ctx, round); err != nil {
			return nil, err
		}
	}

	elapsed := round.Elapsed(now)
	remaining := room.Settings.TurnDuration - elapsed
	if remaining < 0 {
		remaining = 0
	}
	if round.Status != model.RoundStatusHunterTurn {
		remaining = 0
	}

	return &RoundInfo{
		Round:            round,
		ElapsedSeconds:   int(elapsed / time.Second),
		RemainingSeconds: int(remaining / time.Second),
		HintsChanged:     changed,
	}, nil
}

// GetPhoto retrieves stored photo bytes by id
func (c *Controller) GetPhoto(ctx context.Context, photoID model.PhotoID) (*model.Photo, error) {
	return c.storage.GetPhoto(ctx, photoID)
}

// roundByNumber resolves a round number through the room's round index
func (c *Controller) roundByNumber(ctx context.Context, room *model.Room, number int) (*model.Round, error) {
	roundID, ok := room.Rounds[number]
	if !ok {
		return nil, model.ErrRoundNotFound
	}
	return c.storage.GetRound(ctx, roundID)
}
