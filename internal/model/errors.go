package model

import "errors"

// Common errors used across the application
var (
	// Player errors
	ErrPlayerNotFound = errors.New("player not found")
	ErrInvalidName    = errors.New("display name must be 1-12 characters")

	// Room errors
	ErrRoomNotFound       = errors.New("room not found")
	ErrRoomCodeMismatch   = errors.New("join code does not match")
	ErrRoomNotJoinable    = errors.New("room is not accepting players")
	ErrRoomFull           = errors.New("room is full")
	ErrAlreadyJoined      = errors.New("player is already in room")
	ErrPlayerNotInRoom    = errors.New("player is not in room")
	ErrRoomNotWaiting     = errors.New("room settings are immutable once started")
	ErrInvalidRoundsCount = errors.New("rounds count must be at least 1")

	// Round errors
	ErrRoundNotFound         = errors.New("round not found")
	ErrNotEnoughPlayers      = errors.New("not enough players to start a round")
	ErrAllRoundsCompleted    = errors.New("all configured rounds have been played")
	ErrInvalidGamemaster     = errors.New("caller is not the designated gamemaster")
	ErrAlreadySubmitted      = errors.New("reference photo already submitted")
	ErrRoundNotInProgress    = errors.New("round is not accepting submissions")
	ErrReferencePhotoMissing = errors.New("reference photo has not been submitted")
	ErrDuplicateSubmission   = errors.New("player has already submitted this round")
	ErrGamemasterSubmission  = errors.New("gamemaster cannot submit a hunter photo")
	ErrRoundAlreadyEnded     = errors.New("round has already ended")

	// Collaborator errors
	ErrComparisonFailed = errors.New("photo comparison failed")

	// Photo errors
	ErrPhotoNotFound = errors.New("photo not found")
)
