package apierr

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/snaphunt/snaphunt/internal/model"
	"github.com/snaphunt/snaphunt/internal/services/auth"
)

// APIError represents an API error response
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ErrorResponse wraps an APIError
type ErrorResponse struct {
	Error APIError `json:"error"`
}

// Common error codes
const (
	CodeInvalidRequest       = "INVALID_REQUEST"
	CodeInvalidName          = "INVALID_NAME"
	CodeInvalidRoundsCount   = "INVALID_ROUNDS_COUNT"
	CodeUnauthorized         = "UNAUTHORIZED"
	CodeForbidden            = "FORBIDDEN"
	CodeNotGamemaster        = "NOT_GAMEMASTER"
	CodePlayerNotFound       = "PLAYER_NOT_FOUND"
	CodeRoomNotFound         = "ROOM_NOT_FOUND"
	CodeRoundNotFound        = "ROUND_NOT_FOUND"
	CodePhotoNotFound        = "PHOTO_NOT_FOUND"
	CodeCodeMismatch         = "JOIN_CODE_MISMATCH"
	CodeRoomNotJoinable      = "ROOM_NOT_JOINABLE"
	CodeRoomFull             = "ROOM_FULL"
	CodeAlreadyJoined        = "ALREADY_JOINED"
	CodeNotInRoom            = "NOT_IN_ROOM"
	CodeRoomNotWaiting       = "ROOM_NOT_WAITING"
	CodeInsufficientPlayers  = "INSUFFICIENT_PLAYERS"
	CodeAllRoundsCompleted   = "ALL_ROUNDS_COMPLETED"
	CodeAlreadySubmitted     = "ALREADY_SUBMITTED"
	CodeDuplicateSubmission  = "DUPLICATE_SUBMISSION"
	CodeRoundNotInProgress   = "ROUND_NOT_IN_PROGRESS"
	CodeRoundEnded           = "ROUND_ENDED"
	CodeNoReferencePhoto     = "NO_REFERENCE_PHOTO"
	CodeGamemasterSubmission = "GAMEMASTER_SUBMISSION"
	CodeComparisonFailed     = "COMPARISON_FAILED"
	CodeUsernameExists       = "USERNAME_EXISTS"
	CodeInvalidCredentials   = "INVALID_CREDENTIALS"
	CodeInternalError        = "INTERNAL_ERROR"
)

// httpError combines an HTTP status code with an APIError
type httpError struct {
	status   int
	apiError APIError
}

// Error implements error interface
func (e *httpError) Error() string {
	return e.apiError.Message
}

// WriteError writes an error response to the response writer
func WriteError(w http.ResponseWriter, err error) {
	he := toHTTPError(err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(he.status)
	_ = json.NewEncoder(w).Encode(ErrorResponse{Error: he.apiError})
}

// toHTTPError converts an error to an httpError
func toHTTPError(err error) *httpError {
	// Check for specific error types
	var he *httpError
	if errors.As(err, &he) {
		return he
	}

	// Map model errors
	switch {
	case errors.Is(err, model.ErrPlayerNotFound):
		return &httpError{http.StatusNotFound, APIError{CodePlayerNotFound, "Player not found"}}
	case errors.Is(err, model.ErrRoomNotFound):
		return &httpError{http.StatusNotFound, APIError{CodeRoomNotFound, "Room not found"}}
	case errors.Is(err, model.ErrRoundNotFound):
		return &httpError{http.StatusNotFound, APIError{CodeRoundNotFound, "Round not found"}}
	case errors.Is(err, model.ErrPhotoNotFound):
		return &httpError{http.StatusNotFound, APIError{CodePhotoNotFound, "Photo not found"}}
	case errors.Is(err, model.ErrPlayerNotInRoom):
		return &httpError{http.StatusNotFound, APIError{CodeNotInRoom, "Not a member of this room"}}
	case errors.Is(err, model.ErrRoomCodeMismatch):
		return &httpError{http.StatusBadRequest, APIError{CodeCodeMismatch, "Join code does not match"}}
	case errors.Is(err, model.ErrRoomNotJoinable):
		return &httpError{http.StatusConflict, APIError{CodeRoomNotJoinable, "Room is not accepting players"}}
	case errors.Is(err, model.ErrRoomFull):
		return &httpError{http.StatusConflict, APIError{CodeRoomFull, "Room is full"}}
	case errors.Is(err, model.ErrAlreadyJoined):
		return &httpError{http.StatusConflict, APIError{CodeAlreadyJoined, "Already in this room"}}
	case errors.Is(err, model.ErrRoomNotWaiting):
		return &httpError{http.StatusConflict, APIError{CodeRoomNotWaiting, "Settings can only change between rounds"}}
	case errors.Is(err, model.ErrInvalidName):
		return &httpError{http.StatusBadRequest, APIError{CodeInvalidName, "Display name must be 1-12 characters"}}
	case errors.Is(err, model.ErrInvalidRoundsCount):
		return &httpError{http.StatusBadRequest, APIError{CodeInvalidRoundsCount, "Rounds count must be at least 1"}}
	case errors.Is(err, model.ErrNotEnoughPlayers):
		return &httpError{http.StatusConflict, APIError{CodeInsufficientPlayers, "Not enough players to start"}}
	case errors.Is(err, model.ErrAllRoundsCompleted):
		return &httpError{http.StatusConflict, APIError{CodeAllRoundsCompleted, "All configured rounds have been played"}}
	case errors.Is(err, model.ErrInvalidGamemaster):
		return &httpError{http.StatusForbidden, APIError{CodeNotGamemaster, "Only the gamemaster can perform this action"}}
	case errors.Is(err, model.ErrAlreadySubmitted):
		return &httpError{http.StatusConflict, APIError{CodeAlreadySubmitted, "Reference photo already submitted"}}
	case errors.Is(err, model.ErrDuplicateSubmission):
		return &httpError{http.StatusConflict, APIError{CodeDuplicateSubmission, "Already submitted this round"}}
	case errors.Is(err, model.ErrRoundNotInProgress):
		return &httpError{http.StatusConflict, APIError{CodeRoundNotInProgress, "Round is not accepting submissions"}}
	case errors.Is(err, model.ErrRoundAlreadyEnded):
		return &httpError{http.StatusConflict, APIError{CodeRoundEnded, "Round has already ended"}}
	case errors.Is(err, model.ErrReferencePhotoMissing):
		return &httpError{http.StatusConflict, APIError{CodeNoReferencePhoto, "Reference photo has not been submitted"}}
	case errors.Is(err, model.ErrGamemasterSubmission):
		return &httpError{http.StatusForbidden, APIError{CodeGamemasterSubmission, "The gamemaster cannot submit a hunt photo"}}
	case errors.Is(err, model.ErrComparisonFailed):
		return &httpError{http.StatusBadGateway, APIError{CodeComparisonFailed, "Photo comparison failed"}}

	// Map auth errors
	case errors.Is(err, auth.ErrInvalidCredentials):
		return &httpError{http.StatusUnauthorized, APIError{CodeInvalidCredentials, "Invalid username or password"}}
	case errors.Is(err, auth.ErrInvalidSession):
		return &httpError{http.StatusUnauthorized, APIError{CodeUnauthorized, "Invalid or expired session"}}
	case errors.Is(err, auth.ErrUsernameExists):
		return &httpError{http.StatusConflict, APIError{CodeUsernameExists, "Username already exists"}}

	default:
		return &httpError{http.StatusInternalServerError, APIError{CodeInternalError, "Internal server error"}}
	}
}

// NewInvalidRequestError creates an invalid request error
func NewInvalidRequestError(message string) error {
	return &httpError{http.StatusBadRequest, APIError{CodeInvalidRequest, message}}
}

// NewUnauthorizedError creates an unauthorized error
func NewUnauthorizedError() error {
	return &httpError{http.StatusUnauthorized, APIError{CodeUnauthorized, "Authentication required"}}
}

// NewForbiddenError creates a forbidden error
func NewForbiddenError(message string) error {
	return &httpError{http.StatusForbidden, APIError{CodeForbidden, message}}
}

// NewInternalError creates an internal server error
func NewInternalError() error {
	return &httpError{http.StatusInternalServerError, APIError{CodeInternalError, "Internal server error"}}
}
