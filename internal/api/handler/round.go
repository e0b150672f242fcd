package handler

import (
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/snaphunt/snaphunt/internal/api/middleware"
	"github.com/snaphunt/snaphunt/internal/api/response"
	"github.com/snaphunt/snaphunt/internal/model"
	"github.com/snaphunt/snaphunt/internal/services/round"
	"github.com/snaphunt/snaphunt/internal/sse"
)

// maxPhotoBytes caps multipart photo uploads
const maxPhotoBytes = 10 << 20

// RoundHandler handles round and photo endpoints
type RoundHandler struct {
	roundController *round.Controller
	hubManager      *sse.HubManager
	broadcaster     *sse.Broadcaster
}

// NewRoundHandler creates a new round handler
func NewRoundHandler(roundController *round.Controller, hubManager *sse.HubManager, logger *slog.Logger) *RoundHandler {
	var broadcaster *sse.Broadcaster
	if hubManager != nil {
		broadcaster = sse.NewBroadcaster(hubManager, logger)
	}
	return &RoundHandler{
		roundController: roundController,
		hubManager:      hubManager,
		broadcaster:     broadcaster,
	}
}

// getBroadcaster returns the broadcaster if available
func (h *RoundHandler) getBroadcaster() *sse.Broadcaster {
	return h.broadcaster
}

// Start handles POST /api/v1/rooms/{room_id}/rounds/start
func (h *RoundHandler) Start(w http.ResponseWriter, r *http.Request) {
	player := middleware.MustGetPlayer(r.Context())
	roomID := model.RoomID(mux.Vars(r)["room_id"])

	started, err := h.roundController.StartRound(r.Context(), roomID, player.ID)
	if err != nil {
		WriteError(w, err)
		return
	}

	if b := h.getBroadcaster(); b != nil {
		b.RoundStarted(roomID, started)
	}

	response.JSON(w, http.StatusCreated, response.StartRoundResponse{
		Number:       started.Number,
		Status:       string(started.Status),
		GamemasterID: string(started.GamemasterID),
	})
}

// Get handles GET /api/v1/rooms/{room_id}/rounds/{number}
// Reading a round applies any hint reveals that have come due.
func (h *RoundHandler) Get(w http.ResponseWriter, r *http.Request) {
	roomID, number, err := roundVars(r)
	if err != nil {
		WriteError(w, err)
		return
	}

	info, err := h.roundController.GetRoundInfo(r.Context(), roomID, number)
	if err != nil {
		WriteError(w, err)
		return
	}

	if info.HintsChanged {
		if b := h.getBroadcaster(); b != nil {
			b.HintRevealed(roomID, info.Round)
		}
	}

	response.JSON(w, http.StatusOK, response.RoundStateFromInfo(info))
}

// SubmitPhoto handles POST /api/v1/rooms/{room_id}/rounds/{number}/photo.
// The caller's role disambiguates: the round's gamemaster submits the
// reference photo, anyone else submits a hunt attempt.
func (h *RoundHandler) SubmitPhoto(w http.ResponseWriter, r *http.Request) {
	player := middleware.MustGetPlayer(r.Context())
	roomID, number, err := roundVars(r)
	if err != nil {
		WriteError(w, err)
		return
	}

	data, contentType, err := readPhoto(r)
	if err != nil {
		WriteError(w, err)
		return
	}

	info, err := h.roundController.GetRoundInfo(r.Context(), roomID, number)
	if err != nil {
		WriteError(w, err)
		return
	}

	if player.ID == info.Round.GamemasterID {
		updated, _, err := h.roundController.SubmitReferencePhoto(r.Context(), roomID, number, player.ID, data, contentType)
		if err != nil {
			WriteError(w, err)
			return
		}

		if b := h.getBroadcaster(); b != nil {
			b.ReferenceSubmitted(roomID, updated)
		}

		response.JSON(w, http.StatusCreated, response.RoundState{
			Number:           updated.Number,
			Status:           string(updated.Status),
			GamemasterID:     string(updated.GamemasterID),
			Hints:            updated.VisibleHints(),
			HintsRevealed:    updated.RevealedHints,
			HintsTotal:       len(updated.Hints),
			RemainingSeconds: int(updated.TurnExpiresAt.Sub(updated.TurnStartedAt).Seconds()),
			Submissions:      []response.Submission{},
		})
		return
	}

	submission, err := h.roundController.SubmitHunterPhoto(r.Context(), roomID, number, player.ID, data, contentType)
	if err != nil {
		WriteError(w, err)
		return
	}

	if b := h.getBroadcaster(); b != nil {
		updated, err := h.roundController.GetRoundInfo(r.Context(), roomID, number)
		if err == nil {
			b.SubmissionReceived(roomID, updated.Round, player.ID)
		}
	}

	response.JSON(w, http.StatusCreated, response.SubmissionFromModel(*submission))
}

// End handles POST /api/v1/rooms/{room_id}/rounds/{number}/end
func (h *RoundHandler) End(w http.ResponseWriter, r *http.Request) {
	player := middleware.MustGetPlayer(r.Context())
	roomID, number, err := roundVars(r)
	if err != nil {
		WriteError(w, err)
		return
	}

	results, err := h.roundController.EndRound(r.Context(), roomID, number, player.ID)
	if err != nil {
		WriteError(w, err)
		return
	}

	if b := h.getBroadcaster(); b != nil {
		b.RoundEnded(roomID, number)
	}

	response.JSON(w, http.StatusOK, response.RoundResultsFromModel(results))
}

// Cancel handles DELETE /api/v1/rooms/{room_id}/rounds/{number}
func (h *RoundHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	player := middleware.MustGetPlayer(r.Context())
	roomID, number, err := roundVars(r)
	if err != nil {
		WriteError(w, err)
		return
	}

	if err := h.roundController.CancelRound(r.Context(), roomID, number, player.ID); err != nil {
		WriteError(w, err)
		return
	}

	response.NoContent(w)
}

// GetPhoto handles GET /api/v1/photos/{photo_id}
func (h *RoundHandler) GetPhoto(w http.ResponseWriter, r *http.Request) {
	photoID := model.PhotoID(mux.Vars(r)["photo_id"])

	photo, err := h.roundController.GetPhoto(r.Context(), photoID)
	if err != nil {
		WriteError(w, err)
		return
	}

	contentType := photo.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Cache-Control", "private, max-age=3600")
	_, _ = w.Write(photo.Data)
}

// roundVars extracts the room id and round number from the path
func roundVars(r *http.Request) (model.RoomID, int, error) {
	vars := mux.Vars(r)
	roomID := model.RoomID(vars["room_id"])
	number, err := strconv.Atoi(vars["number"])
	if err != nil || number < 1 {
		return "", 0, NewInvalidRequestError("round number must be a positive integer")
	}
	return roomID, number, nil
}

// readPhoto reads the photo field from a multipart form
func readPhoto(r *http.Request) ([]byte, string, error) {
	if err := r.ParseMultipartForm(maxPhotoBytes); err != nil {
		return nil, "", NewInvalidRequestError("expected multipart form with a photo field")
	}

	file, header, err := r.FormFile("photo")
	if err != nil {
		return nil, "", NewInvalidRequestError("photo field is required")
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxPhotoBytes+1))
	if err != nil {
		return nil, "", NewInternalError()
	}
	if len(data) == 0 {
		return nil, "", NewInvalidRequestError("photo is empty")
	}
	if len(data) > maxPhotoBytes {
		return nil, "", NewInvalidRequestError("photo exceeds the size limit")
	}

	contentType := header.Header.Get("Content-Type")
	return data, contentType, nil
}
