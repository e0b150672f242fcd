package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/snaphunt/snaphunt/internal/api/middleware"
	"github.com/snaphunt/snaphunt/internal/api/request"
	"github.com/snaphunt/snaphunt/internal/api/response"
	"github.com/snaphunt/snaphunt/internal/model"
	"github.com/snaphunt/snaphunt/internal/services/room"
	"github.com/snaphunt/snaphunt/internal/services/scoring"
	"github.com/snaphunt/snaphunt/internal/sse"
)

// RoomHandler handles room roster endpoints
type RoomHandler struct {
	roomController *room.Controller
	scoringService *scoring.Service
	hubManager     *sse.HubManager
	broadcaster    *sse.Broadcaster
}

// NewRoomHandler creates a new room handler
func NewRoomHandler(roomController *room.Controller, scoringService *scoring.Service, hubManager *sse.HubManager, logger *slog.Logger) *RoomHandler {
	var broadcaster *sse.Broadcaster
	if hubManager != nil {
		broadcaster = sse.NewBroadcaster(hubManager, logger)
	}
	return &RoomHandler{
		roomController: roomController,
		scoringService: scoringService,
		hubManager:     hubManager,
		broadcaster:    broadcaster,
	}
}

// getBroadcaster returns the broadcaster if available
func (h *RoomHandler) getBroadcaster() *sse.Broadcaster {
	return h.broadcaster
}

// Create handles POST /api/v1/rooms
func (h *RoomHandler) Create(w http.ResponseWriter, r *http.Request) {
	player := middleware.MustGetPlayer(r.Context())

	var req request.CreateRoomRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		// Allow empty body for default settings
		req = request.CreateRoomRequest{}
	}

	created, err := h.roomController.CreateRoom(r.Context(), *player, req.RoundsCount)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusCreated, response.RoomFromModel(created))
}

// Get handles GET /api/v1/rooms/{room_id}
func (h *RoomHandler) Get(w http.ResponseWriter, r *http.Request) {
	roomID := model.RoomID(mux.Vars(r)["room_id"])

	found, err := h.roomController.GetRoom(r.Context(), roomID)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.RoomFromModel(found))
}

// Join handles POST /api/v1/rooms/{room_id}/join
func (h *RoomHandler) Join(w http.ResponseWriter, r *http.Request) {
	player := middleware.MustGetPlayer(r.Context())
	roomID := model.RoomID(mux.Vars(r)["room_id"])

	var req request.JoinRoomRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		// Code is optional; an empty body means no code supplied
		req = request.JoinRoomRequest{}
	}

	joined, err := h.roomController.JoinRoom(r.Context(), roomID, *player, model.JoinCode(req.JoinCode))
	if err != nil {
		WriteError(w, err)
		return
	}

	if b := h.getBroadcaster(); b != nil {
		if m := joined.GetMember(player.ID); m != nil {
			b.PlayerJoined(roomID, m)
		}
	}

	response.JSON(w, http.StatusOK, response.RoomFromModel(joined))
}

// Leave handles POST /api/v1/rooms/{room_id}/leave
func (h *RoomHandler) Leave(w http.ResponseWriter, r *http.Request) {
	player := middleware.MustGetPlayer(r.Context())
	roomID := model.RoomID(mux.Vars(r)["room_id"])

	left, err := h.roomController.LeaveRoom(r.Context(), roomID, player.ID)
	if err != nil {
		WriteError(w, err)
		return
	}

	if b := h.getBroadcaster(); b != nil {
		b.PlayerLeft(roomID, player.ID)
		// Departure may have promoted a new gamemaster
		if left.HostID != "" && left.HostID != player.ID {
			b.GamemasterChanged(roomID, left.HostID)
		}
	}

	response.NoContent(w)
}

// SetGamemaster handles PUT /api/v1/rooms/{room_id}/gamemaster
func (h *RoomHandler) SetGamemaster(w http.ResponseWriter, r *http.Request) {
	player := middleware.MustGetPlayer(r.Context())
	roomID := model.RoomID(mux.Vars(r)["room_id"])

	var req request.SetGamemasterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}
	if req.PlayerID == "" {
		WriteError(w, NewInvalidRequestError("player_id is required"))
		return
	}

	// Only the current host may hand over the role
	current, err := h.roomController.GetRoom(r.Context(), roomID)
	if err != nil {
		WriteError(w, err)
		return
	}
	if current.HostID != player.ID {
		WriteError(w, model.ErrInvalidGamemaster)
		return
	}

	updated, err := h.roomController.SetGamemaster(r.Context(), roomID, model.PlayerID(req.PlayerID))
	if err != nil {
		WriteError(w, err)
		return
	}

	if b := h.getBroadcaster(); b != nil {
		b.GamemasterChanged(roomID, updated.HostID)
	}

	response.JSON(w, http.StatusOK, response.RoomFromModel(updated))
}

// RenamePlayer handles PUT /api/v1/rooms/{room_id}/players/{player_id}
func (h *RoomHandler) RenamePlayer(w http.ResponseWriter, r *http.Request) {
	player := middleware.MustGetPlayer(r.Context())
	vars := mux.Vars(r)
	roomID := model.RoomID(vars["room_id"])
	targetID := model.PlayerID(vars["player_id"])

	if targetID != player.ID {
		WriteError(w, NewForbiddenError("players can only rename themselves"))
		return
	}

	var req request.UpdateNameRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	member, err := h.roomController.UpdateDisplayName(r.Context(), roomID, targetID, req.DisplayName)
	if err != nil {
		WriteError(w, err)
		return
	}

	if b := h.getBroadcaster(); b != nil {
		b.PlayerRenamed(roomID, targetID, member.Player.DisplayName)
	}

	hostID := model.PlayerID("")
	if updated, err := h.roomController.GetRoom(r.Context(), roomID); err == nil {
		hostID = updated.HostID
	}
	response.JSON(w, http.StatusOK, response.RoomMemberFromModel(*member, hostID))
}

// UpdateSettings handles PUT /api/v1/rooms/{room_id}/settings
func (h *RoomHandler) UpdateSettings(w http.ResponseWriter, r *http.Request) {
	player := middleware.MustGetPlayer(r.Context())
	roomID := model.RoomID(mux.Vars(r)["room_id"])

	var req request.UpdateSettingsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	current, err := h.roomController.GetRoom(r.Context(), roomID)
	if err != nil {
		WriteError(w, err)
		return
	}
	if current.HostID != player.ID {
		WriteError(w, model.ErrInvalidGamemaster)
		return
	}

	updated, err := h.roomController.UpdateSettings(r.Context(), roomID, req.RoundsCount)
	if err != nil {
		WriteError(w, err)
		return
	}

	if b := h.getBroadcaster(); b != nil {
		b.SettingsUpdated(roomID)
	}

	response.JSON(w, http.StatusOK, response.RoomSettingsFromModel(updated.Settings))
}

// Delete handles DELETE /api/v1/rooms/{room_id}
func (h *RoomHandler) Delete(w http.ResponseWriter, r *http.Request) {
	player := middleware.MustGetPlayer(r.Context())
	roomID := model.RoomID(mux.Vars(r)["room_id"])

	current, err := h.roomController.GetRoom(r.Context(), roomID)
	if err != nil {
		WriteError(w, err)
		return
	}
	// An abandoned room has no host; anyone may tear it down then
	if current.HostID != "" && current.HostID != player.ID {
		WriteError(w, model.ErrInvalidGamemaster)
		return
	}

	if err := h.roomController.DeleteRoom(r.Context(), roomID); err != nil {
		WriteError(w, err)
		return
	}

	if h.hubManager != nil {
		h.hubManager.CloseHub(roomID)
	}

	response.NoContent(w)
}

// Leaderboard handles GET /api/v1/rooms/{room_id}/leaderboard
func (h *RoomHandler) Leaderboard(w http.ResponseWriter, r *http.Request) {
	roomID := model.RoomID(mux.Vars(r)["room_id"])

	found, err := h.roomController.GetRoom(r.Context(), roomID)
	if err != nil {
		WriteError(w, err)
		return
	}

	ranked := h.scoringService.Leaderboard(found)
	response.JSON(w, http.StatusOK, response.LeaderboardFromModel(found, ranked))
}

// Events handles GET /api/v1/rooms/{room_id}/events (SSE)
func (h *RoomHandler) Events(w http.ResponseWriter, r *http.Request) {
	player := middleware.MustGetPlayer(r.Context())
	roomID := model.RoomID(mux.Vars(r)["room_id"])

	found, err := h.roomController.GetRoom(r.Context(), roomID)
	if err != nil {
		WriteError(w, err)
		return
	}
	if found.GetMember(player.ID) == nil {
		WriteError(w, model.ErrPlayerNotInRoom)
		return
	}

	hub := h.hubManager.GetOrCreateHub(roomID)
	sse.ServeSSE(w, r, hub, player.ID)
}
