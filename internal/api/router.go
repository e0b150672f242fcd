package api

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/snaphunt/snaphunt/internal/api/handler"
	"github.com/snaphunt/snaphunt/internal/api/middleware"
	basemiddleware "github.com/snaphunt/snaphunt/internal/middleware"
	"github.com/snaphunt/snaphunt/internal/services/auth"
	"github.com/snaphunt/snaphunt/internal/services/room"
	"github.com/snaphunt/snaphunt/internal/services/round"
	"github.com/snaphunt/snaphunt/internal/services/scoring"
	"github.com/snaphunt/snaphunt/internal/sse"
)

// RouterConfig holds configuration for the API router
type RouterConfig struct {
	Logger          *slog.Logger
	AuthService     *auth.Service
	RoomController  *room.Controller
	RoundController *round.Controller
	ScoringService  *scoring.Service
	HubManager      *sse.HubManager
}

// NewRouter creates a new API router with all routes configured
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()

	// Create handlers
	playerHandler := handler.NewPlayerHandler(cfg.AuthService)
	roomHandler := handler.NewRoomHandler(cfg.RoomController, cfg.ScoringService, cfg.HubManager, cfg.Logger)
	roundHandler := handler.NewRoundHandler(cfg.RoundController, cfg.HubManager, cfg.Logger)

	// Create middleware
	authMiddleware := middleware.Auth(cfg.AuthService)
	loggingMiddleware := basemiddleware.Logging(cfg.Logger)
	recoveryMiddleware := middleware.Recovery(cfg.Logger)

	// API subrouter with common middleware
	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(recoveryMiddleware)
	api.Use(loggingMiddleware)

	// Player routes (no auth required for creating players/logging in)
	api.HandleFunc("/players/guest", playerHandler.CreateGuest).Methods(http.MethodPost)
	api.HandleFunc("/players/register", playerHandler.Register).Methods(http.MethodPost)
	api.HandleFunc("/players/login", playerHandler.Login).Methods(http.MethodPost)

	// Protected player routes
	playerProtected := api.PathPrefix("/players").Subrouter()
	playerProtected.Use(authMiddleware)
	playerProtected.HandleFunc("/me", playerHandler.GetMe).Methods(http.MethodGet)

	// Room routes (all require auth)
	rooms := api.PathPrefix("/rooms").Subrouter()
	rooms.Use(authMiddleware)
	rooms.HandleFunc("", roomHandler.Create).Methods(http.MethodPost)
	rooms.HandleFunc("/{room_id}", roomHandler.Get).Methods(http.MethodGet)
	rooms.HandleFunc("/{room_id}", roomHandler.Delete).Methods(http.MethodDelete)
	rooms.HandleFunc("/{room_id}/join", roomHandler.Join).Methods(http.MethodPost)
	rooms.HandleFunc("/{room_id}/leave", roomHandler.Leave).Methods(http.MethodPost)
	rooms.HandleFunc("/{room_id}/gamemaster", roomHandler.SetGamemaster).Methods(http.MethodPut)
	rooms.HandleFunc("/{room_id}/settings", roomHandler.UpdateSettings).Methods(http.MethodPut)
	rooms.HandleFunc("/{room_id}/players/{player_id}", roomHandler.RenamePlayer).Methods(http.MethodPut)
	rooms.HandleFunc("/{room_id}/leaderboard", roomHandler.Leaderboard).Methods(http.MethodGet)
	rooms.HandleFunc("/{room_id}/events", roomHandler.Events).Methods(http.MethodGet)

	// Round routes (all require auth)
	rooms.HandleFunc("/{room_id}/rounds/start", roundHandler.Start).Methods(http.MethodPost)
	rooms.HandleFunc("/{room_id}/rounds/{number}", roundHandler.Get).Methods(http.MethodGet)
	rooms.HandleFunc("/{room_id}/rounds/{number}", roundHandler.Cancel).Methods(http.MethodDelete)
	rooms.HandleFunc("/{room_id}/rounds/{number}/photo", roundHandler.SubmitPhoto).Methods(http.MethodPost)
	rooms.HandleFunc("/{room_id}/rounds/{number}/end", roundHandler.End).Methods(http.MethodPost)

	// Photo routes
	photos := api.PathPrefix("/photos").Subrouter()
	photos.Use(authMiddleware)
	photos.HandleFunc("/{photo_id}", roundHandler.GetPhoto).Methods(http.MethodGet)

	// Health check endpoint (no auth)
	api.HandleFunc("/health", healthHandler).Methods(http.MethodGet)

	return r
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}
