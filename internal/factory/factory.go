package factory

import (
	"errors"
	"io"
	"log/slog"

	"github.com/snaphunt/snaphunt/internal/collab"
	"github.com/snaphunt/snaphunt/internal/dependencies/clock"
	"github.com/snaphunt/snaphunt/internal/dependencies/random"
	"github.com/snaphunt/snaphunt/internal/roomlock"
	"github.com/snaphunt/snaphunt/internal/services/auth"
	"github.com/snaphunt/snaphunt/internal/services/hint"
	"github.com/snaphunt/snaphunt/internal/services/room"
	"github.com/snaphunt/snaphunt/internal/services/round"
	"github.com/snaphunt/snaphunt/internal/services/scoring"
	"github.com/snaphunt/snaphunt/internal/storage"
	"github.com/snaphunt/snaphunt/internal/storage/memory"
	redisstorage "github.com/snaphunt/snaphunt/internal/storage/redis"
	"github.com/snaphunt/snaphunt/internal/sse"
)

// Storage type constants
const (
	StorageTypeMemory = "memory"
	StorageTypeRedis  = "redis"
)

// App contains all wired application components
type App struct {
	// Storage
	Storage storage.Storage

	// External dependencies
	Clock      clock.Clock
	Random     random.Random
	Vision     collab.VisionClient
	Similarity collab.SimilarityClient

	// Services
	HintScheduler   *hint.Scheduler
	ScoringService  *scoring.Service
	RoomController  *room.Controller
	RoundController *round.Controller
	AuthService     *auth.Service
	HubManager      *sse.HubManager
}

// Config holds configuration for the application factory
type Config struct {
	// VisionURL is the base URL of the hint-generation service (required)
	VisionURL string
	// SimilarityURL is the base URL of the photo-similarity service (required)
	SimilarityURL string
	// AuthConfig holds configuration for the auth service (optional)
	// If zero value, defaults to auth.DefaultConfig()
	AuthConfig auth.Config
	// Logger is the application logger (optional)
	// If nil, a no-op logger is used
	Logger *slog.Logger
	// StorageType selects the storage backend ("memory" or "redis")
	// If empty, defaults to "memory"
	StorageType string
	// RedisConfig holds Redis connection settings (required if StorageType is "redis")
	RedisConfig *redisstorage.Config
}

// New creates a new application with all dependencies wired
func New(cfg Config) (*App, error) {
	// Use no-op logger if not provided
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	// Create storage based on type
	var store storage.Storage
	storageType := cfg.StorageType
	if storageType == "" {
		storageType = StorageTypeMemory
	}

	switch storageType {
	case StorageTypeMemory:
		store = memory.New()
	case StorageTypeRedis:
		if cfg.RedisConfig == nil {
			return nil, errors.New("RedisConfig required when StorageType is redis")
		}
		redisStore, err := redisstorage.New(*cfg.RedisConfig)
		if err != nil {
			return nil, err
		}
		store = redisStore
	default:
		return nil, errors.New("invalid StorageType: must be 'memory' or 'redis'")
	}

	if cfg.VisionURL == "" {
		return nil, errors.New("VisionURL is required")
	}
	if cfg.SimilarityURL == "" {
		return nil, errors.New("SimilarityURL is required")
	}

	// Create external dependencies
	clk := clock.New()
	rnd := random.New()
	vision := collab.NewHTTPVisionClient(cfg.VisionURL, collab.DefaultCallTimeout)
	similarity := collab.NewHTTPSimilarityClient(cfg.SimilarityURL, collab.DefaultCallTimeout)

	// Use default auth config if not provided
	authCfg := cfg.AuthConfig
	if authCfg.SessionDuration == 0 {
		authCfg = auth.DefaultConfig()
	}

	return newWithDependencies(store, clk, rnd, vision, similarity, authCfg, logger), nil
}

// newWithDependencies creates an App with the given dependencies (useful for testing)
func newWithDependencies(
	store storage.Storage,
	clk clock.Clock,
	rnd random.Random,
	vision collab.VisionClient,
	similarity collab.SimilarityClient,
	authCfg auth.Config,
	logger *slog.Logger,
) *App {
	// One lock set shared by both controllers so roster and round mutations
	// of a room serialize against each other
	locks := roomlock.New()

	hintScheduler := hint.NewScheduler()
	scoringService := scoring.New()
	roomController := room.NewController(store, locks, clk, rnd, logger)
	roundController := round.NewController(store, locks, hintScheduler, scoringService, vision, similarity, clk, logger)
	authService := auth.New(store, clk, authCfg)
	hubManager := sse.NewHubManager(logger)

	return &App{
		Storage:         store,
		Clock:           clk,
		Random:          rnd,
		Vision:          vision,
		Similarity:      similarity,
		HintScheduler:   hintScheduler,
		ScoringService:  scoringService,
		RoomController:  roomController,
		RoundController: roundController,
		AuthService:     authService,
		HubManager:      hubManager,
	}
}
