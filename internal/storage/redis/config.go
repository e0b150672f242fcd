package redis

import "time"

// Config holds Redis connection and expiry settings
type Config struct {
	// URL is the Redis connection URL (redis://...)
	URL string

	PoolSize     int
	MinIdleConns int

	// TTLs. Zero means no expiry.
	GuestPlayerTTL time.Duration
	RoomTTL        time.Duration
	RoundTTL       time.Duration
	PhotoTTL       time.Duration
}

// DefaultConfig returns sensible defaults for Redis storage
func DefaultConfig() Config {
	return Config{
		URL:            "redis://localhost:6379",
		PoolSize:       10,
		MinIdleConns:   2,
		GuestPlayerTTL: 7 * 24 * time.Hour,
		RoomTTL:        24 * time.Hour,
		RoundTTL:       24 * time.Hour,
		PhotoTTL:       24 * time.Hour,
	}
}
