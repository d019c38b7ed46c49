package session

import "time"

// Config holds session configuration.
type Config struct {
	// TTL is the session lifetime.
	TTL time.Duration `env:"SESSION_TTL" envDefault:"720h"`

	// CleanupInterval for expired sessions in the memory store (0 to disable).
	CleanupInterval time.Duration `env:"SESSION_CLEANUP_INTERVAL" envDefault:"5m"`

	// RedisKeyPrefix namespaces session keys in the Redis store.
	RedisKeyPrefix string `env:"SESSION_REDIS_KEY_PREFIX" envDefault:"session:"`
}

// DefaultConfig returns default session configuration.
func DefaultConfig() Config {
	return Config{
		TTL:             30 * 24 * time.Hour,
		CleanupInterval: 5 * time.Minute,
		RedisKeyPrefix:  defaultKeyPrefix,
	}
}
