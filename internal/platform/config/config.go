package config

import (
	"os"
	"time"
)

// Server captures process-level configuration.
type Server struct {
	Addr            string
	ShutdownTimeout time.Duration

	// Generation collaborator (Gemini). An empty APIKey disables the
	// collaborator; every proposal and interpretation then takes the
	// deterministic fallback path.
	GeminiAPIKey string
	GeminiModel  string

	// Optional backing stores. Empty URLs select in-memory implementations.
	RedisURL    string
	PostgresURL string

	// Minimum perceived duration of interpretation synthesis. The session
	// never advances to the result step before this much time has passed.
	InterpretationFloor time.Duration
}

// FromEnv builds a Server config from environment variables so main stays lean.
func FromEnv() Server {
	cfg := Server{
		Addr:                envOr("PERSPECTIVE_ADDR", ":8080"),
		ShutdownTimeout:     envDurationOr("PERSPECTIVE_SHUTDOWN_TIMEOUT", 10*time.Second),
		GeminiAPIKey:        os.Getenv("GEMINI_API_KEY"),
		GeminiModel:         envOr("GEMINI_MODEL", "gemini-3-flash-preview"),
		RedisURL:            os.Getenv("REDIS_URL"),
		PostgresURL:         os.Getenv("POSTGRES_URL"),
		InterpretationFloor: envDurationOr("PERSPECTIVE_INTERPRETATION_FLOOR", 1500*time.Millisecond),
	}
	return cfg
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envDurationOr(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return d
}
