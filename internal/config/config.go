package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds all application configuration.
// Values are loaded from environment variables with sensible defaults.
type Config struct {
	// Server
	Port     int
	LogLevel string

	// Ateliê backend
	AtelieAPIURL string

	// HTTP client
	HTTPTimeout time.Duration

	// Resilience. MaxRetries defaults to zero: a failed call is surfaced to
	// the caller, who re-triggers the action.
	MaxRetries     int
	InitialBackoff time.Duration
	MaxConcurrency int

	// Session snapshot
	StateDir string

	// Subscription gating
	AssinaturaCacheTTL  time.Duration
	VencimentoAvisoDias int

	// Observability
	OTLPEndpoint string

	// Identity provider (Supabase GoTrue)
	SupabaseURL     string
	SupabaseAnonKey string
}

// Load reads configuration from environment variables with defaults.
func Load() *Config {
	return &Config{
		Port:     getEnvInt("PORT", 8080),
		LogLevel: getEnv("LOG_LEVEL", "info"),

		AtelieAPIURL: getEnv("ATELIE_API_URL", "http://localhost:5277/api"),

		HTTPTimeout: getEnvDuration("HTTP_TIMEOUT", 10*time.Second),

		MaxRetries:     getEnvInt("MAX_RETRIES", 0),
		InitialBackoff: getEnvDuration("INITIAL_BACKOFF", 100*time.Millisecond),
		MaxConcurrency: getEnvInt("MAX_CONCURRENCY", 16),

		StateDir: getEnv("STATE_DIR", ".atelie-state"),

		AssinaturaCacheTTL:  getEnvDuration("ASSINATURA_CACHE_TTL", 5*time.Minute),
		VencimentoAvisoDias: getEnvInt("VENCIMENTO_AVISO_DIAS", 7),

		OTLPEndpoint: getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", "localhost:4317"),

		SupabaseURL:     getEnv("SUPABASE_URL", ""),
		SupabaseAnonKey: getEnv("SUPABASE_ANON_KEY", ""),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
