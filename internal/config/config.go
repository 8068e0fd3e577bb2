package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	ListenPort      string        // ex: ":8080"
	ShutdownTimeout time.Duration // ex: 5s

	LogLevel  string // "debug" | "info" | "warn" | "error"
	PrettyLog bool   // true => zap dev (color), false => zap prod (JSON)

	// Search assist
	YouTubeAPIKey  string        // API key for the metadata service
	YouTubeBaseURL string        // upstream search endpoint (overridable for tests)
	SearchTimeout  time.Duration // timeout for one outbound metadata query
	SearchDebounce time.Duration // quiet period before a query fires (default: 500ms)
	SearchCacheTTL time.Duration // TTL for cached suggestions

	// Catalog
	SeedFile       string // optional YAML seed imported into an empty catalog
	FallbackPolicy string // "placeholder" | "first"

	// Placeholder entry shown when nothing is active
	PlaceholderTitle       string
	PlaceholderDescription string
	PlaceholderURL         string

	AllowedOrigins []string // CORS origins for the browser shell

	// Redis (empty addr = memory-only session, catalog loses durability)
	RedisAddr           string        // ex: "localhost:6379"
	RedisUser           string        // optional
	RedisPassword       string        // optional
	RedisDB             int           // Redis DB number
	RedisDT             time.Duration // Redis dial timeout (ex: 5s)
	RedisRT             time.Duration // Redis read timeout (ex: 3s)
	RedisWT             time.Duration // Redis write timeout (ex: 3s)
	RedisMaxWait        time.Duration // max wait between retries (ex: 10s)
	RedisPingTimeout    time.Duration // timeout for each ping attempt (ex: 5s)
	RedisPoolSize       int           // Redis connection pool size
	RedisConnectTimeout time.Duration // Total time to retry connecting (ex: 30s)
	RedisRetryInterval  time.Duration // Initial wait between retries (ex: 2s, grows exponentially)
	RedisWarnThreshold  int           // warn after this many attempts
}

func Load() *Config {
	cfg := &Config{
		// Server settings
		ListenPort:      getenv("YOULEARN_LISTEN_PORT", ":8080"),
		ShutdownTimeout: mustDuration("YOULEARN_SHUTDOWN_TIMEOUT", 5*time.Second),

		// Logging
		LogLevel:  getenv("YOULEARN_LOG_LEVEL", "info"),
		PrettyLog: mustBool("YOULEARN_PRETTY_LOG", true),

		// Search assist
		YouTubeAPIKey:  requireEnv("YOULEARN_YOUTUBE_API_KEY"),
		YouTubeBaseURL: getenv("YOULEARN_YOUTUBE_BASE_URL", "https://www.googleapis.com/youtube/v3/search"),
		SearchTimeout:  mustDuration("YOULEARN_SEARCH_TIMEOUT", 10*time.Second),
		SearchDebounce: mustDuration("YOULEARN_SEARCH_DEBOUNCE", 500*time.Millisecond),
		SearchCacheTTL: mustDuration("YOULEARN_SEARCH_CACHE_TTL", 5*time.Minute),

		// Catalog
		SeedFile:       getenv("YOULEARN_SEED_FILE", ""), // Optional, empty = no seed import
		FallbackPolicy: getenv("YOULEARN_FALLBACK_POLICY", "placeholder"),

		PlaceholderTitle:       getenv("YOULEARN_PLACEHOLDER_TITLE", "New MIT study says most AI projects are doomed"),
		PlaceholderDescription: getenv("YOULEARN_PLACEHOLDER_DESCRIPTION", "Fireship"),
		PlaceholderURL:         getenv("YOULEARN_PLACEHOLDER_URL", "https://www.youtube.com/watch?v=ly6YKz9UfQ4"),

		AllowedOrigins: splitAndTrim(getenv("YOULEARN_ALLOWED_ORIGINS", "*")),

		// Redis settings
		RedisAddr:           getenv("YOULEARN_REDIS_ADDR", ""),
		RedisUser:           getenv("YOULEARN_REDIS_USERNAME", "default"),
		RedisPassword:       getenv("YOULEARN_REDIS_PASSWORD", ""),
		RedisDB:             getenvInt("YOULEARN_REDIS_DB", 0),
		RedisDT:             mustDuration("REDIS_DIAL_TIMEOUT", 5*time.Second),
		RedisRT:             mustDuration("REDIS_READ_TIMEOUT", 3*time.Second),
		RedisWT:             mustDuration("REDIS_WRITE_TIMEOUT", 3*time.Second),
		RedisMaxWait:        mustDuration("REDIS_MAX_WAIT", 10*time.Second),
		RedisPingTimeout:    mustDuration("REDIS_PING_TIMEOUT", 5*time.Second),
		RedisPoolSize:       getenvInt("REDIS_POOL_SIZE", 10),
		RedisConnectTimeout: mustDuration("REDIS_CONNECT_TIMEOUT", 30*time.Second),
		RedisRetryInterval:  mustDuration("REDIS_RETRY_INTERVAL", 2*time.Second),
		RedisWarnThreshold:  getenvInt("REDIS_WARN_THRESHOLD", 3),
	}

	if cfg.FallbackPolicy != "placeholder" && cfg.FallbackPolicy != "first" {
		panic(fmt.Sprintf("❌ FATAL: Invalid YOULEARN_FALLBACK_POLICY %q (want \"placeholder\" or \"first\")", cfg.FallbackPolicy))
	}

	// Log config only in debug mode with redacted sensitive fields
	if cfg.LogLevel == "debug" {
		cfgCopy := *cfg
		cfgCopy.YouTubeAPIKey = "***REDACTED***"
		if cfg.RedisPassword != "" {
			cfgCopy.RedisPassword = "***REDACTED***"
		}
		log.Printf("[DEBUG] cfg: %+v\n", cfgCopy)
	}

	return cfg
}

// helpers
func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func requireEnv(key string) string {
	v := os.Getenv(key)
	if v == "" {
		panic(fmt.Sprintf("❌ FATAL: Required environment variable %s is not set", key))
	}
	return v
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return def
}

func mustBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b
		}
	}
	return def
}

func mustDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}

func splitAndTrim(s string) []string {
	if s == "" {
		return nil
	}
	raw := strings.Split(s, ",")
	parts := make([]string, 0, len(raw))
	for _, part := range raw {
		trimmed := strings.TrimSpace(part)
		// Remove surrounding quotes if present
		trimmed = strings.Trim(trimmed, `"'`)
		if trimmed != "" {
			parts = append(parts, trimmed)
		}
	}
	return parts
}
