package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration.
type Config struct {
	Downstream DownstreamConfig
	Server     ServerConfig
	RateLimit  RateLimitConfig
	Log        LogConfig
}

// DownstreamConfig points at the scrape API every tool call is forwarded to.
type DownstreamConfig struct {
	// Endpoint is the full URL of the scrape operation.
	Endpoint string // default: "http://localhost:8000/api/v1/scrape"

	// Timeout bounds a single call, connect through body read.
	Timeout time.Duration // default: 30s
}

// ServerConfig controls how the MCP server is exposed to its host.
type ServerConfig struct {
	Name    string // default: "scrape-service"
	Version string // default: "1.0.0"

	// Transport is "stdio" or "http".
	Transport string // default: "stdio"

	// The fields below only apply to the http transport.
	Host string // default: "0.0.0.0"
	Port int    // default: 8090
	Mode string // gin mode: "debug", "release", "test"; default: "release"
	Path string // MCP endpoint path; default: "/mcp"
}

// RateLimitConfig controls per-client rate limiting on the http transport.
type RateLimitConfig struct {
	// RequestsPerSecond is the sustained rate per client IP.
	RequestsPerSecond float64 // default: 5

	// Burst is the maximum burst size per client IP.
	Burst int // default: 10
}

// LogConfig controls structured logging.
type LogConfig struct {
	Level  string // default: "info"
	Format string // "json" or "text"; default: "json"
}

// Load reads configuration from environment variables with sane defaults.
// A .env file in the working directory, if any, is applied first; it never
// overrides variables that are already set.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		Downstream: DownstreamConfig{
			Endpoint: envOr("SCRAPE_API_ENDPOINT", "http://localhost:8000/api/v1/scrape"),
			Timeout:  envDurationOr("SCRAPE_API_TIMEOUT", 30*time.Second),
		},
		Server: ServerConfig{
			Name:      envOr("SCRAPE_MCP_NAME", "scrape-service"),
			Version:   envOr("SCRAPE_MCP_VERSION", "1.0.0"),
			Transport: envOr("SCRAPE_MCP_TRANSPORT", "stdio"),
			Host:      envOr("SCRAPE_MCP_HOST", "0.0.0.0"),
			Port:      envIntOr("SCRAPE_MCP_PORT", 8090),
			Mode:      envOr("SCRAPE_MCP_MODE", "release"),
			Path:      envOr("SCRAPE_MCP_PATH", "/mcp"),
		},
		RateLimit: RateLimitConfig{
			RequestsPerSecond: envFloatOr("SCRAPE_MCP_RATE_RPS", 5.0),
			Burst:             envIntOr("SCRAPE_MCP_RATE_BURST", 10),
		},
		Log: LogConfig{
			Level:  envOr("SCRAPE_MCP_LOG_LEVEL", "info"),
			Format: envOr("SCRAPE_MCP_LOG_FORMAT", "json"),
		},
	}
}

// --- helper functions ---

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envIntOr(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}

func envFloatOr(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}

func envDurationOr(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
