// Package config loads runtime settings from the environment and an optional .env file.
package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/hashicorp/go-hclog"
	"github.com/joho/godotenv"
)

// Environment variable names.
const (
	EnvDBPath       = "STYLIST_DB_PATH"
	EnvListen       = "STYLIST_LISTEN"
	EnvLogLevel     = "STYLIST_LOG_LEVEL"
	EnvGenAIBackend = "STYLIST_GENAI_BACKEND"
	EnvGenAIModel   = "STYLIST_GENAI_MODEL"
	EnvAPIKey       = "GOOGLE_API_KEY"
	EnvOrigins      = "STYLIST_ALLOWED_ORIGINS"
	EnvCacheDir     = "STYLIST_CACHE_DIR"
)

// Defaults.
const (
	DefaultListen     = ":8080"
	DefaultGenAIModel = "gemini-2.5-flash"
	BackendGeminiAPI  = "gemini"
	BackendVertexAI   = "vertex"
)

// Config holds settings shared by the CLI commands and the HTTP server.
type Config struct {
	DBPath       string
	Listen       string
	LogLevel     hclog.Level
	GenAIBackend string
	GenAIModel   string
	APIKey       string

	// AllowedOrigins are the browser origins the server accepts besides localhost.
	AllowedOrigins []string

	// CacheDir keeps downloaded photos. Empty disables the cache.
	CacheDir string
}

// Load reads a .env file from the working directory when one exists and
// then builds a Config from the environment. Variables already set in the
// environment win over the file.
func Load() Config {
	_ = godotenv.Load()
	return FromEnv()
}

// FromEnv builds a Config from the current environment only.
func FromEnv() Config {
	return Config{
		DBPath:         getEnv(EnvDBPath, DefaultDBPath()),
		Listen:         getEnv(EnvListen, DefaultListen),
		LogLevel:       hclog.LevelFromString(getEnv(EnvLogLevel, "warn")),
		GenAIBackend:   getEnv(EnvGenAIBackend, BackendGeminiAPI),
		GenAIModel:     getEnv(EnvGenAIModel, DefaultGenAIModel),
		APIKey:         getEnv(EnvAPIKey, ""),
		AllowedOrigins: splitList(getEnv(EnvOrigins, "")),
		CacheDir:       getEnv(EnvCacheDir, ""),
	}
}

// DefaultDBPath is $XDG_DATA_HOME/stylist/stylist.db, falling back to
// ~/.local/share and finally the working directory.
func DefaultDBPath() string {
	if dir := os.Getenv("XDG_DATA_HOME"); dir != "" {
		return filepath.Join(dir, "stylist", "stylist.db")
	}
	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, ".local", "share", "stylist", "stylist.db")
	}
	return "stylist.db"
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func splitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
