package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Environment keys read by cliptrim.
const (
	KeyLogLevel      = "CLIPTRIM_LOG_LEVEL"
	KeyLogFormat     = "CLIPTRIM_LOG_FORMAT"
	KeyMetricsAddr   = "CLIPTRIM_METRICS_ADDR"
	KeyWindowWidth   = "CLIPTRIM_WINDOW_WIDTH"
	KeyPlaybackRate  = "CLIPTRIM_PLAYBACK_RATE"
	KeyUploadURL     = "CLIPTRIM_UPLOAD_URL"
	KeyUploadCookie  = "CLIPTRIM_UPLOAD_COOKIE"
	KeyUploadTimeout = "CLIPTRIM_UPLOAD_TIMEOUT"
)

// Config holds settings resolved from the environment. Command-line flags
// override these.
type Config struct {
	LogLevel     string
	LogFormat    string
	MetricsAddr  string
	WindowWidth  int
	PlaybackRate float64
	UploadURL    string

	// UploadCookie is a Cookie header value sent with every upload.
	UploadCookie string
	// UploadTimeout is in seconds.
	UploadTimeout float64
}

// Load reads the .env file from the current working directory and sets
// environment variables. If .env does not exist, Load returns an error but
// callers can ignore it and use system env or defaults. Pass one or more paths
// to load from specific files (e.g. ".env"); with no paths, ".env" is used.
func Load(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	return godotenv.Load(paths...)
}

// FromEnv resolves a Config from the environment with defaults.
func FromEnv() Config {
	return Config{
		LogLevel:      GetEnv(KeyLogLevel, "info"),
		LogFormat:     GetEnv(KeyLogFormat, "text"),
		MetricsAddr:   GetEnv(KeyMetricsAddr, ""),
		WindowWidth:   GetEnvInt(KeyWindowWidth, 960),
		PlaybackRate:  GetEnvFloat(KeyPlaybackRate, 1),
		UploadURL:     GetEnv(KeyUploadURL, ""),
		UploadCookie:  GetEnv(KeyUploadCookie, ""),
		UploadTimeout: GetEnvFloat(KeyUploadTimeout, 15),
	}
}

// GetEnv returns the value of the environment variable named by key, or fallback
// if the variable is unset or empty.
func GetEnv(key, fallback string) string {
	if s := os.Getenv(key); s != "" {
		return s
	}
	return fallback
}

// GetEnvInt returns the integer value of the environment variable named by key,
// or fallback if the variable is unset, empty, or not a valid integer.
func GetEnvInt(key string, fallback int) int {
	if s := os.Getenv(key); s != "" {
		if n, err := strconv.Atoi(s); err == nil {
			return n
		}
	}
	return fallback
}

// GetEnvFloat returns the float value of the environment variable named by
// key, or fallback if the variable is unset, empty, or not a valid number.
func GetEnvFloat(key string, fallback float64) float64 {
	if s := os.Getenv(key); s != "" {
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return f
		}
	}
	return fallback
}
