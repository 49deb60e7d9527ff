package config

import (
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all runtime configuration, loaded from .env and environment
// variables.
type Config struct {
	// Server
	Addr      string
	TLSCert   string
	TLSKey    string
	StaticDir string
	LogLevel  slog.Level

	// Limits
	RateLimit float64 // requests per second per IP
	RateBurst int

	// Share links and the tools API
	ShareKey   string
	ShareTTL   time.Duration
	APIKeyHash string

	// Tone preview
	ToneDuration   time.Duration
	ToneSampleRate int

	// Telegram bot
	BotToken string
}

// LoadDotEnv reads .env into the environment. A missing file is not an
// error; existing variables win.
func LoadDotEnv(paths ...string) {
	if err := godotenv.Load(paths...); err != nil && !os.IsNotExist(err) {
		slog.Warn("could not load .env", "error", err)
	}
}

// Load reads configuration from environment variables with sane defaults.
func Load() Config {
	return Config{
		Addr:      envStr("ADDR", ":8080"),
		TLSCert:   envStr("TLS_CERT", ""),
		TLSKey:    envStr("TLS_KEY", ""),
		StaticDir: envStr("STATIC_DIR", "./static/main"),
		LogLevel:  envLevel("LOG_LEVEL", slog.LevelInfo),

		RateLimit: envFloat("RATE_LIMIT", 1),
		RateBurst: envInt("RATE_BURST", 5),

		ShareKey:   envStr("SHARE_KEY", ""),
		ShareTTL:   time.Duration(envInt("SHARE_TTL", 720)) * time.Hour,
		APIKeyHash: envStr("API_KEY_HASH", ""),

		ToneDuration:   time.Duration(envFloat("TONE_SECONDS", 4) * float64(time.Second)),
		ToneSampleRate: envInt("TONE_SAMPLE_RATE", 44100),

		BotToken: envStr("TOKEN_BOT", ""),
	}
}

func (c Config) TLS() bool {
	return c.TLSCert != "" && c.TLSKey != ""
}

func envStr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envFloat(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}

func envLevel(key string, fallback slog.Level) slog.Level {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	var l slog.Level
	if err := l.UnmarshalText([]byte(v)); err != nil {
		return fallback
	}
	return l
}
