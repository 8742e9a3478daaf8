// Package config loads runtime settings from the environment, with an
// optional .env file for local development.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Defaults applied when the corresponding variable is unset.
const (
	DefaultFilesDir      = "files"
	DefaultRetention     = time.Hour
	DefaultSweepInterval = 5 * time.Minute
	DefaultPremiumTTL    = time.Minute
	DefaultOCRLanguages  = "eng"
)

// Config holds every runtime setting.
type Config struct {
	// BotToken authenticates against the Telegram Bot API. Required.
	BotToken string

	// FilesDir is the working directory for downloads and outputs.
	FilesDir string

	// Retention is how long generated files live before the sweeper
	// removes them. SweepInterval is how often the sweeper runs.
	Retention     time.Duration
	SweepInterval time.Duration

	// DatabaseURL enables the PostgreSQL subscription backend. When empty
	// the static PRO_USERS allowlist is used instead.
	DatabaseURL string
	ProUsers    []int64
	PremiumTTL  time.Duration

	// OCRLanguages are tesseract traineddata names, e.g. "eng", "rus".
	OCRLanguages []string

	// SofficeBinary and TesseractBinary override the executables used for
	// office conversion and searchable-PDF rendering.
	SofficeBinary   string
	TesseractBinary string
}

// Load reads configuration from the environment. A .env file in the working
// directory is applied first without overriding already-set variables.
func Load() (*Config, error) {
	// Missing .env is the normal production case.
	_ = godotenv.Load()

	cfg := &Config{
		BotToken:        os.Getenv("BOT_TOKEN"),
		FilesDir:        envOr("FILES_DIR", DefaultFilesDir),
		DatabaseURL:     os.Getenv("DATABASE_URL"),
		SofficeBinary:   envOr("SOFFICE_BINARY", "soffice"),
		TesseractBinary: envOr("TESSERACT_BINARY", "tesseract"),
	}
	if cfg.BotToken == "" {
		return nil, fmt.Errorf("BOT_TOKEN is required")
	}

	var err error
	if cfg.Retention, err = envDuration("FILE_RETENTION", DefaultRetention); err != nil {
		return nil, err
	}
	if cfg.SweepInterval, err = envDuration("SWEEP_INTERVAL", DefaultSweepInterval); err != nil {
		return nil, err
	}
	if cfg.PremiumTTL, err = envDuration("PREMIUM_CACHE_TTL", DefaultPremiumTTL); err != nil {
		return nil, err
	}
	if cfg.ProUsers, err = parseUserIDs(os.Getenv("PRO_USERS")); err != nil {
		return nil, err
	}

	cfg.OCRLanguages = splitList(envOr("OCR_LANGUAGES", DefaultOCRLanguages))
	return cfg, nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return d, nil
}

// parseUserIDs parses a comma-separated list of numeric user IDs.
func parseUserIDs(raw string) ([]int64, error) {
	var ids []int64
	for _, part := range splitList(raw) {
		id, err := strconv.ParseInt(part, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("PRO_USERS: invalid user id %q", part)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
