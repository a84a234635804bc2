package config

import (
	"errors"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	defaultDBPath      = "./dev.db"
	defaultPort        = "8080"
	defaultEnv         = "development"
	defaultLogLevel    = "info"
	defaultLogFormat   = "json"
	defaultSessionIdle = 2 * time.Hour
	// MinSessionIdle is the shortest accepted SESSION_IDLE.
	MinSessionIdle = time.Second
)

// Config holds application configuration sourced from environment variables.
type Config struct {
	Port      string
	DBPath    string
	Env       string
	LogLevel  string
	LogFormat string
	// Seed inserts the default saved address on startup.
	Seed bool
	// SessionIdle is how long an untouched quoting session is kept.
	SessionIdle time.Duration
}

// IsDev reports whether the server runs in the development environment.
func (c Config) IsDev() bool { return c.Env == defaultEnv }

// Load reads environment variables and returns a populated Config. Values in
// the dotenv files fill in variables that are not already set. Problems that
// do not prevent startup are returned as warnings.
func Load(dotenvFiles ...string) (Config, []string) {
	if len(dotenvFiles) == 0 {
		dotenvFiles = []string{".env"}
	}

	var warnings []string
	for _, f := range dotenvFiles {
		// Missing files are normal outside local development.
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			warnings = append(warnings, "load "+f+": "+err.Error())
		}
	}

	cfg := Config{
		Port:        envOr("PORT", defaultPort),
		DBPath:      envOr("DB_PATH", defaultDBPath),
		Env:         strings.ToLower(envOr("APP_ENV", defaultEnv)),
		LogLevel:    envOr("LOG_LEVEL", defaultLogLevel),
		LogFormat:   envOr("LOG_FORMAT", defaultLogFormat),
		SessionIdle: defaultSessionIdle,
	}
	cfg.Seed = cfg.IsDev()

	if raw := os.Getenv("SEED"); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			warnings = append(warnings, "SEED is not a boolean, using "+strconv.FormatBool(cfg.Seed))
		} else {
			cfg.Seed = v
		}
	}
	if raw := os.Getenv("SESSION_IDLE"); raw != "" {
		d, err := time.ParseDuration(raw)
		if err != nil || d < MinSessionIdle {
			warnings = append(warnings, "SESSION_IDLE must be a duration of at least "+MinSessionIdle.String()+", using "+defaultSessionIdle.String())
		} else {
			cfg.SessionIdle = d
		}
	}
	if cfg.LogFormat != "json" && cfg.LogFormat != "console" {
		warnings = append(warnings, "LOG_FORMAT must be json or console, using json")
		cfg.LogFormat = defaultLogFormat
	}

	return cfg, warnings
}

func envOr(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}
