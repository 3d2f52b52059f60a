package config

import (
	"log/slog"
	"os"

	"github.com/joho/godotenv"
)

// Environment toggles understood by the orchestration layer.
const (
	EnvClocSkip    = "CLOC_SKIP"
	EnvTypeDocSkip = "TYPEDOC_SKIP"
	EnvLogLevel    = "DOCREPORTS_LOG_LEVEL"
)

// loadEnvFiles loads .env.local and .env when present. Variables already set in
// the process environment are never overwritten, so .env.local wins over .env.
func loadEnvFiles() {
	for _, envPath := range []string{".env.local", ".env"} {
		if _, err := os.Stat(envPath); err != nil {
			continue
		}
		if err := godotenv.Load(envPath); err != nil {
			slog.Warn("Failed to load environment file", "path", envPath, "error", err)
			continue
		}
		slog.Debug("Loaded environment variables", "path", envPath)
	}
}

// applyEnv applies environment toggles on top of file configuration.
func applyEnv(cfg *Config) {
	if os.Getenv(EnvClocSkip) != "" {
		cfg.Cloc.Skip = true
	}
	if os.Getenv(EnvTypeDocSkip) != "" {
		cfg.TypeDoc.Skip = true
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		cfg.Logging.Level = NormalizeLogLevel(v)
	}
}
