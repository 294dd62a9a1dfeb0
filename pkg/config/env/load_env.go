package env

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
)

// EnvPath names the variable that overrides the .env location
const EnvPath = "ENV_PATH"

// LoadDotEnv loads environment variables from a .env file.
// ENV_PATH takes precedence over defaultPath. A missing or unreadable file is
// only an error in local mode (env "local" or empty); elsewhere it is skipped.
// Variables already set in the process environment are not overwritten.
func LoadDotEnv(env string, defaultPath string) error {
	envPath := os.Getenv(EnvPath)
	if envPath == "" {
		slog.Info("ENV_PATH is not set, using default path", "defaultPath", defaultPath)
		envPath = defaultPath
	}

	if err := godotenv.Load(envPath); err != nil {
		if env == "local" || env == "" {
			slog.Error("Failed to load environment variables in local mode", "path", envPath, "error", err)
			return fmt.Errorf("failed to load %s: %w", envPath, err)
		}
		slog.Debug("Skipping .env ...", "path", envPath)
	}

	return nil
}

// Get returns the value of key, or fallback when it is unset or empty
func Get(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
