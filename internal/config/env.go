package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"

	apperrors "xcribe/internal/app/errors"
)

// LoadEnv loads environment variables from a .env file when one exists near
// the working directory. Missing files are fine; variables may be set
// system-wide.
func LoadEnv() error {
	envPaths := []string{
		".env",
		".env.local",
		"../.env",
		"../../.env",
	}

	for _, envPath := range envPaths {
		if _, err := os.Stat(envPath); err == nil {
			if err := godotenv.Load(envPath); err != nil {
				return fmt.Errorf("error loading %s file: %w", envPath, err)
			}
			break
		}
	}

	return nil
}

// GeminiAPIKey returns the configured API key, possibly empty.
func GeminiAPIKey() string {
	return strings.TrimSpace(os.Getenv("GEMINI_API_KEY"))
}

// RequireGeminiAPIKey fails fast when the transcription credential is
// missing, so the caller surfaces a configuration error before any network
// call is attempted.
func RequireGeminiAPIKey() (string, error) {
	key := GeminiAPIKey()
	if key == "" {
		return "", apperrors.ErrMissingAPIKey
	}
	return key, nil
}
