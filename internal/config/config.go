// ABOUTME: Application configuration from environment
// ABOUTME: Loads .env via godotenv with sensible defaults
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	// Gemini API
	APIKey     string
	Model      string
	TTSModel   string
	VideoModel string

	// Narration
	Voice string

	// Local paths
	OutDir      string
	HistoryPath string
}

// Load reads configuration from the environment, honoring a local .env
// file when present
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		APIKey:     getEnv("GEMINI_API_KEY", ""),
		Model:      getEnv("WAYFARER_MODEL", ""),
		TTSModel:   getEnv("WAYFARER_TTS_MODEL", ""),
		VideoModel: getEnv("WAYFARER_VIDEO_MODEL", ""),
		Voice:      getEnv("WAYFARER_VOICE", "Kore"),

		OutDir:      getEnv("WAYFARER_OUT_DIR", defaultOutDir()),
		HistoryPath: getEnv("WAYFARER_HISTORY_PATH", defaultHistoryPath()),
	}
}

// Validate checks that network operations can be performed
func (c *Config) Validate() error {
	if c.APIKey == "" {
		return fmt.Errorf("GEMINI_API_KEY is not set")
	}
	return nil
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return fallback
}

func defaultOutDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "wayfarer-exports"
	}
	return filepath.Join(home, "Downloads")
}

func defaultHistoryPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "wayfarer-history.json"
	}
	return filepath.Join(dir, "wayfarer", "history.json")
}
