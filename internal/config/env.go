package config

import (
	"os"

	"github.com/joho/godotenv"
)

// Environment variables that override flag defaults.
const (
	EnvDBPath   = "ARCADE_DB"
	EnvProfile  = "ARCADE_PROFILE"
	EnvVocab    = "ARCADE_VOCAB"
	EnvSettings = "ARCADE_SETTINGS"
)

// Env holds values read from the environment.
type Env struct {
	DBPath       string
	Profile      string
	VocabPath    string
	SettingsPath string
}

// LoadEnv reads a .env file when present, then the process environment.
func LoadEnv() Env {
	// Try to load .env file (ignore error if not exists)
	_ = godotenv.Load()

	return Env{
		DBPath:       os.Getenv(EnvDBPath),
		Profile:      os.Getenv(EnvProfile),
		VocabPath:    os.Getenv(EnvVocab),
		SettingsPath: getEnv(EnvSettings, DefaultSettingsPath()),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
