// Package config provides configuration helpers for tiltplay commands.
package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/alvarohub/tiltplay/pkg/control"
)

// Default server configuration.
const (
	DefaultPort = "8080"
)

// LoadEnv loads a .env file when present. Missing files are fine;
// real environment variables win either way.
func LoadEnv() {
	_ = godotenv.Load()
}

// Port returns the HTTP port from the PORT env var or the default.
func Port() string {
	if port := os.Getenv("PORT"); port != "" {
		return port
	}
	return DefaultPort
}

// LogLevel returns the log level from LOG_LEVEL ("info" when unset).
func LogLevel() string {
	if lvl := os.Getenv("LOG_LEVEL"); lvl != "" {
		return lvl
	}
	return "info"
}

// ModelPath returns the face model path from MODEL_PATH or the given
// default.
func ModelPath(def string) string {
	if p := os.Getenv("MODEL_PATH"); p != "" {
		return p
	}
	return def
}

// LoadSettings reads a YAML settings preset and validates it. Keys
// that the file omits keep their defaults.
func LoadSettings(path string) (control.Settings, error) {
	s := control.DefaultSettings()

	data, err := os.ReadFile(path)
	if err != nil {
		return s, fmt.Errorf("read settings: %w", err)
	}
	if err := yaml.Unmarshal(data, &s); err != nil {
		return s, fmt.Errorf("parse settings: %w", err)
	}
	if err := s.Validate(); err != nil {
		return s, fmt.Errorf("settings %s: %w", path, err)
	}
	return s, nil
}
