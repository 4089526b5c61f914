// Package config loads inference server settings from the environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds inference server settings.
type Config struct {
	ModelPath     string  // MODEL_PATH
	Port          string  // APP_PORT
	LibraryPath   string  // ORT_LIB_PATH
	Confidence    float64 // CONF_THRESHOLD
	UploadLimitMB int     // UPLOAD_LIMIT_MB
	TempDir       string  // TEMP_DIR
}

// Default returns the settings used when no variables are set.
func Default() Config {
	return Config{
		ModelPath:     "./models/best.onnx",
		Port:          "8000",
		Confidence:    0.25,
		UploadLimitMB: 50,
		TempDir:       os.TempDir(),
	}
}

// Load reads the given .env files (default ".env") into the environment and
// then builds a Config from it. Missing .env files are ignored; variables
// already set in the environment win.
func Load(files ...string) (Config, error) {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("loading %s: %w", f, err)
		}
	}
	return FromEnv()
}

// FromEnv builds a Config from environment variables.
func FromEnv() (Config, error) {
	cfg := Default()

	if v := os.Getenv("MODEL_PATH"); v != "" {
		cfg.ModelPath = v
	}
	if v := os.Getenv("APP_PORT"); v != "" {
		cfg.Port = v
	}
	if v := os.Getenv("ORT_LIB_PATH"); v != "" {
		cfg.LibraryPath = v
	}
	if v := os.Getenv("TEMP_DIR"); v != "" {
		cfg.TempDir = v
	}

	if v := os.Getenv("CONF_THRESHOLD"); v != "" {
		c, err := strconv.ParseFloat(v, 64)
		if err != nil || c < 0 || c > 1 {
			return Config{}, fmt.Errorf("CONF_THRESHOLD must be a number in [0, 1], got %q", v)
		}
		cfg.Confidence = c
	}

	if v := os.Getenv("UPLOAD_LIMIT_MB"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			return Config{}, fmt.Errorf("UPLOAD_LIMIT_MB must be a positive integer, got %q", v)
		}
		cfg.UploadLimitMB = n
	}

	return cfg, nil
}

// Addr returns the listen address.
func (c Config) Addr() string {
	return ":" + c.Port
}
