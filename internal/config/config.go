package config

import (
	"os"
	"path/filepath"
	"sync"

	"gagyebu/ledger-csv/internal/logging"

	"github.com/joho/godotenv"
)

var once sync.Once

// LoadEnv loads a .env file from the working directory or its parent, once per
// process. Variables already set in the environment win over the file.
func LoadEnv(logger logging.Logger) {
	if logger == nil {
		logger = logging.Default()
	}
	once.Do(func() {
		envFile := FindEnvFile()
		if envFile == "" {
			logger.Debug("No .env file found, using environment variables")
			return
		}

		if err := godotenv.Load(envFile); err != nil {
			logger.WithError(err).Warn("Error loading .env file")
			return
		}
		logger.WithField(logging.FieldFile, envFile).Debug("Loaded environment variables")
	})
}

// FindEnvFile returns the path of the nearest .env file, or "".
func FindEnvFile() string {
	for _, candidate := range []string{".env", filepath.Join("..", ".env")} {
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate
		}
	}
	return ""
}

// GetEnv retrieves an environment variable with a fallback value if not set
func GetEnv(key, fallback string) string {
	value, exists := os.LookupEnv(key)
	if !exists {
		return fallback
	}
	return value
}
