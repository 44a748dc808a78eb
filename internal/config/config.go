package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	ServerPort  string
	DataDir     string
	LogLevel    string
	LogEncoding string

	Session struct {
		Secret string
		TTL    time.Duration
	}
}

func Load() (*Config, error) {
	// Load .env file if it exists (useful for local dev)
	_ = godotenv.Load()

	serverPort := os.Getenv("SERVER_PORT")
	if serverPort == "" {
		serverPort = "8080"
	}

	dataDir := os.Getenv("DATA_DIR")
	if dataDir == "" {
		dataDir = "data"
	}

	logLevel := os.Getenv("LOG_LEVEL")
	if logLevel == "" {
		logLevel = "info"
	}

	logEncoding := os.Getenv("LOG_ENCODING")
	if logEncoding == "" {
		logEncoding = "json"
	}

	sessionSecret := os.Getenv("SESSION_SECRET")
	if sessionSecret == "" {
		return nil, fmt.Errorf("SESSION_SECRET must be set")
	}

	ttlHours := 24
	if v := os.Getenv("SESSION_TTL_HOURS"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil || parsed <= 0 {
			return nil, fmt.Errorf("SESSION_TTL_HOURS must be a positive integer")
		}
		ttlHours = parsed
	}

	cfg := &Config{
		ServerPort:  serverPort,
		DataDir:     dataDir,
		LogLevel:    logLevel,
		LogEncoding: logEncoding,
	}
	cfg.Session.Secret = sessionSecret
	cfg.Session.TTL = time.Duration(ttlHours) * time.Hour
	return cfg, nil
}
