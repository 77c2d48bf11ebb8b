package config

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

// Config is the process configuration, read once at startup from the
// environment (a .env file is loaded when present).
type Config struct {
	Port          string
	DBDriver      string
	DSN           string
	JWTSecret     string
	RateTablePath string
	BackupDir     string
	UploadDir     string
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		logrus.Debug("no .env file loaded")
	}

	return &Config{
		Port:          getenv("PORT", "8090"),
		DBDriver:      getenv("DB_DRIVER", "sqlite"),
		DSN:           getenv("DSN", "warehouse.db"),
		JWTSecret:     getenv("JWT_SECRET", ""),
		RateTablePath: getenv("POSITION_RATES_FILE", ""),
		BackupDir:     getenv("BACKUP_DIR", "."),
		UploadDir:     getenv("UPLOAD_DIR", ""),
	}
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
