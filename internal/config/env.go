package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

// Config holds everything the process reads from the environment. It is
// loaded once in main and handed to the components that need it; nothing
// reads os.Getenv after startup.
type Config struct {
	Port          string
	DBPath        string
	JWTSecret     string
	TMDBToken     string
	AllowedOrigin string
	LogLevel      string
}

func Load() (Config, error) {
	if err := godotenv.Load(); err != nil {
		fmt.Println("Warning: .env file not found")
	}

	cfg := Config{
		Port:          getenv("PORT", "8080"),
		DBPath:        getenv("DB_PATH", "./kino.db"),
		JWTSecret:     os.Getenv("JWT_SECRET"),
		TMDBToken:     os.Getenv("TMDB_API_BEARER"),
		AllowedOrigin: os.Getenv("ALLOWED_ORIGIN"),
		LogLevel:      getenv("LOG_LEVEL", "info"),
	}

	if cfg.JWTSecret == "" {
		return Config{}, fmt.Errorf("JWT_SECRET not set")
	}
	if cfg.TMDBToken == "" {
		return Config{}, fmt.Errorf("TMDB_API_BEARER not set")
	}
	return cfg, nil
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
