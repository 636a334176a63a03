package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	APIBaseURL string
	ListenAddr string
	StorePath  string
	LogLevel   string
}

func Load() *Config {
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("Notice: .env file not found: %v. Using system environment variables", err)
	}

	return &Config{
		APIBaseURL: EnvDefault("API_BASE_URL", "http://localhost:5000"),
		ListenAddr: EnvDefault("LISTEN_ADDR", ":3000"),
		StorePath:  EnvDefault("STORE_PATH", "wingscafe.db"),
		LogLevel:   EnvDefault("LOG_LEVEL", "info"),
	}
}

func EnvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
