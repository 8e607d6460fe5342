package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	StorePath  string
	ServerPort string
	DebugMode  bool
}

func Load() *Config {
	err := godotenv.Load()
	if err != nil {
		log.Println("No .env file found, using environment variables")
	}

	return &Config{
		StorePath:  getEnv("STORE_PATH", "yasai.db"),
		ServerPort: getEnv("SERVER_PORT", "8080"),
		DebugMode:  getEnv("DEBUGMODE", "true") == "true",
	}
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}
