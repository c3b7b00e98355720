package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port          string
	Env           string
	PostgresURL   string
	MongoURI      string
	MongoDatabase string
	JWTSecret     string
	StoreTimeout  time.Duration
}

// Load reads configuration from the environment. A .env file in the working
// directory is loaded first so its values are visible below; variables
// already set in the real environment win over the file.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, assuming environment variables are set.")
	}

	return &Config{
		Port:          getEnv("PORT", "8080"),
		Env:           getEnv("ENV", "development"),
		PostgresURL:   getEnv("POSTGRES_URL", ""),
		MongoURI:      getEnv("MONGO_URI", ""),
		MongoDatabase: getEnv("MONGO_DATABASE", "pantrypal"),
		JWTSecret:     getEnv("JWT_SECRET", "supersecretjwtkey"),
		StoreTimeout:  time.Duration(getEnvInt("STORE_TIMEOUT_SECONDS", 5)) * time.Second,
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}
