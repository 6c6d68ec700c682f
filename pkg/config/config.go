package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	Port          string
	Env           string
	JWTSecret     string
	PostgresURL   string
	MongoURI      string
	MongoDatabase string
	RedisAddr     string
	StorageDriver string // "gridfs" or "cloudinary"
}

// Load reads configuration from the environment, after pulling in a
// .env file when one is present.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, assuming environment variables are set.")
	}
	return &Config{
		Port:          getEnv("PORT", "8080"),
		Env:           getEnv("ENV", "development"),
		JWTSecret:     getEnv("JWT_SECRET", "supersecretjwtkey"),
		PostgresURL:   getEnv("POSTGRES_CONN_STR", ""),
		MongoURI:      getEnv("MONGO_URI", ""),
		MongoDatabase: getEnv("MONGO_DATABASE", "socialspace"),
		RedisAddr:     getEnv("REDIS_ADDR", ""),
		StorageDriver: getEnv("STORAGE_DRIVER", "gridfs"),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
