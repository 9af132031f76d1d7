package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	ServerPort     string
	StorageBackend string
	DBHost         string
	DBPort         string
	DBUser         string
	DBPassword     string
	DBName         string

	// SkipCountsAsWrong controls whether a skipped question also increments
	// the player's wrong-answer counter. A skip always advances the wrong
	// streak for difficulty adaptation regardless of this setting.
	SkipCountsAsWrong bool

	HeartbeatSeconds   int
	EffectSweepSeconds int
}

func Load() *Config {
	if err := godotenv.Load(); err == nil {
		log.Println("config: loaded .env")
	}

	return &Config{
		ServerPort:         getEnv("SERVER_PORT", "8080"),
		StorageBackend:     getEnv("STORAGE_BACKEND", "memory"),
		DBHost:             getEnv("DB_HOST", "localhost"),
		DBPort:             getEnv("DB_PORT", "5432"),
		DBUser:             getEnv("DB_USER", "postgres"),
		DBPassword:         getEnv("DB_PASSWORD", "postgres"),
		DBName:             getEnv("DB_NAME", "mathhack"),
		SkipCountsAsWrong:  getEnvBool("SKIP_COUNTS_AS_WRONG", false),
		HeartbeatSeconds:   getEnvInt("HEARTBEAT_SECONDS", 30),
		EffectSweepSeconds: getEnvInt("EFFECT_SWEEP_SECONDS", 30),
	}
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	n, err := strconv.Atoi(val)
	if err != nil || n <= 0 {
		return fallback
	}
	return n
}

func getEnvBool(key string, fallback bool) bool {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	b, err := strconv.ParseBool(val)
	if err != nil {
		return fallback
	}
	return b
}
