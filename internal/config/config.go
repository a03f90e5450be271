package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds the application configuration
type Config struct {
	Port      string
	DBPath    string
	JWTSecret string

	// Portal interaction
	SiteBaseURL string
	Headless    bool
	MaxPages    int

	// Queue
	WorkerCount   int
	QueueCapacity int
	TaskTimeout   time.Duration
}

// Load reads configuration from the environment with sensible defaults
func Load() *Config {
	return &Config{
		Port:      getString("PORT", ":8080"),
		DBPath:    getString("DB_PATH", "./data/reserva.db"),
		JWTSecret: getString("JWT_SECRET", "your-secret-key-change-in-production"),

		SiteBaseURL: getString("SITE_BASE_URL", "https://tecoxp.skedway.com"),
		Headless:    getBool("HEADLESS", true),
		MaxPages:    getInt("MAX_PAGES", 2),

		WorkerCount:   getInt("WORKER_COUNT", 1),
		QueueCapacity: getInt("QUEUE_CAPACITY", 1024),
		TaskTimeout:   time.Duration(getInt("TASK_TIMEOUT_SECONDS", 180)) * time.Second,
	}
}

func getString(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func getBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}
