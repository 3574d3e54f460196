package config

import (
	"os"
	"strconv"
	"strings"
)

// Config holds all non-AI application configuration, loaded from the
// environment once at startup.
type Config struct {
	Port     string
	MongoURI string
	MongoDB  string
	RedisURI string

	JWTSecret string

	UploadDir           string
	MaxAudioSizeMB      int
	AllowedAudioFormats []string

	MinTextLength int
	MaxTextLength int

	// Worker pool sizing for background evaluations.
	WorkerCount     int
	WorkerQueueSize int
	TaskTimeoutSec  int
}

// Load reads configuration from the environment, applying defaults.
func Load() *Config {
	return &Config{
		Port:     getEnvOrDefault("PORT", "8080"),
		MongoURI: getEnvOrDefault("MONGO_URI", "mongodb://localhost:27017"),
		MongoDB:  getEnvOrDefault("MONGO_DB", "interviewdb"),
		RedisURI: getEnvOrDefault("REDIS_URI", "localhost:6379"),

		JWTSecret: getEnvOrDefault("JWT_SECRET", "change-me-in-production"),

		UploadDir:           getEnvOrDefault("UPLOAD_DIR", "uploads"),
		MaxAudioSizeMB:      getEnvIntOrDefault("MAX_AUDIO_SIZE_MB", 50),
		AllowedAudioFormats: splitList(getEnvOrDefault("ALLOWED_AUDIO_FORMATS", "mp3,wav,m4a,flac")),

		MinTextLength: getEnvIntOrDefault("MIN_TEXT_LENGTH", 10),
		MaxTextLength: getEnvIntOrDefault("MAX_TEXT_LENGTH", 5000),

		WorkerCount:     getEnvIntOrDefault("WORKER_COUNT", 4),
		WorkerQueueSize: getEnvIntOrDefault("WORKER_QUEUE_SIZE", 64),
		TaskTimeoutSec:  getEnvIntOrDefault("TASK_TIMEOUT_SEC", 120),
	}
}

func getEnvOrDefault(key, defaultValue string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return defaultValue
}

func splitList(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, strings.ToLower(trimmed))
		}
	}
	return out
}
