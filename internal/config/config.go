package config

import (
	"os"
	"strconv"
)

// Config holds application level configuration loaded from environment variables.
type Config struct {
	ServerPort    string
	Env           string
	JWTSecret     string
	AllowedOrigin string
	DataDir       string
	UploadDir     string
	RateLimit     int

	GroqAPIKey    string
	GroqURL       string
	GroqModel     string
	DeepSeekKey   string
	DeepSeekURL   string
	DeepSeekModel string
}

// Load builds Config from environment with sensible defaults.
func Load() *Config {
	return &Config{
		ServerPort:    getEnv("PORT", "3000"),
		Env:           getEnv("APP_ENV", "production"),
		JWTSecret:     getEnv("JWT_SECRET", "aura-ai-secret-key"),
		AllowedOrigin: getEnv("ALLOWED_ORIGIN", "http://localhost:5500"),
		DataDir:       getEnv("DATA_DIR", "data"),
		UploadDir:     getEnv("UPLOAD_DIR", "uploads/pdfs"),
		RateLimit:     getEnvInt("RATE_LIMIT", 20),

		GroqAPIKey:    os.Getenv("GROQ_API_KEY"),
		GroqURL:       getEnv("GROQ_API_URL", "https://api.groq.com/openai/v1/chat/completions"),
		GroqModel:     getEnv("GROQ_MODEL", "llama3-70b-8192"),
		DeepSeekKey:   os.Getenv("DEEPSEEK_API_KEY"),
		DeepSeekURL:   getEnv("DEEPSEEK_API_URL", "https://api.deepseek.com/chat/completions"),
		DeepSeekModel: getEnv("DEEPSEEK_MODEL", "deepseek-chat"),
	}
}

// Development reports whether verbose error reporting is enabled.
func (c *Config) Development() bool {
	return c.Env == "development"
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			return parsed
		}
	}
	return def
}
