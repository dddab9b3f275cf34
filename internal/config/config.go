// Package config provides application configuration.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"
)

// Config holds all application configuration.
type Config struct {
	Port        string
	CORSOrigins []string

	MongoURI     string
	DatabaseName string

	JWTSecret string
	JWTTTL    time.Duration

	GroqAPIKey  string
	GroqBaseURL string
	GroqModel   string
	GroqTimeout time.Duration

	ElevenLabsAPIKey string

	// SerializeTurns enables the opt-in per-session turn serialization.
	// Off by default: concurrent turns on one session may interleave.
	SerializeTurns bool
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{
		Port:             getEnv("PORT", "8080"),
		CORSOrigins:      splitList(getEnv("CORS_ORIGINS", "http://localhost:5173,http://localhost:3000")),
		MongoURI:         getEnv("MONGODB_URI", "mongodb://localhost:27017"),
		DatabaseName:     getEnv("DATABASE_NAME", "assistant"),
		JWTSecret:        getEnv("JWT_SECRET", ""),
		JWTTTL:           getEnvDuration("JWT_TTL", 24*time.Hour),
		GroqAPIKey:       getEnv("GROQ_API_KEY", ""),
		GroqBaseURL:      getEnv("GROQ_BASE_URL", "https://api.groq.com/openai/v1"),
		GroqModel:        getEnv("GROQ_MODEL", "llama-3.3-70b-versatile"),
		GroqTimeout:      getEnvDuration("GROQ_TIMEOUT", 60*time.Second),
		ElevenLabsAPIKey: getEnv("ELEVENLABS_API_KEY", ""),
		SerializeTurns:   getEnvBool("SERIALIZE_TURNS", false),
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// Validate checks that all required configuration fields are set.
func (c *Config) Validate() error {
	if c.Port == "" {
		return fmt.Errorf("PORT cannot be empty")
	}
	if c.MongoURI == "" {
		return fmt.Errorf("MONGODB_URI cannot be empty")
	}
	if c.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET must be set")
	}
	if c.GroqAPIKey == "" {
		return fmt.Errorf("GROQ_API_KEY must be set")
	}
	if c.JWTTTL <= 0 {
		return fmt.Errorf("JWT_TTL must be > 0")
	}
	return nil
}

// TTSEnabled reports whether the text-to-speech relay is configured.
func (c *Config) TTSEnabled() bool {
	return c.ElevenLabsAPIKey != ""
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	value, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "1", "true", "yes", "on":
		return true
	case "0", "false", "no", "off":
		return false
	default:
		return fallback
	}
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	value, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	d, err := time.ParseDuration(strings.TrimSpace(value))
	if err != nil {
		return fallback
	}
	return d
}

func splitList(value string) []string {
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
