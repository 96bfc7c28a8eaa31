package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	// Server configuration
	ServerHost string
	ServerPort string

	// Database configuration
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	// Redis configuration
	RedisHost     string
	RedisPort     string
	RedisPassword string
	RedisDB       int
	RedisURL      string

	// JWT configuration
	JWTSecret string

	// Gemini model provider configuration
	GeminiAPIKey  string
	GeminiAPIURL  string
	GeminiTimeout time.Duration

	// Logging
	LogLevel string
}

// LoadConfig creates a new Config instance with values from the environment.
// A .env file in the working directory is loaded first when present.
func LoadConfig() (*Config, error) {
	// .env is optional; real deployments set variables directly
	_ = godotenv.Load()

	v := viper.New()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	cfg := &Config{
		ServerHost:    v.GetString("SERVER_HOST"),
		ServerPort:    v.GetString("SERVER_PORT"),
		DBHost:        v.GetString("DB_HOST"),
		DBPort:        v.GetString("DB_PORT"),
		DBUser:        v.GetString("DB_USER"),
		DBPassword:    v.GetString("DB_PASSWORD"),
		DBName:        v.GetString("DB_NAME"),
		DBSSLMode:     v.GetString("DB_SSL_MODE"),
		RedisHost:     v.GetString("REDIS_HOST"),
		RedisPort:     v.GetString("REDIS_PORT"),
		RedisPassword: v.GetString("REDIS_PASSWORD"),
		RedisDB:       v.GetInt("REDIS_DB"),
		RedisURL:      v.GetString("REDIS_URL"),
		JWTSecret:     v.GetString("JWT_SECRET"),
		GeminiAPIKey:  v.GetString("GEMINI_API_KEY"),
		GeminiAPIURL:  v.GetString("GEMINI_API_URL"),
		GeminiTimeout: v.GetDuration("GEMINI_TIMEOUT"),
		LogLevel:      v.GetString("LOG_LEVEL"),
	}

	// The API key may also be provided as a file, e.g. a Docker secret
	if cfg.GeminiAPIKey == "" {
		if keyFile := v.GetString("GEMINI_API_KEY_FILE"); keyFile != "" {
			content, err := os.ReadFile(keyFile)
			if err != nil {
				return nil, fmt.Errorf("failed to read Gemini API key file: %w", err)
			}
			cfg.GeminiAPIKey = strings.TrimSpace(string(content))
		}
	}

	if err := ValidateConfig(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("SERVER_HOST", "0.0.0.0")
	v.SetDefault("SERVER_PORT", "8080")
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_NAME", "retetar")
	v.SetDefault("DB_SSL_MODE", "disable")
	v.SetDefault("REDIS_HOST", "localhost")
	v.SetDefault("REDIS_PORT", "6379")
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("GEMINI_API_URL", "https://generativelanguage.googleapis.com/v1beta/models/gemini-2.0-flash:generateContent")
	v.SetDefault("GEMINI_TIMEOUT", 25*time.Second)
	v.SetDefault("LOG_LEVEL", "info")
}
