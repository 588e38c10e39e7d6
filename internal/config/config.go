// File: internal/config/config.go
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

type Config struct {
	ServerPort  string
	Environment string
	LogLevel    string

	ClassifierURL     string
	ClassifierTimeout time.Duration

	// Empty DirectoryURL means the embedded doctor registry.
	DirectoryURL     string
	DirectoryTimeout time.Duration

	OpenAIAPIKey       string
	OpenAIBaseURL      string
	AssistantModel     string
	AssistantMaxTokens int
	AssistantTimeout   time.Duration

	LedgerDBPath       string
	DoctorSampleSize   int
	DefaultCity        string
	SubmitRateLimit    int
	SubmitRateWindow   time.Duration
	SessionIdleTimeout time.Duration
}

// Load reads configuration from environment variables or .env file.
func Load() (*Config, error) {
	env := os.Getenv("ENV")
	if !isProduction(env) {
		if err := godotenv.Load(); err != nil {
			log.Info().Msg("No .env file found; continuing with environment variables")
		}
	}

	cfg := &Config{
		ServerPort:  getEnv("SERVER_PORT", "8080"),
		Environment: env,
		LogLevel:    getEnv("LOG_LEVEL", "info"),

		ClassifierURL:     getEnv("CLASSIFIER_URL", "http://localhost:10000/"),
		ClassifierTimeout: getEnvAsDuration("CLASSIFIER_TIMEOUT", 30*time.Second),

		DirectoryURL:     getEnv("DIRECTORY_URL", ""),
		DirectoryTimeout: getEnvAsDuration("DIRECTORY_TIMEOUT", 10*time.Second),

		OpenAIAPIKey:       getEnv("OPENAI_API_KEY", ""),
		OpenAIBaseURL:      getEnv("OPENAI_BASE_URL", ""),
		AssistantModel:     getEnv("ASSISTANT_MODEL", "gpt-3.5-turbo"),
		AssistantMaxTokens: getEnvAsInt("ASSISTANT_MAX_TOKENS", 256),
		AssistantTimeout:   getEnvAsDuration("ASSISTANT_TIMEOUT", 60*time.Second),

		LedgerDBPath:       getEnv("LEDGER_DB_PATH", "medisen.db"),
		DoctorSampleSize:   getEnvAsInt("DOCTOR_SAMPLE_SIZE", 6),
		DefaultCity:        getEnv("DEFAULT_CITY", "Nagpur"),
		SubmitRateLimit:    getEnvAsInt("SUBMIT_RATE_LIMIT", 5),
		SubmitRateWindow:   getEnvAsDuration("SUBMIT_RATE_WINDOW", time.Minute),
		SessionIdleTimeout: getEnvAsDuration("SESSION_IDLE_TIMEOUT", 30*time.Minute),
	}

	// Validation for production environments
	if isProduction(env) {
		missing := []string{}
		if cfg.OpenAIAPIKey == "" {
			missing = append(missing, "OPENAI_API_KEY")
		}
		if _, ok := os.LookupEnv("CLASSIFIER_URL"); !ok {
			missing = append(missing, "CLASSIFIER_URL")
		}
		if len(missing) > 0 {
			return nil, fmt.Errorf("missing required production environment variables: %v", missing)
		}
	}

	return cfg, nil
}

func (c *Config) IsProduction() bool {
	return isProduction(c.Environment)
}

func isProduction(env string) bool {
	return strings.ToLower(env) == "production"
}

// getEnv returns the value of an environment variable or a default.
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// getEnvAsInt gets an env var as an integer, with a fallback.
func getEnvAsInt(key string, defaultValue int) int {
	strValue := getEnv(key, "")
	if strValue == "" {
		return defaultValue
	}
	intValue, err := strconv.Atoi(strValue)
	if err != nil {
		log.Warn().Str("key", key).Msg("could not parse env var as integer; using default")
		return defaultValue
	}
	return intValue
}

// getEnvAsDuration accepts Go durations ("45s") or plain seconds ("45").
func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	strValue := getEnv(key, "")
	if strValue == "" {
		return defaultValue
	}
	if d, err := time.ParseDuration(strValue); err == nil {
		return d
	}
	if secs, err := strconv.Atoi(strValue); err == nil {
		return time.Duration(secs) * time.Second
	}
	log.Warn().Str("key", key).Msg("could not parse env var as duration; using default")
	return defaultValue
}
