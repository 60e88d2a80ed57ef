// Package config provides configuration for the waitlist backend.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the backend configuration. It is read once at startup and
// treated as immutable for the process lifetime.
type Config struct {
	// Server settings
	Port        int
	FrontendURL string

	// Sessions
	SessionSecret string
	SessionTTL    time.Duration

	// Email (Resend)
	ResendAPIKey string
	FromEmail    string
	AdminEmail   string
	ReplyToEmail string

	// Tabular store (Airtable)
	AirtableAPIKey    string
	AirtableBaseID    string
	AirtableTableName string

	// Model access (OpenAI-compatible)
	OpenAIAPIKey  string
	OpenAIBaseURL string
	OpenAIModel   string

	// StrictAgentCount rejects generated teams whose agent count falls
	// outside the requested bounds instead of only logging a warning.
	StrictAgentCount bool

	// Legacy external-form integration
	TallyFormID string

	// Timeouts
	HTTPTimeout time.Duration
	LLMTimeout  time.Duration
}

// Load loads configuration from the environment. A .env file is applied
// first when present.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		slog.Debug("no .env file loaded", "error", err)
	}

	return &Config{
		Port:              getEnvInt("PORT", 3001),
		FrontendURL:       getEnv("FRONTEND_URL", ""),
		SessionSecret:     getEnv("SESSION_SECRET", ""),
		SessionTTL:        time.Duration(getEnvInt("SESSION_TTL_HOURS", 24)) * time.Hour,
		ResendAPIKey:      getEnv("RESEND_API_KEY", ""),
		FromEmail:         getEnv("FROM_EMAIL", ""),
		AdminEmail:        getEnv("ADMIN_EMAIL", ""),
		ReplyToEmail:      getEnv("REPLY_TO_EMAIL", ""),
		AirtableAPIKey:    getEnv("AIRTABLE_API_KEY", ""),
		AirtableBaseID:    getEnv("AIRTABLE_BASE_ID", ""),
		AirtableTableName: getEnv("AIRTABLE_TABLE_NAME", "Signups"),
		OpenAIAPIKey:      getEnv("OPENAI_API_KEY", ""),
		OpenAIBaseURL:     getEnv("OPENAI_BASE_URL", "https://api.openai.com"),
		OpenAIModel:       getEnv("OPENAI_MODEL", "gpt-4o-mini"),
		StrictAgentCount:  getEnvBool("STRICT_AGENT_COUNT", false),
		TallyFormID:       getEnv("TALLY_FORM_ID", ""),
		HTTPTimeout:       time.Duration(getEnvInt("HTTP_TIMEOUT_MS", 15000)) * time.Millisecond,
		LLMTimeout:        time.Duration(getEnvInt("LLM_TIMEOUT_MS", 60000)) * time.Millisecond,
	}
}

// Validate fails fast on settings the process cannot run without. Optional
// integrations (Airtable, OpenAI) degrade at request time instead.
func (c *Config) Validate() error {
	if c.SessionSecret == "" {
		return fmt.Errorf("SESSION_SECRET is required")
	}
	if c.ResendAPIKey == "" {
		return fmt.Errorf("RESEND_API_KEY is required")
	}
	if c.FromEmail == "" {
		return fmt.Errorf("FROM_EMAIL is required")
	}
	return nil
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getEnvBool(key string, defaultVal bool) bool {
	if val := os.Getenv(key); val != "" {
		if boolVal, err := strconv.ParseBool(val); err == nil {
			return boolVal
		}
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if val := os.Getenv(key); val != "" {
		if intVal, err := strconv.Atoi(val); err == nil {
			return intVal
		}
	}
	return defaultVal
}
