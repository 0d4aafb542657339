// Package config reads application configuration from the environment.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"
)

const (
	SessionBackendFile     = "file"
	SessionBackendDynamoDB = "dynamodb"

	ConversationBackendMemory = "memory"
	ConversationBackendSQLite = "sqlite"

	// credentialParam is appended to PARAM_PREFIX to name the SSM parameter
	// holding {"token": "<groq api key>"}.
	credentialParam = "/groq-api-token"
)

// Config holds all application configuration.
type Config struct {
	Port     string
	LogLevel slog.Level

	LLM LLMConfig

	SessionBackend string
	DataDir        string
	StateTable     string

	ConversationBackend string
	ConversationDBPath  string
}

// LLMConfig controls the model client.
type LLMConfig struct {
	APIKey      string
	ParamPrefix string
	BaseURL     string
	Model       string
	Timeout     time.Duration
}

// CredentialParameter returns the SSM parameter name holding the API key,
// or "" when no prefix is configured.
func (c LLMConfig) CredentialParameter() string {
	prefix := strings.TrimRight(strings.TrimSpace(c.ParamPrefix), "/")
	if prefix == "" {
		return ""
	}
	return prefix + credentialParam
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{
		Port:     getEnv("PORT", "8000"),
		LogLevel: getEnvLevel("LOG_LEVEL", slog.LevelInfo),
		LLM: LLMConfig{
			APIKey:      strings.TrimSpace(getEnv("GROQ_API_KEY", "")),
			ParamPrefix: getEnv("PARAM_PREFIX", ""),
			BaseURL:     getEnv("LLM_BASE_URL", "https://api.groq.com/openai/v1"),
			Model:       getEnv("LLM_MODEL", "llama-3.1-8b-instant"),
			Timeout:     getEnvDuration("LLM_TIMEOUT", 30*time.Second),
		},
		SessionBackend:      strings.ToLower(getEnv("SESSION_BACKEND", SessionBackendFile)),
		DataDir:             getEnv("DATA_DIR", "data"),
		StateTable:          getEnv("STATE_TABLE", ""),
		ConversationBackend: strings.ToLower(getEnv("CONVERSATION_BACKEND", ConversationBackendMemory)),
		ConversationDBPath:  getEnv("CONVERSATION_DB_PATH", "./data/conversations.db"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// Validate checks that the selected backends have what they need. A missing
// API key is not a startup error; it is reported by the first model call.
func (c *Config) Validate() error {
	if c.Port == "" {
		return fmt.Errorf("PORT cannot be empty")
	}
	if c.LLM.Timeout <= 0 {
		return fmt.Errorf("LLM_TIMEOUT must be > 0")
	}
	switch c.SessionBackend {
	case SessionBackendFile:
		if c.DataDir == "" {
			return fmt.Errorf("DATA_DIR cannot be empty")
		}
	case SessionBackendDynamoDB:
		if c.StateTable == "" {
			return fmt.Errorf("STATE_TABLE is required when SESSION_BACKEND=dynamodb")
		}
	default:
		return fmt.Errorf("SESSION_BACKEND must be %q or %q, got %q", SessionBackendFile, SessionBackendDynamoDB, c.SessionBackend)
	}
	switch c.ConversationBackend {
	case ConversationBackendMemory:
	case ConversationBackendSQLite:
		if c.ConversationDBPath == "" {
			return fmt.Errorf("CONVERSATION_DB_PATH cannot be empty")
		}
	default:
		return fmt.Errorf("CONVERSATION_BACKEND must be %q or %q, got %q", ConversationBackendMemory, ConversationBackendSQLite, c.ConversationBackend)
	}
	return nil
}

// NeedsAWS reports whether any configured component talks to AWS.
func (c *Config) NeedsAWS() bool {
	return c.SessionBackend == SessionBackendDynamoDB || (c.LLM.APIKey == "" && c.LLM.CredentialParameter() != "")
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
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

func getEnvLevel(key string, fallback slog.Level) slog.Level {
	value, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(value))); err != nil {
		return fallback
	}
	return level
}
