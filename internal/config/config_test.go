package config

import (
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

var configKeys = []string{
	"PORT", "LOG_LEVEL", "GROQ_API_KEY", "PARAM_PREFIX", "LLM_BASE_URL", "LLM_MODEL", "LLM_TIMEOUT",
	"SESSION_BACKEND", "DATA_DIR", "STATE_TABLE", "CONVERSATION_BACKEND", "CONVERSATION_DB_PATH",
}

// clearEnv makes every key look unset for the duration of the test.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range configKeys {
		t.Setenv(k, "")
	}
	for _, k := range configKeys {
		require.NoError(t, os.Unsetenv(k))
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "8000", cfg.Port)
	require.Equal(t, slog.LevelInfo, cfg.LogLevel)
	require.Equal(t, "https://api.groq.com/openai/v1", cfg.LLM.BaseURL)
	require.Equal(t, "llama-3.1-8b-instant", cfg.LLM.Model)
	require.Equal(t, 30*time.Second, cfg.LLM.Timeout)
	require.Equal(t, SessionBackendFile, cfg.SessionBackend)
	require.Equal(t, "data", cfg.DataDir)
	require.Equal(t, ConversationBackendMemory, cfg.ConversationBackend)
	require.Empty(t, cfg.LLM.APIKey)
	require.Empty(t, cfg.LLM.CredentialParameter())
	require.False(t, cfg.NeedsAWS())
}

func TestLoad_Overrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "9000")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("GROQ_API_KEY", "  gsk-test  ")
	t.Setenv("LLM_TIMEOUT", "5s")
	t.Setenv("SESSION_BACKEND", "DynamoDB")
	t.Setenv("STATE_TABLE", "antisocial-state")
	t.Setenv("CONVERSATION_BACKEND", "sqlite")
	t.Setenv("CONVERSATION_DB_PATH", "/tmp/conv.db")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "9000", cfg.Port)
	require.Equal(t, slog.LevelDebug, cfg.LogLevel)
	require.Equal(t, "gsk-test", cfg.LLM.APIKey)
	require.Equal(t, 5*time.Second, cfg.LLM.Timeout)
	require.Equal(t, SessionBackendDynamoDB, cfg.SessionBackend)
	require.Equal(t, ConversationBackendSQLite, cfg.ConversationBackend)
	require.True(t, cfg.NeedsAWS())
}

func TestLoad_InvalidValuesFallBack(t *testing.T) {
	clearEnv(t)
	t.Setenv("LLM_TIMEOUT", "soon")
	t.Setenv("LOG_LEVEL", "chatty")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, 30*time.Second, cfg.LLM.Timeout)
	require.Equal(t, slog.LevelInfo, cfg.LogLevel)
}

func TestValidate(t *testing.T) {
	base := func() *Config {
		return &Config{
			Port:                "8000",
			LLM:                 LLMConfig{Timeout: time.Second},
			SessionBackend:      SessionBackendFile,
			DataDir:             "data",
			ConversationBackend: ConversationBackendMemory,
		}
	}
	require.NoError(t, base().Validate())

	cfg := base()
	cfg.SessionBackend = SessionBackendDynamoDB
	require.ErrorContains(t, cfg.Validate(), "STATE_TABLE")

	cfg = base()
	cfg.SessionBackend = "redis"
	require.ErrorContains(t, cfg.Validate(), "SESSION_BACKEND")

	cfg = base()
	cfg.ConversationBackend = "postgres"
	require.ErrorContains(t, cfg.Validate(), "CONVERSATION_BACKEND")

	cfg = base()
	cfg.ConversationBackend = ConversationBackendSQLite
	require.ErrorContains(t, cfg.Validate(), "CONVERSATION_DB_PATH")

	cfg = base()
	cfg.DataDir = ""
	require.ErrorContains(t, cfg.Validate(), "DATA_DIR")

	cfg = base()
	cfg.LLM.Timeout = 0
	require.ErrorContains(t, cfg.Validate(), "LLM_TIMEOUT")
}

func TestCredentialParameter(t *testing.T) {
	require.Equal(t, "/antisocial/prod/groq-api-token", LLMConfig{ParamPrefix: "/antisocial/prod/"}.CredentialParameter())
	require.Equal(t, "", LLMConfig{ParamPrefix: " "}.CredentialParameter())

	cfg := &Config{LLM: LLMConfig{ParamPrefix: "/antisocial"}, SessionBackend: SessionBackendFile}
	require.True(t, cfg.NeedsAWS())
	cfg.LLM.APIKey = "key"
	require.False(t, cfg.NeedsAWS())
}
