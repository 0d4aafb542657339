// Package app assembles the service from configuration.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	awsdynamodb "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	awsssm "github.com/aws/aws-sdk-go-v2/service/ssm"

	"antisocial-agent/internal/config"
	"antisocial-agent/internal/integrations/llm"
	"antisocial-agent/internal/integrations/paramstore"
	"antisocial-agent/internal/repository"
	"antisocial-agent/internal/usecase"
)

// App owns the service and the resources behind it.
type App struct {
	Service *usecase.Service

	closers []func() error
}

var loadAWSConfig = func(ctx context.Context) (aws.Config, error) {
	return awsconfig.LoadDefaultConfig(ctx)
}

// New builds the model client and stores selected by cfg.
func New(ctx context.Context, cfg *config.Config) (*App, error) {
	a := &App{}

	var awsCfg aws.Config
	if cfg.NeedsAWS() {
		var err error
		awsCfg, err = loadAWSConfig(ctx)
		if err != nil {
			return nil, fmt.Errorf("app: load AWS config: %w", err)
		}
	}

	model, err := newModelClient(cfg.LLM, awsCfg)
	if err != nil {
		return nil, err
	}

	sessions, err := newSessionStore(cfg, awsCfg)
	if err != nil {
		return nil, err
	}

	conversations, err := a.newConversationStore(cfg)
	if err != nil {
		return nil, err
	}

	svc, err := usecase.NewService(model, sessions, conversations)
	if err != nil {
		_ = a.Close()
		return nil, err
	}
	a.Service = svc

	slog.Info("service ready",
		"model", model.Model(),
		"session_backend", cfg.SessionBackend,
		"conversation_backend", cfg.ConversationBackend,
	)
	return a, nil
}

// Close releases store resources.
func (a *App) Close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		errs = append(errs, a.closers[i]())
	}
	a.closers = nil
	return errors.Join(errs...)
}

func newModelClient(cfg config.LLMConfig, awsCfg aws.Config) (*llm.Client, error) {
	opts := []llm.Option{
		llm.WithBaseURL(cfg.BaseURL),
		llm.WithModel(cfg.Model),
		llm.WithTimeout(cfg.Timeout),
	}
	switch {
	case cfg.APIKey != "":
		opts = append(opts, llm.WithAPIKey(cfg.APIKey))
	case cfg.CredentialParameter() != "":
		params, err := paramstore.New(awsssm.NewFromConfig(awsCfg))
		if err != nil {
			return nil, fmt.Errorf("app: create SSM client: %w", err)
		}
		opts = append(opts, llm.WithCredentialSource(params, cfg.CredentialParameter()))
	default:
		slog.Warn("no model credential configured; generate and chat will fail until GROQ_API_KEY or PARAM_PREFIX is set")
	}
	client, err := llm.NewClient(opts...)
	if err != nil {
		return nil, fmt.Errorf("app: create model client: %w", err)
	}
	return client, nil
}

func newSessionStore(cfg *config.Config, awsCfg aws.Config) (usecase.SessionStore, error) {
	switch cfg.SessionBackend {
	case config.SessionBackendDynamoDB:
		store, err := repository.NewDynamoSessionStore(awsdynamodb.NewFromConfig(awsCfg), cfg.StateTable)
		if err != nil {
			return nil, fmt.Errorf("app: create dynamodb session store: %w", err)
		}
		return store, nil
	case config.SessionBackendFile:
		store, err := repository.NewFileSessionStore(cfg.DataDir)
		if err != nil {
			return nil, fmt.Errorf("app: create file session store: %w", err)
		}
		return store, nil
	default:
		return nil, fmt.Errorf("app: unknown session backend %q", cfg.SessionBackend)
	}
}

func (a *App) newConversationStore(cfg *config.Config) (usecase.ConversationStore, error) {
	switch cfg.ConversationBackend {
	case config.ConversationBackendSQLite:
		store, err := repository.OpenSQLiteConversationStore(cfg.ConversationDBPath)
		if err != nil {
			return nil, fmt.Errorf("app: open conversation database: %w", err)
		}
		a.closers = append(a.closers, store.Close)
		return store, nil
	case config.ConversationBackendMemory:
		return repository.NewMemoryConversationStore(), nil
	default:
		return nil, fmt.Errorf("app: unknown conversation backend %q", cfg.ConversationBackend)
	}
}
