package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"antisocial-agent/internal/domain"
)

const maxMessageLen = 2000

type GenerateInput struct {
	Platform string
	Topic    string
	Audience string
	Tone     string
}

type ChatInput struct {
	SessionID string
	Message   string
}

// Service is the request boundary shared by the HTTP handler, the Lambda
// handler and the CLI.
type Service struct {
	llm           ModelClient
	sessions      SessionStore
	conversations ConversationStore
	now           func() time.Time
}

func NewService(llm ModelClient, sessions SessionStore, conversations ConversationStore) (*Service, error) {
	if llm == nil {
		return nil, errors.New("usecase: model client must not be nil")
	}
	if sessions == nil {
		return nil, errors.New("usecase: session store must not be nil")
	}
	if conversations == nil {
		return nil, errors.New("usecase: conversation store must not be nil")
	}
	return &Service{
		llm:           llm,
		sessions:      sessions,
		conversations: conversations,
		now:           time.Now,
	}, nil
}

// Agent builds the agent for a supported platform.
func (s *Service) Agent(platform string) (*Agent, error) {
	key := strings.ToLower(strings.TrimSpace(platform))
	if !domain.IsSupportedPlatform(key) {
		return nil, newError(ErrorInvalidInput, "unsupported_platform", nil)
	}
	return &Agent{
		profile:       ProfileFor(key),
		llm:           s.llm,
		sessions:      s.sessions,
		conversations: s.conversations,
		now:           s.now,
	}, nil
}

func (s *Service) Generate(ctx context.Context, in GenerateInput) (GenerateOutput, error) {
	agent, err := s.Agent(in.Platform)
	if err != nil {
		return GenerateOutput{}, err
	}
	if strings.TrimSpace(in.Topic) == "" {
		return GenerateOutput{}, newError(ErrorInvalidInput, "empty_topic", nil)
	}
	return agent.Generate(ctx, in.Topic, in.Audience, in.Tone)
}

func (s *Service) Chat(ctx context.Context, in ChatInput) (ChatOutput, error) {
	if strings.TrimSpace(in.Message) == "" {
		return ChatOutput{}, newError(ErrorInvalidInput, "empty_message", nil)
	}
	if len(in.Message) > maxMessageLen {
		return ChatOutput{}, newError(ErrorInvalidInput, "message_too_long", nil)
	}
	sess, err := loadSession(ctx, s.sessions, in.SessionID)
	if err != nil {
		return ChatOutput{}, err
	}
	agent, err := s.Agent(sess.Platform)
	if err != nil {
		return ChatOutput{}, newError(ErrorInternal, "session_platform_unknown", err)
	}
	return agent.revise(ctx, sess, in.Message)
}

func (s *Service) GetSession(ctx context.Context, id string) (domain.Session, error) {
	return loadSession(ctx, s.sessions, id)
}

// ListSessions returns summaries, newest first.
func (s *Service) ListSessions(ctx context.Context) ([]domain.SessionSummary, error) {
	out, err := s.sessions.ListSessions(ctx)
	if err != nil {
		return nil, newError(ErrorInternal, "session_list_error", err)
	}
	if out == nil {
		out = []domain.SessionSummary{}
	}
	return out, nil
}

// Conversation returns the session's chat log. A session whose log was lost
// with a restart has an empty one.
func (s *Service) Conversation(ctx context.Context, sessionID string) ([]domain.ChatMessage, error) {
	sess, err := loadSession(ctx, s.sessions, sessionID)
	if err != nil {
		return nil, err
	}
	msgs, err := s.conversations.LoadConversation(ctx, sess.SessionID)
	if err != nil {
		return nil, newError(ErrorInternal, "conversation_read_error", err)
	}
	if msgs == nil {
		msgs = []domain.ChatMessage{}
	}
	return msgs, nil
}

func (s *Service) Platforms() []domain.PlatformInfo {
	return domain.Platforms()
}
