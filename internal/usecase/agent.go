package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"antisocial-agent/internal/domain"
)

type ModelClient interface {
	Complete(ctx context.Context, messages []domain.ChatMessage, maxTokens int) (string, error)
}

type SessionStore interface {
	GetSession(ctx context.Context, id string) (domain.Session, error)
	SaveSession(ctx context.Context, sess *domain.Session) error
	ListSessions(ctx context.Context) ([]domain.SessionSummary, error)
}

type ConversationStore interface {
	LoadConversation(ctx context.Context, sessionID string) ([]domain.ChatMessage, error)
	SaveConversation(ctx context.Context, sessionID string, messages []domain.ChatMessage) error
}

type GenerateOutput struct {
	Content   domain.ContentPlan
	SessionID string
	// Fallback is set when the model reply could not be parsed and the
	// platform's fixed plan was used instead.
	Fallback bool
}

type ChatOutput struct {
	Message string
	// UpdatedContent is nil when the reply was passed through as text.
	UpdatedContent *domain.ContentPlan
}

// Agent generates and revises content plans for one platform.
type Agent struct {
	profile       Profile
	llm           ModelClient
	sessions      SessionStore
	conversations ConversationStore
	now           func() time.Time
}

func (a *Agent) Profile() Profile { return a.profile }

// Generate asks the model for a plan, falls back to the platform's fixed
// plan when the reply is unparseable, and persists a new session with an
// empty conversation. Model failures create nothing.
func (a *Agent) Generate(ctx context.Context, topic, audience, tone string) (GenerateOutput, error) {
	raw, err := a.llm.Complete(ctx, BuildGenerationMessages(a.profile, topic, audience, tone), generateMaxTokens)
	if err != nil {
		return GenerateOutput{}, modelError("generate", err)
	}

	fallback := false
	plan, err := ParseContentPlan(raw)
	if err != nil {
		slog.Warn("model reply unparseable, using fallback content",
			"platform", a.profile.Platform,
			"err", err,
		)
		plan = a.profile.Fallback(topic)
		fallback = true
	}

	now := a.now().UTC()
	sess := domain.Session{
		SessionID: newUUID(),
		Platform:  a.profile.Platform,
		Topic:     topic,
		Audience:  audience,
		Tone:      tone,
		Content:   plan,
		CreatedAt: now,
		UpdatedAt: now,
	}
	// Log before session: a stored session always has a log.
	if err := a.conversations.SaveConversation(ctx, sess.SessionID, []domain.ChatMessage{}); err != nil {
		return GenerateOutput{}, newError(ErrorInternal, "conversation_write_error", err)
	}
	if err := a.sessions.SaveSession(ctx, &sess); err != nil {
		return GenerateOutput{}, newError(ErrorInternal, "session_write_error", err)
	}

	return GenerateOutput{Content: plan.Clone(), SessionID: sess.SessionID, Fallback: fallback}, nil
}

// Chat revises the plan of the session named by sessionID.
func (a *Agent) Chat(ctx context.Context, sessionID, message string) (ChatOutput, error) {
	sess, err := loadSession(ctx, a.sessions, sessionID)
	if err != nil {
		return ChatOutput{}, err
	}
	return a.revise(ctx, sess, message)
}

// revise appends the user turn to the log as soon as the model answers, so
// the turn is kept even if the reply turns out to be prose.
func (a *Agent) revise(ctx context.Context, sess domain.Session, message string) (ChatOutput, error) {
	history, err := a.conversations.LoadConversation(ctx, sess.SessionID)
	if err != nil {
		return ChatOutput{}, newError(ErrorInternal, "conversation_read_error", err)
	}

	raw, err := a.llm.Complete(ctx, BuildRevisionMessages(a.profile, sess, message), reviseMaxTokens)
	if err != nil {
		return ChatOutput{}, modelError("chat", err)
	}

	history = append(history, domain.ChatMessage{Role: domain.RoleUser, Content: message})
	if err := a.conversations.SaveConversation(ctx, sess.SessionID, history); err != nil {
		return ChatOutput{}, newError(ErrorInternal, "conversation_write_error", err)
	}

	plan, err := ParseContentPlan(raw)
	if err != nil {
		slog.Info("revision reply is not a content plan, passing through",
			"session_id", sess.SessionID,
			"err", err,
		)
		history = append(history, domain.ChatMessage{Role: domain.RoleAssistant, Content: raw})
		if err := a.conversations.SaveConversation(ctx, sess.SessionID, history); err != nil {
			return ChatOutput{}, newError(ErrorInternal, "conversation_write_error", err)
		}
		return ChatOutput{Message: raw}, nil
	}

	sess.Content = plan
	if err := a.sessions.SaveSession(ctx, &sess); err != nil {
		return ChatOutput{}, newError(ErrorInternal, "session_write_error", err)
	}
	history = append(history, domain.ChatMessage{Role: domain.RoleAssistant, Content: updateAck(message)})
	if err := a.conversations.SaveConversation(ctx, sess.SessionID, history); err != nil {
		return ChatOutput{}, newError(ErrorInternal, "conversation_write_error", err)
	}

	updated := plan.Clone()
	return ChatOutput{Message: updateReply(message), UpdatedContent: &updated}, nil
}

func updateAck(message string) string {
	return "✅ Updated content based on: " + message
}

func updateReply(message string) string {
	return fmt.Sprintf("✅ I've updated your content based on: '%s'. Check the updated content below!", message)
}

func loadSession(ctx context.Context, store SessionStore, id string) (domain.Session, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return domain.Session{}, newError(ErrorNotFound, "session_not_found", nil)
	}
	sess, err := store.GetSession(ctx, id)
	if errors.Is(err, domain.ErrSessionNotFound) {
		return domain.Session{}, newError(ErrorNotFound, "session_not_found", err)
	}
	if err != nil {
		return domain.Session{}, newError(ErrorInternal, "session_read_error", err)
	}
	return sess, nil
}

var newUUID = func() string {
	return uuid.NewString()
}
