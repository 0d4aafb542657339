package repository

import (
	"context"
	"sync"

	"antisocial-agent/internal/domain"
)

// MemoryConversationStore keeps conversation logs in process memory only.
// Logs do not survive a restart even though their sessions do.
type MemoryConversationStore struct {
	mu   sync.Mutex
	logs map[string][]domain.ChatMessage
}

func NewMemoryConversationStore() *MemoryConversationStore {
	return &MemoryConversationStore{logs: make(map[string][]domain.ChatMessage)}
}

// LoadConversation returns a copy of the log for sessionID. A missing log is
// returned as empty, not as an error.
func (m *MemoryConversationStore) LoadConversation(_ context.Context, sessionID string) ([]domain.ChatMessage, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return cloneMessages(m.logs[sessionID]), nil
}

// SaveConversation replaces the log for sessionID.
func (m *MemoryConversationStore) SaveConversation(_ context.Context, sessionID string, msgs []domain.ChatMessage) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := cloneMessages(msgs)
	if cp == nil {
		cp = []domain.ChatMessage{}
	}
	m.logs[sessionID] = cp
	return nil
}

func cloneMessages(in []domain.ChatMessage) []domain.ChatMessage {
	if in == nil {
		return nil
	}
	out := make([]domain.ChatMessage, len(in))
	copy(out, in)
	return out
}
