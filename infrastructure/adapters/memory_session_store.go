package adapters

import (
	"sort"
	"sync"
	"time"
	"voice-agent-api/application/ports/outbound"
	"voice-agent-api/domain"
)

type memorySessionStore struct {
	mu       sync.Mutex
	sessions map[string]*domain.ChatSession
}

// NewMemorySessionStore keeps chat sessions in process memory. All methods
// copy session state in and out under the lock, so callers never share slices
// with the store.
func NewMemorySessionStore() outbound.SessionStorePort {
	return &memorySessionStore{
		sessions: make(map[string]*domain.ChatSession),
	}
}

func (m *memorySessionStore) GetOrCreate(sessionID string) domain.ChatSession {
	m.mu.Lock()
	defer m.mu.Unlock()

	return snapshot(m.getOrCreateLocked(sessionID))
}

func (m *memorySessionStore) AppendMessage(sessionID string, role domain.Role, content string) domain.ChatSession {
	m.mu.Lock()
	defer m.mu.Unlock()

	session := m.getOrCreateLocked(sessionID)
	session.Messages = append(session.Messages, domain.NewChatMessage(role, content))
	session.UpdatedAt = time.Now()

	return snapshot(session)
}

func (m *memorySessionStore) Get(sessionID string) (domain.ChatSession, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	session, ok := m.sessions[sessionID]
	if !ok {
		return domain.ChatSession{}, false
	}
	return snapshot(session), true
}

func (m *memorySessionStore) Delete(sessionID string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	_, ok := m.sessions[sessionID]
	delete(m.sessions, sessionID)
	return ok
}

func (m *memorySessionStore) List() []domain.SessionSummary {
	m.mu.Lock()
	defer m.mu.Unlock()

	summaries := make([]domain.SessionSummary, 0, len(m.sessions))
	for _, session := range m.sessions {
		summaries = append(summaries, domain.SessionSummary{
			SessionID:    session.SessionID,
			MessageCount: len(session.Messages),
			CreatedAt:    session.CreatedAt,
			UpdatedAt:    session.UpdatedAt,
		})
	}

	sort.Slice(summaries, func(i, j int) bool {
		if summaries[i].CreatedAt.Equal(summaries[j].CreatedAt) {
			return summaries[i].SessionID < summaries[j].SessionID
		}
		return summaries[i].CreatedAt.Before(summaries[j].CreatedAt)
	})

	return summaries
}

func (m *memorySessionStore) getOrCreateLocked(sessionID string) *domain.ChatSession {
	session, ok := m.sessions[sessionID]
	if !ok {
		now := time.Now()
		session = &domain.ChatSession{
			SessionID: sessionID,
			CreatedAt: now,
			UpdatedAt: now,
		}
		m.sessions[sessionID] = session
	}
	return session
}

func snapshot(session *domain.ChatSession) domain.ChatSession {
	messages := make([]domain.ChatMessage, len(session.Messages))
	copy(messages, session.Messages)

	return domain.ChatSession{
		SessionID: session.SessionID,
		Messages:  messages,
		CreatedAt: session.CreatedAt,
		UpdatedAt: session.UpdatedAt,
	}
}
