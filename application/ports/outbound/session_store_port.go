package outbound

import "voice-agent-api/domain"

// SessionStorePort owns the lifecycle of chat sessions. Implementations must
// be safe for concurrent use: a read of a session's messages never observes a
// partially applied append. Returned sessions are snapshots the caller may
// keep without further synchronization.
type SessionStorePort interface {
	// GetOrCreate returns the session, creating an empty one if the id is
	// unknown.
	GetOrCreate(sessionID string) domain.ChatSession

	// AppendMessage appends a message with the current timestamp, creating
	// the session if needed, and returns the updated session.
	AppendMessage(sessionID string, role domain.Role, content string) domain.ChatSession

	// Get looks a session up without creating it.
	Get(sessionID string) (domain.ChatSession, bool)

	// Delete removes the session and reports whether it existed.
	Delete(sessionID string) bool

	// List returns a snapshot summary of every session.
	List() []domain.SessionSummary
}
