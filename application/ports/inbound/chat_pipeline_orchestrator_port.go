package inbound

import (
	"context"
	"voice-agent-api/domain"
)

type ProcessTurnParams struct {
	SessionID string
	Audio     []byte
	VoiceID   string
	Model     string
}

// ChatPipelineOrchestratorPort runs one voice conversation turn end-to-end
// (transcribe, generate, synthesize) with per-stage degradation, and exposes
// the session transcript it maintains as a side effect.
type ChatPipelineOrchestratorPort interface {
	// ProcessTurn never returns an error for provider failures; those are
	// degraded into fallback content and reported through the outcome's
	// FailedStage. Only structurally invalid input (empty session id,
	// missing audio) produces an error.
	ProcessTurn(ctx context.Context, params ProcessTurnParams) (domain.PipelineOutcome, error)

	// GetHistory returns up to limit of the most recent messages (all of
	// them when limit <= 0) and whether the session exists.
	GetHistory(sessionID string, limit int) ([]domain.ChatMessage, bool)

	ListSessions() []domain.SessionSummary

	DeleteSession(sessionID string) bool
}
