package inbound

import (
	"context"
	"time"
)

type VoiceQueryParams struct {
	Audio   []byte
	VoiceID string
	Model   string
}

type VoiceQueryResult struct {
	Transcript     string
	Response       string
	AudioRef       string
	ProcessingTime time.Duration
}

// VoiceQueryPort answers one spoken question without a session: transcribe,
// generate, speak the answer. Like the echo bot it does not degrade.
type VoiceQueryPort interface {
	Query(ctx context.Context, params VoiceQueryParams) (VoiceQueryResult, error)
}
