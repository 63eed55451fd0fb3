package inbound

import "context"

type EchoParams struct {
	Audio   []byte
	VoiceID string
}

type EchoResult struct {
	Transcript string
	Confidence float64
	AudioRef   string
}

// EchoBotPort transcribes an utterance and speaks it straight back. Unlike
// the chat pipeline it does not degrade: any stage failure is returned.
type EchoBotPort interface {
	Echo(ctx context.Context, params EchoParams) (EchoResult, error)
}
