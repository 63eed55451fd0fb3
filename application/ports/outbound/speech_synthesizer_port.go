package outbound

import "context"

type SynthesizeParams struct {
	Text    string
	VoiceID string
}

// SpeechSynthesizerPort turns text into a playable audio reference (a URL or
// other opaque handle the caller can hand to a client).
type SpeechSynthesizerPort interface {
	Synthesize(ctx context.Context, params SynthesizeParams) (string, error)
}
