package outbound

import (
	"context"
	"time"
)

type TranscribeParams struct {
	Audio []byte
}

type Transcription struct {
	Text       string
	Confidence float64
	Duration   time.Duration
}

type TranscriberPort interface {
	Transcribe(ctx context.Context, params TranscribeParams) (Transcription, error)
}
