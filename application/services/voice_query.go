package services

import (
	"context"
	"fmt"
	"strings"
	"time"
	"voice-agent-api/application/ports/inbound"
	"voice-agent-api/application/ports/outbound"
)

type voiceQuery struct {
	logger      outbound.LoggerPort
	transcriber outbound.TranscriberPort
	generator   outbound.ResponseGeneratorPort
	synthesizer outbound.SpeechSynthesizerPort
}

func NewVoiceQuery(logger outbound.LoggerPort, transcriber outbound.TranscriberPort,
	generator outbound.ResponseGeneratorPort, synthesizer outbound.SpeechSynthesizerPort) inbound.VoiceQueryPort {
	return &voiceQuery{
		logger:      logger,
		transcriber: transcriber,
		generator:   generator,
		synthesizer: synthesizer,
	}
}

// Query runs a single stateless turn. The raw transcript is the whole prompt;
// no conversation history is involved.
func (v *voiceQuery) Query(ctx context.Context, params inbound.VoiceQueryParams) (inbound.VoiceQueryResult, error) {
	start := time.Now()

	transcription, err := v.transcriber.Transcribe(ctx, outbound.TranscribeParams{Audio: params.Audio})
	if err != nil {
		v.logger.Error(err, "Voice query transcription failed")
		return inbound.VoiceQueryResult{}, fmt.Errorf("transcription failed: %w", err)
	}

	transcript := strings.TrimSpace(transcription.Text)
	if transcript == "" {
		return inbound.VoiceQueryResult{}, fmt.Errorf("transcription returned empty text")
	}

	response, err := v.generator.Generate(ctx, outbound.GenerateParams{
		Prompt: transcript,
		Model:  params.Model,
	})
	if err != nil {
		v.logger.Error(err, "Voice query generation failed")
		return inbound.VoiceQueryResult{}, fmt.Errorf("generation failed: %w", err)
	}

	audioRef, err := v.synthesizer.Synthesize(ctx, outbound.SynthesizeParams{
		Text:    response,
		VoiceID: params.VoiceID,
	})
	if err != nil {
		v.logger.Error(err, "Voice query synthesis failed")
		return inbound.VoiceQueryResult{}, fmt.Errorf("synthesis failed: %w", err)
	}

	return inbound.VoiceQueryResult{
		Transcript:     transcript,
		Response:       response,
		AudioRef:       audioRef,
		ProcessingTime: time.Since(start),
	}, nil
}
