package services

import (
	"context"
	"fmt"
	"strings"
	"voice-agent-api/application/ports/inbound"
	"voice-agent-api/application/ports/outbound"
)

type echoBot struct {
	logger      outbound.LoggerPort
	transcriber outbound.TranscriberPort
	synthesizer outbound.SpeechSynthesizerPort
}

func NewEchoBot(logger outbound.LoggerPort, transcriber outbound.TranscriberPort,
	synthesizer outbound.SpeechSynthesizerPort) inbound.EchoBotPort {
	return &echoBot{
		logger:      logger,
		transcriber: transcriber,
		synthesizer: synthesizer,
	}
}

func (e *echoBot) Echo(ctx context.Context, params inbound.EchoParams) (inbound.EchoResult, error) {
	transcription, err := e.transcriber.Transcribe(ctx, outbound.TranscribeParams{Audio: params.Audio})
	if err != nil {
		e.logger.Error(err, "Echo transcription failed")
		return inbound.EchoResult{}, fmt.Errorf("transcription failed: %w", err)
	}

	transcript := strings.TrimSpace(transcription.Text)
	if transcript == "" {
		return inbound.EchoResult{}, fmt.Errorf("transcription returned empty text")
	}

	audioRef, err := e.synthesizer.Synthesize(ctx, outbound.SynthesizeParams{
		Text:    transcript,
		VoiceID: params.VoiceID,
	})
	if err != nil {
		e.logger.Error(err, "Echo synthesis failed")
		return inbound.EchoResult{}, fmt.Errorf("synthesis failed: %w", err)
	}

	return inbound.EchoResult{
		Transcript: transcript,
		Confidence: transcription.Confidence,
		AudioRef:   audioRef,
	}, nil
}
