package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"
	"voice-agent-api/application/ports/inbound"
	"voice-agent-api/application/ports/outbound"
	"voice-agent-api/domain"
)

// Structural errors. Everything provider-related is degraded, never returned.
var (
	ErrEmptySessionID = errors.New("session id must not be empty")
	ErrEmptyAudio     = errors.New("audio payload must not be empty")
)

const (
	// historyWindow bounds how many messages feed the generation prompt.
	historyWindow = 20

	// synthesisMaxChars is the synthesis provider's input ceiling;
	// responses are clamped to synthesisSafeChars plus a truncation marker
	// before being spoken.
	synthesisMaxChars  = 3000
	synthesisSafeChars = 2900
	truncationMarker   = "..."

	transcriptionFallback = "Sorry, I couldn't understand what you said due to a technical issue."
	generationFallback    = "I'm having trouble processing your request right now due to a technical issue."
	recognitionFallback   = "I'm having trouble with my speech recognition right now. Could you please try again?"

	// mishearingPrompt replaces the conversation transcript entirely when
	// transcription failed, so fallback text is never fed to the model as
	// if the user had said it.
	mishearingPrompt = "You are a friendly voice assistant. You could not make out the user's " +
		"last message because your speech recognition glitched. Briefly apologize for " +
		"mishearing them and ask them to repeat themselves, in one or two short sentences."

	conversationPrompt = "You are a friendly voice assistant. Continue the conversation below " +
		"naturally. Keep your reply conversational and concise, since it will be spoken aloud.\n\n"
)

type chatPipelineOrchestrator struct {
	logger      outbound.LoggerPort
	sessions    outbound.SessionStorePort
	transcriber outbound.TranscriberPort
	generator   outbound.ResponseGeneratorPort
	synthesizer outbound.SpeechSynthesizerPort
}

func NewChatPipelineOrchestrator(logger outbound.LoggerPort, sessions outbound.SessionStorePort,
	transcriber outbound.TranscriberPort, generator outbound.ResponseGeneratorPort,
	synthesizer outbound.SpeechSynthesizerPort) inbound.ChatPipelineOrchestratorPort {
	return &chatPipelineOrchestrator{
		logger:      logger,
		sessions:    sessions,
		transcriber: transcriber,
		generator:   generator,
		synthesizer: synthesizer,
	}
}

// ProcessTurn executes the transcribe -> generate -> synthesize pipeline for
// one turn. Every stage runs regardless of earlier failures; the first
// failure wins for reporting. Exactly two messages (one user, one assistant)
// are appended to the session, whatever happens to the providers.
func (o *chatPipelineOrchestrator) ProcessTurn(ctx context.Context, params inbound.ProcessTurnParams) (domain.PipelineOutcome, error) {
	start := time.Now()

	if strings.TrimSpace(params.SessionID) == "" {
		return domain.PipelineOutcome{}, ErrEmptySessionID
	}
	if len(params.Audio) == 0 {
		return domain.PipelineOutcome{}, ErrEmptyAudio
	}

	var outcome domain.PipelineOutcome

	userText := o.transcribeStage(ctx, params, &outcome)
	session := o.sessions.AppendMessage(params.SessionID, domain.UserRole, userText)

	prompt := o.buildPrompt(session.Messages, outcome.FailedStage)

	responseText := o.generateStage(ctx, prompt, params.Model, &outcome)
	o.sessions.AppendMessage(params.SessionID, domain.AssistantRole, responseText)

	outcome.ResponseText = clampForSynthesis(responseText)

	o.synthesizeStage(ctx, outcome.ResponseText, params.VoiceID, &outcome)

	outcome.Succeeded = outcome.FailedStage == domain.NoStage
	outcome.ProcessingTime = time.Since(start)

	return outcome, nil
}

func (o *chatPipelineOrchestrator) transcribeStage(ctx context.Context, params inbound.ProcessTurnParams, outcome *domain.PipelineOutcome) string {
	transcription, err := o.transcriber.Transcribe(ctx, outbound.TranscribeParams{Audio: params.Audio})
	text := strings.TrimSpace(transcription.Text)

	if err != nil {
		o.logger.ErrorWithFields(err, "Transcription failed, continuing with fallback text", map[string]interface{}{
			"session_id": params.SessionID,
		})
	} else if text == "" {
		o.logger.WarnWithFields("Transcription returned empty text, continuing with fallback text", map[string]interface{}{
			"session_id": params.SessionID,
		})
	}

	if err != nil || text == "" {
		outcome.FailedStage = domain.TranscriptionStage
		return transcriptionFallback
	}

	outcome.TranscribedText = text
	return text
}

func (o *chatPipelineOrchestrator) buildPrompt(messages []domain.ChatMessage, failedStage domain.PipelineStage) string {
	if failedStage == domain.TranscriptionStage {
		return mishearingPrompt
	}

	if len(messages) > historyWindow {
		messages = messages[len(messages)-historyWindow:]
	}

	var sb strings.Builder
	sb.WriteString(conversationPrompt)
	for _, msg := range messages {
		if msg.Role == domain.AssistantRole {
			sb.WriteString("Assistant: ")
		} else {
			sb.WriteString("User: ")
		}
		sb.WriteString(msg.Content)
		sb.WriteString("\n")
	}
	sb.WriteString("Assistant:")

	return sb.String()
}

func (o *chatPipelineOrchestrator) generateStage(ctx context.Context, prompt string, model string, outcome *domain.PipelineOutcome) string {
	responseText, err := o.generator.Generate(ctx, outbound.GenerateParams{Prompt: prompt, Model: model})
	responseText = strings.TrimSpace(responseText)
	if err == nil && responseText != "" {
		return responseText
	}

	if err == nil {
		err = fmt.Errorf("generator returned empty output")
	}
	o.logger.Error(err, "Generation failed, continuing with fallback response")

	if outcome.FailedStage == domain.TranscriptionStage {
		return recognitionFallback
	}
	outcome.FailedStage = domain.GenerationStage
	return generationFallback
}

func (o *chatPipelineOrchestrator) synthesizeStage(ctx context.Context, text string, voiceID string, outcome *domain.PipelineOutcome) {
	audioRef, err := o.synthesizer.Synthesize(ctx, outbound.SynthesizeParams{Text: text, VoiceID: voiceID})
	if err != nil {
		o.logger.Error(err, "Synthesis failed, returning text-only response")
		if outcome.FailedStage == domain.NoStage {
			outcome.FailedStage = domain.SynthesisStage
		}
		return
	}
	outcome.AudioRef = audioRef
}

func clampForSynthesis(text string) string {
	if len(text) <= synthesisMaxChars {
		return text
	}
	// Back up to a rune boundary so the cut never splits a multi-byte rune.
	cut := synthesisSafeChars
	for cut > 0 && !utf8.RuneStart(text[cut]) {
		cut--
	}
	return text[:cut] + truncationMarker
}

func (o *chatPipelineOrchestrator) GetHistory(sessionID string, limit int) ([]domain.ChatMessage, bool) {
	session, ok := o.sessions.Get(sessionID)
	if !ok {
		return nil, false
	}
	messages := session.Messages
	if limit > 0 && len(messages) > limit {
		messages = messages[len(messages)-limit:]
	}
	return messages, true
}

func (o *chatPipelineOrchestrator) ListSessions() []domain.SessionSummary {
	return o.sessions.List()
}

func (o *chatPipelineOrchestrator) DeleteSession(sessionID string) bool {
	return o.sessions.Delete(sessionID)
}
