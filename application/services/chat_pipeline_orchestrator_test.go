package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"unicode/utf8"
	"voice-agent-api/application/ports/inbound"
	"voice-agent-api/application/ports/outbound"
	"voice-agent-api/domain"
	"voice-agent-api/infrastructure/adapters"
)

type fakeTranscriber struct {
	text       string
	confidence float64
	err        error
	calls      int
}

func (f *fakeTranscriber) Transcribe(_ context.Context, _ outbound.TranscribeParams) (outbound.Transcription, error) {
	f.calls++
	if f.err != nil {
		return outbound.Transcription{}, f.err
	}
	return outbound.Transcription{Text: f.text, Confidence: f.confidence}, nil
}

type fakeGenerator struct {
	response   string
	err        error
	lastPrompt string
}

func (f *fakeGenerator) Generate(_ context.Context, params outbound.GenerateParams) (string, error) {
	f.lastPrompt = params.Prompt
	if f.err != nil {
		return "", f.err
	}
	return f.response, nil
}

type fakeSynthesizer struct {
	audioRef string
	err      error
	lastText string
	calls    int
}

func (f *fakeSynthesizer) Synthesize(_ context.Context, params outbound.SynthesizeParams) (string, error) {
	f.calls++
	f.lastText = params.Text
	if f.err != nil {
		return "", f.err
	}
	return f.audioRef, nil
}

type orchestratorFixture struct {
	transcriber *fakeTranscriber
	generator   *fakeGenerator
	synthesizer *fakeSynthesizer
	store       outbound.SessionStorePort
	orch        inbound.ChatPipelineOrchestratorPort
}

func newFixture(transcriber *fakeTranscriber, generator *fakeGenerator, synthesizer *fakeSynthesizer) *orchestratorFixture {
	store := adapters.NewMemorySessionStore()
	logger := adapters.NewZerologWrapper()
	return &orchestratorFixture{
		transcriber: transcriber,
		generator:   generator,
		synthesizer: synthesizer,
		store:       store,
		orch:        NewChatPipelineOrchestrator(logger, store, transcriber, generator, synthesizer),
	}
}

func processTurn(t *testing.T, f *orchestratorFixture, sessionID string) domain.PipelineOutcome {
	t.Helper()
	outcome, err := f.orch.ProcessTurn(context.Background(), inbound.ProcessTurnParams{
		SessionID: sessionID,
		Audio:     []byte("fake audio"),
	})
	if err != nil {
		t.Fatal("ProcessTurn returned an error:", err)
	}
	return outcome
}

func sessionMessages(t *testing.T, f *orchestratorFixture, sessionID string) []domain.ChatMessage {
	t.Helper()
	session, ok := f.store.Get(sessionID)
	if !ok {
		t.Fatal("session was not created")
	}
	return session.Messages
}

func TestProcessTurn_AllStagesSucceed(t *testing.T) {
	f := newFixture(
		&fakeTranscriber{text: "What's the weather?", confidence: 0.97},
		&fakeGenerator{response: "It looks sunny today."},
		&fakeSynthesizer{audioRef: "/uploads/tts_1.mp3"},
	)

	outcome := processTurn(t, f, "session-1")

	if !outcome.Succeeded {
		t.Error("expected the turn to succeed")
	}
	if outcome.FailedStage != domain.NoStage {
		t.Error("expected no failed stage, got", outcome.FailedStage)
	}
	if outcome.TranscribedText != "What's the weather?" {
		t.Error("unexpected transcribed text:", outcome.TranscribedText)
	}
	if outcome.ResponseText != "It looks sunny today." {
		t.Error("unexpected response text:", outcome.ResponseText)
	}
	if outcome.AudioRef != "/uploads/tts_1.mp3" {
		t.Error("unexpected audio ref:", outcome.AudioRef)
	}

	messages := sessionMessages(t, f, "session-1")
	if len(messages) != 2 {
		t.Fatal("expected 2 messages in the session, got", len(messages))
	}
	if messages[0].Role != domain.UserRole || messages[0].Content != "What's the weather?" {
		t.Error("unexpected user message:", messages[0])
	}
	if messages[1].Role != domain.AssistantRole || messages[1].Content != "It looks sunny today." {
		t.Error("unexpected assistant message:", messages[1])
	}
}

func TestProcessTurn_TranscriptionError(t *testing.T) {
	f := newFixture(
		&fakeTranscriber{err: errors.New("quota exceeded")},
		&fakeGenerator{response: "Sorry about that, could you repeat it?"},
		&fakeSynthesizer{audioRef: "/uploads/tts_2.mp3"},
	)

	outcome := processTurn(t, f, "session-1")

	if outcome.Succeeded {
		t.Error("expected the turn to be degraded")
	}
	if outcome.FailedStage != domain.TranscriptionStage {
		t.Error("expected the transcription stage to be reported, got", outcome.FailedStage)
	}
	if outcome.TranscribedText != "" {
		t.Error("expected no transcribed text on failure, got", outcome.TranscribedText)
	}
	if f.generator.lastPrompt != mishearingPrompt {
		t.Error("expected the mishearing prompt override, got:", f.generator.lastPrompt)
	}

	messages := sessionMessages(t, f, "session-1")
	if len(messages) != 2 {
		t.Fatal("expected 2 messages in the session, got", len(messages))
	}
	if messages[0].Content != transcriptionFallback {
		t.Error("expected the user message to be the transcription fallback, got:", messages[0].Content)
	}
	if messages[1].Role != domain.AssistantRole {
		t.Error("expected an assistant message even on degraded turns")
	}
}

func TestProcessTurn_EmptyTranscriptIsDegraded(t *testing.T) {
	f := newFixture(
		&fakeTranscriber{text: "   "},
		&fakeGenerator{response: "Could you say that again?"},
		&fakeSynthesizer{audioRef: "/uploads/tts_3.mp3"},
	)

	outcome := processTurn(t, f, "session-1")

	if outcome.FailedStage != domain.TranscriptionStage {
		t.Error("expected the transcription stage to be reported for empty text, got", outcome.FailedStage)
	}
	if f.generator.lastPrompt != mishearingPrompt {
		t.Error("expected the mishearing prompt override for empty transcripts")
	}
}

func TestProcessTurn_GenerationFails(t *testing.T) {
	f := newFixture(
		&fakeTranscriber{text: "Tell me a joke"},
		&fakeGenerator{err: errors.New("model overloaded")},
		&fakeSynthesizer{audioRef: "/uploads/tts_4.mp3"},
	)

	outcome := processTurn(t, f, "session-1")

	if outcome.FailedStage != domain.GenerationStage {
		t.Error("expected the generation stage to be reported, got", outcome.FailedStage)
	}
	if outcome.ResponseText != generationFallback {
		t.Error("expected the generation fallback, got:", outcome.ResponseText)
	}

	messages := sessionMessages(t, f, "session-1")
	if messages[1].Content != generationFallback {
		t.Error("expected the assistant message to be the fallback, got:", messages[1].Content)
	}
	if f.synthesizer.calls != 1 {
		t.Error("expected synthesis to still run after a generation failure")
	}
}

func TestProcessTurn_FirstFailureWins(t *testing.T) {
	f := newFixture(
		&fakeTranscriber{err: errors.New("stt down")},
		&fakeGenerator{err: errors.New("llm down")},
		&fakeSynthesizer{audioRef: "/uploads/tts_5.mp3"},
	)

	outcome := processTurn(t, f, "session-1")

	if outcome.FailedStage != domain.TranscriptionStage {
		t.Error("expected transcription to win failure reporting, got", outcome.FailedStage)
	}
	if outcome.ResponseText != recognitionFallback {
		t.Error("expected the speech recognition fallback, got:", outcome.ResponseText)
	}
}

func TestProcessTurn_SynthesisFails(t *testing.T) {
	f := newFixture(
		&fakeTranscriber{text: "Hello there"},
		&fakeGenerator{response: "Hi! How can I help?"},
		&fakeSynthesizer{err: errors.New("tts down")},
	)

	outcome := processTurn(t, f, "session-1")

	if outcome.Succeeded {
		t.Error("expected the turn to be degraded")
	}
	if outcome.FailedStage != domain.SynthesisStage {
		t.Error("expected the synthesis stage to be reported, got", outcome.FailedStage)
	}
	if outcome.AudioRef != "" {
		t.Error("expected no audio ref, got:", outcome.AudioRef)
	}
	if outcome.ResponseText != "Hi! How can I help?" {
		t.Error("expected the real generated text despite synthesis failure, got:", outcome.ResponseText)
	}
}

func TestProcessTurn_LongResponseIsClamped(t *testing.T) {
	longResponse := strings.Repeat("a", synthesisMaxChars+500)
	f := newFixture(
		&fakeTranscriber{text: "Write me an essay"},
		&fakeGenerator{response: longResponse},
		&fakeSynthesizer{audioRef: "/uploads/tts_6.mp3"},
	)

	outcome := processTurn(t, f, "session-1")

	if len(f.synthesizer.lastText) > synthesisMaxChars {
		t.Error("synthesized text exceeds the provider limit:", len(f.synthesizer.lastText))
	}
	if !strings.HasSuffix(f.synthesizer.lastText, truncationMarker) {
		t.Error("expected the synthesized text to end with the truncation marker")
	}
	if !strings.HasSuffix(outcome.ResponseText, truncationMarker) {
		t.Error("expected the outcome response text to carry the truncation marker")
	}

	// The session transcript keeps the full response.
	messages := sessionMessages(t, f, "session-1")
	if messages[1].Content != longResponse {
		t.Error("expected the session to keep the untruncated response")
	}
}

func TestProcessTurn_ClampCutsAtRuneBoundary(t *testing.T) {
	// Three bytes per rune, so the safe-length offset lands mid-rune.
	longResponse := strings.Repeat("世", synthesisMaxChars/3+500)
	f := newFixture(
		&fakeTranscriber{text: "Write me an essay"},
		&fakeGenerator{response: longResponse},
		&fakeSynthesizer{audioRef: "/uploads/tts_7.mp3"},
	)

	processTurn(t, f, "session-1")

	if len(f.synthesizer.lastText) > synthesisMaxChars {
		t.Error("synthesized text exceeds the provider limit:", len(f.synthesizer.lastText))
	}
	if !utf8.ValidString(f.synthesizer.lastText) {
		t.Error("truncation produced invalid UTF-8")
	}
	if !strings.HasSuffix(f.synthesizer.lastText, truncationMarker) {
		t.Error("expected the synthesized text to end with the truncation marker")
	}
}

func TestProcessTurn_StructuralErrors(t *testing.T) {
	f := newFixture(&fakeTranscriber{text: "hi"}, &fakeGenerator{response: "hello"}, &fakeSynthesizer{})

	_, err := f.orch.ProcessTurn(context.Background(), inbound.ProcessTurnParams{
		SessionID: "  ",
		Audio:     []byte("fake audio"),
	})
	if !errors.Is(err, ErrEmptySessionID) {
		t.Error("expected ErrEmptySessionID, got", err)
	}

	_, err = f.orch.ProcessTurn(context.Background(), inbound.ProcessTurnParams{
		SessionID: "session-1",
	})
	if !errors.Is(err, ErrEmptyAudio) {
		t.Error("expected ErrEmptyAudio, got", err)
	}

	if f.transcriber.calls != 0 {
		t.Error("expected no gateway calls on structural errors")
	}
	if _, ok := f.store.Get("session-1"); ok {
		t.Error("expected no session to be created on structural errors")
	}
}

func TestProcessTurn_AlwaysAppendsTwoMessages(t *testing.T) {
	cases := []struct {
		name        string
		transcriber *fakeTranscriber
		generator   *fakeGenerator
		synthesizer *fakeSynthesizer
	}{
		{"all succeed", &fakeTranscriber{text: "hi"}, &fakeGenerator{response: "hello"}, &fakeSynthesizer{audioRef: "ref"}},
		{"all fail", &fakeTranscriber{err: errors.New("x")}, &fakeGenerator{err: errors.New("y")}, &fakeSynthesizer{err: errors.New("z")}},
		{"only synthesis fails", &fakeTranscriber{text: "hi"}, &fakeGenerator{response: "hello"}, &fakeSynthesizer{err: errors.New("z")}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := newFixture(tc.transcriber, tc.generator, tc.synthesizer)

			processTurn(t, f, "session-1")
			processTurn(t, f, "session-1")

			messages := sessionMessages(t, f, "session-1")
			if len(messages) != 4 {
				t.Fatal("expected 2 messages per turn, got", len(messages), "after 2 turns")
			}
			for i, msg := range messages {
				wantRole := domain.UserRole
				if i%2 == 1 {
					wantRole = domain.AssistantRole
				}
				if msg.Role != wantRole {
					t.Errorf("message %d: expected role %s, got %s", i, wantRole, msg.Role)
				}
			}
		})
	}
}

func TestProcessTurn_PromptUsesHistoryWindow(t *testing.T) {
	f := newFixture(
		&fakeTranscriber{text: "latest question"},
		&fakeGenerator{response: "latest answer"},
		&fakeSynthesizer{audioRef: "ref"},
	)

	for i := 0; i < historyWindow; i++ {
		f.store.AppendMessage("session-1", domain.UserRole, fmt.Sprintf("old message %d", i))
	}

	processTurn(t, f, "session-1")

	prompt := f.generator.lastPrompt
	if !strings.Contains(prompt, "User: latest question") {
		t.Error("expected the prompt to include the latest user message")
	}
	if strings.Contains(prompt, "old message 0") {
		t.Error("expected messages beyond the history window to be dropped from the prompt")
	}
	if !strings.Contains(prompt, fmt.Sprintf("old message %d", historyWindow-1)) {
		t.Error("expected recent history to be part of the prompt")
	}
	if !strings.HasSuffix(prompt, "Assistant:") {
		t.Error("expected the prompt to end with the assistant cue")
	}
}

func TestGetHistory(t *testing.T) {
	f := newFixture(&fakeTranscriber{}, &fakeGenerator{}, &fakeSynthesizer{})

	if _, ok := f.orch.GetHistory("missing", 0); ok {
		t.Error("expected GetHistory to report a missing session")
	}

	f.store.AppendMessage("session-1", domain.UserRole, "first")
	f.store.AppendMessage("session-1", domain.AssistantRole, "second")

	messages, ok := f.orch.GetHistory("session-1", 1)
	if !ok {
		t.Fatal("expected the session to exist")
	}
	if len(messages) != 1 || messages[0].Content != "second" {
		t.Error("expected only the last message, got:", messages)
	}
}

func TestDeleteSession(t *testing.T) {
	f := newFixture(&fakeTranscriber{}, &fakeGenerator{}, &fakeSynthesizer{})

	if f.orch.DeleteSession("missing") {
		t.Error("expected deleting a missing session to return false")
	}

	f.store.AppendMessage("session-1", domain.UserRole, "hi")
	if !f.orch.DeleteSession("session-1") {
		t.Error("expected deleting an existing session to return true")
	}
	if len(f.orch.ListSessions()) != 0 {
		t.Error("expected no sessions after deletion")
	}
}
