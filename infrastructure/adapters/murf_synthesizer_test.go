package adapters

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"voice-agent-api/application/ports/outbound"
	"voice-agent-api/config"
)

type fakeAudioStore struct {
	lastAudio []byte
	lastName  string
	err       error
}

func (f *fakeAudioStore) Save(_ context.Context, audio []byte, name string) (string, error) {
	f.lastAudio = audio
	f.lastName = name
	if f.err != nil {
		return "", f.err
	}
	return "/uploads/" + name, nil
}

func TestMurfSynthesizer_Synthesize(t *testing.T) {
	audio := []byte("mp3 bytes")

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/speech/generate" {
			t.Error("unexpected path:", r.URL.Path)
		}
		if r.Header.Get("api-key") != "test-key" {
			t.Error("expected the api key header")
		}

		var body map[string]interface{}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Error("failed to decode request body:", err)
		}
		if body["text"] != "hello" {
			t.Error("unexpected text:", body["text"])
		}
		if body["voiceId"] != "en-US-natalie" {
			t.Error("expected the default voice, got:", body["voiceId"])
		}

		json.NewEncoder(w).Encode(map[string]interface{}{
			"encodedAudio":         base64.StdEncoding.EncodeToString(audio),
			"audioLengthInSeconds": 1.2,
		})
	}))
	defer server.Close()

	logger := NewZerologWrapper()
	store := &fakeAudioStore{}
	synthesizer := NewMurfSynthesizer(NewContentFetcher(logger), &config.MurfConfig{
		ApiUrl:         server.URL,
		ApiKey:         "test-key",
		DefaultVoiceID: "en-US-natalie",
		Format:         "MP3",
	}, store, logger)

	audioUrl, err := synthesizer.Synthesize(context.Background(), outbound.SynthesizeParams{Text: "hello"})
	if err != nil {
		t.Fatal("Synthesize returned an error:", err)
	}

	if !strings.HasPrefix(audioUrl, "/uploads/tts_") || !strings.HasSuffix(audioUrl, ".mp3") {
		t.Error("unexpected audio url:", audioUrl)
	}
	if string(store.lastAudio) != string(audio) {
		t.Error("expected the decoded audio to be stored")
	}
}

func TestMurfSynthesizer_ProviderError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "invalid api key", http.StatusUnauthorized)
	}))
	defer server.Close()

	logger := NewZerologWrapper()
	synthesizer := NewMurfSynthesizer(NewContentFetcher(logger), &config.MurfConfig{
		ApiUrl:         server.URL,
		ApiKey:         "bad-key",
		DefaultVoiceID: "en-US-natalie",
		Format:         "MP3",
	}, &fakeAudioStore{}, logger)

	if _, err := synthesizer.Synthesize(context.Background(), outbound.SynthesizeParams{Text: "hello"}); err == nil {
		t.Error("expected an error for a non-2xx response")
	}
}
