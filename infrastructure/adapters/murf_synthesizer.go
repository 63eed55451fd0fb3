package adapters

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"voice-agent-api/application/ports/outbound"
	"voice-agent-api/config"

	"github.com/google/uuid"
)

type murfGenerateRequest struct {
	Text           string `json:"text"`
	VoiceID        string `json:"voiceId"`
	Format         string `json:"format"`
	EncodeAsBase64 bool   `json:"encodeAsBase64"`
}

type murfGenerateResponse struct {
	EncodedAudio         string  `json:"encodedAudio"`
	AudioLengthInSeconds float64 `json:"audioLengthInSeconds"`
}

type murfSynthesizer struct {
	ContentFetcher
	logger     outbound.LoggerPort
	murfConfig *config.MurfConfig
	audioStore outbound.AudioStorePort
}

// NewMurfSynthesizer generates speech through the Murf API and hands the
// decoded clip to the audio store, returning the URL it is served under.
func NewMurfSynthesizer(contentFetcher ContentFetcher, murfConfig *config.MurfConfig,
	audioStore outbound.AudioStorePort, logger outbound.LoggerPort) outbound.SpeechSynthesizerPort {
	return &murfSynthesizer{
		ContentFetcher: contentFetcher,
		logger:         logger,
		murfConfig:     murfConfig,
		audioStore:     audioStore,
	}
}

func (m *murfSynthesizer) Synthesize(ctx context.Context, params outbound.SynthesizeParams) (string, error) {
	req, err := m.getRequest(ctx, params)
	if err != nil {
		return "", err
	}

	payload, err := m.FetchContent(req)
	if err != nil {
		return "", err
	}

	var generateRes murfGenerateResponse
	if err := json.Unmarshal(payload, &generateRes); err != nil {
		m.logger.Error(err, "Failed to unmarshal the Murf response")
		return "", err
	}
	if generateRes.EncodedAudio == "" {
		return "", fmt.Errorf("Murf response contained no audio")
	}

	audio, err := base64.StdEncoding.DecodeString(generateRes.EncodedAudio)
	if err != nil {
		m.logger.Error(err, "Failed to decode the Murf audio payload")
		return "", err
	}

	name := fmt.Sprintf("tts_%s.mp3", uuid.NewString())
	audioUrl, err := m.audioStore.Save(ctx, audio, name)
	if err != nil {
		return "", err
	}

	m.logger.DebugWithFields("Synthesized speech", map[string]interface{}{
		"audio_url":        audioUrl,
		"audio_length_sec": generateRes.AudioLengthInSeconds,
	})

	return audioUrl, nil
}

func (m *murfSynthesizer) getRequest(ctx context.Context, params outbound.SynthesizeParams) (*http.Request, error) {
	voiceID := params.VoiceID
	if voiceID == "" {
		voiceID = m.murfConfig.DefaultVoiceID
	}

	reqBody := murfGenerateRequest{
		Text:           params.Text,
		VoiceID:        voiceID,
		Format:         m.murfConfig.Format,
		EncodeAsBase64: true,
	}

	jsonPayload, err := json.Marshal(reqBody)
	if err != nil {
		m.logger.Error(err, "Failed to marshal the request body for the Murf API")
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, "POST", m.murfConfig.ApiUrl+"/v1/speech/generate", bytes.NewBuffer(jsonPayload))
	if err != nil {
		m.logger.Error(err, "Failed to create the HTTP POST request")
		return nil, err
	}

	req.Header.Set("api-key", m.murfConfig.ApiKey)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	return req, nil
}
