package adapters

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
	"voice-agent-api/application/ports/outbound"
	"voice-agent-api/config"
)

const (
	transcriptStatusCompleted = "completed"
	transcriptStatusError     = "error"
)

type assemblyUploadResponse struct {
	UploadUrl string `json:"upload_url"`
}

type assemblyTranscriptRequest struct {
	AudioUrl string `json:"audio_url"`
}

type assemblyTranscriptResponse struct {
	ID            string  `json:"id"`
	Status        string  `json:"status"`
	Text          string  `json:"text"`
	Confidence    float64 `json:"confidence"`
	AudioDuration float64 `json:"audio_duration"`
	Error         string  `json:"error"`
}

type assemblyTranscriber struct {
	ContentFetcher
	logger         outbound.LoggerPort
	assemblyConfig *config.AssemblyAIConfig
}

func NewAssemblyTranscriber(contentFetcher ContentFetcher, assemblyConfig *config.AssemblyAIConfig,
	logger outbound.LoggerPort) outbound.TranscriberPort {
	return &assemblyTranscriber{
		ContentFetcher: contentFetcher,
		logger:         logger,
		assemblyConfig: assemblyConfig,
	}
}

// Transcribe uploads the audio to AssemblyAI, submits a transcript job and
// polls it until it completes, errors out or the poll timeout expires.
func (a *assemblyTranscriber) Transcribe(ctx context.Context, params outbound.TranscribeParams) (outbound.Transcription, error) {
	uploadUrl, err := a.uploadAudio(ctx, params.Audio)
	if err != nil {
		return outbound.Transcription{}, err
	}

	transcriptID, err := a.createTranscript(ctx, uploadUrl)
	if err != nil {
		return outbound.Transcription{}, err
	}

	return a.pollTranscript(ctx, transcriptID)
}

func (a *assemblyTranscriber) uploadAudio(ctx context.Context, audio []byte) (string, error) {
	req, err := http.NewRequestWithContext(ctx, "POST", a.assemblyConfig.ApiUrl+"/v2/upload", bytes.NewReader(audio))
	if err != nil {
		a.logger.Error(err, "Failed to create the audio upload request")
		return "", err
	}
	req.Header.Set("Authorization", a.assemblyConfig.ApiKey)
	req.Header.Set("Content-Type", "application/octet-stream")

	payload, err := a.FetchContent(req)
	if err != nil {
		return "", err
	}

	var uploadRes assemblyUploadResponse
	if err := json.Unmarshal(payload, &uploadRes); err != nil {
		a.logger.Error(err, "Failed to unmarshal the upload response")
		return "", err
	}
	if uploadRes.UploadUrl == "" {
		return "", fmt.Errorf("upload response contained no upload_url")
	}

	return uploadRes.UploadUrl, nil
}

func (a *assemblyTranscriber) createTranscript(ctx context.Context, audioUrl string) (string, error) {
	reqBody := assemblyTranscriptRequest{AudioUrl: audioUrl}
	jsonPayload, err := json.Marshal(reqBody)
	if err != nil {
		a.logger.Error(err, "Failed to marshal the transcript request body")
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, "POST", a.assemblyConfig.ApiUrl+"/v2/transcript", bytes.NewBuffer(jsonPayload))
	if err != nil {
		a.logger.Error(err, "Failed to create the transcript request")
		return "", err
	}
	req.Header.Set("Authorization", a.assemblyConfig.ApiKey)
	req.Header.Set("Content-Type", "application/json")

	payload, err := a.FetchContent(req)
	if err != nil {
		return "", err
	}

	var transcriptRes assemblyTranscriptResponse
	if err := json.Unmarshal(payload, &transcriptRes); err != nil {
		a.logger.Error(err, "Failed to unmarshal the transcript response")
		return "", err
	}
	if transcriptRes.ID == "" {
		return "", fmt.Errorf("transcript response contained no id")
	}

	return transcriptRes.ID, nil
}

func (a *assemblyTranscriber) pollTranscript(ctx context.Context, transcriptID string) (outbound.Transcription, error) {
	ticker := time.NewTicker(a.assemblyConfig.PollInterval)
	defer ticker.Stop()

	deadline := time.NewTimer(a.assemblyConfig.PollTimeout)
	defer deadline.Stop()

	for {
		select {
		case <-ctx.Done():
			return outbound.Transcription{}, ctx.Err()
		case <-deadline.C:
			return outbound.Transcription{}, fmt.Errorf("transcript %s did not complete within %s", transcriptID, a.assemblyConfig.PollTimeout)
		case <-ticker.C:
			transcriptRes, err := a.getTranscript(ctx, transcriptID)
			if err != nil {
				return outbound.Transcription{}, err
			}

			switch transcriptRes.Status {
			case transcriptStatusCompleted:
				return outbound.Transcription{
					Text:       transcriptRes.Text,
					Confidence: transcriptRes.Confidence,
					Duration:   time.Duration(transcriptRes.AudioDuration * float64(time.Second)),
				}, nil
			case transcriptStatusError:
				return outbound.Transcription{}, fmt.Errorf("transcription failed: %s", transcriptRes.Error)
			}
		}
	}
}

func (a *assemblyTranscriber) getTranscript(ctx context.Context, transcriptID string) (assemblyTranscriptResponse, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", a.assemblyConfig.ApiUrl+"/v2/transcript/"+transcriptID, nil)
	if err != nil {
		a.logger.Error(err, "Failed to create the transcript status request")
		return assemblyTranscriptResponse{}, err
	}
	req.Header.Set("Authorization", a.assemblyConfig.ApiKey)

	payload, err := a.FetchContent(req)
	if err != nil {
		return assemblyTranscriptResponse{}, err
	}

	var transcriptRes assemblyTranscriptResponse
	if err := json.Unmarshal(payload, &transcriptRes); err != nil {
		a.logger.Error(err, "Failed to unmarshal the transcript status response")
		return assemblyTranscriptResponse{}, err
	}

	return transcriptRes, nil
}
