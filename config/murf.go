package config

import (
	"fmt"
	"os"
)

type MurfConfig struct {
	ApiUrl         string
	ApiKey         string
	DefaultVoiceID string
	Format         string
}

func GetMurfConfig() (*MurfConfig, error) {
	apiKey := os.Getenv("MURF_API_KEY")
	if apiKey == "" {
		return nil, fmt.Errorf("MURF_API_KEY must be set")
	}

	apiUrl := os.Getenv("MURF_API_URL")
	if apiUrl == "" {
		apiUrl = "https://api.murf.ai"
	}

	voiceID := os.Getenv("MURF_DEFAULT_VOICE_ID")
	if voiceID == "" {
		voiceID = "en-US-natalie"
	}

	format := os.Getenv("MURF_AUDIO_FORMAT")
	if format == "" {
		format = "MP3"
	}

	return &MurfConfig{
		ApiUrl:         apiUrl,
		ApiKey:         apiKey,
		DefaultVoiceID: voiceID,
		Format:         format,
	}, nil
}
