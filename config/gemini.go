package config

import (
	"fmt"
	"os"
	"strconv"
)

type GeminiConfig struct {
	ApiUrl          string
	ApiKey          string
	Model           string
	MaxOutputTokens int
	Temperature     float64
}

func GetGeminiConfig() (*GeminiConfig, error) {
	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY must be set")
	}

	apiUrl := os.Getenv("GEMINI_API_URL")
	if apiUrl == "" {
		apiUrl = "https://generativelanguage.googleapis.com"
	}

	model := os.Getenv("GEMINI_MODEL")
	if model == "" {
		model = "gemini-1.5-flash"
	}

	maxOutputTokens := 1000
	if raw := os.Getenv("GEMINI_MAX_OUTPUT_TOKENS"); raw != "" {
		val, err := strconv.Atoi(raw)
		if err != nil {
			return nil, fmt.Errorf("Failed to parse GEMINI_MAX_OUTPUT_TOKENS")
		}
		maxOutputTokens = val
	}

	temperature := 0.7
	if raw := os.Getenv("GEMINI_TEMPERATURE"); raw != "" {
		val, err := strconv.ParseFloat(raw, 32)
		if err != nil {
			return nil, fmt.Errorf("Failed to parse GEMINI_TEMPERATURE")
		}
		temperature = val
	}

	return &GeminiConfig{
		ApiUrl:          apiUrl,
		ApiKey:          apiKey,
		Model:           model,
		MaxOutputTokens: maxOutputTokens,
		Temperature:     temperature,
	}, nil
}
