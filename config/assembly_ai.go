package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

type AssemblyAIConfig struct {
	ApiUrl       string
	ApiKey       string
	PollInterval time.Duration
	PollTimeout  time.Duration
}

func GetAssemblyAIConfig() (*AssemblyAIConfig, error) {
	apiKey := os.Getenv("ASSEMBLY_AI_API_KEY")
	if apiKey == "" {
		return nil, fmt.Errorf("ASSEMBLY_AI_API_KEY must be set")
	}

	apiUrl := os.Getenv("ASSEMBLY_AI_API_URL")
	if apiUrl == "" {
		apiUrl = "https://api.assemblyai.com"
	}

	pollIntervalMs := 1000
	if raw := os.Getenv("ASSEMBLY_AI_POLL_INTERVAL_MS"); raw != "" {
		val, err := strconv.Atoi(raw)
		if err != nil {
			return nil, fmt.Errorf("Failed to parse ASSEMBLY_AI_POLL_INTERVAL_MS")
		}
		pollIntervalMs = val
	}

	pollTimeoutS := 120
	if raw := os.Getenv("ASSEMBLY_AI_POLL_TIMEOUT_S"); raw != "" {
		val, err := strconv.Atoi(raw)
		if err != nil {
			return nil, fmt.Errorf("Failed to parse ASSEMBLY_AI_POLL_TIMEOUT_S")
		}
		pollTimeoutS = val
	}

	return &AssemblyAIConfig{
		ApiUrl:       apiUrl,
		ApiKey:       apiKey,
		PollInterval: time.Duration(pollIntervalMs) * time.Millisecond,
		PollTimeout:  time.Duration(pollTimeoutS) * time.Second,
	}, nil
}
