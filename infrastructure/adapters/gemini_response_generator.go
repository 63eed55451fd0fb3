package adapters

import (
	"context"
	"voice-agent-api/application/ports/outbound"
	"voice-agent-api/config"

	"google.golang.org/genai"
)

type geminiResponseGenerator struct {
	logger       outbound.LoggerPort
	client       *genai.Client
	geminiConfig *config.GeminiConfig
}

func NewGeminiResponseGenerator(ctx context.Context, geminiConfig *config.GeminiConfig,
	logger outbound.LoggerPort) (outbound.ResponseGeneratorPort, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  geminiConfig.ApiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		logger.Error(err, "Failed to create the Gemini client")
		return nil, err
	}

	return &geminiResponseGenerator{
		logger:       logger,
		client:       client,
		geminiConfig: geminiConfig,
	}, nil
}

func (g *geminiResponseGenerator) Generate(ctx context.Context, params outbound.GenerateParams) (string, error) {
	model := params.Model
	if model == "" {
		model = g.geminiConfig.Model
	}

	temperature := float32(g.geminiConfig.Temperature)
	generateConfig := &genai.GenerateContentConfig{
		MaxOutputTokens: int32(g.geminiConfig.MaxOutputTokens),
		Temperature:     &temperature,
	}

	res, err := g.client.Models.GenerateContent(ctx, model, genai.Text(params.Prompt), generateConfig)
	if err != nil {
		g.logger.ErrorWithFields(err, "Failed to generate content", map[string]interface{}{
			"model": model,
		})
		return "", err
	}

	return res.Text(), nil
}
