package adapters

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"voice-agent-api/application/ports/outbound"
	"voice-agent-api/config"

	"github.com/donovanhide/eventsource"
)

const MaxRetries = 3

type geminiStreamRequest struct {
	Contents         []geminiContent        `json:"contents"`
	GenerationConfig geminiGenerationConfig `json:"generationConfig"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiGenerationConfig struct {
	MaxOutputTokens int     `json:"maxOutputTokens"`
	Temperature     float64 `json:"temperature"`
}

type geminiStreamChunk struct {
	Candidates []struct {
		Content geminiContent `json:"content"`
	} `json:"candidates"`
}

type geminiStreamGenerator struct {
	logger       outbound.LoggerPort
	geminiConfig *config.GeminiConfig
	workerPool   outbound.TaskDispatcher
}

// NewGeminiStreamGenerator streams generated text as it is produced, using
// the SSE variant of the Gemini REST API.
func NewGeminiStreamGenerator(geminiConfig *config.GeminiConfig, workerPool outbound.TaskDispatcher,
	logger outbound.LoggerPort) outbound.StreamGeneratorPort {
	return &geminiStreamGenerator{
		logger:       logger,
		geminiConfig: geminiConfig,
		workerPool:   workerPool,
	}
}

func (g *geminiStreamGenerator) Generate(ctx context.Context, params outbound.GenerateParams) (<-chan string, <-chan error) {
	out := make(chan string)
	// Buffered so the submit-failure send below never blocks: at that point
	// nothing is receiving yet.
	errCh := make(chan error, 1)

	retryCount := 0

	newCtx, cancel := context.WithCancel(ctx)

	err := g.workerPool.Submit(func() {
		defer close(out)
		defer close(errCh)
		defer cancel()

		req, err := g.createRequest(newCtx, params)
		if err != nil {
			g.logger.Error(err, "Failed to create HTTP request for generation stream")
			errCh <- err
			return
		}

		stream, err := eventsource.SubscribeWithRequest("", req)
		if err != nil {
			g.logger.Error(err, "Failed to subscribe to generation stream")
			errCh <- err
			return
		}
		for {
			select {
			case <-newCtx.Done():
				return
			case ev := <-stream.Events:
				payload, err := g.extractPayload(ev)
				if err != nil {
					errCh <- err
					cancel()
					return
				}
				if payload != "" {
					out <- payload
				}
				retryCount = 0
			case err := <-stream.Errors:
				if err == io.EOF {
					g.logger.Debug("Generation stream closed")
					return
				} else if retryCount < MaxRetries {
					g.logger.ErrorWithFields(err, "Error occurred during streaming, retrying", map[string]interface{}{
						"retry_count": retryCount})
					retryCount++
					continue
				}
				g.logger.Error(err, "Error occurred during streaming, max retries reached")
				errCh <- err
				cancel()
				return
			}
		}
	})
	if err != nil {
		g.logger.Error(err, "Failed to submit task to worker pool")
		errCh <- err
		close(out)
		close(errCh)
	}

	return out, errCh
}

func (g *geminiStreamGenerator) extractPayload(event eventsource.Event) (string, error) {
	var chunk geminiStreamChunk
	err := json.Unmarshal([]byte(event.Data()), &chunk)
	if err != nil {
		g.logger.Error(err, "Failed to unmarshal event data")
		return "", err
	}
	if len(chunk.Candidates) == 0 {
		return "", nil
	}

	var text string
	for _, part := range chunk.Candidates[0].Content.Parts {
		text += part.Text
	}

	return text, nil
}

func (g *geminiStreamGenerator) createRequest(ctx context.Context, params outbound.GenerateParams) (*http.Request, error) {
	model := params.Model
	if model == "" {
		model = g.geminiConfig.Model
	}

	streamReq := geminiStreamRequest{
		Contents: []geminiContent{
			{Parts: []geminiPart{{Text: params.Prompt}}},
		},
		GenerationConfig: geminiGenerationConfig{
			MaxOutputTokens: g.geminiConfig.MaxOutputTokens,
			Temperature:     g.geminiConfig.Temperature,
		},
	}

	payloadBytes, err := json.Marshal(streamReq)
	if err != nil {
		g.logger.Error(err, "Failed to marshal the request body")
		return nil, err
	}

	url := fmt.Sprintf("%s/v1beta/models/%s:streamGenerateContent?alt=sse", g.geminiConfig.ApiUrl, model)
	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewBuffer(payloadBytes))
	if err != nil {
		g.logger.Error(err, "Failed to create the HTTP request")
		return nil, err
	}

	req.Header.Set("x-goog-api-key", g.geminiConfig.ApiKey)
	req.Header.Set("Content-Type", "application/json")

	return req, nil
}
