package outbound

import "context"

type GenerateParams struct {
	Prompt string
	Model  string
}

type ResponseGeneratorPort interface {
	Generate(ctx context.Context, params GenerateParams) (string, error)
}

// StreamGeneratorPort is the streaming variant used by the websocket and SSE
// endpoints. Chunks arrive on the first channel in generation order; both
// channels are closed when the stream ends.
type StreamGeneratorPort interface {
	Generate(ctx context.Context, params GenerateParams) (<-chan string, <-chan error)
}
