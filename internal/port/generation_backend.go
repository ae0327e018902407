package port

import "context"

// GenerateOptions tunes a single generation request.
type GenerateOptions struct {
	Temperature     float32
	MaxOutputTokens int32
}

// GenerationBackend abstracts an external text generation service. Implementations
// only adapt request/response shapes; they return the model's raw text.
type GenerationBackend interface {
	Generate(ctx context.Context, prompt string, opts GenerateOptions) (string, error)
}
