package gemini

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"

	"labsimplify/internal/config"
	"labsimplify/internal/llm"
	"labsimplify/internal/port"
)

const defaultModel = "gemini-2.5-flash"

func init() {
	llm.RegisterProvider("gemini", func(ctx context.Context, cfg *config.GeneratorConfig) (port.GenerationBackend, error) {
		return NewBackend(ctx, cfg)
	})
}

// ContentGenerator is the subset of *genai.GenerativeModel the backend calls.
type ContentGenerator interface {
	GenerateContent(ctx context.Context, parts ...genai.Part) (*genai.GenerateContentResponse, error)
}

// ModelFunc returns a generator configured for one call's options.
type ModelFunc func(opts port.GenerateOptions) ContentGenerator

// Backend implements port.GenerationBackend using the Gemini SDK.
type Backend struct {
	client *genai.Client
	model  ModelFunc
}

// NewBackend creates a Gemini client authenticated with the configured API key.
func NewBackend(ctx context.Context, cfg *config.GeneratorConfig) (*Backend, error) {
	modelID := strings.TrimSpace(cfg.Model)
	if modelID == "" {
		modelID = defaultModel
	}

	clientOpts := []option.ClientOption{option.WithAPIKey(cfg.APIKey)}
	if cfg.Endpoint != "" {
		clientOpts = append(clientOpts, option.WithEndpoint(cfg.Endpoint))
	}
	client, err := genai.NewClient(ctx, clientOpts...)
	if err != nil {
		return nil, fmt.Errorf("creating gemini client: %w", err)
	}

	return &Backend{
		client: client,
		model: func(opts port.GenerateOptions) ContentGenerator {
			// GenerativeModel handles are cheap; a fresh one per call keeps options
			// from leaking between concurrent requests.
			m := client.GenerativeModel(modelID)
			m.SetTemperature(opts.Temperature)
			if opts.MaxOutputTokens > 0 {
				m.SetMaxOutputTokens(opts.MaxOutputTokens)
			}
			m.ResponseMIMEType = "application/json"
			return m
		},
	}, nil
}

// NewBackendWithModel creates a backend around a caller-supplied model (for testing).
func NewBackendWithModel(fn ModelFunc) *Backend {
	return &Backend{model: fn}
}

func (b *Backend) Generate(ctx context.Context, prompt string, opts port.GenerateOptions) (string, error) {
	resp, err := b.model(opts).GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", mapError(err)
	}

	if resp == nil || len(resp.Candidates) == 0 {
		return "", errors.New("empty response from API: no candidates")
	}
	candidate := resp.Candidates[0]
	if candidate.Content == nil || len(candidate.Content.Parts) == 0 {
		return "", errors.New("empty response from API: no content parts")
	}

	var sb strings.Builder
	for _, part := range candidate.Content.Parts {
		if text, ok := part.(genai.Text); ok {
			sb.WriteString(string(text))
		}
	}
	return sb.String(), nil
}

// Close releases the underlying SDK client.
func (b *Backend) Close() error {
	if b.client != nil {
		return b.client.Close()
	}
	return nil
}

// httpCoder is implemented by gax API errors.
type httpCoder interface {
	HTTPCode() int
}

// mapError converts SDK status errors into llm status errors so that retry
// classification sees the HTTP code.
func mapError(err error) error {
	var gErr *googleapi.Error
	if errors.As(err, &gErr) {
		return llm.NewStatusError("gemini", gErr.Code, gErr.Message, gErr.Header.Get("Retry-After"))
	}
	var coder httpCoder
	if errors.As(err, &coder) && coder.HTTPCode() > 0 {
		return llm.NewStatusError("gemini", coder.HTTPCode(), err.Error(), "")
	}
	return fmt.Errorf("calling gemini API: %w", err)
}

