package huggingface

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"labsimplify/internal/config"
	"labsimplify/internal/llm"
	"labsimplify/internal/port"
)

const (
	apiBaseURL   = "https://api-inference.huggingface.co/models"
	defaultModel = "facebook/bart-large-cnn"
)

func init() {
	llm.RegisterProvider("huggingface", func(_ context.Context, cfg *config.GeneratorConfig) (port.GenerationBackend, error) {
		return NewBackend(cfg), nil
	})
}

// Backend implements port.GenerationBackend against a single hosted model on the
// Hugging Face Inference API.
type Backend struct {
	apiKey   string
	model    string
	endpoint string
	client   *http.Client
}

// NewBackend creates a hosted-model backend. A configured endpoint replaces the
// model URL (dedicated inference endpoints).
func NewBackend(cfg *config.GeneratorConfig) *Backend {
	return newBackend(cfg, cfg.Endpoint)
}

// NewBackendWithEndpoint creates a backend pointing at a custom API endpoint (for testing).
func NewBackendWithEndpoint(cfg *config.GeneratorConfig, endpoint string) *Backend {
	return newBackend(cfg, endpoint)
}

func newBackend(cfg *config.GeneratorConfig, endpoint string) *Backend {
	model := cfg.Model
	if model == "" {
		model = defaultModel
	}
	timeout := time.Duration(cfg.TimeoutSecs) * time.Second
	if timeout == 0 {
		timeout = 60 * time.Second
	}
	if endpoint == "" {
		endpoint = fmt.Sprintf("%s/%s", apiBaseURL, model)
	}
	return &Backend{
		apiKey:   cfg.APIKey,
		model:    model,
		endpoint: endpoint,
		client:   &http.Client{Timeout: timeout},
	}
}

// Generate posts the prompt as the model input. Hosted pipelines accept different
// parameter sets per task (summarization rejects generation knobs), so opts are
// not forwarded.
func (b *Backend) Generate(ctx context.Context, prompt string, _ port.GenerateOptions) (string, error) {
	reqBody := map[string]interface{}{
		"inputs": prompt,
		"options": map[string]interface{}{
			"wait_for_model": true,
		},
	}

	bodyBytes, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("marshaling request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, b.endpoint, bytes.NewReader(bodyBytes))
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+b.apiKey)

	resp, err := b.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("calling huggingface API: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", llm.NewStatusError("huggingface", resp.StatusCode, string(respBody), resp.Header.Get("Retry-After"))
	}

	return parseResponse(respBody)
}

// parseResponse accepts either a single object or an array of objects carrying
// generated_text (text generation) or summary_text (summarization).
func parseResponse(body []byte) (string, error) {
	var payload interface{}
	if err := json.Unmarshal(body, &payload); err != nil {
		return "", fmt.Errorf("unmarshaling response: %w", err)
	}

	switch v := payload.(type) {
	case []interface{}:
		for _, item := range v {
			if m, ok := item.(map[string]interface{}); ok {
				if text, ok := outputText(m); ok {
					return text, nil
				}
			}
		}
	case map[string]interface{}:
		if msg, ok := v["error"].(string); ok && strings.TrimSpace(msg) != "" {
			return "", fmt.Errorf("huggingface API error: %s", msg)
		}
		if text, ok := outputText(v); ok {
			return text, nil
		}
	}

	return "", fmt.Errorf("empty response from API: no generated_text or summary_text")
}

func outputText(m map[string]interface{}) (string, bool) {
	for _, key := range []string{"generated_text", "summary_text"} {
		if text, ok := m[key].(string); ok && text != "" {
			return text, true
		}
	}
	return "", false
}
