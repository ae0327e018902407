package huggingface_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"labsimplify/internal/config"
	"labsimplify/internal/llm"
	"labsimplify/internal/llm/huggingface"
	"labsimplify/internal/port"
)

func newTestBackend(serverURL string) *huggingface.Backend {
	cfg := &config.GeneratorConfig{
		Provider: "huggingface",
		APIKey:   "hf-test",
	}
	return huggingface.NewBackendWithEndpoint(cfg, serverURL)
}

func serve(t *testing.T, status int, body string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
}

func TestBackend_Generate_SendsInputsOnly(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer hf-test", r.Header.Get("Authorization"))

		var reqBody map[string]interface{}
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&reqBody))
		assert.Equal(t, "the prompt", reqBody["inputs"])
		assert.NotContains(t, reqBody, "parameters")
		opts := reqBody["options"].(map[string]interface{})
		assert.Equal(t, true, opts["wait_for_model"])

		_, _ = w.Write([]byte(`[{"summary_text":"short summary"}]`))
	}))
	defer server.Close()

	text, err := newTestBackend(server.URL).Generate(context.Background(), "the prompt",
		port.GenerateOptions{Temperature: 0.2, MaxOutputTokens: 800})

	require.NoError(t, err)
	assert.Equal(t, "short summary", text)
}

func TestBackend_Generate_ResponseShapes(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"array generated_text", `[{"generated_text":"gen"}]`, "gen"},
		{"object generated_text", `{"generated_text":"obj"}`, "obj"},
		{"object summary_text", `{"summary_text":"sum"}`, "sum"},
		{"skips empty entries", `[{"generated_text":""},{"summary_text":"second"}]`, "second"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := serve(t, http.StatusOK, tt.body)
			defer server.Close()

			text, err := newTestBackend(server.URL).Generate(context.Background(), "p", port.GenerateOptions{})

			require.NoError(t, err)
			assert.Equal(t, tt.want, text)
		})
	}
}

func TestBackend_Generate_ErrorPayload(t *testing.T) {
	server := serve(t, http.StatusOK, `{"error":"Model is currently loading"}`)
	defer server.Close()

	_, err := newTestBackend(server.URL).Generate(context.Background(), "p", port.GenerateOptions{})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "Model is currently loading")
}

func TestBackend_Generate_NoText(t *testing.T) {
	server := serve(t, http.StatusOK, `[{"label":"POSITIVE"}]`)
	defer server.Close()

	_, err := newTestBackend(server.URL).Generate(context.Background(), "p", port.GenerateOptions{})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "no generated_text or summary_text")
}

func TestBackend_Generate_ServiceUnavailable(t *testing.T) {
	server := serve(t, http.StatusServiceUnavailable, `{"error":"loading"}`)
	defer server.Close()

	_, err := newTestBackend(server.URL).Generate(context.Background(), "p", port.GenerateOptions{})

	require.Error(t, err)
	assert.True(t, llm.IsTransient(err))
}
