package llm_test

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"labsimplify/internal/llm"
)

func TestRateLimitError_ErrorString(t *testing.T) {
	rlErr := llm.NewRateLimitError("claude", fmt.Errorf("rate limited"), 30)

	assert.Contains(t, rlErr.Error(), "claude")
	assert.Contains(t, rlErr.Error(), "rate limited")
	assert.Contains(t, rlErr.Error(), "30s")
}

func TestRateLimitError_ErrorsAs(t *testing.T) {
	rlErr := llm.NewRateLimitError("gemini", fmt.Errorf("underlying"), 30)
	wrapped := fmt.Errorf("generate failed: %w", rlErr)

	var target *llm.RateLimitError
	require.True(t, errors.As(wrapped, &target))
	assert.Equal(t, "gemini", target.Provider)
	assert.Equal(t, 30*time.Second, target.RetryAfter)
}

func TestNewRateLimitError_DefaultRetryAfter(t *testing.T) {
	rlErr := llm.NewRateLimitError("openai", fmt.Errorf("err"), 0)

	assert.Equal(t, 60*time.Second, rlErr.RetryAfter)
}

func TestParseRetryAfterHeader(t *testing.T) {
	assert.Equal(t, 0, llm.ParseRetryAfterHeader(""))
	assert.Equal(t, 30, llm.ParseRetryAfterHeader("30"))
	assert.Equal(t, 0, llm.ParseRetryAfterHeader("invalid"))
}

func TestNewStatusError_429BecomesRateLimit(t *testing.T) {
	err := llm.NewStatusError("openai", 429, "slow down", "5")

	var rlErr *llm.RateLimitError
	require.True(t, errors.As(err, &rlErr))
	assert.Equal(t, 5*time.Second, rlErr.RetryAfter)

	var statusErr *llm.StatusError
	require.True(t, errors.As(err, &statusErr))
	assert.Equal(t, 429, statusErr.StatusCode)
}

func TestNewStatusError_TruncatesBody(t *testing.T) {
	err := llm.NewStatusError("claude", 500, strings.Repeat("x", 2000), "")

	var statusErr *llm.StatusError
	require.True(t, errors.As(err, &statusErr))
	assert.Len(t, statusErr.Body, 503)
	assert.Contains(t, err.Error(), "status 500")
}

type codedErr struct{ code int }

func (e codedErr) Error() string       { return fmt.Sprintf("coded %d", e.code) }
func (e codedErr) HTTPStatusCode() int { return e.code }

func TestIsTransient(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"rate limit", llm.NewRateLimitError("x", errors.New("429"), 1), true},
		{"server error", llm.NewStatusError("x", 503, "", ""), true},
		{"bad request", llm.NewStatusError("x", 400, "", ""), false},
		{"unauthorized", llm.NewStatusError("x", 401, "", ""), false},
		{"sdk 500", fmt.Errorf("wrapped: %w", codedErr{500}), true},
		{"sdk 429", codedErr{429}, true},
		{"sdk 403", codedErr{403}, false},
		{"network", &net.OpError{Op: "dial", Err: errors.New("refused")}, true},
		{"canceled", context.Canceled, false},
		{"deadline", fmt.Errorf("call: %w", context.DeadlineExceeded), false},
		{"plain", errors.New("malformed"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, llm.IsTransient(tt.err))
		})
	}
}
