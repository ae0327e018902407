package llm

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"labsimplify/internal/port"
)

// RetryObserver is notified before every retry attempt.
type RetryObserver interface {
	ObserveRetry(provider string)
}

// RetryConfig bounds the retry loop. Zero delays select the defaults.
type RetryConfig struct {
	MaxRetries int
	BaseDelay  time.Duration
	MaxDelay   time.Duration
}

const (
	defaultBaseDelay = 500 * time.Millisecond
	defaultMaxDelay  = 10 * time.Second
)

// circuitState tracks rate-limit backoff for the wrapped provider.
type circuitState struct {
	mu      sync.RWMutex
	resetAt time.Time // zero value = closed (healthy)
}

func (c *circuitState) isOpenWithReset(now time.Time) (time.Time, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.resetAt, !c.resetAt.IsZero() && now.Before(c.resetAt)
}

func (c *circuitState) open(resetAt time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.resetAt = resetAt
}

// RetryingBackend retries transient failures of a single provider with exponential
// backoff. A rate limit whose Retry-After exceeds the maximum delay opens a circuit:
// calls fail fast until the window passes. The last provider error is returned
// unchanged. It implements port.GenerationBackend.
type RetryingBackend struct {
	backend  port.GenerationBackend
	name     string
	cfg      RetryConfig
	circuit  *circuitState
	log      logrus.FieldLogger
	observer RetryObserver
}

// NewRetryingBackend wraps backend. log and observer may be nil.
func NewRetryingBackend(backend port.GenerationBackend, name string, cfg RetryConfig, log logrus.FieldLogger, observer RetryObserver) *RetryingBackend {
	if cfg.BaseDelay <= 0 {
		cfg.BaseDelay = defaultBaseDelay
	}
	if cfg.MaxDelay <= 0 {
		cfg.MaxDelay = defaultMaxDelay
	}
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &RetryingBackend{
		backend:  backend,
		name:     name,
		cfg:      cfg,
		circuit:  &circuitState{},
		log:      log,
		observer: observer,
	}
}

func (r *RetryingBackend) Generate(ctx context.Context, prompt string, opts port.GenerateOptions) (string, error) {
	now := time.Now()
	if resetAt, open := r.circuit.isOpenWithReset(now); open {
		r.log.WithField("provider", r.name).Warnf("llm.RetryingBackend: skipping call (circuit open until %s)", resetAt.Format(time.RFC3339))
		return "", NewRateLimitError(r.name, fmt.Errorf("circuit open until %s", resetAt.Format(time.RFC3339)), int(time.Until(resetAt).Seconds()))
	}

	var lastErr error
	for attempt := 0; attempt <= r.cfg.MaxRetries; attempt++ {
		if attempt > 0 {
			delay, ok := r.delay(attempt, lastErr)
			if !ok {
				return "", lastErr
			}
			if r.observer != nil {
				r.observer.ObserveRetry(r.name)
			}
			r.log.WithFields(logrus.Fields{
				"provider": r.name,
				"attempt":  attempt,
				"delay":    delay.String(),
			}).Warnf("llm.RetryingBackend: retrying after error: %v", lastErr)
			if err := sleepContext(ctx, delay); err != nil {
				return "", lastErr
			}
		}

		text, err := r.backend.Generate(ctx, prompt, opts)
		if err == nil {
			return text, nil
		}
		lastErr = err

		if ctx.Err() != nil || !IsTransient(err) {
			return "", err
		}
	}

	return "", lastErr
}

// delay picks the wait before attempt. A rate limit longer than MaxDelay opens the
// circuit and stops the loop.
func (r *RetryingBackend) delay(attempt int, lastErr error) (time.Duration, bool) {
	var rlErr *RateLimitError
	if errors.As(lastErr, &rlErr) {
		if rlErr.RetryAfter > r.cfg.MaxDelay {
			r.circuit.open(time.Now().Add(rlErr.RetryAfter))
			return 0, false
		}
		return rlErr.RetryAfter, true
	}

	d := r.cfg.BaseDelay << (attempt - 1)
	if d <= 0 || d > r.cfg.MaxDelay {
		d = r.cfg.MaxDelay
	}
	return d, true
}

// Close releases the wrapped backend's resources if it holds any.
func (r *RetryingBackend) Close() error {
	if c, ok := r.backend.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

func sleepContext(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
