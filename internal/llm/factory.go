package llm

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"labsimplify/internal/config"
	"labsimplify/internal/domain"
	"labsimplify/internal/port"
)

// ProviderFactory is a function that creates a GenerationBackend from the generator config.
type ProviderFactory func(ctx context.Context, cfg *config.GeneratorConfig) (port.GenerationBackend, error)

// registry of provider factories, populated by init() in each provider package.
// Import labsimplify/internal/llm/all to register every built-in provider.
var providers = map[string]ProviderFactory{}

// RegisterProvider registers a provider factory by name.
func RegisterProvider(name string, factory ProviderFactory) {
	providers[name] = factory
}

// Option customizes NewBackend.
type Option func(*options)

type options struct {
	log      logrus.FieldLogger
	observer RetryObserver
}

// WithLogger sets the logger used by the retry wrapper.
func WithLogger(log logrus.FieldLogger) Option {
	return func(o *options) { o.log = log }
}

// WithRetryObserver reports every retry attempt to o.
func WithRetryObserver(o RetryObserver) Option {
	return func(opts *options) { opts.observer = o }
}

// NewProvider validates cfg and creates the bare provider backend with no retry wrapper.
func NewProvider(ctx context.Context, cfg *config.GeneratorConfig) (port.GenerationBackend, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	factory, ok := providers[cfg.Provider]
	if !ok {
		return nil, fmt.Errorf("%w: %s is not registered", domain.ErrUnknownProvider, cfg.Provider)
	}
	return factory(ctx, cfg)
}

// NewBackend creates the configured provider and wraps it with bounded retries when
// cfg.MaxRetries is positive.
func NewBackend(ctx context.Context, cfg *config.GeneratorConfig, opts ...Option) (port.GenerationBackend, error) {
	o := options{log: logrus.StandardLogger()}
	for _, opt := range opts {
		opt(&o)
	}

	backend, err := NewProvider(ctx, cfg)
	if err != nil {
		return nil, err
	}
	if cfg.MaxRetries <= 0 {
		return backend, nil
	}
	return NewRetryingBackend(backend, cfg.Provider, RetryConfig{MaxRetries: cfg.MaxRetries}, o.log, o.observer), nil
}
