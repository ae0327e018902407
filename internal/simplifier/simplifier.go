package simplifier

import (
	"context"
	"encoding/json"
	"time"

	"github.com/sirupsen/logrus"

	"labsimplify/internal/config"
	"labsimplify/internal/domain"
	"labsimplify/internal/observability/metrics"
	"labsimplify/internal/port"
)

const (
	// UnstructuredCaution is the single caution of a report whose model output could not be parsed.
	UnstructuredCaution = "AI output could not be fully structured. Please review the text carefully."
	// BackendErrorSummary is the summary of a report whose backend call failed.
	BackendErrorSummary = "The analysis could not be completed due to an AI service error."
	// UnknownErrorCaution stands in for an error with an empty message.
	UnknownErrorCaution = "Unknown error"

	fallbackSummaryChars = 600
	snippetChars         = 240
)

// Simplifier turns report text into a SimplifiedReport using one generation backend.
// It holds no per-call state and is safe for concurrent use.
type Simplifier struct {
	backend       port.GenerationBackend
	provider      string
	maxInputChars int
	genOpts       port.GenerateOptions
	timeout       time.Duration
	log           logrus.FieldLogger
	metrics       *metrics.SimplifierMetrics
	schema        *SchemaChecker
}

// Option customizes a Simplifier.
type Option func(*Simplifier)

// WithGeneratorConfig applies provider name, input bound, generation options and timeout.
func WithGeneratorConfig(cfg *config.GeneratorConfig) Option {
	return func(s *Simplifier) {
		s.provider = cfg.Provider
		if cfg.MaxInputChars > 0 {
			s.maxInputChars = cfg.MaxInputChars
		}
		s.genOpts = port.GenerateOptions{
			Temperature:     cfg.Temperature,
			MaxOutputTokens: cfg.MaxOutputTokens,
		}
		s.timeout = cfg.Timeout()
	}
}

// WithTimeout bounds each backend call.
func WithTimeout(d time.Duration) Option {
	return func(s *Simplifier) { s.timeout = d }
}

func WithLogger(log logrus.FieldLogger) Option {
	return func(s *Simplifier) { s.log = log }
}

func WithMetrics(m *metrics.SimplifierMetrics) Option {
	return func(s *Simplifier) { s.metrics = m }
}

// New creates a Simplifier with temperature 0.2, 800 output tokens, 4000 input
// characters and a 60s call timeout unless overridden.
func New(backend port.GenerationBackend, opts ...Option) *Simplifier {
	s := &Simplifier{
		backend:       backend,
		provider:      "unknown",
		maxInputChars: DefaultMaxInputChars,
		genOpts:       port.GenerateOptions{Temperature: 0.2, MaxOutputTokens: 800},
		timeout:       60 * time.Second,
		log:           logrus.StandardLogger(),
		schema:        NewSchemaChecker(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Simplify never fails: backend errors and unparseable output become degraded reports.
func (s *Simplifier) Simplify(ctx context.Context, text string) domain.SimplifiedReport {
	prompt := BuildPrompt(Truncate(text, s.maxInputChars))
	log := s.log.WithField("provider", s.provider)

	callCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	start := time.Now()
	raw, err := s.backend.Generate(callCtx, prompt, s.genOpts)
	elapsed := time.Since(start)
	s.metrics.ObserveGeneration(s.provider, err, elapsed)

	if err != nil {
		log.WithField("elapsed_ms", elapsed.Milliseconds()).
			Warnf("simplifier.Simplify: backend call failed: %v", err)
		s.metrics.ObserveOutcome(string(domain.OutcomeBackendError))
		return backendFallback(text, err)
	}

	var decoded interface{}
	jsonErr := json.Unmarshal([]byte(ExtractJSON(raw)), &decoded)
	obj, isObject := decoded.(map[string]interface{})
	if jsonErr != nil || !isObject {
		log.WithField("elapsed_ms", elapsed.Milliseconds()).
			Warn("simplifier.Simplify: model output is not a JSON object, using raw text")
		s.metrics.ObserveOutcome(string(domain.OutcomeUnstructured))
		return parseFallback(raw, text)
	}

	if driftErr := s.schema.Check(obj); driftErr != nil {
		log.Warnf("simplifier.Simplify: model output drifts from report shape: %v", driftErr)
	}

	report := Normalize(obj)
	log.WithFields(logrus.Fields{
		"elapsed_ms": elapsed.Milliseconds(),
		"findings":   len(report.Findings),
		"cautions":   len(report.Cautions),
	}).Debug("simplifier.Simplify: structured report")
	s.metrics.ObserveOutcome(string(domain.OutcomeStructured))
	return report
}

func parseFallback(raw, input string) domain.SimplifiedReport {
	report := domain.NewSimplifiedReport(Truncate(raw, fallbackSummaryChars))
	report.Cautions = []string{UnstructuredCaution}
	report.RawTextSnippet = snippet(input)
	return report
}

func backendFallback(input string, err error) domain.SimplifiedReport {
	msg := err.Error()
	if msg == "" {
		msg = UnknownErrorCaution
	}
	report := domain.NewSimplifiedReport(BackendErrorSummary)
	report.Cautions = []string{msg}
	report.RawTextSnippet = snippet(input)
	return report
}

func snippet(input string) *string {
	s := Truncate(input, snippetChars)
	return &s
}
