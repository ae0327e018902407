package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"labsimplify/internal/domain"
	"labsimplify/internal/observability/metrics"
	"labsimplify/internal/port"
)

// Simplifier is the report simplification step, satisfied by *simplifier.Simplifier.
type Simplifier interface {
	Simplify(ctx context.Context, text string) domain.SimplifiedReport
}

// ReportService turns raw report input into a simplified report.
type ReportService interface {
	Simplify(ctx context.Context, input domain.ReportInput) (*domain.SimplifiedReport, error)
}

type reportService struct {
	extractor  port.TextExtractor
	simplifier Simplifier
	maxBytes   int64
	metrics    *metrics.SimplifierMetrics
	log        logrus.FieldLogger
}

// NewReportService creates a new ReportService implementation. maxBytes <= 0 disables
// the document size check; m and log may be nil.
func NewReportService(
	extractor port.TextExtractor,
	simplifier Simplifier,
	maxBytes int64,
	m *metrics.SimplifierMetrics,
	log logrus.FieldLogger,
) ReportService {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &reportService{
		extractor:  extractor,
		simplifier: simplifier,
		maxBytes:   maxBytes,
		metrics:    m,
		log:        log,
	}
}

// Simplify validates the input, extracts document text and hands the combined text
// to the simplifier. Input errors are returned before any backend call is made.
func (s *reportService) Simplify(ctx context.Context, input domain.ReportInput) (*domain.SimplifiedReport, error) {
	if !input.HasDocument() && !input.HasText() {
		return nil, domain.ErrNoReportContent
	}
	if s.maxBytes > 0 && int64(len(input.Document)) > s.maxBytes {
		return nil, domain.ErrFileTooLarge
	}

	var parts []string
	if input.HasDocument() {
		docText, err := s.extractText(input)
		if err != nil {
			return nil, err
		}
		if docText != "" {
			parts = append(parts, docText)
		}
	}
	if input.HasText() {
		parts = append(parts, strings.TrimSpace(input.Text))
	}

	text := strings.Join(parts, "\n\n")
	if text == "" {
		return nil, domain.ErrNoReportContent
	}

	report := s.simplifier.Simplify(ctx, text)
	s.log.WithFields(logrus.Fields{
		"document": input.DocumentName,
		"chars":    len([]rune(text)),
		"findings": len(report.Findings),
	}).Info("reportService.Simplify: report simplified")
	return &report, nil
}

func (s *reportService) extractText(input domain.ReportInput) (string, error) {
	text, err := s.extractor.ExtractText(input.Document)
	if err != nil {
		s.metrics.ObserveExtraction("failed")
		s.log.WithField("document", input.DocumentName).
			Warnf("reportService.Simplify: document extraction failed: %v", err)
		if !errors.Is(err, domain.ErrDocumentParse) {
			err = fmt.Errorf("%w: %v", domain.ErrDocumentParse, err)
		}
		return "", err
	}

	text = strings.TrimSpace(text)
	if text == "" {
		s.metrics.ObserveExtraction("empty")
		s.log.WithField("document", input.DocumentName).
			Info("reportService.Simplify: document has no extractable text")
		return "", nil
	}
	s.metrics.ObserveExtraction("ok")
	return text, nil
}
