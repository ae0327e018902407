package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"labsimplify/internal/domain"
	"labsimplify/internal/logging"
	"labsimplify/internal/service"
	"labsimplify/internal/simplifier"
	"labsimplify/mocks"
)

const structuredOutput = `{"summary":"ok","findings":[],"cautions":["c"]}`

func setupReportService(maxBytes int64) (service.ReportService, *mocks.MockTextExtractor, *mocks.MockGenerationBackend) {
	extractor := new(mocks.MockTextExtractor)
	backend := new(mocks.MockGenerationBackend)
	simp := simplifier.New(backend, simplifier.WithLogger(logging.Discard()))
	svc := service.NewReportService(extractor, simp, maxBytes, nil, logging.Discard())
	return svc, extractor, backend
}

func promptFor(text string) string {
	return simplifier.BuildPrompt(text)
}

func TestReportService_Simplify_TextOnly(t *testing.T) {
	svc, extractor, backend := setupReportService(0)
	backend.On("Generate", mock.Anything, promptFor("Hemoglobin 10"), mock.Anything).Return(structuredOutput, nil)

	report, err := svc.Simplify(context.Background(), domain.ReportInput{Text: "  Hemoglobin 10 \n"})

	require.NoError(t, err)
	assert.Equal(t, "ok", report.Summary)
	extractor.AssertNotCalled(t, "ExtractText", mock.Anything)
	backend.AssertExpectations(t)
}

func TestReportService_Simplify_DocumentThenText(t *testing.T) {
	svc, extractor, backend := setupReportService(0)
	doc := []byte("%PDF-1.4 ...")
	extractor.On("ExtractText", doc).Return("  from pdf  ", nil)
	backend.On("Generate", mock.Anything, promptFor("from pdf\n\npasted"), mock.Anything).Return(structuredOutput, nil)

	_, err := svc.Simplify(context.Background(), domain.ReportInput{Document: doc, DocumentName: "r.pdf", Text: "pasted"})

	require.NoError(t, err)
	backend.AssertExpectations(t)
}

func TestReportService_Simplify_EmptyDocumentFallsBackToText(t *testing.T) {
	svc, extractor, backend := setupReportService(0)
	doc := []byte("scanned")
	extractor.On("ExtractText", doc).Return("", nil)
	backend.On("Generate", mock.Anything, promptFor("pasted"), mock.Anything).Return(structuredOutput, nil)

	_, err := svc.Simplify(context.Background(), domain.ReportInput{Document: doc, Text: "pasted"})

	require.NoError(t, err)
}

func TestReportService_Simplify_NoContent(t *testing.T) {
	svc, _, backend := setupReportService(0)

	_, err := svc.Simplify(context.Background(), domain.ReportInput{Text: "   \n\t"})

	assert.ErrorIs(t, err, domain.ErrNoReportContent)
	backend.AssertNotCalled(t, "Generate", mock.Anything, mock.Anything, mock.Anything)
}

func TestReportService_Simplify_ScannedDocumentOnly(t *testing.T) {
	svc, extractor, backend := setupReportService(0)
	doc := []byte("scanned")
	extractor.On("ExtractText", doc).Return("", nil)

	_, err := svc.Simplify(context.Background(), domain.ReportInput{Document: doc})

	assert.ErrorIs(t, err, domain.ErrNoReportContent)
	backend.AssertNotCalled(t, "Generate", mock.Anything, mock.Anything, mock.Anything)
}

func TestReportService_Simplify_ScenarioD_UnparseableDocument(t *testing.T) {
	svc, extractor, backend := setupReportService(0)
	doc := []byte("not a pdf")
	extractor.On("ExtractText", doc).Return("", errors.New("malformed header"))

	report, err := svc.Simplify(context.Background(), domain.ReportInput{Document: doc})

	assert.Nil(t, report)
	assert.ErrorIs(t, err, domain.ErrDocumentParse)
	backend.AssertNotCalled(t, "Generate", mock.Anything, mock.Anything, mock.Anything)
}

func TestReportService_Simplify_ParseErrorWinsOverText(t *testing.T) {
	svc, extractor, backend := setupReportService(0)
	doc := []byte("not a pdf")
	extractor.On("ExtractText", doc).Return("", domain.ErrDocumentParse)

	_, err := svc.Simplify(context.Background(), domain.ReportInput{Document: doc, Text: "pasted"})

	assert.ErrorIs(t, err, domain.ErrDocumentParse)
	backend.AssertNotCalled(t, "Generate", mock.Anything, mock.Anything, mock.Anything)
}

func TestReportService_Simplify_DocumentTooLarge(t *testing.T) {
	svc, extractor, _ := setupReportService(4)

	_, err := svc.Simplify(context.Background(), domain.ReportInput{Document: []byte("12345")})

	assert.ErrorIs(t, err, domain.ErrFileTooLarge)
	extractor.AssertNotCalled(t, "ExtractText", mock.Anything)
}

func TestReportService_Simplify_DegradedReportIsNotAnError(t *testing.T) {
	svc, _, backend := setupReportService(0)
	backend.On("Generate", mock.Anything, mock.Anything, mock.Anything).Return("", errors.New("503 Service Unavailable"))

	report, err := svc.Simplify(context.Background(), domain.ReportInput{Text: "text"})

	require.NoError(t, err)
	assert.Equal(t, simplifier.BackendErrorSummary, report.Summary)
	assert.Equal(t, []string{"503 Service Unavailable"}, report.Cautions)
}
