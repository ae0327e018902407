package handler_test

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"labsimplify/internal/domain"
	"labsimplify/internal/export"
	"labsimplify/internal/handler"
	"labsimplify/mocks"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func strPtr(s string) *string { return &s }

func sampleReport() *domain.SimplifiedReport {
	report := domain.NewSimplifiedReport("Hemoglobin is slightly low.")
	report.Findings = []domain.SimplifiedFinding{
		{Name: "Hemoglobin", Value: strPtr("10 g/dL"), Status: strPtr("low"), Explanation: "Carries oxygen."},
	}
	report.Cautions = []string{"See a doctor if symptomatic."}
	return &report
}

func multipartBody(t *testing.T, fileName string, file []byte, text string) (*bytes.Buffer, string) {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	if file != nil {
		fw, err := mw.CreateFormFile("report", fileName)
		require.NoError(t, err)
		_, err = fw.Write(file)
		require.NoError(t, err)
	}
	if text != "" {
		require.NoError(t, mw.WriteField("reportText", text))
	}
	require.NoError(t, mw.Close())
	return &body, mw.FormDataContentType()
}

func serve(h *handler.SimplifyHandler, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = req
	h.Simplify(c)
	return w
}

func decodeResponse(t *testing.T, w *httptest.ResponseRecorder) handler.APIResponse {
	t.Helper()
	var resp handler.APIResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func TestSimplify_MultipartFileAndText(t *testing.T) {
	svc := new(mocks.MockReportService)
	h := handler.NewSimplifyHandler(svc, 20<<20)

	pdf := []byte("%PDF-1.4 fake")
	svc.On("Simplify", mock.Anything, domain.ReportInput{Document: pdf, DocumentName: "labs.pdf", Text: "pasted"}).
		Return(sampleReport(), nil)

	body, ct := multipartBody(t, "labs.pdf", pdf, "pasted")
	req := httptest.NewRequest(http.MethodPost, "/api/v1/simplify", body)
	req.Header.Set("Content-Type", ct)

	w := serve(h, req)

	assert.Equal(t, http.StatusOK, w.Code)
	resp := decodeResponse(t, w)
	assert.True(t, resp.Success)
	data := resp.Data.(map[string]interface{})
	assert.Equal(t, "Hemoglobin is slightly low.", data["summary"])
	assert.Len(t, data["findings"], 1)
	assert.NotContains(t, data, "rawTextSnippet")
	svc.AssertExpectations(t)
}

func TestSimplify_JSONBody(t *testing.T) {
	svc := new(mocks.MockReportService)
	h := handler.NewSimplifyHandler(svc, 20<<20)
	svc.On("Simplify", mock.Anything, domain.ReportInput{Text: "Hemoglobin 10"}).Return(sampleReport(), nil)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/simplify", strings.NewReader(`{"reportText":"Hemoglobin 10"}`))
	req.Header.Set("Content-Type", "application/json")

	w := serve(h, req)

	assert.Equal(t, http.StatusOK, w.Code)
	svc.AssertExpectations(t)
}

func TestSimplify_NoContent(t *testing.T) {
	svc := new(mocks.MockReportService)
	h := handler.NewSimplifyHandler(svc, 20<<20)
	svc.On("Simplify", mock.Anything, domain.ReportInput{}).Return(nil, domain.ErrNoReportContent)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/simplify", strings.NewReader(`not json`))
	req.Header.Set("Content-Type", "application/json")

	w := serve(h, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	resp := decodeResponse(t, w)
	assert.False(t, resp.Success)
	assert.Equal(t, "NO_REPORT_CONTENT", resp.Error.Code)
}

func TestSimplify_DocumentParseFailed(t *testing.T) {
	svc := new(mocks.MockReportService)
	h := handler.NewSimplifyHandler(svc, 20<<20)
	svc.On("Simplify", mock.Anything, mock.Anything).Return(nil, domain.ErrDocumentParse)

	body, ct := multipartBody(t, "x.pdf", []byte("garbage"), "")
	req := httptest.NewRequest(http.MethodPost, "/api/v1/simplify", body)
	req.Header.Set("Content-Type", ct)

	w := serve(h, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "DOCUMENT_PARSE_FAILED", decodeResponse(t, w).Error.Code)
}

func TestSimplify_FileTooLarge(t *testing.T) {
	svc := new(mocks.MockReportService)
	h := handler.NewSimplifyHandler(svc, 16)

	body, ct := multipartBody(t, "big.pdf", bytes.Repeat([]byte("x"), 64), "")
	req := httptest.NewRequest(http.MethodPost, "/api/v1/simplify", body)
	req.Header.Set("Content-Type", ct)

	w := serve(h, req)

	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
	assert.Equal(t, "FILE_TOO_LARGE", decodeResponse(t, w).Error.Code)
	svc.AssertNotCalled(t, "Simplify", mock.Anything, mock.Anything)
}

func TestSimplify_UnsupportedFormat(t *testing.T) {
	svc := new(mocks.MockReportService)
	h := handler.NewSimplifyHandler(svc, 20<<20)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/simplify?format=pdf", strings.NewReader(`{"reportText":"x"}`))
	req.Header.Set("Content-Type", "application/json")

	w := serve(h, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "UNSUPPORTED_FORMAT", decodeResponse(t, w).Error.Code)
	svc.AssertNotCalled(t, "Simplify", mock.Anything, mock.Anything)
}

func TestSimplify_CSVExport(t *testing.T) {
	svc := new(mocks.MockReportService)
	h := handler.NewSimplifyHandler(svc, 20<<20)
	svc.On("Simplify", mock.Anything, mock.Anything).Return(sampleReport(), nil)

	body, ct := multipartBody(t, "Blood Panel.pdf", []byte("%PDF"), "")
	req := httptest.NewRequest(http.MethodPost, "/api/v1/simplify?format=csv", body)
	req.Header.Set("Content-Type", ct)

	w := serve(h, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "text/csv; charset=utf-8", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), `filename="Blood_Panel_`)

	data := w.Body.Bytes()
	require.True(t, bytes.HasPrefix(data, export.BOM))
	rows, err := csv.NewReader(bytes.NewReader(data[len(export.BOM):])).ReadAll()
	require.NoError(t, err)
	assert.Len(t, rows, 4)
}

func TestSimplify_XLSXExport(t *testing.T) {
	svc := new(mocks.MockReportService)
	h := handler.NewSimplifyHandler(svc, 20<<20)
	svc.On("Simplify", mock.Anything, mock.Anything).Return(sampleReport(), nil)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/simplify?format=XLSX", strings.NewReader(`{"reportText":"x"}`))
	req.Header.Set("Content-Type", "application/json")

	w := serve(h, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "spreadsheetml")
	assert.Contains(t, w.Header().Get("Content-Disposition"), "lab_report_")
	assert.True(t, bytes.HasPrefix(w.Body.Bytes(), []byte("PK")))
}

func TestSimplify_MissingCredential(t *testing.T) {
	svc := new(mocks.MockReportService)
	h := handler.NewSimplifyHandler(svc, 20<<20)
	svc.On("Simplify", mock.Anything, mock.Anything).
		Return(nil, domain.ErrMissingCredential)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/simplify", strings.NewReader(`{"reportText":"x"}`))
	req.Header.Set("Content-Type", "application/json")

	w := serve(h, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "MISSING_CREDENTIAL", decodeResponse(t, w).Error.Code)
}
