package handler

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"labsimplify/internal/domain"
	"labsimplify/internal/export"
	"labsimplify/internal/service"
)

// formOverhead is the allowance above the file limit for multipart boundaries and
// the pasted-text field.
const formOverhead = 1 << 20

// SimplifyHandler handles report simplification requests.
type SimplifyHandler struct {
	reportService service.ReportService
	maxBytes      int64
}

// NewSimplifyHandler creates a new SimplifyHandler. maxBytes bounds the uploaded file.
func NewSimplifyHandler(reportService service.ReportService, maxBytes int64) *SimplifyHandler {
	return &SimplifyHandler{reportService: reportService, maxBytes: maxBytes}
}

// Simplify handles POST /api/v1/simplify
// @Summary Simplify a lab report
// @Description Upload a PDF lab report and/or paste its text; returns a plain-language summary, per-value findings and safety cautions. A report the AI could not structure is still a 200 with an explanatory caution.
// @Tags simplify
// @Accept multipart/form-data
// @Accept json
// @Produce json
// @Produce text/csv
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param report formData file false "Lab report PDF"
// @Param reportText formData string false "Pasted report text"
// @Param body body SimplifyRequest false "JSON alternative to the multipart form"
// @Param format query string false "Response format" Enums(json, csv, xlsx) default(json)
// @Success 200 {object} Response{data=domain.SimplifiedReport} "Simplified report"
// @Failure 400 {object} ErrorResponseBody "No content, unreadable document, or unsupported format"
// @Failure 413 {object} ErrorResponseBody "File too large"
// @Failure 500 {object} ErrorResponseBody "Generation backend misconfigured"
// @Router /simplify [post]
func (h *SimplifyHandler) Simplify(c *gin.Context) {
	format, err := domain.ParseExportFormat(strings.ToLower(strings.TrimSpace(c.Query("format"))))
	if err != nil {
		HandleError(c, err)
		return
	}

	if h.maxBytes > 0 {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxBytes+formOverhead)
	}

	input, err := h.readInput(c)
	if err != nil {
		HandleError(c, err)
		return
	}

	report, err := h.reportService.Simplify(c.Request.Context(), input)
	if err != nil {
		HandleError(c, err)
		return
	}

	if format == domain.ExportJSON {
		RespondOK(c, report)
		return
	}

	var buf bytes.Buffer
	if err := export.Write(&buf, format, report); err != nil {
		HandleError(c, fmt.Errorf("rendering %s: %w", format, err))
		return
	}
	filename := export.BuildFilename(input.DocumentName, format)
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Data(http.StatusOK, export.ContentType(format), buf.Bytes())
}

// readInput accepts a JSON body {"reportText"} or a form carrying a "report" file
// and/or a "reportText" field. An undecodable JSON body counts as no content.
func (h *SimplifyHandler) readInput(c *gin.Context) (domain.ReportInput, error) {
	if c.ContentType() == gin.MIMEJSON {
		var req SimplifyRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			if isTooLarge(err) {
				return domain.ReportInput{}, domain.ErrFileTooLarge
			}
			return domain.ReportInput{}, nil
		}
		return domain.ReportInput{Text: req.ReportText}, nil
	}

	if err := c.Request.ParseMultipartForm(32 << 20); err != nil && !errors.Is(err, http.ErrNotMultipart) {
		if isTooLarge(err) {
			return domain.ReportInput{}, domain.ErrFileTooLarge
		}
		return domain.ReportInput{}, domain.ErrNoReportContent
	}

	input := domain.ReportInput{Text: c.PostForm("reportText")}

	file, header, err := c.Request.FormFile("report")
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
			return input, nil
		}
		return domain.ReportInput{}, domain.ErrNoReportContent
	}
	defer func() { _ = file.Close() }()

	if h.maxBytes > 0 && header.Size > h.maxBytes {
		return domain.ReportInput{}, domain.ErrFileTooLarge
	}
	data, err := io.ReadAll(file)
	if err != nil {
		return domain.ReportInput{}, fmt.Errorf("reading upload: %w", err)
	}
	input.Document = data
	input.DocumentName = header.Filename
	return input, nil
}

func isTooLarge(err error) bool {
	var mbErr *http.MaxBytesError
	if errors.As(err, &mbErr) {
		return true
	}
	return strings.Contains(err.Error(), "request body too large")
}
