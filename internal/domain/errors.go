package domain

import "errors"

var (
	ErrNoReportContent         = errors.New("no report content provided")
	ErrDocumentParse           = errors.New("document could not be parsed")
	ErrFileTooLarge            = errors.New("file exceeds maximum allowed size")
	ErrUnsupportedExportFormat = errors.New("unsupported export format")
	ErrMissingCredential       = errors.New("missing generation backend credential")
	ErrUnknownProvider         = errors.New("unknown generation provider")
)
