package dto

import "errors"

// Custom errors
var (
	ErrNoDocuments = errors.New("please upload at least one PDF file")
)

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Code    int    `json:"code"`
}

// ExtractResponse is returned by the extract endpoint
type ExtractResponse struct {
	RunID       string             `json:"run_id"`
	Columns     []string           `json:"columns"`
	Records     []ExtractionRecord `json:"records"`
	Messages    []string           `json:"messages"`
	ProcessedAt string             `json:"processed_at"`
}
