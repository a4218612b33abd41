package handler

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Aashish23092/tds-challan-extractor/dto"
	"github.com/Aashish23092/tds-challan-extractor/service"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type ChallanHandler struct {
	challanService *service.ChallanService
	exporter       *service.XLSXExporter
	exportFilename string
	logger         *slog.Logger
}

func NewChallanHandler(challanService *service.ChallanService, exporter *service.XLSXExporter, exportFilename string, logger *slog.Logger) *ChallanHandler {
	if logger == nil {
		logger = slog.Default()
	}
	if exportFilename == "" {
		exportFilename = "TDS_Challan_Extracted_Data.xlsx"
	}
	return &ChallanHandler{
		challanService: challanService,
		exporter:       exporter,
		exportFilename: exportFilename,
		logger:         logger,
	}
}

// Extract handles POST /challans/extract and returns the result table as JSON.
func (h *ChallanHandler) Extract(c *gin.Context) {
	table, ok := h.runExtraction(c)
	if !ok {
		return
	}

	c.Header("X-Run-ID", table.RunID)
	c.JSON(http.StatusOK, dto.ExtractResponse{
		RunID:       table.RunID,
		Columns:     table.Columns,
		Records:     table.Records,
		Messages:    table.Notices(),
		ProcessedAt: time.Now().Format(time.RFC3339),
	})
}

// Export handles POST /challans/export and returns the result table as an XLSX download.
func (h *ChallanHandler) Export(c *gin.Context) {
	table, ok := h.runExtraction(c)
	if !ok {
		return
	}

	data, err := h.exporter.Export(table)
	if err != nil {
		h.sendError(c, http.StatusInternalServerError, "EXPORT_FAILED", "Failed to build spreadsheet", err)
		return
	}

	c.Header("X-Run-ID", table.RunID)
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, h.exportFilename))
	c.Data(http.StatusOK, xlsxContentType, data)
}

// runExtraction parses the upload and runs the batch. It writes the error
// response itself and reports false when the request cannot proceed.
func (h *ChallanHandler) runExtraction(c *gin.Context) (*dto.ResultTable, bool) {
	var request dto.ChallanUploadRequest
	form, err := c.MultipartForm()
	if err != nil && !errors.Is(err, http.ErrNotMultipart) {
		h.sendError(c, http.StatusBadRequest, "INVALID_UPLOAD", "Failed to parse multipart form", err)
		return nil, false
	}
	if form != nil {
		request.Files = form.File["files[]"]
		if len(request.Files) == 0 {
			request.Files = form.File["files"]
		}
	}
	request.Password = c.PostForm("password")

	if err := request.Validate(); err != nil {
		h.sendError(c, http.StatusBadRequest, "NO_FILES", "Please upload at least one PDF file.", nil)
		return nil, false
	}

	docs := make([]dto.UploadedDocument, 0, len(request.Files))
	for _, file := range request.Files {
		data, err := readUpload(file)
		if err != nil {
			h.sendError(c, http.StatusInternalServerError, "INVALID_UPLOAD", "Failed to read uploaded file", err)
			return nil, false
		}
		if mimeType := file.Header.Get("Content-Type"); mimeType != "" && !isPDFType(mimeType) && inferMimeType(file.Filename) != "application/pdf" {
			h.logger.Warn("upload is not labelled as pdf", "file", file.Filename, "content_type", mimeType)
		}
		docs = append(docs, dto.UploadedDocument{
			Name:     file.Filename,
			Data:     data,
			Password: request.Password,
		})
	}

	h.logger.Info("processing challan upload", "files", len(docs))

	table, err := h.challanService.ExtractBatch(c.Request.Context(), docs)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, dto.ErrNoDocuments) {
			status = http.StatusBadRequest
		}
		h.sendError(c, status, "EXTRACTION_FAILED", "Failed to extract challans", err)
		return nil, false
	}
	return table, true
}

func readUpload(file *multipart.FileHeader) ([]byte, error) {
	reader, err := file.Open()
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", file.Filename, err)
	}
	defer reader.Close()

	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", file.Filename, err)
	}
	return data, nil
}

// sendError sends a structured error response
func (h *ChallanHandler) sendError(c *gin.Context, statusCode int, code, message string, err error) {
	errorMsg := message
	if err != nil {
		errorMsg = err.Error()
		h.logger.Error(message, "error", err)
	}

	c.JSON(statusCode, dto.ErrorResponse{
		Error:   code,
		Message: errorMsg,
		Code:    statusCode,
	})
}

func isPDFType(mimeType string) bool {
	return strings.Contains(strings.ToLower(mimeType), "application/pdf")
}

// inferMimeType infers MIME type from file extension
func inferMimeType(filename string) string {
	if strings.HasSuffix(strings.ToLower(filename), ".pdf") {
		return "application/pdf"
	}
	return ""
}
