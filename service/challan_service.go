package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/Aashish23092/tds-challan-extractor/dto"
	"github.com/Aashish23092/tds-challan-extractor/metrics"
	"github.com/Aashish23092/tds-challan-extractor/utils"
)

type ChallanServiceConfig struct {
	DocumentTimeout time.Duration
	Workers         int
}

type ChallanService struct {
	pdfProcessor PDFProcessor
	cfg          ChallanServiceConfig
	logger       *slog.Logger
}

func NewChallanService(pdfProcessor PDFProcessor, cfg ChallanServiceConfig, logger *slog.Logger) *ChallanService {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.Workers < 1 {
		cfg.Workers = 1
	}
	if cfg.DocumentTimeout <= 0 {
		cfg.DocumentTimeout = 30 * time.Second
	}
	return &ChallanService{
		pdfProcessor: pdfProcessor,
		cfg:          cfg,
		logger:       logger,
	}
}

// ExtractBatch processes every document and returns one record per document in
// upload order. A failing document becomes an error record; the batch carries on.
func (s *ChallanService) ExtractBatch(ctx context.Context, docs []dto.UploadedDocument) (*dto.ResultTable, error) {
	if len(docs) == 0 {
		return nil, dto.ErrNoDocuments
	}

	runID := uuid.NewString()
	start := time.Now()
	log := s.logger.With("run_id", runID)
	log.Info("challan.batch.start", "documents", len(docs), "workers", s.cfg.Workers)
	metrics.CaptureBatch(len(docs))

	records := make([]dto.ExtractionRecord, len(docs))

	if s.cfg.Workers == 1 {
		for i, doc := range docs {
			records[i] = s.ProcessDocument(ctx, doc)
		}
	} else {
		// Each goroutine owns one slot of records, so order is kept without locking.
		g := new(errgroup.Group)
		g.SetLimit(s.cfg.Workers)
		for i, doc := range docs {
			g.Go(func() error {
				records[i] = s.ProcessDocument(ctx, doc)
				return nil
			})
		}
		_ = g.Wait()
	}

	table := dto.NewResultTable(utils.ChallanFieldNames(), records)
	table.RunID = runID
	log.Info("challan.batch.ok",
		"documents", len(records),
		"failures", table.Failures(),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return table, nil
}

// ProcessDocument normalizes and extracts a single challan. It never returns an error:
// failures are folded into the record.
func (s *ChallanService) ProcessDocument(ctx context.Context, doc dto.UploadedDocument) dto.ExtractionRecord {
	start := time.Now()

	docCtx, cancel := context.WithTimeout(ctx, s.cfg.DocumentTimeout)
	defer cancel()

	text, err := s.pdfProcessor.ExtractText(docCtx, doc)
	if err != nil {
		metrics.CaptureDocument(metrics.StatusError, time.Since(start))
		s.logger.Error("challan.document.failed", "file", doc.Name, "error", err)
		// The record carries the file name already; keep only the cause.
		var docErr *DocumentProcessingError
		if errors.As(err, &docErr) && docErr.Err != nil {
			err = docErr.Err
		}
		return dto.NewErrorRecord(doc.Name, err)
	}

	fields := utils.ExtractChallanFields(text)
	metrics.CaptureDocument(metrics.StatusOK, time.Since(start))
	s.logger.Debug("challan.document.ok", "file", doc.Name, "text_bytes", len(text))
	return dto.NewFieldRecord(doc.Name, fields)
}
