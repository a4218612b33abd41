package service

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/Aashish23092/tds-challan-extractor/dto"
)

const ChallanSheet = "Challans"

// XLSXExporter renders a ResultTable as a workbook.
type XLSXExporter struct {
	logger *slog.Logger
}

func NewXLSXExporter(logger *slog.Logger) *XLSXExporter {
	if logger == nil {
		logger = slog.Default()
	}
	return &XLSXExporter{logger: logger}
}

// Export returns the workbook bytes. Every cell is written as a string so that
// amounts stay plain digit strings in spreadsheet tools.
func (e *XLSXExporter) Export(table *dto.ResultTable) ([]byte, error) {
	if table == nil {
		return nil, fmt.Errorf("export: nil result table")
	}
	start := time.Now()

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", ChallanSheet); err != nil {
		return nil, fmt.Errorf("rename sheet: %w", err)
	}
	index, err := f.GetSheetIndex(ChallanSheet)
	if err != nil {
		return nil, err
	}
	f.SetActiveSheet(index)

	for i, h := range table.Columns {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellStr(ChallanSheet, cell, h); err != nil {
			return nil, fmt.Errorf("write header %q: %w", h, err)
		}
	}

	for r, row := range table.Rows() {
		for c, v := range row {
			cell, _ := excelize.CoordinatesToCellName(c+1, r+2)
			if err := f.SetCellStr(ChallanSheet, cell, v); err != nil {
				return nil, fmt.Errorf("write cell %s: %w", cell, err)
			}
		}
	}

	e.setWidths(f, table.Columns)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx write: %w", err)
	}

	e.logger.Info("export.xlsx.ok",
		"run_id", table.RunID,
		"rows", len(table.Records),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return buf.Bytes(), nil
}

func (e *XLSXExporter) setWidths(f *excelize.File, columns []string) {
	for i, name := range columns {
		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			continue
		}
		width := 16.0
		switch name {
		case dto.FileColumn:
			width = 36
		case dto.ErrorColumn:
			width = 60
		}
		_ = f.SetColWidth(ChallanSheet, col, col, width)
	}
}
