package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"

	"github.com/Aashish23092/tds-challan-extractor/dto"
	"github.com/Aashish23092/tds-challan-extractor/utils"
)

func init() {
	// pdfcpu must not create a config dir under $HOME for a server process.
	api.DisableConfigDir()
}

// PDFProcessor turns an uploaded PDF into flattened text ready for field matching.
type PDFProcessor interface {
	ExtractText(ctx context.Context, doc dto.UploadedDocument) (string, error)
}

type pdfProcessor struct {
	strict bool
}

// NewPDFProcessor returns the ledongthuc/pdf backed processor. With strict set,
// documents are validated by pdfcpu before text extraction.
func NewPDFProcessor(strict bool) PDFProcessor {
	return &pdfProcessor{strict: strict}
}

// ExtractText returns the whitespace-collapsed text of every page. Failures,
// including a cancelled or expired ctx, come back as *DocumentProcessingError.
func (p *pdfProcessor) ExtractText(ctx context.Context, doc dto.UploadedDocument) (string, error) {
	if len(doc.Data) == 0 {
		return "", &DocumentProcessingError{Name: doc.Name, Err: ErrEmptyDocument}
	}
	if err := ctx.Err(); err != nil {
		return "", contextError(doc.Name, err)
	}

	type result struct {
		text string
		err  error
	}
	resChan := make(chan result, 1)

	go func() {
		text, err := p.extract(doc.Data, doc.Password)
		resChan <- result{text, err}
	}()

	select {
	case r := <-resChan:
		if r.err != nil {
			return "", &DocumentProcessingError{Name: doc.Name, Err: r.err}
		}
		return utils.NormalizeText(r.text), nil
	case <-ctx.Done():
		return "", contextError(doc.Name, ctx.Err())
	}
}

func contextError(name string, err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		err = fmt.Errorf("%w: %w", ErrDocumentTimeout, err)
	}
	return &DocumentProcessingError{Name: name, Err: err}
}

// extract runs on its own goroutine; ledongthuc/pdf panics on some broken
// object streams so the panic is turned into an error here.
func (p *pdfProcessor) extract(pdfData []byte, password string) (text string, err error) {
	defer func() {
		if r := recover(); r != nil {
			text = ""
			err = fmt.Errorf("malformed pdf: %v", r)
		}
	}()

	if p.strict {
		if err := validatePDF(pdfData); err != nil {
			return "", err
		}
	}

	if password != "" {
		pdfData, err = decryptPDF(pdfData, password)
		if err != nil {
			return "", err
		}
	}

	r, err := pdf.NewReader(bytes.NewReader(pdfData), int64(len(pdfData)))
	if err != nil {
		return "", fmt.Errorf("failed to open pdf: %w", err)
	}

	var textBuilder strings.Builder
	totalPage := r.NumPage()

	for pageIndex := 1; pageIndex <= totalPage; pageIndex++ {
		page := r.Page(pageIndex)
		if page.V.IsNull() {
			continue
		}

		textBuilder.WriteString(pageText(page.Content().Text))
		textBuilder.WriteString("\n")
	}
	return textBuilder.String(), nil
}

// wordGap is the horizontal jump, in ems, that separates two runs on one line.
const wordGap = 0.25

// pageText rebuilds reading lines from positioned glyphs in content-stream order.
// A baseline change starts a new line and a horizontal jump becomes a space, so
// runs placed with Td, TD, Tm or TJ offsets never run into each other.
func pageText(glyphs []pdf.Text) string {
	var b strings.Builder
	for i, g := range glyphs {
		if i > 0 {
			prev := glyphs[i-1]
			size := math.Max(math.Abs(prev.FontSize), 1)
			gap := g.X - (prev.X + prev.W)
			switch {
			case math.Abs(g.Y-prev.Y) > size/2:
				b.WriteByte('\n')
			case gap > size*wordGap || gap < -size:
				b.WriteByte(' ')
			}
		}
		b.WriteString(g.S)
	}
	return b.String()
}

func validatePDF(pdfData []byte) error {
	conf := model.NewDefaultConfiguration()
	if err := api.Validate(bytes.NewReader(pdfData), conf); err != nil {
		return fmt.Errorf("pdf validation failed: %w", err)
	}
	return nil
}

func decryptPDF(pdfData []byte, password string) ([]byte, error) {
	conf := model.NewDefaultConfiguration()
	conf.UserPW = password
	conf.OwnerPW = password

	var out bytes.Buffer
	if err := api.Decrypt(bytes.NewReader(pdfData), &out, conf); err != nil {
		// A batch-wide password is also applied to challans that were never encrypted.
		if strings.Contains(err.Error(), "not encrypted") {
			return pdfData, nil
		}
		return nil, fmt.Errorf("failed to decrypt pdf: %w", err)
	}
	return out.Bytes(), nil
}
