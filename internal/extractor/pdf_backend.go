package extractor

import (
	"bytes"
	"fmt"
	"io"

	"github.com/ledongthuc/pdf"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

// LedongthucReader extracts font-aware plain text with ledongthuc/pdf
type LedongthucReader struct{}

// NewLedongthucReader creates the default PDF text backend
func NewLedongthucReader() PageTextReader {
	return &LedongthucReader{}
}

// Name returns the backend name
func (r *LedongthucReader) Name() string {
	return "ledongthuc"
}

// PageTexts returns the plain text of every page
func (r *LedongthucReader) PageTexts(data []byte) (texts []string, err error) {
	// The parser panics on some malformed streams
	defer func() {
		if rec := recover(); rec != nil {
			texts = nil
			err = fmt.Errorf("pdf parser panic: %v", rec)
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("failed to open PDF: %w", err)
	}

	count := reader.NumPage()
	texts = make([]string, 0, count)
	for i := 1; i <= count; i++ {
		// Count comes from the page tree; stop where the kids run out
		page := reader.Page(i)
		if page.V.IsNull() {
			break
		}

		text, err := page.GetPlainText(nil)
		if err != nil {
			return nil, fmt.Errorf("failed to read page %d: %w", i, err)
		}
		texts = append(texts, text)
	}
	return texts, nil
}

// PDFCPUReader validates the document with pdfcpu and decodes text-showing
// operators from each page content stream
type PDFCPUReader struct{}

// NewPDFCPUReader creates the pdfcpu PDF text backend
func NewPDFCPUReader() PageTextReader {
	return &PDFCPUReader{}
}

// Name returns the backend name
func (r *PDFCPUReader) Name() string {
	return "pdfcpu"
}

// PageTexts returns the decoded text of every page
func (r *PDFCPUReader) PageTexts(data []byte) ([]string, error) {
	ctx, err := api.ReadValidateAndOptimize(bytes.NewReader(data), model.NewDefaultConfiguration())
	if err != nil {
		return nil, fmt.Errorf("pdfcpu read: %w", err)
	}

	texts := make([]string, 0, ctx.PageCount)
	for pageNr := 1; pageNr <= ctx.PageCount; pageNr++ {
		content, err := pdfcpu.ExtractPageContent(ctx, pageNr)
		if err != nil {
			return nil, fmt.Errorf("failed to read page %d: %w", pageNr, err)
		}
		if content == nil {
			texts = append(texts, "")
			continue
		}

		raw, err := io.ReadAll(content)
		if err != nil {
			return nil, fmt.Errorf("failed to read page %d: %w", pageNr, err)
		}
		texts = append(texts, TextFromContentStream(raw))
	}
	return texts, nil
}
