package extractor

import (
	"context"
	"strings"

	apperrors "github.com/anime-shed/doc-insight-go/internal/errors"
	"github.com/anime-shed/doc-insight-go/internal/logger"
	"github.com/anime-shed/doc-insight-go/pkg/models"
	"github.com/sirupsen/logrus"
)

// PDFExtractor reads the embedded text layer of a PDF, one record per page.
// A page with text scores 1.0; a page without text gets the sentinel record.
type PDFExtractor struct {
	reader PageTextReader
}

// NewPDFExtractor creates a PDF extractor on top of the given text backend
func NewPDFExtractor(reader PageTextReader) *PDFExtractor {
	return &PDFExtractor{reader: reader}
}

// Extract parses the document and returns its pages in order
func (e *PDFExtractor) Extract(ctx context.Context, data []byte) (*models.ExtractionResult, error) {
	texts, err := e.reader.PageTexts(data)
	if err != nil {
		logger.WithFields(logrus.Fields{
			"backend": e.reader.Name(),
			"size":    len(data),
		}).WithError(err).Error("PDF parse failed")
		return nil, apperrors.NewDocumentProcessingError("Failed to process PDF", err)
	}

	pages := make([]models.PageRecord, 0, len(texts))
	for i, text := range texts {
		if strings.TrimSpace(text) == "" {
			pages = append(pages, models.NoTextRecord(i+1))
			continue
		}
		pages = append(pages, models.PageRecord{
			Text:       text,
			PageNumber: i + 1,
			Confidence: 1.0,
		})
	}

	if len(pages) == 0 {
		pages = append(pages, models.NoTextRecord(1))
	}

	return &models.ExtractionResult{
		FileKind: models.FileKindPDF,
		Pages:    pages,
	}, nil
}
