package extractor

import (
	"context"
	"strings"

	"github.com/gabriel-vasile/mimetype"

	apperrors "github.com/anime-shed/doc-insight-go/internal/errors"
	"github.com/anime-shed/doc-insight-go/internal/logger"
	"github.com/anime-shed/doc-insight-go/pkg/models"
	"github.com/sirupsen/logrus"
)

const pdfContentType = "application/pdf"

// Dispatcher routes a document to the extractor for its declared content type
type Dispatcher struct {
	pdf   Extractor
	image Extractor

	// When set, the declared type must agree with the magic bytes
	sniff bool
}

// NewDispatcher creates a dispatcher over the PDF and image extractors
func NewDispatcher(pdf, image Extractor, sniffContentType bool) *Dispatcher {
	return &Dispatcher{pdf: pdf, image: image, sniff: sniffContentType}
}

// Kind maps a content type to the file kind that handles it
func Kind(contentType string) (models.FileKind, bool) {
	switch {
	case contentType == pdfContentType:
		return models.FileKindPDF, true
	case strings.HasPrefix(contentType, "image/"):
		return models.FileKindImage, true
	}
	return "", false
}

// Dispatch extracts the document, or fails with an unsupported file type error
// before any extractor runs.
func (d *Dispatcher) Dispatch(ctx context.Context, data []byte, contentType string) (*models.ExtractionResult, error) {
	kind, ok := Kind(contentType)
	if !ok {
		return nil, apperrors.NewUnsupportedFileTypeError(contentType)
	}

	if d.sniff {
		detected := mimetype.Detect(data)
		if detectedKind, ok := Kind(detected.String()); !ok || detectedKind != kind {
			logger.WithFields(logrus.Fields{
				"declared": contentType,
				"detected": detected.String(),
			}).Warn("Content type does not match content")
			return nil, apperrors.NewUnsupportedFileTypeError(contentType)
		}
	}

	if kind == models.FileKindPDF {
		return d.pdf.Extract(ctx, data)
	}
	return d.image.Extract(ctx, data)
}
