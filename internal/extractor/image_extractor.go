package extractor

import (
	"bytes"
	"context"
	"image"
	"image/draw"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/anime-shed/doc-insight-go/internal/analyzer"
	apperrors "github.com/anime-shed/doc-insight-go/internal/errors"
	"github.com/anime-shed/doc-insight-go/internal/logger"
	"github.com/anime-shed/doc-insight-go/internal/ocr"
	"github.com/anime-shed/doc-insight-go/pkg/models"
	"github.com/sirupsen/logrus"
)

// ImageExtractor runs OCR over a raster image. Every detected text region
// becomes a record on page 1 carrying the engine's confidence.
type ImageExtractor struct {
	engine    ocr.Engine
	inspector analyzer.QualityInspector
}

// ImageOption configures an ImageExtractor
type ImageOption func(*ImageExtractor)

// WithQualityInspector attaches pre-flight quality warnings to every result
func WithQualityInspector(inspector analyzer.QualityInspector) ImageOption {
	return func(e *ImageExtractor) {
		e.inspector = inspector
	}
}

// NewImageExtractor creates an image extractor using the shared OCR engine
func NewImageExtractor(engine ocr.Engine, opts ...ImageOption) *ImageExtractor {
	e := &ImageExtractor{engine: engine}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Extract decodes the image, checks its quality and recognizes its text
func (e *ImageExtractor) Extract(ctx context.Context, data []byte) (*models.ExtractionResult, error) {
	img, format, err := decodeRGBA(data)
	if err != nil {
		logger.WithField("size", len(data)).WithError(err).Error("Image decode failed")
		return nil, apperrors.NewDocumentProcessingError("Failed to decode image", err)
	}

	result := &models.ExtractionResult{FileKind: models.FileKindImage}
	if e.inspector != nil {
		result.Warnings = e.inspector.Inspect(img).Warnings()
	}

	detections, err := e.engine.Recognize(ctx, data)
	if err != nil {
		logger.WithFields(logrus.Fields{
			"engine": e.engine.Name(),
			"format": format,
		}).WithError(err).Error("OCR failed")
		return nil, apperrors.NewDocumentProcessingError("Failed to recognize text", err)
	}

	result.Pages = make([]models.PageRecord, 0, len(detections))
	for _, d := range detections {
		result.Pages = append(result.Pages, models.PageRecord{
			Text:       d.Text,
			PageNumber: 1,
			Confidence: ocr.Clamp01(d.Confidence),
		})
	}
	if len(result.Pages) == 0 {
		result.Pages = append(result.Pages, models.NoTextRecord(1))
	}

	logger.WithFields(logrus.Fields{
		"format":   format,
		"width":    img.Bounds().Dx(),
		"height":   img.Bounds().Dy(),
		"regions":  len(detections),
		"warnings": len(result.Warnings),
	}).Debug("Image extracted")

	return result, nil
}

// decodeRGBA decodes any registered raster format onto an RGBA canvas
func decodeRGBA(data []byte) (*image.RGBA, string, error) {
	src, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, "", err
	}
	if rgba, ok := src.(*image.RGBA); ok {
		return rgba, format, nil
	}

	bounds := src.Bounds()
	rgba := image.NewRGBA(bounds)
	draw.Draw(rgba, bounds, src, bounds.Min, draw.Src)
	return rgba, format, nil
}
