// Package tesseract binds the in-process tesseract API (via gosseract) to ocr.Engine.
// It requires cgo and the tesseract/leptonica development libraries.
package tesseract

import (
	"context"
	"fmt"
	"strings"

	"github.com/anime-shed/doc-insight-go/internal/ocr"

	"github.com/otiai10/gosseract/v2"
)

// Config configures the gosseract client
type Config struct {
	Language    string
	TessdataDir string
}

// Engine recognizes text lines with a single long-lived gosseract client.
// A client is not safe for concurrent use; wrap it with ocr.NewSerialized.
type Engine struct {
	client *gosseract.Client
}

// New initializes the tesseract model. This is the expensive step and should
// happen once per process.
func New(cfg Config) (*Engine, error) {
	client := gosseract.NewClient()
	lang := cfg.Language
	if lang == "" {
		lang = "eng"
	}
	if err := client.SetLanguage(strings.Split(lang, "+")...); err != nil {
		client.Close()
		return nil, fmt.Errorf("set language %q: %w", lang, err)
	}
	if cfg.TessdataDir != "" {
		if err := client.SetTessdataPrefix(cfg.TessdataDir); err != nil {
			client.Close()
			return nil, fmt.Errorf("set tessdata prefix: %w", err)
		}
	}
	return &Engine{client: client}, nil
}

func (e *Engine) Name() string { return "gosseract" }

// Recognize returns one detection per text line.
func (e *Engine) Recognize(_ context.Context, data []byte) ([]ocr.Detection, error) {
	if err := e.client.SetImageFromBytes(data); err != nil {
		return nil, fmt.Errorf("load image: %w", err)
	}
	boxes, err := e.client.GetBoundingBoxes(gosseract.RIL_TEXTLINE)
	if err != nil {
		return nil, fmt.Errorf("recognize: %w", err)
	}

	detections := make([]ocr.Detection, 0, len(boxes))
	for _, b := range boxes {
		text := strings.TrimSpace(b.Word)
		if text == "" {
			continue
		}
		detections = append(detections, ocr.Detection{
			Bounds:     b.Box,
			Text:       text,
			Confidence: ocr.NormalizeConfidence(b.Confidence),
		})
	}
	return detections, nil
}

func (e *Engine) Close() error {
	return e.client.Close()
}
