//go:generate go run go.uber.org/mock/mockgen -source=engine.go -destination=../mocks/mock_ocr_engine.go -package=mocks

// Package ocr holds the text-recognition capability handed to the image extractor.
package ocr

import (
	"context"
	"image"
	"math"
	"sync"
)

// Detection is one text region found by an engine.
type Detection struct {
	// Region geometry, unused by the extraction pipeline
	Bounds image.Rectangle
	Text   string
	// Normalized to [0, 1]
	Confidence float64
}

// Engine recognizes text regions in encoded image bytes.
type Engine interface {
	Recognize(ctx context.Context, data []byte) ([]Detection, error)
	Name() string
	Close() error
}

// Serialized wraps an engine that is not safe for concurrent use so that at most
// one recognition runs at a time.
type Serialized struct {
	mu     sync.Mutex
	engine Engine
}

// NewSerialized returns engine guarded by a single-slot lock
func NewSerialized(engine Engine) *Serialized {
	return &Serialized{engine: engine}
}

func (s *Serialized) Recognize(ctx context.Context, data []byte) ([]Detection, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.engine.Recognize(ctx, data)
}

func (s *Serialized) Name() string {
	return s.engine.Name()
}

func (s *Serialized) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.engine.Close()
}

// Clamp01 bounds a confidence into [0, 1]. NaN maps to 0.
func Clamp01(v float64) float64 {
	switch {
	case v < 0 || math.IsNaN(v):
		return 0
	case v > 1:
		return 1
	}
	return v
}

// NormalizeConfidence converts a tesseract 0..100 score into [0, 1].
func NormalizeConfidence(percent float64) float64 {
	return Clamp01(percent / 100.0)
}
