package extractor

import (
	"context"
	"errors"
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/anime-shed/doc-insight-go/internal/analyzer"
	apperrors "github.com/anime-shed/doc-insight-go/internal/errors"
	"github.com/anime-shed/doc-insight-go/internal/mocks"
	"github.com/anime-shed/doc-insight-go/internal/ocr"
	"github.com/anime-shed/doc-insight-go/pkg/models"
)

func TestImageExtractor_Extract(t *testing.T) {
	tests := []struct {
		name       string
		detections []ocr.Detection
		want       []models.PageRecord
	}{
		{
			name: "one record per region",
			detections: []ocr.Detection{
				{Bounds: image.Rect(0, 0, 100, 20), Text: "Hello", Confidence: 0.93},
				{Bounds: image.Rect(0, 30, 100, 50), Text: "World", Confidence: 0.71},
			},
			want: []models.PageRecord{
				{Text: "Hello", PageNumber: 1, Confidence: 0.93},
				{Text: "World", PageNumber: 1, Confidence: 0.71},
			},
		},
		{
			name: "confidence clamped",
			detections: []ocr.Detection{
				{Text: "over", Confidence: 1.7},
				{Text: "under", Confidence: -0.2},
			},
			want: []models.PageRecord{
				{Text: "over", PageNumber: 1, Confidence: 1.0},
				{Text: "under", PageNumber: 1, Confidence: 0.0},
			},
		},
		{
			name: "no regions yields sentinel",
			want: []models.PageRecord{models.NoTextRecord(1)},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			engine := mocks.NewMockEngine(ctrl)
			data := encodePNG(t, 40, 20, color.White)

			engine.EXPECT().Recognize(gomock.Any(), data).Return(tt.detections, nil)
			engine.EXPECT().Name().Return("mock").AnyTimes()

			result, err := NewImageExtractor(engine).Extract(context.Background(), data)
			require.NoError(t, err)
			assert.Equal(t, models.FileKindImage, result.FileKind)
			assert.Equal(t, tt.want, result.Pages)
			assert.Empty(t, result.Warnings)
		})
	}
}

func TestImageExtractor_UndecodableSkipsOCR(t *testing.T) {
	ctrl := gomock.NewController(t)
	engine := mocks.NewMockEngine(ctrl)

	result, err := NewImageExtractor(engine).Extract(context.Background(), []byte("not an image"))
	assert.Nil(t, result)
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeProcessing))
}

func TestImageExtractor_OCRFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	engine := mocks.NewMockEngine(ctrl)
	engine.EXPECT().Recognize(gomock.Any(), gomock.Any()).Return(nil, errors.New("tessdata missing"))
	engine.EXPECT().Name().Return("mock").AnyTimes()

	_, err := NewImageExtractor(engine).Extract(context.Background(), encodePNG(t, 10, 10, color.Black))
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeProcessing))
	assert.ErrorContains(t, err, "tessdata missing")
}

func TestImageExtractor_QualityWarnings(t *testing.T) {
	ctrl := gomock.NewController(t)
	engine := mocks.NewMockEngine(ctrl)
	engine.EXPECT().Recognize(gomock.Any(), gomock.Any()).Return([]ocr.Detection{{Text: "dim", Confidence: 0.4}}, nil)
	engine.EXPECT().Name().Return("mock").AnyTimes()

	e := NewImageExtractor(engine, WithQualityInspector(analyzer.NewQualityInspector(analyzer.DefaultThresholds())))
	result, err := e.Extract(context.Background(), encodePNG(t, 50, 50, color.Black))
	require.NoError(t, err)

	// Warnings never change the records
	assert.Equal(t, []models.PageRecord{{Text: "dim", PageNumber: 1, Confidence: 0.4}}, result.Pages)
	assert.Contains(t, result.Warnings, "Image is too dark; increase lighting or exposure.")
	assert.Contains(t, result.Warnings, "Image resolution is low; small text may not be recognized.")
}

func TestDecodeRGBA_Formats(t *testing.T) {
	img, format, err := decodeRGBA(encodePNG(t, 8, 4, color.Gray{Y: 128}))
	require.NoError(t, err)
	assert.Equal(t, "png", format)
	assert.Equal(t, image.Rect(0, 0, 8, 4), img.Bounds())

	_, _, err = decodeRGBA(nil)
	assert.Error(t, err)
}
