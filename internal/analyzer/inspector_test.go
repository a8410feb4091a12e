package analyzer

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestQualityInspector_Inspect(t *testing.T) {
	tests := []struct {
		name         string
		img          image.Image
		wantWarnings []string
	}{
		{
			name: "sharp well exposed page",
			img:  checkerboardRGBA(400, 200, 4, 40, 220),
		},
		{
			name: "uniform gray is blurry",
			img:  createTestImage(400, 200, color.RGBA{128, 128, 128, 255}),
			wantWarnings: []string{
				"Image appears blurry; OCR confidence may be reduced.",
			},
		},
		{
			name: "black small image",
			img:  createTestImage(50, 50, color.RGBA{0, 0, 0, 255}),
			wantWarnings: []string{
				"Image resolution is low; small text may not be recognized.",
				"Image appears blurry; OCR confidence may be reduced.",
				"Image is too dark; increase lighting or exposure.",
			},
		},
		{
			name: "white image",
			img:  createTestImage(400, 200, color.RGBA{255, 255, 255, 255}),
			wantWarnings: []string{
				"Image appears blurry; OCR confidence may be reduced.",
				"Image is too bright; text may be washed out.",
			},
		},
	}

	inspector := NewQualityInspector(DefaultThresholds())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			report := inspector.Inspect(tt.img)
			assert.Equal(t, tt.wantWarnings, report.Warnings())
			assert.Equal(t, tt.img.Bounds().Dx(), report.Width)
			assert.Equal(t, tt.img.Bounds().Dy(), report.Height)
		})
	}
}

func TestQualityInspector_EmptyImage(t *testing.T) {
	report := NewQualityInspector(DefaultThresholds()).Inspect(image.NewRGBA(image.Rect(0, 0, 0, 0)))
	assert.True(t, report.LowResolution)
	assert.False(t, report.Blurry)
}

func TestQualityInspector_ReusesPooledBuffer(t *testing.T) {
	inspector := NewQualityInspector(DefaultThresholds())

	big := inspector.Inspect(createTestImage(400, 200, color.RGBA{0, 0, 0, 255}))
	small := inspector.Inspect(createTestImage(350, 150, color.RGBA{255, 255, 255, 255}))

	assert.True(t, big.TooDark)
	assert.True(t, small.TooBright)
	assert.InDelta(t, 255.0, small.Brightness, 1e-9)
}

func TestQualityInspector_SkewDisabledByDefault(t *testing.T) {
	report := NewQualityInspector(DefaultThresholds()).Inspect(checkerboardRGBA(400, 200, 4, 40, 220))
	assert.Nil(t, report.SkewAngle)
	assert.False(t, report.Skewed)

	report = NewQualityInspector(DefaultThresholds().WithSkewDetection(5)).Inspect(checkerboardRGBA(400, 200, 4, 40, 220))
	assert.NotNil(t, report.SkewAngle)
}

func TestThresholdBuilders(t *testing.T) {
	th := DefaultThresholds().WithBlurThreshold(10).WithBrightnessRange(5, 250)
	assert.Equal(t, 10.0, th.BlurThreshold)
	assert.Equal(t, 5.0, th.MinBrightness)
	assert.Equal(t, 250.0, th.MaxBrightness)
	assert.True(t, th.SkipSkewDetection)
}

func checkerboardRGBA(width, height, square int, dark, light uint8) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			v := light
			if (x/square+y/square)%2 == 0 {
				v = dark
			}
			img.Set(x, y, color.RGBA{v, v, v, 255})
		}
	}
	return img
}
