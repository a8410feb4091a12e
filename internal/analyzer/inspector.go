package analyzer

import (
	"image"
	"image/draw"
	"math"
	"sync"
)

// qualityInspector implements QualityInspector on top of a MetricsCalculator
type qualityInspector struct {
	thresholds        Thresholds
	metricsCalculator MetricsCalculator
	grayPool          sync.Pool
}

// NewQualityInspector creates an inspector with the given thresholds
func NewQualityInspector(thresholds Thresholds) QualityInspector {
	return &qualityInspector{
		thresholds:        thresholds,
		metricsCalculator: NewMetricsCalculator(),
		grayPool: sync.Pool{
			New: func() interface{} {
				return &image.Gray{}
			},
		},
	}
}

// Inspect measures sharpness, exposure, resolution and skew.
func (qi *qualityInspector) Inspect(img image.Image) QualityReport {
	bounds := img.Bounds()
	report := QualityReport{Width: bounds.Dx(), Height: bounds.Dy()}
	if report.Width == 0 || report.Height == 0 {
		report.LowResolution = true
		return report
	}

	// Convert to grayscale for analysis
	gray := qi.grayPool.Get().(*image.Gray)
	defer qi.grayPool.Put(gray)
	if cap(gray.Pix) < report.Width*report.Height {
		*gray = *image.NewGray(bounds)
	} else {
		gray.Pix = gray.Pix[:report.Width*report.Height]
		gray.Stride = report.Width
		gray.Rect = bounds
	}
	draw.Draw(gray, bounds, img, bounds.Min, draw.Src)

	report.LaplacianVar = qi.metricsCalculator.CalculateLaplacianVariance(gray)
	report.Blurry = report.LaplacianVar <= qi.thresholds.BlurThreshold

	report.Brightness = qi.metricsCalculator.CalculateBrightness(gray)
	report.TooDark = report.Brightness < qi.thresholds.MinBrightness
	report.TooBright = report.Brightness > qi.thresholds.MaxBrightness

	report.LowResolution = report.Width < qi.thresholds.MinWidth || report.Height < qi.thresholds.MinHeight

	if !qi.thresholds.SkipSkewDetection {
		if angle := qi.metricsCalculator.DetectSkew(gray); angle != nil {
			report.SkewAngle = angle
			report.Skewed = math.Abs(*angle) > qi.thresholds.MaxSkewAngle
		}
	}

	return report
}
