// Package analyzer inspects decoded raster images before OCR and reports
// conditions that typically degrade recognition quality.
package analyzer

import "image"

// QualityInspector produces a pre-flight quality report for an image
type QualityInspector interface {
	Inspect(img image.Image) QualityReport
}

// MetricsCalculator handles image metrics computation
type MetricsCalculator interface {
	CalculateLaplacianVariance(gray *image.Gray) float64
	CalculateBrightness(gray *image.Gray) float64
	DetectSkew(gray *image.Gray) *float64
}

// QualityReport holds the measured values and the conditions derived from them
type QualityReport struct {
	Width        int
	Height       int
	LaplacianVar float64
	Brightness   float64
	SkewAngle    *float64

	Blurry        bool
	TooDark       bool
	TooBright     bool
	LowResolution bool
	Skewed        bool
}

// Warnings renders the failed checks as caller-facing messages, in a fixed order.
func (r QualityReport) Warnings() []string {
	var out []string
	if r.LowResolution {
		out = append(out, "Image resolution is low; small text may not be recognized.")
	}
	if r.Blurry {
		out = append(out, "Image appears blurry; OCR confidence may be reduced.")
	}
	if r.TooDark {
		out = append(out, "Image is too dark; increase lighting or exposure.")
	}
	if r.TooBright {
		out = append(out, "Image is too bright; text may be washed out.")
	}
	if r.Skewed {
		out = append(out, "Image appears skewed; straighten the document before scanning.")
	}
	return out
}
