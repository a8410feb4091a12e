package analyzer

// Thresholds configures the pre-flight quality checks
type Thresholds struct {
	// Laplacian variance at or below this is blurry
	BlurThreshold float64

	// Mean gray level bounds, 0-255
	MinBrightness float64
	MaxBrightness float64

	MinWidth  int
	MinHeight int

	// Absolute skew angle in degrees
	MaxSkewAngle float64

	SkipSkewDetection bool
}

// DefaultThresholds returns thresholds tuned for photographed or scanned text
func DefaultThresholds() Thresholds {
	return Thresholds{
		BlurThreshold: 100.0,
		MinBrightness: 60.0,
		MaxBrightness: 235.0,
		MinWidth:      300,
		MinHeight:     100,
		MaxSkewAngle:  5.0,

		// The regression estimate is noisy on multi-column layouts
		SkipSkewDetection: true,
	}
}

// WithBlurThreshold overrides the blur threshold
func (t Thresholds) WithBlurThreshold(blur float64) Thresholds {
	t.BlurThreshold = blur
	return t
}

// WithBrightnessRange overrides the accepted brightness range
func (t Thresholds) WithBrightnessRange(min, max float64) Thresholds {
	t.MinBrightness = min
	t.MaxBrightness = max
	return t
}

// WithSkewDetection enables the skew estimate, the slowest check
func (t Thresholds) WithSkewDetection(maxAngle float64) Thresholds {
	t.SkipSkewDetection = false
	t.MaxSkewAngle = maxAngle
	return t
}
