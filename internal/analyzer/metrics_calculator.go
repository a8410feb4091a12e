package analyzer

import (
	"image"
	"math"
	"runtime"
	"sync"

	"gonum.org/v1/gonum/stat"
)

// Images smaller than this are processed on the calling goroutine
const parallelPixelThreshold = 100000

// metricsCalculator implements MetricsCalculator with Gonum statistics
type metricsCalculator struct {
	slicePool sync.Pool
}

// NewMetricsCalculator creates a new metrics calculator
func NewMetricsCalculator() MetricsCalculator {
	return &metricsCalculator{
		slicePool: sync.Pool{
			New: func() interface{} {
				return make([]float64, 0, 1024)
			},
		},
	}
}

// forEachStrip splits [minY, maxY) into horizontal strips and runs fn on each in parallel.
func forEachStrip(minY, maxY, pixels int, fn func(startY, endY int)) {
	height := maxY - minY
	workers := runtime.NumCPU()
	if pixels < parallelPixelThreshold || height < workers {
		workers = 1
	}
	rows := (height + workers - 1) / workers

	var wg sync.WaitGroup
	for start := minY; start < maxY; start += rows {
		end := start + rows
		if end > maxY {
			end = maxY
		}
		wg.Add(1)
		go func(start, end int) {
			defer wg.Done()
			fn(start, end)
		}(start, end)
	}
	wg.Wait()
}

// CalculateLaplacianVariance returns the variance of the 4-neighbour Laplacian,
// a standard sharpness measure: low values mean few edges.
func (mc *metricsCalculator) CalculateLaplacianVariance(gray *image.Gray) float64 {
	b := gray.Bounds()
	width, height := b.Dx(), b.Dy()
	if width < 3 || height < 3 {
		return 0
	}

	data := mc.slicePool.Get().([]float64)[:0]
	defer func() { mc.slicePool.Put(data[:0]) }()

	for y := b.Min.Y + 1; y < b.Max.Y-1; y++ {
		for x := b.Min.X + 1; x < b.Max.X-1; x++ {
			lap := -4*float64(gray.GrayAt(x, y).Y) +
				float64(gray.GrayAt(x, y-1).Y) +
				float64(gray.GrayAt(x, y+1).Y) +
				float64(gray.GrayAt(x-1, y).Y) +
				float64(gray.GrayAt(x+1, y).Y)
			data = append(data, lap)
		}
	}
	return stat.Variance(data, nil)
}

// CalculateBrightness returns the mean gray level, 0-255
func (mc *metricsCalculator) CalculateBrightness(gray *image.Gray) float64 {
	b := gray.Bounds()
	pixels := b.Dx() * b.Dy()
	if pixels == 0 {
		return 0
	}

	var mu sync.Mutex
	var total float64
	forEachStrip(b.Min.Y, b.Max.Y, pixels, func(startY, endY int) {
		var sum float64
		for y := startY; y < endY; y++ {
			for x := b.Min.X; x < b.Max.X; x++ {
				sum += float64(gray.GrayAt(x, y).Y)
			}
		}
		mu.Lock()
		total += sum
		mu.Unlock()
	})
	return total / float64(pixels)
}

// DetectSkew fits a line through strong Sobel edges and returns its angle in
// degrees, normalized to [-45, 45]. It returns nil when there are too few edges.
func (mc *metricsCalculator) DetectSkew(gray *image.Gray) *float64 {
	b := gray.Bounds()
	var xs, ys []float64
	for y := b.Min.Y + 1; y < b.Max.Y-1; y++ {
		for x := b.Min.X + 1; x < b.Max.X-1; x++ {
			gx, gy := sobel(gray, x, y)
			if math.Hypot(float64(gx), float64(gy)) > 50 {
				xs = append(xs, float64(x))
				ys = append(ys, float64(y))
			}
		}
	}
	if len(xs) < 10 {
		return nil
	}

	angle := skewAngle(xs, ys)
	return &angle
}

func sobel(gray *image.Gray, x, y int) (gx, gy int) {
	p := func(dx, dy int) int { return int(gray.GrayAt(x+dx, y+dy).Y) }
	gx = -p(-1, -1) + p(1, -1) - 2*p(-1, 0) + 2*p(1, 0) - p(-1, 1) + p(1, 1)
	gy = -p(-1, -1) - 2*p(0, -1) - p(1, -1) + p(-1, 1) + 2*p(0, 1) + p(1, 1)
	return gx, gy
}

func skewAngle(xs, ys []float64) float64 {
	_, slope := stat.LinearRegression(xs, ys, nil, false)
	angle := math.Atan(slope) * 180 / math.Pi
	if math.IsNaN(angle) || math.IsInf(angle, 0) {
		return 0
	}
	for angle > 45 {
		angle -= 90
	}
	for angle < -45 {
		angle += 90
	}
	return angle
}
