package ocr

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"os/exec"
	"strconv"
	"strings"
	"time"

	"github.com/anime-shed/doc-insight-go/internal/logger"

	"github.com/sirupsen/logrus"
)

// Runner lets us stub external commands in tests.
type Runner interface {
	Run(ctx context.Context, stdin []byte, name string, args ...string) (stdout, stderr []byte, err error)
}

type execRunner struct{}

func (execRunner) Run(ctx context.Context, stdin []byte, name string, args ...string) ([]byte, []byte, error) {
	start := time.Now()

	cmd := exec.CommandContext(ctx, name, args...)
	var out, errb bytes.Buffer
	cmd.Stdin = bytes.NewReader(stdin)
	cmd.Stdout = &out
	cmd.Stderr = &errb

	err := cmd.Run()
	fields := logrus.Fields{
		"cmd":         name,
		"args":        strings.Join(args, " "),
		"duration_ms": time.Since(start).Milliseconds(),
	}
	if err != nil {
		fields["stderr"] = truncate(errb.String(), 8<<10)
		logger.WithError(err).WithFields(fields).Error("exec failed")
	} else {
		fields["stdout_bytes"] = out.Len()
		logger.WithFields(fields).Debug("exec ok")
	}

	return out.Bytes(), errb.Bytes(), err
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "...(truncated)"
}

// CLIConfig configures the tesseract command line engine
type CLIConfig struct {
	Binary      string // binary name or absolute path; if empty -> "tesseract"
	Language    string // default "eng"
	TessdataDir string
	PSM         int // page segmentation mode; 0 keeps the tesseract default
}

// TesseractCLI runs the tesseract binary once per image and reads its TSV output.
// Each invocation is an independent process, so it is safe for concurrent use.
type TesseractCLI struct {
	cfg    CLIConfig
	runner Runner
}

// NewTesseractCLI creates a CLI engine backed by os/exec
func NewTesseractCLI(cfg CLIConfig) *TesseractCLI {
	return NewTesseractCLIWithRunner(cfg, execRunner{})
}

// NewTesseractCLIWithRunner creates a CLI engine with a custom runner
func NewTesseractCLIWithRunner(cfg CLIConfig, runner Runner) *TesseractCLI {
	if cfg.Binary == "" {
		cfg.Binary = "tesseract"
	}
	if cfg.Language == "" {
		cfg.Language = "eng"
	}
	return &TesseractCLI{cfg: cfg, runner: runner}
}

func (t *TesseractCLI) Name() string { return "tesseract-cli" }

func (t *TesseractCLI) Close() error { return nil }

// Recognize pipes the image through `tesseract stdin stdout ... tsv`.
func (t *TesseractCLI) Recognize(ctx context.Context, data []byte) ([]Detection, error) {
	args := []string{"stdin", "stdout", "-l", t.cfg.Language}
	if t.cfg.PSM > 0 {
		args = append(args, "--psm", strconv.Itoa(t.cfg.PSM))
	}
	if t.cfg.TessdataDir != "" {
		args = append(args, "--tessdata-dir", t.cfg.TessdataDir)
	}
	args = append(args, "tsv")

	out, errb, err := t.runner.Run(ctx, data, t.cfg.Binary, args...)
	if err != nil {
		return nil, fmt.Errorf("tesseract: %w: %s", err, truncate(strings.TrimSpace(string(errb)), 512))
	}
	return ParseTSV(out)
}

type lineKey struct {
	page, block, par, line int
}

type lineAcc struct {
	words   []string
	confSum float64
	bounds  image.Rectangle
}

// ParseTSV groups tesseract TSV word rows into text lines, in reading order.
// Line confidence is the mean word confidence.
func ParseTSV(out []byte) ([]Detection, error) {
	var order []lineKey
	lines := map[lineKey]*lineAcc{}

	for i, row := range strings.Split(string(out), "\n") {
		if i == 0 || strings.TrimSpace(row) == "" {
			continue // header
		}
		cols := strings.Split(strings.TrimRight(row, "\r"), "\t")
		if len(cols) < 12 {
			continue
		}
		// level 5 rows are words
		if cols[0] != "5" {
			continue
		}
		text := strings.TrimSpace(strings.Join(cols[11:], "\t"))
		conf, err := strconv.ParseFloat(cols[10], 64)
		if err != nil {
			return nil, fmt.Errorf("tesseract tsv row %d: bad confidence %q", i, cols[10])
		}
		if text == "" || conf < 0 {
			continue
		}
		nums, err := atoiAll(cols[1:10])
		if err != nil {
			return nil, fmt.Errorf("tesseract tsv row %d: %w", i, err)
		}
		key := lineKey{page: nums[0], block: nums[1], par: nums[2], line: nums[3]}
		box := image.Rect(nums[5], nums[6], nums[5]+nums[7], nums[6]+nums[8])

		acc, ok := lines[key]
		if !ok {
			acc = &lineAcc{bounds: box}
			lines[key] = acc
			order = append(order, key)
		}
		acc.words = append(acc.words, text)
		acc.confSum += conf
		acc.bounds = acc.bounds.Union(box)
	}

	detections := make([]Detection, 0, len(order))
	for _, key := range order {
		acc := lines[key]
		detections = append(detections, Detection{
			Bounds:     acc.bounds,
			Text:       strings.Join(acc.words, " "),
			Confidence: NormalizeConfidence(acc.confSum / float64(len(acc.words))),
		})
	}
	return detections, nil
}

func atoiAll(cols []string) ([]int, error) {
	nums := make([]int, len(cols))
	for i, c := range cols {
		n, err := strconv.Atoi(strings.TrimSpace(c))
		if err != nil {
			return nil, fmt.Errorf("bad integer %q", c)
		}
		nums[i] = n
	}
	return nums, nil
}
