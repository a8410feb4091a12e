package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/samber/lo"
)

const (
	OCREngineGosseract    = "gosseract"
	OCREngineTesseractCLI = "tesseract-cli"

	PDFBackendLedongthuc = "ledongthuc"
	PDFBackendPDFCPU     = "pdfcpu"
)

type Config struct {
	Host               string        `envconfig:"HOST" default:"0.0.0.0"`
	Port               string        `envconfig:"PORT" default:"8080" validate:"required"`
	RequestTimeout     time.Duration `envconfig:"REQUEST_TIMEOUT" default:"60s" validate:"gt=0"`
	FetchTimeout       time.Duration `envconfig:"FETCH_TIMEOUT" default:"15s" validate:"gt=0"`
	MaxRequestBodySize int64         `envconfig:"MAX_REQUEST_BODY_SIZE" default:"20971520" validate:"gt=0"`
	CORSAllowedOrigins []string      `envconfig:"CORS_ALLOWED_ORIGINS" default:"http://localhost:3000"`
	LogLevel           string        `envconfig:"LOG_LEVEL" default:"info" validate:"oneof=debug info warn warning error"`

	OCREngine   string `envconfig:"OCR_ENGINE" default:"gosseract" validate:"oneof=gosseract tesseract-cli"`
	OCRLanguage string `envconfig:"OCR_LANGUAGE" default:"eng" validate:"required"`
	// Tesseract binary used by the CLI engine
	TesseractPath string `envconfig:"TESSERACT_PATH" default:"tesseract"`
	TessdataDir   string `envconfig:"TESSDATA_DIR"`

	PDFBackend string `envconfig:"PDF_BACKEND" default:"ledongthuc" validate:"oneof=ledongthuc pdfcpu"`

	// Declared content types are trusted unless sniffing is enabled
	SniffContentType   bool `envconfig:"SNIFF_CONTENT_TYPE" default:"false"`
	ImageQualityChecks bool `envconfig:"IMAGE_QUALITY_CHECKS" default:"true"`

	// 0 means one worker per CPU
	MaxConcurrentExtractions int `envconfig:"MAX_CONCURRENT_EXTRACTIONS" default:"0" validate:"gte=0"`

	// Hosts /process-url may fetch from; empty allows any
	AllowedFetchHosts []string `envconfig:"ALLOWED_FETCH_HOSTS"`

	AzureStorageAccount string `envconfig:"AZURE_STORAGE_ACCOUNT"`
	AzureStorageKey     string `envconfig:"AZURE_STORAGE_KEY" validate:"required_with=AzureStorageAccount"`
}

var validate = validator.New()

func (c *Config) ServerAddress() string {
	// Trim any whitespace from host and port
	host := strings.TrimSpace(c.Host)
	port := strings.TrimSpace(c.Port)
	return net.JoinHostPort(host, port)
}

// AzureEnabled reports whether blob credentials were supplied
func (c *Config) AzureEnabled() bool {
	return c.AzureStorageAccount != "" && c.AzureStorageKey != ""
}

// LoadFromEnv reads an optional .env file, then the environment.
func LoadFromEnv() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to read .env: %w", err)
	}
	return Load("")
}

// Load processes the environment with an optional variable prefix and validates the result.
func Load(prefix string) (*Config, error) {
	var cfg Config
	if err := envconfig.Process(prefix, &cfg); err != nil {
		return nil, fmt.Errorf("failed to process env: %w", err)
	}
	cfg.CORSAllowedOrigins = lo.FilterMap(cfg.CORSAllowedOrigins, func(o string, _ int) (string, bool) {
		o = strings.TrimSpace(o)
		return o, o != ""
	})
	cfg.AllowedFetchHosts = lo.Compact(lo.Map(cfg.AllowedFetchHosts, func(h string, _ int) string {
		return strings.TrimSpace(h)
	}))
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks field constraints and the port range
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	p, err := strconv.Atoi(strings.TrimSpace(c.Port))
	if err != nil || p < 1 || p > 65535 {
		return fmt.Errorf("invalid PORT: %q", c.Port)
	}
	return nil
}
