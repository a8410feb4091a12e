package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("DOCTEST")
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0", cfg.Host)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, 60*time.Second, cfg.RequestTimeout)
	assert.Equal(t, OCREngineGosseract, cfg.OCREngine)
	assert.Equal(t, PDFBackendLedongthuc, cfg.PDFBackend)
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.CORSAllowedOrigins)
	assert.False(t, cfg.SniffContentType)
	assert.True(t, cfg.ImageQualityChecks)
	assert.False(t, cfg.AzureEnabled())
	assert.Equal(t, "0.0.0.0:8080", cfg.ServerAddress())
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("DOCTEST_PORT", " 9090 ")
	t.Setenv("DOCTEST_OCR_ENGINE", "tesseract-cli")
	t.Setenv("DOCTEST_PDF_BACKEND", "pdfcpu")
	t.Setenv("DOCTEST_SNIFF_CONTENT_TYPE", "true")
	t.Setenv("DOCTEST_CORS_ALLOWED_ORIGINS", "https://a.example, ,https://b.example")
	t.Setenv("DOCTEST_AZURE_STORAGE_ACCOUNT", "acct")
	t.Setenv("DOCTEST_AZURE_STORAGE_KEY", "a2V5")
	t.Setenv("DOCTEST_ALLOWED_FETCH_HOSTS", "docs.example.com, ")

	cfg, err := Load("DOCTEST")
	require.NoError(t, err)

	assert.Equal(t, OCREngineTesseractCLI, cfg.OCREngine)
	assert.Equal(t, PDFBackendPDFCPU, cfg.PDFBackend)
	assert.True(t, cfg.SniffContentType)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSAllowedOrigins)
	assert.True(t, cfg.AzureEnabled())
	assert.Equal(t, []string{"docs.example.com"}, cfg.AllowedFetchHosts)
	assert.Equal(t, "0.0.0.0:9090", cfg.ServerAddress())
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{"non-numeric port", "DOCTEST_PORT", "http"},
		{"port out of range", "DOCTEST_PORT", "70000"},
		{"unknown OCR engine", "DOCTEST_OCR_ENGINE", "easyocr"},
		{"unknown PDF backend", "DOCTEST_PDF_BACKEND", "pypdf"},
		{"zero body size", "DOCTEST_MAX_REQUEST_BODY_SIZE", "0"},
		{"negative workers", "DOCTEST_MAX_CONCURRENT_EXTRACTIONS", "-1"},
		{"azure account without key", "DOCTEST_AZURE_STORAGE_ACCOUNT", "acct"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)
			_, err := Load("DOCTEST")
			assert.Error(t, err)
		})
	}
}
