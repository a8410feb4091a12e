package factory

import (
	"fmt"

	"github.com/anime-shed/doc-insight-go/internal/analyzer"
	"github.com/anime-shed/doc-insight-go/internal/config"
	"github.com/anime-shed/doc-insight-go/internal/extractor"
	"github.com/anime-shed/doc-insight-go/internal/ocr"
	"github.com/anime-shed/doc-insight-go/internal/ocr/tesseract"
	"github.com/anime-shed/doc-insight-go/internal/storage"
)

// EngineFactory creates OCR engines
type EngineFactory interface {
	CreateEngine(engineType string) (ocr.Engine, error)
}

// PDFReaderFactory creates PDF text-layer backends
type PDFReaderFactory interface {
	CreateReader(backend string) (extractor.PageTextReader, error)
}

// StorageFactory creates remote document fetchers
type StorageFactory interface {
	CreateHTTPFetcher() storage.Fetcher
	// CreateBlobFetcher returns nil when blob storage is not configured
	CreateBlobFetcher() (storage.Fetcher, error)
}

// engineFactory implements EngineFactory
type engineFactory struct {
	cfg *config.Config
}

// NewEngineFactory creates a new engine factory
func NewEngineFactory(cfg *config.Config) EngineFactory {
	return &engineFactory{cfg: cfg}
}

// CreateEngine creates an engine of the given type. The in-process engine is
// wrapped so that only one recognition runs at a time.
func (f *engineFactory) CreateEngine(engineType string) (ocr.Engine, error) {
	switch engineType {
	case config.OCREngineGosseract:
		engine, err := tesseract.New(tesseract.Config{
			Language:    f.cfg.OCRLanguage,
			TessdataDir: f.cfg.TessdataDir,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to initialize gosseract: %w", err)
		}
		return ocr.NewSerialized(engine), nil
	case config.OCREngineTesseractCLI:
		return ocr.NewTesseractCLI(ocr.CLIConfig{
			Binary:      f.cfg.TesseractPath,
			Language:    f.cfg.OCRLanguage,
			TessdataDir: f.cfg.TessdataDir,
		}), nil
	default:
		return nil, fmt.Errorf("unsupported OCR engine: %s", engineType)
	}
}

// pdfReaderFactory implements PDFReaderFactory
type pdfReaderFactory struct{}

// NewPDFReaderFactory creates a new PDF reader factory
func NewPDFReaderFactory() PDFReaderFactory {
	return &pdfReaderFactory{}
}

// CreateReader creates the text-layer backend with the given name
func (f *pdfReaderFactory) CreateReader(backend string) (extractor.PageTextReader, error) {
	switch backend {
	case config.PDFBackendLedongthuc, "":
		return extractor.NewLedongthucReader(), nil
	case config.PDFBackendPDFCPU:
		return extractor.NewPDFCPUReader(), nil
	default:
		return nil, fmt.Errorf("unsupported PDF backend: %s", backend)
	}
}

// storageFactory implements StorageFactory
type storageFactory struct {
	cfg *config.Config
}

// NewStorageFactory creates a new storage factory
func NewStorageFactory(cfg *config.Config) StorageFactory {
	return &storageFactory{cfg: cfg}
}

// CreateHTTPFetcher creates the HTTP(S) fetcher bounded by the fetch timeout and body limit
func (f *storageFactory) CreateHTTPFetcher() storage.Fetcher {
	return storage.NewHTTPFetcher(storage.HTTPOptions{
		Timeout:  f.cfg.FetchTimeout,
		MaxBytes: f.cfg.MaxRequestBodySize,
	})
}

// CreateBlobFetcher creates the Azure blob fetcher when credentials are configured
func (f *storageFactory) CreateBlobFetcher() (storage.Fetcher, error) {
	if !f.cfg.AzureEnabled() {
		return nil, nil
	}
	fetcher, err := storage.NewAzureBlobFetcher(f.cfg.AzureStorageAccount, f.cfg.AzureStorageKey, f.cfg.MaxRequestBodySize)
	if err != nil {
		return nil, fmt.Errorf("failed to create blob fetcher: %w", err)
	}
	return fetcher, nil
}

// QualityInspector returns the pre-flight image inspector, or nil when checks are disabled
func QualityInspector(cfg *config.Config) analyzer.QualityInspector {
	if !cfg.ImageQualityChecks {
		return nil
	}
	return analyzer.NewQualityInspector(analyzer.DefaultThresholds())
}

// ComponentFactory combines all factories
type ComponentFactory struct {
	EngineFactory    EngineFactory
	PDFReaderFactory PDFReaderFactory
	StorageFactory   StorageFactory
}

// NewComponentFactory creates a new component factory
func NewComponentFactory(cfg *config.Config) *ComponentFactory {
	return &ComponentFactory{
		EngineFactory:    NewEngineFactory(cfg),
		PDFReaderFactory: NewPDFReaderFactory(),
		StorageFactory:   NewStorageFactory(cfg),
	}
}
