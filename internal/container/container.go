package container

import (
	"fmt"
	"net/http"

	"github.com/anime-shed/doc-insight-go/internal/config"
	"github.com/anime-shed/doc-insight-go/internal/extractor"
	"github.com/anime-shed/doc-insight-go/internal/factory"
	"github.com/anime-shed/doc-insight-go/internal/logger"
	"github.com/anime-shed/doc-insight-go/internal/observer"
	"github.com/anime-shed/doc-insight-go/internal/ocr"
	"github.com/anime-shed/doc-insight-go/internal/repository"
	"github.com/anime-shed/doc-insight-go/internal/service"
	"github.com/anime-shed/doc-insight-go/internal/suggest"
	"github.com/anime-shed/doc-insight-go/internal/transport"
	"github.com/anime-shed/doc-insight-go/internal/worker"
	"github.com/anime-shed/doc-insight-go/pkg/validation"
	"github.com/sirupsen/logrus"
)

// Container holds all application dependencies
type Container struct {
	config          *config.Config
	engine          ocr.Engine
	pool            *worker.Pool
	metrics         *observer.MetricsObserver
	documentService service.DocumentService
	handler         http.Handler
}

// NewContainer creates a new dependency injection container
func NewContainer(cfg *config.Config) (*Container, error) {
	return NewContainerWithFactory(cfg, factory.NewComponentFactory(cfg))
}

// NewContainerWithFactory builds the dependency graph from the given factories
func NewContainerWithFactory(cfg *config.Config, components *factory.ComponentFactory) (*Container, error) {
	engine, err := components.EngineFactory.CreateEngine(cfg.OCREngine)
	if err != nil {
		return nil, err
	}

	pdfReader, err := components.PDFReaderFactory.CreateReader(cfg.PDFBackend)
	if err != nil {
		engine.Close()
		return nil, err
	}

	blobFetcher, err := components.StorageFactory.CreateBlobFetcher()
	if err != nil {
		engine.Close()
		return nil, err
	}

	var imageOpts []extractor.ImageOption
	if inspector := factory.QualityInspector(cfg); inspector != nil {
		imageOpts = append(imageOpts, extractor.WithQualityInspector(inspector))
	}
	dispatcher := extractor.NewDispatcher(
		extractor.NewPDFExtractor(pdfReader),
		extractor.NewImageExtractor(engine, imageOpts...),
		cfg.SniffContentType,
	)

	validator := validation.NewURLValidatorWithOptions([]string{"http", "https"}, cfg.AllowedFetchHosts)
	documentRepository := repository.NewRemoteDocumentRepository(
		components.StorageFactory.CreateHTTPFetcher(),
		blobFetcher,
		validator,
	)

	metrics := observer.NewMetricsObserver()
	events := observer.NewEventPublisher()
	events.Subscribe(observer.NewLoggingObserver(logger.Logger))
	events.Subscribe(metrics)

	pool := worker.NewPool(cfg.MaxConcurrentExtractions)
	pool.Start()

	documentService := service.NewDocumentService(
		dispatcher,
		suggest.NewEngine(suggest.NewLexiconAnalyzer()),
		service.WithRepository(documentRepository),
		service.WithWorkerPool(pool),
		service.WithEvents(events),
	)
	handler := transport.NewHandler(documentService, metrics, cfg)

	logger.WithFields(logrus.Fields{
		"ocr_engine":  engine.Name(),
		"pdf_backend": pdfReader.Name(),
		"workers":     pool.Workers(),
		"azure_blobs": blobFetcher != nil,
		"sniffing":    cfg.SniffContentType,
	}).Info("Components initialized")

	return &Container{
		config:          cfg,
		engine:          engine,
		pool:            pool,
		metrics:         metrics,
		documentService: documentService,
		handler:         handler,
	}, nil
}

// Handler returns the HTTP handler
func (c *Container) Handler() http.Handler {
	return c.handler
}

// Config returns the configuration
func (c *Container) Config() *config.Config {
	return c.config
}

// DocumentService returns the document service
func (c *Container) DocumentService() service.DocumentService {
	return c.documentService
}

// Metrics returns the extraction counters
func (c *Container) Metrics() observer.Metrics {
	return c.metrics.Snapshot()
}

// Close stops the worker pool and releases the OCR engine
func (c *Container) Close() error {
	c.pool.Close()
	if err := c.engine.Close(); err != nil {
		return fmt.Errorf("failed to close OCR engine: %w", err)
	}
	return nil
}
