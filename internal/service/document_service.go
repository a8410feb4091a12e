package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/sirupsen/logrus"

	"github.com/anime-shed/doc-insight-go/internal/accuracy"
	apperrors "github.com/anime-shed/doc-insight-go/internal/errors"
	"github.com/anime-shed/doc-insight-go/internal/logger"
	"github.com/anime-shed/doc-insight-go/internal/observer"
	"github.com/anime-shed/doc-insight-go/internal/repository"
	"github.com/anime-shed/doc-insight-go/internal/storage"
	"github.com/anime-shed/doc-insight-go/internal/worker"
	"github.com/anime-shed/doc-insight-go/pkg/models"
)

const octetStream = "application/octet-stream"

// documentService implements DocumentService
type documentService struct {
	dispatcher Dispatcher
	suggester  Suggester
	repository repository.DocumentRepository
	pool       *worker.Pool
	events     observer.Subject
}

// Option configures optional collaborators of the document service
type Option func(*documentService)

// WithWorkerPool runs extractions on a bounded pool instead of the request goroutine
func WithWorkerPool(pool *worker.Pool) Option {
	return func(s *documentService) {
		s.pool = pool
	}
}

// WithEvents publishes processing events to the given subject
func WithEvents(events observer.Subject) Option {
	return func(s *documentService) {
		s.events = events
	}
}

// WithRepository enables remote document intake
func WithRepository(repo repository.DocumentRepository) Option {
	return func(s *documentService) {
		s.repository = repo
	}
}

// NewDocumentService creates a new document service
func NewDocumentService(dispatcher Dispatcher, suggester Suggester, opts ...Option) DocumentService {
	s := &documentService{
		dispatcher: dispatcher,
		suggester:  suggester,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ProcessDocument extracts per-page text from an uploaded document
func (s *documentService) ProcessDocument(ctx context.Context, data []byte, contentType string) (*models.ExtractionResult, error) {
	return s.extract(ctx, data, contentType)
}

// AnalyzeContent extracts the document and runs the suggestion rules over its joined text
func (s *documentService) AnalyzeContent(ctx context.Context, data []byte, contentType string) (*models.AnalysisResult, error) {
	extraction, err := s.extract(ctx, data, contentType)
	if err != nil {
		return nil, err
	}
	return s.analyze(ctx, extraction)
}

// ProcessURL fetches the document, resolves its content type and processes it
func (s *documentService) ProcessURL(ctx context.Context, req models.URLRequest) (*URLResult, error) {
	if s.repository == nil {
		return nil, apperrors.NewInternalError("Remote documents are not enabled", nil)
	}

	start := time.Now()
	doc, err := s.repository.FetchDocument(ctx, req.URL)
	if err != nil {
		s.publishFailure(ctx, observer.DocumentFetchFailed, "", start, err)
		return nil, err
	}
	s.publish(ctx, observer.Event{
		Type:           observer.DocumentFetched,
		ContentType:    doc.ContentType,
		ProcessingTime: time.Since(start),
		Metadata:       map[string]interface{}{"size": len(doc.Data)},
	})

	contentType := resolveContentType(req.ContentType, doc)
	result := &URLResult{URL: req.URL, ContentType: contentType}

	extraction, err := s.extract(ctx, doc.Data, contentType)
	if err != nil {
		return nil, err
	}

	if req.Analyze {
		analysis, err := s.analyze(ctx, extraction)
		if err != nil {
			return nil, err
		}
		result.Analysis = analysis
	} else {
		result.Extraction = extraction
	}

	if req.ExpectedText != "" {
		result.Accuracy = accuracy.Compare(req.ExpectedText, RecognizedText(extraction))
	}

	return result, nil
}

func (s *documentService) extract(ctx context.Context, data []byte, contentType string) (*models.ExtractionResult, error) {
	start := time.Now()
	s.publish(ctx, observer.Event{Type: observer.ExtractionStarted, ContentType: contentType})

	var (
		result *models.ExtractionResult
		err    error
	)
	run := func() {
		defer func() {
			if rec := recover(); rec != nil {
				logger.FromContext(ctx).WithFields(logrus.Fields{
					"content_type": contentType,
					"panic":        rec,
				}).Error("Extractor panicked")
				result = nil
				err = apperrors.NewInternalError("Document processing failed", fmt.Errorf("panic: %v", rec))
			}
		}()
		result, err = s.dispatcher.Dispatch(ctx, data, contentType)
	}

	if s.pool == nil {
		run()
	} else if poolErr := s.pool.Do(ctx, run); poolErr != nil {
		// result and err belong to the job until it finishes; do not read them here
		failure := poolError(poolErr)
		s.publishFailure(ctx, observer.ExtractionFailed, contentType, start, failure)
		return nil, failure
	}

	if err != nil {
		s.publishFailure(ctx, observer.ExtractionFailed, contentType, start, err)
		return nil, err
	}

	s.publish(ctx, observer.Event{
		Type:           observer.ExtractionCompleted,
		FileKind:       string(result.FileKind),
		ContentType:    contentType,
		Pages:          len(result.Pages),
		ProcessingTime: time.Since(start),
	})
	return result, nil
}

func (s *documentService) analyze(ctx context.Context, extraction *models.ExtractionResult) (*models.AnalysisResult, error) {
	text := extraction.FullText()

	suggestions, polarity, err := s.suggester.Generate(text)
	if err != nil {
		logger.FromContext(ctx).WithError(err).Error("Suggestion generation failed")
		return nil, err
	}

	logger.FromContext(ctx).WithFields(logrus.Fields{
		"polarity":    polarity,
		"suggestions": len(suggestions),
	}).Debug("Content analyzed")

	return &models.AnalysisResult{
		ExtractionResult: *extraction,
		Suggestions:      suggestions,
		Sentiment: models.SentimentTag{
			Text:       text,
			Label:      models.SentimentPlaceholder,
			Confidence: 1.0,
		},
		Polarity: polarity,
	}, nil
}

func (s *documentService) publish(ctx context.Context, event observer.Event) {
	if s.events == nil {
		return
	}
	event.RequestID = logger.RequestID(ctx)
	s.events.Notify(ctx, event)
}

func (s *documentService) publishFailure(ctx context.Context, eventType observer.EventType, contentType string, start time.Time, err error) {
	appErr := apperrors.As(err)
	s.publish(ctx, observer.Event{
		Type:           eventType,
		ContentType:    contentType,
		ProcessingTime: time.Since(start),
		ErrorType:      string(appErr.Type),
		ErrorMessage:   appErr.Public(),
	})
}

func poolError(err error) error {
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return apperrors.NewTimeoutError("Document processing timed out", err)
	case errors.Is(err, context.Canceled):
		return apperrors.NewTimeoutError("Document processing was cancelled", err)
	default:
		return apperrors.NewInternalError("Document processing unavailable", err)
	}
}

// resolveContentType prefers the caller's declared type, then the remote
// header, then the magic bytes when the header says nothing useful.
func resolveContentType(declared string, doc *models.RemoteDocument) string {
	if ct := storage.MediaType(strings.TrimSpace(declared)); ct != "" {
		return ct
	}
	if ct := storage.MediaType(doc.ContentType); ct != "" && ct != octetStream {
		return ct
	}
	return storage.MediaType(mimetype.Detect(doc.Data).String())
}

// RecognizedText joins the text of every page that produced text, skipping
// the no-text sentinel records.
func RecognizedText(r *models.ExtractionResult) string {
	parts := make([]string, 0, len(r.Pages))
	for _, p := range r.Pages {
		if p.Text == models.NoTextFound && p.Confidence == 0 {
			continue
		}
		parts = append(parts, p.Text)
	}
	return strings.Join(parts, " ")
}
