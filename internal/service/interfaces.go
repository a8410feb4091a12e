package service

import (
	"context"

	"github.com/anime-shed/doc-insight-go/pkg/models"
)

// DocumentService defines the extraction and analysis entry points
type DocumentService interface {
	// ProcessDocument extracts per-page text from an uploaded document
	ProcessDocument(ctx context.Context, data []byte, contentType string) (*models.ExtractionResult, error)

	// AnalyzeContent extracts the document and derives suggestions from its text
	AnalyzeContent(ctx context.Context, data []byte, contentType string) (*models.AnalysisResult, error)

	// ProcessURL fetches a remote document and extracts or analyzes it
	ProcessURL(ctx context.Context, req models.URLRequest) (*URLResult, error)
}

// Dispatcher extracts a document by content type
type Dispatcher interface {
	Dispatch(ctx context.Context, data []byte, contentType string) (*models.ExtractionResult, error)
}

// Suggester turns aggregated text into ordered suggestions and a polarity score
type Suggester interface {
	Generate(text string) ([]models.Suggestion, float64, error)
}

// URLResult is the outcome of processing a remote document.
// Exactly one of Extraction and Analysis is set.
type URLResult struct {
	URL         string
	ContentType string
	Extraction  *models.ExtractionResult
	Analysis    *models.AnalysisResult
	Accuracy    *models.OCRAccuracy
}
