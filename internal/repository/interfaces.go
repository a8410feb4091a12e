package repository

import (
	"context"

	"github.com/anime-shed/doc-insight-go/pkg/models"
)

// DocumentRepository defines the interface for remote document access
type DocumentRepository interface {
	// FetchDocument downloads the document behind a URL
	FetchDocument(ctx context.Context, rawURL string) (*models.RemoteDocument, error)

	// ValidateDocumentURL validates if the provided URL is acceptable
	ValidateDocumentURL(rawURL string) error
}

// URLValidator checks a URL before it is fetched
type URLValidator interface {
	ValidateDocumentURL(rawURL string) error
}
