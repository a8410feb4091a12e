package repository

import (
	"context"
	"time"

	apperrors "github.com/anime-shed/doc-insight-go/internal/errors"
	"github.com/anime-shed/doc-insight-go/internal/logger"
	"github.com/anime-shed/doc-insight-go/internal/storage"
	"github.com/anime-shed/doc-insight-go/pkg/models"
	"github.com/sirupsen/logrus"
)

// RemoteDocumentRepository implements DocumentRepository. Azure blob URLs go
// to the blob fetcher when one is configured; everything else goes over HTTP.
type RemoteDocumentRepository struct {
	http      storage.Fetcher
	blob      storage.Fetcher
	validator URLValidator
}

// NewRemoteDocumentRepository creates a repository. blob may be nil, in which
// case blob URLs are fetched anonymously over HTTP.
func NewRemoteDocumentRepository(http, blob storage.Fetcher, validator URLValidator) DocumentRepository {
	return &RemoteDocumentRepository{
		http:      http,
		blob:      blob,
		validator: validator,
	}
}

// FetchDocument validates the URL and downloads it with the matching fetcher
func (r *RemoteDocumentRepository) FetchDocument(ctx context.Context, rawURL string) (*models.RemoteDocument, error) {
	if err := r.ValidateDocumentURL(rawURL); err != nil {
		return nil, err
	}

	fetcher, source := r.fetcherFor(rawURL)
	if fetcher == nil {
		return nil, apperrors.NewInternalError("Document source unavailable", ErrNoFetcher)
	}

	start := time.Now()
	doc, err := fetcher.Fetch(ctx, rawURL)
	if err != nil {
		return nil, err
	}
	if len(doc.Data) == 0 {
		return nil, apperrors.NewValidationError("Remote document is empty", ErrEmptyDocument)
	}

	logger.WithFields(logrus.Fields{
		"source":       source,
		"content_type": doc.ContentType,
		"size":         len(doc.Data),
		"duration_ms":  time.Since(start).Milliseconds(),
	}).Debug("Remote document fetched")

	return doc, nil
}

// ValidateDocumentURL validates if the provided URL is acceptable
func (r *RemoteDocumentRepository) ValidateDocumentURL(rawURL string) error {
	return r.validator.ValidateDocumentURL(rawURL)
}

func (r *RemoteDocumentRepository) fetcherFor(rawURL string) (storage.Fetcher, string) {
	if r.blob != nil && storage.IsAzureBlobURL(rawURL) {
		return r.blob, "azure"
	}
	return r.http, "http"
}
