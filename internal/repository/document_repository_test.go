package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/anime-shed/doc-insight-go/internal/errors"
	"github.com/anime-shed/doc-insight-go/pkg/models"
	"github.com/anime-shed/doc-insight-go/pkg/validation"
)

type fakeFetcher struct {
	name string
	data []byte
	err  error
	urls []string
}

func (f *fakeFetcher) Fetch(ctx context.Context, rawURL string) (*models.RemoteDocument, error) {
	f.urls = append(f.urls, rawURL)
	if f.err != nil {
		return nil, f.err
	}
	return &models.RemoteDocument{URL: rawURL, ContentType: f.name, Data: f.data}, nil
}

func TestRemoteDocumentRepository_Routing(t *testing.T) {
	tests := []struct {
		name       string
		url        string
		withBlob   bool
		wantSource string
	}{
		{name: "plain http", url: "https://example.com/a.pdf", withBlob: true, wantSource: "http"},
		{name: "blob with credentials", url: "https://acct.blob.core.windows.net/c/a.pdf", withBlob: true, wantSource: "azure"},
		{name: "blob without credentials", url: "https://acct.blob.core.windows.net/c/a.pdf", withBlob: false, wantSource: "http"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			httpFetcher := &fakeFetcher{name: "http", data: []byte("x")}
			var blob *fakeFetcher
			repo := NewRemoteDocumentRepository(httpFetcher, nil, validation.NewURLValidator())
			if tt.withBlob {
				blob = &fakeFetcher{name: "azure", data: []byte("x")}
				repo = NewRemoteDocumentRepository(httpFetcher, blob, validation.NewURLValidator())
			}

			doc, err := repo.FetchDocument(context.Background(), tt.url)
			require.NoError(t, err)
			assert.Equal(t, tt.wantSource, doc.ContentType)
			assert.Equal(t, tt.url, doc.URL)
		})
	}
}

func TestRemoteDocumentRepository_InvalidURLNotFetched(t *testing.T) {
	httpFetcher := &fakeFetcher{data: []byte("x")}
	repo := NewRemoteDocumentRepository(httpFetcher, nil, validation.NewURLValidator())

	_, err := repo.FetchDocument(context.Background(), "ftp://example.com/a.pdf")
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeValidation))
	assert.Empty(t, httpFetcher.urls)
}

func TestRemoteDocumentRepository_Errors(t *testing.T) {
	t.Run("fetch failure passes through", func(t *testing.T) {
		repo := NewRemoteDocumentRepository(
			&fakeFetcher{err: apperrors.NewNetworkError("boom", nil)}, nil, validation.NewURLValidator())

		_, err := repo.FetchDocument(context.Background(), "https://example.com/a.pdf")
		assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeNetwork))
	})

	t.Run("empty body", func(t *testing.T) {
		repo := NewRemoteDocumentRepository(&fakeFetcher{}, nil, validation.NewURLValidator())

		_, err := repo.FetchDocument(context.Background(), "https://example.com/a.pdf")
		assert.ErrorIs(t, err, ErrEmptyDocument)
	})

	t.Run("no fetcher", func(t *testing.T) {
		repo := NewRemoteDocumentRepository(nil, nil, validation.NewURLValidator())

		_, err := repo.FetchDocument(context.Background(), "https://example.com/a.pdf")
		assert.ErrorIs(t, err, ErrNoFetcher)
	})
}
