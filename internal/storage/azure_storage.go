package storage

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob/bloberror"

	apperrors "github.com/anime-shed/doc-insight-go/internal/errors"
	"github.com/anime-shed/doc-insight-go/pkg/models"
)

const blobHostSuffix = ".blob.core.windows.net"

// IsAzureBlobURL reports whether rawURL points at an Azure blob endpoint
func IsAzureBlobURL(rawURL string) bool {
	u, err := url.Parse(rawURL)
	if err != nil {
		return false
	}
	return strings.HasSuffix(strings.ToLower(u.Hostname()), blobHostSuffix)
}

// AzureBlobFetcher implements Fetcher for private blobs using a shared key
type AzureBlobFetcher struct {
	client   *azblob.Client
	maxBytes int64
}

// NewAzureBlobFetcher creates a fetcher for the given storage account
func NewAzureBlobFetcher(accountName, accountKey string, maxBytes int64) (*AzureBlobFetcher, error) {
	credential, err := azblob.NewSharedKeyCredential(accountName, accountKey)
	if err != nil {
		return nil, fmt.Errorf("azure credential: %w", err)
	}

	client, err := azblob.NewClientWithSharedKeyCredential(
		fmt.Sprintf("https://%s%s", accountName, blobHostSuffix),
		credential,
		nil,
	)
	if err != nil {
		return nil, fmt.Errorf("azure client: %w", err)
	}

	return &AzureBlobFetcher{client: client, maxBytes: maxBytes}, nil
}

// Fetch downloads https://<account>.blob.core.windows.net/<container>/<blob>
func (s *AzureBlobFetcher) Fetch(ctx context.Context, rawURL string) (*models.RemoteDocument, error) {
	container, blobName, err := ParseBlobURL(rawURL)
	if err != nil {
		return nil, apperrors.NewValidationError("Invalid blob URL", err)
	}

	resp, err := s.client.DownloadStream(ctx, container, blobName, nil)
	if err != nil {
		if ctx.Err() != nil {
			return nil, apperrors.NewTimeoutError("Blob download timed out", ctx.Err())
		}
		if bloberror.HasCode(err, bloberror.BlobNotFound, bloberror.ContainerNotFound) {
			return nil, apperrors.NewNetworkError("Blob not found", err)
		}
		return nil, apperrors.NewNetworkError("Blob download failed", err)
	}
	defer resp.Body.Close()

	data, err := readLimited(resp.Body, s.maxBytes)
	if err != nil {
		return nil, apperrors.NewNetworkError("Blob download failed", err)
	}

	doc := &models.RemoteDocument{URL: rawURL, Data: data}
	if resp.ContentType != nil {
		doc.ContentType = MediaType(*resp.ContentType)
	}
	return doc, nil
}

// ParseBlobURL splits a blob URL into its container and blob names
func ParseBlobURL(rawURL string) (container, blobName string, err error) {
	parts, err := azblob.ParseURL(rawURL)
	if err != nil {
		return "", "", err
	}
	if parts.ContainerName == "" || parts.BlobName == "" {
		return "", "", fmt.Errorf("blob URL must name a container and a blob: %s", rawURL)
	}
	return parts.ContainerName, parts.BlobName, nil
}
