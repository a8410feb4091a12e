// Package extractor turns raw document bytes into ordered page records.
package extractor

import (
	"context"

	"github.com/anime-shed/doc-insight-go/pkg/models"
)

// Extractor converts a document into page records. Implementations never
// return an empty page list on success.
type Extractor interface {
	Extract(ctx context.Context, data []byte) (*models.ExtractionResult, error)
}

// PageTextReader reads the text layer of a PDF, one string per page in order
type PageTextReader interface {
	PageTexts(data []byte) ([]string, error)
	Name() string
}
