package extractor

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/anime-shed/doc-insight-go/internal/errors"
	"github.com/anime-shed/doc-insight-go/pkg/models"
)

func TestPDFExtractor_Extract(t *testing.T) {
	tests := []struct {
		name  string
		texts []string
		want  []models.PageRecord
	}{
		{
			name:  "text pages score 1.0 and keep their text",
			texts: []string{"Hello World", "  Second page \n"},
			want: []models.PageRecord{
				{Text: "Hello World", PageNumber: 1, Confidence: 1.0},
				{Text: "  Second page \n", PageNumber: 2, Confidence: 1.0},
			},
		},
		{
			name:  "empty page gets sentinel in place",
			texts: []string{"Intro", " \t\n", "Outro"},
			want: []models.PageRecord{
				{Text: "Intro", PageNumber: 1, Confidence: 1.0},
				{Text: models.NoTextFound, PageNumber: 2, Confidence: 0.0},
				{Text: "Outro", PageNumber: 3, Confidence: 1.0},
			},
		},
		{
			name:  "zero pages yields single sentinel",
			texts: nil,
			want:  []models.PageRecord{models.NoTextRecord(1)},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := NewPDFExtractor(&stubReader{texts: tt.texts})

			result, err := e.Extract(context.Background(), []byte("%PDF"))
			require.NoError(t, err)
			assert.Equal(t, models.FileKindPDF, result.FileKind)
			assert.Equal(t, tt.want, result.Pages)
		})
	}
}

func TestPDFExtractor_ParseFailure(t *testing.T) {
	e := NewPDFExtractor(&stubReader{texts: []string{"partial"}, err: errors.New("broken xref")})

	result, err := e.Extract(context.Background(), []byte("garbage"))
	assert.Nil(t, result)
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeProcessing))
	assert.Equal(t, 500, apperrors.GetStatusCode(err))
}

func TestPDFBackends(t *testing.T) {
	backends := []PageTextReader{NewLedongthucReader(), NewPDFCPUReader()}

	for _, backend := range backends {
		t.Run(backend.Name(), func(t *testing.T) {
			t.Run("garbage fails", func(t *testing.T) {
				_, err := NewPDFExtractor(backend).Extract(context.Background(), []byte("this is not a pdf"))
				assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeProcessing))
			})

			t.Run("page count and order", func(t *testing.T) {
				result, err := NewPDFExtractor(backend).Extract(context.Background(), buildPDF("Hello World", "", "Goodbye"))
				require.NoError(t, err)
				require.Len(t, result.Pages, 3)

				for i, page := range result.Pages {
					assert.Equal(t, i+1, page.PageNumber)
				}
				assert.Equal(t, models.NoTextRecord(2), result.Pages[1])
				assert.Contains(t, result.Pages[0].Text, "Hello")
				assert.Equal(t, 1.0, result.Pages[0].Confidence)
				assert.Contains(t, result.Pages[2].Text, "Goodbye")
			})
		})
	}
}

func TestLedongthucReader_ZeroPages(t *testing.T) {
	result, err := NewPDFExtractor(NewLedongthucReader()).Extract(context.Background(), buildPDF())
	require.NoError(t, err)
	assert.Equal(t, []models.PageRecord{models.NoTextRecord(1)}, result.Pages)
}

func TestPDFBackends_PageCountBeyondKids(t *testing.T) {
	data := buildPDFWithCount(7, "Hello world", "Second")

	result, err := NewPDFExtractor(NewLedongthucReader()).Extract(context.Background(), data)
	require.NoError(t, err)
	require.Len(t, result.Pages, 2)
	assert.Contains(t, result.Pages[0].Text, "Hello world")
	assert.Contains(t, result.Pages[1].Text, "Second")

	_, err = NewPDFExtractor(NewPDFCPUReader()).Extract(context.Background(), data)
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeProcessing))
}
