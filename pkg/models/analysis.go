package models

// NoTextFound is the text of the sentinel record emitted when a page or image
// yields no extractable text.
const NoTextFound = "No text found"

// SentimentPlaceholder is the label reported in every sentiment tag. The
// polarity score only drives suggestions; it is not surfaced as a label.
const SentimentPlaceholder = "analyzed"

// FileKind identifies which extractor produced a result
type FileKind string

const (
	FileKindPDF   FileKind = "pdf"
	FileKindImage FileKind = "image"
)

// PageRecord is one unit of extracted text.
// For PDFs there is one record per page; for images one per detected text region.
type PageRecord struct {
	Text       string  `json:"text"`
	PageNumber int     `json:"page_number"`
	Confidence float64 `json:"confidence"`
}

// NoTextRecord returns the sentinel record for the given page.
func NoTextRecord(pageNumber int) PageRecord {
	return PageRecord{Text: NoTextFound, PageNumber: pageNumber, Confidence: 0.0}
}

// ExtractionResult is the ordered output of a single extraction call.
// Pages is never empty.
type ExtractionResult struct {
	FileKind FileKind     `json:"file_kind"`
	Pages    []PageRecord `json:"pages"`

	// Non-fatal observations about the input, e.g. a blurry scan
	Warnings []string `json:"warnings,omitempty"`
}

// FullText joins the text of every page with a single space.
func (r *ExtractionResult) FullText() string {
	n := 0
	for _, p := range r.Pages {
		n += len(p.Text) + 1
	}
	buf := make([]byte, 0, n)
	for i, p := range r.Pages {
		if i > 0 {
			buf = append(buf, ' ')
		}
		buf = append(buf, p.Text...)
	}
	return string(buf)
}

// Suggestion is a human-readable content-improvement message
type Suggestion = string

// SentimentTag is the aggregate sentiment entry attached to an analysis.
type SentimentTag struct {
	Text       string  `json:"text"`
	Label      string  `json:"sentiment"`
	Confidence float64 `json:"confidence"`
}

// AnalysisResult is an extraction plus the suggestions derived from its text.
type AnalysisResult struct {
	ExtractionResult
	Suggestions []Suggestion `json:"suggestions"`
	Sentiment   SentimentTag `json:"sentiment_tag"`

	// Signed score used by the sentiment rules, kept for logging and debugging
	Polarity float64 `json:"-"`
}

// OCRAccuracy compares OCR output with a caller-supplied reference text.
type OCRAccuracy struct {
	ExpectedText  string  `json:"expected_text"`
	ExtractedText string  `json:"extracted_text"`
	WER           float64 `json:"word_error_rate"`
	CER           float64 `json:"character_error_rate"`
	MatchScore    float64 `json:"match_score"`
}

// RemoteDocument is a document fetched from a URL before processing.
type RemoteDocument struct {
	URL         string
	ContentType string
	Data        []byte
}
