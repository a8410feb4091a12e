package models

// StatusSuccess is the status reported by every successful response
const StatusSuccess = "success"

// URLRequest asks the service to fetch and process a remote document
type URLRequest struct {
	URL          string `json:"url" binding:"required,url"`
	ContentType  string `json:"content_type,omitempty"`
	ExpectedText string `json:"expected_text,omitempty"`
	Analyze      bool   `json:"analyze,omitempty"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// ProcessingResponse is returned by the extract-only entry point.
type ProcessingResponse struct {
	Status   string       `json:"status"`
	Pages    []PageRecord `json:"pages"`
	FileType FileKind     `json:"file_type"`
	Warnings []string     `json:"warnings,omitempty"`

	Accuracy *OCRAccuracy `json:"ocr_accuracy,omitempty"`
}

// AnalysisResponse is returned by the extract-and-analyze entry point.
// Results holds a single sentiment entry for compatibility with existing clients.
type AnalysisResponse struct {
	Status       string         `json:"status"`
	Pages        []PageRecord   `json:"pages"`
	Results      []SentimentTag `json:"results"`
	Suggestions  []Suggestion   `json:"suggestions"`
	SentimentTag SentimentTag   `json:"sentiment_tag"`
	FileType     FileKind       `json:"file_type"`
	Warnings     []string       `json:"warnings,omitempty"`

	Accuracy *OCRAccuracy `json:"ocr_accuracy,omitempty"`
}

// NewProcessingResponse shapes an extraction into a response payload
func NewProcessingResponse(r *ExtractionResult) *ProcessingResponse {
	return &ProcessingResponse{
		Status:   StatusSuccess,
		Pages:    r.Pages,
		FileType: r.FileKind,
		Warnings: r.Warnings,
	}
}

// NewAnalysisResponse shapes an analysis into a response payload
func NewAnalysisResponse(r *AnalysisResult) *AnalysisResponse {
	suggestions := r.Suggestions
	if suggestions == nil {
		suggestions = []Suggestion{}
	}
	return &AnalysisResponse{
		Status:       StatusSuccess,
		Pages:        r.Pages,
		Results:      []SentimentTag{r.Sentiment},
		Suggestions:  suggestions,
		SentimentTag: r.Sentiment,
		FileType:     r.FileKind,
		Warnings:     r.Warnings,
	}
}
