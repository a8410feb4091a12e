// Package accuracy scores OCR output against a known reference text.
package accuracy

import (
	"strings"
	"unicode/utf8"

	"github.com/arbovm/levenshtein"
	"github.com/codycollier/wer"

	"github.com/anime-shed/doc-insight-go/pkg/models"
)

// Normalize lowercases text and collapses whitespace runs, so layout
// differences between the reference and the OCR output are not counted.
func Normalize(text string) string {
	return strings.Join(strings.Fields(strings.ToLower(text)), " ")
}

// WordErrorRate returns word-level edits divided by the reference word count
func WordErrorRate(expected, extracted string) float64 {
	ref := strings.Fields(Normalize(expected))
	hyp := strings.Fields(Normalize(extracted))
	if len(ref) == 0 {
		return emptyReferenceRate(len(hyp))
	}

	rate, _ := wer.WER(ref, hyp)
	return rate
}

// CharacterErrorRate returns character-level edits divided by the reference length
func CharacterErrorRate(expected, extracted string) float64 {
	ref := Normalize(expected)
	hyp := Normalize(extracted)
	n := utf8.RuneCountInString(ref)
	if n == 0 {
		return emptyReferenceRate(utf8.RuneCountInString(hyp))
	}

	return float64(levenshtein.Distance(ref, hyp)) / float64(n)
}

func emptyReferenceRate(hypothesisLen int) float64 {
	if hypothesisLen == 0 {
		return 0
	}
	return 1
}

// Compare builds an accuracy report. MatchScore is 1 - CER, floored at 0.
func Compare(expected, extracted string) *models.OCRAccuracy {
	cer := CharacterErrorRate(expected, extracted)
	score := 1 - cer
	if score < 0 {
		score = 0
	}

	return &models.OCRAccuracy{
		ExpectedText:  expected,
		ExtractedText: extracted,
		WER:           WordErrorRate(expected, extracted),
		CER:           cer,
		MatchScore:    score,
	}
}
