//go:generate go run go.uber.org/mock/mockgen -source=polarity.go -destination=../mocks/mock_polarity.go -package=mocks

package suggest

import (
	"strings"
	"unicode"
)

// PolarityAnalyzer estimates the emotional valence of a text as a signed
// score in [-1, 1], where 0 means neutral.
type PolarityAnalyzer interface {
	Polarity(text string) (float64, error)
}

// LexiconAnalyzer scores text by averaging the valence of known words.
// A preceding negator flips and halves a word's score; an intensifier scales it.
type LexiconAnalyzer struct {
	lexicon      map[string]float64
	intensifiers map[string]float64
	negators     map[string]struct{}
}

// NewLexiconAnalyzer creates an analyzer with the built-in English lexicon
func NewLexiconAnalyzer() *LexiconAnalyzer {
	return &LexiconAnalyzer{
		lexicon:      defaultLexicon,
		intensifiers: defaultIntensifiers,
		negators:     defaultNegators,
	}
}

// Polarity returns the mean valence of the sentiment-bearing words, or 0 when there are none
func (a *LexiconAnalyzer) Polarity(text string) (float64, error) {
	tokens := tokenize(text)

	var sum float64
	var n int
	for i, tok := range tokens {
		score, ok := a.lexicon[tok]
		if !ok {
			continue
		}

		// Look back over at most two modifiers, e.g. "not very good"
		for j := i - 1; j >= 0 && j >= i-2; j-- {
			prev := tokens[j]
			if factor, ok := a.intensifiers[prev]; ok {
				score *= factor
				continue
			}
			if a.isNegator(prev) {
				score *= -0.5
			}
			break
		}

		sum += score
		n++
	}

	if n == 0 {
		return 0, nil
	}
	return clamp(sum/float64(n), -1, 1), nil
}

func (a *LexiconAnalyzer) isNegator(tok string) bool {
	if _, ok := a.negators[tok]; ok {
		return true
	}
	return strings.HasSuffix(tok, "n't")
}

// tokenize lowercases text and splits it into words, keeping inner apostrophes
func tokenize(text string) []string {
	return strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && r != '\''
	})
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

var defaultNegators = map[string]struct{}{
	"not": {}, "no": {}, "never": {}, "nothing": {}, "neither": {}, "nor": {}, "cannot": {},
}

var defaultIntensifiers = map[string]float64{
	"very":       1.3,
	"really":     1.3,
	"so":         1.2,
	"extremely":  1.5,
	"incredibly": 1.5,
	"super":      1.4,
	"quite":      1.1,
	"slightly":   0.5,
	"somewhat":   0.6,
}

var defaultLexicon = map[string]float64{
	// positive
	"good":        0.7,
	"great":       0.8,
	"excellent":   1.0,
	"amazing":     0.6,
	"awesome":     1.0,
	"fantastic":   0.4,
	"wonderful":   1.0,
	"best":        1.0,
	"better":      0.5,
	"love":        0.5,
	"loved":       0.7,
	"lovely":      0.5,
	"like":        0.2,
	"happy":       0.8,
	"glad":        0.5,
	"enjoy":       0.4,
	"fun":         0.3,
	"nice":        0.6,
	"beautiful":   0.85,
	"perfect":     1.0,
	"exciting":    0.3,
	"excited":     0.4,
	"delightful":  1.0,
	"brilliant":   0.9,
	"fresh":       0.3,
	"free":        0.4,
	"easy":        0.43,
	"new":         0.14,
	"special":     0.36,
	"popular":     0.6,
	"favorite":    0.5,
	"thank":       0.4,
	"thanks":      0.2,
	"success":     0.3,
	"successful":  0.75,
	"win":         0.8,
	"winner":      0.6,
	"incredible":  0.9,
	"outstanding": 0.5,
	"superb":      1.0,
	"positive":    0.23,
	"helpful":     0.5,
	"recommend":   0.4,
	"impressive":  1.0,
	"cool":        0.35,
	"joy":         0.8,
	"proud":       0.8,
	"safe":        0.5,
	"strong":      0.43,
	"smart":       0.21,
	"friendly":    0.38,
	"pleased":     0.5,
	"satisfied":   0.5,
	"unique":      0.38,
	"fast":        0.2,
	// negative
	"bad":           -0.7,
	"worse":         -0.4,
	"worst":         -1.0,
	"terrible":      -1.0,
	"awful":         -1.0,
	"horrible":      -1.0,
	"poor":          -0.4,
	"hate":          -0.8,
	"hated":         -0.9,
	"sad":           -0.5,
	"angry":         -0.5,
	"annoying":      -0.8,
	"annoyed":       -0.4,
	"boring":        -1.0,
	"bored":         -0.5,
	"disappointed":  -0.75,
	"disappointing": -0.6,
	"broken":        -0.4,
	"wrong":         -0.5,
	"fail":          -0.5,
	"failed":        -0.5,
	"failure":       -0.32,
	"problem":       -0.3,
	"ugly":          -0.7,
	"slow":          -0.3,
	"expensive":     -0.5,
	"difficult":     -0.5,
	"hard":          -0.29,
	"painful":       -0.7,
	"useless":       -0.5,
	"stupid":        -0.8,
	"nasty":         -1.0,
	"sick":          -0.71,
	"dirty":         -0.6,
	"dangerous":     -0.6,
	"scary":         -0.5,
	"unfortunately": -0.5,
	"sorry":         -0.5,
	"upset":         -0.4,
	"lost":          -0.2,
	"miss":          -0.3,
	"negative":      -0.3,
	"dead":          -0.2,
	"ridiculous":    -0.33,
	"disgusting":    -1.0,
	"mediocre":      -0.3,
	"unhappy":       -0.6,
	"worried":       -0.4,
	"pathetic":      -1.0,
}
