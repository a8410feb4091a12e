// Package suggest derives content-improvement suggestions from extracted text.
package suggest

import (
	"strings"

	apperrors "github.com/anime-shed/doc-insight-go/internal/errors"
	"github.com/anime-shed/doc-insight-go/internal/logger"
	"github.com/anime-shed/doc-insight-go/pkg/models"
)

// Engine evaluates an ordered rule catalog. It holds no per-call state and
// is safe for concurrent use when its analyzer is.
type Engine struct {
	rules    []Rule
	analyzer PolarityAnalyzer
}

// NewEngine creates an engine over the default catalog
func NewEngine(analyzer PolarityAnalyzer) *Engine {
	return NewEngineWithRules(DefaultRules(), analyzer)
}

// NewEngineWithRules creates an engine over a custom catalog
func NewEngineWithRules(rules []Rule, analyzer PolarityAnalyzer) *Engine {
	return &Engine{rules: rules, analyzer: analyzer}
}

// Rules returns the catalog in evaluation order
func (e *Engine) Rules() []Rule {
	return e.rules
}

// Generate returns the messages of every firing rule in catalog order, along
// with the polarity score the sentiment rules saw.
func (e *Engine) Generate(text string) ([]models.Suggestion, float64, error) {
	polarity, err := e.analyzer.Polarity(text)
	if err != nil {
		logger.WithError(err).Error("Polarity analysis failed")
		return nil, 0, apperrors.NewInternalError("Failed to analyze content", err)
	}

	content := Content{
		Text:     text,
		Lower:    strings.ToLower(text),
		Words:    len(strings.Fields(text)),
		Polarity: polarity,
	}

	suggestions := make([]models.Suggestion, 0, len(e.rules))
	firedGroup := ""
	for _, rule := range e.rules {
		if rule.Group != "" && rule.Group == firedGroup {
			continue
		}
		if !rule.Match(content) {
			continue
		}
		suggestions = append(suggestions, rule.Message)
		firedGroup = rule.Group
	}

	return suggestions, polarity, nil
}
