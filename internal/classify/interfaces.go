package classify

import "github.com/sitegentech/atendo/internal/model"

// TranscriptAnalyzer scores a full ordered transcript. Implemented by
// WeightedScorer.
type TranscriptAnalyzer interface {
	Name() string
	Analyze(messages []model.Message) model.ClassificationResult
}

// SummaryClassifier resolves a single summarized string to a category name.
// It is total: the result is never empty. Implemented by CascadeClassifier.
type SummaryClassifier interface {
	Name() string
	Classify(summary string) string
}

// Engine holds both strategies and picks one by input shape: the weighted
// scorer when a transcript is available, the cascade otherwise. The two are
// kept as distinct strategies because their tie-break semantics differ.
type Engine struct {
	scorer  TranscriptAnalyzer
	cascade SummaryClassifier
}

// NewEngine wires the two strategies together.
func NewEngine(scorer TranscriptAnalyzer, cascade SummaryClassifier) *Engine {
	return &Engine{scorer: scorer, cascade: cascade}
}

// NewDefaultEngine builds an engine over the default rule table.
func NewDefaultEngine() (*Engine, error) {
	scorer, err := NewWeightedScorer(DefaultRules())
	if err != nil {
		return nil, err
	}
	return NewEngine(scorer, NewCascadeClassifier()), nil
}

// Suggest classifies whatever input is available. With messages present it
// runs the weighted scorer; with only a summary it runs the cascade, which
// always yields a suggestion (confidence 0, no score board).
func (e *Engine) Suggest(messages []model.Message, summary string) model.ClassificationResult {
	if len(messages) > 0 {
		return e.scorer.Analyze(messages)
	}
	category := e.cascade.Classify(summary)
	return model.ClassificationResult{Suggestion: category}
}

// Analyze exposes transcript mode directly.
func (e *Engine) Analyze(messages []model.Message) model.ClassificationResult {
	return e.scorer.Analyze(messages)
}

// Classify exposes summary mode directly.
func (e *Engine) Classify(summary string) string {
	return e.cascade.Classify(summary)
}
