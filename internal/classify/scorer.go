package classify

import (
	"fmt"
	"strings"
	"time"

	"github.com/sitegentech/atendo/internal/model"
)

// Scoring constants. These were tuned against labeled transcripts; change
// them together with the rule weights, not independently.
const (
	comboPoints       = 50.0
	excludePenalty    = 30.0
	requiredPenalty   = 20.0
	contextBonus      = 40.0
	fallbackThreshold = 40.0
	vacuumConfidence  = 1000.0
	singleReplyBonus  = 80.0
	attendantWeight   = 2.0
	edgeMultiplier    = 1.5
	edgeWindow        = 3
	topScoresLimit    = 3
)

// Phrases an attendant types when giving up on a silent client.
var closingPhrases = []string{"falta de interacao", "encerrando"}

// compiledRule carries a rule with all of its terms pre-normalized, so the
// per-message loop only normalizes message text.
type compiledRule struct {
	rule        Rule
	keywords    []string
	combos      []string
	excludes    []string
	requiredAny []string
}

// WeightedScorer classifies a full transcript by additive keyword scoring.
// It is stateless across calls and safe for concurrent use; the rule table
// is treated as immutable after construction.
type WeightedScorer struct {
	now   func() time.Time
	rules []compiledRule
}

// NewWeightedScorer validates the rule table and pre-normalizes every term.
func NewWeightedScorer(rules RuleSet) (*WeightedScorer, error) {
	if err := rules.Validate(); err != nil {
		return nil, fmt.Errorf("invalid rule table: %w", err)
	}

	compiled := make([]compiledRule, len(rules))
	for i, rule := range rules {
		compiled[i] = compiledRule{
			rule:        rule,
			keywords:    normalizeAll(rule.Keywords),
			combos:      normalizeAll(rule.Combos),
			excludes:    normalizeAll(rule.ExcludeWords),
			requiredAny: normalizeAll(rule.RequiredAny),
		}
	}

	return &WeightedScorer{rules: compiled, now: time.Now}, nil
}

// Name identifies the strategy in logs and feedback records.
func (s *WeightedScorer) Name() string { return "weighted-scorer" }

// Analyze scores every category against the transcript and returns the
// winning suggestion with the top 3 ranked scores. It never panics: an empty
// or nil transcript resolves through the vacuum rule.
func (s *WeightedScorer) Analyze(messages []model.Message) model.ClassificationResult {
	scores := make([]float64, len(s.rules))

	clientCount := 0
	for _, msg := range messages {
		if msg.Sender == model.SenderClient {
			clientCount++
		}
	}

	// Vacuum short-circuit: no client input means no classification signal.
	if clientCount == 0 {
		return model.ClassificationResult{
			Suggestion: CategoryNoAnswer,
			Confidence: vacuumConfidence,
			TopScores:  model.CategoryScores{{Category: CategoryNoAnswer, Score: vacuumConfidence}},
		}
	}

	noAnswerIdx := s.categoryIndex(CategoryNoAnswer)

	// A client that said one thing and went silent: attendant sign-off
	// phrases push the no-answer category, stacking with normal scoring.
	if clientCount <= 1 && noAnswerIdx >= 0 {
		for _, msg := range messages {
			if msg.Sender != model.SenderAttendant {
				continue
			}
			if containsAny(Normalize(msg.Text), closingPhrases) {
				scores[noAnswerIdx] += singleReplyBonus
			}
		}
	}

	normalized := make([]string, len(messages))
	for i, msg := range messages {
		normalized[i] = Normalize(msg.Text)
	}

	for idx, text := range normalized {
		weight := 1.0
		if messages[idx].Sender == model.SenderAttendant {
			weight = attendantWeight
		}
		// Opening and closing remarks are the most diagnostic.
		if idx < edgeWindow || idx >= len(messages)-edgeWindow {
			weight *= edgeMultiplier
		}

		for ri := range s.rules {
			cr := &s.rules[ri]
			for _, combo := range cr.combos {
				if strings.Contains(text, combo) {
					scores[ri] += comboPoints * weight
				}
			}
			for _, keyword := range cr.keywords {
				if strings.Contains(text, keyword) {
					scores[ri] += cr.rule.Weight * weight
				}
			}
			for _, exclude := range cr.excludes {
				if strings.Contains(text, exclude) {
					scores[ri] -= excludePenalty
				}
			}
			if cr.rule.ContextPositive != nil && cr.rule.ContextPositive(text) {
				scores[ri] += contextBonus
			}
		}
	}

	// RequiredAny and temporal bonuses are transcript-global: apply once per
	// run, not per message.
	transcript := strings.Join(normalized, "\n")
	now := s.now()
	for ri := range s.rules {
		cr := &s.rules[ri]
		if len(cr.requiredAny) > 0 && !containsAny(transcript, cr.requiredAny) {
			scores[ri] -= requiredPenalty
		}
		if cr.rule.TemporalBonus != nil {
			if bonus := cr.rule.TemporalBonus(now); bonus > 0 {
				scores[ri] += bonus
			}
		}
	}

	// Catch-all suppression: demote onlyIfNoMatch categories whenever any
	// category cleared the activation threshold.
	maxScore := 0.0
	for _, score := range scores {
		if score > maxScore {
			maxScore = score
		}
	}
	if maxScore > fallbackThreshold {
		for ri := range s.rules {
			if s.rules[ri].rule.OnlyIfNoMatch {
				scores[ri] = 0
			}
		}
	}

	board := make(model.CategoryScores, len(s.rules))
	for ri := range s.rules {
		board[ri] = model.CategoryScore{Category: s.rules[ri].rule.Category, Score: scores[ri]}
	}
	ranked := board.Positive()
	ranked.Sort()

	result := model.ClassificationResult{TopScores: ranked.TopN(topScoresLimit)}
	if len(ranked) > 0 {
		result.Suggestion = ranked[0].Category
		result.Confidence = ranked[0].Score
	}
	return result
}

func (s *WeightedScorer) categoryIndex(category string) int {
	for i := range s.rules {
		if s.rules[i].rule.Category == category {
			return i
		}
	}
	return -1
}

func normalizeAll(terms []string) []string {
	out := make([]string, len(terms))
	for i, term := range terms {
		out[i] = Normalize(term)
	}
	return out
}

func containsAny(text string, terms []string) bool {
	for _, term := range terms {
		if strings.Contains(text, term) {
			return true
		}
	}
	return false
}

func contains(text, term string) bool {
	return strings.Contains(text, term)
}
