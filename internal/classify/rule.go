package classify

import (
	"fmt"
	"time"

	"github.com/sitegentech/atendo/internal/common"
)

// Rule describes how one closing-reason category accumulates score. Keywords
// and combos add points, exclude words subtract, and the optional fields
// refine the signal. Terms are matched as case/diacritic-insensitive
// substrings after Normalize.
type Rule struct {
	// ContextPositive, when set, is evaluated against each normalized message
	// text and adds a fixed bonus on true.
	ContextPositive func(text string) bool
	// TemporalBonus, when set, is evaluated once per run against the current
	// date and its result added when positive. It never depends on content.
	TemporalBonus func(now time.Time) float64
	// Category is the closing-reason label this rule scores.
	Category string
	// Keywords each add Weight points per message they appear in.
	Keywords []string
	// Combos are multi-word phrases, a stronger signal than bare keywords.
	Combos []string
	// ExcludeWords each subtract a flat penalty per message they appear in.
	ExcludeWords []string
	// RequiredAny applies a flat penalty once per run when none of its terms
	// appear anywhere in the transcript.
	RequiredAny []string
	// Weight is the per-keyword point value.
	Weight float64
	// Priority is an ops-facing ranking hint. Tie-breaks use only score
	// magnitude and declaration order, never Priority.
	Priority int
	// OnlyIfNoMatch demotes this category to a catch-all: its score is zeroed
	// whenever any category clears the activation threshold.
	OnlyIfNoMatch bool
}

// RuleSet is an ordered rule table, one entry per category. Declaration order
// is significant: it is the stable tie-break for equal scores.
type RuleSet []Rule

// Validate fails fast on a malformed rule table. All configuration errors
// surface here, at load time; the classifiers themselves are total functions.
func (rs RuleSet) Validate() error {
	if len(rs) == 0 {
		return fmt.Errorf("%w: rule table is empty", common.ErrInvalidRuleTable)
	}

	seen := make(map[string]bool, len(rs))
	for i, rule := range rs {
		if rule.Category == "" {
			return fmt.Errorf("%w: rule at index %d has no category", common.ErrInvalidRuleTable, i)
		}
		if seen[rule.Category] {
			return fmt.Errorf("%w: duplicate category %q", common.ErrInvalidRuleTable, rule.Category)
		}
		seen[rule.Category] = true

		if len(rule.Keywords) == 0 && len(rule.Combos) == 0 {
			return fmt.Errorf("%w: category %q has neither keywords nor combos", common.ErrInvalidRuleTable, rule.Category)
		}
		if len(rule.Keywords) > 0 && rule.Weight <= 0 {
			return fmt.Errorf("%w: category %q has keywords but non-positive weight %v", common.ErrInvalidRuleTable, rule.Category, rule.Weight)
		}
	}
	return nil
}

// Categories returns the category names in declaration order.
func (rs RuleSet) Categories() []string {
	out := make([]string, len(rs))
	for i, rule := range rs {
		out[i] = rule.Category
	}
	return out
}
