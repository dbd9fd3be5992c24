package model

import "sort"

// CategoryScore is one category's accumulated score for a single analysis run.
type CategoryScore struct {
	Category string  `json:"category"`
	Score    float64 `json:"score"`
}

// CategoryScores is an ordered list of category scores. Order follows rule
// table declaration order until sorted; sorting is stable so equal scores
// keep that declaration order.
type CategoryScores []CategoryScore

// Sort orders the scores descending by score. Equal scores retain their
// current relative order.
func (s CategoryScores) Sort() {
	sort.SliceStable(s, func(i, j int) bool {
		return s[i].Score > s[j].Score
	})
}

// Positive returns only the entries with a strictly positive score.
func (s CategoryScores) Positive() CategoryScores {
	out := make(CategoryScores, 0, len(s))
	for _, cs := range s {
		if cs.Score > 0 {
			out = append(out, cs)
		}
	}
	return out
}

// TopN returns the first n entries after sorting descending.
func (s CategoryScores) TopN(n int) CategoryScores {
	if n <= 0 {
		return CategoryScores{}
	}
	s.Sort()
	if n > len(s) {
		n = len(s)
	}
	out := make(CategoryScores, n)
	copy(out, s[:n])
	return out
}

// Max returns the highest score, or 0 when empty.
func (s CategoryScores) Max() float64 {
	max := 0.0
	for _, cs := range s {
		if cs.Score > max {
			max = cs.Score
		}
	}
	return max
}

// ClassificationResult is the outcome of analyzing one transcript.
type ClassificationResult struct {
	// Suggestion is the winning category, empty when nothing scored positive.
	Suggestion string `json:"suggestion"`
	// Confidence is the winner's raw score.
	Confidence float64 `json:"confidence"`
	// TopScores holds the top 3 (category, score) pairs, best first.
	TopScores CategoryScores `json:"top_scores"`
	// ShowModal is kept for wire compatibility with the extension; always false.
	ShowModal bool `json:"show_modal"`
}
