package model

import "time"

// ClassificationFeedback records what the classifier suggested against what
// a human actually picked, for offline tuning of the rule table. It is only
// logged; rules never change at runtime.
type ClassificationFeedback struct {
	CreatedAt time.Time `json:"created_at"`
	Suggested string    `json:"suggested"`
	Chosen    string    `json:"chosen"`
	Context   string    `json:"context"`
	ID        int64     `json:"id"`
}
