package model

import "time"

// RankingPeriod selects the aggregation window for the gamification ranking.
type RankingPeriod string

// Ranking period constants.
const (
	PeriodToday RankingPeriod = "hoje"
	PeriodWeek  RankingPeriod = "semana"
	PeriodMonth RankingPeriod = "mes"
)

// ValidPeriod normalizes a period value, defaulting to today.
func ValidPeriod(p string) RankingPeriod {
	switch RankingPeriod(p) {
	case PeriodWeek:
		return PeriodWeek
	case PeriodMonth:
		return PeriodMonth
	default:
		return PeriodToday
	}
}

// RankingEntry is one agent's aggregated score for a period.
type RankingEntry struct {
	UpdatedAt     time.Time     `json:"updated_at"`
	AgentID       string        `json:"agent_id"`
	Period        RankingPeriod `json:"period"`
	ReferenceDate string        `json:"reference_date"`
	Achievements  []string      `json:"achievements"`
	Points        int           `json:"points"`
	Tickets       int           `json:"tickets"`
	AvgHandleMin  int           `json:"avg_handle_min"`
}
