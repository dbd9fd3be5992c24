// Package gamify computes the agent gamification ranking from closed
// attendances.
package gamify

import (
	"sort"
	"strings"
	"time"

	"github.com/sitegentech/atendo/internal/model"
)

// Achievement labels shown on the dashboard.
const (
	AchievementLunchShift = "🍱 Plantão"
	AchievementOnFire     = "🔥 On Fire"
	AchievementFlash      = "⚡ Flash"
)

// Config holds the point values of the scoring rules.
type Config struct {
	BasePoints     int
	HandleBonus    int
	ShiftBonus     int
	VolumeBonus    int
	FailurePenalty int
}

// DefaultConfig returns the production point values.
func DefaultConfig() Config {
	return Config{
		BasePoints:     10,
		HandleBonus:    5,
		ShiftBonus:     50,
		VolumeBonus:    50,
		FailurePenalty: -50,
	}
}

// Scoring windows.
const (
	handleBonusMinMinutes = 2.0
	handleBonusMaxMinutes = 15.0
	shiftStartHour        = 12
	shiftEndHour          = 14
	volumeThreshold       = 30
	flashMaxAvgMinutes    = 10
	flashMinTickets       = 5
)

// Calculator turns attendances into ranking entries. All wall-clock decisions
// (reference date, shift hours) use the configured location.
type Calculator struct {
	now func() time.Time
	loc *time.Location
	cfg Config
}

// NewCalculator creates a calculator for the given timezone.
func NewCalculator(loc *time.Location, cfg Config) *Calculator {
	if loc == nil {
		loc = time.UTC
	}
	return &Calculator{now: time.Now, loc: loc, cfg: cfg}
}

// ReferenceDate returns today's date (YYYY-MM-DD) in the calculator timezone.
func (c *Calculator) ReferenceDate() string {
	return c.now().In(c.loc).Format("2006-01-02")
}

// PeriodStart returns the beginning of the aggregation window for a period:
// start of today for "hoje", seven days back for "semana", first of the
// current month for "mes".
func (c *Calculator) PeriodStart(period model.RankingPeriod) time.Time {
	now := c.now().In(c.loc)
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, c.loc)

	switch period {
	case model.PeriodWeek:
		return dayStart.AddDate(0, 0, -7)
	case model.PeriodMonth:
		return time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, c.loc)
	default:
		return dayStart
	}
}

type agentStats struct {
	achievements []string
	totalMinutes float64
	points       int
	tickets      int
}

// Compute scores every attendance in the slice and returns one ranking entry
// per real agent, highest points first. Transferred and unanswered tickets
// count volume but never score points or bonuses.
func (c *Calculator) Compute(period model.RankingPeriod, attendances []model.Attendance) []model.RankingEntry {
	stats := make(map[string]*agentStats)

	for i := range attendances {
		att := &attendances[i]
		if model.IsIgnoredAgent(att.AgentID) {
			continue
		}

		s := stats[att.AgentID]
		if s == nil {
			s = &agentStats{}
			stats[att.AgentID] = s
		}

		excluded := att.IsTransferred() || att.IsNoAnswer()

		s.tickets++
		if !excluded {
			s.points += c.cfg.BasePoints
		}

		if att.EndedAt != nil {
			minutes := att.HandleMinutes()
			s.totalMinutes += minutes

			if !excluded && minutes > handleBonusMinMinutes && minutes < handleBonusMaxMinutes {
				s.points += c.cfg.HandleBonus
			}

			endHour := att.EndedAt.In(c.loc).Hour()
			if !excluded && endHour >= shiftStartHour && endHour < shiftEndHour {
				s.points += c.cfg.ShiftBonus
				s.achievements = appendOnce(s.achievements, AchievementLunchShift)
			}
		}

		if !excluded && strings.Contains(strings.ToLower(att.Status), "falha") {
			s.points += c.cfg.FailurePenalty
		}
	}

	referenceDate := c.ReferenceDate()
	entries := make([]model.RankingEntry, 0, len(stats))
	for agentID, s := range stats {
		avgMinutes := 0
		if s.tickets > 0 {
			avgMinutes = int(s.totalMinutes/float64(s.tickets) + 0.5)
		}

		if s.tickets > volumeThreshold {
			s.points += c.cfg.VolumeBonus
			s.achievements = appendOnce(s.achievements, AchievementOnFire)
		}
		if avgMinutes < flashMaxAvgMinutes && s.tickets > flashMinTickets {
			s.achievements = appendOnce(s.achievements, AchievementFlash)
		}

		entries = append(entries, model.RankingEntry{
			AgentID:       agentID,
			Period:        period,
			ReferenceDate: referenceDate,
			Points:        s.points,
			Tickets:       s.tickets,
			AvgHandleMin:  avgMinutes,
			Achievements:  s.achievements,
		})
	}

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Points != entries[j].Points {
			return entries[i].Points > entries[j].Points
		}
		if entries[i].Tickets != entries[j].Tickets {
			return entries[i].Tickets > entries[j].Tickets
		}
		return entries[i].AgentID < entries[j].AgentID
	})
	return entries
}

func appendOnce(list []string, item string) []string {
	for _, existing := range list {
		if existing == item {
			return list
		}
	}
	return append(list, item)
}
