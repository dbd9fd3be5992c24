// Package clients aggregates attendances per client for the client ranking.
package clients

import (
	"math"
	"sort"
	"time"

	"github.com/sitegentech/atendo/internal/model"
)

// List size limits.
const (
	topVolumeLimit   = 10
	topRatedLimit    = 5
	detractorsLimit  = 5
	minRatingsForTop = 2
	detractorCeiling = 2.5
	minPhoneLength   = 8
)

// ClientStats is one client's aggregated attendance history.
type ClientStats struct {
	LastContact time.Time `json:"ultimo_contato"`
	Name        string    `json:"nome"`
	Phone       string    `json:"telefone"`
	AvgRating   float64   `json:"media_avaliacao"`
	Total       int       `json:"total"`
	Ratings     int       `json:"avaliacoes"`
}

// Ranking groups the three client views served by the API.
type Ranking struct {
	TopVolume  []ClientStats `json:"top_volume"`
	TopRated   []ClientStats `json:"top_avaliacao"`
	Detractors []ClientStats `json:"detratores"`
}

// PeriodDays maps a ranking period to its lookback window. "geral" covers a
// year; anything unrecognized falls back to a month.
func PeriodDays(period string) int {
	switch period {
	case "hoje":
		return 1
	case "semana":
		return 7
	case "geral":
		return 365
	default:
		return 30
	}
}

// Build aggregates attendances per phone number and produces the three
// ranking views. Records without a usable phone are skipped.
func Build(attendances []model.Attendance) Ranking {
	byPhone := make(map[string]*clientAccumulator)

	for i := range attendances {
		att := &attendances[i]
		if len(att.Phone) < minPhoneLength {
			continue
		}

		acc := byPhone[att.Phone]
		if acc == nil {
			acc = &clientAccumulator{
				name:        clientName(att.ClientName),
				phone:       att.Phone,
				lastContact: att.CreatedAt,
			}
			byPhone[att.Phone] = acc
		}

		acc.total++
		if att.CreatedAt.After(acc.lastContact) {
			acc.lastContact = att.CreatedAt
			// Prefer the longer, more complete name from recent contacts.
			if len(att.ClientName) > len(acc.name) {
				acc.name = att.ClientName
			}
		}
		if att.Rating != nil {
			acc.ratings++
			acc.ratingSum += *att.Rating
		}
	}

	all := make([]ClientStats, 0, len(byPhone))
	for _, acc := range byPhone {
		all = append(all, acc.stats())
	}

	topVolume := sortedCopy(all, func(a, b ClientStats) bool {
		if a.Total != b.Total {
			return a.Total > b.Total
		}
		return a.Phone < b.Phone
	})

	var rated, detractors []ClientStats
	for _, c := range all {
		if c.Ratings >= minRatingsForTop {
			rated = append(rated, c)
		}
		if c.Ratings >= 1 && c.AvgRating <= detractorCeiling {
			detractors = append(detractors, c)
		}
	}
	rated = sortedCopy(rated, func(a, b ClientStats) bool {
		if a.AvgRating != b.AvgRating {
			return a.AvgRating > b.AvgRating
		}
		return a.Phone < b.Phone
	})
	detractors = sortedCopy(detractors, func(a, b ClientStats) bool {
		if a.AvgRating != b.AvgRating {
			return a.AvgRating < b.AvgRating
		}
		return a.Phone < b.Phone
	})

	return Ranking{
		TopVolume:  limit(topVolume, topVolumeLimit),
		TopRated:   limit(rated, topRatedLimit),
		Detractors: limit(detractors, detractorsLimit),
	}
}

type clientAccumulator struct {
	lastContact time.Time
	name        string
	phone       string
	total       int
	ratings     int
	ratingSum   int
}

func (a *clientAccumulator) stats() ClientStats {
	avg := 0.0
	if a.ratings > 0 {
		avg = math.Round(float64(a.ratingSum)/float64(a.ratings)*10) / 10
	}
	return ClientStats{
		Name:        a.name,
		Phone:       a.phone,
		Total:       a.total,
		Ratings:     a.ratings,
		AvgRating:   avg,
		LastContact: a.lastContact,
	}
}

func clientName(name string) string {
	if name == "" {
		return "Cliente"
	}
	return name
}

func sortedCopy(list []ClientStats, less func(a, b ClientStats) bool) []ClientStats {
	out := make([]ClientStats, len(list))
	copy(out, list)
	sort.Slice(out, func(i, j int) bool { return less(out[i], out[j]) })
	return out
}

func limit(list []ClientStats, n int) []ClientStats {
	if len(list) > n {
		return list[:n]
	}
	return list
}
