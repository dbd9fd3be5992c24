// Package report builds and delivers the daily closing report.
package report

import (
	"sort"
	"strings"
	"time"

	"github.com/sitegentech/atendo/internal/model"
)

// Durations outside this window are treated as tracking noise and excluded
// from the average handling time.
const maxHandleMinutes = 480

const (
	topClientsLimit = 3
	sampleLimit     = 10
)

// CountRow is a name/count pair for the report lists.
type CountRow struct {
	Name  string
	Count int
}

// SampleRow is one line of the report detail table.
type SampleRow struct {
	Client string
	Agent  string
	Status string
}

// DailySummary is everything the report template needs.
type DailySummary struct {
	Period       string
	Date         string
	Total        int
	Diff         int
	AvgHandleMin int
	Resolved     int
	Transferred  int
	NoAnswer     int
	Failed       int
	Inbound      int
	Outbound     int
	TopClients   []CountRow
	TopAgents    []CountRow
	Sample       []SampleRow
}

// InboundPercent returns the inbound share of total volume.
func (s *DailySummary) InboundPercent() int {
	return percent(s.Inbound, s.Total)
}

// OutboundPercent returns the outbound share of total volume.
func (s *DailySummary) OutboundPercent() int {
	return percent(s.Outbound, s.Total)
}

func percent(part, total int) int {
	if total == 0 {
		return 0
	}
	return int(float64(part)/float64(total)*100 + 0.5)
}

// BuildDailySummary aggregates today's attendances against yesterday's
// volume.
func BuildDailySummary(period string, date time.Time, today []model.Attendance, yesterdayCount int) DailySummary {
	summary := DailySummary{
		Period: period,
		Date:   date.Format("02/01/2006"),
		Total:  len(today),
		Diff:   len(today) - yesterdayCount,
	}

	var handleSum float64
	var handleCount int
	clientCounts := make(map[string]int)
	agentCounts := make(map[string]int)

	for i := range today {
		att := &today[i]
		status := strings.ToLower(att.Status)

		switch {
		case strings.Contains(status, "sucesso") || strings.Contains(status, "resolvido") || strings.Contains(status, "finalizado"):
			summary.Resolved++
		case att.IsTransferred():
			summary.Transferred++
		case att.IsNoAnswer():
			summary.NoAnswer++
		default:
			summary.Failed++
		}

		if att.Origin == model.OriginOutbound {
			summary.Outbound++
		} else {
			summary.Inbound++
		}

		if minutes := att.HandleMinutes(); minutes > 0 && minutes < maxHandleMinutes {
			handleSum += minutes
			handleCount++
		}

		if name := att.ClientName; len(name) > 3 && !strings.Contains(strings.ToLower(name), "cliente") {
			clientCounts[name]++
		}

		// Productivity list excludes system agents, transfers and no-answers.
		if !model.IsIgnoredAgent(att.AgentID) && !att.IsTransferred() && !att.IsNoAnswer() {
			agentCounts[att.AgentID]++
		}

		if usableSample(att) && len(summary.Sample) < sampleLimit {
			summary.Sample = append(summary.Sample, SampleRow{
				Client: att.ClientName,
				Agent:  att.AgentID,
				Status: att.Status,
			})
		}
	}

	if handleCount > 0 {
		summary.AvgHandleMin = int(handleSum/float64(handleCount) + 0.5)
	}

	summary.TopClients = topCounts(clientCounts, topClientsLimit)
	summary.TopAgents = topCounts(agentCounts, len(agentCounts))
	return summary
}

func usableSample(att *model.Attendance) bool {
	client := strings.ToLower(strings.TrimSpace(att.ClientName))
	if client == "cliente" || len(client) < 3 {
		return false
	}
	agent := strings.ToLower(att.AgentID)
	return !strings.Contains(agent, "sistema monitor") && !strings.Contains(agent, "recovery")
}

func topCounts(counts map[string]int, limit int) []CountRow {
	rows := make([]CountRow, 0, len(counts))
	for name, count := range counts {
		rows = append(rows, CountRow{Name: name, Count: count})
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Count != rows[j].Count {
			return rows[i].Count > rows[j].Count
		}
		return rows[i].Name < rows[j].Name
	})
	if len(rows) > limit {
		rows = rows[:limit]
	}
	return rows
}
