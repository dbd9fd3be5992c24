// Package forecast projects support demand from historical attendance volume.
package forecast

import (
	"fmt"
	"math"
	"time"

	"github.com/sitegentech/atendo/internal/model"
)

// Analysis windows.
const (
	HourlyWindowDays = 30
	WeeklyWindowDays = 90

	projectedHours = 5
	peakFactor     = 1.5
	minAgents      = 2
)

var weekdayNames = [7]string{"Dom", "Seg", "Ter", "Qua", "Qui", "Sex", "Sáb"}

// Builder computes demand projections. All hour and weekday bucketing uses
// the configured location.
type Builder struct {
	now func() time.Time
	loc *time.Location
}

// NewBuilder creates a builder for the given timezone.
func NewBuilder(loc *time.Location) *Builder {
	if loc == nil {
		loc = time.UTC
	}
	return &Builder{now: time.Now, loc: loc}
}

// WindowStart returns the beginning of the history window for a kind.
func (b *Builder) WindowStart(kind model.ForecastKind) time.Time {
	days := HourlyWindowDays
	if kind == model.ForecastWeekly {
		days = WeeklyWindowDays
	}
	return b.now().AddDate(0, 0, -days)
}

// ReferenceDate returns today's date (YYYY-MM-DD) in the builder timezone.
func (b *Builder) ReferenceDate() string {
	return b.now().In(b.loc).Format("2006-01-02")
}

// Hourly buckets history by hour of day and projects the next five hours,
// flagging peaks above 1.5x the hourly mean and recommending staffing.
func (b *Builder) Hourly(starts []time.Time) model.HourlyForecast {
	var counts [24]int
	for _, t := range starts {
		counts[t.In(b.loc).Hour()]++
	}

	var averages [24]int
	var sum int
	for h, count := range counts {
		averages[h] = ceilDiv(count, HourlyWindowDays)
		sum += averages[h]
	}
	mean := float64(sum) / 24

	currentHour := b.now().In(b.loc).Hour()
	hours := make([]model.HourProjection, 0, projectedHours)
	total := 0
	peaks := 0
	for i := 0; i < projectedHours; i++ {
		h := (currentHour + i) % 24
		expected := averages[h]
		isPeak := float64(expected) > mean*peakFactor
		if isPeak {
			peaks++
		}
		total += expected
		hours = append(hours, model.HourProjection{
			Hour:     fmt.Sprintf("%d:00", h),
			Expected: expected,
			IsPeak:   isPeak,
		})
	}

	agents := int(math.Ceil(float64(total) / projectedHours / 5))
	if agents < minAgents {
		agents = minAgents
	}

	advice := model.StaffingAdvice{
		Agents:   agents,
		Reason:   "Volume estável previsto",
		Priority: "média",
	}
	if peaks > 0 {
		advice.Reason = fmt.Sprintf("%d picos de demanda previstos", peaks)
	}
	if peaks >= 2 {
		advice.Priority = "alta"
	}

	return model.HourlyForecast{NextHours: hours, Advice: advice}
}

// Weekly buckets history by weekday and projects the next seven days with a
// trend indicator.
func (b *Builder) Weekly(starts []time.Time) model.WeeklyForecast {
	var counts [7]int
	for _, t := range starts {
		counts[int(t.In(b.loc).Weekday())]++
	}

	weeks := float64(WeeklyWindowDays) / 7
	var averages [7]int
	var sum int
	for d, count := range counts {
		averages[d] = int(math.Ceil(float64(count) / weeks))
		sum += averages[d]
	}

	today := b.now().In(b.loc)
	days := make([]model.DayProjection, 0, 7)
	for i := 0; i < 7; i++ {
		future := today.AddDate(0, 0, i)
		weekday := int(future.Weekday())
		days = append(days, model.DayProjection{
			Weekday:  weekdayNames[weekday],
			Date:     future.Format("02/01"),
			Expected: averages[weekday],
		})
	}

	startMean := float64(days[0].Expected+days[1].Expected) / 2
	endMean := float64(days[5].Expected+days[6].Expected) / 2
	trend := "Estável ➡️"
	switch {
	case endMean > startMean:
		trend = "Crescente 📈"
	case endMean < startMean:
		trend = "Decrescente 📉"
	}

	return model.WeeklyForecast{
		Days:           days,
		Trend:          trend,
		HistoricalMean: int(math.Round(float64(sum) / 7)),
	}
}

func ceilDiv(a, b int) int {
	return (a + b - 1) / b
}
