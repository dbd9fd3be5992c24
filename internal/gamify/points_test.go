package gamify

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sitegentech/atendo/internal/model"
)

func testCalculator(t *testing.T) *Calculator {
	t.Helper()
	loc, err := time.LoadLocation("America/Sao_Paulo")
	require.NoError(t, err)

	calc := NewCalculator(loc, DefaultConfig())
	calc.now = func() time.Time {
		return time.Date(2026, 3, 20, 18, 0, 0, 0, time.UTC)
	}
	return calc
}

func closedAttendance(agent string, start time.Time, handleMin float64) model.Attendance {
	end := start.Add(time.Duration(handleMin * float64(time.Minute)))
	return model.Attendance{
		ID:         "att-" + agent + start.Format("150405"),
		ClientName: "Posto Teste",
		Phone:      "5511999000001",
		AgentID:    agent,
		Status:     model.StatusResolved,
		StartedAt:  start,
		EndedAt:    &end,
	}
}

func TestCalculatorCompute(t *testing.T) {
	start := time.Date(2026, 3, 20, 19, 0, 0, 0, time.UTC) // 16:00 São Paulo

	tests := []struct {
		name        string
		attendances []model.Attendance
		wantPoints  int
		wantTickets int
	}{
		{
			name: "resolved ticket with good handle time",
			attendances: []model.Attendance{
				closedAttendance("Maria", start, 5),
			},
			wantPoints:  15, // base 10 + handle bonus 5
			wantTickets: 1,
		},
		{
			name: "handle time outside bonus window",
			attendances: []model.Attendance{
				closedAttendance("Maria", start, 45),
			},
			wantPoints:  10,
			wantTickets: 1,
		},
		{
			name: "transferred ticket counts volume but scores zero",
			attendances: func() []model.Attendance {
				att := closedAttendance("Maria", start, 5)
				att.Status = model.StatusTransferred
				return []model.Attendance{att}
			}(),
			wantPoints:  0,
			wantTickets: 1,
		},
		{
			name: "no-answer reason scores zero",
			attendances: func() []model.Attendance {
				att := closedAttendance("Maria", start, 5)
				att.Reason = "Não respondeu"
				return []model.Attendance{att}
			}(),
			wantPoints:  0,
			wantTickets: 1,
		},
		{
			name: "failure status takes the penalty",
			attendances: func() []model.Attendance {
				att := closedAttendance("Maria", start, 1)
				att.Status = model.StatusFailed
				return []model.Attendance{att}
			}(),
			wantPoints:  -40, // base 10 - penalty 50
			wantTickets: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			calc := testCalculator(t)
			entries := calc.Compute(model.PeriodToday, tt.attendances)
			require.Len(t, entries, 1)
			assert.Equal(t, tt.wantPoints, entries[0].Points)
			assert.Equal(t, tt.wantTickets, entries[0].Tickets)
			assert.Equal(t, "2026-03-20", entries[0].ReferenceDate)
		})
	}
}

func TestCalculatorLunchShiftBonus(t *testing.T) {
	calc := testCalculator(t)

	// 12:30 São Paulo is 15:30 UTC.
	start := time.Date(2026, 3, 20, 15, 0, 0, 0, time.UTC)
	att := closedAttendance("Maria", start, 30)

	entries := calc.Compute(model.PeriodToday, []model.Attendance{att})
	require.Len(t, entries, 1)
	assert.Equal(t, 60, entries[0].Points) // base 10 + shift 50
	assert.Contains(t, entries[0].Achievements, AchievementLunchShift)
}

func TestCalculatorVolumeAndFlash(t *testing.T) {
	calc := testCalculator(t)

	start := time.Date(2026, 3, 20, 19, 0, 0, 0, time.UTC)
	var attendances []model.Attendance
	for i := 0; i < 31; i++ {
		att := closedAttendance("Maria", start.Add(time.Duration(i)*time.Minute), 5)
		attendances = append(attendances, att)
	}

	entries := calc.Compute(model.PeriodToday, attendances)
	require.Len(t, entries, 1)

	// 31 tickets at 15 points each plus the volume bonus.
	assert.Equal(t, 31*15+50, entries[0].Points)
	assert.Contains(t, entries[0].Achievements, AchievementOnFire)
	assert.Contains(t, entries[0].Achievements, AchievementFlash)
	assert.Equal(t, 5, entries[0].AvgHandleMin)
}

func TestCalculatorIgnoresSystemAgents(t *testing.T) {
	calc := testCalculator(t)

	start := time.Date(2026, 3, 20, 19, 0, 0, 0, time.UTC)
	attendances := []model.Attendance{
		closedAttendance("Maria", start, 5),
		closedAttendance(model.RecoveryAgentID, start, 5),
		closedAttendance("Desconhecido", start, 5),
	}

	entries := calc.Compute(model.PeriodToday, attendances)
	require.Len(t, entries, 1)
	assert.Equal(t, "Maria", entries[0].AgentID)
}

func TestCalculatorOrdering(t *testing.T) {
	calc := testCalculator(t)

	start := time.Date(2026, 3, 20, 19, 0, 0, 0, time.UTC)
	attendances := []model.Attendance{
		closedAttendance("Joao", start, 5),
		closedAttendance("Maria", start, 5),
		closedAttendance("Maria", start.Add(time.Hour), 5),
	}

	entries := calc.Compute(model.PeriodToday, attendances)
	require.Len(t, entries, 2)
	assert.Equal(t, "Maria", entries[0].AgentID)
	assert.Equal(t, "Joao", entries[1].AgentID)
}

func TestCalculatorPeriodStart(t *testing.T) {
	calc := testCalculator(t)

	// 2026-03-20 18:00 UTC is 15:00 in São Paulo.
	today := calc.PeriodStart(model.PeriodToday)
	assert.Equal(t, "2026-03-20T00:00:00", today.Format("2006-01-02T15:04:05"))

	week := calc.PeriodStart(model.PeriodWeek)
	assert.Equal(t, "2026-03-13", week.Format("2006-01-02"))

	month := calc.PeriodStart(model.PeriodMonth)
	assert.Equal(t, "2026-03-01", month.Format("2006-01-02"))
}
