package clients

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sitegentech/atendo/internal/model"
)

func ratedAttendance(phone, name string, rating int, createdAt time.Time) model.Attendance {
	return model.Attendance{
		ID:         phone + createdAt.Format("150405"),
		ClientName: name,
		Phone:      phone,
		AgentID:    "Maria",
		Status:     model.StatusResolved,
		Rating:     &rating,
		StartedAt:  createdAt,
		CreatedAt:  createdAt,
	}
}

func TestBuildRanking(t *testing.T) {
	base := time.Date(2026, 3, 20, 10, 0, 0, 0, time.UTC)

	var attendances []model.Attendance
	// Posto Central: 3 tickets, avg 5.0.
	for i := 0; i < 3; i++ {
		attendances = append(attendances, ratedAttendance("5511999000001", "Posto Central", 5, base.Add(time.Duration(i)*time.Hour)))
	}
	// Posto Beira Rio: 2 tickets, avg 1.5 (detractor).
	attendances = append(attendances,
		ratedAttendance("5511999000002", "Posto Beira Rio", 1, base),
		ratedAttendance("5511999000002", "Posto Beira Rio", 2, base.Add(time.Hour)))
	// Single rating never reaches the top rated list.
	attendances = append(attendances, ratedAttendance("5511999000003", "Posto Novo", 5, base))
	// Short phone is skipped entirely.
	attendances = append(attendances, ratedAttendance("123", "Inválido", 5, base))

	ranking := Build(attendances)

	require.Len(t, ranking.TopVolume, 3)
	assert.Equal(t, "Posto Central", ranking.TopVolume[0].Name)
	assert.Equal(t, 3, ranking.TopVolume[0].Total)

	require.Len(t, ranking.TopRated, 2)
	assert.Equal(t, "Posto Central", ranking.TopRated[0].Name)
	assert.Equal(t, 5.0, ranking.TopRated[0].AvgRating)

	require.Len(t, ranking.Detractors, 1)
	assert.Equal(t, "Posto Beira Rio", ranking.Detractors[0].Name)
	assert.Equal(t, 1.5, ranking.Detractors[0].AvgRating)
}

func TestBuildPrefersLongerRecentName(t *testing.T) {
	base := time.Date(2026, 3, 20, 10, 0, 0, 0, time.UTC)

	attendances := []model.Attendance{
		ratedAttendance("5511999000001", "Central", 4, base),
		ratedAttendance("5511999000001", "Posto Central Ltda", 4, base.Add(time.Hour)),
	}

	ranking := Build(attendances)
	require.Len(t, ranking.TopVolume, 1)
	assert.Equal(t, "Posto Central Ltda", ranking.TopVolume[0].Name)
	assert.Equal(t, base.Add(time.Hour), ranking.TopVolume[0].LastContact)
}

func TestBuildUnnamedClient(t *testing.T) {
	att := model.Attendance{
		ID:        "att-1",
		Phone:     "5511999000001",
		AgentID:   "Maria",
		Status:    model.StatusInProgress,
		StartedAt: time.Now(),
		CreatedAt: time.Now(),
	}

	ranking := Build([]model.Attendance{att})
	require.Len(t, ranking.TopVolume, 1)
	assert.Equal(t, "Cliente", ranking.TopVolume[0].Name)
	assert.Empty(t, ranking.TopRated)
	assert.Empty(t, ranking.Detractors)
}

func TestPeriodDays(t *testing.T) {
	assert.Equal(t, 1, PeriodDays("hoje"))
	assert.Equal(t, 7, PeriodDays("semana"))
	assert.Equal(t, 365, PeriodDays("geral"))
	assert.Equal(t, 30, PeriodDays("mes"))
	assert.Equal(t, 30, PeriodDays(""))
}
