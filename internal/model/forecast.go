package model

import "time"

// ForecastKind selects between the two demand projections.
type ForecastKind string

// Forecast kind constants.
const (
	ForecastHourly ForecastKind = "horario"
	ForecastWeekly ForecastKind = "semanal"
)

// ValidForecastKind normalizes a kind value, defaulting to hourly.
func ValidForecastKind(kind string) ForecastKind {
	if ForecastKind(kind) == ForecastWeekly {
		return ForecastWeekly
	}
	return ForecastHourly
}

// HourProjection is the expected volume for one upcoming hour.
type HourProjection struct {
	Hour     string `json:"hora"`
	Expected int    `json:"volume_esperado"`
	IsPeak   bool   `json:"is_pico"`
}

// StaffingAdvice is the recommended staffing derived from an hourly forecast.
type StaffingAdvice struct {
	Agents   int    `json:"agentes"`
	Reason   string `json:"motivo"`
	Priority string `json:"prioridade"`
}

// HourlyForecast projects the next five hours of demand.
type HourlyForecast struct {
	NextHours []HourProjection `json:"proximas_horas"`
	Advice    StaffingAdvice   `json:"recomendacao"`
}

// DayProjection is the expected volume for one upcoming day.
type DayProjection struct {
	Weekday  string `json:"dia"`
	Date     string `json:"data"`
	Expected int    `json:"previsao"`
}

// WeeklyForecast projects the next seven days of demand.
type WeeklyForecast struct {
	Days           []DayProjection `json:"projecao_7_dias"`
	Trend          string          `json:"tendencia"`
	HistoricalMean int             `json:"media_historica"`
}

// Forecast is a persisted demand projection, one row per (kind, date).
type Forecast struct {
	UpdatedAt     time.Time    `json:"updated_at"`
	Kind          ForecastKind `json:"kind"`
	ReferenceDate string       `json:"reference_date"`
	Payload       []byte       `json:"payload"`
}
