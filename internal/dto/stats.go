package dto

import (
	"github.com/shopspring/decimal"

	"github.com/noah-isme/music-school-api/internal/models"
)

// InstrumentCount is the number of students learning one instrument.
type InstrumentCount struct {
	Instrument models.Instrument `json:"instrument"`
	Count      int               `json:"count"`
}

// WindowStats aggregates activity over a closed date window.
type WindowStats struct {
	ActiveStudents      int               `json:"activeStudents"`
	TotalPayments       decimal.Decimal   `json:"totalPayments"`
	TotalExpenses       decimal.Decimal   `json:"totalExpenses"`
	InstrumentBreakdown []InstrumentCount `json:"instrumentBreakdown"`
}

// CombinedStats pairs the calendar month with the trailing twelve months.
type CombinedStats struct {
	Month   string      `json:"month"`
	Monthly WindowStats `json:"monthly"`
	Yearly  WindowStats `json:"yearly"`
	HasData bool        `json:"hasData"`
}

// MonthlySeriesPoint holds payment and expense totals for a single month.
type MonthlySeriesPoint struct {
	Month    string          `json:"month"`
	Payments decimal.Decimal `json:"payments"`
	Expenses decimal.Decimal `json:"expenses"`
}

// DashboardOverview is the payload rendered by the dashboard page.
type DashboardOverview struct {
	Month  string               `json:"month"`
	Stats  CombinedStats        `json:"stats"`
	Series []MonthlySeriesPoint `json:"series"`
}
