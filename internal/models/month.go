package models

import (
	"fmt"
	"strings"
	"time"
)

// YearMonth identifies a calendar month.
type YearMonth struct {
	Year  int
	Month time.Month
}

// ParseYearMonth accepts "YYYY-MM" or a full "YYYY-MM-DD" date.
func ParseYearMonth(value string) (YearMonth, error) {
	value = strings.TrimSpace(value)
	for _, layout := range []string{"2006-01", "2006-01-02"} {
		if t, err := time.Parse(layout, value); err == nil {
			return YearMonth{Year: t.Year(), Month: t.Month()}, nil
		}
	}
	return YearMonth{}, fmt.Errorf("invalid month %q, expected YYYY-MM", value)
}

// MonthOf returns the month containing t.
func MonthOf(t time.Time) YearMonth {
	return YearMonth{Year: t.Year(), Month: t.Month()}
}

// String formats the month as YYYY-MM.
func (m YearMonth) String() string {
	return fmt.Sprintf("%04d-%02d", m.Year, int(m.Month))
}

// Start returns midnight on the first day of the month in loc.
func (m YearMonth) Start(loc *time.Location) time.Time {
	if loc == nil {
		loc = time.UTC
	}
	return time.Date(m.Year, m.Month, 1, 0, 0, 0, 0, loc)
}

// End returns the last microsecond of the month in loc.
func (m YearMonth) End(loc *time.Location) time.Time {
	return m.Start(loc).AddDate(0, 1, 0).Add(-time.Microsecond)
}

// AddMonths shifts the month by n, which may be negative.
func (m YearMonth) AddMonths(n int) YearMonth {
	return MonthOf(m.Start(time.UTC).AddDate(0, n, 0))
}
