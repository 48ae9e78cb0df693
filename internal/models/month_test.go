package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseYearMonth(t *testing.T) {
	m, err := ParseYearMonth("2024-06")
	require.NoError(t, err)
	assert.Equal(t, YearMonth{Year: 2024, Month: time.June}, m)

	m, err = ParseYearMonth(" 2024-02-29 ")
	require.NoError(t, err)
	assert.Equal(t, "2024-02", m.String())

	for _, bad := range []string{"", "2024", "2024-13", "June 2024", "2024/06"} {
		_, err := ParseYearMonth(bad)
		assert.Error(t, err, bad)
	}
}

func TestYearMonthBounds(t *testing.T) {
	m := YearMonth{Year: 2024, Month: time.February}
	assert.Equal(t, time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC), m.Start(nil))
	assert.Equal(t, time.Date(2024, 2, 29, 23, 59, 59, 999999000, time.UTC), m.End(time.UTC))

	assert.Equal(t, YearMonth{Year: 2023, Month: time.June}, YearMonth{Year: 2024, Month: time.June}.AddMonths(-12))
	assert.Equal(t, YearMonth{Year: 2025, Month: time.January}, YearMonth{Year: 2024, Month: time.December}.AddMonths(1))
}

func TestInstrumentsCanonicalOrder(t *testing.T) {
	list := Instruments()
	assert.Equal(t, []Instrument{InstrumentGuitar, InstrumentDrums, InstrumentKeyboard}, list)
	list[0] = "violin"
	assert.Equal(t, InstrumentGuitar, Instruments()[0])
	assert.False(t, Instrument("violin").Valid())
	assert.True(t, InstrumentKeyboard.Valid())
}
