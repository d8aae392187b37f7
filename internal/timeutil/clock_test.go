package timeutil

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParseClock(t *testing.T) {
	minutes, err := ParseClock("08:30")
	assert.NoError(t, err)
	assert.Equal(t, 510, minutes)

	minutes, err = ParseClock("00:00")
	assert.NoError(t, err)
	assert.Equal(t, 0, minutes)

	_, err = ParseClock("24:00")
	assert.Error(t, err)
	_, err = ParseClock("8:30")
	assert.Error(t, err)
	_, err = ParseClock("0830")
	assert.Error(t, err)
}

func TestFormatClock(t *testing.T) {
	assert.Equal(t, "08:30", FormatClock(510))
	assert.Equal(t, "00:00", FormatClock(0))
	assert.Equal(t, "23:59", FormatClock(23*60+59))
}

func TestCombine(t *testing.T) {
	date := time.Date(2026, 9, 10, 0, 0, 0, 0, time.Local)
	combined, err := Combine(date, "14:45")
	assert.NoError(t, err)
	assert.Equal(t, time.Date(2026, 9, 10, 14, 45, 0, 0, time.Local), combined)
}

func TestParseDate(t *testing.T) {
	date, err := ParseDate("2026-09-10")
	assert.NoError(t, err)
	assert.Equal(t, 2026, date.Year())
	assert.Equal(t, time.September, date.Month())

	_, err = ParseDate("10/09/2026")
	assert.Error(t, err)
}
