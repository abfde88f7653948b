package availability

import (
	"testing"
	"time"

	"github.com/praxisdesk/availability/internal/availability/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseWindow(t *testing.T) {
	w, err := parseWindow("09:00-12:30")
	require.NoError(t, err)
	assert.Equal(t, domain.TimeWindow{StartMinute: 9 * 60, DurationMin: 210}, w)

	// Past-midnight windows wrap.
	w, err = parseWindow("22:00-02:00")
	require.NoError(t, err)
	assert.Equal(t, domain.TimeWindow{StartMinute: 22 * 60, DurationMin: 240}, w)

	_, err = parseWindow("09:00")
	assert.Error(t, err)
	_, err = parseWindow("9am-5pm")
	assert.Error(t, err)
}

func TestParseDuration(t *testing.T) {
	value, unit, err := parseDuration("30m")
	require.NoError(t, err)
	assert.Equal(t, 30.0, value)
	assert.Equal(t, domain.UnitMinutes, unit)

	value, unit, err = parseDuration("1.5h")
	require.NoError(t, err)
	assert.Equal(t, 1.5, value)
	assert.Equal(t, domain.UnitHours, unit)

	value, unit, err = parseDuration("45min")
	require.NoError(t, err)
	assert.Equal(t, 45.0, value)
	assert.Equal(t, domain.UnitMinutes, unit)

	_, _, err = parseDuration("half an hour")
	assert.Error(t, err)
	_, _, err = parseDuration("-10m")
	assert.Error(t, err)
}

func TestParseLimit(t *testing.T) {
	limit, err := parseLimit("5/day")
	require.NoError(t, err)
	assert.Equal(t, domain.BookingLimit{MaxCount: 5, PeriodLength: 1, PeriodUnit: domain.PeriodDay}, limit)

	limit, err = parseLimit("8/2w")
	require.NoError(t, err)
	assert.Equal(t, domain.BookingLimit{MaxCount: 8, PeriodLength: 2, PeriodUnit: domain.PeriodWeek}, limit)

	limit, err = parseLimit("20/month")
	require.NoError(t, err)
	assert.Equal(t, domain.BookingLimit{MaxCount: 20, PeriodLength: 1, PeriodUnit: domain.PeriodMonth}, limit)

	_, err = parseLimit("5")
	assert.Error(t, err)
	_, err = parseLimit("0/day")
	assert.Error(t, err)
	_, err = parseLimit("5/fortnight")
	assert.Error(t, err)
}

func TestParseDay(t *testing.T) {
	day, err := parseDay("Mon")
	require.NoError(t, err)
	assert.Equal(t, time.Monday, day)

	_, err = parseDay("monday2")
	assert.Error(t, err)
}
