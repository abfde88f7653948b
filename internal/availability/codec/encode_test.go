package codec_test

import (
	"testing"
	"time"

	"github.com/praxisdesk/availability/internal/availability/codec"
	"github.com/praxisdesk/availability/internal/availability/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func window(startHour, durMin int) domain.TimeWindow {
	return domain.TimeWindow{StartMinute: domain.TimeOfDay(startHour * 60), DurationMin: durMin}
}

func recurringEntries(block codec.Extension) []codec.Extension {
	var out []codec.Extension
	for _, e := range block.Extensions {
		if e.URL == codec.URLRecurring {
			out = append(out, e)
		}
	}
	return out
}

func dayCodesOf(entry codec.Extension) []string {
	var out []string
	for _, e := range entry.Extensions {
		if e.URL == codec.URLDay && e.ValueCode != nil {
			out = append(out, *e.ValueCode)
		}
	}
	return out
}

func startTimesOf(entry codec.Extension) []string {
	var out []string
	for _, e := range entry.Extensions {
		if e.URL == codec.URLStart && e.ValueTime != nil {
			out = append(out, *e.ValueTime)
		}
	}
	return out
}

func TestEncode_CompactsDaysSharingWindow(t *testing.T) {
	cfg := domain.NewAvailabilityConfig()
	for _, day := range []time.Weekday{time.Monday, time.Wednesday, time.Friday} {
		cfg.Week.AddWindow(day, window(9, 480))
	}
	for _, day := range []time.Weekday{time.Tuesday, time.Thursday} {
		cfg.Week.AddWindow(day, window(9, 480))
	}

	block := codec.Encode("", cfg)

	entries := recurringEntries(block)
	require.Len(t, entries, 1, "five weekdays sharing one window must collapse into a single entry")
	assert.ElementsMatch(t, []string{"mon", "tue", "wed", "thu", "fri"}, dayCodesOf(entries[0]))
	assert.Equal(t, []string{"09:00"}, startTimesOf(entries[0]))
}

func TestEncode_CompactsStartTimesSharingDaySet(t *testing.T) {
	cfg := domain.NewAvailabilityConfig()
	for _, day := range []time.Weekday{time.Monday, time.Tuesday} {
		cfg.Week.AddWindow(day, window(9, 120))
		cfg.Week.AddWindow(day, window(14, 120))
	}

	block := codec.Encode("", cfg)

	entries := recurringEntries(block)
	require.Len(t, entries, 1, "two starts over an identical day set and duration must share one entry")
	assert.ElementsMatch(t, []string{"mon", "tue"}, dayCodesOf(entries[0]))
	assert.ElementsMatch(t, []string{"09:00", "14:00"}, startTimesOf(entries[0]))
}

func TestEncode_DistinctDurationsStaySeparate(t *testing.T) {
	cfg := domain.NewAvailabilityConfig()
	cfg.Week.AddWindow(time.Monday, window(9, 120))
	cfg.Week.AddWindow(time.Monday, window(14, 90))

	entries := recurringEntries(codec.Encode("", cfg))
	assert.Len(t, entries, 2)
}

func TestEncode_OrderIndependent(t *testing.T) {
	// The same week built with different insertion orders.
	a := domain.NewAvailabilityConfig()
	a.Week.AddWindow(time.Monday, window(9, 480))
	a.Week.AddWindow(time.Friday, window(9, 480))
	a.Week.AddWindow(time.Wednesday, window(9, 480))

	b := domain.NewAvailabilityConfig()
	b.Week.AddWindow(time.Friday, window(9, 480))
	b.Week.AddWindow(time.Wednesday, window(9, 480))
	b.Week.AddWindow(time.Monday, window(9, 480))

	assert.ElementsMatch(t,
		recurringEntries(codec.Encode("", a)),
		recurringEntries(codec.Encode("", b)),
	)
}

func TestEncode_ImpliedDefaultWindowMadeExplicit(t *testing.T) {
	cfg := domain.NewAvailabilityConfig()
	cfg.Week.EnableDay(time.Saturday)

	entries := recurringEntries(codec.Encode("", cfg))
	require.Len(t, entries, 1)
	assert.Equal(t, []string{"sat"}, dayCodesOf(entries[0]))
	assert.Equal(t, []string{"09:00"}, startTimesOf(entries[0]))
}

func TestEncode_OmitsUnsetSiblings(t *testing.T) {
	cfg := domain.NewAvailabilityConfig()
	cfg.Week.AddWindow(time.Monday, window(9, 60))

	block := codec.Encode("", cfg)
	for _, e := range block.Extensions {
		assert.NotEqual(t, codec.URLBufferBefore, e.URL)
		assert.NotEqual(t, codec.URLBufferAfter, e.URL)
		assert.NotEqual(t, codec.URLAlignmentInterval, e.URL)
		assert.NotEqual(t, codec.URLBookingLimit, e.URL)
		assert.NotEqual(t, codec.URLTimezone, e.URL)
		assert.NotEqual(t, codec.URLServiceType, e.URL)
	}
}

func TestEncode_MeaninglessBookingLimitOmitted(t *testing.T) {
	cfg := domain.NewAvailabilityConfig()
	cfg.Week.AddWindow(time.Monday, window(9, 60))
	// Bypass AddBookingLimit to simulate a stale in-memory value.
	cfg.BookingLimits = []domain.BookingLimit{
		{MaxCount: 0, PeriodLength: 1, PeriodUnit: domain.PeriodDay},
		{MaxCount: 6, PeriodLength: 1, PeriodUnit: domain.PeriodDay},
	}

	var limits []codec.Extension
	for _, e := range codec.Encode("", cfg).Extensions {
		if e.URL == codec.URLBookingLimit {
			limits = append(limits, e)
		}
	}
	assert.Len(t, limits, 1)
}

func TestEncode_ServiceTypeAndSiblings(t *testing.T) {
	cfg := domain.NewAvailabilityConfig()
	cfg.DurationValue = 45
	cfg.DurationUnit = domain.UnitMinutes
	cfg.Week.AddWindow(time.Monday, window(8, 240))
	cfg.BufferBeforeMin = 10
	cfg.BufferAfterMin = 5
	cfg.AlignmentIntervalMin = 15
	cfg.AlignmentOffsetMin = 5
	cfg.AddBookingLimit(domain.BookingLimit{MaxCount: 8, PeriodLength: 1, PeriodUnit: domain.PeriodDay})
	cfg.Timezone = "Europe/Berlin"

	block := codec.Encode("physio", cfg)

	urls := make(map[string]int)
	for _, e := range block.Extensions {
		urls[e.URL]++
	}
	assert.Equal(t, 1, urls[codec.URLServiceType])
	assert.Equal(t, 1, urls[codec.URLDuration])
	assert.Equal(t, 1, urls[codec.URLRecurring])
	assert.Equal(t, 1, urls[codec.URLBufferBefore])
	assert.Equal(t, 1, urls[codec.URLBufferAfter])
	assert.Equal(t, 1, urls[codec.URLAlignmentInterval])
	assert.Equal(t, 1, urls[codec.URLAlignmentOffset])
	assert.Equal(t, 1, urls[codec.URLBookingLimit])
	assert.Equal(t, 1, urls[codec.URLTimezone])
}

func TestEncodeAll_DefaultFirstOverridesSorted(t *testing.T) {
	def := domain.NewAvailabilityConfig()
	def.Week.AddWindow(time.Monday, window(9, 480))

	blocks := codec.EncodeAll(def, []domain.ServiceOverride{
		{ServiceType: "physio", Config: domain.NewAvailabilityConfig()},
		{ServiceType: "consult", Config: domain.NewAvailabilityConfig()},
	})

	require.Len(t, blocks, 3)
	_, hasServiceType := blockServiceType(blocks[0])
	assert.False(t, hasServiceType)

	st1, _ := blockServiceType(blocks[1])
	st2, _ := blockServiceType(blocks[2])
	assert.Equal(t, "consult", st1)
	assert.Equal(t, "physio", st2)
}

func blockServiceType(block codec.Extension) (string, bool) {
	for _, e := range block.Extensions {
		if e.URL == codec.URLServiceType && e.ValueCode != nil {
			return *e.ValueCode, true
		}
	}
	return "", false
}
