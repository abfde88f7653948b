package domain

import (
	"errors"

	"github.com/google/uuid"
)

var ErrBadSeries = errors.New("series needs a count of at least one occurrence")

// SeriesOccurrence is one generated instance of a recurring series.
type SeriesOccurrence struct {
	Interval Interval
	// SeriesID links occurrences for bulk cancellation. The first occurrence
	// of a series carries uuid.Nil, as does a single non-recurring occurrence.
	SeriesID uuid.UUID
}

// ExpandSeries produces count occurrences from a first occurrence, spaced
// intervalWeeks weeks apart, preserving the original duration exactly.
// Occurrences after the first share a freshly generated series identifier.
// A count of one, or a disabled interval, yields just the first occurrence
// with no series identifier.
func ExpandSeries(first Interval, count, intervalWeeks int) ([]SeriesOccurrence, error) {
	if count < 1 {
		return nil, ErrBadSeries
	}
	if count == 1 || intervalWeeks < 1 {
		return []SeriesOccurrence{{Interval: first}}, nil
	}

	seriesID := uuid.New()
	occurrences := make([]SeriesOccurrence, 0, count)
	for i := 0; i < count; i++ {
		days := i * intervalWeeks * 7
		occ := SeriesOccurrence{
			Interval: Interval{
				Start: first.Start.AddDate(0, 0, days),
				End:   first.End.AddDate(0, 0, days),
			},
		}
		if i > 0 {
			occ.SeriesID = seriesID
		}
		occurrences = append(occurrences, occ)
	}
	return occurrences, nil
}
