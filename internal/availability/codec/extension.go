// Package codec maps the persisted extension-tree representation of
// availability configuration to and from the typed domain model.
//
// The store serializes one configuration scope as a named extension block:
// an optional service-type key, a required appointment duration, zero or
// more recurring-availability entries (day set + start-time set + one
// duration), optional buffers, optional alignment grid, zero or more
// booking limits, and an optional timezone. Callers decode the raw tree
// once, eagerly, and work with domain.AvailabilityConfig everywhere else.
package codec

import (
	"time"

	"github.com/praxisdesk/availability/internal/availability/domain"
)

// Extension URLs of the availability block and its children.
const (
	URLAvailability = "availability"

	URLServiceType       = "service-type"
	URLDuration          = "duration"
	URLRecurring         = "recurring"
	URLDay               = "day"
	URLStart             = "start"
	URLEnd               = "end"
	URLBufferBefore      = "buffer-before"
	URLBufferAfter       = "buffer-after"
	URLAlignmentInterval = "alignment-interval"
	URLAlignmentOffset   = "alignment-offset"
	URLBookingLimit      = "booking-limit"
	URLLimitCount        = "count"
	URLLimitPeriod       = "period"
	URLLimitPeriodUnit   = "period-unit"
	URLTimezone          = "timezone"
)

// Extension is one node of the raw persisted key/value tree.
type Extension struct {
	URL        string      `json:"url"`
	Extensions []Extension `json:"extension,omitempty"`

	ValueString   *string        `json:"valueString,omitempty"`
	ValueInteger  *int           `json:"valueInteger,omitempty"`
	ValueTime     *string        `json:"valueTime,omitempty"`
	ValueCode     *string        `json:"valueCode,omitempty"`
	ValueDuration *DurationValue `json:"valueDuration,omitempty"`
}

// DurationValue is a persisted duration with its source unit ("min" or "h").
type DurationValue struct {
	Value float64 `json:"value"`
	Unit  string  `json:"unit"`
}

// Minutes normalizes the duration to whole minutes regardless of unit.
func (d DurationValue) Minutes() int {
	return domain.DurationUnit(d.Unit).ToMinutes(d.Value)
}

// child returns the first direct child with the given URL.
func (e Extension) child(url string) (Extension, bool) {
	for _, c := range e.Extensions {
		if c.URL == url {
			return c, true
		}
	}
	return Extension{}, false
}

// children returns all direct children with the given URL.
func (e Extension) children(url string) []Extension {
	var out []Extension
	for _, c := range e.Extensions {
		if c.URL == url {
			out = append(out, c)
		}
	}
	return out
}

func codeExt(url, code string) Extension {
	return Extension{URL: url, ValueCode: &code}
}

func timeExt(url string, t domain.TimeOfDay) Extension {
	s := t.String()
	return Extension{URL: url, ValueTime: &s}
}

func intExt(url string, v int) Extension {
	return Extension{URL: url, ValueInteger: &v}
}

func durationExt(url string, d DurationValue) Extension {
	return Extension{URL: url, ValueDuration: &d}
}

// dayCodes maps persisted weekday codes to time.Weekday, in the canonical
// Mon..Sun serialization order.
var dayCodes = []struct {
	Code string
	Day  time.Weekday
}{
	{"mon", time.Monday},
	{"tue", time.Tuesday},
	{"wed", time.Wednesday},
	{"thu", time.Thursday},
	{"fri", time.Friday},
	{"sat", time.Saturday},
	{"sun", time.Sunday},
}

func dayFromCode(code string) (time.Weekday, bool) {
	for _, dc := range dayCodes {
		if dc.Code == code {
			return dc.Day, true
		}
	}
	return 0, false
}

func codeForDay(day time.Weekday) string {
	for _, dc := range dayCodes {
		if dc.Day == day {
			return dc.Code
		}
	}
	return ""
}
