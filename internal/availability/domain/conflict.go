package domain

import "errors"

var (
	ErrTimeBlocked        = errors.New("requested time falls in blocked time")
	ErrAppointmentOverlap = errors.New("requested time overlaps an existing appointment")
)

// The checks below are advisory: they fast-fail a mutation against the last
// fetched snapshot before a write is issued. The backing store remains the
// authority and may still reject the write under concurrent mutation; a
// write-time rejection must be treated as authoritative by callers.

// CheckAgainstBlocked rejects a candidate interval that overlaps any
// persisted busy-unavailable slot. Virtual slots are ignored.
func CheckAgainstBlocked(candidate Interval, slots []Slot) error {
	for _, s := range slots {
		if s.Virtual() || s.Status != SlotBusyUnavailable {
			continue
		}
		if candidate.Overlaps(s.Interval) {
			return ErrTimeBlocked
		}
	}
	return nil
}

// CheckAgainstAppointments rejects a candidate interval that overlaps any
// non-cancelled appointment. Used both for new appointments and for new
// blocks (a block must not be created over a live appointment).
func CheckAgainstAppointments(candidate Interval, appointments []*Appointment) error {
	for _, a := range appointments {
		if a.IsCancelled() {
			continue
		}
		if candidate.Overlaps(a.Interval()) {
			return ErrAppointmentOverlap
		}
	}
	return nil
}
