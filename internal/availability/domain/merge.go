package domain

import "sort"

// MergeSlots canonicalizes persisted slots for calendar display: slots of the
// same status whose intervals overlap or touch collapse into one covering
// slot. Slots of different status are never combined, even when touching.
//
// The operation is idempotent and its output ordering (status, then start
// time) is stable under re-merge. Virtual slots are display artifacts and
// must not be passed through here.
func MergeSlots(slots []Slot) []Slot {
	if len(slots) < 2 {
		return slots
	}

	sorted := make([]Slot, len(slots))
	copy(sorted, slots)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].Status != sorted[j].Status {
			return sorted[i].Status < sorted[j].Status
		}
		return sorted[i].Interval.Start.Before(sorted[j].Interval.Start)
	})

	merged := make([]Slot, 0, len(sorted))
	cur := sorted[0]
	for _, s := range sorted[1:] {
		if s.Status == cur.Status && !s.Interval.Start.After(cur.Interval.End) {
			if s.Interval.End.After(cur.Interval.End) {
				cur.Interval.End = s.Interval.End
			}
			if cur.Comment == "" {
				cur.Comment = s.Comment
			}
			continue
		}
		merged = append(merged, cur)
		cur = s
	}
	merged = append(merged, cur)
	return merged
}
