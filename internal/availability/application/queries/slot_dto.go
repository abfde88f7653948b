package queries

import (
	"time"

	"github.com/praxisdesk/availability/internal/availability/domain"
	"github.com/google/uuid"
)

// SlotDTO is the calendar-facing view of a slot.
type SlotDTO struct {
	ID          uuid.UUID `json:"id,omitempty"`
	Start       time.Time `json:"start"`
	End         time.Time `json:"end"`
	Status      string    `json:"status"`
	Virtual     bool      `json:"virtual"`
	Comment     string    `json:"comment,omitempty"`
	DurationMin int       `json:"duration_min"`
}

func toSlotDTO(s domain.Slot) SlotDTO {
	return SlotDTO{
		ID:          s.ID,
		Start:       s.Interval.Start,
		End:         s.Interval.End,
		Status:      string(s.Status),
		Virtual:     s.Virtual(),
		Comment:     s.Comment,
		DurationMin: int(s.Interval.Duration().Minutes()),
	}
}

func toSlotDTOs(slots []domain.Slot) []SlotDTO {
	dtos := make([]SlotDTO, len(slots))
	for i, s := range slots {
		dtos[i] = toSlotDTO(s)
	}
	return dtos
}
