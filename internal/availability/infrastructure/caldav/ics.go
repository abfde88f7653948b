// Package caldav publishes a schedule's busy time to a CalDAV calendar and
// serializes calendar views as iCalendar documents.
package caldav

import (
	"fmt"
	"io"
	"time"

	"github.com/praxisdesk/availability/internal/availability/application/queries"
	"github.com/emersion/go-ical"
	"github.com/google/uuid"
)

// PropManaged marks events owned by this exporter so foreign events are
// never touched on sync.
const PropManaged = "X-AVAILCTL"

const productID = "-//Praxisdesk//Availability//EN"

// ToCalendar builds one VCALENDAR holding a VEVENT per slot. Virtual free
// slots are exported as transparent events, persisted busy slots as opaque.
func ToCalendar(view []queries.SlotDTO) *ical.Calendar {
	cal := ical.NewCalendar()
	cal.Props.SetText(ical.PropVersion, "2.0")
	cal.Props.SetText(ical.PropProductID, productID)

	for _, slot := range view {
		cal.Children = append(cal.Children, slotEvent(slot).Component)
	}
	return cal
}

// WriteICS serializes the view to w as an iCalendar document.
func WriteICS(w io.Writer, view []queries.SlotDTO) error {
	return ical.NewEncoder(w).Encode(ToCalendar(view))
}

func slotEvent(slot queries.SlotDTO) *ical.Event {
	event := ical.NewEvent()

	uid := slot.ID
	if uid == uuid.Nil {
		// Virtual slots have no identity; derive a stable UID from the
		// interval so re-exports do not duplicate events.
		uid = uuid.NewSHA1(uuid.NameSpaceOID, []byte(slot.Start.UTC().Format(time.RFC3339)+"/"+slot.End.UTC().Format(time.RFC3339)))
	}
	event.Props.SetText(ical.PropUID, uid.String())
	event.Props.SetDateTime(ical.PropDateTimeStamp, time.Now().UTC())
	event.Props.SetDateTime(ical.PropDateTimeStart, slot.Start.UTC())
	event.Props.SetDateTime(ical.PropDateTimeEnd, slot.End.UTC())
	event.Props.SetText(ical.PropSummary, slotSummary(slot))

	transparency := "OPAQUE"
	if slot.Virtual {
		transparency = "TRANSPARENT"
	}
	event.Props.SetText(ical.PropTransparency, transparency)

	managed := ical.NewProp(PropManaged)
	managed.Value = "1"
	event.Props[PropManaged] = []ical.Prop{*managed}

	return event
}

func slotSummary(slot queries.SlotDTO) string {
	if slot.Comment != "" {
		return slot.Comment
	}
	switch slot.Status {
	case "free":
		return fmt.Sprintf("Available (%d min)", slot.DurationMin)
	case "busy-unavailable":
		return "Blocked"
	default:
		return "Busy"
	}
}
