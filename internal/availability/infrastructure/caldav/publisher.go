package caldav

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/praxisdesk/availability/internal/availability/application/queries"
	"github.com/emersion/go-ical"
	"github.com/emersion/go-webdav"
	"github.com/emersion/go-webdav/caldav"
	"github.com/google/uuid"
)

// PublishResult reports what one publish run changed on the remote calendar.
type PublishResult struct {
	Created int
	Updated int
	Deleted int
	Failed  int
}

// Publisher mirrors a schedule's busy time onto a CalDAV calendar (Apple
// Calendar, Fastmail, Nextcloud, and the like). Only events it created are
// ever updated or deleted.
type Publisher struct {
	baseURL       string
	username      string
	password      string
	calendarPath  string
	logger        *slog.Logger
	deleteMissing bool
}

// NewPublisher creates a CalDAV busy-time publisher.
func NewPublisher(baseURL, username, password string, logger *slog.Logger) *Publisher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Publisher{
		baseURL:  baseURL,
		username: username,
		password: password,
		logger:   logger,
	}
}

// WithDeleteMissing enables deletion of managed events absent from the
// current publish set.
func (p *Publisher) WithDeleteMissing(enabled bool) *Publisher {
	p.deleteMissing = enabled
	return p
}

// WithCalendarPath pins the publisher to a specific calendar path instead of
// the principal's first calendar.
func (p *Publisher) WithCalendarPath(path string) *Publisher {
	p.calendarPath = path
	return p
}

// Publish upserts one event per non-virtual slot in the view. Virtual free
// slots stay local: the remote calendar carries only real busy time.
func (p *Publisher) Publish(ctx context.Context, view []queries.SlotDTO) (*PublishResult, error) {
	client, err := p.getClient()
	if err != nil {
		return nil, err
	}

	calPath, err := p.findCalendarPath(ctx, client)
	if err != nil {
		return nil, fmt.Errorf("failed to find calendar: %w", err)
	}

	result := &PublishResult{}
	keepPaths := make(map[string]struct{})

	for _, slot := range view {
		if slot.Virtual || slot.ID == uuid.Nil {
			continue
		}
		eventPath := fmt.Sprintf("%s%s.ics", calPath, slot.ID)
		keepPaths[eventPath] = struct{}{}

		cal := ToCalendar([]queries.SlotDTO{slot})
		updated, err := p.upsertEvent(ctx, client, eventPath, cal)
		if err != nil {
			p.logger.Warn("caldav publish failed", "event_path", eventPath, "error", err)
			result.Failed++
			continue
		}
		if updated {
			result.Updated++
		} else {
			result.Created++
		}
	}

	if p.deleteMissing {
		deleted, err := p.deleteMissingEvents(ctx, client, calPath, keepPaths)
		if err != nil {
			p.logger.Warn("caldav delete missing failed", "error", err)
		} else {
			result.Deleted = deleted
		}
	}

	return result, nil
}

func (p *Publisher) getClient() (*caldav.Client, error) {
	httpClient := &http.Client{Timeout: 30 * time.Second}
	client, err := caldav.NewClient(
		webdav.HTTPClientWithBasicAuth(httpClient, p.username, p.password), p.baseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to create caldav client: %w", err)
	}
	return client, nil
}

func (p *Publisher) findCalendarPath(ctx context.Context, client *caldav.Client) (string, error) {
	if p.calendarPath != "" {
		return p.calendarPath, nil
	}

	principal, err := client.FindCurrentUserPrincipal(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to find principal: %w", err)
	}

	homeSet, err := client.FindCalendarHomeSet(ctx, principal)
	if err != nil {
		return "", fmt.Errorf("failed to find calendar home set: %w", err)
	}

	cals, err := client.FindCalendars(ctx, homeSet)
	if err != nil {
		return "", fmt.Errorf("failed to find calendars: %w", err)
	}
	if len(cals) == 0 {
		return "", fmt.Errorf("no calendars found")
	}
	return cals[0].Path, nil
}

func (p *Publisher) upsertEvent(ctx context.Context, client *caldav.Client, eventPath string, cal *ical.Calendar) (bool, error) {
	_, err := client.GetCalendarObject(ctx, eventPath)
	exists := err == nil

	if _, err := client.PutCalendarObject(ctx, eventPath, cal); err != nil {
		return false, err
	}
	return exists, nil
}

func (p *Publisher) deleteMissingEvents(ctx context.Context, client *caldav.Client, calPath string, keepPaths map[string]struct{}) (int, error) {
	query := &caldav.CalendarQuery{
		CompRequest: caldav.CalendarCompRequest{
			Name: "VCALENDAR",
			Comps: []caldav.CalendarCompRequest{
				{
					Name:  "VEVENT",
					Props: []string{"UID", PropManaged},
				},
			},
		},
		CompFilter: caldav.CompFilter{
			Name: "VCALENDAR",
			Comps: []caldav.CompFilter{
				{Name: "VEVENT"},
			},
		},
	}

	objects, err := client.QueryCalendar(ctx, calPath, query)
	if err != nil {
		return 0, err
	}

	deleted := 0
	for _, obj := range objects {
		if !isManagedEvent(&obj) {
			continue
		}
		if _, ok := keepPaths[obj.Path]; ok {
			continue
		}
		if err := client.RemoveAll(ctx, obj.Path); err != nil {
			p.logger.Warn("failed to delete caldav event", "path", obj.Path, "error", err)
			continue
		}
		deleted++
	}
	return deleted, nil
}

// isManagedEvent checks for the marker property this publisher stamps on
// every event it writes.
func isManagedEvent(obj *caldav.CalendarObject) bool {
	if obj == nil || obj.Data == nil {
		return false
	}
	for _, child := range obj.Data.Children {
		if child.Name != ical.CompEvent {
			continue
		}
		if props := child.Props[PropManaged]; len(props) > 0 && props[0].Value == "1" {
			return true
		}
	}
	return false
}
