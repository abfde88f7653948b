package cli

import (
	"github.com/praxisdesk/availability/internal/availability/application/commands"
	"github.com/praxisdesk/availability/internal/availability/application/queries"
	"github.com/praxisdesk/availability/internal/availability/infrastructure/caldav"
)

// App holds the CLI application dependencies.
type App struct {
	// Command Handlers
	SaveAvailabilityHandler *commands.SaveAvailabilityHandler
	BookAppointmentHandler  *commands.BookAppointmentHandler
	BlockTimeHandler        *commands.BlockTimeHandler
	UnblockTimeHandler      *commands.UnblockTimeHandler
	CancelSeriesHandler     *commands.CancelSeriesHandler

	// Query Handlers
	GetAvailabilityHandler *queries.GetAvailabilityHandler
	ExpandSlotsHandler     *queries.ExpandSlotsHandler
	CalendarSlotsHandler   *queries.CalendarSlotsHandler

	// CalDAV publisher; nil unless configured.
	CalDAVPublisher *caldav.Publisher
}

// NewApp creates a new CLI application with the provided handlers.
func NewApp(
	saveAvailabilityHandler *commands.SaveAvailabilityHandler,
	bookAppointmentHandler *commands.BookAppointmentHandler,
	blockTimeHandler *commands.BlockTimeHandler,
	unblockTimeHandler *commands.UnblockTimeHandler,
	cancelSeriesHandler *commands.CancelSeriesHandler,
	getAvailabilityHandler *queries.GetAvailabilityHandler,
	expandSlotsHandler *queries.ExpandSlotsHandler,
	calendarSlotsHandler *queries.CalendarSlotsHandler,
) *App {
	return &App{
		SaveAvailabilityHandler: saveAvailabilityHandler,
		BookAppointmentHandler:  bookAppointmentHandler,
		BlockTimeHandler:        blockTimeHandler,
		UnblockTimeHandler:      unblockTimeHandler,
		CancelSeriesHandler:     cancelSeriesHandler,
		GetAvailabilityHandler:  getAvailabilityHandler,
		ExpandSlotsHandler:      expandSlotsHandler,
		CalendarSlotsHandler:    calendarSlotsHandler,
	}
}

// SetCalDAVPublisher updates the CalDAV publisher.
func (a *App) SetCalDAVPublisher(publisher *caldav.Publisher) {
	a.CalDAVPublisher = publisher
}

// app is the global CLI application instance
var app *App

// SetApp sets the global CLI application instance.
func SetApp(a *App) {
	app = a
}

// GetApp returns the global CLI application instance.
func GetApp() *App {
	return app
}
