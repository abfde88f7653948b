package booking

import (
	"fmt"
	"os"

	"github.com/praxisdesk/availability/adapter/cli"
	"github.com/praxisdesk/availability/internal/availability/application/queries"
	"github.com/praxisdesk/availability/internal/availability/infrastructure/caldav"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

var (
	exportScheduleID string
	exportFrom       string
	exportTo         string
	exportOut        string
	exportPublish    bool
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the calendar as iCalendar",
	Long: `Serialize the calendar view for a date range as an iCalendar
document, written to a file or stdout. With --publish the busy time is
pushed to the configured CalDAV calendar instead.

Examples:
  availctl booking export --schedule <id> --from 2026-03-09 --to 2026-03-15 --out week.ics
  availctl booking export --schedule <id> --from 2026-03-09 --to 2026-03-15 --publish`,
	RunE: func(cmd *cobra.Command, args []string) error {
		app := cli.GetApp()
		if app == nil || app.CalendarSlotsHandler == nil {
			return fmt.Errorf("booking commands require a configured store")
		}

		scheduleID, err := uuid.Parse(exportScheduleID)
		if err != nil {
			return fmt.Errorf("invalid schedule ID: %w", err)
		}
		from, to, err := parseCalendarRange(exportFrom, exportTo)
		if err != nil {
			return err
		}

		view, err := app.CalendarSlotsHandler.Handle(cmd.Context(), queries.CalendarSlotsQuery{
			ScheduleID: scheduleID,
			From:       from,
			To:         to,
		})
		if err != nil {
			return fmt.Errorf("failed to load calendar: %w", err)
		}

		if exportPublish {
			if app.CalDAVPublisher == nil {
				return fmt.Errorf("no CalDAV server configured; set CALDAV_URL")
			}
			result, err := app.CalDAVPublisher.Publish(cmd.Context(), view)
			if err != nil {
				return fmt.Errorf("failed to publish: %w", err)
			}
			fmt.Printf("Published busy time: %d created, %d updated, %d deleted, %d failed\n",
				result.Created, result.Updated, result.Deleted, result.Failed)
			return nil
		}

		out := os.Stdout
		if exportOut != "" {
			f, err := os.Create(exportOut)
			if err != nil {
				return fmt.Errorf("failed to create output file: %w", err)
			}
			defer f.Close()
			out = f
		}
		if err := caldav.WriteICS(out, view); err != nil {
			return fmt.Errorf("failed to write iCalendar: %w", err)
		}
		if exportOut != "" {
			fmt.Printf("Wrote %d events to %s\n", len(view), exportOut)
		}
		return nil
	},
}

func init() {
	exportCmd.Flags().StringVarP(&exportScheduleID, "schedule", "s", "", "schedule ID (required)")
	exportCmd.Flags().StringVar(&exportFrom, "from", "", "start date YYYY-MM-DD (required)")
	exportCmd.Flags().StringVar(&exportTo, "to", "", "end date YYYY-MM-DD, inclusive (default: --from)")
	exportCmd.Flags().StringVarP(&exportOut, "out", "o", "", "output file (default: stdout)")
	exportCmd.Flags().BoolVar(&exportPublish, "publish", false, "publish busy time to the CalDAV calendar")
	exportCmd.MarkFlagRequired("schedule")
	exportCmd.MarkFlagRequired("from")
}
