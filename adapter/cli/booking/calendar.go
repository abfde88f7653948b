package booking

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/praxisdesk/availability/adapter/cli"
	"github.com/praxisdesk/availability/internal/availability/application/queries"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

var (
	calendarScheduleID string
	calendarFrom       string
	calendarTo         string
)

var calendarCmd = &cobra.Command{
	Use:   "calendar",
	Short: "Show the calendar view for a schedule",
	Long: `Display the merged calendar for a date range: persisted busy and
blocked slots, overlaid with the virtual free slots from the default
availability.

Examples:
  availctl booking calendar --schedule <id> --from 2026-03-09 --to 2026-03-15`,
	RunE: func(cmd *cobra.Command, args []string) error {
		app := cli.GetApp()
		if app == nil || app.CalendarSlotsHandler == nil {
			return fmt.Errorf("booking commands require a configured store")
		}

		scheduleID, err := uuid.Parse(calendarScheduleID)
		if err != nil {
			return fmt.Errorf("invalid schedule ID: %w", err)
		}
		from, to, err := parseCalendarRange(calendarFrom, calendarTo)
		if err != nil {
			return err
		}

		view, err := app.CalendarSlotsHandler.Handle(cmd.Context(), queries.CalendarSlotsQuery{
			ScheduleID: scheduleID,
			From:       from,
			To:         to,
		})
		if err != nil {
			// A superseded fetch means a newer view is on its way; stay quiet.
			if errors.Is(err, queries.ErrFetchSuperseded) {
				return nil
			}
			return fmt.Errorf("failed to load calendar: %w", err)
		}

		if len(view) == 0 {
			fmt.Println("Empty calendar.")
			return nil
		}

		fmt.Printf("Calendar %s - %s:\n", from.Format("2006-01-02"), to.AddDate(0, 0, -1).Format("2006-01-02"))
		fmt.Println(strings.Repeat("-", 60))
		for _, slot := range view {
			marker := " "
			if slot.Virtual {
				marker = "~"
			}
			line := fmt.Sprintf("%s %s  %s - %s  %-16s",
				marker,
				slot.Start.Format("Mon 2006-01-02"),
				slot.Start.Format("15:04"),
				slot.End.Format("15:04"),
				slot.Status,
			)
			if slot.Comment != "" {
				line += "  " + slot.Comment
			}
			fmt.Println(line)
		}
		return nil
	},
}

func parseCalendarRange(fromStr, toStr string) (time.Time, time.Time, error) {
	from, err := time.ParseInLocation("2006-01-02", fromStr, time.Local)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid --from date, use YYYY-MM-DD: %w", err)
	}
	to := from
	if toStr != "" {
		to, err = time.ParseInLocation("2006-01-02", toStr, time.Local)
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("invalid --to date, use YYYY-MM-DD: %w", err)
		}
	}
	to = to.AddDate(0, 0, 1)
	if !to.After(from) {
		return time.Time{}, time.Time{}, fmt.Errorf("--to must not be before --from")
	}
	return from, to, nil
}

func init() {
	calendarCmd.Flags().StringVarP(&calendarScheduleID, "schedule", "s", "", "schedule ID (required)")
	calendarCmd.Flags().StringVar(&calendarFrom, "from", "", "start date YYYY-MM-DD (required)")
	calendarCmd.Flags().StringVar(&calendarTo, "to", "", "end date YYYY-MM-DD, inclusive (default: --from)")
	calendarCmd.MarkFlagRequired("schedule")
	calendarCmd.MarkFlagRequired("from")
}
