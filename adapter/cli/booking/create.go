package booking

import (
	"fmt"
	"time"

	"github.com/praxisdesk/availability/adapter/cli"
	"github.com/praxisdesk/availability/internal/availability/application/commands"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

var (
	createScheduleID  string
	createDate        string
	createStart       string
	createEnd         string
	createDescription string
	createSlotID      string
	createRecurCount  int
	createRecurWeeks  int
)

var createCmd = &cobra.Command{
	Use:   "create",
	Short: "Book an appointment or a recurring series",
	Long: `Book one appointment, or a weekly-interval series with --recur-count.
Series occurrences repeat at --recur-weeks intervals at the same wall
clock time; follow-up occurrences share a series ID for bulk cancellation.

Examples:
  availctl booking create --schedule <id> --date 2026-03-09 --start 09:00 --end 09:30 --desc "Intake"
  availctl booking create --schedule <id> --date 2026-03-09 --start 09:00 --end 10:00 --recur-count 6 --recur-weeks 2`,
	RunE: func(cmd *cobra.Command, args []string) error {
		app := cli.GetApp()
		if app == nil || app.BookAppointmentHandler == nil {
			return fmt.Errorf("booking commands require a configured store")
		}

		scheduleID, err := uuid.Parse(createScheduleID)
		if err != nil {
			return fmt.Errorf("invalid schedule ID: %w", err)
		}

		start, end, err := parseTimedRange(createDate, createStart, createEnd)
		if err != nil {
			return err
		}

		var slotID uuid.UUID
		if createSlotID != "" {
			slotID, err = uuid.Parse(createSlotID)
			if err != nil {
				return fmt.Errorf("invalid slot ID: %w", err)
			}
		}

		result, err := app.BookAppointmentHandler.Handle(cmd.Context(), commands.BookAppointmentCommand{
			ScheduleID:         scheduleID,
			Start:              start,
			End:                end,
			Description:        createDescription,
			SlotID:             slotID,
			RecurCount:         createRecurCount,
			RecurIntervalWeeks: createRecurWeeks,
		})
		if err != nil {
			return fmt.Errorf("failed to book: %w", err)
		}

		if len(result.AppointmentIDs) == 1 {
			fmt.Printf("Booked appointment %s\n", result.AppointmentIDs[0])
			return nil
		}
		fmt.Printf("Booked %d appointments (series %s)\n", len(result.AppointmentIDs), result.SeriesID)
		for i, id := range result.AppointmentIDs {
			fmt.Printf("  %d. %s\n", i+1, id)
		}
		return nil
	},
}

// parseTimedRange combines a date and two wall-clock times into a concrete
// local interval.
func parseTimedRange(dateStr, startStr, endStr string) (time.Time, time.Time, error) {
	date, err := time.ParseInLocation("2006-01-02", dateStr, time.Local)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid --date, use YYYY-MM-DD: %w", err)
	}
	start, err := time.Parse("15:04", startStr)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid --start, use HH:MM: %w", err)
	}
	end, err := time.Parse("15:04", endStr)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid --end, use HH:MM: %w", err)
	}

	startTime := time.Date(date.Year(), date.Month(), date.Day(),
		start.Hour(), start.Minute(), 0, 0, time.Local)
	endTime := time.Date(date.Year(), date.Month(), date.Day(),
		end.Hour(), end.Minute(), 0, 0, time.Local)
	return startTime, endTime, nil
}

func init() {
	createCmd.Flags().StringVarP(&createScheduleID, "schedule", "s", "", "schedule ID (required)")
	createCmd.Flags().StringVarP(&createDate, "date", "d", "", "appointment date YYYY-MM-DD (required)")
	createCmd.Flags().StringVar(&createStart, "start", "", "start time HH:MM (required)")
	createCmd.Flags().StringVar(&createEnd, "end", "", "end time HH:MM (required)")
	createCmd.Flags().StringVar(&createDescription, "desc", "", "appointment description")
	createCmd.Flags().StringVar(&createSlotID, "slot", "", "persisted free slot being consumed")
	createCmd.Flags().IntVar(&createRecurCount, "recur-count", 1, "number of occurrences")
	createCmd.Flags().IntVar(&createRecurWeeks, "recur-weeks", 1, "weeks between occurrences")

	createCmd.MarkFlagRequired("schedule")
	createCmd.MarkFlagRequired("date")
	createCmd.MarkFlagRequired("start")
	createCmd.MarkFlagRequired("end")
}
