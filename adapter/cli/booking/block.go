package booking

import (
	"fmt"

	"github.com/praxisdesk/availability/adapter/cli"
	"github.com/praxisdesk/availability/internal/availability/application/commands"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

var (
	blockScheduleID string
	blockAllDay     bool
	blockStartDate  string
	blockEndDate    string
	blockStart      string
	blockEnd        string
	blockComment    string
)

var blockCmd = &cobra.Command{
	Use:   "block",
	Short: "Block time on a schedule",
	Long: `Carve out busy-unavailable time, either whole days or a timed range.
Blocked time is rejected for booking and shown on the calendar.

Examples:
  availctl booking block --schedule <id> --all-day --start-date 2026-07-20 --end-date 2026-08-01 --comment "Vacation"
  availctl booking block --schedule <id> --start-date 2026-03-14 --start 12:00 --end 13:30 --comment "Lunch"`,
	RunE: func(cmd *cobra.Command, args []string) error {
		app := cli.GetApp()
		if app == nil || app.BlockTimeHandler == nil {
			return fmt.Errorf("booking commands require a configured store")
		}

		scheduleID, err := uuid.Parse(blockScheduleID)
		if err != nil {
			return fmt.Errorf("invalid schedule ID: %w", err)
		}

		result, err := app.BlockTimeHandler.Handle(cmd.Context(), commands.BlockTimeCommand{
			ScheduleID: scheduleID,
			AllDay:     blockAllDay,
			StartDate:  blockStartDate,
			EndDate:    blockEndDate,
			StartTime:  blockStart,
			EndTime:    blockEnd,
			Comment:    blockComment,
		})
		if err != nil {
			return fmt.Errorf("failed to block time: %w", err)
		}

		fmt.Printf("Blocked %s - %s (slot %s)\n",
			result.Interval.Start.Format("2006-01-02 15:04"),
			result.Interval.End.Format("2006-01-02 15:04"),
			result.SlotID,
		)
		return nil
	},
}

func init() {
	blockCmd.Flags().StringVarP(&blockScheduleID, "schedule", "s", "", "schedule ID (required)")
	blockCmd.Flags().BoolVar(&blockAllDay, "all-day", false, "block whole days")
	blockCmd.Flags().StringVar(&blockStartDate, "start-date", "", "first date YYYY-MM-DD (required)")
	blockCmd.Flags().StringVar(&blockEndDate, "end-date", "", "last date YYYY-MM-DD (default: start date)")
	blockCmd.Flags().StringVar(&blockStart, "start", "", "start time HH:MM (unless --all-day)")
	blockCmd.Flags().StringVar(&blockEnd, "end", "", "end time HH:MM (unless --all-day)")
	blockCmd.Flags().StringVar(&blockComment, "comment", "", "reason shown on the calendar")

	blockCmd.MarkFlagRequired("schedule")
	blockCmd.MarkFlagRequired("start-date")
}
