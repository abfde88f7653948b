package availability

import (
	"fmt"
	"strings"
	"time"

	"github.com/praxisdesk/availability/adapter/cli"
	"github.com/praxisdesk/availability/internal/availability/application/queries"
	"github.com/spf13/cobra"
)

var (
	expandScheduleID string
	expandFrom       string
	expandTo         string
)

var expandCmd = &cobra.Command{
	Use:   "expand",
	Short: "Expand availability into free slots",
	Long: `Materialize the default weekly availability over a date range as
virtual free slots. These are display slots: buffers, alignment, and
booking limits are applied by the booking backend, not here.

Examples:
  availctl availability expand --schedule <id> --from 2026-03-09 --to 2026-03-16`,
	RunE: func(cmd *cobra.Command, args []string) error {
		app := cli.GetApp()
		if app == nil || app.ExpandSlotsHandler == nil {
			return fmt.Errorf("availability commands require a configured store")
		}

		scheduleID, err := parseScheduleID(expandScheduleID)
		if err != nil {
			return err
		}
		from, to, err := parseDateRange(expandFrom, expandTo)
		if err != nil {
			return err
		}

		slots, err := app.ExpandSlotsHandler.Handle(cmd.Context(), queries.ExpandSlotsQuery{
			ScheduleID: scheduleID,
			From:       from,
			To:         to,
		})
		if err != nil {
			return fmt.Errorf("failed to expand slots: %w", err)
		}

		if len(slots) == 0 {
			fmt.Println("No availability in range.")
			return nil
		}

		fmt.Printf("%d free slots:\n", len(slots))
		fmt.Println(strings.Repeat("-", 50))
		for _, slot := range slots {
			fmt.Printf("  %s  %s - %s  (%d min)\n",
				slot.Start.Format("Mon 2006-01-02"),
				slot.Start.Format("15:04"),
				slot.End.Format("15:04"),
				slot.DurationMin,
			)
		}
		return nil
	},
}

// parseDateRange parses two YYYY-MM-DD dates into a half-open local range;
// the end date itself is included.
func parseDateRange(fromStr, toStr string) (time.Time, time.Time, error) {
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
	expandCmd.Flags().StringVarP(&expandScheduleID, "schedule", "s", "", "schedule ID (required)")
	expandCmd.Flags().StringVar(&expandFrom, "from", "", "start date YYYY-MM-DD (required)")
	expandCmd.Flags().StringVar(&expandTo, "to", "", "end date YYYY-MM-DD, inclusive (default: --from)")
	expandCmd.MarkFlagRequired("schedule")
	expandCmd.MarkFlagRequired("from")
}
