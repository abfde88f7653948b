package booking

import (
	"fmt"

	"github.com/praxisdesk/availability/adapter/cli"
	"github.com/praxisdesk/availability/internal/availability/application/commands"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

var unblockSlotID string

var unblockCmd = &cobra.Command{
	Use:   "unblock",
	Short: "Remove a blocked-time slot",
	Long: `Delete a busy-unavailable slot created by "booking block". Only blocked
slots can be removed this way; booked slots are released by cancelling
their appointment.

Example:
  availctl booking unblock --slot <id>`,
	RunE: func(cmd *cobra.Command, args []string) error {
		app := cli.GetApp()
		if app == nil || app.UnblockTimeHandler == nil {
			return fmt.Errorf("booking commands require a configured store")
		}

		slotID, err := uuid.Parse(unblockSlotID)
		if err != nil {
			return fmt.Errorf("invalid slot ID: %w", err)
		}

		result, err := app.UnblockTimeHandler.Handle(cmd.Context(), commands.UnblockTimeCommand{
			SlotID: slotID,
		})
		if err != nil {
			return fmt.Errorf("failed to unblock time: %w", err)
		}

		fmt.Printf("Unblocked %s - %s on schedule %s\n",
			result.Interval.Start.Format("2006-01-02 15:04"),
			result.Interval.End.Format("2006-01-02 15:04"),
			result.ScheduleID,
		)
		return nil
	},
}

func init() {
	unblockCmd.Flags().StringVar(&unblockSlotID, "slot", "", "slot ID (required)")

	unblockCmd.MarkFlagRequired("slot")
}
