package booking

import (
	"fmt"

	"github.com/praxisdesk/availability/adapter/cli"
	"github.com/praxisdesk/availability/internal/availability/application/commands"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

var cancelSeriesID string

var cancelSeriesCmd = &cobra.Command{
	Use:   "cancel-series",
	Short: "Cancel a recurring appointment series",
	Long: `Cancel every appointment in a series. Cancellation is best-effort:
members that fail to cancel are reported, not rolled back.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		app := cli.GetApp()
		if app == nil || app.CancelSeriesHandler == nil {
			return fmt.Errorf("booking commands require a configured store")
		}

		seriesID, err := uuid.Parse(cancelSeriesID)
		if err != nil {
			return fmt.Errorf("invalid series ID: %w", err)
		}

		result, err := app.CancelSeriesHandler.Handle(cmd.Context(), commands.CancelSeriesCommand{
			SeriesID: seriesID,
		})
		if result != nil && result.Cancelled < result.Requested {
			fmt.Printf("Cancelled %d of %d appointments in series %s\n",
				result.Cancelled, result.Requested, seriesID)
		}
		if err != nil {
			return fmt.Errorf("series cancellation incomplete: %w", err)
		}
		if result.Requested == 0 {
			fmt.Printf("No appointments found for series %s\n", seriesID)
			return nil
		}
		if result.Cancelled == result.Requested {
			fmt.Printf("Cancelled all %d appointments in series %s\n", result.Requested, seriesID)
		}
		return nil
	},
}

func init() {
	cancelSeriesCmd.Flags().StringVar(&cancelSeriesID, "series", "", "series ID (required)")
	cancelSeriesCmd.MarkFlagRequired("series")
}
