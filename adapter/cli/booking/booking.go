package booking

import (
	"github.com/spf13/cobra"
)

// Cmd is the booking command group
var Cmd = &cobra.Command{
	Use:   "booking",
	Short: "Manage bookings and blocked time",
	Long:  `Book appointments and series, block time, view calendars, and export busy time.`,
}

func init() {
	Cmd.AddCommand(createCmd)
	Cmd.AddCommand(blockCmd)
	Cmd.AddCommand(unblockCmd)
	Cmd.AddCommand(cancelSeriesCmd)
	Cmd.AddCommand(calendarCmd)
	Cmd.AddCommand(exportCmd)
}
