package availability

import (
	"github.com/spf13/cobra"
)

// Cmd is the availability command group
var Cmd = &cobra.Command{
	Use:   "availability",
	Short: "Manage weekly availability",
	Long:  `Configure, inspect, and expand a schedule's weekly availability rules.`,
}

func init() {
	Cmd.AddCommand(setCmd)
	Cmd.AddCommand(showCmd)
	Cmd.AddCommand(expandCmd)
}
