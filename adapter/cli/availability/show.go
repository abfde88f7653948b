package availability

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/praxisdesk/availability/adapter/cli"
	"github.com/praxisdesk/availability/internal/availability/application/queries"
	"github.com/praxisdesk/availability/internal/availability/codec"
	"github.com/praxisdesk/availability/internal/availability/domain"
	"github.com/spf13/cobra"
)

var (
	showScheduleID string
	showJSON       bool
)

var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Show a schedule's availability",
	Long: `Display the availability configuration of a schedule: the default
scope and every service-type override. With --json the raw extension
representation is printed instead.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		app := cli.GetApp()
		if app == nil || app.GetAvailabilityHandler == nil {
			return fmt.Errorf("availability commands require a configured store")
		}

		scheduleID, err := parseScheduleID(showScheduleID)
		if err != nil {
			return err
		}

		dto, err := app.GetAvailabilityHandler.Handle(cmd.Context(), queries.GetAvailabilityQuery{
			ScheduleID: scheduleID,
		})
		if err != nil {
			return err
		}

		if showJSON {
			blocks := codec.EncodeAll(dto.Default, dto.Overrides)
			data, err := json.MarshalIndent(blocks, "", "  ")
			if err != nil {
				return err
			}
			fmt.Println(string(data))
			return nil
		}

		fmt.Printf("Schedule: %s (%s)\n", dto.Name, dto.ScheduleID)
		fmt.Println(strings.Repeat("-", 50))
		if dto.Default != nil {
			fmt.Println("Default availability:")
			printConfig(dto.Default)
		} else {
			fmt.Println("No default availability configured.")
		}
		for _, o := range dto.Overrides {
			fmt.Printf("\nOverride for %q:\n", o.ServiceType)
			printConfig(o.Config)
		}
		return nil
	},
}

func printConfig(cfg *domain.AvailabilityConfig) {
	fmt.Printf("  Slot duration: %s\n", domain.FormatMinutes(cfg.SlotDurationMin()))
	for _, day := range cfg.Week.EnabledDays() {
		windows := cfg.Week[day].EffectiveWindows()
		parts := make([]string, 0, len(windows))
		for _, w := range windows {
			parts = append(parts, fmt.Sprintf("%s-%s", w.StartMinute, domain.TimeOfDay(w.EndMinute()%domain.MinutesPerDay)))
		}
		fmt.Printf("  %-9s %s\n", day.String()+":", strings.Join(parts, ", "))
	}
	if cfg.BufferBeforeMin > 0 || cfg.BufferAfterMin > 0 {
		fmt.Printf("  Buffers: %d min before, %d min after\n", cfg.BufferBeforeMin, cfg.BufferAfterMin)
	}
	if cfg.AlignmentIntervalMin > 0 {
		fmt.Printf("  Alignment: every %d min, offset %d min\n", cfg.AlignmentIntervalMin, cfg.AlignmentOffsetMin)
	}
	for _, l := range cfg.BookingLimits {
		fmt.Printf("  Limit: %d per %d %s\n", l.MaxCount, l.PeriodLength, l.PeriodUnit)
	}
	if cfg.Timezone != "" {
		fmt.Printf("  Timezone: %s\n", cfg.Timezone)
	}
}

func init() {
	showCmd.Flags().StringVarP(&showScheduleID, "schedule", "s", "", "schedule ID (required)")
	showCmd.Flags().BoolVar(&showJSON, "json", false, "print the extension representation as JSON")
	showCmd.MarkFlagRequired("schedule")
}
