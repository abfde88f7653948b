package availability

import (
	"fmt"
	"strings"
	"time"

	"github.com/praxisdesk/availability/adapter/cli"
	"github.com/praxisdesk/availability/internal/availability/application/commands"
	"github.com/praxisdesk/availability/internal/availability/domain"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

var (
	setScheduleID   string
	setName         string
	setService      string
	setDays         []string
	setWindows      []string
	setDuration     string
	setBufferBefore int
	setBufferAfter  int
	setAlign        int
	setAlignOffset  int
	setTimezone     string
	setLimits       []string
)

var setCmd = &cobra.Command{
	Use:   "set",
	Short: "Set a schedule's availability",
	Long: `Replace the availability configuration for one scope of a schedule:
the default scope, or a service-type override with --service.

Days without an explicit window get the default 09:00 working day.
Windows apply to every listed day unless prefixed with a day, as in
mon=08:00-12:00.

Examples:
  availctl availability set --name "Dr. Vega" --days mon,tue,wed,thu,fri --duration 30m
  availctl availability set --schedule <id> --days mon,wed --window 09:00-12:00 --window 14:00-17:00
  availctl availability set --schedule <id> --service surgery --days tue --window tue=08:00-14:00 --duration 1.5h
  availctl availability set --schedule <id> --days mon --limit 5/day --buffer-after 10`,
	RunE: func(cmd *cobra.Command, args []string) error {
		app := cli.GetApp()
		if app == nil || app.SaveAvailabilityHandler == nil {
			return fmt.Errorf("availability commands require a configured store")
		}

		scheduleID, err := parseScheduleID(setScheduleID)
		if err != nil {
			return err
		}

		cfg, err := buildConfig()
		if err != nil {
			return err
		}

		result, err := app.SaveAvailabilityHandler.Handle(cmd.Context(), commands.SaveAvailabilityCommand{
			ScheduleID:  scheduleID,
			Name:        setName,
			ServiceType: setService,
			Config:      cfg,
		})
		if err != nil {
			return fmt.Errorf("failed to save availability: %w", err)
		}

		scope := "default"
		if setService != "" {
			scope = setService
		}
		if result.Created {
			fmt.Printf("Created schedule %s\n", result.ScheduleID)
		}
		fmt.Printf("Saved availability (%s scope) on schedule %s\n", scope, result.ScheduleID)
		return nil
	},
}

func buildConfig() (*domain.AvailabilityConfig, error) {
	cfg := domain.NewAvailabilityConfig()

	if setDuration != "" {
		value, unit, err := parseDuration(setDuration)
		if err != nil {
			return nil, err
		}
		cfg.DurationValue = value
		cfg.DurationUnit = unit
	}

	days := make([]time.Weekday, 0, len(setDays))
	for _, code := range setDays {
		day, err := parseDay(code)
		if err != nil {
			return nil, err
		}
		days = append(days, day)
		cfg.Week.EnableDay(day)
	}

	for _, spec := range setWindows {
		if day, rest, ok := strings.Cut(spec, "="); ok {
			d, err := parseDay(day)
			if err != nil {
				return nil, err
			}
			window, err := parseWindow(rest)
			if err != nil {
				return nil, err
			}
			cfg.Week.EnableDay(d)
			cfg.Week.AddWindow(d, window)
			continue
		}

		window, err := parseWindow(spec)
		if err != nil {
			return nil, err
		}
		if len(days) == 0 {
			return nil, fmt.Errorf("window %q has no days; pass --days or use day=HH:MM-HH:MM", spec)
		}
		for _, d := range days {
			cfg.Week.AddWindow(d, window)
		}
	}

	cfg.BufferBeforeMin = setBufferBefore
	cfg.BufferAfterMin = setBufferAfter
	cfg.AlignmentIntervalMin = setAlign
	cfg.AlignmentOffsetMin = setAlignOffset
	cfg.Timezone = setTimezone

	for _, spec := range setLimits {
		limit, err := parseLimit(spec)
		if err != nil {
			return nil, err
		}
		cfg.AddBookingLimit(limit)
	}

	return cfg, nil
}

func parseScheduleID(s string) (uuid.UUID, error) {
	if s == "" {
		return uuid.Nil, nil
	}
	id, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid schedule ID: %w", err)
	}
	return id, nil
}

func init() {
	setCmd.Flags().StringVarP(&setScheduleID, "schedule", "s", "", "schedule ID (omit to create a new schedule)")
	setCmd.Flags().StringVar(&setName, "name", "", "schedule name (used when creating)")
	setCmd.Flags().StringVar(&setService, "service", "", "service type for an override scope")
	setCmd.Flags().StringSliceVar(&setDays, "days", nil, "available days (mon,tue,...)")
	setCmd.Flags().StringArrayVar(&setWindows, "window", nil, "time window HH:MM-HH:MM, or day=HH:MM-HH:MM (repeatable)")
	setCmd.Flags().StringVar(&setDuration, "duration", "", "slot duration, like 30m or 1.5h")
	setCmd.Flags().IntVar(&setBufferBefore, "buffer-before", 0, "buffer before each slot in minutes")
	setCmd.Flags().IntVar(&setBufferAfter, "buffer-after", 0, "buffer after each slot in minutes")
	setCmd.Flags().IntVar(&setAlign, "align", 0, "slot alignment interval in minutes")
	setCmd.Flags().IntVar(&setAlignOffset, "align-offset", 0, "slot alignment offset in minutes")
	setCmd.Flags().StringVar(&setTimezone, "timezone", "", "IANA timezone for slot expansion")
	setCmd.Flags().StringArrayVar(&setLimits, "limit", nil, "booking limit COUNT/PERIOD, like 5/day or 8/2w (repeatable)")
}
