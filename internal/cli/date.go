package cli

import (
	"time"

	"github.com/spf13/cobra"
)

// addYearFlag registers the -y/--year flag; 0 means "this year".
func addYearFlag(cmd *cobra.Command, target *int) {
	cmd.Flags().IntVarP(target, "year", "y", 0, "Year (default: this year)")
}

// addDayFlag registers the -d/--day flag; 0 means "today's date".
func addDayFlag(cmd *cobra.Command, target *int) {
	cmd.Flags().IntVarP(target, "day", "d", 0, "Day (default: today's date)")
}

func defaultYear(year int) int {
	if year != 0 {
		return year
	}
	return time.Now().Year()
}

func defaultDay(day int) int {
	if day != 0 {
		return day
	}
	return time.Now().Day()
}
