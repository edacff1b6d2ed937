package cli

import (
	"fmt"

	"github.com/coriolinus/aoctool/internal/website"
	"github.com/spf13/cobra"
)

var (
	urlDay  int
	urlYear int
)

func init() {
	addDayFlag(urlCmd, &urlDay)
	addYearFlag(urlCmd, &urlYear)
	rootCmd.AddCommand(urlCmd)
}

var urlCmd = &cobra.Command{
	Use:   "url",
	Short: "Emit the URL to a specified puzzle",
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Println(website.URLForDay(defaultYear(urlYear), defaultDay(urlDay)))
		return nil
	},
}
