package cli

import (
	"fmt"

	"github.com/coriolinus/aoctool/internal/config"
	"github.com/coriolinus/aoctool/internal/project"
	"github.com/spf13/cobra"
)

var (
	initDay             int
	initYear            int
	initSkipCreateCrate bool
	initSkipGetInput    bool
)

func init() {
	addDayFlag(initCmd, &initDay)
	addYearFlag(initCmd, &initYear)
	initCmd.Flags().BoolVar(&initSkipCreateCrate, "skip-create-crate", false, "Do not create a sub-crate for the requested day")
	initCmd.Flags().BoolVar(&initSkipGetInput, "skip-get-input", false, "Do not attempt to fetch the input for the requested day")
	rootCmd.AddCommand(initCmd)
}

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize a puzzle day",
	Long: `Initialize a day's puzzle: creates a dayNN sub-crate from the day
templates, registers it in the workspace manifest, and downloads the puzzle
input.

Side effects are not rolled back on failure. Re-running after a partial
failure reports the already-registered member as a duplicate; fix the
manifest by hand in that case.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}

		year := defaultYear(initYear)
		day := defaultDay(initDay)

		if err := project.New(cfg).Initialize(cmd.Context(), year, day, initSkipCreateCrate, initSkipGetInput); err != nil {
			return err
		}

		if !initSkipCreateCrate {
			fmt.Printf("Initialized %s for %d\n", project.DayName(day), year)
		}
		return nil
	},
}
