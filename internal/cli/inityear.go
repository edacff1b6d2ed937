package cli

import (
	"fmt"

	"github.com/coriolinus/aoctool/internal/config"
	"github.com/coriolinus/aoctool/internal/project"
	"github.com/spf13/cobra"
)

var (
	initYearYear int
	initYearOpts config.PathOptions
)

// addPathFlags registers the three path kind flags shared by init-year and
// config set.
func addPathFlags(cmd *cobra.Command, opts *config.PathOptions) {
	cmd.Flags().StringVar(&opts.InputFiles, "input-files", "", "Path to input files (default: inputs under the implementation directory)")
	cmd.Flags().StringVar(&opts.Implementation, "implementation", "", "Path to this year's implementation directory (default: current directory)")
	cmd.Flags().StringVar(&opts.DayTemplates, "day-templates", "", "Path to this year's day template files")
}

func init() {
	addYearFlag(initYearCmd, &initYearYear)
	addPathFlags(initYearCmd, &initYearOpts)
	rootCmd.AddCommand(initYearCmd)
}

var initYearCmd = &cobra.Command{
	Use:   "init-year",
	Short: "Initialize a repository for a year's solutions",
	Long: `Initialize a year: records the given paths in the configuration
(creating the directories as needed), and lays down a fresh workspace with an
empty members list and a default .gitignore when the implementation directory
is missing or empty.

A path that contradicts a previously configured one is an error; clear the
old value with 'aoctool config clear' first.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}

		year := defaultYear(initYearYear)
		if err := project.New(cfg).InitializeYear(year, initYearOpts); err != nil {
			return err
		}
		if err := cfg.Save(); err != nil {
			return err
		}

		fmt.Printf("Initialized %d at %s\n", year, cfg.Implementation(year))
		return nil
	},
}
