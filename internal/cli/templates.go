package cli

import (
	"github.com/coriolinus/aoctool/internal/config"
	"github.com/coriolinus/aoctool/internal/project"
	"github.com/spf13/cobra"
)

var clearTemplatesYear int

func init() {
	addYearFlag(clearTemplatesCmd, &clearTemplatesYear)
	rootCmd.AddCommand(clearTemplatesCmd)
}

var clearTemplatesCmd = &cobra.Command{
	Use:   "clear-templates",
	Short: "Clear the local day templates",
	Long: `Remove the year's local day-template directory. Useful when the
canonical templates have been updated; the next init fetches fresh copies.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		return project.New(cfg).ClearTemplates(defaultYear(clearTemplatesYear))
	},
}
