package cli

import (
	"github.com/spf13/cobra"
)

var (
	buildVersion string
	buildCommit  string
	buildDate    string
)

var rootCmd = &cobra.Command{
	Use:   "aoctool",
	Short: "Advent of Code workspace tool",
	Long: `aoctool scaffolds Advent of Code solutions: it maintains a workspace
per year, creates a sub-crate per day from templates, and fetches puzzle
inputs using your adventofcode.com session key.`,
	SilenceUsage: true,
}

// Execute runs the root command with build info injected via ldflags.
func Execute(version, commit, date string) error {
	buildVersion = version
	buildCommit = commit
	buildDate = date
	return rootCmd.Execute()
}
