package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/coriolinus/aoctool/internal/config"
	"github.com/spf13/cobra"
)

var (
	configSetYear    int
	configSetSession string
	configSetOpts    config.PathOptions

	configClearYear           int
	configClearInputFiles     bool
	configClearImplementation bool
	configClearDayTemplates   bool
)

func init() {
	addYearFlag(configSetCmd, &configSetYear)
	configSetCmd.Flags().StringVarP(&configSetSession, "session", "s", "", "Website session key (log in to adventofcode.com and inspect the cookies to get this)")
	addPathFlags(configSetCmd, &configSetOpts)

	addYearFlag(configClearCmd, &configClearYear)
	configClearCmd.Flags().BoolVar(&configClearInputFiles, "input-files", false, "Clear the path to input files")
	configClearCmd.Flags().BoolVar(&configClearImplementation, "implementation", false, "Clear the path to this year's implementation directory")
	configClearCmd.Flags().BoolVar(&configClearDayTemplates, "day-templates", false, "Clear the path to this year's day template files")

	configCmd.AddCommand(configPathCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configClearCmd)
	rootCmd.AddCommand(configCmd)
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration",
	Long:  `Read and write the aoctool configuration stored at ` + config.FilePath() + `.`,
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Emit the path to the configuration file",
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Println(config.FilePath())
		return nil
	},
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Display the contents of the configuration file, if they exist",
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := os.ReadFile(config.FilePath())
		if err != nil {
			return fmt.Errorf("reading config file: %w", err)
		}
		fmt.Print(string(data))
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Set configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		year := defaultYear(configSetYear)

		if cmd.Flags().Changed("session") {
			if configSetSession == "" {
				return errors.New("session key must not be empty")
			}
			cfg.SetSession(configSetSession)
		}

		if configSetOpts.InputFiles != "" {
			path, err := directoryPath(configSetOpts.InputFiles)
			if err != nil {
				return fmt.Errorf("input-files: %w", err)
			}
			cfg.SetInputFiles(year, path)
		}
		if configSetOpts.Implementation != "" {
			path, err := directoryPath(configSetOpts.Implementation)
			if err != nil {
				return fmt.Errorf("implementation: %w", err)
			}
			cfg.SetImplementation(year, path)
		}
		if configSetOpts.DayTemplates != "" {
			path, err := directoryPath(configSetOpts.DayTemplates)
			if err != nil {
				return fmt.Errorf("day-templates: %w", err)
			}
			cfg.SetDayTemplates(year, path)
		}

		return cfg.Save()
	},
}

var configClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Clear configured paths",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		year := defaultYear(configClearYear)

		if configClearInputFiles {
			cfg.ClearInputFiles(year)
		}
		if configClearImplementation {
			cfg.ClearImplementation(year)
		}
		if configClearDayTemplates {
			cfg.ClearDayTemplates(year)
		}

		return cfg.Save()
	},
}

// directoryPath absolutizes a path for storage, rejecting paths that exist
// but are not directories. The path itself need not exist.
func directoryPath(path string) (string, error) {
	if info, err := os.Stat(path); err == nil && !info.IsDir() {
		return "", fmt.Errorf("%s exists and is not a directory", path)
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("absolutizing %s: %w", path, err)
	}
	return abs, nil
}
