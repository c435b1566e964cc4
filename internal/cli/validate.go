package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func (a *App) newValidateCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate a configuration file",
		Long: `Validate a vacuum configuration file without running any search.

This command checks:
  - File version
  - Grid size and action costs
  - Every problem's start and dirt positions
  - Strategy names and report settings

Without -c the built-in reference configuration is checked.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.validateConfig(configPath)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to configuration file")

	return cmd
}

func (a *App) validateConfig(path string) error {
	f, err := loadConfig(path)
	if err != nil {
		return err
	}
	if err := f.Validate(); err != nil {
		return fmt.Errorf("configuration invalid: %w", err)
	}

	w, err := f.World()
	if err != nil {
		return err
	}
	problems, err := f.NamedStates()
	if err != nil {
		return err
	}

	_, _ = fmt.Fprintf(a.stdout, "Configuration is valid.\n")
	_, _ = fmt.Fprintf(a.stdout, "Grid: %dx%d\n", w.Rows, w.Cols)
	_, _ = fmt.Fprintf(a.stdout, "Problems: %d\n", len(problems))
	for _, p := range problems {
		_, _ = fmt.Fprintf(a.stdout, "  %s: %s\n", p.Name, p.Start)
	}
	_, _ = fmt.Fprintf(a.stdout, "Strategies: %v\n", f.Strategies)
	if f.Report.MQTT.Enabled {
		_, _ = fmt.Fprintf(a.stdout, "MQTT: %s (%s)\n", f.Report.MQTT.Broker, f.Report.MQTT.TopicPrefix)
	}
	return nil
}
