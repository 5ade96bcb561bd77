package cli

import (
	"fmt"

	"webperf/internal/startup"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// configCmd is the parent command for config operations.
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect configuration",
	Long:  `Commands for inspecting the webperf configuration.`,
}

// configShowCmd shows the effective configuration.
var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show effective configuration",
	Long: `Load the configuration exactly as the server would (defaults, config
file, environment) and print the result as YAML.`,
	RunE: runConfigShow,
}

func init() {
	configCmd.AddCommand(configShowCmd)
}

func runConfigShow(cmd *cobra.Command, _ []string) error {
	cfg, err := startup.LoadConfig(cfgFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	out := cmd.OutOrStdout()
	if cfg.ConfigFile != "" {
		fmt.Fprintf(out, "# loaded from %s\n", cfg.ConfigFile)
	}
	_, err = out.Write(data)
	return err
}
