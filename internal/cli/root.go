// Package cli provides the command-line interface for webperf.
package cli

import (
	"fmt"

	"webperf/internal/startup"

	"github.com/spf13/cobra"
)

var cfgFile string

// rootCmd represents the base command. Without a subcommand it serves.
var rootCmd = &cobra.Command{
	Use:   "webperf",
	Short: "Web performance demonstration server",
	Long: `webperf serves a static site through a configurable request pipeline so
the effect of protocol version, server latency, compression and caching
headers on page load can be observed in browser developer tools.

Settings are read from performance-config.yaml (in . or ./config), the
file given with --config, and environment variables, in that order of
increasing precedence.

Examples:
  webperf                               # start the server
  webperf --config demo.yaml serve      # start with an explicit config file
  SERVER_DURATION=500 webperf           # add 500ms to every request
  webperf config show                   # print the effective configuration
  webperf version                       # print build information`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:         runServe,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./performance-config.yaml if present)")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(versionCmd)
}

// versionCmd shows version information.
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	Run: func(cmd *cobra.Command, _ []string) {
		info := startup.GetBuildInfo()
		fmt.Fprintf(cmd.OutOrStdout(), "webperf %s (commit %s, built %s, %s %s/%s)\n",
			info.Version, info.Commit, info.BuildTime, info.GoVersion, info.OS, info.Arch)
	},
}
