package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"qactl/pkg/logging"
)

var (
	rootLogLevel string
	rootAPIURL   string
	rootToken    string
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "qactl",
	Short: "Coordinate browser-based acceptance test runs",
	Long: `qactl coordinates execution of browser-based acceptance tests stored
in a remote service: it prepares ready-to-execute batches (filtering tests
and scoping credentials), analyzes which tests are impacted by changed
pages, and records run outcomes reported by the executing agent.

The actual browser driving is done by an external AI agent; connect one
via 'qactl serve'.`,
	// SilenceUsage prevents printing the usage message on errors we
	// handle ourselves (invalid arguments, failed API calls).
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logging.InitForCLI(logging.ParseLevel(rootLogLevel), os.Stderr)
	},
}

// SetVersion sets the version for the root command
func SetVersion(v string) {
	rootCmd.Version = v
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	rootCmd.SetVersionTemplate(`{{printf "qactl version %s\n" .Version}}`)

	err := rootCmd.Execute()
	if err != nil {
		// Cobra prints the error, we just exit non-zero
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&rootLogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&rootAPIURL, "api-url", "", "Service API base URL (default: from config)")
	rootCmd.PersistentFlags().StringVar(&rootToken, "token", "", "API bearer token (default: from config or QACTL_API_TOKEN)")

	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newSelfUpdateCmd())
}
