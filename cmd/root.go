package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

// rootCmd represents the base command for the uisync application.
// It is the entry point when the application is called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "uisync",
	Short: "Keep host UI enablement in sync with document state",
	Long: `uisync governs the enabled state of a host application's menu and
toolbar items against its open-document state: commands that need an
unlocked document are disabled while none is available, workspace commands
stay usable while the workspace is empty, and external writes to governed
controls are reverted immediately.

The CLI drives the synchronizer against a simulated host, either by
replaying a scenario file or interactively.`,
	// SilenceUsage prevents Cobra from printing the usage message on errors
	// handled by the application.
	SilenceUsage: true,
}

// SetVersion sets the version for the root command.
// This function is typically called from the main package to inject the application version at build time.
func SetVersion(v string) {
	rootCmd.Version = v
}

// GetVersion returns the current version of the application.
func GetVersion() string {
	return rootCmd.Version
}

// Execute is the main entry point for the CLI application.
// It initializes and executes the root command, which in turn handles subcommands and flags.
// This function is called by main.main().
func Execute() {
	rootCmd.SetVersionTemplate(`{{printf "uisync version %s\n" .Version}}`)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
