package cmd

import (
	"fmt"
	"os"

	"github.com/oralvis/oralvis/internal"
	"github.com/spf13/cobra"
)

var (
	verbose bool
	dataDir string
	version string = "dev"
	commit  string = "unknown"
	date    string = "unknown"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "oralvis",
	Short: "Capture and organize intraoral imaging sessions",
	Long: `A CLI for capturing and organizing intraoral photographs during
clinical imaging sessions.

Start a named session, capture a sequence of images into it, and end the
session with the patient's name and age. Finished sessions can be listed,
searched, inspected, and deleted together with their image files.

Quick Start:
  oralvis start P001              # Begin a session
  oralvis capture photo.jpg       # Capture an image into it
  oralvis end --name "Jane Doe" --age 34
  oralvis list                    # Browse finished sessions

Session images live under the application data directory, one folder per
session. Only finished sessions are recorded; abandoning a session leaves
its folder behind for 'oralvis sweep' to find.`,
	Version: fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		internal.SetVerbose(verbose)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&dataDir, "data-dir", "", "Application data directory (default ~/.oralvis)")

	// Set version template to ensure --version flag works
	rootCmd.SetVersionTemplate(`{{printf "%s\n" .Version}}`)
}

// openApp opens the application context for the configured data
// directory and rehydrates any in-progress session checkpoint.
func openApp() (*internal.App, error) {
	dir := dataDir
	if dir == "" {
		var err error
		dir, err = internal.DefaultDataDir()
		if err != nil {
			return nil, fmt.Errorf("failed to resolve data directory: %w", err)
		}
	}

	app, err := internal.OpenApp(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to open application storage: %w", err)
	}

	if _, err := app.RestoreActive(); err != nil {
		app.Close()
		return nil, fmt.Errorf("failed to restore in-progress session: %w", err)
	}
	return app, nil
}
