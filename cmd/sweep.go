package cmd

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/oralvis/oralvis/internal"
	"github.com/spf13/cobra"
)

var sweepRemove bool

var orphanStyle = lipgloss.NewStyle().
	Foreground(lipgloss.Color("214"))

var sweepCmd = &cobra.Command{
	Use:   "sweep",
	Short: "Find image folders left behind by abandoned sessions",
	Long: `Find session image folders that have no matching record.

These are the leftovers of abandoned or crashed sessions, or of deletes
whose file removal failed. By default they are only listed; --remove
deletes them. The folder of an in-progress session is never touched.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := openApp()
		if err != nil {
			return err
		}
		defer app.Close()

		orphans, err := app.Lifecycle.OrphanedDirectories(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to scan for orphaned folders: %w", err)
		}

		if len(orphans) == 0 {
			fmt.Println(dateStyle.Render("No orphaned session folders"))
			return nil
		}

		for _, id := range orphans {
			if sweepRemove {
				if err := app.Files.DeleteSessionFiles(id); err != nil {
					internal.LogError("failed to remove orphaned folder %s: %v", id, err)
					continue
				}
				fmt.Printf("Removed orphaned folder %s\n", id)
			} else {
				fmt.Println(orphanStyle.Render(fmt.Sprintf("orphaned: %s", id)))
			}
		}

		if !sweepRemove {
			fmt.Println()
			fmt.Println(dateStyle.Render("Re-run with --remove to delete these folders"))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(sweepCmd)
	sweepCmd.Flags().BoolVar(&sweepRemove, "remove", false, "Delete orphaned folders instead of listing them")
}
