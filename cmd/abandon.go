package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var abandonCmd = &cobra.Command{
	Use:   "abandon",
	Short: "Discard the current session without recording it",
	Long: `Discard the in-progress session.

No record is written. Any images already captured stay on disk as an
orphaned folder, which 'oralvis sweep' can later report or remove.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := openApp()
		if err != nil {
			return err
		}
		defer app.Close()

		if !app.Lifecycle.InProgress() {
			fmt.Println("No session in progress")
			return nil
		}

		sessionID := app.Lifecycle.CurrentSessionID()
		count := app.Lifecycle.CapturedImageCount()
		app.Lifecycle.Abandon()
		if err := app.CheckpointActive(0); err != nil {
			return fmt.Errorf("failed to clear session state: %w", err)
		}

		fmt.Printf("Abandoned session %s (%d captured image(s) left on disk)\n", sessionID, count)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(abandonCmd)
}
