package cmd

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/oralvis/oralvis/internal"
	"github.com/spf13/cobra"
)

var startCmd = &cobra.Command{
	Use:   "start [session-id]",
	Short: "Begin a new imaging session",
	Long: `Begin a new imaging session with the given id.

If no id is given, one is generated. Starting while another session is in
progress abandons it: the previous session gets no record and its captured
images stay on disk as an orphaned folder.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := openApp()
		if err != nil {
			return err
		}
		defer app.Close()

		sessionID := ""
		if len(args) > 0 {
			sessionID = args[0]
		}
		if sessionID == "" {
			sessionID = uuid.NewString()[:8]
		}

		if prev := app.Lifecycle.CurrentSessionID(); prev != "" {
			internal.LogWarn("abandoning in-progress session %s (%d images captured)",
				prev, app.Lifecycle.CapturedImageCount())
		}

		app.Lifecycle.StartNewSession(sessionID)
		if err := app.CheckpointActive(time.Now().UnixMilli()); err != nil {
			return fmt.Errorf("failed to checkpoint session state: %w", err)
		}

		fmt.Printf("Started session %s\n", sessionID)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(startCmd)
}
