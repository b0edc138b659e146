package cmd

import (
	"fmt"

	"github.com/oralvis/oralvis/internal"
	"github.com/spf13/cobra"
)

var deleteYes bool

var deleteCmd = &cobra.Command{
	Use:   "delete <session-id>",
	Short: "Delete a session and its image files",
	Long: `Delete a finished session: the record first, then the image folder.

If the folder cannot be removed the record is still gone; the leftover
folder shows up in 'oralvis sweep'. Deleting a session whose folder was
already removed externally succeeds.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := openApp()
		if err != nil {
			return err
		}
		defer app.Close()

		sessionID := args[0]
		rec, err := app.Repo.GetSessionByID(cmd.Context(), sessionID)
		if err == internal.ErrSessionNotFound {
			fmt.Println(dateStyle.Render(fmt.Sprintf("No session %q", sessionID)))
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to load session: %w", err)
		}

		if !deleteYes {
			fmt.Printf("Delete session %s (%s, %d image(s))? Re-run with --yes to confirm.\n",
				rec.SessionID, rec.Name, rec.ImageCount)
			return nil
		}

		if err := app.Lifecycle.DeleteSession(cmd.Context(), rec); err != nil {
			return fmt.Errorf("failed to delete session: %w", err)
		}

		fmt.Printf("Deleted session %s\n", rec.SessionID)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(deleteCmd)
	deleteCmd.Flags().BoolVarP(&deleteYes, "yes", "y", false, "Confirm deletion")
}
