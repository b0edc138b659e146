package cmd

import (
	"fmt"

	"github.com/oralvis/oralvis/internal"
	"github.com/spf13/cobra"
)

var (
	endName string
	endAge  string
)

var endCmd = &cobra.Command{
	Use:   "end",
	Short: "Finish the current session and record patient details",
	Long: `Finish the in-progress session, recording the patient's name and age.

This is the moment the durable session record is written: the image count
is taken from the files actually present in the session's folder, the
finalize timestamp is set, and the session returns to idle. A blank name
or invalid age rejects the finalize and the session stays open.`,
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

		age, err := internal.ParseAge(endAge)
		if err != nil {
			return err
		}

		rec, err := app.Lifecycle.EndSession(cmd.Context(), endName, age)
		if err != nil {
			return err
		}
		if err := app.CheckpointActive(0); err != nil {
			return fmt.Errorf("failed to clear session state: %w", err)
		}

		fmt.Printf("Ended session %s: %s, age %d, %d image(s)\n",
			rec.SessionID, rec.Name, rec.Age, rec.ImageCount)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(endCmd)
	endCmd.Flags().StringVar(&endName, "name", "", "Patient name (required)")
	endCmd.Flags().StringVar(&endAge, "age", "", "Patient age (required)")
	_ = endCmd.MarkFlagRequired("name")
	_ = endCmd.MarkFlagRequired("age")
}
