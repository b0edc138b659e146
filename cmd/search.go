package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search sessions by id or patient name",
	Long: `Search finished sessions whose id or patient name contains the query.

Matching is case-sensitive containment. A blank query matches nothing.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := openApp()
		if err != nil {
			return err
		}
		defer app.Close()

		query := args[0]
		sessions, err := app.Repo.SearchSessions(cmd.Context(), query)
		if err != nil {
			return fmt.Errorf("search failed: %w", err)
		}

		if len(sessions) == 0 {
			if strings.TrimSpace(query) == "" {
				fmt.Println(dateStyle.Render("Blank query matches nothing"))
			} else {
				fmt.Println(dateStyle.Render(fmt.Sprintf("No sessions matching %q", query)))
			}
			return nil
		}

		printSessionTable(sessions)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(searchCmd)
}
