package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/oralvis/oralvis/internal"
	"github.com/spf13/cobra"
)

var (
	// Styles
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("62")).
			Padding(0, 1)

	idStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("240")).
		Italic(true)

	nameStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("212"))

	countStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42")).
			Bold(true)

	dateStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("243"))
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List finished sessions",
	Long:  `List all finished imaging sessions, most recent first.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := openApp()
		if err != nil {
			return err
		}
		defer app.Close()

		sessions, err := app.Repo.GetAllSessions(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to list sessions: %w", err)
		}

		printSessionTable(sessions)
		return nil
	},
}

func printSessionTable(sessions []*internal.Session) {
	if len(sessions) == 0 {
		fmt.Println(dateStyle.Render("No sessions recorded yet"))
		return
	}

	fmt.Println(headerStyle.Render(fmt.Sprintf("Sessions (%d)", len(sessions))))
	fmt.Println()

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t\n",
		headerStyle.Render("ID"),
		headerStyle.Render("Patient"),
		headerStyle.Render("Age"),
		headerStyle.Render("Images"),
		headerStyle.Render("Ended"))

	for _, rec := range sessions {
		ended := rec.EndedAt().Format(time.DateTime)
		_, _ = fmt.Fprintf(w, "%s\t%s\t%d\t%s\t%s\t\n",
			idStyle.Render(rec.SessionID),
			nameStyle.Render(rec.Name),
			rec.Age,
			countStyle.Render(fmt.Sprintf("%d", rec.ImageCount)),
			dateStyle.Render(ended))
	}
	_ = w.Flush()
}

func init() {
	rootCmd.AddCommand(listCmd)
}
