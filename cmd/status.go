package cmd

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

var (
	statusLabelStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("243"))

	statusValueStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("212"))

	statusIdleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			Italic(true)
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the in-progress session, if any",
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := openApp()
		if err != nil {
			return err
		}
		defer app.Close()

		if !app.Lifecycle.InProgress() {
			fmt.Println(statusIdleStyle.Render("No session in progress"))
			return nil
		}

		sessionID := app.Lifecycle.CurrentSessionID()
		fmt.Printf("%s %s\n",
			statusLabelStyle.Render("Session:"),
			statusValueStyle.Render(sessionID))
		fmt.Printf("%s %s\n",
			statusLabelStyle.Render("Captured:"),
			statusValueStyle.Render(fmt.Sprintf("%d image(s)", app.Lifecycle.CapturedImageCount())))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(statusCmd)
}
