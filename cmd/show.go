package cmd

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/oralvis/oralvis/internal"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var showFormat string

var (
	// Styles for show command
	sessionHeaderStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("212")).
				Padding(0, 1).
				MarginBottom(1)

	sessionMetaStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("243")).
				MarginBottom(1)

	imagePathStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("39")).
			Padding(0, 2)
)

// sessionDetail is the full view of one session: its record plus the
// image files actually on disk.
type sessionDetail struct {
	Session *internal.Session `json:"session" yaml:"session"`
	Images  []string          `json:"images" yaml:"images"`
}

var showCmd = &cobra.Command{
	Use:   "show <session-id>",
	Short: "Show a session's record and image files",
	Long: `Show one finished session: the recorded patient details and the image
files currently in the session's folder.

The image list comes from disk, so it reflects reality even if files were
removed externally after the session ended.`,
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

		images, err := app.Lifecycle.SessionImages(sessionID)
		if err != nil {
			return fmt.Errorf("failed to list session images: %w", err)
		}

		detail := &sessionDetail{Session: rec, Images: images}
		switch showFormat {
		case "json":
			data, err := json.MarshalIndent(detail, "", "  ")
			if err != nil {
				return err
			}
			fmt.Println(string(data))
		case "yaml":
			data, err := yaml.Marshal(detail)
			if err != nil {
				return err
			}
			fmt.Print(string(data))
		case "table":
			printSessionDetail(detail)
		default:
			return fmt.Errorf("unknown format %q (want table, yaml, or json)", showFormat)
		}
		return nil
	},
}

func printSessionDetail(detail *sessionDetail) {
	rec := detail.Session
	fmt.Println(sessionHeaderStyle.Render(fmt.Sprintf("Session %s", rec.SessionID)))
	fmt.Println(sessionMetaStyle.Render(fmt.Sprintf("Patient: %s, age %d", rec.Name, rec.Age)))
	fmt.Println(sessionMetaStyle.Render(fmt.Sprintf("Ended:   %s", rec.EndedAt().Format(time.DateTime))))
	fmt.Println(sessionMetaStyle.Render(fmt.Sprintf("Images:  %d recorded, %d on disk", rec.ImageCount, len(detail.Images))))

	for _, path := range detail.Images {
		fmt.Println(imagePathStyle.Render(path))
	}
}

func init() {
	rootCmd.AddCommand(showCmd)
	showCmd.Flags().StringVar(&showFormat, "format", "table", "Output format: table, yaml, or json")
}
