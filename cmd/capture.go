package cmd

import (
	"fmt"
	"time"

	"github.com/oralvis/oralvis/internal"
	"github.com/spf13/cobra"
)

var captureCmd = &cobra.Command{
	Use:   "capture [image-file]...",
	Short: "Capture images into the current session",
	Long: `Capture one or more images into the in-progress session.

Each image file is copied into the session's folder under a timestamped
name. The capture counter only moves for images that were written
successfully; a failed copy can simply be retried.

With no arguments the configured camera_source from config.yaml is used.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := openApp()
		if err != nil {
			return err
		}
		defer app.Close()

		if !app.Lifecycle.InProgress() {
			return fmt.Errorf("no session in progress; run 'oralvis start' first")
		}

		sources := args
		if len(sources) == 0 {
			if app.Config.CameraSource == "" {
				return fmt.Errorf("no image file given and no camera_source configured")
			}
			sources = []string{app.Config.CameraSource}
		}

		ctx := cmd.Context()
		captured := 0
		for _, src := range sources {
			camera := &internal.FileCamera{SourcePath: src}
			path, err := app.Lifecycle.CaptureImage(ctx, camera)
			if err != nil {
				internal.LogError("capture of %s failed: %v", src, err)
				continue
			}
			captured++
			internal.LogDebug("captured %s -> %s", src, path)
		}

		if err := app.CheckpointActive(time.Now().UnixMilli()); err != nil {
			return fmt.Errorf("failed to checkpoint session state: %w", err)
		}

		fmt.Printf("Captured %d of %d image(s), session %s now has %d\n",
			captured, len(sources), app.Lifecycle.CurrentSessionID(), app.Lifecycle.CapturedImageCount())
		if captured < len(sources) {
			return fmt.Errorf("%d capture(s) failed", len(sources)-captured)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(captureCmd)
}
