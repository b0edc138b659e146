package internal

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Camera is the single capability the lifecycle needs from a capture
// pipeline: write one image to the given path and report success or
// failure. Preview, focus, and hardware selection live behind it.
type Camera interface {
	Capture(ctx context.Context, destPath string) error
}

// FileCamera captures by copying an existing image file into place.
// It stands in for a device pipeline when driving sessions from the
// command line.
type FileCamera struct {
	SourcePath string
}

// Capture copies the source image to destPath. A partially written
// destination is removed on failure so the session directory never
// holds a truncated image.
func (c *FileCamera) Capture(ctx context.Context, destPath string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	src, err := os.Open(c.SourcePath)
	if err != nil {
		if os.IsPermission(err) {
			return &PermissionError{Resource: "camera", Err: err}
		}
		return &FileStoreError{Path: c.SourcePath, Op: "write", Err: err}
	}
	defer src.Close()

	if !isImageFile(c.SourcePath) {
		return &InvalidInputError{Field: "image", Value: c.SourcePath, Reason: "not a supported image file"}
	}

	dst, err := os.Create(destPath)
	if err != nil {
		return &FileStoreError{Path: destPath, Op: "write", Err: err}
	}

	if _, err := io.Copy(dst, src); err != nil {
		dst.Close()
		os.Remove(destPath)
		return &FileStoreError{Path: destPath, Op: "write", Err: err}
	}
	if err := dst.Close(); err != nil {
		os.Remove(destPath)
		return &FileStoreError{Path: destPath, Op: "write", Err: err}
	}
	return nil
}

func isImageFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".jpg", ".jpeg", ".png":
		return true
	}
	return false
}

// CaptureFunc adapts a function to the Camera interface
type CaptureFunc func(ctx context.Context, destPath string) error

// Capture implements Camera
func (f CaptureFunc) Capture(ctx context.Context, destPath string) error {
	return f(ctx, destPath)
}

var _ Camera = (*FileCamera)(nil)
var _ Camera = CaptureFunc(nil)
