package internal

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/oralvis/oralvis/testutil"
)

func TestLoadConfig_Defaults(t *testing.T) {
	dir := testutil.CreateTempDir(t)

	cfg, err := LoadConfig(dir)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if cfg.DataDir != dir {
		t.Errorf("DataDir = %s, want %s", cfg.DataDir, dir)
	}
	if cfg.DatabasePath != filepath.Join(dir, "sessions.db") {
		t.Errorf("DatabasePath = %s", cfg.DatabasePath)
	}
	if cfg.PicturesDir != filepath.Join(dir, "Pictures", "OralVis", "Sessions") {
		t.Errorf("PicturesDir = %s", cfg.PicturesDir)
	}
}

func TestLoadConfig_FileOverrides(t *testing.T) {
	dir := testutil.CreateTempDir(t)
	content := "pictures_dir: /mnt/photos\ncamera_source: /dev/shm/frame.jpg\n"
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(dir)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if cfg.PicturesDir != "/mnt/photos" {
		t.Errorf("PicturesDir = %s, want /mnt/photos", cfg.PicturesDir)
	}
	if cfg.CameraSource != "/dev/shm/frame.jpg" {
		t.Errorf("CameraSource = %s", cfg.CameraSource)
	}
	// Unset fields still get defaults
	if cfg.DatabasePath != filepath.Join(dir, "sessions.db") {
		t.Errorf("DatabasePath = %s", cfg.DatabasePath)
	}
}

func TestLoadConfig_Malformed(t *testing.T) {
	dir := testutil.CreateTempDir(t)
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("\t{broken"), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := LoadConfig(dir); err == nil {
		t.Error("LoadConfig() of malformed file returned nil error")
	}
}
