package cmd

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/oralvis/oralvis/internal"
)

func runCommand(t *testing.T, args ...string) error {
	t.Helper()
	rootCmd.SetArgs(args)
	var stdout, stderr bytes.Buffer
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stderr)
	return rootCmd.Execute()
}

func writeSourceImage(t *testing.T, dir string) string {
	t.Helper()
	path := filepath.Join(dir, "capture.jpg")
	if err := os.WriteFile(path, []byte("jpeg-bytes"), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestSessionFlow(t *testing.T) {
	dir := t.TempDir()
	src := writeSourceImage(t, dir)

	steps := [][]string{
		{"--data-dir", dir, "start", "P001"},
		{"--data-dir", dir, "capture", src},
		{"--data-dir", dir, "capture", src, src},
		{"--data-dir", dir, "end", "--name", "Jane Doe", "--age", "34"},
	}
	for _, args := range steps {
		if err := runCommand(t, args...); err != nil {
			t.Fatalf("command %v failed: %v", args, err)
		}
	}

	// Verify the single finalized record and its files
	app, err := internal.OpenApp(dir)
	if err != nil {
		t.Fatal(err)
	}
	defer app.Close()

	rec, err := app.Repo.GetSessionByID(context.Background(), "P001")
	if err != nil {
		t.Fatalf("session record missing after flow: %v", err)
	}
	if rec.Name != "Jane Doe" || rec.Age != 34 || rec.ImageCount != 3 {
		t.Errorf("record = %+v, want Jane Doe/34/3", rec)
	}

	images, err := app.Files.ListImages("P001")
	if err != nil {
		t.Fatal(err)
	}
	if len(images) != 3 {
		t.Errorf("session directory has %d images, want 3", len(images))
	}

	// No leftover checkpoint
	state, err := app.State.Load()
	if err != nil || state != nil {
		t.Errorf("active checkpoint after end = %+v, %v", state, err)
	}
}

func TestSessionFlow_DeleteRemovesRecordAndFiles(t *testing.T) {
	dir := t.TempDir()
	src := writeSourceImage(t, dir)

	steps := [][]string{
		{"--data-dir", dir, "start", "P002"},
		{"--data-dir", dir, "capture", src},
		{"--data-dir", dir, "end", "--name", "John Smith", "--age", "52"},
		{"--data-dir", dir, "delete", "--yes", "P002"},
	}
	for _, args := range steps {
		if err := runCommand(t, args...); err != nil {
			t.Fatalf("command %v failed: %v", args, err)
		}
	}

	app, err := internal.OpenApp(dir)
	if err != nil {
		t.Fatal(err)
	}
	defer app.Close()

	if _, err := app.Repo.GetSessionByID(context.Background(), "P002"); err != internal.ErrSessionNotFound {
		t.Errorf("record still present after delete: %v", err)
	}
	if _, err := os.Stat(filepath.Join(app.Config.PicturesDir, "P002")); !os.IsNotExist(err) {
		t.Error("image directory still present after delete")
	}

	// Deleting again reports not-found but does not fail
	if err := runCommand(t, "--data-dir", dir, "delete", "--yes", "P002"); err != nil {
		t.Errorf("second delete failed: %v", err)
	}
}

func TestSessionFlow_AbandonLeavesOrphan(t *testing.T) {
	dir := t.TempDir()
	src := writeSourceImage(t, dir)

	steps := [][]string{
		{"--data-dir", dir, "start", "P003"},
		{"--data-dir", dir, "capture", src},
		{"--data-dir", dir, "abandon"},
	}
	for _, args := range steps {
		if err := runCommand(t, args...); err != nil {
			t.Fatalf("command %v failed: %v", args, err)
		}
	}

	app, err := internal.OpenApp(dir)
	if err != nil {
		t.Fatal(err)
	}
	defer app.Close()

	if _, err := app.Repo.GetSessionByID(context.Background(), "P003"); err != internal.ErrSessionNotFound {
		t.Errorf("abandoned session left a record: %v", err)
	}

	orphans, err := app.Lifecycle.OrphanedDirectories(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(orphans) != 1 || orphans[0] != "P003" {
		t.Errorf("orphans = %v, want [P003]", orphans)
	}

	// Sweep with --remove cleans it up
	if err := runCommand(t, "--data-dir", dir, "sweep", "--remove"); err != nil {
		t.Fatalf("sweep failed: %v", err)
	}
	orphans, err = app.Lifecycle.OrphanedDirectories(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(orphans) != 0 {
		t.Errorf("orphans after sweep = %v, want none", orphans)
	}
}
