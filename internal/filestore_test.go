package internal

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/oralvis/oralvis/testutil"
)

func TestFileStore_SessionDirectory(t *testing.T) {
	root := testutil.CreateTempDir(t)
	fs := NewFileStore(root)

	dir, err := fs.SessionDirectory("P001")
	if err != nil {
		t.Fatalf("SessionDirectory() error = %v", err)
	}
	if dir != filepath.Join(root, "P001") {
		t.Errorf("SessionDirectory() = %s, want %s", dir, filepath.Join(root, "P001"))
	}
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		t.Fatalf("SessionDirectory() did not create directory: %v", err)
	}

	// Idempotent
	again, err := fs.SessionDirectory("P001")
	if err != nil {
		t.Fatalf("second SessionDirectory() error = %v", err)
	}
	if again != dir {
		t.Errorf("second SessionDirectory() = %s, want %s", again, dir)
	}
}

func TestFileStore_NewImageFilePath(t *testing.T) {
	root := testutil.CreateTempDir(t)
	fs := NewFileStore(root)

	path, err := fs.NewImageFilePath("P001")
	if err != nil {
		t.Fatalf("NewImageFilePath() error = %v", err)
	}

	name := filepath.Base(path)
	if !strings.HasPrefix(name, "IMG_") || !strings.HasSuffix(name, ".jpg") {
		t.Errorf("NewImageFilePath() = %s, want IMG_*.jpg", name)
	}
	if filepath.Dir(path) != filepath.Join(root, "P001") {
		t.Errorf("NewImageFilePath() placed file in %s", filepath.Dir(path))
	}
}

func TestFileStore_NewImageFilePath_SameSecond(t *testing.T) {
	root := testutil.CreateTempDir(t)
	fs := NewFileStore(root)

	// Occupy the first path; the next request in the same second must
	// come back disambiguated.
	first, err := fs.NewImageFilePath("P001")
	if err != nil {
		t.Fatalf("NewImageFilePath() error = %v", err)
	}
	if err := os.WriteFile(first, []byte("img"), 0644); err != nil {
		t.Fatalf("Failed to write first image: %v", err)
	}

	second, err := fs.NewImageFilePath("P001")
	if err != nil {
		t.Fatalf("second NewImageFilePath() error = %v", err)
	}
	if second == first {
		t.Fatalf("NewImageFilePath() collided: %s", second)
	}
	if _, err := os.Stat(second); !os.IsNotExist(err) {
		t.Errorf("disambiguated path %s already exists", second)
	}
}

func TestFileStore_ListImages(t *testing.T) {
	root := testutil.CreateTempDir(t)
	fs := NewFileStore(root)
	dir := filepath.Join(root, "P001")

	base := time.Now().Add(-time.Hour)
	newest := testutil.WriteImage(t, dir, "IMG_20240101_120002.jpg")
	oldest := testutil.WriteImage(t, dir, "IMG_20240101_120000.jpg")
	middle := testutil.WriteImage(t, dir, "IMG_20240101_120001.jpg")
	testutil.Touch(t, oldest, base)
	testutil.Touch(t, middle, base.Add(time.Minute))
	testutil.Touch(t, newest, base.Add(2*time.Minute))

	// Noise that must be filtered out
	testutil.WriteImage(t, dir, "notes.txt")
	testutil.WriteImage(t, dir, "IMG_20240101_120003.png")
	testutil.WriteImage(t, dir, "photo.jpg")

	images, err := fs.ListImages("P001")
	if err != nil {
		t.Fatalf("ListImages() error = %v", err)
	}
	want := []string{oldest, middle, newest}
	if len(images) != len(want) {
		t.Fatalf("ListImages() returned %d files, want %d: %v", len(images), len(want), images)
	}
	for i := range want {
		if images[i] != want[i] {
			t.Errorf("ListImages()[%d] = %s, want %s", i, images[i], want[i])
		}
	}
}

func TestFileStore_ListImages_MissingDirectory(t *testing.T) {
	fs := NewFileStore(testutil.CreateTempDir(t))

	images, err := fs.ListImages("never-started")
	if err != nil {
		t.Fatalf("ListImages() error = %v, want nil for missing directory", err)
	}
	if len(images) != 0 {
		t.Errorf("ListImages() = %v, want empty", images)
	}
}

func TestFileStore_DeleteSessionFiles(t *testing.T) {
	root := testutil.CreateTempDir(t)
	fs := NewFileStore(root)
	dir := filepath.Join(root, "P001")
	testutil.WriteImage(t, dir, "IMG_20240101_120000.jpg")
	testutil.WriteImage(t, filepath.Join(dir, "nested"), "IMG_20240101_120001.jpg")

	if err := fs.DeleteSessionFiles("P001"); err != nil {
		t.Fatalf("DeleteSessionFiles() error = %v", err)
	}
	if _, err := os.Stat(dir); !os.IsNotExist(err) {
		t.Errorf("session directory still exists after delete")
	}

	// Deleting an absent directory is a no-op
	if err := fs.DeleteSessionFiles("P001"); err != nil {
		t.Errorf("second DeleteSessionFiles() error = %v, want nil", err)
	}
}

func TestFileStore_ListSessionDirectories(t *testing.T) {
	root := testutil.CreateTempDir(t)
	fs := NewFileStore(root)

	if _, err := fs.SessionDirectory("B"); err != nil {
		t.Fatal(err)
	}
	if _, err := fs.SessionDirectory("A"); err != nil {
		t.Fatal(err)
	}
	testutil.WriteImage(t, root, "stray.jpg")

	ids, err := fs.ListSessionDirectories()
	if err != nil {
		t.Fatalf("ListSessionDirectories() error = %v", err)
	}
	if len(ids) != 2 || ids[0] != "A" || ids[1] != "B" {
		t.Errorf("ListSessionDirectories() = %v, want [A B]", ids)
	}
}

func TestFileStore_ListSessionDirectories_MissingRoot(t *testing.T) {
	fs := NewFileStore(filepath.Join(testutil.CreateTempDir(t), "nonexistent"))

	ids, err := fs.ListSessionDirectories()
	if err != nil {
		t.Fatalf("ListSessionDirectories() error = %v", err)
	}
	if len(ids) != 0 {
		t.Errorf("ListSessionDirectories() = %v, want empty", ids)
	}
}
