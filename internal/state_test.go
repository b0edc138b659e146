package internal

import (
	"os"
	"testing"

	"github.com/oralvis/oralvis/testutil"
)

func TestStateFile_LoadMissing(t *testing.T) {
	sf := NewStateFile(testutil.CreateTempDir(t))

	state, err := sf.Load()
	if err != nil {
		t.Fatalf("Load() with no file error = %v", err)
	}
	if state != nil {
		t.Errorf("Load() with no file = %+v, want nil", state)
	}
}

func TestStateFile_SaveLoadClear(t *testing.T) {
	sf := NewStateFile(testutil.CreateTempDir(t))

	saved := &ActiveState{SessionID: "P001", CapturedImageCount: 3, StartedAt: 1700000000000}
	if err := sf.Save(saved); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	loaded, err := sf.Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if loaded == nil {
		t.Fatal("Load() = nil after Save()")
	}
	if loaded.SessionID != "P001" || loaded.CapturedImageCount != 3 || loaded.StartedAt != 1700000000000 {
		t.Errorf("Load() = %+v, want %+v", loaded, saved)
	}

	if err := sf.Clear(); err != nil {
		t.Fatalf("Clear() error = %v", err)
	}
	state, err := sf.Load()
	if err != nil || state != nil {
		t.Errorf("Load() after Clear() = %+v, %v", state, err)
	}

	// Clearing again is a no-op
	if err := sf.Clear(); err != nil {
		t.Errorf("second Clear() error = %v", err)
	}
}

func TestStateFile_LoadCorrupt(t *testing.T) {
	dir := testutil.CreateTempDir(t)
	sf := NewStateFile(dir)
	if err := os.WriteFile(sf.Path(), []byte("\tnot yaml {"), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := sf.Load(); err == nil {
		t.Error("Load() of corrupt state returned nil error")
	}
}
