package internal

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// ActiveState is the checkpointed transient state of an in-progress
// session. It lets short-lived CLI invocations share one logical
// session. It is not a session record: the sessions table only ever
// sees finalized records.
type ActiveState struct {
	SessionID          string `yaml:"session_id"`
	CapturedImageCount int    `yaml:"captured_image_count"`
	StartedAt          int64  `yaml:"started_at"` // epoch millis
}

// StateFile persists ActiveState between CLI invocations
type StateFile struct {
	path string
}

// NewStateFile creates a state file handle under the given directory
func NewStateFile(dir string) *StateFile {
	return &StateFile{path: filepath.Join(dir, "active.yaml")}
}

// Path returns the backing file path
func (sf *StateFile) Path() string {
	return sf.path
}

// Load reads the checkpointed state. A missing file means no session
// is in progress and returns nil, not an error.
func (sf *StateFile) Load() (*ActiveState, error) {
	data, err := os.ReadFile(sf.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, &FileStoreError{Path: sf.path, Op: "read", Err: err}
	}

	var state ActiveState
	if err := yaml.Unmarshal(data, &state); err != nil {
		return nil, &FileStoreError{Path: sf.path, Op: "read", Err: err}
	}
	if state.SessionID == "" {
		return nil, nil
	}
	return &state, nil
}

// Save checkpoints the state, replacing any previous checkpoint
func (sf *StateFile) Save(state *ActiveState) error {
	data, err := yaml.Marshal(state)
	if err != nil {
		return &FileStoreError{Path: sf.path, Op: "write", Err: err}
	}
	if err := os.MkdirAll(filepath.Dir(sf.path), 0755); err != nil {
		return &FileStoreError{Path: sf.path, Op: "mkdir", Err: err}
	}
	if err := os.WriteFile(sf.path, data, 0644); err != nil {
		return &FileStoreError{Path: sf.path, Op: "write", Err: err}
	}
	return nil
}

// Clear removes the checkpoint. Clearing an absent checkpoint is a
// no-op.
func (sf *StateFile) Clear() error {
	if err := os.Remove(sf.path); err != nil && !os.IsNotExist(err) {
		return &FileStoreError{Path: sf.path, Op: "remove", Err: err}
	}
	return nil
}
