package internal

import (
	"database/sql"
)

// App wires the configuration, database, stores, and lifecycle
// controller together. It is constructed once per process and passed
// to whatever needs it; there is no global instance.
type App struct {
	Config    *Config
	DB        *sql.DB
	Store     *SessionStore
	Repo      *SessionRepository
	Files     *FileStore
	Lifecycle *Lifecycle
	State     *StateFile
}

// OpenApp loads configuration for the data directory, opens the
// session database, and wires the stores and controller. The returned
// App must be closed.
func OpenApp(dataDir string) (*App, error) {
	cfg, err := LoadConfig(dataDir)
	if err != nil {
		return nil, err
	}

	db, err := OpenDatabase(cfg.DatabasePath)
	if err != nil {
		return nil, err
	}

	store := NewSessionStore(db)
	repo := NewSessionRepository(store)
	files := NewFileStore(cfg.PicturesDir)

	return &App{
		Config:    cfg,
		DB:        db,
		Store:     store,
		Repo:      repo,
		Files:     files,
		Lifecycle: NewLifecycle(repo, files),
		State:     NewStateFile(cfg.DataDir),
	}, nil
}

// Close releases the database handle
func (a *App) Close() error {
	return a.DB.Close()
}

// RestoreActive rehydrates the lifecycle controller from the
// checkpointed state of a previous invocation, if any. Returns the
// loaded state, or nil when no session is in progress.
func (a *App) RestoreActive() (*ActiveState, error) {
	state, err := a.State.Load()
	if err != nil {
		return nil, err
	}
	if state != nil {
		a.Lifecycle.Restore(state.SessionID, state.CapturedImageCount)
	}
	return state, nil
}

// CheckpointActive saves the lifecycle controller's transient state
// for the next invocation, or clears the checkpoint when idle.
func (a *App) CheckpointActive(startedAt int64) error {
	if !a.Lifecycle.InProgress() {
		return a.State.Clear()
	}
	return a.State.Save(&ActiveState{
		SessionID:          a.Lifecycle.CurrentSessionID(),
		CapturedImageCount: a.Lifecycle.CapturedImageCount(),
		StartedAt:          startedAt,
	})
}
