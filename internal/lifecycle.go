package internal

import (
	"context"
	"sync"
	"time"
)

// Lifecycle owns the transient state of the in-progress session and
// coordinates the file store and session store across start, capture,
// end, and delete. No record is written until the session is
// finalized; an abandoned session leaves only its image directory
// behind.
type Lifecycle struct {
	repo  *SessionRepository
	files *FileStore

	mu                 sync.Mutex
	currentSessionID   string
	capturedImageCount int
	generation         uint64
}

// NewLifecycle creates a lifecycle controller
func NewLifecycle(repo *SessionRepository, files *FileStore) *Lifecycle {
	return &Lifecycle{repo: repo, files: files}
}

// StartNewSession begins a session with the given id. Starting over an
// unfinished session abandons it; any id, including one already in the
// store, is accepted and will overwrite that record at finalize.
func (l *Lifecycle) StartNewSession(sessionID string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.currentSessionID = sessionID
	l.capturedImageCount = 0
	l.generation++
}

// Restore rehydrates transient state checkpointed by a previous
// process. It behaves like StartNewSession with a preserved counter.
func (l *Lifecycle) Restore(sessionID string, capturedImageCount int) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.currentSessionID = sessionID
	l.capturedImageCount = capturedImageCount
	l.generation++
}

// CurrentSessionID returns the in-progress session id, or "" when idle
func (l *Lifecycle) CurrentSessionID() string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.currentSessionID
}

// CapturedImageCount returns the running capture counter
func (l *Lifecycle) CapturedImageCount() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.capturedImageCount
}

// InProgress reports whether a session is currently open
func (l *Lifecycle) InProgress() bool {
	return l.CurrentSessionID() != ""
}

// RecordCapture increments the capture counter. Call it only after the
// camera pipeline confirmed a successful write; failed captures must
// leave the counter untouched.
func (l *Lifecycle) RecordCapture() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.currentSessionID == "" {
		return
	}
	l.capturedImageCount++
}

// CaptureImage obtains a fresh image path for the current session,
// runs the camera against it, and records the capture on success. A
// capture completing after the session ended or restarted is discarded
// without touching the counter.
func (l *Lifecycle) CaptureImage(ctx context.Context, camera Camera) (string, error) {
	l.mu.Lock()
	sessionID := l.currentSessionID
	gen := l.generation
	l.mu.Unlock()

	if sessionID == "" {
		return "", &InvalidInputError{Field: "session", Value: "", Reason: "no session in progress"}
	}

	path, err := l.files.NewImageFilePath(sessionID)
	if err != nil {
		return "", err
	}

	if err := camera.Capture(ctx, path); err != nil {
		return "", err
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	if l.generation != gen {
		// Session ended or restarted while the capture was in flight.
		LogWarn("capture for session %s completed after the session closed: %s", sessionID, path)
		return path, nil
	}
	l.capturedImageCount++
	return path, nil
}

// EndSession finalizes the in-progress session: validates the patient
// details, snapshots the image count, writes the one durable record,
// and returns to idle. Image count is recomputed from the files on
// disk rather than trusted from the running counter, so the stored
// record always matches the directory contents. Ending with no session
// in progress is a no-op.
func (l *Lifecycle) EndSession(ctx context.Context, name string, age int) (*Session, error) {
	l.mu.Lock()
	sessionID := l.currentSessionID
	counted := l.capturedImageCount
	l.mu.Unlock()

	if sessionID == "" {
		return nil, nil
	}

	if err := ValidatePatient(name, age); err != nil {
		return nil, err
	}

	imageCount, err := l.files.CountImages(sessionID)
	if err != nil {
		LogWarn("could not count images for session %s, using running counter: %v", sessionID, err)
		imageCount = counted
	}

	rec := &Session{
		SessionID:  sessionID,
		Name:       name,
		Age:        age,
		Timestamp:  time.Now().UnixMilli(),
		ImageCount: imageCount,
	}
	if err := l.repo.InsertSession(ctx, rec); err != nil {
		// Stay in progress so the caller can retry or abandon.
		return nil, err
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	if l.currentSessionID == sessionID {
		l.currentSessionID = ""
		l.capturedImageCount = 0
		l.generation++
	}
	return rec, nil
}

// Abandon discards the in-progress session without writing a record.
// Captured files stay on disk as an orphaned directory for a later
// sweep.
func (l *Lifecycle) Abandon() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.currentSessionID = ""
	l.capturedImageCount = 0
	l.generation++
}

// DeleteSession removes a persisted record and then its image
// directory. File removal failures are logged, not returned: a record
// may be gone while its directory lingers for a future sweep.
func (l *Lifecycle) DeleteSession(ctx context.Context, rec *Session) error {
	if err := l.repo.DeleteSession(ctx, rec); err != nil {
		return err
	}
	if err := l.files.DeleteSessionFiles(rec.SessionID); err != nil {
		LogWarn("failed to remove files for session %s: %v", rec.SessionID, err)
	}
	return nil
}

// SessionImages lists the image paths recorded on disk for a session,
// oldest capture first.
func (l *Lifecycle) SessionImages(sessionID string) ([]string, error) {
	return l.files.ListImages(sessionID)
}

// OrphanedDirectories returns session ids that have an image directory
// but no record, the leftovers of abandoned or crashed sessions. The
// in-progress session is never reported as an orphan.
func (l *Lifecycle) OrphanedDirectories(ctx context.Context) ([]string, error) {
	ids, err := l.files.ListSessionDirectories()
	if err != nil {
		return nil, err
	}

	current := l.CurrentSessionID()
	orphans := make([]string, 0)
	for _, id := range ids {
		if id == current {
			continue
		}
		_, err := l.repo.GetSessionByID(ctx, id)
		if err == ErrSessionNotFound {
			orphans = append(orphans, id)
			continue
		}
		if err != nil {
			return nil, err
		}
	}
	return orphans, nil
}
