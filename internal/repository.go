package internal

import "context"

// SessionRepository is the access point for session records used by
// the rest of the application. It delegates directly to the store.
type SessionRepository struct {
	store *SessionStore
}

// NewSessionRepository creates a repository over a session store
func NewSessionRepository(store *SessionStore) *SessionRepository {
	return &SessionRepository{store: store}
}

// GetAllSessions returns all records, most recent first
func (r *SessionRepository) GetAllSessions(ctx context.Context) ([]*Session, error) {
	return r.store.ListAll(ctx)
}

// GetSessionByID returns a record or ErrSessionNotFound
func (r *SessionRepository) GetSessionByID(ctx context.Context, sessionID string) (*Session, error) {
	return r.store.GetByID(ctx, sessionID)
}

// InsertSession upserts a record by session id
func (r *SessionRepository) InsertSession(ctx context.Context, rec *Session) error {
	return r.store.InsertOrReplace(ctx, rec)
}

// UpdateSession replaces an existing record
func (r *SessionRepository) UpdateSession(ctx context.Context, rec *Session) error {
	return r.store.Update(ctx, rec)
}

// DeleteSession removes a record
func (r *SessionRepository) DeleteSession(ctx context.Context, rec *Session) error {
	return r.store.Delete(ctx, rec)
}

// SearchSessions returns containment matches over id and name
func (r *SessionRepository) SearchSessions(ctx context.Context, query string) ([]*Session, error) {
	return r.store.Search(ctx, query)
}

// SubscribeSessions opens a live view over the store
func (r *SessionRepository) SubscribeSessions(ctx context.Context, query Query) (*Subscription, error) {
	return r.store.Subscribe(ctx, query)
}
