package internal

import (
	"context"
	"database/sql"
	"strings"
	"sync"
)

// Query selects the rows a subscription observes. A zero Query means
// the full session list; a non-blank Search narrows it to containment
// matches the way SessionStore.Search does.
type Query struct {
	Search string
}

// Subscription is a live view over the session table: an initial
// snapshot plus a channel of subsequent snapshots, re-emitted after
// every committed mutation. Intermediate snapshots may be coalesced
// under load, but a newer snapshot is never followed by an older one.
type Subscription struct {
	Initial   []*Session
	Snapshots <-chan []*Session

	store *SessionStore
	id    int
}

// Cancel detaches the subscription and closes its channel.
func (sub *Subscription) Cancel() {
	sub.store.unsubscribe(sub.id)
}

type subscriber struct {
	query Query
	ch    chan []*Session
}

// SessionStore provides durable CRUD and search over session records
type SessionStore struct {
	db *sql.DB

	// mu serializes mutations together with subscriber notification,
	// so snapshots go out in commit order.
	mu      sync.Mutex
	subs    map[int]*subscriber
	nextSub int
}

// NewSessionStore creates a session store over an open database
func NewSessionStore(db *sql.DB) *SessionStore {
	return &SessionStore{
		db:   db,
		subs: make(map[int]*subscriber),
	}
}

// ListAll returns every session record ordered by finalize time,
// most recent first.
func (s *SessionStore) ListAll(ctx context.Context) ([]*Session, error) {
	return s.querySessions(ctx,
		"SELECT session_id, name, age, timestamp, image_count FROM sessions ORDER BY timestamp DESC")
}

// GetByID returns the record for the given session id, or
// ErrSessionNotFound if no record exists.
func (s *SessionStore) GetByID(ctx context.Context, sessionID string) (*Session, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT session_id, name, age, timestamp, image_count FROM sessions WHERE session_id = ?",
		sessionID)

	var rec Session
	err := row.Scan(&rec.SessionID, &rec.Name, &rec.Age, &rec.Timestamp, &rec.ImageCount)
	if err == sql.ErrNoRows {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, &StoreError{Op: "query", SessionID: sessionID, Err: err}
	}
	return &rec, nil
}

// InsertOrReplace upserts a record by session id. A second insert with
// the same id fully replaces the prior record.
func (s *SessionStore) InsertOrReplace(ctx context.Context, rec *Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx,
		"INSERT OR REPLACE INTO sessions (session_id, name, age, timestamp, image_count) VALUES (?, ?, ?, ?, ?)",
		rec.SessionID, rec.Name, rec.Age, rec.Timestamp, rec.ImageCount)
	if err != nil {
		return &StoreError{Op: "insert", SessionID: rec.SessionID, Err: err}
	}

	s.notifyLocked(ctx)
	return nil
}

// Update replaces an existing record. Updating a missing id is a
// caller error and returns ErrSessionNotFound rather than silently
// creating the record.
func (s *SessionStore) Update(ctx context.Context, rec *Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.ExecContext(ctx,
		"UPDATE sessions SET name = ?, age = ?, timestamp = ?, image_count = ? WHERE session_id = ?",
		rec.Name, rec.Age, rec.Timestamp, rec.ImageCount, rec.SessionID)
	if err != nil {
		return &StoreError{Op: "update", SessionID: rec.SessionID, Err: err}
	}

	n, err := res.RowsAffected()
	if err != nil {
		return &StoreError{Op: "update", SessionID: rec.SessionID, Err: err}
	}
	if n == 0 {
		return ErrSessionNotFound
	}

	s.notifyLocked(ctx)
	return nil
}

// Delete removes a record by its primary key. Deleting an absent
// record is not an error.
func (s *SessionStore) Delete(ctx context.Context, rec *Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx, "DELETE FROM sessions WHERE session_id = ?", rec.SessionID)
	if err != nil {
		return &StoreError{Op: "delete", SessionID: rec.SessionID, Err: err}
	}

	s.notifyLocked(ctx)
	return nil
}

// Search returns records whose session id or name contains the given
// substring, most recent first. Containment is case-sensitive. A blank
// query yields an empty result, not the full list.
func (s *SessionStore) Search(ctx context.Context, query string) ([]*Session, error) {
	if strings.TrimSpace(query) == "" {
		return []*Session{}, nil
	}
	return s.querySessions(ctx,
		"SELECT session_id, name, age, timestamp, image_count FROM sessions WHERE instr(session_id, ?) > 0 OR instr(name, ?) > 0 ORDER BY timestamp DESC",
		query, query)
}

// Subscribe opens a live view for the given query. The caller receives
// the current snapshot immediately and subsequent snapshots on the
// channel until Cancel is called.
func (s *SessionStore) Subscribe(ctx context.Context, query Query) (*Subscription, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	initial, err := s.runQuery(ctx, query)
	if err != nil {
		return nil, err
	}

	sub := &subscriber{
		query: query,
		ch:    make(chan []*Session, 1),
	}
	id := s.nextSub
	s.nextSub++
	s.subs[id] = sub

	return &Subscription{
		Initial:   initial,
		Snapshots: sub.ch,
		store:     s,
		id:        id,
	}, nil
}

func (s *SessionStore) unsubscribe(id int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if sub, ok := s.subs[id]; ok {
		delete(s.subs, id)
		close(sub.ch)
	}
}

// notifyLocked re-runs every subscriber's query and pushes the fresh
// snapshot. Caller holds s.mu, which is what keeps snapshots in commit
// order. A slow consumer gets intermediate snapshots coalesced: the
// stale buffered snapshot is replaced by the newest one.
func (s *SessionStore) notifyLocked(ctx context.Context) {
	for _, sub := range s.subs {
		snapshot, err := s.runQuery(ctx, sub.query)
		if err != nil {
			LogWarn("subscription refresh failed: %v", err)
			continue
		}
		select {
		case sub.ch <- snapshot:
		default:
			select {
			case <-sub.ch:
			default:
			}
			sub.ch <- snapshot
		}
	}
}

func (s *SessionStore) runQuery(ctx context.Context, query Query) ([]*Session, error) {
	if query.Search != "" {
		return s.Search(ctx, query.Search)
	}
	return s.ListAll(ctx)
}

func (s *SessionStore) querySessions(ctx context.Context, stmt string, args ...interface{}) ([]*Session, error) {
	rows, err := s.db.QueryContext(ctx, stmt, args...)
	if err != nil {
		return nil, &StoreError{Op: "query", Err: err}
	}
	defer rows.Close()

	sessions := make([]*Session, 0)
	for rows.Next() {
		var rec Session
		if err := rows.Scan(&rec.SessionID, &rec.Name, &rec.Age, &rec.Timestamp, &rec.ImageCount); err != nil {
			return nil, &StoreError{Op: "query", Err: err}
		}
		sessions = append(sessions, &rec)
	}
	if err := rows.Err(); err != nil {
		return nil, &StoreError{Op: "query", Err: err}
	}

	return sessions, nil
}
