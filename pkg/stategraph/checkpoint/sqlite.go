package checkpoint

import (
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"time"

	_ "modernc.org/sqlite" // pure Go SQLite driver
)

// SQLiteStore persists checkpoints to SQLite, giving threads a history
// that survives process restarts. Suitable for single-process use.
type SQLiteStore struct {
	db     *sql.DB
	mu     sync.RWMutex
	closed bool
}

// NewSQLiteStore opens (creating if needed) a SQLite checkpoint store.
// Use a file path like "./threads.db", or ":memory:" for tests.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// WAL improves concurrent read behavior.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enable WAL mode: %w", err)
	}

	if _, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS checkpoints (
			thread_id       TEXT NOT NULL,
			sequence        INTEGER NOT NULL,
			node_id         TEXT NOT NULL,
			prev_node_id    TEXT NOT NULL DEFAULT '',
			next_node       TEXT NOT NULL,
			interrupted     INTEGER NOT NULL DEFAULT 0,
			interrupt_query TEXT NOT NULL DEFAULT '',
			version         INTEGER NOT NULL,
			timestamp       TEXT NOT NULL,
			state           BLOB NOT NULL,
			PRIMARY KEY (thread_id, sequence)
		)
	`); err != nil {
		db.Close()
		return nil, fmt.Errorf("create table: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// Save implements Store.
func (s *SQLiteStore) Save(cp *Checkpoint) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrStoreClosed
	}

	now := time.Now().UTC()
	var seq int
	err := s.db.QueryRow(`
		INSERT INTO checkpoints (
			thread_id, sequence, node_id, prev_node_id, next_node,
			interrupted, interrupt_query, version, timestamp, state
		)
		VALUES (
			?,
			COALESCE((SELECT MAX(sequence) FROM checkpoints WHERE thread_id = ?), 0) + 1,
			?, ?, ?, ?, ?, ?, ?, ?
		)
		RETURNING sequence
	`, cp.ThreadID, cp.ThreadID, cp.NodeID, cp.PrevNodeID, cp.NextNode,
		boolToInt(cp.Interrupted), cp.InterruptQuery, cp.Version,
		now.Format(time.RFC3339Nano), []byte(cp.State)).Scan(&seq)
	if err != nil {
		return fmt.Errorf("save checkpoint: %w", err)
	}

	cp.Sequence = seq
	cp.Timestamp = now
	return nil
}

// Latest implements Store.
func (s *SQLiteStore) Latest(threadID string) (*Checkpoint, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return nil, ErrStoreClosed
	}

	return s.scanOne(s.db.QueryRow(`
		SELECT thread_id, sequence, node_id, prev_node_id, next_node,
		       interrupted, interrupt_query, version, timestamp, state
		FROM checkpoints
		WHERE thread_id = ?
		ORDER BY sequence DESC
		LIMIT 1
	`, threadID))
}

// Get implements Store.
func (s *SQLiteStore) Get(threadID string, sequence int) (*Checkpoint, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return nil, ErrStoreClosed
	}

	return s.scanOne(s.db.QueryRow(`
		SELECT thread_id, sequence, node_id, prev_node_id, next_node,
		       interrupted, interrupt_query, version, timestamp, state
		FROM checkpoints
		WHERE thread_id = ? AND sequence = ?
	`, threadID, sequence))
}

// List implements Store.
func (s *SQLiteStore) List(threadID string) ([]Info, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return nil, ErrStoreClosed
	}

	rows, err := s.db.Query(`
		SELECT thread_id, sequence, node_id, interrupted, timestamp, LENGTH(state)
		FROM checkpoints
		WHERE thread_id = ?
		ORDER BY sequence ASC
	`, threadID)
	if err != nil {
		return nil, fmt.Errorf("list checkpoints: %w", err)
	}
	defer rows.Close()

	infos := []Info{}
	for rows.Next() {
		var info Info
		var interrupted int
		var ts string
		if err := rows.Scan(&info.ThreadID, &info.Sequence, &info.NodeID, &interrupted, &ts, &info.Size); err != nil {
			return nil, fmt.Errorf("scan checkpoint: %w", err)
		}
		info.Interrupted = interrupted != 0
		info.Timestamp, _ = time.Parse(time.RFC3339Nano, ts)
		infos = append(infos, info)
	}
	return infos, rows.Err()
}

// DeleteThread implements Store.
func (s *SQLiteStore) DeleteThread(threadID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrStoreClosed
	}

	if _, err := s.db.Exec(`DELETE FROM checkpoints WHERE thread_id = ?`, threadID); err != nil {
		return fmt.Errorf("delete thread: %w", err)
	}
	return nil
}

// Close implements Store.
func (s *SQLiteStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}
	s.closed = true
	return s.db.Close()
}

// scanOne reads a full checkpoint row.
func (s *SQLiteStore) scanOne(row *sql.Row) (*Checkpoint, error) {
	var cp Checkpoint
	var interrupted int
	var ts string
	var state []byte

	err := row.Scan(&cp.ThreadID, &cp.Sequence, &cp.NodeID, &cp.PrevNodeID, &cp.NextNode,
		&interrupted, &cp.InterruptQuery, &cp.Version, &ts, &state)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load checkpoint: %w", err)
	}

	cp.Interrupted = interrupted != 0
	cp.Timestamp, _ = time.Parse(time.RFC3339Nano, ts)
	cp.State = state
	return &cp, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
