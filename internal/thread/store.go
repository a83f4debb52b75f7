package thread

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/google/uuid"
	"github.com/ziadkadry99/scenecoach/internal/db"
)

// Store provides persistence for threads and their messages.
type Store struct {
	db *db.DB
}

// NewStore creates a Store backed by the given database.
func NewStore(database *db.DB) *Store {
	return &Store{db: database}
}

// GetOrCreate returns the thread for (scriptID, userID), creating it on
// first use. Concurrent callers converge on the same row.
func (s *Store) GetOrCreate(ctx context.Context, scriptID, userID string) (*Thread, error) {
	if scriptID == "" || userID == "" {
		return nil, fmt.Errorf("script id and user id are required")
	}

	now := time.Now().UTC()
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO agent_threads (id, script_id, user_id, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(script_id, user_id) DO NOTHING`,
		uuid.New().String(), scriptID, userID, now, now,
	)
	if err != nil {
		return nil, fmt.Errorf("creating thread: %w", err)
	}

	var t Thread
	err = s.db.QueryRowContext(ctx, `
		SELECT id, script_id, user_id, created_at, updated_at
		FROM agent_threads WHERE script_id = ? AND user_id = ?`, scriptID, userID,
	).Scan(&t.ID, &t.ScriptID, &t.UserID, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("querying thread: %w", err)
	}
	return &t, nil
}

// Get retrieves a thread by ID. Returns nil, nil if not found.
func (s *Store) Get(ctx context.Context, id string) (*Thread, error) {
	var t Thread
	err := s.db.QueryRowContext(ctx, `
		SELECT id, script_id, user_id, created_at, updated_at
		FROM agent_threads WHERE id = ?`, id,
	).Scan(&t.ID, &t.ScriptID, &t.UserID, &t.CreatedAt, &t.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("querying thread: %w", err)
	}
	return &t, nil
}

// Append stores a message at the end of the thread.
func (s *Store) Append(ctx context.Context, threadID string, role Role, content string) (*Message, error) {
	if role != RoleUser && role != RoleAssistant {
		return nil, fmt.Errorf("invalid message role %q", role)
	}

	m := &Message{
		ID:        uuid.New().String(),
		ThreadID:  threadID,
		Role:      role,
		Content:   content,
		CreatedAt: time.Now().UTC(),
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO agent_messages (id, thread_id, role, content, created_at)
		VALUES (?, ?, ?, ?, ?)`,
		m.ID, m.ThreadID, string(m.Role), m.Content, m.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("inserting message: %w", err)
	}

	if _, err := s.db.ExecContext(ctx, `UPDATE agent_threads SET updated_at = ? WHERE id = ?`, m.CreatedAt, threadID); err != nil {
		return nil, fmt.Errorf("touching thread: %w", err)
	}
	return m, nil
}

// Recent returns the newest limit messages of the thread, oldest first.
func (s *Store) Recent(ctx context.Context, threadID string, limit int) ([]Message, error) {
	if limit <= 0 {
		limit = DefaultTranscriptLimit
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, thread_id, role, content, created_at
		FROM agent_messages WHERE thread_id = ?
		ORDER BY seq DESC LIMIT ?`, threadID, limit)
	if err != nil {
		return nil, fmt.Errorf("querying messages: %w", err)
	}
	defer rows.Close()

	var msgs []Message
	for rows.Next() {
		var m Message
		var role string
		if err := rows.Scan(&m.ID, &m.ThreadID, &role, &m.Content, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning message: %w", err)
		}
		m.Role = Role(role)
		msgs = append(msgs, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating messages: %w", err)
	}

	slices.Reverse(msgs)
	return msgs, nil
}
