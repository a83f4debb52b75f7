package audit

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/ziadkadry99/scenecoach/internal/coach"
	"github.com/ziadkadry99/scenecoach/internal/db"
)

// Store provides persistence for coaching run entries.
type Store struct {
	db *db.DB
}

// NewStore creates a Store backed by the given database.
func NewStore(database *db.DB) *Store {
	return &Store{db: database}
}

// Log inserts a new entry. If entry.ID is empty a UUID is generated and a
// zero Timestamp becomes now.
func (s *Store) Log(ctx context.Context, entry Entry) (string, error) {
	if entry.ID == "" {
		entry.ID = uuid.New().String()
	}
	if entry.Timestamp.IsZero() {
		entry.Timestamp = time.Now().UTC()
	}
	if entry.Violations == nil {
		entry.Violations = []string{}
	}

	violations, err := json.Marshal(entry.Violations)
	if err != nil {
		return "", fmt.Errorf("marshalling violations: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO coach_runs (
			id, timestamp, user_id, thread_id, style, contract_kind, outcome,
			attempts, violations, input_tokens, output_tokens, summary
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		entry.ID,
		entry.Timestamp.UTC().Format(time.DateTime),
		entry.UserID,
		entry.ThreadID,
		string(entry.Style),
		string(entry.ContractKind),
		string(entry.Outcome),
		entry.Attempts,
		string(violations),
		entry.InputTokens,
		entry.OutputTokens,
		entry.Summary,
	)
	if err != nil {
		return "", fmt.Errorf("inserting coach run: %w", err)
	}
	return entry.ID, nil
}

const selectColumns = `SELECT id, timestamp, user_id, thread_id, style, contract_kind, outcome,
	attempts, violations, input_tokens, output_tokens, summary FROM coach_runs`

// GetByID retrieves a single entry. Returns nil, nil if not found.
func (s *Store) GetByID(ctx context.Context, id string) (*Entry, error) {
	e, err := scanInto(s.db.QueryRowContext(ctx, selectColumns+" WHERE id = ?", id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("querying coach run: %w", err)
	}
	return e, nil
}

// QueryFilter controls which entries are returned by Query.
type QueryFilter struct {
	UserID  string
	Outcome Outcome
	Style   coach.Style
	Since   *time.Time
	Until   *time.Time
	Limit   int
	Offset  int
}

// Query returns entries matching the filter, newest first.
func (s *Store) Query(ctx context.Context, filter QueryFilter) ([]Entry, error) {
	var (
		clauses []string
		args    []any
	)

	if filter.UserID != "" {
		clauses = append(clauses, "user_id = ?")
		args = append(args, filter.UserID)
	}
	if filter.Outcome != "" {
		clauses = append(clauses, "outcome = ?")
		args = append(args, string(filter.Outcome))
	}
	if filter.Style != "" {
		clauses = append(clauses, "style = ?")
		args = append(args, string(filter.Style))
	}
	if filter.Since != nil {
		clauses = append(clauses, "timestamp >= ?")
		args = append(args, filter.Since.UTC().Format(time.DateTime))
	}
	if filter.Until != nil {
		clauses = append(clauses, "timestamp <= ?")
		args = append(args, filter.Until.UTC().Format(time.DateTime))
	}

	query := selectColumns
	if len(clauses) > 0 {
		query += " WHERE " + strings.Join(clauses, " AND ")
	}
	query += " ORDER BY timestamp DESC, rowid DESC"

	if filter.Limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", filter.Limit)
		if filter.Offset > 0 {
			query += fmt.Sprintf(" OFFSET %d", filter.Offset)
		}
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying coach runs: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		e, err := scanInto(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning coach run: %w", err)
		}
		entries = append(entries, *e)
	}
	return entries, rows.Err()
}

// DeleteBefore removes all entries older than the given time.
// Returns the number of deleted rows.
func (s *Store) DeleteBefore(ctx context.Context, before time.Time) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		"DELETE FROM coach_runs WHERE timestamp < ?",
		before.UTC().Format(time.DateTime),
	)
	if err != nil {
		return 0, fmt.Errorf("deleting old coach runs: %w", err)
	}
	return res.RowsAffected()
}

// scanner is implemented by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanInto(sc scanner) (*Entry, error) {
	var (
		e                           Entry
		ts                          string
		style, kind, outcome, viols string
	)

	err := sc.Scan(
		&e.ID, &ts, &e.UserID, &e.ThreadID, &style, &kind, &outcome,
		&e.Attempts, &viols, &e.InputTokens, &e.OutputTokens, &e.Summary,
	)
	if err != nil {
		return nil, err
	}

	e.Style = coach.Style(style)
	e.ContractKind = coach.Kind(kind)
	e.Outcome = Outcome(outcome)

	if t, parseErr := time.Parse(time.DateTime, ts); parseErr == nil {
		e.Timestamp = t
	} else if t, parseErr := time.Parse(time.RFC3339, ts); parseErr == nil {
		e.Timestamp = t
	}

	if err := json.Unmarshal([]byte(viols), &e.Violations); err != nil {
		e.Violations = nil
	}

	return &e, nil
}
