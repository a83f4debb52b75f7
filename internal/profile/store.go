package profile

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/ziadkadry99/scenecoach/internal/coach"
	"github.com/ziadkadry99/scenecoach/internal/db"
)

// Store provides persistence for writer profiles.
type Store struct {
	db *db.DB
}

// NewStore creates a Store backed by the given database.
func NewStore(database *db.DB) *Store {
	return &Store{db: database}
}

// GetOrCreate returns the profile for userID, creating a neutral one on
// first use.
func (s *Store) GetOrCreate(ctx context.Context, userID string) (*Profile, error) {
	if userID == "" {
		return nil, fmt.Errorf("user id is required")
	}

	now := time.Now().UTC()
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO writer_profiles (id, user_id, tone, focus, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(user_id) DO NOTHING`,
		uuid.New().String(), userID, string(coach.ToneNeutral), string(coach.FocusBalanced), now, now,
	)
	if err != nil {
		return nil, fmt.Errorf("creating writer profile: %w", err)
	}

	p, err := s.getByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, fmt.Errorf("writer profile for %s vanished after insert", userID)
	}
	return p, nil
}

// Save writes every mutable field of p.
func (s *Store) Save(ctx context.Context, p Profile) error {
	if p.UpdatedAt.IsZero() {
		p.UpdatedAt = time.Now().UTC()
	}
	res, err := s.db.ExecContext(ctx, `
		UPDATE writer_profiles
		SET tone = ?, focus = ?, avoid_theme = ?, avoid_symbolism = ?, notes = ?, updated_at = ?
		WHERE id = ?`,
		string(p.Tone), string(p.Focus), p.AvoidTheme, p.AvoidSymbolism, p.Notes, p.UpdatedAt, p.ID,
	)
	if err != nil {
		return fmt.Errorf("updating writer profile: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("writer profile %s not found", p.ID)
	}
	return nil
}

func (s *Store) getByUser(ctx context.Context, userID string) (*Profile, error) {
	var p Profile
	var tone, focus string
	err := s.db.QueryRowContext(ctx, `
		SELECT id, user_id, tone, focus, avoid_theme, avoid_symbolism, notes, updated_at
		FROM writer_profiles WHERE user_id = ?`, userID,
	).Scan(&p.ID, &p.UserID, &tone, &focus, &p.AvoidTheme, &p.AvoidSymbolism, &p.Notes, &p.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("querying writer profile: %w", err)
	}
	p.Tone = coach.Tone(tone)
	p.Focus = coach.Focus(focus)
	return &p, nil
}
