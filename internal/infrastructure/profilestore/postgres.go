// Package profilestore implements the profile document store over
// PostgreSQL. Profiles are free-form jsonb documents keyed by the
// identity provider's subject id; writes merge rather than replace.
package profilestore

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"session-hub/internal/domain"

	"github.com/lib/pq"
)

// PostgresProfileStore implements domain.ProfileStore.
type PostgresProfileStore struct {
	db *sql.DB
}

// NewPostgresProfileStore creates a store over an open connection pool.
func NewPostgresProfileStore(db *sql.DB) *PostgresProfileStore {
	return &PostgresProfileStore{db: db}
}

// UpsertMerge merges fields into the document. The jsonb || operator
// keeps fields the write does not mention. updated_at is set on every
// write; created_at only when the row is first inserted.
func (s *PostgresProfileStore) UpsertMerge(ctx context.Context, id string, fields map[string]any) error {
	doc, err := json.Marshal(fields)
	if err != nil {
		return fmt.Errorf("failed to encode profile fields: %w", err)
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO profiles (id, doc, created_at, updated_at)
		 VALUES ($1, $2, now(), now())
		 ON CONFLICT (id) DO UPDATE
		 SET doc = profiles.doc || EXCLUDED.doc, updated_at = now()`,
		id, doc,
	)
	if err != nil {
		return translateStoreError(err)
	}
	return nil
}

// GetByID returns the stored profile, or (nil, nil) when absent. The
// subject id and row timestamps override whatever the document carries.
func (s *PostgresProfileStore) GetByID(ctx context.Context, id string) (*domain.User, error) {
	var (
		doc       []byte
		createdAt time.Time
		updatedAt time.Time
	)
	err := s.db.QueryRowContext(ctx,
		`SELECT doc, created_at, updated_at FROM profiles WHERE id = $1`,
		id,
	).Scan(&doc, &createdAt, &updatedAt)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, translateStoreError(err)
	}

	var user domain.User
	if err := json.Unmarshal(doc, &user); err != nil {
		return nil, fmt.Errorf("failed to decode profile %s: %w", id, err)
	}
	user.ID = id
	user.CreatedAt = &createdAt
	user.UpdatedAt = &updatedAt
	return &user, nil
}

// translateStoreError folds driver errors into the taxonomy: rejected
// writes become ErrPermissionDenied, connectivity problems become
// ErrNetworkFailure.
func translateStoreError(err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		if pqErr.Code.Name() == "insufficient_privilege" {
			return fmt.Errorf("%w: %s", domain.ErrPermissionDenied, pqErr.Message)
		}
		if pqErr.Code.Class() == "08" { // connection exception
			return fmt.Errorf("%w: %s", domain.ErrNetworkFailure, pqErr.Message)
		}
		return fmt.Errorf("profile store error: %w", err)
	}
	return fmt.Errorf("%w: %v", domain.ErrNetworkFailure, err)
}

// compile-time interface check
var _ domain.ProfileStore = (*PostgresProfileStore)(nil)
