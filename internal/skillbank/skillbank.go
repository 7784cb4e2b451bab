// Package skillbank reads a user's curated skill list. Entries extend the
// résumé template as an allow-list for AI-personalized skills; the store is
// read-only from this side of the system.
package skillbank

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Entry is one skill-bank row.
type Entry struct {
	Skill       string `json:"skill"`
	Proficiency string `json:"proficiency"`
	Category    string `json:"category"`
}

// Store reads skill-bank entries from PostgreSQL.
type Store struct {
	pool *pgxpool.Pool
}

// Connect opens a connection pool against databaseURL.
func Connect(ctx context.Context, databaseURL string) (*Store, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	return &Store{pool: pool}, nil
}

// NewWithPool wraps an existing pool owned by the caller.
func NewWithPool(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

// ListByUser returns every skill-bank entry for a user, ordered by category
// then skill name so prompt construction is deterministic.
func (s *Store) ListByUser(ctx context.Context, userID uuid.UUID) ([]Entry, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT skill, proficiency, category
		FROM skill_bank
		WHERE user_id = $1
		ORDER BY category, skill`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query skill bank: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.Skill, &e.Proficiency, &e.Category); err != nil {
			return nil, fmt.Errorf("failed to scan skill bank row: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read skill bank rows: %w", err)
	}
	return entries, nil
}

// Close releases the underlying pool.
func (s *Store) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}
