// Package store persists transactions into Postgres and resolves
// reference ids (category, person, account type) through a per-run
// cache with get-or-create semantics.
package store

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Querier is the slice of pgxpool.Pool the store uses. Tests stub it.
type Querier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// Store wraps the connection pool together with the per-run reference
// caches. The caches guarantee at most one insert per distinct name per
// run; they are rebuilt for every run and never persisted.
type Store struct {
	db     Querier
	schema string

	categories   map[string]int64
	persons      map[string]int64
	accountTypes map[string]int64
}

// New creates a store over a live pool.
func New(pool *pgxpool.Pool, schema string) *Store {
	return NewWithQuerier(pool, schema)
}

// NewWithQuerier creates a store over any Querier. Used by tests.
func NewWithQuerier(q Querier, schema string) *Store {
	return &Store{
		db:           q,
		schema:       schema,
		categories:   make(map[string]int64),
		persons:      make(map[string]int64),
		accountTypes: make(map[string]int64),
	}
}

// ListCategories returns every category name, in id order. This is the
// closed list the generative tier is constrained to.
func (s *Store) ListCategories(ctx context.Context) ([]string, error) {
	rows, err := s.db.Query(ctx, fmt.Sprintf(
		`SELECT category_name FROM %s.spending_categories ORDER BY id`, s.schema,
	))
	if err != nil {
		return nil, fmt.Errorf("ListCategories: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("ListCategories: scan: %w", err)
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

// CategoryID resolves a category name to its id, inserting the row on
// first use. Unrecognized but confirmed categories are auto-created;
// they are never deleted by the pipeline.
func (s *Store) CategoryID(ctx context.Context, name string) (int64, error) {
	return s.getOrCreate(ctx, s.categories, name,
		fmt.Sprintf(`SELECT id FROM %s.spending_categories WHERE lower(category_name) = lower($1)`, s.schema),
		fmt.Sprintf(`INSERT INTO %s.spending_categories (category_name) VALUES ($1)
			ON CONFLICT (category_name) DO UPDATE SET category_name = EXCLUDED.category_name
			RETURNING id`, s.schema),
	)
}

// AccountTypeID resolves a card label to its id, inserting on first
// use.
func (s *Store) AccountTypeID(ctx context.Context, name string) (int64, error) {
	return s.getOrCreate(ctx, s.accountTypes, name,
		fmt.Sprintf(`SELECT id FROM %s.account_type WHERE lower(card_type) = lower($1)`, s.schema),
		fmt.Sprintf(`INSERT INTO %s.account_type (card_type) VALUES ($1)
			ON CONFLICT (card_type) DO UPDATE SET card_type = EXCLUDED.card_type
			RETURNING id`, s.schema),
	)
}

// PersonID resolves an account owner to their id. Persons are an
// operator-seeded set: a miss is an UnknownPersonError, never an
// insert.
func (s *Store) PersonID(ctx context.Context, name string) (int64, error) {
	key := strings.ToLower(name)
	if id, ok := s.persons[key]; ok {
		return id, nil
	}

	var id int64
	err := s.db.QueryRow(ctx,
		fmt.Sprintf(`SELECT id FROM %s.persons WHERE lower(name) = lower($1)`, s.schema),
		name,
	).Scan(&id)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, &UnknownPersonError{Name: name}
	}
	if err != nil {
		return 0, fmt.Errorf("PersonID %q: %w", name, err)
	}

	s.persons[key] = id
	return id, nil
}

// getOrCreate is the cache -> select -> upsert path shared by the
// auto-creating reference kinds. The upsert makes the check-then-act
// race-free at the database level.
func (s *Store) getOrCreate(ctx context.Context, cache map[string]int64, name, selectSQL, insertSQL string) (int64, error) {
	key := strings.ToLower(name)
	if id, ok := cache[key]; ok {
		return id, nil
	}

	var id int64
	err := s.db.QueryRow(ctx, selectSQL, name).Scan(&id)
	if errors.Is(err, pgx.ErrNoRows) {
		err = s.db.QueryRow(ctx, insertSQL, name).Scan(&id)
	}
	if err != nil {
		return 0, fmt.Errorf("resolving reference %q: %w", name, err)
	}

	cache[key] = id
	return id, nil
}
