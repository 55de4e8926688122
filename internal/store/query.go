package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

type scanner interface {
	Scan(dest ...any) error
}

func queryAll[T any](ctx context.Context, q querier, query string, args []any, scan func(scanner) (T, error)) ([]T, error) {
	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying: %w", err)
	}
	defer rows.Close()

	var out []T
	for rows.Next() {
		v, err := scan(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning row: %w", err)
		}
		out = append(out, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating rows: %w", err)
	}
	return out, nil
}

func queryOne[T any](ctx context.Context, q querier, query string, args []any, scan func(scanner) (T, error)) (T, bool, error) {
	v, err := scan(q.QueryRowContext(ctx, query, args...))
	if err != nil {
		var zero T
		if errors.Is(err, sql.ErrNoRows) {
			return zero, false, nil
		}
		return zero, false, fmt.Errorf("scanning row: %w", err)
	}
	return v, true, nil
}

// list runs a typed SELECT on its own connection.
func list[T any](ctx context.Context, s *Store, op, query string, args []any, scan func(scanner) (T, error)) ([]T, error) {
	query = s.rebind(query)
	var out []T
	err := s.withConn(ctx, op, query, func(ctx context.Context, q querier) error {
		var err error
		out, err = queryAll(ctx, q, query, args, scan)
		return err
	})
	return out, err
}

// get runs a typed single-row SELECT on its own connection.
func get[T any](ctx context.Context, s *Store, op, query string, args []any, scan func(scanner) (T, error)) (T, bool, error) {
	query = s.rebind(query)
	var (
		out   T
		found bool
	)
	err := s.withConn(ctx, op, query, func(ctx context.Context, q querier) error {
		var err error
		out, found, err = queryOne(ctx, q, query, args, scan)
		return err
	})
	return out, found, err
}

// count runs a SELECT COUNT(*) style query.
func (s *Store) count(ctx context.Context, op, query string, args ...any) (int, error) {
	n, _, err := get(ctx, s, op, query, args, func(row scanner) (int, error) {
		var n int
		err := row.Scan(&n)
		return n, err
	})
	return n, err
}
