package store

import (
	"context"
	"fmt"

	"github.com/utakatalp/nba-tracker/internal/league"
)

// ListTodos returns the to-do list in insertion order.
func (s *Store) ListTodos(ctx context.Context) ([]league.Todo, error) {
	todos, err := list(ctx, s, "ListTodos", `SELECT id, text FROM todos ORDER BY id`, nil, func(row scanner) (league.Todo, error) {
		var t league.Todo
		err := row.Scan(&t.ID, &t.Text)
		return t, err
	})
	if err != nil {
		return nil, fmt.Errorf("listing todos: %w", err)
	}
	return todos, nil
}

// AddTodo appends an entry and returns its id.
func (s *Store) AddTodo(ctx context.Context, text string) (int64, error) {
	id, err := s.Insert(ctx, `INSERT INTO todos (text) VALUES (?)`, text)
	if err != nil {
		return 0, fmt.Errorf("inserting todo: %w", err)
	}
	return id, nil
}

// DeleteTodo removes an entry and reports how many rows were deleted.
// Deleting an unknown id is not an error.
func (s *Store) DeleteTodo(ctx context.Context, id int64) (int64, error) {
	n, err := s.Exec(ctx, `DELETE FROM todos WHERE id = ?`, id)
	if err != nil {
		return 0, fmt.Errorf("deleting todo %d: %w", id, err)
	}
	return n, nil
}
