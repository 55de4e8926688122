package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/utakatalp/nba-tracker/internal/league"
)

// Record is one result row keyed by column name. Columns keeps the
// declaration order with repeated names listed once; when a name repeats,
// the later value wins.
type Record struct {
	Columns []string
	Values  map[string]any
}

// Get returns the value of col, or nil when the column is absent or NULL.
func (r Record) Get(col string) any {
	return r.Values[col]
}

// Has reports whether the row has the column.
func (r Record) Has(col string) bool {
	_, ok := r.Values[col]
	return ok
}

// String returns col as text.
func (r Record) String(col string) (string, bool) {
	s, ok := r.Values[col].(string)
	return s, ok
}

// Time returns col as a decoded date value.
func (r Record) Time(col string) (time.Time, bool) {
	t, ok := r.Values[col].(time.Time)
	return t, ok
}

// Int64 returns col as an integer.
func (r Record) Int64(col string) (int64, bool) {
	switch v := r.Values[col].(type) {
	case int64:
		return v, true
	case int:
		return int64(v), true
	case int32:
		return int64(v), true
	default:
		return 0, false
	}
}

// Float64 returns col as a float.
func (r Record) Float64(col string) (float64, bool) {
	switch v := r.Values[col].(type) {
	case float64:
		return v, true
	case int64:
		return float64(v), true
	default:
		return 0, false
	}
}

// dateTypes are declared column types whose text is decoded to time.Time.
var dateTypes = map[string]bool{
	"DATE":        true,
	"DATETIME":    true,
	"TIMESTAMP":   true,
	"TIMESTAMPTZ": true,
}

// decodeValue normalizes a driver value. Text in a date-typed column becomes
// time.Time when it parses; otherwise the original text is kept.
func decodeValue(declType string, v any) any {
	if b, ok := v.([]byte); ok {
		v = string(b)
	}
	s, ok := v.(string)
	if !ok || !dateTypes[strings.ToUpper(declType)] {
		return v
	}
	t, err := league.ParseISO(s)
	if err != nil {
		return s
	}
	return t
}

func scanRecords(rows *sql.Rows) ([]Record, error) {
	cols, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("reading columns: %w", err)
	}
	colTypes, err := rows.ColumnTypes()
	if err != nil {
		return nil, fmt.Errorf("reading column types: %w", err)
	}

	ordered := make([]string, 0, len(cols))
	seen := make(map[string]bool, len(cols))
	for _, c := range cols {
		if !seen[c] {
			seen[c] = true
			ordered = append(ordered, c)
		}
	}

	var out []Record
	for rows.Next() {
		raw := make([]any, len(cols))
		ptrs := make([]any, len(cols))
		for i := range raw {
			ptrs[i] = &raw[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, fmt.Errorf("scanning row: %w", err)
		}
		rec := Record{Columns: ordered, Values: make(map[string]any, len(ordered))}
		for i, c := range cols {
			rec.Values[c] = decodeValue(colTypes[i].DatabaseTypeName(), raw[i])
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating rows: %w", err)
	}
	return out, nil
}

func readRecords(ctx context.Context, q querier, query string, args []any) ([]Record, error) {
	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying: %w", err)
	}
	defer rows.Close()
	return scanRecords(rows)
}

func insertReturningID(ctx context.Context, q querier, query string, args []any) (int64, error) {
	query = strings.TrimRight(strings.TrimSpace(query), ";") + " RETURNING id"
	var id int64
	if err := q.QueryRowContext(ctx, query, args...).Scan(&id); err != nil {
		return 0, fmt.Errorf("inserting: %w", err)
	}
	return id, nil
}

func execAffected(ctx context.Context, q querier, query string, args []any) (int64, error) {
	res, err := q.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("executing: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("reading affected rows: %w", err)
	}
	return n, nil
}

// Read runs a SELECT and returns every row.
func (s *Store) Read(ctx context.Context, query string, args ...any) ([]Record, error) {
	query = s.rebind(query)
	var out []Record
	err := s.withConn(ctx, "Read", query, func(ctx context.Context, q querier) error {
		var err error
		out, err = readRecords(ctx, q, query, args)
		return err
	})
	return out, err
}

// ReadOne runs a SELECT and returns its first row. The bool is false when
// the query matched nothing.
func (s *Store) ReadOne(ctx context.Context, query string, args ...any) (Record, bool, error) {
	recs, err := s.Read(ctx, query, args...)
	if err != nil || len(recs) == 0 {
		return Record{}, false, err
	}
	return recs[0], true, nil
}

// Insert runs an INSERT and returns the id of the new row. The statement
// must target a table with an integer id primary key.
func (s *Store) Insert(ctx context.Context, query string, args ...any) (int64, error) {
	query = s.rebind(query)
	var id int64
	err := s.withConn(ctx, "Insert", query, func(ctx context.Context, q querier) error {
		var err error
		id, err = insertReturningID(ctx, q, query, args)
		return err
	})
	return id, err
}

// Exec runs an UPDATE, DELETE or DDL statement and returns the affected row
// count.
func (s *Store) Exec(ctx context.Context, query string, args ...any) (int64, error) {
	query = s.rebind(query)
	var n int64
	err := s.withConn(ctx, "Exec", query, func(ctx context.Context, q querier) error {
		var err error
		n, err = execAffected(ctx, q, query, args)
		return err
	})
	return n, err
}

// Read runs a SELECT inside the transaction.
func (t *Tx) Read(ctx context.Context, query string, args ...any) ([]Record, error) {
	return readRecords(ctx, t.tx, t.s.rebind(query), args)
}

// Insert runs an INSERT inside the transaction and returns the new id.
func (t *Tx) Insert(ctx context.Context, query string, args ...any) (int64, error) {
	return insertReturningID(ctx, t.tx, t.s.rebind(query), args)
}

// Exec runs a statement inside the transaction and returns the affected row
// count.
func (t *Tx) Exec(ctx context.Context, query string, args ...any) (int64, error) {
	return execAffected(ctx, t.tx, t.s.rebind(query), args)
}
