package store

import (
	"context"
	"testing"
	"time"
)

func TestReadDecodesDateColumns(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	if _, err := s.Insert(ctx, `INSERT INTO players (name, position, birth_date) VALUES (?, ?, ?)`, "Bam Adebayo", "C", "1997-07-18"); err != nil {
		t.Fatalf("insert: %v", err)
	}

	rec, found, err := s.ReadOne(ctx, `SELECT name, birth_date FROM players WHERE name = ?`, "Bam Adebayo")
	if err != nil || !found {
		t.Fatalf("read one: found=%v err=%v", found, err)
	}
	birth, ok := rec.Time("birth_date")
	if !ok {
		t.Fatalf("expected birth_date to decode to time.Time, got %T", rec.Get("birth_date"))
	}
	if birth.Format("2006-01-02") != "1997-07-18" {
		t.Fatalf("birth_date = %v", birth)
	}
	name, ok := rec.String("name")
	if !ok || name != "Bam Adebayo" {
		t.Fatalf("name = %v", rec.Get("name"))
	}
}

func TestReadKeepsNonDateText(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	const odd = "sometime in the nineties"
	if _, err := s.Insert(ctx, `INSERT INTO players (name, position, birth_date) VALUES (?, ?, ?)`, "2025-01-15", "G", odd); err != nil {
		t.Fatalf("insert: %v", err)
	}

	rec, found, err := s.ReadOne(ctx, `SELECT name, birth_date FROM players`)
	if err != nil || !found {
		t.Fatalf("read one: found=%v err=%v", found, err)
	}
	if got, ok := rec.String("birth_date"); !ok || got != odd {
		t.Fatalf("birth_date = %#v", rec.Get("birth_date"))
	}
	// A date-looking value in a TEXT column is left alone.
	if got, ok := rec.String("name"); !ok || got != "2025-01-15" {
		t.Fatalf("name = %#v", rec.Get("name"))
	}
}

func TestReadDeduplicatesColumns(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	teamID := mustCreateTeam(t, s, "Celtics")
	if _, err := s.Insert(ctx, `INSERT INTO players (name, position, current_team_id) VALUES (?, ?, ?)`, "Jaylen Brown", "SG", teamID); err != nil {
		t.Fatalf("insert: %v", err)
	}

	recs, err := s.Read(ctx, `SELECT p.name, p.position, t.name FROM players p JOIN teams t ON p.current_team_id = t.id`)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if len(recs) != 1 {
		t.Fatalf("expected 1 row, got %d", len(recs))
	}
	rec := recs[0]
	if len(rec.Columns) != 2 || rec.Columns[0] != "name" || rec.Columns[1] != "position" {
		t.Fatalf("columns = %v", rec.Columns)
	}
	if got, _ := rec.String("name"); got != "Celtics" {
		t.Fatalf("expected later duplicate to win, got %q", got)
	}
}

func TestReadOneAbsent(t *testing.T) {
	s := newTestStore(t)
	rec, found, err := s.ReadOne(context.Background(), `SELECT * FROM teams WHERE id = ?`, 1)
	if err != nil {
		t.Fatalf("read one: %v", err)
	}
	if found || rec.Values != nil {
		t.Fatalf("expected absent record, got %+v", rec)
	}
}

func TestExecReturnsAffectedRows(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	mustCreateTeam(t, s, "Lakers")
	mustCreateTeam(t, s, "Clippers")

	n, err := s.Exec(ctx, `UPDATE teams SET city = ? WHERE city LIKE ?`, "Los Angeles", "City %")
	if err != nil {
		t.Fatalf("exec: %v", err)
	}
	if n != 2 {
		t.Fatalf("expected 2 affected rows, got %d", n)
	}
}

func TestWithTxRollsBackOnError(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	err := s.WithTx(ctx, func(ctx context.Context, tx *Tx) error {
		if _, err := tx.Insert(ctx, `INSERT INTO todos (text) VALUES (?)`, "lost"); err != nil {
			return err
		}
		_, err := tx.Insert(ctx, `INSERT INTO todos (text) VALUES (?)`, nil)
		return err
	})
	if err == nil {
		t.Fatal("expected NOT NULL violation")
	}

	todos, err := s.ListTodos(ctx)
	if err != nil {
		t.Fatalf("list todos: %v", err)
	}
	if len(todos) != 0 {
		t.Fatalf("expected rollback, found %+v", todos)
	}
}

func TestDecodeValue(t *testing.T) {
	if v := decodeValue("DATE", []byte("2025-01-15")); v.(time.Time).Day() != 15 {
		t.Fatalf("decodeValue bytes = %#v", v)
	}
	if v := decodeValue("date", "not a date"); v != "not a date" {
		t.Fatalf("decodeValue fallback = %#v", v)
	}
	if v := decodeValue("TEXT", "2025-01-15"); v != "2025-01-15" {
		t.Fatalf("decodeValue text = %#v", v)
	}
	if v := decodeValue("INTEGER", int64(7)); v != int64(7) {
		t.Fatalf("decodeValue int = %#v", v)
	}
}
