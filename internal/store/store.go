package store

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"log"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	_ "github.com/lib/pq"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	_ "modernc.org/sqlite"
)

// Supported driver names.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

//go:embed schema/*.sql
var schemaFS embed.FS

var tracer = otel.Tracer("github.com/utakatalp/nba-tracker/internal/store")

// Config selects the engine and how long a single statement may run.
type Config struct {
	Driver       string
	DSN          string
	QueryTimeout time.Duration
}

// Store wraps a database handle and provides the tracker's data access.
// Every call acquires its own connection from the pool and releases it
// before returning.
type Store struct {
	db           *sql.DB
	driver       string
	queryTimeout time.Duration
}

// querier is satisfied by *sql.Conn and *sql.Tx.
type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Open opens and pings the configured database.
func Open(cfg Config) (*Store, error) {
	dsn := strings.TrimSpace(cfg.DSN)
	if dsn == "" {
		return nil, fmt.Errorf("database dsn is required")
	}

	switch cfg.Driver {
	case DriverSQLite:
		dsn = sqliteDSN(dsn)
	case DriverPostgres:
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}

	db, err := sql.Open(cfg.Driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	// verify early
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}
	log.Printf("store: connected to %s database", cfg.Driver)
	return &Store{db: db, driver: cfg.Driver, queryTimeout: cfg.QueryTimeout}, nil
}

// NewStore opens a store with no per-statement timeout.
func NewStore(driver, dsn string) (*Store, error) {
	return Open(Config{Driver: driver, DSN: dsn})
}

func sqliteDSN(path string) string {
	if strings.Contains(path, "?") {
		return path
	}
	return filepath.Clean(path) + "?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"
}

// Close releases the connection pool.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Driver reports the engine in use.
func (s *Store) Driver() string {
	return s.driver
}

// Migrate creates the tracker tables if they do not exist.
func (s *Store) Migrate(ctx context.Context) error {
	content, err := schemaFS.ReadFile("schema/" + s.driver + ".sql")
	if err != nil {
		return fmt.Errorf("reading schema: %w", err)
	}
	stmts := splitStatements(string(content))
	return s.withConn(ctx, "Migrate", "", func(ctx context.Context, q querier) error {
		for _, stmt := range stmts {
			if _, err := q.ExecContext(ctx, stmt); err != nil {
				return fmt.Errorf("migrating: %w", err)
			}
		}
		return nil
	})
}

func splitStatements(content string) []string {
	var out []string
	for _, stmt := range strings.Split(content, ";") {
		var lines []string
		for _, line := range strings.Split(stmt, "\n") {
			if strings.HasPrefix(strings.TrimSpace(line), "--") {
				continue
			}
			lines = append(lines, line)
		}
		if q := strings.TrimSpace(strings.Join(lines, "\n")); q != "" {
			out = append(out, q)
		}
	}
	return out
}

// rebind rewrites ? placeholders to $n for Postgres. Queries in this package
// never contain a literal question mark.
func (s *Store) rebind(query string) string {
	if s.driver != DriverPostgres || !strings.Contains(query, "?") {
		return query
	}
	var b strings.Builder
	b.Grow(len(query) + 8)
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

func (s *Store) startSpan(ctx context.Context, op, query string) (context.Context, trace.Span) {
	return tracer.Start(ctx, "store."+op, trace.WithAttributes(
		attribute.String("db.system", s.driver),
		attribute.String("db.statement", query),
	))
}

func endSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}

// withConn acquires a dedicated connection for fn and releases it on every
// exit path.
func (s *Store) withConn(ctx context.Context, op, query string, fn func(ctx context.Context, q querier) error) (err error) {
	ctx, span := s.startSpan(ctx, op, query)
	defer func() { endSpan(span, err) }()

	if s.queryTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.queryTimeout)
		defer cancel()
	}

	conn, err := s.db.Conn(ctx)
	if err != nil {
		return fmt.Errorf("acquiring connection: %w", err)
	}
	defer conn.Close()

	return fn(ctx, conn)
}

// Tx runs statements inside one transaction. It exposes the same helpers as
// Store so multi-statement operations commit or roll back together.
type Tx struct {
	s  *Store
	tx *sql.Tx
}

// WithTx begins a transaction, runs fn, and commits when fn returns nil.
func (s *Store) WithTx(ctx context.Context, fn func(ctx context.Context, tx *Tx) error) (err error) {
	ctx, span := s.startSpan(ctx, "WithTx", "")
	defer func() { endSpan(span, err) }()

	sqlTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer sqlTx.Rollback()

	if err := fn(ctx, &Tx{s: s, tx: sqlTx}); err != nil {
		return err
	}

	if err := sqlTx.Commit(); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}
