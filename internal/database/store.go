package database

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/Masterminds/squirrel"

	"github.com/maxlayn1/DevOps-App-Database/internal/database/common"
)

// Store is the single connection a seeding run holds for its lifetime.
type Store struct {
	db        *sql.DB
	dialect   Dialect
	qb        squirrel.StatementBuilderType
	batchSize int
}

type Option func(*Store)

// WithBatchSize sets the preferred number of rows per INSERT statement. The
// dialect's parameter limit still caps it.
func WithBatchSize(n int) Option {
	return func(s *Store) {
		s.batchSize = n
	}
}

// Open connects to the store, pins the pool to one connection and enables
// foreign key enforcement on it.
func Open(ctx context.Context, provider, url string, opts ...Option) (*Store, error) {
	dialect, err := NewDialect(provider)
	if err != nil {
		return nil, err
	}

	dsn, err := dialect.DSN(url)
	if err != nil {
		return nil, err
	}

	db, err := sql.Open(dialect.DriverName(), dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s connection: %w", dialect.Name(), err)
	}

	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	for _, stmt := range dialect.ForeignKeyStatements() {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("exec %q: %w", stmt, err)
		}
	}

	s := &Store{
		db:      db,
		dialect: dialect,
		qb:      squirrel.StatementBuilder.PlaceholderFormat(dialect.PlaceholderFormat()),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func (s *Store) Dialect() Dialect {
	return s.dialect
}

func (s *Store) DB() *sql.DB {
	return s.db
}

// Builder returns a squirrel builder using the dialect's placeholders.
func (s *Store) Builder() squirrel.StatementBuilderType {
	return s.qb
}

// QuoteIdent validates and quotes a table or column name for this dialect.
func (s *Store) QuoteIdent(name string) (string, error) {
	if err := common.ValidateIdentifier(name); err != nil {
		return "", err
	}
	return s.dialect.QuoteIdentifier(name), nil
}

// ApplySchema creates the DevOps tables if they do not exist yet.
func (s *Store) ApplySchema(ctx context.Context) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	for _, stmt := range common.ParseSQLStatements(s.dialect.SchemaSQL()) {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to execute statement '%s': %w", firstLine(stmt), err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit schema transaction: %w", err)
	}
	return nil
}

// QueryRow runs a single-row query built with Builder and scans it into dest.
func (s *Store) QueryRow(ctx context.Context, q squirrel.Sqlizer, dest ...any) error {
	query, args, err := q.ToSql()
	if err != nil {
		return err
	}
	return s.db.QueryRowContext(ctx, query, args...).Scan(dest...)
}

// Query runs q and calls scan once per result row.
func (s *Store) Query(ctx context.Context, q squirrel.Sqlizer, scan func(*sql.Rows) error) error {
	query, args, err := q.ToSql()
	if err != nil {
		return err
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		if err := scan(rows); err != nil {
			return err
		}
	}
	return rows.Err()
}

// Count returns the number of rows in table.
func (s *Store) Count(ctx context.Context, table string) (int64, error) {
	quoted, err := s.QuoteIdent(table)
	if err != nil {
		return 0, err
	}

	var n int64
	if err := s.QueryRow(ctx, s.qb.Select("COUNT(*)").From(quoted), &n); err != nil {
		return 0, fmt.Errorf("failed to count %s: %w", table, err)
	}
	return n, nil
}

func firstLine(stmt string) string {
	if idx := strings.IndexByte(stmt, '\n'); idx > 0 {
		return stmt[:idx]
	}
	return stmt
}
