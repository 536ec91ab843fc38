package postgres

import (
	_ "embed"

	"github.com/Masterminds/squirrel"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/lib/pq"
)

//go:embed schema.sql
var schemaSQL string

// Dialect talks to PostgreSQL through pgx's database/sql driver.
type Dialect struct{}

func New() *Dialect {
	return &Dialect{}
}

func (d *Dialect) Name() string { return "postgres" }

func (d *Dialect) DriverName() string { return "pgx" }

func (d *Dialect) DSN(url string) (string, error) { return url, nil }

func (d *Dialect) PlaceholderFormat() squirrel.PlaceholderFormat {
	return squirrel.Dollar
}

// ForeignKeyStatements is empty: PostgreSQL always enforces foreign keys.
func (d *Dialect) ForeignKeyStatements() []string { return nil }

func (d *Dialect) QuoteIdentifier(name string) string {
	return pq.QuoteIdentifier(name)
}

// MaxParams is the wire protocol's limit on bind parameters per statement.
func (d *Dialect) MaxParams() int { return 65535 }

func (d *Dialect) SchemaSQL() string { return schemaSQL }
