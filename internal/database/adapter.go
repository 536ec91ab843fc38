package database

import (
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/maxlayn1/DevOps-App-Database/internal/config"
	"github.com/maxlayn1/DevOps-App-Database/internal/database/mysql"
	"github.com/maxlayn1/DevOps-App-Database/internal/database/postgres"
	"github.com/maxlayn1/DevOps-App-Database/internal/database/sqlite"
)

// Dialect captures what differs between the supported stores.
type Dialect interface {
	Name() string
	DriverName() string
	DSN(url string) (string, error)
	PlaceholderFormat() squirrel.PlaceholderFormat
	// ForeignKeyStatements turn on referential-integrity enforcement for
	// the session.
	ForeignKeyStatements() []string
	QuoteIdentifier(name string) string
	// MaxParams is the largest number of bind parameters one statement may carry.
	MaxParams() int
	SchemaSQL() string
}

func NewDialect(provider string) (Dialect, error) {
	switch provider {
	case "sqlite3":
		return sqlite.New("sqlite3"), nil
	case "sqlite":
		return sqlite.New("sqlite"), nil
	case "postgresql", "postgres":
		return postgres.New(), nil
	case "mysql":
		return mysql.New(), nil
	default:
		return nil, fmt.Errorf("%w: %s", config.ErrUnsupportedProvider, provider)
	}
}
