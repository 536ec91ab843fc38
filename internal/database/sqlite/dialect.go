package sqlite

import (
	_ "embed"
	"strings"

	"github.com/Masterminds/squirrel"
	_ "github.com/mattn/go-sqlite3"
	_ "modernc.org/sqlite"
)

//go:embed schema.sql
var schemaSQL string

// maxParams matches the SQLITE_MAX_VARIABLE_NUMBER default of older builds.
const maxParams = 999

// Dialect serves both SQLite drivers: "sqlite3" (mattn, cgo) and "sqlite"
// (modernc, pure Go).
type Dialect struct {
	driver string
}

func New(driver string) *Dialect {
	return &Dialect{driver: driver}
}

func (d *Dialect) Name() string { return "sqlite" }

func (d *Dialect) DriverName() string { return d.driver }

// DSN strips an optional sqlite:// scheme and asks the driver to enable
// foreign keys on every connection it opens.
func (d *Dialect) DSN(url string) (string, error) {
	dsn := strings.TrimPrefix(url, "sqlite://")
	dsn = strings.TrimPrefix(dsn, "sqlite3://")

	param := "_foreign_keys=1"
	if d.driver == "sqlite" {
		param = "_pragma=foreign_keys(1)"
	}
	if strings.Contains(dsn, "?") {
		return dsn + "&" + param, nil
	}
	return dsn + "?" + param, nil
}

func (d *Dialect) PlaceholderFormat() squirrel.PlaceholderFormat {
	return squirrel.Question
}

func (d *Dialect) ForeignKeyStatements() []string {
	return []string{"PRAGMA foreign_keys = ON"}
}

func (d *Dialect) QuoteIdentifier(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}

func (d *Dialect) MaxParams() int { return maxParams }

func (d *Dialect) SchemaSQL() string { return schemaSQL }
