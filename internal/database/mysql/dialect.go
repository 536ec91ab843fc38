package mysql

import (
	_ "embed"
	"fmt"
	"strings"

	"github.com/Masterminds/squirrel"
	driver "github.com/go-sql-driver/mysql"
)

//go:embed schema.sql
var schemaSQL string

type Dialect struct{}

func New() *Dialect {
	return &Dialect{}
}

func (d *Dialect) Name() string { return "mysql" }

func (d *Dialect) DriverName() string { return "mysql" }

// DSN accepts either a native go-sql-driver DSN or a mysql:// URL and
// returns a native DSN with time parsing enabled.
func (d *Dialect) DSN(url string) (string, error) {
	dsn := url
	if strings.HasPrefix(url, "mysql://") {
		dsn = fromURL(strings.TrimPrefix(url, "mysql://"))
	}

	cfg, err := driver.ParseDSN(dsn)
	if err != nil {
		return "", fmt.Errorf("failed to parse MySQL DSN: %w", err)
	}
	cfg.ParseTime = true
	return cfg.FormatDSN(), nil
}

// fromURL rewrites user:pass@host:port/db?params to the driver's
// user:pass@tcp(host:port)/db?params form.
func fromURL(rest string) string {
	atIndex := strings.LastIndex(rest, "@")
	if atIndex < 0 {
		return rest
	}
	credentials := rest[:atIndex]
	remainder := rest[atIndex+1:]

	slashIndex := strings.Index(remainder, "/")
	if slashIndex < 0 {
		return fmt.Sprintf("%s@tcp(%s)/", credentials, remainder)
	}
	hostPort := remainder[:slashIndex]
	dbAndParams := remainder[slashIndex+1:]

	dbAndParams = strings.ReplaceAll(dbAndParams, "sslmode=require", "tls=skip-verify")
	dbAndParams = strings.ReplaceAll(dbAndParams, "sslmode=disable", "tls=false")

	return fmt.Sprintf("%s@tcp(%s)/%s", credentials, hostPort, dbAndParams)
}

func (d *Dialect) PlaceholderFormat() squirrel.PlaceholderFormat {
	return squirrel.Question
}

func (d *Dialect) ForeignKeyStatements() []string {
	return []string{"SET FOREIGN_KEY_CHECKS = 1"}
}

func (d *Dialect) QuoteIdentifier(name string) string {
	return "`" + strings.ReplaceAll(name, "`", "``") + "`"
}

func (d *Dialect) MaxParams() int { return 65535 }

func (d *Dialect) SchemaSQL() string { return schemaSQL }
