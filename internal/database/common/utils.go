package common

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

var ErrInvalidIdentifier = errors.New("invalid SQL identifier")

var (
	commentRegex    = regexp.MustCompile(`(?m)^\s*--.*$`)
	stringRegex     = regexp.MustCompile(`'(?:[^']|'')*'|"(?:[^"]|"")*"|` + "`(?:[^`]|``)*`")
	identifierRegex = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*$`)
)

// ValidateIdentifier rejects table and column names that would need
// escaping beyond plain quoting.
func ValidateIdentifier(name string) error {
	if !identifierRegex.MatchString(name) {
		return fmt.Errorf("%w: %q", ErrInvalidIdentifier, name)
	}
	return nil
}

// ChunkSize returns how many rows of the given width fit into one INSERT
// without exceeding the driver's bound parameter limit.
func ChunkSize(batchSize, columns, maxParams int) int {
	if columns <= 0 {
		return batchSize
	}
	limit := maxParams / columns
	if limit < 1 {
		limit = 1
	}
	if batchSize <= 0 || batchSize > limit {
		return limit
	}
	return batchSize
}

// ParseSQLStatements splits a script on semicolons that are not inside
// string literals or quoted identifiers, dropping line comments.
func ParseSQLStatements(sql string) []string {
	sql = commentRegex.ReplaceAllString(sql, "")

	stringPositions := make(map[int]bool)
	for _, match := range stringRegex.FindAllStringIndex(sql, -1) {
		for i := match[0]; i < match[1]; i++ {
			stringPositions[i] = true
		}
	}

	estimatedStmts := strings.Count(sql, ";") + 1
	statements := make([]string, 0, estimatedStmts)

	var currentStatement strings.Builder
	currentStatement.Grow(len(sql) / estimatedStmts)

	for i, char := range sql {
		if char == ';' && !stringPositions[i] {
			if stmt := strings.TrimSpace(currentStatement.String()); stmt != "" {
				statements = append(statements, stmt)
			}
			currentStatement.Reset()
		} else {
			currentStatement.WriteRune(char)
		}
	}

	if stmt := strings.TrimSpace(currentStatement.String()); stmt != "" {
		statements = append(statements, stmt)
	}

	return statements
}
