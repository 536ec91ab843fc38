package common_test

import (
	"testing"

	qt "github.com/frankban/quicktest"

	"github.com/maxlayn1/DevOps-App-Database/internal/database/common"
)

func TestValidateIdentifier(t *testing.T) {
	c := qt.New(t)

	for _, name := range []string{"User", "Pipeline_Step", "_x", "env_id2"} {
		c.Assert(common.ValidateIdentifier(name), qt.IsNil, qt.Commentf("name %q", name))
	}
	for _, name := range []string{"", "1abc", "user; DROP TABLE x", `"User"`, "a-b"} {
		c.Assert(common.ValidateIdentifier(name), qt.ErrorIs, common.ErrInvalidIdentifier, qt.Commentf("name %q", name))
	}
}

func TestChunkSize(t *testing.T) {
	tests := []struct {
		name      string
		batchSize int
		columns   int
		maxParams int
		want      int
	}{
		{name: "batch fits", batchSize: 100, columns: 3, maxParams: 999, want: 100},
		{name: "clamped by params", batchSize: 500, columns: 6, maxParams: 999, want: 166},
		{name: "zero batch uses limit", batchSize: 0, columns: 3, maxParams: 999, want: 333},
		{name: "wide rows still insert one", batchSize: 10, columns: 2000, maxParams: 999, want: 1},
		{name: "no columns", batchSize: 10, columns: 0, maxParams: 999, want: 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := qt.New(t)
			c.Assert(common.ChunkSize(tt.batchSize, tt.columns, tt.maxParams), qt.Equals, tt.want)
		})
	}
}

func TestParseSQLStatements(t *testing.T) {
	c := qt.New(t)

	script := `
-- tool categories
CREATE TABLE a (id INTEGER, note TEXT DEFAULT 'x;y');
CREATE TABLE "b;c" (id INTEGER);

INSERT INTO a (id) VALUES (1)
`
	stmts := common.ParseSQLStatements(script)
	c.Assert(stmts, qt.DeepEquals, []string{
		"CREATE TABLE a (id INTEGER, note TEXT DEFAULT 'x;y')",
		`CREATE TABLE "b;c" (id INTEGER)`,
		"INSERT INTO a (id) VALUES (1)",
	})
}
