package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/maxlayn1/DevOps-App-Database/internal/database/common"
)

// Tx groups every batch of a seeding run so it commits or rolls back as one.
// While a Tx is open the Store's single connection is busy; do not call Store
// query methods until it is finished.
type Tx struct {
	tx    *sql.Tx
	store *Store
	done  bool
}

func (s *Store) Begin(ctx context.Context) (*Tx, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	return &Tx{tx: tx, store: s}, nil
}

// BulkInsert writes rows into table as multi-row INSERT statements. Each row
// must have one value per column. It returns the number of rows written.
func (t *Tx) BulkInsert(ctx context.Context, table string, columns []string, rows [][]any) (int64, error) {
	if len(rows) == 0 {
		return 0, nil
	}

	quotedTable, err := t.store.QuoteIdent(table)
	if err != nil {
		return 0, err
	}
	quotedCols := make([]string, len(columns))
	for i, col := range columns {
		if quotedCols[i], err = t.store.QuoteIdent(col); err != nil {
			return 0, err
		}
	}

	chunk := common.ChunkSize(t.store.batchSize, len(columns), t.store.dialect.MaxParams())

	var written int64
	for start := 0; start < len(rows); start += chunk {
		end := min(start+chunk, len(rows))

		insert := t.store.qb.Insert(quotedTable).Columns(quotedCols...)
		for i, row := range rows[start:end] {
			if len(row) != len(columns) {
				return written, fmt.Errorf("row %d of %s has %d values, want %d", start+i, table, len(row), len(columns))
			}
			insert = insert.Values(row...)
		}

		query, args, err := insert.ToSql()
		if err != nil {
			return written, fmt.Errorf("failed to build insert for %s: %w", table, err)
		}

		if _, err := t.tx.ExecContext(ctx, query, args...); err != nil {
			return written, fmt.Errorf("failed to insert rows %d-%d into %s: %w", start+1, end, table, err)
		}
		written += int64(end - start)
	}

	return written, nil
}

func (t *Tx) Commit() error {
	if t.done {
		return sql.ErrTxDone
	}
	t.done = true
	return t.tx.Commit()
}

// Rollback is a no-op after Commit, so callers can defer it unconditionally.
func (t *Tx) Rollback() error {
	if t.done {
		return nil
	}
	t.done = true
	return t.tx.Rollback()
}
