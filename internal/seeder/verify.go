package seeder

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/maxlayn1/DevOps-App-Database/internal/database"
)

// Verify checks a seeded store against targets: exact row counts, contiguous
// keys, foreign keys within [1, N] of the referenced batch, no duplicate
// relation tuples and a full step sequence for every pipeline. It reports
// every violation it finds.
func Verify(ctx context.Context, store *database.Store, targets Targets) error {
	var problems []error
	fail := func(format string, args ...any) {
		problems = append(problems, fmt.Errorf("%w: %s", ErrVerification, fmt.Sprintf(format, args...)))
	}

	for _, spec := range Catalog() {
		want := int64(targets.Of(spec.Entity))

		got, err := store.Count(ctx, spec.Table)
		if err != nil {
			return err
		}
		if got != want {
			fail("%s has %d rows, want %d", spec.Table, got, want)
		}
		if got == 0 {
			continue
		}

		if spec.Key != "" {
			lo, hi, err := columnRange(ctx, store, spec.Table, spec.Key)
			if err != nil {
				return err
			}
			if lo != 1 || hi != got {
				fail("%s.%s spans [%d, %d], want [1, %d]", spec.Table, spec.Key, lo, hi, got)
			}
		}

		for _, ref := range spec.References {
			lo, hi, err := columnRange(ctx, store, spec.Table, ref.Column)
			if err != nil {
				return err
			}
			limit := int64(targets.Of(ref.Entity))
			if lo < 1 || hi > limit {
				fail("%s.%s spans [%d, %d], outside [1, %d]", spec.Table, ref.Column, lo, hi, limit)
			}
		}

		if len(spec.Unique) > 0 {
			dups, err := duplicateGroups(ctx, store, spec.Table, spec.Unique)
			if err != nil {
				return err
			}
			if dups > 0 {
				fail("%s has %d repeated (%s) tuples", spec.Table, dups, strings.Join(spec.Unique, ", "))
			}
		}
	}

	if err := verifySteps(ctx, store, targets, fail); err != nil {
		return err
	}

	return errors.Join(problems...)
}

func columnRange(ctx context.Context, store *database.Store, table, column string) (int64, int64, error) {
	qTable, err := store.QuoteIdent(table)
	if err != nil {
		return 0, 0, err
	}
	qCol, err := store.QuoteIdent(column)
	if err != nil {
		return 0, 0, err
	}

	var lo, hi sql.NullInt64
	q := store.Builder().Select("MIN("+qCol+")", "MAX("+qCol+")").From(qTable)
	if err := store.QueryRow(ctx, q, &lo, &hi); err != nil {
		return 0, 0, fmt.Errorf("failed to read range of %s.%s: %w", table, column, err)
	}
	return lo.Int64, hi.Int64, nil
}

func duplicateGroups(ctx context.Context, store *database.Store, table string, columns []string) (int64, error) {
	qTable, err := store.QuoteIdent(table)
	if err != nil {
		return 0, err
	}
	qCols := make([]string, len(columns))
	for i, col := range columns {
		if qCols[i], err = store.QuoteIdent(col); err != nil {
			return 0, err
		}
	}

	b := store.Builder()
	groups := b.Select(qCols...).From(qTable).GroupBy(qCols...).Having("COUNT(*) > 1")

	var n int64
	if err := store.QueryRow(ctx, b.Select("COUNT(*)").FromSelect(groups, "dup"), &n); err != nil {
		return 0, fmt.Errorf("failed to check duplicates in %s: %w", table, err)
	}
	return n, nil
}

func verifySteps(ctx context.Context, store *database.Store, targets Targets, fail func(string, ...any)) error {
	spec := catalog[PipelineStep]
	qTable, err := store.QuoteIdent(spec.Table)
	if err != nil {
		return err
	}

	q := store.Builder().
		Select("pipe_id", "COUNT(*)", "COUNT(DISTINCT step_id)", "MIN(step_id)", "MAX(step_id)").
		From(qTable).
		GroupBy("pipe_id").
		OrderBy("pipe_id")

	steps := int64(targets.Steps)
	pipelines := 0
	err = store.Query(ctx, q, func(rows *sql.Rows) error {
		var pipe, total, distinct, lo, hi int64
		if err := rows.Scan(&pipe, &total, &distinct, &lo, &hi); err != nil {
			return err
		}
		pipelines++
		if total != steps || distinct != steps || lo != 1 || hi != steps {
			fail("pipeline %d has %d steps numbered [%d, %d], want %d numbered [1, %d]", pipe, total, lo, hi, steps, steps)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to read pipeline steps: %w", err)
	}

	if steps > 0 && pipelines != targets.Of(Pipeline) {
		fail("%d pipelines have steps, want %d", pipelines, targets.Of(Pipeline))
	}
	return nil
}
