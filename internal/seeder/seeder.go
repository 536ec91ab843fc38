package seeder

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/sirupsen/logrus"

	"github.com/maxlayn1/DevOps-App-Database/internal/config"
	"github.com/maxlayn1/DevOps-App-Database/internal/database"
)

const (
	startMessage = "beginning database seeding"
	doneMessage  = "database seeding complete"
)

// Seeder owns everything a run touches: the store connection, the random
// source and the row targets.
type Seeder struct {
	store          *database.Store
	gen            *DataGenerator
	targets        Targets
	attemptsFactor int
	order          []Entity
	log            logrus.FieldLogger
	out            io.Writer
}

type Option func(*Seeder)

func WithLogger(log logrus.FieldLogger) Option {
	return func(s *Seeder) {
		s.log = log
	}
}

// WithOutput redirects the two console progress lines.
func WithOutput(w io.Writer) Option {
	return func(s *Seeder) {
		s.out = w
	}
}

// WithGenerator replaces the generator built from cfg.RandomSeed.
func WithGenerator(g *DataGenerator) Option {
	return func(s *Seeder) {
		s.gen = g
	}
}

// New checks the insertion order against the catalog and the targets against
// each other before any row is written.
func New(store *database.Store, cfg *config.Config, opts ...Option) (*Seeder, error) {
	if err := CatalogGraph().checkOrder(DeclaredOrder); err != nil {
		return nil, err
	}

	discard := logrus.New()
	discard.SetOutput(io.Discard)

	s := &Seeder{
		store:          store,
		targets:        TargetsFromConfig(cfg),
		attemptsFactor: cfg.MaxAttemptsFactor,
		order:          DeclaredOrder,
		log:            discard,
		out:            os.Stdout,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.gen == nil {
		s.gen = NewDataGenerator(cfg.RandomSeed)
	}
	if s.attemptsFactor <= 0 {
		s.attemptsFactor = config.DefaultMaxAttemptsFactor
	}

	if err := ValidateTargets(s.targets); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Seeder) Targets() Targets {
	return s.targets
}

// Seed generates and inserts every batch inside one transaction. Any failure
// rolls the whole run back.
func (s *Seeder) Seed(ctx context.Context) (*Report, error) {
	color.New(color.FgCyan).Fprintln(s.out, startMessage)
	started := time.Now()

	tx, err := s.store.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	report := &Report{}
	for _, entity := range s.order {
		spec := catalog[entity]
		batchStart := time.Now()

		rows, err := s.buildRows(spec)
		if err != nil {
			return nil, fmt.Errorf("generate %s: %w", spec.Table, err)
		}

		n, err := tx.BulkInsert(ctx, spec.Table, spec.Columns, rows)
		if err != nil {
			return nil, fmt.Errorf("seed %s: %w", spec.Table, err)
		}

		batch := BatchResult{Entity: entity, Table: spec.Table, Rows: n, Duration: time.Since(batchStart)}
		report.Batches = append(report.Batches, batch)
		s.log.WithFields(logrus.Fields{
			"entity":   entity,
			"table":    spec.Table,
			"rows":     n,
			"duration": batch.Duration.String(),
		}).Info("batch inserted")
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit seed transaction: %w", err)
	}

	report.Duration = time.Since(started)
	s.log.WithFields(logrus.Fields{
		"rows":     report.Total(),
		"duration": report.Duration.String(),
	}).Debug("seed transaction committed")
	color.New(color.FgGreen).Fprintln(s.out, doneMessage)
	return report, nil
}

// ValidateTargets rejects targets that could not produce a referentially
// consistent dataset.
func ValidateTargets(t Targets) error {
	for _, spec := range Catalog() {
		n := t.Of(spec.Entity)
		if n < 0 {
			return fmt.Errorf("%s: row count cannot be negative: %d", spec.Entity, n)
		}
		if n == 0 {
			continue
		}
		for _, dep := range spec.DependsOn() {
			if t.Of(dep) < 1 {
				return fmt.Errorf("%w: %d %s rows need at least one %s", ErrMissingReference, n, spec.Entity, dep)
			}
		}
	}
	if t.Steps < 0 {
		return fmt.Errorf("steps per pipeline cannot be negative: %d", t.Steps)
	}

	if space := spaceSize(t.Of(User), t.Of(ToolCategory), t.Of(Environment)); t.Of(UsageGrant) > space {
		return fmt.Errorf("%w: %d %s rows from %d user/category/environment triples", ErrSampleSpace, t.Of(UsageGrant), UsageGrant, space)
	}
	if space := spaceSize(t.Of(User), t.Of(Service)); t.Of(AccessGrant) > space {
		return fmt.Errorf("%w: %d %s rows from %d user/service pairs", ErrSampleSpace, t.Of(AccessGrant), AccessGrant, space)
	}
	return nil
}
