package seeder

import (
	"errors"
	"time"
)

var (
	ErrInvalidOrder     = errors.New("invalid insertion order")
	ErrMissingReference = errors.New("referenced entity has no rows")
	ErrSampleSpace      = errors.New("not enough distinct combinations")
	ErrSampleExhausted  = errors.New("gave up drawing unique values")
	ErrUniqueExhausted  = errors.New("could not generate a unique value")
	ErrVerification     = errors.New("verification failed")
)

// Entity names one of the seeded row types.
type Entity string

const (
	ToolCategory      Entity = "ToolCategory"
	User              Entity = "User"
	ConfigFile        Entity = "ConfigFile"
	Environment       Entity = "Environment"
	SourceControlTool Entity = "SourceControlTool"
	TestingTool       Entity = "TestingTool"
	Service           Entity = "Service"
	Pipeline          Entity = "Pipeline"
	PipelineStep      Entity = "PipelineStep"
	Deployment        Entity = "Deployment"
	LogEntry          Entity = "LogEntry"
	UsageGrant        Entity = "UsageGrant"
	AccessGrant       Entity = "AccessGrant"
)

// Reference is a foreign key column pointing at another entity's key.
type Reference struct {
	Column string
	Entity Entity
}

type EntitySpec struct {
	Entity Entity
	Table  string
	// Key is the store-assigned auto-increment column, empty for tables keyed
	// by their references.
	Key        string
	Columns    []string
	References []Reference
	// Unique lists the column set that must not repeat, if any.
	Unique   []string
	CountKey string
}

// DependsOn returns the distinct entities this one references, in column order.
func (s EntitySpec) DependsOn() []Entity {
	var deps []Entity
	seen := make(map[Entity]bool)
	for _, ref := range s.References {
		if ref.Entity == s.Entity || seen[ref.Entity] {
			continue
		}
		seen[ref.Entity] = true
		deps = append(deps, ref.Entity)
	}
	return deps
}

// Targets holds the number of rows to generate per entity. PipelineStep is
// derived: Steps rows for every pipeline.
type Targets struct {
	Rows  map[Entity]int
	Steps int
}

func (t Targets) Of(e Entity) int {
	return t.Rows[e]
}

type BatchResult struct {
	Entity   Entity
	Table    string
	Rows     int64
	Duration time.Duration
}

type Report struct {
	Batches  []BatchResult
	Duration time.Duration
}

// Total is the number of rows written across all batches.
func (r *Report) Total() int64 {
	var n int64
	for _, b := range r.Batches {
		n += b.Rows
	}
	return n
}
