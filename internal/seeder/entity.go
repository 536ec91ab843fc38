package seeder

import (
	"github.com/maxlayn1/DevOps-App-Database/internal/config"
)

// DeclaredOrder is the sequence batches are inserted in. Every entity comes
// after everything it references; New asserts this against the catalog.
var DeclaredOrder = []Entity{
	ToolCategory,
	User,
	ConfigFile,
	Environment,
	SourceControlTool,
	TestingTool,
	Service,
	Pipeline,
	PipelineStep,
	Deployment,
	LogEntry,
	UsageGrant,
	AccessGrant,
}

var catalog = map[Entity]EntitySpec{
	ToolCategory: {
		Entity:   ToolCategory,
		Table:    "Tool_Category",
		Key:      "category_id",
		Columns:  []string{"category_name"},
		CountKey: config.CountCategories,
	},
	User: {
		Entity:   User,
		Table:    "User",
		Key:      "user_id",
		Columns:  []string{"name", "email", "role"},
		Unique:   []string{"email"},
		CountKey: config.CountUsers,
	},
	ConfigFile: {
		Entity:     ConfigFile,
		Table:      "Config_File",
		Key:        "file_id",
		Columns:    []string{"name", "hash", "user_id"},
		References: []Reference{{Column: "user_id", Entity: User}},
		CountKey:   config.CountConfigs,
	},
	Environment: {
		Entity:     Environment,
		Table:      "Environment",
		Key:        "env_id",
		Columns:    []string{"name", "is_active", "file_id"},
		References: []Reference{{Column: "file_id", Entity: ConfigFile}},
		CountKey:   config.CountEnvironments,
	},
	SourceControlTool: {
		Entity:     SourceControlTool,
		Table:      "Source_Ctrl",
		Key:        "tool_id",
		Columns:    []string{"name", "type", "version", "category_id"},
		References: []Reference{{Column: "category_id", Entity: ToolCategory}},
		CountKey:   config.CountSourceCtrl,
	},
	TestingTool: {
		Entity:     TestingTool,
		Table:      "Testing",
		Key:        "tool_id",
		Columns:    []string{"name", "type", "version", "category_id"},
		References: []Reference{{Column: "category_id", Entity: ToolCategory}},
		CountKey:   config.CountTesting,
	},
	Service: {
		Entity:   Service,
		Table:    "Service",
		Key:      "service_id",
		Columns:  []string{"name", "is_active"},
		CountKey: config.CountServices,
	},
	Pipeline: {
		Entity:     Pipeline,
		Table:      "Pipeline",
		Key:        "pipe_id",
		Columns:    []string{"name", "service_id"},
		References: []Reference{{Column: "service_id", Entity: Service}},
		CountKey:   config.CountPipelines,
	},
	PipelineStep: {
		Entity:     PipelineStep,
		Table:      "Pipeline_Step",
		Columns:    []string{"pipe_id", "step_id", "name"},
		References: []Reference{{Column: "pipe_id", Entity: Pipeline}},
		Unique:     []string{"pipe_id", "step_id"},
		CountKey:   config.CountSteps,
	},
	Deployment: {
		Entity:  Deployment,
		Table:   "Deployment",
		Key:     "deploy_id",
		Columns: []string{"status", "version", "timestamp", "user_id", "env_id", "service_id"},
		References: []Reference{
			{Column: "user_id", Entity: User},
			{Column: "env_id", Entity: Environment},
			{Column: "service_id", Entity: Service},
		},
		CountKey: config.CountDeployments,
	},
	LogEntry: {
		Entity:     LogEntry,
		Table:      "Log",
		Key:        "log_id",
		Columns:    []string{"type", "timestamp", "deploy_id"},
		References: []Reference{{Column: "deploy_id", Entity: Deployment}},
		CountKey:   config.CountLogs,
	},
	UsageGrant: {
		Entity:  UsageGrant,
		Table:   "Uses",
		Columns: []string{"user_id", "category_id", "env_id"},
		References: []Reference{
			{Column: "user_id", Entity: User},
			{Column: "category_id", Entity: ToolCategory},
			{Column: "env_id", Entity: Environment},
		},
		Unique:   []string{"user_id", "category_id", "env_id"},
		CountKey: config.CountUses,
	},
	AccessGrant: {
		Entity:  AccessGrant,
		Table:   "Accesses",
		Columns: []string{"user_id", "service_id", "permissions"},
		References: []Reference{
			{Column: "user_id", Entity: User},
			{Column: "service_id", Entity: Service},
		},
		Unique:   []string{"user_id", "service_id"},
		CountKey: config.CountAccesses,
	},
}

// Catalog returns the spec of every entity in DeclaredOrder.
func Catalog() []EntitySpec {
	specs := make([]EntitySpec, 0, len(DeclaredOrder))
	for _, e := range DeclaredOrder {
		specs = append(specs, catalog[e])
	}
	return specs
}

// Spec looks up a single entity.
func Spec(e Entity) (EntitySpec, bool) {
	spec, ok := catalog[e]
	return spec, ok
}

// TargetsFromConfig turns the configured counts into per-entity row targets.
func TargetsFromConfig(cfg *config.Config) Targets {
	t := Targets{
		Rows:  make(map[Entity]int, len(catalog)),
		Steps: cfg.Count(config.CountSteps),
	}
	for e, spec := range catalog {
		t.Rows[e] = cfg.Count(spec.CountKey)
	}
	t.Rows[PipelineStep] = t.Rows[Pipeline] * t.Steps
	return t
}
