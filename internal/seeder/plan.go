package seeder

import (
	"gopkg.in/yaml.v3"

	"github.com/maxlayn1/DevOps-App-Database/internal/config"
)

type PlanStep struct {
	Entity    Entity   `yaml:"entity"`
	Table     string   `yaml:"table"`
	Rows      int      `yaml:"rows"`
	DependsOn []Entity `yaml:"depends_on,omitempty,flow"`
}

// Plan is what a seed run would do, without touching the store.
type Plan struct {
	Provider string     `yaml:"provider"`
	Steps    []PlanStep `yaml:"steps"`
	Total    int        `yaml:"total_rows"`
}

func BuildPlan(cfg *config.Config) (*Plan, error) {
	if err := CatalogGraph().checkOrder(DeclaredOrder); err != nil {
		return nil, err
	}
	targets := TargetsFromConfig(cfg)
	if err := ValidateTargets(targets); err != nil {
		return nil, err
	}

	plan := &Plan{Provider: cfg.Database.Provider}
	for _, spec := range Catalog() {
		rows := targets.Of(spec.Entity)
		plan.Steps = append(plan.Steps, PlanStep{
			Entity:    spec.Entity,
			Table:     spec.Table,
			Rows:      rows,
			DependsOn: spec.DependsOn(),
		})
		plan.Total += rows
	}
	return plan, nil
}

func (p *Plan) YAML() ([]byte, error) {
	return yaml.Marshal(p)
}
