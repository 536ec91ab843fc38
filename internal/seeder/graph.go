package seeder

import (
	"fmt"
	"slices"
)

type DependencyGraph struct {
	specs map[Entity]EntitySpec
	added []Entity
}

func NewDependencyGraph() *DependencyGraph {
	return &DependencyGraph{
		specs: make(map[Entity]EntitySpec),
	}
}

// CatalogGraph is the dependency graph of every known entity.
func CatalogGraph() *DependencyGraph {
	g := NewDependencyGraph()
	for _, spec := range Catalog() {
		g.AddEntity(spec)
	}
	return g
}

func (g *DependencyGraph) AddEntity(spec EntitySpec) {
	if _, exists := g.specs[spec.Entity]; !exists {
		g.added = append(g.added, spec.Entity)
	}
	g.specs[spec.Entity] = spec
}

// BuildInsertionOrder returns a topological order of the graph. Entities are
// visited in the order they were added, so the result is stable.
func (g *DependencyGraph) BuildInsertionOrder() ([]Entity, error) {
	visited := make(map[Entity]bool)
	temp := make(map[Entity]bool)
	var order []Entity

	var visit func(Entity) error
	visit = func(e Entity) error {
		if temp[e] {
			return fmt.Errorf("circular dependency detected involving entity: %s", e)
		}
		if visited[e] {
			return nil
		}

		temp[e] = true
		if spec, ok := g.specs[e]; ok {
			for _, dep := range spec.DependsOn() {
				if err := visit(dep); err != nil {
					return err
				}
			}
		}

		temp[e] = false
		visited[e] = true
		order = append(order, e)
		return nil
	}

	for _, e := range g.added {
		if !visited[e] {
			if err := visit(e); err != nil {
				return nil, err
			}
		}
	}

	return order, nil
}

// checkOrder asserts that order is valid for g and matches the order the
// graph sorts itself into.
func (g *DependencyGraph) checkOrder(order []Entity) error {
	if err := g.ValidateOrder(order); err != nil {
		return err
	}
	built, err := g.BuildInsertionOrder()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidOrder, err)
	}
	if !slices.Equal(built, order) {
		return fmt.Errorf("%w: declared %v, dependency sort gives %v", ErrInvalidOrder, order, built)
	}
	return nil
}

// ValidateOrder checks that order lists every entity of the graph exactly once
// and that each entity appears after all of its dependencies.
func (g *DependencyGraph) ValidateOrder(order []Entity) error {
	position := make(map[Entity]int, len(order))
	for i, e := range order {
		if _, ok := g.specs[e]; !ok {
			return fmt.Errorf("%w: unknown entity %s", ErrInvalidOrder, e)
		}
		if _, dup := position[e]; dup {
			return fmt.Errorf("%w: %s listed twice", ErrInvalidOrder, e)
		}
		position[e] = i
	}

	for _, e := range g.added {
		idx, ok := position[e]
		if !ok {
			return fmt.Errorf("%w: %s missing", ErrInvalidOrder, e)
		}
		for _, dep := range g.specs[e].DependsOn() {
			depIdx, known := position[dep]
			if !known {
				return fmt.Errorf("%w: %s depends on %s which is not in the order", ErrInvalidOrder, e, dep)
			}
			if depIdx >= idx {
				return fmt.Errorf("%w: %s is seeded before its dependency %s", ErrInvalidOrder, e, dep)
			}
		}
	}
	return nil
}
