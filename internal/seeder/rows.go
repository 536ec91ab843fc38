package seeder

import "fmt"

type usageKey struct {
	user, category, env int
}

type accessKey struct {
	user, service int
}

// buildRows synthesizes the batch for one entity. Column order matches the
// entity's spec.
func (s *Seeder) buildRows(spec EntitySpec) ([][]any, error) {
	n := s.targets.Of(spec.Entity)
	g := s.gen

	switch spec.Entity {
	case ToolCategory:
		return repeat(n, func() ([]any, error) {
			return []any{g.CategoryName()}, nil
		})

	case User:
		return repeat(n, func() ([]any, error) {
			email, err := g.UniqueEmail()
			if err != nil {
				return nil, err
			}
			return []any{g.Name(), email, g.JobTitle()}, nil
		})

	case ConfigFile:
		users := s.targets.Of(User)
		return repeat(n, func() ([]any, error) {
			return []any{g.FileName("yaml"), g.ContentHash(), g.ForeignKey(users)}, nil
		})

	case Environment:
		configs := s.targets.Of(ConfigFile)
		return repeat(n, func() ([]any, error) {
			return []any{g.DomainWord(), g.Active(), g.ForeignKey(configs)}, nil
		})

	case SourceControlTool:
		categories := s.targets.Of(ToolCategory)
		return repeat(n, func() ([]any, error) {
			return []any{g.DomainWord(), "Git-based", g.Version(5), g.ForeignKey(categories)}, nil
		})

	case TestingTool:
		categories := s.targets.Of(ToolCategory)
		return repeat(n, func() ([]any, error) {
			return []any{g.DomainWord(), "CI/CD", g.Version(5), g.ForeignKey(categories)}, nil
		})

	case Service:
		return repeat(n, func() ([]any, error) {
			return []any{g.DomainWord(), g.Active()}, nil
		})

	case Pipeline:
		services := s.targets.Of(Service)
		return repeat(n, func() ([]any, error) {
			return []any{g.Phrase(), g.ForeignKey(services)}, nil
		})

	case PipelineStep:
		rows := make([][]any, 0, n)
		for pipe := 1; pipe <= s.targets.Of(Pipeline); pipe++ {
			for step := 1; step <= s.targets.Steps; step++ {
				rows = append(rows, []any{pipe, step, g.Phrase()})
			}
		}
		return rows, nil

	case Deployment:
		users, envs, services := s.targets.Of(User), s.targets.Of(Environment), s.targets.Of(Service)
		return repeat(n, func() ([]any, error) {
			return []any{
				g.Pick(DeploymentStatuses),
				g.Version(10),
				g.Timestamp(),
				g.ForeignKey(users),
				g.ForeignKey(envs),
				g.ForeignKey(services),
			}, nil
		})

	case LogEntry:
		deployments := s.targets.Of(Deployment)
		return repeat(n, func() ([]any, error) {
			return []any{g.Pick(LogSeverities), g.Timestamp(), g.ForeignKey(deployments)}, nil
		})

	case UsageGrant:
		users, categories, envs := s.targets.Of(User), s.targets.Of(ToolCategory), s.targets.Of(Environment)
		keys, err := sampleUnique(n, spaceSize(users, categories, envs), attemptBudget(n, s.attemptsFactor), func() usageKey {
			return usageKey{g.ForeignKey(users), g.ForeignKey(categories), g.ForeignKey(envs)}
		})
		if err != nil {
			return nil, err
		}
		rows := make([][]any, len(keys))
		for i, k := range keys {
			rows[i] = []any{k.user, k.category, k.env}
		}
		return rows, nil

	case AccessGrant:
		users, services := s.targets.Of(User), s.targets.Of(Service)
		keys, err := sampleUnique(n, spaceSize(users, services), attemptBudget(n, s.attemptsFactor), func() accessKey {
			return accessKey{g.ForeignKey(users), g.ForeignKey(services)}
		})
		if err != nil {
			return nil, err
		}
		rows := make([][]any, len(keys))
		for i, k := range keys {
			rows[i] = []any{k.user, k.service, g.Pick(Permissions)}
		}
		return rows, nil
	}

	return nil, fmt.Errorf("no row builder for entity %s", spec.Entity)
}

func repeat(n int, row func() ([]any, error)) ([][]any, error) {
	rows := make([][]any, 0, n)
	for i := 0; i < n; i++ {
		r, err := row()
		if err != nil {
			return nil, err
		}
		rows = append(rows, r)
	}
	return rows, nil
}
