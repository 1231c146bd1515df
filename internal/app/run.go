package app

import (
	"context"
	"fmt"

	"github.com/specialistvlad/burstplan/internal/config"
	"github.com/specialistvlad/burstplan/internal/ctxlog"
	"github.com/specialistvlad/burstplan/internal/dag"
	"github.com/specialistvlad/burstplan/internal/model"
	"github.com/specialistvlad/burstplan/internal/scheduler"
)

// Run executes the main application logic: it schedules the configured
// problem and writes the report.
func (a *App) Run(ctx context.Context) error {
	ctx = a.Context(ctx)
	a.logger.Debug("App.Run method started.")

	report, err := a.Schedule(ctx)
	if err != nil {
		return err
	}

	if err := report.Write(a.outW, a.config.Report); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	a.logger.Debug("App.Run method finished.")
	return nil
}

// Schedule loads the problem, runs the selected planner and matcher, and
// returns the resulting report.
func (a *App) Schedule(ctx context.Context) (*Report, error) {
	ctx = a.Context(ctx)
	logger := ctxlog.FromContext(ctx)

	cfgModel, err := a.loader.Load(ctx, a.config.ProblemPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	settings := a.settings(cfgModel)
	logger.Debug("Configuration loaded and translated into unified model.",
		"planner", settings.Planner, "matcher", settings.Matcher)

	g, pool, err := dag.Build(ctx, cfgModel)
	if err != nil {
		return nil, fmt.Errorf("failed to build dependency graph: %w", err)
	}
	logger.Debug("Dependency graph built.", "tasks", g.Len(), "edges", g.EdgeCount(), "resources", pool.Len())

	planner, err := scheduler.NewPlanner(settings.Planner, a.scope)
	if err != nil {
		return nil, err
	}
	matcher, err := scheduler.NewMatcher(settings.Matcher, a.scope)
	if err != nil {
		return nil, err
	}

	report := &Report{Planner: settings.Planner, Matcher: settings.Matcher}

	if planner != nil {
		plan, err := planner.Plan(ctx, g, pool)
		if err != nil {
			return nil, fmt.Errorf("planning failed: %w", err)
		}
		if err := scheduler.Verify(g, plan); err != nil {
			return nil, fmt.Errorf("plan failed verification: %w", err)
		}
		report.addPlan(g, pool, plan)
		logger.Info("Plan complete.",
			"run_id", plan.RunID.String(),
			"tasks", plan.Len(),
			"makespan", plan.Makespan(),
			"infeasible", len(plan.Infeasible()),
		)
	} else {
		logger.Debug("No planner selected, skipping static planning.")
	}

	if matcher != nil {
		ready := tasksOf(g, dag.ReadyTasks(g, nil))
		matches := matcher.Match(ctx, ready, pool.All())
		report.addMatches(matches)
		logger.Info("Matching round complete.", "ready", len(ready), "matched", len(matches))
	} else {
		logger.Debug("No matcher selected, skipping matching round.")
	}

	return report, nil
}

// settings applies the command-line overrides to the problem's settings.
func (a *App) settings(m *config.Model) *config.Settings {
	s := config.DefaultSettings()
	s.Merge(m.Settings)
	s.Merge(&config.Settings{Planner: a.config.Planner, Matcher: a.config.Matcher})
	return s
}

func tasksOf(g *dag.Graph, refs []model.TaskRef) []*model.Task {
	out := make([]*model.Task, len(refs))
	for i, ref := range refs {
		out[i] = g.Task(ref)
	}
	return out
}
