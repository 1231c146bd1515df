package scheduler

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/specialistvlad/burstplan/internal/costmodel"
	"github.com/specialistvlad/burstplan/internal/ctxlog"
	"github.com/specialistvlad/burstplan/internal/dag"
	"github.com/specialistvlad/burstplan/internal/model"
	"github.com/specialistvlad/burstplan/internal/rank"
	"github.com/uber-go/tally/v4"
)

// HEFT is the Heterogeneous Earliest Finish Time list planner.
type HEFT struct {
	metrics *Metrics
}

var _ Planner = (*HEFT)(nil)

// NewHEFT creates a HEFT planner reporting to scope. A nil scope disables
// metrics.
func NewHEFT(scope tally.Scope) *HEFT {
	if scope == nil {
		scope = tally.NoopScope
	}
	return &HEFT{metrics: NewMetrics(scope)}
}

// Plan schedules every task of g on pool and records the chosen resource on
// each task.
//
// Tasks are visited in decreasing upward rank. For each one the planner
// computes, per resource, the time all inputs are available there (parent
// finish, plus the transfer cost when the parent ran elsewhere), asks the
// resource timeline for the earliest finish from that time and keeps the
// resource with the smallest finish. The first resource in pool order wins
// ties, and is also the fallback when no resource can run the task.
func (h *HEFT) Plan(ctx context.Context, g *dag.Graph, pool *model.Pool) (*Plan, error) {
	sw := h.metrics.PlanLatency.Start()
	defer sw.Stop()

	plan, err := h.plan(ctx, g, pool)
	if err != nil {
		h.metrics.PlanFail.Inc(1)
		return nil, err
	}

	h.metrics.PlanRuns.Inc(1)
	h.metrics.Makespan.Update(plan.Makespan())
	return plan, nil
}

func (h *HEFT) plan(ctx context.Context, g *dag.Graph, pool *model.Pool) (*Plan, error) {
	if g == nil || pool == nil {
		return nil, errors.New("planning needs both a graph and a resource pool")
	}

	runID := uuid.New()
	ctx, logger := ctxlog.With(ctx, "run_id", runID.String(), "planner", "heft")
	logger.Debug("Plan: Starting.", "tasks", g.Len(), "resources", pool.Len())

	tables, err := costmodel.Build(g, pool)
	if err != nil {
		return nil, fmt.Errorf("error building cost tables: %w", err)
	}
	logger.Debug("Plan: Cost tables built.", "average_bandwidth", tables.AverageBandwidth)

	ranks, err := rank.Compute(g, tables)
	if err != nil {
		return nil, fmt.Errorf("error ranking tasks: %w", err)
	}
	order, err := ranks.Order(g)
	if err != nil {
		return nil, fmt.Errorf("error ordering tasks: %w", err)
	}
	logger.Debug("Plan: Tasks ranked.", "count", len(order))

	plan := newPlan(runID, g.Len(), pool.Len())
	plan.Ranks = ranks
	plan.Tables = tables

	for _, t := range order {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		h.place(logger, g, pool, plan, t)
	}

	if err := plan.Timelines.Validate(); err != nil {
		return nil, fmt.Errorf("internal error, corrupted timeline: %w", err)
	}
	logger.Debug("Plan: Finished.", "makespan", plan.Makespan(), "infeasible", len(plan.Infeasible()))
	return plan, nil
}

// place picks the resource with the earliest finish time for t and commits
// the reservation.
func (h *HEFT) place(logger *slog.Logger, g *dag.Graph, pool *model.Pool, plan *Plan, t model.TaskRef) {
	tables := plan.Tables

	best := model.ResourceRef(0)
	bestFinish := 0.0
	bestReady := 0.0
	for j := 0; j < pool.Len(); j++ {
		r := model.ResourceRef(j)
		ready := readyTime(g, plan, t, r)
		finish := plan.Timelines.For(r).FindFinishTime(t, tables.Computation.Cost(t, r), ready, false)
		if j == 0 || finish < bestFinish {
			best, bestFinish, bestReady = r, finish, ready
		}
	}

	tl := plan.Timelines.For(best)
	slot := tl.EarliestSlot(bestReady, tables.Computation.Cost(t, best))
	gap := slot.Gap(tl)
	// A slot fresh from EarliestSlot always fits.
	_ = tl.Reserve(slot, t)

	task := g.Task(t)
	resource := pool.Get(best)
	task.ResourceID = resource.ID

	plan.Order = append(plan.Order, t)
	plan.Assignment[t] = best
	plan.Ready[t] = bestReady
	plan.Start[t] = slot.Start
	plan.Finish[t] = slot.Finish

	h.metrics.TasksPlanned.Inc(1)
	if gap {
		h.metrics.GapFills.Inc(1)
	}
	if !tables.Computation.Feasible(t, best) {
		h.metrics.InfeasiblePlacements.Inc(1)
		logger.Warn("No resource can run task, placing it anyway.",
			"task", task.ID, "pes", task.PEs, "resource", resource.ID)
	}
	logger.Debug("Plan: Task placed.",
		"task", task.ID, "resource", resource.ID,
		"start", slot.Start, "finish", slot.Finish, "gap", gap)
}

// readyTime is the earliest time all of t's inputs are available on r.
func readyTime(g *dag.Graph, plan *Plan, t model.TaskRef, r model.ResourceRef) float64 {
	ready := 0.0
	for _, parent := range g.Parents(t) {
		arrival := plan.Finish[parent]
		if plan.Assignment[parent] != r {
			arrival += plan.Tables.Transfer.Cost(parent, t)
		}
		ready = max(ready, arrival)
	}
	return ready
}
