package scheduler

import (
	"github.com/google/uuid"
	"github.com/specialistvlad/burstplan/internal/costmodel"
	"github.com/specialistvlad/burstplan/internal/model"
	"github.com/specialistvlad/burstplan/internal/rank"
	"github.com/specialistvlad/burstplan/internal/timeline"
)

// Plan is the outcome of one planning run. Per-task slices are indexed by
// TaskRef.
type Plan struct {
	// RunID identifies the run in logs and reports.
	RunID uuid.UUID
	// Order is the sequence in which tasks were placed.
	Order []model.TaskRef

	Assignment []model.ResourceRef
	Ready      []float64
	Start      []float64
	Finish     []float64

	Timelines *timeline.Set
	Ranks     *rank.Ranks
	Tables    *costmodel.Tables
}

func newPlan(runID uuid.UUID, n, resources int) *Plan {
	p := &Plan{
		RunID:      runID,
		Order:      make([]model.TaskRef, 0, n),
		Assignment: make([]model.ResourceRef, n),
		Ready:      make([]float64, n),
		Start:      make([]float64, n),
		Finish:     make([]float64, n),
		Timelines:  timeline.NewSet(resources),
	}
	for i := range p.Assignment {
		p.Assignment[i] = model.NoResource
	}
	return p
}

// Len returns the number of tasks covered by the plan.
func (p *Plan) Len() int {
	return len(p.Assignment)
}

// Makespan returns the latest finish time over all tasks, zero for an empty
// plan.
func (p *Plan) Makespan() float64 {
	var makespan float64
	for _, f := range p.Finish {
		makespan = max(makespan, f)
	}
	return makespan
}

// ResourceOf returns the resource t was placed on.
func (p *Plan) ResourceOf(t model.TaskRef) model.ResourceRef {
	return p.Assignment[t]
}

// Infeasible returns, in placement order, the tasks that ended up on a
// resource lacking the processing elements they need.
func (p *Plan) Infeasible() []model.TaskRef {
	var out []model.TaskRef
	for _, t := range p.Order {
		r := p.Assignment[t]
		if r == model.NoResource || !p.Tables.Computation.Feasible(t, r) {
			out = append(out, t)
		}
	}
	return out
}
