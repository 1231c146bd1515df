package scheduler

import (
	"errors"
	"fmt"

	"github.com/hashicorp/go-multierror"
	"github.com/specialistvlad/burstplan/internal/dag"
	"github.com/specialistvlad/burstplan/internal/model"
)

// tolerance absorbs float rounding when comparing times.
const tolerance = 1e-9

// Verify checks a plan against its graph: every task is placed, no child
// starts before its inputs arrive, and no two reservations on a resource
// overlap. All violations are reported together.
func Verify(g *dag.Graph, plan *Plan) error {
	if plan == nil {
		return errors.New("plan is nil")
	}
	if plan.Len() != g.Len() {
		return fmt.Errorf("plan covers %d tasks, graph has %d", plan.Len(), g.Len())
	}

	var result *multierror.Error
	for _, t := range g.Refs() {
		task := g.Task(t)
		r := plan.Assignment[t]
		if r == model.NoResource {
			result = multierror.Append(result, fmt.Errorf("task '%s' was never placed", task.ID))
			continue
		}
		if plan.Start[t] < plan.Ready[t]-tolerance {
			result = multierror.Append(result, fmt.Errorf("task '%s' starts at %g before it is ready at %g",
				task.ID, plan.Start[t], plan.Ready[t]))
		}

		for _, parent := range g.Parents(t) {
			arrival := plan.Finish[parent]
			if plan.Assignment[parent] != r {
				arrival += plan.Tables.Transfer.Cost(parent, t)
			}
			if plan.Start[t] < arrival-tolerance {
				result = multierror.Append(result, fmt.Errorf("task '%s' starts at %g before input from '%s' arrives at %g",
					task.ID, plan.Start[t], g.Task(parent).ID, arrival))
			}
		}
	}

	if err := plan.Timelines.Validate(); err != nil {
		result = multierror.Append(result, err)
	}
	return result.ErrorOrNil()
}
