package scheduler

import (
	"context"

	"github.com/specialistvlad/burstplan/internal/ctxlog"
	"github.com/specialistvlad/burstplan/internal/model"
	"github.com/uber-go/tally/v4"
)

// MinMin is the ready-queue greedy matcher. Each step takes the shortest
// unmatched task and gives it the idle resource with the highest requested
// load. Earlier entries win ties on both sides.
type MinMin struct {
	metrics *Metrics
}

var _ Matcher = (*MinMin)(nil)

// NewMinMin creates a MinMin matcher reporting to scope. A nil scope
// disables metrics.
func NewMinMin(scope tally.Scope) *MinMin {
	if scope == nil {
		scope = tally.NoopScope
	}
	return &MinMin{metrics: NewMetrics(scope)}
}

// Match runs one matching round.
func (m *MinMin) Match(ctx context.Context, ready []*model.Task, resources []*model.Resource) []Match {
	_, logger := ctxlog.With(ctx, "matcher", "minmin")

	pending := make([]*model.Task, 0, len(ready))
	for _, t := range ready {
		if t != nil {
			pending = append(pending, t)
		}
	}

	var matches []Match
	for len(pending) > 0 {
		i := shortest(pending)
		r := mostLoadedIdle(resources)
		if r == nil {
			logger.Debug("Match: No idle resource left.", "pending", len(pending))
			break
		}

		task := pending[i]
		task.ResourceID = r.ID
		r.State = model.ResourceBusy
		matches = append(matches, Match{Task: task, Resource: r})
		pending = append(pending[:i], pending[i+1:]...)

		logger.Debug("Match: Task matched.", "task", task.ID, "resource", r.ID, "length", task.Length)
	}

	m.metrics.MatchRounds.Inc(1)
	m.metrics.TasksMatched.Inc(int64(len(matches)))
	m.metrics.TasksUnmatched.Inc(int64(len(pending)))
	return matches
}

// shortest returns the index of the first task with the minimum length.
func shortest(tasks []*model.Task) int {
	best := 0
	for i := 1; i < len(tasks); i++ {
		if tasks[i].Length < tasks[best].Length {
			best = i
		}
	}
	return best
}

// mostLoadedIdle returns the first idle resource with the maximum requested
// load, or nil when none is idle.
func mostLoadedIdle(resources []*model.Resource) *model.Resource {
	var best *model.Resource
	for _, r := range resources {
		if r == nil || !r.Idle() {
			continue
		}
		if best == nil || r.RequestedLoad > best.RequestedLoad {
			best = r
		}
	}
	return best
}
