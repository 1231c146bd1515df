package scheduler

import (
	"context"

	"github.com/specialistvlad/burstplan/internal/ctxlog"
	"github.com/specialistvlad/burstplan/internal/model"
	"github.com/uber-go/tally/v4"
)

// Static replays a plan: every ready task goes to the resource recorded in
// its ResourceID, provided that resource is idle. Tasks without a planned
// resource, or whose resource is busy or not offered, wait for a later
// round.
type Static struct {
	metrics *Metrics
}

var _ Matcher = (*Static)(nil)

// NewStatic creates a Static matcher reporting to scope. A nil scope
// disables metrics.
func NewStatic(scope tally.Scope) *Static {
	if scope == nil {
		scope = tally.NoopScope
	}
	return &Static{metrics: NewMetrics(scope)}
}

// Match runs one matching round in ready order.
func (s *Static) Match(ctx context.Context, ready []*model.Task, resources []*model.Resource) []Match {
	_, logger := ctxlog.With(ctx, "matcher", "static")

	byID := make(map[string]*model.Resource, len(resources))
	for _, r := range resources {
		if r == nil {
			continue
		}
		if _, seen := byID[r.ID]; !seen {
			byID[r.ID] = r
		}
	}

	var matches []Match
	unmatched := 0
	for _, task := range ready {
		if task == nil {
			continue
		}
		r, ok := byID[task.ResourceID]
		if !task.Assigned() || !ok || !r.Idle() {
			unmatched++
			logger.Debug("Match: Planned resource unavailable.", "task", task.ID, "resource", task.ResourceID)
			continue
		}
		r.State = model.ResourceBusy
		matches = append(matches, Match{Task: task, Resource: r})
		logger.Debug("Match: Task matched.", "task", task.ID, "resource", r.ID)
	}

	s.metrics.MatchRounds.Inc(1)
	s.metrics.TasksMatched.Inc(int64(len(matches)))
	s.metrics.TasksUnmatched.Inc(int64(unmatched))
	return matches
}
