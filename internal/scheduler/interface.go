package scheduler

import (
	"context"

	"github.com/specialistvlad/burstplan/internal/dag"
	"github.com/specialistvlad/burstplan/internal/model"
)

// Planner produces a static schedule for a whole workflow.
//
// Implementations record the chosen resource on every task (Task.ResourceID)
// and return the full schedule. An error means no schedule was produced; a
// task that can only land on an infeasible resource is not an error.
type Planner interface {
	Plan(ctx context.Context, g *dag.Graph, pool *model.Pool) (*Plan, error)
}

// Matcher assigns ready tasks to idle resources for one round.
//
// ready holds the tasks whose dependencies are satisfied; resources holds the
// candidate resources, of which only idle ones are considered. Matched
// resources are marked busy and matched tasks get their ResourceID set.
// Running out of idle resources ends the round early; it is not an error.
type Matcher interface {
	Match(ctx context.Context, ready []*model.Task, resources []*model.Resource) []Match
}

// Match is one task-to-resource assignment made by a Matcher.
type Match struct {
	Task     *model.Task
	Resource *model.Resource
}
