package dag

import (
	"errors"

	"github.com/specialistvlad/burstplan/internal/model"
)

// ErrCycle is returned when the parent/child relation is not acyclic.
var ErrCycle = errors.New("cycle detected")

// Graph is a collection of tasks and their dependencies, representing a DAG.
type Graph struct {
	// tasks stores every task, indexed by its TaskRef.
	tasks []*model.Task
	// index maps task IDs to their refs.
	index map[string]model.TaskRef
	// parents holds, per task, the tasks it depends on (predecessors).
	parents [][]model.TaskRef
	// children holds, per task, the tasks that depend on it (successors).
	children [][]model.TaskRef
	// edges deduplicates parent->child links.
	edges map[edge]struct{}
}

type edge struct {
	parent, child model.TaskRef
}
