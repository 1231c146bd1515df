package dag

import (
	"container/heap"
	"fmt"

	"github.com/specialistvlad/burstplan/internal/model"
)

// New creates and returns an initialized, empty Graph.
func New() *Graph {
	return &Graph{
		index: make(map[string]model.TaskRef),
		edges: make(map[edge]struct{}),
	}
}

// AddTask validates the task and adds it to the graph. The returned ref is
// the task's position in discovery order.
func (g *Graph) AddTask(t *model.Task) (model.TaskRef, error) {
	if t == nil {
		return 0, fmt.Errorf("task must not be nil")
	}
	if err := t.Validate(); err != nil {
		return 0, err
	}
	if _, ok := g.index[t.ID]; ok {
		return 0, fmt.Errorf("duplicate task id '%s'", t.ID)
	}

	ref := model.TaskRef(len(g.tasks))
	g.tasks = append(g.tasks, t)
	g.parents = append(g.parents, nil)
	g.children = append(g.children, nil)
	g.index[t.ID] = ref
	return ref, nil
}

// AddEdge creates a directed edge from the `parentID` task to the `childID`
// task. This signifies that `childID` has a dependency on `parentID`. An error
// is returned if either task does not exist or if the edge would create a
// self-reference. Adding the same edge twice is a no-op.
func (g *Graph) AddEdge(parentID, childID string) error {
	if parentID == childID {
		return fmt.Errorf("self-referential edge not allowed: %s -> %s", parentID, parentID)
	}

	parent, ok := g.index[parentID]
	if !ok {
		return fmt.Errorf("source task not found: %s", parentID)
	}
	child, ok := g.index[childID]
	if !ok {
		return fmt.Errorf("destination task not found: %s", childID)
	}

	e := edge{parent: parent, child: child}
	if _, exists := g.edges[e]; exists {
		return nil
	}
	g.edges[e] = struct{}{}
	g.children[parent] = append(g.children[parent], child)
	g.parents[child] = append(g.parents[child], parent)
	return nil
}

// Len returns the number of tasks.
func (g *Graph) Len() int {
	return len(g.tasks)
}

// EdgeCount returns the number of parent->child links.
func (g *Graph) EdgeCount() int {
	return len(g.edges)
}

// Task returns the task behind ref.
func (g *Graph) Task(ref model.TaskRef) *model.Task {
	return g.tasks[ref]
}

// Lookup finds a task by its ID.
func (g *Graph) Lookup(id string) (model.TaskRef, bool) {
	ref, ok := g.index[id]
	return ref, ok
}

// Refs returns every task ref in discovery order.
func (g *Graph) Refs() []model.TaskRef {
	out := make([]model.TaskRef, len(g.tasks))
	for i := range out {
		out[i] = model.TaskRef(i)
	}
	return out
}

// Parents returns the direct predecessors of ref in link order.
func (g *Graph) Parents(ref model.TaskRef) []model.TaskRef {
	return g.parents[ref]
}

// Children returns the direct successors of ref in link order.
func (g *Graph) Children(ref model.TaskRef) []model.TaskRef {
	return g.children[ref]
}

// HasEdge reports whether child directly depends on parent.
func (g *Graph) HasEdge(parent, child model.TaskRef) bool {
	_, ok := g.edges[edge{parent: parent, child: child}]
	return ok
}

// Roots returns the tasks without parents, in discovery order.
func (g *Graph) Roots() []model.TaskRef {
	var out []model.TaskRef
	for i := range g.tasks {
		if len(g.parents[i]) == 0 {
			out = append(out, model.TaskRef(i))
		}
	}
	return out
}

// Leaves returns the tasks without children, in discovery order.
func (g *Graph) Leaves() []model.TaskRef {
	var out []model.TaskRef
	for i := range g.tasks {
		if len(g.children[i]) == 0 {
			out = append(out, model.TaskRef(i))
		}
	}
	return out
}

// TopologicalOrder returns every task such that parents come before their
// children. Among the tasks whose parents are all ordered, the one discovered
// first goes next, so the result is the discovery order wherever precedence
// allows it. ErrCycle is returned if some tasks can never be ordered.
func (g *Graph) TopologicalOrder() ([]model.TaskRef, error) {
	indegree := make([]int, len(g.tasks))
	for i := range g.tasks {
		indegree[i] = len(g.parents[i])
	}

	ready := refHeap(g.Roots())
	heap.Init(&ready)
	order := make([]model.TaskRef, 0, len(g.tasks))
	for ready.Len() > 0 {
		ref := heap.Pop(&ready).(model.TaskRef)
		order = append(order, ref)
		for _, child := range g.children[ref] {
			indegree[child]--
			if indegree[child] == 0 {
				heap.Push(&ready, child)
			}
		}
	}

	if len(order) != len(g.tasks) {
		for i, d := range indegree {
			if d > 0 {
				return nil, fmt.Errorf("%w involving task '%s'", ErrCycle, g.tasks[i].ID)
			}
		}
	}
	return order, nil
}

// refHeap is a min-heap of task refs, lowest discovery index on top.
type refHeap []model.TaskRef

func (h refHeap) Len() int           { return len(h) }
func (h refHeap) Less(i, j int) bool { return h[i] < h[j] }
func (h refHeap) Swap(i, j int)      { h[i], h[j] = h[j], h[i] }

func (h *refHeap) Push(x any) {
	*h = append(*h, x.(model.TaskRef))
}

func (h *refHeap) Pop() any {
	old := *h
	n := len(old)
	x := old[n-1]
	*h = old[:n-1]
	return x
}

// DetectCycles checks the graph for any cycles. It returns an error wrapping
// ErrCycle that names a task involved in the first cycle found.
func (g *Graph) DetectCycles() error {
	_, err := g.TopologicalOrder()
	return err
}
