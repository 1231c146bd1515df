// Package rank computes the upward rank of every task of a workflow graph:
//
//	rank(t) = avg(t) + max over children c of (transfer(t, c) + rank(c))
//
// where avg(t) is the task's mean computation cost over all resources. A
// task without children ranks avg(t). The rank of a task bounds the length
// of the critical path from it to the end of the workflow, so ordering tasks
// by decreasing rank is a valid precedence order.
package rank

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/specialistvlad/burstplan/internal/costmodel"
	"github.com/specialistvlad/burstplan/internal/dag"
	"github.com/specialistvlad/burstplan/internal/model"
)

// ErrCycle is returned when the traversal meets a task that is still being
// ranked.
var ErrCycle = errors.New("cycle detected while ranking")

// Ranks holds the upward rank of every task, indexed by TaskRef.
type Ranks struct {
	values []float64
}

// Of returns the rank of t.
func (r *Ranks) Of(t model.TaskRef) float64 {
	return r.values[t]
}

// Len returns the number of ranked tasks.
func (r *Ranks) Len() int {
	return len(r.values)
}

type frame struct {
	task model.TaskRef
	next int // index of the next child to visit
}

// Compute ranks every task of g. Children are ranked before their parents
// by an explicit post-order walk; every rank is computed once and reused by
// all ancestors.
func Compute(g *dag.Graph, tables *costmodel.Tables) (*Ranks, error) {
	n := g.Len()
	values := make([]float64, n)
	done := make([]bool, n)
	onStack := make([]bool, n)

	for _, root := range g.Refs() {
		if done[root] {
			continue
		}
		stack := []frame{{task: root}}
		onStack[root] = true

		for len(stack) > 0 {
			top := &stack[len(stack)-1]
			children := g.Children(top.task)

			if top.next < len(children) {
				child := children[top.next]
				top.next++
				if done[child] {
					continue
				}
				if onStack[child] {
					return nil, fmt.Errorf("%w: task '%s' reaches itself", ErrCycle, g.Task(child).ID)
				}
				onStack[child] = true
				stack = append(stack, frame{task: child})
				continue
			}

			values[top.task] = rankOf(g, tables, values, top.task)
			done[top.task] = true
			onStack[top.task] = false
			stack = stack[:len(stack)-1]
		}
	}
	return &Ranks{values: values}, nil
}

// rankOf assumes every child of t is already ranked.
func rankOf(g *dag.Graph, tables *costmodel.Tables, values []float64, t model.TaskRef) float64 {
	longest := 0.0
	for _, child := range g.Children(t) {
		longest = math.Max(longest, tables.Transfer.Cost(t, child)+values[child])
	}
	return tables.Computation.Average(t) + longest
}

// Order returns every task sorted by strictly decreasing rank. Tasks with
// equal ranks keep discovery order unless a parent would follow its own
// child, which can only happen when ranks tie on zero-cost or +Inf tasks.
func (r *Ranks) Order(g *dag.Graph) ([]model.TaskRef, error) {
	order, err := g.TopologicalOrder()
	if err != nil {
		return nil, err
	}
	sort.SliceStable(order, func(i, j int) bool {
		return r.values[order[i]] > r.values[order[j]]
	})
	return order, nil
}
