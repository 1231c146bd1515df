package costmodel

import (
	"errors"
	"math"

	"github.com/specialistvlad/burstplan/internal/dag"
	"github.com/specialistvlad/burstplan/internal/model"
	"gonum.org/v1/gonum/stat"
)

const (
	bytesPerMB  = 1e6
	bitsPerByte = 8
)

// ErrEmptyPool is returned when a cost is requested over zero resources.
var ErrEmptyPool = errors.New("resource pool is empty")

// Infeasible is the computation cost of a task on a resource that lacks the
// processing elements the task needs. It dominates every comparison.
var Infeasible = math.Inf(1)

// Tables bundles the cost tables of one planning run.
type Tables struct {
	Computation      *ComputationTable
	Transfer         *TransferTable
	AverageBandwidth float64
}

// Build computes every table for g and pool.
func Build(g *dag.Graph, pool *model.Pool) (*Tables, error) {
	bw, err := AverageBandwidth(pool)
	if err != nil {
		return nil, err
	}
	return &Tables{
		Computation:      ComputationCosts(g, pool),
		Transfer:         TransferCosts(g, bw),
		AverageBandwidth: bw,
	}, nil
}

// AverageBandwidth returns the arithmetic mean of the pool's bandwidths in
// Mbit/s. It is the single bandwidth estimate used for every transfer.
func AverageBandwidth(pool *model.Pool) (float64, error) {
	if pool == nil || pool.Len() == 0 {
		return 0, ErrEmptyPool
	}
	bws := make([]float64, pool.Len())
	for i, r := range pool.All() {
		bws[i] = r.Bandwidth
	}
	return stat.Mean(bws, nil), nil
}

// ComputationTable holds the cost in seconds of every task on every
// resource.
type ComputationTable struct {
	costs     [][]float64
	resources int
}

// ComputationCosts fills the computation table: Length / MIPS, or Infeasible
// when the resource has fewer processing elements than the task requires.
func ComputationCosts(g *dag.Graph, pool *model.Pool) *ComputationTable {
	ct := &ComputationTable{
		costs:     make([][]float64, g.Len()),
		resources: pool.Len(),
	}
	for _, ref := range g.Refs() {
		task := g.Task(ref)
		row := make([]float64, pool.Len())
		for j, r := range pool.All() {
			if r.PEs < task.PEs {
				row[j] = Infeasible
				continue
			}
			row[j] = task.Length / r.MIPS
		}
		ct.costs[ref] = row
	}
	return ct
}

// Cost returns the computation cost of t on r.
func (ct *ComputationTable) Cost(t model.TaskRef, r model.ResourceRef) float64 {
	return ct.costs[t][r]
}

// Feasible reports whether r can run t at all.
func (ct *ComputationTable) Feasible(t model.TaskRef, r model.ResourceRef) bool {
	return !math.IsInf(ct.costs[t][r], 1)
}

// Average returns the mean computation cost of t over all resources,
// infeasible entries included. A single infeasible resource makes the
// average infinite.
func (ct *ComputationTable) Average(t model.TaskRef) float64 {
	if ct.resources == 0 {
		return 0
	}
	return stat.Mean(ct.costs[t], nil)
}

// TransferTable holds the cost in seconds of every parent->child edge.
type TransferTable struct {
	costs map[[2]model.TaskRef]float64
}

// TransferCosts computes the transfer cost of every edge of g.
func TransferCosts(g *dag.Graph, averageBandwidth float64) *TransferTable {
	tt := &TransferTable{costs: make(map[[2]model.TaskRef]float64)}
	for _, parent := range g.Refs() {
		for _, child := range g.Children(parent) {
			tt.costs[[2]model.TaskRef{parent, child}] = TransferCost(g.Task(parent), g.Task(child), averageBandwidth)
		}
	}
	return tt
}

// Cost returns the transfer cost from parent to child, zero for unrelated
// tasks.
func (tt *TransferTable) Cost(parent, child model.TaskRef) float64 {
	return tt.costs[[2]model.TaskRef{parent, child}]
}

// TransferCost returns the seconds needed to move every OUTPUT file of
// parent that child reads as an INPUT, at averageBandwidth Mbit/s. Each
// parent output is counted once.
func TransferCost(parent, child *model.Task, averageBandwidth float64) float64 {
	var bytes float64
	for _, out := range parent.Files {
		if out.Kind != model.FileOutput {
			continue
		}
		for _, in := range child.Files {
			if model.Matches(out, in) {
				bytes += float64(in.Size)
				break
			}
		}
	}
	if bytes == 0 {
		return 0
	}
	mb := bytes / bytesPerMB
	return mb * bitsPerByte / averageBandwidth
}
