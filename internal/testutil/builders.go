package testutil

import (
	"testing"

	"github.com/specialistvlad/burstplan/internal/dag"
	"github.com/specialistvlad/burstplan/internal/model"
	"github.com/stretchr/testify/require"
)

// Edge is a parent->child pair of task IDs.
type Edge [2]string

// Task returns a single-PE task.
func Task(id string, length float64, files ...model.FileItem) *model.Task {
	return &model.Task{ID: id, Length: length, PEs: 1, Files: files}
}

// In is an input file of size bytes.
func In(name string, size int64) model.FileItem {
	return model.FileItem{Name: name, Size: size, Kind: model.FileInput}
}

// Out is an output file of size bytes.
func Out(name string, size int64) model.FileItem {
	return model.FileItem{Name: name, Size: size, Kind: model.FileOutput}
}

// Resource returns an idle single-PE resource.
func Resource(id string, mips, bandwidth float64) *model.Resource {
	return &model.Resource{ID: id, MIPS: mips, PEs: 1, Bandwidth: bandwidth}
}

// Graph builds a graph from tasks and explicit edges, failing the test on
// any error.
func Graph(t testing.TB, tasks []*model.Task, edges ...Edge) *dag.Graph {
	t.Helper()
	g := dag.New()
	for _, task := range tasks {
		_, err := g.AddTask(task)
		require.NoError(t, err)
	}
	for _, e := range edges {
		require.NoError(t, g.AddEdge(e[0], e[1]))
	}
	require.NoError(t, g.DetectCycles())
	return g
}

// Pool builds a pool, failing the test on any error.
func Pool(t testing.TB, resources ...*model.Resource) *model.Pool {
	t.Helper()
	p, err := model.NewPool(resources...)
	require.NoError(t, err)
	return p
}

// Ref looks up a task ref by ID, failing the test if it is missing.
func Ref(t testing.TB, g *dag.Graph, id string) model.TaskRef {
	t.Helper()
	ref, ok := g.Lookup(id)
	require.True(t, ok, "task %q not found", id)
	return ref
}

// Diamond returns the graph A->{B,C}->D on two resources, fast (100 MIPS)
// and slow (50 MIPS), both with 8 Mbit/s so that one MB of data takes one
// second to move.
//
// Costs on fast/slow: A 2/4, B 6/12, C 2/4, D 1/2.
// Transfers: A->B 2, A->C 1, B->D 3, C->D 2.
func Diamond(t testing.TB) (*dag.Graph, *model.Pool) {
	t.Helper()
	g := Graph(t,
		[]*model.Task{
			Task("A", 200, Out("a_b", 2_000_000), Out("a_c", 1_000_000)),
			Task("B", 600, In("a_b", 2_000_000), Out("b_d", 3_000_000)),
			Task("C", 200, In("a_c", 1_000_000), Out("c_d", 2_000_000)),
			Task("D", 100, In("b_d", 3_000_000), In("c_d", 2_000_000)),
		},
		Edge{"A", "B"}, Edge{"A", "C"}, Edge{"B", "D"}, Edge{"C", "D"},
	)
	p := Pool(t, Resource("fast", 100, 8), Resource("slow", 50, 8))
	return g, p
}
