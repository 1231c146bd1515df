package scheduler

import (
	"context"
	"math"
	"strings"
	"testing"

	"github.com/specialistvlad/burstplan/internal/costmodel"
	"github.com/specialistvlad/burstplan/internal/dag"
	"github.com/specialistvlad/burstplan/internal/model"
	"github.com/specialistvlad/burstplan/internal/rank"
	"github.com/specialistvlad/burstplan/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uber-go/tally/v4"
)

type placement struct {
	resource      string
	start, finish float64
}

func placements(g *dag.Graph, pool *model.Pool, plan *Plan) map[string]placement {
	out := make(map[string]placement, g.Len())
	for _, ref := range g.Refs() {
		out[g.Task(ref).ID] = placement{
			resource: pool.Get(plan.ResourceOf(ref)).ID,
			start:    plan.Start[ref],
			finish:   plan.Finish[ref],
		}
	}
	return out
}

func TestHEFT_Diamond(t *testing.T) {
	ctx, logs := testutil.NewContext(t)
	g, pool := testutil.Diamond(t)

	plan, err := NewHEFT(nil).Plan(ctx, g, pool)
	require.NoError(t, err)
	require.NoError(t, Verify(g, plan))

	assert.Equal(t, map[string]placement{
		"A": {"fast", 0, 2},
		"B": {"fast", 2, 8},
		"C": {"slow", 3, 7},
		"D": {"fast", 9, 10},
	}, placements(g, pool, plan))
	assert.InDelta(t, 10.0, plan.Makespan(), 1e-9)
	assert.InDelta(t, 9.0, plan.Ready[testutil.Ref(t, g, "D")], 1e-9)
	assert.Empty(t, plan.Infeasible())

	var order []string
	for _, ref := range plan.Order {
		order = append(order, g.Task(ref).ID)
	}
	assert.Equal(t, []string{"A", "B", "C", "D"}, order)

	for _, ref := range g.Refs() {
		task := g.Task(ref)
		assert.True(t, task.Assigned(), "task %s has no resource", task.ID)
	}
	assert.Equal(t, "slow", g.Task(testutil.Ref(t, g, "C")).ResourceID)

	assert.Equal(t, 3, plan.Timelines.For(0).Len())
	assert.Equal(t, 1, plan.Timelines.For(1).Len())
	assert.Contains(t, logs.String(), "run_id="+plan.RunID.String())
}

func TestHEFT_SingleTask(t *testing.T) {
	ctx, _ := testutil.NewContext(t)
	g := testutil.Graph(t, []*model.Task{testutil.Task("only", 100)})
	pool := testutil.Pool(t, testutil.Resource("r", 50, 10))

	plan, err := NewHEFT(nil).Plan(ctx, g, pool)
	require.NoError(t, err)

	ref := testutil.Ref(t, g, "only")
	assert.Equal(t, model.ResourceRef(0), plan.ResourceOf(ref))
	assert.Equal(t, 0.0, plan.Start[ref])
	assert.InDelta(t, 2.0, plan.Finish[ref], 1e-9)
	assert.InDelta(t, 2.0, plan.Makespan(), 1e-9)
}

func TestHEFT_EmptyGraph(t *testing.T) {
	ctx, _ := testutil.NewContext(t)
	pool := testutil.Pool(t, testutil.Resource("r", 50, 10))

	plan, err := NewHEFT(nil).Plan(ctx, dag.New(), pool)
	require.NoError(t, err)
	assert.Equal(t, 0, plan.Len())
	assert.Equal(t, 0.0, plan.Makespan())
	assert.NoError(t, Verify(dag.New(), plan))
}

func TestHEFT_FillsGap(t *testing.T) {
	ctx, _ := testutil.NewContext(t)
	// Every resource runs 10 MIPS and moves 1 MB in one second. S is pushed
	// to r1 at t=2 by the transfer from P, leaving [0,2) free for Z.
	g := testutil.Graph(t,
		[]*model.Task{
			testutil.Task("P", 10, testutil.Out("pq", 1_000_000), testutil.Out("ps", 1_000_000)),
			testutil.Task("Z", 10),
			testutil.Task("Q", 100, testutil.In("pq", 1_000_000)),
			testutil.Task("S", 100, testutil.In("ps", 1_000_000)),
		},
		testutil.Edge{"P", "Q"}, testutil.Edge{"P", "S"},
	)
	pool := testutil.Pool(t, testutil.Resource("r0", 10, 8), testutil.Resource("r1", 10, 8))
	scope := tally.NewTestScope("", nil)

	plan, err := NewHEFT(scope).Plan(ctx, g, pool)
	require.NoError(t, err)
	require.NoError(t, Verify(g, plan))

	assert.Equal(t, map[string]placement{
		"P": {"r0", 0, 1},
		"Q": {"r0", 1, 11},
		"S": {"r1", 2, 12},
		"Z": {"r1", 0, 1},
	}, placements(g, pool, plan))

	r1 := plan.Timelines.For(1).Intervals()
	require.Len(t, r1, 2)
	assert.Equal(t, testutil.Ref(t, g, "Z"), r1[0].Task)
	assert.Equal(t, testutil.Ref(t, g, "S"), r1[1].Task)

	assert.Equal(t, int64(1), counter(t, scope, "plan.gap_fills"))
}

func TestHEFT_RankTiesKeepDiscoveryOrder(t *testing.T) {
	ctx, _ := testutil.NewContext(t)
	g := testutil.Graph(t,
		[]*model.Task{testutil.Task("a", 10), testutil.Task("b", 10), testutil.Task("c", 10)},
		testutil.Edge{"a", "b"},
	)
	pool := testutil.Pool(t, testutil.Resource("r0", 10, 1))

	plan, err := NewHEFT(nil).Plan(ctx, g, pool)
	require.NoError(t, err)
	require.NoError(t, Verify(g, plan))

	var order []string
	for _, ref := range plan.Order {
		order = append(order, g.Task(ref).ID)
	}
	assert.Equal(t, []string{"a", "b", "c"}, order)
	assert.Equal(t, map[string]placement{
		"a": {"r0", 0, 1},
		"b": {"r0", 1, 2},
		"c": {"r0", 2, 3},
	}, placements(g, pool, plan))
}

func TestHEFT_Infeasible(t *testing.T) {
	big := &model.Task{ID: "big", Length: 100, PEs: 4}

	t.Run("no resource has enough PEs", func(t *testing.T) {
		ctx, logs := testutil.NewContext(t)
		g := testutil.Graph(t, []*model.Task{big})
		pool := testutil.Pool(t, testutil.Resource("r0", 10, 8), testutil.Resource("r1", 100, 8))

		plan, err := NewHEFT(nil).Plan(ctx, g, pool)
		require.NoError(t, err)

		ref := testutil.Ref(t, g, "big")
		assert.Equal(t, model.ResourceRef(0), plan.ResourceOf(ref))
		assert.True(t, math.IsInf(plan.Finish[ref], 1))
		assert.Equal(t, []model.TaskRef{ref}, plan.Infeasible())
		assert.Equal(t, "r0", g.Task(ref).ResourceID)
		assert.Contains(t, logs.String(), "No resource can run task")
	})

	t.Run("only one resource fits", func(t *testing.T) {
		ctx, _ := testutil.NewContext(t)
		task := &model.Task{ID: "big", Length: 100, PEs: 4}
		g := testutil.Graph(t, []*model.Task{task})
		wide := testutil.Resource("wide", 10, 8)
		wide.PEs = 4
		pool := testutil.Pool(t, testutil.Resource("fast", 1000, 8), wide)

		plan, err := NewHEFT(nil).Plan(ctx, g, pool)
		require.NoError(t, err)

		ref := testutil.Ref(t, g, "big")
		assert.Equal(t, model.ResourceRef(1), plan.ResourceOf(ref))
		assert.InDelta(t, 10.0, plan.Finish[ref], 1e-9)
		assert.Empty(t, plan.Infeasible())
	})
}

func TestHEFT_Errors(t *testing.T) {
	ctx, _ := testutil.NewContext(t)

	t.Run("empty pool", func(t *testing.T) {
		g := testutil.Graph(t, []*model.Task{testutil.Task("a", 1)})
		_, err := NewHEFT(nil).Plan(ctx, g, testutil.Pool(t))
		require.Error(t, err)
		assert.ErrorIs(t, err, costmodel.ErrEmptyPool)
	})

	t.Run("nil pool", func(t *testing.T) {
		g := testutil.Graph(t, []*model.Task{testutil.Task("a", 1)})
		_, err := NewHEFT(nil).Plan(ctx, g, nil)
		require.Error(t, err)
	})

	t.Run("cycle", func(t *testing.T) {
		g := dag.New()
		for _, id := range []string{"a", "b"} {
			_, err := g.AddTask(testutil.Task(id, 1))
			require.NoError(t, err)
		}
		require.NoError(t, g.AddEdge("a", "b"))
		require.NoError(t, g.AddEdge("b", "a"))

		_, err := NewHEFT(nil).Plan(ctx, g, testutil.Pool(t, testutil.Resource("r", 1, 1)))
		require.Error(t, err)
		assert.ErrorIs(t, err, rank.ErrCycle)
	})

	t.Run("cancelled context", func(t *testing.T) {
		cctx, cancel := context.WithCancel(ctx)
		cancel()
		g, pool := testutil.Diamond(t)
		_, err := NewHEFT(nil).Plan(cctx, g, pool)
		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestHEFT_Metrics(t *testing.T) {
	ctx, _ := testutil.NewContext(t)
	scope := tally.NewTestScope("", nil)
	h := NewHEFT(scope)

	g, pool := testutil.Diamond(t)
	_, err := h.Plan(ctx, g, pool)
	require.NoError(t, err)
	_, err = h.Plan(ctx, g, testutil.Pool(t))
	require.Error(t, err)

	assert.Equal(t, int64(1), counter(t, scope, "plan.runs"))
	assert.Equal(t, int64(1), counter(t, scope, "plan.runs_fail"))
	assert.Equal(t, int64(4), counter(t, scope, "plan.tasks"))
	assert.Equal(t, int64(0), counter(t, scope, "plan.infeasible"))
	assert.InDelta(t, 10.0, gauge(t, scope, "plan.makespan"), 1e-9)
}

func TestVerify(t *testing.T) {
	ctx, _ := testutil.NewContext(t)
	g, pool := testutil.Diamond(t)
	plan, err := NewHEFT(nil).Plan(ctx, g, pool)
	require.NoError(t, err)

	d := testutil.Ref(t, g, "D")
	plan.Start[d] = 8.5

	err = Verify(g, plan)
	require.Error(t, err)
	msg := err.Error()
	assert.Contains(t, msg, "task 'D' starts at 8.5 before it is ready at 9")
	assert.Contains(t, msg, "before input from 'C' arrives at 9")
	assert.False(t, strings.Contains(msg, "from 'B'"), "B ran on the same resource and finished at 8")

	assert.Error(t, Verify(g, nil))
	assert.Error(t, Verify(testutil.Graph(t, []*model.Task{testutil.Task("x", 1)}), plan))
}

func counter(t *testing.T, scope tally.TestScope, name string) int64 {
	t.Helper()
	var total int64
	for _, c := range scope.Snapshot().Counters() {
		if c.Name() == name {
			total += c.Value()
		}
	}
	return total
}

func gauge(t *testing.T, scope tally.TestScope, name string) float64 {
	t.Helper()
	for _, g := range scope.Snapshot().Gauges() {
		if g.Name() == name {
			return g.Value()
		}
	}
	t.Fatalf("gauge %q not reported", name)
	return 0
}
