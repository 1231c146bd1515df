package dag

import (
	"context"
	"fmt"

	"github.com/hashicorp/go-multierror"
	"github.com/specialistvlad/burstplan/internal/config"
	"github.com/specialistvlad/burstplan/internal/ctxlog"
	"github.com/specialistvlad/burstplan/internal/model"
)

// Build constructs a complete, validated dependency graph and resource pool
// from a config model.
func Build(ctx context.Context, m *config.Model) (*Graph, *model.Pool, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Build: Starting graph construction.")
	graph := New()

	// First pass: create all tasks.
	if err := createTasks(ctx, m.Tasks, graph); err != nil {
		return nil, nil, fmt.Errorf("invalid tasks: %w", err)
	}
	logger.Debug("Build: Task creation complete.", "task_count", graph.Len())

	pool, err := createPool(m.Resources)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid resources: %w", err)
	}
	logger.Debug("Build: Resource pool created.", "resource_count", pool.Len())

	// Second pass: link dependencies.
	if err := linkExplicitDeps(ctx, m.Tasks, graph); err != nil {
		return nil, nil, err
	}
	linkImplicitDeps(ctx, graph)
	logger.Debug("Build: Task linking complete.", "edge_count", graph.EdgeCount())

	if err := graph.DetectCycles(); err != nil {
		return nil, nil, fmt.Errorf("error validating dependency graph: %w", err)
	}
	logger.Debug("Build: Cycle detection passed.")

	logger.Debug("Build: Graph construction successful.")
	return graph, pool, nil
}

// createTasks performs the first pass of graph creation.
func createTasks(ctx context.Context, tasks []*config.Task, graph *Graph) error {
	logger := ctxlog.FromContext(ctx)
	var result *multierror.Error
	for _, ct := range tasks {
		t, err := translateTask(ct)
		if err != nil {
			result = multierror.Append(result, err)
			continue
		}
		if _, err := graph.AddTask(t); err != nil {
			result = multierror.Append(result, err)
			continue
		}
		logger.Debug("Created task.", "id", t.ID, "length", t.Length, "pes", t.PEs, "files", len(t.Files))
	}
	return result.ErrorOrNil()
}

func translateTask(ct *config.Task) (*model.Task, error) {
	t := &model.Task{
		ID:     ct.Name,
		Length: ct.Length,
		PEs:    ct.PEs,
	}
	for _, f := range ct.Files {
		kind, err := model.ParseFileKind(f.Kind)
		if err != nil {
			return nil, fmt.Errorf("task '%s', file '%s': %w", ct.Name, f.Name, err)
		}
		t.Files = append(t.Files, model.FileItem{Name: f.Name, Size: f.Size, Kind: kind})
	}
	return t, nil
}

func createPool(resources []*config.Resource) (*model.Pool, error) {
	var result *multierror.Error
	out := make([]*model.Resource, 0, len(resources))
	for _, cr := range resources {
		state, err := model.ParseResourceState(cr.State)
		if err != nil {
			result = multierror.Append(result, fmt.Errorf("resource '%s': %w", cr.Name, err))
			continue
		}
		out = append(out, &model.Resource{
			ID:            cr.Name,
			MIPS:          cr.MIPS,
			PEs:           cr.PEs,
			Bandwidth:     cr.Bandwidth,
			State:         state,
			RequestedLoad: cr.RequestedLoad,
		})
	}
	if err := result.ErrorOrNil(); err != nil {
		return nil, err
	}
	return model.NewPool(out...)
}
