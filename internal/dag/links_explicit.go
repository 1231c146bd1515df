package dag

import (
	"context"
	"fmt"

	"github.com/specialistvlad/burstplan/internal/config"
	"github.com/specialistvlad/burstplan/internal/ctxlog"
)

// linkExplicitDeps creates an edge for every `depends_on` entry.
func linkExplicitDeps(ctx context.Context, tasks []*config.Task, graph *Graph) error {
	logger := ctxlog.FromContext(ctx)
	for _, ct := range tasks {
		for _, dep := range ct.DependsOn {
			if _, ok := graph.Lookup(dep); !ok {
				return fmt.Errorf("task '%s' depends on unknown task '%s'", ct.Name, dep)
			}
			if err := graph.AddEdge(dep, ct.Name); err != nil {
				return fmt.Errorf("task '%s': %w", ct.Name, err)
			}
			logger.Debug("Linking explicit dependency.", "from", dep, "to", ct.Name)
		}
	}
	return nil
}
