package dag

import (
	"context"

	"github.com/specialistvlad/burstplan/internal/ctxlog"
	"github.com/specialistvlad/burstplan/internal/model"
)

// linkImplicitDeps links every producer of a file to every task that reads
// it. A task never becomes its own parent through a file it both writes and
// reads.
func linkImplicitDeps(ctx context.Context, graph *Graph) {
	logger := ctxlog.FromContext(ctx)

	producers := make(map[string][]model.TaskRef)
	for _, ref := range graph.Refs() {
		for _, f := range graph.Task(ref).Outputs() {
			producers[f.Name] = append(producers[f.Name], ref)
		}
	}

	for _, ref := range graph.Refs() {
		child := graph.Task(ref)
		for _, in := range child.Inputs() {
			for _, p := range producers[in.Name] {
				if p == ref {
					continue
				}
				parent := graph.Task(p)
				if graph.HasEdge(p, ref) {
					continue
				}
				// Both ids come from the graph and differ, so this cannot fail.
				_ = graph.AddEdge(parent.ID, child.ID)
				logger.Debug("Linking implicit dependency.", "from", parent.ID, "to", child.ID, "file", in.Name)
			}
		}
	}
}
