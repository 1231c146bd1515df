package dag

import "github.com/specialistvlad/burstplan/internal/model"

// ReadyTasks returns, in discovery order, the tasks that are not done and
// whose parents are all done. With an empty done set this is Roots.
func ReadyTasks(g *Graph, done map[model.TaskRef]bool) []model.TaskRef {
	var out []model.TaskRef
	for _, ref := range g.Refs() {
		if done[ref] {
			continue
		}
		ready := true
		for _, p := range g.Parents(ref) {
			if !done[p] {
				ready = false
				break
			}
		}
		if ready {
			out = append(out, ref)
		}
	}
	return out
}
