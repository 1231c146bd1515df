package app

import (
	"fmt"
	"io"
	"math"
	"text/tabwriter"

	"github.com/specialistvlad/burstplan/internal/dag"
	"github.com/specialistvlad/burstplan/internal/model"
	"github.com/specialistvlad/burstplan/internal/scheduler"
	"gopkg.in/yaml.v2"
)

// Report summarizes one run.
type Report struct {
	RunID   string `yaml:"run_id,omitempty"`
	Planner string `yaml:"planner"`
	Matcher string `yaml:"matcher"`

	// Makespan is nil when no plan was made.
	Makespan   *float64      `yaml:"makespan,omitempty"`
	Tasks      []TaskReport     `yaml:"tasks,omitempty"`
	Resources  []ResourceReport `yaml:"resources,omitempty"`
	Infeasible []string         `yaml:"infeasible,omitempty"`
	Matches    []MatchReport    `yaml:"matches,omitempty"`
}

// TaskReport is one planned task, in placement order.
type TaskReport struct {
	ID       string  `yaml:"id"`
	Resource string  `yaml:"resource"`
	Rank     float64 `yaml:"rank"`
	Ready    float64 `yaml:"ready"`
	Start    float64 `yaml:"start"`
	Finish   float64 `yaml:"finish"`
}

// ResourceReport is the planned load of one resource. Utilization is the
// busy share of the makespan.
type ResourceReport struct {
	ID          string  `yaml:"id"`
	Tasks       int     `yaml:"tasks"`
	Busy        float64 `yaml:"busy"`
	End         float64 `yaml:"end"`
	Utilization float64 `yaml:"utilization"`
}

// MatchReport is one assignment of the matching round.
type MatchReport struct {
	Task     string `yaml:"task"`
	Resource string `yaml:"resource"`
}

func (r *Report) addPlan(g *dag.Graph, pool *model.Pool, plan *scheduler.Plan) {
	r.RunID = plan.RunID.String()
	makespan := plan.Makespan()
	r.Makespan = &makespan

	for _, t := range plan.Order {
		r.Tasks = append(r.Tasks, TaskReport{
			ID:       g.Task(t).ID,
			Resource: pool.Get(plan.ResourceOf(t)).ID,
			Rank:     plan.Ranks.Of(t),
			Ready:    plan.Ready[t],
			Start:    plan.Start[t],
			Finish:   plan.Finish[t],
		})
	}
	for i, res := range pool.All() {
		tl := plan.Timelines.For(model.ResourceRef(i))
		rr := ResourceReport{ID: res.ID, Tasks: tl.Len(), Busy: tl.Busy(), End: tl.End()}
		if makespan > 0 && !math.IsInf(makespan, 1) {
			rr.Utilization = rr.Busy / makespan
		}
		r.Resources = append(r.Resources, rr)
	}
	for _, t := range plan.Infeasible() {
		r.Infeasible = append(r.Infeasible, g.Task(t).ID)
	}
}

func (r *Report) addMatches(matches []scheduler.Match) {
	for _, m := range matches {
		r.Matches = append(r.Matches, MatchReport{Task: m.Task.ID, Resource: m.Resource.ID})
	}
}

// Write renders the report as text or YAML.
func (r *Report) Write(w io.Writer, format string) error {
	switch format {
	case ReportYAML:
		out, err := yaml.Marshal(r)
		if err != nil {
			return err
		}
		_, err = w.Write(out)
		return err
	case ReportText, "":
		return r.writeText(w)
	default:
		return fmt.Errorf("unknown report format '%s'", format)
	}
}

func (r *Report) writeText(w io.Writer) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)

	fmt.Fprintf(tw, "planner:\t%s\n", r.Planner)
	fmt.Fprintf(tw, "matcher:\t%s\n", r.Matcher)
	if r.RunID != "" {
		fmt.Fprintf(tw, "run:\t%s\n", r.RunID)
	}
	if r.Makespan != nil {
		fmt.Fprintf(tw, "makespan:\t%g\n", *r.Makespan)
	}

	if len(r.Tasks) > 0 {
		fmt.Fprintln(tw)
		fmt.Fprintln(tw, "TASK\tRESOURCE\tRANK\tREADY\tSTART\tFINISH")
		for _, t := range r.Tasks {
			fmt.Fprintf(tw, "%s\t%s\t%g\t%g\t%g\t%g\n", t.ID, t.Resource, t.Rank, t.Ready, t.Start, t.Finish)
		}
	}
	if len(r.Resources) > 0 {
		fmt.Fprintln(tw)
		fmt.Fprintln(tw, "RESOURCE\tTASKS\tBUSY\tEND\tUTILIZATION")
		for _, rr := range r.Resources {
			fmt.Fprintf(tw, "%s\t%d\t%g\t%g\t%.2f\n", rr.ID, rr.Tasks, rr.Busy, rr.End, rr.Utilization)
		}
	}
	for _, id := range r.Infeasible {
		fmt.Fprintf(tw, "warning:\ttask %s has no resource with enough processing elements\n", id)
	}

	if len(r.Matches) > 0 {
		fmt.Fprintln(tw)
		fmt.Fprintln(tw, "MATCHED TASK\tRESOURCE")
		for _, m := range r.Matches {
			fmt.Fprintf(tw, "%s\t%s\n", m.Task, m.Resource)
		}
	}
	return tw.Flush()
}
