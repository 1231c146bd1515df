package scheduler

import (
	"github.com/uber-go/tally/v4"
)

// Metrics contains all the metrics relevant to the scheduling strategies.
type Metrics struct {
	// PlanRuns counts completed planning runs.
	PlanRuns tally.Counter
	// PlanFail counts planning runs that returned an error.
	PlanFail tally.Counter
	// TasksPlanned counts tasks placed by planners.
	TasksPlanned tally.Counter
	// GapFills counts placements that landed in a hole of a timeline rather
	// than after its last reservation.
	GapFills tally.Counter
	// InfeasiblePlacements counts tasks that could only be placed on a
	// resource lacking the processing elements they need.
	InfeasiblePlacements tally.Counter
	// Makespan is the makespan of the latest plan, in seconds.
	Makespan tally.Gauge
	// PlanLatency measures how long planning runs take.
	PlanLatency tally.Timer

	// MatchRounds counts matching rounds.
	MatchRounds tally.Counter
	// TasksMatched counts tasks assigned by matchers.
	TasksMatched tally.Counter
	// TasksUnmatched counts ready tasks left for a later round.
	TasksUnmatched tally.Counter
}

// NewMetrics returns a new Metrics struct with all metrics initialized and
// rooted below the given tally scope.
func NewMetrics(scope tally.Scope) *Metrics {
	planScope := scope.SubScope("plan")
	matchScope := scope.SubScope("match")

	return &Metrics{
		PlanRuns:             planScope.Counter("runs"),
		PlanFail:             planScope.Counter("runs_fail"),
		TasksPlanned:         planScope.Counter("tasks"),
		GapFills:             planScope.Counter("gap_fills"),
		InfeasiblePlacements: planScope.Counter("infeasible"),
		Makespan:             planScope.Gauge("makespan"),
		PlanLatency:          planScope.Timer("latency"),

		MatchRounds:    matchScope.Counter("rounds"),
		TasksMatched:   matchScope.Counter("matched"),
		TasksUnmatched: matchScope.Counter("unmatched"),
	}
}
