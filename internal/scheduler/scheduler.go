package scheduler

import (
	"fmt"

	"github.com/specialistvlad/burstplan/internal/config"
	"github.com/uber-go/tally/v4"
)

// NewPlanner returns the planner registered under name. The "none" planner
// yields a nil Planner: the run goes straight to matching.
func NewPlanner(name string, scope tally.Scope) (Planner, error) {
	switch name {
	case config.PlannerHEFT:
		return NewHEFT(scope), nil
	case config.PlannerNone:
		return nil, nil
	default:
		return nil, fmt.Errorf("unknown planner '%s'", name)
	}
}

// NewMatcher returns the matcher registered under name, nil for "none".
func NewMatcher(name string, scope tally.Scope) (Matcher, error) {
	switch name {
	case config.MatcherMinMin:
		return NewMinMin(scope), nil
	case config.MatcherStatic:
		return NewStatic(scope), nil
	case config.MatcherNone:
		return nil, nil
	default:
		return nil, fmt.Errorf("unknown matcher '%s'", name)
	}
}
