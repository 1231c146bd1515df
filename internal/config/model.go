package config

// Strategy names accepted in Settings.
const (
	PlannerHEFT = "heft"
	PlannerNone = "none"

	MatcherMinMin = "minmin"
	MatcherStatic = "static"
	MatcherNone   = "none"
)

// Model is the unified, format-agnostic representation of one problem
// instance.
type Model struct {
	Settings  *Settings
	Tasks     []*Task
	Resources []*Resource
}

// NewModel returns an empty model with default settings.
func NewModel() *Model {
	return &Model{Settings: DefaultSettings()}
}

// Settings selects the strategies used for a run.
type Settings struct {
	Planner string
	Matcher string
}

// DefaultSettings plans with HEFT and runs no matcher.
func DefaultSettings() *Settings {
	return &Settings{Planner: PlannerHEFT, Matcher: MatcherNone}
}

// Merge overrides s with the non-empty fields of other.
func (s *Settings) Merge(other *Settings) {
	if other == nil {
		return
	}
	if other.Planner != "" {
		s.Planner = other.Planner
	}
	if other.Matcher != "" {
		s.Matcher = other.Matcher
	}
}

// Task is the format-agnostic representation of a `task` block.
type Task struct {
	Name      string
	Length    float64
	PEs       int
	DependsOn []string
	Files     []*File
}

// File is the format-agnostic representation of a task's `file` block.
type File struct {
	Name string
	Size int64
	Kind string
}

// Resource is the format-agnostic representation of a `resource` block.
type Resource struct {
	Name          string
	MIPS          float64
	PEs           int
	Bandwidth     float64
	State         string
	RequestedLoad float64
}
