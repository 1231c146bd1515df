// This file defines the HCL schema of a problem file. gohcl decodes every
// top-level block into these structs before they are translated into the
// format-agnostic config model.

package hcl_adapter

// fileRoot is a struct used to decode all possible top-level blocks from any file.
type fileRoot struct {
	Settings  []*Settings `hcl:"settings,block"`
	Resources []*Resource `hcl:"resource,block"`
	Tasks     []*Task     `hcl:"task,block"`
}

// Settings maps a `settings` block.
type Settings struct {
	Planner *string `hcl:"planner,optional"`
	Matcher *string `hcl:"matcher,optional"`
}

// Resource maps a `resource "<id>"` block.
type Resource struct {
	Name          string   `hcl:"name,label"`
	MIPS          float64  `hcl:"mips"`
	PEs           *int     `hcl:"pes,optional"`
	Bandwidth     float64  `hcl:"bandwidth"`
	State         *string  `hcl:"state,optional"`
	RequestedLoad *float64 `hcl:"requested_load,optional"`
}

// Task maps a `task "<id>"` block.
type Task struct {
	Name      string   `hcl:"name,label"`
	Length    float64  `hcl:"length"`
	PEs       *int     `hcl:"pes,optional"`
	DependsOn []string `hcl:"depends_on,optional"`
	Files     []*File  `hcl:"file,block"`
}

// File maps a task's `file "<name>"` block. Size is in bytes.
type File struct {
	Name string `hcl:"name,label"`
	Size int64  `hcl:"size"`
	Kind string `hcl:"kind"`
}
