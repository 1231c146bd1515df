package yaml_adapter

// fileRoot is the document layout of one YAML problem file.
type fileRoot struct {
	Settings  *Settings   `yaml:"settings"`
	Resources []*Resource `yaml:"resources"`
	Tasks     []*Task     `yaml:"tasks"`
}

// Settings maps the `settings` section.
type Settings struct {
	Planner string `yaml:"planner" validate:"regexp=^(heft|none)?$"`
	Matcher string `yaml:"matcher" validate:"regexp=^(minmin|static|none)?$"`
}

// Resource maps an entry of `resources`.
type Resource struct {
	Name          string  `yaml:"name" validate:"nonzero"`
	MIPS          float64 `yaml:"mips" validate:"nonzero"`
	PEs           *int    `yaml:"pes"`
	Bandwidth     float64 `yaml:"bandwidth" validate:"nonzero"`
	State         string  `yaml:"state" validate:"regexp=^(idle|busy)?$"`
	RequestedLoad float64 `yaml:"requested_load" validate:"min=0"`
}

// Task maps an entry of `tasks`.
type Task struct {
	Name      string   `yaml:"name" validate:"nonzero"`
	Length    float64  `yaml:"length" validate:"min=0"`
	PEs       *int     `yaml:"pes"`
	DependsOn []string `yaml:"depends_on"`
	Files     []*File  `yaml:"files"`
}

// File maps an entry of a task's `files`. Size is in bytes.
type File struct {
	Name string `yaml:"name" validate:"nonzero"`
	Size int64  `yaml:"size" validate:"min=0"`
	Kind string `yaml:"kind" validate:"regexp=^(input|in|output|out)$"`
}
