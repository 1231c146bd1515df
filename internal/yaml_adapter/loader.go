package yaml_adapter

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"sort"

	"github.com/specialistvlad/burstplan/internal/config"
	"github.com/specialistvlad/burstplan/internal/ctxlog"
	"github.com/specialistvlad/burstplan/internal/fsutil"
	"gopkg.in/validator.v2"
	"gopkg.in/yaml.v2"
)

// Extensions are the file extensions the loader picks up.
var Extensions = []string{".yaml", ".yml"}

// ValidationError is returned when an entry fails to pass validation.
type ValidationError struct {
	errorMap validator.ErrorMap
}

// ErrForField returns the validation error for the given field.
func (e ValidationError) ErrForField(name string) error {
	if err, ok := e.errorMap[name]; ok {
		return err
	}
	return nil
}

// Error returns the failing fields in name order.
func (e ValidationError) Error() string {
	fields := make([]string, 0, len(e.errorMap))
	for f := range e.errorMap {
		fields = append(fields, f)
	}
	sort.Strings(fields)

	var w bytes.Buffer
	fmt.Fprintf(&w, "validation failed")
	for _, f := range fields {
		fmt.Fprintf(&w, "; %s: %v", f, e.errorMap[f])
	}
	return w.String()
}

// Loader is the YAML implementation of the config.Loader interface.
type Loader struct{}

var _ config.Loader = (*Loader)(nil)

// NewLoader creates a new YAML configuration loader.
func NewLoader() *Loader {
	return &Loader{}
}

// Load reads every YAML file found under paths in lexical order. Resources
// and tasks of all files are concatenated; a later `settings` section
// overrides earlier ones field by field.
func (l *Loader) Load(ctx context.Context, paths ...string) (*config.Model, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("YAML loader started.", "path_count", len(paths))

	files, err := fsutil.CollectFiles(paths, Extensions...)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no %v files found in %v", Extensions, paths)
	}
	logger.Debug("Discovered YAML files.", "count", len(files))

	model := config.NewModel()
	for _, file := range files {
		root, err := parseFile(file)
		if err != nil {
			return nil, err
		}
		if root.Settings != nil {
			model.Settings.Merge(&config.Settings{Planner: root.Settings.Planner, Matcher: root.Settings.Matcher})
		}
		for _, r := range root.Resources {
			model.Resources = append(model.Resources, translateResource(r))
		}
		for _, t := range root.Tasks {
			model.Tasks = append(model.Tasks, translateTask(t))
		}
		logger.Debug("Decoded YAML file.", "file", file, "tasks", len(root.Tasks), "resources", len(root.Resources))
	}

	logger.Debug("YAML loading complete.",
		"tasks", len(model.Tasks),
		"resources", len(model.Resources),
		"planner", model.Settings.Planner,
		"matcher", model.Settings.Matcher,
	)
	return model, nil
}

func parseFile(file string) (*fileRoot, error) {
	data, err := os.ReadFile(file)
	if err != nil {
		return nil, err
	}

	var root fileRoot
	if err := yaml.UnmarshalStrict(data, &root); err != nil {
		return nil, fmt.Errorf("failed to decode YAML file %s: %w", file, err)
	}

	if root.Settings != nil {
		if err := validate(root.Settings); err != nil {
			return nil, fmt.Errorf("%s: settings: %w", file, err)
		}
	}
	for i, r := range root.Resources {
		if r == nil {
			return nil, fmt.Errorf("%s: resource #%d is empty", file, i)
		}
		if err := validate(r); err != nil {
			return nil, fmt.Errorf("%s: resource #%d (%s): %w", file, i, r.Name, err)
		}
	}
	for i, t := range root.Tasks {
		if t == nil {
			return nil, fmt.Errorf("%s: task #%d is empty", file, i)
		}
		if err := validate(t); err != nil {
			return nil, fmt.Errorf("%s: task #%d (%s): %w", file, i, t.Name, err)
		}
		for j, f := range t.Files {
			if f == nil {
				return nil, fmt.Errorf("%s: task '%s': file #%d is empty", file, t.Name, j)
			}
			if err := validate(f); err != nil {
				return nil, fmt.Errorf("%s: task '%s': file #%d (%s): %w", file, t.Name, j, f.Name, err)
			}
		}
	}
	return &root, nil
}

func validate(v interface{}) error {
	err := validator.Validate(v)
	if err == nil {
		return nil
	}
	if errs, ok := err.(validator.ErrorMap); ok {
		return ValidationError{errorMap: errs}
	}
	return err
}

func translateResource(r *Resource) *config.Resource {
	return &config.Resource{
		Name:          r.Name,
		MIPS:          r.MIPS,
		PEs:           pesOrDefault(r.PEs),
		Bandwidth:     r.Bandwidth,
		State:         r.State,
		RequestedLoad: r.RequestedLoad,
	}
}

func translateTask(t *Task) *config.Task {
	out := &config.Task{
		Name:      t.Name,
		Length:    t.Length,
		PEs:       pesOrDefault(t.PEs),
		DependsOn: t.DependsOn,
	}
	for _, f := range t.Files {
		out.Files = append(out.Files, &config.File{Name: f.Name, Size: f.Size, Kind: f.Kind})
	}
	return out
}

// pesOrDefault gives an omitted `pes` key one processing element. An explicit
// value, zero included, is kept for model validation to judge.
func pesOrDefault(pes *int) int {
	if pes == nil {
		return 1
	}
	return *pes
}
