// This file contains the logic for translating HCL schema structs (from
// gohcl) into the format-agnostic configuration model defined in the
// config package.

package hcl_adapter

import (
	"context"

	"github.com/specialistvlad/burstplan/internal/config"
	"github.com/specialistvlad/burstplan/internal/ctxlog"
)

// translateSettings converts a settings block; omitted attributes stay empty
// so that merging keeps earlier values.
func translateSettings(s *Settings) *config.Settings {
	out := &config.Settings{}
	if s.Planner != nil {
		out.Planner = *s.Planner
	}
	if s.Matcher != nil {
		out.Matcher = *s.Matcher
	}
	return out
}

// translateResource converts the HCL-specific resource schema into the agnostic model.
func translateResource(r *Resource) *config.Resource {
	out := &config.Resource{
		Name:      r.Name,
		MIPS:      r.MIPS,
		PEs:       1,
		Bandwidth: r.Bandwidth,
	}
	if r.PEs != nil {
		out.PEs = *r.PEs
	}
	if r.State != nil {
		out.State = *r.State
	}
	if r.RequestedLoad != nil {
		out.RequestedLoad = *r.RequestedLoad
	}
	return out
}

// translateTask converts the HCL-specific task schema into the agnostic model.
func translateTask(ctx context.Context, t *Task) *config.Task {
	_, logger := ctxlog.With(ctx, "task", t.Name)
	logger.Debug("Translating HCL task to internal config model.", "files", len(t.Files), "depends_on", t.DependsOn)

	out := &config.Task{
		Name:      t.Name,
		Length:    t.Length,
		PEs:       1,
		DependsOn: t.DependsOn,
	}
	if t.PEs != nil {
		out.PEs = *t.PEs
	}
	for _, f := range t.Files {
		out.Files = append(out.Files, &config.File{Name: f.Name, Size: f.Size, Kind: f.Kind})
	}
	return out
}
