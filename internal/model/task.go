// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// This file defines Task, the node type of the workflow graph.

package model

import (
	"errors"
	"fmt"

	"github.com/hashicorp/go-multierror"
)

// TaskRef is a stable handle to a task inside a dag.Graph.
type TaskRef int

// Task is a unit of work to be placed on a resource.
type Task struct {
	ID string
	// Length is the workload in instructions (MI).
	Length float64
	// PEs is the number of processing elements the task needs.
	PEs   int
	Files []FileItem

	// ResourceID is empty until a planner or a matcher assigns the task.
	ResourceID string
}

// Assigned reports whether the task has been placed.
func (t *Task) Assigned() bool {
	return t.ResourceID != ""
}

// Inputs returns the task's input files in declaration order.
func (t *Task) Inputs() []FileItem {
	return t.filesOf(FileInput)
}

// Outputs returns the task's output files in declaration order.
func (t *Task) Outputs() []FileItem {
	return t.filesOf(FileOutput)
}

func (t *Task) filesOf(kind FileKind) []FileItem {
	var out []FileItem
	for _, f := range t.Files {
		if f.Kind == kind {
			out = append(out, f)
		}
	}
	return out
}

// Validate checks the static attributes of a task and reports every problem
// found.
func (t *Task) Validate() error {
	var result *multierror.Error
	if t.ID == "" {
		result = multierror.Append(result, errors.New("task id must not be empty"))
	}
	if t.Length < 0 {
		result = multierror.Append(result, fmt.Errorf("task '%s': length must not be negative, got %g", t.ID, t.Length))
	}
	if t.PEs < 1 {
		result = multierror.Append(result, fmt.Errorf("task '%s': pes must be at least 1, got %d", t.ID, t.PEs))
	}
	for _, f := range t.Files {
		if f.Name == "" {
			result = multierror.Append(result, fmt.Errorf("task '%s': file name must not be empty", t.ID))
		}
		if f.Size < 0 {
			result = multierror.Append(result, fmt.Errorf("task '%s': file '%s' has negative size %d", t.ID, f.Name, f.Size))
		}
	}
	return result.ErrorOrNil()
}
