// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// This file defines FileItem, the unit of data exchanged between tasks.

package model

import "fmt"

// FileKind tells whether a task consumes or produces a file.
type FileKind int

const (
	// FileInput is a file read by the task.
	FileInput FileKind = iota
	// FileOutput is a file written by the task.
	FileOutput
)

// String implements fmt.Stringer.
func (k FileKind) String() string {
	switch k {
	case FileInput:
		return "input"
	case FileOutput:
		return "output"
	default:
		return fmt.Sprintf("FileKind(%d)", int(k))
	}
}

// ParseFileKind converts a configuration string into a FileKind.
func ParseFileKind(s string) (FileKind, error) {
	switch s {
	case "input", "in":
		return FileInput, nil
	case "output", "out":
		return FileOutput, nil
	default:
		return 0, fmt.Errorf("unknown file kind %q: must be 'input' or 'output'", s)
	}
}

// FileItem is a file attached to a task. Size is in bytes.
type FileItem struct {
	Name string
	Size int64
	Kind FileKind
}

// Matches reports whether parent produces the file child consumes.
func Matches(parent, child FileItem) bool {
	return parent.Kind == FileOutput && child.Kind == FileInput && parent.Name == child.Name
}
