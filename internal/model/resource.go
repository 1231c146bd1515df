// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// This file defines Resource, the execution unit tasks are placed on.

package model

import (
	"errors"
	"fmt"

	"github.com/hashicorp/go-multierror"
)

// ResourceRef is a stable handle to a resource inside a Pool.
type ResourceRef int

// NoResource is the ResourceRef of an unassigned task.
const NoResource ResourceRef = -1

// ResourceState is the live availability of a resource.
type ResourceState int

const (
	// ResourceIdle means the resource can accept a task this round.
	ResourceIdle ResourceState = iota
	// ResourceBusy means the resource is running a task.
	ResourceBusy
)

// String implements fmt.Stringer.
func (s ResourceState) String() string {
	switch s {
	case ResourceIdle:
		return "idle"
	case ResourceBusy:
		return "busy"
	default:
		return fmt.Sprintf("ResourceState(%d)", int(s))
	}
}

// ParseResourceState converts a configuration string into a ResourceState.
// The empty string means idle.
func ParseResourceState(s string) (ResourceState, error) {
	switch s {
	case "", "idle":
		return ResourceIdle, nil
	case "busy":
		return ResourceBusy, nil
	default:
		return 0, fmt.Errorf("unknown resource state %q: must be 'idle' or 'busy'", s)
	}
}

// Resource is an execution unit with static capabilities and live state.
type Resource struct {
	ID string
	// MIPS is the processing speed in million instructions per second.
	MIPS float64
	// PEs is the number of processing elements.
	PEs int
	// Bandwidth is the network bandwidth in Mbit/s.
	Bandwidth float64

	// State and RequestedLoad are owned by the dynamic matcher and the engine
	// driving it.
	State         ResourceState
	RequestedLoad float64
}

// Idle reports whether the resource can accept a task.
func (r *Resource) Idle() bool {
	return r.State == ResourceIdle
}

// Validate checks the static capabilities of a resource.
func (r *Resource) Validate() error {
	var result *multierror.Error
	if r.ID == "" {
		result = multierror.Append(result, errors.New("resource id must not be empty"))
	}
	if r.MIPS <= 0 {
		result = multierror.Append(result, fmt.Errorf("resource '%s': mips must be positive, got %g", r.ID, r.MIPS))
	}
	if r.PEs < 1 {
		result = multierror.Append(result, fmt.Errorf("resource '%s': pes must be at least 1, got %d", r.ID, r.PEs))
	}
	if r.Bandwidth <= 0 {
		result = multierror.Append(result, fmt.Errorf("resource '%s': bandwidth must be positive, got %g", r.ID, r.Bandwidth))
	}
	if r.RequestedLoad < 0 {
		result = multierror.Append(result, fmt.Errorf("resource '%s': requested load must not be negative, got %g", r.ID, r.RequestedLoad))
	}
	return result.ErrorOrNil()
}
