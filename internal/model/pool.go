// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// This file defines Pool, the ordered arena of resources of one problem
// instance.

package model

import (
	"fmt"

	"github.com/hashicorp/go-multierror"
)

// Pool is an ordered, validated collection of resources. The order in which
// resources were given is preserved and is the tie-break order of every
// strategy.
type Pool struct {
	resources []*Resource
	index     map[string]ResourceRef
}

// NewPool validates the resources and returns a pool holding them. All
// validation problems are reported together.
func NewPool(resources ...*Resource) (*Pool, error) {
	p := &Pool{
		resources: make([]*Resource, 0, len(resources)),
		index:     make(map[string]ResourceRef, len(resources)),
	}

	var result *multierror.Error
	for i, r := range resources {
		if r == nil {
			result = multierror.Append(result, fmt.Errorf("resource #%d is nil", i))
			continue
		}
		if err := r.Validate(); err != nil {
			result = multierror.Append(result, err)
			continue
		}
		if _, exists := p.index[r.ID]; exists {
			result = multierror.Append(result, fmt.Errorf("duplicate resource id '%s'", r.ID))
			continue
		}
		p.index[r.ID] = ResourceRef(len(p.resources))
		p.resources = append(p.resources, r)
	}

	if err := result.ErrorOrNil(); err != nil {
		return nil, err
	}
	return p, nil
}

// Len returns the number of resources.
func (p *Pool) Len() int {
	return len(p.resources)
}

// Get returns the resource behind ref. It panics on an out-of-range ref,
// like a slice index would.
func (p *Pool) Get(ref ResourceRef) *Resource {
	return p.resources[ref]
}

// Lookup finds a resource by its ID.
func (p *Pool) Lookup(id string) (ResourceRef, bool) {
	ref, ok := p.index[id]
	return ref, ok
}

// All returns the resources in pool order. The slice is a copy; the
// resources are shared.
func (p *Pool) All() []*Resource {
	out := make([]*Resource, len(p.resources))
	copy(out, p.resources)
	return out
}

// Idle returns the idle resources in pool order.
func (p *Pool) Idle() []*Resource {
	var out []*Resource
	for _, r := range p.resources {
		if r.Idle() {
			out = append(out, r)
		}
	}
	return out
}
