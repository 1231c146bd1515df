package timeline

import "github.com/specialistvlad/burstplan/internal/model"

// Set holds one timeline per resource of a pool, indexed by ResourceRef.
type Set struct {
	lines []*Timeline
}

// NewSet returns n empty timelines.
func NewSet(n int) *Set {
	s := &Set{lines: make([]*Timeline, n)}
	for i := range s.lines {
		s.lines[i] = New()
	}
	return s
}

// For returns the timeline of r.
func (s *Set) For(r model.ResourceRef) *Timeline {
	return s.lines[r]
}

// Len returns the number of timelines.
func (s *Set) Len() int {
	return len(s.lines)
}

// Validate checks every timeline.
func (s *Set) Validate() error {
	for _, tl := range s.lines {
		if err := tl.Validate(); err != nil {
			return err
		}
	}
	return nil
}
