// Package timeline keeps, per resource, the ordered list of busy intervals
// reserved by a static planner, and answers "when is the earliest this
// resource could finish a task of a given duration that cannot start before
// a given ready time".
//
// Placement favors filling holes between existing reservations over
// appending at the tail: the earliest feasible start wins, wherever it is.
package timeline

import (
	"fmt"

	"github.com/specialistvlad/burstplan/internal/model"
)

// Interval is a reservation [Start, Finish) of a resource by a task.
type Interval struct {
	Start  float64
	Finish float64
	Task   model.TaskRef
}

// Duration returns Finish - Start.
func (iv Interval) Duration() float64 {
	return iv.Finish - iv.Start
}

// Slot is a candidate placement returned by EarliestSlot. Position is the
// index the interval would take in the timeline.
type Slot struct {
	Start    float64
	Finish   float64
	Position int
}

// Gap reports whether the slot sits before the last reservation rather than
// after it.
func (s Slot) Gap(tl *Timeline) bool {
	return s.Position < len(tl.intervals)
}

// Timeline is the ordered, non-overlapping reservation list of one resource.
// For adjacent intervals i, j: i.Finish <= j.Start.
type Timeline struct {
	intervals []Interval
}

// New returns an empty timeline.
func New() *Timeline {
	return &Timeline{}
}

// Len returns the number of reservations.
func (tl *Timeline) Len() int {
	return len(tl.intervals)
}

// Intervals returns a copy of the reservations in start order.
func (tl *Timeline) Intervals() []Interval {
	out := make([]Interval, len(tl.intervals))
	copy(out, tl.intervals)
	return out
}

// Busy returns the total reserved time.
func (tl *Timeline) Busy() float64 {
	var sum float64
	for _, iv := range tl.intervals {
		sum += iv.Duration()
	}
	return sum
}

// End returns the finish of the last reservation, zero when empty.
func (tl *Timeline) End() float64 {
	if len(tl.intervals) == 0 {
		return 0
	}
	return tl.intervals[len(tl.intervals)-1].Finish
}

// EarliestSlot finds the earliest start >= ready at which duration fits
// without overlapping a reservation: before the first interval, in a gap
// between two intervals, or after the last one. Candidates are examined in
// index order and the first feasible one is taken; since gaps are ordered in
// time it is also the earliest.
func (tl *Timeline) EarliestSlot(ready, duration float64) Slot {
	n := len(tl.intervals)
	if n == 0 {
		return Slot{Start: ready, Finish: ready + duration, Position: 0}
	}

	if ready+duration <= tl.intervals[0].Start {
		return Slot{Start: ready, Finish: ready + duration, Position: 0}
	}

	for i := 1; i < n; i++ {
		start := max(ready, tl.intervals[i-1].Finish)
		if start+duration <= tl.intervals[i].Start {
			return Slot{Start: start, Finish: start + duration, Position: i}
		}
	}

	start := max(ready, tl.intervals[n-1].Finish)
	return Slot{Start: start, Finish: start + duration, Position: n}
}

// Reserve commits slot for task. The slot must come from EarliestSlot on
// this timeline; if the timeline changed in between, the position is looked
// up again and an overlapping slot is rejected.
func (tl *Timeline) Reserve(slot Slot, task model.TaskRef) error {
	pos := slot.Position
	if !tl.fits(pos, slot) {
		pos = tl.search(slot.Start)
		if !tl.fits(pos, slot) {
			return fmt.Errorf("slot [%g, %g) overlaps an existing reservation", slot.Start, slot.Finish)
		}
	}

	iv := Interval{Start: slot.Start, Finish: slot.Finish, Task: task}
	tl.intervals = append(tl.intervals, Interval{})
	copy(tl.intervals[pos+1:], tl.intervals[pos:])
	tl.intervals[pos] = iv
	return nil
}

// FindFinishTime returns the earliest finish time of a task of the given
// duration that cannot start before ready. With commit set, the slot is
// reserved for task.
func (tl *Timeline) FindFinishTime(task model.TaskRef, duration, ready float64, commit bool) float64 {
	slot := tl.EarliestSlot(ready, duration)
	if commit {
		// A slot fresh from EarliestSlot always fits.
		_ = tl.Reserve(slot, task)
	}
	return slot.Finish
}

// Validate checks the order and non-overlap invariants.
func (tl *Timeline) Validate() error {
	for i, iv := range tl.intervals {
		if iv.Finish < iv.Start {
			return fmt.Errorf("interval %d finishes before it starts: [%g, %g)", i, iv.Start, iv.Finish)
		}
		if i > 0 && tl.intervals[i-1].Finish > iv.Start {
			return fmt.Errorf("intervals %d and %d overlap: [%g, %g) and [%g, %g)",
				i-1, i, tl.intervals[i-1].Start, tl.intervals[i-1].Finish, iv.Start, iv.Finish)
		}
	}
	return nil
}

// fits reports whether slot can be inserted at pos.
func (tl *Timeline) fits(pos int, slot Slot) bool {
	if pos < 0 || pos > len(tl.intervals) {
		return false
	}
	if pos > 0 && tl.intervals[pos-1].Finish > slot.Start {
		return false
	}
	if pos < len(tl.intervals) && slot.Finish > tl.intervals[pos].Start {
		return false
	}
	return true
}

// search returns the first index whose interval starts after start.
func (tl *Timeline) search(start float64) int {
	lo, hi := 0, len(tl.intervals)
	for lo < hi {
		mid := int(uint(lo+hi) >> 1)
		if tl.intervals[mid].Start <= start {
			lo = mid + 1
		} else {
			hi = mid
		}
	}
	return lo
}
