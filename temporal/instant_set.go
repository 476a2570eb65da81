package temporal

import (
	"fmt"
	"sort"
	"strings"

	"github.com/kronos-db/kronos/base"
	"github.com/kronos-db/kronos/box"
	"github.com/kronos-db/kronos/errs"
	"github.com/kronos-db/kronos/period"
)

// InstantSet is a sorted-by-time set of instants with strictly increasing
// timestamps and a uniform base header (spec §3.3, §4.5). Unlike
// Sequence, no interpolation is defined between its instants.
type InstantSet struct {
	header Header
	instants []Instant
	bbox     box.NumBox
	stbox    box.STBox
}

// NewInstantSet validates strict time ordering and header uniformity and
// constructs an InstantSet. Inputs must already be sorted; duplicates are
// rejected rather than silently deduplicated (spec §4.5: "sort/deduplicate
// not required — inputs must already be sorted").
func NewInstantSet(instants []Instant) (InstantSet, error) {
	if len(instants) == 0 {
		return InstantSet{}, fmt.Errorf("%w: empty instant set", errs.ErrInvalidArgument)
	}

	h := instants[0].header
	for i, inst := range instants {
		if err := checkUniform(h, inst.value); err != nil {
			return InstantSet{}, err
		}
		if i > 0 && inst.t <= instants[i-1].t {
			return InstantSet{}, fmt.Errorf("%w: instant set must be strictly increasing in time", errs.ErrInvalidArgument)
		}
	}

	s := InstantSet{header: h, instants: instants}
	s.computeBoxes()

	return s, nil
}

func (s *InstantSet) computeBoxes() {
	s.bbox = box.FromBase(s.instants[0].value, s.instants[0].t)
	if s.header.BaseType.Point() {
		s.stbox = box.FromPoint(s.instants[0].value.(base.Point), s.instants[0].t)
	}
	for _, inst := range s.instants[1:] {
		s.bbox = s.bbox.Union(box.FromBase(inst.value, inst.t))
		if s.header.BaseType.Point() {
			s.stbox, _ = s.stbox.Union(box.FromPoint(inst.value.(base.Point), inst.t))
		}
	}
}

// Header returns the set's base-type header.
func (s InstantSet) Header() Header { return s.header }

// Len returns the number of instants.
func (s InstantSet) Len() int { return len(s.instants) }

// At returns the i-th instant.
func (s InstantSet) At(i int) Instant { return s.instants[i] }

// Instants returns a copy of the underlying sorted instant slice.
func (s InstantSet) Instants() []Instant {
	out := make([]Instant, len(s.instants))
	copy(out, s.instants)

	return out
}

// Period returns the bounding period (first to last instant, closed).
func (s InstantSet) Period() period.Period {
	return period.Period{Lower: s.instants[0].t, Upper: s.instants[len(s.instants)-1].t, LowerInc: true, UpperInc: true}
}

// NumBox returns the cached value×time bounding box.
func (s InstantSet) NumBox() box.NumBox { return s.bbox }

// STBox returns the cached space×time bounding box (point bases only).
func (s InstantSet) STBox() box.STBox { return s.stbox }

// find returns the index of t via binary search.
func (s InstantSet) find(t period.Timestamp) (int, bool) {
	i := sort.Search(len(s.instants), func(i int) bool { return s.instants[i].t >= t })
	if i < len(s.instants) && s.instants[i].t == t {
		return i, true
	}

	return i, false
}

// ValueAt returns the value at t if an instant exists there.
func (s InstantSet) ValueAt(t period.Timestamp) (base.Value, bool) {
	i, ok := s.find(t)
	if !ok {
		return nil, false
	}

	return s.instants[i].value, true
}

// MinValue returns the minimum value by the base type's order, using the
// cached NumBox for numeric bases and a linear scan otherwise (spec §4.5).
func (s InstantSet) MinValue() base.Value {
	if s.header.BaseType == base.TypeInt32 || s.header.BaseType == base.TypeFloat64 {
		return valueAtDouble(s.header.BaseType, s.bbox.XMin)
	}

	best := s.instants[0].value
	for _, inst := range s.instants[1:] {
		if base.Lt(inst.value, best) {
			best = inst.value
		}
	}

	return best
}

// MaxValue returns the maximum value, symmetric to MinValue.
func (s InstantSet) MaxValue() base.Value {
	if s.header.BaseType == base.TypeInt32 || s.header.BaseType == base.TypeFloat64 {
		return valueAtDouble(s.header.BaseType, s.bbox.XMax)
	}

	best := s.instants[0].value
	for _, inst := range s.instants[1:] {
		if base.Gt(inst.value, best) {
			best = inst.value
		}
	}

	return best
}

func valueAtDouble(t base.Type, d float64) base.Value {
	if t == base.TypeInt32 {
		return base.Int32(int32(d))
	}

	return base.Float64(d)
}

// EverEquals uses the bounding box to prune before scanning (spec §4.5).
func (s InstantSet) EverEquals(v base.Value) bool {
	if d, ok := base.AsDouble(v); ok && s.bbox.HasX && (d < s.bbox.XMin || d > s.bbox.XMax) {
		return false
	}
	for _, inst := range s.instants {
		if base.Eq(inst.value, v) {
			return true
		}
	}

	return false
}

// AlwaysEquals reports whether every instant equals v.
func (s InstantSet) AlwaysEquals(v base.Value) bool {
	for _, inst := range s.instants {
		if !base.Eq(inst.value, v) {
			return false
		}
	}

	return true
}

// AtTimestamp keeps the instant at t, if present.
func (s InstantSet) AtTimestamp(t period.Timestamp) (Instant, bool) {
	i, ok := s.find(t)
	if !ok {
		return Instant{}, false
	}

	return s.instants[i], true
}

// MinusTimestamp removes the instant at t, if present.
func (s InstantSet) MinusTimestamp(t period.Timestamp) (InstantSet, bool) {
	i, ok := s.find(t)
	if !ok {
		return s, true
	}

	rest := make([]Instant, 0, len(s.instants)-1)
	rest = append(rest, s.instants[:i]...)
	rest = append(rest, s.instants[i+1:]...)
	if len(rest) == 0 {
		return InstantSet{}, false
	}

	out, _ := NewInstantSet(rest)

	return out, true
}

// AtTimestampSet keeps the instants whose timestamps are in ts, via a
// two-pointer merge over the sorted inputs (spec §4.5).
func (s InstantSet) AtTimestampSet(ts period.TimestampSet) (InstantSet, bool) {
	return s.filterByTimestamps(ts, true)
}

// MinusTimestampSet removes the instants whose timestamps are in ts.
func (s InstantSet) MinusTimestampSet(ts period.TimestampSet) (InstantSet, bool) {
	return s.filterByTimestamps(ts, false)
}

func (s InstantSet) filterByTimestamps(ts period.TimestampSet, keepMatches bool) (InstantSet, bool) {
	out := make([]Instant, 0, len(s.instants))
	i, j := 0, 0
	for i < len(s.instants) {
		match := j < ts.Len() && s.instants[i].t == ts.At(j)
		switch {
		case j < ts.Len() && s.instants[i].t > ts.At(j):
			j++

			continue
		case match == keepMatches:
			out = append(out, s.instants[i])
			i++
			if match {
				j++
			}
		default:
			i++
			if match {
				j++
			}
		}
	}
	if len(out) == 0 {
		return InstantSet{}, false
	}

	r, _ := NewInstantSet(out)

	return r, true
}

// AtPeriod keeps instants inside p.
func (s InstantSet) AtPeriod(p period.Period) (InstantSet, bool) {
	out := make([]Instant, 0, len(s.instants))
	for _, inst := range s.instants {
		if p.Contains(inst.t) {
			out = append(out, inst)
		}
	}
	if len(out) == 0 {
		return InstantSet{}, false
	}
	r, _ := NewInstantSet(out)

	return r, true
}

// MinusPeriod removes instants inside p.
func (s InstantSet) MinusPeriod(p period.Period) (InstantSet, bool) {
	out := make([]Instant, 0, len(s.instants))
	for _, inst := range s.instants {
		if !p.Contains(inst.t) {
			out = append(out, inst)
		}
	}
	if len(out) == 0 {
		return InstantSet{}, false
	}
	r, _ := NewInstantSet(out)

	return r, true
}

// AtPeriodSet keeps instants inside any period of ps.
func (s InstantSet) AtPeriodSet(ps period.PeriodSet) (InstantSet, bool) {
	out := make([]Instant, 0, len(s.instants))
	for _, inst := range s.instants {
		if ps.Contains(inst.t) {
			out = append(out, inst)
		}
	}
	if len(out) == 0 {
		return InstantSet{}, false
	}
	r, _ := NewInstantSet(out)

	return r, true
}

// MinusPeriodSet removes instants inside any period of ps.
func (s InstantSet) MinusPeriodSet(ps period.PeriodSet) (InstantSet, bool) {
	out := make([]Instant, 0, len(s.instants))
	for _, inst := range s.instants {
		if !ps.Contains(inst.t) {
			out = append(out, inst)
		}
	}
	if len(out) == 0 {
		return InstantSet{}, false
	}
	r, _ := NewInstantSet(out)

	return r, true
}

// AtValue keeps instants equal to v.
func (s InstantSet) AtValue(v base.Value) (InstantSet, bool) {
	out := make([]Instant, 0, len(s.instants))
	for _, inst := range s.instants {
		if base.Eq(inst.value, v) {
			out = append(out, inst)
		}
	}
	if len(out) == 0 {
		return InstantSet{}, false
	}
	r, _ := NewInstantSet(out)

	return r, true
}

// MinusValue removes instants equal to v.
func (s InstantSet) MinusValue(v base.Value) (InstantSet, bool) {
	out := make([]Instant, 0, len(s.instants))
	for _, inst := range s.instants {
		if !base.Eq(inst.value, v) {
			out = append(out, inst)
		}
	}
	if len(out) == 0 {
		return InstantSet{}, false
	}
	r, _ := NewInstantSet(out)

	return r, true
}

// String renders the canonical textual form "{i1, i2, ...}".
func (s InstantSet) String() string {
	parts := make([]string, len(s.instants))
	for i, inst := range s.instants {
		parts[i] = inst.String()
	}

	return "{" + strings.Join(parts, ", ") + "}"
}
