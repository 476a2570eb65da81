package period

import (
	"fmt"
	"sort"

	"github.com/kronos-db/kronos/errs"
)

// PeriodSet is a sorted, non-empty set of pairwise disjoint AND
// non-adjacent periods, with a cached bounding Period (spec §3.2).
// Non-adjacency is part of the canonical form: two periods that could be
// merged into one by Union must be merged before construction.
type PeriodSet struct {
	periods []Period
	bbox    Period
}

// NewPeriodSet validates the disjoint-and-non-adjacent invariant and
// constructs a PeriodSet. periods must already be sorted by Lower bound.
func NewPeriodSet(periods []Period) (PeriodSet, error) {
	if len(periods) == 0 {
		return PeriodSet{}, fmt.Errorf("%w: empty period set", errs.ErrInvalidArgument)
	}

	for i := 1; i < len(periods); i++ {
		prev, cur := periods[i-1], periods[i]
		if prev.Overlaps(cur) || prev.Adjacent(cur) {
			return PeriodSet{}, fmt.Errorf("%w: periods must be pairwise disjoint and non-adjacent", errs.ErrInvalidArgument)
		}
		if cur.Lower < prev.Lower {
			return PeriodSet{}, fmt.Errorf("%w: periods must be sorted by lower bound", errs.ErrInvalidArgument)
		}
	}

	lower, lowerInc := periods[0].Lower, periods[0].LowerInc
	upper, upperInc := periods[len(periods)-1].Upper, periods[len(periods)-1].UpperInc

	return PeriodSet{
		periods: periods,
		bbox:    Period{Lower: lower, Upper: upper, LowerInc: lowerInc, UpperInc: upperInc},
	}, nil
}

// NewPeriodSetNormalize sorts and merges overlapping/adjacent periods
// before constructing the canonical PeriodSet. Used by restriction
// operators that may produce mergeable fragments.
func NewPeriodSetNormalize(periods []Period) (PeriodSet, error) {
	if len(periods) == 0 {
		return PeriodSet{}, fmt.Errorf("%w: empty period set", errs.ErrInvalidArgument)
	}

	sorted := make([]Period, len(periods))
	copy(sorted, periods)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].Lower != sorted[j].Lower {
			return sorted[i].Lower < sorted[j].Lower
		}

		return sorted[i].LowerInc && !sorted[j].LowerInc
	})

	merged := make([]Period, 0, len(sorted))
	merged = append(merged, sorted[0])
	for _, p := range sorted[1:] {
		last := merged[len(merged)-1]
		if last.Overlaps(p) || last.Adjacent(p) {
			u, _ := last.Union(p)
			merged[len(merged)-1] = u

			continue
		}
		merged = append(merged, p)
	}

	return NewPeriodSet(merged)
}

// Len returns the number of periods.
func (s PeriodSet) Len() int { return len(s.periods) }

// At returns the i-th period.
func (s PeriodSet) At(i int) Period { return s.periods[i] }

// Periods returns a copy of the underlying sorted slice.
func (s PeriodSet) Periods() []Period {
	out := make([]Period, len(s.periods))
	copy(out, s.periods)

	return out
}

// BoundingPeriod returns the cached min/max bounding period.
func (s PeriodSet) BoundingPeriod() Period { return s.bbox }

// Find returns the index of the period containing t, if any.
func (s PeriodSet) Find(t Timestamp) (int, bool) {
	i := sort.Search(len(s.periods), func(i int) bool { return s.periods[i].Upper >= t })
	if i < len(s.periods) && s.periods[i].Contains(t) {
		return i, true
	}

	return i, false
}

// Contains reports whether t falls inside any period of the set.
func (s PeriodSet) Contains(t Timestamp) bool {
	_, ok := s.Find(t)
	return ok
}

// OverlapsPeriod reports whether p overlaps any period in the set.
func (s PeriodSet) OverlapsPeriod(p Period) bool {
	for _, q := range s.periods {
		if q.Lower > p.Upper {
			break
		}
		if q.Overlaps(p) {
			return true
		}
	}

	return false
}

// AtPeriod intersects the set with p, returning the resulting PeriodSet if
// non-empty.
func (s PeriodSet) AtPeriod(p Period) (PeriodSet, bool) {
	out := make([]Period, 0, len(s.periods))
	for _, q := range s.periods {
		if inter, ok := q.Intersection(p); ok {
			out = append(out, inter)
		}
	}
	if len(out) == 0 {
		return PeriodSet{}, false
	}

	ps, _ := NewPeriodSet(out)

	return ps, true
}

// MinusPeriod removes p from every period in the set, returning the result
// if non-empty. Each period may split into zero, one, or two fragments.
func (s PeriodSet) MinusPeriod(p Period) (PeriodSet, bool) {
	out := make([]Period, 0, len(s.periods))
	for _, q := range s.periods {
		out = append(out, subtractPeriod(q, p)...)
	}
	if len(out) == 0 {
		return PeriodSet{}, false
	}

	ps, _ := NewPeriodSet(out)

	return ps, true
}

// subtractPeriod returns q \ p as zero, one, or two disjoint periods.
func subtractPeriod(q, p Period) []Period {
	inter, ok := q.Intersection(p)
	if !ok {
		return []Period{q}
	}

	var out []Period
	if q.Lower < inter.Lower || (q.Lower == inter.Lower && q.LowerInc && !inter.LowerInc) {
		out = append(out, Period{Lower: q.Lower, Upper: inter.Lower, LowerInc: q.LowerInc, UpperInc: !inter.LowerInc})
	}
	if q.Upper > inter.Upper || (q.Upper == inter.Upper && q.UpperInc && !inter.UpperInc) {
		out = append(out, Period{Lower: inter.Upper, Upper: q.Upper, LowerInc: !inter.UpperInc, UpperInc: q.UpperInc})
	}

	return out
}

// AtPeriodSet intersects two period sets via a two-pointer merge.
func (s PeriodSet) AtPeriodSet(other PeriodSet) (PeriodSet, bool) {
	out := make([]Period, 0)
	i, j := 0, 0
	for i < s.Len() && j < other.Len() {
		a, b := s.At(i), other.At(j)
		if inter, ok := a.Intersection(b); ok {
			out = append(out, inter)
		}
		if a.Upper < b.Upper || (a.Upper == b.Upper && !a.UpperInc && b.UpperInc) {
			i++
		} else {
			j++
		}
	}
	if len(out) == 0 {
		return PeriodSet{}, false
	}

	ps, _ := NewPeriodSet(out)

	return ps, true
}

// MinusPeriodSet subtracts every period of other from s.
func (s PeriodSet) MinusPeriodSet(other PeriodSet) (PeriodSet, bool) {
	cur := s.periods
	for _, p := range other.periods {
		next := make([]Period, 0, len(cur))
		for _, q := range cur {
			next = append(next, subtractPeriod(q, p)...)
		}
		cur = next
		if len(cur) == 0 {
			return PeriodSet{}, false
		}
	}

	ps, err := NewPeriodSetNormalize(cur)
	if err != nil {
		return PeriodSet{}, false
	}

	return ps, true
}

// String renders the canonical textual form "{p1, p2, ...}".
func (s PeriodSet) String() string {
	out := "{"
	for i, p := range s.periods {
		if i > 0 {
			out += ", "
		}
		out += p.String()
	}

	return out + "}"
}
