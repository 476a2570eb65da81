package period

import (
	"fmt"
	"sort"

	"github.com/kronos-db/kronos/errs"
)

// TimestampSet is a sorted, non-empty set of unique timestamps with a
// cached bounding Period (spec §3.2).
type TimestampSet struct {
	times []Timestamp
	bbox  Period
}

// NewTimestampSet validates that times is non-empty and strictly
// increasing, and constructs a TimestampSet over it. The slice is not
// copied defensively by the caller's obligation: callers must not retain
// a mutable alias to times after the call.
func NewTimestampSet(times []Timestamp) (TimestampSet, error) {
	if len(times) == 0 {
		return TimestampSet{}, fmt.Errorf("%w: empty timestamp set", errs.ErrInvalidArgument)
	}

	for i := 1; i < len(times); i++ {
		if times[i] <= times[i-1] {
			return TimestampSet{}, fmt.Errorf("%w: timestamp set must be strictly increasing", errs.ErrInvalidArgument)
		}
	}

	return TimestampSet{
		times: times,
		bbox:  Period{Lower: times[0], Upper: times[len(times)-1], LowerInc: true, UpperInc: true},
	}, nil
}

// Len returns the number of timestamps.
func (s TimestampSet) Len() int { return len(s.times) }

// At returns the i-th timestamp.
func (s TimestampSet) At(i int) Timestamp { return s.times[i] }

// Times returns a copy of the underlying sorted slice.
func (s TimestampSet) Times() []Timestamp {
	out := make([]Timestamp, len(s.times))
	copy(out, s.times)

	return out
}

// BoundingPeriod returns the cached min/max bounding period.
func (s TimestampSet) BoundingPeriod() Period { return s.bbox }

// Find returns the index of t if present, and whether it was found. If not
// found, the index is the insertion point that keeps the set sorted.
func (s TimestampSet) Find(t Timestamp) (int, bool) {
	i := sort.Search(len(s.times), func(i int) bool { return s.times[i] >= t })
	if i < len(s.times) && s.times[i] == t {
		return i, true
	}

	return i, false
}

// Contains reports whether t is a member of the set.
func (s TimestampSet) Contains(t Timestamp) bool {
	_, ok := s.Find(t)
	return ok
}

// AtTimestamp returns the singleton set {t} if present, else ok=false.
func (s TimestampSet) AtTimestamp(t Timestamp) (TimestampSet, bool) {
	if !s.Contains(t) {
		return TimestampSet{}, false
	}

	out, _ := NewTimestampSet([]Timestamp{t})

	return out, true
}

// MinusTimestamp returns the set with t removed, if present.
func (s TimestampSet) MinusTimestamp(t Timestamp) (TimestampSet, bool) {
	idx, ok := s.Find(t)
	if !ok {
		return s, true
	}

	rest := make([]Timestamp, 0, len(s.times)-1)
	rest = append(rest, s.times[:idx]...)
	rest = append(rest, s.times[idx+1:]...)
	if len(rest) == 0 {
		return TimestampSet{}, false
	}

	out, _ := NewTimestampSet(rest)

	return out, true
}

// AtPeriod returns the subset of timestamps inside p, if non-empty.
func (s TimestampSet) AtPeriod(p Period) (TimestampSet, bool) {
	lo, _ := s.Find(p.Lower)
	out := make([]Timestamp, 0, len(s.times)-lo)
	for i := lo; i < len(s.times) && s.times[i] <= p.Upper; i++ {
		if p.Contains(s.times[i]) {
			out = append(out, s.times[i])
		}
	}
	if len(out) == 0 {
		return TimestampSet{}, false
	}

	ts, _ := NewTimestampSet(out)

	return ts, true
}

// MinusPeriod returns the subset of timestamps outside p, if non-empty.
func (s TimestampSet) MinusPeriod(p Period) (TimestampSet, bool) {
	out := make([]Timestamp, 0, len(s.times))
	for _, t := range s.times {
		if !p.Contains(t) {
			out = append(out, t)
		}
	}
	if len(out) == 0 {
		return TimestampSet{}, false
	}

	ts, _ := NewTimestampSet(out)

	return ts, true
}

// AtPeriodSet returns the subset of timestamps inside ps, via a two-pointer
// merge over the sorted timestamps and sorted periods.
func (s TimestampSet) AtPeriodSet(ps PeriodSet) (TimestampSet, bool) {
	out := make([]Timestamp, 0, len(s.times))
	i, j := 0, 0
	for i < len(s.times) && j < ps.Len() {
		t, p := s.times[i], ps.At(j)
		switch {
		case t < p.Lower || (t == p.Lower && !p.LowerInc):
			i++
		case t > p.Upper || (t == p.Upper && !p.UpperInc):
			j++
		default:
			out = append(out, t)
			i++
		}
	}
	if len(out) == 0 {
		return TimestampSet{}, false
	}

	ts, _ := NewTimestampSet(out)

	return ts, true
}

// MinusPeriodSet returns the subset of timestamps outside every period in ps.
func (s TimestampSet) MinusPeriodSet(ps PeriodSet) (TimestampSet, bool) {
	out := make([]Timestamp, 0, len(s.times))
	for _, t := range s.times {
		if !ps.Contains(t) {
			out = append(out, t)
		}
	}
	if len(out) == 0 {
		return TimestampSet{}, false
	}

	ts, _ := NewTimestampSet(out)

	return ts, true
}

// String renders the canonical textual form "{t1, t2, ...}".
func (s TimestampSet) String() string {
	out := "{"
	for i, t := range s.times {
		if i > 0 {
			out += ", "
		}
		out += fmt.Sprintf("%d", t)
	}

	return out + "}"
}
