// Package align implements synchronization of two temporal sequences onto
// a common instant timeline and the lifting of binary scalar operators
// over the result (component I, spec §4.8). Both operate on
// temporal.Sequence, the variant the spec's literal crossing-insertion
// scenario (§8.3) exercises directly; InstantSet/SequenceSet operands are
// expected to be reduced to their constituent sequences by the caller
// before synchronizing, since §4.8's instant-level merge is defined in
// terms of a single shared period.
package align

import (
	"fmt"
	"sort"

	"github.com/kronos-db/kronos/base"
	"github.com/kronos-db/kronos/errs"
	"github.com/kronos-db/kronos/geom"
	"github.com/kronos-db/kronos/period"
	"github.com/kronos-db/kronos/temporal"
)

// Aligned is the instant-aligned result of Synchronize: two value slices
// over exactly the same sorted timestamps, the shared period they cover,
// and which positions were interpolated rather than originally present.
type Aligned struct {
	Times     []period.Timestamp
	A, B      []base.Value
	Synthetic []bool
	Period    period.Period
	LowerInc  bool
	UpperInc  bool
}

// Synchronize implements §4.8: intersects A and B's periods, merges their
// instant timelines, interpolating synthetic instants on whichever side
// lacks one, and optionally inserts crossing instants.
func Synchronize(a, b temporal.Sequence, crossings bool, k geom.Kernel) (Aligned, error) {
	pa, pb := a.Period(), b.Period()

	inter, ok := pa.Intersection(pb)
	if !ok {
		return Aligned{}, fmt.Errorf("%w: sequences share no common period", errs.ErrNoIntersection)
	}

	times := mergedTimestamps(a, b, inter)

	out := Aligned{Period: inter, LowerInc: inter.LowerInc, UpperInc: inter.UpperInc}
	for _, t := range times {
		va, _, err := a.ValueAt(t, k)
		if err != nil {
			return Aligned{}, err
		}
		vb, _, err := b.ValueAt(t, k)
		if err != nil {
			return Aligned{}, err
		}

		out.Times = append(out.Times, t)
		out.A = append(out.A, va)
		out.B = append(out.B, vb)
		out.Synthetic = append(out.Synthetic, !(a.Period().Contains(t) && hasInstantAt(a, t)) || !(b.Period().Contains(t) && hasInstantAt(b, t)))
	}

	if crossings && a.Header().Continuous() && b.Header().Continuous() {
		out = insertCrossings(out, a.Header(), k)
	}

	clampNonContinuousOpenBound(&out, a.Header())

	return out, nil
}

func hasInstantAt(s temporal.Sequence, t period.Timestamp) bool {
	for i := 0; i < s.Len(); i++ {
		if s.At(i).Timestamp() == t {
			return true
		}
	}

	return false
}

// mergedTimestamps returns the sorted, deduplicated union of A and B's
// instant timestamps that fall within p.
func mergedTimestamps(a, b temporal.Sequence, p period.Period) []period.Timestamp {
	seen := make(map[period.Timestamp]struct{})
	var out []period.Timestamp

	collect := func(s temporal.Sequence) {
		for i := 0; i < s.Len(); i++ {
			t := s.At(i).Timestamp()
			if !p.Contains(t) {
				continue
			}
			if _, ok := seen[t]; ok {
				continue
			}
			seen[t] = struct{}{}
			out = append(out, t)
		}
	}

	collect(a)
	collect(b)

	if _, ok := seen[p.Lower]; !ok && p.LowerInc {
		out = append(out, p.Lower)
	}
	if _, ok := seen[p.Upper]; !ok && p.UpperInc {
		out = append(out, p.Upper)
	}

	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })

	return out
}

// insertCrossings implements §4.8 step 3: between every consecutive pair
// of aligned timestamps, compute a crossing via the segment-intersection
// kernel and insert aligned instants on both sides when it lies strictly
// inside the interval.
func insertCrossings(in Aligned, h temporal.Header, k geom.Kernel) Aligned {
	out := Aligned{Period: in.Period, LowerInc: in.LowerInc, UpperInc: in.UpperInc}

	for i := 0; i < len(in.Times); i++ {
		out.Times = append(out.Times, in.Times[i])
		out.A = append(out.A, in.A[i])
		out.B = append(out.B, in.B[i])
		out.Synthetic = append(out.Synthetic, in.Synthetic[i])

		if i+1 >= len(in.Times) {
			continue
		}

		tCross, found, err := segmentCrossing(h, in.A[i], in.A[i+1], in.B[i], in.B[i+1], in.Times[i], in.Times[i+1])
		if err != nil || !found {
			continue
		}

		va, err1 := valueAtFraction(h, in.A[i], in.A[i+1], in.Times[i], in.Times[i+1], tCross, k)
		vb, err2 := valueAtFraction(h, in.B[i], in.B[i+1], in.Times[i], in.Times[i+1], tCross, k)
		if err1 != nil || err2 != nil {
			continue
		}

		out.Times = append(out.Times, tCross)
		out.A = append(out.A, va)
		out.B = append(out.B, vb)
		out.Synthetic = append(out.Synthetic, true)
	}

	return out
}

// clampNonContinuousOpenBound implements §4.8 step 4, mirroring §4.6.5:
// a right-open final interval over a non-continuous base must have its
// trailing two synchronized instants equal in value on each side.
func clampNonContinuousOpenBound(out *Aligned, h temporal.Header) {
	if out.UpperInc || h.Continuous() || len(out.Times) < 2 {
		return
	}

	n := len(out.Times)
	out.A[n-1] = out.A[n-2]
	out.B[n-1] = out.B[n-2]
}

// segmentCrossing finds §4.6.3's crossing timestamp between the A-side
// segment (a1,a2) and the B-side segment (b1,b2) over [ta,tb].
func segmentCrossing(h temporal.Header, a1, a2, b1, b2 base.Value, ta, tb period.Timestamp) (period.Timestamp, bool, error) {
	return temporal.SegmentIntersection(h, a1, a2, b1, b2, ta, tb)
}

// valueAtFraction evaluates the segment (v1@ta, v2@tb) at t, always under
// Linear interpolation since crossings are only computed for continuous
// bases (§4.8 step 3).
func valueAtFraction(h temporal.Header, v1, v2 base.Value, ta, tb, t period.Timestamp, k geom.Kernel) (base.Value, error) {
	return temporal.ValueAtSegment(h, v1, v2, ta, tb, t, temporal.Linear, k)
}
