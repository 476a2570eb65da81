package temporal

import (
	"fmt"
	"sort"

	"github.com/kronos-db/kronos/base"
	"github.com/kronos-db/kronos/errs"
	"github.com/kronos-db/kronos/geom"
	"github.com/kronos-db/kronos/internal/epsilon"
	"github.com/kronos-db/kronos/period"
)

// AtTimestamp implements §4.6.7: find the covering segment by binary
// search, then call value_at.
func (s Sequence) AtTimestamp(t period.Timestamp, k geom.Kernel) (Instant, bool, error) {
	v, ok, err := s.ValueAt(t, k)
	if err != nil || !ok {
		return Instant{}, false, err
	}

	return NewInstant(v, t), true, nil
}

// MinusTimestamp implements §4.6.7: split at t, producing 0, 1, or 2
// sub-sequences with adjusted bound inclusivity.
func (s Sequence) MinusTimestamp(t period.Timestamp, k geom.Kernel) ([]Sequence, error) {
	if !s.Period().Contains(t) {
		return []Sequence{s}, nil
	}

	var out []Sequence

	left, ok := s.atPeriodRaw(period.Period{Lower: s.Period().Lower, Upper: t, LowerInc: s.lowerInc, UpperInc: false}, k)
	if ok {
		out = append(out, left)
	}

	right, ok := s.atPeriodRaw(period.Period{Lower: t, Upper: s.Period().Upper, LowerInc: false, UpperInc: s.upperInc}, k)
	if ok {
		out = append(out, right)
	}

	return out, nil
}

// AtPeriod implements §4.6.7: intersect bounds, walk instants within the
// intersected period, interpolating cut endpoints that fall strictly
// inside a segment.
func (s Sequence) AtPeriod(p period.Period, k geom.Kernel) (Sequence, bool, error) {
	inter, ok := s.Period().Intersection(p)
	if !ok {
		return Sequence{}, false, nil
	}

	return s.atPeriodRawErr(inter, k)
}

func (s Sequence) atPeriodRaw(p period.Period, k geom.Kernel) (Sequence, bool) {
	out, ok, err := s.atPeriodRawErr(p, k)
	if err != nil {
		return Sequence{}, false
	}

	return out, ok
}

func (s Sequence) atPeriodRawErr(p period.Period, k geom.Kernel) (Sequence, bool, error) {
	var instants []Instant

	for _, inst := range s.instants {
		if p.Contains(inst.t) {
			instants = append(instants, inst)
		}
	}

	if !p.LowerInc || len(instants) == 0 || instants[0].t != p.Lower {
		if v, ok, err := s.ValueAt(p.Lower, k); err == nil && ok {
			instants = append([]Instant{NewInstant(v, p.Lower)}, instants...)
		} else if err != nil {
			return Sequence{}, false, err
		}
	}

	if !p.UpperInc || len(instants) == 0 || instants[len(instants)-1].t != p.Upper {
		if v, ok, err := s.ValueAt(p.Upper, k); err == nil && ok {
			instants = append(instants, NewInstant(v, p.Upper))
		} else if err != nil {
			return Sequence{}, false, err
		}
	}

	if len(instants) == 0 {
		return Sequence{}, false, nil
	}

	out, err := NewSequence(instants, p.LowerInc, p.UpperInc, s.interp, true, k)
	if err != nil {
		return Sequence{}, false, err
	}

	return out, true, nil
}

// MinusPeriod implements §4.6.7 as the complement of AtPeriod within the
// sequence's own period.
func (s Sequence) MinusPeriod(p period.Period, k geom.Kernel) ([]Sequence, error) {
	own := s.Period()
	inter, ok := own.Intersection(p)
	if !ok {
		return []Sequence{s}, nil
	}

	var out []Sequence

	if own.Lower < inter.Lower || (own.Lower == inter.Lower && own.LowerInc && !inter.LowerInc) {
		left := period.Period{Lower: own.Lower, Upper: inter.Lower, LowerInc: own.LowerInc, UpperInc: !inter.LowerInc}
		if seq, ok, err := s.atPeriodRawErr(left, k); err != nil {
			return nil, err
		} else if ok {
			out = append(out, seq)
		}
	}

	if own.Upper > inter.Upper || (own.Upper == inter.Upper && own.UpperInc && !inter.UpperInc) {
		right := period.Period{Lower: inter.Upper, Upper: own.Upper, LowerInc: !inter.UpperInc, UpperInc: own.UpperInc}
		if seq, ok, err := s.atPeriodRawErr(right, k); err != nil {
			return nil, err
		} else if ok {
			out = append(out, seq)
		}
	}

	return out, nil
}

// AtValue implements §4.6.7: walks segments, keeping the whole segment
// when constant-equal, an instant when a crossing lies strictly inside,
// or nothing otherwise. Step bases resolve the right-exclusive boundary
// via DefaultStepEndpointPolicy; use AtValueWithPolicy to pick the other
// behavior from Open Question (i).
func (s Sequence) AtValue(v base.Value, k geom.Kernel) ([]Sequence, error) {
	return s.restrictByValue(v, true, DefaultStepEndpointPolicy, k)
}

// AtValueWithPolicy is AtValue with an explicit StepEndpointPolicy.
func (s Sequence) AtValueWithPolicy(v base.Value, policy StepEndpointPolicy, k geom.Kernel) ([]Sequence, error) {
	return s.restrictByValue(v, true, policy, k)
}

// MinusValue implements §4.6.7's symmetric difference, at most 2·count
// sub-sequences.
func (s Sequence) MinusValue(v base.Value, k geom.Kernel) ([]Sequence, error) {
	return s.restrictByValue(v, false, DefaultStepEndpointPolicy, k)
}

// MinusValueWithPolicy is MinusValue with an explicit StepEndpointPolicy.
func (s Sequence) MinusValueWithPolicy(v base.Value, policy StepEndpointPolicy, k geom.Kernel) ([]Sequence, error) {
	return s.restrictByValue(v, false, policy, k)
}

// restrictByValue walks segments left to right. For a step (or otherwise
// non-interpolating) segment, the value across [a.t, b.t) is constant
// a.value — the segment contributes that whole half-open range whenever
// a.value's equality to v matches keep, not merely a single instant at a.
// The segment's own right edge (b.t) only matters in its own right on
// the sequence's final segment, where policy decides whether a value
// that only appears at a right-exclusive bound still counts.
func (s Sequence) restrictByValue(v base.Value, keep bool, policy StepEndpointPolicy, k geom.Kernel) ([]Sequence, error) {
	if len(s.instants) == 1 {
		last := s.instants[0]
		if base.Eq(last.value, v) == keep {
			return []Sequence{mustInstantSequence(last.value, last.t, s.interp)}, nil
		}

		return nil, nil
	}

	var out []Sequence

	for i := 0; i+1 < len(s.instants); i++ {
		a, b := s.instants[i], s.instants[i+1]
		eqA, eqB := base.Eq(a.value, v), base.Eq(b.value, v)
		isLastSeg := i+1 == len(s.instants)-1

		switch {
		case eqA && eqB:
			if keep {
				seq, err := NewSequence([]Instant{a, b}, i == 0 && s.lowerInc, isLastSeg && s.upperInc, s.interp, true, k)
				if err != nil {
					return nil, err
				}
				out = append(out, seq)
			}
		case !useLinear(s.header, s.interp):
			if eqA == keep {
				seq, err := NewSequence([]Instant{a, NewInstant(a.value, b.t)}, i == 0 && s.lowerInc, false, s.interp, true, k)
				if err != nil {
					return nil, err
				}
				out = append(out, seq)
			}
			if isLastSeg && eqB == keep {
				included := s.upperInc || policy == EndpointPolicyLeftEqualsValue
				if included {
					out = append(out, mustInstantSequence(b.value, b.t, s.interp))
				}
			}
		default:
			f, ok := crossingFractionAtValue(s.header, a.value, b.value, v)
			if !ok {
				continue
			}

			tCross := a.t + period.Timestamp(f*float64(b.t-a.t))
			cv, _, err := s.ValueAt(tCross, k)
			if err != nil {
				return nil, err
			}
			if base.Eq(cv, v) == keep {
				out = append(out, mustInstantSequence(cv, tCross, s.interp))
			}
		}
	}

	return out, nil
}

func mustInstantSequence(v base.Value, t period.Timestamp, interp Interp) Sequence {
	seq, _ := NewSequence([]Instant{NewInstant(v, t)}, true, true, interp, false, nil)

	return seq
}

// crossingFractionAtValue finds the fraction along [a,b] (numeric bases
// only) where the linear interpolation equals v, if any.
func crossingFractionAtValue(h Header, a, b, v base.Value) (float64, bool) {
	if h.BaseType.Point() {
		return 0, false
	}

	da, _ := base.AsDouble(a)
	db, _ := base.AsDouble(b)
	dv, _ := base.AsDouble(v)

	if db == da {
		return 0, false
	}

	f := (dv - da) / (db - da)
	if f <= 0 || f >= 1 {
		return 0, false
	}

	return f, true
}

// AtValues generalizes AtValue to a value set (supplemented feature,
// MEOS tsequence_restrict_values).
func (s Sequence) AtValues(vs []base.Value, k geom.Kernel) ([]Sequence, error) {
	var out []Sequence
	for _, v := range vs {
		part, err := s.AtValue(v, k)
		if err != nil {
			return nil, err
		}
		out = append(out, part...)
	}

	return out, nil
}

// MinusValues generalizes MinusValue to a value set.
func (s Sequence) MinusValues(vs []base.Value, k geom.Kernel) ([]Sequence, error) {
	out := []Sequence{s}
	for _, v := range vs {
		var next []Sequence
		for _, seq := range out {
			parts, err := seq.MinusValue(v, k)
			if err != nil {
				return nil, err
			}
			next = append(next, parts...)
		}
		out = next
	}

	return out, nil
}

// ValueRange is a closed-or-open numeric range [lo, hi] used by
// AtRange/MinusRange, with independent inclusivity per bound.
type ValueRange struct {
	Lo, Hi       base.Value
	LoInc, HiInc bool
}

func (r ValueRange) contains(v base.Value) bool {
	belowLo := base.Lt(v, r.Lo) || (!r.LoInc && base.Eq(v, r.Lo))
	aboveHi := base.Lt(r.Hi, v) || (!r.HiInc && base.Eq(v, r.Hi))

	return !belowLo && !aboveHi
}

// AtRange implements §4.6.7: on numeric bases, splits each segment at its
// crossings with v=r.Lo and v=r.Hi, then keeps the sub-segments whose
// midpoint falls inside r.
func (s Sequence) AtRange(r ValueRange, k geom.Kernel) ([]Sequence, error) {
	return s.restrictByRange(r, true, DefaultStepEndpointPolicy, k)
}

// AtRangeWithPolicy is AtRange with an explicit StepEndpointPolicy for the
// step-base boundary case.
func (s Sequence) AtRangeWithPolicy(r ValueRange, policy StepEndpointPolicy, k geom.Kernel) ([]Sequence, error) {
	return s.restrictByRange(r, true, policy, k)
}

// MinusRange implements §4.6.7's complement of AtRange.
func (s Sequence) MinusRange(r ValueRange, k geom.Kernel) ([]Sequence, error) {
	return s.restrictByRange(r, false, DefaultStepEndpointPolicy, k)
}

// MinusRangeWithPolicy is MinusRange with an explicit StepEndpointPolicy.
func (s Sequence) MinusRangeWithPolicy(r ValueRange, policy StepEndpointPolicy, k geom.Kernel) ([]Sequence, error) {
	return s.restrictByRange(r, false, policy, k)
}

// restrictByRange mirrors restrictByValue's segment walk: a step segment
// contributes its constant-value half-open range [a.t, b.t) whenever
// a.value's range membership matches keep, with the sequence's final
// boundary instant handled by policy the same way restrictByValue does.
// A linear segment is cut at its crossings with r.Lo and r.Hi (at most
// two interior points), and each resulting sub-interval is kept when its
// midpoint's value falls inside r with a membership matching keep.
func (s Sequence) restrictByRange(r ValueRange, keep bool, policy StepEndpointPolicy, k geom.Kernel) ([]Sequence, error) {
	if s.header.BaseType.Point() {
		return nil, fmt.Errorf("%w: at_range/minus_range require a numeric base", errs.ErrInvalidArgument)
	}

	if len(s.instants) == 1 {
		last := s.instants[0]
		if r.contains(last.value) == keep {
			return []Sequence{mustInstantSequence(last.value, last.t, s.interp)}, nil
		}

		return nil, nil
	}

	var out []Sequence

	for i := 0; i+1 < len(s.instants); i++ {
		a, b := s.instants[i], s.instants[i+1]
		isLastSeg := i+1 == len(s.instants)-1

		if !useLinear(s.header, s.interp) {
			inA := r.contains(a.value)
			if inA == keep {
				seq, err := NewSequence([]Instant{a, NewInstant(a.value, b.t)}, i == 0 && s.lowerInc, false, s.interp, true, k)
				if err != nil {
					return nil, err
				}
				out = append(out, seq)
			}
			if isLastSeg && r.contains(b.value) == keep {
				included := s.upperInc || policy == EndpointPolicyLeftEqualsValue
				if included {
					out = append(out, mustInstantSequence(b.value, b.t, s.interp))
				}
			}

			continue
		}

		breaks := []float64{0, 1}
		if f, ok := crossingFractionAtValue(s.header, a.value, b.value, r.Lo); ok {
			breaks = append(breaks, f)
		}
		if f, ok := crossingFractionAtValue(s.header, a.value, b.value, r.Hi); ok {
			breaks = append(breaks, f)
		}
		sort.Float64s(breaks)

		for j := 0; j+1 < len(breaks); j++ {
			f0, f1 := breaks[j], breaks[j+1]
			if f1-f0 <= epsilon.Value {
				continue
			}

			fm := (f0 + f1) / 2
			tm := a.t + period.Timestamp(fm*float64(b.t-a.t))
			vm, err := valueAtSegment(s.header, a.value, b.value, a.t, b.t, tm, s.interp, k)
			if err != nil {
				return nil, err
			}
			if r.contains(vm) != keep {
				continue
			}

			t0 := a.t + period.Timestamp(f0*float64(b.t-a.t))
			t1 := a.t + period.Timestamp(f1*float64(b.t-a.t))
			v0, err := valueAtSegment(s.header, a.value, b.value, a.t, b.t, t0, s.interp, k)
			if err != nil {
				return nil, err
			}
			v1, err := valueAtSegment(s.header, a.value, b.value, a.t, b.t, t1, s.interp, k)
			if err != nil {
				return nil, err
			}

			lowerInc := true
			if i == 0 && f0 == 0 {
				lowerInc = s.lowerInc
			}
			upperInc := true
			if isLastSeg && f1 == 1 {
				upperInc = s.upperInc
			}

			seq, err := NewSequence([]Instant{NewInstant(v0, t0), NewInstant(v1, t1)}, lowerInc, upperInc, s.interp, true, k)
			if err != nil {
				return nil, err
			}
			out = append(out, seq)
		}
	}

	return out, nil
}

// Append implements §4.6.8: appends inst if inst.t > last.t and inst is
// uniform with the sequence's header, re-normalizing the tail only.
func (s Sequence) Append(inst Instant, k geom.Kernel) (Sequence, error) {
	last := s.instants[len(s.instants)-1]
	if inst.t <= last.t {
		return Sequence{}, fmt.Errorf("%w: appended instant must be strictly after the sequence's last instant", errs.ErrInvalidArgument)
	}
	if err := checkUniform(s.header, inst.value); err != nil {
		return Sequence{}, err
	}

	instants := append(s.Instants(), inst)

	return NewSequence(instants, s.lowerInc, s.upperInc, s.interp, true, k)
}

// ShiftTime re-stamps every instant by delta, a monotonic affine
// re-parameterization that preserves normalization by construction
// (supplemented feature, MEOS tsequence_shift_scale_time).
func (s Sequence) ShiftTime(delta period.Timestamp) Sequence {
	instants := make([]Instant, len(s.instants))
	for i, inst := range s.instants {
		instants[i] = NewInstant(inst.value, inst.t+delta)
	}

	out := s
	out.instants = instants
	out.computeBoxes()
	out.trajectory = nil

	return out
}

// ScaleTime rescales every instant's timestamp around origin by factor.
func (s Sequence) ScaleTime(origin period.Timestamp, factor float64) Sequence {
	instants := make([]Instant, len(s.instants))
	for i, inst := range s.instants {
		scaled := origin + period.Timestamp(float64(inst.t-origin)*factor)
		instants[i] = NewInstant(inst.value, scaled)
	}

	out := s
	out.instants = instants
	out.computeBoxes()
	out.trajectory = nil

	return out
}
