package agg

import (
	"fmt"

	"github.com/kronos-db/kronos/base"
	"github.com/kronos-db/kronos/errs"
	"github.com/kronos-db/kronos/temporal"
)

// Min lifts base.Lt into the natural "smaller wins" merge operator.
func Min(a, b base.Value) base.Value {
	if base.Lt(b, a) {
		return b
	}

	return a
}

// Max lifts base.Lt into the natural "larger wins" merge operator.
func Max(a, b base.Value) base.Value {
	if base.Lt(a, b) {
		return b
	}

	return a
}

// Sum adds two numeric (or componentwise Double2/3/4) base values. Panics
// are never raised; non-numeric operands, or a b whose type differs from
// a's, return a unchanged (defensive default matching the "identity on
// mismatch" contract used elsewhere).
func Sum(a, b base.Value) base.Value {
	switch x := a.(type) {
	case base.Int32:
		if y, ok := b.(base.Int32); ok {
			return base.Int32(x + y)
		}
	case base.Float64:
		if y, ok := b.(base.Float64); ok {
			return base.Float64(x + y)
		}
	case base.Double2:
		if y, ok := b.(base.Double2); ok {
			return base.Double2{x[0] + y[0], x[1] + y[1]}
		}
	case base.Double3:
		if y, ok := b.(base.Double3); ok {
			return base.Double3{x[0] + y[0], x[1] + y[1], x[2] + y[2]}
		}
	case base.Double4:
		if y, ok := b.(base.Double4); ok {
			return base.Double4{x[0] + y[0], x[1] + y[1], x[2] + y[2], x[3] + y[3]}
		}
	}

	return a
}

// AvgSeed wraps a scalar sample into a Double2(value, 1) so Sum
// accumulates both the running total and the running sample count, which
// FinalizeAvg divides. The second component counts samples; it does not
// weight them by duration.
func AvgSeed(v base.Value) (base.Value, error) {
	d, ok := base.AsDouble(v)
	if !ok {
		return nil, fmt.Errorf("%w: avg requires a numeric base, got %T", errs.ErrInvalidArgument, v)
	}

	return base.Double2{d, 1}, nil
}

// FinalizeAvg divides the accumulated (sum, count) pair at every instant of
// every merged sequence and returns the Float64 averages as one flat slice,
// in sequence and instant order. st must have been built by merging
// AvgSeed-wrapped values with Sum as the merge op.
func (st *State) FinalizeAvg() ([]base.Value, error) {
	out := make([]base.Value, 0)
	for _, seq := range st.sequences {
		for i := 0; i < seq.Len(); i++ {
			pair, ok := seq.At(i).Value().(base.Double2)
			if !ok {
				return nil, fmt.Errorf("%w: FinalizeAvg requires a Double2-valued state", errs.ErrInvalidArgument)
			}
			if pair[1] == 0 {
				return nil, fmt.Errorf("%w: avg finalize with zero sample count", errs.ErrInternal)
			}
			out = append(out, base.Float64(pair[0]/pair[1]))
		}
	}

	return out, nil
}

// Integral computes the time-weighted area under st's merged sequences
// (§4.9's twAvg/integral family): trapezoidal for Linear segments,
// left-Riemann (value held until the next instant) for Step segments.
// Rejects step-only (non-continuous) bases via requireContinuous.
func Integral(st *State) (float64, error) {
	if err := requireContinuous(st); err != nil {
		return 0, err
	}

	var total float64
	for _, seq := range st.sequences {
		for i := 0; i < seq.Len()-1; i++ {
			a, b := seq.At(i), seq.At(i+1)
			va, ok := base.AsDouble(a.Value())
			if !ok {
				return 0, fmt.Errorf("%w: integral requires a numeric base", errs.ErrInvalidArgument)
			}
			vb, _ := base.AsDouble(b.Value())
			dt := float64(b.Timestamp() - a.Timestamp())

			if seq.Interp() == temporal.Step {
				total += va * dt
			} else {
				total += (va + vb) / 2 * dt
			}
		}
	}

	return total, nil
}

// TWAvg returns st's time-weighted average: Integral divided by the
// running total duration accumulated across every merged value.
func TWAvg(st *State) (float64, error) {
	integral, err := Integral(st)
	if err != nil {
		return 0, err
	}
	if st.totalMicros == 0 {
		return 0, fmt.Errorf("%w: time-weighted average over zero duration", errs.ErrInternal)
	}

	return integral / float64(st.totalMicros), nil
}
