package align

import (
	"github.com/kronos-db/kronos/base"
	"github.com/kronos-db/kronos/geom"
	"github.com/kronos-db/kronos/temporal"
)

// BinaryOp is a scalar operator lifted pointwise over two synchronized
// temporal sequences (spec §4.8: "teq, tlt, tdwithin, etc.").
type BinaryOp func(a, b base.Value) base.Value

// Lift synchronizes a and b and applies op to every aligned instant,
// reinstalling the result as a normalized sequence with the interpolation
// interp given by the caller. When crossings is true, op must be
// piecewise-linear so inserted crossings line up with op's true
// switching timestamps (§4.8).
func Lift(a, b temporal.Sequence, op BinaryOp, crossings bool, interp temporal.Interp, k geom.Kernel) (temporal.Sequence, error) {
	aligned, err := Synchronize(a, b, crossings, k)
	if err != nil {
		return temporal.Sequence{}, err
	}

	instants := make([]temporal.Instant, len(aligned.Times))
	for i, t := range aligned.Times {
		instants[i] = temporal.NewInstant(op(aligned.A[i], aligned.B[i]), t)
	}

	return temporal.NewSequence(instants, aligned.LowerInc, aligned.UpperInc, interp, true, k)
}

// Eq lifts base.Eq into teq.
func Eq(a, b base.Value) base.Value { return base.Bool(base.Eq(a, b)) }

// Lt lifts base.Lt into tlt.
func Lt(a, b base.Value) base.Value { return base.Bool(base.Lt(a, b)) }

// Le lifts base.Le into tle.
func Le(a, b base.Value) base.Value { return base.Bool(base.Le(a, b)) }

// Gt lifts base.Gt into tgt.
func Gt(a, b base.Value) base.Value { return base.Bool(base.Gt(a, b)) }

// Ge lifts base.Ge into tge.
func Ge(a, b base.Value) base.Value { return base.Bool(base.Ge(a, b)) }

// DWithin lifts a kernel's DWithin predicate into tdwithin over point
// bases at a fixed distance.
func DWithin(k geom.Kernel, dist float64) BinaryOp {
	return func(a, b base.Value) base.Value {
		ok, _ := k.DWithin(a.(base.Point), b.(base.Point), dist)

		return base.Bool(ok)
	}
}
