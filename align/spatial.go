package align

import (
	"github.com/kronos-db/kronos/base"
	"github.com/kronos-db/kronos/geom"
	"github.com/kronos-db/kronos/temporal"
)

// EverIntersects reports whether a and b's point-valued sequences ever
// occupy the same location over their shared period (supplemented
// feature: MEOS's etcontains/edwithin family, spec SUPPLEMENTED FEATURES).
func EverIntersects(a, b temporal.Sequence, k geom.Kernel) (bool, error) {
	lifted, err := Lift(a, b, func(x, y base.Value) base.Value {
		ok, _ := k.Intersects(x.(base.Point), y.(base.Point))

		return base.Bool(ok)
	}, false, temporal.Step, k)
	if err != nil {
		return false, err
	}

	return lifted.EverEquals(base.Bool(true)), nil
}

// AlwaysIntersects reports whether a and b's point-valued sequences
// always occupy the same location over their shared period.
func AlwaysIntersects(a, b temporal.Sequence, k geom.Kernel) (bool, error) {
	lifted, err := Lift(a, b, func(x, y base.Value) base.Value {
		ok, _ := k.Intersects(x.(base.Point), y.(base.Point))

		return base.Bool(ok)
	}, false, temporal.Step, k)
	if err != nil {
		return false, err
	}

	return lifted.AlwaysEquals(base.Bool(true)), nil
}

// EverDWithin reports whether a and b ever come within dist of each other
// over their shared period.
func EverDWithin(a, b temporal.Sequence, dist float64, k geom.Kernel) (bool, error) {
	lifted, err := Lift(a, b, DWithin(k, dist), false, temporal.Step, k)
	if err != nil {
		return false, err
	}

	return lifted.EverEquals(base.Bool(true)), nil
}

// AlwaysDWithin reports whether a and b always stay within dist of each
// other over their shared period.
func AlwaysDWithin(a, b temporal.Sequence, dist float64, k geom.Kernel) (bool, error) {
	lifted, err := Lift(a, b, DWithin(k, dist), false, temporal.Step, k)
	if err != nil {
		return false, err
	}

	return lifted.AlwaysEquals(base.Bool(true)), nil
}
