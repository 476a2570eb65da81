// Package box implements the bounding-box summaries of §4.3: NumBox for
// value×time pruning over scalar temporal values, and STBox for
// space×time pruning over point-based temporal values. Boxes are pure
// summaries — they never feed interpolation, only index-level pruning.
package box

import (
	"fmt"

	"github.com/kronos-db/kronos/base"
	"github.com/kronos-db/kronos/errs"
	"github.com/kronos-db/kronos/period"
)

// NumBox is a value×time bounding box. HasX/HasT report which axes are
// present; an axis absent on either operand makes Contains and the
// directional predicates on that axis fail with errs.ErrIncompatibleBox.
// Union and Intersection never fail: Union keeps an axis present on only
// one operand, and Intersection compares only the axes both operands have.
type NumBox struct {
	XMin, XMax float64
	TMin, TMax period.Timestamp
	HasX, HasT bool
}

// FromBase constructs a zero-width box from a single base value and
// timestamp. HasX is false when v has no double projection (e.g. Bool,
// Text), in which case only the time axis is populated.
func FromBase(v base.Value, t period.Timestamp) NumBox {
	b := NumBox{TMin: t, TMax: t, HasT: true}
	if d, ok := base.AsDouble(v); ok {
		b.XMin, b.XMax, b.HasX = d, d, true
	}

	return b
}

// Union returns the smallest box containing both a and b.
func (a NumBox) Union(b NumBox) NumBox {
	out := NumBox{}
	if a.HasX && b.HasX {
		out.HasX = true
		out.XMin = min(a.XMin, b.XMin)
		out.XMax = max(a.XMax, b.XMax)
	} else if a.HasX {
		out.HasX, out.XMin, out.XMax = true, a.XMin, a.XMax
	} else if b.HasX {
		out.HasX, out.XMin, out.XMax = true, b.XMin, b.XMax
	}

	if a.HasT && b.HasT {
		out.HasT = true
		out.TMin = minTS(a.TMin, b.TMin)
		out.TMax = maxTS(a.TMax, b.TMax)
	} else if a.HasT {
		out.HasT, out.TMin, out.TMax = true, a.TMin, a.TMax
	} else if b.HasT {
		out.HasT, out.TMin, out.TMax = true, b.TMin, b.TMax
	}

	return out
}

// Intersection returns the overlap of a and b on axes present on both, and
// false if they don't overlap on every shared axis.
func (a NumBox) Intersection(b NumBox) (NumBox, bool) {
	out := NumBox{}
	if a.HasX && b.HasX {
		lo, hi := max(a.XMin, b.XMin), min(a.XMax, b.XMax)
		if lo > hi {
			return NumBox{}, false
		}
		out.HasX, out.XMin, out.XMax = true, lo, hi
	}
	if a.HasT && b.HasT {
		lo, hi := maxTS(a.TMin, b.TMin), minTS(a.TMax, b.TMax)
		if lo > hi {
			return NumBox{}, false
		}
		out.HasT, out.TMin, out.TMax = true, lo, hi
	}

	return out, true
}

// Contains reports whether b is entirely contained in a on every axis a has.
func (a NumBox) Contains(b NumBox) (bool, error) {
	if a.HasX != b.HasX || a.HasT != b.HasT {
		return false, fmt.Errorf("%w: NumBox.Contains requires matching axes", errs.ErrIncompatibleBox)
	}
	if a.HasX && (b.XMin < a.XMin || b.XMax > a.XMax) {
		return false, nil
	}
	if a.HasT && (b.TMin < a.TMin || b.TMax > a.TMax) {
		return false, nil
	}

	return true, nil
}

// Left reports whether a's value range lies strictly left of (below) b's.
func (a NumBox) Left(b NumBox) (bool, error) {
	if !a.HasX || !b.HasX {
		return false, fmt.Errorf("%w: NumBox.Left requires the value axis on both operands", errs.ErrIncompatibleBox)
	}

	return a.XMax < b.XMin, nil
}

// Right reports whether a's value range lies strictly right of (above) b's.
func (a NumBox) Right(b NumBox) (bool, error) {
	if !a.HasX || !b.HasX {
		return false, fmt.Errorf("%w: NumBox.Right requires the value axis on both operands", errs.ErrIncompatibleBox)
	}

	return a.XMin > b.XMax, nil
}

// Before reports whether a's time range lies strictly before b's.
func (a NumBox) Before(b NumBox) (bool, error) {
	if !a.HasT || !b.HasT {
		return false, fmt.Errorf("%w: NumBox.Before requires the time axis on both operands", errs.ErrIncompatibleBox)
	}

	return a.TMax < b.TMin, nil
}

// After reports whether a's time range lies strictly after b's.
func (a NumBox) After(b NumBox) (bool, error) {
	if !a.HasT || !b.HasT {
		return false, fmt.Errorf("%w: NumBox.After requires the time axis on both operands", errs.ErrIncompatibleBox)
	}

	return a.TMin > b.TMax, nil
}

// OverLeft reports whether a's value range extends no further right than
// b's (a.XMax <= b.XMax), the "doesn't extend past" family of directional
// predicates used for index pruning.
func (a NumBox) OverLeft(b NumBox) (bool, error) {
	if !a.HasX || !b.HasX {
		return false, fmt.Errorf("%w: NumBox.OverLeft requires the value axis on both operands", errs.ErrIncompatibleBox)
	}

	return a.XMax <= b.XMax, nil
}

// OverRight reports whether a's value range extends no further left than
// b's (a.XMin >= b.XMin).
func (a NumBox) OverRight(b NumBox) (bool, error) {
	if !a.HasX || !b.HasX {
		return false, fmt.Errorf("%w: NumBox.OverRight requires the value axis on both operands", errs.ErrIncompatibleBox)
	}

	return a.XMin >= b.XMin, nil
}

func minTS(a, b period.Timestamp) period.Timestamp {
	if a < b {
		return a
	}

	return b
}

func maxTS(a, b period.Timestamp) period.Timestamp {
	if a > b {
		return a
	}

	return b
}
