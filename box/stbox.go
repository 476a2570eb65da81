package box

import (
	"fmt"

	"github.com/kronos-db/kronos/base"
	"github.com/kronos-db/kronos/errs"
	"github.com/kronos-db/kronos/period"
)

// STBox is a space×time bounding box over a point-based temporal value:
// x/y, optional z, and time, plus the geodetic flag and SRID the points
// were recorded in (spec §4.3).
type STBox struct {
	XMin, XMax, YMin, YMax, ZMin, ZMax float64
	TMin, TMax                         period.Timestamp
	HasX, HasZ, HasT, Geodetic         bool
	SRID                               int32
}

// FromPoint constructs a zero-width STBox from a single point value and
// timestamp.
func FromPoint(p base.Point, t period.Timestamp) STBox {
	b := STBox{
		XMin: p.X, XMax: p.X, YMin: p.Y, YMax: p.Y,
		TMin: t, TMax: t, HasX: true, HasT: true,
		Geodetic: p.Geodetic, SRID: p.SRID, HasZ: p.HasZ,
	}
	if p.HasZ {
		b.ZMin, b.ZMax = p.Z, p.Z
	}

	return b
}

func (a STBox) compatible(b STBox) error {
	if a.HasX && b.HasX && (a.Geodetic != b.Geodetic || a.SRID != b.SRID) {
		return fmt.Errorf("%w: mismatched SRID/geodetic flag", errs.ErrIncompatibleBox)
	}

	return nil
}

// Union returns the smallest STBox containing both a and b. The operands
// must agree on SRID/geodetic flag when both carry a spatial extent.
func (a STBox) Union(b STBox) (STBox, error) {
	if err := a.compatible(b); err != nil {
		return STBox{}, err
	}

	out := STBox{Geodetic: a.Geodetic, SRID: a.SRID}
	if a.HasX && b.HasX {
		out.HasX = true
		out.XMin, out.XMax = min(a.XMin, b.XMin), max(a.XMax, b.XMax)
		out.YMin, out.YMax = min(a.YMin, b.YMin), max(a.YMax, b.YMax)
	} else if a.HasX {
		out.HasX = true
		out.XMin, out.XMax, out.YMin, out.YMax = a.XMin, a.XMax, a.YMin, a.YMax
	} else if b.HasX {
		out.HasX = true
		out.XMin, out.XMax, out.YMin, out.YMax = b.XMin, b.XMax, b.YMin, b.YMax
	}

	if a.HasZ && b.HasZ {
		out.HasZ = true
		out.ZMin, out.ZMax = min(a.ZMin, b.ZMin), max(a.ZMax, b.ZMax)
	} else if a.HasZ {
		out.HasZ, out.ZMin, out.ZMax = true, a.ZMin, a.ZMax
	} else if b.HasZ {
		out.HasZ, out.ZMin, out.ZMax = true, b.ZMin, b.ZMax
	}

	if a.HasT && b.HasT {
		out.HasT = true
		out.TMin, out.TMax = minTS(a.TMin, b.TMin), maxTS(a.TMax, b.TMax)
	} else if a.HasT {
		out.HasT, out.TMin, out.TMax = true, a.TMin, a.TMax
	} else if b.HasT {
		out.HasT, out.TMin, out.TMax = true, b.TMin, b.TMax
	}

	return out, nil
}

// Intersects reports whether a and b overlap on every axis both have.
func (a STBox) Intersects(b STBox) (bool, error) {
	if err := a.compatible(b); err != nil {
		return false, err
	}
	if a.HasX && b.HasX && (a.XMax < b.XMin || b.XMax < a.XMin || a.YMax < b.YMin || b.YMax < a.YMin) {
		return false, nil
	}
	if a.HasZ && b.HasZ && (a.ZMax < b.ZMin || b.ZMax < a.ZMin) {
		return false, nil
	}
	if a.HasT && b.HasT && (a.TMax < b.TMin || b.TMax < a.TMin) {
		return false, nil
	}

	return true, nil
}

// Before reports whether a's time range lies strictly before b's.
func (a STBox) Before(b STBox) (bool, error) {
	if !a.HasT || !b.HasT {
		return false, fmt.Errorf("%w: STBox.Before requires the time axis on both operands", errs.ErrIncompatibleBox)
	}

	return a.TMax < b.TMin, nil
}

// After reports whether a's time range lies strictly after b's.
func (a STBox) After(b STBox) (bool, error) {
	if !a.HasT || !b.HasT {
		return false, fmt.Errorf("%w: STBox.After requires the time axis on both operands", errs.ErrIncompatibleBox)
	}

	return a.TMin > b.TMax, nil
}

// Left reports whether a's x-extent lies strictly left of b's.
func (a STBox) Left(b STBox) (bool, error) {
	if !a.HasX || !b.HasX {
		return false, fmt.Errorf("%w: STBox.Left requires the spatial axis on both operands", errs.ErrIncompatibleBox)
	}

	return a.XMax < b.XMin, nil
}

// Right reports whether a's x-extent lies strictly right of b's.
func (a STBox) Right(b STBox) (bool, error) {
	if !a.HasX || !b.HasX {
		return false, fmt.Errorf("%w: STBox.Right requires the spatial axis on both operands", errs.ErrIncompatibleBox)
	}

	return a.XMin > b.XMax, nil
}

// Above reports whether a's y-extent lies strictly above b's.
func (a STBox) Above(b STBox) (bool, error) {
	if !a.HasX || !b.HasX {
		return false, fmt.Errorf("%w: STBox.Above requires the spatial axis on both operands", errs.ErrIncompatibleBox)
	}

	return a.YMin > b.YMax, nil
}

// Below reports whether a's y-extent lies strictly below b's.
func (a STBox) Below(b STBox) (bool, error) {
	if !a.HasX || !b.HasX {
		return false, fmt.Errorf("%w: STBox.Below requires the spatial axis on both operands", errs.ErrIncompatibleBox)
	}

	return a.YMax < b.YMin, nil
}

// OverFront reports whether a's z-extent doesn't extend past b's far edge
// (a.ZMax <= b.ZMax).
func (a STBox) OverFront(b STBox) (bool, error) {
	if !a.HasZ || !b.HasZ {
		return false, fmt.Errorf("%w: STBox.OverFront requires the z axis on both operands", errs.ErrIncompatibleBox)
	}

	return a.ZMax <= b.ZMax, nil
}

// OverBack reports whether a's z-extent doesn't extend past b's near edge
// (a.ZMin >= b.ZMin).
func (a STBox) OverBack(b STBox) (bool, error) {
	if !a.HasZ || !b.HasZ {
		return false, fmt.Errorf("%w: STBox.OverBack requires the z axis on both operands", errs.ErrIncompatibleBox)
	}

	return a.ZMin >= b.ZMin, nil
}
