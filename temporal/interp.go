package temporal

import (
	"fmt"

	"github.com/kronos-db/kronos/base"
	"github.com/kronos-db/kronos/errs"
	"github.com/kronos-db/kronos/geom"
	"github.com/kronos-db/kronos/internal/epsilon"
	"github.com/kronos-db/kronos/period"
)

// useLinear reports whether a segment with the given header and interp
// flag actually interpolates, per §3.1: a Linear sequence over a
// step-only base behaves as Step regardless of the flag.
func useLinear(h Header, interp Interp) bool {
	return interp == Linear && h.Continuous()
}

// fraction computes (t-ta)/(tb-ta) as a float64 ratio, clamping it into
// [0,1] when it falls outside by at most ε (spec §4.6.1). Returns
// errs.ErrInterpolationOutOfBounds otherwise.
func fraction(ta, tb, t period.Timestamp) (float64, error) {
	span := float64(tb - ta)
	if span == 0 {
		return 0, nil
	}

	f := float64(t-ta) / span
	clamped, ok := epsilon.ClampFraction(f)
	if !ok {
		return 0, fmt.Errorf("%w: t outside [ta, tb] by more than epsilon", errs.ErrInterpolationOutOfBounds)
	}

	return clamped, nil
}

// valueAtSegment evaluates the segment (va@ta, vb@tb) at t per the
// interpolation contract of §4.6.1. k is only consulted for point bases
// and may be nil for non-point segments.
func valueAtSegment(h Header, va, vb base.Value, ta, tb, t period.Timestamp, interp Interp, k geom.Kernel) (base.Value, error) {
	if t == ta {
		return va, nil
	}
	if t == tb {
		return vb, nil
	}
	if !useLinear(h, interp) {
		return va, nil
	}

	f, err := fraction(ta, tb, t)
	if err != nil {
		return nil, err
	}

	if h.BaseType.Point() {
		return interpolatePoint(va.(base.Point), vb.(base.Point), f, k)
	}

	da, _ := base.AsDouble(va)
	db, _ := base.AsDouble(vb)
	v := da + (db-da)*f

	if h.BaseType == base.TypeInt32 {
		return base.Int32(int32(v)), nil
	}

	return base.Float64(v), nil
}

// interpolatePoint implements the point-base branch of §4.6.1: geographic
// points are reprojected to the segment's best planar SRID, interpolated
// there, then projected back.
func interpolatePoint(a, b base.Point, f float64, k geom.Kernel) (base.Value, error) {
	if k == nil {
		return nil, fmt.Errorf("%w: point interpolation requires a geometry kernel", errs.ErrInvalidArgument)
	}
	if !a.Geodetic {
		p, err := k.LineInterpolatePoint(a, b, f)

		return p, err
	}

	srid, err := k.BestSRID(a, b)
	if err != nil {
		return nil, err
	}

	pa, err := k.ToPlanar(a, srid)
	if err != nil {
		return nil, err
	}
	pb, err := k.ToPlanar(b, srid)
	if err != nil {
		return nil, err
	}

	mid, err := k.LineInterpolatePoint(pa, pb, f)
	if err != nil {
		return nil, err
	}

	back, err := k.ToGeographic(mid, srid)

	return back, err
}

// collinear implements §4.6.2: three consecutive instants a,b,c are
// collinear iff the segment (a,c) evaluated at b's timestamp equals b's
// value under the interpolation in effect.
func collinear(h Header, va, vb, vc base.Value, ta, tb, tc period.Timestamp, interp Interp, k geom.Kernel) (bool, error) {
	mid, err := valueAtSegment(h, va, vc, ta, tc, tb, interp, k)
	if err != nil {
		return false, err
	}

	return base.Eq(mid, vb), nil
}

// segmentIntersectionNumeric implements the numeric case of §4.6.3:
// solving v1(t) = v2(t) under linear interpolation of both segments.
func segmentIntersectionNumeric(x1, x2, x3, x4 float64) (float64, bool) {
	denom := x2 - x1 - x4 + x3
	if denom == 0 {
		return 0, false
	}

	f := (x3 - x1) / denom
	if f <= epsilon.Value || f >= 1-epsilon.Value {
		return 0, false
	}

	return f, true
}

// segmentIntersectionPoint implements the point case of §4.6.3: the local
// minimum of squared Euclidean distance between two linearly-moving
// points, returned only if the points are exactly equal there.
func segmentIntersectionPoint(s1, e1, s2, e2 base.Point) (float64, bool) {
	// Relative position p(t) = (s1-s2) + t*((e1-s1)-(e2-s2)); minimize |p(t)|^2.
	px, py := s1.X-s2.X, s1.Y-s2.Y
	vx, vy := (e1.X - s1.X) - (e2.X - s2.X), (e1.Y - s1.Y) - (e2.Y - s2.Y)

	denom := vx*vx + vy*vy
	if denom == 0 {
		return 0, false
	}

	f := -(px*vx + py*vy) / denom
	if f <= epsilon.Value || f >= 1-epsilon.Value {
		return 0, false
	}

	ax := s1.X + f*(e1.X-s1.X)
	ay := s1.Y + f*(e1.Y-s1.Y)
	bx := s2.X + f*(e2.X-s2.X)
	by := s2.Y + f*(e2.Y-s2.Y)

	if ax != bx || ay != by {
		return 0, false
	}

	return f, true
}

// segmentIntersection implements §4.6.3 for a pair of segments sharing
// the interval [ta, tb], dispatching on the shared base header. Returns
// the crossing timestamp and true only for a proper interior crossing.
func segmentIntersection(h Header, s1, e1, s2, e2 base.Value, ta, tb period.Timestamp) (period.Timestamp, bool, error) {
	if !h.Continuous() {
		return 0, false, nil
	}

	var f float64
	var ok bool

	if h.BaseType.Point() {
		f, ok = segmentIntersectionPoint(s1.(base.Point), e1.(base.Point), s2.(base.Point), e2.(base.Point))
	} else {
		x1, _ := base.AsDouble(s1)
		x2, _ := base.AsDouble(e1)
		x3, _ := base.AsDouble(s2)
		x4, _ := base.AsDouble(e2)
		f, ok = segmentIntersectionNumeric(x1, x2, x3, x4)
	}
	if !ok {
		return 0, false, nil
	}

	span := float64(tb - ta)
	t := ta + period.Timestamp(f*span)

	return t, true, nil
}

// SegmentIntersection exports segmentIntersection for package align, which
// needs §4.6.3's crossing detection when inserting crossing instants
// during synchronization (§4.8).
func SegmentIntersection(h Header, s1, e1, s2, e2 base.Value, ta, tb period.Timestamp) (period.Timestamp, bool, error) {
	return segmentIntersection(h, s1, e1, s2, e2, ta, tb)
}

// ValueAtSegment exports valueAtSegment for package align, which needs
// §4.6.1's interpolation contract to evaluate both sides at an inserted
// crossing timestamp.
func ValueAtSegment(h Header, va, vb base.Value, ta, tb, t period.Timestamp, interp Interp, k geom.Kernel) (base.Value, error) {
	return valueAtSegment(h, va, vb, ta, tb, t, interp, k)
}
