// Package geom defines the GeomKernel contract of §6.1/§4.10: the engine
// consumes point construction, trajectory interpolation, distance, and
// predicate operations as an opaque external capability rather than
// implementing a geometry library itself (spec §1 explicitly keeps the
// geometry/geography library out of the core's scope).
package geom

import "github.com/kronos-db/kronos/base"

// Line is the trajectory traced by a point-valued sequence: the ordered
// vertices a Kernel interpolates and measures along.
type Line struct {
	Points []base.Point
}

// Kernel is the capability the engine requires from an external
// geometry/geography library. Every method must be deterministic for
// identical byte inputs, must preserve SRID unless explicitly converting,
// and must return a typed error (never panic) on empty or degenerate
// input (spec §6.1).
type Kernel interface {
	// LineFromPoints builds a trajectory from the ordered vertices of a
	// point-valued sequence. Returns errs.ErrEmptyGeometry if points is
	// empty.
	LineFromPoints(points []base.Point) (Line, error)

	// LineLocatePoint returns the fraction along line at which p lies
	// closest, in [0,1].
	LineLocatePoint(line Line, p base.Point) (float64, error)

	// LineInterpolatePoint returns the point at the given fraction
	// (clamped to [0,1] by the caller) along a two-point segment.
	LineInterpolatePoint(a, b base.Point, fraction float64) (base.Point, error)

	// LineLength returns the total length of the trajectory under the
	// kernel's native distance metric (planar or geodetic).
	LineLength(line Line) (float64, error)

	// BestSRID picks a planar SRID appropriate for interpolating between
	// a and b, used before projecting geographic points into planar space
	// for a single segment's interpolation.
	BestSRID(a, b base.Point) (int32, error)

	// ToPlanar reprojects a geographic point into the given planar SRID.
	ToPlanar(p base.Point, srid int32) (base.Point, error)

	// ToGeographic reprojects a planar point back to geographic (SRID 4326).
	ToGeographic(p base.Point, srid int32) (base.Point, error)

	// Distance2D returns the planar Euclidean distance ignoring Z.
	Distance2D(a, b base.Point) (float64, error)

	// Distance3D returns the planar Euclidean distance including Z.
	Distance3D(a, b base.Point) (float64, error)

	// GeoDistance returns the great-circle (spherical/ellipsoidal)
	// distance between two geographic points, in meters.
	GeoDistance(a, b base.Point) (float64, error)

	// Intersects reports whether a and b represent the same location
	// under the kernel's tolerance.
	Intersects(a, b base.Point) (bool, error)

	// DWithin reports whether a and b are within dist of each other,
	// using Distance2D/Distance3D for planar points and GeoDistance for
	// geographic points.
	DWithin(a, b base.Point, dist float64) (bool, error)
}

// GaussKruegerParams carries the constants a Gauss-Krüger planar
// projection needs. The original C implementation kept these as
// process-wide mutable globals with no initialization guard (spec Design
// Note / Open Question ii); here they are an explicit, immutable value
// threaded through Kernel implementations that need a planar projection,
// never package-level mutable state.
type GaussKruegerParams struct {
	// SemiMajorAxis is the reference ellipsoid's semi-major axis, meters.
	SemiMajorAxis float64
	// InverseFlattening is the reference ellipsoid's inverse flattening.
	InverseFlattening float64
	// CentralMeridian is the projection's central meridian, in degrees.
	CentralMeridian float64
	// ScaleFactor is the central meridian scale factor.
	ScaleFactor float64
	// FalseEasting/FalseNorthing are the projection's false origin offsets.
	FalseEasting, FalseNorthing float64
}

// DefaultGaussKrueger returns the WGS84-ellipsoid Gauss-Krüger parameters
// for zone-independent use; callers needing a specific zone construct
// their own GaussKruegerParams with CentralMeridian set accordingly.
func DefaultGaussKrueger() GaussKruegerParams {
	return GaussKruegerParams{
		SemiMajorAxis:     6378137.0,
		InverseFlattening: 298.257223563,
		CentralMeridian:   0,
		ScaleFactor:       0.9996,
		FalseEasting:      500000,
		FalseNorthing:     0,
	}
}
