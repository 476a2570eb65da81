package geom

import (
	"fmt"
	"math"

	"github.com/kronos-db/kronos/base"
	"github.com/kronos-db/kronos/errs"
	"github.com/kronos-db/kronos/internal/options"
)

// earthRadiusMeters is the mean Earth radius used by the haversine
// GeoDistance implementation.
const earthRadiusMeters = 6371008.8

// Planar is a minimal, dependency-free Kernel good enough to exercise
// trajectories, 2D/3D distance, and dwithin in tests: planar Euclidean
// distance for Geometry points, haversine great-circle distance for
// Geography points, and an equirectangular approximation (parameterized
// by GaussKruegerParams, never a package-level mutable) for
// geographic<->planar reprojection. Production deployments are expected
// to supply a real geometry library's Kernel implementation instead.
type Planar struct {
	gk GaussKruegerParams
}

var _ Kernel = Planar{}

// Option configures a Planar kernel.
type Option = options.Option[*Planar]

// WithGaussKrueger overrides the default Gauss-Krüger projection
// parameters used by ToPlanar/ToGeographic.
func WithGaussKrueger(p GaussKruegerParams) Option {
	return options.NoError(func(target *Planar) { target.gk = p })
}

// NewPlanar constructs a Planar kernel with the default WGS84 Gauss-Krüger
// parameters, or the overrides given by opts.
func NewPlanar(opts ...Option) (*Planar, error) {
	k := &Planar{gk: DefaultGaussKrueger()}
	if err := options.Apply(k, opts...); err != nil {
		return nil, err
	}

	return k, nil
}

// LineFromPoints implements Kernel.
func (k Planar) LineFromPoints(points []base.Point) (Line, error) {
	if len(points) == 0 {
		return Line{}, fmt.Errorf("%w: cannot build a trajectory from zero points", errs.ErrEmptyGeometry)
	}

	out := make([]base.Point, len(points))
	copy(out, points)

	return Line{Points: out}, nil
}

// LineLocatePoint implements Kernel by finding the closest segment and the
// fraction of total length reached at the closest point on that segment.
func (k Planar) LineLocatePoint(line Line, p base.Point) (float64, error) {
	if len(line.Points) == 0 {
		return 0, fmt.Errorf("%w: empty trajectory", errs.ErrEmptyGeometry)
	}
	if len(line.Points) == 1 {
		return 0, nil
	}

	total, err := k.LineLength(line)
	if err != nil {
		return 0, err
	}
	if total == 0 {
		return 0, nil
	}

	var traveled float64
	best, bestDist := 0.0, math.Inf(1)
	for i := 0; i+1 < len(line.Points); i++ {
		a, b := line.Points[i], line.Points[i+1]
		segLen, err := k.segmentDistance(a, b)
		if err != nil {
			return 0, err
		}

		frac, dist := closestFraction(a, b, p)
		if dist < bestDist {
			bestDist = dist
			best = (traveled + frac*segLen) / total
		}
		traveled += segLen
	}

	return best, nil
}

// closestFraction returns the fraction along segment a->b closest to p
// (in the segment's own coordinate axes, ignoring Z) and the distance to
// that closest point.
func closestFraction(a, b, p base.Point) (float64, float64) {
	dx, dy := b.X-a.X, b.Y-a.Y
	denom := dx*dx + dy*dy
	if denom == 0 {
		return 0, math.Hypot(p.X-a.X, p.Y-a.Y)
	}

	t := ((p.X-a.X)*dx + (p.Y-a.Y)*dy) / denom
	if t < 0 {
		t = 0
	}
	if t > 1 {
		t = 1
	}

	cx, cy := a.X+t*dx, a.Y+t*dy

	return t, math.Hypot(p.X-cx, p.Y-cy)
}

// LineInterpolatePoint implements Kernel with linear interpolation on
// each coordinate axis present.
func (k Planar) LineInterpolatePoint(a, b base.Point, fraction float64) (base.Point, error) {
	out := base.Point{
		X:        a.X + (b.X-a.X)*fraction,
		Y:        a.Y + (b.Y-a.Y)*fraction,
		HasZ:     a.HasZ && b.HasZ,
		Geodetic: a.Geodetic,
		SRID:     a.SRID,
	}
	if out.HasZ {
		out.Z = a.Z + (b.Z-a.Z)*fraction
	}

	return out, nil
}

func (k Planar) segmentDistance(a, b base.Point) (float64, error) {
	if a.Geodetic {
		return k.GeoDistance(a, b)
	}

	return k.Distance3D(a, b)
}

// LineLength implements Kernel.
func (k Planar) LineLength(line Line) (float64, error) {
	var total float64
	for i := 0; i+1 < len(line.Points); i++ {
		d, err := k.segmentDistance(line.Points[i], line.Points[i+1])
		if err != nil {
			return 0, err
		}
		total += d
	}

	return total, nil
}

// BestSRID implements Kernel by returning the fixed SRID 32600 for every
// pair of points; no zone is chosen from the coordinates of a and b.
func (k Planar) BestSRID(a, b base.Point) (int32, error) {
	return 32600, nil
}

// ToPlanar implements Kernel using an equirectangular projection centered
// on the configured GaussKruegerParams central meridian, a deliberately
// simplified stand-in for a real Gauss-Krüger/UTM projection.
func (k Planar) ToPlanar(p base.Point, srid int32) (base.Point, error) {
	if !p.Geodetic {
		return p, nil
	}

	latRad := p.Y * math.Pi / 180
	lonRad := (p.X - k.gk.CentralMeridian) * math.Pi / 180
	x := k.gk.ScaleFactor*k.gk.SemiMajorAxis*lonRad*math.Cos(latRad) + k.gk.FalseEasting
	y := k.gk.ScaleFactor*k.gk.SemiMajorAxis*latRad + k.gk.FalseNorthing

	return base.Point{X: x, Y: y, Z: p.Z, HasZ: p.HasZ, Geodetic: false, SRID: srid}, nil
}

// ToGeographic implements Kernel as the inverse of ToPlanar.
func (k Planar) ToGeographic(p base.Point, srid int32) (base.Point, error) {
	if p.Geodetic {
		return p, nil
	}

	lat := (p.Y - k.gk.FalseNorthing) / (k.gk.ScaleFactor * k.gk.SemiMajorAxis)
	lon := (p.X-k.gk.FalseEasting)/(k.gk.ScaleFactor*k.gk.SemiMajorAxis*math.Cos(lat)) * 180 / math.Pi
	lat = lat * 180 / math.Pi
	lon += k.gk.CentralMeridian

	return base.Point{X: lon, Y: lat, Z: p.Z, HasZ: p.HasZ, Geodetic: true, SRID: 4326}, nil
}

// Distance2D implements Kernel.
func (k Planar) Distance2D(a, b base.Point) (float64, error) {
	if a.Geodetic != b.Geodetic {
		return 0, fmt.Errorf("%w: mismatched geodetic flag", errs.ErrMixedDimensionality)
	}

	return math.Hypot(a.X-b.X, a.Y-b.Y), nil
}

// Distance3D implements Kernel.
func (k Planar) Distance3D(a, b base.Point) (float64, error) {
	if a.HasZ != b.HasZ {
		return 0, fmt.Errorf("%w: mismatched Z-flag", errs.ErrMixedDimensionality)
	}
	if !a.HasZ {
		return k.Distance2D(a, b)
	}

	dx, dy, dz := a.X-b.X, a.Y-b.Y, a.Z-b.Z

	return math.Sqrt(dx*dx + dy*dy + dz*dz), nil
}

// GeoDistance implements Kernel using the haversine great-circle formula.
func (k Planar) GeoDistance(a, b base.Point) (float64, error) {
	if !a.Geodetic || !b.Geodetic {
		return 0, fmt.Errorf("%w: GeoDistance requires geographic points", errs.ErrMixedDimensionality)
	}

	lat1, lat2 := a.Y*math.Pi/180, b.Y*math.Pi/180
	dLat := (b.Y - a.Y) * math.Pi / 180
	dLon := (b.X - a.X) * math.Pi / 180

	sinLat := math.Sin(dLat / 2)
	sinLon := math.Sin(dLon / 2)
	h := sinLat*sinLat + math.Cos(lat1)*math.Cos(lat2)*sinLon*sinLon

	return 2 * earthRadiusMeters * math.Asin(math.Sqrt(h)), nil
}

// Intersects implements Kernel as exact-location equality.
func (k Planar) Intersects(a, b base.Point) (bool, error) {
	return base.Eq(a, b), nil
}

// DWithin implements Kernel.
func (k Planar) DWithin(a, b base.Point, dist float64) (bool, error) {
	var (
		d   float64
		err error
	)
	switch {
	case a.Geodetic:
		d, err = k.GeoDistance(a, b)
	case a.HasZ:
		d, err = k.Distance3D(a, b)
	default:
		d, err = k.Distance2D(a, b)
	}
	if err != nil {
		return false, err
	}

	return d <= dist, nil
}
