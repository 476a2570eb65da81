// Package base implements the uniform base-value abstraction of §4.1: a
// closed set of scalar and point codomains shared by every duration
// variant in package temporal, with equality, total order (where defined),
// double-precision projection, and a per-type continuity flag.
package base

// Type tags the closed set of base codomains a Value can carry.
type Type uint8

const (
	// TypeBool tags a boolean base value. Step-only.
	TypeBool Type = iota + 1
	// TypeInt32 tags a 32-bit signed integer base value. Step-only, but
	// projects losslessly to float64 via AsDouble.
	TypeInt32
	// TypeFloat64 tags a double-precision float base value. Continuous.
	TypeFloat64
	// TypeText tags a UTF-8 string base value, ordered by byte order
	// under the default collation. Step-only.
	TypeText
	// TypeDouble2 tags a helper 2-tuple of float64, used by aggregation
	// (e.g. the (sum, sample count) pair backing agg's running average).
	// Continuous.
	TypeDouble2
	// TypeDouble3 tags a helper 3-tuple of float64. Continuous.
	TypeDouble3
	// TypeDouble4 tags a helper 4-tuple of float64. Continuous.
	TypeDouble4
	// TypeGeometry tags a planar (x, y, [z]) point base value. Continuous.
	TypeGeometry
	// TypeGeography tags a geodetic (lon, lat, [z]) point base value on a
	// given SRID. Continuous.
	TypeGeography
)

// String returns the canonical lowercase name of the type, used by the
// textual canonical form in package wire.
func (t Type) String() string {
	switch t {
	case TypeBool:
		return "bool"
	case TypeInt32:
		return "int32"
	case TypeFloat64:
		return "float64"
	case TypeText:
		return "text"
	case TypeDouble2:
		return "double2"
	case TypeDouble3:
		return "double3"
	case TypeDouble4:
		return "double4"
	case TypeGeometry:
		return "geometry"
	case TypeGeography:
		return "geography"
	default:
		return "unknown"
	}
}

// Continuous reports whether values of this type support linear
// interpolation between two timestamped samples. Step-only bases
// (Bool, Int32, Text) are never continuous regardless of the sequence's
// requested interpolation mode (spec §3.1).
func (t Type) Continuous() bool {
	switch t {
	case TypeFloat64, TypeDouble2, TypeDouble3, TypeDouble4, TypeGeometry, TypeGeography:
		return true
	default:
		return false
	}
}

// Point reports whether the type is a 2D/3D geometric or geographic point.
func (t Type) Point() bool {
	return t == TypeGeometry || t == TypeGeography
}
