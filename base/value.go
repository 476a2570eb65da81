package base

import "strings"

// Value is a single base-type datum carried by a temporal instant. The
// concrete types below (Bool, Int32, Float64, Text, Double2, Double3,
// Double4, Point) are the only implementations; the set is closed by
// design (spec §1 Non-goals: no user-defined base types).
type Value interface {
	// Type returns the base type tag of the value.
	Type() Type
}

// Bool is a boolean base value.
type Bool bool

// Type implements Value.
func (Bool) Type() Type { return TypeBool }

// Int32 is a 32-bit signed integer base value.
type Int32 int32

// Type implements Value.
func (Int32) Type() Type { return TypeInt32 }

// Float64 is a double-precision float base value.
type Float64 float64

// Type implements Value.
func (Float64) Type() Type { return TypeFloat64 }

// Text is a UTF-8 string base value.
type Text string

// Type implements Value.
func (Text) Type() Type { return TypeText }

// Double2 is a helper 2-tuple base value.
type Double2 [2]float64

// Type implements Value.
func (Double2) Type() Type { return TypeDouble2 }

// Double3 is a helper 3-tuple base value.
type Double3 [3]float64

// Type implements Value.
func (Double3) Type() Type { return TypeDouble3 }

// Double4 is a helper 4-tuple base value.
type Double4 [4]float64

// Type implements Value.
func (Double4) Type() Type { return TypeDouble4 }

// Point is a 2D/3D geometric or geographic point base value. Geometry vs
// Geography is distinguished by Geodetic; both share this representation
// per §4.10 (the geometric adapter enforces uniform SRID/Z-flag across a
// point-based temporal value's instants).
type Point struct {
	X, Y, Z  float64
	HasZ     bool
	Geodetic bool
	SRID     int32
}

// Type implements Value.
func (p Point) Type() Type {
	if p.Geodetic {
		return TypeGeography
	}

	return TypeGeometry
}

// Clone returns a copy of v. Every Value implementation here is already
// immutable by value (no pointers, no shared backing arrays), so Clone is
// the identity; it exists to satisfy §4.1's "copy(a)" contract explicitly
// for callers that don't want to special-case the common case.
func Clone(v Value) Value {
	return v
}

// AsDouble projects a numeric base value to float64 for interpolation and
// bounding-box computation (§4.1). Int32 casts losslessly; Float64 passes
// through. Returns false for non-numeric bases.
func AsDouble(v Value) (float64, bool) {
	switch x := v.(type) {
	case Int32:
		return float64(x), true
	case Float64:
		return float64(x), true
	default:
		return 0, false
	}
}

// Eq reports whether a and b are equal under the base type's equality.
// Geometry/geography equality is structural (coordinates, SRID); text
// equality is exact byte comparison under the default collation. A NaN
// Float64 operand on either side is never equal to anything, including
// itself (spec Open Question iii).
func Eq(a, b Value) bool {
	if a.Type() != b.Type() {
		return false
	}

	switch x := a.(type) {
	case Bool:
		return x == b.(Bool)
	case Int32:
		return x == b.(Int32)
	case Float64:
		y := b.(Float64)
		if isNaN(float64(x)) || isNaN(float64(y)) {
			return false
		}

		return x == y
	case Text:
		return x == b.(Text)
	case Double2:
		y := b.(Double2)
		return x[0] == y[0] && x[1] == y[1]
	case Double3:
		y := b.(Double3)
		return x == y
	case Double4:
		y := b.(Double4)
		return x == y
	case Point:
		y := b.(Point)
		return x.SRID == y.SRID && x.Geodetic == y.Geodetic && x.HasZ == y.HasZ &&
			x.X == y.X && x.Y == y.Y && (!x.HasZ || x.Z == y.Z)
	default:
		return false
	}
}

// Ne is the negation of Eq.
func Ne(a, b Value) bool { return !Eq(a, b) }

// Lt reports whether a < b under the base type's total order. Defined for
// Bool, Int32, Float64, Text, and Geometry/Geography (lexicographic on
// x, then y, then z); returns false whenever a Float64 operand is NaN.
func Lt(a, b Value) bool {
	switch x := a.(type) {
	case Bool:
		y := b.(Bool)
		return !bool(x) && bool(y)
	case Int32:
		return x < b.(Int32)
	case Float64:
		y := b.(Float64)
		if isNaN(float64(x)) || isNaN(float64(y)) {
			return false
		}

		return x < y
	case Text:
		return strings.Compare(string(x), string(b.(Text))) < 0
	case Point:
		y := b.(Point)
		if x.X != y.X {
			return x.X < y.X
		}
		if x.Y != y.Y {
			return x.Y < y.Y
		}

		return x.Z < y.Z
	default:
		return false
	}
}

// Le reports whether a <= b.
func Le(a, b Value) bool { return Lt(a, b) || Eq(a, b) }

// Gt reports whether a > b.
func Gt(a, b Value) bool { return Lt(b, a) }

// Ge reports whether a >= b.
func Ge(a, b Value) bool { return Le(b, a) }

func isNaN(f float64) bool { return f != f }
