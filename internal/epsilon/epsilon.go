// Package epsilon centralizes the fraction-tolerance used by interpolation,
// collinearity, and crossing detection (spec §4.1: "epsilon applied to
// normalized fractions, never to absolute values").
package epsilon

// Value is the tolerance applied to normalized [0,1] interpolation fractions.
const Value = 1e-12

// ClampFraction clamps f to [0,1] when it falls outside by at most Value,
// and reports whether the (possibly clamped) fraction is within bounds.
func ClampFraction(f float64) (float64, bool) {
	switch {
	case f >= 0 && f <= 1:
		return f, true
	case f < 0 && f >= -Value:
		return 0, true
	case f > 1 && f <= 1+Value:
		return 1, true
	default:
		return f, false
	}
}

// WithinOpen reports whether f lies strictly inside (lo, hi) once both
// bounds are loosened by Value, i.e. f is not a boundary crossing.
func WithinOpen(f, lo, hi float64) bool {
	return f > lo+Value && f < hi-Value
}

// NearZero reports whether f is within Value of zero.
func NearZero(f float64) bool {
	return f > -Value && f < Value
}

// Equal reports whether a and b are within Value of each other, used for
// fraction comparisons (never for comparing raw base values).
func Equal(a, b float64) bool {
	d := a - b
	if d < 0 {
		d = -d
	}

	return d <= Value
}
