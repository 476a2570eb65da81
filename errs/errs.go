// Package errs defines the sentinel errors returned across the kronos
// temporal engine. Every constructor and operator wraps one of these with
// fmt.Errorf("%w: ...") so callers can match on the sentinel via errors.Is
// while still getting a descriptive message.
package errs

import "errors"

var (
	// ErrInvalidArgument marks a constructor invariant violation: bad
	// ordering, empty input, mismatched headers, and similar structural
	// problems caught before any value is produced.
	ErrInvalidArgument = errors.New("kronos: invalid argument")

	// ErrNonContinuousExclusiveUpperBound is returned when a sequence is
	// built with a non-continuous base, an exclusive upper bound, and a
	// last instant whose value differs from the second-to-last.
	ErrNonContinuousExclusiveUpperBound = errors.New("kronos: exclusive upper bound on non-continuous base requires equal trailing values")

	// ErrMixedSRID is returned when instants of a point-based temporal
	// value do not share a single SRID.
	ErrMixedSRID = errors.New("kronos: mixed SRID across instants")

	// ErrMixedDimensionality is returned when instants of a point-based
	// temporal value do not share the same Z-flag (2D vs 3D).
	ErrMixedDimensionality = errors.New("kronos: mixed dimensionality across instants")

	// ErrEmptyGeometry is returned by a GeomKernel operation given a
	// degenerate or empty geometry input.
	ErrEmptyGeometry = errors.New("kronos: empty geometry")

	// ErrNoIntersection is returned by synchronize when two temporal
	// values have disjoint time domains.
	ErrNoIntersection = errors.New("kronos: no time intersection")

	// ErrInterpolationOutOfBounds is returned when a value_at fraction
	// falls outside [0,1] by more than epsilon, or an interpolation
	// intermediate is non-finite.
	ErrInterpolationOutOfBounds = errors.New("kronos: interpolation fraction out of bounds")

	// ErrUnsupportedInterpolation is returned by aggregates that require a
	// continuous base (twAvg, integral) when given a step-only input.
	ErrUnsupportedInterpolation = errors.New("kronos: operation requires continuous interpolation")

	// ErrIncompatibleBox is returned by a bounding-box operation when the
	// operands do not share the axes the operation needs.
	ErrIncompatibleBox = errors.New("kronos: incompatible bounding box axes")

	// ErrCancelled is returned when a host-signaled cancellation is
	// observed at the top of an outer loop.
	ErrCancelled = errors.New("kronos: operation cancelled")

	// ErrInternal marks a condition the engine believes is unreachable.
	ErrInternal = errors.New("kronos: internal error")
)
