// Package kronos provides convenient top-level wrappers around the
// temporal engine's component packages (temporal, align, agg, wire,
// geom), mirroring the teacher's "thin root-level convenience API"
// shape: construct a duration variant, synchronize or lift two of them,
// fold a stream through an aggregation state, and serialize the result —
// without importing every component package by hand.
//
// For advanced usage and fine-grained control, use the component
// packages directly.
package kronos

import (
	"github.com/kronos-db/kronos/agg"
	"github.com/kronos-db/kronos/align"
	"github.com/kronos-db/kronos/base"
	"github.com/kronos-db/kronos/geom"
	"github.com/kronos-db/kronos/period"
	"github.com/kronos-db/kronos/temporal"
	"github.com/kronos-db/kronos/wire"
)

// NewInstant constructs a single (value, timestamp) duration variant.
func NewInstant(v base.Value, t period.Timestamp) temporal.Instant {
	return temporal.NewInstant(v, t)
}

// NewInstantSet constructs a sorted, strictly time-increasing set of
// instants. Inputs must already be sorted.
func NewInstantSet(instants []temporal.Instant) (temporal.InstantSet, error) {
	return temporal.NewInstantSet(instants)
}

// NewSequence constructs a Sequence, the variant that defines a value
// between its recorded instants via interp. k is only required for
// point-valued sequences.
func NewSequence(instants []temporal.Instant, lowerInc, upperInc bool, interp temporal.Interp, normalize bool, k geom.Kernel) (temporal.Sequence, error) {
	return temporal.NewSequence(instants, lowerInc, upperInc, interp, normalize, k)
}

// NewSequenceSet constructs a disjoint, adjacent-merged collection of
// sequences.
func NewSequenceSet(sequences []temporal.Sequence, k geom.Kernel) (temporal.SequenceSet, error) {
	return temporal.NewSequenceSet(sequences, k)
}

// NewPlanarKernel constructs the dependency-free Planar geometry kernel,
// suitable when no production geometry library is wired in.
func NewPlanarKernel(opts ...geom.Option) (*geom.Planar, error) {
	return geom.NewPlanar(opts...)
}

// Synchronize aligns two sequences onto a common instant timeline,
// optionally inserting crossing instants where continuous segments swap
// order.
func Synchronize(a, b temporal.Sequence, crossings bool, k geom.Kernel) (align.Aligned, error) {
	return align.Synchronize(a, b, crossings, k)
}

// Lift synchronizes a and b and applies a binary scalar operator
// pointwise, reinstalling the result as a new sequence.
func Lift(a, b temporal.Sequence, op align.BinaryOp, crossings bool, interp temporal.Interp, k geom.Kernel) (temporal.Sequence, error) {
	return align.Lift(a, b, op, crossings, interp, k)
}

// NewAggregationState constructs an empty skip-list aggregation state.
// timeWeighted is stored on the state; agg.Integral and agg.TWAvg do not
// read it.
func NewAggregationState(timeWeighted bool) *agg.State {
	return agg.NewState(timeWeighted)
}

// EncodeSequence serializes a Sequence to the canonical binary wire
// format.
func EncodeSequence(s temporal.Sequence, opts ...wire.Option) ([]byte, error) {
	return wire.EncodeSequence(s, opts...)
}

// DecodeSequence parses a buffer produced by EncodeSequence.
func DecodeSequence(data []byte, k geom.Kernel, opts ...wire.Option) (temporal.Sequence, error) {
	return wire.DecodeSequence(data, k, opts...)
}
