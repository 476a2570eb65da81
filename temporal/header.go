// Package temporal implements the four-variant temporal data model of
// §3.3 (Instant, InstantSet, Sequence, SequenceSet), the interpolation and
// segment-intersection kernel of §4.6.1-§4.6.3, and the normalization
// rules of §4.6.4 and §4.7 that reduce any of the four variants to
// canonical form.
package temporal

import (
	"fmt"

	"github.com/kronos-db/kronos/base"
	"github.com/kronos-db/kronos/errs"
)

// Interp selects how a Sequence's value is defined between two recorded
// instants.
type Interp uint8

const (
	// Step holds the earlier instant's value up to (but not including)
	// the next instant's timestamp.
	Step Interp = iota + 1
	// Linear interpolates continuously between instants. Only valid for
	// continuous base types (base.Type.Continuous); a Linear sequence
	// over a step-only base behaves as Step regardless (spec §3.1).
	Linear
)

// Header is the common structure shared by every duration variant: the
// base type plus the point-specific flags that must stay uniform across
// every instant of a point-based temporal value (spec §3.3, §4.10).
type Header struct {
	BaseType base.Type
	Geodetic bool
	HasZ     bool
	SRID     int32
}

// headerOf derives the header implied by a single base value.
func headerOf(v base.Value) Header {
	h := Header{BaseType: v.Type()}
	if p, ok := v.(base.Point); ok {
		h.Geodetic = p.Geodetic
		h.HasZ = p.HasZ
		h.SRID = p.SRID
	}

	return h
}

// checkUniform verifies that v matches h's base type and, for point
// bases, its SRID and Z-flag (spec §4.10: MixedSRID / MixedDimensionality).
func checkUniform(h Header, v base.Value) error {
	if v.Type() != h.BaseType {
		return fmt.Errorf("%w: expected base type %s, got %s", errs.ErrInvalidArgument, h.BaseType, v.Type())
	}
	if !h.BaseType.Point() {
		return nil
	}

	p := v.(base.Point)
	if p.SRID != h.SRID {
		return fmt.Errorf("%w: expected SRID %d, got %d", errs.ErrMixedSRID, h.SRID, p.SRID)
	}
	if p.HasZ != h.HasZ {
		return fmt.Errorf("%w: expected HasZ=%v, got %v", errs.ErrMixedDimensionality, h.HasZ, p.HasZ)
	}

	return nil
}

// Continuous reports whether the header's base type supports linear
// interpolation.
func (h Header) Continuous() bool { return h.BaseType.Continuous() }
