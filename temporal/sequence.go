package temporal

import (
	"fmt"
	"sort"
	"strings"

	"github.com/kronos-db/kronos/base"
	"github.com/kronos-db/kronos/box"
	"github.com/kronos-db/kronos/errs"
	"github.com/kronos-db/kronos/geom"
	"github.com/kronos-db/kronos/period"
)

// Sequence is an ordered run of instants sharing one interpolation flag
// and one pair of bound-inclusivity flags — the variant that actually
// defines a value between its recorded instants (component F, spec
// §3.3, §4.6).
type Sequence struct {
	header             Header
	instants           []Instant
	lowerInc, upperInc bool
	interp             Interp
	bbox               box.NumBox
	stbox              box.STBox
	trajectory         *geom.Line
}

// NewSequence validates and constructs a Sequence per §4.6.6. When
// normalize is true the §4.6.4 sweep runs before the bounds/bbox are
// computed. k is only required for point bases and only when normalize
// is true (normalization needs the interpolation contract, which for
// point bases consults the kernel); pass nil for non-point sequences.
func NewSequence(instants []Instant, lowerInc, upperInc bool, interp Interp, normalize bool, k geom.Kernel) (Sequence, error) {
	if len(instants) == 0 {
		return Sequence{}, fmt.Errorf("%w: empty sequence", errs.ErrInvalidArgument)
	}

	h := instants[0].header
	for i, inst := range instants {
		if err := checkUniform(h, inst.value); err != nil {
			return Sequence{}, err
		}
		if i > 0 && inst.t <= instants[i-1].t {
			return Sequence{}, fmt.Errorf("%w: sequence instants must be strictly increasing in time", errs.ErrInvalidArgument)
		}
	}

	if len(instants) == 1 && !(lowerInc && upperInc) {
		return Sequence{}, fmt.Errorf("%w: an instantaneous sequence must be closed on both bounds", errs.ErrInvalidArgument)
	}

	s := Sequence{header: h, instants: instants, lowerInc: lowerInc, upperInc: upperInc, interp: interp}

	if normalize {
		s.instants = normalizeInstants(h, s.instants, interp, k)
	}

	if err := s.checkCanonicalBounds(); err != nil {
		return Sequence{}, err
	}

	s.computeBoxes()
	if h.BaseType.Point() && k != nil {
		if line, err := k.LineFromPoints(pointsOf(s.instants)); err == nil {
			s.trajectory = &line
		}
	}

	return s, nil
}

func pointsOf(instants []Instant) []base.Point {
	out := make([]base.Point, len(instants))
	for i, inst := range instants {
		out[i] = inst.value.(base.Point)
	}

	return out
}

// checkCanonicalBounds implements §4.6.5: a right-exclusive sequence over
// a non-continuous base must have its last two instants equal in value.
func (s Sequence) checkCanonicalBounds() error {
	if s.upperInc || s.header.Continuous() || len(s.instants) < 2 {
		return nil
	}

	last, prev := s.instants[len(s.instants)-1], s.instants[len(s.instants)-2]
	if !base.Eq(last.value, prev.value) {
		return fmt.Errorf("%w: right-exclusive non-continuous sequence must repeat its final value", errs.ErrNonContinuousExclusiveUpperBound)
	}

	return nil
}

func (s *Sequence) computeBoxes() {
	s.bbox = box.FromBase(s.instants[0].value, s.instants[0].t)
	if s.header.BaseType.Point() {
		s.stbox = box.FromPoint(s.instants[0].value.(base.Point), s.instants[0].t)
	}
	for _, inst := range s.instants[1:] {
		s.bbox = s.bbox.Union(box.FromBase(inst.value, inst.t))
		if s.header.BaseType.Point() {
			s.stbox, _ = s.stbox.Union(box.FromPoint(inst.value.(base.Point), inst.t))
		}
	}
}

// normalizeInstants implements §4.6.4's single left-to-right sweep,
// dropping a middle instant b of (a,b,c) whenever the base is
// step-discrete and a.value=b.value, or a=b=c is a plateau, or a,b,c are
// collinear under interp.
func normalizeInstants(h Header, instants []Instant, interp Interp, k geom.Kernel) []Instant {
	if len(instants) < 3 {
		return instants
	}

	out := make([]Instant, 0, len(instants))
	out = append(out, instants[0])

	for i := 1; i < len(instants)-1; i++ {
		a, b, c := out[len(out)-1], instants[i], instants[i+1]

		if !useLinear(h, interp) && base.Eq(a.value, b.value) {
			continue
		}
		if base.Eq(a.value, b.value) && base.Eq(b.value, c.value) {
			continue
		}
		if ok, err := collinear(h, a.value, b.value, c.value, a.t, b.t, c.t, interp, k); err == nil && ok {
			continue
		}

		out = append(out, b)
	}

	out = append(out, instants[len(instants)-1])

	return out
}

// Header returns the sequence's base-type header.
func (s Sequence) Header() Header { return s.header }

// Interp returns the sequence's interpolation flag.
func (s Sequence) Interp() Interp { return s.interp }

// Len returns the number of recorded instants.
func (s Sequence) Len() int { return len(s.instants) }

// At returns the i-th instant.
func (s Sequence) At(i int) Instant { return s.instants[i] }

// Instants returns a copy of the underlying instant slice.
func (s Sequence) Instants() []Instant {
	out := make([]Instant, len(s.instants))
	copy(out, s.instants)

	return out
}

// Period returns the sequence's bounding period under its own
// inclusivity flags.
func (s Sequence) Period() period.Period {
	return period.Period{
		Lower: s.instants[0].t, Upper: s.instants[len(s.instants)-1].t,
		LowerInc: s.lowerInc, UpperInc: s.upperInc,
	}
}

// NumBox returns the cached value×time bounding box.
func (s Sequence) NumBox() box.NumBox { return s.bbox }

// STBox returns the cached space×time bounding box (point bases only).
func (s Sequence) STBox() box.STBox { return s.stbox }

// Trajectory returns the cached trajectory line for point-based
// sequences, if one was computed at construction time.
func (s Sequence) Trajectory() (geom.Line, bool) {
	if s.trajectory == nil {
		return geom.Line{}, false
	}

	return *s.trajectory, true
}

// segmentFor returns the index i such that t lies within
// [instants[i].t, instants[i+1].t], via binary search.
func (s Sequence) segmentFor(t period.Timestamp) (int, bool) {
	if !s.Period().Contains(t) {
		return 0, false
	}

	i := sort.Search(len(s.instants), func(i int) bool { return s.instants[i].t > t }) - 1
	if i >= len(s.instants)-1 {
		return len(s.instants) - 2, true
	}

	return i, true
}

// ValueAt implements §4.6.1's value_at contract, given k for point bases.
func (s Sequence) ValueAt(t period.Timestamp, k geom.Kernel) (base.Value, bool, error) {
	i, ok := s.segmentFor(t)
	if !ok {
		return nil, false, nil
	}

	a, b := s.instants[i], s.instants[i+1]
	v, err := valueAtSegment(s.header, a.value, b.value, a.t, b.t, t, s.interp, k)

	return v, true, err
}

// EverEquals reports whether any recorded instant equals v, using the
// cached bbox to prune numeric bases first.
func (s Sequence) EverEquals(v base.Value) bool {
	if d, ok := base.AsDouble(v); ok && s.bbox.HasX && (d < s.bbox.XMin || d > s.bbox.XMax) {
		return false
	}
	for _, inst := range s.instants {
		if base.Eq(inst.value, v) {
			return true
		}
	}

	return false
}

// AlwaysEquals reports whether every recorded instant equals v.
func (s Sequence) AlwaysEquals(v base.Value) bool {
	for _, inst := range s.instants {
		if !base.Eq(inst.value, v) {
			return false
		}
	}

	return true
}

// String renders the canonical textual form, e.g. "[v1@T1, v2@T2]".
func (s Sequence) String() string {
	parts := make([]string, len(s.instants))
	for i, inst := range s.instants {
		parts[i] = inst.String()
	}

	l, r := "[", ")"
	if !s.lowerInc {
		l = "("
	}
	if s.upperInc {
		r = "]"
	}

	return l + strings.Join(parts, ", ") + r
}
