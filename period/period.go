package period

import (
	"fmt"

	"github.com/kronos-db/kronos/errs"
)

// Period is a possibly-instantaneous time interval with independently
// inclusive/exclusive bounds (spec §3.2). The invariant is
// lower < upper, or lower = upper with both bounds inclusive (an
// instantaneous period).
type Period struct {
	Lower, Upper       Timestamp
	LowerInc, UpperInc bool
}

// New validates and constructs a Period. Returns errs.ErrInvalidArgument if
// the bound invariant is violated.
func New(lower, upper Timestamp, lowerInc, upperInc bool) (Period, error) {
	p := Period{Lower: lower, Upper: upper, LowerInc: lowerInc, UpperInc: upperInc}
	if err := p.validate(); err != nil {
		return Period{}, err
	}

	return p, nil
}

func (p Period) validate() error {
	if p.Lower > p.Upper {
		return fmt.Errorf("%w: period lower %d > upper %d", errs.ErrInvalidArgument, p.Lower, p.Upper)
	}
	if p.Lower == p.Upper && !(p.LowerInc && p.UpperInc) {
		return fmt.Errorf("%w: instantaneous period must be closed on both bounds", errs.ErrInvalidArgument)
	}

	return nil
}

// Instant returns a closed, zero-width period at t.
func Instant(t Timestamp) Period {
	return Period{Lower: t, Upper: t, LowerInc: true, UpperInc: true}
}

// IsInstant reports whether the period has zero width.
func (p Period) IsInstant() bool {
	return p.Lower == p.Upper
}

// Contains reports whether t falls inside the period under its bound
// inclusivity.
func (p Period) Contains(t Timestamp) bool {
	if t < p.Lower || t > p.Upper {
		return false
	}
	if t == p.Lower && !p.LowerInc {
		return false
	}
	if t == p.Upper && !p.UpperInc {
		return false
	}

	return true
}

// Overlaps reports whether p and q share at least one timestamp. Two
// periods overlap iff neither's upper bound precedes the other's lower
// bound, accounting for inclusivity at equal timestamps.
func (p Period) Overlaps(q Period) bool {
	if p.Upper < q.Lower || (p.Upper == q.Lower && !(p.UpperInc && q.LowerInc)) {
		return false
	}
	if q.Upper < p.Lower || (q.Upper == p.Lower && !(q.UpperInc && p.LowerInc)) {
		return false
	}

	return true
}

// Adjacent reports whether p and q touch at exactly one bound such that
// their union forms a single period (one side closed, the other open, no
// gap and no overlap).
func (p Period) Adjacent(q Period) bool {
	if p.Upper == q.Lower && p.UpperInc != q.LowerInc && (p.UpperInc || q.LowerInc) {
		return true
	}
	if q.Upper == p.Lower && q.UpperInc != p.LowerInc && (q.UpperInc || p.LowerInc) {
		return true
	}

	return false
}

// Intersection returns the overlap of p and q, and false if they don't
// overlap.
func (p Period) Intersection(q Period) (Period, bool) {
	if !p.Overlaps(q) {
		return Period{}, false
	}

	lower, lowerInc := p.Lower, p.LowerInc
	if q.Lower > p.Lower || (q.Lower == p.Lower && !q.LowerInc) {
		lower, lowerInc = q.Lower, q.LowerInc
	}

	upper, upperInc := p.Upper, p.UpperInc
	if q.Upper < p.Upper || (q.Upper == p.Upper && !q.UpperInc) {
		upper, upperInc = q.Upper, q.UpperInc
	}

	return Period{Lower: lower, Upper: upper, LowerInc: lowerInc, UpperInc: upperInc}, true
}

// Union returns the union of p and q assuming they overlap or are
// adjacent; the second return is false otherwise.
func (p Period) Union(q Period) (Period, bool) {
	if !p.Overlaps(q) && !p.Adjacent(q) {
		return Period{}, false
	}

	lower, lowerInc := p.Lower, p.LowerInc
	if q.Lower < p.Lower || (q.Lower == p.Lower && q.LowerInc) {
		lower, lowerInc = q.Lower, q.LowerInc
	}

	upper, upperInc := p.Upper, p.UpperInc
	if q.Upper > p.Upper || (q.Upper == p.Upper && q.UpperInc) {
		upper, upperInc = q.Upper, q.UpperInc
	}

	return Period{Lower: lower, Upper: upper, LowerInc: lowerInc, UpperInc: upperInc}, true
}

// Before reports whether p ends strictly before q begins, with a gap (not
// merely adjacent): there exists at least one timestamp between them that
// belongs to neither period.
func (p Period) Before(q Period) bool {
	if p.Upper < q.Lower {
		return true
	}

	return p.Upper == q.Lower && !p.UpperInc && !q.LowerInc
}

// String renders the canonical textual form, e.g. "[T1, T2)".
func (p Period) String() string {
	l, r := "[", ")"
	if !p.LowerInc {
		l = "("
	}
	if p.UpperInc {
		r = "]"
	}

	return fmt.Sprintf("%s%d, %d%s", l, p.Lower, p.Upper, r)
}
