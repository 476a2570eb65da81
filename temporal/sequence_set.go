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

// SequenceSet is a sorted, disjoint collection of sequences whose
// adjacent members have already been merged per §4.7 (component G).
type SequenceSet struct {
	header    Header
	sequences []Sequence
	bbox      box.NumBox
	stbox     box.STBox
}

// NewSequenceSet sorts sequences by start, verifies pairwise disjointness,
// and applies the §4.7 adjacent-merge pass.
func NewSequenceSet(sequences []Sequence, k geom.Kernel) (SequenceSet, error) {
	if len(sequences) == 0 {
		return SequenceSet{}, fmt.Errorf("%w: empty sequence set", errs.ErrInvalidArgument)
	}

	h := sequences[0].header
	for _, seq := range sequences {
		if seq.header != h {
			return SequenceSet{}, fmt.Errorf("%w: sequence set requires a uniform header", errs.ErrInvalidArgument)
		}
	}

	sorted := make([]Sequence, len(sequences))
	copy(sorted, sequences)
	sort.Slice(sorted, func(i, j int) bool {
		pi, pj := sorted[i].Period(), sorted[j].Period()
		if pi.Lower != pj.Lower {
			return pi.Lower < pj.Lower
		}

		return pi.LowerInc && !pj.LowerInc
	})

	for i := 1; i < len(sorted); i++ {
		if sorted[i-1].Period().Overlaps(sorted[i].Period()) {
			return SequenceSet{}, fmt.Errorf("%w: sequence set members must be pairwise disjoint", errs.ErrInvalidArgument)
		}
	}

	merged := mergeAdjacent(h, sorted, k)

	s := SequenceSet{header: h, sequences: merged}
	s.computeBoxes()

	return s, nil
}

// mergeAdjacent implements §4.7's left-to-right adjacent-sequence merge
// pass: successive sequences X, Y merge into one when their periods are
// adjacent and one of the (a)/(b)/(c) conditions holds.
func mergeAdjacent(h Header, sorted []Sequence, k geom.Kernel) []Sequence {
	out := make([]Sequence, 0, len(sorted))
	out = append(out, sorted[0])

	for _, y := range sorted[1:] {
		x := out[len(out)-1]
		if merged, ok := tryMergeSequences(h, x, y, k); ok {
			out[len(out)-1] = merged

			continue
		}
		out = append(out, y)
	}

	return out
}

func tryMergeSequences(h Header, x, y Sequence, k geom.Kernel) (Sequence, bool) {
	if !x.Period().Adjacent(y.Period()) {
		return Sequence{}, false
	}

	xLast := x.instants[len(x.instants)-1]
	yFirst := y.instants[0]

	joinable := false
	switch {
	case !h.Continuous() && x.Len() >= 2 && base.Eq(x.instants[x.Len()-2].value, xLast.value) && base.Eq(xLast.value, yFirst.value):
		joinable = true
	case base.Eq(xLast.value, yFirst.value):
		joinable = true
	case !x.upperInc && !h.Continuous():
		joinable = base.Eq(xLast.value, yFirst.value)
	}

	if !joinable {
		return Sequence{}, false
	}

	instants := make([]Instant, 0, x.Len()+y.Len())
	instants = append(instants, x.instants...)
	if base.Eq(xLast.value, yFirst.value) {
		instants = append(instants, y.instants[1:]...)
	} else {
		instants = append(instants, y.instants...)
	}

	merged, err := NewSequence(instants, x.lowerInc, y.upperInc, x.interp, true, k)
	if err != nil {
		return Sequence{}, false
	}

	return merged, true
}

func (s *SequenceSet) computeBoxes() {
	s.bbox = s.sequences[0].bbox
	if s.header.BaseType.Point() {
		s.stbox = s.sequences[0].stbox
	}
	for _, seq := range s.sequences[1:] {
		s.bbox = s.bbox.Union(seq.bbox)
		if s.header.BaseType.Point() {
			s.stbox, _ = s.stbox.Union(seq.stbox)
		}
	}
}

// Header returns the set's base-type header.
func (s SequenceSet) Header() Header { return s.header }

// Len returns the number of sequences.
func (s SequenceSet) Len() int { return len(s.sequences) }

// At returns the i-th sequence.
func (s SequenceSet) At(i int) Sequence { return s.sequences[i] }

// Sequences returns a copy of the underlying sequence slice.
func (s SequenceSet) Sequences() []Sequence {
	out := make([]Sequence, len(s.sequences))
	copy(out, s.sequences)

	return out
}

// Period returns the bounding period across every sequence.
func (s SequenceSet) Period() period.Period {
	first, last := s.sequences[0].Period(), s.sequences[len(s.sequences)-1].Period()

	return period.Period{Lower: first.Lower, Upper: last.Upper, LowerInc: first.LowerInc, UpperInc: last.UpperInc}
}

// NumBox returns the cached value×time bounding box.
func (s SequenceSet) NumBox() box.NumBox { return s.bbox }

// STBox returns the cached space×time bounding box (point bases only).
func (s SequenceSet) STBox() box.STBox { return s.stbox }

// ValueAt evaluates value_at across whichever member sequence covers t.
func (s SequenceSet) ValueAt(t period.Timestamp, k geom.Kernel) (base.Value, bool, error) {
	i := sort.Search(len(s.sequences), func(i int) bool { return s.sequences[i].Period().Upper >= t })
	if i >= len(s.sequences) || !s.sequences[i].Period().Contains(t) {
		return nil, false, nil
	}

	return s.sequences[i].ValueAt(t, k)
}

// AtPeriod delegates to each member sequence and re-merges the result
// (§4.7's "restriction delegates plus a merge pass").
func (s SequenceSet) AtPeriod(p period.Period, k geom.Kernel) (SequenceSet, bool, error) {
	var kept []Sequence
	for _, seq := range s.sequences {
		if sub, ok, err := seq.AtPeriod(p, k); err != nil {
			return SequenceSet{}, false, err
		} else if ok {
			kept = append(kept, sub)
		}
	}
	if len(kept) == 0 {
		return SequenceSet{}, false, nil
	}

	out, err := NewSequenceSet(kept, k)

	return out, err == nil, err
}

// MinusPeriod delegates to each member sequence's MinusPeriod and
// re-merges.
func (s SequenceSet) MinusPeriod(p period.Period, k geom.Kernel) (SequenceSet, bool, error) {
	var kept []Sequence
	for _, seq := range s.sequences {
		parts, err := seq.MinusPeriod(p, k)
		if err != nil {
			return SequenceSet{}, false, err
		}
		kept = append(kept, parts...)
	}
	if len(kept) == 0 {
		return SequenceSet{}, false, nil
	}

	out, err := NewSequenceSet(kept, k)

	return out, err == nil, err
}

// AtValue delegates to each member sequence's AtValue and re-merges.
func (s SequenceSet) AtValue(v base.Value, k geom.Kernel) (SequenceSet, bool, error) {
	var kept []Sequence
	for _, seq := range s.sequences {
		parts, err := seq.AtValue(v, k)
		if err != nil {
			return SequenceSet{}, false, err
		}
		kept = append(kept, parts...)
	}
	if len(kept) == 0 {
		return SequenceSet{}, false, nil
	}

	out, err := NewSequenceSet(kept, k)

	return out, err == nil, err
}

// MinusValue delegates to each member sequence's MinusValue and re-merges.
func (s SequenceSet) MinusValue(v base.Value, k geom.Kernel) (SequenceSet, bool, error) {
	var kept []Sequence
	for _, seq := range s.sequences {
		parts, err := seq.MinusValue(v, k)
		if err != nil {
			return SequenceSet{}, false, err
		}
		kept = append(kept, parts...)
	}
	if len(kept) == 0 {
		return SequenceSet{}, false, nil
	}

	out, err := NewSequenceSet(kept, k)

	return out, err == nil, err
}

// AtRange delegates to each member sequence's AtRange and re-merges.
func (s SequenceSet) AtRange(r ValueRange, k geom.Kernel) (SequenceSet, bool, error) {
	var kept []Sequence
	for _, seq := range s.sequences {
		parts, err := seq.AtRange(r, k)
		if err != nil {
			return SequenceSet{}, false, err
		}
		kept = append(kept, parts...)
	}
	if len(kept) == 0 {
		return SequenceSet{}, false, nil
	}

	out, err := NewSequenceSet(kept, k)

	return out, err == nil, err
}

// MinusRange delegates to each member sequence's MinusRange and re-merges.
func (s SequenceSet) MinusRange(r ValueRange, k geom.Kernel) (SequenceSet, bool, error) {
	var kept []Sequence
	for _, seq := range s.sequences {
		parts, err := seq.MinusRange(r, k)
		if err != nil {
			return SequenceSet{}, false, err
		}
		kept = append(kept, parts...)
	}
	if len(kept) == 0 {
		return SequenceSet{}, false, nil
	}

	out, err := NewSequenceSet(kept, k)

	return out, err == nil, err
}

// String renders the canonical textual form "{seq1, seq2, ...}".
func (s SequenceSet) String() string {
	parts := make([]string, len(s.sequences))
	for i, seq := range s.sequences {
		parts[i] = seq.String()
	}

	return "{" + strings.Join(parts, ", ") + "}"
}
