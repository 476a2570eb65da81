// Package agg implements time-weighted aggregation over temporal
// sequences via a skip-list merge state (component J, spec §4.9).
package agg

import (
	"fmt"
	"sort"

	"github.com/kronos-db/kronos/align"
	"github.com/kronos-db/kronos/base"
	"github.com/kronos-db/kronos/errs"
	"github.com/kronos-db/kronos/geom"
	"github.com/kronos-db/kronos/internal/hash"
	"github.com/kronos-db/kronos/temporal"
	"github.com/kronos-db/kronos/wire"
)

// Op combines two base values already aligned at the same instant, the
// scalar operator threaded through merge (e.g. min, max, sum).
type Op func(a, b base.Value) base.Value

// State is the skip-list aggregation state of §4.9: an ordered list of
// already-merged sequences, keyed by their content hash for combine-time
// dedup, plus the running total duration needed by time-weighted
// finalization.
type State struct {
	sequences    []temporal.Sequence
	seen         map[uint64]struct{}
	totalMicros  int64
	timeWeighted bool
}

// NewState constructs an empty aggregation state. timeWeighted is stored
// on the state; Integral and TWAvg do not read it, and TWAvg always divides
// by the total duration.
func NewState(timeWeighted bool) *State {
	return &State{seen: make(map[uint64]struct{}), timeWeighted: timeWeighted}
}

func contentKey(s temporal.Sequence) (uint64, error) {
	buf, err := wire.EncodeSequence(s)
	if err != nil {
		return 0, err
	}

	return hash.Bytes(buf), nil
}

// Merge implements §4.9's transfer function: walks the state and the new
// value with a two-pointer scan, appending non-overlapping pieces and
// synchronizing+applying op to overlapping ones.
func (st *State) Merge(value temporal.Sequence, op Op, k geom.Kernel) error {
	key, err := contentKey(value)
	if err != nil {
		return err
	}
	if _, dup := st.seen[key]; dup {
		return nil
	}
	st.seen[key] = struct{}{}

	merged := make([]temporal.Sequence, 0, len(st.sequences)+1)
	inserted := false

	for _, existing := range st.sequences {
		switch {
		case inserted || !existing.Period().Overlaps(value.Period()):
			merged = append(merged, existing)
		default:
			combined, err := align.Lift(existing, value, align.BinaryOp(op), false, existing.Interp(), k)
			if err != nil {
				return err
			}
			merged = append(merged, combined)
			inserted = true
		}
	}
	if !inserted {
		merged = append(merged, value)
	}

	sort.Slice(merged, func(i, j int) bool { return merged[i].Period().Lower < merged[j].Period().Lower })

	st.sequences = merged
	st.totalMicros += durationMicros(value)

	return nil
}

// Combine merges another already-built skip-list state into st, as used
// by parallel aggregation protocols (spec §4.9, §5).
func (st *State) Combine(other *State, op Op, k geom.Kernel) error {
	for _, seq := range other.sequences {
		if err := st.Merge(seq, op, k); err != nil {
			return err
		}
	}

	return nil
}

func durationMicros(s temporal.Sequence) int64 {
	p := s.Period()

	return int64(p.Upper - p.Lower)
}

// TotalDuration returns the running total duration in microseconds
// accumulated across every merged sequence.
func (st *State) TotalDuration() int64 { return st.totalMicros }

// Sequences returns the merged, ordered sequences backing the state.
func (st *State) Sequences() []temporal.Sequence { return st.sequences }

// requireContinuous rejects twAvg/integral-style operators over a
// step-only base (spec §4.9: "operators that require a continuous base
// reject step-only inputs with UnsupportedInterpolation").
func requireContinuous(st *State) error {
	for _, seq := range st.sequences {
		if !seq.Header().Continuous() {
			return fmt.Errorf("%w: time-weighted aggregation requires a continuous base", errs.ErrUnsupportedInterpolation)
		}
	}

	return nil
}
