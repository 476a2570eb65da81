package agg_test

import (
	"testing"

	"github.com/kronos-db/kronos/agg"
	"github.com/kronos-db/kronos/base"
	"github.com/kronos-db/kronos/period"
	"github.com/kronos-db/kronos/temporal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seq(pairs ...any) temporal.Sequence {
	instants := make([]temporal.Instant, 0, len(pairs)/2)
	for i := 0; i < len(pairs); i += 2 {
		instants = append(instants, temporal.NewInstant(pairs[i].(base.Value), period.Timestamp(pairs[i+1].(int))))
	}
	s, err := temporal.NewSequence(instants, true, true, temporal.Linear, false, nil)
	if err != nil {
		panic(err)
	}

	return s
}

func TestStateMergeNonOverlapping(t *testing.T) {
	st := agg.NewState(false)

	require.NoError(t, st.Merge(seq(base.Float64(1), 0, base.Float64(2), 10), agg.Max, nil))
	require.NoError(t, st.Merge(seq(base.Float64(5), 100, base.Float64(6), 110), agg.Max, nil))

	assert.Len(t, st.Sequences(), 2)
	assert.Equal(t, int64(20), st.TotalDuration())
}

func TestStateMergeOverlappingMax(t *testing.T) {
	st := agg.NewState(false)

	require.NoError(t, st.Merge(seq(base.Float64(1), 0, base.Float64(3), 20), agg.Max, nil))
	require.NoError(t, st.Merge(seq(base.Float64(5), 0, base.Float64(1), 20), agg.Max, nil))

	require.Len(t, st.Sequences(), 1)
	merged := st.Sequences()[0]
	assert.Equal(t, base.Float64(5), merged.At(0).Value())
}

func TestStateMergeDedupesByContent(t *testing.T) {
	st := agg.NewState(false)
	value := seq(base.Float64(1), 0, base.Float64(2), 10)

	require.NoError(t, st.Merge(value, agg.Max, nil))
	require.NoError(t, st.Merge(value, agg.Max, nil))

	assert.Len(t, st.Sequences(), 1)
	assert.Equal(t, int64(10), st.TotalDuration())
}

func TestStateCombine(t *testing.T) {
	a := agg.NewState(false)
	require.NoError(t, a.Merge(seq(base.Float64(1), 0, base.Float64(2), 10), agg.Min, nil))

	b := agg.NewState(false)
	require.NoError(t, b.Merge(seq(base.Float64(7), 100, base.Float64(8), 110), agg.Min, nil))

	require.NoError(t, a.Combine(b, agg.Min, nil))
	assert.Len(t, a.Sequences(), 2)
}
