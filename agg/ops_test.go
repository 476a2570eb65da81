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

func TestMinMaxSum(t *testing.T) {
	assert.Equal(t, base.Float64(1), agg.Min(base.Float64(1), base.Float64(2)))
	assert.Equal(t, base.Float64(2), agg.Max(base.Float64(1), base.Float64(2)))
	assert.Equal(t, base.Float64(3), agg.Sum(base.Float64(1), base.Float64(2)))
}

func seedAvgInstant(t *testing.T, v float64, ts int) temporal.Instant {
	t.Helper()
	pair, err := agg.AvgSeed(base.Float64(v))
	require.NoError(t, err)

	return temporal.NewInstant(pair, period.Timestamp(ts))
}

func TestFinalizeAvg(t *testing.T) {
	st := agg.NewState(false)

	s1, err := temporal.NewSequence([]temporal.Instant{seedAvgInstant(t, 2, 0), seedAvgInstant(t, 4, 10)}, true, true, temporal.Linear, false, nil)
	require.NoError(t, err)
	require.NoError(t, st.Merge(s1, agg.Sum, nil))

	s2, err := temporal.NewSequence([]temporal.Instant{seedAvgInstant(t, 6, 0), seedAvgInstant(t, 8, 10)}, true, true, temporal.Linear, false, nil)
	require.NoError(t, err)
	require.NoError(t, st.Merge(s2, agg.Sum, nil))

	values, err := st.FinalizeAvg()
	require.NoError(t, err)
	require.Len(t, values, 2)
	assert.Equal(t, base.Float64(4), values[0])
	assert.Equal(t, base.Float64(6), values[1])
}

func TestIntegralRejectsStepOnlyBase(t *testing.T) {
	st := agg.NewState(true)

	instants := []temporal.Instant{temporal.NewInstant(base.Int32(1), 0), temporal.NewInstant(base.Int32(1), 10)}
	s, err := temporal.NewSequence(instants, true, true, temporal.Step, false, nil)
	require.NoError(t, err)
	require.NoError(t, st.Merge(s, agg.Max, nil))

	_, err = agg.Integral(st)
	assert.Error(t, err)
}

func TestIntegralLinearTrapezoid(t *testing.T) {
	st := agg.NewState(true)

	instants := []temporal.Instant{temporal.NewInstant(base.Float64(0), 0), temporal.NewInstant(base.Float64(10), 10)}
	s, err := temporal.NewSequence(instants, true, true, temporal.Linear, false, nil)
	require.NoError(t, err)
	require.NoError(t, st.Merge(s, agg.Max, nil))

	integral, err := agg.Integral(st)
	require.NoError(t, err)
	assert.Equal(t, 50.0, integral)

	avg, err := agg.TWAvg(st)
	require.NoError(t, err)
	assert.Equal(t, 5.0, avg)
}

func TestExtentAccumulatesBoundingBox(t *testing.T) {
	ext := agg.NewExtent()

	s1, err := temporal.NewSequence([]temporal.Instant{
		temporal.NewInstant(base.Float64(1), 0), temporal.NewInstant(base.Float64(3), 10),
	}, true, true, temporal.Linear, false, nil)
	require.NoError(t, err)
	require.NoError(t, ext.Merge(s1))

	s2, err := temporal.NewSequence([]temporal.Instant{
		temporal.NewInstant(base.Float64(-2), 20), temporal.NewInstant(base.Float64(5), 30),
	}, true, true, temporal.Linear, false, nil)
	require.NoError(t, err)
	require.NoError(t, ext.Merge(s2))

	nb := ext.NumBox()
	assert.Equal(t, -2.0, nb.XMin)
	assert.Equal(t, 5.0, nb.XMax)
}
