package kronos_test

import (
	"testing"

	kronos "github.com/kronos-db/kronos"
	"github.com/kronos-db/kronos/agg"
	"github.com/kronos-db/kronos/align"
	"github.com/kronos-db/kronos/base"
	"github.com/kronos-db/kronos/period"
	"github.com/kronos-db/kronos/temporal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSequenceAndValueAt(t *testing.T) {
	instants := []temporal.Instant{
		kronos.NewInstant(base.Float64(0), 0),
		kronos.NewInstant(base.Float64(10), 100),
	}

	s, err := kronos.NewSequence(instants, true, true, temporal.Linear, false, nil)
	require.NoError(t, err)

	v, ok, err := s.ValueAt(50, nil)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, base.Float64(5), v)
}

func TestSynchronizeAndLiftRoundTrip(t *testing.T) {
	a, err := kronos.NewSequence([]temporal.Instant{
		temporal.NewInstant(base.Float64(0), 0), temporal.NewInstant(base.Float64(10), 100),
	}, true, true, temporal.Linear, false, nil)
	require.NoError(t, err)
	b, err := kronos.NewSequence([]temporal.Instant{
		temporal.NewInstant(base.Float64(5), 0), temporal.NewInstant(base.Float64(5), 100),
	}, true, true, temporal.Linear, false, nil)
	require.NoError(t, err)

	lifted, err := kronos.Lift(a, b, align.Gt, false, temporal.Step, nil)
	require.NoError(t, err)

	assert.Equal(t, base.Bool(false), lifted.At(0).Value())
	assert.Equal(t, base.Bool(true), lifted.At(lifted.Len()-1).Value())
}

func TestAggregationAndWireRoundTrip(t *testing.T) {
	st := kronos.NewAggregationState(false)

	s1, err := kronos.NewSequence([]temporal.Instant{
		temporal.NewInstant(base.Float64(1), 0), temporal.NewInstant(base.Float64(2), 10),
	}, true, true, temporal.Linear, false, nil)
	require.NoError(t, err)
	require.NoError(t, st.Merge(s1, agg.Max, nil))

	buf, err := kronos.EncodeSequence(st.Sequences()[0])
	require.NoError(t, err)

	decoded, err := kronos.DecodeSequence(buf, nil)
	require.NoError(t, err)
	assert.Equal(t, st.Sequences()[0].Instants(), decoded.Instants())
}

func TestNewInstantSet(t *testing.T) {
	set, err := kronos.NewInstantSet([]temporal.Instant{
		kronos.NewInstant(base.Int32(1), 0),
		kronos.NewInstant(base.Int32(2), period.Timestamp(10)),
	})
	require.NoError(t, err)
	assert.Equal(t, 2, set.Len())
}
