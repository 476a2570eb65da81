package align_test

import (
	"testing"

	"github.com/kronos-db/kronos/align"
	"github.com/kronos-db/kronos/base"
	"github.com/kronos-db/kronos/geom"
	"github.com/kronos-db/kronos/temporal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func point(x, y float64) base.Point { return base.Point{X: x, Y: y} }

func TestEverAlwaysIntersects(t *testing.T) {
	k, err := geom.NewPlanar()
	require.NoError(t, err)

	a, err := temporal.NewSequence(instants(point(0, 0), 0, point(10, 0), 100), true, true, temporal.Step, false, k)
	require.NoError(t, err)
	b, err := temporal.NewSequence(instants(point(0, 0), 0, point(5, 0), 100), true, true, temporal.Step, false, k)
	require.NoError(t, err)

	ever, err := align.EverIntersects(a, b, k)
	require.NoError(t, err)
	assert.True(t, ever)

	always, err := align.AlwaysIntersects(a, b, k)
	require.NoError(t, err)
	assert.False(t, always)
}

func TestEverAlwaysDWithin(t *testing.T) {
	k, err := geom.NewPlanar()
	require.NoError(t, err)

	a, err := temporal.NewSequence(instants(point(0, 0), 0, point(0, 0), 100), true, true, temporal.Step, false, k)
	require.NoError(t, err)
	b, err := temporal.NewSequence(instants(point(1, 0), 0, point(50, 0), 100), true, true, temporal.Step, false, k)
	require.NoError(t, err)

	ever, err := align.EverDWithin(a, b, 2, k)
	require.NoError(t, err)
	assert.True(t, ever)

	always, err := align.AlwaysDWithin(a, b, 2, k)
	require.NoError(t, err)
	assert.False(t, always)
}
