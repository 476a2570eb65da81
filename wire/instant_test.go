package wire_test

import (
	"testing"

	"github.com/kronos-db/kronos/base"
	"github.com/kronos-db/kronos/temporal"
	"github.com/kronos-db/kronos/wire"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeDecodeInstantRoundTrip(t *testing.T) {
	i := temporal.NewInstant(base.Text("hello"), 42)

	buf, err := wire.EncodeInstant(i)
	require.NoError(t, err)

	decoded, err := wire.DecodeInstant(buf)
	require.NoError(t, err)
	assert.Equal(t, i.Value(), decoded.Value())
	assert.Equal(t, i.Timestamp(), decoded.Timestamp())
}

func TestEncodeDecodeInstantPoint(t *testing.T) {
	i := temporal.NewInstant(base.Point{X: 1.5, Y: -2.5, Z: 3, HasZ: true, Geodetic: true, SRID: 4326}, 100)

	buf, err := wire.EncodeInstant(i)
	require.NoError(t, err)

	decoded, err := wire.DecodeInstant(buf)
	require.NoError(t, err)
	assert.Equal(t, i.Value(), decoded.Value())
}

func TestEncodeDecodeInstantSet(t *testing.T) {
	set, err := temporal.NewInstantSet(instants(base.Bool(true), 0, base.Bool(false), 10, base.Bool(true), 20))
	require.NoError(t, err)

	buf, err := wire.EncodeInstantSet(set)
	require.NoError(t, err)

	decoded, err := wire.DecodeInstantSet(buf)
	require.NoError(t, err)
	assert.Equal(t, set.Len(), decoded.Len())
	for i := 0; i < set.Len(); i++ {
		assert.Equal(t, set.At(i).Value(), decoded.At(i).Value())
	}
}
