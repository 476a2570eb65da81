package wire_test

import (
	"testing"

	"github.com/kronos-db/kronos/base"
	"github.com/kronos-db/kronos/endian"
	"github.com/kronos-db/kronos/format"
	"github.com/kronos-db/kronos/period"
	"github.com/kronos-db/kronos/temporal"
	"github.com/kronos-db/kronos/wire"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func instants(pairs ...any) []temporal.Instant {
	out := make([]temporal.Instant, 0, len(pairs)/2)
	for i := 0; i < len(pairs); i += 2 {
		out = append(out, temporal.NewInstant(pairs[i].(base.Value), period.Timestamp(pairs[i+1].(int))))
	}

	return out
}

func TestEncodeDecodeSequenceRoundTrip(t *testing.T) {
	s, err := temporal.NewSequence(instants(base.Float64(0), 0, base.Float64(4), 20, base.Float64(4), 40), true, true, temporal.Linear, false, nil)
	require.NoError(t, err)

	buf, err := wire.EncodeSequence(s)
	require.NoError(t, err)

	decoded, err := wire.DecodeSequence(buf, nil)
	require.NoError(t, err)

	assert.Equal(t, s.Len(), decoded.Len())
	assert.Equal(t, s.Period(), decoded.Period())
	for i := 0; i < s.Len(); i++ {
		assert.Equal(t, s.At(i).Value(), decoded.At(i).Value())
		assert.Equal(t, s.At(i).Timestamp(), decoded.At(i).Timestamp())
	}
}

func TestEncodeDecodeSequenceBigEndian(t *testing.T) {
	s, err := temporal.NewSequence(instants(base.Int32(1), 0, base.Int32(2), 20), true, true, temporal.Step, false, nil)
	require.NoError(t, err)

	buf, err := wire.EncodeSequence(s, wire.WithEndian(endian.GetBigEndianEngine()))
	require.NoError(t, err)

	decoded, err := wire.DecodeSequence(buf, nil, wire.WithEndian(endian.GetBigEndianEngine()))
	require.NoError(t, err)
	assert.Equal(t, base.Int32(1), decoded.At(0).Value())
	assert.Equal(t, base.Int32(2), decoded.At(1).Value())
}

func TestEncodeDecodeSequenceCompressed(t *testing.T) {
	s, err := temporal.NewSequence(instants(
		base.Float64(0), 0, base.Float64(1), 10, base.Float64(2), 20, base.Float64(3), 30,
	), true, true, temporal.Linear, false, nil)
	require.NoError(t, err)

	buf, err := wire.EncodeSequence(s, wire.WithCompression(format.CompressionZstd))
	require.NoError(t, err)

	decoded, err := wire.DecodeSequence(buf, nil, wire.WithCompression(format.CompressionZstd))
	require.NoError(t, err)
	assert.Equal(t, s.Instants(), decoded.Instants())
}

func TestDecodeSequenceRejectsWrongVariant(t *testing.T) {
	i := temporal.NewInstant(base.Float64(1), 0)
	buf, err := wire.EncodeInstant(i)
	require.NoError(t, err)

	_, err = wire.DecodeSequence(buf, nil)
	require.Error(t, err)
}
