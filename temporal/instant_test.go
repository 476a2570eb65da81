package temporal_test

import (
	"testing"

	"github.com/kronos-db/kronos/base"
	"github.com/kronos-db/kronos/period"
	"github.com/kronos-db/kronos/temporal"
	"github.com/stretchr/testify/assert"
)

func TestInstantValueAt(t *testing.T) {
	i := temporal.NewInstant(base.Int32(42), period.Timestamp(100))

	v, ok := i.ValueAt(100)
	assert.True(t, ok)
	assert.Equal(t, base.Int32(42), v)

	_, ok = i.ValueAt(101)
	assert.False(t, ok)
}

func TestInstantRestrictions(t *testing.T) {
	i := temporal.NewInstant(base.Float64(3.5), period.Timestamp(10))

	_, ok := i.AtTimestamp(10)
	assert.True(t, ok)
	_, ok = i.AtTimestamp(11)
	assert.False(t, ok)

	_, ok = i.MinusTimestamp(10)
	assert.False(t, ok)
	_, ok = i.MinusTimestamp(11)
	assert.True(t, ok)

	_, ok = i.AtValue(base.Float64(3.5))
	assert.True(t, ok)
	_, ok = i.AtValue(base.Float64(1))
	assert.False(t, ok)
}

func TestInstantString(t *testing.T) {
	i := temporal.NewInstant(base.Bool(true), period.Timestamp(5))
	assert.Equal(t, "true@5", i.String())
}
