package temporal

import (
	"fmt"

	"github.com/kronos-db/kronos/base"
	"github.com/kronos-db/kronos/period"
)

// Instant is a single (base value, timestamp) pair — the simplest
// duration variant (spec §3.3, §4.4).
type Instant struct {
	header Header
	value  base.Value
	t      period.Timestamp
}

// NewInstant constructs an Instant. Construction never fails: any single
// base value and timestamp is already in canonical form.
func NewInstant(v base.Value, t period.Timestamp) Instant {
	return Instant{header: headerOf(v), value: v, t: t}
}

// Header returns the instant's base-type header.
func (i Instant) Header() Header { return i.header }

// Value returns the instant's base value.
func (i Instant) Value() base.Value { return i.value }

// Timestamp returns the instant's timestamp.
func (i Instant) Timestamp() period.Timestamp { return i.t }

// Period returns the zero-width period at the instant's timestamp.
func (i Instant) Period() period.Period { return period.Instant(i.t) }

// ValueAt returns the stored value iff t equals the instant's own
// timestamp (spec §4.4).
func (i Instant) ValueAt(t period.Timestamp) (base.Value, bool) {
	if t != i.t {
		return nil, false
	}

	return i.value, true
}

// EverEquals reports whether the instant's value equals v.
func (i Instant) EverEquals(v base.Value) bool { return base.Eq(i.value, v) }

// AlwaysEquals is identical to EverEquals for a single instant.
func (i Instant) AlwaysEquals(v base.Value) bool { return base.Eq(i.value, v) }

// AtTimestamp keeps the instant if t matches, else reports empty.
func (i Instant) AtTimestamp(t period.Timestamp) (Instant, bool) {
	if t != i.t {
		return Instant{}, false
	}

	return i, true
}

// MinusTimestamp drops the instant if t matches, else keeps it.
func (i Instant) MinusTimestamp(t period.Timestamp) (Instant, bool) {
	if t == i.t {
		return Instant{}, false
	}

	return i, true
}

// AtPeriod keeps the instant if p contains its timestamp.
func (i Instant) AtPeriod(p period.Period) (Instant, bool) {
	if !p.Contains(i.t) {
		return Instant{}, false
	}

	return i, true
}

// MinusPeriod drops the instant if p contains its timestamp.
func (i Instant) MinusPeriod(p period.Period) (Instant, bool) {
	if p.Contains(i.t) {
		return Instant{}, false
	}

	return i, true
}

// AtValue keeps the instant if its value equals v.
func (i Instant) AtValue(v base.Value) (Instant, bool) {
	if !base.Eq(i.value, v) {
		return Instant{}, false
	}

	return i, true
}

// MinusValue drops the instant if its value equals v.
func (i Instant) MinusValue(v base.Value) (Instant, bool) {
	if base.Eq(i.value, v) {
		return Instant{}, false
	}

	return i, true
}

// String renders the canonical textual form "value@timestamp".
func (i Instant) String() string {
	return fmt.Sprintf("%v@%d", i.value, i.t)
}
