// Package period implements the time-domain types of §4.2: a Period with
// independently inclusive bounds, a sorted TimestampSet, and a
// sorted disjoint-and-non-adjacent PeriodSet, plus their set-algebra
// at/minus/contains/overlaps operators.
package period

// Timestamp is a signed 64-bit microsecond offset from an epoch that is
// irrelevant to engine semantics (spec §6.2). Its only contract is total
// order.
type Timestamp int64

// Before reports whether t is strictly before u.
func (t Timestamp) Before(u Timestamp) bool { return t < u }

// After reports whether t is strictly after u.
func (t Timestamp) After(u Timestamp) bool { return t > u }
