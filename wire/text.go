package wire

import (
	"fmt"

	"github.com/kronos-db/kronos/errs"
	"github.com/kronos-db/kronos/temporal"
)

// Text renders any duration variant in the textual canonical form of
// §6.2 (value@timestamp, {i1, i2, …}, [i1, i2, …]/(i1, i2, …), and
// {s1, s2, …} for sequence sets). Each variant already implements
// fmt.Stringer in its canonical form; Text is the single dispatch point
// a host can call without a type switch of its own. The textual parser
// is explicitly out of scope (spec §6.2, §7) — this direction is
// write-only.
func Text(v any) (string, error) {
	switch x := v.(type) {
	case temporal.Instant:
		return x.String(), nil
	case temporal.InstantSet:
		return x.String(), nil
	case temporal.Sequence:
		return x.String(), nil
	case temporal.SequenceSet:
		return x.String(), nil
	default:
		return "", fmt.Errorf("%w: unsupported duration variant %T", errs.ErrInvalidArgument, v)
	}
}
