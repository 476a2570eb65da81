package agg

import (
	"github.com/kronos-db/kronos/box"
	"github.com/kronos-db/kronos/temporal"
)

// Extent accumulates a running bounding box across merged sequences
// without producing per-segment output (§4.9: "extent maintains a
// bounding box without producing per-segment outputs").
type Extent struct {
	numBox   box.NumBox
	stBox    box.STBox
	hasPoint bool
	started  bool
}

// NewExtent constructs an empty Extent.
func NewExtent() *Extent { return &Extent{} }

// Merge widens e's bounding box to cover seq.
func (e *Extent) Merge(seq temporal.Sequence) error {
	if !e.started {
		e.numBox = seq.NumBox()
		if seq.Header().BaseType.Point() {
			e.stBox = seq.STBox()
			e.hasPoint = true
		}
		e.started = true

		return nil
	}

	e.numBox = e.numBox.Union(seq.NumBox())
	if seq.Header().BaseType.Point() {
		merged, err := e.stBox.Union(seq.STBox())
		if err != nil {
			return err
		}
		e.stBox = merged
	}

	return nil
}

// NumBox returns the accumulated value×time bounding box.
func (e *Extent) NumBox() box.NumBox { return e.numBox }

// STBox returns the accumulated space×time bounding box, valid only when
// the merged sequences were point-based.
func (e *Extent) STBox() (box.STBox, bool) { return e.stBox, e.hasPoint }
