package wire

import (
	"fmt"

	"github.com/kronos-db/kronos/errs"
	"github.com/kronos-db/kronos/geom"
	"github.com/kronos-db/kronos/internal/pool"
	"github.com/kronos-db/kronos/temporal"
)

// EncodeSequenceSet serializes ss per the canonical binary format of
// §6.2: a shared header followed by each member sequence's own
// bounds/interp/instant payload.
func EncodeSequenceSet(ss temporal.SequenceSet, opts ...Option) ([]byte, error) {
	cfg, err := newConfig(opts...)
	if err != nil {
		return nil, err
	}

	buf := writeHeader(nil, cfg, VariantSequenceSet, ss.Header())

	bb := pool.GetSequenceSetBuffer()
	defer pool.PutSequenceSetBuffer(bb)

	body := cfg.Endian.AppendUint32(bb.Bytes(), uint32(ss.Len()))
	for i := 0; i < ss.Len(); i++ {
		body, err = appendSequenceBody(body, cfg, ss.At(i))
		if err != nil {
			return nil, err
		}
	}

	return writeBody(buf, cfg, body)
}

// DecodeSequenceSet parses a buffer produced by EncodeSequenceSet.
func DecodeSequenceSet(data []byte, k geom.Kernel, opts ...Option) (temporal.SequenceSet, error) {
	cfg, err := newConfig(opts...)
	if err != nil {
		return temporal.SequenceSet{}, err
	}

	hf, rest, err := readHeader(data, cfg)
	if err != nil {
		return temporal.SequenceSet{}, err
	}
	if hf.variant != VariantSequenceSet {
		return temporal.SequenceSet{}, fmt.Errorf("%w: expected sequence-set variant tag, got %d", errs.ErrInvalidArgument, hf.variant)
	}

	body, err := readBody(rest, cfg)
	if err != nil {
		return temporal.SequenceSet{}, err
	}

	if len(body) < 4 {
		return temporal.SequenceSet{}, fmt.Errorf("%w: truncated sequence-set count", errs.ErrInvalidArgument)
	}
	n := int(cfg.Endian.Uint32(body))
	body = body[4:]

	sequences := make([]temporal.Sequence, n)
	for i := 0; i < n; i++ {
		var s temporal.Sequence
		s, body, err = readSequenceBody(body, cfg, hf, k)
		if err != nil {
			return temporal.SequenceSet{}, err
		}
		sequences[i] = s
	}

	return temporal.NewSequenceSet(sequences, k)
}
