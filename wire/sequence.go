package wire

import (
	"fmt"

	"github.com/kronos-db/kronos/errs"
	"github.com/kronos-db/kronos/geom"
	"github.com/kronos-db/kronos/internal/pool"
	"github.com/kronos-db/kronos/temporal"
)

func boolByte(b bool) byte {
	if b {
		return 1
	}

	return 0
}

// appendSequenceBody appends a Sequence's lower_inc/upper_inc/interp/count
// header followed by its instants, per §6.2's variant-specific payload.
func appendSequenceBody(body []byte, cfg *Config, s temporal.Sequence) ([]byte, error) {
	body = append(body, boolByte(lowerInc(s)), boolByte(upperInc(s)), byte(s.Interp()))
	body = cfg.Endian.AppendUint32(body, uint32(s.Len()))

	for i := 0; i < s.Len(); i++ {
		inst := s.At(i)
		body = appendTimestamp(body, cfg, inst.Timestamp())

		var err error
		body, err = appendValue(body, cfg.Endian, inst.Value())
		if err != nil {
			return nil, err
		}
	}

	return body, nil
}

// lowerInc/upperInc recover a sequence's bound inclusivity from its
// public Period, since the flags aren't otherwise exported.
func lowerInc(s temporal.Sequence) bool { return s.Period().LowerInc }
func upperInc(s temporal.Sequence) bool { return s.Period().UpperInc }

func readSequenceBody(body []byte, cfg *Config, hf headerFields, k geom.Kernel) (temporal.Sequence, []byte, error) {
	if len(body) < 3 {
		return temporal.Sequence{}, nil, fmt.Errorf("%w: truncated sequence bounds", errs.ErrInvalidArgument)
	}
	lInc, uInc, interp := body[0] != 0, body[1] != 0, temporal.Interp(body[2])
	body = body[3:]

	if len(body) < 4 {
		return temporal.Sequence{}, nil, fmt.Errorf("%w: truncated sequence instant count", errs.ErrInvalidArgument)
	}
	n := int(cfg.Endian.Uint32(body))
	body = body[4:]

	instants := make([]temporal.Instant, n)
	for i := 0; i < n; i++ {
		tval, rest, err := readTimestamp(body, cfg)
		if err != nil {
			return temporal.Sequence{}, nil, err
		}
		body = rest

		v, rest2, err := readValue(body, cfg.Endian, hf.baseType, hf.geodetic, hf.hasZ, hf.srid)
		if err != nil {
			return temporal.Sequence{}, nil, err
		}
		body = rest2

		instants[i] = temporal.NewInstant(v, tval)
	}

	s, err := temporal.NewSequence(instants, lInc, uInc, interp, false, k)

	return s, body, err
}

// EncodeSequence serializes s per the canonical binary format of §6.2,
// the primitive the aggregation skip-list (package agg) uses to content-
// hash an already-merged sequence for combine-time dedup.
func EncodeSequence(s temporal.Sequence, opts ...Option) ([]byte, error) {
	cfg, err := newConfig(opts...)
	if err != nil {
		return nil, err
	}

	buf := writeHeader(nil, cfg, VariantSequence, s.Header())

	bb := pool.GetSequenceBuffer()
	defer pool.PutSequenceBuffer(bb)

	body, err := appendSequenceBody(bb.Bytes(), cfg, s)
	if err != nil {
		return nil, err
	}

	return writeBody(buf, cfg, body)
}

// DecodeSequence parses a buffer produced by EncodeSequence. k is only
// consulted for point bases (trajectory precomputation); pass nil
// otherwise.
func DecodeSequence(data []byte, k geom.Kernel, opts ...Option) (temporal.Sequence, error) {
	cfg, err := newConfig(opts...)
	if err != nil {
		return temporal.Sequence{}, err
	}

	hf, rest, err := readHeader(data, cfg)
	if err != nil {
		return temporal.Sequence{}, err
	}
	if hf.variant != VariantSequence {
		return temporal.Sequence{}, fmt.Errorf("%w: expected sequence variant tag, got %d", errs.ErrInvalidArgument, hf.variant)
	}

	body, err := readBody(rest, cfg)
	if err != nil {
		return temporal.Sequence{}, err
	}

	s, _, err := readSequenceBody(body, cfg, hf, k)

	return s, err
}
