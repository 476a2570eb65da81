package wire

import (
	"fmt"

	"github.com/kronos-db/kronos/errs"
	"github.com/kronos-db/kronos/temporal"
)

// EncodeInstantSet serializes s per the canonical binary format of §6.2.
func EncodeInstantSet(s temporal.InstantSet, opts ...Option) ([]byte, error) {
	cfg, err := newConfig(opts...)
	if err != nil {
		return nil, err
	}

	buf := writeHeader(nil, cfg, VariantInstantSet, s.Header())

	body := cfg.Endian.AppendUint32(nil, uint32(s.Len()))
	for i := 0; i < s.Len(); i++ {
		inst := s.At(i)
		body = appendTimestamp(body, cfg, inst.Timestamp())
		body, err = appendValue(body, cfg.Endian, inst.Value())
		if err != nil {
			return nil, err
		}
	}

	return writeBody(buf, cfg, body)
}

// DecodeInstantSet parses a buffer produced by EncodeInstantSet.
func DecodeInstantSet(data []byte, opts ...Option) (temporal.InstantSet, error) {
	cfg, err := newConfig(opts...)
	if err != nil {
		return temporal.InstantSet{}, err
	}

	hf, rest, err := readHeader(data, cfg)
	if err != nil {
		return temporal.InstantSet{}, err
	}
	if hf.variant != VariantInstantSet {
		return temporal.InstantSet{}, fmt.Errorf("%w: expected instant-set variant tag, got %d", errs.ErrInvalidArgument, hf.variant)
	}

	body, err := readBody(rest, cfg)
	if err != nil {
		return temporal.InstantSet{}, err
	}

	instants, err := readInstants(body, cfg, hf)
	if err != nil {
		return temporal.InstantSet{}, err
	}

	return temporal.NewInstantSet(instants)
}

// readInstants decodes a count-prefixed run of (timestamp, value) pairs
// shared by the InstantSet and Sequence payload formats.
func readInstants(body []byte, cfg *Config, hf headerFields) ([]temporal.Instant, error) {
	if len(body) < 4 {
		return nil, fmt.Errorf("%w: truncated instant count", errs.ErrInvalidArgument)
	}
	n := int(cfg.Endian.Uint32(body))
	body = body[4:]

	out := make([]temporal.Instant, n)
	for i := 0; i < n; i++ {
		tval, rest, err := readTimestamp(body, cfg)
		if err != nil {
			return nil, err
		}
		body = rest

		v, rest2, err := readValue(body, cfg.Endian, hf.baseType, hf.geodetic, hf.hasZ, hf.srid)
		if err != nil {
			return nil, err
		}
		body = rest2

		out[i] = temporal.NewInstant(v, tval)
	}

	return out, nil
}
