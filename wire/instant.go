package wire

import (
	"fmt"

	"github.com/kronos-db/kronos/errs"
	"github.com/kronos-db/kronos/period"
	"github.com/kronos-db/kronos/temporal"
)

func appendTimestamp(buf []byte, cfg *Config, t period.Timestamp) []byte {
	return cfg.Endian.AppendUint64(buf, uint64(t))
}

func readTimestamp(data []byte, cfg *Config) (period.Timestamp, []byte, error) {
	if len(data) < 8 {
		return 0, nil, fmt.Errorf("%w: truncated timestamp", errs.ErrInvalidArgument)
	}

	return period.Timestamp(cfg.Endian.Uint64(data)), data[8:], nil
}

// EncodeInstant serializes i per the canonical binary format of §6.2.
func EncodeInstant(i temporal.Instant, opts ...Option) ([]byte, error) {
	cfg, err := newConfig(opts...)
	if err != nil {
		return nil, err
	}

	buf := writeHeader(nil, cfg, VariantInstant, i.Header())

	var body []byte
	body = appendTimestamp(body, cfg, i.Timestamp())
	body, err = appendValue(body, cfg.Endian, i.Value())
	if err != nil {
		return nil, err
	}

	return writeBody(buf, cfg, body)
}

// DecodeInstant parses a buffer produced by EncodeInstant.
func DecodeInstant(data []byte, opts ...Option) (temporal.Instant, error) {
	cfg, err := newConfig(opts...)
	if err != nil {
		return temporal.Instant{}, err
	}

	hf, rest, err := readHeader(data, cfg)
	if err != nil {
		return temporal.Instant{}, err
	}
	if hf.variant != VariantInstant {
		return temporal.Instant{}, fmt.Errorf("%w: expected instant variant tag, got %d", errs.ErrInvalidArgument, hf.variant)
	}

	body, err := readBody(rest, cfg)
	if err != nil {
		return temporal.Instant{}, err
	}

	t, body, err := readTimestamp(body, cfg)
	if err != nil {
		return temporal.Instant{}, err
	}
	v, _, err := readValue(body, cfg.Endian, hf.baseType, hf.geodetic, hf.hasZ, hf.srid)
	if err != nil {
		return temporal.Instant{}, err
	}

	return temporal.NewInstant(v, t), nil
}
