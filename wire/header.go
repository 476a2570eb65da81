package wire

import (
	"fmt"

	"github.com/kronos-db/kronos/base"
	"github.com/kronos-db/kronos/errs"
	"github.com/kronos-db/kronos/format"
	"github.com/kronos-db/kronos/temporal"
)

// Variant tags the four duration variants of §3.3 for the binary
// serializer's 1-byte variant tag.
type Variant uint8

const (
	VariantInstant Variant = iota + 1
	VariantInstantSet
	VariantSequence
	VariantSequenceSet
)

const (
	flagContinuous = 1 << 0
	flagHasZ       = 1 << 1
	flagGeodetic   = 1 << 2
)

// writeHeader appends the shared 1-byte variant tag, 1-byte base-type
// tag, flags byte, and optional SRID (spec §6.2).
func writeHeader(buf []byte, cfg *Config, variant Variant, h temporal.Header) []byte {
	buf = append(buf, byte(variant), byte(h.BaseType))

	flags := byte(0)
	if h.Continuous() {
		flags |= flagContinuous
	}
	if h.HasZ {
		flags |= flagHasZ
	}
	if h.Geodetic {
		flags |= flagGeodetic
	}
	buf = append(buf, flags)

	if h.BaseType.Point() {
		buf = cfg.Endian.AppendUint32(buf, uint32(h.SRID))
	}

	return buf
}

// headerFields is the shared header decoded before any variant-specific
// payload, in a form readValue/restoration can consume directly.
type headerFields struct {
	variant  Variant
	baseType base.Type
	geodetic bool
	hasZ     bool
	srid     int32
}

func readHeader(data []byte, cfg *Config) (headerFields, []byte, error) {
	if len(data) < 3 {
		return headerFields{}, nil, fmt.Errorf("%w: truncated wire header", errs.ErrInvalidArgument)
	}

	hf := headerFields{variant: Variant(data[0]), baseType: base.Type(data[1])}
	flags := data[2]
	hf.hasZ = flags&flagHasZ != 0
	hf.geodetic = flags&flagGeodetic != 0
	data = data[3:]

	if hf.baseType.Point() {
		if len(data) < 4 {
			return headerFields{}, nil, fmt.Errorf("%w: truncated SRID", errs.ErrInvalidArgument)
		}
		hf.srid = int32(cfg.Endian.Uint32(data))
		data = data[4:]
	}

	return hf, data, nil
}

// writeBody wraps a variant's raw payload with the compression byte and,
// when compression is enabled, the original-length prefix the decoder
// needs to preallocate (spec DOMAIN STACK: wire.Option-selected codec,
// exactly as the teacher's per-blob compression).
func writeBody(buf []byte, cfg *Config, body []byte) ([]byte, error) {
	buf = append(buf, byte(cfg.Compression))
	if cfg.Compression == format.CompressionNone {
		return append(buf, body...), nil
	}

	codec, err := codecFor(cfg.Compression)
	if err != nil {
		return nil, err
	}
	compressed, err := codec.Compress(body)
	if err != nil {
		return nil, err
	}

	buf = cfg.Endian.AppendUint32(buf, uint32(len(body)))

	return append(buf, compressed...), nil
}

func readBody(data []byte, cfg *Config) ([]byte, error) {
	if len(data) < 1 {
		return nil, fmt.Errorf("%w: truncated compression tag", errs.ErrInvalidArgument)
	}
	compression := format.CompressionType(data[0])
	data = data[1:]

	if compression == format.CompressionNone {
		return data, nil
	}

	if len(data) < 4 {
		return nil, fmt.Errorf("%w: truncated original length", errs.ErrInvalidArgument)
	}
	origLen := int(cfg.Endian.Uint32(data))
	data = data[4:]

	codec, err := codecFor(compression)
	if err != nil {
		return nil, err
	}
	body, err := codec.Decompress(data)
	if err != nil {
		return nil, err
	}
	if len(body) != origLen {
		return nil, fmt.Errorf("%w: decompressed length mismatch", errs.ErrInvalidArgument)
	}

	return body, nil
}
