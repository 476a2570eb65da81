package wire

import (
	"fmt"
	"math"

	"github.com/kronos-db/kronos/base"
	"github.com/kronos-db/kronos/endian"
	"github.com/kronos-db/kronos/errs"
)

// appendFloat64 appends the IEEE 754 bit pattern of f using e's byte order.
func appendFloat64(buf []byte, e endian.EndianEngine, f float64) []byte {
	return e.AppendUint64(buf, math.Float64bits(f))
}

func readFloat64(data []byte, e endian.EndianEngine) (float64, []byte, error) {
	if len(data) < 8 {
		return 0, nil, fmt.Errorf("%w: truncated float64 payload", errs.ErrInvalidArgument)
	}

	return math.Float64frombits(e.Uint64(data)), data[8:], nil
}

// appendValue appends v's payload (everything but the shared header's
// base-type/flags/SRID bytes, which the caller already wrote once).
func appendValue(buf []byte, e endian.EndianEngine, v base.Value) ([]byte, error) {
	switch x := v.(type) {
	case base.Bool:
		b := byte(0)
		if x {
			b = 1
		}

		return append(buf, b), nil
	case base.Int32:
		return e.AppendUint32(buf, uint32(int32(x))), nil
	case base.Float64:
		return appendFloat64(buf, e, float64(x)), nil
	case base.Text:
		buf = e.AppendUint32(buf, uint32(len(x)))

		return append(buf, x...), nil
	case base.Double2:
		buf = appendFloat64(buf, e, x[0])

		return appendFloat64(buf, e, x[1]), nil
	case base.Double3:
		buf = appendFloat64(buf, e, x[0])
		buf = appendFloat64(buf, e, x[1])

		return appendFloat64(buf, e, x[2]), nil
	case base.Double4:
		buf = appendFloat64(buf, e, x[0])
		buf = appendFloat64(buf, e, x[1])
		buf = appendFloat64(buf, e, x[2])

		return appendFloat64(buf, e, x[3]), nil
	case base.Point:
		buf = appendFloat64(buf, e, x.X)
		buf = appendFloat64(buf, e, x.Y)
		if x.HasZ {
			buf = appendFloat64(buf, e, x.Z)
		}

		return buf, nil
	default:
		return nil, fmt.Errorf("%w: unsupported base value type %T", errs.ErrInvalidArgument, v)
	}
}

// readValue decodes a value payload for the given header (base type plus
// the point-specific geodetic/HasZ/SRID attributes shared by every
// instant of the enclosing temporal value).
func readValue(data []byte, e endian.EndianEngine, t base.Type, geodetic, hasZ bool, srid int32) (base.Value, []byte, error) {
	switch t {
	case base.TypeBool:
		if len(data) < 1 {
			return nil, nil, fmt.Errorf("%w: truncated bool payload", errs.ErrInvalidArgument)
		}

		return base.Bool(data[0] != 0), data[1:], nil
	case base.TypeInt32:
		if len(data) < 4 {
			return nil, nil, fmt.Errorf("%w: truncated int32 payload", errs.ErrInvalidArgument)
		}

		return base.Int32(int32(e.Uint32(data))), data[4:], nil
	case base.TypeFloat64:
		f, rest, err := readFloat64(data, e)

		return base.Float64(f), rest, err
	case base.TypeText:
		if len(data) < 4 {
			return nil, nil, fmt.Errorf("%w: truncated text length", errs.ErrInvalidArgument)
		}
		n := int(e.Uint32(data))
		data = data[4:]
		if len(data) < n {
			return nil, nil, fmt.Errorf("%w: truncated text payload", errs.ErrInvalidArgument)
		}

		return base.Text(data[:n]), data[n:], nil
	case base.TypeDouble2:
		var d base.Double2
		var err error
		for i := range d {
			d[i], data, err = readFloat64(data, e)
			if err != nil {
				return nil, nil, err
			}
		}

		return d, data, nil
	case base.TypeDouble3:
		var d base.Double3
		var err error
		for i := range d {
			d[i], data, err = readFloat64(data, e)
			if err != nil {
				return nil, nil, err
			}
		}

		return d, data, nil
	case base.TypeDouble4:
		var d base.Double4
		var err error
		for i := range d {
			d[i], data, err = readFloat64(data, e)
			if err != nil {
				return nil, nil, err
			}
		}

		return d, data, nil
	case base.TypeGeometry, base.TypeGeography:
		p := base.Point{Geodetic: geodetic, HasZ: hasZ, SRID: srid}
		var err error
		p.X, data, err = readFloat64(data, e)
		if err != nil {
			return nil, nil, err
		}
		p.Y, data, err = readFloat64(data, e)
		if err != nil {
			return nil, nil, err
		}
		if hasZ {
			p.Z, data, err = readFloat64(data, e)
			if err != nil {
				return nil, nil, err
			}
		}

		return p, data, nil
	default:
		return nil, nil, fmt.Errorf("%w: unsupported base type tag %d", errs.ErrInvalidArgument, t)
	}
}
