// Package wire implements the host contract's canonical binary serializer
// and textual canonical form (spec §6.2): a fixed variant/base-type/flags
// header followed by a variant-specific instant payload, with optional
// payload compression for sequences carrying many instants.
package wire

import (
	"github.com/kronos-db/kronos/compress"
	"github.com/kronos-db/kronos/endian"
	"github.com/kronos-db/kronos/format"
	"github.com/kronos-db/kronos/internal/options"
)

// Config holds the encoder/decoder's byte order and payload compression
// choice. The zero value is never used directly; newConfig always starts
// from defaultConfig.
type Config struct {
	Endian      endian.EndianEngine
	Compression format.CompressionType
}

// Option configures a Config, following the teacher's functional-options
// pattern (package internal/options).
type Option = options.Option[*Config]

func defaultConfig() *Config {
	return &Config{Endian: endian.GetLittleEndianEngine(), Compression: format.CompressionNone}
}

func newConfig(opts ...Option) (*Config, error) {
	cfg := defaultConfig()
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}

	return cfg, nil
}

// WithEndian selects the byte order of the encoded timestamp/value
// payload. Defaults to little-endian.
func WithEndian(e endian.EndianEngine) Option {
	return options.NoError(func(c *Config) { c.Endian = e })
}

// WithCompression selects the payload compression codec applied to the
// variant-specific instant payload, the same way the teacher selects
// per-blob compression. Defaults to format.CompressionNone.
func WithCompression(t format.CompressionType) Option {
	return options.NoError(func(c *Config) { c.Compression = t })
}

func codecFor(t format.CompressionType) (compress.Codec, error) {
	return compress.GetCodec(t)
}
