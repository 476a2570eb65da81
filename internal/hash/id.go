// Package hash provides the content-hashing primitive used to key the
// aggregation skip-list's memoization cache.
package hash

import "github.com/cespare/xxhash/v2"

// Bytes computes the xxHash64 of the given byte slice.
func Bytes(data []byte) uint64 {
	return xxhash.Sum64(data)
}

// String computes the xxHash64 of the given string.
func String(data string) uint64 {
	return xxhash.Sum64String(data)
}
