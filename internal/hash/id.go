package hash

import "github.com/cespare/xxhash/v2"

// ID computes the xxHash64 of the given string. Used for descriptor import
// hashes derived from resource names.
func ID(data string) uint64 {
	return xxhash.Sum64String(data)
}

// StreamKey computes the 32-bit key a stream name is stored under in the
// audio lookup tables. The tables keep only the low half of the xxHash64.
func StreamKey(name string) uint32 {
	return uint32(xxhash.Sum64String(name))
}
