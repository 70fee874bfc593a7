// Package endian provides byte order utilities for binary encoding and decoding.
//
// This package extends Go's standard encoding/binary package by combining
// ByteOrder and AppendByteOrder interfaces into a unified EndianEngine
// interface, and maps archive platform ids onto the byte order their files
// are stored in: PC archives are little-endian, console archives big-endian.
//
// # Basic Usage
//
//	engine := endian.ForPlatform(format.PlatformPC)
//	count := engine.Uint32(data[16:20])
//
// # Thread Safety
//
// All functions in this package are safe for concurrent use. The returned
// EndianEngine instances are immutable and stateless.
package endian

import (
	"encoding/binary"

	"github.com/criterion-modding/bnd2/format"
)

// EndianEngine combines ByteOrder and AppendByteOrder interfaces from
// encoding/binary into a single interface for convenient byte order
// operations.
//
// This interface is satisfied by binary.LittleEndian and binary.BigEndian
// from the standard library, making it fully compatible with existing Go
// code while providing access to both read/write and append operations.
type EndianEngine interface {
	binary.ByteOrder
	binary.AppendByteOrder
}

// GetLittleEndianEngine returns the little-endian engine.
func GetLittleEndianEngine() EndianEngine {
	return binary.LittleEndian
}

// GetBigEndianEngine returns the big-endian engine.
func GetBigEndianEngine() EndianEngine {
	return binary.BigEndian
}

// ForPlatform returns the default engine for the given platform id.
// Unknown platform ids fall back to little-endian.
func ForPlatform(p format.Platform) EndianEngine {
	if p.IsBigEndian() {
		return binary.BigEndian
	}

	return binary.LittleEndian
}

// IsLittle reports whether the engine is the little-endian engine.
func IsLittle(engine EndianEngine) bool {
	return engine == EndianEngine(binary.LittleEndian)
}
