// Package errs defines the error taxonomy shared by the bnd2 codec packages.
//
// Errors fall into four categories, each with a sentinel that errors.Is can
// match against:
//
//   - ErrFormat: structural violations (bad magic, wrong version, impossible
//     offsets). Unrecoverable for the archive being parsed.
//   - ErrTruncation: declared sizes exceed the available buffer. Recoverable
//     by clamping counts.
//   - ErrCompression: a compressed payload stream is corrupt. Unrecoverable
//     for that payload.
//   - ErrNotFound: a typed resource or nested archive could not be located.
//     Recoverable; callers often probe speculatively.
//
// Specific sentinels wrap their category, so both
// errors.Is(err, errs.ErrInvalidMagic) and errors.Is(err, errs.ErrFormat)
// hold for a bad magic tag. Detailed call sites add offsets, declared versus
// available sizes, and resource/type ids via fmt.Errorf("%w: ...").
package errs

import (
	"errors"
	"fmt"
)

// Category sentinels.
var (
	ErrFormat      = errors.New("format error")
	ErrTruncation  = errors.New("truncation error")
	ErrCompression = errors.New("compression error")
	ErrNotFound    = errors.New("not found")
)

// Specific sentinels, each wrapping its category.
var (
	ErrInvalidMagic      = fmt.Errorf("%w: invalid magic tag", ErrFormat)
	ErrInvalidVersion    = fmt.Errorf("%w: unsupported format version", ErrFormat)
	ErrInvalidHeaderSize = fmt.Errorf("%w: invalid header size", ErrFormat)
	ErrInvalidPlatform   = fmt.Errorf("%w: invalid platform id", ErrFormat)
	ErrInvalidEntrySize  = fmt.Errorf("%w: invalid entry size", ErrFormat)
	ErrInvalidOffset     = fmt.Errorf("%w: offset outside buffer", ErrFormat)
	ErrNestedTooDeep     = fmt.Errorf("%w: nested archive depth exceeded", ErrFormat)
	ErrCorruptRecords    = fmt.Errorf("%w: leading records corrupt", ErrFormat)

	ErrDeclaredSizeExceedsBuffer = fmt.Errorf("%w: declared size exceeds buffer", ErrTruncation)

	ErrCorruptStream = fmt.Errorf("%w: corrupt stream", ErrCompression)

	ErrResourceNotFound = fmt.Errorf("%w: no resource with requested type", ErrNotFound)
)

// Truncated builds a truncation error carrying what was declared and what
// the buffer actually holds, both in bytes, at the given offset.
func Truncated(what string, offset, declared, available int) error {
	return fmt.Errorf("%w: %s at offset %d declares %d bytes, %d available",
		ErrDeclaredSizeExceedsBuffer, what, offset, declared, available)
}
