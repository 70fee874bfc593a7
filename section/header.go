package section

import (
	"fmt"

	"github.com/criterion-modding/bnd2/endian"
	"github.com/criterion-modding/bnd2/errs"
	"github.com/criterion-modding/bnd2/format"
)

// ArchiveHeader is the fixed header at the start of every archive.
//
// On disk it occupies HeaderSizeOnDisk bytes: 44 bytes of fields padded to
// the entry alignment boundary. The version field is fixed at FormatVersion
// and not stored in the struct.
type ArchiveHeader struct {
	Platform            format.Platform // byte offset 8-11
	DebugBlobOffset     uint32          // byte offset 12-15
	ResourceCount       uint32          // byte offset 16-19
	ResourceTableOffset uint32          // byte offset 20-23
	DataSectionOffsets  [PoolCount]uint32
	Flags               uint32
}

// DetectEngine inspects a raw header and returns the endian engine its
// fields are stored under, using the fixed version field as the probe.
// Returns an error when neither byte order yields the supported version.
func DetectEngine(data []byte) (endian.EndianEngine, error) {
	if len(data) < HeaderSize {
		return nil, fmt.Errorf("%w: %d bytes, need %d", errs.ErrInvalidHeaderSize, len(data), HeaderSize)
	}

	le := endian.GetLittleEndianEngine()
	if le.Uint32(data[4:8]) == FormatVersion {
		return le, nil
	}
	be := endian.GetBigEndianEngine()
	if be.Uint32(data[4:8]) == FormatVersion {
		return be, nil
	}

	return nil, fmt.Errorf("%w: version field is %#x (LE) / %#x (BE), want %d",
		errs.ErrInvalidVersion, le.Uint32(data[4:8]), be.Uint32(data[4:8]), FormatVersion)
}

// Parse reads the header from the start of data.
//
// Fields are populated before validation runs, so diagnostic callers may
// inspect the struct even when an error is returned. Validation failures
// satisfy errors.Is(err, errs.ErrFormat).
func (h *ArchiveHeader) Parse(data []byte, engine endian.EndianEngine) error {
	if len(data) < HeaderSize {
		return fmt.Errorf("%w: %d bytes, need %d", errs.ErrInvalidHeaderSize, len(data), HeaderSize)
	}

	version := engine.Uint32(data[4:8])
	h.Platform = format.Platform(engine.Uint32(data[8:12]))
	h.DebugBlobOffset = engine.Uint32(data[12:16])
	h.ResourceCount = engine.Uint32(data[16:20])
	h.ResourceTableOffset = engine.Uint32(data[20:24])
	for i := 0; i < PoolCount; i++ {
		h.DataSectionOffsets[i] = engine.Uint32(data[24+i*4 : 28+i*4])
	}
	h.Flags = engine.Uint32(data[36:40])

	if string(data[0:4]) != MagicTag {
		return fmt.Errorf("%w: %q", errs.ErrInvalidMagic, data[0:4])
	}
	if version != FormatVersion {
		return fmt.Errorf("%w: %d, want %d", errs.ErrInvalidVersion, version, FormatVersion)
	}
	if !h.Platform.Valid() {
		return fmt.Errorf("%w: %d", errs.ErrInvalidPlatform, uint32(h.Platform))
	}

	return nil
}

// Bytes serializes the header into a fresh HeaderSizeOnDisk-byte slice,
// trailing pad zeroed.
func (h *ArchiveHeader) Bytes(engine endian.EndianEngine) []byte {
	b := make([]byte, HeaderSizeOnDisk)

	copy(b[0:4], MagicTag)
	engine.PutUint32(b[4:8], FormatVersion)
	engine.PutUint32(b[8:12], uint32(h.Platform))
	engine.PutUint32(b[12:16], h.DebugBlobOffset)
	engine.PutUint32(b[16:20], h.ResourceCount)
	engine.PutUint32(b[20:24], h.ResourceTableOffset)
	for i := 0; i < PoolCount; i++ {
		engine.PutUint32(b[24+i*4:28+i*4], h.DataSectionOffsets[i])
	}
	engine.PutUint32(b[36:40], h.Flags)

	return b
}

// IsCompressed reports whether the archive-level compressed flag is set.
// The flag is advisory; payload extraction sniffs the stream magic instead.
func (h *ArchiveHeader) IsCompressed() bool {
	return h.Flags&FlagZlibCompressed != 0
}

// HasDebugBlob reports whether a debug blob is present: the flag must be set
// and the offset non-zero.
func (h *ArchiveHeader) HasDebugBlob() bool {
	return h.Flags&FlagHasDebugBlob != 0 && h.DebugBlobOffset > 0
}

// Engine returns the endian engine implied by the header's platform.
func (h *ArchiveHeader) Engine() endian.EndianEngine {
	return endian.ForPlatform(h.Platform)
}
