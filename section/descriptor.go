package section

import (
	"fmt"

	"github.com/criterion-modding/bnd2/endian"
	"github.com/criterion-modding/bnd2/errs"
	"github.com/criterion-modding/bnd2/format"
)

// ResourceDescriptor is one entry of the resource directory.
//
// Each resource may place data in up to PoolCount parallel memory pools;
// only pools with a non-zero on-disk size carry data, and readers use the
// first such pool. Sizes are stored packed with a 4-bit alignment exponent
// (see format.SizeAndAlign).
type ResourceDescriptor struct {
	ResourceID         uint64                            // byte offset 0-7
	ImportHash         uint64                            // byte offset 8-15
	UncompressedSizes  [PoolCount]format.SizeAndAlign    // byte offset 16-27
	OnDiskSizes        [PoolCount]format.SizeAndAlign    // byte offset 28-39
	DiskOffsets        [PoolCount]uint32                 // byte offset 40-51
	ImportOffset       uint32                            // byte offset 52-55
	TypeID             format.ResourceType               // byte offset 56-59
	ImportCount        uint16                            // byte offset 60-61
	Flags              uint8                             // byte offset 62
	StreamIndex        uint8                             // byte offset 63
	// bytes 64-79 are reserved, written as zero
}

// Parse reads one descriptor from the start of data.
func (d *ResourceDescriptor) Parse(data []byte, engine endian.EndianEngine) error {
	if len(data) < DescriptorSize {
		return fmt.Errorf("%w: descriptor needs %d bytes, %d available",
			errs.ErrInvalidEntrySize, DescriptorSize, len(data))
	}

	d.ResourceID = engine.Uint64(data[0:8])
	d.ImportHash = engine.Uint64(data[8:16])
	for i := 0; i < PoolCount; i++ {
		d.UncompressedSizes[i] = format.SizeAndAlign(engine.Uint32(data[16+i*4 : 20+i*4]))
		d.OnDiskSizes[i] = format.SizeAndAlign(engine.Uint32(data[28+i*4 : 32+i*4]))
		d.DiskOffsets[i] = engine.Uint32(data[40+i*4 : 44+i*4])
	}
	d.ImportOffset = engine.Uint32(data[52:56])
	d.TypeID = format.ResourceType(engine.Uint32(data[56:60]))
	d.ImportCount = engine.Uint16(data[60:62])
	d.Flags = data[62]
	d.StreamIndex = data[63]

	return nil
}

// Bytes serializes the descriptor into a fresh DescriptorSize-byte slice,
// reserved tail zeroed.
func (d *ResourceDescriptor) Bytes(engine endian.EndianEngine) []byte {
	b := make([]byte, DescriptorSize)

	engine.PutUint64(b[0:8], d.ResourceID)
	engine.PutUint64(b[8:16], d.ImportHash)
	for i := 0; i < PoolCount; i++ {
		engine.PutUint32(b[16+i*4:20+i*4], uint32(d.UncompressedSizes[i]))
		engine.PutUint32(b[28+i*4:32+i*4], uint32(d.OnDiskSizes[i]))
		engine.PutUint32(b[40+i*4:44+i*4], d.DiskOffsets[i])
	}
	engine.PutUint32(b[52:56], d.ImportOffset)
	engine.PutUint32(b[56:60], uint32(d.TypeID))
	engine.PutUint16(b[60:62], d.ImportCount)
	b[62] = d.Flags
	b[63] = d.StreamIndex

	return b
}

// FirstDataPool returns the index of the first pool with a non-zero on-disk
// size, or -1 when the resource carries no data.
func (d *ResourceDescriptor) FirstDataPool() int {
	for i := 0; i < PoolCount; i++ {
		if d.OnDiskSizes[i].Size() > 0 {
			return i
		}
	}

	return -1
}

// IsCompressed reports whether the descriptor's compressed flag is set.
// Advisory only; extraction sniffs the payload's leading magic.
func (d *ResourceDescriptor) IsCompressed() bool {
	return d.Flags&DescFlagCompressed != 0
}
