package section

import (
	"fmt"

	"github.com/criterion-modding/bnd2/endian"
	"github.com/criterion-modding/bnd2/errs"
)

// ImportEntry records one cross-resource reference: when the owner resource
// is loaded, the pointer at Offset within its payload is patched to the
// resource identified by ResourceID.
type ImportEntry struct {
	ResourceID uint64 // byte offset 0-7
	Offset     uint32 // byte offset 8-11, within the owner's payload
	// bytes 12-15 are padding, written as zero
}

// Parse reads one import entry from the start of data.
func (e *ImportEntry) Parse(data []byte, engine endian.EndianEngine) error {
	if len(data) < ImportEntrySize {
		return fmt.Errorf("%w: import entry needs %d bytes, %d available",
			errs.ErrInvalidEntrySize, ImportEntrySize, len(data))
	}

	e.ResourceID = engine.Uint64(data[0:8])
	e.Offset = engine.Uint32(data[8:12])

	return nil
}

// Bytes serializes the entry into a fresh ImportEntrySize-byte slice.
func (e *ImportEntry) Bytes(engine endian.EndianEngine) []byte {
	b := make([]byte, ImportEntrySize)

	engine.PutUint64(b[0:8], e.ResourceID)
	engine.PutUint32(b[8:12], e.Offset)

	return b
}
