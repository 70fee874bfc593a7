package section

// Magic tag and supported version of the container format.
const (
	MagicTag      = "bnd2"
	FormatVersion = 2
)

// Structure sizes in the archive file.
const (
	HeaderSize       = 44 // header fields
	HeaderSizeOnDisk = 48 // header padded to EntryAlign
	DescriptorSize   = 80 // directory entry stride (64 bytes of fields + reserved tail)
	ImportEntrySize  = 16

	descriptorFieldsSize = 64

	// PoolCount is the number of parallel memory pools a resource may
	// place data in.
	PoolCount = 3
)

// Padding granularities of the data segment. Entries within a pool start on
// EntryAlign boundaries (or the resource's requested alignment if larger);
// the three pool sections are separated on PoolAlign boundaries, and every
// pool except the last is padded out to PoolAlign after its final entry.
const (
	EntryAlign = 16
	PoolAlign  = 128
)

// Archive header flag bits.
const (
	FlagZlibCompressed = 0x1 // payloads are zlib streams
	FlagReservedA      = 0x2 // always set in observed archives
	FlagReservedB      = 0x4 // always set in observed archives
	FlagHasDebugBlob   = 0x8 // debug text blob present after the data segment

	// FlagDefault is the base flag word every written archive carries.
	FlagDefault = FlagReservedA | FlagReservedB
)

// Resource descriptor flag bits.
const (
	DescFlagCompressed = 0x1
)
