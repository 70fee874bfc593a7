package bundle

import (
	"fmt"
	"math"

	"github.com/criterion-modding/bnd2/compress"
	"github.com/criterion-modding/bnd2/endian"
	"github.com/criterion-modding/bnd2/errs"
	"github.com/criterion-modding/bnd2/format"
	"github.com/criterion-modding/bnd2/internal/hash"
	"github.com/criterion-modding/bnd2/internal/options"
	"github.com/criterion-modding/bnd2/section"
)

// PoolData is one resource's payload in one memory pool.
type PoolData struct {
	Data []byte
	// Alignment is the required placement alignment in bytes, a power of
	// two. Zero means the default entry alignment.
	Alignment uint32
}

// Resource is one build input: a typed payload with optional imports,
// placed in up to three memory pools.
type Resource struct {
	ID uint64
	// Name, when set and ImportHash is zero, derives the import hash
	// (xxHash64 of the name).
	Name        string
	ImportHash  uint64
	TypeID      format.ResourceType
	StreamIndex uint8
	Imports     []section.ImportEntry
	Pools       [section.PoolCount]PoolData
}

func (r *Resource) importHash() uint64 {
	if r.ImportHash != 0 || r.Name == "" {
		return r.ImportHash
	}

	return hash.ID(r.Name)
}

// Build serializes an ordered resource list into a complete archive.
//
// Offsets are computed from scratch by the layout engine; nothing about the
// inputs is mutated and the returned buffer is freshly allocated. With
// WithCompression every pool payload is stored as a zlib stream.
func Build(resources []Resource, opts ...BuildOption) ([]byte, error) {
	cfg := &BuildConfig{platform: format.PlatformPC}
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}
	engine := endian.ForPlatform(cfg.platform)

	onDisk, err := diskPayloads(resources, cfg.compress)
	if err != nil {
		return nil, err
	}

	alignments := make([][section.PoolCount]uint32, len(resources))
	importCounts := make([]int, len(resources))
	for i := range resources {
		for pool := 0; pool < section.PoolCount; pool++ {
			alignments[i][pool] = resources[i].Pools[pool].Alignment
		}
		if len(resources[i].Imports) > math.MaxUint16 {
			return nil, fmt.Errorf("%w: resource %#x declares %d imports, max %d",
				errs.ErrFormat, resources[i].ID, len(resources[i].Imports), math.MaxUint16)
		}
		importCounts[i] = len(resources[i].Imports)
	}

	l := computeLayout(onDisk, alignments, importCounts, len(cfg.debugBlob))
	buf := make([]byte, l.totalSize)

	writeHeader(buf, cfg, engine, len(resources), &l)
	writeDirectory(buf, resources, onDisk, cfg, engine, &l)
	writeImports(buf, resources, engine, &l)
	writePayloads(buf, onDisk, &l)
	if l.blobOffset > 0 {
		copy(buf[l.blobOffset:], cfg.debugBlob)
	}

	return buf, nil
}

func diskPayloads(resources []Resource, compressed bool) ([][section.PoolCount][]byte, error) {
	onDisk := make([][section.PoolCount][]byte, len(resources))
	codec := compress.NewZlibCodec()
	for i := range resources {
		for pool := 0; pool < section.PoolCount; pool++ {
			data := resources[i].Pools[pool].Data
			if len(data) == 0 {
				continue
			}
			if uint64(len(data)) > uint64(format.MaxSize) {
				return nil, fmt.Errorf("%w: resource %#x pool %d payload is %d bytes, max %d",
					errs.ErrFormat, resources[i].ID, pool, len(data), format.MaxSize)
			}
			if compressed {
				c, err := codec.Compress(data)
				if err != nil {
					return nil, fmt.Errorf("resource %#x pool %d: %w", resources[i].ID, pool, err)
				}
				data = c
			}
			onDisk[i][pool] = data
		}
	}

	return onDisk, nil
}

func writeHeader(buf []byte, cfg *BuildConfig, engine endian.EndianEngine, count int, l *layout) {
	h := section.ArchiveHeader{
		Platform:            cfg.platform,
		ResourceCount:       uint32(count),
		ResourceTableOffset: uint32(l.tableOffset),
		Flags:               section.FlagDefault,
	}
	for pool := 0; pool < section.PoolCount; pool++ {
		h.DataSectionOffsets[pool] = uint32(l.dataOffsets[pool])
	}
	if cfg.compress {
		h.Flags |= section.FlagZlibCompressed
	}
	if l.blobOffset > 0 {
		h.Flags |= section.FlagHasDebugBlob
		h.DebugBlobOffset = uint32(l.blobOffset)
	}

	copy(buf, h.Bytes(engine))
}

func writeDirectory(buf []byte, resources []Resource, onDisk [][section.PoolCount][]byte, cfg *BuildConfig, engine endian.EndianEngine, l *layout) {
	for i := range resources {
		r := &resources[i]
		d := section.ResourceDescriptor{
			ResourceID:  r.ID,
			ImportHash:  r.importHash(),
			TypeID:      r.TypeID,
			StreamIndex: r.StreamIndex,
			ImportCount: uint16(len(r.Imports)),
		}
		if len(r.Imports) > 0 {
			d.ImportOffset = uint32(l.importOffsets[i])
		}
		if cfg.compress {
			d.Flags |= section.DescFlagCompressed
		}
		for pool := 0; pool < section.PoolCount; pool++ {
			data := r.Pools[pool].Data
			if len(data) == 0 {
				continue
			}
			shift := format.AlignShiftFor(r.Pools[pool].Alignment)
			if r.Pools[pool].Alignment == 0 {
				shift = format.AlignShiftFor(section.EntryAlign)
			}
			d.UncompressedSizes[pool] = format.PackSizeAndAlign(uint32(len(data)), shift)
			d.OnDiskSizes[pool] = format.PackSizeAndAlign(uint32(len(onDisk[i][pool])), shift)
			d.DiskOffsets[pool] = uint32(l.payloadOffsets[i][pool])
		}

		copy(buf[l.tableOffset+i*section.DescriptorSize:], d.Bytes(engine))
	}
}

func writeImports(buf []byte, resources []Resource, engine endian.EndianEngine, l *layout) {
	for i := range resources {
		offset := l.importOffsets[i]
		for j := range resources[i].Imports {
			copy(buf[offset+j*section.ImportEntrySize:], resources[i].Imports[j].Bytes(engine))
		}
	}
}

func writePayloads(buf []byte, onDisk [][section.PoolCount][]byte, l *layout) {
	for i := range onDisk {
		for pool := 0; pool < section.PoolCount; pool++ {
			if len(onDisk[i][pool]) == 0 {
				continue
			}
			copy(buf[l.payloadOffsets[i][pool]:], onDisk[i][pool])
		}
	}
}
