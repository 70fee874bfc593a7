package bundle

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/criterion-modding/bnd2/compress"
	"github.com/criterion-modding/bnd2/endian"
	"github.com/criterion-modding/bnd2/errs"
	"github.com/criterion-modding/bnd2/format"
	"github.com/criterion-modding/bnd2/internal/options"
	"github.com/criterion-modding/bnd2/section"
)

// Archive is the parsed view of one bnd2 container. It references the input
// buffer; the buffer must stay alive and unmodified for the Archive's
// lifetime.
type Archive struct {
	Header      section.ArchiveHeader
	Descriptors []section.ResourceDescriptor
	// Imports holds each descriptor's import list, parallel to Descriptors.
	Imports [][]section.ImportEntry
	// DebugBlob is the trailing debug text with NUL padding trimmed; nil
	// when the archive carries none.
	DebugBlob []byte

	engine endian.EndianEngine
	data   []byte
}

// Parse reads an archive from data.
//
// The byte order is detected from the header's version field unless
// overridden with WithEngine. Under WithLooseValidation structural header
// errors are tolerated and truncated tables are clamped; otherwise they
// abort the parse.
func Parse(data []byte, opts ...ParseOption) (*Archive, error) {
	cfg := &ParseConfig{}
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}

	engine := cfg.engine
	if engine == nil {
		detected, err := section.DetectEngine(data)
		if err != nil {
			if !cfg.loose {
				return nil, err
			}
			detected = endian.GetLittleEndianEngine()
		}
		engine = detected
	}

	a := &Archive{engine: engine, data: data}
	if err := a.Header.Parse(data, engine); err != nil {
		if !cfg.loose || !errors.Is(err, errs.ErrFormat) {
			return nil, err
		}
	}

	if err := a.parseDirectory(cfg); err != nil {
		return nil, err
	}
	a.parseDebugBlob()

	return a, nil
}

func (a *Archive) parseDirectory(cfg *ParseConfig) error {
	count := int(a.Header.ResourceCount)
	offset := int(a.Header.ResourceTableOffset)

	if offset < 0 || offset > len(a.data) {
		return fmt.Errorf("%w: resource table at %d, buffer is %d bytes",
			errs.ErrInvalidOffset, offset, len(a.data))
	}
	if declared := count * section.DescriptorSize; offset+declared > len(a.data) {
		if !cfg.loose {
			return errs.Truncated("resource table", offset, declared, len(a.data)-offset)
		}
		count = (len(a.data) - offset) / section.DescriptorSize
	}

	a.Descriptors = make([]section.ResourceDescriptor, count)
	a.Imports = make([][]section.ImportEntry, count)
	for i := range a.Descriptors {
		entry := a.data[offset+i*section.DescriptorSize:]
		if err := a.Descriptors[i].Parse(entry, a.engine); err != nil {
			return fmt.Errorf("descriptor %d: %w", i, err)
		}
		imports, err := a.parseImports(&a.Descriptors[i], cfg)
		if err != nil {
			return fmt.Errorf("descriptor %d (id %#x, type %s): %w",
				i, a.Descriptors[i].ResourceID, a.Descriptors[i].TypeID, err)
		}
		a.Imports[i] = imports
	}

	return nil
}

func (a *Archive) parseImports(d *section.ResourceDescriptor, cfg *ParseConfig) ([]section.ImportEntry, error) {
	count := int(d.ImportCount)
	if count == 0 {
		return nil, nil
	}

	offset := int(d.ImportOffset)
	if offset < 0 || offset > len(a.data) {
		if cfg.loose {
			return nil, nil
		}

		return nil, fmt.Errorf("%w: import table at %d, buffer is %d bytes",
			errs.ErrInvalidOffset, offset, len(a.data))
	}
	if declared := count * section.ImportEntrySize; offset+declared > len(a.data) {
		if !cfg.loose {
			return nil, errs.Truncated("import table", offset, declared, len(a.data)-offset)
		}
		count = (len(a.data) - offset) / section.ImportEntrySize
	}

	imports := make([]section.ImportEntry, count)
	for i := range imports {
		if err := imports[i].Parse(a.data[offset+i*section.ImportEntrySize:], a.engine); err != nil {
			return nil, err
		}
	}

	return imports, nil
}

func (a *Archive) parseDebugBlob() {
	if !a.Header.HasDebugBlob() {
		return
	}
	offset := int(a.Header.DebugBlobOffset)
	if offset >= len(a.data) {
		return
	}
	blob := bytes.TrimRight(a.data[offset:], "\x00")
	if len(blob) > 0 {
		a.DebugBlob = blob
	}
}

// Engine returns the endian engine the archive was parsed with.
func (a *Archive) Engine() endian.EndianEngine {
	return a.engine
}

// ResourceCount returns the number of directory entries.
func (a *Archive) ResourceCount() int {
	return len(a.Descriptors)
}

// DebugText returns the debug blob as a string, empty when absent.
func (a *Archive) DebugText() string {
	return string(a.DebugBlob)
}

// RawPayload returns the on-disk bytes of descriptor i's given pool, still
// compressed if the archive stores them compressed. The slice aliases the
// archive buffer.
func (a *Archive) RawPayload(i, pool int) ([]byte, error) {
	if i < 0 || i >= len(a.Descriptors) {
		return nil, fmt.Errorf("%w: descriptor index %d of %d", errs.ErrResourceNotFound, i, len(a.Descriptors))
	}
	if pool < 0 || pool >= section.PoolCount {
		return nil, fmt.Errorf("%w: pool index %d", errs.ErrInvalidOffset, pool)
	}

	d := &a.Descriptors[i]
	size := int(d.OnDiskSizes[pool].Size())
	if size == 0 {
		return nil, nil
	}
	offset := int(d.DiskOffsets[pool])
	if offset+size > len(a.data) {
		return nil, errs.Truncated(
			fmt.Sprintf("payload of resource %#x pool %d", d.ResourceID, pool),
			offset, size, len(a.data)-offset)
	}

	return a.data[offset : offset+size], nil
}

// Payload returns the decompressed payload of descriptor i, taken from the
// first pool with data. Whether to decompress is decided by sniffing the
// stream magic; the descriptor's compressed flag is advisory only.
//
// Returns nil and no error when the resource carries no data.
func (a *Archive) Payload(i int) ([]byte, error) {
	if i < 0 || i >= len(a.Descriptors) {
		return nil, fmt.Errorf("%w: descriptor index %d of %d", errs.ErrResourceNotFound, i, len(a.Descriptors))
	}

	pool := a.Descriptors[i].FirstDataPool()
	if pool < 0 {
		return nil, nil
	}
	raw, err := a.RawPayload(i, pool)
	if err != nil {
		return nil, err
	}

	ct := compress.Sniff(raw)
	if ct == format.CompressionNone {
		return raw, nil
	}
	codec, err := compress.GetCodec(ct)
	if err != nil {
		return nil, err
	}
	out, err := codec.Decompress(raw)
	if err != nil {
		return nil, fmt.Errorf("resource %#x: %w", a.Descriptors[i].ResourceID, err)
	}

	return out, nil
}

// Resources reconstructs the build inputs of the archive: one Resource per
// descriptor with decompressed payloads and the alignment each pool was
// stored under. The result feeds straight back into Build for a semantic
// round trip.
func (a *Archive) Resources() ([]Resource, error) {
	resources := make([]Resource, len(a.Descriptors))
	for i := range a.Descriptors {
		d := &a.Descriptors[i]
		r := Resource{
			ID:          d.ResourceID,
			ImportHash:  d.ImportHash,
			TypeID:      d.TypeID,
			StreamIndex: d.StreamIndex,
			Imports:     a.Imports[i],
		}
		for pool := 0; pool < section.PoolCount; pool++ {
			if d.OnDiskSizes[pool].Size() == 0 {
				continue
			}
			raw, err := a.RawPayload(i, pool)
			if err != nil {
				return nil, err
			}
			data := raw
			if ct := compress.Sniff(raw); ct != format.CompressionNone {
				codec, err := compress.GetCodec(ct)
				if err != nil {
					return nil, err
				}
				if data, err = codec.Decompress(raw); err != nil {
					return nil, fmt.Errorf("resource %#x pool %d: %w", d.ResourceID, pool, err)
				}
			}
			r.Pools[pool] = PoolData{
				Data:      data,
				Alignment: d.UncompressedSizes[pool].Alignment(),
			}
		}
		resources[i] = r
	}

	return resources, nil
}
