package bundle

import "github.com/criterion-modding/bnd2/section"

// alignUp rounds n up to the next multiple of align (a power of two).
func alignUp(n, align int) int {
	if align <= 1 {
		return n
	}

	return (n + align - 1) &^ (align - 1)
}

// layout holds every offset the builder needs to emit an archive. All
// offsets are absolute file offsets.
type layout struct {
	tableOffset       int
	importTableOffset int
	importOffsets     []int // per resource; 0 when it has no imports
	dataOffsets       [section.PoolCount]int
	payloadOffsets    [][section.PoolCount]int
	dataEnd           int
	blobOffset        int // 0 when no blob
	totalSize         int
}

// computeLayout assigns offsets for the given on-disk payloads.
//
// The data segment obeys two padding granularities: entries within a pool
// start on section.EntryAlign boundaries (or the payload's requested
// alignment when larger), and the three pool sections are placed and
// closed on section.PoolAlign boundaries, except that the last pool is not
// padded after its final entry.
func computeLayout(payloads [][section.PoolCount][]byte, alignments [][section.PoolCount]uint32, importCounts []int, blobLen int) layout {
	var l layout
	l.tableOffset = section.HeaderSizeOnDisk

	cursor := l.tableOffset + len(payloads)*section.DescriptorSize

	// Import table directly after the directory.
	cursor = alignUp(cursor, section.EntryAlign)
	l.importTableOffset = cursor
	l.importOffsets = make([]int, len(importCounts))
	for i, count := range importCounts {
		if count == 0 {
			continue
		}
		l.importOffsets[i] = cursor
		cursor += count * section.ImportEntrySize
	}

	// Data segment: one section per pool.
	l.payloadOffsets = make([][section.PoolCount]int, len(payloads))
	lastPool := lastNonEmptyPool(payloads)
	for pool := 0; pool < section.PoolCount; pool++ {
		cursor = alignUp(cursor, section.PoolAlign)
		l.dataOffsets[pool] = cursor
		for i := range payloads {
			data := payloads[i][pool]
			if len(data) == 0 {
				continue
			}
			align := section.EntryAlign
			if a := int(alignments[i][pool]); a > align {
				align = a
			}
			cursor = alignUp(cursor, align)
			l.payloadOffsets[i][pool] = cursor
			cursor += len(data)
		}
		if pool < lastPool {
			cursor = alignUp(cursor, section.PoolAlign)
		}
	}
	l.dataEnd = cursor

	if blobLen > 0 {
		l.blobOffset = alignUp(cursor, section.EntryAlign)
		cursor = l.blobOffset + blobLen
	}
	l.totalSize = cursor

	return l
}

func lastNonEmptyPool(payloads [][section.PoolCount][]byte) int {
	for pool := section.PoolCount - 1; pool >= 0; pool-- {
		for i := range payloads {
			if len(payloads[i][pool]) > 0 {
				return pool
			}
		}
	}

	return section.PoolCount - 1
}
