package bundle

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/criterion-modding/bnd2/section"
)

func TestAlignUp(t *testing.T) {
	tests := []struct {
		n, align, expected int
	}{
		{0, 16, 0},
		{1, 16, 16},
		{16, 16, 16},
		{17, 16, 32},
		{100, 128, 128},
		{128, 128, 128},
		{5, 1, 5},
		{5, 0, 5},
	}
	for _, tt := range tests {
		require.Equal(t, tt.expected, alignUp(tt.n, tt.align), "alignUp(%d, %d)", tt.n, tt.align)
	}
}

func TestLayout_AlignmentInvariant(t *testing.T) {
	resources := testResources(25)
	data, err := Build(resources)
	require.NoError(t, err)

	a, err := Parse(data)
	require.NoError(t, err)

	for i := range a.Descriptors {
		d := &a.Descriptors[i]
		for pool := 0; pool < section.PoolCount; pool++ {
			size := d.OnDiskSizes[pool].Size()
			if size == 0 {
				continue
			}
			align := d.UncompressedSizes[pool].Alignment()
			require.Zero(t, d.DiskOffsets[pool]%align,
				"resource %d pool %d: offset %d not %d-aligned", i, pool, d.DiskOffsets[pool], align)
			require.Zero(t, d.DiskOffsets[pool]%section.EntryAlign,
				"resource %d pool %d: offset below entry alignment", i, pool)
		}
	}
}

func TestLayout_PoolBoundaries(t *testing.T) {
	// Resources in pools 0 and 2; pool sections must sit on PoolAlign
	// boundaries with the directory and import table ahead of them.
	resources := []Resource{
		{ID: 1, TypeID: 0x100, Pools: [section.PoolCount]PoolData{{Data: make([]byte, 33)}}},
		{
			ID: 2, TypeID: 0x101,
			Imports: []section.ImportEntry{{ResourceID: 1, Offset: 0}},
			Pools:   [section.PoolCount]PoolData{2: {Data: make([]byte, 65), Alignment: 64}},
		},
	}

	data, err := Build(resources)
	require.NoError(t, err)
	a, err := Parse(data)
	require.NoError(t, err)

	h := &a.Header
	require.Equal(t, uint32(section.HeaderSizeOnDisk), h.ResourceTableOffset)
	for pool := 0; pool < section.PoolCount; pool++ {
		require.Zero(t, h.DataSectionOffsets[pool]%section.PoolAlign,
			"pool %d base %d not on the pool boundary", pool, h.DataSectionOffsets[pool])
	}
	require.True(t, h.DataSectionOffsets[1] > h.DataSectionOffsets[0])
	require.True(t, h.DataSectionOffsets[2] >= h.DataSectionOffsets[1])

	// Pool 0 holds 33 bytes but the next section still starts on a 128
	// boundary after it.
	end0 := h.DataSectionOffsets[0] + 33
	require.LessOrEqual(t, end0, h.DataSectionOffsets[1])
	require.Zero(t, a.Descriptors[1].DiskOffsets[2]%64, "requested 64-byte alignment honored")
}

func TestLayout_ImportTablePlacement(t *testing.T) {
	resources := testResources(10)
	data, err := Build(resources)
	require.NoError(t, err)
	a, err := Parse(data)
	require.NoError(t, err)

	tableEnd := int(a.Header.ResourceTableOffset) + len(a.Descriptors)*section.DescriptorSize
	for i := range a.Descriptors {
		d := &a.Descriptors[i]
		if d.ImportCount == 0 {
			require.Zero(t, d.ImportOffset)
			continue
		}
		require.GreaterOrEqual(t, int(d.ImportOffset), tableEnd)
		require.Less(t, int(d.ImportOffset), int(a.Header.DataSectionOffsets[0]))
	}
}

func TestLayout_EmptyArchive(t *testing.T) {
	data, err := Build(nil)
	require.NoError(t, err)

	a, err := Parse(data)
	require.NoError(t, err)
	require.Zero(t, a.ResourceCount())
	require.Zero(t, len(data)%section.PoolAlign,
		"an empty archive still ends on the pool boundary its sections start at")
}
