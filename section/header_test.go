package section

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/criterion-modding/bnd2/endian"
	"github.com/criterion-modding/bnd2/errs"
	"github.com/criterion-modding/bnd2/format"
)

func sampleHeader() *ArchiveHeader {
	return &ArchiveHeader{
		Platform:            format.PlatformPC,
		DebugBlobOffset:     0x400,
		ResourceCount:       3,
		ResourceTableOffset: HeaderSizeOnDisk,
		DataSectionOffsets:  [PoolCount]uint32{0x180, 0x300, 0x300},
		Flags:               FlagDefault | FlagHasDebugBlob,
	}
}

func TestArchiveHeader_RoundTrip(t *testing.T) {
	for _, engine := range []endian.EndianEngine{endian.GetLittleEndianEngine(), endian.GetBigEndianEngine()} {
		original := sampleHeader()
		data := original.Bytes(engine)
		require.Len(t, data, HeaderSizeOnDisk)
		require.Equal(t, MagicTag, string(data[0:4]))

		parsed := &ArchiveHeader{}
		require.NoError(t, parsed.Parse(data, engine))
		require.Equal(t, original, parsed)
	}
}

func TestArchiveHeader_Parse(t *testing.T) {
	engine := endian.GetLittleEndianEngine()

	t.Run("short buffer", func(t *testing.T) {
		h := &ArchiveHeader{}
		err := h.Parse([]byte{1, 2, 3}, engine)
		require.ErrorIs(t, err, errs.ErrInvalidHeaderSize)
	})

	t.Run("bad magic", func(t *testing.T) {
		data := sampleHeader().Bytes(engine)
		copy(data[0:4], "bndX")

		h := &ArchiveHeader{}
		err := h.Parse(data, engine)
		require.ErrorIs(t, err, errs.ErrInvalidMagic)
		require.ErrorIs(t, err, errs.ErrFormat)
		// Fields are still populated for diagnostic reads.
		require.Equal(t, uint32(3), h.ResourceCount)
	})

	t.Run("bad version", func(t *testing.T) {
		data := sampleHeader().Bytes(engine)
		engine.PutUint32(data[4:8], 5)

		h := &ArchiveHeader{}
		require.ErrorIs(t, h.Parse(data, engine), errs.ErrInvalidVersion)
	})

	t.Run("bad platform", func(t *testing.T) {
		data := sampleHeader().Bytes(engine)
		engine.PutUint32(data[8:12], 0x77)

		h := &ArchiveHeader{}
		require.ErrorIs(t, h.Parse(data, engine), errs.ErrInvalidPlatform)
	})
}

func TestDetectEngine(t *testing.T) {
	t.Run("little-endian header", func(t *testing.T) {
		data := sampleHeader().Bytes(endian.GetLittleEndianEngine())
		engine, err := DetectEngine(data)
		require.NoError(t, err)
		require.True(t, endian.IsLittle(engine))
	})

	t.Run("big-endian header", func(t *testing.T) {
		console := sampleHeader()
		console.Platform = format.PlatformConsole
		data := console.Bytes(endian.GetBigEndianEngine())

		engine, err := DetectEngine(data)
		require.NoError(t, err)
		require.False(t, endian.IsLittle(engine))
	})

	t.Run("garbage version", func(t *testing.T) {
		data := make([]byte, HeaderSizeOnDisk)
		copy(data, MagicTag)
		_, err := DetectEngine(data)
		require.ErrorIs(t, err, errs.ErrInvalidVersion)
	})
}

func TestArchiveHeader_Flags(t *testing.T) {
	h := sampleHeader()
	require.True(t, h.HasDebugBlob())
	require.False(t, h.IsCompressed())

	h.Flags |= FlagZlibCompressed
	require.True(t, h.IsCompressed())

	h.DebugBlobOffset = 0
	require.False(t, h.HasDebugBlob(), "offset 0 means no blob even with the flag set")
}
