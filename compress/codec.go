package compress

import (
	"fmt"

	"github.com/criterion-modding/bnd2/format"
)

// Compressor compresses one payload into a freshly allocated buffer.
//
// Memory management:
//   - Returned slice is newly allocated and owned by the caller
//   - Input slice is not modified
//   - Internal buffers may be reused for efficiency
type Compressor interface {
	Compress(data []byte) ([]byte, error)
}

// Decompressor restores one compressed payload.
//
// The input must have been produced by the matching algorithm; corrupt or
// mismatched streams fail with an error satisfying
// errors.Is(err, errs.ErrCompression).
type Decompressor interface {
	Decompress(data []byte) ([]byte, error)
}

// Codec combines both compression and decompression capabilities.
//
// All built-in codecs are stateless values and safe for concurrent use.
type Codec interface {
	Compressor
	Decompressor
}

var builtinCodecs = map[format.CompressionType]Codec{
	format.CompressionNone: NewNoOpCodec(),
	format.CompressionZlib: NewZlibCodec(),
	format.CompressionLZ4:  NewLZ4Codec(),
}

// GetCodec retrieves a built-in Codec for the specified compression type.
func GetCodec(compressionType format.CompressionType) (Codec, error) {
	if codec, ok := builtinCodecs[compressionType]; ok {
		return codec, nil
	}

	return nil, fmt.Errorf("unsupported compression type: %s", compressionType)
}

// zlib streams start with 0x78 (deflate, 32K window); LZ4 frames with the
// 4-byte frame magic.
const zlibMagic = 0x78

var lz4FrameMagic = [4]byte{0x04, 0x22, 0x4D, 0x18}

// Sniff inspects the leading bytes of a payload and reports the compression
// type they imply. Payloads without a recognized magic are reported as
// CompressionNone. The sniff is authoritative over the directory's
// compressed flag, which observed archives do not keep consistent.
func Sniff(data []byte) format.CompressionType {
	if len(data) == 0 {
		return format.CompressionNone
	}
	if data[0] == zlibMagic {
		return format.CompressionZlib
	}
	if len(data) >= 4 && [4]byte(data[:4]) == lz4FrameMagic {
		return format.CompressionLZ4
	}

	return format.CompressionNone
}

// IsCompressed reports whether Sniff recognizes data as a compressed stream.
func IsCompressed(data []byte) bool {
	return Sniff(data) != format.CompressionNone
}
