package compress

import (
	"bytes"
	"fmt"
	"io"
	"sync"

	"github.com/klauspost/compress/zlib"

	"github.com/criterion-modding/bnd2/errs"
)

// zlibWriterPool pools zlib.Writer instances; Reset avoids rebuilding the
// deflate state on every payload.
var zlibWriterPool = sync.Pool{
	New: func() any {
		return zlib.NewWriter(io.Discard)
	},
}

// ZlibCodec implements the zlib (RFC 1950) payload compression used by the
// archive format.
type ZlibCodec struct{}

var _ Codec = (*ZlibCodec)(nil)

// NewZlibCodec creates a new zlib codec.
func NewZlibCodec() ZlibCodec {
	return ZlibCodec{}
}

// Compress compresses the input data into a zlib stream.
//
// Parameters:
//   - data: Input data to compress
//
// Returns:
//   - []byte: Compressed stream (nil if input is empty)
//   - error: Compression error if any
func (c ZlibCodec) Compress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	var buf bytes.Buffer
	buf.Grow(len(data)/2 + 64)

	zw, _ := zlibWriterPool.Get().(*zlib.Writer)
	defer zlibWriterPool.Put(zw)
	zw.Reset(&buf)

	if _, err := zw.Write(data); err != nil {
		return nil, fmt.Errorf("zlib compress: %w", err)
	}
	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("zlib compress: %w", err)
	}

	return buf.Bytes(), nil
}

// Decompress restores a zlib stream.
//
// Parameters:
//   - data: Compressed stream to decompress
//
// Returns:
//   - []byte: Decompressed data (nil if input is empty)
//   - error: Error wrapping errs.ErrCorruptStream if the stream is malformed
func (c ZlibCodec) Decompress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	zr, err := zlib.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: zlib header: %v", errs.ErrCorruptStream, err)
	}
	defer zr.Close()

	out, err := io.ReadAll(zr)
	if err != nil {
		return nil, fmt.Errorf("%w: zlib body after %d bytes: %v", errs.ErrCorruptStream, len(out), err)
	}

	return out, nil
}
