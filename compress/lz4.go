package compress

import (
	"bytes"
	"fmt"
	"io"
	"sync"

	"github.com/pierrec/lz4/v4"

	"github.com/criterion-modding/bnd2/errs"
)

// lz4WriterPool pools lz4.Writer instances for reuse across payloads.
var lz4WriterPool = sync.Pool{
	New: func() any {
		return lz4.NewWriter(io.Discard)
	},
}

// LZ4Codec implements LZ4 frame compression. Canonical archives compress
// with zlib; LZ4 frames are recognized by Sniff so side-channel payloads
// built by tooling round-trip through the same layer.
type LZ4Codec struct{}

var _ Codec = (*LZ4Codec)(nil)

// NewLZ4Codec creates a new LZ4 frame codec.
func NewLZ4Codec() LZ4Codec {
	return LZ4Codec{}
}

// Compress compresses the input data into an LZ4 frame.
func (c LZ4Codec) Compress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	var buf bytes.Buffer
	buf.Grow(len(data)/2 + 64)

	lw, _ := lz4WriterPool.Get().(*lz4.Writer)
	defer lz4WriterPool.Put(lw)
	lw.Reset(&buf)

	if _, err := lw.Write(data); err != nil {
		return nil, fmt.Errorf("lz4 compress: %w", err)
	}
	if err := lw.Close(); err != nil {
		return nil, fmt.Errorf("lz4 compress: %w", err)
	}

	return buf.Bytes(), nil
}

// Decompress restores an LZ4 frame.
func (c LZ4Codec) Decompress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	lr := lz4.NewReader(bytes.NewReader(data))
	out, err := io.ReadAll(lr)
	if err != nil {
		return nil, fmt.Errorf("%w: lz4 frame after %d bytes: %v", errs.ErrCorruptStream, len(out), err)
	}

	return out, nil
}
