package palette

import (
	"fmt"
	"math"

	"github.com/criterion-modding/bnd2/endian"
	"github.com/criterion-modding/bnd2/errs"
)

// Write serializes the table under its chosen pointer width: the five
// header entries in slot order, then each slot's paint and pearl arrays,
// with pointer fields holding payload-relative offsets. Parse inverts the
// result under the same byte order.
func Write(t *Table, engine endian.EndianEngine) ([]byte, error) {
	if engine == nil {
		engine = endian.GetLittleEndianEngine()
	}
	width := t.Width
	if width != Width32 && width != Width64 {
		return nil, fmt.Errorf("%w: pointer width %d", errs.ErrFormat, width)
	}

	headerSize := width.headerSize()
	total := headerSize
	for i := range t.Palettes {
		p := &t.Palettes[i]
		if len(p.Paints) > MaxColors {
			return nil, fmt.Errorf("%w: slot %s holds %d colors, max %d",
				errs.ErrFormat, Slot(i), len(p.Paints), MaxColors)
		}
		if len(p.Pearls) > 0 && len(p.Pearls) != len(p.Paints) {
			return nil, fmt.Errorf("%w: slot %s pearl count %d does not match paint count %d",
				errs.ErrFormat, Slot(i), len(p.Pearls), len(p.Paints))
		}
		total += (len(p.Paints) + len(p.Pearls)) * ColorSize
	}

	out := make([]byte, total)
	cursor := headerSize
	for i := range t.Palettes {
		p := &t.Palettes[i]
		entry := out[i*width.entrySize():]
		engine.PutUint32(entry[0:4], uint32(len(p.Paints)))
		if len(p.Paints) == 0 {
			continue
		}

		paintPtr := cursor
		cursor = writeColors(out, cursor, p.Paints, engine)
		pearlPtr := 0
		if len(p.Pearls) > 0 {
			pearlPtr = cursor
			cursor = writeColors(out, cursor, p.Pearls, engine)
		}

		if width == Width64 {
			engine.PutUint64(entry[8:16], uint64(paintPtr))
			engine.PutUint64(entry[16:24], uint64(pearlPtr))
		} else {
			engine.PutUint32(entry[4:8], uint32(paintPtr))
			engine.PutUint32(entry[8:12], uint32(pearlPtr))
		}
	}

	return out, nil
}

func writeColors(out []byte, cursor int, colors []Color, engine endian.EndianEngine) int {
	for _, c := range colors {
		engine.PutUint32(out[cursor:], math.Float32bits(c.R))
		engine.PutUint32(out[cursor+4:], math.Float32bits(c.G))
		engine.PutUint32(out[cursor+8:], math.Float32bits(c.B))
		engine.PutUint32(out[cursor+12:], math.Float32bits(c.A))
		cursor += ColorSize
	}

	return cursor
}
