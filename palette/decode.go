package palette

import (
	"math"

	"github.com/criterion-modding/bnd2/endian"
	"github.com/criterion-modding/bnd2/internal/options"
)

// candidate is one structured decoder shape. Candidates are tried in
// priority order; each scores itself by what it recovers, and the best
// score wins. New shapes slot in by extending the candidate list.
type candidate struct {
	width  PointerWidth
	engine endian.EndianEngine
}

// score ranks a decode attempt: accepted slots first, recovered colors as
// the tie-breaker.
type score struct {
	slots  int
	colors int
}

func (s score) better(o score) bool {
	if s.slots != o.slots {
		return s.slots > o.slots
	}

	return s.colors > o.colors
}

// Parse decodes a palette payload.
//
// Structured header parsing is always preferred; the flat color scan runs
// only when no structured candidate recovers anything, and the synthesized
// placeholder only when the scan finds nothing either. The result's Source
// field records which path produced it.
func Parse(payload []byte, opts ...ParseOption) (*Table, error) {
	cfg := &ParseConfig{}
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}

	if t := parseStructured(payload, cfg); t != nil {
		return t, nil
	}
	if t := parseFlatScan(payload); t != nil {
		return t, nil
	}

	return synthesize(), nil
}

func candidatesFor(payload []byte, cfg *ParseConfig) []candidate {
	widths := make([]PointerWidth, 0, 2)
	switch {
	case cfg.widthHint != 0:
		widths = append(widths, cfg.widthHint)
	case len(payload) >= HeaderSize64:
		widths = append(widths, Width64, Width32)
	default:
		widths = append(widths, Width32)
	}

	engines := []endian.EndianEngine{endian.GetLittleEndianEngine(), endian.GetBigEndianEngine()}
	if cfg.engine != nil {
		engines = engines[:0]
		engines = append(engines, cfg.engine)
	}

	cands := make([]candidate, 0, len(widths)*len(engines))
	for _, w := range widths {
		for _, e := range engines {
			cands = append(cands, candidate{width: w, engine: e})
		}
	}

	return cands
}

func parseStructured(payload []byte, cfg *ParseConfig) *Table {
	var best *Table
	var bestScore score

	for _, cand := range candidatesFor(payload, cfg) {
		t, sc := tryStructured(payload, cand)
		if t != nil && sc.better(bestScore) {
			best, bestScore = t, sc
		}
	}

	return best
}

// tryStructured decodes under one candidate shape. A slot is accepted only
// when its count is in (0, MaxColors] and its arrays land inside the
// payload; rejected slots stay empty rather than failing the attempt.
func tryStructured(payload []byte, cand candidate) (*Table, score) {
	headerSize := cand.width.headerSize()
	if len(payload) < headerSize {
		return nil, score{}
	}

	t := &Table{Width: cand.width, Source: SourceStructured}
	var sc score
	cursor := headerSize

	for slot := 0; slot < SlotCount; slot++ {
		entry := payload[slot*cand.width.entrySize():]
		count := int(cand.engine.Uint32(entry[0:4]))
		if count <= 0 || count > MaxColors {
			continue
		}

		var paintPtr, pearlPtr int
		if cand.width == Width64 {
			paintPtr = int(cand.engine.Uint64(entry[8:16]))
			pearlPtr = int(cand.engine.Uint64(entry[16:24]))
		} else {
			paintPtr = int(cand.engine.Uint32(entry[4:8]))
			pearlPtr = int(cand.engine.Uint32(entry[8:12]))
		}

		paints, next, ok := colorsAt(payload, paintPtr, count, cursor, headerSize, cand.engine)
		if !ok {
			continue
		}
		cursor = next
		pearls, next, ok := colorsAt(payload, pearlPtr, count, cursor, headerSize, cand.engine)
		if ok {
			cursor = next
		}

		t.Palettes[slot] = Palette{Paints: paints, Pearls: pearls}
		sc.slots++
		sc.colors += len(paints) + len(pearls)
	}

	if sc.slots == 0 {
		return nil, score{}
	}

	return t, sc
}

// colorsAt reads count colors from the pointer, interpreted as a
// payload-relative offset. A zero pointer means "no array". Pointers that
// fall outside the payload fall back to the sequential cursor, which is
// what payloads with unrelocated memory addresses degrade to.
func colorsAt(payload []byte, ptr, count, cursor, headerSize int, engine endian.EndianEngine) ([]Color, int, bool) {
	if ptr == 0 {
		return nil, cursor, false
	}
	// Bounds are checked by subtraction: offset+need would overflow for
	// pointers near MaxInt64.
	need := count * ColorSize
	offset := ptr
	if offset < headerSize || offset > len(payload)-need {
		offset = cursor
		if offset < 0 || offset > len(payload)-need {
			return nil, cursor, false
		}
	}

	colors := make([]Color, count)
	for i := range colors {
		colors[i] = readColor(payload[offset+i*ColorSize:], engine)
	}

	return colors, offset + need, true
}

func readColor(data []byte, engine endian.EndianEngine) Color {
	return Color{
		R: math.Float32frombits(engine.Uint32(data[0:4])),
		G: math.Float32frombits(engine.Uint32(data[4:8])),
		B: math.Float32frombits(engine.Uint32(data[8:12])),
		A: math.Float32frombits(engine.Uint32(data[12:16])),
	}
}

// plausibleColor accepts finite channels with |v| < 100; real palettes may
// exceed 1.0 (over-bright) but never reach triple digits.
func plausibleColor(c Color) bool {
	for _, v := range [4]float32{c.R, c.G, c.B, c.A} {
		f := float64(v)
		if math.IsNaN(f) || math.IsInf(f, 0) || math.Abs(f) >= 100 {
			return false
		}
	}

	return true
}

// parseFlatScan reads the payload as a flat run of color records, tries
// both byte orders, and keeps whichever yields more plausible colors,
// spread evenly across the five slots.
func parseFlatScan(payload []byte) *Table {
	var best []Color
	for _, engine := range []endian.EndianEngine{endian.GetLittleEndianEngine(), endian.GetBigEndianEngine()} {
		var found []Color
		for offset := 0; offset+ColorSize <= len(payload); offset += ColorSize {
			if c := readColor(payload[offset:], engine); plausibleColor(c) {
				found = append(found, c)
			}
		}
		if len(found) > len(best) {
			best = found
		}
	}
	if len(best) == 0 {
		return nil
	}

	t := &Table{Width: Width32, Source: SourceFlatScan}
	per := (len(best) + SlotCount - 1) / SlotCount
	if per > MaxColors {
		// Colors beyond SlotCount*MaxColors are dropped; every slot must
		// stay within the plausible count bound.
		per = MaxColors
	}
	for slot := 0; slot < SlotCount && len(best) > 0; slot++ {
		n := min(per, len(best))
		t.Palettes[slot].Paints = best[:n]
		best = best[n:]
	}

	return t
}

// synthesize builds the deterministic placeholder rainbow: callers always
// get a valid-shaped, non-empty table, flagged as fabricated.
func synthesize() *Table {
	t := &Table{Width: Width32, Source: SourceSynthesized}
	for slot := 0; slot < SlotCount; slot++ {
		colors := make([]Color, synthColorsPerSlot)
		for i := range colors {
			hue := float64(slot*synthColorsPerSlot+i) / float64(SlotCount*synthColorsPerSlot)
			r, g, b := hueToRGB(hue)
			colors[i] = Color{R: r, G: g, B: b, A: 1}
		}
		t.Palettes[slot].Paints = colors
	}

	return t
}

func hueToRGB(h float64) (float32, float32, float32) {
	h = math.Mod(h, 1) * 6
	x := 1 - math.Abs(math.Mod(h, 2)-1)
	var r, g, b float64
	switch int(h) {
	case 0:
		r, g = 1, x
	case 1:
		r, g = x, 1
	case 2:
		g, b = 1, x
	case 3:
		g, b = x, 1
	case 4:
		r, b = x, 1
	default:
		r, b = 1, x
	}

	return float32(r), float32(g), float32(b)
}
