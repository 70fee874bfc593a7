// Package palette implements the paint palette resource: five fixed
// semantic color groups, each a pair of paint/pearlescent color arrays
// described by a small header.
//
// The header exists in two physical shapes, with 32-bit or 64-bit pointer
// fields, and the payload carries no discriminant. Parse therefore runs a
// ranked list of candidate decoders (width x byte order), scores each by
// how many plausible palettes it recovers, and keeps the best. When no
// candidate recovers anything it falls back to scanning the payload as a
// flat run of color records, and as a last resort synthesizes a placeholder
// rainbow so callers always receive a valid-shaped table; the Source field
// tells fabricated data apart from real data.
package palette

import (
	"fmt"

	"github.com/criterion-modding/bnd2/endian"
	"github.com/criterion-modding/bnd2/internal/options"
)

const (
	// SlotCount is the number of fixed semantic palette classes.
	SlotCount = 5

	// ColorSize is the byte size of one RGBA float32 record.
	ColorSize = 16

	// MaxColors bounds a plausible per-palette color count; a header
	// entry is accepted only when its count is in (0, MaxColors].
	MaxColors = 1000

	headerEntry32 = 12
	headerEntry64 = 24

	// HeaderSize32 and HeaderSize64 are the full header sizes under each
	// pointer width.
	HeaderSize32 = SlotCount * headerEntry32
	HeaderSize64 = SlotCount * headerEntry64

	// synthColorsPerSlot is the size of the placeholder rainbow.
	synthColorsPerSlot = 10
)

// Slot names the five semantic palette classes, index 0..4.
type Slot uint8

const (
	SlotGloss Slot = iota
	SlotMetallic
	SlotPearlescent
	SlotSpecial
	SlotParty
)

func (s Slot) String() string {
	switch s {
	case SlotGloss:
		return "Gloss"
	case SlotMetallic:
		return "Metallic"
	case SlotPearlescent:
		return "Pearlescent"
	case SlotSpecial:
		return "Special"
	case SlotParty:
		return "Party"
	default:
		return fmt.Sprintf("Slot(%d)", uint8(s))
	}
}

// PointerWidth is the physical width of the header's pointer fields.
type PointerWidth uint8

const (
	Width32 PointerWidth = 4
	Width64 PointerWidth = 8
)

func (w PointerWidth) headerSize() int {
	if w == Width64 {
		return HeaderSize64
	}

	return HeaderSize32
}

func (w PointerWidth) entrySize() int {
	if w == Width64 {
		return headerEntry64
	}

	return headerEntry32
}

// Source reports where a parsed table's colors came from.
type Source uint8

const (
	// SourceStructured means the header decoded under one of the known
	// shapes.
	SourceStructured Source = iota
	// SourceFlatScan means colors were recovered by scanning the payload
	// as a flat color run.
	SourceFlatScan
	// SourceSynthesized means nothing usable was found and the table
	// holds the placeholder rainbow. Fabricated data; do not write back.
	SourceSynthesized
)

func (s Source) String() string {
	switch s {
	case SourceStructured:
		return "Structured"
	case SourceFlatScan:
		return "FlatScan"
	case SourceSynthesized:
		return "Synthesized"
	default:
		return fmt.Sprintf("Source(%d)", uint8(s))
	}
}

// Color is one RGBA entry. Channels are commonly in [0,1] but over-bright
// values above 1 are legitimate.
type Color struct {
	R, G, B, A float32
}

// Palette is one semantic color group: a paint array and an optional
// pearlescent overlay array.
type Palette struct {
	Paints []Color
	Pearls []Color
}

// Table is a parsed palette resource.
type Table struct {
	Palettes [SlotCount]Palette
	// Width is the pointer width the payload decoded under (or the one
	// Write should emit).
	Width PointerWidth
	// Source tells whether the colors are real or fabricated.
	Source Source
}

// ColorCount returns the total number of paint colors across all slots.
func (t *Table) ColorCount() int {
	n := 0
	for i := range t.Palettes {
		n += len(t.Palettes[i].Paints)
	}

	return n
}

// ParseConfig collects parse-time settings.
type ParseConfig struct {
	widthHint PointerWidth
	engine    endian.EndianEngine
}

// ParseOption represents a functional option for configuring Parse.
type ParseOption = options.Option[*ParseConfig]

// WithWidthHint pins the pointer width instead of guessing it from the
// payload size.
func WithWidthHint(w PointerWidth) ParseOption {
	return options.NoError(func(c *ParseConfig) {
		c.widthHint = w
	})
}

// WithEngine restricts candidate decoding to one byte order.
func WithEngine(engine endian.EndianEngine) ParseOption {
	return options.NoError(func(c *ParseConfig) {
		c.engine = engine
	})
}
