package format

// SizeAndAlign is the packed directory word holding a 28-bit byte size in the
// low bits and a 4-bit alignment exponent in the high bits. The effective
// alignment is 1<<exponent bytes.
type SizeAndAlign uint32

const (
	sizeBits = 28
	sizeMask = SizeAndAlign(1)<<sizeBits - 1

	// MaxSize is the largest byte size the packed word can express.
	MaxSize = uint32(sizeMask)
	// MaxAlignShift is the largest storable alignment exponent (alignment 1<<15).
	MaxAlignShift = 0xF
)

// PackSizeAndAlign packs size and an alignment exponent into one word.
// Values outside the representable range are truncated to their field width.
func PackSizeAndAlign(size uint32, alignShift uint8) SizeAndAlign {
	return SizeAndAlign(size)&sizeMask | SizeAndAlign(alignShift&MaxAlignShift)<<sizeBits
}

// Size returns the unpacked byte size.
func (s SizeAndAlign) Size() uint32 {
	return uint32(s & sizeMask)
}

// AlignShift returns the stored alignment exponent.
func (s SizeAndAlign) AlignShift() uint8 {
	return uint8(s >> sizeBits)
}

// Alignment returns the effective byte alignment, always a power of two and
// at least 1.
func (s SizeAndAlign) Alignment() uint32 {
	return 1 << s.AlignShift()
}

// AlignShiftFor returns the exponent for a power-of-two alignment. Non-power
// values round up to the next power of two; zero maps to exponent 0.
func AlignShiftFor(alignment uint32) uint8 {
	var shift uint8
	for alignment > 1<<shift && shift < MaxAlignShift {
		shift++
	}

	return shift
}
