// Package cgsid implements the reversible base-40 encoding between short
// ASCII resource names and the 64-bit identifiers stored in archives.
//
// A name has up to 12 character slots; each slot maps to a digit 0..39 and
// the digits accumulate most-significant first. The digit table is the one
// used by shipped archives: space 0, '-' 1, '/' 2, digits '0'-'9' at 7..16,
// 'A'-'Z' at 13..38, '_' 39, anything else 0. The digit ranges for '6'-'9'
// and 'A'-'D' overlap, so decoding renders those digits as 'A'-'D'; names
// over the alphabet " -/0-5A-Z_" are fully reversible.
package cgsid

const (
	// MaxNameLen is the number of character slots in an encoded id.
	MaxNameLen = 12

	radix = 40
)

// decodeTable maps a digit 0..39 back to its canonical character. Digits
// 3..6 are never produced by Encode; they render as '0'..'3' so stray
// values from foreign tools still decode to something printable.
var decodeTable = [radix]byte{
	' ', '-', '/',
	'0', '1', '2', '3',
	'0', '1', '2', '3', '4', '5',
	'A', 'B', 'C', 'D', 'E', 'F', 'G', 'H', 'I', 'J', 'K', 'L', 'M',
	'N', 'O', 'P', 'Q', 'R', 'S', 'T', 'U', 'V', 'W', 'X', 'Y', 'Z',
	'_',
}

func digitFor(c byte) uint64 {
	switch {
	case c == ' ':
		return 0
	case c == '-':
		return 1
	case c == '/':
		return 2
	case c >= '0' && c <= '9':
		return uint64(c-'0') + 7
	case c >= 'A' && c <= 'Z':
		return uint64(c-'A') + 13
	case c == '_':
		return 39
	default:
		return 0
	}
}

// Encode converts a name of up to MaxNameLen characters to its 64-bit id.
// Characters beyond the limit are ignored; missing trailing characters are
// treated as pad slots.
func Encode(name string) uint64 {
	var acc uint64
	for i := 0; i < MaxNameLen; i++ {
		var digit uint64
		if i < len(name) {
			digit = digitFor(name[i])
		}
		acc = acc*radix + digit
	}

	return acc
}

// Decode converts a 64-bit id back to its name, trailing pad slots trimmed.
// Encode(Decode(v)) == v holds for every v produced by Encode.
func Decode(v uint64) string {
	var buf [MaxNameLen]byte
	for i := MaxNameLen - 1; i >= 0; i-- {
		buf[i] = decodeTable[v%radix]
		v /= radix
	}

	end := MaxNameLen
	for end > 0 && buf[end-1] == ' ' {
		end--
	}

	return string(buf[:end])
}

// Valid reports whether name fits in the id slots and uses only characters
// that survive an Encode/Decode round trip.
func Valid(name string) bool {
	if len(name) > MaxNameLen {
		return false
	}
	for i := 0; i < len(name); i++ {
		c := name[i]
		switch {
		case c == ' ' || c == '-' || c == '/' || c == '_':
		case c >= '0' && c <= '5':
		case c >= 'A' && c <= 'Z':
		default:
			return false
		}
	}
	// A trailing space is indistinguishable from a pad slot.
	return len(name) == 0 || name[len(name)-1] != ' '
}
