package format

import "fmt"

type (
	// Platform identifies the target platform an archive was built for.
	// Console platforms store all multi-byte fields big-endian.
	Platform uint32

	// ResourceType is the numeric type id of a resource payload.
	ResourceType uint32

	// CompressionType selects a payload compression algorithm.
	CompressionType uint8
)

const (
	PlatformPC       Platform = 0x1 // PlatformPC represents the little-endian PC target.
	PlatformConsole  Platform = 0x2 // PlatformConsole represents the primary big-endian console target.
	PlatformConsole2 Platform = 0x3 // PlatformConsole2 represents the secondary big-endian console target.

	CompressionNone CompressionType = 0x1 // CompressionNone represents no compression.
	CompressionZlib CompressionType = 0x2 // CompressionZlib represents a zlib (RFC 1950) stream.
	CompressionLZ4  CompressionType = 0x3 // CompressionLZ4 represents an LZ4 frame stream.
)

// Resource type ids commonly found in archives. The directory stores the raw
// numeric id, so unknown values are legal and simply render as hex.
const (
	TypeVehicleList  ResourceType = 0x105 // vehicle roster table
	TypePaintPalette ResourceType = 0x10E // paint color palette table
	TypeNestedBundle ResourceType = 0x201 // payload is itself a complete archive
)

// IsBigEndian reports whether the platform stores fields big-endian.
func (p Platform) IsBigEndian() bool {
	return p == PlatformConsole || p == PlatformConsole2
}

// Valid reports whether p is a known platform id.
func (p Platform) Valid() bool {
	switch p {
	case PlatformPC, PlatformConsole, PlatformConsole2:
		return true
	default:
		return false
	}
}

func (p Platform) String() string {
	switch p {
	case PlatformPC:
		return "PC"
	case PlatformConsole:
		return "Console"
	case PlatformConsole2:
		return "Console2"
	default:
		return "Unknown"
	}
}

func (t ResourceType) String() string {
	switch t {
	case TypeVehicleList:
		return "VehicleList"
	case TypePaintPalette:
		return "PaintPalette"
	case TypeNestedBundle:
		return "NestedBundle"
	default:
		return fmt.Sprintf("Type(0x%X)", uint32(t))
	}
}

func (c CompressionType) String() string {
	switch c {
	case CompressionNone:
		return "None"
	case CompressionZlib:
		return "Zlib"
	case CompressionLZ4:
		return "LZ4"
	default:
		return "Unknown"
	}
}
