package vehiclelist

import (
	"fmt"
	"math"

	"github.com/criterion-modding/bnd2/cgsid"
	"github.com/criterion-modding/bnd2/endian"
	"github.com/criterion-modding/bnd2/errs"
)

// RecordSize is the fixed on-disk size of one vehicle record.
const RecordSize = 264

// Byte offsets within a record. Regions not named here are reserved or
// padding and read back as zero.
const (
	offCarID           = 0
	offParentID        = 8
	offWheelName       = 16
	offVehicleName     = 48
	offManufacturer    = 112
	offDamageLimit     = 144
	offGameplayFlags   = 148
	offBoostLength     = 152
	offVehicleRank     = 153
	offBoostCapacity   = 154
	offDisplayStrength = 155
	offAttribKey       = 160
	offExhaustName     = 168
	offEngineName      = 176
	offExhaustEntity   = 184
	offExhaustRTPC     = 192
	offEngineEntity    = 200
	offEngineRTPC      = 208
	offClassUnlock     = 216
	offAIMusic         = 220
	offAIMusicLoop     = 224
	offAIExhaust       = 225
	offAIExhaustAlt    = 226
	offCategory        = 248
	offTypeNibbles     = 252
	offFinishType      = 253
	offMaxSpeed        = 254
	offMaxSpeedBoost   = 255
	offColorIndex      = 256
	offPaletteIndex    = 257

	wheelNameLen    = 32
	vehicleNameLen  = 64
	manufacturerLen = 32
)

// VehicleType is the 4-bit vehicle class enum packed into the low nibble of
// the type byte.
type VehicleType uint8

const (
	VehicleCar VehicleType = iota
	VehicleBike
	VehiclePlane
	VehicleToy
)

func (v VehicleType) String() string {
	switch v {
	case VehicleCar:
		return "Car"
	case VehicleBike:
		return "Bike"
	case VehiclePlane:
		return "Plane"
	case VehicleToy:
		return "Toy"
	default:
		return fmt.Sprintf("VehicleType(%d)", uint8(v))
	}
}

// BoostType is the 4-bit boost behavior enum packed into the high nibble of
// the type byte.
type BoostType uint8

const (
	BoostSpeed BoostType = iota
	BoostAggression
	BoostStunt
	BoostNone
)

func (b BoostType) String() string {
	switch b {
	case BoostSpeed:
		return "Speed"
	case BoostAggression:
		return "Aggression"
	case BoostStunt:
		return "Stunt"
	case BoostNone:
		return "None"
	default:
		return fmt.Sprintf("BoostType(%d)", uint8(b))
	}
}

// Gameplay holds the drive-model fields of a record.
type Gameplay struct {
	DamageLimit     float32
	Flags           uint32
	BoostLength     uint8
	VehicleRank     uint8
	BoostCapacity   uint8
	DisplayStrength uint8
}

// Audio holds the sound-design fields of a record. ExhaustName and
// EngineName are CGS-ID names; ClassUnlockStream and AIMusicStream are
// stream names resolved from their stored hashes.
type Audio struct {
	ExhaustName       string
	EngineName        string
	ExhaustEntityKey  uint64
	ExhaustRTPCKey    uint64
	EngineEntityKey   uint64
	EngineRTPCKey     uint64
	ClassUnlockStream string
	AIMusicStream     string
	AIMusicLoopIndex  uint8
	AIExhaustIndex    uint8
	AIExhaustIndexAlt uint8
}

// Record is one vehicle roster entry. ID and ParentID are decoded CGS-ID
// names; identifiers over the reversible alphabet survive a byte-exact
// round trip.
type Record struct {
	ID            string
	ParentID      string
	WheelName     string
	VehicleName   string
	Manufacturer  string
	Gameplay      Gameplay
	AttribKey     uint64
	Audio         Audio
	Category      uint32
	VehicleType   VehicleType
	BoostType     BoostType
	FinishType    uint8
	MaxSpeed      uint8
	MaxSpeedBoost uint8
	ColorIndex    uint8
	PaletteIndex  uint8
}

// parseRecord decodes one record from exactly RecordSize bytes.
func parseRecord(data []byte, engine endian.EndianEngine) (Record, error) {
	r := Record{
		ID:       cgsid.Decode(engine.Uint64(data[offCarID:])),
		ParentID: cgsid.Decode(engine.Uint64(data[offParentID:])),
	}

	var err error
	if r.WheelName, err = fixedString(data[offWheelName:], wheelNameLen, "wheel name"); err != nil {
		return r, err
	}
	if r.VehicleName, err = fixedString(data[offVehicleName:], vehicleNameLen, "vehicle name"); err != nil {
		return r, err
	}
	if r.Manufacturer, err = fixedString(data[offManufacturer:], manufacturerLen, "manufacturer"); err != nil {
		return r, err
	}

	r.Gameplay = Gameplay{
		DamageLimit:     math.Float32frombits(engine.Uint32(data[offDamageLimit:])),
		Flags:           engine.Uint32(data[offGameplayFlags:]),
		BoostLength:     data[offBoostLength],
		VehicleRank:     data[offVehicleRank],
		BoostCapacity:   data[offBoostCapacity],
		DisplayStrength: data[offDisplayStrength],
	}
	if f := float64(r.Gameplay.DamageLimit); math.IsNaN(f) || math.IsInf(f, 0) {
		return r, fmt.Errorf("%w: damage limit is not finite", errs.ErrFormat)
	}

	r.AttribKey = engine.Uint64(data[offAttribKey:])
	r.Audio = Audio{
		ExhaustName:       cgsid.Decode(engine.Uint64(data[offExhaustName:])),
		EngineName:        cgsid.Decode(engine.Uint64(data[offEngineName:])),
		ExhaustEntityKey:  engine.Uint64(data[offExhaustEntity:]),
		ExhaustRTPCKey:    engine.Uint64(data[offExhaustRTPC:]),
		EngineEntityKey:   engine.Uint64(data[offEngineEntity:]),
		EngineRTPCKey:     engine.Uint64(data[offEngineRTPC:]),
		ClassUnlockStream: resolveStream(classUnlockStreams, engine.Uint32(data[offClassUnlock:])),
		AIMusicStream:     resolveStream(aiMusicStreams, engine.Uint32(data[offAIMusic:])),
		AIMusicLoopIndex:  data[offAIMusicLoop],
		AIExhaustIndex:    data[offAIExhaust],
		AIExhaustIndexAlt: data[offAIExhaustAlt],
	}

	r.Category = engine.Uint32(data[offCategory:])
	r.VehicleType = VehicleType(data[offTypeNibbles] & 0x0F)
	r.BoostType = BoostType(data[offTypeNibbles] >> 4)
	r.FinishType = data[offFinishType]
	r.MaxSpeed = data[offMaxSpeed]
	r.MaxSpeedBoost = data[offMaxSpeedBoost]
	r.ColorIndex = data[offColorIndex]
	r.PaletteIndex = data[offPaletteIndex]

	return r, nil
}

// writeRecord encodes one record into exactly RecordSize bytes, reserved
// and padding regions zeroed.
func writeRecord(r *Record, engine endian.EndianEngine) []byte {
	b := make([]byte, RecordSize)

	engine.PutUint64(b[offCarID:], cgsid.Encode(r.ID))
	engine.PutUint64(b[offParentID:], cgsid.Encode(r.ParentID))
	putFixedString(b[offWheelName:], wheelNameLen, r.WheelName)
	putFixedString(b[offVehicleName:], vehicleNameLen, r.VehicleName)
	putFixedString(b[offManufacturer:], manufacturerLen, r.Manufacturer)

	engine.PutUint32(b[offDamageLimit:], math.Float32bits(r.Gameplay.DamageLimit))
	engine.PutUint32(b[offGameplayFlags:], r.Gameplay.Flags)
	b[offBoostLength] = r.Gameplay.BoostLength
	b[offVehicleRank] = r.Gameplay.VehicleRank
	b[offBoostCapacity] = r.Gameplay.BoostCapacity
	b[offDisplayStrength] = r.Gameplay.DisplayStrength

	engine.PutUint64(b[offAttribKey:], r.AttribKey)
	engine.PutUint64(b[offExhaustName:], cgsid.Encode(r.Audio.ExhaustName))
	engine.PutUint64(b[offEngineName:], cgsid.Encode(r.Audio.EngineName))
	engine.PutUint64(b[offExhaustEntity:], r.Audio.ExhaustEntityKey)
	engine.PutUint64(b[offExhaustRTPC:], r.Audio.ExhaustRTPCKey)
	engine.PutUint64(b[offEngineEntity:], r.Audio.EngineEntityKey)
	engine.PutUint64(b[offEngineRTPC:], r.Audio.EngineRTPCKey)
	engine.PutUint32(b[offClassUnlock:], streamHash(r.Audio.ClassUnlockStream))
	engine.PutUint32(b[offAIMusic:], streamHash(r.Audio.AIMusicStream))
	b[offAIMusicLoop] = r.Audio.AIMusicLoopIndex
	b[offAIExhaust] = r.Audio.AIExhaustIndex
	b[offAIExhaustAlt] = r.Audio.AIExhaustIndexAlt

	engine.PutUint32(b[offCategory:], r.Category)
	b[offTypeNibbles] = uint8(r.VehicleType)&0x0F | uint8(r.BoostType)<<4
	b[offFinishType] = r.FinishType
	b[offMaxSpeed] = r.MaxSpeed
	b[offMaxSpeedBoost] = r.MaxSpeedBoost
	b[offColorIndex] = r.ColorIndex
	b[offPaletteIndex] = r.PaletteIndex

	return b
}

// fixedString reads a NUL-padded ASCII field, rejecting non-printable
// content before the terminator.
func fixedString(data []byte, width int, what string) (string, error) {
	end := 0
	for end < width && data[end] != 0 {
		c := data[end]
		if c < 0x20 || c > 0x7E {
			return "", fmt.Errorf("%w: %s holds non-ASCII byte %#x", errs.ErrFormat, what, c)
		}
		end++
	}

	return string(data[:end]), nil
}

func putFixedString(data []byte, width int, s string) {
	n := copy(data[:width], s)
	for i := n; i < width; i++ {
		data[i] = 0
	}
}
