package vehiclelist

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/criterion-modding/bnd2/endian"
	"github.com/criterion-modding/bnd2/errs"
	"github.com/criterion-modding/bnd2/internal/hash"
)

func sampleRecords() []Record {
	return []Record{
		{
			ID:           "PUSMC01",
			ParentID:     "PUSMC00",
			WheelName:    "WH_SPORT_01",
			VehicleName:  "Hunter CAVALRY",
			Manufacturer: "Hunter",
			Gameplay: Gameplay{
				DamageLimit:     180.5,
				Flags:           0x0000C003,
				BoostLength:     6,
				VehicleRank:     3,
				BoostCapacity:   100,
				DisplayStrength: 7,
			},
			AttribKey: 0xC0FFEE1234,
			Audio: Audio{
				ExhaustName:       "EX_V2_RAW",
				EngineName:        "EN_V2_BIG",
				ExhaustEntityKey:  11,
				ExhaustRTPCKey:    12,
				EngineEntityKey:   13,
				EngineRTPCKey:     14,
				ClassUnlockStream: "CLASS_C_UNLOCK",
				AIMusicStream:     "MUS_AI_ROCK_01",
				AIMusicLoopIndex:  1,
				AIExhaustIndex:    2,
				AIExhaustIndexAlt: 3,
			},
			Category:      4,
			VehicleType:   VehicleCar,
			BoostType:     BoostAggression,
			FinishType:    1,
			MaxSpeed:      92,
			MaxSpeedBoost: 101,
			ColorIndex:    5,
			PaletteIndex:  9,
		},
		{
			ID:          "PUSRA02",
			VehicleName: "Rossolini Tempesta",
			VehicleType: VehicleBike,
			BoostType:   BoostNone,
		},
	}
}

func TestWriteParseRoundTrip(t *testing.T) {
	for _, engine := range []endian.EndianEngine{endian.GetLittleEndianEngine(), endian.GetBigEndianEngine()} {
		records := sampleRecords()

		payload := Write(records, engine)
		require.Len(t, payload, HeaderSize+len(records)*RecordSize)

		table, err := Parse(payload, engine)
		require.NoError(t, err)
		require.Zero(t, table.Skipped)
		require.Equal(t, records, table.Records)
	}
}

func TestWriteParseByteExact(t *testing.T) {
	engine := endian.GetLittleEndianEngine()
	payload := Write(sampleRecords(), engine)

	table, err := Parse(payload, engine)
	require.NoError(t, err)

	require.Equal(t, payload, Write(table.Records, engine),
		"write(parse(payload)) must reproduce the payload byte for byte")
}

func TestEmptyTable(t *testing.T) {
	engine := endian.GetLittleEndianEngine()

	payload := Write(nil, engine)
	require.Len(t, payload, HeaderSize, "zero records yield just the header")

	table, err := Parse(payload, engine)
	require.NoError(t, err)
	require.Empty(t, table.Records)
	require.Equal(t, payload, Write(table.Records, engine))
}

func TestParse_HeaderValidation(t *testing.T) {
	engine := endian.GetLittleEndianEngine()

	t.Run("short payload", func(t *testing.T) {
		_, err := Parse(make([]byte, 8), engine)
		require.ErrorIs(t, err, errs.ErrInvalidHeaderSize)
	})

	t.Run("wrong start offset", func(t *testing.T) {
		payload := Write(sampleRecords(), engine)
		engine.PutUint32(payload[4:8], 32)

		_, err := Parse(payload, engine)
		require.ErrorIs(t, err, errs.ErrInvalidOffset)
		require.ErrorIs(t, err, errs.ErrFormat)
	})
}

func TestParse_CountClamping(t *testing.T) {
	engine := endian.GetLittleEndianEngine()
	records := sampleRecords()
	payload := Write(records, engine)

	t.Run("declared count too large", func(t *testing.T) {
		data := append([]byte(nil), payload...)
		engine.PutUint32(data[0:4], 50)

		table, err := Parse(data, engine)
		require.NoError(t, err)
		require.Len(t, table.Records, len(records), "count clamps to the records that fit")
		require.Equal(t, records, table.Records, "the last intact record is kept")
	})

	t.Run("not even one record fits", func(t *testing.T) {
		data := append([]byte(nil), payload[:HeaderSize+RecordSize-1]...)
		engine.PutUint32(data[0:4], 2)

		_, err := Parse(data, engine)
		require.ErrorIs(t, err, errs.ErrTruncation)
	})

	t.Run("zero declared zero stored", func(t *testing.T) {
		table, err := Parse(Write(nil, engine), engine)
		require.NoError(t, err)
		require.Empty(t, table.Records)
	})
}

func TestParse_MalformedRecords(t *testing.T) {
	engine := endian.GetLittleEndianEngine()

	many := make([]Record, 8)
	for i := range many {
		many[i] = sampleRecords()[0]
	}
	payload := Write(many, engine)

	corruptName := func(data []byte, record int) {
		data[HeaderSize+record*RecordSize+offVehicleName] = 0xFF
	}

	t.Run("late corruption skips the record", func(t *testing.T) {
		data := append([]byte(nil), payload...)
		corruptName(data, 5)

		table, err := Parse(data, engine)
		require.NoError(t, err)
		require.Len(t, table.Records, 7)
		require.Equal(t, 1, table.Skipped)
	})

	t.Run("early corruption escalates", func(t *testing.T) {
		data := append([]byte(nil), payload...)
		corruptName(data, 1)

		_, err := Parse(data, engine)
		require.ErrorIs(t, err, errs.ErrCorruptRecords)
		require.ErrorIs(t, err, errs.ErrFormat)
	})
}

func TestStreamHashResolution(t *testing.T) {
	t.Run("keys are collision free", func(t *testing.T) {
		require.Len(t, classUnlockStreams, len(KnownClassUnlockStreams()))
		require.Len(t, aiMusicStreams, len(KnownAIMusicStreams()))
	})

	t.Run("known hashes resolve to names", func(t *testing.T) {
		for _, name := range KnownClassUnlockStreams() {
			require.Equal(t, name, resolveStream(classUnlockStreams, hash.StreamKey(name)))
		}
		for _, name := range KnownAIMusicStreams() {
			require.Equal(t, name, resolveStream(aiMusicStreams, hash.StreamKey(name)))
		}
	})

	t.Run("unknown hash round-trips as hex", func(t *testing.T) {
		name := resolveStream(aiMusicStreams, 0xDEADBEEF)
		require.Equal(t, "0xDEADBEEF", name)
		require.Equal(t, uint32(0xDEADBEEF), streamHash(name))
	})

	t.Run("zero is empty", func(t *testing.T) {
		require.Equal(t, "", resolveStream(aiMusicStreams, 0))
		require.Equal(t, uint32(0), streamHash(""))
	})

	t.Run("unknown name hashes by value", func(t *testing.T) {
		require.Equal(t, hash.StreamKey("CUSTOM_STREAM"), streamHash("CUSTOM_STREAM"))
	})
}

func TestRecordReservedRegionsZero(t *testing.T) {
	engine := endian.GetLittleEndianEngine()
	records := sampleRecords()
	payload := Write(records[:1], engine)
	record := payload[HeaderSize:]

	for _, region := range [][2]int{{156, 160}, {227, 232}, {232, 248}, {258, 264}} {
		for i := region[0]; i < region[1]; i++ {
			require.Zero(t, record[i], "byte %d should be reserved/padding", i)
		}
	}
}
