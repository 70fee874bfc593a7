package vehiclelist

import (
	"fmt"

	"github.com/criterion-modding/bnd2/endian"
	"github.com/criterion-modding/bnd2/errs"
)

const (
	// HeaderSize is the fixed table header: count, start offset and two
	// reserved words.
	HeaderSize = 16

	// StartOffset is the only well-formed record start offset.
	StartOffset = 16

	// corruptionWindow is how many leading record failures are treated as
	// wholesale corruption rather than isolated damage.
	corruptionWindow = 3
)

// Table is a parsed vehicle roster.
type Table struct {
	Records []Record
	// Skipped counts malformed records dropped during parse.
	Skipped int
}

// Parse decodes a vehicle list payload under the given byte order.
//
// The header's start offset must equal StartOffset. A declared count that
// overruns the payload is clamped to the records that actually fit; the
// parse fails only when not even one declared record fits. Malformed
// records are skipped unless they fall within the first few, which is
// treated as wholesale corruption.
func Parse(payload []byte, engine endian.EndianEngine) (*Table, error) {
	if engine == nil {
		engine = endian.GetLittleEndianEngine()
	}
	if len(payload) < HeaderSize {
		return nil, fmt.Errorf("%w: vehicle list header needs %d bytes, %d available",
			errs.ErrInvalidHeaderSize, HeaderSize, len(payload))
	}

	count := int(engine.Uint32(payload[0:4]))
	start := int(engine.Uint32(payload[4:8]))
	if start != StartOffset {
		return nil, fmt.Errorf("%w: vehicle list start offset %d, want %d",
			errs.ErrInvalidOffset, start, StartOffset)
	}

	fit := (len(payload) - StartOffset) / RecordSize
	if count > fit {
		if fit == 0 && count > 0 {
			return nil, errs.Truncated("vehicle records", StartOffset, count*RecordSize, len(payload)-StartOffset)
		}
		count = fit
	}

	t := &Table{Records: make([]Record, 0, count)}
	for i := 0; i < count; i++ {
		data := payload[StartOffset+i*RecordSize : StartOffset+(i+1)*RecordSize]
		r, err := parseRecord(data, engine)
		if err != nil {
			if i < corruptionWindow {
				return nil, fmt.Errorf("%w: record %d: %v", errs.ErrCorruptRecords, i, err)
			}
			t.Skipped++

			continue
		}
		t.Records = append(t.Records, r)
	}

	return t, nil
}

// Write serializes records into a payload that Parse inverts exactly.
// Zero records yield just the header.
func Write(records []Record, engine endian.EndianEngine) []byte {
	if engine == nil {
		engine = endian.GetLittleEndianEngine()
	}

	out := make([]byte, HeaderSize, HeaderSize+len(records)*RecordSize)
	engine.PutUint32(out[0:4], uint32(len(records)))
	engine.PutUint32(out[4:8], StartOffset)

	for i := range records {
		out = append(out, writeRecord(&records[i], engine)...)
	}

	return out
}
