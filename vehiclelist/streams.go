package vehiclelist

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/criterion-modding/bnd2/internal/hash"
)

// Stream names referenced by vehicle audio data. The record stores a 32-bit
// hash of the name; these tables invert it. Constant data, never mutated
// after init.
var (
	classUnlockStreamNames = []string{
		"CLASS_A_UNLOCK",
		"CLASS_B_UNLOCK",
		"CLASS_C_UNLOCK",
		"CLASS_D_UNLOCK",
		"CLASS_E_UNLOCK",
		"CLASS_F_UNLOCK",
		"CLASS_SPECIAL_UNLOCK",
		"CLASS_TOY_UNLOCK",
		"CLASS_LEGENDARY_UNLOCK",
	}

	aiMusicStreamNames = []string{
		"MUS_AI_ROCK_01",
		"MUS_AI_ROCK_02",
		"MUS_AI_ELECTRO_01",
		"MUS_AI_ELECTRO_02",
		"MUS_AI_HIPHOP_01",
		"MUS_AI_CLASSICAL_01",
		"MUS_AI_AMBIENT_01",
		"MUS_AI_PUNK_01",
	}

	classUnlockStreams = buildStreamTable(classUnlockStreamNames)
	aiMusicStreams     = buildStreamTable(aiMusicStreamNames)
)

func buildStreamTable(names []string) map[uint32]string {
	table := make(map[uint32]string, len(names))
	for _, name := range names {
		table[hash.StreamKey(name)] = name
	}

	return table
}

// resolveStream maps a stored hash to its name, falling back to a hex
// rendering for hashes outside the table. Zero means "no stream".
func resolveStream(table map[uint32]string, h uint32) string {
	if h == 0 {
		return ""
	}
	if name, ok := table[h]; ok {
		return name
	}

	return fmt.Sprintf("0x%08X", h)
}

// streamHash inverts resolveStream: hex fallbacks parse back to their raw
// value, anything else hashes by name.
func streamHash(name string) uint32 {
	if name == "" {
		return 0
	}
	if strings.HasPrefix(name, "0x") && len(name) == 10 {
		if v, err := strconv.ParseUint(name[2:], 16, 32); err == nil {
			return uint32(v)
		}
	}

	return hash.StreamKey(name)
}

// KnownClassUnlockStreams returns the class-unlock stream names the table
// can resolve. The slice is a copy.
func KnownClassUnlockStreams() []string {
	return append([]string(nil), classUnlockStreamNames...)
}

// KnownAIMusicStreams returns the AI music stream names the table can
// resolve. The slice is a copy.
func KnownAIMusicStreams() []string {
	return append([]string(nil), aiMusicStreamNames...)
}
