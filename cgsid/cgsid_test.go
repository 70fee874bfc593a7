package cgsid

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
)

// Reference identifier from shipped vehicle data; pins the digit table.
func TestEncodeReferenceID(t *testing.T) {
	// P=28 U=33 S=31 M=25 C=15 0=7 1=8, then 5 pad slots.
	var expected uint64
	for _, digit := range []uint64{28, 33, 31, 25, 15, 7, 8, 0, 0, 0, 0, 0} {
		expected = expected*40 + digit
	}

	require.Equal(t, expected, Encode("PUSMC01"))
	require.Equal(t, "PUSMC01", Decode(Encode("PUSMC01")))
}

func TestDecodeEncodeRoundTrip(t *testing.T) {
	names := []string{
		"",
		"A",
		"PUSMC01",
		"PUSMC01/2",
		"X_Y-Z",
		"ABCDEFGHIJKL", // full 12 slots
		"CAR 05",
		"0123450",
	}
	for _, name := range names {
		t.Run(name, func(t *testing.T) {
			require.True(t, Valid(name), "test names must use the reversible alphabet")
			require.Equal(t, name, Decode(Encode(name)))
		})
	}
}

func TestEncodeDecodeInvolution(t *testing.T) {
	// encode(decode(x)) == x for any x actually produced by encode.
	const alphabet = " -/012345ABCDEFGHIJKLMNOPQRSTUVWXYZ_6789"
	rng := rand.New(rand.NewSource(1))
	for n := 0; n < 2000; n++ {
		n := rng.Intn(MaxNameLen + 1)
		name := make([]byte, n)
		for i := range name {
			name[i] = alphabet[rng.Intn(len(alphabet))]
		}

		x := Encode(string(name))
		require.Equal(t, x, Encode(Decode(x)), "name %q", name)
	}
}

func TestDigitAliases(t *testing.T) {
	// '6'-'9' share digit values with 'A'-'D' and decode as letters.
	require.Equal(t, Encode("A"), Encode("6"))
	require.Equal(t, Encode("D"), Encode("9"))
	require.Equal(t, "A", Decode(Encode("6")))

	// Lowercase and unknown characters map to the pad digit.
	require.Equal(t, Encode(" "), Encode("a"))
	require.Equal(t, Encode(""), Encode("~"))
}

func TestEncodeTruncatesLongNames(t *testing.T) {
	require.Equal(t, Encode("ABCDEFGHIJKL"), Encode("ABCDEFGHIJKLMNOP"))
}

func TestValid(t *testing.T) {
	tests := []struct {
		name  string
		valid bool
	}{
		{"PUSMC01", true},
		{"", true},
		{"WITH SPACE", true},
		{"ABCDEFGHIJKL", true},
		{"ABCDEFGHIJKLM", false}, // too long
		{"CAR6", false},          // '6' aliases to 'A'
		{"lower", false},
		{"TRAIL ", false}, // trailing space is a pad slot
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.valid, Valid(tt.name))
		})
	}
}
