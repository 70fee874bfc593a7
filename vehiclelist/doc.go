// Package vehiclelist implements the vehicle roster resource: a 16-byte
// header followed by a fixed-size record array, 264 bytes per record.
//
// Parse and Write are exact field-level inverses: reserved and padding
// regions read back as zero, fixed-width strings are NUL-padded ASCII, and
// identifier fields hold CGS-IDs (decoded to names on parse). Two audio
// fields store 32-bit hashes of stream names; known hashes resolve through
// the static tables in this package and unknown ones round-trip as a
// 0x%08X fallback.
package vehiclelist
