// Package compress provides the payload compression layer for bnd2 archives.
//
// Archive payloads are compressed with zlib (RFC 1950); the Codec interface
// and registry also carry LZ4 frames and a no-op codec so tooling payloads
// outside the archive proper can reuse the same layer.
//
// The directory's compressed flag is advisory only: observed archives
// disagree with it. Sniff inspects the leading bytes of a payload and is
// authoritative for deciding whether (and how) to decompress.
package compress
