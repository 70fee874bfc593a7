// Package bundle implements the bnd2 container codec: parsing an archive
// into its header, resource directory, import table and debug blob, and
// building a new archive from an ordered resource list.
//
// Parsing derives a read-only view over the caller's buffer; building
// computes every offset from scratch and returns a freshly allocated
// buffer. Both are pure functions and safe to invoke concurrently as long
// as each call owns its input.
//
// Payload extraction decides "is this compressed" by sniffing the stream
// magic, not by trusting the directory's compressed flag; observed archives
// do not keep the two consistent. Nested archives (a resource whose payload
// is itself a complete archive) are resolved recursively up to
// MaxNestedDepth.
package bundle
