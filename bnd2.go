// Package bnd2 reads and writes Bundle 2 game-resource archives.
//
// A Bundle 2 archive packs a set of typed resources into a single binary
// image: a fixed header, a resource directory, per-resource import tables,
// up to three memory pools of payload data, and an optional debug blob.
// Payloads may be zlib-compressed on disk, and archives produced for
// console targets use big-endian byte order throughout.
//
// # Core Features
//
//   - Endianness auto-detection from the header, PC and console images alike
//   - Sniff-driven payload decompression (zlib and LZ4 frame)
//   - Alignment-preserving round trips: parse, rebuild, get the same layout
//   - Nested archive resolution with a bounded recursion depth
//   - Sub-codecs for the vehicle roster and paint palette resource types
//
// # Basic Usage
//
// Parsing an archive and pulling a payload out:
//
//	import "github.com/criterion-modding/bnd2"
//
//	archive, err := bnd2.ParseArchive(data)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	payload, err := archive.ExtractByType(format.TypeVehicleList)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// Building one from scratch:
//
//	data, err := bnd2.BuildArchive([]bundle.Resource{
//	    {Name: "VEH_PUSMC01", TypeID: format.TypeVehicleList, Pools: pools},
//	}, bundle.WithCompression())
//
// # Package Structure
//
// This package provides convenient top-level wrappers around the bundle,
// vehiclelist, palette and cgsid packages, simplifying the most common use
// cases. For fine-grained control, use those packages directly.
package bnd2

import (
	"github.com/criterion-modding/bnd2/bundle"
	"github.com/criterion-modding/bnd2/cgsid"
	"github.com/criterion-modding/bnd2/format"
	"github.com/criterion-modding/bnd2/internal/hash"
	"github.com/criterion-modding/bnd2/palette"
	"github.com/criterion-modding/bnd2/vehiclelist"
)

// ParseArchive parses a complete archive image.
//
// The byte order is detected from the header, so PC and console images both
// parse without configuration. By default validation is strict: truncated
// directories and import tables are errors.
//
// Parameters:
//   - data: The raw archive bytes
//   - opts: Optional configuration functions (see bundle.ParseOption)
//
// Returns:
//   - *bundle.Archive: The parsed archive.
//   - error: An error if the image is malformed.
//
// Example:
//
//	archive, err := bnd2.ParseArchive(data)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(archive.ResourceCount())
func ParseArchive(data []byte, opts ...bundle.ParseOption) (*bundle.Archive, error) {
	return bundle.Parse(data, opts...)
}

// ParseArchiveLoose parses an archive with loose validation: directories and
// import tables that run past the end of the image are clamped to what fits
// instead of failing the parse.
//
// Use this for salvaging payloads out of truncated or lightly damaged
// archives. Resources whose data lies beyond the truncation point still
// fail individually when extracted.
func ParseArchiveLoose(data []byte, opts ...bundle.ParseOption) (*bundle.Archive, error) {
	allOpts := append([]bundle.ParseOption{bundle.WithLooseValidation()}, opts...)
	return bundle.Parse(data, allOpts...)
}

// BuildArchive serializes resources into a complete archive image.
//
// Defaults to an uncompressed little-endian PC image with no debug blob;
// override with bundle.WithPlatform, bundle.WithCompression and
// bundle.WithDebugBlob.
//
// Parameters:
//   - resources: The resources to pack, in directory order
//   - opts: Optional configuration functions (see bundle.BuildOption)
//
// Returns:
//   - []byte: The serialized archive.
//   - error: An error if the configuration or a resource is invalid.
//
// Example:
//
//	data, err := bnd2.BuildArchive(resources,
//	    bundle.WithPlatform(format.PlatformConsole),
//	    bundle.WithCompression(),
//	)
func BuildArchive(resources []bundle.Resource, opts ...bundle.BuildOption) ([]byte, error) {
	return bundle.Build(resources, opts...)
}

// ResourceID converts a resource name to its 64-bit identifier using the
// base-40 legacy string codec. Names longer than 12 characters are
// truncated; characters outside the codec alphabet map to padding.
func ResourceID(name string) uint64 {
	return cgsid.Encode(name)
}

// ResourceName converts a 64-bit identifier back to its string form.
// See the cgsid package for the aliasing rules of the legacy alphabet.
func ResourceName(id uint64) string {
	return cgsid.Decode(id)
}

// ImportHash derives the 64-bit import hash for a resource name. This is
// the digest stored in directory entries and import tables, distinct from
// the base-40 resource identifier.
func ImportHash(name string) uint64 {
	return hash.ID(name)
}

// ExtractVehicleList locates the vehicle roster resource in the archive,
// descending into nested archives when needed, and decodes it.
//
// Returns:
//   - *vehiclelist.Table: The decoded roster.
//   - error: errs.ErrNotFound if the archive holds no roster resource, or a
//     decode error from the roster payload.
//
// Example:
//
//	table, err := bnd2.ExtractVehicleList(archive)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for _, rec := range table.Records {
//	    fmt.Println(rec.ID, rec.VehicleName)
//	}
func ExtractVehicleList(a *bundle.Archive) (*vehiclelist.Table, error) {
	payload, err := a.ExtractByType(format.TypeVehicleList)
	if err != nil {
		return nil, err
	}

	return vehiclelist.Parse(payload, a.Engine())
}

// ExtractPaintPalette locates the paint palette resource in the archive,
// descending into nested archives when needed, and decodes it.
//
// The archive's byte order seeds the palette decoder; callers may still
// override it, or pin a pointer width, through opts. Palette decoding never
// fails outright: check the returned table's Source field to tell decoded
// data from a synthesized placeholder.
func ExtractPaintPalette(a *bundle.Archive, opts ...palette.ParseOption) (*palette.Table, error) {
	payload, err := a.ExtractByType(format.TypePaintPalette)
	if err != nil {
		return nil, err
	}

	allOpts := append([]palette.ParseOption{palette.WithEngine(a.Engine())}, opts...)

	return palette.Parse(payload, allOpts...)
}
