// Package section defines the fixed binary structures of the bnd2 container:
// the archive header, the resource descriptor table entries, and the import
// table entries.
//
// Each structure provides Parse and Bytes methods that read and write the
// exact on-disk layout under a caller-supplied endian engine. All sizes and
// padding granularities are named constants; the builder and parser in the
// bundle package never use raw numbers for them.
package section
