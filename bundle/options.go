package bundle

import (
	"fmt"

	"github.com/criterion-modding/bnd2/endian"
	"github.com/criterion-modding/bnd2/errs"
	"github.com/criterion-modding/bnd2/format"
	"github.com/criterion-modding/bnd2/internal/options"
)

// ParseConfig collects parse-time settings.
type ParseConfig struct {
	engine endian.EndianEngine
	loose  bool
}

// ParseOption represents a functional option for configuring Parse.
type ParseOption = options.Option[*ParseConfig]

// WithEngine overrides byte-order detection with an explicit engine.
func WithEngine(engine endian.EndianEngine) ParseOption {
	return options.NoError(func(c *ParseConfig) {
		c.engine = engine
	})
}

// WithLooseValidation relaxes structural validation for diagnostic reads of
// damaged archives: bad magic/version/platform values are reported on the
// parsed header instead of aborting, and truncated tables are clamped to
// what the buffer holds.
func WithLooseValidation() ParseOption {
	return options.NoError(func(c *ParseConfig) {
		c.loose = true
	})
}

// BuildConfig collects build-time settings.
type BuildConfig struct {
	platform  format.Platform
	compress  bool
	debugBlob []byte
}

// BuildOption represents a functional option for configuring Build.
type BuildOption = options.Option[*BuildConfig]

// WithPlatform sets the target platform id, which also selects the byte
// order of the written archive. Defaults to PlatformPC.
func WithPlatform(p format.Platform) BuildOption {
	return options.New(func(c *BuildConfig) error {
		if !p.Valid() {
			return fmt.Errorf("%w: %d", errs.ErrInvalidPlatform, uint32(p))
		}
		c.platform = p

		return nil
	})
}

// WithCompression zlib-compresses every pool payload and sets the
// compressed flags on the header and each descriptor.
func WithCompression() BuildOption {
	return options.NoError(func(c *BuildConfig) {
		c.compress = true
	})
}

// WithDebugBlob appends a trailing debug text blob and sets the
// has-debug-blob flag.
func WithDebugBlob(text string) BuildOption {
	return options.NoError(func(c *BuildConfig) {
		c.debugBlob = []byte(text)
	})
}
