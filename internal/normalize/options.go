// Package normalize implements the transform between the flat uploaded
// address-mapping shape and the UI-facing parent/child variable model, plus
// its inverse and the derived grouping/filtering views. Every function here
// is a pure, synchronous transform over bounded input.
package normalize

// DefaultBitCount is the fallback number of bit rows synthesized for a
// channel-suffixed register uploaded without bit metadata.
const DefaultBitCount = 8

// DefaultChannelSuffixes are the logical-name suffixes that mark a register
// as multi-bit when no metadata says so.
var DefaultChannelSuffixes = []string{"_BC", "_CH", "_WORD"}

// Options control the upload-creation conveniences of the normalizer. The
// zero value disables bit synthesis entirely.
type Options struct {
	// IDs generates identifiers for normalized PLCs. Defaults to UUIDSource.
	IDs IDSource
	// SynthesizeMissingBits enables the fallback expansion of suffix-marked
	// channels that were uploaded without bit metadata.
	SynthesizeMissingBits bool
	// SynthesizedBitCount is the number of bit rows the fallback produces.
	SynthesizedBitCount int
	// ChannelSuffixes are the logical-name suffixes the fallback recognizes.
	ChannelSuffixes []string
}

// DefaultOptions returns production defaults: random ids, fallback enabled
// with the conventional 8-bit expansion.
func DefaultOptions() Options {
	return Options{
		IDs:                   UUIDSource{},
		SynthesizeMissingBits: true,
		SynthesizedBitCount:   DefaultBitCount,
		ChannelSuffixes:       DefaultChannelSuffixes,
	}
}

// Normalizer applies the configured options to the normalization transforms.
type Normalizer struct {
	opts Options
}

// New creates a Normalizer. Missing option fields fall back to defaults.
func New(opts Options) *Normalizer {
	if opts.IDs == nil {
		opts.IDs = UUIDSource{}
	}
	if opts.SynthesizedBitCount <= 0 {
		opts.SynthesizedBitCount = DefaultBitCount
	}
	if opts.ChannelSuffixes == nil {
		opts.ChannelSuffixes = DefaultChannelSuffixes
	}
	return &Normalizer{opts: opts}
}
