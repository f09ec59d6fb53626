package decoder

import (
	"time"

	"github.com/bft-labs/aisparser/pkg/log"
	"github.com/bft-labs/aisparser/pkg/vdm"
)

// ChecksumPolicy selects how sentence checksums are enforced.
type ChecksumPolicy int

const (
	// ChecksumVerify rejects mismatches and accepts sentences without a
	// checksum. This is the default.
	ChecksumVerify ChecksumPolicy = iota
	// ChecksumRequire also rejects sentences without a checksum.
	ChecksumRequire
	// ChecksumIgnore decodes regardless of the checksum.
	ChecksumIgnore
)

func (p ChecksumPolicy) String() string {
	switch p {
	case ChecksumRequire:
		return "require"
	case ChecksumIgnore:
		return "ignore"
	default:
		return "verify"
	}
}

// Option configures a Decoder.
type Option func(*Decoder)

// WithLogger sets the logger. Decoded messages are logged at debug level,
// rejected lines at warn level.
func WithLogger(l log.Logger) Option {
	return func(d *Decoder) {
		if l != nil {
			d.logger = l
		}
	}
}

// WithRequireChecksum rejects sentences that carry no checksum.
func WithRequireChecksum() Option {
	return func(d *Decoder) { d.policy = ChecksumRequire }
}

// WithIgnoreChecksum decodes sentences even when the checksum is wrong.
func WithIgnoreChecksum() Option {
	return func(d *Decoder) { d.policy = ChecksumIgnore }
}

// WithChecksumPolicy sets the policy directly.
func WithChecksumPolicy(p ChecksumPolicy) Option {
	return func(d *Decoder) { d.policy = p }
}

// WithDropHandler is called when a partial fragment group is discarded
// without an error, after the decoder has counted and logged it.
func WithDropHandler(h vdm.DropHandler) Option {
	return func(d *Decoder) { d.onDrop = h }
}

// WithFragmentMaxAge discards partial groups older than age.
func WithFragmentMaxAge(age time.Duration) Option {
	return func(d *Decoder) { d.maxAge = age }
}

// WithClock overrides time.Now for fragment expiry.
func WithClock(now func() time.Time) Option {
	return func(d *Decoder) { d.now = now }
}
