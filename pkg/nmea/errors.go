package nmea

import "github.com/bft-labs/aisparser/internal/domain"

// Errors returned by this package. Match with errors.Is.
var (
	ErrMissingStartDelimiter = domain.ErrMissingStartDelimiter
	ErrChecksumMismatch      = domain.ErrChecksumMismatch
	ErrMissingChecksum       = domain.ErrMissingChecksum
	ErrMalformedSentence     = domain.ErrMalformedSentence
	ErrNotAIS                = domain.ErrNotAIS
)

// ChecksumError carries both values of a mismatching checksum.
type ChecksumError = domain.ChecksumError
