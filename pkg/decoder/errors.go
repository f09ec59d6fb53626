package decoder

import "github.com/bft-labs/aisparser/internal/domain"

// Every error Decode can return matches one of these with errors.Is.
var (
	ErrMissingStartDelimiter  = domain.ErrMissingStartDelimiter
	ErrChecksumMismatch       = domain.ErrChecksumMismatch
	ErrMissingChecksum        = domain.ErrMissingChecksum
	ErrMalformedSentence      = domain.ErrMalformedSentence
	ErrNotAIS                 = domain.ErrNotAIS
	ErrReassemblyDesync       = domain.ErrReassemblyDesync
	ErrInvalidCharacter       = domain.ErrInvalidCharacter
	ErrBitRangeExceeded       = domain.ErrBitRangeExceeded
	ErrUnsupportedMessageType = domain.ErrUnsupportedMessageType
)
