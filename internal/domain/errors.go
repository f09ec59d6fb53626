package domain

import (
	"errors"
	"fmt"
)

// Domain errors represent error conditions in the aisparser domain.
// These errors are returned by the public API and can be checked with errors.Is.
var (
	// ErrMissingStartDelimiter is returned when a line has neither '!' nor '$'.
	ErrMissingStartDelimiter = errors.New("aisparser: missing start delimiter")

	// ErrChecksumMismatch is returned when the transmitted checksum does not match.
	ErrChecksumMismatch = errors.New("aisparser: checksum mismatch")

	// ErrMissingChecksum is returned when a checksum is required but absent.
	ErrMissingChecksum = errors.New("aisparser: missing checksum")

	// ErrMalformedSentence is returned when the comma fields cannot be parsed.
	ErrMalformedSentence = errors.New("aisparser: malformed sentence")

	// ErrNotAIS is returned for well-formed NMEA sentences that are not VDM or VDO.
	ErrNotAIS = errors.New("aisparser: not an AIVDM/AIVDO sentence")

	// ErrReassemblyDesync is returned when a fragment does not continue the open group.
	ErrReassemblyDesync = errors.New("aisparser: fragment reassembly desync")

	// ErrInvalidCharacter is returned for payload characters outside the six-bit alphabet.
	ErrInvalidCharacter = errors.New("aisparser: invalid payload character")

	// ErrBitRangeExceeded is returned when a read extends past the payload.
	ErrBitRangeExceeded = errors.New("aisparser: bit range exceeded")

	// ErrUnsupportedMessageType is returned when no decoder exists for a message type.
	ErrUnsupportedMessageType = errors.New("aisparser: unsupported message type")

	// ErrAlreadyRunning is returned when Start() is called on a running instance.
	ErrAlreadyRunning = errors.New("aisparser: already running")

	// ErrNotRunning is returned when Stop() is called on a stopped instance.
	ErrNotRunning = errors.New("aisparser: not running")

	// ErrShutdownTimeout is returned when graceful shutdown times out.
	ErrShutdownTimeout = errors.New("aisparser: shutdown timeout")

	// ErrInvalidConfig is returned when configuration validation fails.
	ErrInvalidConfig = errors.New("aisparser: invalid configuration")
)

// ChecksumError carries both checksum values of a mismatching sentence.
type ChecksumError struct {
	Computed byte
	Expected byte
}

func (e *ChecksumError) Error() string {
	return fmt.Sprintf("%s: computed %02X, sentence carries %02X", ErrChecksumMismatch, e.Computed, e.Expected)
}

// Is reports ErrChecksumMismatch equivalence.
func (e *ChecksumError) Is(target error) bool { return target == ErrChecksumMismatch }

// DesyncError describes why a fragment was rejected by the reassembler.
type DesyncError struct {
	Reason string
	Count  int
	Number int
	SeqID  string
}

func (e *DesyncError) Error() string {
	return fmt.Sprintf("%s: %s (fragment %d of %d, group %q)", ErrReassemblyDesync, e.Reason, e.Number, e.Count, e.SeqID)
}

// Is reports ErrReassemblyDesync equivalence.
func (e *DesyncError) Is(target error) bool { return target == ErrReassemblyDesync }

// BitRangeError reports a read of Width bits at Offset from a payload of Available bits.
type BitRangeError struct {
	Offset    int
	Width     int
	Available int
}

func (e *BitRangeError) Error() string {
	return fmt.Sprintf("%s: need %d bits at offset %d, have %d", ErrBitRangeExceeded, e.Width, e.Offset, e.Available)
}

// Is reports ErrBitRangeExceeded equivalence.
func (e *BitRangeError) Is(target error) bool { return target == ErrBitRangeExceeded }

// CharacterError reports the first byte of a payload outside the armoring alphabet.
type CharacterError struct {
	Char     byte
	Position int
}

func (e *CharacterError) Error() string {
	return fmt.Sprintf("%s: %q at position %d", ErrInvalidCharacter, e.Char, e.Position)
}

// Is reports ErrInvalidCharacter equivalence.
func (e *CharacterError) Is(target error) bool { return target == ErrInvalidCharacter }

// UnsupportedTypeError reports a message type with no registered decoder.
type UnsupportedTypeError struct {
	Type uint8
}

func (e *UnsupportedTypeError) Error() string {
	return fmt.Sprintf("%s: %d", ErrUnsupportedMessageType, e.Type)
}

// Is reports ErrUnsupportedMessageType equivalence.
func (e *UnsupportedTypeError) Is(target error) bool { return target == ErrUnsupportedMessageType }
