package nmea

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/bft-labs/aisparser/internal/domain"
)

// Result is the outcome of checksum verification.
type Result struct {
	// Computed is the XOR of every byte between the start delimiter and '*'.
	Computed byte

	// Expected is the value transmitted after '*'. Zero when !Present.
	Expected byte

	// Present reports whether two hex digits followed '*'.
	Present bool

	// Match is Present && Computed == Expected.
	Match bool
}

// Err converts the result to an error: nil on match, *ChecksumError on
// mismatch and ErrMissingChecksum when the sentence carried none.
func (r Result) Err() error {
	switch {
	case !r.Present:
		return domain.ErrMissingChecksum
	case !r.Match:
		return &domain.ChecksumError{Computed: r.Computed, Expected: r.Expected}
	}
	return nil
}

// Verify computes and checks the checksum of an NMEA 0183 sentence.
// Bytes before the first '!' or '$' are ignored, so tag blocks and
// receiver timestamps may precede the sentence. A missing or unparsable
// checksum field is not an error: the result reports Present false.
func Verify(s string) (Result, error) {
	start := strings.IndexAny(s, "!$")
	if start < 0 {
		return Result{}, domain.ErrMissingStartDelimiter
	}

	var r Result
	i := start + 1
	for ; i < len(s); i++ {
		c := s[i]
		if c == '*' || c == '\r' || c == '\n' {
			break
		}
		r.Computed ^= c
	}

	if i+3 <= len(s) && s[i] == '*' {
		if v, err := strconv.ParseUint(s[i+1:i+3], 16, 8); err == nil {
			r.Expected = byte(v)
			r.Present = true
			r.Match = r.Expected == r.Computed
		}
	}
	return r, nil
}

// Checksum returns the XOR checksum of s without checking the transmitted value.
func Checksum(s string) (byte, error) {
	r, err := Verify(s)
	return r.Computed, err
}

// Append terminates body with '*' and its two-digit checksum.
// Any existing checksum field on body is replaced.
func Append(body string) (string, error) {
	if i := strings.IndexByte(body, '*'); i >= 0 {
		body = body[:i]
	}
	sum, err := Checksum(body)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s*%02X", body, sum), nil
}
