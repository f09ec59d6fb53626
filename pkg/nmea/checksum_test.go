package nmea

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

const type3Line = "!AIVDM,1,1,,B,35Mj3MPOj@o?FVFK<5w3r3@L00di,0*0F"

func TestVerify(t *testing.T) {
	tests := []struct {
		name     string
		line     string
		match    bool
		present  bool
		computed byte
		expected byte
		err      error
	}{
		{name: "valid", line: type3Line, match: true, present: true, computed: 0x0F, expected: 0x0F},
		{name: "dollar delimiter", line: "$AIVDM,1,1,,B,35Mj3MPOj@o?FVFK<5w3r3@L00di,0*0F", match: true, present: true, computed: 0x0F, expected: 0x0F},
		{name: "mismatch", line: "!AIVDM,1,1,,B,35Mj3MPOj@o?FVFK<5w3r3@L00di,0*11", present: true, computed: 0x0F, expected: 0x11},
		{name: "lowercase hex", line: "!AIVDM,2,1,9,A,55Mf@6P00001MUS;7GQL4hh61L4hh6222222220t41H,0*49", match: true, present: true, computed: 0x49, expected: 0x49},
		{name: "no checksum", line: "!AIVDM,1,1,,B,35Mj3MPOj@o?FVFK<5w3r3@L00di,0", computed: 0x0F},
		{name: "single digit", line: "!AIVDM,1,1,,B,35Mj3MPOj@o?FVFK<5w3r3@L00di,0*0", computed: 0x0F},
		{name: "non hex digits", line: "!AIVDM,1,1,,B,35Mj3MPOj@o?FVFK<5w3r3@L00di,0*ZZ", computed: 0x0F},
		{name: "trailing newline", line: type3Line + "\r\n", match: true, present: true, computed: 0x0F, expected: 0x0F},
		{name: "leading timestamp", line: "1152826498 " + type3Line, match: true, present: true, computed: 0x0F, expected: 0x0F},
		{name: "no start delimiter", line: "AIVDM,1,1,,B,35Mj3MPOj@o?FVFK<5w3r3@L00di,0*0F", err: ErrMissingStartDelimiter},
		{name: "wrong start delimiter", line: "@AIVDM,1,1,,B,35Mj3MPOj@o?FVFK<5w3r3@L00di,0*0F", err: ErrMissingStartDelimiter},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := Verify(tt.line)
			if tt.err != nil {
				assert.ErrorIs(t, err, tt.err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.match, r.Match, "match")
			assert.Equal(t, tt.present, r.Present, "present")
			assert.Equal(t, tt.computed, r.Computed, "computed")
			assert.Equal(t, tt.expected, r.Expected, "expected")
		})
	}
}

func TestResultErr(t *testing.T) {
	r, err := Verify(type3Line)
	require.NoError(t, err)
	assert.NoError(t, r.Err())

	r, _ = Verify("!AIVDM,1,1,,B,35Mj3MPOj@o?FVFK<5w3r3@L00di,0*11")
	var ce *ChecksumError
	require.True(t, errors.As(r.Err(), &ce))
	assert.Equal(t, byte(0x0F), ce.Computed)
	assert.Equal(t, byte(0x11), ce.Expected)
	assert.ErrorIs(t, r.Err(), ErrChecksumMismatch)

	r, _ = Verify("!AIVDM,1,1,,B,35Mj3MPOj@o?FVFK<5w3r3@L00di,0")
	assert.ErrorIs(t, r.Err(), ErrMissingChecksum)
}

func TestAppend(t *testing.T) {
	for _, body := range []string{
		"!AIVDM,1,1,,B,35Mj3MPOj@o?FVFK<5w3r3@L00di,0",
		"!AIVDM,1,1,,B,35Mj3MPOj@o?FVFK<5w3r3@L00di,0*",
		"!AIVDM,1,1,,B,35Mj3MPOj@o?FVFK<5w3r3@L00di,0*00",
	} {
		got, err := Append(body)
		require.NoError(t, err)
		assert.Equal(t, type3Line, got)
	}

	_, err := Append("AIVDM,1,1,,B,0,0")
	assert.ErrorIs(t, err, ErrMissingStartDelimiter)
}

// Flipping any single bit of the checksummed region must be detected.
func TestVerifyDetectsSingleBitCorruption(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		body := rapid.SliceOfN(rapid.ByteRange(0x40, 0x7A), 1, 82).Draw(t, "body")
		line, err := Append("!" + string(body))
		if err != nil {
			t.Fatalf("Append: %v", err)
		}

		r, err := Verify(line)
		if err != nil || !r.Match {
			t.Fatalf("Verify(%q) = %+v, %v; want match", line, r, err)
		}

		pos := rapid.IntRange(1, len(body)).Draw(t, "pos")
		bit := rapid.IntRange(0, 3).Draw(t, "bit")
		corrupt := []byte(line)
		corrupt[pos] ^= 1 << bit

		r, err = Verify(string(corrupt))
		if err != nil {
			t.Fatalf("Verify: %v", err)
		}
		if r.Match {
			t.Fatalf("corrupted %q still matches", corrupt)
		}
	})
}
