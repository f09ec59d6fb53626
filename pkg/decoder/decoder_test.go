package decoder

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bft-labs/aisparser/internal/domain"
	"github.com/bft-labs/aisparser/pkg/ais"
	"github.com/bft-labs/aisparser/pkg/vdm"
)

const (
	type3Line  = "!AIVDM,1,1,,B,35Mj3MPOj@o?FVFK<5w3r3@L00di,0*0F"
	type5Part1 = "!AIVDM,2,1,1,A,55?MbV02;H;s<HtKR20EHE:0@T4@Dn2222222216L961O5Gf0NSQEp6ClRp8,0*1C"
	type5Part2 = "!AIVDM,2,2,1,A,88888888880,2*25"
	ggaLine    = "$GPGGA,123519,4807.038,N,01131.000,E,1,08,0.9,545.4,M,46.9,M,,*47"
)

func TestDecodeSingleFragment(t *testing.T) {
	d := New()
	res, err := d.Decode(type3Line + "\r\n")
	require.NoError(t, err)
	require.False(t, res.Pending)

	m, ok := res.Message.(*ais.PositionReport)
	require.True(t, ok, "got %T", res.Message)
	assert.Equal(t, uint32(366773110), m.MMSI)
	assert.Equal(t, int32(28509692), m.Lat)
	assert.Equal(t, int32(-73485109), m.Lon)
	assert.True(t, m.Accuracy)
	assert.Equal(t, "B", res.Channel)
	assert.Equal(t, 1, res.Fragments)
	assert.Equal(t, 168, res.Payload.Len())
	assert.False(t, res.Own())
}

func TestDecodeTwoFragments(t *testing.T) {
	d := New()
	res, err := d.Decode(type5Part1)
	require.NoError(t, err)
	assert.True(t, res.Pending)
	assert.Nil(t, res.Message)
	assert.True(t, d.Pending())

	res, err = d.Decode(type5Part2)
	require.NoError(t, err)
	require.False(t, res.Pending)
	assert.Equal(t, 2, res.Fragments)
	assert.Equal(t, 424, res.Payload.Len())

	m, ok := res.Message.(*ais.StaticVoyageData)
	require.True(t, ok, "got %T", res.Message)
	assert.Equal(t, "EVER DIADEM", m.Name)
	assert.Equal(t, "NEW YORK", m.Destination)
	assert.False(t, d.Pending())
}

func TestDecodeOutOfOrder(t *testing.T) {
	d := New()
	_, err := d.Decode(type5Part2)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrReassemblyDesync)

	var de *domain.DesyncError
	require.True(t, errors.As(err, &de))
	assert.Equal(t, "no group in progress", de.Reason)

	// The decoder stays usable.
	res, err := d.Decode(type3Line)
	require.NoError(t, err)
	assert.NotNil(t, res.Message)
	assert.Equal(t, uint64(1), d.Stats().Desyncs)
}

func TestChecksumPolicy(t *testing.T) {
	bad := "!AIVDM,1,1,,B,35Mj3MPOj@o?FVFK<5w3r3@L00di,0*0E"
	bare := "!AIVDM,1,1,,B,35Mj3MPOj@o?FVFK<5w3r3@L00di,0"

	tests := []struct {
		name    string
		opts    []Option
		line    string
		wantErr error
	}{
		{"verify mismatch", nil, bad, domain.ErrChecksumMismatch},
		{"verify missing", nil, bare, nil},
		{"require missing", []Option{WithRequireChecksum()}, bare, domain.ErrMissingChecksum},
		{"require valid", []Option{WithRequireChecksum()}, type3Line, nil},
		{"ignore mismatch", []Option{WithIgnoreChecksum()}, bad, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := New(tt.opts...)
			res, err := d.Decode(tt.line)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, res.Message)
				assert.Equal(t, uint64(1), d.Stats().Checksum)
				return
			}
			require.NoError(t, err)
			assert.NotNil(t, res.Message)
		})
	}
}

func TestChecksumMismatchDetail(t *testing.T) {
	_, err := New().Decode("!AIVDM,1,1,,B,35Mj3MPOj@o?FVFK<5w3r3@L00di,0*0E")
	var ce *domain.ChecksumError
	require.True(t, errors.As(err, &ce))
	assert.Equal(t, byte(0x0F), ce.Computed)
	assert.Equal(t, byte(0x0E), ce.Expected)
}

func TestPreemptedGroupIsReported(t *testing.T) {
	var drops []vdm.Drop
	d := New(WithDropHandler(func(dr vdm.Drop) { drops = append(drops, dr) }))

	_, err := d.Decode(type5Part1)
	require.NoError(t, err)
	_, err = d.Decode(type5Part1)
	require.NoError(t, err)
	res, err := d.Decode(type5Part2)
	require.NoError(t, err)
	assert.NotNil(t, res.Message)

	require.Len(t, drops, 1)
	assert.Equal(t, vdm.DropPreempted, drops[0].Reason)
	assert.Equal(t, uint64(1), d.Stats().Dropped)
}

func TestFragmentMaxAge(t *testing.T) {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	d := New(WithFragmentMaxAge(time.Second), WithClock(func() time.Time { return now }))

	_, err := d.Decode(type5Part1)
	require.NoError(t, err)
	now = now.Add(2 * time.Second)
	_, err = d.Decode(type5Part2)
	assert.ErrorIs(t, err, domain.ErrReassemblyDesync)

	s := d.Stats()
	assert.Equal(t, uint64(1), s.Dropped)
	assert.Equal(t, uint64(1), s.Desyncs)
}

func TestRejectedLines(t *testing.T) {
	tests := []struct {
		name    string
		line    string
		wantErr error
	}{
		{"no delimiter", "AIVDM,1,1,,B,35Mj3MPOj@o?FVFK<5w3r3@L00di,0", domain.ErrMissingStartDelimiter},
		{"not ais", ggaLine, domain.ErrNotAIS},
		{"bad character", "!AIVDM,1,1,,B,35Mj3MPOj@o?FVFK<5w3r3@L00d^,0", domain.ErrInvalidCharacter},
		{"short payload", "!AIVDM,1,1,,B,35Mj3MPOj@o?FVFK,0", domain.ErrBitRangeExceeded},
		{"unsupported type", "!AIVDM,1,1,,B,l5Mj3MPOj@o?FVFK<5w3r3@L00di,0", domain.ErrUnsupportedMessageType},
		{"bad fragment count", "!AIVDM,0,1,,B,35Mj3MPOj@o?FVFK<5w3r3@L00di,0", domain.ErrMalformedSentence},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := New()
			_, err := d.Decode(tt.line)
			assert.ErrorIs(t, err, tt.wantErr)

			_, err = d.Decode(type3Line)
			assert.NoError(t, err)
		})
	}
}

func TestStats(t *testing.T) {
	d := New()
	for _, line := range []string{type3Line, type3Line, type5Part1, type5Part2, ggaLine, "garbage"} {
		_, _ = d.Decode(line)
	}

	s := d.Stats()
	assert.Equal(t, uint64(6), s.Lines)
	assert.Equal(t, uint64(3), s.Messages)
	assert.Equal(t, uint64(1), s.Pending)
	assert.Equal(t, uint64(1), s.Skipped)
	assert.Equal(t, uint64(1), s.Malformed)
	assert.Equal(t, uint64(1), s.Errors())
	assert.Equal(t, map[uint8]uint64{3: 2, 5: 1}, s.ByType)
}

func TestReset(t *testing.T) {
	d := New()
	_, err := d.Decode(type5Part1)
	require.NoError(t, err)
	d.Reset()
	assert.False(t, d.Pending())
	_, err = d.Decode(type5Part2)
	assert.ErrorIs(t, err, domain.ErrReassemblyDesync)
}
