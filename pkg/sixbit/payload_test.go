package sixbit

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

const (
	type3Payload = "35Mj3MPOj@o?FVFK<5w3r3@L00di"
	type5Payload = "55Mf@6P00001MUS;7GQL4hh61L4hh6222222220t41H==40HtI4i@E531H1QDTVH51DSCS0"
)

func TestDecodeFields(t *testing.T) {
	p, err := Decode(type3Payload, 0)
	require.NoError(t, err)
	require.Equal(t, 168, p.Len())

	tests := []struct {
		name   string
		offset int
		width  int
		signed bool
		want   int64
	}{
		{name: "type", offset: 0, width: 6, want: 3},
		{name: "mmsi", offset: 8, width: 30, want: 366773110},
		{name: "longitude", offset: 61, width: 28, signed: true, want: -73485109},
		{name: "latitude", offset: 89, width: 27, signed: true, want: 28509692},
		{name: "first word", offset: 0, width: 32, want: 207057421},
		{name: "second word", offset: 32, width: 32, want: 3625961741},
		{name: "empty", offset: 168, width: 0, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.signed {
				v, err := p.Int(tt.offset, tt.width)
				require.NoError(t, err)
				assert.Equal(t, tt.want, int64(v))
				return
			}
			v, err := p.Uint(tt.offset, tt.width)
			require.NoError(t, err)
			assert.Equal(t, tt.want, int64(v))
		})
	}
}

func TestDecodeFill(t *testing.T) {
	p, err := Decode(type5Payload, 2)
	require.NoError(t, err)
	assert.Equal(t, 424, p.Len())

	_, err = Decode("0", 6)
	assert.ErrorIs(t, err, ErrBitRangeExceeded)
}

func TestDecodeInvalidCharacter(t *testing.T) {
	for _, text := range []string{"35MjX", "35Mj_", "35Mjx", "35Mj ", "35Mj/"} {
		_, err := Decode(text, 0)
		var ce *CharacterError
		require.True(t, errors.As(err, &ce), "Decode(%q) = %v", text, err)
		assert.Equal(t, 4, ce.Position)
		assert.ErrorIs(t, err, ErrInvalidCharacter)
	}
}

func TestBitRangeExceeded(t *testing.T) {
	p, err := Decode(type3Payload, 0)
	require.NoError(t, err)

	_, err = p.Uint(160, 9)
	var be *BitRangeError
	require.True(t, errors.As(err, &be))
	assert.Equal(t, 160, be.Offset)
	assert.Equal(t, 9, be.Width)
	assert.Equal(t, 168, be.Available)

	_, err = p.Text(163, 1)
	assert.ErrorIs(t, err, ErrBitRangeExceeded)
	_, err = p.Bits(100, 69)
	assert.ErrorIs(t, err, ErrBitRangeExceeded)
}

func TestText(t *testing.T) {
	p, err := Decode(type5Payload, 2)
	require.NoError(t, err)

	call, err := p.Text(70, 7)
	require.NoError(t, err)
	assert.Equal(t, "WYX2158", call)

	name, err := p.Text(112, 20)
	require.NoError(t, err)
	assert.Equal(t, "WALLA WALLA         ", name)
	assert.Equal(t, "WALLA WALLA", Trim(name))
	assert.Equal(t, "", Trim("@@@@@@@"))
}

func TestBitsAndArmor(t *testing.T) {
	p, err := Decode(type3Payload, 0)
	require.NoError(t, err)

	sub, err := p.Bits(3, 40)
	require.NoError(t, err)
	assert.Equal(t, 40, sub.Len())
	v, err := sub.Uint(0, 8)
	require.NoError(t, err)
	assert.Equal(t, uint32(98), v)

	text, fill := sub.Armor()
	assert.Equal(t, "Hcf@Kd0", text)
	assert.Equal(t, 2, fill)

	text, fill = p.Armor()
	assert.Equal(t, type3Payload, text)
	assert.Equal(t, 0, fill)
	assert.Equal(t, type3Payload, p.String())
}

func TestMarshalJSON(t *testing.T) {
	p, err := Decode("Hcf@Kd0", 2)
	require.NoError(t, err)

	data, err := json.Marshal(p)
	require.NoError(t, err)
	assert.JSONEq(t, `{"bits":40,"payload":"Hcf@Kd0","fill":2}`, string(data))
}

func TestWriterRoundTrip(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		n := rapid.IntRange(1, 20).Draw(t, "fields")
		widths := make([]int, n)
		values := make([]int32, n)

		var w Writer
		for i := range widths {
			widths[i] = rapid.IntRange(1, MaxWidth).Draw(t, "width")
			lo, hi := int32(-1)<<uint(widths[i]-1), int32((int64(1)<<uint(widths[i]-1))-1)
			values[i] = rapid.Int32Range(lo, hi).Draw(t, "value")
			w.PutInt(values[i], widths[i])
		}

		p := w.Payload()
		text, fill := p.Armor()
		back, err := Decode(text, fill)
		if err != nil {
			t.Fatalf("Decode(%q, %d): %v", text, fill, err)
		}

		c := NewCursor(back)
		for i := range widths {
			if got := c.Int(widths[i]); got != values[i] {
				t.Fatalf("field %d width %d = %d, want %d", i, widths[i], got, values[i])
			}
		}
		if c.Err() != nil || c.Remaining() != 0 {
			t.Fatalf("cursor err %v, remaining %d", c.Err(), c.Remaining())
		}
	})
}
