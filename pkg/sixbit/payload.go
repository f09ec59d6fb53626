package sixbit

import (
	"encoding/json"
	"strings"

	"github.com/bft-labs/aisparser/internal/domain"
)

// Errors returned by this package. Match with errors.Is.
var (
	ErrInvalidCharacter = domain.ErrInvalidCharacter
	ErrBitRangeExceeded = domain.ErrBitRangeExceeded
)

type (
	// BitRangeError reports a read past the end of a payload.
	BitRangeError = domain.BitRangeError

	// CharacterError reports a byte outside the armoring alphabet.
	CharacterError = domain.CharacterError
)

// MaxWidth is the widest field Uint and Int read in one call.
const MaxWidth = 32

// Payload is a packed, MSB-first bit buffer.
// A Payload is immutable once built and safe for concurrent reads.
type Payload struct {
	data  []byte
	nbits int
}

// Decode unpacks six-bit armored text. The last fill bits of the final
// character are padding and excluded from Len.
func Decode(text string, fill int) (*Payload, error) {
	if fill < 0 || fill > 5 || fill > len(text)*6 {
		return nil, &BitRangeError{Offset: len(text) * 6, Width: fill, Available: len(text) * 6}
	}

	var w Writer
	w.grow(len(text) * 6)
	for i := 0; i < len(text); i++ {
		v, ok := Value(text[i])
		if !ok {
			return nil, &CharacterError{Char: text[i], Position: i}
		}
		w.PutUint(uint32(v), 6)
	}
	p := w.Payload()
	p.nbits -= fill
	return p, nil
}

// Value maps an armored character to its six-bit value.
// Valid characters are '0'..'W' (0..39) and '`'..'w' (40..63).
func Value(c byte) (byte, bool) {
	if c < 0x30 || c > 0x77 || (c > 0x57 && c < 0x60) {
		return 0, false
	}
	v := c - 0x30
	if v > 40 {
		v -= 8
	}
	return v & 0x3F, true
}

// Char is the inverse of Value.
func Char(v byte) byte {
	v &= 0x3F
	if v < 40 {
		return v + 0x30
	}
	return v + 0x38
}

// Len returns the number of payload bits.
func (p *Payload) Len() int { return p.nbits }

// Uint reads width bits at offset as an unsigned integer.
// width must be in 0..MaxWidth.
func (p *Payload) Uint(offset, width int) (uint32, error) {
	if width < 0 || width > MaxWidth {
		panic("sixbit: invalid field width")
	}
	if offset < 0 || offset+width > p.nbits {
		return 0, &BitRangeError{Offset: offset, Width: width, Available: p.nbits}
	}
	if width == 0 {
		return 0, nil
	}

	byteOffset := offset / 8
	bitOffset := offset % 8
	bytesNeeded := (bitOffset + width + 7) / 8

	var accum uint64
	for i := 0; i < bytesNeeded; i++ {
		accum = accum<<8 | uint64(p.data[byteOffset+i])
	}
	accum >>= uint(bytesNeeded*8 - bitOffset - width)
	accum &= 1<<uint(width) - 1
	return uint32(accum), nil
}

// Int reads width bits at offset as a two's complement integer.
func (p *Payload) Int(offset, width int) (int32, error) {
	v, err := p.Uint(offset, width)
	if err != nil || width == 0 {
		return 0, err
	}
	return signExtend(v, width), nil
}

func signExtend(v uint32, width int) int32 {
	if width < 32 && v&(1<<uint(width-1)) != 0 {
		return int32(int64(v) - 1<<uint(width))
	}
	return int32(v)
}

// Text reads n six-bit characters at offset using the AIS text table
// (0..31 map to '@'..'_', 32..63 to ' '..'?'). Padding is not removed;
// see Trim.
func (p *Payload) Text(offset, n int) (string, error) {
	if n < 0 || offset < 0 || offset+n*6 > p.nbits {
		return "", &BitRangeError{Offset: offset, Width: n * 6, Available: p.nbits}
	}
	var b strings.Builder
	b.Grow(n)
	for i := 0; i < n; i++ {
		v, _ := p.Uint(offset+i*6, 6)
		if v < 32 {
			v += 64
		}
		b.WriteByte(byte(v))
	}
	return b.String(), nil
}

// Trim removes the trailing '@' padding and spaces of decoded text.
func Trim(s string) string {
	return strings.TrimRight(s, "@ ")
}

// Bits returns a copy of width bits starting at offset.
func (p *Payload) Bits(offset, width int) (*Payload, error) {
	if width < 0 || offset < 0 || offset+width > p.nbits {
		return nil, &BitRangeError{Offset: offset, Width: width, Available: p.nbits}
	}
	var w Writer
	w.grow(width)
	for done := 0; done < width; {
		n := width - done
		if n > 8 {
			n = 8
		}
		v, _ := p.Uint(offset+done, n)
		w.PutUint(v, n)
		done += n
	}
	return w.Payload(), nil
}

// Bytes returns the packed bits, zero padded to a whole byte.
func (p *Payload) Bytes() []byte {
	out := make([]byte, (p.nbits+7)/8)
	copy(out, p.data)
	if r := p.nbits % 8; r != 0 {
		out[len(out)-1] &= 0xFF << uint(8-r)
	}
	return out
}

// Armor re-encodes the bits as six-bit text and returns the fill needed
// to reach a whole character.
func (p *Payload) Armor() (string, int) {
	chars := (p.nbits + 5) / 6
	fill := chars*6 - p.nbits

	var b strings.Builder
	b.Grow(chars)
	for i := 0; i < chars; i++ {
		width := 6
		if rem := p.nbits - i*6; rem < 6 {
			width = rem
		}
		v, _ := p.Uint(i*6, width)
		b.WriteByte(Char(byte(v << uint(6-width))))
	}
	return b.String(), fill
}

// String returns the armored text, so a Payload prints like the sentence
// field it came from.
func (p *Payload) String() string {
	s, _ := p.Armor()
	return s
}

type encoded struct {
	Bits    int    `json:"bits" yaml:"bits"`
	Payload string `json:"payload" yaml:"payload"`
	Fill    int    `json:"fill" yaml:"fill"`
}

func (p *Payload) encoded() encoded {
	s, fill := p.Armor()
	return encoded{Bits: p.nbits, Payload: s, Fill: fill}
}

// MarshalJSON encodes the payload as its armored text, fill and bit count.
func (p *Payload) MarshalJSON() ([]byte, error) {
	return json.Marshal(p.encoded())
}

// MarshalYAML mirrors MarshalJSON for YAML encoders.
func (p *Payload) MarshalYAML() (interface{}, error) {
	return p.encoded(), nil
}
