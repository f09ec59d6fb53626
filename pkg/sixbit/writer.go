package sixbit

// Writer builds a Payload bit by bit, MSB first.
// The zero value is ready to use.
type Writer struct {
	data  []byte
	nbits int
}

func (w *Writer) grow(bits int) {
	if need := (w.nbits + bits + 7) / 8; cap(w.data) < need {
		data := make([]byte, len(w.data), need)
		copy(data, w.data)
		w.data = data
	}
}

// PutUint appends the low width bits of v.
func (w *Writer) PutUint(v uint32, width int) *Writer {
	w.grow(width)
	for i := width - 1; i >= 0; i-- {
		if w.nbits%8 == 0 {
			w.data = append(w.data, 0)
		}
		if v&(1<<uint(i)) != 0 {
			w.data[w.nbits/8] |= 0x80 >> uint(w.nbits%8)
		}
		w.nbits++
	}
	return w
}

// PutInt appends v in two's complement over width bits.
func (w *Writer) PutInt(v int32, width int) *Writer {
	return w.PutUint(uint32(v), width)
}

// PutBool appends a single bit.
func (w *Writer) PutBool(v bool) *Writer {
	if v {
		return w.PutUint(1, 1)
	}
	return w.PutUint(0, 1)
}

// PutText appends s as n six-bit characters, padding with '@'.
// Characters outside the AIS text table are written as '?'.
func (w *Writer) PutText(s string, n int) *Writer {
	for i := 0; i < n; i++ {
		c := byte('@')
		if i < len(s) {
			c = s[i]
		}
		switch {
		case c >= 64 && c < 96:
			c -= 64
		case c >= 32 && c < 64:
		default:
			c = '?'
		}
		w.PutUint(uint32(c), 6)
	}
	return w
}

// PutPayload appends all bits of p.
func (w *Writer) PutPayload(p *Payload) *Writer {
	for off := 0; off < p.Len(); {
		n := p.Len() - off
		if n > 8 {
			n = 8
		}
		v, _ := p.Uint(off, n)
		w.PutUint(v, n)
		off += n
	}
	return w
}

// Len returns the number of bits written so far.
func (w *Writer) Len() int { return w.nbits }

// Payload returns the bits written so far. The Writer must not be used
// afterwards.
func (w *Writer) Payload() *Payload {
	return &Payload{data: w.data, nbits: w.nbits}
}
