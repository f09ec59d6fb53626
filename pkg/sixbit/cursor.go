package sixbit

// Cursor reads consecutive fields from a Payload.
// The first failed read is remembered; later reads return zero values
// and do not advance, so a decoder can read a whole layout and check Err once.
type Cursor struct {
	p   *Payload
	off int
	err error
}

// NewCursor returns a cursor at the first bit of p.
func NewCursor(p *Payload) *Cursor {
	return &Cursor{p: p}
}

// Uint reads an unsigned field.
func (c *Cursor) Uint(width int) uint32 {
	if c.err != nil {
		return 0
	}
	v, err := c.p.Uint(c.off, width)
	c.advance(width, err)
	return v
}

// Int reads a two's complement field.
func (c *Cursor) Int(width int) int32 {
	if c.err != nil {
		return 0
	}
	v, err := c.p.Int(c.off, width)
	c.advance(width, err)
	return v
}

// Bool reads a single bit.
func (c *Cursor) Bool() bool {
	return c.Uint(1) == 1
}

// Text reads n characters and trims the '@' padding and trailing spaces.
func (c *Cursor) Text(n int) string {
	return Trim(c.RawText(n))
}

// RawText reads n characters without trimming.
func (c *Cursor) RawText(n int) string {
	if c.err != nil {
		return ""
	}
	s, err := c.p.Text(c.off, n)
	c.advance(n*6, err)
	return s
}

// Bits reads width raw bits.
func (c *Cursor) Bits(width int) *Payload {
	if c.err != nil {
		return nil
	}
	b, err := c.p.Bits(c.off, width)
	c.advance(width, err)
	return b
}

// Rest reads every remaining bit.
func (c *Cursor) Rest() *Payload {
	return c.Bits(c.Remaining())
}

// Skip advances over width spare bits.
func (c *Cursor) Skip(width int) {
	if c.err != nil {
		return
	}
	if c.off+width > c.p.nbits {
		c.err = &BitRangeError{Offset: c.off, Width: width, Available: c.p.nbits}
		return
	}
	c.off += width
}

// Remaining returns the number of unread bits.
func (c *Cursor) Remaining() int { return c.p.nbits - c.off }

// Offset returns the current bit position.
func (c *Cursor) Offset() int { return c.off }

// Err returns the first read error, if any.
func (c *Cursor) Err() error { return c.err }

func (c *Cursor) advance(width int, err error) {
	if err != nil {
		c.err = err
		return
	}
	c.off += width
}
