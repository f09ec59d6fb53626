package app

import "time"

// checkpointer decides when the read position is worth persisting: after
// a number of processed lines or a time interval, whichever comes first.
type checkpointer struct {
	everyLines int
	interval   time.Duration
	now        func() time.Time

	pending  int
	lastSave time.Time
	offset   int64
	saved    int64
}

func newCheckpointer(everyLines int, interval time.Duration, now func() time.Time) *checkpointer {
	if now == nil {
		now = time.Now
	}
	return &checkpointer{everyLines: everyLines, interval: interval, now: now, lastSave: now(), saved: -1}
}

// Advance records that the source moved to offset.
// Returns true if a save is due.
func (c *checkpointer) Advance(offset int64) bool {
	c.offset = offset
	c.pending++
	return c.Due()
}

// Due reports whether unsaved progress exists and a trigger has fired.
func (c *checkpointer) Due() bool {
	if !c.Dirty() {
		return false
	}
	if c.everyLines > 0 && c.pending >= c.everyLines {
		return true
	}
	return c.interval > 0 && c.now().Sub(c.lastSave) >= c.interval
}

// Dirty reports whether the offset changed since the last save.
func (c *checkpointer) Dirty() bool {
	return c.pending > 0 && c.offset != c.saved
}

// Saved marks the current offset as persisted.
func (c *checkpointer) Saved() {
	c.pending = 0
	c.saved = c.offset
	c.lastSave = c.now()
}

// Offset returns the latest recorded offset.
func (c *checkpointer) Offset() int64 { return c.offset }
