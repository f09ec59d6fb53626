package vdm

import (
	"strings"
	"time"

	"github.com/bft-labs/aisparser/internal/domain"
	"github.com/bft-labs/aisparser/pkg/nmea"
)

// ErrReassemblyDesync is returned when a fragment does not continue the
// open group. The assembler has already reset; the next sentence is
// processed normally.
var ErrReassemblyDesync = domain.ErrReassemblyDesync

// DesyncError describes the rejected fragment.
type DesyncError = domain.DesyncError

// Payload is a complete armored payload, either a single-fragment sentence
// or the concatenation of a group.
type Payload struct {
	Text      string
	Fill      int
	Channel   string
	Fragments int
}

// Drop describes a partial group discarded without an error.
type Drop struct {
	Reason    string
	SeqID     string
	Channel   string
	Count     int
	Received  int
	StartedAt time.Time
}

// Drop reasons.
const (
	DropPreempted = "preempted"
	DropExpired   = "expired"
)

// DropHandler is called synchronously when a partial group is discarded.
type DropHandler func(Drop)

// Option configures an Assembler.
type Option func(*Assembler)

// WithDropHandler registers a callback for discarded partial groups.
func WithDropHandler(h DropHandler) Option {
	return func(a *Assembler) { a.onDrop = h }
}

// WithMaxAge discards a partial group older than d when the next fragment
// arrives. Zero disables the check.
func WithMaxAge(d time.Duration) Option {
	return func(a *Assembler) { a.maxAge = d }
}

// WithClock overrides time.Now.
func WithClock(now func() time.Time) Option {
	return func(a *Assembler) { a.now = now }
}

// Assembler joins multi-fragment AIVDM/AIVDO groups.
//
// An Assembler holds the state of exactly one input stream and is not
// safe for concurrent use. Interleaving two streams through one Assembler
// produces desyncs.
type Assembler struct {
	onDrop DropHandler
	maxAge time.Duration
	now    func() time.Time

	open      bool
	count     int
	last      int
	seqID     string
	channel   string
	fill      int
	startedAt time.Time
	buf       strings.Builder

	dropped uint64
}

// New creates an idle Assembler.
func New(opts ...Option) *Assembler {
	a := &Assembler{now: time.Now}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Push offers one sentence. It returns the payload and true when a group
// completes, false while more fragments are expected, or an error wrapping
// ErrReassemblyDesync.
func (a *Assembler) Push(s nmea.Sentence) (Payload, bool, error) {
	if a.open && a.maxAge > 0 && a.now().Sub(a.startedAt) > a.maxAge {
		a.drop(DropExpired)
	}

	if s.Count == 1 {
		// Single-fragment sentences pass through and leave any open group alone.
		return Payload{Text: s.Payload, Fill: s.Fill, Channel: s.Channel, Fragments: 1}, true, nil
	}

	if s.Number == 1 {
		if a.open {
			a.drop(DropPreempted)
		}
		a.start(s)
		return Payload{}, false, nil
	}

	if reason := a.mismatch(s); reason != "" {
		a.reset()
		return Payload{}, false, &DesyncError{Reason: reason, Count: s.Count, Number: s.Number, SeqID: s.SeqID}
	}

	a.buf.WriteString(s.Payload)
	a.last = s.Number
	a.fill = s.Fill
	if a.last < a.count {
		return Payload{}, false, nil
	}

	p := Payload{Text: a.buf.String(), Fill: a.fill, Channel: a.channel, Fragments: a.count}
	a.reset()
	return p, true, nil
}

func (a *Assembler) mismatch(s nmea.Sentence) string {
	switch {
	case !a.open:
		return "no group in progress"
	case s.SeqID != a.seqID:
		return "sequence id changed"
	case s.Channel != a.channel:
		return "channel changed"
	case s.Count != a.count:
		return "fragment count changed"
	case s.Number != a.last+1:
		return "fragment out of order"
	}
	return ""
}

func (a *Assembler) start(s nmea.Sentence) {
	a.reset()
	a.open = true
	a.count = s.Count
	a.last = 1
	a.seqID = s.SeqID
	a.channel = s.Channel
	a.fill = s.Fill
	a.startedAt = a.now()
	a.buf.WriteString(s.Payload)
}

func (a *Assembler) drop(reason string) {
	a.dropped++
	if a.onDrop != nil {
		a.onDrop(Drop{
			Reason:    reason,
			SeqID:     a.seqID,
			Channel:   a.channel,
			Count:     a.count,
			Received:  a.last,
			StartedAt: a.startedAt,
		})
	}
	a.reset()
}

func (a *Assembler) reset() {
	a.open = false
	a.count = 0
	a.last = 0
	a.seqID = ""
	a.channel = ""
	a.fill = 0
	a.buf.Reset()
}

// Pending reports whether a partial group is open.
func (a *Assembler) Pending() bool { return a.open }

// Dropped returns the number of partial groups discarded without an error.
func (a *Assembler) Dropped() uint64 { return a.dropped }

// Reset discards any partial group without reporting it.
func (a *Assembler) Reset() { a.reset() }
