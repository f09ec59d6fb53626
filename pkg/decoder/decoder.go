package decoder

import (
	"errors"
	"time"

	"github.com/bft-labs/aisparser/internal/domain"
	"github.com/bft-labs/aisparser/pkg/ais"
	"github.com/bft-labs/aisparser/pkg/log"
	"github.com/bft-labs/aisparser/pkg/nmea"
	"github.com/bft-labs/aisparser/pkg/sixbit"
	"github.com/bft-labs/aisparser/pkg/vdm"
)

// Result is the outcome of one input line.
//
// Pending is set while a fragment group is incomplete; Message and
// Payload are nil in that case. Sentence is the last sentence consumed.
type Result struct {
	Message   ais.Message
	Pending   bool
	Sentence  nmea.Sentence
	Payload   *sixbit.Payload
	Channel   string
	Fragments int
}

// Own reports whether the message describes the receiver's own vessel.
func (r Result) Own() bool { return r.Sentence.Own() }

// Decoder turns NMEA lines of one stream into AIS messages. It owns the
// reassembly state of that stream and is not safe for concurrent Decode
// calls; Stats may be read from any goroutine.
type Decoder struct {
	logger log.Logger
	policy ChecksumPolicy
	onDrop vdm.DropHandler
	maxAge time.Duration
	now    func() time.Time

	asm   *vdm.Assembler
	stats counters
}

// New creates a Decoder.
func New(opts ...Option) *Decoder {
	d := &Decoder{
		logger: log.NewNoopLogger(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(d)
	}
	d.asm = vdm.New(
		vdm.WithDropHandler(d.dropped),
		vdm.WithMaxAge(d.maxAge),
		vdm.WithClock(d.now),
	)
	return d
}

// Decode processes one line. Errors are per line; the decoder stays
// usable and a reassembly desync only resets the open fragment group.
func (d *Decoder) Decode(line string) (Result, error) {
	d.stats.lines.Add(1)

	s, err := nmea.Parse(line)
	if err != nil {
		d.reject(err, line)
		return Result{}, err
	}
	res := Result{Sentence: s}

	if err := d.checkChecksum(s.Checksum); err != nil {
		d.reject(err, line)
		return res, err
	}

	p, done, err := d.asm.Push(s)
	if err != nil {
		d.reject(err, line)
		return res, err
	}
	if !done {
		d.stats.pending.Add(1)
		res.Pending = true
		return res, nil
	}
	res.Channel = p.Channel
	res.Fragments = p.Fragments

	payload, err := sixbit.Decode(p.Text, p.Fill)
	if err != nil {
		d.reject(err, line)
		return res, err
	}
	res.Payload = payload

	m, err := ais.Decode(payload)
	if err != nil {
		d.reject(err, line)
		return res, err
	}
	res.Message = m

	h := m.GetHeader()
	d.stats.messages.Add(1)
	d.stats.byType[h.Type&0x3f].Add(1)
	d.logger.Debug("message decoded",
		log.Uint8("type", h.Type),
		log.MMSI(h.MMSI),
		log.String("channel", p.Channel),
		log.Int("fragments", p.Fragments),
	)
	return res, nil
}

func (d *Decoder) checkChecksum(r nmea.Result) error {
	switch d.policy {
	case ChecksumIgnore:
		return nil
	case ChecksumRequire:
		return r.Err()
	default:
		if r.Present && !r.Match {
			return r.Err()
		}
		return nil
	}
}

func (d *Decoder) reject(err error, line string) {
	switch {
	case errors.Is(err, domain.ErrNotAIS):
		d.stats.skipped.Add(1)
		return
	case errors.Is(err, domain.ErrChecksumMismatch), errors.Is(err, domain.ErrMissingChecksum):
		d.stats.checksum.Add(1)
	case errors.Is(err, domain.ErrReassemblyDesync):
		d.stats.desyncs.Add(1)
	case errors.Is(err, domain.ErrUnsupportedMessageType):
		d.stats.unsupported.Add(1)
	case errors.Is(err, domain.ErrBitRangeExceeded), errors.Is(err, domain.ErrInvalidCharacter):
		d.stats.payload.Add(1)
	default:
		d.stats.malformed.Add(1)
	}
	d.logger.Warn("line rejected", log.Err(err), log.String("line", line))
}

func (d *Decoder) dropped(drop vdm.Drop) {
	d.stats.dropped.Add(1)
	d.logger.Warn("partial group dropped",
		log.String("reason", drop.Reason),
		log.String("seq_id", drop.SeqID),
		log.Int("received", drop.Received),
		log.Int("count", drop.Count),
	)
	if d.onDrop != nil {
		d.onDrop(drop)
	}
}

// Pending reports whether a fragment group is open.
func (d *Decoder) Pending() bool { return d.asm.Pending() }

// Reset discards any open fragment group, for example after the input
// was reopened.
func (d *Decoder) Reset() { d.asm.Reset() }

// Policy returns the checksum policy in effect.
func (d *Decoder) Policy() ChecksumPolicy { return d.policy }

// Stats returns a snapshot of the counters.
func (d *Decoder) Stats() Stats { return d.stats.snapshot() }
